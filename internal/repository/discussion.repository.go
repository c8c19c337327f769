package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrCommentNotFound    = errors.New("comment not found")
)

type DiscussionRepository struct {
	*pg.DB
}

func NewDiscussionRepository(db *pg.DB) *DiscussionRepository {
	return &DiscussionRepository{
		db,
	}
}

func (r *DiscussionRepository) Create(ctx context.Context, d *model.Discussion) (*model.Discussion, error) {
	var society SocietyEntity
	if err := r.Write(ctx).WithContext(ctx).Where("id = ?", d.SocietyID).First(&society).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSocietyNotFound
		}
		return nil, err
	}

	entity := toDiscussionEntity(d)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toDiscussionModel(entity), nil
}

func (r *DiscussionRepository) GetByID(ctx context.Context, id int64) (*model.Discussion, error) {
	var entity DiscussionEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscussionNotFound
		}
		return nil, err
	}
	return toDiscussionModel(&entity), nil
}

func (r *DiscussionRepository) List(ctx context.Context, societyID int64, statuses []model.DiscussionStatus) ([]*model.Discussion, error) {
	q := r.Read(ctx).WithContext(ctx).
		Model(&DiscussionEntity{}).
		Where("society_id = ?", societyID)

	if len(statuses) > 0 {
		vals := make([]string, len(statuses))
		for i, s := range statuses {
			vals[i] = string(s)
		}
		q = q.Where("status IN ?", vals)
	}

	var entities []*DiscussionEntity
	if err := q.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toDiscussionModels(entities), nil
}

// Close moves a discussion out of open and stamps closed_at. The open guard
// sits in the WHERE clause so the timestamp is set exactly once.
func (r *DiscussionRepository) Close(ctx context.Context, id int64, to model.DiscussionStatus) error {
	if !model.DiscussionStatusOpen.CanTransition(to) {
		return ErrStatusTransition
	}

	now := time.Now()
	result := r.Write(ctx).WithContext(ctx).
		Model(&DiscussionEntity{}).
		Where("id = ? AND status = ?", id, string(model.DiscussionStatusOpen)).
		Updates(map[string]interface{}{"status": string(to), "closed_at": now})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var entity DiscussionEntity
		err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDiscussionNotFound
		}
		return ErrStatusTransition
	}
	return nil
}

func (r *DiscussionRepository) CreateComment(ctx context.Context, c *model.DiscussionComment) (*model.DiscussionComment, error) {
	var discussion DiscussionEntity
	if err := r.Write(ctx).WithContext(ctx).Where("id = ?", c.DiscussionID).First(&discussion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscussionNotFound
		}
		return nil, err
	}

	entity := toCommentEntity(c)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCommentModel(entity), nil
}

func (r *DiscussionRepository) UpdateComment(ctx context.Context, id, userID int64, content string) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&DiscussionCommentEntity{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *DiscussionRepository) ListComments(ctx context.Context, discussionID int64) ([]*model.DiscussionComment, error) {
	var entities []*DiscussionCommentEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("discussion_id = ?", discussionID).
		Order("created_at ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toCommentModels(entities), nil
}
