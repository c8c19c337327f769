package repository

import (
	"context"
	"errors"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrSocietyNotFound = errors.New("society not found")
	ErrBlockNotFound   = errors.New("society block not found")
	ErrMemberNotFound  = errors.New("society member not found")
)

type SocietyRepository struct {
	*pg.DB
}

func NewSocietyRepository(db *pg.DB) *SocietyRepository {
	return &SocietyRepository{
		db,
	}
}

// Get returns the deployment's society row. There is at most one.
func (r *SocietyRepository) Get(ctx context.Context) (*model.Society, error) {
	var entity SocietyEntity
	err := r.Read(ctx).WithContext(ctx).Order("id ASC").First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSocietyNotFound
		}
		return nil, err
	}
	return toSocietyModel(&entity), nil
}

func (r *SocietyRepository) Upsert(ctx context.Context, s *model.Society) (*model.Society, error) {
	entity := toSocietyEntity(s)

	var existing SocietyEntity
	err := r.Write(ctx).WithContext(ctx).Order("id ASC").First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		entity.ID = existing.ID
		entity.CreatedAt = existing.CreatedAt
		if err := r.Write(ctx).WithContext(ctx).Save(entity).Error; err != nil {
			return nil, err
		}
	}

	return toSocietyModel(entity), nil
}

func (r *SocietyRepository) CreateBlock(ctx context.Context, b *model.SocietyBlock) (*model.SocietyBlock, error) {
	var society SocietyEntity
	err := r.Write(ctx).WithContext(ctx).Where("id = ?", b.SocietyID).First(&society).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSocietyNotFound
		}
		return nil, err
	}

	entity := toBlockEntity(b)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toBlockModel(entity), nil
}

func (r *SocietyRepository) ListBlocks(ctx context.Context, societyID int64) ([]*model.SocietyBlock, error) {
	var entities []*SocietyBlockEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("society_id = ?", societyID).
		Order("name ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toBlockModels(entities), nil
}

// SumBlockFlats returns the flat count aggregated over a society's blocks,
// used for the reconciliation report against Society.TotalFlats.
func (r *SocietyRepository) SumBlockFlats(ctx context.Context, societyID int64) (int, error) {
	var sum *int
	err := r.Read(ctx).WithContext(ctx).
		Model(&SocietyBlockEntity{}).
		Select("SUM(flat_count)").
		Where("society_id = ?", societyID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (r *SocietyRepository) CreateMember(ctx context.Context, m *model.SocietyMember) (*model.SocietyMember, error) {
	var user UserEntity
	if err := r.Write(ctx).WithContext(ctx).Where("id = ?", m.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	var block SocietyBlockEntity
	if err := r.Write(ctx).WithContext(ctx).Where("id = ?", m.BlockID).First(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}

	entity := toMemberEntity(m)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toMemberModel(entity), nil
}

func (r *SocietyRepository) GetMember(ctx context.Context, id int64) (*model.SocietyMember, error) {
	var entity SocietyMemberEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return toMemberModel(&entity), nil
}

func (r *SocietyRepository) ListMembers(ctx context.Context, blockID *int64) ([]*model.SocietyMember, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&SocietyMemberEntity{})
	if blockID != nil {
		q = q.Where("block_id = ?", *blockID)
	}

	var entities []*SocietyMemberEntity
	if err := q.Order("created_at ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toMemberModels(entities), nil
}

func (r *SocietyRepository) SetMemberStatus(ctx context.Context, id int64, status model.MemberStatus) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&SocietyMemberEntity{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *SocietyRepository) SetMemberRole(ctx context.Context, id int64, role string, committee bool) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&SocietyMemberEntity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"role": role, "committee": committee})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
