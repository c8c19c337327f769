package repository

import (
	"context"
	"errors"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/pkg/pg"
	"gorm.io/gorm"
)

var ErrEnrollmentNotFound = errors.New("enrollment not found")

type EnrollmentRepository struct {
	*pg.DB
}

func NewEnrollmentRepository(db *pg.DB) *EnrollmentRepository {
	return &EnrollmentRepository{
		db,
	}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) (*model.Enrollment, error) {
	entity := toEnrollmentEntity(e)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toEnrollmentModel(entity), nil
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	var entity EnrollmentEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return toEnrollmentModel(&entity), nil
}

// UpdateStatus applies the admin decision. The pending guard is part of the
// WHERE clause, so a second decision finds zero rows and fails.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, from, to model.EnrollmentStatus) error {
	if !from.CanTransition(to) {
		return ErrStatusTransition
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&EnrollmentEntity{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var entity EnrollmentEntity
		err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		return ErrStatusTransition
	}
	return nil
}

func (r *EnrollmentRepository) List(ctx context.Context, f model.EnrollmentFilter) ([]*model.Enrollment, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&EnrollmentEntity{})

	if f.Course != nil && *f.Course != "" {
		q = q.Where("course = ?", *f.Course)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where("status IN ?", statuses)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at"
	if f.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var entities []*EnrollmentEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toEnrollmentModels(entities), total, nil
}
