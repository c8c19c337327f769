package repository

import (
	"context"
	"errors"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrDuplicateDues        = errors.New("monthly dues already recorded for this member")
)

type FinanceRepository struct {
	*pg.DB
}

func NewFinanceRepository(db *pg.DB) *FinanceRepository {
	return &FinanceRepository{
		db,
	}
}

func (r *FinanceRepository) CreateExpense(ctx context.Context, e *model.SocietyExpense) (*model.SocietyExpense, error) {
	var society SocietyEntity
	if err := r.Write(ctx).WithContext(ctx).Where("id = ?", e.SocietyID).First(&society).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSocietyNotFound
		}
		return nil, err
	}
	if e.ProposalID != nil {
		var proposal ProposalEntity
		if err := r.Write(ctx).WithContext(ctx).Where("id = ?", *e.ProposalID).First(&proposal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProposalNotFound
			}
			return nil, err
		}
	}

	entity := toExpenseEntity(e)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toExpenseModel(entity), nil
}

func (r *FinanceRepository) UpdateExpenseStatus(ctx context.Context, id int64, from, to model.ExpenseStatus, approvedBy *int64) error {
	if !from.CanTransition(to) {
		return ErrStatusTransition
	}

	updates := map[string]interface{}{"status": string(to)}
	if to == model.ExpenseStatusApproved && approvedBy != nil {
		updates["approved_by"] = *approvedBy
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&SocietyExpenseEntity{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var entity SocietyExpenseEntity
		err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return ErrStatusTransition
	}
	return nil
}

func (r *FinanceRepository) ListExpenses(ctx context.Context, societyID int64, statuses []model.ExpenseStatus) ([]*model.SocietyExpense, error) {
	q := r.Read(ctx).WithContext(ctx).
		Model(&SocietyExpenseEntity{}).
		Where("society_id = ?", societyID)

	if len(statuses) > 0 {
		vals := make([]string, len(statuses))
		for i, s := range statuses {
			vals[i] = string(s)
		}
		q = q.Where("status IN ?", vals)
	}

	var entities []*SocietyExpenseEntity
	if err := q.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toExpenseModels(entities), nil
}

func (r *FinanceRepository) CreateContribution(ctx context.Context, c *model.SocietyContribution) (*model.SocietyContribution, error) {
	var member SocietyMemberEntity
	if err := r.Write(ctx).WithContext(ctx).Where("id = ?", c.MemberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	// one dues record per member per month bucket
	if c.Purpose == model.ContributionMonthly {
		var count int64
		err := r.Write(ctx).WithContext(ctx).
			Model(&SocietyContributionEntity{}).
			Where("member_id = ? AND month = ? AND year = ? AND purpose = ?",
				c.MemberID, c.Month, c.Year, string(model.ContributionMonthly)).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateDues
		}
	}

	entity := toContributionEntity(c)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toContributionModel(entity), nil
}

func (r *FinanceRepository) UpdateContributionStatus(ctx context.Context, id int64, from, to model.ContributionStatus) error {
	if !from.CanTransition(to) {
		return ErrStatusTransition
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&SocietyContributionEntity{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var entity SocietyContributionEntity
		err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContributionNotFound
		}
		return ErrStatusTransition
	}
	return nil
}

func (r *FinanceRepository) ListContributions(ctx context.Context, f model.ContributionFilter) ([]*model.SocietyContribution, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&SocietyContributionEntity{})

	if f.MemberID != nil {
		q = q.Where("member_id = ?", *f.MemberID)
	}
	if f.Month != nil {
		q = q.Where("month = ?", *f.Month)
	}
	if f.Year != nil {
		q = q.Where("year = ?", *f.Year)
	}
	if f.Purpose != nil {
		q = q.Where("purpose = ?", string(*f.Purpose))
	}
	if len(f.Statuses) > 0 {
		vals := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			vals[i] = string(s)
		}
		q = q.Where("status IN ?", vals)
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

	var entities []*SocietyContributionEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toContributionModels(entities), total, nil
}
