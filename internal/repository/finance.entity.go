package repository

import (
	"time"

	"github.com/alnoor/community-platform/internal/model"
)

type SocietyExpenseEntity struct {
	ID         int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	SocietyID  int64     `db:"society_id"  gorm:"column:society_id;not null;index"`
	ProposalID *int64    `db:"proposal_id" gorm:"column:proposal_id;index"`
	Amount     float64   `db:"amount"      gorm:"column:amount;not null"`
	Category   string    `db:"category"    gorm:"column:category;not null"`
	Note       string    `db:"note"        gorm:"column:note"`
	Status     string    `db:"status"      gorm:"column:status;not null;default:pending;index"`
	ApprovedBy *int64    `db:"approved_by" gorm:"column:approved_by"`
	CreatedAt  time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `db:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (SocietyExpenseEntity) TableName() string { return "society_expenses" }

type SocietyContributionEntity struct {
	ID         int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	SocietyID  int64     `db:"society_id"  gorm:"column:society_id;not null;index"`
	MemberID   int64     `db:"member_id"   gorm:"column:member_id;not null;index"`
	ProposalID *int64    `db:"proposal_id" gorm:"column:proposal_id;index"`
	Amount     float64   `db:"amount"      gorm:"column:amount;not null"`
	Method     string    `db:"method"      gorm:"column:method;not null"`
	Month      int       `db:"month"       gorm:"column:month;not null"`
	Year       int       `db:"year"        gorm:"column:year;not null"`
	Purpose    string    `db:"purpose"     gorm:"column:purpose;not null"`
	Status     string    `db:"status"      gorm:"column:status;not null;default:pending;index"`
	CreatedAt  time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `db:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (SocietyContributionEntity) TableName() string { return "society_contributions" }

func toExpenseEntity(m *model.SocietyExpense) *SocietyExpenseEntity {
	if m == nil {
		return nil
	}
	return &SocietyExpenseEntity{
		ID:         m.ID,
		SocietyID:  m.SocietyID,
		ProposalID: m.ProposalID,
		Amount:     m.Amount,
		Category:   m.Category,
		Note:       m.Note,
		Status:     string(m.Status),
		ApprovedBy: m.ApprovedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toExpenseModel(e *SocietyExpenseEntity) *model.SocietyExpense {
	if e == nil {
		return nil
	}
	return &model.SocietyExpense{
		ID:         e.ID,
		SocietyID:  e.SocietyID,
		ProposalID: e.ProposalID,
		Amount:     e.Amount,
		Category:   e.Category,
		Note:       e.Note,
		Status:     model.ExpenseStatus(e.Status),
		ApprovedBy: e.ApprovedBy,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toExpenseModels(entities []*SocietyExpenseEntity) []*model.SocietyExpense {
	if entities == nil {
		return nil
	}
	models := make([]*model.SocietyExpense, len(entities))
	for i, e := range entities {
		models[i] = toExpenseModel(e)
	}
	return models
}

func toContributionEntity(m *model.SocietyContribution) *SocietyContributionEntity {
	if m == nil {
		return nil
	}
	return &SocietyContributionEntity{
		ID:         m.ID,
		SocietyID:  m.SocietyID,
		MemberID:   m.MemberID,
		ProposalID: m.ProposalID,
		Amount:     m.Amount,
		Method:     string(m.Method),
		Month:      m.Month,
		Year:       m.Year,
		Purpose:    string(m.Purpose),
		Status:     string(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toContributionModel(e *SocietyContributionEntity) *model.SocietyContribution {
	if e == nil {
		return nil
	}
	return &model.SocietyContribution{
		ID:         e.ID,
		SocietyID:  e.SocietyID,
		MemberID:   e.MemberID,
		ProposalID: e.ProposalID,
		Amount:     e.Amount,
		Method:     model.PaymentMethod(e.Method),
		Month:      e.Month,
		Year:       e.Year,
		Purpose:    model.ContributionPurpose(e.Purpose),
		Status:     model.ContributionStatus(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toContributionModels(entities []*SocietyContributionEntity) []*model.SocietyContribution {
	if entities == nil {
		return nil
	}
	models := make([]*model.SocietyContribution, len(entities))
	for i, e := range entities {
		models[i] = toContributionModel(e)
	}
	return models
}
