package model

import (
	"errors"
	"strings"
	"time"
)

type ExpenseStatus string

const (
	ExpenseStatusPending   ExpenseStatus = "pending"
	ExpenseStatusApproved  ExpenseStatus = "approved"
	ExpenseStatusCompleted ExpenseStatus = "completed"
)

func (s ExpenseStatus) CanTransition(next ExpenseStatus) bool {
	switch s {
	case ExpenseStatusPending:
		return next == ExpenseStatusApproved
	case ExpenseStatusApproved:
		return next == ExpenseStatusCompleted
	}
	return false
}

type SocietyExpense struct {
	ID         int64         `json:"id"          db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	SocietyID  int64         `json:"society_id"  db:"society_id"  gorm:"column:society_id;not null;index"`
	Society    *Society      `json:"-"                            gorm:"foreignKey:SocietyID;references:ID;constraint:OnDelete:CASCADE"`
	ProposalID *int64        `json:"proposal_id" db:"proposal_id" gorm:"column:proposal_id;index"`
	Proposal   *Proposal     `json:"-"                            gorm:"foreignKey:ProposalID;references:ID;constraint:OnDelete:SET NULL"`
	Amount     float64       `json:"amount"      db:"amount"      gorm:"column:amount;not null"`
	Category   string        `json:"category"    db:"category"    gorm:"column:category;not null"`
	Note       string        `json:"note"        db:"note"        gorm:"column:note"`
	Status     ExpenseStatus `json:"status"      db:"status"      gorm:"column:status;not null;default:pending;index"`
	ApprovedBy *int64        `json:"approved_by" db:"approved_by" gorm:"column:approved_by"`
	CreatedAt  time.Time     `json:"created_at"  db:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time     `json:"updated_at"  db:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (SocietyExpense) TableName() string { return "society_expenses" }

type ExpenseCreateRequest struct {
	SocietyID  int64
	ProposalID *int64
	Amount     float64
	Category   string
	Note       string
}

func (p ExpenseCreateRequest) Validate() error {
	if p.SocietyID == 0 {
		return errors.New("society_id is required")
	}
	if p.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if strings.TrimSpace(p.Category) == "" {
		return errors.New("category is required")
	}
	return nil
}

type ContributionStatus string

const (
	ContributionStatusPending   ContributionStatus = "pending"
	ContributionStatusCompleted ContributionStatus = "completed"
)

func (s ContributionStatus) CanTransition(next ContributionStatus) bool {
	return s == ContributionStatusPending && next == ContributionStatusCompleted
}

type ContributionPurpose string

const (
	ContributionMonthly  ContributionPurpose = "monthly"
	ContributionProposal ContributionPurpose = "proposal"
	ContributionSpecial  ContributionPurpose = "special"
)

type SocietyContribution struct {
	ID         int64               `json:"id"          db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	SocietyID  int64               `json:"society_id"  db:"society_id"  gorm:"column:society_id;not null;index"`
	Society    *Society            `json:"-"                            gorm:"foreignKey:SocietyID;references:ID;constraint:OnDelete:CASCADE"`
	MemberID   int64               `json:"member_id"   db:"member_id"   gorm:"column:member_id;not null;index"`
	Member     *SocietyMember      `json:"-"                            gorm:"foreignKey:MemberID;references:ID;constraint:OnDelete:CASCADE"`
	ProposalID *int64              `json:"proposal_id" db:"proposal_id" gorm:"column:proposal_id;index"`
	Proposal   *Proposal           `json:"-"                            gorm:"foreignKey:ProposalID;references:ID;constraint:OnDelete:SET NULL"`
	Amount     float64             `json:"amount"      db:"amount"      gorm:"column:amount;not null"`
	Method     PaymentMethod       `json:"method"      db:"method"      gorm:"column:method;not null"`
	Month      int                 `json:"month"       db:"month"       gorm:"column:month;not null"`
	Year       int                 `json:"year"        db:"year"        gorm:"column:year;not null"`
	Purpose    ContributionPurpose `json:"purpose"     db:"purpose"     gorm:"column:purpose;not null"`
	Status     ContributionStatus  `json:"status"      db:"status"      gorm:"column:status;not null;default:pending;index"`
	CreatedAt  time.Time           `json:"created_at"  db:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time           `json:"updated_at"  db:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (SocietyContribution) TableName() string { return "society_contributions" }

type ContributionCreateRequest struct {
	SocietyID  int64
	MemberID   int64
	ProposalID *int64
	Amount     float64
	Method     PaymentMethod
	Month      int
	Year       int
	Purpose    ContributionPurpose
}

func (p ContributionCreateRequest) Validate() error {
	if p.SocietyID == 0 {
		return errors.New("society_id is required")
	}
	if p.MemberID == 0 {
		return errors.New("member_id is required")
	}
	if p.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	switch p.Purpose {
	case ContributionMonthly, ContributionProposal, ContributionSpecial:
	default:
		return errors.New("unknown contribution purpose")
	}
	if p.Purpose == ContributionMonthly {
		if p.Month < 1 || p.Month > 12 {
			return errors.New("month must be between 1 and 12")
		}
		if p.Year < 2000 {
			return errors.New("year is out of range")
		}
	}
	if p.Purpose == ContributionProposal && p.ProposalID == nil {
		return errors.New("proposal_id is required for proposal contributions")
	}
	return nil
}

type ContributionFilter struct {
	MemberID *int64
	Month    *int
	Year     *int
	Purpose  *ContributionPurpose
	Statuses []ContributionStatus
	Limit    int
	Offset   int
	Desc     bool
}
