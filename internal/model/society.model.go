package model

import (
	"errors"
	"strings"
	"time"
)

// Society is the housing-society configuration. One row per deployment.
type Society struct {
	ID                  int64     `json:"id"                   db:"id"                   gorm:"primaryKey;autoIncrement;column:id"`
	Name                string    `json:"name"                 db:"name"                 gorm:"column:name;not null"`
	MonthlyContribution float64   `json:"monthly_contribution" db:"monthly_contribution" gorm:"column:monthly_contribution;not null"`
	TotalBlocks         int       `json:"total_blocks"         db:"total_blocks"         gorm:"column:total_blocks;not null;default:0"`
	TotalFlats          int       `json:"total_flats"          db:"total_flats"          gorm:"column:total_flats;not null;default:0"`
	CreatedAt           time.Time `json:"created_at"           db:"created_at"           gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `json:"updated_at"           db:"updated_at"           gorm:"column:updated_at;autoUpdateTime"`
}

func (Society) TableName() string { return "societies" }

type SocietyBlock struct {
	ID        int64     `json:"id"         db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	SocietyID int64     `json:"society_id" db:"society_id" gorm:"column:society_id;not null;index"`
	Society   *Society  `json:"-"                          gorm:"foreignKey:SocietyID;references:ID;constraint:OnDelete:CASCADE"`
	Name      string    `json:"name"       db:"name"       gorm:"column:name;not null"`
	FlatCount int       `json:"flat_count" db:"flat_count" gorm:"column:flat_count;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (SocietyBlock) TableName() string { return "society_blocks" }

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

type SocietyMember struct {
	ID         int64         `json:"id"          db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	UserID     int64         `json:"user_id"     db:"user_id"     gorm:"column:user_id;not null;index"`
	User       *User         `json:"-"                            gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	BlockID    int64         `json:"block_id"    db:"block_id"    gorm:"column:block_id;not null;index"`
	Block      *SocietyBlock `json:"-"                            gorm:"foreignKey:BlockID;references:ID;constraint:OnDelete:CASCADE"`
	FlatNumber string        `json:"flat_number" db:"flat_number" gorm:"column:flat_number;not null"`
	IsOwner    bool          `json:"is_owner"    db:"is_owner"    gorm:"column:is_owner;not null;default:false"`
	Committee  bool          `json:"committee"   db:"committee"   gorm:"column:committee;not null;default:false"`
	Role       string        `json:"role"        db:"role"        gorm:"column:role;not null;default:member"`
	Status     MemberStatus  `json:"status"      db:"status"      gorm:"column:status;not null;default:active"`
	CreatedAt  time.Time     `json:"created_at"  db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (SocietyMember) TableName() string { return "society_members" }

type SocietyUpdateRequest struct {
	Name                string
	MonthlyContribution float64
	TotalBlocks         int
	TotalFlats          int
}

func (p SocietyUpdateRequest) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.MonthlyContribution < 0 {
		return errors.New("monthly contribution cannot be negative")
	}
	if p.TotalBlocks < 0 || p.TotalFlats < 0 {
		return errors.New("block and flat totals cannot be negative")
	}
	return nil
}

type BlockCreateRequest struct {
	SocietyID int64
	Name      string
	FlatCount int
}

func (p BlockCreateRequest) Validate() error {
	if p.SocietyID == 0 {
		return errors.New("society_id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.FlatCount <= 0 {
		return errors.New("flat count must be positive")
	}
	return nil
}

type MemberCreateRequest struct {
	UserID     int64
	BlockID    int64
	FlatNumber string
	IsOwner    bool
	Role       string
}

func (p MemberCreateRequest) Validate() error {
	if p.UserID == 0 {
		return errors.New("user_id is required")
	}
	if p.BlockID == 0 {
		return errors.New("block_id is required")
	}
	if strings.TrimSpace(p.FlatNumber) == "" {
		return errors.New("flat number is required")
	}
	return nil
}

// FlatsReport is the block/flat reconciliation result. The schema does not
// force the block sum to match the society total, so the mismatch is surfaced
// here instead of being rejected at write time.
type FlatsReport struct {
	SocietyID  int64 `json:"society_id"`
	TotalFlats int   `json:"total_flats"`
	BlockFlats int   `json:"block_flats"`
	Balanced   bool  `json:"balanced"`
}
