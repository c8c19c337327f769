package model

import (
	"errors"
	"strings"
	"time"
)

type Campaign struct {
	ID          int64      `json:"id"          db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Name        string     `json:"name"        db:"name"        gorm:"column:name;not null"`
	Description string     `json:"description" db:"description" gorm:"column:description"`
	Goal        float64    `json:"goal"        db:"goal"        gorm:"column:goal;not null"`
	Raised      float64    `json:"raised"      db:"raised"      gorm:"column:raised;not null;default:0"`
	Active      bool       `json:"active"      db:"active"      gorm:"column:active;not null;default:true"`
	StartDate   *time.Time `json:"start_date"  db:"start_date"  gorm:"column:start_date"`
	EndDate     *time.Time `json:"end_date"    db:"end_date"    gorm:"column:end_date"`
	CreatedAt   time.Time  `json:"created_at"  db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (Campaign) TableName() string { return "campaigns" }

type CampaignCreateRequest struct {
	Name        string
	Description string
	Goal        float64
	StartDate   *time.Time
	EndDate     *time.Time
}

func (p CampaignCreateRequest) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.Goal <= 0 {
		return errors.New("goal must be positive")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return errors.New("end date precedes start date")
	}
	return nil
}

type CampaignFilter struct {
	Active *bool
	Limit  int
	Offset int
}
