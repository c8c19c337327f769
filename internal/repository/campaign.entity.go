package repository

import (
	"time"

	"github.com/alnoor/community-platform/internal/model"
)

type CampaignEntity struct {
	ID          int64      `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Name        string     `db:"name"        gorm:"column:name;not null"`
	Description string     `db:"description" gorm:"column:description"`
	Goal        float64    `db:"goal"        gorm:"column:goal;not null"`
	Raised      float64    `db:"raised"      gorm:"column:raised;not null;default:0"`
	Active      bool       `db:"active"      gorm:"column:active;not null;default:true"`
	StartDate   *time.Time `db:"start_date"  gorm:"column:start_date"`
	EndDate     *time.Time `db:"end_date"    gorm:"column:end_date"`
	CreatedAt   time.Time  `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (CampaignEntity) TableName() string { return "campaigns" }

func toCampaignEntity(m *model.Campaign) *CampaignEntity {
	if m == nil {
		return nil
	}
	return &CampaignEntity{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Goal:        m.Goal,
		Raised:      m.Raised,
		Active:      m.Active,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		CreatedAt:   m.CreatedAt,
	}
}

func toCampaignModel(e *CampaignEntity) *model.Campaign {
	if e == nil {
		return nil
	}
	return &model.Campaign{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Goal:        e.Goal,
		Raised:      e.Raised,
		Active:      e.Active,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		CreatedAt:   e.CreatedAt,
	}
}

func toCampaignModels(entities []*CampaignEntity) []*model.Campaign {
	if entities == nil {
		return nil
	}
	models := make([]*model.Campaign, len(entities))
	for i, e := range entities {
		models[i] = toCampaignModel(e)
	}
	return models
}
