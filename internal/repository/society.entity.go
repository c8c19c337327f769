package repository

import (
	"time"

	"github.com/alnoor/community-platform/internal/model"
)

type SocietyEntity struct {
	ID                  int64     `db:"id"                   gorm:"primaryKey;autoIncrement;column:id"`
	Name                string    `db:"name"                 gorm:"column:name;not null"`
	MonthlyContribution float64   `db:"monthly_contribution" gorm:"column:monthly_contribution;not null"`
	TotalBlocks         int       `db:"total_blocks"         gorm:"column:total_blocks;not null;default:0"`
	TotalFlats          int       `db:"total_flats"          gorm:"column:total_flats;not null;default:0"`
	CreatedAt           time.Time `db:"created_at"           gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `db:"updated_at"           gorm:"column:updated_at;autoUpdateTime"`
}

func (SocietyEntity) TableName() string { return "societies" }

type SocietyBlockEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	SocietyID int64     `db:"society_id" gorm:"column:society_id;not null;index"`
	Name      string    `db:"name"       gorm:"column:name;not null"`
	FlatCount int       `db:"flat_count" gorm:"column:flat_count;not null"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (SocietyBlockEntity) TableName() string { return "society_blocks" }

type SocietyMemberEntity struct {
	ID         int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	UserID     int64     `db:"user_id"     gorm:"column:user_id;not null;index"`
	BlockID    int64     `db:"block_id"    gorm:"column:block_id;not null;index"`
	FlatNumber string    `db:"flat_number" gorm:"column:flat_number;not null"`
	IsOwner    bool      `db:"is_owner"    gorm:"column:is_owner;not null;default:false"`
	Committee  bool      `db:"committee"   gorm:"column:committee;not null;default:false"`
	Role       string    `db:"role"        gorm:"column:role;not null;default:member"`
	Status     string    `db:"status"      gorm:"column:status;not null;default:active"`
	CreatedAt  time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (SocietyMemberEntity) TableName() string { return "society_members" }

func toSocietyEntity(m *model.Society) *SocietyEntity {
	if m == nil {
		return nil
	}
	return &SocietyEntity{
		ID:                  m.ID,
		Name:                m.Name,
		MonthlyContribution: m.MonthlyContribution,
		TotalBlocks:         m.TotalBlocks,
		TotalFlats:          m.TotalFlats,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toSocietyModel(e *SocietyEntity) *model.Society {
	if e == nil {
		return nil
	}
	return &model.Society{
		ID:                  e.ID,
		Name:                e.Name,
		MonthlyContribution: e.MonthlyContribution,
		TotalBlocks:         e.TotalBlocks,
		TotalFlats:          e.TotalFlats,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func toBlockEntity(m *model.SocietyBlock) *SocietyBlockEntity {
	if m == nil {
		return nil
	}
	return &SocietyBlockEntity{
		ID:        m.ID,
		SocietyID: m.SocietyID,
		Name:      m.Name,
		FlatCount: m.FlatCount,
		CreatedAt: m.CreatedAt,
	}
}

func toBlockModel(e *SocietyBlockEntity) *model.SocietyBlock {
	if e == nil {
		return nil
	}
	return &model.SocietyBlock{
		ID:        e.ID,
		SocietyID: e.SocietyID,
		Name:      e.Name,
		FlatCount: e.FlatCount,
		CreatedAt: e.CreatedAt,
	}
}

func toBlockModels(entities []*SocietyBlockEntity) []*model.SocietyBlock {
	if entities == nil {
		return nil
	}
	models := make([]*model.SocietyBlock, len(entities))
	for i, e := range entities {
		models[i] = toBlockModel(e)
	}
	return models
}

func toMemberEntity(m *model.SocietyMember) *SocietyMemberEntity {
	if m == nil {
		return nil
	}
	return &SocietyMemberEntity{
		ID:         m.ID,
		UserID:     m.UserID,
		BlockID:    m.BlockID,
		FlatNumber: m.FlatNumber,
		IsOwner:    m.IsOwner,
		Committee:  m.Committee,
		Role:       m.Role,
		Status:     string(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}

func toMemberModel(e *SocietyMemberEntity) *model.SocietyMember {
	if e == nil {
		return nil
	}
	return &model.SocietyMember{
		ID:         e.ID,
		UserID:     e.UserID,
		BlockID:    e.BlockID,
		FlatNumber: e.FlatNumber,
		IsOwner:    e.IsOwner,
		Committee:  e.Committee,
		Role:       e.Role,
		Status:     model.MemberStatus(e.Status),
		CreatedAt:  e.CreatedAt,
	}
}

func toMemberModels(entities []*SocietyMemberEntity) []*model.SocietyMember {
	if entities == nil {
		return nil
	}
	models := make([]*model.SocietyMember, len(entities))
	for i, e := range entities {
		models[i] = toMemberModel(e)
	}
	return models
}
