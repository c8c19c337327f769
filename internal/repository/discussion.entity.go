package repository

import (
	"time"

	"github.com/alnoor/community-platform/internal/model"
)

type DiscussionEntity struct {
	ID        int64      `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	SocietyID int64      `db:"society_id" gorm:"column:society_id;not null;index"`
	UserID    int64      `db:"user_id"    gorm:"column:user_id;not null;index"`
	Title     string     `db:"title"      gorm:"column:title;not null"`
	Body      string     `db:"body"       gorm:"column:body"`
	Status    string     `db:"status"     gorm:"column:status;not null;default:open;index"`
	ClosedAt  *time.Time `db:"closed_at"  gorm:"column:closed_at"`
	CreatedAt time.Time  `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (DiscussionEntity) TableName() string { return "discussions" }

type DiscussionCommentEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	DiscussionID int64     `db:"discussion_id" gorm:"column:discussion_id;not null;index"`
	UserID       int64     `db:"user_id"       gorm:"column:user_id;not null;index"`
	Content      string    `db:"content"       gorm:"column:content;not null"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `db:"updated_at"    gorm:"column:updated_at;autoUpdateTime"`
}

func (DiscussionCommentEntity) TableName() string { return "discussion_comments" }

func toDiscussionEntity(m *model.Discussion) *DiscussionEntity {
	if m == nil {
		return nil
	}
	return &DiscussionEntity{
		ID:        m.ID,
		SocietyID: m.SocietyID,
		UserID:    m.UserID,
		Title:     m.Title,
		Body:      m.Body,
		Status:    string(m.Status),
		ClosedAt:  m.ClosedAt,
		CreatedAt: m.CreatedAt,
	}
}

func toDiscussionModel(e *DiscussionEntity) *model.Discussion {
	if e == nil {
		return nil
	}
	return &model.Discussion{
		ID:        e.ID,
		SocietyID: e.SocietyID,
		UserID:    e.UserID,
		Title:     e.Title,
		Body:      e.Body,
		Status:    model.DiscussionStatus(e.Status),
		ClosedAt:  e.ClosedAt,
		CreatedAt: e.CreatedAt,
	}
}

func toDiscussionModels(entities []*DiscussionEntity) []*model.Discussion {
	if entities == nil {
		return nil
	}
	models := make([]*model.Discussion, len(entities))
	for i, e := range entities {
		models[i] = toDiscussionModel(e)
	}
	return models
}

func toCommentEntity(m *model.DiscussionComment) *DiscussionCommentEntity {
	if m == nil {
		return nil
	}
	return &DiscussionCommentEntity{
		ID:           m.ID,
		DiscussionID: m.DiscussionID,
		UserID:       m.UserID,
		Content:      m.Content,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toCommentModel(e *DiscussionCommentEntity) *model.DiscussionComment {
	if e == nil {
		return nil
	}
	return &model.DiscussionComment{
		ID:           e.ID,
		DiscussionID: e.DiscussionID,
		UserID:       e.UserID,
		Content:      e.Content,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toCommentModels(entities []*DiscussionCommentEntity) []*model.DiscussionComment {
	if entities == nil {
		return nil
	}
	models := make([]*model.DiscussionComment, len(entities))
	for i, e := range entities {
		models[i] = toCommentModel(e)
	}
	return models
}
