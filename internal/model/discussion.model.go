package model

import (
	"errors"
	"strings"
	"time"
)

type DiscussionStatus string

const (
	DiscussionStatusOpen     DiscussionStatus = "open"
	DiscussionStatusClosed   DiscussionStatus = "closed"
	DiscussionStatusResolved DiscussionStatus = "resolved"
)

// CanTransition reports whether a discussion may move from s to next.
// Closed and resolved are terminal.
func (s DiscussionStatus) CanTransition(next DiscussionStatus) bool {
	if s != DiscussionStatusOpen {
		return false
	}
	return next == DiscussionStatusClosed || next == DiscussionStatusResolved
}

type Discussion struct {
	ID        int64            `json:"id"         db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	SocietyID int64            `json:"society_id" db:"society_id" gorm:"column:society_id;not null;index"`
	Society   *Society         `json:"-"                          gorm:"foreignKey:SocietyID;references:ID;constraint:OnDelete:CASCADE"`
	UserID    int64            `json:"user_id"    db:"user_id"    gorm:"column:user_id;not null;index"`
	User      *User            `json:"-"                          gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Title     string           `json:"title"      db:"title"      gorm:"column:title;not null"`
	Body      string           `json:"body"       db:"body"       gorm:"column:body"`
	Status    DiscussionStatus `json:"status"     db:"status"     gorm:"column:status;not null;default:open;index"`
	ClosedAt  *time.Time       `json:"closed_at"  db:"closed_at"  gorm:"column:closed_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Discussion) TableName() string { return "discussions" }

type DiscussionComment struct {
	ID           int64       `json:"id"            db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	DiscussionID int64       `json:"discussion_id" db:"discussion_id" gorm:"column:discussion_id;not null;index"`
	Discussion   *Discussion `json:"-"                                gorm:"foreignKey:DiscussionID;references:ID;constraint:OnDelete:CASCADE"`
	UserID       int64       `json:"user_id"       db:"user_id"       gorm:"column:user_id;not null;index"`
	User         *User       `json:"-"                                gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Content      string      `json:"content"       db:"content"       gorm:"column:content;not null"`
	CreatedAt    time.Time   `json:"created_at"    db:"created_at"    gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `json:"updated_at"    db:"updated_at"    gorm:"column:updated_at;autoUpdateTime"`
}

func (DiscussionComment) TableName() string { return "discussion_comments" }

type DiscussionCreateRequest struct {
	SocietyID int64
	UserID    int64
	Title     string
	Body      string
}

func (p DiscussionCreateRequest) Validate() error {
	if p.SocietyID == 0 {
		return errors.New("society_id is required")
	}
	if p.UserID == 0 {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

type CommentCreateRequest struct {
	DiscussionID int64
	UserID       int64
	Content      string
}

func (p CommentCreateRequest) Validate() error {
	if p.DiscussionID == 0 {
		return errors.New("discussion_id is required")
	}
	if p.UserID == 0 {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(p.Content) == "" {
		return errors.New("content is required")
	}
	return nil
}
