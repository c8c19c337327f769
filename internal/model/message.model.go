package model

import (
	"errors"
	"strings"
	"time"
)

type MessageStatus string

const (
	MessageStatusUnread  MessageStatus = "unread"
	MessageStatusRead    MessageStatus = "read"
	MessageStatusReplied MessageStatus = "replied"
)

// CanTransition reports whether a contact message may move from s to next.
// The lifecycle only progresses forward: unread -> read -> replied.
func (s MessageStatus) CanTransition(next MessageStatus) bool {
	switch s {
	case MessageStatusUnread:
		return next == MessageStatusRead || next == MessageStatusReplied
	case MessageStatusRead:
		return next == MessageStatusReplied
	}
	return false
}

// Message is a contact-form submission.
type Message struct {
	ID        int64         `json:"id"         db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string        `json:"name"       db:"name"       gorm:"column:name;not null"`
	Email     string        `json:"email"      db:"email"      gorm:"column:email;not null"`
	Subject   string        `json:"subject"    db:"subject"    gorm:"column:subject;not null"`
	Body      string        `json:"body"       db:"body"       gorm:"column:body;not null"`
	Status    MessageStatus `json:"status"     db:"status"     gorm:"column:status;not null;default:unread;index"`
	CreatedAt time.Time     `json:"created_at" db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Message) TableName() string { return "messages" }

type MessageCreateRequest struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

func (p MessageCreateRequest) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(p.Subject) == "" {
		return errors.New("subject is required")
	}
	if strings.TrimSpace(p.Body) == "" {
		return errors.New("body is required")
	}
	return nil
}

type MessageFilter struct {
	Statuses []MessageStatus
	Limit    int
	Offset   int
	Desc     bool
}
