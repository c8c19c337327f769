package repository

import (
	"time"

	"github.com/alnoor/community-platform/internal/model"
)

type UserEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `db:"username"      gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `db:"password_hash" gorm:"column:password_hash;not null"`
	Email        string    `db:"email"         gorm:"column:email;not null"`
	DisplayName  string    `db:"display_name"  gorm:"column:display_name"`
	Role         string    `db:"role"          gorm:"column:role;not null;default:user"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (UserEntity) TableName() string { return "users" }

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Email:        m.Email,
		DisplayName:  m.DisplayName,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:           e.ID,
		Username:     e.Username,
		PasswordHash: e.PasswordHash,
		Email:        e.Email,
		DisplayName:  e.DisplayName,
		Role:         e.Role,
		CreatedAt:    e.CreatedAt,
	}
}
