package model

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64     `json:"id"           db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `json:"username"     db:"username"      gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `json:"-"            db:"password_hash" gorm:"column:password_hash;not null"`
	Email        string    `json:"email"        db:"email"         gorm:"column:email;not null"`
	DisplayName  string    `json:"display_name" db:"display_name"  gorm:"column:display_name"`
	Role         string    `json:"role"         db:"role"          gorm:"column:role;not null;default:user"`
	CreatedAt    time.Time `json:"created_at"   db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "users" }

type UserRegisterRequest struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
}

func (p UserRegisterRequest) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return errors.New("username is required")
	}
	if len(p.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if strings.TrimSpace(p.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}
