package model

import (
	"errors"
	"strings"
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentStatusPending  EnrollmentStatus = "pending"
	EnrollmentStatusApproved EnrollmentStatus = "approved"
	EnrollmentStatusRejected EnrollmentStatus = "rejected"
)

// CanTransition reports whether an enrollment may move from s to next.
// Approved and rejected are terminal; the decision is made once.
func (s EnrollmentStatus) CanTransition(next EnrollmentStatus) bool {
	if s != EnrollmentStatusPending {
		return false
	}
	return next == EnrollmentStatusApproved || next == EnrollmentStatusRejected
}

type Enrollment struct {
	ID           int64            `json:"id"            db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Course       string           `json:"course"        db:"course"        gorm:"column:course;not null"`
	StudentName  string           `json:"student_name"  db:"student_name"  gorm:"column:student_name;not null"`
	GuardianName string           `json:"guardian_name" db:"guardian_name" gorm:"column:guardian_name"`
	Age          int              `json:"age"           db:"age"           gorm:"column:age;not null"`
	Email        string           `json:"email"         db:"email"         gorm:"column:email;not null"`
	Phone        string           `json:"phone"         db:"phone"         gorm:"column:phone"`
	Status       EnrollmentStatus `json:"status"        db:"status"        gorm:"column:status;not null;default:pending;index"`
	CreatedAt    time.Time        `json:"created_at"    db:"created_at"    gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `json:"updated_at"    db:"updated_at"    gorm:"column:updated_at;autoUpdateTime"`
}

func (Enrollment) TableName() string { return "enrollments" }

type EnrollmentCreateRequest struct {
	Course       string
	StudentName  string
	GuardianName string
	Age          int
	Email        string
	Phone        string
}

func (p EnrollmentCreateRequest) Validate() error {
	if strings.TrimSpace(p.Course) == "" {
		return errors.New("course is required")
	}
	if strings.TrimSpace(p.StudentName) == "" {
		return errors.New("student name is required")
	}
	if p.Age <= 0 {
		return errors.New("age must be positive")
	}
	if strings.TrimSpace(p.Email) == "" && strings.TrimSpace(p.Phone) == "" {
		return errors.New("contact email or phone is required")
	}
	return nil
}

type EnrollmentFilter struct {
	Course   *string
	Statuses []EnrollmentStatus
	Limit    int
	Offset   int
	Desc     bool
}
