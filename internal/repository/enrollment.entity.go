package repository

import (
	"time"

	"github.com/alnoor/community-platform/internal/model"
)

type EnrollmentEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Course       string    `db:"course"        gorm:"column:course;not null"`
	StudentName  string    `db:"student_name"  gorm:"column:student_name;not null"`
	GuardianName string    `db:"guardian_name" gorm:"column:guardian_name"`
	Age          int       `db:"age"           gorm:"column:age;not null"`
	Email        string    `db:"email"         gorm:"column:email;not null"`
	Phone        string    `db:"phone"         gorm:"column:phone"`
	Status       string    `db:"status"        gorm:"column:status;not null;default:pending;index"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `db:"updated_at"    gorm:"column:updated_at;autoUpdateTime"`
}

func (EnrollmentEntity) TableName() string { return "enrollments" }

func toEnrollmentEntity(m *model.Enrollment) *EnrollmentEntity {
	if m == nil {
		return nil
	}
	return &EnrollmentEntity{
		ID:           m.ID,
		Course:       m.Course,
		StudentName:  m.StudentName,
		GuardianName: m.GuardianName,
		Age:          m.Age,
		Email:        m.Email,
		Phone:        m.Phone,
		Status:       string(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toEnrollmentModel(e *EnrollmentEntity) *model.Enrollment {
	if e == nil {
		return nil
	}
	return &model.Enrollment{
		ID:           e.ID,
		Course:       e.Course,
		StudentName:  e.StudentName,
		GuardianName: e.GuardianName,
		Age:          e.Age,
		Email:        e.Email,
		Phone:        e.Phone,
		Status:       model.EnrollmentStatus(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toEnrollmentModels(entities []*EnrollmentEntity) []*model.Enrollment {
	if entities == nil {
		return nil
	}
	models := make([]*model.Enrollment, len(entities))
	for i, e := range entities {
		models[i] = toEnrollmentModel(e)
	}
	return models
}
