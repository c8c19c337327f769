package services

import (
	"context"
	"errors"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/repository"
)

var ErrAlreadyDecided = errors.New("enrollment has already been decided")

type EnrollmentRepository interface {
	Create(ctx context.Context, e *model.Enrollment) (*model.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*model.Enrollment, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.EnrollmentStatus) error
	List(ctx context.Context, f model.EnrollmentFilter) ([]*model.Enrollment, int64, error)
}

type EnrollmentService struct {
	repo EnrollmentRepository
}

func NewEnrollmentService(repo EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{repo: repo}
}

func (s *EnrollmentService) Apply(ctx context.Context, p model.EnrollmentCreateRequest) (*model.Enrollment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e := &model.Enrollment{
		Course:       p.Course,
		StudentName:  p.StudentName,
		GuardianName: p.GuardianName,
		Age:          p.Age,
		Email:        p.Email,
		Phone:        p.Phone,
		Status:       model.EnrollmentStatusPending,
	}
	return s.repo.Create(ctx, e)
}

// Decide approves or rejects a pending application. The decision is final.
func (s *EnrollmentService) Decide(ctx context.Context, id int64, approve bool) error {
	to := model.EnrollmentStatusRejected
	if approve {
		to = model.EnrollmentStatusApproved
	}
	err := s.repo.UpdateStatus(ctx, id, model.EnrollmentStatusPending, to)
	if errors.Is(err, repository.ErrEnrollmentNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repository.ErrStatusTransition) {
		return ErrAlreadyDecided
	}
	return err
}

func (s *EnrollmentService) Get(ctx context.Context, id int64) (*model.Enrollment, error) {
	e, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrEnrollmentNotFound) {
		return nil, ErrNotFound
	}
	return e, err
}

func (s *EnrollmentService) List(ctx context.Context, f model.EnrollmentFilter) ([]*model.Enrollment, int64, error) {
	return s.repo.List(ctx, f)
}
