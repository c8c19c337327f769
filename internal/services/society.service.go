package services

import (
	"context"
	"errors"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/repository"
)

type SocietyRepository interface {
	Get(ctx context.Context) (*model.Society, error)
	Upsert(ctx context.Context, s *model.Society) (*model.Society, error)
	CreateBlock(ctx context.Context, b *model.SocietyBlock) (*model.SocietyBlock, error)
	ListBlocks(ctx context.Context, societyID int64) ([]*model.SocietyBlock, error)
	SumBlockFlats(ctx context.Context, societyID int64) (int, error)
	CreateMember(ctx context.Context, m *model.SocietyMember) (*model.SocietyMember, error)
	GetMember(ctx context.Context, id int64) (*model.SocietyMember, error)
	ListMembers(ctx context.Context, blockID *int64) ([]*model.SocietyMember, error)
	SetMemberStatus(ctx context.Context, id int64, status model.MemberStatus) error
	SetMemberRole(ctx context.Context, id int64, role string, committee bool) error
}

type SocietyService struct {
	repo SocietyRepository
}

func NewSocietyService(repo SocietyRepository) *SocietyService {
	return &SocietyService{repo: repo}
}

func (s *SocietyService) Get(ctx context.Context) (*model.Society, error) {
	soc, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrSocietyNotFound) {
		return nil, ErrNotFound
	}
	return soc, err
}

// Configure creates or replaces the society record. There is a single society
// per deployment, so repeated calls update the same row.
func (s *SocietyService) Configure(ctx context.Context, p model.SocietyUpdateRequest) (*model.Society, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, &model.Society{
		Name:                p.Name,
		MonthlyContribution: p.MonthlyContribution,
		TotalBlocks:         p.TotalBlocks,
		TotalFlats:          p.TotalFlats,
	})
}

func (s *SocietyService) AddBlock(ctx context.Context, p model.BlockCreateRequest) (*model.SocietyBlock, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b, err := s.repo.CreateBlock(ctx, &model.SocietyBlock{
		SocietyID: p.SocietyID,
		Name:      p.Name,
		FlatCount: p.FlatCount,
	})
	if errors.Is(err, repository.ErrSocietyNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *SocietyService) ListBlocks(ctx context.Context, societyID int64) ([]*model.SocietyBlock, error) {
	return s.repo.ListBlocks(ctx, societyID)
}

// ReconcileFlats compares the configured flat total with the sum of the block
// flat counts. Mismatches are reported, not rejected.
func (s *SocietyService) ReconcileFlats(ctx context.Context) (*model.FlatsReport, error) {
	soc, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	sum, err := s.repo.SumBlockFlats(ctx, soc.ID)
	if err != nil {
		return nil, err
	}
	return &model.FlatsReport{
		SocietyID:  soc.ID,
		TotalFlats: soc.TotalFlats,
		BlockFlats: sum,
		Balanced:   soc.TotalFlats == sum,
	}, nil
}

func (s *SocietyService) AddMember(ctx context.Context, p model.MemberCreateRequest) (*model.SocietyMember, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	role := p.Role
	if role == "" {
		role = "member"
	}
	m, err := s.repo.CreateMember(ctx, &model.SocietyMember{
		UserID:     p.UserID,
		BlockID:    p.BlockID,
		FlatNumber: p.FlatNumber,
		IsOwner:    p.IsOwner,
		Role:       role,
		Status:     model.MemberStatusActive,
	})
	if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrBlockNotFound) {
		return nil, ErrNotFound
	}
	return m, err
}

func (s *SocietyService) GetMember(ctx context.Context, id int64) (*model.SocietyMember, error) {
	m, err := s.repo.GetMember(ctx, id)
	if errors.Is(err, repository.ErrMemberNotFound) {
		return nil, ErrNotFound
	}
	return m, err
}

func (s *SocietyService) ListMembers(ctx context.Context, blockID *int64) ([]*model.SocietyMember, error) {
	return s.repo.ListMembers(ctx, blockID)
}

func (s *SocietyService) SetMemberStatus(ctx context.Context, id int64, status model.MemberStatus) error {
	err := s.repo.SetMemberStatus(ctx, id, status)
	if errors.Is(err, repository.ErrMemberNotFound) {
		return ErrNotFound
	}
	return err
}

// AssignRole updates a member's committee role. Committee membership follows
// from the role being anything other than the plain member role.
func (s *SocietyService) AssignRole(ctx context.Context, id int64, role string) error {
	if role == "" {
		role = "member"
	}
	err := s.repo.SetMemberRole(ctx, id, role, role != "member")
	if errors.Is(err, repository.ErrMemberNotFound) {
		return ErrNotFound
	}
	return err
}
