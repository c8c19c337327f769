package services

import (
	"context"
	"errors"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/repository"
)

type CampaignRepository interface {
	Create(ctx context.Context, c *model.Campaign) (*model.Campaign, error)
	GetByID(ctx context.Context, id int64) (*model.Campaign, error)
	List(ctx context.Context, f model.CampaignFilter) ([]*model.Campaign, int64, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type CampaignService struct {
	repo CampaignRepository
}

func NewCampaignService(repo CampaignRepository) *CampaignService {
	return &CampaignService{repo: repo}
}

func (s *CampaignService) Create(ctx context.Context, p model.CampaignCreateRequest) (*model.Campaign, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c := &model.Campaign{
		Name:        p.Name,
		Description: p.Description,
		Goal:        p.Goal,
		Active:      true,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
	}
	return s.repo.Create(ctx, c)
}

func (s *CampaignService) Get(ctx context.Context, id int64) (*model.Campaign, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCampaignNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *CampaignService) List(ctx context.Context, f model.CampaignFilter) ([]*model.Campaign, int64, error) {
	return s.repo.List(ctx, f)
}

// SetActive opens or closes a campaign for new donations. Closing never
// touches donations already in flight.
func (s *CampaignService) SetActive(ctx context.Context, id int64, active bool) error {
	err := s.repo.SetActive(ctx, id, active)
	if errors.Is(err, repository.ErrCampaignNotFound) {
		return ErrNotFound
	}
	return err
}

// Progress reports how far a campaign is toward its goal, as a fraction of
// the goal. Completion can exceed 1 when donors keep giving past the target.
func (s *CampaignService) Progress(ctx context.Context, id int64) (*model.Campaign, float64, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	fraction := 0.0
	if c.Goal > 0 {
		fraction = c.Raised / c.Goal
	}
	return c, fraction, nil
}
