package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/repository"
)

var (
	ErrNotFound         = errors.New("error notfound")
	ErrCampaignInactive = errors.New("campaign is not accepting donations")
	ErrAlreadySettled   = errors.New("donation has already been settled")
)

type DonationRepository interface {
	Create(ctx context.Context, d *model.Donation) (*model.Donation, error)
	GetByID(ctx context.Context, id int64) (*model.Donation, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.DonationStatus) error
	List(ctx context.Context, f model.DonationFilter) ([]*model.Donation, int64, error) // results, totalCount
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CampaignReader interface {
	GetByID(ctx context.Context, id int64) (*model.Campaign, error)
	AddRaised(ctx context.Context, campaignID int64, amount float64) error
}

type Publisher interface {
	PublishJSON(ctx context.Context, data interface{}, metadata map[string]string) (string, error)
}

type DonationService struct {
	donationRepo DonationRepository
	campaignRepo CampaignReader
	queue        Publisher
}

func NewDonationService(donationRepo DonationRepository, campaignRepo CampaignReader, q Publisher) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		queue:        q,
	}
}

// Create records a pending donation. When the donation targets a campaign the
// campaign must exist and be active; the raised counter is only touched later,
// when the payment provider confirms the money actually moved.
func (s *DonationService) Create(ctx context.Context, p model.DonationCreateRequest) (*model.Donation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.CampaignID != nil {
		c, err := s.campaignRepo.GetByID(ctx, *p.CampaignID)
		if err != nil {
			if errors.Is(err, repository.ErrCampaignNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("load campaign: %w", err)
		}
		if !c.Active {
			return nil, ErrCampaignInactive
		}
	}

	d := &model.Donation{
		CampaignID:    p.CampaignID,
		Amount:        p.Amount,
		Type:          p.Type,
		Category:      p.Category,
		DonorName:     p.DonorName,
		DonorEmail:    p.DonorEmail,
		Message:       p.Message,
		Anonymous:     p.Anonymous,
		Method:        p.Method,
		TransactionID: p.TransactionID,
		ProofURL:      p.ProofURL,
		CryptoAddress: p.CryptoAddress,
		Status:        model.DonationStatusPending,
	}

	return s.donationRepo.Create(ctx, d)
}

// Confirm settles a pending donation and, when it targets a campaign, adds the
// amount to the campaign total. Both writes happen in one transaction so the
// raised counter never drifts from the set of completed donations.
func (s *DonationService) Confirm(ctx context.Context, donationID int64) (*model.Donation, error) {
	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, repository.ErrDonationNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err = s.donationRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.donationRepo.UpdateStatus(ctx, d.ID, model.DonationStatusPending, model.DonationStatusCompleted); err != nil {
			if errors.Is(err, repository.ErrStatusTransition) {
				return ErrAlreadySettled
			}
			return fmt.Errorf("complete donation: %w", err)
		}

		if d.CampaignID != nil {
			if err := s.campaignRepo.AddRaised(ctx, *d.CampaignID, d.Amount); err != nil {
				return fmt.Errorf("add to campaign total: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.Status = model.DonationStatusCompleted
	return d, nil
}

// Fail marks a pending donation as failed. The campaign total is untouched.
func (s *DonationService) Fail(ctx context.Context, donationID int64) error {
	err := s.donationRepo.UpdateStatus(ctx, donationID, model.DonationStatusPending, model.DonationStatusFailed)
	if errors.Is(err, repository.ErrDonationNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repository.ErrStatusTransition) {
		return ErrAlreadySettled
	}
	return err
}

func (s *DonationService) Get(ctx context.Context, id int64) (*model.Donation, error) {
	d, err := s.donationRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrDonationNotFound) {
		return nil, ErrNotFound
	}
	return d, err
}

func (s *DonationService) List(ctx context.Context, f model.DonationFilter) ([]*model.Donation, int64, error) {
	return s.donationRepo.List(ctx, f)
}

// EnqueueConfirmation publishes a provider confirmation for asynchronous
// settlement by the processor.
func (s *DonationService) EnqueueConfirmation(ctx context.Context, conf model.PaymentConfirmation) (string, error) {
	if conf.DonationID == 0 {
		return "", errors.New("donation id is required")
	}
	if conf.Reference == "" {
		return "", errors.New("provider reference is required")
	}
	return s.queue.PublishJSON(ctx, conf, map[string]string{
		"reference": conf.Reference,
	})
}
