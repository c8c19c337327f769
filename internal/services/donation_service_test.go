package services

import (
	"context"
	"testing"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Create(ctx context.Context, d *model.Donation) (*model.Donation, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationRepository) GetByID(ctx context.Context, id int64) (*model.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationRepository) UpdateStatus(ctx context.Context, id int64, from, to model.DonationStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockDonationRepository) List(ctx context.Context, f model.DonationFilter) ([]*model.Donation, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Donation), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockCampaignReader struct {
	mock.Mock
}

func (m *MockCampaignReader) GetByID(ctx context.Context, id int64) (*model.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignReader) AddRaised(ctx context.Context, campaignID int64, amount float64) error {
	args := m.Called(ctx, campaignID, amount)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, data interface{}, metadata map[string]string) (string, error) {
	args := m.Called(ctx, data, metadata)
	return args.String(0), args.Error(1)
}

func validDonationRequest() model.DonationCreateRequest {
	return model.DonationCreateRequest{
		Amount:        5000,
		Type:          model.DonationTypeZakat,
		DonorName:     "Ahmed",
		DonorEmail:    "ahmed@example.com",
		Method:        model.PaymentEasypaisa,
		TransactionID: "EP-100200",
	}
}

func TestDonationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request is stored pending", func(t *testing.T) {
		donationRepo := new(MockDonationRepository)
		campaignRepo := new(MockCampaignReader)
		service := NewDonationService(donationRepo, campaignRepo, nil)

		donationRepo.On("Create", ctx, mock.AnythingOfType("*model.Donation")).
			Return(&model.Donation{ID: 1, Status: model.DonationStatusPending}, nil)

		d, err := service.Create(ctx, validDonationRequest())
		require.NoError(t, err)
		assert.Equal(t, model.DonationStatusPending, d.Status)

		created := donationRepo.Calls[0].Arguments.Get(1).(*model.Donation)
		assert.Equal(t, model.DonationStatusPending, created.Status)
		donationRepo.AssertExpectations(t)
	})

	t.Run("wallet payment without reference is rejected", func(t *testing.T) {
		service := NewDonationService(new(MockDonationRepository), new(MockCampaignReader), nil)

		req := validDonationRequest()
		req.TransactionID = ""

		_, err := service.Create(ctx, req)
		assert.Error(t, err)
	})

	t.Run("anonymous donation needs no donor contact", func(t *testing.T) {
		donationRepo := new(MockDonationRepository)
		service := NewDonationService(donationRepo, new(MockCampaignReader), nil)

		req := validDonationRequest()
		req.Anonymous = true
		req.DonorName = ""
		req.DonorEmail = ""

		donationRepo.On("Create", ctx, mock.AnythingOfType("*model.Donation")).
			Return(&model.Donation{ID: 2, Status: model.DonationStatusPending}, nil)

		_, err := service.Create(ctx, req)
		require.NoError(t, err)
	})

	t.Run("inactive campaign rejects donations", func(t *testing.T) {
		campaignRepo := new(MockCampaignReader)
		service := NewDonationService(new(MockDonationRepository), campaignRepo, nil)

		campaignID := int64(7)
		campaignRepo.On("GetByID", ctx, campaignID).
			Return(&model.Campaign{ID: campaignID, Active: false}, nil)

		req := validDonationRequest()
		req.CampaignID = &campaignID

		_, err := service.Create(ctx, req)
		assert.ErrorIs(t, err, ErrCampaignInactive)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		campaignRepo := new(MockCampaignReader)
		service := NewDonationService(new(MockDonationRepository), campaignRepo, nil)

		campaignID := int64(99)
		campaignRepo.On("GetByID", ctx, campaignID).
			Return(nil, repository.ErrCampaignNotFound)

		req := validDonationRequest()
		req.CampaignID = &campaignID

		_, err := service.Create(ctx, req)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDonationService_Confirm(t *testing.T) {
	ctx := context.Background()
	campaignID := int64(7)

	t.Run("completes donation and adds to campaign in one transaction", func(t *testing.T) {
		donationRepo := new(MockDonationRepository)
		campaignRepo := new(MockCampaignReader)
		service := NewDonationService(donationRepo, campaignRepo, nil)

		donationRepo.On("GetByID", ctx, int64(1)).
			Return(&model.Donation{ID: 1, CampaignID: &campaignID, Amount: 5000, Status: model.DonationStatusPending}, nil)
		donationRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(nil)
		donationRepo.On("UpdateStatus", ctx, int64(1), model.DonationStatusPending, model.DonationStatusCompleted).
			Return(nil)
		campaignRepo.On("AddRaised", ctx, campaignID, float64(5000)).
			Return(nil)

		d, err := service.Confirm(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, model.DonationStatusCompleted, d.Status)

		donationRepo.AssertExpectations(t)
		campaignRepo.AssertExpectations(t)
	})

	t.Run("general donation skips campaign total", func(t *testing.T) {
		donationRepo := new(MockDonationRepository)
		campaignRepo := new(MockCampaignReader)
		service := NewDonationService(donationRepo, campaignRepo, nil)

		donationRepo.On("GetByID", ctx, int64(2)).
			Return(&model.Donation{ID: 2, Amount: 1000, Status: model.DonationStatusPending}, nil)
		donationRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(nil)
		donationRepo.On("UpdateStatus", ctx, int64(2), model.DonationStatusPending, model.DonationStatusCompleted).
			Return(nil)

		_, err := service.Confirm(ctx, 2)
		require.NoError(t, err)

		campaignRepo.AssertNotCalled(t, "AddRaised", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second confirmation is rejected", func(t *testing.T) {
		donationRepo := new(MockDonationRepository)
		campaignRepo := new(MockCampaignReader)
		service := NewDonationService(donationRepo, campaignRepo, nil)

		donationRepo.On("GetByID", ctx, int64(3)).
			Return(&model.Donation{ID: 3, Amount: 500, Status: model.DonationStatusCompleted}, nil)
		donationRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(nil)
		donationRepo.On("UpdateStatus", ctx, int64(3), model.DonationStatusPending, model.DonationStatusCompleted).
			Return(repository.ErrStatusTransition)

		_, err := service.Confirm(ctx, 3)
		assert.ErrorIs(t, err, ErrAlreadySettled)

		campaignRepo.AssertNotCalled(t, "AddRaised", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown donation", func(t *testing.T) {
		donationRepo := new(MockDonationRepository)
		service := NewDonationService(donationRepo, new(MockCampaignReader), nil)

		donationRepo.On("GetByID", ctx, int64(404)).
			Return(nil, repository.ErrDonationNotFound)

		_, err := service.Confirm(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDonationService_Fail(t *testing.T) {
	ctx := context.Background()
	donationRepo := new(MockDonationRepository)
	service := NewDonationService(donationRepo, new(MockCampaignReader), nil)

	donationRepo.On("UpdateStatus", ctx, int64(1), model.DonationStatusPending, model.DonationStatusFailed).
		Return(nil)

	require.NoError(t, service.Fail(ctx, 1))
	donationRepo.AssertExpectations(t)
}

func TestDonationService_EnqueueConfirmation(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes with reference metadata", func(t *testing.T) {
		pub := new(MockPublisher)
		service := NewDonationService(new(MockDonationRepository), new(MockCampaignReader), pub)

		conf := model.PaymentConfirmation{DonationID: 1, Reference: "EP-1", Succeeded: true}
		pub.On("PublishJSON", ctx, conf, map[string]string{"reference": "EP-1"}).
			Return("1700000000-0", nil)

		id, err := service.EnqueueConfirmation(ctx, conf)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		pub.AssertExpectations(t)
	})

	t.Run("missing reference", func(t *testing.T) {
		service := NewDonationService(new(MockDonationRepository), new(MockCampaignReader), new(MockPublisher))

		_, err := service.EnqueueConfirmation(ctx, model.PaymentConfirmation{DonationID: 1})
		assert.Error(t, err)
	})
}
