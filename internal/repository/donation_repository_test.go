package repository

import (
	"context"
	"testing"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonationRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewDonationRepository(db)
	ctx := context.Background()

	t.Run("create donation successfully", func(t *testing.T) {
		d := &model.Donation{
			Amount:        1500,
			Type:          model.DonationTypeZakat,
			DonorName:     "Ahmed Khan",
			DonorEmail:    "ahmed@example.com",
			Method:        model.PaymentEasypaisa,
			TransactionID: "EP-12345",
			Status:        model.DonationStatusPending,
		}

		created, err := repo.Create(ctx, d)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, model.DonationStatusPending, created.Status)
		assert.NotZero(t, created.CreatedAt)
	})
}

func TestDonationRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewDonationRepository(db)
	ctx := context.Background()

	newPending := func(t *testing.T) *model.Donation {
		d, err := repo.Create(ctx, &model.Donation{
			Amount: 100, Type: model.DonationTypeOneTime,
			DonorName: "x", DonorEmail: "x@y.z",
			Method: model.PaymentJazzcash, TransactionID: "JC-1",
			Status: model.DonationStatusPending,
		})
		require.NoError(t, err)
		return d
	}

	t.Run("pending to completed", func(t *testing.T) {
		d := newPending(t)
		err := repo.UpdateStatus(ctx, d.ID, model.DonationStatusPending, model.DonationStatusCompleted)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, model.DonationStatusCompleted, got.Status)
	})

	t.Run("pending to failed", func(t *testing.T) {
		d := newPending(t)
		err := repo.UpdateStatus(ctx, d.ID, model.DonationStatusPending, model.DonationStatusFailed)
		require.NoError(t, err)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		d := newPending(t)
		require.NoError(t, repo.UpdateStatus(ctx, d.ID, model.DonationStatusPending, model.DonationStatusCompleted))

		err := repo.UpdateStatus(ctx, d.ID, model.DonationStatusCompleted, model.DonationStatusFailed)
		assert.ErrorIs(t, err, ErrStatusTransition)
	})

	t.Run("double completion fails", func(t *testing.T) {
		d := newPending(t)
		require.NoError(t, repo.UpdateStatus(ctx, d.ID, model.DonationStatusPending, model.DonationStatusCompleted))

		err := repo.UpdateStatus(ctx, d.ID, model.DonationStatusPending, model.DonationStatusCompleted)
		assert.ErrorIs(t, err, ErrStatusTransition)
	})

	t.Run("unknown donation", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, 9999, model.DonationStatusPending, model.DonationStatusCompleted)
		assert.ErrorIs(t, err, ErrDonationNotFound)
	})
}

func TestDonationRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewDonationRepository(db)
	campaignRepo := NewCampaignRepository(db)
	ctx := context.Background()

	campaign, err := campaignRepo.Create(ctx, &model.Campaign{Name: "Ramadan Drive", Goal: 50000, Active: true})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := repo.Create(ctx, &model.Donation{
			CampaignID: &campaign.ID,
			Amount:     250,
			Type:       model.DonationTypeSadaqah,
			DonorName:  "donor", DonorEmail: "d@e.f",
			Method: model.PaymentNayapay, TransactionID: "NP-1",
			Status: model.DonationStatusPending,
		})
		require.NoError(t, err)
	}

	t.Run("filter by campaign", func(t *testing.T) {
		items, total, err := repo.List(ctx, model.DonationFilter{CampaignID: &campaign.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, items, 4)
	})

	t.Run("filter by status", func(t *testing.T) {
		items, total, err := repo.List(ctx, model.DonationFilter{
			Statuses: []model.DonationStatus{model.DonationStatusCompleted},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Len(t, items, 0)
	})

	t.Run("pagination", func(t *testing.T) {
		items, total, err := repo.List(ctx, model.DonationFilter{
			CampaignID: &campaign.ID,
			Limit:      2,
			Offset:     3,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, items, 1)
	})
}
