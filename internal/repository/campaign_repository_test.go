package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCampaignRepository(db)
	ctx := context.Background()

	t.Run("create campaign successfully", func(t *testing.T) {
		c := &model.Campaign{
			Name:        "Masjid Extension",
			Description: "New prayer hall",
			Goal:        500000,
			Active:      true,
		}

		created, err := repo.Create(ctx, c)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, c.Name, created.Name)
		assert.Zero(t, created.Raised)
		assert.NotZero(t, created.CreatedAt)
	})

	t.Run("raised is never caller supplied", func(t *testing.T) {
		c := &model.Campaign{
			Name:   "Water Project",
			Goal:   100000,
			Raised: 99999,
			Active: true,
		}

		created, err := repo.Create(ctx, c)
		require.NoError(t, err)
		assert.Zero(t, created.Raised)
	})
}

func TestCampaignRepository_AddRaised(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCampaignRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Campaign{Name: "Zakat Fund", Goal: 100000, Active: true})
	require.NoError(t, err)

	t.Run("single increment", func(t *testing.T) {
		err := repo.AddRaised(ctx, created.ID, 2500)
		require.NoError(t, err)

		raised, err := repo.GetRaised(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 2500.0, raised)
	})

	t.Run("increments accumulate without loss", func(t *testing.T) {
		before, err := repo.GetRaised(ctx, created.ID)
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			require.NoError(t, repo.AddRaised(ctx, created.ID, 100))
		}

		after, err := repo.GetRaised(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, before+1000, after)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		err := repo.AddRaised(ctx, 9999, 100)
		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})
}

func TestCampaignRepository_ConcurrentAddRaised(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCampaignRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Campaign{Name: "Ramadan Drive", Goal: 100000, Active: true})
	require.NoError(t, err)

	concurrency := 10
	amountPerDonation := 100.0
	var wg sync.WaitGroup
	errs := make(chan error, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.AddRaised(ctx, created.ID, amountPerDonation); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent AddRaised failed: %v", err)
	}

	// Every completion must land; a lost update would leave raised short.
	raised, err := repo.GetRaised(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(concurrency)*amountPerDonation, raised)
}

func TestCampaignRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCampaignRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Campaign{Name: "Active One", Goal: 1000, Active: true})
	require.NoError(t, err)
	inactive, err := repo.Create(ctx, &model.Campaign{Name: "Old One", Goal: 1000, Active: true})
	require.NoError(t, err)
	require.NoError(t, repo.SetActive(ctx, inactive.ID, false))

	t.Run("list active only", func(t *testing.T) {
		active := true
		campaigns, total, err := repo.List(ctx, model.CampaignFilter{Active: &active})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, campaigns, 1)
		assert.Equal(t, "Active One", campaigns[0].Name)
	})

	t.Run("list all", func(t *testing.T) {
		_, total, err := repo.List(ctx, model.CampaignFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}
