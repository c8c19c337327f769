package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/alnoor/community-platform/internal/handlers"
	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/processor"
	"github.com/alnoor/community-platform/internal/queue"
	"github.com/alnoor/community-platform/internal/repository"
	"github.com/alnoor/community-platform/internal/services"
	"github.com/alnoor/community-platform/pkg/pg"
	"github.com/alnoor/community-platform/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testDB = pg.DB

type TestEnvironment struct {
	DB              *pg.DB
	Redis           *miniredis.Miniredis
	RedisAdapter    redis.RedisAdapter
	Queue           *queue.Queue
	DonationRepo    *repository.DonationRepository
	CampaignRepo    *repository.CampaignRepository
	DonationService *services.DonationService
	DonationHandler *handlers.DonationHandler
	Processor       *processor.PaymentProcessor
}

func setupE2EEnvironment(t *testing.T) *TestEnvironment {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.CampaignEntity{},
		&repository.DonationEntity{},
	)
	require.NoError(t, err)

	pgDB := &testDB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Use unique connection name per test to avoid global adapter caching issues
	connName := fmt.Sprintf("test-%d", time.Now().UnixNano())
	redisAdapter, err := redis.NewRedisAdapter(connName, "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	queueConfig := queue.QueueConfig{
		Name:              "test:confirmations",
		ConsumerGroup:     "test-group",
		ConsumerName:      "test-consumer",
		MaxRetries:        3,
		VisibilityTimeout: 5 * time.Second,
		PollInterval:      100 * time.Millisecond,
		BatchSize:         10,
		MaxLen:            1000,
		EnableDLQ:         true,
	}

	q, err := queue.NewQueue(redisAdapter, queueConfig)
	require.NoError(t, err)

	donationRepo := repository.NewDonationRepository(pgDB)
	campaignRepo := repository.NewCampaignRepository(pgDB)

	donationService := services.NewDonationService(donationRepo, campaignRepo, q)
	donationHandler := handlers.NewDonationHandler(donationService)

	idempotency := processor.NewIdempotencyService(redisAdapter, processor.DefaultIdempotencyConfig())
	paymentProcessor := processor.NewPaymentProcessor(donationService, idempotency)

	return &TestEnvironment{
		DB:              pgDB,
		Redis:           mr,
		RedisAdapter:    redisAdapter,
		Queue:           q,
		DonationRepo:    donationRepo,
		CampaignRepo:    campaignRepo,
		DonationService: donationService,
		DonationHandler: donationHandler,
		Processor:       paymentProcessor,
	}
}

func (env *TestEnvironment) Cleanup() {
	// Stop queue first (gracefully drain messages)
	if env.Queue != nil {
		_ = env.Queue.Stop(5 * time.Second)
	}
	// Give time for any in-flight operations to complete
	time.Sleep(100 * time.Millisecond)
	// Then close Redis
	if env.Redis != nil {
		env.Redis.Close()
	}
}

func (env *TestEnvironment) createCampaign(t *testing.T, name string, goal float64, active bool) *model.Campaign {
	ctx := context.Background()
	campaign, err := env.CampaignRepo.Create(ctx, &model.Campaign{
		Name:   name,
		Goal:   goal,
		Active: active,
	})
	require.NoError(t, err)
	return campaign
}

func donationRequest(campaignID *int64, amount float64) model.DonationCreateRequest {
	return model.DonationCreateRequest{
		CampaignID:    campaignID,
		Amount:        amount,
		Type:          model.DonationTypeOneTime,
		DonorName:     "E2E Donor",
		DonorEmail:    "donor@example.com",
		Method:        model.PaymentEasypaisa,
		TransactionID: "EP-E2E-0001",
	}
}

func TestE2E_DonationCreationAndEnqueue(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	campaign := env.createCampaign(t, "Masjid Expansion", 500_000, true)

	donation, err := env.DonationService.Create(ctx, donationRequest(&campaign.ID, 1000))
	require.NoError(t, err)
	assert.NotZero(t, donation.ID)
	assert.Equal(t, model.DonationStatusPending, donation.Status)

	id, err := env.DonationService.EnqueueConfirmation(ctx, model.PaymentConfirmation{
		DonationID: donation.ID,
		Reference:  "PAY-E2E-0001",
		Succeeded:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	stats, err := env.Queue.GetStats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.TotalMessages, int64(1))
}

func TestE2E_InactiveCampaignRejected(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	campaign := env.createCampaign(t, "Winter Drive", 100_000, false)

	donation, err := env.DonationService.Create(ctx, donationRequest(&campaign.ID, 500))
	assert.ErrorIs(t, err, services.ErrCampaignInactive)
	assert.Nil(t, donation)

	var count int64
	env.DB.Read(ctx).Model(&repository.DonationEntity{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestE2E_ConfirmationCompletesDonation(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	campaign := env.createCampaign(t, "Library Fund", 50_000, true)

	donation, err := env.DonationService.Create(ctx, donationRequest(&campaign.ID, 2500))
	require.NoError(t, err)

	conf := model.PaymentConfirmation{
		DonationID: donation.ID,
		Reference:  "PAY-E2E-0002",
		Succeeded:  true,
	}
	data, err := json.Marshal(conf)
	require.NoError(t, err)

	err = env.Processor.Process(ctx, &queue.Message{ID: "1-0", Data: data})
	require.NoError(t, err)

	updated, err := env.DonationRepo.GetByID(ctx, donation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusCompleted, updated.Status)

	raised, err := env.CampaignRepo.GetRaised(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, raised)
}

func TestE2E_FailedConfirmationMarksDonationFailed(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	campaign := env.createCampaign(t, "Well Project", 80_000, true)

	donation, err := env.DonationService.Create(ctx, donationRequest(&campaign.ID, 900))
	require.NoError(t, err)

	conf := model.PaymentConfirmation{
		DonationID: donation.ID,
		Reference:  "PAY-E2E-0003",
		Succeeded:  false,
		Reason:     "insufficient funds",
	}
	data, err := json.Marshal(conf)
	require.NoError(t, err)

	err = env.Processor.Process(ctx, &queue.Message{ID: "1-0", Data: data})
	require.NoError(t, err)

	updated, err := env.DonationRepo.GetByID(ctx, donation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusFailed, updated.Status)

	raised, err := env.CampaignRepo.GetRaised(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, raised)
}

func TestE2E_DuplicateConfirmationAppliedOnce(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	campaign := env.createCampaign(t, "Roof Repair", 30_000, true)

	donation, err := env.DonationService.Create(ctx, donationRequest(&campaign.ID, 1500))
	require.NoError(t, err)

	conf := model.PaymentConfirmation{
		DonationID: donation.ID,
		Reference:  "PAY-E2E-0004",
		Succeeded:  true,
	}
	data, err := json.Marshal(conf)
	require.NoError(t, err)

	err = env.Processor.Process(ctx, &queue.Message{ID: "1-0", Data: data})
	require.NoError(t, err)

	// Redelivery of the same confirmation must be a no-op
	err = env.Processor.Process(ctx, &queue.Message{ID: "1-1", Data: data})
	require.NoError(t, err)

	raised, err := env.CampaignRepo.GetRaised(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, raised)
}

func TestE2E_ConfirmationConsumption(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	campaign := env.createCampaign(t, "Community Hall", 200_000, true)

	donation, err := env.DonationService.Create(ctx, donationRequest(&campaign.ID, 4000))
	require.NoError(t, err)

	_, err = env.DonationService.EnqueueConfirmation(ctx, model.PaymentConfirmation{
		DonationID: donation.ID,
		Reference:  "PAY-E2E-0005",
		Succeeded:  true,
	})
	require.NoError(t, err)

	received := make(chan bool, 1)
	handler := func(ctx context.Context, qMsg *queue.Message) error {
		var conf model.PaymentConfirmation
		err := json.Unmarshal(qMsg.Data, &conf)
		assert.NoError(t, err)
		assert.Equal(t, donation.ID, conf.DonationID)
		assert.Equal(t, "PAY-E2E-0005", conf.Reference)
		received <- true
		return nil
	}

	err = env.Queue.Consume(handler)
	require.NoError(t, err)

	select {
	case <-received:
	case <-time.After(3 * time.Second):
		t.Fatal("confirmation not consumed within timeout")
	}
}

func TestE2E_GeneralDonationSkipsCampaign(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	donation, err := env.DonationService.Create(ctx, donationRequest(nil, 750))
	require.NoError(t, err)

	conf := model.PaymentConfirmation{
		DonationID: donation.ID,
		Reference:  "PAY-E2E-0006",
		Succeeded:  true,
	}
	data, err := json.Marshal(conf)
	require.NoError(t, err)

	err = env.Processor.Process(ctx, &queue.Message{ID: "1-0", Data: data})
	require.NoError(t, err)

	updated, err := env.DonationRepo.GetByID(ctx, donation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusCompleted, updated.Status)
}

func TestE2E_ListDonations(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	campaign := env.createCampaign(t, "Ramadan Iftar", 40_000, true)

	for i := 0; i < 5; i++ {
		req := donationRequest(&campaign.ID, float64(100*(i+1)))
		req.TransactionID = fmt.Sprintf("EP-E2E-%04d", i)
		_, err := env.DonationService.Create(ctx, req)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	}

	filter := model.DonationFilter{
		CampaignID: &campaign.ID,
		Limit:      10,
		Offset:     0,
	}

	donations, total, err := env.DonationService.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, donations, 5)
}
