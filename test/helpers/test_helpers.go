package helpers

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/alnoor/community-platform/internal/repository"
	"github.com/alnoor/community-platform/pkg/pg"
	"github.com/alnoor/community-platform/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.UserEntity{},
		&repository.CampaignEntity{},
		&repository.DonationEntity{},
		&repository.EnrollmentEntity{},
		&repository.MessageEntity{},
		&repository.SocietyEntity{},
		&repository.SocietyBlockEntity{},
		&repository.SocietyMemberEntity{},
		&repository.DiscussionEntity{},
		&repository.DiscussionCommentEntity{},
		&repository.ProposalEntity{},
		&repository.VoteEntity{},
		&repository.SocietyExpenseEntity{},
		&repository.SocietyContributionEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return pgDB
}

func SetupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	adapter, err := redis.NewRedisAdapter("test", "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, adapter
}

func CreateTestCampaign(t *testing.T, db *pg.DB, name string, goal float64, active bool) *repository.CampaignEntity {
	ctx := context.Background()
	campaign := &repository.CampaignEntity{
		Name:   name,
		Goal:   goal,
		Active: active,
	}
	err := db.Write(ctx).Create(campaign).Error
	require.NoError(t, err)
	return campaign
}

func CreateTestDonation(t *testing.T, db *pg.DB, campaignID *int64, amount float64) *repository.DonationEntity {
	ctx := context.Background()
	donation := &repository.DonationEntity{
		CampaignID:    campaignID,
		Amount:        amount,
		Type:          "one_time",
		DonorName:     "Test Donor",
		DonorEmail:    "donor@example.com",
		Method:        "easypaisa",
		TransactionID: RandomReference(),
		Status:        "pending",
		CreatedAt:     time.Now(),
	}
	err := db.Write(ctx).Create(donation).Error
	require.NoError(t, err)
	return donation
}

func CreateTestUser(t *testing.T, db *pg.DB, username string) *repository.UserEntity {
	ctx := context.Background()
	user := &repository.UserEntity{
		Username:     username,
		PasswordHash: "x",
		Email:        username + "@example.com",
		Role:         "user",
	}
	err := db.Write(ctx).Create(user).Error
	require.NoError(t, err)
	return user
}

func CreateTestSociety(t *testing.T, db *pg.DB, name string, monthly float64) *repository.SocietyEntity {
	ctx := context.Background()
	society := &repository.SocietyEntity{
		Name:                name,
		MonthlyContribution: monthly,
	}
	err := db.Write(ctx).Create(society).Error
	require.NoError(t, err)
	return society
}

func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func AssertEventually(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	if !WaitForCondition(t, timeout, condition) {
		t.Fatal(msg)
	}
}

func ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func RandomReference() string {
	return "txn-" + time.Now().Format("20060102150405.000000000")
}

func Ptr[T any](v T) *T {
	return &v
}
