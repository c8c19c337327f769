package repository

import (
	"context"
	"testing"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocietyRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSocietyRepository(db.DB)
	ctx := context.Background()

	t.Run("first write creates", func(t *testing.T) {
		s, err := repo.Upsert(ctx, &model.Society{Name: "Al Noor Housing", MonthlyContribution: 2000})
		require.NoError(t, err)
		assert.NotZero(t, s.ID)
	})

	t.Run("second write updates the same row", func(t *testing.T) {
		first, err := repo.Get(ctx)
		require.NoError(t, err)

		updated, err := repo.Upsert(ctx, &model.Society{Name: "Al Noor Housing Society", MonthlyContribution: 2500})
		require.NoError(t, err)
		assert.Equal(t, first.ID, updated.ID)
		assert.Equal(t, 2500.0, updated.MonthlyContribution)
	})
}

func TestSocietyRepository_Blocks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSocietyRepository(db.DB)
	ctx := context.Background()
	society := seedSociety(t, db)

	t.Run("create block", func(t *testing.T) {
		b, err := repo.CreateBlock(ctx, &model.SocietyBlock{SocietyID: society.ID, Name: "Block A", FlatCount: 24})
		require.NoError(t, err)
		assert.NotZero(t, b.ID)
	})

	t.Run("block requires existing society", func(t *testing.T) {
		_, err := repo.CreateBlock(ctx, &model.SocietyBlock{SocietyID: 9999, Name: "Block X", FlatCount: 8})
		assert.ErrorIs(t, err, ErrSocietyNotFound)
	})

	t.Run("sum of block flats", func(t *testing.T) {
		_, err := repo.CreateBlock(ctx, &model.SocietyBlock{SocietyID: society.ID, Name: "Block B", FlatCount: 16})
		require.NoError(t, err)

		sum, err := repo.SumBlockFlats(ctx, society.ID)
		require.NoError(t, err)
		assert.Equal(t, 40, sum)
	})
}

func TestSocietyRepository_Members(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSocietyRepository(db.DB)
	ctx := context.Background()
	society := seedSociety(t, db)
	user := seedUser(t, db, "resident1")

	block, err := repo.CreateBlock(ctx, &model.SocietyBlock{SocietyID: society.ID, Name: "Block A", FlatCount: 24})
	require.NoError(t, err)

	t.Run("create member", func(t *testing.T) {
		m, err := repo.CreateMember(ctx, &model.SocietyMember{
			UserID:     user.ID,
			BlockID:    block.ID,
			FlatNumber: "A-12",
			IsOwner:    true,
			Role:       "member",
			Status:     model.MemberStatusActive,
		})
		require.NoError(t, err)
		assert.NotZero(t, m.ID)
	})

	t.Run("member requires existing user", func(t *testing.T) {
		_, err := repo.CreateMember(ctx, &model.SocietyMember{
			UserID: 9999, BlockID: block.ID, FlatNumber: "A-1",
			Role: "member", Status: model.MemberStatusActive,
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("member requires existing block", func(t *testing.T) {
		_, err := repo.CreateMember(ctx, &model.SocietyMember{
			UserID: user.ID, BlockID: 9999, FlatNumber: "A-1",
			Role: "member", Status: model.MemberStatusActive,
		})
		assert.ErrorIs(t, err, ErrBlockNotFound)
	})

	t.Run("deactivate member", func(t *testing.T) {
		members, err := repo.ListMembers(ctx, &block.ID)
		require.NoError(t, err)
		require.NotEmpty(t, members)

		require.NoError(t, repo.SetMemberStatus(ctx, members[0].ID, model.MemberStatusInactive))

		got, err := repo.GetMember(ctx, members[0].ID)
		require.NoError(t, err)
		assert.Equal(t, model.MemberStatusInactive, got.Status)
	})
}
