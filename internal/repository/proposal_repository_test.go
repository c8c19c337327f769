package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSociety(t *testing.T, db *testDB) *model.Society {
	t.Helper()
	repo := NewSocietyRepository(db.DB)
	s, err := repo.Upsert(context.Background(), &model.Society{
		Name:                "Al Noor Housing",
		MonthlyContribution: 2000,
		TotalBlocks:         2,
		TotalFlats:          40,
	})
	require.NoError(t, err)
	return s
}

func seedUser(t *testing.T, db *testDB, username string) *model.User {
	t.Helper()
	repo := NewUserRepository(db.DB)
	u, err := repo.Create(context.Background(), &model.User{
		Username:     username,
		PasswordHash: "hash",
		Email:        username + "@example.com",
		Role:         model.RoleUser,
	})
	require.NoError(t, err)
	return u
}

func TestProposalRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProposalRepository(db.DB)
	ctx := context.Background()
	society := seedSociety(t, db)

	newDraft := func(t *testing.T) *model.Proposal {
		p, err := repo.Create(ctx, &model.Proposal{
			SocietyID: society.ID,
			Title:     "Install solar panels",
			Status:    model.ProposalStatusDraft,
		})
		require.NoError(t, err)
		return p
	}

	t.Run("create draft", func(t *testing.T) {
		p := newDraft(t)
		assert.NotZero(t, p.ID)
		assert.Equal(t, model.ProposalStatusDraft, p.Status)
	})

	t.Run("unknown society rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Proposal{
			SocietyID: 9999,
			Title:     "x",
			Status:    model.ProposalStatusDraft,
		})
		assert.ErrorIs(t, err, ErrSocietyNotFound)
	})

	t.Run("draft cannot jump to implemented", func(t *testing.T) {
		p := newDraft(t)
		err := repo.UpdateStatus(ctx, p.ID, model.ProposalStatusDraft, model.ProposalStatusImplemented)
		assert.ErrorIs(t, err, ErrStatusTransition)
	})

	t.Run("full ordered lifecycle", func(t *testing.T) {
		p := newDraft(t)
		now := time.Now()
		require.NoError(t, repo.OpenVoting(ctx, p.ID, now, now.Add(72*time.Hour)))
		require.NoError(t, repo.UpdateStatus(ctx, p.ID, model.ProposalStatusVoting, model.ProposalStatusApproved))
		require.NoError(t, repo.UpdateStatus(ctx, p.ID, model.ProposalStatusApproved, model.ProposalStatusImplemented))

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ProposalStatusImplemented, got.Status)
		assert.NotNil(t, got.VotingStartsAt)
		assert.NotNil(t, got.VotingEndsAt)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		p := newDraft(t)
		now := time.Now()
		require.NoError(t, repo.OpenVoting(ctx, p.ID, now, now.Add(time.Hour)))
		require.NoError(t, repo.UpdateStatus(ctx, p.ID, model.ProposalStatusVoting, model.ProposalStatusRejected))

		err := repo.UpdateStatus(ctx, p.ID, model.ProposalStatusRejected, model.ProposalStatusImplemented)
		assert.ErrorIs(t, err, ErrStatusTransition)
	})
}

func TestProposalRepository_Votes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProposalRepository(db.DB)
	ctx := context.Background()
	society := seedSociety(t, db)

	proposal, err := repo.Create(ctx, &model.Proposal{
		SocietyID: society.ID,
		Title:     "Hire a gardener",
		Status:    model.ProposalStatusDraft,
	})
	require.NoError(t, err)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	t.Run("one vote per user", func(t *testing.T) {
		_, err := repo.CreateVote(ctx, &model.Vote{ProposalID: proposal.ID, UserID: alice.ID, Type: model.VoteYes})
		require.NoError(t, err)

		_, err = repo.CreateVote(ctx, &model.Vote{ProposalID: proposal.ID, UserID: alice.ID, Type: model.VoteNo})
		assert.ErrorIs(t, err, ErrAlreadyVoted)
	})

	t.Run("vote requires existing user", func(t *testing.T) {
		_, err := repo.CreateVote(ctx, &model.Vote{ProposalID: proposal.ID, UserID: 9999, Type: model.VoteYes})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("tally", func(t *testing.T) {
		_, err := repo.CreateVote(ctx, &model.Vote{ProposalID: proposal.ID, UserID: bob.ID, Type: model.VoteNo})
		require.NoError(t, err)

		tally, err := repo.Tally(ctx, proposal.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), tally.Yes)
		assert.Equal(t, int64(1), tally.No)
		assert.Equal(t, int64(0), tally.Abstain)
	})
}
