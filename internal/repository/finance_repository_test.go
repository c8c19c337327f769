package repository

import (
	"context"
	"testing"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMember(t *testing.T, db *testDB, society *model.Society, username string) *model.SocietyMember {
	t.Helper()
	repo := NewSocietyRepository(db.DB)
	ctx := context.Background()

	user := seedUser(t, db, username)
	block, err := repo.CreateBlock(ctx, &model.SocietyBlock{SocietyID: society.ID, Name: "Block-" + username, FlatCount: 10})
	require.NoError(t, err)

	m, err := repo.CreateMember(ctx, &model.SocietyMember{
		UserID: user.ID, BlockID: block.ID, FlatNumber: "1",
		Role: "member", Status: model.MemberStatusActive,
	})
	require.NoError(t, err)
	return m
}

func TestFinanceRepository_Expenses(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFinanceRepository(db.DB)
	ctx := context.Background()
	society := seedSociety(t, db)

	t.Run("create and approve", func(t *testing.T) {
		e, err := repo.CreateExpense(ctx, &model.SocietyExpense{
			SocietyID: society.ID,
			Amount:    12000,
			Category:  "maintenance",
			Status:    model.ExpenseStatusPending,
		})
		require.NoError(t, err)

		approver := int64(1)
		require.NoError(t, repo.UpdateExpenseStatus(ctx, e.ID, model.ExpenseStatusPending, model.ExpenseStatusApproved, &approver))
		require.NoError(t, repo.UpdateExpenseStatus(ctx, e.ID, model.ExpenseStatusApproved, model.ExpenseStatusCompleted, nil))
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		e, err := repo.CreateExpense(ctx, &model.SocietyExpense{
			SocietyID: society.ID,
			Amount:    500,
			Category:  "security",
			Status:    model.ExpenseStatusPending,
		})
		require.NoError(t, err)

		err = repo.UpdateExpenseStatus(ctx, e.ID, model.ExpenseStatusPending, model.ExpenseStatusCompleted, nil)
		assert.ErrorIs(t, err, ErrStatusTransition)
	})

	t.Run("expense requires existing proposal when linked", func(t *testing.T) {
		missing := int64(9999)
		_, err := repo.CreateExpense(ctx, &model.SocietyExpense{
			SocietyID:  society.ID,
			ProposalID: &missing,
			Amount:     500,
			Category:   "repairs",
			Status:     model.ExpenseStatusPending,
		})
		assert.ErrorIs(t, err, ErrProposalNotFound)
	})
}

func TestFinanceRepository_Contributions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFinanceRepository(db.DB)
	ctx := context.Background()
	society := seedSociety(t, db)
	member := seedMember(t, db, society, "payer1")

	t.Run("record monthly dues", func(t *testing.T) {
		c, err := repo.CreateContribution(ctx, &model.SocietyContribution{
			SocietyID: society.ID,
			MemberID:  member.ID,
			Amount:    2000,
			Method:    model.PaymentBankTransfer,
			Month:     3,
			Year:      2025,
			Purpose:   model.ContributionMonthly,
			Status:    model.ContributionStatusPending,
		})
		require.NoError(t, err)
		assert.NotZero(t, c.ID)

		require.NoError(t, repo.UpdateContributionStatus(ctx, c.ID, model.ContributionStatusPending, model.ContributionStatusCompleted))
	})

	t.Run("duplicate monthly dues rejected", func(t *testing.T) {
		_, err := repo.CreateContribution(ctx, &model.SocietyContribution{
			SocietyID: society.ID,
			MemberID:  member.ID,
			Amount:    2000,
			Method:    model.PaymentEasypaisa,
			Month:     3,
			Year:      2025,
			Purpose:   model.ContributionMonthly,
			Status:    model.ContributionStatusPending,
		})
		assert.ErrorIs(t, err, ErrDuplicateDues)
	})

	t.Run("special contribution has no month bucket constraint", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := repo.CreateContribution(ctx, &model.SocietyContribution{
				SocietyID: society.ID,
				MemberID:  member.ID,
				Amount:    500,
				Method:    model.PaymentJazzcash,
				Month:     3,
				Year:      2025,
				Purpose:   model.ContributionSpecial,
				Status:    model.ContributionStatusPending,
			})
			require.NoError(t, err)
		}
	})

	t.Run("filter by member and bucket", func(t *testing.T) {
		month, year := 3, 2025
		items, total, err := repo.ListContributions(ctx, model.ContributionFilter{
			MemberID: &member.ID,
			Month:    &month,
			Year:     &year,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, items, 3)
	})

	t.Run("contribution requires existing member", func(t *testing.T) {
		_, err := repo.CreateContribution(ctx, &model.SocietyContribution{
			SocietyID: society.ID,
			MemberID:  9999,
			Amount:    500,
			Method:    model.PaymentNayapay,
			Month:     4,
			Year:      2025,
			Purpose:   model.ContributionMonthly,
			Status:    model.ContributionStatusPending,
		})
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})
}
