package repository

import (
	"context"
	"testing"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentRepository_Decide(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()

	newApplication := func(t *testing.T) *model.Enrollment {
		e, err := repo.Create(ctx, &model.Enrollment{
			Course:      "Hifz",
			StudentName: "Bilal",
			Age:         9,
			Email:       "parent@example.com",
			Status:      model.EnrollmentStatusPending,
		})
		require.NoError(t, err)
		return e
	}

	t.Run("approve pending", func(t *testing.T) {
		e := newApplication(t)
		require.NoError(t, repo.UpdateStatus(ctx, e.ID, model.EnrollmentStatusPending, model.EnrollmentStatusApproved))

		got, err := repo.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, model.EnrollmentStatusApproved, got.Status)
	})

	t.Run("decision is terminal", func(t *testing.T) {
		e := newApplication(t)
		require.NoError(t, repo.UpdateStatus(ctx, e.ID, model.EnrollmentStatusPending, model.EnrollmentStatusRejected))

		err := repo.UpdateStatus(ctx, e.ID, model.EnrollmentStatusRejected, model.EnrollmentStatusApproved)
		assert.ErrorIs(t, err, ErrStatusTransition)
	})

	t.Run("filter by course and status", func(t *testing.T) {
		course := "Hifz"
		items, total, err := repo.List(ctx, model.EnrollmentFilter{
			Course:   &course,
			Statuses: []model.EnrollmentStatus{model.EnrollmentStatusApproved},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, items, 1)
	})
}

func TestMessageRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewMessageRepository(db)
	ctx := context.Background()

	m, err := repo.Create(ctx, &model.Message{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Nikah booking",
		Body:    "Assalamu alaikum, is the hall free next Friday?",
		Status:  model.MessageStatusUnread,
	})
	require.NoError(t, err)

	t.Run("unread to read to replied", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, m.ID, model.MessageStatusUnread, model.MessageStatusRead))
		require.NoError(t, repo.UpdateStatus(ctx, m.ID, model.MessageStatusRead, model.MessageStatusReplied))
	})

	t.Run("no regression", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, m.ID, model.MessageStatusReplied, model.MessageStatusRead)
		assert.ErrorIs(t, err, ErrStatusTransition)
	})

	t.Run("list unread", func(t *testing.T) {
		_, total, err := repo.List(ctx, model.MessageFilter{
			Statuses: []model.MessageStatus{model.MessageStatusUnread},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}
