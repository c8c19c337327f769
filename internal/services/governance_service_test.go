package services

import (
	"context"
	"testing"
	"time"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) Create(ctx context.Context, p *model.Proposal) (*model.Proposal, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Proposal), args.Error(1)
}

func (m *MockProposalRepository) GetByID(ctx context.Context, id int64) (*model.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Proposal), args.Error(1)
}

func (m *MockProposalRepository) List(ctx context.Context, societyID int64, statuses []model.ProposalStatus) ([]*model.Proposal, error) {
	args := m.Called(ctx, societyID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Proposal), args.Error(1)
}

func (m *MockProposalRepository) UpdateStatus(ctx context.Context, id int64, from, to model.ProposalStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockProposalRepository) OpenVoting(ctx context.Context, id int64, startsAt, endsAt time.Time) error {
	args := m.Called(ctx, id, startsAt, endsAt)
	return args.Error(0)
}

func (m *MockProposalRepository) CreateVote(ctx context.Context, v *model.Vote) (*model.Vote, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vote), args.Error(1)
}

func (m *MockProposalRepository) Tally(ctx context.Context, proposalID int64) (*model.VoteTally, error) {
	args := m.Called(ctx, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VoteTally), args.Error(1)
}

type MockDiscussionRepository struct {
	mock.Mock
}

func (m *MockDiscussionRepository) Create(ctx context.Context, d *model.Discussion) (*model.Discussion, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discussion), args.Error(1)
}

func (m *MockDiscussionRepository) GetByID(ctx context.Context, id int64) (*model.Discussion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discussion), args.Error(1)
}

func (m *MockDiscussionRepository) List(ctx context.Context, societyID int64, statuses []model.DiscussionStatus) ([]*model.Discussion, error) {
	args := m.Called(ctx, societyID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Discussion), args.Error(1)
}

func (m *MockDiscussionRepository) Close(ctx context.Context, id int64, to model.DiscussionStatus) error {
	args := m.Called(ctx, id, to)
	return args.Error(0)
}

func (m *MockDiscussionRepository) CreateComment(ctx context.Context, c *model.DiscussionComment) (*model.DiscussionComment, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiscussionComment), args.Error(1)
}

func (m *MockDiscussionRepository) UpdateComment(ctx context.Context, id, userID int64, content string) error {
	args := m.Called(ctx, id, userID, content)
	return args.Error(0)
}

func (m *MockDiscussionRepository) ListComments(ctx context.Context, discussionID int64) ([]*model.DiscussionComment, error) {
	args := m.Called(ctx, discussionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.DiscussionComment), args.Error(1)
}

type MockFinanceRepository struct {
	mock.Mock
}

func (m *MockFinanceRepository) CreateExpense(ctx context.Context, e *model.SocietyExpense) (*model.SocietyExpense, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SocietyExpense), args.Error(1)
}

func (m *MockFinanceRepository) UpdateExpenseStatus(ctx context.Context, id int64, from, to model.ExpenseStatus, approvedBy *int64) error {
	args := m.Called(ctx, id, from, to, approvedBy)
	return args.Error(0)
}

func (m *MockFinanceRepository) ListExpenses(ctx context.Context, societyID int64, statuses []model.ExpenseStatus) ([]*model.SocietyExpense, error) {
	args := m.Called(ctx, societyID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SocietyExpense), args.Error(1)
}

func (m *MockFinanceRepository) CreateContribution(ctx context.Context, c *model.SocietyContribution) (*model.SocietyContribution, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SocietyContribution), args.Error(1)
}

func (m *MockFinanceRepository) UpdateContributionStatus(ctx context.Context, id int64, from, to model.ContributionStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockFinanceRepository) ListContributions(ctx context.Context, f model.ContributionFilter) ([]*model.SocietyContribution, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.SocietyContribution), args.Get(1).(int64), args.Error(2)
}

func newGovernanceService(d *MockDiscussionRepository, p *MockProposalRepository, f *MockFinanceRepository) *GovernanceService {
	if d == nil {
		d = new(MockDiscussionRepository)
	}
	if p == nil {
		p = new(MockProposalRepository)
	}
	if f == nil {
		f = new(MockFinanceRepository)
	}
	return NewGovernanceService(d, p, f)
}

func votingProposal(now time.Time) *model.Proposal {
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	return &model.Proposal{
		ID:             1,
		SocietyID:      1,
		Status:         model.ProposalStatusVoting,
		VotingStartsAt: &start,
		VotingEndsAt:   &end,
	}
}

func TestGovernanceService_CastVote(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	req := model.VoteRequest{ProposalID: 1, UserID: 10, Type: model.VoteYes}

	t.Run("vote inside window", func(t *testing.T) {
		proposals := new(MockProposalRepository)
		service := newGovernanceService(nil, proposals, nil)

		proposals.On("GetByID", ctx, int64(1)).Return(votingProposal(now), nil)
		proposals.On("CreateVote", ctx, mock.AnythingOfType("*model.Vote")).
			Return(&model.Vote{ID: 1, ProposalID: 1, UserID: 10, Type: model.VoteYes}, nil)

		v, err := service.CastVote(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, model.VoteYes, v.Type)
	})

	t.Run("draft proposal rejects votes", func(t *testing.T) {
		proposals := new(MockProposalRepository)
		service := newGovernanceService(nil, proposals, nil)

		proposals.On("GetByID", ctx, int64(1)).
			Return(&model.Proposal{ID: 1, Status: model.ProposalStatusDraft}, nil)

		_, err := service.CastVote(ctx, req)
		assert.ErrorIs(t, err, ErrVotingClosed)
	})

	t.Run("expired window rejects votes", func(t *testing.T) {
		proposals := new(MockProposalRepository)
		service := newGovernanceService(nil, proposals, nil)

		p := votingProposal(now)
		end := now.Add(-time.Minute)
		p.VotingEndsAt = &end
		proposals.On("GetByID", ctx, int64(1)).Return(p, nil)

		_, err := service.CastVote(ctx, req)
		assert.ErrorIs(t, err, ErrVotingClosed)
	})

	t.Run("one vote per user", func(t *testing.T) {
		proposals := new(MockProposalRepository)
		service := newGovernanceService(nil, proposals, nil)

		proposals.On("GetByID", ctx, int64(1)).Return(votingProposal(now), nil)
		proposals.On("CreateVote", ctx, mock.AnythingOfType("*model.Vote")).
			Return(nil, repository.ErrAlreadyVoted)

		_, err := service.CastVote(ctx, req)
		assert.ErrorIs(t, err, ErrAlreadyVoted)
	})
}

func TestGovernanceService_CloseVoting(t *testing.T) {
	ctx := context.Background()

	t.Run("majority yes approves", func(t *testing.T) {
		proposals := new(MockProposalRepository)
		service := newGovernanceService(nil, proposals, nil)

		proposals.On("Tally", ctx, int64(1)).
			Return(&model.VoteTally{ProposalID: 1, Yes: 5, No: 2, Abstain: 1}, nil)
		proposals.On("UpdateStatus", ctx, int64(1), model.ProposalStatusVoting, model.ProposalStatusApproved).
			Return(nil)

		tally, err := service.CloseVoting(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(5), tally.Yes)
		proposals.AssertExpectations(t)
	})

	t.Run("tie rejects", func(t *testing.T) {
		proposals := new(MockProposalRepository)
		service := newGovernanceService(nil, proposals, nil)

		proposals.On("Tally", ctx, int64(2)).
			Return(&model.VoteTally{ProposalID: 2, Yes: 3, No: 3}, nil)
		proposals.On("UpdateStatus", ctx, int64(2), model.ProposalStatusVoting, model.ProposalStatusRejected).
			Return(nil)

		_, err := service.CloseVoting(ctx, 2)
		require.NoError(t, err)
		proposals.AssertExpectations(t)
	})
}

func TestGovernanceService_Comment(t *testing.T) {
	ctx := context.Background()

	t.Run("closed discussion rejects comments", func(t *testing.T) {
		discussions := new(MockDiscussionRepository)
		service := newGovernanceService(discussions, nil, nil)

		discussions.On("GetByID", ctx, int64(1)).
			Return(&model.Discussion{ID: 1, Status: model.DiscussionStatusClosed}, nil)

		_, err := service.Comment(ctx, model.CommentCreateRequest{DiscussionID: 1, UserID: 2, Content: "late"})
		assert.ErrorIs(t, err, ErrDiscussionDone)
	})

	t.Run("open discussion accepts comments", func(t *testing.T) {
		discussions := new(MockDiscussionRepository)
		service := newGovernanceService(discussions, nil, nil)

		discussions.On("GetByID", ctx, int64(1)).
			Return(&model.Discussion{ID: 1, Status: model.DiscussionStatusOpen}, nil)
		discussions.On("CreateComment", ctx, mock.AnythingOfType("*model.DiscussionComment")).
			Return(&model.DiscussionComment{ID: 1}, nil)

		_, err := service.Comment(ctx, model.CommentCreateRequest{DiscussionID: 1, UserID: 2, Content: "salaam"})
		require.NoError(t, err)
	})
}

func TestGovernanceService_RecordContribution(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate monthly dues", func(t *testing.T) {
		finance := new(MockFinanceRepository)
		service := newGovernanceService(nil, nil, finance)

		finance.On("CreateContribution", ctx, mock.AnythingOfType("*model.SocietyContribution")).
			Return(nil, repository.ErrDuplicateDues)

		_, err := service.RecordContribution(ctx, model.ContributionCreateRequest{
			SocietyID: 1,
			MemberID:  2,
			Amount:    1500,
			Method:    model.PaymentJazzcash,
			Month:     3,
			Year:      2026,
			Purpose:   model.ContributionMonthly,
		})
		assert.ErrorIs(t, err, ErrDuplicateDues)
	})

	t.Run("proposal purpose requires proposal id", func(t *testing.T) {
		service := newGovernanceService(nil, nil, nil)

		_, err := service.RecordContribution(ctx, model.ContributionCreateRequest{
			SocietyID: 1,
			MemberID:  2,
			Amount:    1500,
			Method:    model.PaymentJazzcash,
			Purpose:   model.ContributionProposal,
		})
		assert.Error(t, err)
	})
}
