package services

import (
	"context"
	"errors"
	"time"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/repository"
)

var (
	ErrVotingClosed   = errors.New("proposal is not open for voting")
	ErrAlreadyVoted   = errors.New("user has already voted on this proposal")
	ErrDiscussionDone = errors.New("discussion is already closed")
	ErrDuplicateDues  = errors.New("monthly dues already recorded for this period")
)

type DiscussionRepository interface {
	Create(ctx context.Context, d *model.Discussion) (*model.Discussion, error)
	GetByID(ctx context.Context, id int64) (*model.Discussion, error)
	List(ctx context.Context, societyID int64, statuses []model.DiscussionStatus) ([]*model.Discussion, error)
	Close(ctx context.Context, id int64, to model.DiscussionStatus) error
	CreateComment(ctx context.Context, c *model.DiscussionComment) (*model.DiscussionComment, error)
	UpdateComment(ctx context.Context, id, userID int64, content string) error
	ListComments(ctx context.Context, discussionID int64) ([]*model.DiscussionComment, error)
}

type ProposalRepository interface {
	Create(ctx context.Context, p *model.Proposal) (*model.Proposal, error)
	GetByID(ctx context.Context, id int64) (*model.Proposal, error)
	List(ctx context.Context, societyID int64, statuses []model.ProposalStatus) ([]*model.Proposal, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.ProposalStatus) error
	OpenVoting(ctx context.Context, id int64, startsAt, endsAt time.Time) error
	CreateVote(ctx context.Context, v *model.Vote) (*model.Vote, error)
	Tally(ctx context.Context, proposalID int64) (*model.VoteTally, error)
}

type FinanceRepository interface {
	CreateExpense(ctx context.Context, e *model.SocietyExpense) (*model.SocietyExpense, error)
	UpdateExpenseStatus(ctx context.Context, id int64, from, to model.ExpenseStatus, approvedBy *int64) error
	ListExpenses(ctx context.Context, societyID int64, statuses []model.ExpenseStatus) ([]*model.SocietyExpense, error)
	CreateContribution(ctx context.Context, c *model.SocietyContribution) (*model.SocietyContribution, error)
	UpdateContributionStatus(ctx context.Context, id int64, from, to model.ContributionStatus) error
	ListContributions(ctx context.Context, f model.ContributionFilter) ([]*model.SocietyContribution, int64, error)
}

// GovernanceService covers the deliberation side of the society: discussions,
// proposals and their votes, and the money that follows approved proposals.
type GovernanceService struct {
	discussions DiscussionRepository
	proposals   ProposalRepository
	finance     FinanceRepository
	now         func() time.Time
}

func NewGovernanceService(d DiscussionRepository, p ProposalRepository, f FinanceRepository) *GovernanceService {
	return &GovernanceService{
		discussions: d,
		proposals:   p,
		finance:     f,
		now:         time.Now,
	}
}

func (s *GovernanceService) OpenDiscussion(ctx context.Context, p model.DiscussionCreateRequest) (*model.Discussion, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	d, err := s.discussions.Create(ctx, &model.Discussion{
		SocietyID: p.SocietyID,
		UserID:    p.UserID,
		Title:     p.Title,
		Body:      p.Body,
		Status:    model.DiscussionStatusOpen,
	})
	if errors.Is(err, repository.ErrSocietyNotFound) {
		return nil, ErrNotFound
	}
	return d, err
}

// CloseDiscussion ends a discussion as closed or resolved. Terminal states
// cannot be revisited.
func (s *GovernanceService) CloseDiscussion(ctx context.Context, id int64, resolved bool) error {
	to := model.DiscussionStatusClosed
	if resolved {
		to = model.DiscussionStatusResolved
	}
	err := s.discussions.Close(ctx, id, to)
	if errors.Is(err, repository.ErrDiscussionNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repository.ErrStatusTransition) {
		return ErrDiscussionDone
	}
	return err
}

func (s *GovernanceService) ListDiscussions(ctx context.Context, societyID int64, statuses []model.DiscussionStatus) ([]*model.Discussion, error) {
	return s.discussions.List(ctx, societyID, statuses)
}

func (s *GovernanceService) Comment(ctx context.Context, p model.CommentCreateRequest) (*model.DiscussionComment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	d, err := s.discussions.GetByID(ctx, p.DiscussionID)
	if err != nil {
		if errors.Is(err, repository.ErrDiscussionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d.Status != model.DiscussionStatusOpen {
		return nil, ErrDiscussionDone
	}
	return s.discussions.CreateComment(ctx, &model.DiscussionComment{
		DiscussionID: p.DiscussionID,
		UserID:       p.UserID,
		Content:      p.Content,
	})
}

// EditComment lets a user rewrite their own comment. The user scope lives in
// the repository query, so editing someone else's comment reads as not found.
func (s *GovernanceService) EditComment(ctx context.Context, id, userID int64, content string) error {
	if content == "" {
		return errors.New("content is required")
	}
	err := s.discussions.UpdateComment(ctx, id, userID, content)
	if errors.Is(err, repository.ErrCommentNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GovernanceService) ListComments(ctx context.Context, discussionID int64) ([]*model.DiscussionComment, error) {
	return s.discussions.ListComments(ctx, discussionID)
}

func (s *GovernanceService) CreateProposal(ctx context.Context, p model.ProposalCreateRequest) (*model.Proposal, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	created, err := s.proposals.Create(ctx, &model.Proposal{
		SocietyID:       p.SocietyID,
		DiscussionID:    p.DiscussionID,
		Title:           p.Title,
		Description:     p.Description,
		FundingEstimate: p.FundingEstimate,
		Status:          model.ProposalStatusDraft,
	})
	if errors.Is(err, repository.ErrSocietyNotFound) || errors.Is(err, repository.ErrDiscussionNotFound) {
		return nil, ErrNotFound
	}
	return created, err
}

func (s *GovernanceService) GetProposal(ctx context.Context, id int64) (*model.Proposal, error) {
	p, err := s.proposals.GetByID(ctx, id)
	if errors.Is(err, repository.ErrProposalNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *GovernanceService) ListProposals(ctx context.Context, societyID int64, statuses []model.ProposalStatus) ([]*model.Proposal, error) {
	return s.proposals.List(ctx, societyID, statuses)
}

// StartVoting moves a draft proposal into its voting window.
func (s *GovernanceService) StartVoting(ctx context.Context, id int64, window time.Duration) error {
	if window <= 0 {
		return errors.New("voting window must be positive")
	}
	start := s.now()
	err := s.proposals.OpenVoting(ctx, id, start, start.Add(window))
	if errors.Is(err, repository.ErrProposalNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repository.ErrStatusTransition) {
		return repository.ErrStatusTransition
	}
	return err
}

// CastVote records a single vote per user. Votes are only accepted while the
// proposal is in the voting state and inside the window.
func (s *GovernanceService) CastVote(ctx context.Context, p model.VoteRequest) (*model.Vote, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	prop, err := s.proposals.GetByID(ctx, p.ProposalID)
	if err != nil {
		if errors.Is(err, repository.ErrProposalNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if prop.Status != model.ProposalStatusVoting {
		return nil, ErrVotingClosed
	}
	now := s.now()
	if prop.VotingStartsAt != nil && now.Before(*prop.VotingStartsAt) {
		return nil, ErrVotingClosed
	}
	if prop.VotingEndsAt != nil && now.After(*prop.VotingEndsAt) {
		return nil, ErrVotingClosed
	}

	v, err := s.proposals.CreateVote(ctx, &model.Vote{
		ProposalID: p.ProposalID,
		UserID:     p.UserID,
		Type:       p.Type,
	})
	if errors.Is(err, repository.ErrAlreadyVoted) {
		return nil, ErrAlreadyVoted
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrNotFound
	}
	return v, err
}

// CloseVoting tallies the votes and settles the proposal. A simple majority
// of yes over no approves it; abstentions count toward neither side.
func (s *GovernanceService) CloseVoting(ctx context.Context, id int64) (*model.VoteTally, error) {
	tally, err := s.proposals.Tally(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProposalNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	to := model.ProposalStatusRejected
	if tally.Yes > tally.No {
		to = model.ProposalStatusApproved
	}
	if err := s.proposals.UpdateStatus(ctx, id, model.ProposalStatusVoting, to); err != nil {
		if errors.Is(err, repository.ErrProposalNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tally, nil
}

// MarkImplemented records that an approved proposal was carried out.
func (s *GovernanceService) MarkImplemented(ctx context.Context, id int64) error {
	err := s.proposals.UpdateStatus(ctx, id, model.ProposalStatusApproved, model.ProposalStatusImplemented)
	if errors.Is(err, repository.ErrProposalNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GovernanceService) RecordExpense(ctx context.Context, p model.ExpenseCreateRequest) (*model.SocietyExpense, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e, err := s.finance.CreateExpense(ctx, &model.SocietyExpense{
		SocietyID:  p.SocietyID,
		ProposalID: p.ProposalID,
		Amount:     p.Amount,
		Category:   p.Category,
		Note:       p.Note,
		Status:     model.ExpenseStatusPending,
	})
	if errors.Is(err, repository.ErrSocietyNotFound) || errors.Is(err, repository.ErrProposalNotFound) {
		return nil, ErrNotFound
	}
	return e, err
}

func (s *GovernanceService) ApproveExpense(ctx context.Context, id, approverID int64) error {
	err := s.finance.UpdateExpenseStatus(ctx, id, model.ExpenseStatusPending, model.ExpenseStatusApproved, &approverID)
	if errors.Is(err, repository.ErrExpenseNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GovernanceService) CompleteExpense(ctx context.Context, id int64) error {
	err := s.finance.UpdateExpenseStatus(ctx, id, model.ExpenseStatusApproved, model.ExpenseStatusCompleted, nil)
	if errors.Is(err, repository.ErrExpenseNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GovernanceService) ListExpenses(ctx context.Context, societyID int64, statuses []model.ExpenseStatus) ([]*model.SocietyExpense, error) {
	return s.finance.ListExpenses(ctx, societyID, statuses)
}

// RecordContribution books a member payment. Monthly dues are unique per
// member and period; the repository enforces the bucket.
func (s *GovernanceService) RecordContribution(ctx context.Context, p model.ContributionCreateRequest) (*model.SocietyContribution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c, err := s.finance.CreateContribution(ctx, &model.SocietyContribution{
		SocietyID:  p.SocietyID,
		MemberID:   p.MemberID,
		ProposalID: p.ProposalID,
		Amount:     p.Amount,
		Method:     p.Method,
		Month:      p.Month,
		Year:       p.Year,
		Purpose:    p.Purpose,
		Status:     model.ContributionStatusPending,
	})
	if errors.Is(err, repository.ErrDuplicateDues) {
		return nil, ErrDuplicateDues
	}
	if errors.Is(err, repository.ErrMemberNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *GovernanceService) CompleteContribution(ctx context.Context, id int64) error {
	err := s.finance.UpdateContributionStatus(ctx, id, model.ContributionStatusPending, model.ContributionStatusCompleted)
	if errors.Is(err, repository.ErrContributionNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GovernanceService) ListContributions(ctx context.Context, f model.ContributionFilter) ([]*model.SocietyContribution, int64, error) {
	return s.finance.ListContributions(ctx, f)
}
