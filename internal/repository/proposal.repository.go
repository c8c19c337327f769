package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrProposalNotFound = errors.New("proposal not found")
	ErrAlreadyVoted     = errors.New("user has already voted on this proposal")
)

type ProposalRepository struct {
	*pg.DB
}

func NewProposalRepository(db *pg.DB) *ProposalRepository {
	return &ProposalRepository{
		db,
	}
}

func (r *ProposalRepository) Create(ctx context.Context, p *model.Proposal) (*model.Proposal, error) {
	var society SocietyEntity
	if err := r.Write(ctx).WithContext(ctx).Where("id = ?", p.SocietyID).First(&society).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSocietyNotFound
		}
		return nil, err
	}
	if p.DiscussionID != nil {
		var discussion DiscussionEntity
		if err := r.Write(ctx).WithContext(ctx).Where("id = ?", *p.DiscussionID).First(&discussion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDiscussionNotFound
			}
			return nil, err
		}
	}

	entity := toProposalEntity(p)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toProposalModel(entity), nil
}

func (r *ProposalRepository) GetByID(ctx context.Context, id int64) (*model.Proposal, error) {
	var entity ProposalEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return toProposalModel(&entity), nil
}

func (r *ProposalRepository) List(ctx context.Context, societyID int64, statuses []model.ProposalStatus) ([]*model.Proposal, error) {
	q := r.Read(ctx).WithContext(ctx).
		Model(&ProposalEntity{}).
		Where("society_id = ?", societyID)

	if len(statuses) > 0 {
		vals := make([]string, len(statuses))
		for i, s := range statuses {
			vals[i] = string(s)
		}
		q = q.Where("status IN ?", vals)
	}

	var entities []*ProposalEntity
	if err := q.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toProposalModels(entities), nil
}

// UpdateStatus advances the proposal lifecycle. The expected current status is
// part of the WHERE clause so concurrent transitions cannot skip a step.
func (r *ProposalRepository) UpdateStatus(ctx context.Context, id int64, from, to model.ProposalStatus) error {
	if !from.CanTransition(to) {
		return ErrStatusTransition
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&ProposalEntity{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var entity ProposalEntity
		err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProposalNotFound
		}
		return ErrStatusTransition
	}
	return nil
}

// OpenVoting moves a draft into voting and records the window in one write.
func (r *ProposalRepository) OpenVoting(ctx context.Context, id int64, startsAt, endsAt time.Time) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&ProposalEntity{}).
		Where("id = ? AND status = ?", id, string(model.ProposalStatusDraft)).
		Updates(map[string]interface{}{
			"status":           string(model.ProposalStatusVoting),
			"voting_starts_at": startsAt,
			"voting_ends_at":   endsAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var entity ProposalEntity
		err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProposalNotFound
		}
		return ErrStatusTransition
	}
	return nil
}

func (r *ProposalRepository) CreateVote(ctx context.Context, v *model.Vote) (*model.Vote, error) {
	var user UserEntity
	if err := r.Write(ctx).WithContext(ctx).Where("id = ?", v.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entity := toVoteEntity(v)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyVoted
		}
		return nil, err
	}

	return toVoteModel(entity), nil
}

func (r *ProposalRepository) Tally(ctx context.Context, proposalID int64) (*model.VoteTally, error) {
	tally := &model.VoteTally{ProposalID: proposalID}

	rows := []struct {
		Type  string
		Count int64
	}{}
	err := r.Read(ctx).WithContext(ctx).
		Model(&VoteEntity{}).
		Select("type, COUNT(*) AS count").
		Where("proposal_id = ?", proposalID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		switch model.VoteType(row.Type) {
		case model.VoteYes:
			tally.Yes = row.Count
		case model.VoteNo:
			tally.No = row.Count
		case model.VoteAbstain:
			tally.Abstain = row.Count
		}
	}

	return tally, nil
}
