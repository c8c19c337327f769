package repository

import (
	"time"

	"github.com/alnoor/community-platform/internal/model"
)

type ProposalEntity struct {
	ID              int64      `db:"id"               gorm:"primaryKey;autoIncrement;column:id"`
	SocietyID       int64      `db:"society_id"       gorm:"column:society_id;not null;index"`
	DiscussionID    *int64     `db:"discussion_id"    gorm:"column:discussion_id;index"`
	Title           string     `db:"title"            gorm:"column:title;not null"`
	Description     string     `db:"description"      gorm:"column:description"`
	Status          string     `db:"status"           gorm:"column:status;not null;default:draft;index"`
	VotingStartsAt  *time.Time `db:"voting_starts_at" gorm:"column:voting_starts_at"`
	VotingEndsAt    *time.Time `db:"voting_ends_at"   gorm:"column:voting_ends_at"`
	FundingEstimate *float64   `db:"funding_estimate" gorm:"column:funding_estimate"`
	CreatedAt       time.Time  `db:"created_at"       gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `db:"updated_at"       gorm:"column:updated_at;autoUpdateTime"`
}

func (ProposalEntity) TableName() string { return "proposals" }

type VoteEntity struct {
	ID         int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	ProposalID int64     `db:"proposal_id" gorm:"column:proposal_id;not null;uniqueIndex:idx_votes_proposal_user"`
	UserID     int64     `db:"user_id"     gorm:"column:user_id;not null;uniqueIndex:idx_votes_proposal_user"`
	Type       string    `db:"type"        gorm:"column:type;not null"`
	CreatedAt  time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (VoteEntity) TableName() string { return "votes" }

func toProposalEntity(m *model.Proposal) *ProposalEntity {
	if m == nil {
		return nil
	}
	return &ProposalEntity{
		ID:              m.ID,
		SocietyID:       m.SocietyID,
		DiscussionID:    m.DiscussionID,
		Title:           m.Title,
		Description:     m.Description,
		Status:          string(m.Status),
		VotingStartsAt:  m.VotingStartsAt,
		VotingEndsAt:    m.VotingEndsAt,
		FundingEstimate: m.FundingEstimate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toProposalModel(e *ProposalEntity) *model.Proposal {
	if e == nil {
		return nil
	}
	return &model.Proposal{
		ID:              e.ID,
		SocietyID:       e.SocietyID,
		DiscussionID:    e.DiscussionID,
		Title:           e.Title,
		Description:     e.Description,
		Status:          model.ProposalStatus(e.Status),
		VotingStartsAt:  e.VotingStartsAt,
		VotingEndsAt:    e.VotingEndsAt,
		FundingEstimate: e.FundingEstimate,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func toProposalModels(entities []*ProposalEntity) []*model.Proposal {
	if entities == nil {
		return nil
	}
	models := make([]*model.Proposal, len(entities))
	for i, e := range entities {
		models[i] = toProposalModel(e)
	}
	return models
}

func toVoteEntity(m *model.Vote) *VoteEntity {
	if m == nil {
		return nil
	}
	return &VoteEntity{
		ID:         m.ID,
		ProposalID: m.ProposalID,
		UserID:     m.UserID,
		Type:       string(m.Type),
		CreatedAt:  m.CreatedAt,
	}
}

func toVoteModel(e *VoteEntity) *model.Vote {
	if e == nil {
		return nil
	}
	return &model.Vote{
		ID:         e.ID,
		ProposalID: e.ProposalID,
		UserID:     e.UserID,
		Type:       model.VoteType(e.Type),
		CreatedAt:  e.CreatedAt,
	}
}
