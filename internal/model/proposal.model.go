package model

import (
	"errors"
	"strings"
	"time"
)

type ProposalStatus string

const (
	ProposalStatusDraft       ProposalStatus = "draft"
	ProposalStatusVoting      ProposalStatus = "voting"
	ProposalStatusApproved    ProposalStatus = "approved"
	ProposalStatusRejected    ProposalStatus = "rejected"
	ProposalStatusImplemented ProposalStatus = "implemented"
)

// CanTransition reports whether a proposal may move from s to next. The
// lifecycle is strictly ordered: draft -> voting -> approved|rejected, and
// implemented is reachable from approved only.
func (s ProposalStatus) CanTransition(next ProposalStatus) bool {
	switch s {
	case ProposalStatusDraft:
		return next == ProposalStatusVoting
	case ProposalStatusVoting:
		return next == ProposalStatusApproved || next == ProposalStatusRejected
	case ProposalStatusApproved:
		return next == ProposalStatusImplemented
	}
	return false
}

type Proposal struct {
	ID              int64          `json:"id"               db:"id"               gorm:"primaryKey;autoIncrement;column:id"`
	SocietyID       int64          `json:"society_id"       db:"society_id"       gorm:"column:society_id;not null;index"`
	Society         *Society       `json:"-"                                      gorm:"foreignKey:SocietyID;references:ID;constraint:OnDelete:CASCADE"`
	DiscussionID    *int64         `json:"discussion_id"    db:"discussion_id"    gorm:"column:discussion_id;index"`
	Discussion      *Discussion    `json:"-"                                      gorm:"foreignKey:DiscussionID;references:ID;constraint:OnDelete:SET NULL"`
	Title           string         `json:"title"            db:"title"            gorm:"column:title;not null"`
	Description     string         `json:"description"      db:"description"      gorm:"column:description"`
	Status          ProposalStatus `json:"status"           db:"status"           gorm:"column:status;not null;default:draft;index"`
	VotingStartsAt  *time.Time     `json:"voting_starts_at" db:"voting_starts_at" gorm:"column:voting_starts_at"`
	VotingEndsAt    *time.Time     `json:"voting_ends_at"   db:"voting_ends_at"   gorm:"column:voting_ends_at"`
	FundingEstimate *float64       `json:"funding_estimate" db:"funding_estimate" gorm:"column:funding_estimate"`
	CreatedAt       time.Time      `json:"created_at"       db:"created_at"       gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `json:"updated_at"       db:"updated_at"       gorm:"column:updated_at;autoUpdateTime"`
}

func (Proposal) TableName() string { return "proposals" }

type VoteType string

const (
	VoteYes     VoteType = "yes"
	VoteNo      VoteType = "no"
	VoteAbstain VoteType = "abstain"
)

type Vote struct {
	ID         int64     `json:"id"          db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	ProposalID int64     `json:"proposal_id" db:"proposal_id" gorm:"column:proposal_id;not null;uniqueIndex:idx_votes_proposal_user"`
	Proposal   *Proposal `json:"-"                            gorm:"foreignKey:ProposalID;references:ID;constraint:OnDelete:CASCADE"`
	UserID     int64     `json:"user_id"     db:"user_id"     gorm:"column:user_id;not null;uniqueIndex:idx_votes_proposal_user"`
	User       *User     `json:"-"                            gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Type       VoteType  `json:"type"        db:"type"        gorm:"column:type;not null"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"  gorm:"column:created_at;autoCreateTime"`
}

func (Vote) TableName() string { return "votes" }

// VoteTally is the aggregated outcome of a proposal's voting window.
type VoteTally struct {
	ProposalID int64 `json:"proposal_id"`
	Yes        int64 `json:"yes"`
	No         int64 `json:"no"`
	Abstain    int64 `json:"abstain"`
}

type ProposalCreateRequest struct {
	SocietyID       int64
	DiscussionID    *int64
	Title           string
	Description     string
	FundingEstimate *float64
}

func (p ProposalCreateRequest) Validate() error {
	if p.SocietyID == 0 {
		return errors.New("society_id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	if p.FundingEstimate != nil && *p.FundingEstimate < 0 {
		return errors.New("funding estimate cannot be negative")
	}
	return nil
}

type VoteRequest struct {
	ProposalID int64
	UserID     int64
	Type       VoteType
}

func (p VoteRequest) Validate() error {
	if p.ProposalID == 0 {
		return errors.New("proposal_id is required")
	}
	if p.UserID == 0 {
		return errors.New("user_id is required")
	}
	switch p.Type {
	case VoteYes, VoteNo, VoteAbstain:
		return nil
	}
	return errors.New("unknown vote type")
}
