package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/services"
	xhttp "github.com/alnoor/community-platform/pkg/http"
	"github.com/fasthttp/router"
)

type GovernanceService interface {
	OpenDiscussion(ctx context.Context, p model.DiscussionCreateRequest) (*model.Discussion, error)
	CloseDiscussion(ctx context.Context, id int64, resolved bool) error
	ListDiscussions(ctx context.Context, societyID int64, statuses []model.DiscussionStatus) ([]*model.Discussion, error)
	Comment(ctx context.Context, p model.CommentCreateRequest) (*model.DiscussionComment, error)
	EditComment(ctx context.Context, id, userID int64, content string) error
	ListComments(ctx context.Context, discussionID int64) ([]*model.DiscussionComment, error)

	CreateProposal(ctx context.Context, p model.ProposalCreateRequest) (*model.Proposal, error)
	GetProposal(ctx context.Context, id int64) (*model.Proposal, error)
	ListProposals(ctx context.Context, societyID int64, statuses []model.ProposalStatus) ([]*model.Proposal, error)
	StartVoting(ctx context.Context, id int64, window time.Duration) error
	CastVote(ctx context.Context, p model.VoteRequest) (*model.Vote, error)
	CloseVoting(ctx context.Context, id int64) (*model.VoteTally, error)
	MarkImplemented(ctx context.Context, id int64) error

	RecordExpense(ctx context.Context, p model.ExpenseCreateRequest) (*model.SocietyExpense, error)
	ApproveExpense(ctx context.Context, id, approverID int64) error
	CompleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, societyID int64, statuses []model.ExpenseStatus) ([]*model.SocietyExpense, error)

	RecordContribution(ctx context.Context, p model.ContributionCreateRequest) (*model.SocietyContribution, error)
	CompleteContribution(ctx context.Context, id int64) error
	ListContributions(ctx context.Context, f model.ContributionFilter) ([]*model.SocietyContribution, int64, error)
}

type GovernanceHandler struct {
	svc GovernanceService
}

func NewGovernanceHandler(svc GovernanceService) *GovernanceHandler {
	return &GovernanceHandler{svc: svc}
}

func RegisterGovernanceRoutes(e *router.Group, h *GovernanceHandler) {
	e.POST("/discussions", h.OpenDiscussion)
	e.GET("/discussions", h.ListDiscussions)
	e.POST("/discussions/{id}/close", h.CloseDiscussion)
	e.POST("/discussions/{id}/comments", h.Comment)
	e.GET("/discussions/{id}/comments", h.ListComments)
	e.PUT("/comments/{id}", h.EditComment)

	e.POST("/proposals", h.CreateProposal)
	e.GET("/proposals", h.ListProposals)
	e.GET("/proposals/{id}", h.GetProposal)
	e.POST("/proposals/{id}/voting", h.StartVoting)
	e.POST("/proposals/{id}/votes", h.CastVote)
	e.POST("/proposals/{id}/close", h.CloseVoting)
	e.POST("/proposals/{id}/implemented", h.MarkImplemented)

	e.POST("/expenses", h.RecordExpense)
	e.GET("/expenses", h.ListExpenses)
	e.POST("/expenses/{id}/approve", h.ApproveExpense)
	e.POST("/expenses/{id}/complete", h.CompleteExpense)

	e.POST("/contributions", h.RecordContribution)
	e.GET("/contributions", h.ListContributions)
	e.POST("/contributions/{id}/complete", h.CompleteContribution)
}

func governanceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, 404, err.Error())
	case errors.Is(err, services.ErrVotingClosed),
		errors.Is(err, services.ErrAlreadyVoted),
		errors.Is(err, services.ErrDiscussionDone),
		errors.Is(err, services.ErrDuplicateDues):
		writeError(ctx, 409, err.Error())
	default:
		writeError(ctx, 400, err.Error())
	}
}

type openDiscussionRequest struct {
	SocietyID int64  `json:"society_id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

func (h *GovernanceHandler) OpenDiscussion(ctx *xhttp.RequestCtx) {
	var req openDiscussionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	d, err := h.svc.OpenDiscussion(ctx, model.DiscussionCreateRequest{
		SocietyID: req.SocietyID,
		UserID:    req.UserID,
		Title:     req.Title,
		Body:      req.Body,
	})
	if err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, d)
}

func (h *GovernanceHandler) ListDiscussions(ctx *xhttp.RequestCtx) {
	societyID, _ := queryInt64(ctx, "society_id")
	var statuses []model.DiscussionStatus
	if v := query(ctx, "status"); v != "" {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				statuses = append(statuses, model.DiscussionStatus(part))
			}
		}
	}
	items, err := h.svc.ListDiscussions(ctx, societyID, statuses)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, items)
}

type closeDiscussionRequest struct {
	Resolved bool `json:"resolved"`
}

func (h *GovernanceHandler) CloseDiscussion(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req closeDiscussionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	if err := h.svc.CloseDiscussion(ctx, id, req.Resolved); err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]bool{"closed": true})
}

type commentRequest struct {
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
}

func (h *GovernanceHandler) Comment(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req commentRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	c, err := h.svc.Comment(ctx, model.CommentCreateRequest{
		DiscussionID: id,
		UserID:       req.UserID,
		Content:      req.Content,
	})
	if err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, c)
}

func (h *GovernanceHandler) EditComment(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req commentRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	if err := h.svc.EditComment(ctx, id, req.UserID, req.Content); err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]bool{"updated": true})
}

func (h *GovernanceHandler) ListComments(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	items, err := h.svc.ListComments(ctx, id)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, items)
}

type createProposalRequest struct {
	SocietyID       int64    `json:"society_id"`
	DiscussionID    *int64   `json:"discussion_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	FundingEstimate *float64 `json:"funding_estimate"`
}

func (h *GovernanceHandler) CreateProposal(ctx *xhttp.RequestCtx) {
	var req createProposalRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	p, err := h.svc.CreateProposal(ctx, model.ProposalCreateRequest{
		SocietyID:       req.SocietyID,
		DiscussionID:    req.DiscussionID,
		Title:           req.Title,
		Description:     req.Description,
		FundingEstimate: req.FundingEstimate,
	})
	if err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, p)
}

func (h *GovernanceHandler) GetProposal(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	p, err := h.svc.GetProposal(ctx, id)
	if err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, p)
}

func (h *GovernanceHandler) ListProposals(ctx *xhttp.RequestCtx) {
	societyID, _ := queryInt64(ctx, "society_id")
	var statuses []model.ProposalStatus
	if v := query(ctx, "status"); v != "" {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				statuses = append(statuses, model.ProposalStatus(part))
			}
		}
	}
	items, err := h.svc.ListProposals(ctx, societyID, statuses)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, items)
}

type startVotingRequest struct {
	WindowHours int `json:"window_hours"`
}

func (h *GovernanceHandler) StartVoting(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req startVotingRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	if req.WindowHours <= 0 {
		req.WindowHours = 72
	}
	if err := h.svc.StartVoting(ctx, id, time.Duration(req.WindowHours)*time.Hour); err != nil {
		governanceError(ctx, err)
		return
	}
	p, err := h.svc.GetProposal(ctx, id)
	if err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, p)
}

type castVoteRequest struct {
	UserID int64  `json:"user_id"`
	Type   string `json:"type"`
}

func (h *GovernanceHandler) CastVote(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req castVoteRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	v, err := h.svc.CastVote(ctx, model.VoteRequest{
		ProposalID: id,
		UserID:     req.UserID,
		Type:       model.VoteType(req.Type),
	})
	if err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, v)
}

func (h *GovernanceHandler) CloseVoting(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	tally, err := h.svc.CloseVoting(ctx, id)
	if err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, tally)
}

func (h *GovernanceHandler) MarkImplemented(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	if err := h.svc.MarkImplemented(ctx, id); err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": string(model.ProposalStatusImplemented)})
}

type recordExpenseRequest struct {
	SocietyID  int64   `json:"society_id"`
	ProposalID *int64  `json:"proposal_id"`
	Amount     float64 `json:"amount"`
	Category   string  `json:"category"`
	Note       string  `json:"note"`
}

func (h *GovernanceHandler) RecordExpense(ctx *xhttp.RequestCtx) {
	var req recordExpenseRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	e, err := h.svc.RecordExpense(ctx, model.ExpenseCreateRequest{
		SocietyID:  req.SocietyID,
		ProposalID: req.ProposalID,
		Amount:     req.Amount,
		Category:   req.Category,
		Note:       req.Note,
	})
	if err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, e)
}

type approveExpenseRequest struct {
	ApproverID int64 `json:"approver_id"`
}

func (h *GovernanceHandler) ApproveExpense(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req approveExpenseRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	if err := h.svc.ApproveExpense(ctx, id, req.ApproverID); err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": string(model.ExpenseStatusApproved)})
}

func (h *GovernanceHandler) CompleteExpense(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	if err := h.svc.CompleteExpense(ctx, id); err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": string(model.ExpenseStatusCompleted)})
}

func (h *GovernanceHandler) ListExpenses(ctx *xhttp.RequestCtx) {
	societyID, _ := queryInt64(ctx, "society_id")
	var statuses []model.ExpenseStatus
	if v := query(ctx, "status"); v != "" {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				statuses = append(statuses, model.ExpenseStatus(part))
			}
		}
	}
	items, err := h.svc.ListExpenses(ctx, societyID, statuses)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, items)
}

type recordContributionRequest struct {
	SocietyID  int64   `json:"society_id"`
	MemberID   int64   `json:"member_id"`
	ProposalID *int64  `json:"proposal_id"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	Purpose    string  `json:"purpose"`
}

func (h *GovernanceHandler) RecordContribution(ctx *xhttp.RequestCtx) {
	var req recordContributionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	c, err := h.svc.RecordContribution(ctx, model.ContributionCreateRequest{
		SocietyID:  req.SocietyID,
		MemberID:   req.MemberID,
		ProposalID: req.ProposalID,
		Amount:     req.Amount,
		Method:     model.PaymentMethod(req.Method),
		Month:      req.Month,
		Year:       req.Year,
		Purpose:    model.ContributionPurpose(req.Purpose),
	})
	if err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, c)
}

func (h *GovernanceHandler) CompleteContribution(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	if err := h.svc.CompleteContribution(ctx, id); err != nil {
		governanceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": string(model.ContributionStatusCompleted)})
}

type contributionListResponse struct {
	Items []*model.SocietyContribution `json:"items"`
	Total int64                        `json:"total"`
}

func (h *GovernanceHandler) ListContributions(ctx *xhttp.RequestCtx) {
	var f model.ContributionFilter

	if id, ok := queryInt64(ctx, "member_id"); ok {
		f.MemberID = &id
	}
	if v := query(ctx, "month"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Month = &n
		}
	}
	if v := query(ctx, "year"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Year = &n
		}
	}
	if v := query(ctx, "purpose"); v != "" {
		p := model.ContributionPurpose(v)
		f.Purpose = &p
	}
	if v := query(ctx, "status"); v != "" {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				f.Statuses = append(f.Statuses, model.ContributionStatus(part))
			}
		}
	}
	if v := query(ctx, "limit"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Limit = n
		}
	}
	if v := query(ctx, "offset"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Offset = n
		}
	}
	if strings.EqualFold(query(ctx, "order"), "desc") {
		f.Desc = true
	}

	items, total, err := h.svc.ListContributions(ctx, f)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, contributionListResponse{Items: items, Total: total})
}
