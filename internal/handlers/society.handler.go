package handlers

import (
	"context"
	"errors"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/services"
	xhttp "github.com/alnoor/community-platform/pkg/http"
	"github.com/fasthttp/router"
)

type SocietyService interface {
	Get(ctx context.Context) (*model.Society, error)
	Configure(ctx context.Context, p model.SocietyUpdateRequest) (*model.Society, error)
	AddBlock(ctx context.Context, p model.BlockCreateRequest) (*model.SocietyBlock, error)
	ListBlocks(ctx context.Context, societyID int64) ([]*model.SocietyBlock, error)
	ReconcileFlats(ctx context.Context) (*model.FlatsReport, error)
	AddMember(ctx context.Context, p model.MemberCreateRequest) (*model.SocietyMember, error)
	GetMember(ctx context.Context, id int64) (*model.SocietyMember, error)
	ListMembers(ctx context.Context, blockID *int64) ([]*model.SocietyMember, error)
	SetMemberStatus(ctx context.Context, id int64, status model.MemberStatus) error
	AssignRole(ctx context.Context, id int64, role string) error
}

type SocietyHandler struct {
	svc SocietyService
}

func NewSocietyHandler(svc SocietyService) *SocietyHandler {
	return &SocietyHandler{svc: svc}
}

func RegisterSocietyRoutes(e *router.Group, h *SocietyHandler) {
	e.GET("/society", h.GetSociety)
	e.PUT("/society", h.Configure)
	e.GET("/society/flats-report", h.FlatsReport)
	e.POST("/society/blocks", h.AddBlock)
	e.GET("/society/{id}/blocks", h.ListBlocks)
	e.POST("/society/members", h.AddMember)
	e.GET("/society/members", h.ListMembers)
	e.GET("/society/members/{id}", h.GetMember)
	e.PUT("/society/members/{id}/status", h.SetMemberStatus)
	e.PUT("/society/members/{id}/role", h.AssignRole)
}

func (h *SocietyHandler) GetSociety(ctx *xhttp.RequestCtx) {
	s, err := h.svc.Get(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, s)
}

type configureSocietyRequest struct {
	Name                string  `json:"name"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	TotalBlocks         int     `json:"total_blocks"`
	TotalFlats          int     `json:"total_flats"`
}

func (h *SocietyHandler) Configure(ctx *xhttp.RequestCtx) {
	var req configureSocietyRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	s, err := h.svc.Configure(ctx, model.SocietyUpdateRequest{
		Name:                req.Name,
		MonthlyContribution: req.MonthlyContribution,
		TotalBlocks:         req.TotalBlocks,
		TotalFlats:          req.TotalFlats,
	})
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, s)
}

func (h *SocietyHandler) FlatsReport(ctx *xhttp.RequestCtx) {
	report, err := h.svc.ReconcileFlats(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, report)
}

type addBlockRequest struct {
	SocietyID int64  `json:"society_id"`
	Name      string `json:"name"`
	FlatCount int    `json:"flat_count"`
}

func (h *SocietyHandler) AddBlock(ctx *xhttp.RequestCtx) {
	var req addBlockRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	b, err := h.svc.AddBlock(ctx, model.BlockCreateRequest{
		SocietyID: req.SocietyID,
		Name:      req.Name,
		FlatCount: req.FlatCount,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 201, b)
}

func (h *SocietyHandler) ListBlocks(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	blocks, err := h.svc.ListBlocks(ctx, id)
	if err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, blocks)
}

type addMemberRequest struct {
	UserID     int64  `json:"user_id"`
	BlockID    int64  `json:"block_id"`
	FlatNumber string `json:"flat_number"`
	IsOwner    bool   `json:"is_owner"`
	Role       string `json:"role"`
}

func (h *SocietyHandler) AddMember(ctx *xhttp.RequestCtx) {
	var req addMemberRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	m, err := h.svc.AddMember(ctx, model.MemberCreateRequest{
		UserID:     req.UserID,
		BlockID:    req.BlockID,
		FlatNumber: req.FlatNumber,
		IsOwner:    req.IsOwner,
		Role:       req.Role,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 201, m)
}

func (h *SocietyHandler) GetMember(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	m, err := h.svc.GetMember(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, m)
}

func (h *SocietyHandler) ListMembers(ctx *xhttp.RequestCtx) {
	var blockID *int64
	if id, ok := queryInt64(ctx, "block_id"); ok {
		blockID = &id
	}
	members, err := h.svc.ListMembers(ctx, blockID)
	if err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, members)
}

type memberStatusRequest struct {
	Status string `json:"status"`
}

func (h *SocietyHandler) SetMemberStatus(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req memberStatusRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	status := model.MemberStatus(req.Status)
	if status != model.MemberStatusActive && status != model.MemberStatusInactive {
		writeError(ctx, 400, "unknown member status")
		return
	}
	if err := h.svc.SetMemberStatus(ctx, id, status); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": req.Status})
}

type memberRoleRequest struct {
	Role string `json:"role"`
}

func (h *SocietyHandler) AssignRole(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req memberRoleRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	if err := h.svc.AssignRole(ctx, id, req.Role); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"role": req.Role})
}
