package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/services"
	xhttp "github.com/alnoor/community-platform/pkg/http"
	"github.com/fasthttp/router"
)

type CampaignService interface {
	Create(ctx context.Context, p model.CampaignCreateRequest) (*model.Campaign, error)
	Get(ctx context.Context, id int64) (*model.Campaign, error)
	List(ctx context.Context, f model.CampaignFilter) ([]*model.Campaign, int64, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Progress(ctx context.Context, id int64) (*model.Campaign, float64, error)
}

type CampaignHandler struct {
	svc CampaignService
}

func NewCampaignHandler(svc CampaignService) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

func RegisterCampaignRoutes(e *router.Group, h *CampaignHandler) {
	e.POST("/campaigns", h.CreateCampaign)
	e.GET("/campaigns", h.ListCampaigns)
	e.GET("/campaigns/{id}", h.GetCampaign)
	e.GET("/campaigns/{id}/progress", h.GetProgress)
	e.PUT("/campaigns/{id}/active", h.SetActive)
}

type createCampaignRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Goal        float64 `json:"goal"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

type campaignListResponse struct {
	Items []*model.Campaign `json:"items"`
	Total int64             `json:"total"`
}

type campaignProgressResponse struct {
	Campaign   *model.Campaign `json:"campaign"`
	Completion float64         `json:"completion"`
}

func (h *CampaignHandler) CreateCampaign(ctx *xhttp.RequestCtx) {
	var req createCampaignRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	p := model.CampaignCreateRequest{
		Name:        req.Name,
		Description: req.Description,
		Goal:        req.Goal,
	}
	if req.StartDate != "" {
		if t, err := parseTime(req.StartDate); err == nil {
			p.StartDate = &t
		}
	}
	if req.EndDate != "" {
		if t, err := parseTime(req.EndDate); err == nil {
			p.EndDate = &t
		}
	}

	c, err := h.svc.Create(ctx, p)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 201, c)
}

func (h *CampaignHandler) GetCampaign(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	c, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, c)
}

func (h *CampaignHandler) GetProgress(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	c, completion, err := h.svc.Progress(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, campaignProgressResponse{Campaign: c, Completion: completion})
}

func (h *CampaignHandler) ListCampaigns(ctx *xhttp.RequestCtx) {
	var f model.CampaignFilter

	if v := query(ctx, "active"); v != "" {
		if b, e := strconv.ParseBool(v); e == nil {
			f.Active = &b
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

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, campaignListResponse{Items: items, Total: total})
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (h *CampaignHandler) SetActive(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req setActiveRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	if err := h.svc.SetActive(ctx, id, req.Active); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]any{"id": id, "active": req.Active, "updated_at": time.Now().UTC()})
}
