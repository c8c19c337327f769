package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/services"
	xhttp "github.com/alnoor/community-platform/pkg/http"
	"github.com/fasthttp/router"
)

type DonationService interface {
	Create(ctx context.Context, p model.DonationCreateRequest) (*model.Donation, error)
	Get(ctx context.Context, id int64) (*model.Donation, error)
	List(ctx context.Context, f model.DonationFilter) ([]*model.Donation, int64, error)
	EnqueueConfirmation(ctx context.Context, conf model.PaymentConfirmation) (string, error)
}

type DonationHandler struct {
	svc DonationService
}

func NewDonationHandler(svc DonationService) *DonationHandler {
	return &DonationHandler{svc: svc}
}

func RegisterDonationRoutes(e *router.Group, h *DonationHandler) {
	e.POST("/donations", h.CreateDonation)
	e.GET("/donations", h.ListDonations)
	e.GET("/donations/{id}", h.GetDonation)
	e.POST("/payments/confirmations", h.ReceiveConfirmation)
}

type createDonationRequest struct {
	CampaignID    *int64  `json:"campaign_id"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	DonorName     string  `json:"donor_name"`
	DonorEmail    string  `json:"donor_email"`
	Message       string  `json:"message"`
	Anonymous     bool    `json:"anonymous"`
	Method        string  `json:"method"`
	TransactionID string  `json:"transaction_id"`
	ProofURL      string  `json:"proof_url"`
	CryptoAddress string  `json:"crypto_address"`
}

type donationListResponse struct {
	Items []*model.Donation `json:"items"`
	Total int64             `json:"total"`
}

func (h *DonationHandler) CreateDonation(ctx *xhttp.RequestCtx) {
	var req createDonationRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	p := model.DonationCreateRequest{
		CampaignID:    req.CampaignID,
		Amount:        req.Amount,
		Type:          model.DonationType(req.Type),
		Category:      req.Category,
		DonorName:     req.DonorName,
		DonorEmail:    req.DonorEmail,
		Message:       req.Message,
		Anonymous:     req.Anonymous,
		Method:        model.PaymentMethod(req.Method),
		TransactionID: req.TransactionID,
		ProofURL:      req.ProofURL,
		CryptoAddress: req.CryptoAddress,
	}

	d, err := h.svc.Create(ctx, p)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 201, d)
}

func (h *DonationHandler) GetDonation(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	d, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, d)
}

func (h *DonationHandler) ListDonations(ctx *xhttp.RequestCtx) {
	var f model.DonationFilter

	if id, ok := queryInt64(ctx, "campaign_id"); ok {
		f.CampaignID = &id
	}
	if v := query(ctx, "status"); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				f.Statuses = append(f.Statuses, model.DonationStatus(part))
			}
		}
	}
	if v := query(ctx, "method"); v != "" {
		m := model.PaymentMethod(v)
		f.Method = &m
	}
	if v := query(ctx, "from"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.From = &t
		}
	}
	if v := query(ctx, "to"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.To = &t
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

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, donationListResponse{Items: items, Total: total})
}

// ReceiveConfirmation is the payment provider webhook. The confirmation is
// queued and settled asynchronously by the processor, so the provider gets a
// fast 202 even when the database is busy.
func (h *DonationHandler) ReceiveConfirmation(ctx *xhttp.RequestCtx) {
	var conf model.PaymentConfirmation
	if err := readJSON(ctx, &conf); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	id, err := h.svc.EnqueueConfirmation(ctx, conf)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 202, map[string]string{"queued": id})
}
