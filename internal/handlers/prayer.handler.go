package handlers

import (
	"github.com/alnoor/community-platform/internal/prayer"
	xhttp "github.com/alnoor/community-platform/pkg/http"
	"github.com/fasthttp/router"
)

type PrayerTicker interface {
	Current() (string, *prayer.DaySchedule)
}

type PrayerHandler struct {
	ticker PrayerTicker
}

func NewPrayerHandler(ticker PrayerTicker) *PrayerHandler {
	return &PrayerHandler{ticker: ticker}
}

func RegisterPrayerRoutes(e *router.Group, h *PrayerHandler) {
	e.GET("/prayer/next", h.GetNext)
	e.GET("/prayer/schedule", h.GetSchedule)
}

type nextPrayerResponse struct {
	Next  string `json:"next"`
	Hijri string `json:"hijri_date,omitempty"`
}

func (h *PrayerHandler) GetNext(ctx *xhttp.RequestCtx) {
	name, day := h.ticker.Current()
	if name == "" {
		writeError(ctx, 503, "schedule not loaded yet")
		return
	}
	resp := nextPrayerResponse{Next: name}
	if day != nil {
		resp.Hijri = day.Hijri
	}
	writeJSON(ctx, 200, resp)
}

func (h *PrayerHandler) GetSchedule(ctx *xhttp.RequestCtx) {
	_, day := h.ticker.Current()
	if day == nil {
		writeError(ctx, 503, "schedule not loaded yet")
		return
	}
	writeJSON(ctx, 200, day)
}
