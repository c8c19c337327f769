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

type EnrollmentService interface {
	Apply(ctx context.Context, p model.EnrollmentCreateRequest) (*model.Enrollment, error)
	Decide(ctx context.Context, id int64, approve bool) error
	Get(ctx context.Context, id int64) (*model.Enrollment, error)
	List(ctx context.Context, f model.EnrollmentFilter) ([]*model.Enrollment, int64, error)
}

type EnrollmentHandler struct {
	svc EnrollmentService
}

func NewEnrollmentHandler(svc EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{svc: svc}
}

func RegisterEnrollmentRoutes(e *router.Group, h *EnrollmentHandler) {
	e.POST("/enrollments", h.CreateEnrollment)
	e.GET("/enrollments", h.ListEnrollments)
	e.GET("/enrollments/{id}", h.GetEnrollment)
	e.POST("/enrollments/{id}/approve", h.Approve)
	e.POST("/enrollments/{id}/reject", h.Reject)
}

type createEnrollmentRequest struct {
	Course       string `json:"course"`
	StudentName  string `json:"student_name"`
	GuardianName string `json:"guardian_name"`
	Age          int    `json:"age"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

type enrollmentListResponse struct {
	Items []*model.Enrollment `json:"items"`
	Total int64               `json:"total"`
}

func (h *EnrollmentHandler) CreateEnrollment(ctx *xhttp.RequestCtx) {
	var req createEnrollmentRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	e, err := h.svc.Apply(ctx, model.EnrollmentCreateRequest{
		Course:       req.Course,
		StudentName:  req.StudentName,
		GuardianName: req.GuardianName,
		Age:          req.Age,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 201, e)
}

func (h *EnrollmentHandler) GetEnrollment(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	e, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, e)
}

func (h *EnrollmentHandler) Approve(ctx *xhttp.RequestCtx) {
	h.decide(ctx, true)
}

func (h *EnrollmentHandler) Reject(ctx *xhttp.RequestCtx) {
	h.decide(ctx, false)
}

func (h *EnrollmentHandler) decide(ctx *xhttp.RequestCtx, approve bool) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	if err := h.svc.Decide(ctx, id, approve); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			writeError(ctx, 404, err.Error())
		case errors.Is(err, services.ErrAlreadyDecided):
			writeError(ctx, 409, err.Error())
		default:
			writeError(ctx, 500, err.Error())
		}
		return
	}
	e, err := h.svc.Get(ctx, id)
	if err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, e)
}

func (h *EnrollmentHandler) ListEnrollments(ctx *xhttp.RequestCtx) {
	var f model.EnrollmentFilter

	if v := query(ctx, "course"); v != "" {
		f.Course = &v
	}
	if v := query(ctx, "status"); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				f.Statuses = append(f.Statuses, model.EnrollmentStatus(part))
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

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, enrollmentListResponse{Items: items, Total: total})
}
