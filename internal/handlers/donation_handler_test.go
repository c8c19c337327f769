package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/services"
	xhttp "github.com/alnoor/community-platform/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type MockDonationService struct {
	mock.Mock
}

func (m *MockDonationService) Create(ctx context.Context, p model.DonationCreateRequest) (*model.Donation, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationService) Get(ctx context.Context, id int64) (*model.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationService) List(ctx context.Context, f model.DonationFilter) ([]*model.Donation, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Donation), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationService) EnqueueConfirmation(ctx context.Context, conf model.PaymentConfirmation) (string, error) {
	args := m.Called(ctx, conf)
	return args.String(0), args.Error(1)
}

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func TestDonationHandler_CreateDonation(t *testing.T) {
	t.Run("successful donation submission", func(t *testing.T) {
		svc := new(MockDonationService)
		handler := NewDonationHandler(svc)

		reqBody := createDonationRequest{
			Amount:        5000,
			Type:          "zakat",
			DonorName:     "Ahmed",
			DonorEmail:    "ahmed@example.com",
			Method:        "easypaisa",
			TransactionID: "EP-100200",
		}
		bodyBytes, _ := json.Marshal(reqBody)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.DonationCreateRequest) bool {
			return p.Amount == 5000 && p.Method == model.PaymentEasypaisa
		})).Return(&model.Donation{ID: 1, Amount: 5000, Status: model.DonationStatusPending}, nil)

		ctx := setupTestContext("POST", "/donations", bodyBytes)
		handler.CreateDonation(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())

		var response model.Donation
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, model.DonationStatusPending, response.Status)

		svc.AssertExpectations(t)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := new(MockDonationService)
		handler := NewDonationHandler(svc)

		ctx := setupTestContext("POST", "/donations", []byte("not json"))
		handler.CreateDonation(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("unknown campaign maps to 404", func(t *testing.T) {
		svc := new(MockDonationService)
		handler := NewDonationHandler(svc)

		campaignID := int64(99)
		reqBody := createDonationRequest{
			CampaignID:    &campaignID,
			Amount:        1000,
			Type:          "one-time",
			DonorName:     "Ahmed",
			DonorEmail:    "ahmed@example.com",
			Method:        "jazzcash",
			TransactionID: "JC-1",
		}
		bodyBytes, _ := json.Marshal(reqBody)

		svc.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrNotFound)

		ctx := setupTestContext("POST", "/donations", bodyBytes)
		handler.CreateDonation(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}

func TestDonationHandler_ReceiveConfirmation(t *testing.T) {
	t.Run("confirmation is queued", func(t *testing.T) {
		svc := new(MockDonationService)
		handler := NewDonationHandler(svc)

		conf := model.PaymentConfirmation{DonationID: 1, Reference: "EP-1", Succeeded: true}
		bodyBytes, _ := json.Marshal(conf)

		svc.On("EnqueueConfirmation", mock.Anything, conf).Return("1700000000-0", nil)

		ctx := setupTestContext("POST", "/payments/confirmations", bodyBytes)
		handler.ReceiveConfirmation(ctx)

		assert.Equal(t, 202, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})
}

func TestDonationHandler_ListDonations(t *testing.T) {
	svc := new(MockDonationService)
	handler := NewDonationHandler(svc)

	svc.On("List", mock.Anything, mock.MatchedBy(func(f model.DonationFilter) bool {
		return len(f.Statuses) == 1 && f.Statuses[0] == model.DonationStatusCompleted && f.Limit == 10
	})).Return([]*model.Donation{{ID: 1}}, int64(1), nil)

	ctx := setupTestContext("GET", "/donations?status=completed&limit=10", nil)
	handler.ListDonations(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())

	var response donationListResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	assert.Equal(t, int64(1), response.Total)
	assert.Len(t, response.Items, 1)
}
