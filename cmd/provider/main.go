package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PaymentStatus represents the outcome of a collection attempt
type PaymentStatus string

const (
	StatusCollected PaymentStatus = "COLLECTED"
	StatusDeclined  PaymentStatus = "DECLINED"
	StatusPending   PaymentStatus = "PENDING"
)

// CollectRequest represents a request to collect a pending donation
type CollectRequest struct {
	DonationID int64   `json:"donation_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Method     string  `json:"method" binding:"required"`
}

// CollectResponse represents the gateway's answer to a collection attempt
type CollectResponse struct {
	DonationID  int64         `json:"donation_id"`
	Reference   string        `json:"reference"`
	Status      PaymentStatus `json:"status"`
	CollectedAt *time.Time    `json:"collected_at,omitempty"`
	ErrorCode   string        `json:"error_code,omitempty"`
	ErrorMsg    string        `json:"error_msg,omitempty"`
	GatewayID   string        `json:"gateway_id"`
	ProcessedAt time.Time     `json:"processed_at"`
}

// StatusCheckResponse represents a collection status lookup
type StatusCheckResponse struct {
	Reference   string        `json:"reference"`
	Status      PaymentStatus `json:"status"`
	CollectedAt *time.Time    `json:"collected_at,omitempty"`
	ErrorCode   string        `json:"error_code,omitempty"`
	ErrorMsg    string        `json:"error_msg,omitempty"`
	GatewayID   string        `json:"gateway_id"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status      string    `json:"status"`
	GatewayID   string    `json:"gateway_id"`
	Timestamp   time.Time `json:"timestamp"`
	SuccessRate float64   `json:"success_rate"`
}

// TimetableResponse represents one day of prayer times
type TimetableResponse struct {
	Times     map[string]string `json:"times"`
	HijriDate string            `json:"hijri_date"`
}

// MockGateway simulates a payment gateway and a prayer timetable feed
type MockGateway struct {
	successRate float64
	minDelay    time.Duration
	maxDelay    time.Duration
	gatewayID   string
	rng         *rand.Rand
}

// NewMockGateway creates a new mock gateway instance
func NewMockGateway(successRate float64, minDelay, maxDelay time.Duration) *MockGateway {
	return &MockGateway{
		successRate: successRate,
		minDelay:    minDelay,
		maxDelay:    maxDelay,
		gatewayID:   "MOCK_GATEWAY_" + uuid.New().String()[:8],
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// simulateCollection simulates the payment collection process
func (m *MockGateway) simulateCollection(req *CollectRequest) *CollectResponse {
	// Calculate delay
	delay := m.randomDelay()

	// Wallet rails clear faster than bank transfers
	if req.Method != "bank_transfer" {
		delay = delay / 2
	}

	// Simulate network delay
	time.Sleep(delay)

	response := &CollectResponse{
		DonationID:  req.DonationID,
		Reference:   "PAY-" + uuid.New().String()[:13],
		GatewayID:   m.gatewayID,
		ProcessedAt: time.Now(),
	}

	// Determine success or failure
	if m.shouldSucceed() {
		now := time.Now()
		response.Status = StatusCollected
		response.CollectedAt = &now

		log.Info().
			Int64("donation_id", req.DonationID).
			Float64("amount", req.Amount).
			Dur("delay", delay).
			Msg("Payment collected successfully")
	} else {
		response.Status = StatusDeclined
		response.ErrorCode = m.randomErrorCode()
		response.ErrorMsg = m.errorMessage(response.ErrorCode)

		log.Warn().
			Int64("donation_id", req.DonationID).
			Float64("amount", req.Amount).
			Str("error_code", response.ErrorCode).
			Msg("Payment collection failed")
	}

	return response
}

func (m *MockGateway) randomDelay() time.Duration {
	delta := m.maxDelay - m.minDelay
	randomDelta := time.Duration(m.rng.Int63n(int64(delta)))
	return m.minDelay + randomDelta
}

func (m *MockGateway) shouldSucceed() bool {
	return m.rng.Float64() < m.successRate
}

func (m *MockGateway) randomErrorCode() string {
	errorCodes := []string{
		"INSUFFICIENT_FUNDS",
		"NETWORK_ERROR",
		"TIMEOUT",
		"ACCOUNT_BLOCKED",
		"INVALID_ACCOUNT",
		"GATEWAY_REJECTED",
	}
	return errorCodes[m.rng.Intn(len(errorCodes))]
}

func (m *MockGateway) errorMessage(code string) string {
	msgs := map[string]string{
		"INSUFFICIENT_FUNDS": "The payer account has insufficient funds",
		"NETWORK_ERROR":      "Network connectivity issue with the wallet provider",
		"TIMEOUT":            "Payment collection timed out",
		"ACCOUNT_BLOCKED":    "The payer account is blocked",
		"INVALID_ACCOUNT":    "The account number is invalid or not in service",
		"GATEWAY_REJECTED":   "Gateway rejected the payment",
	}

	if msg, ok := msgs[code]; ok {
		return msg
	}
	return "Unknown error occurred"
}

// timetableFor produces a deterministic schedule for a date, drifting a few
// minutes over the year so consecutive days differ
func (m *MockGateway) timetableFor(date time.Time) TimetableResponse {
	drift := date.YearDay() % 20

	clock := func(base int) string {
		h := (base + drift) / 60
		mm := (base + drift) % 60
		meridiem := "AM"
		if h >= 12 {
			meridiem = "PM"
			if h > 12 {
				h -= 12
			}
		}
		if h == 0 {
			h = 12
		}
		return fmt.Sprintf("%d:%02d %s", h, mm, meridiem)
	}

	return TimetableResponse{
		Times: map[string]string{
			"Fajr":    clock(5*60 + 15),
			"Sunrise": clock(6*60 + 30),
			"Dhuhr":   clock(13*60 + 5),
			"Asr":     clock(16*60 + 30),
			"Maghrib": clock(18*60 + 15),
			"Isha":    clock(19*60 + 45),
		},
		HijriDate: fmt.Sprintf("%d Safar 1447 AH", (date.YearDay()%29)+1),
	}
}

// Handler struct holds the mock gateway and routes
type Handler struct {
	gateway *MockGateway
}

func NewHandler(gateway *MockGateway) *Handler {
	return &Handler{gateway: gateway}
}

// Collect handles single payment collection requests
func (h *Handler) Collect(c *gin.Context) {
	var req CollectRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	log.Info().
		Int64("donation_id", req.DonationID).
		Float64("amount", req.Amount).
		Str("method", req.Method).
		Msg("Received payment collection request")

	response := h.gateway.simulateCollection(&req)

	statusCode := http.StatusOK
	if response.Status == StatusDeclined {
		statusCode = http.StatusAccepted // 202: accepted but declined
	}

	c.JSON(statusCode, response)
}

// GetStatus handles collection status check requests
func (h *Handler) GetStatus(c *gin.Context) {
	reference := c.Param("reference")

	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "reference is required",
		})
		return
	}

	// Simulate API delay
	time.Sleep(100 * time.Millisecond)

	// For demo, return random status
	response := StatusCheckResponse{
		Reference: reference,
		GatewayID: h.gateway.gatewayID,
	}

	if h.gateway.shouldSucceed() {
		now := time.Now()
		response.Status = StatusCollected
		response.CollectedAt = &now
	} else {
		response.Status = StatusDeclined
		response.ErrorCode = "TIMEOUT"
		response.ErrorMsg = "Payment collection timed out"
	}

	c.JSON(http.StatusOK, response)
}

// GetTimetable serves the daily prayer timetable feed
func (h *Handler) GetTimetable(c *gin.Context) {
	dateParam := c.Query("date")
	date := time.Now()
	if dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "date must be YYYY-MM-DD",
			})
			return
		}
		date = parsed
	}

	c.JSON(http.StatusOK, h.gateway.timetableFor(date))
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(c *gin.Context) {
	// Simulate 5% downtime
	if h.gateway.rng.Float64() < 0.05 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "Gateway temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		GatewayID:   h.gateway.gatewayID,
		Timestamp:   time.Now(),
		SuccessRate: h.gateway.successRate,
	})
}

// UpdateConfig allows changing gateway configuration at runtime
func (h *Handler) UpdateConfig(c *gin.Context) {
	var config struct {
		SuccessRate *float64 `json:"success_rate"`
	}

	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if config.SuccessRate != nil {
		if *config.SuccessRate >= 0 && *config.SuccessRate <= 1.0 {
			h.gateway.successRate = *config.SuccessRate
			log.Info().Float64("rate", *config.SuccessRate).Msg("Updated success rate")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Configuration updated",
		"success_rate": h.gateway.successRate,
	})
}

// SetupRouter configures all routes
func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	// Add request logging middleware
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Msg("Request processed")
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/payments/collect", handler.Collect)
		v1.GET("/payments/status/:reference", handler.GetStatus)
		v1.GET("/timetable", handler.GetTimetable)
		v1.GET("/health", handler.HealthCheck)
		v1.PUT("/config", handler.UpdateConfig)
	}

	// Root health check
	router.GET("/health", handler.HealthCheck)

	return router
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Get configuration from environment
	port := getEnv("PORT", "8081")
	successRate := getEnvFloat("SUCCESS_RATE", 1)
	minDelay := getEnvDuration("MIN_DELAY", 1*time.Second)
	maxDelay := getEnvDuration("MAX_DELAY", 5*time.Second)

	log.Info().
		Str("port", port).
		Float64("success_rate", successRate).
		Dur("min_delay", minDelay).
		Dur("max_delay", maxDelay).
		Msg("Starting Mock Payment Gateway")

	// Create mock gateway
	gateway := NewMockGateway(successRate, minDelay, maxDelay)
	handler := NewHandler(gateway)
	router := SetupRouter(handler)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
