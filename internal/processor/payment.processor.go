package processor

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/queue"
	"github.com/alnoor/community-platform/internal/services"
	"github.com/alnoor/community-platform/pkg/logger"
	"github.com/alnoor/community-platform/pkg/prom"
)

type DonationConfirmer interface {
	Confirm(ctx context.Context, donationID int64) (*model.Donation, error)
	Fail(ctx context.Context, donationID int64) error
}

type PaymentProcessor struct {
	donations   DonationConfirmer
	idempotency *IdempotencyService
}

func NewPaymentProcessor(donations DonationConfirmer, idempotency *IdempotencyService) *PaymentProcessor {
	return &PaymentProcessor{
		donations:   donations,
		idempotency: idempotency,
	}
}

func (p *PaymentProcessor) GetType() string {
	return "payment_confirmation"
}

// Process applies a payment confirmation to its donation with idempotency guarantees
func (p *PaymentProcessor) Process(ctx context.Context, queueMessage *queue.Message) error {
	// Step 1: Parse confirmation
	var conf model.PaymentConfirmation
	err := json.Unmarshal(queueMessage.Data, &conf)
	if err != nil {
		logger.Error("Failed to unmarshal payment confirmation", "error", err)
		return err // Return error to trigger DLQ move
	}
	if conf.Reference == "" {
		logger.Error("Payment confirmation missing reference", "donation_id", conf.DonationID)
		return errors.New("payment confirmation missing reference")
	}

	// Step 2: Acquire processing lock and check idempotency, keyed by gateway reference
	procCtx, err := p.idempotency.AcquireProcessingLock(ctx, conf.Reference)
	if err != nil {
		if errors.Is(err, ErrAlreadyProcessed) {
			// Confirmation already applied - ACK to remove from queue
			logger.Info("Confirmation already processed, skipping", "reference", conf.Reference)
			return nil
		}
		if errors.Is(err, ErrMaxRetriesExceeded) {
			// Max retries exceeded - ACK to move to DLQ
			logger.Error("Max retries exceeded", "reference", conf.Reference)
			return nil
		}
		if errors.Is(err, ErrLockAcquireFailed) {
			// Another consumer is processing - NACK to retry later
			logger.Info("Lock held by another consumer, will retry", "reference", conf.Reference)
			return errors.New("lock held by another consumer")
		}
		// Unexpected error - NACK to retry
		logger.Error("Failed to acquire lock", "reference", conf.Reference, "error", err)
		return err
	}

	// Ensure lock is released on exit (if not already marked success/failure)
	defer func() {
		if procCtx.lockAcquired {
			p.idempotency.ReleaseLock(ctx, procCtx)
		}
	}()

	logger.Info("Processing payment confirmation",
		"reference", conf.Reference,
		"donation_id", conf.DonationID,
		"succeeded", conf.Succeeded,
		"retry_count", procCtx.RetryCount,
		"is_retry", procCtx.IsRetry)

	started := time.Now()

	// Step 3: Apply the confirmation
	if conf.Succeeded {
		donation, err := p.donations.Confirm(ctx, conf.DonationID)
		if err != nil {
			if errors.Is(err, services.ErrAlreadySettled) || errors.Is(err, services.ErrNotFound) {
				// Terminal outcome, retrying cannot change it - ACK
				logger.Warn("Confirmation not applicable",
					"reference", conf.Reference,
					"donation_id", conf.DonationID,
					"error", err)
				if markErr := p.idempotency.MarkSuccess(ctx, procCtx); markErr != nil {
					logger.Error("Failed to mark success", "reference", conf.Reference, "error", markErr)
				}
				return nil
			}
			logger.Error("Failed to confirm donation",
				"reference", conf.Reference,
				"donation_id", conf.DonationID,
				"error", err)
			if markErr := p.idempotency.MarkFailure(ctx, procCtx, err); markErr != nil {
				logger.Error("Failed to mark failure", "reference", conf.Reference, "error", markErr)
			}
			return err // NACK to retry from queue
		}

		prom.IncDonationCompleted(string(donation.Method))
		prom.AddConfirmationDuration(time.Since(started).Seconds(), "completed")

		logger.Info("Donation completed",
			"reference", conf.Reference,
			"donation_id", conf.DonationID,
			"amount", donation.Amount,
			"retry_count", procCtx.RetryCount)

		if markErr := p.idempotency.MarkSuccess(ctx, procCtx); markErr != nil {
			logger.Error("Failed to mark success", "reference", conf.Reference, "error", markErr)
			// Continue - donation was confirmed
		}
		return nil // ACK message
	}

	// Gateway reported failure - mark the donation failed
	err = p.donations.Fail(ctx, conf.DonationID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadySettled) || errors.Is(err, services.ErrNotFound) {
			logger.Warn("Failure report not applicable",
				"reference", conf.Reference,
				"donation_id", conf.DonationID,
				"error", err)
			if markErr := p.idempotency.MarkSuccess(ctx, procCtx); markErr != nil {
				logger.Error("Failed to mark success", "reference", conf.Reference, "error", markErr)
			}
			return nil
		}
		logger.Error("Failed to mark donation failed",
			"reference", conf.Reference,
			"donation_id", conf.DonationID,
			"error", err)
		if markErr := p.idempotency.MarkFailure(ctx, procCtx, err); markErr != nil {
			logger.Error("Failed to mark failure", "reference", conf.Reference, "error", markErr)
		}
		return err
	}

	prom.AddConfirmationDuration(time.Since(started).Seconds(), "failed")

	logger.Info("Donation marked failed",
		"reference", conf.Reference,
		"donation_id", conf.DonationID,
		"reason", conf.Reason)

	if markErr := p.idempotency.MarkSuccess(ctx, procCtx); markErr != nil {
		logger.Error("Failed to mark success", "reference", conf.Reference, "error", markErr)
	}
	return nil
}
