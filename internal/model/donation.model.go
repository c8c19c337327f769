package model

import (
	"errors"
	"strings"
	"time"
)

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
)

// CanTransition reports whether a donation may move from s to next.
// Completed and failed are terminal.
func (s DonationStatus) CanTransition(next DonationStatus) bool {
	if s != DonationStatusPending {
		return false
	}
	return next == DonationStatusCompleted || next == DonationStatusFailed
}

type DonationType string

const (
	DonationTypeOneTime DonationType = "one-time"
	DonationTypeMonthly DonationType = "monthly"
	DonationTypeZakat   DonationType = "zakat"
	DonationTypeSadaqah DonationType = "sadaqah"
)

type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentEasypaisa    PaymentMethod = "easypaisa"
	PaymentJazzcash     PaymentMethod = "jazzcash"
	PaymentNayapay      PaymentMethod = "nayapay"
	PaymentCryptoTRC20  PaymentMethod = "crypto_trc20"
	PaymentCryptoBNB    PaymentMethod = "crypto_bnb"
)

type Donation struct {
	ID            int64          `json:"id"             db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	CampaignID    *int64         `json:"campaign_id"    db:"campaign_id"    gorm:"column:campaign_id;index"`
	Campaign      *Campaign      `json:"-"                                  gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:SET NULL"`
	Amount        float64        `json:"amount"         db:"amount"         gorm:"column:amount;not null"`
	Type          DonationType   `json:"type"           db:"type"           gorm:"column:type;not null"`
	Category      string         `json:"category"       db:"category"       gorm:"column:category"`
	DonorName     string         `json:"donor_name"     db:"donor_name"     gorm:"column:donor_name"`
	DonorEmail    string         `json:"donor_email"    db:"donor_email"    gorm:"column:donor_email"`
	Message       string         `json:"message"        db:"message"        gorm:"column:message"`
	Anonymous     bool           `json:"anonymous"      db:"anonymous"      gorm:"column:anonymous;not null;default:false"`
	Method        PaymentMethod  `json:"method"         db:"method"         gorm:"column:method;not null"`
	TransactionID string         `json:"transaction_id" db:"transaction_id" gorm:"column:transaction_id;index"`
	ProofURL      string         `json:"proof_url"      db:"proof_url"      gorm:"column:proof_url"`
	CryptoAddress string         `json:"crypto_address" db:"crypto_address" gorm:"column:crypto_address"`
	Status        DonationStatus `json:"status"         db:"status"         gorm:"column:status;not null;default:pending;index"`
	CreatedAt     time.Time      `json:"created_at"     db:"created_at"     gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `json:"updated_at"     db:"updated_at"     gorm:"column:updated_at;autoUpdateTime"`
}

func (Donation) TableName() string { return "donations" }

type DonationCreateRequest struct {
	CampaignID    *int64
	Amount        float64
	Type          DonationType
	Category      string
	DonorName     string
	DonorEmail    string
	Message       string
	Anonymous     bool
	Method        PaymentMethod
	TransactionID string
	ProofURL      string
	CryptoAddress string
}

// Validate checks the common fields and the per-method required set. Each
// payment method is treated as its own variant: wallet rails need a
// transaction reference, bank transfers accept a proof upload instead, and
// crypto methods need the receiving address.
func (p DonationCreateRequest) Validate() error {
	if p.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	switch p.Type {
	case DonationTypeOneTime, DonationTypeMonthly, DonationTypeZakat, DonationTypeSadaqah:
	default:
		return errors.New("unknown donation type")
	}
	if !p.Anonymous {
		if strings.TrimSpace(p.DonorName) == "" {
			return errors.New("donor name is required")
		}
		if strings.TrimSpace(p.DonorEmail) == "" {
			return errors.New("donor email is required")
		}
	}
	switch p.Method {
	case PaymentBankTransfer:
		if p.TransactionID == "" && p.ProofURL == "" {
			return errors.New("bank transfer requires a transaction reference or proof")
		}
	case PaymentEasypaisa, PaymentJazzcash, PaymentNayapay:
		if p.TransactionID == "" {
			return errors.New("wallet payment requires a transaction reference")
		}
	case PaymentCryptoTRC20, PaymentCryptoBNB:
		if p.CryptoAddress == "" {
			return errors.New("crypto payment requires an address")
		}
	default:
		return errors.New("unknown payment method")
	}
	return nil
}

type DonationFilter struct {
	CampaignID *int64
	Statuses   []DonationStatus
	Method     *PaymentMethod
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
	Desc       bool
}

// PaymentConfirmation is the event published when the payment provider
// signals the outcome of a pending donation.
type PaymentConfirmation struct {
	DonationID int64  `json:"donation_id"`
	Reference  string `json:"reference"`
	Succeeded  bool   `json:"succeeded"`
	Reason     string `json:"reason,omitempty"`
}
