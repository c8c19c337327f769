package repository

import (
	"time"

	"github.com/alnoor/community-platform/internal/model"
)

type DonationEntity struct {
	ID            int64     `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	CampaignID    *int64    `db:"campaign_id"    gorm:"column:campaign_id;index"`
	Amount        float64   `db:"amount"         gorm:"column:amount;not null"`
	Type          string    `db:"type"           gorm:"column:type;not null"`
	Category      string    `db:"category"       gorm:"column:category"`
	DonorName     string    `db:"donor_name"     gorm:"column:donor_name"`
	DonorEmail    string    `db:"donor_email"    gorm:"column:donor_email"`
	Message       string    `db:"message"        gorm:"column:message"`
	Anonymous     bool      `db:"anonymous"      gorm:"column:anonymous;not null;default:false"`
	Method        string    `db:"method"         gorm:"column:method;not null"`
	TransactionID string    `db:"transaction_id" gorm:"column:transaction_id;index"`
	ProofURL      string    `db:"proof_url"      gorm:"column:proof_url"`
	CryptoAddress string    `db:"crypto_address" gorm:"column:crypto_address"`
	Status        string    `db:"status"         gorm:"column:status;not null;default:pending;index"`
	CreatedAt     time.Time `db:"created_at"     gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `db:"updated_at"     gorm:"column:updated_at;autoUpdateTime"`
}

func (DonationEntity) TableName() string { return "donations" }

func toDonationEntity(m *model.Donation) *DonationEntity {
	if m == nil {
		return nil
	}
	return &DonationEntity{
		ID:            m.ID,
		CampaignID:    m.CampaignID,
		Amount:        m.Amount,
		Type:          string(m.Type),
		Category:      m.Category,
		DonorName:     m.DonorName,
		DonorEmail:    m.DonorEmail,
		Message:       m.Message,
		Anonymous:     m.Anonymous,
		Method:        string(m.Method),
		TransactionID: m.TransactionID,
		ProofURL:      m.ProofURL,
		CryptoAddress: m.CryptoAddress,
		Status:        string(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toDonationModel(e *DonationEntity) *model.Donation {
	if e == nil {
		return nil
	}
	return &model.Donation{
		ID:            e.ID,
		CampaignID:    e.CampaignID,
		Amount:        e.Amount,
		Type:          model.DonationType(e.Type),
		Category:      e.Category,
		DonorName:     e.DonorName,
		DonorEmail:    e.DonorEmail,
		Message:       e.Message,
		Anonymous:     e.Anonymous,
		Method:        model.PaymentMethod(e.Method),
		TransactionID: e.TransactionID,
		ProofURL:      e.ProofURL,
		CryptoAddress: e.CryptoAddress,
		Status:        model.DonationStatus(e.Status),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toDonationModels(entities []*DonationEntity) []*model.Donation {
	if entities == nil {
		return nil
	}
	models := make([]*model.Donation, len(entities))
	for i, e := range entities {
		models[i] = toDonationModel(e)
	}
	return models
}
