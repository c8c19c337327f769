package fixtures

import (
	"time"

	"github.com/alnoor/community-platform/internal/model"
)

var (
	TestCampaignActive = model.Campaign{
		ID:     1,
		Name:   "Masjid Expansion",
		Goal:   500_000,
		Raised: 0,
		Active: true,
	}

	TestCampaignInactive = model.Campaign{
		ID:     2,
		Name:   "Winter Drive",
		Goal:   100_000,
		Raised: 100_000,
		Active: false,
	}
)

func NewTestDonation(campaignID *int64, amount float64, method model.PaymentMethod) *model.Donation {
	return &model.Donation{
		ID:         0,
		CampaignID: campaignID,
		Amount:     amount,
		Type:       model.DonationTypeOneTime,
		DonorName:  "Test Donor",
		DonorEmail: "donor@example.com",
		Method:     method,
		Status:     model.DonationStatusPending,
		CreatedAt:  time.Now(),
	}
}

func NewTestDonationCreateRequest(campaignID *int64, amount float64) model.DonationCreateRequest {
	return model.DonationCreateRequest{
		CampaignID:    campaignID,
		Amount:        amount,
		Type:          model.DonationTypeOneTime,
		DonorName:     "Test Donor",
		DonorEmail:    "donor@example.com",
		Method:        model.PaymentEasypaisa,
		TransactionID: "EP-TEST-0001",
	}
}

func NewTestConfirmation(donationID int64, succeeded bool) model.PaymentConfirmation {
	return model.PaymentConfirmation{
		DonationID: donationID,
		Reference:  "PAY-REF-TEST",
		Succeeded:  succeeded,
	}
}

var (
	ValidDonationAmounts = []float64{1, 500, 25_000, 1_000_000}

	InvalidDonationAmounts = []float64{0, -1, -500}
)

func DonationWithID(id int64) *model.Donation {
	d := NewTestDonation(nil, 500, model.PaymentEasypaisa)
	d.ID = id
	return d
}

func DonationCreateRequestBankTransfer() model.DonationCreateRequest {
	p := NewTestDonationCreateRequest(nil, 1000)
	p.Method = model.PaymentBankTransfer
	p.TransactionID = ""
	p.ProofURL = "https://cdn.example.com/receipts/1.jpg"
	return p
}

func DonationCreateRequestAnonymous() model.DonationCreateRequest {
	p := NewTestDonationCreateRequest(nil, 250)
	p.Anonymous = true
	p.DonorName = ""
	p.DonorEmail = ""
	return p
}

func DonationCreateRequestMissingReference() model.DonationCreateRequest {
	p := NewTestDonationCreateRequest(nil, 250)
	p.TransactionID = ""
	return p
}

func DonationFilterByCampaign(campaignID int64) model.DonationFilter {
	return model.DonationFilter{
		CampaignID: &campaignID,
		Limit:      50,
		Offset:     0,
		Desc:       false,
	}
}

func DonationFilterByStatus(statuses ...model.DonationStatus) model.DonationFilter {
	return model.DonationFilter{
		Statuses: statuses,
		Limit:    50,
		Offset:   0,
		Desc:     false,
	}
}

func DonationFilterByTimeRange(from, to time.Time) model.DonationFilter {
	return model.DonationFilter{
		From:   &from,
		To:     &to,
		Limit:  50,
		Offset: 0,
		Desc:   false,
	}
}

func NewTestEnrollmentCreateRequest(course string) model.EnrollmentCreateRequest {
	return model.EnrollmentCreateRequest{
		Course:       course,
		StudentName:  "Test Student",
		GuardianName: "Test Guardian",
		Age:          10,
		Email:        "guardian@example.com",
	}
}

func NewTestMessageCreateRequest(subject string) model.MessageCreateRequest {
	return model.MessageCreateRequest{
		Name:    "Test Sender",
		Email:   "sender@example.com",
		Subject: subject,
		Body:    "Assalamu alaikum, I have a question.",
	}
}
