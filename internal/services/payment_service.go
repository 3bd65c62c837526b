// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/damaiputra/living-backend/internal/config"
	"github.com/damaiputra/living-backend/internal/models"
	"github.com/damaiputra/living-backend/internal/utils"
)

// PaymentService collects renovation deposits through Stripe. The deposit
// amount lives on the permit ticket; confirming the payment records it there.
type PaymentService struct {
	db     *gorm.DB
	config *config.Config
}

type CreateDepositIntentRequest struct {
	TicketID uuid.UUID `json:"ticket_id" validate:"required"`
}

type DepositIntentResponse struct {
	ClientSecret string  `json:"client_secret"`
	PaymentID    string  `json:"payment_id"`
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

type ConfirmDepositRequest struct {
	TicketID        uuid.UUID `json:"ticket_id" validate:"required"`
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
}

func NewPaymentService(db *gorm.DB, config *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
	}
}

// CreateDepositIntent opens a Stripe payment intent covering the required
// deposit on the caller's ticket.
func (s *PaymentService) CreateDepositIntent(userID uuid.UUID, req *CreateDepositIntentRequest) (*DepositIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var ticket models.PermitTicket
	if err := s.db.First(&ticket, req.TicketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("permit ticket not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if ticket.UserID != userID {
		return nil, errors.New("unauthorized: ticket belongs to another resident")
	}
	if ticket.DepositRequired == nil || *ticket.DepositRequired <= 0 {
		return nil, errors.New("ticket has no deposit requirement")
	}
	if ticket.DepositPaid != nil && *ticket.DepositPaid >= *ticket.DepositRequired {
		return nil, errors.New("deposit already paid")
	}

	currency := s.config.Payment.Currency
	// IDR is a zero-decimal currency in Stripe.
	amount := int64(*ticket.DepositRequired)
	if currency != "idr" {
		amount = int64(*ticket.DepositRequired * 100)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("ticket_id", ticket.ID.String())
	params.AddMetadata("reference_number", ticket.ReferenceNumber)
	params.AddMetadata("user_id", userID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &DepositIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
		Amount:       *ticket.DepositRequired,
		Currency:     currency,
	}, nil
}

// ConfirmDeposit records a succeeded payment intent against the ticket.
func (s *PaymentService) ConfirmDeposit(userID uuid.UUID, req *ConfirmDepositRequest) (*models.PermitTicket, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	var ticket models.PermitTicket
	if err := s.db.First(&ticket, req.TicketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("permit ticket not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if ticket.UserID != userID {
		return nil, errors.New("unauthorized: ticket belongs to another resident")
	}
	if pi.Metadata["ticket_id"] != ticket.ID.String() {
		return nil, errors.New("payment intent does not belong to this ticket")
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		paid := *ticket.DepositRequired
		ticket.DepositPaid = &paid
		ticket.DepositPaymentRef = pi.ID
	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation, stripe.PaymentIntentStatusProcessing:
		return nil, errors.New("payment is still pending")
	default:
		return nil, errors.New("payment failed")
	}

	if err := s.db.Save(&ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	return &ticket, nil
}
