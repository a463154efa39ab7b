package service

import (
	"context"
	"fmt"

	"github.com/billdesk/billdesk-api/internal/config"
	"github.com/billdesk/billdesk-api/internal/domain/entity"
	"github.com/billdesk/billdesk-api/internal/domain/enum"
	"github.com/billdesk/billdesk-api/internal/domain/repository"
	"github.com/billdesk/billdesk-api/pkg/apperror"
	"github.com/billdesk/billdesk-api/pkg/upi"
)

// PaymentService settles drafted bills and produces UPI payment intents
type PaymentService struct {
	billRepo repository.BillRepository
	cfg      config.PaymentConfig
}

// NewPaymentService creates a new payment service
func NewPaymentService(billRepo repository.BillRepository, cfg config.PaymentConfig) *PaymentService {
	return &PaymentService{
		billRepo: billRepo,
		cfg:      cfg,
	}
}

// CardDetails carries the card fields for card settlements. They are required
// to be present but are never verified against a payment network; card
// processing is a stub.
type CardDetails struct {
	Number string
	Expiry string
	CVV    string
}

// SettleBillInput represents the settle payment input
type SettleBillInput struct {
	BillID uint
	Method string
	Card   *CardDetails
}

// SettleBill records the payment method on a Pending bill, marks it Paid and
// decrements stock for every line item, all as one transaction. Settling an
// already-paid bill is rejected so stock is never decremented twice.
func (s *PaymentService) SettleBill(ctx context.Context, input *SettleBillInput) (*entity.Bill, error) {
	method, ok := enum.ParsePaymentMethod(input.Method)
	if !ok {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unsupported payment method %q", input.Method))
	}

	if method == enum.PaymentMethodCard {
		if err := validateCard(input.Card); err != nil {
			return nil, err
		}
	}

	bill, err := s.billRepo.GetWithItems(ctx, input.BillID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if bill.IsPaid() {
		return nil, apperror.NewConflictError("Bill is already paid")
	}

	settled, err := s.billRepo.Settle(ctx, bill, method)
	if err != nil {
		return nil, err
	}
	if !settled {
		// Lost the race against another settlement of the same bill
		return nil, apperror.NewConflictError("Bill is already paid")
	}

	return s.billRepo.GetWithItems(ctx, bill.ID)
}

// validateCard checks that the card fields are present. Nothing more: the
// dummy processor accepts whatever the cashier typed.
func validateCard(card *CardDetails) error {
	var fields []apperror.FieldError
	if card == nil {
		card = &CardDetails{}
	}
	if card.Number == "" {
		fields = append(fields, apperror.FieldError{Field: "card_number", Message: "Card number is required"})
	}
	if card.Expiry == "" {
		fields = append(fields, apperror.FieldError{Field: "expiry", Message: "Expiry is required"})
	}
	if card.CVV == "" {
		fields = append(fields, apperror.FieldError{Field: "cvv", Message: "CVV is required"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// UPIIntentResult is the payment request handed to the frontend for QR rendering
type UPIIntentResult struct {
	BillID   uint    `json:"bill_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	URI      string  `json:"uri"`
}

// UPIIntent builds the UPI deep link for a bill's total. It reads nothing but
// the bill and writes nothing, so it can be called any number of times while
// the customer is deciding whether to scan.
func (s *PaymentService) UPIIntent(ctx context.Context, billID uint) (*UPIIntentResult, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	intent := upi.Intent{
		PayeeVPA:  s.cfg.UPIPayeeVPA,
		PayeeName: s.cfg.UPIPayeeName,
		Amount:    bill.Total,
		Currency:  s.cfg.Currency,
	}

	return &UPIIntentResult{
		BillID:   bill.ID,
		Amount:   bill.GetTotalDecimal(),
		Currency: s.cfg.Currency,
		URI:      intent.URI(),
	}, nil
}
