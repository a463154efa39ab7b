package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billdesk/billdesk-api/internal/config"
	"github.com/billdesk/billdesk-api/internal/domain/entity"
	"github.com/billdesk/billdesk-api/internal/domain/enum"
	"github.com/billdesk/billdesk-api/internal/infrastructure/repository"
	"github.com/billdesk/billdesk-api/pkg/apperror"
)

func newPaymentService(t *testing.T) (*PaymentService, *BillingService, *testDeps) {
	t.Helper()
	db := setupTestDB(t)
	deps := &testDeps{db: db}
	billRepo := repository.NewBillRepository(db)
	billing := NewBillingService(
		billRepo,
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
	)
	payment := NewPaymentService(billRepo, config.PaymentConfig{
		UPIPayeeVPA:  "merchant@upi",
		UPIPayeeName: "Merchant",
		Currency:     "INR",
	})
	return payment, billing, deps
}

func draftBill(t *testing.T, billing *BillingService, customerID uint, lines []LineSelection) *entity.Bill {
	t.Helper()
	bill, err := billing.DraftBill(context.Background(), &DraftBillInput{
		CustomerID: customerID,
		Lines:      lines,
	})
	require.NoError(t, err)
	return bill
}

func TestSettleBillCash(t *testing.T) {
	payment, billing, deps := newPaymentService(t)
	ctx := context.Background()

	customer := seedCustomer(t, deps.db, "Asha")
	pen := seedProduct(t, deps.db, "Pen", 1000, 5)
	bill := draftBill(t, billing, customer.ID, []LineSelection{{ProductID: pen.ID, Quantity: 3}})

	settled, err := payment.SettleBill(ctx, &SettleBillInput{
		BillID: bill.ID,
		Method: "Cash",
	})
	require.NoError(t, err)

	assert.True(t, settled.IsPaid())
	assert.Equal(t, enum.PaymentMethodCash, settled.PaymentMethod)

	// Stock moves at settlement
	fresh, err := repository.NewProductRepository(deps.db).GetByID(ctx, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Stock)
}

func TestSettleBillTwiceConflicts(t *testing.T) {
	payment, billing, deps := newPaymentService(t)
	ctx := context.Background()

	customer := seedCustomer(t, deps.db, "Asha")
	pen := seedProduct(t, deps.db, "Pen", 1000, 5)
	bill := draftBill(t, billing, customer.ID, []LineSelection{{ProductID: pen.ID, Quantity: 3}})

	_, err := payment.SettleBill(ctx, &SettleBillInput{BillID: bill.ID, Method: "Cash"})
	require.NoError(t, err)

	_, err = payment.SettleBill(ctx, &SettleBillInput{BillID: bill.ID, Method: "UPI"})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
	assert.Equal(t, "Bill is already paid", appErr.Message)

	// Stock was only decremented once
	fresh, err := repository.NewProductRepository(deps.db).GetByID(ctx, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Stock)
}

func TestSettleBillMethodIsCaseInsensitive(t *testing.T) {
	payment, billing, deps := newPaymentService(t)

	customer := seedCustomer(t, deps.db, "Asha")
	pen := seedProduct(t, deps.db, "Pen", 1000, 5)
	bill := draftBill(t, billing, customer.ID, []LineSelection{{ProductID: pen.ID, Quantity: 1}})

	settled, err := payment.SettleBill(context.Background(), &SettleBillInput{
		BillID: bill.ID,
		Method: "upi",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentMethodUPI, settled.PaymentMethod)
}

func TestSettleBillUnsupportedMethod(t *testing.T) {
	payment, _, _ := newPaymentService(t)

	_, err := payment.SettleBill(context.Background(), &SettleBillInput{
		BillID: 1,
		Method: "Cheque",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestSettleBillCardRequiresDetails(t *testing.T) {
	payment, billing, deps := newPaymentService(t)

	customer := seedCustomer(t, deps.db, "Asha")
	pen := seedProduct(t, deps.db, "Pen", 1000, 5)
	bill := draftBill(t, billing, customer.ID, []LineSelection{{ProductID: pen.ID, Quantity: 1}})

	_, err := payment.SettleBill(context.Background(), &SettleBillInput{
		BillID: bill.ID,
		Method: "Card",
		Card:   &CardDetails{Number: "4111111111111111"},
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "expiry", appErr.Errors[0].Field)
	assert.Equal(t, "cvv", appErr.Errors[1].Field)
}

func TestSettleBillCardWithDetails(t *testing.T) {
	payment, billing, deps := newPaymentService(t)

	customer := seedCustomer(t, deps.db, "Asha")
	pen := seedProduct(t, deps.db, "Pen", 1000, 5)
	bill := draftBill(t, billing, customer.ID, []LineSelection{{ProductID: pen.ID, Quantity: 2}})

	settled, err := payment.SettleBill(context.Background(), &SettleBillInput{
		BillID: bill.ID,
		Method: "Card",
		Card: &CardDetails{
			Number: "4111111111111111",
			Expiry: "12/27",
			CVV:    "123",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentMethodCard, settled.PaymentMethod)
}

func TestSettleBillNotFound(t *testing.T) {
	payment, _, _ := newPaymentService(t)

	_, err := payment.SettleBill(context.Background(), &SettleBillInput{
		BillID: 42,
		Method: "Cash",
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUPIIntent(t *testing.T) {
	payment, billing, deps := newPaymentService(t)

	customer := seedCustomer(t, deps.db, "Asha")
	pen := seedProduct(t, deps.db, "Pen", 1000, 5)
	bill := draftBill(t, billing, customer.ID, []LineSelection{{ProductID: pen.ID, Quantity: 3}})

	intent, err := payment.UPIIntent(context.Background(), bill.ID)
	require.NoError(t, err)

	assert.Equal(t, bill.ID, intent.BillID)
	assert.Equal(t, 30.0, intent.Amount)
	assert.Equal(t, "INR", intent.Currency)
	assert.Equal(t, "upi://pay?pa=merchant%40upi&pn=Merchant&am=30.00&cu=INR", intent.URI)
}

func TestUPIIntentNotFound(t *testing.T) {
	payment, _, _ := newPaymentService(t)

	_, err := payment.UPIIntent(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
