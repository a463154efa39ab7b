package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/billdesk/billdesk-api/internal/application/service"
	"github.com/billdesk/billdesk-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Settle handles settling a bill's payment
func (h *PaymentHandler) Settle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method" binding:"required"`
		CardNumber    string `json:"card_number"`
		Expiry        string `json:"expiry"`
		CVV           string `json:"cvv"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.SettleBillInput{
		BillID: id,
		Method: req.PaymentMethod,
	}
	if req.CardNumber != "" || req.Expiry != "" || req.CVV != "" {
		input.Card = &service.CardDetails{
			Number: req.CardNumber,
			Expiry: req.Expiry,
			CVV:    req.CVV,
		}
	}

	bill, err := h.paymentService.SettleBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", bill)
}

// UPIIntent handles generating a UPI payment intent for a bill
func (h *PaymentHandler) UPIIntent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	intent, err := h.paymentService.UPIIntent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "UPI intent generated successfully", intent)
}
