package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/billdesk/billdesk-api/internal/application/service"
	"github.com/billdesk/billdesk-api/internal/domain/enum"
	"github.com/billdesk/billdesk-api/internal/domain/repository"
	"github.com/billdesk/billdesk-api/internal/presentation/http/dto/response"
	"github.com/billdesk/billdesk-api/pkg/pagination"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billingService *service.BillingService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *service.BillingService) *BillHandler {
	return &BillHandler{billingService: billingService}
}

// Create handles drafting a new bill
func (h *BillHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID uint `json:"customer_id" binding:"required"`
		Lines      []struct {
			ProductID uint `json:"product_id"`
			Quantity  int  `json:"quantity"`
		} `json:"lines" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.DraftBillInput{CustomerID: req.CustomerID}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, service.LineSelection{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	bill, err := h.billingService.DraftBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// List handles listing bills with optional status and customer filters
func (h *BillHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.BillFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if statusStr := c.Query("status"); statusStr != "" {
		var status enum.PaymentStatus
		switch strings.ToLower(statusStr) {
		case "pending":
			status = enum.PaymentStatusPending
		case "paid":
			status = enum.PaymentStatusPaid
		default:
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	if customerStr := c.Query("customer_id"); customerStr != "" {
		customerID, err := strconv.ParseUint(customerStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID filter")
			return
		}
		id := uint(customerID)
		params.CustomerID = &id
	}

	result, err := h.billingService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Get handles getting a single bill with its line items
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}
