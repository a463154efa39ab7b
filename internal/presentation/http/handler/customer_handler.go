package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/billdesk/billdesk-api/internal/application/service"
	"github.com/billdesk/billdesk-api/internal/presentation/http/dto/response"
	"github.com/billdesk/billdesk-api/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req struct {
		Name  string  `json:"name" binding:"required"`
		Phone *string `json:"phone"`
		Email *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}
