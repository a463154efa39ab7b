package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/billdesk/billdesk-api/internal/application/service"
	"github.com/billdesk/billdesk-api/internal/config"
	"github.com/billdesk/billdesk-api/internal/infrastructure/database"
	"github.com/billdesk/billdesk-api/internal/infrastructure/repository"
	"github.com/billdesk/billdesk-api/internal/presentation/http/handler"
	"github.com/billdesk/billdesk-api/pkg/printer"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		App: config.AppConfig{Name: "billdesk-api", Env: "test"},
		Billing: config.BillingConfig{
			LowStockThreshold: 10,
		},
		Payment: config.PaymentConfig{
			UPIPayeeVPA:  "merchant@upi",
			UPIPayeeName: "Merchant",
			Currency:     "INR",
		},
		Printer: config.PrinterConfig{Type: "none", Width: 32},
	}

	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	billRepo := repository.NewBillRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo, cfg.Billing.LowStockThreshold)
	billingService := service.NewBillingService(billRepo, customerRepo, productRepo)
	paymentService := service.NewPaymentService(billRepo, cfg.Payment)
	dashboardService := service.NewDashboardService(analyticsRepo, cfg.Billing.LowStockThreshold)
	printerService := service.NewPrinterService(printer.NewNullPrinter(), billRepo, cfg.Printer.Type, cfg.App.Name, cfg.Printer.Width)

	handlers := &Handlers{
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService),
		Bill:      handler.NewBillHandler(billingService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	return Setup(handlers, &Deps{Cfg: cfg, IdempotencyRepo: idempotencyRepo})
}

func doJSON(router *gin.Engine, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func createCustomer(t *testing.T, router *gin.Engine, name string) uint {
	t.Helper()
	w, body := doJSON(router, "POST", "/api/v1/customers", gin.H{"name": name}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	data := body["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func createProduct(t *testing.T, router *gin.Engine, name string, price float64, stock int) uint {
	t.Helper()
	w, body := doJSON(router, "POST", "/api/v1/products", gin.H{
		"name":  name,
		"price": price,
		"stock": stock,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	data := body["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(t)

	w, body := doJSON(router, "GET", "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestBillingFlow(t *testing.T) {
	router := setupRouter(t)

	customerID := createCustomer(t, router, "Asha")
	penID := createProduct(t, router, "Pen", 10.00, 5)
	notebookID := createProduct(t, router, "Notebook", 20.00, 1)

	// Draft a bill; the notebook line exceeds stock and is dropped
	w, body := doJSON(router, "POST", "/api/v1/bills", gin.H{
		"customer_id": customerID,
		"lines": []gin.H{
			{"product_id": penID, "quantity": 3},
			{"product_id": notebookID, "quantity": 10},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	bill := body["data"].(map[string]interface{})
	billID := uint(bill["id"].(float64))
	assert.Equal(t, 30.0, bill["total"])
	assert.Equal(t, "Pending", bill["payment_status"])
	assert.Len(t, bill["items"].([]interface{}), 1)

	// UPI intent before settling
	w, body = doJSON(router, "GET", fmt.Sprintf("/api/v1/bills/%d/payment/upi", billID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	intent := body["data"].(map[string]interface{})
	assert.Equal(t, "upi://pay?pa=merchant%40upi&pn=Merchant&am=30.00&cu=INR", intent["uri"])

	// Settle with cash
	w, body = doJSON(router, "POST", fmt.Sprintf("/api/v1/bills/%d/payment", billID), gin.H{
		"payment_method": "Cash",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	settled := body["data"].(map[string]interface{})
	assert.Equal(t, "Paid", settled["payment_status"])
	assert.Equal(t, "Cash", settled["payment_method"])

	// Stock decremented
	w, body = doJSON(router, "GET", fmt.Sprintf("/api/v1/products/%d", penID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	product := body["data"].(map[string]interface{})
	assert.Equal(t, 2.0, product["stock"])

	// A second settlement is rejected
	w, body = doJSON(router, "POST", fmt.Sprintf("/api/v1/bills/%d/payment", billID), gin.H{
		"payment_method": "UPI",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Bill is already paid", body["message"])
}

func TestDraftBillAllLinesDropped(t *testing.T) {
	router := setupRouter(t)

	customerID := createCustomer(t, router, "Asha")
	penID := createProduct(t, router, "Pen", 10.00, 1)

	w, body := doJSON(router, "POST", "/api/v1/bills", gin.H{
		"customer_id": customerID,
		"lines":       []gin.H{{"product_id": penID, "quantity": 5}},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Insufficient stock for selected products", body["message"])
}

func TestBillListFilters(t *testing.T) {
	router := setupRouter(t)

	customerID := createCustomer(t, router, "Asha")
	penID := createProduct(t, router, "Pen", 10.00, 50)

	for i := 0; i < 3; i++ {
		w, _ := doJSON(router, "POST", "/api/v1/bills", gin.H{
			"customer_id": customerID,
			"lines":       []gin.H{{"product_id": penID, "quantity": 1}},
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Settle one bill
	w, _ := doJSON(router, "POST", "/api/v1/bills/1/payment", gin.H{"payment_method": "Cash"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body := doJSON(router, "GET", "/api/v1/bills?status=pending", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["items"].([]interface{}), 2)

	w, body = doJSON(router, "GET", "/api/v1/bills?status=paid", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = body["data"].(map[string]interface{})
	assert.Len(t, data["items"].([]interface{}), 1)

	w, _ = doJSON(router, "GET", "/api/v1/bills?status=bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLowStockEndpoint(t *testing.T) {
	router := setupRouter(t)

	createProduct(t, router, "Pen", 10.00, 3)
	createProduct(t, router, "Notebook", 20.00, 50)

	w, body := doJSON(router, "GET", "/api/v1/products/low-stock", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := body["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Pen", items[0].(map[string]interface{})["name"])
}

func TestDashboardEndpoint(t *testing.T) {
	router := setupRouter(t)

	customerID := createCustomer(t, router, "Asha")
	penID := createProduct(t, router, "Pen", 10.00, 50)

	w, _ := doJSON(router, "POST", "/api/v1/bills", gin.H{
		"customer_id": customerID,
		"lines":       []gin.H{{"product_id": penID, "quantity": 3}},
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := doJSON(router, "GET", "/api/v1/dashboard", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	stats := body["data"].(map[string]interface{})
	assert.Equal(t, 1.0, stats["total_customers"])
	assert.Equal(t, 1.0, stats["total_products"])
	assert.Equal(t, 1.0, stats["total_bills"])
	assert.Equal(t, 30.0, stats["total_revenue"])
	assert.Equal(t, 1.0, stats["pending_bills"])
}

func TestIdempotentBillCreation(t *testing.T) {
	router := setupRouter(t)

	customerID := createCustomer(t, router, "Asha")
	penID := createProduct(t, router, "Pen", 10.00, 50)

	payload := gin.H{
		"customer_id": customerID,
		"lines":       []gin.H{{"product_id": penID, "quantity": 1}},
	}
	headers := map[string]string{"Idempotency-Key": "draft-123"}

	w1, body1 := doJSON(router, "POST", "/api/v1/bills", payload, headers)
	require.Equal(t, http.StatusCreated, w1.Code)
	assert.Empty(t, w1.Header().Get("X-Idempotency-Replayed"))

	w2, body2 := doJSON(router, "POST", "/api/v1/bills", payload, headers)
	require.Equal(t, http.StatusCreated, w2.Code)
	assert.Equal(t, "true", w2.Header().Get("X-Idempotency-Replayed"))

	// The retry replays the original bill instead of drafting a second one
	id1 := body1["data"].(map[string]interface{})["id"]
	id2 := body2["data"].(map[string]interface{})["id"]
	assert.Equal(t, id1, id2)

	w3, body3 := doJSON(router, "GET", "/api/v1/bills", nil, nil)
	require.Equal(t, http.StatusOK, w3.Code)
	data := body3["data"].(map[string]interface{})
	assert.Len(t, data["items"].([]interface{}), 1)
}

func TestPrinterStatusEndpoint(t *testing.T) {
	router := setupRouter(t)

	w, body := doJSON(router, "GET", "/api/v1/printer/status", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	status := body["data"].(map[string]interface{})
	assert.Equal(t, false, status["configured"])
	assert.Equal(t, "none", status["type"])
}

func TestCustomerNotFound(t *testing.T) {
	router := setupRouter(t)

	w, _ := doJSON(router, "GET", "/api/v1/customers/42", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
