package service

import (
	"context"
	"fmt"
	"log"

	"github.com/billdesk/billdesk-api/internal/domain/entity"
	"github.com/billdesk/billdesk-api/internal/domain/repository"
	"github.com/billdesk/billdesk-api/pkg/apperror"
	"github.com/billdesk/billdesk-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	billRepo    repository.BillRepository
	printerType string
	storeName   string
	paperWidth  int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, billRepo repository.BillRepository, printerType, storeName string, paperWidth int) *PrinterService {
	return &PrinterService{
		printer:     p,
		billRepo:    billRepo,
		printerType: printerType,
		storeName:   storeName,
		paperWidth:  paperWidth,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "PRINTER TEST",
		},
		BillNo: "TEST-001",
		Date:   "Test Date",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		Total: 20.00,
	}

	data := s.formatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintBillReceipt fetches a bill (with items) and prints its receipt.
func (s *PrinterService) PrintBillReceipt(ctx context.Context, billID uint) (*entity.Receipt, error) {
	bill, err := s.billRepo.GetWithItems(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.storeName,
		},
		BillNo:        fmt.Sprintf("BILL-%d", bill.ID),
		Date:          bill.Date.Format("2006-01-02 15:04"),
		PaymentMethod: bill.PaymentMethod.String(),
		PaymentStatus: bill.PaymentStatus.String(),
		Total:         bill.GetTotalDecimal(),
	}

	if bill.Customer != nil {
		receipt.Customer = bill.Customer.Name
	}

	for _, item := range bill.Items {
		name := item.Product.Name
		if name == "" {
			name = "Product"
		}
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.Price) / 100,
			Total:     float64(item.Subtotal()) / 100,
		})
	}

	data := s.formatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (bill %d): %v", billID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// formatReceipt converts a Receipt into ESC/POS bytes.
func (s *PrinterService) formatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.paperWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Bill info
	doc.KeyValue("Bill:", r.BillNo).
		KeyValue("Date:", r.Date)

	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}
	if r.PaymentStatus != "" {
		doc.KeyValue("Status:", r.PaymentStatus)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Total
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your business!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
