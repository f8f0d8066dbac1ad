package service

import (
	"fmt"
	"log"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/chaatgpt/till/internal/infrastructure/metrics"
	"github.com/chaatgpt/till/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	width       int
	header      entity.ReceiptHeader
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, width int, header entity.ReceiptHeader) *PrinterService {
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		width:       width,
		header:      header,
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
// Returns the receipt so the handler can show it when no printer is attached.
func (s *PrinterService) TestPrint(now time.Time) (*entity.Receipt, error) {
	bill := entity.Bill{
		BillNumber: "TEST-001",
		Date:       now,
		Items: []entity.OrderLine{
			{Name: "Test Item 1", UnitPrice: entity.Rupees(10), Quantity: 1, Total: entity.Rupees(10)},
			{Name: "Test Item 2", UnitPrice: entity.Rupees(5), Quantity: 2, Total: entity.Rupees(10)},
		},
		Subtotal:      entity.Rupees(20),
		Total:         entity.Rupees(20),
		PaymentMethod: enum.PaymentMethodUPI,
	}
	header := s.header
	header.StoreName = "PRINTER TEST"

	receipt := RenderReceipt(bill, header, 0, now.Location())
	if err := s.Print(receipt); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// Print sends a rendered receipt to the printer. A failure is reported to
// the caller but never undoes the bill it belongs to.
func (s *PrinterService) Print(receipt *entity.Receipt) error {
	data := FormatReceipt(receipt, s.width)
	if err := s.printer.Print(data); err != nil {
		metrics.PrintJobs.WithLabelValues("failed").Inc()
		log.Printf("Printer error (bill %s): %v", receipt.BillNumber, err)
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	metrics.PrintJobs.WithLabelValues("ok").Inc()
	return nil
}

// Header is the letterhead used on receipts
func (s *PrinterService) Header() entity.ReceiptHeader {
	return s.header
}

// Close releases the printer
func (s *PrinterService) Close() error {
	return s.printer.Close()
}
