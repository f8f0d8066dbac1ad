package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/chaatgpt/till/internal/infrastructure/metrics"
	"github.com/chaatgpt/till/pkg/apperror"
	"github.com/chaatgpt/till/pkg/pagination"
	"github.com/google/uuid"
)

// TillOptions are the fixed settings of a till session
type TillOptions struct {
	PackingRate entity.Money
	BillPrefix  string
	Header      entity.ReceiptHeader
}

// PaymentView is the payment selection as shown to the cashier
type PaymentView struct {
	Method   enum.PaymentMethod `json:"method"`
	Tendered entity.Money       `json:"amount_tendered"`
	State    string             `json:"state"`
	Change   Change             `json:"change"`
}

// CartView is the full state of the active order
type CartView struct {
	Order      entity.Order  `json:"order"`
	Totals     entity.Totals `json:"totals"`
	Payment    PaymentView   `json:"payment"`
	BillNumber string        `json:"bill_number,omitempty"`
}

// BillResult is a finalized bill with its receipt
type BillResult struct {
	Bill    entity.Bill     `json:"bill"`
	Receipt *entity.Receipt `json:"receipt"`
}

// TillService is the session of the single till. It owns the active order,
// its payment selection and pending bill number, and serializes every
// operation so concurrent callers never interleave.
type TillService struct {
	mu sync.Mutex

	opts       TillOptions
	cart       *Cart
	payment    *Payment
	billNumber string

	menu      *MenuService
	ledger    *LedgerService
	analytics *AnalyticsService
	exports   *ExportService
	printer   *PrinterService
	clock     Clock
	loc       *time.Location
}

// NewTillService creates a till session
func NewTillService(
	opts TillOptions,
	menu *MenuService,
	ledger *LedgerService,
	analytics *AnalyticsService,
	exports *ExportService,
	printer *PrinterService,
	clock Clock,
	loc *time.Location,
) *TillService {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	if opts.BillPrefix == "" {
		opts.BillPrefix = DefaultBillPrefix
	}
	return &TillService{
		opts:      opts,
		cart:      NewCart(),
		payment:   NewPayment(),
		menu:      menu,
		ledger:    ledger,
		analytics: analytics,
		exports:   exports,
		printer:   printer,
		clock:     clock,
		loc:       loc,
	}
}

// Menu exposes the menu repository
func (s *TillService) Menu() *MenuService {
	return s.menu
}

// Cart returns the active order
func (s *TillService) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// AddMenuItem adds one unit of a menu item at its current price
func (s *TillService) AddMenuItem(id uuid.UUID) (CartView, error) {
	item, err := s.menu.Get(id)
	if err != nil {
		return CartView{}, err
	}
	return s.AddItem(item.Name, item.Price), nil
}

// AddItem adds one unit of name at price
func (s *TillService) AddItem(name string, price entity.Money) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddItem(name, price)
	return s.viewLocked()
}

// UpdateQuantity changes the quantity of the line at index by delta
func (s *TillService) UpdateQuantity(index, delta int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.UpdateQuantity(index, delta); err != nil {
		return CartView{}, err
	}
	return s.viewLocked(), nil
}

// ClearCart discards the order and payment selection once confirmed
func (s *TillService) ClearCart(confirmed bool) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart.IsEmpty() {
		return s.viewLocked(), nil
	}
	if err := s.cart.Clear(confirmed); err != nil {
		return CartView{}, err
	}
	s.resetLocked()
	return s.viewLocked(), nil
}

// SetPacking toggles the packing surcharge
func (s *TillService) SetPacking(enabled bool) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetPacking(enabled)
	return s.viewLocked()
}

// SetCustomer records optional customer details
func (s *TillService) SetCustomer(name, phone string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetCustomer(name, phone)
	return s.viewLocked()
}

// SelectPaymentMethod chooses cash or upi
func (s *TillService) SelectPaymentMethod(method string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.payment.SelectMethod(method); err != nil {
		return CartView{}, err
	}
	return s.viewLocked(), nil
}

// SetAmountTendered records the cash handed over
func (s *TillService) SetAmountTendered(raw string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment.SetAmountTendered(raw)
	return s.viewLocked()
}

// Change reports the advisory change on the current total
func (s *TillService) Change() Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payment.ComputeChange(s.cart.Totals(s.opts.PackingRate).Total)
}

// ProcessPayment validates the payment, finalizes the bill into the
// ledger and starts a new order. Nothing changes when validation fails.
func (s *TillService) ProcessPayment(ctx context.Context) (*BillResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.cart.Order()
	totals := s.cart.Totals(s.opts.PackingRate)
	if err := s.payment.ValidateForProcessing(order, totals); err != nil {
		metrics.PaymentRejections.WithLabelValues(string(apperror.GetAppError(err).Kind)).Inc()
		return nil, err
	}

	return s.finalizeLocked(ctx, order, totals, s.payment.Settlement(totals.Total))
}

// SaveBillOnly finalizes the order without printing. A bill with no
// payment method, or cash with no amount, is saved as pending once the
// caller confirms. A short cash amount is still recorded as cash.
func (s *TillService) SaveBillOnly(ctx context.Context, confirmPending bool) (*BillResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.cart.Order()
	if order.IsEmpty() {
		return nil, apperror.ErrEmptyOrder
	}
	totals := s.cart.Totals(s.opts.PackingRate)

	settlement := s.payment.Settlement(totals.Total)
	switch {
	case s.payment.Method() == enum.PaymentMethodNone:
		if !confirmPending {
			return nil, apperror.NewConfirmationRequiredError("No payment method selected. Save bill as pending?")
		}
	case s.payment.Method() == enum.PaymentMethodCash && s.payment.Tendered() == 0:
		if !confirmPending {
			return nil, apperror.NewConfirmationRequiredError("No cash amount entered. Save bill as pending?")
		}
		settlement = Settlement{Method: enum.PaymentMethodPending}
	}

	return s.finalizeLocked(ctx, order, totals, settlement)
}

// PreviewReceipt renders the in-progress order without finalizing it.
// The bill number it shows is kept for the bill when it is finalized.
func (s *TillService) PreviewReceipt() (*entity.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.cart.Order()
	if order.IsEmpty() {
		return nil, apperror.ErrEmptyOrder
	}
	now := s.clock()
	if s.billNumber == "" {
		s.billNumber = GenerateBillNumber(s.opts.BillPrefix, now.In(s.loc))
	}

	totals := s.cart.Totals(s.opts.PackingRate)
	settlement := Settlement{Method: s.payment.Method()}
	if s.payment.Method() == enum.PaymentMethodCash {
		settlement = s.payment.Settlement(totals.Total)
	}
	bill := FinalizeBill(s.billNumber, now, order, totals, settlement)
	return RenderReceipt(bill, s.opts.Header, s.opts.PackingRate, s.loc), nil
}

// Receipt renders the receipt of one of today's bills
func (s *TillService) Receipt(ctx context.Context, number string) (*entity.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill, err := s.ledger.FindBill(ctx, number)
	if err != nil {
		return nil, err
	}
	return RenderReceipt(*bill, s.opts.Header, s.opts.PackingRate, s.loc), nil
}

// PrintBill sends the receipt of one of today's bills to the printer
func (s *TillService) PrintBill(ctx context.Context, number string) (*entity.Receipt, error) {
	receipt, err := s.Receipt(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(receipt); err != nil {
		return receipt, err
	}
	return receipt, nil
}

// Summary returns today's EOD figures
func (s *TillService) Summary(ctx context.Context) (*entity.EODSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Summary(ctx)
}

// ListBills returns a page of today's bills, newest first
func (s *TillService) ListBills(ctx context.Context, params pagination.PaginationParams) (*pagination.PaginatedResult[entity.Bill], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.ListBills(ctx, params)
}

// ResetEOD clears today's ledger once confirmed
func (s *TillService) ResetEOD(ctx context.Context, confirmed bool) (*entity.EODSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.ledger.Reset(ctx, confirmed)
	if err != nil {
		return nil, err
	}
	summary := ledger.Summary()
	return &summary, nil
}

// ProductReport aggregates product sales for "daily" or "weekly"
func (s *TillService) ProductReport(ctx context.Context, period string) ([]ProductSales, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analytics.ProductReport(ctx, period)
}

// Export renders a CSV export and records it in the history
func (s *TillService) Export(ctx context.Context, kind enum.ExportKind) (*entity.ExportFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exports.Export(ctx, kind)
}

// ListExports returns the saved export history
func (s *TillService) ListExports(ctx context.Context) ([]ExportEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exports.ListExports(ctx)
}

// GetExport returns a saved export
func (s *TillService) GetExport(ctx context.Context, index int) (*entity.ExportFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exports.GetExport(ctx, index)
}

// Shutdown re-saves the ledger and writes the auto-save export. Both are
// best-effort; failures are only logged.
func (s *TillService) Shutdown(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.Persist(ctx) {
		log.Printf("Warning: EOD data could not be saved on shutdown")
	}
	s.exports.AutoSave(ctx)
}

func (s *TillService) finalizeLocked(ctx context.Context, order entity.Order, totals entity.Totals, settlement Settlement) (*BillResult, error) {
	now := s.clock()
	number := s.billNumber
	if number == "" {
		number = GenerateBillNumber(s.opts.BillPrefix, now.In(s.loc))
	}

	bill := FinalizeBill(number, now, order, totals, settlement)
	if _, err := s.ledger.Append(ctx, bill); err != nil {
		return nil, err
	}

	s.cart.Reset()
	s.resetLocked()
	s.exports.AutoSave(ctx)

	log.Printf("Bill %s saved: %s ₹%s", bill.BillNumber, bill.PaymentMethod, bill.Total)
	return &BillResult{
		Bill:    bill,
		Receipt: RenderReceipt(bill, s.opts.Header, s.opts.PackingRate, s.loc),
	}, nil
}

func (s *TillService) resetLocked() {
	s.payment.Reset()
	s.billNumber = ""
}

func (s *TillService) viewLocked() CartView {
	totals := s.cart.Totals(s.opts.PackingRate)
	return CartView{
		Order:  s.cart.Order(),
		Totals: totals,
		Payment: PaymentView{
			Method:   s.payment.Method(),
			Tendered: s.payment.Tendered(),
			State:    s.payment.State().String(),
			Change:   s.payment.ComputeChange(totals.Total),
		},
		BillNumber: s.billNumber,
	}
}
