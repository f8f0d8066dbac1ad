package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/chaatgpt/till/pkg/apperror"
	"github.com/chaatgpt/till/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tillFixture struct {
	clock      *testClock
	ledgerRepo *memLedgerRepo
	exportRepo *memExportRepo
	printer    *fakePrinter
	seed       []entity.MenuItem
	till       *TillService
}

func newTillFixture(t *testing.T) *tillFixture {
	t.Helper()
	f := &tillFixture{
		clock:      newTestClock(at(12, 30, 45)),
		ledgerRepo: &memLedgerRepo{},
		exportRepo: &memExportRepo{},
		printer:    &fakePrinter{connected: true},
		seed:       testSeed(),
	}
	ledger := NewLedgerService(f.ledgerRepo, f.clock.Now, time.UTC)
	analytics := NewAnalyticsService(ledger, f.clock.Now, time.UTC)
	exports := NewExportService(ledger, analytics, f.exportRepo, f.clock.Now, time.UTC, 0)
	menu := NewMenuService(&memMenuRepo{}, f.seed)
	printerSvc := NewPrinterService(f.printer, "network", 32, testHeader)

	f.till = NewTillService(TillOptions{
		PackingRate: entity.Rupees(5),
		BillPrefix:  "BG",
		Header:      testHeader,
	}, menu, ledger, analytics, exports, printerSvc, f.clock.Now, time.UTC)
	return f
}

func (f *tillFixture) addSeed(t *testing.T, idx int) CartView {
	t.Helper()
	view, err := f.till.AddMenuItem(f.seed[idx].ID)
	require.NoError(t, err)
	return view
}

func TestTill_ProcessCashPayment(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)

	f.addSeed(t, 1)
	f.addSeed(t, 1)
	view := f.addSeed(t, 2)
	require.Len(t, view.Order.Lines, 2)
	assert.Equal(t, 2, view.Order.Lines[0].Quantity)
	assert.Equal(t, entity.Rupees(130), view.Totals.Total)

	f.till.SetPacking(true)
	f.till.SetCustomer("  Priya ", "98400 12345")
	_, err := f.till.SelectPaymentMethod("cash")
	require.NoError(t, err)
	view = f.till.SetAmountTendered("200")
	assert.Equal(t, entity.Rupees(145), view.Totals.Total)
	assert.Equal(t, entity.Rupees(55), view.Payment.Change.Amount)

	result, err := f.till.ProcessPayment(ctx)
	require.NoError(t, err)

	bill := result.Bill
	assert.Equal(t, "BG-20261019-123045", bill.BillNumber)
	assert.Equal(t, "Priya", bill.CustomerName)
	assert.Equal(t, enum.PaymentMethodCash, bill.PaymentMethod)
	assert.Equal(t, entity.Rupees(130), bill.Subtotal)
	assert.Equal(t, entity.Rupees(15), bill.PackingCharge)
	assert.Equal(t, entity.Rupees(200), bill.AmountReceived)
	assert.Equal(t, entity.Rupees(55), bill.Change)
	assert.Equal(t, "Cash", result.Receipt.PaymentMethod)

	cart := f.till.Cart()
	assert.Empty(t, cart.Order.Lines)
	assert.False(t, cart.Order.PackingEnabled)
	assert.Equal(t, enum.PaymentMethodNone, cart.Payment.Method)

	summary, err := f.till.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.BillCount)
	assert.Equal(t, entity.Rupees(145), summary.TotalSales)
	assert.Equal(t, entity.Rupees(200), summary.CashAmountReceived)

	require.Len(t, f.exportRepo.stored, 1)
	assert.Equal(t, enum.ExportKindAutoSaveBills, f.exportRepo.stored[0].Kind)
}

func TestTill_ProcessUPIPayment(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)
	f.addSeed(t, 0)

	_, err := f.till.SelectPaymentMethod("UPI")
	require.NoError(t, err)
	result, err := f.till.ProcessPayment(ctx)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentMethodUPI, result.Bill.PaymentMethod)
	assert.Equal(t, entity.Rupees(40), result.Bill.AmountReceived)

	summary, err := f.till.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.Rupees(40), summary.UPIAmountReceived)
}

func TestTill_ProcessPaymentRejections(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)

	_, err := f.till.ProcessPayment(ctx)
	assert.True(t, apperror.Is(err, apperror.KindEmptyOrder))

	f.addSeed(t, 1)
	_, err = f.till.ProcessPayment(ctx)
	assert.True(t, apperror.Is(err, apperror.KindNoPaymentMethod))

	_, err = f.till.SelectPaymentMethod("cash")
	require.NoError(t, err)
	view := f.till.SetAmountTendered("30")
	assert.True(t, view.Payment.Change.Insufficient)

	_, err = f.till.ProcessPayment(ctx)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInsufficientAmount))
	assert.Contains(t, err.Error(), "50")

	cart := f.till.Cart()
	require.Len(t, cart.Order.Lines, 1)
	assert.Equal(t, enum.PaymentMethodCash, cart.Payment.Method)
	assert.Equal(t, entity.Rupees(30), cart.Payment.Tendered)

	summary, err := f.till.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.BillCount)

	_, err = f.till.SelectPaymentMethod("card")
	assert.True(t, apperror.Is(err, apperror.KindInvalidPaymentMethod))
}

func TestTill_SaveBillOnlyPending(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)

	_, err := f.till.SaveBillOnly(ctx, true)
	assert.True(t, apperror.Is(err, apperror.KindEmptyOrder))

	f.addSeed(t, 0)
	_, err = f.till.SaveBillOnly(ctx, false)
	assert.True(t, apperror.Is(err, apperror.KindConfirmationRequired))
	assert.Len(t, f.till.Cart().Order.Lines, 1)

	result, err := f.till.SaveBillOnly(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentMethodPending, result.Bill.PaymentMethod)
	assert.Equal(t, entity.Money(0), result.Bill.AmountReceived)

	summary, err := f.till.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.Rupees(40), summary.PendingAmount)
}

func TestTill_SaveBillOnlyCash(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)
	f.addSeed(t, 1)

	_, err := f.till.SelectPaymentMethod("cash")
	require.NoError(t, err)
	_, err = f.till.SaveBillOnly(ctx, false)
	assert.True(t, apperror.Is(err, apperror.KindConfirmationRequired))

	f.till.SetAmountTendered("20")
	result, err := f.till.SaveBillOnly(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentMethodCash, result.Bill.PaymentMethod)
	assert.Equal(t, entity.Rupees(20), result.Bill.AmountReceived)
	assert.Equal(t, entity.Money(0), result.Bill.Change)
}

func TestTill_PreviewKeepsBillNumber(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)

	_, err := f.till.PreviewReceipt()
	assert.True(t, apperror.Is(err, apperror.KindEmptyOrder))

	f.addSeed(t, 2)
	preview, err := f.till.PreviewReceipt()
	require.NoError(t, err)
	assert.Equal(t, "BG-20261019-123045", preview.BillNumber)
	assert.Equal(t, "19 October 2026", preview.Date)

	f.clock.Set(at(12, 35, 0))
	_, err = f.till.SelectPaymentMethod("upi")
	require.NoError(t, err)
	result, err := f.till.ProcessPayment(ctx)
	require.NoError(t, err)
	assert.Equal(t, preview.BillNumber, result.Bill.BillNumber)
	assert.Empty(t, f.till.Cart().BillNumber)

	f.addSeed(t, 2)
	preview, err = f.till.PreviewReceipt()
	require.NoError(t, err)
	assert.Equal(t, "BG-20261019-123500", preview.BillNumber)
}

func TestTill_ClearCart(t *testing.T) {
	f := newTillFixture(t)

	_, err := f.till.ClearCart(false)
	require.NoError(t, err)

	f.addSeed(t, 0)
	_, err = f.till.ClearCart(false)
	assert.True(t, apperror.Is(err, apperror.KindConfirmationRequired))

	view, err := f.till.ClearCart(true)
	require.NoError(t, err)
	assert.Empty(t, view.Order.Lines)
}

func TestTill_UpdateQuantity(t *testing.T) {
	f := newTillFixture(t)
	f.addSeed(t, 0)

	view, err := f.till.UpdateQuantity(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Order.Lines[0].Quantity)

	view, err = f.till.UpdateQuantity(0, -3)
	require.NoError(t, err)
	assert.Empty(t, view.Order.Lines)

	_, err = f.till.UpdateQuantity(4, 1)
	assert.True(t, apperror.Is(err, apperror.KindLineNotFound))
}

func TestTill_MenuEditDoesNotTouchOpenLines(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)
	f.addSeed(t, 0)

	price := "45"
	_, err := f.till.Menu().Update(ctx, f.seed[0].ID, MenuUpdate{Price: &price})
	require.NoError(t, err)
	price = "55"
	_, err = f.till.Menu().Update(ctx, f.seed[1].ID, MenuUpdate{Price: &price})
	require.NoError(t, err)

	view := f.addSeed(t, 1)
	require.Len(t, view.Order.Lines, 2)
	assert.Equal(t, entity.Rupees(40), view.Order.Lines[0].UnitPrice)
	assert.Equal(t, entity.Rupees(55), view.Order.Lines[1].UnitPrice)
}

func TestTill_PrintBill(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)
	f.addSeed(t, 0)
	_, err := f.till.SelectPaymentMethod("upi")
	require.NoError(t, err)
	result, err := f.till.ProcessPayment(ctx)
	require.NoError(t, err)

	receipt, err := f.till.PrintBill(ctx, result.Bill.BillNumber)
	require.NoError(t, err)
	assert.Equal(t, "UPI", receipt.PaymentMethod)
	assert.Len(t, f.printer.jobs, 1)

	f.printer.err = errDiskFull
	_, err = f.till.PrintBill(ctx, result.Bill.BillNumber)
	assert.ErrorIs(t, err, errDiskFull)

	_, err = f.till.PrintBill(ctx, "BG-missing")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestTill_ReportsAndExports(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)
	f.addSeed(t, 1)
	_, err := f.till.SelectPaymentMethod("upi")
	require.NoError(t, err)
	_, err = f.till.ProcessPayment(ctx)
	require.NoError(t, err)

	report, err := f.till.ProductReport(ctx, "weekly")
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, "Sev Puri", report[0].Name)

	page, err := f.till.ListBills(ctx, pagination.PaginationParams{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	file, err := f.till.Export(ctx, enum.ExportKindBills)
	require.NoError(t, err)
	assert.Equal(t, 1, file.Rows)

	history, err := f.till.ListExports(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	saved, err := f.till.GetExport(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, file.Content, saved.Content)
}

func TestTill_ResetEOD(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)
	f.addSeed(t, 1)
	_, err := f.till.SaveBillOnly(ctx, true)
	require.NoError(t, err)

	_, err = f.till.ResetEOD(ctx, false)
	assert.True(t, apperror.Is(err, apperror.KindConfirmationRequired))

	summary, err := f.till.ResetEOD(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.BillCount)
	assert.Equal(t, "2026-10-19", summary.Date)
}

func TestTill_ShutdownPersists(t *testing.T) {
	ctx := context.Background()
	f := newTillFixture(t)
	f.addSeed(t, 1)
	f.ledgerRepo.saveErr = errDiskFull
	_, err := f.till.SaveBillOnly(ctx, true)
	require.NoError(t, err)
	assert.Nil(t, f.ledgerRepo.stored)

	f.ledgerRepo.saveErr = nil
	f.till.Shutdown(ctx)
	require.NotNil(t, f.ledgerRepo.stored)
	assert.Equal(t, 1, f.ledgerRepo.stored.BillCount)
	assert.Len(t, f.exportRepo.stored, 2)
}

func TestTill_ConcurrentAdds(t *testing.T) {
	f := newTillFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.till.AddItem("Masala Chai", entity.Rupees(20))
		}()
	}
	wg.Wait()

	cart := f.till.Cart()
	require.Len(t, cart.Order.Lines, 1)
	assert.Equal(t, 50, cart.Order.Lines[0].Quantity)
	assert.Equal(t, entity.Rupees(1000), cart.Totals.Total)
}
