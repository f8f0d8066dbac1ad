package service

import (
	"context"
	"testing"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/chaatgpt/till/pkg/apperror"
	"github.com/chaatgpt/till/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(clock *testClock, repo *memLedgerRepo) *LedgerService {
	return NewLedgerService(repo, clock.Now, time.UTC)
}

func TestLedger_StartsEmptyAndPersists(t *testing.T) {
	ctx := context.Background()
	repo := &memLedgerRepo{}
	svc := newLedger(newTestClock(at(9, 0, 0)), repo)

	ledger, err := svc.EnsureCurrentDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", ledger.LastResetDate)
	assert.Equal(t, 0, ledger.BillCount)
	require.NotNil(t, repo.stored)
	assert.Equal(t, "2026-10-19", repo.stored.LastResetDate)
}

func TestLedger_AppendCashBills(t *testing.T) {
	ctx := context.Background()
	repo := &memLedgerRepo{}
	svc := newLedger(newTestClock(at(9, 0, 0)), repo)

	_, err := svc.Reset(ctx, true)
	require.NoError(t, err)

	for i, total := range []int64{50, 70, 30} {
		bill := cashBill("BG-"+string(rune('A'+i)), at(10, i, 0), total, line("Item", total, 1))
		_, err := svc.Append(ctx, bill)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.Rupees(150), summary.TotalSales)
	assert.Equal(t, 3, summary.BillCount)
	assert.Equal(t, entity.Rupees(150), summary.CashAmountReceived)
	assert.Equal(t, entity.Money(0), summary.PendingAmount)
	assert.Equal(t, entity.Rupees(50), summary.AverageBill)

	assert.Equal(t, 3, repo.stored.BillCount, "every append is persisted")
}

func TestLedger_PendingAndUPI(t *testing.T) {
	ctx := context.Background()
	svc := newLedger(newTestClock(at(9, 0, 0)), &memLedgerRepo{})

	lines := []entity.OrderLine{line("Sev Puri", 50, 1)}
	totals := ComputeTotals(lines, false, entity.Rupees(5))
	order := entity.Order{Lines: lines}

	_, err := svc.Append(ctx, FinalizeBill("P-1", at(10, 0, 0), order, totals, Settlement{Method: enum.PaymentMethodPending}))
	require.NoError(t, err)
	_, err = svc.Append(ctx, FinalizeBill("U-1", at(10, 1, 0), order, totals, Settlement{Method: enum.PaymentMethodUPI, AmountReceived: totals.Total}))
	require.NoError(t, err)
	_, err = svc.Append(ctx, cashBill("C-1", at(10, 2, 0), 100, line("Sev Puri", 50, 1)))
	require.NoError(t, err)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.Rupees(150), summary.TotalSales)
	assert.Equal(t, entity.Rupees(50), summary.UPIAmountReceived)
	assert.Equal(t, entity.Rupees(100), summary.CashAmountReceived, "cash counts the full tender")
	assert.Equal(t, entity.Money(0), summary.PendingAmount)
}

func TestLedger_DayRollover(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(at(22, 0, 0))
	repo := &memLedgerRepo{}
	svc := newLedger(clock, repo)

	_, err := svc.Append(ctx, cashBill("BG-1", at(22, 0, 0), 40, line("Pani Puri", 40, 1)))
	require.NoError(t, err)

	clock.Set(at(22, 0, 0).Add(3 * time.Hour))
	ledger, err := svc.EnsureCurrentDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", ledger.LastResetDate)
	assert.Equal(t, 0, ledger.BillCount)
	assert.Empty(t, ledger.Bills)
	assert.Equal(t, "2026-10-20", repo.stored.LastResetDate)
}

func TestLedger_StaleStoredLedgerIsReset(t *testing.T) {
	ctx := context.Background()
	stale := entity.NewEODLedger("2026-10-18")
	stale.Append(cashBill("OLD", at(10, 0, 0).AddDate(0, 0, -1), 40, line("A", 40, 1)))
	repo := &memLedgerRepo{stored: stale}

	svc := newLedger(newTestClock(at(9, 0, 0)), repo)
	bills, err := svc.Bills(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestLedger_ResetRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	svc := newLedger(newTestClock(at(9, 0, 0)), &memLedgerRepo{})
	_, err := svc.Append(ctx, cashBill("BG-1", at(9, 0, 0), 40, line("A", 40, 1)))
	require.NoError(t, err)

	_, err = svc.Reset(ctx, false)
	assert.True(t, apperror.Is(err, apperror.KindConfirmationRequired))

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.BillCount)

	ledger, err := svc.Reset(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.BillCount)
}

func TestLedger_SaveFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	repo := &memLedgerRepo{saveErr: errDiskFull}
	svc := newLedger(newTestClock(at(9, 0, 0)), repo)

	ledger, err := svc.Append(ctx, cashBill("BG-1", at(9, 0, 0), 40, line("A", 40, 1)))
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.BillCount)
	assert.False(t, svc.Persist(ctx))

	repo.saveErr = nil
	assert.True(t, svc.Persist(ctx))
	assert.Equal(t, 1, repo.stored.BillCount)
}

func TestLedger_LoadFailureIsReported(t *testing.T) {
	svc := newLedger(newTestClock(at(9, 0, 0)), &memLedgerRepo{loadErr: errDiskFull})
	_, err := svc.EnsureCurrentDay(context.Background())
	assert.True(t, apperror.Is(err, apperror.KindPersistenceFailure))
}

func TestLedger_ListAndFindBills(t *testing.T) {
	ctx := context.Background()
	svc := newLedger(newTestClock(at(9, 0, 0)), &memLedgerRepo{})
	for _, n := range []string{"B1", "B2", "B3"} {
		_, err := svc.Append(ctx, cashBill(n, at(9, 0, 0), 40, line("A", 40, 1)))
		require.NoError(t, err)
	}

	page, err := svc.ListBills(ctx, pagination.PaginationParams{Page: 1, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "B3", page.Items[0].BillNumber)
	assert.Equal(t, "B2", page.Items[1].BillNumber)
	assert.True(t, page.Pagination.HasNext)

	bill, err := svc.FindBill(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, "B1", bill.BillNumber)

	_, err = svc.FindBill(ctx, "nope")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestLedger_SharedStoreSeesOtherWriters(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(at(9, 0, 0))
	repo := &memLedgerRepo{}
	server := newLedger(clock, repo)
	cli := newLedger(clock, repo)

	for i, total := range []int64{50, 70} {
		_, err := server.Append(ctx, cashBill("S-"+string(rune('A'+i)), at(10, i, 0), total, line("Item", total, 1)))
		require.NoError(t, err)
	}

	_, err := cli.Reset(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.stored.BillCount)

	ledger, err := server.Append(ctx, cashBill("S-C", at(11, 0, 0), 30, line("Item", 30, 1)))
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.BillCount)
	assert.Equal(t, 1, repo.stored.BillCount)
	assert.Equal(t, entity.Rupees(30), repo.stored.TotalSales)

	assert.True(t, server.Persist(ctx))
	assert.Equal(t, 1, repo.stored.BillCount, "nothing pending, store untouched")
}

func TestLedger_EnsureCurrentDayIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := &memLedgerRepo{}
	svc := newLedger(newTestClock(at(9, 0, 0)), repo)
	_, err := svc.Append(ctx, cashBill("BG-1", at(9, 0, 0), 40, line("A", 40, 1)))
	require.NoError(t, err)

	first, err := svc.EnsureCurrentDay(ctx)
	require.NoError(t, err)
	saves := repo.saves

	second, err := svc.EnsureCurrentDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, saves, repo.saves)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, second.BillCount)
}
