package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/chaatgpt/till/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exportFixture struct {
	clock   *testClock
	ledger  *LedgerService
	repo    *memExportRepo
	exports *ExportService
}

func newExportFixture(t *testing.T, limit int) *exportFixture {
	t.Helper()
	clock := newTestClock(at(18, 30, 0))
	ledger := newLedger(clock, &memLedgerRepo{})
	analytics := NewAnalyticsService(ledger, clock.Now, time.UTC)
	repo := &memExportRepo{}
	return &exportFixture{
		clock:   clock,
		ledger:  ledger,
		repo:    repo,
		exports: NewExportService(ledger, analytics, repo, clock.Now, time.UTC, limit),
	}
}

func (f *exportFixture) add(t *testing.T, bill entity.Bill) {
	t.Helper()
	_, err := f.ledger.Append(context.Background(), bill)
	require.NoError(t, err)
}

func TestExport_BillsCSV(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture(t, 0)
	bill := cashBill("BG-20261019-100000", at(10, 0, 0), 100, line("Sev Puri", 50, 1), line("Pani Puri", 40, 1))
	bill.CustomerName = "Ravi, Jr."
	f.add(t, bill)

	file, err := f.exports.Export(ctx, enum.ExportKindBills)
	require.NoError(t, err)

	assert.Equal(t, "bills_2026-10-19.csv", file.FileName)
	assert.Equal(t, 1, file.Rows)
	expected := strings.Join([]string{
		"Bill Number,Date,Time,Customer Name,Customer Phone,Items,Subtotal,Packing Charge,Total,Payment Method,Amount Received,Change,Item Count",
		`BG-20261019-100000,19/10/2026,10:00:00 am,"Ravi, Jr.",,Sev Puri (1x ₹50); Pani Puri (1x ₹40),90,0,90,cash,100,10,2`,
	}, "\n")
	assert.Equal(t, expected, file.Content)

	history, err := f.exports.ListExports(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, enum.ExportKindBills, history[0].Kind)
	assert.Equal(t, "Mon Oct 19 2026", history[0].Date)
	assert.Equal(t, len(expected), history[0].Size)
}

func TestExport_NoBills(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture(t, 0)

	for _, kind := range []enum.ExportKind{enum.ExportKindBills, enum.ExportKindAllData, enum.ExportKindProductReport} {
		_, err := f.exports.Export(ctx, kind)
		assert.True(t, apperror.Is(err, apperror.KindNoExportData), kind.String())
	}
	assert.Empty(t, f.repo.stored)
}

func TestExport_EODReportWithNoBills(t *testing.T) {
	f := newExportFixture(t, 0)

	file, err := f.exports.Export(context.Background(), enum.ExportKindEOD)
	require.NoError(t, err)
	assert.Equal(t, "eod_report_2026-10-19.csv", file.FileName)
	assert.Equal(t, "Date,Total Bills,Total Sales,Cash Received,UPI Received,Pending Amount,Average Bill\n"+
		"19 October 2026,0,0.00,0.00,0.00,0.00,0.00", file.Content)
}

func TestExport_EODReport(t *testing.T) {
	f := newExportFixture(t, 0)
	f.add(t, cashBill("B1", at(10, 0, 0), 50, line("Sev Puri", 50, 1)))
	f.add(t, cashBill("B2", at(11, 0, 0), 100, line("Aloo Tikki Chaat", 70, 1)))

	file, err := f.exports.Export(context.Background(), enum.ExportKindEOD)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Content, "\n19 October 2026,2,120.00,150.00,0.00,-30.00,60.00"), file.Content)
}

func TestExport_ProductReport(t *testing.T) {
	f := newExportFixture(t, 0)
	f.add(t, cashBill("B1", at(10, 0, 0), 200, line("Sev Puri", 50, 1)))
	f.add(t, cashBill("B2", at(11, 0, 0), 200, line("Sev Puri", 50, 3)))

	file, err := f.exports.Export(context.Background(), enum.ExportKindProductReport)
	require.NoError(t, err)
	assert.Equal(t, 2, file.Rows)
	assert.Equal(t, strings.Join([]string{
		"Product Name,Period,Orders,Quantity Sold,Total Revenue",
		"Sev Puri,Daily,2,4,200.00",
		"Sev Puri,Weekly,2,4,200.00",
	}, "\n"), file.Content)
}

func TestExport_AllData(t *testing.T) {
	f := newExportFixture(t, 0)
	f.add(t, cashBill("B1", at(10, 0, 0), 100, line("Sev Puri", 50, 1), line("Pani Puri", 40, 1)))
	f.add(t, cashBill("B2", at(11, 0, 0), 0))

	file, err := f.exports.Export(context.Background(), enum.ExportKindAllData)
	require.NoError(t, err)
	assert.Equal(t, "all_data_2026-10-19.csv", file.FileName)
	assert.Equal(t, 3, file.Rows)

	rows := strings.Split(file.Content, "\n")
	require.Len(t, rows, 4)
	assert.Equal(t, "B1,19/10/2026,10:00:00 am,,,Sev Puri,50,1,50,90,0,90,cash,100,10", rows[1])
	assert.Equal(t, ",,,,,Pani Puri,40,1,40,,,,,,", rows[2])
	assert.Equal(t, "B2,19/10/2026,11:00:00 am,,,,,,,0,0,0,cash,0,0", rows[3])
}

func TestExport_UnknownKind(t *testing.T) {
	f := newExportFixture(t, 0)
	_, err := f.exports.Export(context.Background(), enum.ExportKindAutoSaveBills)
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
}

func TestExport_HistoryIsCapped(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture(t, 3)
	f.add(t, cashBill("B1", at(10, 0, 0), 50, line("Sev Puri", 50, 1)))

	for i := 0; i < 5; i++ {
		f.clock.Set(at(18, i, 0))
		_, err := f.exports.Export(ctx, enum.ExportKindEOD)
		require.NoError(t, err)
	}

	history, err := f.exports.ListExports(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, at(18, 2, 0).Equal(history[0].Timestamp))
	assert.True(t, at(18, 4, 0).Equal(history[2].Timestamp))
}

func TestExport_GetExport(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture(t, 0)
	f.add(t, cashBill("B1", at(10, 0, 0), 50, line("Sev Puri", 50, 1)))

	generated, err := f.exports.Export(ctx, enum.ExportKindBills)
	require.NoError(t, err)

	saved, err := f.exports.GetExport(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, generated.Content, saved.Content)
	assert.Equal(t, "bills_2026-10-19.csv", saved.FileName)
	assert.Equal(t, 1, saved.Rows)

	_, err = f.exports.GetExport(ctx, 1)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = f.exports.GetExport(ctx, -1)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestExport_HistoryFailureDoesNotFailExport(t *testing.T) {
	f := newExportFixture(t, 0)
	f.repo.saveErr = errDiskFull
	f.add(t, cashBill("B1", at(10, 0, 0), 50, line("Sev Puri", 50, 1)))

	file, err := f.exports.Export(context.Background(), enum.ExportKindBills)
	require.NoError(t, err)
	assert.Equal(t, 1, file.Rows)
	assert.Empty(t, f.repo.stored)
}

func TestExport_AutoSave(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture(t, 0)

	f.exports.AutoSave(ctx)
	assert.Empty(t, f.repo.stored)

	f.add(t, cashBill("B1", at(10, 0, 0), 50, line("Sev Puri", 50, 1)))
	f.exports.AutoSave(ctx)
	require.Len(t, f.repo.stored, 1)
	assert.Equal(t, enum.ExportKindAutoSaveBills, f.repo.stored[0].Kind)
	assert.Equal(t, "auto_save_bills_2026-10-19.csv", f.repo.stored[0].FileName())
}
