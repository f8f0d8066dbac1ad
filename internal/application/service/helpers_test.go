package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/chaatgpt/till/pkg/apperror"
)

var errDiskFull = errors.New("disk full")

// testClock is a settable clock
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{now: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// at builds a UTC time on 19 October 2026
func at(hour, min, sec int) time.Time {
	return time.Date(2026, 10, 19, hour, min, sec, 0, time.UTC)
}

// roundTrip copies v through JSON the way the store does
func roundTrip[T any](v T) T {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return out
}

type memLedgerRepo struct {
	stored  *entity.EODLedger
	saves   int
	saveErr error
	loadErr error
}

func (r *memLedgerRepo) Load(ctx context.Context) (*entity.EODLedger, error) {
	if r.loadErr != nil {
		return nil, apperror.NewPersistenceError("read eodData", r.loadErr)
	}
	if r.stored == nil {
		return nil, nil
	}
	l := roundTrip(*r.stored)
	return &l, nil
}

func (r *memLedgerRepo) Save(ctx context.Context, ledger *entity.EODLedger) error {
	if r.saveErr != nil {
		return apperror.NewPersistenceError("write eodData", r.saveErr)
	}
	l := roundTrip(*ledger)
	r.stored = &l
	r.saves++
	return nil
}

type memMenuRepo struct {
	stored  []entity.MenuItem
	saveErr error
}

func (r *memMenuRepo) Load(ctx context.Context) ([]entity.MenuItem, error) {
	return roundTrip(r.stored), nil
}

func (r *memMenuRepo) Save(ctx context.Context, items []entity.MenuItem) error {
	if r.saveErr != nil {
		return apperror.NewPersistenceError("write menuData", r.saveErr)
	}
	r.stored = roundTrip(items)
	return nil
}

type memExportRepo struct {
	stored  []entity.CSVExportRecord
	saveErr error
}

func (r *memExportRepo) Load(ctx context.Context) ([]entity.CSVExportRecord, error) {
	out := roundTrip(r.stored)
	if out == nil {
		out = []entity.CSVExportRecord{}
	}
	return out, nil
}

func (r *memExportRepo) Save(ctx context.Context, records []entity.CSVExportRecord) error {
	if r.saveErr != nil {
		return apperror.NewPersistenceError("write csvExports", r.saveErr)
	}
	r.stored = roundTrip(records)
	return nil
}

type fakePrinter struct {
	jobs      [][]byte
	err       error
	connected bool
}

func (p *fakePrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *fakePrinter) Close() error      { return nil }
func (p *fakePrinter) IsConnected() bool { return p.connected }

func line(name string, rupees int64, qty int) entity.OrderLine {
	l := entity.OrderLine{Name: name, UnitPrice: entity.Rupees(rupees), Quantity: qty}
	l.Recalculate()
	return l
}

func cashBill(number string, when time.Time, tendered int64, lines ...entity.OrderLine) entity.Bill {
	totals := ComputeTotals(lines, false, entity.Rupees(5))
	change := entity.Rupees(tendered) - totals.Total
	if change < 0 {
		change = 0
	}
	return FinalizeBill(number, when, entity.Order{Lines: lines}, totals, Settlement{
		Method:         enum.PaymentMethodCash,
		AmountReceived: entity.Rupees(tendered),
		Change:         change,
	})
}

var testHeader = entity.ReceiptHeader{
	StoreName: "ChaatGPT",
	Tagline:   "Guaranteed Perfect Taste",
	Address:   "Near Central Bus Stand, Trichy",
	Phone:     "8903145004",
	Email:     "chaatgpt314@gmail.com",
}
