package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/repository"
	"github.com/chaatgpt/till/internal/infrastructure/metrics"
	"github.com/chaatgpt/till/pkg/apperror"
	"github.com/chaatgpt/till/pkg/pagination"
)

// LedgerService owns the end-of-day ledger of the till.
//
// Every operation loads the whole ledger from the store, mutates it and
// saves it back, so other processes sharing the database (the CLI) are
// never overwritten with a stale copy. A failed write is logged and counted
// but never surfaced; the unsaved ledger is held until a later write or
// Persist succeeds.
type LedgerService struct {
	mu      sync.Mutex
	repo    repository.LedgerRepository
	clock   Clock
	loc     *time.Location
	unsaved *entity.EODLedger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(repo repository.LedgerRepository, clock Clock, loc *time.Location) *LedgerService {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	return &LedgerService{repo: repo, clock: clock, loc: loc}
}

// Today is the current local calendar date as YYYY-MM-DD
func (s *LedgerService) Today() string {
	return s.clock().In(s.loc).Format(entity.DateLayout)
}

// EnsureCurrentDay returns today's ledger, starting a fresh one when the
// stored ledger belongs to an earlier day.
func (s *LedgerService) EnsureCurrentDay(ctx context.Context) (*entity.EODLedger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentDay(ctx)
}

func (s *LedgerService) currentDay(ctx context.Context) (*entity.EODLedger, error) {
	ledger, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	if ledger == nil || ledger.LastResetDate != today {
		if ledger != nil {
			log.Printf("Day changed from %s to %s, starting a new ledger", ledger.LastResetDate, today)
			metrics.LedgerResets.WithLabelValues("rollover").Inc()
		}
		ledger = entity.NewEODLedger(today)
		s.save(ctx, ledger)
	}

	metrics.LedgerBills.Set(float64(ledger.BillCount))
	return ledger, nil
}

// Append records a finalized bill in today's ledger
func (s *LedgerService) Append(ctx context.Context, bill entity.Bill) (*entity.EODLedger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.currentDay(ctx)
	if err != nil {
		return nil, err
	}

	ledger.Append(bill)
	s.save(ctx, ledger)

	method := bill.PaymentMethod.String()
	metrics.BillsFinalized.WithLabelValues(method).Inc()
	metrics.SalesPaise.WithLabelValues(method).Add(float64(bill.Total))
	metrics.LedgerBills.Set(float64(ledger.BillCount))
	return ledger, nil
}

// Reset clears today's ledger. It must be confirmed.
func (s *LedgerService) Reset(ctx context.Context, confirmed bool) (*entity.EODLedger, error) {
	if !confirmed {
		return nil, apperror.NewConfirmationRequiredError("Are you sure you want to reset EOD data? This cannot be undone.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ledger := entity.NewEODLedger(s.Today())
	s.save(ctx, ledger)

	metrics.LedgerResets.WithLabelValues("manual").Inc()
	metrics.LedgerBills.Set(0)
	return ledger, nil
}

// Summary returns today's headline figures
func (s *LedgerService) Summary(ctx context.Context) (*entity.EODSummary, error) {
	ledger, err := s.EnsureCurrentDay(ctx)
	if err != nil {
		return nil, err
	}
	summary := ledger.Summary()
	return &summary, nil
}

// Bills returns a copy of today's bills in append order
func (s *LedgerService) Bills(ctx context.Context) ([]entity.Bill, error) {
	ledger, err := s.EnsureCurrentDay(ctx)
	if err != nil {
		return nil, err
	}
	bills := make([]entity.Bill, len(ledger.Bills))
	copy(bills, ledger.Bills)
	return bills, nil
}

// ListBills returns one page of today's bills, newest first
func (s *LedgerService) ListBills(ctx context.Context, params pagination.PaginationParams) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, err := s.Bills(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(bills)-1; i < j; i, j = i+1, j-1 {
		bills[i], bills[j] = bills[j], bills[i]
	}
	return pagination.Paginate(bills, params), nil
}

// FindBill looks up one of today's bills by number
func (s *LedgerService) FindBill(ctx context.Context, number string) (*entity.Bill, error) {
	ledger, err := s.EnsureCurrentDay(ctx)
	if err != nil {
		return nil, err
	}
	bill, ok := ledger.FindBill(number)
	if !ok {
		return nil, apperror.NewNotFoundError("Bill " + number)
	}
	return bill, nil
}

// Persist retries the last write that failed. It is best-effort and only
// reports whether the store is up to date.
func (s *LedgerService) Persist(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsaved == nil {
		return true
	}
	return s.save(ctx, s.unsaved)
}

// load reads the stored ledger, preferring a copy whose write failed since
// the store is behind it.
func (s *LedgerService) load(ctx context.Context) (*entity.EODLedger, error) {
	if s.unsaved != nil {
		return s.unsaved, nil
	}
	ledger, err := s.repo.Load(ctx)
	if err != nil {
		metrics.PersistenceFailures.WithLabelValues(repository.KeyEODData).Inc()
		return nil, err
	}
	return ledger, nil
}

func (s *LedgerService) save(ctx context.Context, ledger *entity.EODLedger) bool {
	if err := s.repo.Save(ctx, ledger); err != nil {
		metrics.PersistenceFailures.WithLabelValues(repository.KeyEODData).Inc()
		log.Printf("Failed to save EOD data: %v", err)
		s.unsaved = ledger
		return false
	}
	s.unsaved = nil
	return true
}
