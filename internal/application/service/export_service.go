package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/chaatgpt/till/internal/domain/repository"
	"github.com/chaatgpt/till/internal/infrastructure/metrics"
	"github.com/chaatgpt/till/pkg/apperror"
	"github.com/chaatgpt/till/pkg/csvexport"
)

// DefaultExportHistoryLimit is how many saved exports are kept
const DefaultExportHistoryLimit = 50

const (
	csvDateLayout     = "2/1/2006"
	csvTimeLayout     = "3:04:05 pm"
	eodDateLayout     = "2 January 2006"
	historyDateLayout = "Mon Jan 02 2006"
)

var (
	billHeaders = []string{"Bill Number", "Date", "Time", "Customer Name", "Customer Phone", "Items",
		"Subtotal", "Packing Charge", "Total", "Payment Method", "Amount Received", "Change", "Item Count"}
	eodHeaders = []string{"Date", "Total Bills", "Total Sales", "Cash Received", "UPI Received",
		"Pending Amount", "Average Bill"}
	productHeaders = []string{"Product Name", "Period", "Orders", "Quantity Sold", "Total Revenue"}
	allDataHeaders = []string{"Bill Number", "Date", "Time", "Customer Name", "Customer Phone", "Item Name",
		"Item Price", "Quantity", "Item Total", "Subtotal", "Packing Charge", "Total", "Payment Method",
		"Amount Received", "Change"}
)

// ExportEntry describes a saved export without its content
type ExportEntry struct {
	Index     int             `json:"index"`
	Kind      enum.ExportKind `json:"type"`
	FileName  string          `json:"filename"`
	Timestamp time.Time       `json:"timestamp"`
	Date      string          `json:"date"`
	Size      int             `json:"size"`
}

// ExportService renders CSV exports of the ledger and keeps the export history
type ExportService struct {
	ledger    *LedgerService
	analytics *AnalyticsService
	repo      repository.ExportRepository
	clock     Clock
	loc       *time.Location
	limit     int
}

// NewExportService creates a new export service
func NewExportService(
	ledger *LedgerService,
	analytics *AnalyticsService,
	repo repository.ExportRepository,
	clock Clock,
	loc *time.Location,
	limit int,
) *ExportService {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	if limit <= 0 {
		limit = DefaultExportHistoryLimit
	}
	return &ExportService{
		ledger:    ledger,
		analytics: analytics,
		repo:      repo,
		clock:     clock,
		loc:       loc,
		limit:     limit,
	}
}

// Export renders a downloadable CSV and records it in the history
func (s *ExportService) Export(ctx context.Context, kind enum.ExportKind) (*entity.ExportFile, error) {
	var (
		content string
		rows    int
		err     error
	)

	switch kind {
	case enum.ExportKindBills:
		content, rows, err = s.billsCSV(ctx)
	case enum.ExportKindEOD:
		content, rows, err = s.eodCSV(ctx)
	case enum.ExportKindProductReport:
		content, rows, err = s.productReportCSV(ctx)
	case enum.ExportKindAllData:
		content, rows, err = s.allDataCSV(ctx)
	default:
		return nil, apperror.NewBadRequestError(apperror.KindBadRequest, "Unknown export type: "+kind.String())
	}
	if err != nil {
		return nil, err
	}

	now := s.clock()
	s.record(ctx, kind, content, now)
	metrics.ExportsGenerated.WithLabelValues(kind.String()).Inc()

	return &entity.ExportFile{
		Kind:     kind,
		FileName: kind.FilePrefix() + "_" + now.UTC().Format(entity.DateLayout) + ".csv",
		Content:  content,
		Rows:     rows,
	}, nil
}

// AutoSave writes the bills CSV to the history without a download.
// It does nothing when there are no bills and never returns an error.
func (s *ExportService) AutoSave(ctx context.Context) {
	content, _, err := s.billsCSV(ctx)
	if err != nil {
		if !apperror.Is(err, apperror.KindNoExportData) {
			log.Printf("Auto-save CSV failed: %v", err)
		}
		return
	}
	s.record(ctx, enum.ExportKindAutoSaveBills, content, s.clock())
	metrics.ExportsGenerated.WithLabelValues(enum.ExportKindAutoSaveBills.String()).Inc()
}

// ListExports returns the saved export history, oldest first
func (s *ExportService) ListExports(ctx context.Context) ([]ExportEntry, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportEntry, 0, len(records))
	for i := range records {
		entries = append(entries, ExportEntry{
			Index:     i,
			Kind:      records[i].Kind,
			FileName:  records[i].FileName(),
			Timestamp: records[i].Timestamp,
			Date:      records[i].Date,
			Size:      len(records[i].Content),
		})
	}
	return entries, nil
}

// GetExport returns a saved export for download
func (s *ExportService) GetExport(ctx context.Context, index int) (*entity.ExportFile, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(records) {
		return nil, apperror.NewNotFoundError("Export")
	}

	rec := records[index]
	return &entity.ExportFile{
		Kind:     rec.Kind,
		FileName: rec.FileName(),
		Content:  rec.Content,
		Rows:     strings.Count(rec.Content, "\n"),
	}, nil
}

// record appends to the history, evicting the oldest entries past the
// limit. Failures are logged only.
func (s *ExportService) record(ctx context.Context, kind enum.ExportKind, content string, now time.Time) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		metrics.PersistenceFailures.WithLabelValues(repository.KeyCSVExports).Inc()
		log.Printf("Failed to load CSV export history: %v", err)
		return
	}

	records = append(records, entity.CSVExportRecord{
		Kind:      kind,
		Content:   content,
		Timestamp: now.UTC(),
		Date:      now.In(s.loc).Format(historyDateLayout),
	})
	if len(records) > s.limit {
		records = records[len(records)-s.limit:]
	}

	if err := s.repo.Save(ctx, records); err != nil {
		metrics.PersistenceFailures.WithLabelValues(repository.KeyCSVExports).Inc()
		log.Printf("Failed to save CSV export history: %v", err)
	}
}

func (s *ExportService) billsCSV(ctx context.Context) (string, int, error) {
	bills, err := s.ledger.Bills(ctx)
	if err != nil {
		return "", 0, err
	}
	if len(bills) == 0 {
		return "", 0, apperror.ErrNoExportData
	}

	records := make([]csvexport.Record, 0, len(bills))
	for i := range bills {
		b := &bills[i]
		items := make([]string, 0, len(b.Items))
		for _, item := range b.Items {
			items = append(items, item.Name+" ("+strconv.Itoa(item.Quantity)+"x ₹"+item.UnitPrice.Plain()+")")
		}

		rec := s.billColumns(b)
		rec["Items"] = strings.Join(items, "; ")
		rec["Item Count"] = strconv.Itoa(b.ItemCount())
		records = append(records, rec)
	}
	return csvexport.Encode(records, billHeaders), len(records), nil
}

func (s *ExportService) eodCSV(ctx context.Context) (string, int, error) {
	summary, err := s.ledger.Summary(ctx)
	if err != nil {
		return "", 0, err
	}

	rec := csvexport.Record{
		"Date":           s.clock().In(s.loc).Format(eodDateLayout),
		"Total Bills":    strconv.Itoa(summary.BillCount),
		"Total Sales":    summary.TotalSales.String(),
		"Cash Received":  summary.CashAmountReceived.String(),
		"UPI Received":   summary.UPIAmountReceived.String(),
		"Pending Amount": summary.PendingAmount.String(),
		"Average Bill":   summary.AverageBill.String(),
	}
	return csvexport.Encode([]csvexport.Record{rec}, eodHeaders), 1, nil
}

func (s *ExportService) productReportCSV(ctx context.Context) (string, int, error) {
	var records []csvexport.Record
	for _, period := range []enum.ReportPeriod{enum.ReportPeriodDaily, enum.ReportPeriodWeekly} {
		products, err := s.analytics.AggregateByProduct(ctx, period)
		if err != nil {
			return "", 0, err
		}
		for _, p := range products {
			records = append(records, csvexport.Record{
				"Product Name":  p.Name,
				"Period":        period.Label(),
				"Orders":        strconv.Itoa(p.OrderCount),
				"Quantity Sold": strconv.Itoa(p.TotalQuantity),
				"Total Revenue": p.TotalRevenue.String(),
			})
		}
	}
	if len(records) == 0 {
		return "", 0, apperror.ErrNoExportData
	}
	return csvexport.Encode(records, productHeaders), len(records), nil
}

func (s *ExportService) allDataCSV(ctx context.Context) (string, int, error) {
	bills, err := s.ledger.Bills(ctx)
	if err != nil {
		return "", 0, err
	}
	if len(bills) == 0 {
		return "", 0, apperror.ErrNoExportData
	}

	var records []csvexport.Record
	for i := range bills {
		b := &bills[i]
		if len(b.Items) == 0 {
			records = append(records, s.billColumns(b))
			continue
		}
		for j, item := range b.Items {
			rec := csvexport.Record{}
			if j == 0 {
				rec = s.billColumns(b)
			}
			rec["Item Name"] = item.Name
			rec["Item Price"] = item.UnitPrice.Plain()
			rec["Quantity"] = strconv.Itoa(item.Quantity)
			rec["Item Total"] = item.Total.Plain()
			records = append(records, rec)
		}
	}
	return csvexport.Encode(records, allDataHeaders), len(records), nil
}

// billColumns fills the bill-level columns shared by the bills and
// all-data exports
func (s *ExportService) billColumns(b *entity.Bill) csvexport.Record {
	when := b.Date.In(s.loc)
	return csvexport.Record{
		"Bill Number":     b.BillNumber,
		"Date":            when.Format(csvDateLayout),
		"Time":            when.Format(csvTimeLayout),
		"Customer Name":   b.CustomerName,
		"Customer Phone":  b.CustomerPhone,
		"Subtotal":        b.Subtotal.Plain(),
		"Packing Charge":  b.PackingCharge.Plain(),
		"Total":           b.Total.Plain(),
		"Payment Method":  b.PaymentMethod.String(),
		"Amount Received": b.AmountReceived.Plain(),
		"Change":          b.Change.Plain(),
	}
}
