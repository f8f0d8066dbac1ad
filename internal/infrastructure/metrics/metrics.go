// Package metrics exposes the till's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BillsFinalized counts finalized bills by payment method.
var BillsFinalized = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "till",
	Subsystem: "billing",
	Name:      "bills_finalized_total",
	Help:      "Total bills appended to the EOD ledger.",
}, []string{"method"})

// SalesPaise accumulates the value of finalized bills.
var SalesPaise = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "till",
	Subsystem: "billing",
	Name:      "sales_paise_total",
	Help:      "Total value of finalized bills in paise.",
}, []string{"method"})

// PaymentRejections counts payment validation failures by error kind.
var PaymentRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "till",
	Subsystem: "billing",
	Name:      "payment_rejections_total",
	Help:      "Total payments rejected during validation.",
}, []string{"kind"})

// LedgerBills is the number of bills in today's ledger.
var LedgerBills = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "till",
	Subsystem: "ledger",
	Name:      "bills",
	Help:      "Bills recorded in the current day's ledger.",
})

// LedgerResets counts ledger resets by cause (rollover, manual).
var LedgerResets = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "till",
	Subsystem: "ledger",
	Name:      "resets_total",
	Help:      "Total EOD ledger resets.",
}, []string{"cause"})

// ExportsGenerated counts CSV exports by kind.
var ExportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "till",
	Subsystem: "export",
	Name:      "generated_total",
	Help:      "Total CSV exports generated.",
}, []string{"kind"})

// PersistenceFailures counts failed writes to the document store.
var PersistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "till",
	Subsystem: "store",
	Name:      "persistence_failures_total",
	Help:      "Total failed document store operations.",
}, []string{"document"})

// PrintJobs counts receipt print attempts by outcome.
var PrintJobs = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "till",
	Subsystem: "printer",
	Name:      "jobs_total",
	Help:      "Total receipt print jobs.",
}, []string{"result"})

// MenuChanges counts menu edits by change type (updated, deleted).
var MenuChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "till",
	Subsystem: "menu",
	Name:      "changes_total",
	Help:      "Total menu items edited or removed.",
}, []string{"type"})
