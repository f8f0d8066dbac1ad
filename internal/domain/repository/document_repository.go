package repository

import (
	"context"

	"github.com/chaatgpt/till/internal/domain/entity"
)

// Document keys in the KV store
const (
	KeyEODData    = "eodData"
	KeyMenuData   = "menuData"
	KeyCSVExports = "csvExports"
)

// LedgerRepository loads and saves the whole EOD ledger document
type LedgerRepository interface {
	// Load returns nil when no ledger has been saved yet
	Load(ctx context.Context) (*entity.EODLedger, error)
	Save(ctx context.Context, ledger *entity.EODLedger) error
}

// MenuRepository loads and saves the menu overrides document
type MenuRepository interface {
	Load(ctx context.Context) ([]entity.MenuItem, error)
	Save(ctx context.Context, items []entity.MenuItem) error
}

// ExportRepository loads and saves the saved CSV export history
type ExportRepository interface {
	Load(ctx context.Context) ([]entity.CSVExportRecord, error)
	Save(ctx context.Context, records []entity.CSVExportRecord) error
}
