package repository

import (
	"context"
	"encoding/json"

	"github.com/chaatgpt/till/internal/domain/entity"
	domainRepo "github.com/chaatgpt/till/internal/domain/repository"
	"github.com/chaatgpt/till/pkg/apperror"
)

// loadDocument decodes the JSON document under key into out.
// It reports false when the key has never been written.
func loadDocument(ctx context.Context, store domainRepo.KVStore, key string, out interface{}) (bool, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, apperror.NewPersistenceError("read "+key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, apperror.NewPersistenceError("decode "+key, err)
	}
	return true, nil
}

func saveDocument(ctx context.Context, store domainRepo.KVStore, key string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return apperror.NewPersistenceError("encode "+key, err)
	}
	if err := store.Set(ctx, key, string(raw)); err != nil {
		return apperror.NewPersistenceError("write "+key, err)
	}
	return nil
}

type ledgerRepository struct {
	store domainRepo.KVStore
}

// NewLedgerRepository creates a repository for the eodData document
func NewLedgerRepository(store domainRepo.KVStore) domainRepo.LedgerRepository {
	return &ledgerRepository{store: store}
}

func (r *ledgerRepository) Load(ctx context.Context) (*entity.EODLedger, error) {
	var ledger entity.EODLedger
	found, err := loadDocument(ctx, r.store, domainRepo.KeyEODData, &ledger)
	if err != nil || !found {
		return nil, err
	}
	if ledger.Bills == nil {
		ledger.Bills = []entity.Bill{}
	}
	return &ledger, nil
}

func (r *ledgerRepository) Save(ctx context.Context, ledger *entity.EODLedger) error {
	return saveDocument(ctx, r.store, domainRepo.KeyEODData, ledger)
}

type menuRepository struct {
	store domainRepo.KVStore
}

// NewMenuRepository creates a repository for the menuData document
func NewMenuRepository(store domainRepo.KVStore) domainRepo.MenuRepository {
	return &menuRepository{store: store}
}

func (r *menuRepository) Load(ctx context.Context) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	if _, err := loadDocument(ctx, r.store, domainRepo.KeyMenuData, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) Save(ctx context.Context, items []entity.MenuItem) error {
	return saveDocument(ctx, r.store, domainRepo.KeyMenuData, items)
}

type exportRepository struct {
	store domainRepo.KVStore
}

// NewExportRepository creates a repository for the csvExports document
func NewExportRepository(store domainRepo.KVStore) domainRepo.ExportRepository {
	return &exportRepository{store: store}
}

func (r *exportRepository) Load(ctx context.Context) ([]entity.CSVExportRecord, error) {
	records := []entity.CSVExportRecord{}
	if _, err := loadDocument(ctx, r.store, domainRepo.KeyCSVExports, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *exportRepository) Save(ctx context.Context, records []entity.CSVExportRecord) error {
	return saveDocument(ctx, r.store, domainRepo.KeyCSVExports, records)
}
