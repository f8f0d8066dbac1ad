// Package app wires configuration, storage and services into a till.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chaatgpt/till/internal/application/service"
	"github.com/chaatgpt/till/internal/config"
	"github.com/chaatgpt/till/internal/domain/entity"
	domainRepo "github.com/chaatgpt/till/internal/domain/repository"
	"github.com/chaatgpt/till/internal/infrastructure/database"
	"github.com/chaatgpt/till/internal/infrastructure/menufile"
	"github.com/chaatgpt/till/internal/infrastructure/metrics"
	"github.com/chaatgpt/till/internal/infrastructure/repository"
	"github.com/chaatgpt/till/internal/presentation/http/handler"
	"github.com/chaatgpt/till/internal/presentation/http/middleware"
	"github.com/chaatgpt/till/internal/presentation/http/routes"
	"github.com/chaatgpt/till/pkg/printer"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App is a fully wired till
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	Location    *time.Location
	Clock       service.Clock
	Menu        *service.MenuService
	Ledger      *service.LedgerService
	Analytics   *service.AnalyticsService
	Exports     *service.ExportService
	Printer     *service.PrinterService
	Till        *service.TillService
	Idempotency domainRepo.IdempotencyRepository

	limiter         *middleware.ClientRateLimiter
	unsubscribeMenu func()
}

// New opens the configured database and wires the till on top of it
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return nil, err
	}

	a, err := NewWithDB(ctx, cfg, db, service.SystemClock)
	if err != nil {
		database.Close(db)
		return nil, err
	}
	return a, nil
}

// NewWithDB wires the till on an open database. The schema is migrated and
// menu overrides are applied before it returns.
func NewWithDB(ctx context.Context, cfg *config.Config, db *gorm.DB, clock service.Clock) (*App, error) {
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = service.SystemClock
	}
	loc := cfg.App.Location()

	store := repository.NewKVStore(db)
	ledgerRepo := repository.NewLedgerRepository(store)
	menuRepo := repository.NewMenuRepository(store)
	exportRepo := repository.NewExportRepository(store)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	seed, err := menufile.Load(cfg.Till.MenuFile)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	menu := service.NewMenuService(menuRepo, seed)
	if err := menu.Load(ctx); err != nil {
		log.Printf("Warning: failed to load menu changes, using the seeded menu: %v", err)
	}

	header := entity.ReceiptHeader{
		StoreName: cfg.Shop.Name,
		Tagline:   cfg.Shop.Tagline,
		Address:   cfg.Shop.Address,
		Phone:     cfg.Shop.Phone,
		Email:     cfg.Shop.Email,
	}

	thermalPrinter, err := printer.Open(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
		Timeout: cfg.Printer.Timeout,
	})
	if err != nil {
		log.Printf("Warning: receipts will not be printed: %v", err)
	}
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, cfg.Printer.Width, header)

	ledger := service.NewLedgerService(ledgerRepo, clock, loc)
	analytics := service.NewAnalyticsService(ledger, clock, loc)
	exports := service.NewExportService(ledger, analytics, exportRepo, clock, loc, cfg.Till.ExportHistoryLimit)

	till := service.NewTillService(service.TillOptions{
		PackingRate: entity.Rupees(cfg.Till.PackingUnitRate),
		BillPrefix:  cfg.Till.BillPrefix,
		Header:      header,
	}, menu, ledger, analytics, exports, printerService, clock, loc)

	unsubscribeMenu := menu.Subscribe(func(e service.MenuEvent) {
		metrics.MenuChanges.WithLabelValues(string(e.Type)).Inc()
		log.Printf("Menu item %s %s (%s at %s)", e.Item.ID, e.Type, e.Item.Name, e.Item.Price)
	})

	// a stale ledger from an earlier day is reset on start
	if _, err := ledger.EnsureCurrentDay(ctx); err != nil {
		log.Printf("Warning: failed to load EOD data: %v", err)
	}

	return &App{
		Config:      cfg,
		DB:          db,
		Location:    loc,
		Clock:       clock,
		Menu:        menu,
		Ledger:      ledger,
		Analytics:   analytics,
		Exports:     exports,
		Printer:     printerService,
		Till:        till,
		Idempotency: idempotencyRepo,

		unsubscribeMenu: unsubscribeMenu,
	}, nil
}

// Router builds the HTTP API of the till
func (a *App) Router() *gin.Engine {
	if a.limiter == nil {
		a.limiter = routes.NewRateLimiter(&a.Config.RateLimit)
	}

	h := &routes.Handlers{
		Menu:    handler.NewMenuHandler(a.Menu),
		Cart:    handler.NewCartHandler(a.Till),
		Payment: handler.NewPaymentHandler(a.Till),
		Bill:    handler.NewBillHandler(a.Till, a.Printer),
		Report:  handler.NewReportHandler(a.Till),
		Export:  handler.NewExportHandler(a.Till),
		Printer: handler.NewPrinterHandler(a.Printer),
	}
	return routes.Setup(h, &routes.Deps{
		Cfg:             a.Config,
		IdempotencyRepo: a.Idempotency,
		RateLimiter:     a.limiter,
	})
}

// PurgeIdempotencyKeys removes expired idempotency keys
func (a *App) PurgeIdempotencyKeys(ctx context.Context) {
	if err := a.Idempotency.DeleteExpired(ctx, a.Clock()); err != nil {
		log.Printf("Failed to purge idempotency keys: %v", err)
	}
}

// Shutdown runs the best-effort persistence and releases resources
func (a *App) Shutdown(ctx context.Context) {
	a.Till.Shutdown(ctx)
	a.Close()
}

// Close releases the printer, the rate limiter and the database
func (a *App) Close() {
	if a.unsubscribeMenu != nil {
		a.unsubscribeMenu()
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if err := a.Printer.Close(); err != nil {
		log.Printf("Failed to close printer: %v", err)
	}
	database.Close(a.DB)
}
