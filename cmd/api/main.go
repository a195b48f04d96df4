package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bacdepzai/orderdesk/internal/application/service"
	"github.com/bacdepzai/orderdesk/internal/config"
	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/pricing"
	domainRepo "github.com/bacdepzai/orderdesk/internal/domain/repository"
	"github.com/bacdepzai/orderdesk/internal/infrastructure/cache"
	"github.com/bacdepzai/orderdesk/internal/infrastructure/database"
	"github.com/bacdepzai/orderdesk/internal/infrastructure/memory"
	"github.com/bacdepzai/orderdesk/internal/infrastructure/repository"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/handler"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/routes"
	"github.com/bacdepzai/orderdesk/pkg/gemini"
	"github.com/bacdepzai/orderdesk/pkg/printer"
	"github.com/bacdepzai/orderdesk/pkg/sheets"
	"github.com/bacdepzai/orderdesk/pkg/utils"
	"github.com/gin-gonic/gin"
)

type stores struct {
	orders      domainRepo.OrderRepository
	settings    domainRepo.SettingsRepository
	idempotency domainRepo.IdempotencyRepository
	drafts      domainRepo.DraftRepository
	closers     []func() error
}

func main() {
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := openStores(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer st.close()

	clock := service.SystemClock(cfg.App.Location())
	classifier := pricing.NewClassifier(cfg.Pricing.AreaKeywords)
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	shop := entity.ReceiptHeader{ShopName: cfg.Shop.Name, Address: cfg.Shop.Address, Phone: cfg.Shop.Phone}

	sheetsClient := sheets.NewClient(cfg.Sheets.WebhookURL, cfg.Sheets.Timeout)
	if !sheetsClient.Enabled() {
		log.Println("Sheet sync disabled: SHEETS_WEBHOOK_URL is not set")
	}
	geminiClient := gemini.NewClient(cfg.Assistant.APIKey, cfg.Assistant.Model, cfg.Assistant.BaseURL, cfg.Assistant.Timeout)
	if !geminiClient.Configured() {
		log.Println("Assistant disabled: GEMINI_API_KEY is not set")
	}

	thermalPrinter, err := printer.New(printer.Config{
		Type:      cfg.Printer.Type,
		USBPath:   cfg.Printer.USBPath,
		Address:   cfg.Printer.Address,
		CharWidth: cfg.Printer.CharWidth,
		Timeout:   cfg.Printer.Timeout,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	draftService := service.NewDraftService(st.drafts, classifier, clock)
	orderService := service.NewOrderService(st.orders, draftService, sheetsClient, classifier, clock)
	statsService := service.NewStatsService(orderService, clock)
	settingsService := service.NewSettingsService(st.settings)
	authService := service.NewAuthService(st.settings, jwtManager)
	assistantService := service.NewAssistantService(geminiClient, draftService, statsService, cfg.Shop.Name, cfg.Assistant.MaxHistory)
	adminService := service.NewAdminService(orderService, draftService, settingsService, assistantService)
	invoiceService := service.NewInvoiceService(shop)
	exportService := service.NewExportService()
	printerService := service.NewPrinterService(thermalPrinter, shop, cfg.Printer.CharWidth)

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Draft:     handler.NewDraftHandler(draftService, orderService, invoiceService, settingsService),
		Order:     handler.NewOrderHandler(orderService, invoiceService, exportService, settingsService),
		Stats:     handler.NewStatsHandler(statsService),
		Admin:     handler.NewAdminHandler(adminService),
		Assistant: handler.NewAssistantHandler(assistantService),
		Printer:   handler.NewPrinterHandler(printerService, draftService, orderService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Roles:           authService,
		Cfg:             cfg,
		IdempotencyRepo: st.idempotency,
	})
	defer router.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go purgeIdempotencyKeys(ctx, st.idempotency)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s, storage: %s, draft: %s", cfg.App.Env, cfg.Storage.Driver, cfg.Storage.DraftDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	orderService.WaitForSync()
	log.Println("Server stopped")
}

// openStores selects the history and draft backends from the config.
func openStores(cfg *config.Config) (*stores, error) {
	st := &stores{}

	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, sqlDB.Close)
		st.orders = repository.NewOrderRepository(db)
		st.settings = repository.NewSettingsRepository(db)
		st.idempotency = repository.NewIdempotencyRepository(db)
	default:
		log.Printf("Using in-memory history storage (STORAGE_DRIVER=%q)", cfg.Storage.Driver)
		st.orders = memory.NewOrderRepository()
		st.settings = memory.NewSettingsRepository()
		st.idempotency = memory.NewIdempotencyRepository()
	}

	switch cfg.Storage.DraftDriver {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			st.close()
			return nil, err
		}
		st.closers = append(st.closers, rdb.Close)
		st.drafts = cache.NewDraftStore(rdb, cfg.Redis.KeyPrefix, cfg.Redis.DraftTTL)
	default:
		st.drafts = memory.NewDraftRepository()
	}

	return st, nil
}

func (s *stores) close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			log.Printf("Close error: %v", err)
		}
	}
}

// purgeIdempotencyKeys drops expired keys every hour until ctx ends.
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Printf("Idempotency cleanup failed: %v", err)
			}
		}
	}
}
