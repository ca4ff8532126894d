package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/comanda-pos/internal/application/service"
	"github.com/sangkips/comanda-pos/internal/config"
	"github.com/sangkips/comanda-pos/internal/domain/entity"
	"github.com/sangkips/comanda-pos/internal/infrastructure/kvstore"
	"github.com/sangkips/comanda-pos/internal/infrastructure/repository"
	"github.com/sangkips/comanda-pos/internal/presentation/http/handler"
	"github.com/sangkips/comanda-pos/internal/presentation/http/middleware"
	"github.com/sangkips/comanda-pos/internal/presentation/http/routes"
	"github.com/sangkips/comanda-pos/pkg/printer"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339

	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
		if cfg.App.Debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open storage
	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close storage")
		}
	}()

	// Initialize repositories
	productRepo := repository.NewProductRepository(store)
	saleRepo := repository.NewSaleRepository(store)
	counterRepo := repository.NewOrderCounterRepository(store)

	loc := cfg.Store.Location()

	// Initialize services
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(catalogService)
	orderSequencer := service.NewOrderSequencer(counterRepo, cfg.Order.StartOffset)
	saleService := service.NewSaleService(cartService, orderSequencer, saleRepo, loc)
	reportService := service.NewReportService(saleService)
	exportService := service.NewExportService(loc)

	if err := catalogService.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
	}
	if err := orderSequencer.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load order sequence")
	}
	if err := saleService.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load sale ledger")
	}
	orderSequencer.Reconcile(saleService.HighestOrderNumber())

	// Initialize printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:     cfg.Printer.Type,
		USBPath:  cfg.Printer.USBPath,
		Address:  cfg.Printer.Address,
		SpoolDir: cfg.Printer.SpoolDir,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Printer not available, receipts will not be printed")
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	printerService := service.NewPrinterService(thermalPrinter, saleService, service.PrinterOptions{
		Header: entity.ReceiptHeader{
			StoreName: cfg.Store.Name,
			Address:   cfg.Store.Address,
			Phone:     cfg.Store.Phone,
		},
		Type:     cfg.Printer.Type,
		Width:    cfg.Printer.Width,
		Location: loc,
	})
	saleService.Subscribe(printerService)

	// Initialize middleware state
	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		Requests: cfg.RateLimit.Requests,
		Window:   time.Duration(cfg.RateLimit.Duration) * time.Second,
	})
	go rateLimiter.Run(ctx)

	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		Size: cfg.Idempotency.CacheSize,
		TTL:  cfg.Idempotency.TTL,
	})

	// Initialize handlers
	handlers := &routes.Handlers{
		Product: handler.NewProductHandler(catalogService, exportService),
		Cart:    handler.NewCartHandler(cartService),
		Sale:    handler.NewSaleHandler(saleService, exportService),
		Report:  handler.NewReportHandler(reportService, loc),
		Printer: handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:         cfg,
		RateLimiter: rateLimiter,
		Idempotency: idempotencyStore,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.App.Port).
			Str("store", cfg.Store.Name).
			Int64("last_order_number", orderSequencer.Current()).
			Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
