package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gunungclimbing/storefront/internal/api/handlers"
	"github.com/gunungclimbing/storefront/internal/api/middleware"
	"github.com/gunungclimbing/storefront/internal/cache"
	"github.com/gunungclimbing/storefront/internal/config"
	"github.com/gunungclimbing/storefront/internal/health"
	"github.com/gunungclimbing/storefront/internal/metrics"
	repository "github.com/gunungclimbing/storefront/internal/repositories"
	service "github.com/gunungclimbing/storefront/internal/services"
	"github.com/gunungclimbing/storefront/internal/telemetry"
	"github.com/gunungclimbing/storefront/pkg/sendgrid"
	"github.com/gunungclimbing/storefront/pkg/stripe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing (optional)
	if cfg.Telemetry.Enabled {
		shutdownTracer, err := telemetry.InitTracer(context.Background(), &cfg.Telemetry)
		if err != nil {
			slog.Error("Failed to initialize tracing", "error", err.Error())
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdownTracer(ctx); err != nil {
				slog.Warn("Tracer shutdown failed", "error", err.Error())
			}
		}()
	}

	// Database setup. The catalog has a hardcoded fallback, so a missing
	// database degrades the storefront instead of killing it.
	var (
		productRepo  repository.ProductRepository
		orderRepo    repository.OrderRepository
		settingsRepo repository.SettingsRepository
	)

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Warn("Database unavailable, serving fallback catalog", "error", err.Error())
	} else {
		productRepo = repos.Product
		orderRepo = repos.Order
		settingsRepo = repos.Settings

		defer func() {
			if err := repos.Close(); err != nil {
				slog.Error("Error closing database connection", slog.String("error", err.Error()))
			} else {
				slog.Info("Database connection closed")
			}
		}()
	}

	// Redis setup (carts + catalog cache)
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	emailClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	productCache := cache.NewRedisCache(redisClient, &cfg.CacheConfig)

	catalogService := service.NewCatalogService(productRepo, productCache)
	cartService := service.NewCartService(repository.NewCartRepo(redisClient), nil)
	checkoutService := service.NewCheckoutService(catalogService, settingsRepo, stripeClient, &cfg.Stripe, nil)
	notificationService := service.NewNotificationService(emailClient, cfg.SendGrid.OrderEmail)
	orderService := service.NewOrderService(orderRepo, stripeClient, notificationService)
	adminService := service.NewAdminService(settingsRepo)

	adminAuth := middleware.NewAdminAuth(cfg.Admin.Password, []byte(cfg.Admin.SessionKey), cfg.Admin.SessionTTL)

	productHandler := handlers.NewProductHandler(catalogService, nil)
	cartHandler := handlers.NewCartHandler(cartService, catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	webhookHandler := handlers.NewWebhookHandler(orderService)
	adminHandler := handlers.NewAdminHandler(adminService, adminAuth)
	contactHandler := handlers.NewContactHandler(notificationService)

	healthHandler, err := health.NewHealthHandler(cfg, stripeClient)
	if err != nil {
		slog.Error("Failed to create health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/feed", productHandler.ProductFeed())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/carts/{id}", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/carts/{id}/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/carts/{id}/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/carts/{id}/items", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/carts/{id}", cartHandler.ClearCart())
	routerMux.HandleFunc("GET /api/v1/shipping/rates", checkoutHandler.ShippingRates())
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Checkout())
	routerMux.HandleFunc("POST /api/v1/webhooks/stripe", webhookHandler.HandleStripeWebhook())
	routerMux.HandleFunc("POST /api/v1/contact", contactHandler.Submit())
	routerMux.HandleFunc("POST /api/v1/admin/login", adminHandler.Login())
	routerMux.HandleFunc("POST /api/v1/admin/logout", adminHandler.Logout())
	routerMux.HandleFunc("GET /api/v1/admin/store/status", adminAuth.Authenticate(adminHandler.StoreStatus()))
	routerMux.HandleFunc("PATCH /api/v1/admin/store/status", adminAuth.Authenticate(adminHandler.UpdateStoreStatus()))
	routerMux.HandleFunc("PATCH /api/v1/admin/products/{id}/price", adminAuth.Authenticate(adminHandler.UpdatePrice()))
	routerMux.HandleFunc("PATCH /api/v1/admin/products/{id}/sale-price", adminAuth.Authenticate(adminHandler.UpdateSalePrice()))
	routerMux.HandleFunc("PATCH /api/v1/admin/products/{id}/visibility", adminAuth.Authenticate(adminHandler.UpdateVisibility()))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}/sizes/{size}", adminAuth.Authenticate(adminHandler.UpdateStock()))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}/sizes/{size}", adminAuth.Authenticate(adminHandler.DeleteSize()))
	routerMux.Handle("GET /healthz", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}
}
