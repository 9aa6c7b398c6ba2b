package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	_ "github.com/aaravmahajanofficial/apparel-storefront/docs"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/cache"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/config"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/health"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/apparel-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/apparel-storefront/internal/services"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/tracing"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/sendgrid"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/stripe"
	"github.com/sony/gobreaker/v2"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const version = "1.0.0"

//	@title						Apparel Storefront Cart API
//	@version					1.0
//	@description				Cart pricing, coupons, flash-sale prices and checkout for the apparel storefront.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.OTel, cfg.Env, version)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	pg, repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	onBreakerChange := func(name string, _, to gobreaker.State) {
		metrics.SetBreakerState(name, int(to))
	}
	coupons := repository.NewBreakerCouponRepo(repos.Coupon, repository.BreakerSettings("coupon_lookup", cfg.Breaker, onBreakerChange))
	orders := repository.NewBreakerOrderRepo(repos.Order, repository.BreakerSettings("order_create", cfg.Breaker, onBreakerChange))

	windows, _ := cfg.FlashSale.ParsedWindows()
	loc, _ := cfg.FlashSale.Location()
	currency := money.LookupCurrency(cfg.Currency)

	// Pricing engine
	pricing := service.NewPricingCalculator()
	validator := service.NewCouponValidator(coupons, pricing, currency, cfg.Coupon.LookupTimeout)
	scheduler := service.NewFlashSaleScheduler(windows, loc)
	monitor := service.NewFlashSaleMonitor(scheduler, cfg.FlashSale.RefreshPeriod, logger)

	sessionStore := repository.NewSessionRepo(redisClient, cfg.Session.StoreTTL)
	sessions := service.NewSessionManager(repos.Cart, sessionStore, pricing, validator, scheduler, cfg.Session.IdleTTL)

	monitor.OnTransition(func(state models.FlashSaleState) {
		metrics.SetFlashSaleActive(state.Active)

		if n := sessions.Reprice(); n > 0 {
			logger.Info("Live carts repriced for flash sale", slog.Bool("active", state.Active), slog.Int("sessions", n))
		}
	})
	limiter := repository.NewAttemptLimiter(redisClient, cfg.Coupon.MaxAttempts, cfg.Coupon.AttemptWindow, time.Now)

	// Payment and email providers are optional
	var stripeClient stripe.Client
	if cfg.Stripe.APIKey != "" {
		stripeClient = stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	} else {
		slog.Warn("Stripe API key not set, card payments are disabled")
	}

	var mailer sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		mailer = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	cartService := service.NewCartService(sessions, repos.Cart, currency)
	couponService := service.NewCouponService(sessions, validator, limiter, currency)
	checkoutService := service.NewCheckoutService(sessions, service.NewCheckoutAssembler(pricing))
	orderService := service.NewOrderService(sessions, orders, repos.Cart, stripeClient, mailer, redisCache, currency)
	catalogService := service.NewCatalogService(repos.Product, redisCache, monitor, currency, cfg.Cache.DefaultTTL)

	cartHandler := handlers.NewCartHandler(cartService, couponService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, orderService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthChecker, err := health.NewHealthHandler(cfg, version, &health.Endpoints{DB: pg.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", version))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/cart/items/{id}/toggle", authMiddleware.Authenticate(cartHandler.ToggleItem()))
	routerMux.HandleFunc("POST /api/v1/cart/selection", authMiddleware.Authenticate(cartHandler.SelectAll()))
	routerMux.HandleFunc("DELETE /api/v1/cart/selection", authMiddleware.Authenticate(cartHandler.ClearSelection()))
	routerMux.HandleFunc("POST /api/v1/cart/coupon", authMiddleware.Authenticate(cartHandler.ApplyCoupon()))
	routerMux.HandleFunc("DELETE /api/v1/cart/coupon", authMiddleware.Authenticate(cartHandler.RemoveCoupon()))
	routerMux.HandleFunc("DELETE /api/v1/session", authMiddleware.Authenticate(cartHandler.EndSession()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Checkout()))
	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(checkoutHandler.PlaceOrder()))
	routerMux.HandleFunc("GET /api/v1/flash-sale", catalogHandler.FlashSaleState())
	routerMux.HandleFunc("GET /api/v1/products/flash-sale", catalogHandler.FlashSaleGrid())
	routerMux.HandleFunc("GET /api/v1/products/{id}/price", catalogHandler.ProductPrice())

	if stripeClient != nil {
		paymentHandler := handlers.NewPaymentHandler(service.NewPaymentService(orders, stripeClient))
		routerMux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.HandleStripeWebhook())
	}

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthChecker.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "storefront",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}))

	// Background loops
	monitor.Start(ctx)
	sessions.StartSweeper(ctx, cfg.Session.SweepPeriod)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	monitor.Stop()
	sessions.Stop()
	sessions.SaveAll(shutdownCtx)
	slog.Info("✅ Cart selections saved", slog.Int("sessions", sessions.Active()))

	if err := redisCache.Close(); err != nil {
		slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
	}

	if err := pg.Close(); err != nil {
		slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Database connection closed")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}
