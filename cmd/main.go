package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/auth"
	"github.com/onerilhan/go-store-api/internal/bank"
	"github.com/onerilhan/go-store-api/internal/config"
	"github.com/onerilhan/go-store-api/internal/db"
	"github.com/onerilhan/go-store-api/internal/handlers"
	"github.com/onerilhan/go-store-api/internal/logger"
	"github.com/onerilhan/go-store-api/internal/middleware"
	"github.com/onerilhan/go-store-api/internal/notification"
	"github.com/onerilhan/go-store-api/internal/repository"
	"github.com/onerilhan/go-store-api/internal/services"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env dosyası bulunamadı, ortam değişkenlerinden okunacak.")
	}

	// config yükle
	cfg := config.LoadConfig()

	// logger başlat
	logger.Init(cfg.AppEnv)

	log.Info().
		Str("environment", cfg.AppEnv).
		Str("port", cfg.Port).
		Str("currency", cfg.Currency).
		Msg("🚀 Mağaza API Projesi başlatıldı")

	// JWT secret'ı ayarla
	auth.SetSecret(cfg.JWTSecret)

	// Database bağlantısı
	database, err := db.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Veritabanı bağlantısı başarısız")
	}
	defer database.Close()

	// Repository katmanı
	userRepo := repository.NewUserRepository(database)
	walletRepo := repository.NewWalletRepository(database)
	walletTxRepo := repository.NewWalletTransactionRepository(database)
	productRepo := repository.NewProductRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	entitlementRepo := repository.NewEntitlementRepository(database)
	topupRepo := repository.NewTopupRepository(database)
	auditRepo := repository.NewAuditRepository(database)

	// Dış servisler
	bankClient := bank.NewClient(cfg.BankFeedURL, cfg.BankFeedTimeout)
	notifier := notification.NewWebhookNotifier(cfg.NotifyWebhookURL)

	// Service katmanı
	userService := services.NewUserService(userRepo)
	walletService := services.NewWalletService(walletRepo, walletTxRepo)
	priceVerifier := services.NewPriceVerifier(productRepo)
	checkoutService := services.NewCheckoutService(priceVerifier, notifier, database, cfg.Currency)
	topupService := services.NewTopupService(topupRepo, bankClient, database, cfg.TopupMaxAmount)
	reconcileService := services.NewReconcileService(topupRepo, topupService, bankClient)

	// Otomatik mutabakat worker'ı (interval 0 ise kapalı)
	reconcileWorker := services.NewReconcileWorker(reconcileService, cfg.ReconcileInterval)
	reconcileWorker.Start()

	// Handler katmanı
	userHandler := handlers.NewUserHandler(userService)
	walletHandler := handlers.NewWalletHandler(walletService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, orderRepo, entitlementRepo)
	topupHandler := handlers.NewTopupHandler(topupService)
	adminHandler := handlers.NewAdminHandler(topupService, reconcileService, auditRepo)

	// Gorilla Mux Router Setup
	router := setupRouter(userHandler, walletHandler, checkoutHandler, topupHandler, adminHandler)

	// HTTP Server configuration
	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown setup
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Server'ı goroutine'de başlat
	go func() {
		log.Info().
			Str("addr", serverAddr).
			Msg("🌐 HTTP Server (Gorilla Mux) başlatıldı")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Server başlatma hatası")
		}
	}()

	// Shutdown signal'ını bekle
	<-shutdown
	log.Info().Msg("🛑 Shutdown signal alındı, server kapatılıyor...")

	// Graceful shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// 1. HTTP Server'ı kapat (aktif bağlantıları bekle)
	log.Info().Msg("📡 HTTP Server kapatılıyor...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ HTTP Server kapatma hatası")
	} else {
		log.Info().Msg("✅ HTTP Server başarıyla kapatıldı")
	}

	// 2. Mutabakat worker'ını kapat
	reconcileWorker.Stop()

	// 3. Database bağlantısını kapat (defer ile zaten kapatılacak)
	log.Info().Msg("👋 Mağaza API başarıyla kapatıldı")
}

// setupRouter Gorilla Mux router'ını ayarlar
func setupRouter(userHandler *handlers.UserHandler, walletHandler *handlers.WalletHandler, checkoutHandler *handlers.CheckoutHandler, topupHandler *handlers.TopupHandler, adminHandler *handlers.AdminHandler) *mux.Router {
	router := mux.NewRouter()

	// Global middleware'ler (sıralama önemli: recovery en dışta)
	rateLimiter := middleware.NewRateLimitMiddleware(nil)
	router.Use(middleware.ErrorHandlingMiddleware)
	router.Use(middleware.RequestLoggingMiddleware(nil))
	router.Use(middleware.MetricsMiddleware)
	router.Use(middleware.CORSMiddleware(nil))
	router.Use(rateLimiter.Handler())

	// Health & metrics
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API v1 subrouter
	api := router.PathPrefix("/api/v1").Subrouter()

	// Public endpoints (Authentication)
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", userHandler.Register).Methods("POST")
	authRoutes.HandleFunc("/login", userHandler.Login).Methods("POST")
	authRoutes.HandleFunc("/refresh", userHandler.Refresh).Methods("POST")

	// Protected endpoints (Authentication required)
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware)

	// User endpoints
	users := protected.PathPrefix("/users").Subrouter()
	users.HandleFunc("/profile", userHandler.GetProfile).Methods("GET")

	// Checkout & order endpoints
	protected.HandleFunc("/checkout", checkoutHandler.Checkout).Methods("POST")
	protected.HandleFunc("/orders", checkoutHandler.GetOrders).Methods("GET")
	protected.HandleFunc("/entitlements", checkoutHandler.GetEntitlements).Methods("GET")

	// Wallet endpoints
	wallet := protected.PathPrefix("/wallet").Subrouter()
	wallet.HandleFunc("", walletHandler.GetWallet).Methods("GET")
	wallet.HandleFunc("/transactions", walletHandler.GetTransactions).Methods("GET")
	wallet.HandleFunc("/ledger-check", walletHandler.CheckLedger).Methods("GET")

	// Topup endpoints
	topups := protected.PathPrefix("/topups").Subrouter()
	topups.HandleFunc("", topupHandler.CreateTopup).Methods("POST")
	topups.HandleFunc("", topupHandler.GetTopups).Methods("GET")
	topups.HandleFunc("/{id:[0-9]+}/verify", topupHandler.VerifyTopup).Methods("POST")

	// Admin endpoints (admin rolü gerekli)
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin())
	admin.HandleFunc("/topups/{id:[0-9]+}/decision", adminHandler.DecideTopup).Methods("POST")
	admin.HandleFunc("/reconcile", adminHandler.RunReconcile).Methods("POST")
	admin.HandleFunc("/audit-logs", adminHandler.GetAuditLogs).Methods("GET")

	// Route listesini log'la (development için)
	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			methods, _ := route.GetMethods()
			log.Debug().
				Str("path", pathTemplate).
				Strs("methods", methods).
				Msg("📍 Route registered")
		}
		return nil
	})

	return router
}
