package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-cinema-booking/config"
	"go-gin-cinema-booking/internal/cache"
	"go-gin-cinema-booking/internal/database"
	"go-gin-cinema-booking/internal/events"
	"go-gin-cinema-booking/internal/gateway/momo"
	"go-gin-cinema-booking/internal/gateway/vnpay"
	"go-gin-cinema-booking/internal/handler"
	"go-gin-cinema-booking/internal/middleware"
	"go-gin-cinema-booking/internal/queue"
	"go-gin-cinema-booking/internal/repository"
	"go-gin-cinema-booking/internal/service"
	"go-gin-cinema-booking/pkg/logger"
	"go-gin-cinema-booking/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L.Fatal("Failed to load config", zap.Error(err))
	}
	logger.SetLevel(cfg.App.LogLevel)
	log := logger.WithComponent("server")

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer rdb.Close()

	// API 只負責寫入 stream，寄信由 notifier 處理
	confirmations, err := queue.NewRedisStreamConfirmationQueue(context.Background(), rdb, "", nil)
	if err != nil {
		log.Fatal("Failed to initialize confirmation queue", zap.Error(err))
	}
	publisher := events.NewPublisher(cfg.Broker.URL, cfg.Broker.Queue)
	defer publisher.Close()

	momoClient := momo.NewClient(momo.Config{
		Endpoint: cfg.MoMo.Endpoint,
		Timeout:  cfg.Payment.GatewayTimeout,
		Credentials: momo.Credentials{
			PartnerCode: cfg.MoMo.PartnerCode,
			AccessKey:   cfg.MoMo.AccessKey,
			SecretKey:   cfg.MoMo.SecretKey,
		},
		RequestType: cfg.MoMo.RequestType,
		Lang:        cfg.MoMo.Lang,
	})
	vnpayBuilder := vnpay.NewBuilder(vnpay.Config{
		PayURL:     cfg.VNPay.PayURL,
		TmnCode:    cfg.VNPay.TmnCode,
		HashSecret: cfg.VNPay.HashSecret,
		ReturnURL:  cfg.VNPay.ReturnURL,
		Locale:     cfg.VNPay.Locale,
		ExpireIn:   cfg.VNPay.ExpireIn,
	})

	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	showtimeRepo := repository.NewShowtimeRepository(pool)

	bookingService := service.NewBookingService(bookingRepo, userRepo, showtimeRepo, confirmations, publisher,
		service.WithGatewayVerifier(&service.GatewayVerifier{MoMo: momoClient, VNPay: vnpayBuilder}),
		service.WithTrustClientConfirm(cfg.Payment.TrustClientConfirm),
	)
	paymentService := service.NewPaymentService(
		bookingService,
		momoClient,
		vnpayBuilder,
		cache.NewRedisIntentRegistry(rdb, cfg.Payment.IntentTTL),
		cache.NewRedisPendingOrderStore(rdb, cfg.Payment.IntentTTL),
		service.PaymentDefaults{
			MoMoRedirectURL: cfg.MoMo.RedirectURL,
			MoMoIpnURL:      cfg.MoMo.IpnURL,
		},
	)

	if cfg.Payment.TrustClientConfirm {
		log.Warn("PAYMENT_TRUST_CLIENT_CONFIRM is on, unverified paid confirmations are accepted")
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.AccessLog(), metrics.GinMiddleware())
	router.GET("/metrics", metrics.Handler())

	handler.NewHealthHandler(map[string]handler.HealthCheck{
		"postgres": pool.Ping,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService).RegisterRoutes(router)
	handler.NewPaymentHandler(paymentService).RegisterRoutes(router)
	handler.NewAdminHandler(bookingService).RegisterRoutes(router, middleware.AdminAuth(cfg.Auth.JWTSecret, cfg.Auth.AdminRole))

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.App.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
