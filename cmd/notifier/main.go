package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-cinema-booking/config"
	"go-gin-cinema-booking/internal/database"
	"go-gin-cinema-booking/internal/notification"
	"go-gin-cinema-booking/internal/queue"
	"go-gin-cinema-booking/internal/worker"
	"go-gin-cinema-booking/pkg/logger"
	"go-gin-cinema-booking/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// notifier consumes the confirmation stream and sends booking emails.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L.Fatal("Failed to load config", zap.Error(err))
	}
	logger.SetLevel(cfg.App.LogLevel)
	log := logger.WithComponent("notifier")

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hostname, _ := os.Hostname()
	consumerID := fmt.Sprintf("%s-%d", hostname, os.Getpid())
	confirmations, err := queue.NewRedisStreamConfirmationQueue(ctx, rdb, consumerID, nil)
	if err != nil {
		log.Fatal("Failed to initialize confirmation queue", zap.Error(err))
	}

	mailer := notification.NewMailer(notification.BrevoConfig{
		APIURL:      cfg.Mail.APIURL,
		APIKey:      cfg.Mail.APIKey,
		SenderEmail: cfg.Mail.SenderEmail,
		SenderName:  cfg.Mail.SenderName,
	})
	if cfg.Mail.APIKey == "" {
		log.Warn("MAIL_API_KEY not set, confirmation emails are only logged")
	}

	if err := worker.NewConfirmationWorker(mailer, confirmations).Start(ctx); err != nil {
		log.Fatal("Failed to start confirmation worker", zap.Error(err))
	}

	// metrics only
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", metrics.Handler())
	srv := &http.Server{Addr: cfg.Notifier.MetricsAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", zap.Error(err))
		}
	}()

	log.Info("Notifier started", zap.String("consumer", consumerID))
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("Notifier stopped")
}
