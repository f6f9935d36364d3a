package worker

import (
	"context"

	"go-gin-cinema-booking/internal/notification"
	"go-gin-cinema-booking/internal/queue"
	"go-gin-cinema-booking/pkg/logger"
	"go-gin-cinema-booking/pkg/metrics"

	"go.uber.org/zap"
)

type ConfirmationWorker interface {
	// 訂閱確認信隊列
	Start(ctx context.Context) error
}

type ConfirmationWorkerImpl struct {
	mailer notification.Mailer
	queue  queue.ConfirmationQueue
}

func NewConfirmationWorker(mailer notification.Mailer, queue queue.ConfirmationQueue) ConfirmationWorker {
	return &ConfirmationWorkerImpl{
		mailer: mailer,
		queue:  queue,
	}
}

// Start returns once subscribed; jobs are handled on a background goroutine
// until ctx is done.
func (w *ConfirmationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeConfirmations(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			w.handle(ctx, msg)
		}
	}()
	return nil
}

func (w *ConfirmationWorkerImpl) handle(ctx context.Context, msg queue.Delivery) {
	log := logger.WithBooking("worker", msg.Data.BookingID)

	email, err := notification.RenderConfirmation(msg.Data)
	if err != nil {
		// 內容有問題，重試也沒用
		log.Error("render confirmation failed, dropping job", zap.Error(err))
		metrics.ConfirmationEmailsTotal.WithLabelValues("dropped").Inc()
		msg.Nack(false)
		return
	}

	if err := w.mailer.Send(ctx, email); err != nil {
		// 郵件服務暫時失敗，稍後重試
		log.Warn("send confirmation failed, will retry", zap.Error(err))
		metrics.ConfirmationEmailsTotal.WithLabelValues("retry").Inc()
		msg.Nack(true)
		return
	}

	metrics.ConfirmationEmailsTotal.WithLabelValues("sent").Inc()
	log.Info("confirmation email sent", zap.String("booking_code", msg.Data.BookingCode))
	msg.Ack()
}
