package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey          = "bookings:confirmations"
	DeadLetterKey      = "bookings:confirmations:dead"
	ConsumerGroupName  = "confirmation-mailers"
	ConsumerNamePrefix = "notifier"

	jobField       = "job"
	bookingIDField = "booking_id"
	reasonField    = "reason"
)

// RedisStreamQueueConfig 可注入的逾時與重試設定；nil 或零值時使用預設。
type RedisStreamQueueConfig struct {
	ClaimMinIdleTime   time.Duration // 未 Ack 超過此時間才會被重新領取
	MaxRetryCount      int           // 投遞次數上限，超過移入 dead-letter stream
	ReadGroupBlockTime time.Duration
	MaxLen             int64 // stream 近似長度上限
}

func (c *RedisStreamQueueConfig) withDefaults() RedisStreamQueueConfig {
	out := RedisStreamQueueConfig{
		ClaimMinIdleTime:   30 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
		MaxLen:             100000,
	}
	if c == nil {
		return out
	}
	if c.ClaimMinIdleTime > 0 {
		out.ClaimMinIdleTime = c.ClaimMinIdleTime
	}
	if c.MaxRetryCount > 0 {
		out.MaxRetryCount = c.MaxRetryCount
	}
	if c.ReadGroupBlockTime > 0 {
		out.ReadGroupBlockTime = c.ReadGroupBlockTime
	}
	if c.MaxLen > 0 {
		out.MaxLen = c.MaxLen
	}
	return out
}

// RedisStreamConfirmationQueueImpl carries confirmation jobs from the API
// process to the notifier through a consumer group. Unacked jobs are
// reclaimed with XAUTOCLAIM; jobs that keep failing or cannot be decoded are
// moved to DeadLetterKey for manual resend.
type RedisStreamConfirmationQueueImpl struct {
	client   *redis.Client
	consumer string
	cfg      RedisStreamQueueConfig
	log      *zap.Logger
}

// NewRedisStreamConfirmationQueue 建立 Redis Stream 版 ConfirmationQueue。config 可為 nil。
func NewRedisStreamConfirmationQueue(ctx context.Context, client *redis.Client, consumerID string, config *RedisStreamQueueConfig) (ConfirmationQueue, error) {
	if consumerID == "" {
		consumerID = uuid.New().String()
	}
	q := &RedisStreamConfirmationQueueImpl{
		client:   client,
		consumer: ConsumerNamePrefix + ":" + consumerID,
		cfg:      config.withDefaults(),
		log:      logger.WithComponent("mq").With(zap.String("stream", StreamKey)),
	}

	err := client.XGroupCreateMkStream(ctx, StreamKey, ConsumerGroupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("ensure consumer group: %w", err)
	}
	return q, nil
}

func (q *RedisStreamConfirmationQueueImpl) PublishConfirmation(ctx context.Context, job *model.ConfirmationJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal confirmation job: %w", err)
	}
	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: q.cfg.MaxLen,
		Approx: true,
		Values: map[string]interface{}{
			jobField:       string(payload),
			bookingIDField: job.BookingID,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("enqueue confirmation for booking %d: %w", job.BookingID, err)
	}
	return nil
}

// SubscribeConfirmations closes the returned channel once ctx is done and
// both the read and reclaim loops have stopped.
func (q *RedisStreamConfirmationQueueImpl) SubscribeConfirmations(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		defer close(out)
		reclaimed := make(chan struct{})
		go func() {
			defer close(reclaimed)
			q.reclaimLoop(ctx, out)
		}()
		q.readLoop(ctx, out)
		<-reclaimed
	}()
	return out, nil
}

// readLoop 只讀新訊息(">")；pending 的訊息交給 reclaimLoop
func (q *RedisStreamConfirmationQueueImpl) readLoop(ctx context.Context, out chan<- Delivery) {
	for ctx.Err() == nil {
		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    ConsumerGroupName,
			Consumer: q.consumer,
			Streams:  []string{StreamKey, ">"},
			Count:    10,
			Block:    q.cfg.ReadGroupBlockTime,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			q.log.Error("XReadGroup failed", zap.Error(err))
			sleepCtx(ctx, time.Second)
			continue
		}
		for _, stream := range streams {
			if !q.deliver(ctx, out, stream.Messages, false) {
				return
			}
		}
	}
}

func (q *RedisStreamConfirmationQueueImpl) reclaimLoop(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	cursor := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		claimed, next, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   StreamKey,
			Group:    ConsumerGroupName,
			Consumer: q.consumer,
			MinIdle:  q.cfg.ClaimMinIdleTime,
			Start:    cursor,
			Count:    10,
		}).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			if ctx.Err() == nil {
				q.log.Error("XAutoClaim failed", zap.Error(err))
			}
			continue
		}
		cursor = next
		if cursor == "" {
			cursor = "0-0"
		}
		if !q.deliver(ctx, out, claimed, true) {
			return
		}
	}
}

// deliver pushes decoded jobs to out. It returns false when ctx ended.
func (q *RedisStreamConfirmationQueueImpl) deliver(ctx context.Context, out chan<- Delivery, msgs []redis.XMessage, reclaimed bool) bool {
	for _, msg := range msgs {
		if reclaimed {
			if retries := q.deliveryCount(ctx, msg.ID); retries >= q.cfg.MaxRetryCount {
				q.deadLetter(ctx, msg, "retries exhausted after "+strconv.Itoa(retries)+" deliveries")
				continue
			}
		}

		job, err := decodeJob(msg)
		if err != nil {
			q.deadLetter(ctx, msg, err.Error())
			continue
		}

		select {
		case out <- q.newDelivery(ctx, msg.ID, job):
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func decodeJob(msg redis.XMessage) (*model.ConfirmationJob, error) {
	raw, ok := msg.Values[jobField].(string)
	if !ok {
		return nil, errors.New("missing job field")
	}
	var job model.ConfirmationJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return &job, nil
}

// deliveryCount 讀取 PEL 中的投遞次數；查詢失敗時回傳 0 讓訊息繼續處理
func (q *RedisStreamConfirmationQueueImpl) deliveryCount(ctx context.Context, id string) int {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: StreamKey,
		Group:  ConsumerGroupName,
		Start:  id,
		End:    id,
		Count:  1,
	}).Result()
	if err != nil || len(pending) == 0 {
		if err != nil && !errors.Is(err, redis.Nil) {
			q.log.Warn("XPending failed", zap.String("message_id", id), zap.Error(err))
		}
		return 0
	}
	return int(pending[0].RetryCount)
}

// deadLetter copies the message to DeadLetterKey, then acks it.
func (q *RedisStreamConfirmationQueueImpl) deadLetter(ctx context.Context, msg redis.XMessage, reason string) {
	values := make(map[string]interface{}, len(msg.Values)+2)
	for k, v := range msg.Values {
		values[k] = v
	}
	values[reasonField] = reason
	values["source_id"] = msg.ID

	log := q.log.With(zap.String("message_id", msg.ID), zap.String("reason", reason))
	if err := q.client.XAdd(ctx, &redis.XAddArgs{Stream: DeadLetterKey, Values: values}).Err(); err != nil {
		// 不 Ack，留在 PEL 下次再試
		log.Error("move to dead-letter stream failed", zap.Error(err))
		return
	}
	if err := q.client.XAck(ctx, StreamKey, ConsumerGroupName, msg.ID).Err(); err != nil {
		log.Error("XAck after dead-letter failed", zap.Error(err))
		return
	}
	log.Warn("confirmation job dead-lettered")
}

func (q *RedisStreamConfirmationQueueImpl) newDelivery(ctx context.Context, id string, job *model.ConfirmationJob) Delivery {
	log := q.log.With(zap.String("message_id", id), zap.Int64("booking_id", job.BookingID))
	ack := func() {
		if err := q.client.XAck(ctx, StreamKey, ConsumerGroupName, id).Err(); err != nil {
			log.Error("XAck failed", zap.Error(err))
		}
	}
	return Delivery{
		Data: job,
		Ack:  ack,
		Nack: func(requeue bool) {
			if !requeue {
				ack()
				return
			}
			// 留在 PEL，ClaimMinIdleTime 後由 reclaimLoop 重新投遞
			log.Info("confirmation job will be retried", zap.Duration("after", q.cfg.ClaimMinIdleTime))
		},
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
