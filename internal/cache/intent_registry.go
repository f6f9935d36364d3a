package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

var ErrIntentNotFound = fmt.Errorf("payment intent %w", apperrors.ErrNotFound)

type IntentRegistry interface {
	// 登記：orderId 只能使用一次，重複使用回傳 ErrDuplicateOrderID
	Register(ctx context.Context, intent model.PaymentIntent) error
	// 查詢：依 gateway + orderId 找回 booking
	Lookup(ctx context.Context, gateway model.Gateway, orderID string) (*model.IntentRecord, error)
}

type RedisIntentRegistryImpl struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisIntentRegistry(client *redis.Client, ttl time.Duration) IntentRegistry {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisIntentRegistryImpl{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

// intent key
func (r *RedisIntentRegistryImpl) getIntentKey(gateway model.Gateway, orderID string) string {
	return fmt.Sprintf("payment:intent:%s:%s", gateway, orderID)
}

func (r *RedisIntentRegistryImpl) Register(ctx context.Context, intent model.PaymentIntent) error {
	record := model.IntentRecord{
		Gateway:   intent.Gateway(),
		OrderID:   intent.OrderRef(),
		BookingID: intent.Booking(),
		Amount:    intent.AmountVND(),
		CreatedAt: r.now().UTC(),
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal intent: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.getIntentKey(record.Gateway, record.OrderID), raw, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("register intent: %w", err)
	}
	if !ok {
		return apperrors.ErrDuplicateOrderID
	}
	return nil
}

func (r *RedisIntentRegistryImpl) Lookup(ctx context.Context, gateway model.Gateway, orderID string) (*model.IntentRecord, error) {
	raw, err := r.client.Get(ctx, r.getIntentKey(gateway, orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrIntentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup intent: %w", err)
	}

	var record model.IntentRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("invalid intent record: %w", err)
	}
	return &record, nil
}
