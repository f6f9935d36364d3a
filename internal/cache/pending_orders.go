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

var ErrSnapshotNotFound = fmt.Errorf("pending order snapshot %w", apperrors.ErrNotFound)

// PendingOrderStore keeps the checkout snapshot for an order id so a
// redirect that lost its extraData can still be resumed. It is a hint only;
// the ledger row stays authoritative.
type PendingOrderStore interface {
	// 寫入：結帳送出時保存
	Save(ctx context.Context, gateway model.Gateway, orderID string, snapshot *model.CheckoutSnapshot) error
	// 取出：讀取後立即刪除 (使用Lua腳本確保原子性)
	Consume(ctx context.Context, gateway model.Gateway, orderID string) (*model.CheckoutSnapshot, error)
}

type RedisPendingOrderStoreImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPendingOrderStore(client *redis.Client, ttl time.Duration) PendingOrderStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisPendingOrderStoreImpl{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisPendingOrderStoreImpl) getSnapshotKey(gateway model.Gateway, orderID string) string {
	return fmt.Sprintf("payment:pending:%s:%s", gateway, orderID)
}

var consumeScript = redis.NewScript(`
	-- 讀取並刪除，只有第一個呼叫者拿得到
	local value = redis.call('GET', KEYS[1])
	if not value then
		return false
	end
	redis.call('DEL', KEYS[1])
	return value
`)

func (s *RedisPendingOrderStoreImpl) Save(ctx context.Context, gateway model.Gateway, orderID string, snapshot *model.CheckoutSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.client.Set(ctx, s.getSnapshotKey(gateway, orderID), raw, s.ttl).Err()
}

func (s *RedisPendingOrderStoreImpl) Consume(ctx context.Context, gateway model.Gateway, orderID string) (*model.CheckoutSnapshot, error) {
	result, err := consumeScript.Run(ctx, s.client, []string{s.getSnapshotKey(gateway, orderID)}).Text()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consume snapshot: %w", err)
	}

	var snapshot model.CheckoutSnapshot
	if err := json.Unmarshal([]byte(result), &snapshot); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return &snapshot, nil
}
