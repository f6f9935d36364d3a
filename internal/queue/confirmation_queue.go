package queue

import (
	"context"

	"go-gin-cinema-booking/internal/model"
)

type Delivery struct {
	Data *model.ConfirmationJob
	Ack  func()
	Nack func(requeue bool)
}

type ConfirmationQueue interface {
	// 發送確認信任務到隊列
	PublishConfirmation(ctx context.Context, job *model.ConfirmationJob) error
	// 訂閱確認信隊列
	SubscribeConfirmations(ctx context.Context) (<-chan Delivery, error)
}

type ConfirmationQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.ConfirmationJob
}

func NewConfirmationQueue(bufferSize int) ConfirmationQueue {
	return &ConfirmationQueueImpl{
		ch: make(chan *model.ConfirmationJob, bufferSize),
	}
}

func (q *ConfirmationQueueImpl) PublishConfirmation(ctx context.Context, job *model.ConfirmationJob) error {
	select {
	case q.ch <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *ConfirmationQueueImpl) SubscribeConfirmations(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case job, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: job,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							// 非阻塞重回隊列，滿了就丟棄
							select {
							case q.ch <- job:
							default:
							}
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
