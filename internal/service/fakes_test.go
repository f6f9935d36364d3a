package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/queue"
	"go-gin-cinema-booking/internal/repository"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
)

// fakeLedger is an in-memory BookingRepository with the same CAS semantics
// as the Postgres one. WithTx serializes transactions and rolls back on error.
type fakeLedger struct {
	txMu sync.Mutex

	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*model.Booking
	codes    map[string]int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		nextID:   1,
		bookings: make(map[int64]*model.Booking),
		codes:    make(map[string]int64),
	}
}

var _ repository.BookingRepository = (*fakeLedger)(nil)

func clone(b *model.Booking) *model.Booking {
	c := *b
	if b.TransactionID != nil {
		v := *b.TransactionID
		c.TransactionID = &v
	}
	if b.PaidAt != nil {
		v := *b.PaidAt
		c.PaidAt = &v
	}
	if b.BookingCode != nil {
		v := *b.BookingCode
		c.BookingCode = &v
	}
	return &c
}

func (l *fakeLedger) snapshot() (map[int64]*model.Booking, map[string]int64, int64) {
	bookings := make(map[int64]*model.Booking, len(l.bookings))
	for id, b := range l.bookings {
		bookings[id] = clone(b)
	}
	codes := make(map[string]int64, len(l.codes))
	for c, id := range l.codes {
		codes[c] = id
	}
	return bookings, codes, l.nextID
}

func (l *fakeLedger) WithTx(ctx context.Context, fn func(store repository.BookingStore) error) error {
	l.txMu.Lock()
	defer l.txMu.Unlock()

	l.mu.Lock()
	bookings, codes, nextID := l.snapshot()
	l.mu.Unlock()

	if err := fn(l); err != nil {
		l.mu.Lock()
		l.bookings, l.codes, l.nextID = bookings, codes, nextID
		l.mu.Unlock()
		return err
	}
	return nil
}

func (l *fakeLedger) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := clone(booking)
	b.ID = l.nextID
	l.nextID++
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	l.bookings[b.ID] = b
	return clone(b), nil
}

func (l *fakeLedger) seed(b *model.Booking) *model.Booking {
	created, _ := l.Create(context.Background(), b)
	return created
}

func (l *fakeLedger) get(id int64) *model.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()
	return clone(l.bookings[id])
}

func (l *fakeLedger) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bookings[id]
	if !ok {
		return nil, apperrors.ErrBookingNotFound
	}
	return clone(b), nil
}

func (l *fakeLedger) FindByIDAndUser(ctx context.Context, id int64, userID int64) (*model.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bookings[id]
	if !ok || b.UserID != userID {
		return nil, apperrors.ErrBookingNotFound
	}
	return clone(b), nil
}

func (l *fakeLedger) FindByCode(ctx context.Context, code string) (*model.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id, ok := l.codes[strings.ToUpper(code)]
	if !ok {
		return nil, apperrors.ErrBookingNotFound
	}
	return clone(l.bookings[id]), nil
}

func (l *fakeLedger) TransitionFromPending(ctx context.Context, t model.Transition) (*model.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bookings[t.BookingID]
	if !ok || b.UserID != t.UserID || b.PaymentStatus != model.PaymentStatusPending {
		return nil, apperrors.ErrBookingNotPending
	}
	b.PaymentStatus = t.Status
	if b.TransactionID == nil && t.TransactionID != nil {
		v := *t.TransactionID
		b.TransactionID = &v
	}
	if b.PaidAt == nil {
		v := t.PaidAt.UTC()
		b.PaidAt = &v
	}
	b.UpdatedAt = time.Now().UTC()
	return clone(b), nil
}

func (l *fakeLedger) AssignBookingCode(ctx context.Context, id int64, code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.codes[code]; taken {
		return apperrors.ErrDuplicateBookingCode
	}
	b, ok := l.bookings[id]
	if !ok || b.BookingCode != nil {
		return nil
	}
	c := code
	b.BookingCode = &c
	l.codes[code] = id
	return nil
}

func (l *fakeLedger) RevenueSummary(ctx context.Context, from, to *time.Time) (*model.RevenueSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	summary := &model.RevenueSummary{From: from, To: to}
	for _, b := range l.bookings {
		if b.PaymentStatus != model.PaymentStatusPaid || b.PaidAt == nil {
			continue
		}
		if from != nil && b.PaidAt.Before(*from) {
			continue
		}
		if to != nil && !b.PaidAt.Before(*to) {
			continue
		}
		summary.TotalRevenue += b.TotalPrice
		summary.BookingCount++
	}
	return summary, nil
}

func (l *fakeLedger) ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*model.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*model.Booking, 0)
	for _, b := range l.bookings {
		if b.PaymentStatus == model.PaymentStatusPending && b.CreatedAt.Before(cutoff) {
			out = append(out, clone(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeUsers struct {
	users map[int64]*model.User
}

func (f *fakeUsers) Create(ctx context.Context, user *model.User) (*model.User, error) {
	u := *user
	u.ID = int64(len(f.users) + 1)
	f.users[u.ID] = &u
	return &u, nil
}

func (f *fakeUsers) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeShowtimes struct {
	showtimes map[int64]*model.Showtime
}

func (f *fakeShowtimes) FindByID(ctx context.Context, id int64) (*model.Showtime, error) {
	if s, ok := f.showtimes[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrShowtimeNotFound
}

// recordingQueue counts confirmation jobs instead of delivering them.
type recordingQueue struct {
	mu   sync.Mutex
	jobs []*model.ConfirmationJob
}

func (q *recordingQueue) PublishConfirmation(ctx context.Context, job *model.ConfirmationJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *recordingQueue) SubscribeConfirmations(ctx context.Context) (<-chan queue.Delivery, error) {
	panic("not used")
}

func (q *recordingQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*model.BookingConfirmedEvent
}

func (p *recordingPublisher) PublishBookingConfirmed(ctx context.Context, event *model.BookingConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
