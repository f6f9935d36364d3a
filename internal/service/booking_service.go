package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go-gin-cinema-booking/internal/bookingcode"
	"go-gin-cinema-booking/internal/events"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/queue"
	"go-gin-cinema-booking/internal/repository"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
	"go-gin-cinema-booking/pkg/logger"
	"go-gin-cinema-booking/pkg/metrics"

	"go.uber.org/zap"
)

const staleListLimit = 200

type BookingService interface {
	// 建立訂票 (pending)，總價由伺服器計算
	CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error)
	// 確認付款結果 (confirm-booking)
	ConfirmBooking(ctx context.Context, req model.ConfirmBookingRequest) (*model.ConfirmResult, error)
	// 套用已驗證的 gateway 結果 (IPN / redirect)
	ReconcileGatewayResult(ctx context.Context, result *model.GatewayResult, channel model.Channel) (*model.ConfirmResult, error)
	GetBooking(ctx context.Context, id int64, userID int64) (*model.Booking, error)
	FindBooking(ctx context.Context, id int64) (*model.Booking, error)
	FindByCode(ctx context.Context, code string) (*model.Booking, error)
	Revenue(ctx context.Context, from, to *time.Time) (*model.RevenueSummary, error)
	ListStale(ctx context.Context, olderThan time.Duration) ([]*model.Booking, error)
}

type BookingServiceImpl struct {
	bookingRepository  repository.BookingRepository
	userRepository     repository.UserRepository
	showtimeRepository repository.ShowtimeRepository
	confirmations      queue.ConfirmationQueue
	publisher          events.Publisher

	codes              *bookingcode.Generator
	verifier           *GatewayVerifier
	trustClientConfirm bool
	now                func() time.Time
}

type BookingOption func(*BookingServiceImpl)

// WithGatewayVerifier lets confirm-booking verify attached gateway params.
func WithGatewayVerifier(v *GatewayVerifier) BookingOption {
	return func(s *BookingServiceImpl) { s.verifier = v }
}

// WithTrustClientConfirm accepts unverified "paid" and "failed"
// confirmations for gateway bookings.
func WithTrustClientConfirm(trust bool) BookingOption {
	return func(s *BookingServiceImpl) { s.trustClientConfirm = trust }
}

func WithCodeGenerator(g *bookingcode.Generator) BookingOption {
	return func(s *BookingServiceImpl) { s.codes = g }
}

func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingServiceImpl) { s.now = now }
}

func NewBookingService(
	bookingRepository repository.BookingRepository,
	userRepository repository.UserRepository,
	showtimeRepository repository.ShowtimeRepository,
	confirmations queue.ConfirmationQueue,
	publisher events.Publisher,
	opts ...BookingOption,
) BookingService {
	s := &BookingServiceImpl{
		bookingRepository:  bookingRepository,
		userRepository:     userRepository,
		showtimeRepository: showtimeRepository,
		confirmations:      confirmations,
		publisher:          publisher,
		codes:              bookingcode.New(),
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.publisher == nil {
		s.publisher = events.NoopPublisher{}
	}
	return s
}

func (s *BookingServiceImpl) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, apperrors.NewValidationError("email", "is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationError("email", "is not a valid address")
	}
	if req.ShowtimeID <= 0 {
		return nil, apperrors.NewValidationError("showtimeId", "is required")
	}
	if req.TicketCount <= 0 {
		return nil, apperrors.NewValidationError("ticketCount", "must be greater than 0")
	}
	method, ok := model.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return nil, apperrors.NewValidationError("paymentMethod", "must be one of cash, momo, vnpay")
	}

	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	showtime, err := s.showtimeRepository.FindByID(ctx, req.ShowtimeID)
	if err != nil {
		return nil, err
	}

	// 總價一律由伺服器計算，忽略 client 傳入的 totalPrice
	booking, err := s.bookingRepository.Create(ctx, &model.Booking{
		UserID:        user.ID,
		ShowtimeID:    showtime.ID,
		TicketCount:   req.TicketCount,
		TotalPrice:    showtime.Price * int64(req.TicketCount),
		PaymentMethod: method,
		PaymentStatus: model.PaymentStatusPending,
	})
	if err != nil {
		return nil, err
	}

	log := logger.WithBooking("service", booking.ID)
	if req.TotalPrice != nil && *req.TotalPrice != booking.TotalPrice {
		log.Warn("client total price ignored",
			zap.Int64("client_total", *req.TotalPrice), zap.Int64("total_price", booking.TotalPrice))
	}
	log.Info("booking created",
		zap.Int64("user_id", booking.UserID),
		zap.Int64("showtime_id", booking.ShowtimeID),
		zap.String("payment_method", string(booking.PaymentMethod)))

	return booking, nil
}

func (s *BookingServiceImpl) ConfirmBooking(ctx context.Context, req model.ConfirmBookingRequest) (*model.ConfirmResult, error) {
	if req.UserID <= 0 {
		return nil, apperrors.NewValidationError("user_id", "is required")
	}
	if req.PaymentID <= 0 {
		return nil, apperrors.NewValidationError("payment_id", "is required")
	}
	if strings.TrimSpace(req.PaymentStatus) == "" {
		return nil, apperrors.NewValidationError("payment_status", "is required")
	}
	status, ok := model.ParsePaymentStatus(req.PaymentStatus)
	if !ok {
		return nil, apperrors.ErrInvalidPaymentStatus
	}

	booking, err := s.bookingRepository.FindByIDAndUser(ctx, req.PaymentID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 帶有 gateway 參數：以驗證後的結果為準
	if req.Gateway != "" || len(req.GatewayParams) > 0 {
		result, err := s.verifier.Verify(model.Gateway(strings.ToLower(req.Gateway)), req.GatewayParams)
		if err != nil {
			return nil, err
		}
		if result.BookingID != 0 && result.BookingID != booking.ID {
			return nil, apperrors.NewValidationError("gateway_params", "belong to another booking")
		}
		result.BookingID = booking.ID
		return s.reconcile(ctx, booking, result, model.ChannelRedirect)
	}

	if status == model.PaymentStatusPending {
		if booking.IsPending() {
			return &model.ConfirmResult{Booking: booking}, nil
		}
		return nil, apperrors.ErrInvalidPaymentStatus
	}
	if !booking.IsPending() {
		metrics.ReconciliationsTotal.WithLabelValues(string(booking.PaymentMethod), string(model.ChannelClient), "replayed").Inc()
		return &model.ConfirmResult{Booking: booking}, nil
	}
	// gateway 訂單的 paid / failed 都要由簽名結果決定，否則之後的 IPN 會被擋掉
	if booking.PaymentMethod.IsGateway() && !s.trustClientConfirm {
		metrics.ReconciliationsTotal.WithLabelValues(string(booking.PaymentMethod), string(model.ChannelClient), "rejected").Inc()
		return nil, apperrors.ErrUnverifiedPayment
	}

	paidAt := s.now().UTC()
	if req.PaidAt != nil && !req.PaidAt.IsZero() {
		paidAt = req.PaidAt.UTC()
	}
	var txnID *string
	if req.TransactionID != nil && strings.TrimSpace(*req.TransactionID) != "" {
		id := strings.TrimSpace(*req.TransactionID)
		txnID = &id
	}

	return s.transition(ctx, model.Transition{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		Status:        status,
		TransactionID: txnID,
		PaidAt:        paidAt,
	}, string(booking.PaymentMethod), model.ChannelClient)
}

func (s *BookingServiceImpl) ReconcileGatewayResult(ctx context.Context, result *model.GatewayResult, channel model.Channel) (*model.ConfirmResult, error) {
	if result.BookingID <= 0 {
		return nil, apperrors.ErrBookingNotFound
	}
	booking, err := s.bookingRepository.FindByID(ctx, result.BookingID)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, booking, result, channel)
}

// reconcile applies a signature-verified gateway result to booking.
func (s *BookingServiceImpl) reconcile(ctx context.Context, booking *model.Booking, result *model.GatewayResult, channel model.Channel) (*model.ConfirmResult, error) {
	gateway := string(result.Gateway)
	log := logger.WithBooking("service", booking.ID).With(
		zap.String("gateway", gateway),
		zap.String("channel", string(channel)),
		zap.String("order_id", result.OrderID),
	)

	if booking.PaymentMethod != model.PaymentMethod(result.Gateway) {
		metrics.ReconciliationsTotal.WithLabelValues(gateway, string(channel), "rejected").Inc()
		log.Warn("gateway does not match booking payment method", zap.String("payment_method", string(booking.PaymentMethod)))
		return nil, apperrors.ErrGatewayMismatch
	}
	if result.Amount != booking.TotalPrice {
		metrics.ReconciliationsTotal.WithLabelValues(gateway, string(channel), "rejected").Inc()
		log.Error("notified amount does not match booking total",
			zap.Int64("amount", result.Amount), zap.Int64("total_price", booking.TotalPrice))
		return nil, apperrors.ErrAmountMismatch
	}
	if !booking.IsPending() {
		metrics.ReconciliationsTotal.WithLabelValues(gateway, string(channel), "replayed").Inc()
		return &model.ConfirmResult{Booking: booking}, nil
	}

	var txnID *string
	if result.TransactionID != "" {
		id := result.TransactionID
		txnID = &id
	}
	paidAt := result.PaidAt
	if paidAt.IsZero() {
		paidAt = s.now().UTC()
	}

	return s.transition(ctx, model.Transition{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		Status:        result.Status,
		TransactionID: txnID,
		PaidAt:        paidAt,
	}, gateway, channel)
}

// transition runs the compare-and-swap and, for the winner only, assigns
// the booking code in the same transaction and dispatches side effects.
func (s *BookingServiceImpl) transition(ctx context.Context, t model.Transition, gateway string, channel model.Channel) (*model.ConfirmResult, error) {
	log := logger.WithBooking("service", t.BookingID).With(zap.String("channel", string(channel)))

	if !model.PaymentStatusPending.CanTransitionTo(t.Status) {
		return nil, apperrors.ErrInvalidPaymentStatus
	}

	var updated *model.Booking
	err := s.bookingRepository.WithTx(ctx, func(store repository.BookingStore) error {
		booking, err := store.TransitionFromPending(ctx, t)
		if err != nil {
			return err
		}

		if booking.PaymentStatus == model.PaymentStatusPaid {
			code, err := s.codes.Generate(ctx, func(ctx context.Context, code string) error {
				return store.AssignBookingCode(ctx, booking.ID, code)
			})
			if err != nil {
				return err
			}
			booking.BookingCode = &code
		}

		updated = booking
		return nil
	})

	if errors.Is(err, apperrors.ErrBookingNotPending) {
		// 另一個通道先完成了，回傳目前狀態
		current, findErr := s.bookingRepository.FindByIDAndUser(ctx, t.BookingID, t.UserID)
		if findErr != nil {
			return nil, findErr
		}
		metrics.ReconciliationsTotal.WithLabelValues(gateway, string(channel), "replayed").Inc()
		log.Info("booking already settled, transition skipped", zap.String("payment_status", string(current.PaymentStatus)))
		return &model.ConfirmResult{Booking: current}, nil
	}
	if err != nil {
		metrics.ReconciliationsTotal.WithLabelValues(gateway, string(channel), "error").Inc()
		log.Error("transition failed", zap.Error(err))
		return nil, err
	}

	metrics.ReconciliationsTotal.WithLabelValues(gateway, string(channel), "applied").Inc()
	log.Info("booking settled", zap.String("payment_status", string(updated.PaymentStatus)))

	if updated.PaymentStatus == model.PaymentStatusPaid {
		s.dispatchConfirmation(ctx, updated)
	}
	return &model.ConfirmResult{Booking: updated, Applied: true}, nil
}

// dispatchConfirmation runs after commit. Failures are logged; the booking
// is already paid and must stay that way.
func (s *BookingServiceImpl) dispatchConfirmation(ctx context.Context, booking *model.Booking) {
	log := logger.WithBooking("service", booking.ID)
	// 請求取消也要送出
	ctx = context.WithoutCancel(ctx)

	job, err := s.buildConfirmationJob(ctx, booking)
	if err != nil {
		log.Error("build confirmation job failed, email not sent", zap.Error(err))
	} else if err := s.confirmations.PublishConfirmation(ctx, job); err != nil {
		log.Error("enqueue confirmation failed, email not sent", zap.Error(err))
	}

	if err := s.publisher.PublishBookingConfirmed(ctx, bookingConfirmedEvent(booking)); err != nil {
		log.Error("publish booking.confirmed failed", zap.Error(err))
	}
}

func (s *BookingServiceImpl) buildConfirmationJob(ctx context.Context, booking *model.Booking) (*model.ConfirmationJob, error) {
	user, err := s.userRepository.FindByID(ctx, booking.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	showtime, err := s.showtimeRepository.FindByID(ctx, booking.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("load showtime: %w", err)
	}

	job := &model.ConfirmationJob{
		BookingID:     booking.ID,
		Email:         user.Email,
		CustomerName:  user.Name,
		MovieTitle:    showtime.MovieTitle,
		Room:          showtime.Room,
		Format:        showtime.Format,
		StartsAt:      showtime.StartsAt,
		TicketCount:   booking.TicketCount,
		TotalPrice:    booking.TotalPrice,
		PaymentMethod: booking.PaymentMethod,
	}
	if booking.BookingCode != nil {
		job.BookingCode = *booking.BookingCode
	}
	if booking.TransactionID != nil {
		job.TransactionID = *booking.TransactionID
	}
	if booking.PaidAt != nil {
		job.PaidAt = *booking.PaidAt
	}
	return job, nil
}

func bookingConfirmedEvent(booking *model.Booking) *model.BookingConfirmedEvent {
	event := &model.BookingConfirmedEvent{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		ShowtimeID:    booking.ShowtimeID,
		TicketCount:   booking.TicketCount,
		TotalPrice:    booking.TotalPrice,
		PaymentMethod: booking.PaymentMethod,
	}
	if booking.BookingCode != nil {
		event.BookingCode = *booking.BookingCode
	}
	if booking.TransactionID != nil {
		event.TransactionID = *booking.TransactionID
	}
	if booking.PaidAt != nil {
		event.PaidAt = *booking.PaidAt
	}
	return event
}

func (s *BookingServiceImpl) GetBooking(ctx context.Context, id int64, userID int64) (*model.Booking, error) {
	if id <= 0 || userID <= 0 {
		return nil, apperrors.ErrInvalidInput
	}
	return s.bookingRepository.FindByIDAndUser(ctx, id, userID)
}

func (s *BookingServiceImpl) FindBooking(ctx context.Context, id int64) (*model.Booking, error) {
	return s.bookingRepository.FindByID(ctx, id)
}

func (s *BookingServiceImpl) FindByCode(ctx context.Context, code string) (*model.Booking, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !bookingcode.Valid(code) {
		return nil, apperrors.NewValidationError("code", "must be 8 characters A-Z or 0-9")
	}
	return s.bookingRepository.FindByCode(ctx, code)
}

func (s *BookingServiceImpl) Revenue(ctx context.Context, from, to *time.Time) (*model.RevenueSummary, error) {
	if from != nil && to != nil && !from.Before(*to) {
		return nil, apperrors.NewValidationError("from", "must be before to")
	}
	return s.bookingRepository.RevenueSummary(ctx, from, to)
}

func (s *BookingServiceImpl) ListStale(ctx context.Context, olderThan time.Duration) ([]*model.Booking, error) {
	if olderThan <= 0 {
		return nil, apperrors.NewValidationError("older_than", "must be a positive duration")
	}
	return s.bookingRepository.ListPendingOlderThan(ctx, s.now().Add(-olderThan), staleListLimit)
}
