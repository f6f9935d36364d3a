package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go-gin-cinema-booking/internal/cache"
	"go-gin-cinema-booking/internal/gateway/momo"
	"go-gin-cinema-booking/internal/gateway/vnpay"
	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
	"go-gin-cinema-booking/pkg/logger"

	"go.uber.org/zap"
)

type PaymentService interface {
	// 建立 MoMo 付款 (server-to-server 取得 payUrl)
	CreateMoMoPayment(ctx context.Context, req model.MoMoPaymentRequest) (*model.PaymentLink, error)
	// 建立 VNPay 付款 (本地簽名組出 URL)
	CreateVNPayPayment(ctx context.Context, req model.VNPayPaymentRequest) (*model.PaymentLink, error)
	// IPN：驗簽後直接更新訂票狀態
	HandleMoMoNotification(ctx context.Context, params map[string]string) (*model.ConfirmResult, error)
	HandleVNPayNotification(ctx context.Context, query url.Values) (*model.ConfirmResult, error)
	// redirect：驗簽後走同一個 CAS，回傳給前端顯示
	HandleMoMoReturn(ctx context.Context, params map[string]string) (*model.ReturnResult, error)
	HandleVNPayReturn(ctx context.Context, query url.Values) (*model.ReturnResult, error)
}

type PaymentDefaults struct {
	MoMoRedirectURL string
	MoMoIpnURL      string
}

type PaymentServiceImpl struct {
	bookingService BookingService
	momo           MoMoGateway
	vnpay          VNPayGateway
	intents        cache.IntentRegistry
	pendingOrders  cache.PendingOrderStore
	defaults       PaymentDefaults
}

func NewPaymentService(
	bookingService BookingService,
	momoGateway MoMoGateway,
	vnpayGateway VNPayGateway,
	intents cache.IntentRegistry,
	pendingOrders cache.PendingOrderStore,
	defaults PaymentDefaults,
) PaymentService {
	return &PaymentServiceImpl{
		bookingService: bookingService,
		momo:           momoGateway,
		vnpay:          vnpayGateway,
		intents:        intents,
		pendingOrders:  pendingOrders,
		defaults:       defaults,
	}
}

// payableBooking loads the booking a new payment attempt is for and checks
// it can still be paid through gateway for amount.
func (s *PaymentServiceImpl) payableBooking(ctx context.Context, bookingID int64, method model.PaymentMethod, amount int64) (*model.Booking, error) {
	if bookingID <= 0 {
		return nil, apperrors.NewValidationError("bookingId", "is required")
	}
	booking, err := s.bookingService.FindBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentMethod != method {
		return nil, apperrors.ErrGatewayMismatch
	}
	if !booking.IsPending() {
		return nil, apperrors.ErrBookingNotPending
	}
	if amount != booking.TotalPrice {
		return nil, apperrors.ErrAmountMismatch
	}
	return booking, nil
}

func checkoutSnapshot(booking *model.Booking) *model.CheckoutSnapshot {
	return &model.CheckoutSnapshot{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ShowtimeID:  booking.ShowtimeID,
		TicketCount: booking.TicketCount,
		TotalPrice:  booking.TotalPrice,
	}
}

func (s *PaymentServiceImpl) CreateMoMoPayment(ctx context.Context, req model.MoMoPaymentRequest) (*model.PaymentLink, error) {
	bookingID := req.BookingID
	if bookingID == 0 && req.ExtraData != "" {
		if snapshot, err := momo.DecodeExtraData(req.ExtraData); err == nil {
			bookingID = snapshot.BookingID
		}
	}
	if bookingID == 0 {
		bookingID, _ = vnpay.BookingIDFromOrderInfo(req.OrderInfo)
	}

	amount := int64(req.Amount)
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount", "must be positive")
	}
	booking, err := s.payableBooking(ctx, bookingID, model.PaymentMethodMoMo, amount)
	if err != nil {
		return nil, err
	}

	snapshot := checkoutSnapshot(booking)
	extraData := strings.TrimSpace(req.ExtraData)
	if extraData != "" {
		// MoMo 會原樣回傳 extraData，裡面的 bookingId 不能指向別筆訂單
		if client, err := momo.DecodeExtraData(extraData); err == nil && client.BookingID != 0 && client.BookingID != booking.ID {
			return nil, apperrors.ErrBookingMismatch
		}
	} else if extraData, err = momo.EncodeExtraData(snapshot); err != nil {
		return nil, err
	}
	redirectURL := firstNonEmpty(req.RedirectURL, s.defaults.MoMoRedirectURL)
	ipnURL := firstNonEmpty(req.IpnURL, s.defaults.MoMoIpnURL)

	intent := &model.MoMoIntent{
		OrderID:     strings.TrimSpace(req.OrderID),
		RequestID:   req.RequestID,
		Amount:      amount,
		OrderInfo:   req.OrderInfo,
		RedirectURL: redirectURL,
		IpnURL:      ipnURL,
		RequestType: req.RequestType,
		ExtraData:   extraData,
		Lang:        req.Lang,
		BookingID:   booking.ID,
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	// orderId 只能用一次，重試必須換新的
	if err := s.intents.Register(ctx, intent); err != nil {
		return nil, err
	}
	s.savePendingOrder(ctx, model.GatewayMoMo, intent.OrderID, snapshot)

	result, err := s.momo.CreatePayment(ctx, intent, momo.Credentials{
		PartnerCode: req.PartnerCode,
		AccessKey:   req.AccessKey,
		SecretKey:   req.SecretKey,
	})
	if err != nil {
		logger.WithBooking("service", booking.ID).Warn("momo create payment failed, booking stays pending",
			zap.String("order_id", intent.OrderID), zap.Error(err))
		return nil, err
	}

	return &model.PaymentLink{
		PayURL:    result.PayURL,
		OrderID:   intent.OrderID,
		BookingID: booking.ID,
		Data:      result.Response,
	}, nil
}

func (s *PaymentServiceImpl) CreateVNPayPayment(ctx context.Context, req model.VNPayPaymentRequest) (*model.PaymentLink, error) {
	bookingID := req.BookingID
	if bookingID == 0 {
		bookingID, _ = vnpay.BookingIDFromOrderInfo(req.OrderInfo)
	}

	amount := int64(req.Amount)
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount", "must be positive")
	}
	booking, err := s.payableBooking(ctx, bookingID, model.PaymentMethodVNPay, amount)
	if err != nil {
		return nil, err
	}

	orderInfo := strings.TrimSpace(req.OrderInfo)
	if id, ok := vnpay.BookingIDFromOrderInfo(orderInfo); !ok || id != booking.ID {
		// VNPay only echoes orderInfo back, so it must carry the booking id
		orderInfo = vnpay.OrderInfo(booking.ID)
	}

	intent := &model.VNPayIntent{
		OrderID:   strings.TrimSpace(req.OrderID),
		Amount:    amount,
		OrderInfo: orderInfo,
		Locale:    req.Locale,
		IPAddr:    req.IPAddr,
		BookingID: booking.ID,
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	if err := s.intents.Register(ctx, intent); err != nil {
		return nil, err
	}
	s.savePendingOrder(ctx, model.GatewayVNPay, intent.OrderID, checkoutSnapshot(booking))

	payURL, err := s.vnpay.BuildPaymentURL(intent)
	if err != nil {
		return nil, err
	}
	return &model.PaymentLink{PayURL: payURL, OrderID: intent.OrderID, BookingID: booking.ID}, nil
}

func (s *PaymentServiceImpl) savePendingOrder(ctx context.Context, gateway model.Gateway, orderID string, snapshot *model.CheckoutSnapshot) {
	if err := s.pendingOrders.Save(ctx, gateway, orderID, snapshot); err != nil {
		logger.WithBooking("service", snapshot.BookingID).Warn("save pending order snapshot failed",
			zap.String("gateway", string(gateway)), zap.String("order_id", orderID), zap.Error(err))
	}
}

// resolveBooking binds result to the booking registered for its order id.
// The registry record wins; a payload booking id that disagrees with it is
// rejected. Without a record (expired or never registered) the signed
// payload id is used.
func (s *PaymentServiceImpl) resolveBooking(ctx context.Context, result *model.GatewayResult) error {
	record, err := s.intents.Lookup(ctx, result.Gateway, result.OrderID)
	switch {
	case err == nil:
		if result.BookingID != 0 && result.BookingID != record.BookingID {
			logger.WithBooking("service", record.BookingID).Error("gateway payload names another booking",
				zap.String("gateway", string(result.Gateway)),
				zap.String("order_id", result.OrderID),
				zap.Int64("payload_booking_id", result.BookingID))
			return apperrors.ErrBookingMismatch
		}
		result.BookingID = record.BookingID
		return nil
	case errors.Is(err, cache.ErrIntentNotFound):
		if result.BookingID > 0 {
			return nil
		}
		return apperrors.ErrBookingNotFound
	default:
		return err
	}
}

func (s *PaymentServiceImpl) notify(ctx context.Context, result *model.GatewayResult) (*model.ConfirmResult, error) {
	if err := s.resolveBooking(ctx, result); err != nil {
		return nil, err
	}
	return s.bookingService.ReconcileGatewayResult(ctx, result, model.ChannelIPN)
}

func (s *PaymentServiceImpl) HandleMoMoNotification(ctx context.Context, params map[string]string) (*model.ConfirmResult, error) {
	result, err := s.momo.VerifyResult(params)
	if err != nil {
		return nil, err
	}
	return s.notify(ctx, result)
}

func (s *PaymentServiceImpl) HandleVNPayNotification(ctx context.Context, query url.Values) (*model.ConfirmResult, error) {
	result, err := s.vnpay.VerifyResult(query)
	if err != nil {
		return nil, err
	}
	return s.notify(ctx, result)
}

func (s *PaymentServiceImpl) HandleMoMoReturn(ctx context.Context, params map[string]string) (*model.ReturnResult, error) {
	result, err := s.momo.VerifyResult(params)
	if err != nil {
		return nil, err
	}
	return s.handleReturn(ctx, result)
}

func (s *PaymentServiceImpl) HandleVNPayReturn(ctx context.Context, query url.Values) (*model.ReturnResult, error) {
	result, err := s.vnpay.VerifyResult(query)
	if err != nil {
		return nil, err
	}
	return s.handleReturn(ctx, result)
}

// handleReturn resolves the booking from the payload, then the pending
// snapshot, then the registry. The snapshot is consumed either way.
func (s *PaymentServiceImpl) handleReturn(ctx context.Context, result *model.GatewayResult) (*model.ReturnResult, error) {
	snapshot, err := s.pendingOrders.Consume(ctx, result.Gateway, result.OrderID)
	if err != nil && !errors.Is(err, cache.ErrSnapshotNotFound) {
		logger.WithComponent("service").Warn("consume pending order snapshot failed",
			zap.String("order_id", result.OrderID), zap.Error(err))
	}
	if result.Snapshot == nil {
		result.Snapshot = snapshot
	}
	if result.BookingID == 0 && snapshot != nil {
		result.BookingID = snapshot.BookingID
	}
	if err := s.resolveBooking(ctx, result); err != nil {
		return nil, err
	}

	confirmed, err := s.bookingService.ReconcileGatewayResult(ctx, result, model.ChannelRedirect)
	if err != nil {
		return nil, err
	}
	return &model.ReturnResult{
		Gateway:  result.Gateway,
		OrderID:  result.OrderID,
		Status:   result.Status,
		Message:  result.Message,
		Applied:  confirmed.Applied,
		Booking:  confirmed.Booking,
		Snapshot: result.Snapshot,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
