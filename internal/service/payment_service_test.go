package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"go-gin-cinema-booking/internal/cache"
	"go-gin-cinema-booking/internal/gateway/momo"
	"go-gin-cinema-booking/internal/gateway/vnpay"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/service"
	"go-gin-cinema-booking/internal/testutil"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPartnerCode = "MOMO"
	testAccessKey   = "ak"
	testSecretKey   = "sk"
	testHashSecret  = "SECRETHASHKEY0123456789"
	testTmnCode     = "CINEMA01"
)

func signedMoMoParams(t *testing.T, accessKey, secretKey string, bookingID int64, amount, resultCode string) map[string]string {
	t.Helper()
	extra, err := momo.EncodeExtraData(&model.CheckoutSnapshot{BookingID: bookingID})
	require.NoError(t, err)

	params := map[string]string{
		"partnerCode":  testPartnerCode,
		"orderId":      "MOMO" + strconv.FormatInt(bookingID, 10),
		"requestId":    "MOMO" + strconv.FormatInt(bookingID, 10),
		"amount":       amount,
		"orderInfo":    "Thanh toan booking " + strconv.FormatInt(bookingID, 10),
		"orderType":    "momo_wallet",
		"transId":      "4088878653",
		"resultCode":   resultCode,
		"message":      "Successful.",
		"payType":      "qr",
		"responseTime": strconv.FormatInt(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC).UnixMilli(), 10),
		"extraData":    extra,
	}
	params["signature"] = momo.Sign(secretKey, momo.ResultSignaturePayload(accessKey, params))
	return params
}

func signedVNPayQuery(orderID, orderInfo, amountMinor, responseCode string) url.Values {
	query := url.Values{}
	query.Set("vnp_TmnCode", testTmnCode)
	query.Set("vnp_Amount", amountMinor)
	query.Set("vnp_BankCode", "NCB")
	query.Set("vnp_OrderInfo", orderInfo)
	query.Set("vnp_PayDate", "20240102151000")
	query.Set("vnp_ResponseCode", responseCode)
	query.Set("vnp_TransactionNo", "14226112")
	query.Set("vnp_TransactionStatus", responseCode)
	query.Set("vnp_TxnRef", orderID)
	query.Set("vnp_SecureHash", vnpay.Sign(testHashSecret, vnpay.SignPayload(query)))
	return query
}

type paymentFixture struct {
	*bookingFixture
	intents  cache.IntentRegistry
	orders   cache.PendingOrderStore
	momoHits *atomic.Int32
	payments service.PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	hits := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var req momo.CreateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(momo.CreateResponse{
			PartnerCode: req.PartnerCode,
			OrderID:     req.OrderID,
			RequestID:   req.RequestID,
			Amount:      req.Amount,
			ResultCode:  0,
			Message:     "Successful.",
			PayURL:      "https://test-payment.momo.vn/pay/" + req.OrderID,
		})
	}))
	t.Cleanup(server.Close)

	momoClient := momo.NewClient(momo.Config{
		Endpoint:    server.URL,
		Timeout:     2 * time.Second,
		Credentials: momo.Credentials{PartnerCode: testPartnerCode, AccessKey: testAccessKey, SecretKey: testSecretKey},
	})
	vnpayBuilder := vnpay.NewBuilder(vnpay.Config{
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		TmnCode:    testTmnCode,
		HashSecret: testHashSecret,
		ReturnURL:  "https://cinema.local/api/vnpay/return",
	})

	_, rdb := testutil.NewMiniRedis(t)
	f := &paymentFixture{
		bookingFixture: newBookingFixture(service.WithGatewayVerifier(&service.GatewayVerifier{MoMo: momoClient, VNPay: vnpayBuilder})),
		intents:        cache.NewRedisIntentRegistry(rdb, time.Hour),
		orders:         cache.NewRedisPendingOrderStore(rdb, time.Hour),
		momoHits:       hits,
	}
	f.payments = service.NewPaymentService(f.service, momoClient, vnpayBuilder, f.intents, f.orders, service.PaymentDefaults{
		MoMoRedirectURL: "https://cinema.local/api/momo/return",
		MoMoIpnURL:      "https://cinema.local/api/momo/ipn",
	})
	return f
}

func TestPaymentService_CreateMoMoPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - pay url and intent registered", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)

		link, err := f.payments.CreateMoMoPayment(ctx, model.MoMoPaymentRequest{
			Amount: 200000, OrderID: "MOMO-A1", OrderInfo: "Thanh toan booking", BookingID: booking.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "https://test-payment.momo.vn/pay/MOMO-A1", link.PayURL)
		assert.Equal(t, booking.ID, link.BookingID)

		record, err := f.intents.Lookup(ctx, model.GatewayMoMo, "MOMO-A1")
		require.NoError(t, err)
		assert.Equal(t, booking.ID, record.BookingID)
		assert.Equal(t, int64(200000), record.Amount)
	})

	t.Run("Failed - reused order id never reaches momo", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)
		req := model.MoMoPaymentRequest{Amount: 200000, OrderID: "MOMO-DUP", OrderInfo: "x", BookingID: booking.ID}

		_, err := f.payments.CreateMoMoPayment(ctx, req)
		require.NoError(t, err)
		_, err = f.payments.CreateMoMoPayment(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrDuplicateOrderID)
		assert.Equal(t, int32(1), f.momoHits.Load())
	})

	t.Run("Failed - amount differs from booking total", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)

		_, err := f.payments.CreateMoMoPayment(ctx, model.MoMoPaymentRequest{
			Amount: 1000, OrderID: "MOMO-LOW", OrderInfo: "x", BookingID: booking.ID,
		})
		assert.ErrorIs(t, err, apperrors.ErrAmountMismatch)
		assert.Zero(t, f.momoHits.Load())
	})

	t.Run("Failed - booking is not a momo booking", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodVNPay)

		_, err := f.payments.CreateMoMoPayment(ctx, model.MoMoPaymentRequest{
			Amount: 200000, OrderID: "MOMO-X", OrderInfo: "x", BookingID: booking.ID,
		})
		assert.ErrorIs(t, err, apperrors.ErrGatewayMismatch)
	})

	t.Run("Success - booking id from order info", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)

		link, err := f.payments.CreateMoMoPayment(ctx, model.MoMoPaymentRequest{
			Amount: 200000, OrderID: "MOMO-INFO", OrderInfo: vnpay.OrderInfo(booking.ID),
		})
		require.NoError(t, err)
		assert.Equal(t, booking.ID, link.BookingID)
	})

	t.Run("Failed - extra data names another booking", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)
		other := f.pending(model.PaymentMethodMoMo)
		stale, err := momo.EncodeExtraData(&model.CheckoutSnapshot{BookingID: other.ID})
		require.NoError(t, err)

		_, err = f.payments.CreateMoMoPayment(ctx, model.MoMoPaymentRequest{
			Amount: 200000, OrderID: "MOMO-STALE", OrderInfo: "x", BookingID: booking.ID, ExtraData: stale,
		})

		assert.ErrorIs(t, err, apperrors.ErrBookingMismatch)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Zero(t, f.momoHits.Load())
		_, err = f.intents.Lookup(ctx, model.GatewayMoMo, "MOMO-STALE")
		assert.ErrorIs(t, err, cache.ErrIntentNotFound)
	})
}

func TestPaymentService_CreateVNPayPayment(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	booking := f.pending(model.PaymentMethodVNPay)

	link, err := f.payments.CreateVNPayPayment(ctx, model.VNPayPaymentRequest{
		Amount: 200000, OrderID: "VNP-1", OrderInfo: "ve xem phim", BookingID: booking.ID, IPAddr: "10.0.0.1",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(link.PayURL)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "20000000", query.Get("vnp_Amount"))
	assert.Equal(t, vnpay.OrderInfo(booking.ID), query.Get("vnp_OrderInfo"))
	assert.Equal(t, "10.0.0.1", query.Get("vnp_IpAddr"))
	assert.NotEmpty(t, query.Get("vnp_SecureHash"))

	_, err = f.payments.CreateVNPayPayment(ctx, model.VNPayPaymentRequest{
		Amount: 200000, OrderID: "VNP-1", OrderInfo: "again", BookingID: booking.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateOrderID)
}

func TestPaymentService_HandleMoMoNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - ipn marks paid once", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)
		params := signedMoMoParams(t, testAccessKey, testSecretKey, booking.ID, "200000", "0")

		first, err := f.payments.HandleMoMoNotification(ctx, params)
		require.NoError(t, err)
		assert.True(t, first.Applied)
		assert.Equal(t, model.PaymentStatusPaid, first.Booking.PaymentStatus)
		assert.Equal(t, "4088878653", *first.Booking.TransactionID)

		// MoMo 會重送 IPN
		second, err := f.payments.HandleMoMoNotification(ctx, params)
		require.NoError(t, err)
		assert.False(t, second.Applied)
		assert.Equal(t, 1, f.queue.count())
	})

	t.Run("Success - failed result code", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)

		result, err := f.payments.HandleMoMoNotification(ctx, signedMoMoParams(t, testAccessKey, testSecretKey, booking.ID, "200000", "1006"))
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, result.Booking.PaymentStatus)
		assert.Nil(t, result.Booking.BookingCode)
		assert.Zero(t, f.queue.count())
	})

	t.Run("Failed - bad signature leaves booking pending", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)
		params := signedMoMoParams(t, testAccessKey, testSecretKey, booking.ID, "200000", "0")
		params["amount"] = "1000"

		_, err := f.payments.HandleMoMoNotification(ctx, params)
		assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
		assert.Equal(t, model.PaymentStatusPending, f.ledger.get(booking.ID).PaymentStatus)
	})

	t.Run("Failed - signed amount mismatch", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)

		_, err := f.payments.HandleMoMoNotification(ctx, signedMoMoParams(t, testAccessKey, testSecretKey, booking.ID, "1000", "0"))
		assert.ErrorIs(t, err, apperrors.ErrAmountMismatch)
		assert.Equal(t, model.PaymentStatusPending, f.ledger.get(booking.ID).PaymentStatus)
	})

	t.Run("Success - booking resolved from intent registry", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)
		_, err := f.payments.CreateMoMoPayment(ctx, model.MoMoPaymentRequest{
			Amount: 200000, OrderID: "MOMO-REG", OrderInfo: "x", BookingID: booking.ID, ExtraData: "bm90LWpzb24",
		})
		require.NoError(t, err)

		params := signedMoMoParams(t, testAccessKey, testSecretKey, booking.ID, "200000", "0")
		params["orderId"] = "MOMO-REG"
		params["extraData"] = ""
		params["signature"] = momo.Sign(testSecretKey, momo.ResultSignaturePayload(testAccessKey, params))

		result, err := f.payments.HandleMoMoNotification(ctx, params)
		require.NoError(t, err)
		assert.True(t, result.Applied)
	})

	t.Run("Failed - signed extra data disagrees with registered intent", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)
		other := f.pending(model.PaymentMethodMoMo)
		_, err := f.payments.CreateMoMoPayment(ctx, model.MoMoPaymentRequest{
			Amount: 200000, OrderID: "MOMO-BOUND", OrderInfo: "x", BookingID: booking.ID,
		})
		require.NoError(t, err)

		// 簽名正確，但 extraData 指向另一筆訂單
		params := signedMoMoParams(t, testAccessKey, testSecretKey, other.ID, "200000", "0")
		params["orderId"] = "MOMO-BOUND"
		params["signature"] = momo.Sign(testSecretKey, momo.ResultSignaturePayload(testAccessKey, params))

		_, err = f.payments.HandleMoMoNotification(ctx, params)
		assert.ErrorIs(t, err, apperrors.ErrBookingMismatch)
		assert.Equal(t, model.PaymentStatusPending, f.ledger.get(booking.ID).PaymentStatus)
		assert.Equal(t, model.PaymentStatusPending, f.ledger.get(other.ID).PaymentStatus)
		assert.Zero(t, f.queue.count())
	})
}

func TestPaymentService_HandleVNPayNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - paid", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodVNPay)

		result, err := f.payments.HandleVNPayNotification(ctx, signedVNPayQuery("VNP-9", vnpay.OrderInfo(booking.ID), "20000000", "00"))
		require.NoError(t, err)
		assert.True(t, result.Applied)
		assert.Equal(t, model.PaymentStatusPaid, result.Booking.PaymentStatus)
		assert.Equal(t, time.Date(2024, 1, 2, 8, 10, 0, 0, time.UTC), result.Booking.PaidAt.UTC())
	})

	t.Run("Failed - unknown booking", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.payments.HandleVNPayNotification(ctx, signedVNPayQuery("VNP-404", "no id here", "20000000", "00"))
		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	})

	t.Run("Failed - tampered query", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodVNPay)
		query := signedVNPayQuery("VNP-9", vnpay.OrderInfo(booking.ID), "20000000", "00")
		query.Set("vnp_Amount", "100")

		_, err := f.payments.HandleVNPayNotification(ctx, query)
		assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	})
}

func TestPaymentService_HandleReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - redirect after ipn is a replay", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodVNPay)
		query := signedVNPayQuery("VNP-R1", vnpay.OrderInfo(booking.ID), "20000000", "00")

		_, err := f.payments.HandleVNPayNotification(ctx, query)
		require.NoError(t, err)

		result, err := f.payments.HandleVNPayReturn(ctx, query)
		require.NoError(t, err)
		assert.False(t, result.Applied)
		assert.Equal(t, model.PaymentStatusPaid, result.Booking.PaymentStatus)
		assert.Equal(t, "VNP-R1", result.OrderID)
		assert.Equal(t, 1, f.queue.count())
	})

	t.Run("Success - snapshot fills in missing booking id", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodMoMo)
		_, err := f.payments.CreateMoMoPayment(ctx, model.MoMoPaymentRequest{
			Amount: 200000, OrderID: "MOMO-SNAP", OrderInfo: "x", BookingID: booking.ID, ExtraData: "bm90LWpzb24",
		})
		require.NoError(t, err)

		params := signedMoMoParams(t, testAccessKey, testSecretKey, booking.ID, "200000", "0")
		params["orderId"] = "MOMO-SNAP"
		params["extraData"] = ""
		params["signature"] = momo.Sign(testSecretKey, momo.ResultSignaturePayload(testAccessKey, params))

		result, err := f.payments.HandleMoMoReturn(ctx, params)
		require.NoError(t, err)
		assert.True(t, result.Applied)
		require.NotNil(t, result.Snapshot)
		assert.Equal(t, booking.ID, result.Snapshot.BookingID)

		// 快照只能取一次
		_, err = f.orders.Consume(ctx, model.GatewayMoMo, "MOMO-SNAP")
		assert.ErrorIs(t, err, cache.ErrSnapshotNotFound)
	})

	t.Run("Success - failed redirect", func(t *testing.T) {
		f := newPaymentFixture(t)
		booking := f.pending(model.PaymentMethodVNPay)

		result, err := f.payments.HandleVNPayReturn(ctx, signedVNPayQuery("VNP-F", vnpay.OrderInfo(booking.ID), "20000000", "24"))
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, result.Status)
		assert.Equal(t, model.PaymentStatusFailed, result.Booking.PaymentStatus)
	})
}
