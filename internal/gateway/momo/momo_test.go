package momo_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"go-gin-cinema-booking/internal/gateway/momo"
	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPartnerCode = "MOMO"
	testAccessKey   = "F8BBA842ECF85"
	testSecretKey   = "K951B6PE1waDMi640xX08PD3vg6EkVlz"
)

func testCreds() momo.Credentials {
	return momo.Credentials{PartnerCode: testPartnerCode, AccessKey: testAccessKey, SecretKey: testSecretKey}
}

func testIntent() *model.MoMoIntent {
	return &model.MoMoIntent{
		OrderID:     "MOMO1700000000",
		RequestID:   "MOMO1700000000",
		Amount:      200000,
		OrderInfo:   "Thanh toan booking 42",
		RedirectURL: "https://cinema.local/payment/return",
		IpnURL:      "https://cinema.local/api/momo/ipn",
		RequestType: "captureWallet",
		BookingID:   42,
	}
}

func TestCreateSignature_Deterministic(t *testing.T) {
	client := momo.NewClient(momo.Config{Endpoint: "http://unused"})

	first, err := client.BuildCreateRequest(testIntent(), testCreds())
	require.NoError(t, err)
	second, err := client.BuildCreateRequest(testIntent(), testCreds())
	require.NoError(t, err)

	assert.Equal(t, first.Signature, second.Signature)
	// 固定向量
	assert.Equal(t, "fad61a60b2d760cc67f4ef5d95c8669bd9aa49c432a6af2bdc96d93e547ad7f5", first.Signature)
	assert.Equal(t,
		"accessKey=F8BBA842ECF85&amount=200000&extraData=&ipnUrl=https://cinema.local/api/momo/ipn&orderId=MOMO1700000000&orderInfo=Thanh toan booking 42&partnerCode=MOMO&redirectUrl=https://cinema.local/payment/return&requestId=MOMO1700000000&requestType=captureWallet",
		momo.CreateSignaturePayload(testAccessKey, first),
	)
}

func TestVerify(t *testing.T) {
	sig := momo.Sign(testSecretKey, "payload")
	assert.True(t, momo.Verify(testSecretKey, "payload", sig))
	assert.False(t, momo.Verify(testSecretKey, "payload2", sig))
	assert.False(t, momo.Verify("other", "payload", sig))
	assert.False(t, momo.Verify(testSecretKey, "payload", "not-hex"))
}

func TestBuildCreateRequest_Validation(t *testing.T) {
	client := momo.NewClient(momo.Config{Endpoint: "http://unused"})

	t.Run("Failed - missing ipnUrl", func(t *testing.T) {
		intent := testIntent()
		intent.IpnURL = ""

		_, err := client.BuildCreateRequest(intent, testCreds())
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Failed - missing credentials", func(t *testing.T) {
		_, err := client.BuildCreateRequest(testIntent(), momo.Credentials{PartnerCode: "MOMO"})

		var cfgErr *apperrors.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, []string{"accessKey", "secretKey"}, cfgErr.Missing)
	})

	t.Run("Success - fills request id", func(t *testing.T) {
		intent := testIntent()
		intent.RequestID = ""

		req, err := client.BuildCreateRequest(intent, testCreds())
		require.NoError(t, err)
		assert.NotEmpty(t, req.RequestID)
		assert.Equal(t, "vi", req.Lang)
	})
}

func TestCredentials_EnvWins(t *testing.T) {
	client := momo.NewClient(momo.Config{
		Endpoint:    "http://unused",
		Credentials: momo.Credentials{PartnerCode: "ENV", AccessKey: "env-access"},
	})

	creds, err := client.Credentials(momo.Credentials{PartnerCode: "BODY", AccessKey: "body-access", SecretKey: "body-secret"})
	require.NoError(t, err)
	assert.Equal(t, "ENV", creds.PartnerCode)
	assert.Equal(t, "env-access", creds.AccessKey)
	assert.Equal(t, "body-secret", creds.SecretKey)
}

func TestCreatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var received momo.CreateRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"partnerCode": testPartnerCode,
				"orderId":     received.OrderID,
				"resultCode":  0,
				"message":     "Thành công.",
				"payUrl":      "https://test-payment.momo.vn/pay/abc",
			})
		}))
		defer server.Close()

		client := momo.NewClient(momo.Config{Endpoint: server.URL, Credentials: testCreds()})
		result, err := client.CreatePayment(ctx, testIntent(), momo.Credentials{})

		require.NoError(t, err)
		assert.Equal(t, "https://test-payment.momo.vn/pay/abc", result.PayURL)
		assert.Equal(t, "MOMO1700000000", received.OrderID)
		assert.Equal(t, int64(200000), received.Amount)
		assert.True(t, momo.Verify(testSecretKey, momo.CreateSignaturePayload(testAccessKey, &received), received.Signature))
	})

	t.Run("Success - deeplink fallback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"resultCode": 0, "deeplink": "momo://app?x=1"})
		}))
		defer server.Close()

		client := momo.NewClient(momo.Config{Endpoint: server.URL, Credentials: testCreds()})
		result, err := client.CreatePayment(ctx, testIntent(), momo.Credentials{})

		require.NoError(t, err)
		assert.Equal(t, "momo://app?x=1", result.PayURL)
	})

	t.Run("Failed - non-2xx relays status and message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"resultCode": 20, "message": "Bad format request."})
		}))
		defer server.Close()

		client := momo.NewClient(momo.Config{Endpoint: server.URL, Credentials: testCreds()})
		_, err := client.CreatePayment(ctx, testIntent(), momo.Credentials{})

		var gwErr *apperrors.GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
		assert.Equal(t, 20, gwErr.ResultCode)
		assert.Equal(t, "Bad format request.", gwErr.Message)
		assert.ErrorIs(t, err, apperrors.ErrGateway)
	})

	t.Run("Failed - resultCode not zero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"resultCode": 41, "message": "Duplicate orderId"})
		}))
		defer server.Close()

		client := momo.NewClient(momo.Config{Endpoint: server.URL, Credentials: testCreds()})
		_, err := client.CreatePayment(ctx, testIntent(), momo.Credentials{})

		var gwErr *apperrors.GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, 41, gwErr.ResultCode)
	})

	t.Run("Failed - timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		client := momo.NewClient(momo.Config{Endpoint: server.URL, Credentials: testCreds(), Timeout: 50 * time.Millisecond})
		_, err := client.CreatePayment(ctx, testIntent(), momo.Credentials{})

		var gwErr *apperrors.GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, http.StatusBadGateway, gwErr.StatusCode)
	})

	t.Run("Failed - no credentials, no network call", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		client := momo.NewClient(momo.Config{Endpoint: server.URL})
		_, err := client.CreatePayment(ctx, testIntent(), momo.Credentials{})

		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
		assert.Equal(t, int32(0), calls.Load())
	})
}

func signedResult(t *testing.T, resultCode string, snapshot *model.CheckoutSnapshot) map[string]string {
	t.Helper()
	extra := ""
	if snapshot != nil {
		var err error
		extra, err = momo.EncodeExtraData(snapshot)
		require.NoError(t, err)
	}
	params := map[string]string{
		"partnerCode":  testPartnerCode,
		"orderId":      "MOMO1700000000",
		"requestId":    "MOMO1700000000",
		"amount":       "200000",
		"orderInfo":    "Thanh toan booking 42",
		"orderType":    "momo_wallet",
		"transId":      "4088878653",
		"resultCode":   resultCode,
		"message":      "Successful.",
		"payType":      "qr",
		"responseTime": strconv.FormatInt(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC).UnixMilli(), 10),
		"extraData":    extra,
	}
	params["signature"] = momo.Sign(testSecretKey, momo.ResultSignaturePayload(testAccessKey, params))
	return params
}

func TestVerifyResult(t *testing.T) {
	client := momo.NewClient(momo.Config{Endpoint: "http://unused", Credentials: testCreds()})

	t.Run("Success - paid", func(t *testing.T) {
		params := signedResult(t, "0", &model.CheckoutSnapshot{BookingID: 42, TotalPrice: 200000})

		result, err := client.VerifyResult(params)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusPaid, result.Status)
		assert.Equal(t, int64(42), result.BookingID)
		assert.Equal(t, int64(200000), result.Amount)
		assert.Equal(t, "4088878653", result.TransactionID)
		assert.Equal(t, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), result.PaidAt)
	})

	t.Run("Success - non-zero resultCode is failed", func(t *testing.T) {
		result, err := client.VerifyResult(signedResult(t, "1006", nil))
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, result.Status)
		assert.Zero(t, result.BookingID)
	})

	t.Run("Failed - tampered amount", func(t *testing.T) {
		params := signedResult(t, "0", nil)
		params["amount"] = "1000"

		_, err := client.VerifyResult(params)
		assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	})

	t.Run("Failed - missing signature", func(t *testing.T) {
		params := signedResult(t, "0", nil)
		delete(params, "signature")

		_, err := client.VerifyResult(params)
		assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	})

	t.Run("Failed - not configured", func(t *testing.T) {
		bare := momo.NewClient(momo.Config{Endpoint: "http://unused"})
		_, err := bare.VerifyResult(signedResult(t, "0", nil))
		assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
	})
}

func TestExtraData(t *testing.T) {
	snapshot := &model.CheckoutSnapshot{BookingID: 7, UserID: 3, Email: "a@b.com", TotalPrice: 150000}

	encoded, err := momo.EncodeExtraData(snapshot)
	require.NoError(t, err)

	decoded, err := momo.DecodeExtraData(encoded)
	require.NoError(t, err)
	assert.Equal(t, snapshot, decoded)

	// 標準 base64 也要能解
	decoded, err = momo.DecodeExtraData("eyJib29raW5nSWQiOjd9")
	require.NoError(t, err)
	assert.Equal(t, int64(7), decoded.BookingID)

	_, err = momo.DecodeExtraData("")
	assert.Error(t, err)
	_, err = momo.DecodeExtraData("!!!")
	assert.Error(t, err)
}
