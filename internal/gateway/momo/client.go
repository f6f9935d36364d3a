// Package momo talks to the MoMo wallet payment gateway (API v2).
package momo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
	"go-gin-cinema-booking/pkg/logger"
	"go-gin-cinema-booking/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const gatewayName = "momo"

type Credentials struct {
	PartnerCode string
	AccessKey   string
	SecretKey   string
}

// Merge fills empty fields of c from fallback; c (env) wins.
func (c Credentials) Merge(fallback Credentials) Credentials {
	if c.PartnerCode == "" {
		c.PartnerCode = fallback.PartnerCode
	}
	if c.AccessKey == "" {
		c.AccessKey = fallback.AccessKey
	}
	if c.SecretKey == "" {
		c.SecretKey = fallback.SecretKey
	}
	return c
}

func (c Credentials) missing() []string {
	var missing []string
	if c.PartnerCode == "" {
		missing = append(missing, "partnerCode")
	}
	if c.AccessKey == "" {
		missing = append(missing, "accessKey")
	}
	if c.SecretKey == "" {
		missing = append(missing, "secretKey")
	}
	return missing
}

type Config struct {
	Endpoint    string
	Timeout     time.Duration
	Credentials Credentials
	RequestType string
	Lang        string
}

// CreateRequest is the JSON body of POST /v2/gateway/api/create.
type CreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IpnURL      string `json:"ipnUrl"`
	Lang        string `json:"lang"`
	RequestType string `json:"requestType"`
	ExtraData   string `json:"extraData"`
	Signature   string `json:"signature"`
}

type CreateResponse struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	ResponseTime int64  `json:"responseTime"`
	Message      string `json:"message"`
	ResultCode   int    `json:"resultCode"`
	PayURL       string `json:"payUrl"`
	Deeplink     string `json:"deeplink"`
	QrCodeURL    string `json:"qrCodeUrl"`
}

type CreateResult struct {
	PayURL   string
	Response *CreateResponse
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	now        func() time.Time
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestType == "" {
		cfg.RequestType = "captureWallet"
	}
	if cfg.Lang == "" {
		cfg.Lang = "vi"
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        gatewayName,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithComponent("gateway").Warn("circuit breaker state changed",
				zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return c
}

// Credentials resolves env credentials over body-supplied ones.
func (c *Client) Credentials(fromBody Credentials) (Credentials, error) {
	creds := c.cfg.Credentials.Merge(fromBody)
	if missing := creds.missing(); len(missing) > 0 {
		return creds, &apperrors.ConfigurationError{Gateway: gatewayName, Missing: missing}
	}
	return creds, nil
}

// BuildCreateRequest validates the intent and signs the create payload.
// No network call happens here.
func (c *Client) BuildCreateRequest(intent *model.MoMoIntent, creds Credentials) (*CreateRequest, error) {
	if missing := creds.missing(); len(missing) > 0 {
		return nil, &apperrors.ConfigurationError{Gateway: gatewayName, Missing: missing}
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	req := &CreateRequest{
		PartnerCode: creds.PartnerCode,
		RequestID:   intent.RequestID,
		Amount:      intent.Amount,
		OrderID:     intent.OrderID,
		OrderInfo:   intent.OrderInfo,
		RedirectURL: intent.RedirectURL,
		IpnURL:      intent.IpnURL,
		Lang:        intent.Lang,
		RequestType: intent.RequestType,
		ExtraData:   intent.ExtraData,
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.RequestType == "" {
		req.RequestType = c.cfg.RequestType
	}
	if req.Lang == "" {
		req.Lang = c.cfg.Lang
	}

	req.Signature = Sign(creds.SecretKey, CreateSignaturePayload(creds.AccessKey, req))
	return req, nil
}

// CreatePayment asks MoMo for a pay URL. A timeout or non-success answer is
// a GatewayError; the booking stays pending and the buyer retries with a new
// order id.
func (c *Client) CreatePayment(ctx context.Context, intent *model.MoMoIntent, fromBody Credentials) (*CreateResult, error) {
	creds, err := c.Credentials(fromBody)
	if err != nil {
		return nil, err
	}
	req, err := c.BuildCreateRequest(intent, creds)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal momo request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	started := c.now()
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			// counted as a breaker failure, body still read below
			return resp, fmt.Errorf("momo returned %d", resp.StatusCode)
		}
		return resp, nil
	})
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil && resp == nil {
		metrics.ObserveGatewayCall(gatewayName, "transport_error", started)
		return nil, &apperrors.GatewayError{
			Gateway:    gatewayName,
			StatusCode: http.StatusBadGateway,
			Message:    transportMessage(err),
			Err:        err,
		}
	}

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if readErr != nil {
		metrics.ObserveGatewayCall(gatewayName, "transport_error", started)
		return nil, &apperrors.GatewayError{Gateway: gatewayName, StatusCode: http.StatusBadGateway, Message: "failed to read gateway response", Err: readErr}
	}

	var createResp CreateResponse
	decodeErr := json.Unmarshal(respBody, &createResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ObserveGatewayCall(gatewayName, strconv.Itoa(resp.StatusCode), started)
		message := createResp.Message
		if decodeErr != nil || message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &apperrors.GatewayError{
			Gateway:    gatewayName,
			StatusCode: resp.StatusCode,
			ResultCode: createResp.ResultCode,
			Message:    message,
		}
	}
	if decodeErr != nil {
		metrics.ObserveGatewayCall(gatewayName, "bad_response", started)
		return nil, &apperrors.GatewayError{Gateway: gatewayName, StatusCode: http.StatusBadGateway, Message: "malformed gateway response", Err: decodeErr}
	}
	if createResp.ResultCode != 0 {
		metrics.ObserveGatewayCall(gatewayName, "rejected", started)
		return nil, &apperrors.GatewayError{
			Gateway:    gatewayName,
			StatusCode: http.StatusBadRequest,
			ResultCode: createResp.ResultCode,
			Message:    createResp.Message,
		}
	}

	payURL := createResp.PayURL
	if payURL == "" {
		payURL = createResp.Deeplink
	}
	if payURL == "" {
		metrics.ObserveGatewayCall(gatewayName, "bad_response", started)
		return nil, &apperrors.GatewayError{Gateway: gatewayName, StatusCode: http.StatusBadGateway, Message: "gateway returned no pay url"}
	}

	metrics.ObserveGatewayCall(gatewayName, "ok", started)
	return &CreateResult{PayURL: payURL, Response: &createResp}, nil
}

// VerifyResult checks the signature of an IPN body or redirect query and
// interprets it. resultCode 0 means paid; anything else failed.
func (c *Client) VerifyResult(params map[string]string) (*model.GatewayResult, error) {
	creds := c.cfg.Credentials
	if creds.AccessKey == "" || creds.SecretKey == "" {
		return nil, &apperrors.ConfigurationError{Gateway: gatewayName, Missing: creds.missing()}
	}

	signature := params["signature"]
	if signature == "" || !Verify(creds.SecretKey, ResultSignaturePayload(creds.AccessKey, params), signature) {
		return nil, apperrors.ErrInvalidSignature
	}
	if creds.PartnerCode != "" && params["partnerCode"] != creds.PartnerCode {
		return nil, apperrors.ErrInvalidSignature
	}

	amount, err := strconv.ParseInt(params["amount"], 10, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("amount", "is not a number")
	}

	result := &model.GatewayResult{
		Gateway:       model.GatewayMoMo,
		OrderID:       params["orderId"],
		TransactionID: params["transId"],
		Amount:        amount,
		ResultCode:    params["resultCode"],
		Message:       params["message"],
		Status:        model.PaymentStatusFailed,
		PaidAt:        c.now().UTC(),
	}
	if params["resultCode"] == "0" {
		result.Status = model.PaymentStatusPaid
	}
	if ms, err := strconv.ParseInt(params["responseTime"], 10, 64); err == nil && ms > 0 {
		result.PaidAt = time.UnixMilli(ms).UTC()
	}

	if snapshot, err := DecodeExtraData(params["extraData"]); err == nil {
		result.Snapshot = snapshot
		result.BookingID = snapshot.BookingID
	}

	return result, nil
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "gateway timed out"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "gateway temporarily unavailable"
	default:
		return "gateway unreachable"
	}
}
