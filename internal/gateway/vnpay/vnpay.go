// Package vnpay builds signed VNPay redirect URLs and verifies the results
// VNPay sends back. VNPay needs no server-to-server call to start a payment.
package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
)

const (
	gatewayName = "vnpay"

	Version   = "2.1.0"
	Command   = "pay"
	CurrCode  = "VND"
	OrderType = "other"

	dateLayout = "20060102150405"
)

// VNPay timestamps are Vietnam local time.
var vietnam = time.FixedZone("GMT+7", 7*60*60)

var bookingIDPattern = regexp.MustCompile(`(?i)booking[^0-9]*(\d+)`)

type Config struct {
	PayURL     string
	TmnCode    string
	HashSecret string
	ReturnURL  string
	Locale     string
	ExpireIn   time.Duration
}

func (c Config) missing() []string {
	var missing []string
	if c.TmnCode == "" {
		missing = append(missing, "tmnCode")
	}
	if c.HashSecret == "" {
		missing = append(missing, "hashSecret")
	}
	if c.ReturnURL == "" {
		missing = append(missing, "returnUrl")
	}
	return missing
}

type Builder struct {
	cfg Config
	now func() time.Time
}

func NewBuilder(cfg Config) *Builder {
	if cfg.Locale == "" {
		cfg.Locale = "vn"
	}
	return &Builder{cfg: cfg, now: time.Now}
}

// Sign returns the lowercase hex HMAC-SHA512 of payload.
func Sign(hashSecret, payload string) string {
	mac := hmac.New(sha512.New, []byte(hashSecret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignPayload is the canonical string VNPay signs: keys sorted, values
// query-escaped. Hash fields and empty values are left out.
func SignPayload(params url.Values) string {
	clean := url.Values{}
	for key, values := range params {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" {
			continue
		}
		if len(values) == 0 || values[0] == "" {
			continue
		}
		clean.Set(key, values[0])
	}
	return clean.Encode()
}

// Params returns the unsigned parameter set for an intent.
func (b *Builder) Params(intent *model.VNPayIntent) (url.Values, error) {
	if missing := b.cfg.missing(); len(missing) > 0 {
		return nil, &apperrors.ConfigurationError{Gateway: gatewayName, Missing: missing}
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	createdAt := intent.CreatedAt
	if createdAt.IsZero() {
		createdAt = b.now()
	}
	locale := intent.Locale
	if locale == "" {
		locale = b.cfg.Locale
	}
	orderType := intent.OrderType
	if orderType == "" {
		orderType = OrderType
	}
	ipAddr := intent.IPAddr
	if ipAddr == "" {
		ipAddr = "127.0.0.1"
	}

	params := url.Values{}
	params.Set("vnp_Version", Version)
	params.Set("vnp_Command", Command)
	params.Set("vnp_TmnCode", b.cfg.TmnCode)
	params.Set("vnp_Locale", locale)
	params.Set("vnp_CurrCode", CurrCode)
	params.Set("vnp_TxnRef", intent.OrderID)
	params.Set("vnp_OrderInfo", intent.OrderInfo)
	params.Set("vnp_OrderType", orderType)
	params.Set("vnp_Amount", strconv.FormatInt(intent.Amount*100, 10))
	params.Set("vnp_ReturnUrl", b.cfg.ReturnURL)
	params.Set("vnp_IpAddr", ipAddr)
	params.Set("vnp_CreateDate", createdAt.In(vietnam).Format(dateLayout))
	if b.cfg.ExpireIn > 0 {
		params.Set("vnp_ExpireDate", createdAt.Add(b.cfg.ExpireIn).In(vietnam).Format(dateLayout))
	}
	return params, nil
}

// BuildPaymentURL returns the signed redirect URL for the buyer.
func (b *Builder) BuildPaymentURL(intent *model.VNPayIntent) (string, error) {
	params, err := b.Params(intent)
	if err != nil {
		return "", err
	}

	payload := SignPayload(params)
	return b.cfg.PayURL + "?" + payload + "&vnp_SecureHash=" + Sign(b.cfg.HashSecret, payload), nil
}

// VerifyResult checks vnp_SecureHash on an IPN or return query and
// interprets the outcome.
func (b *Builder) VerifyResult(query url.Values) (*model.GatewayResult, error) {
	if b.cfg.HashSecret == "" {
		return nil, &apperrors.ConfigurationError{Gateway: gatewayName, Missing: []string{"hashSecret"}}
	}

	signature := query.Get("vnp_SecureHash")
	if signature == "" {
		return nil, apperrors.ErrInvalidSignature
	}
	expected, _ := hex.DecodeString(Sign(b.cfg.HashSecret, SignPayload(query)))
	got, err := hex.DecodeString(strings.ToLower(signature))
	if err != nil || !hmac.Equal(expected, got) {
		return nil, apperrors.ErrInvalidSignature
	}
	if b.cfg.TmnCode != "" && query.Get("vnp_TmnCode") != b.cfg.TmnCode {
		return nil, apperrors.ErrInvalidSignature
	}

	minor, err := strconv.ParseInt(query.Get("vnp_Amount"), 10, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("vnp_Amount", "is not a number")
	}
	// vnp_Amount 是 VND x 100，有餘數代表不是整數 VND
	if minor < 0 || minor%100 != 0 {
		return nil, apperrors.NewValidationError("vnp_Amount", "is not a whole number of VND")
	}

	result := &model.GatewayResult{
		Gateway:       model.GatewayVNPay,
		OrderID:       query.Get("vnp_TxnRef"),
		TransactionID: query.Get("vnp_TransactionNo"),
		Amount:        minor / 100,
		ResultCode:    query.Get("vnp_ResponseCode"),
		Status:        model.PaymentStatusFailed,
		PaidAt:        b.now().UTC(),
	}
	if query.Get("vnp_ResponseCode") == "00" && query.Get("vnp_TransactionStatus") == "00" {
		result.Status = model.PaymentStatusPaid
	}
	if payDate, err := time.ParseInLocation(dateLayout, query.Get("vnp_PayDate"), vietnam); err == nil {
		result.PaidAt = payDate.UTC()
	}
	if id, ok := BookingIDFromOrderInfo(query.Get("vnp_OrderInfo")); ok {
		result.BookingID = id
	}
	return result, nil
}

// BookingIDFromOrderInfo pulls the booking id out of descriptors such as
// "Thanh toan booking #42".
func BookingIDFromOrderInfo(orderInfo string) (int64, bool) {
	match := bookingIDPattern.FindStringSubmatch(orderInfo)
	if len(match) < 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// OrderInfo is the descriptor format BookingIDFromOrderInfo understands.
func OrderInfo(bookingID int64) string {
	return "Thanh toan booking " + strconv.FormatInt(bookingID, 10)
}
