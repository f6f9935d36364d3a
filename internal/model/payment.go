package model

import (
	"strconv"
	"strings"
	"time"

	apperrors "go-gin-cinema-booking/pkg/app_errors"
)

type Gateway string

const (
	GatewayMoMo  Gateway = "momo"
	GatewayVNPay Gateway = "vnpay"
)

// PaymentIntent is the outbound payment request for one checkout attempt.
// Implemented by MoMoIntent and VNPayIntent only.
type PaymentIntent interface {
	Gateway() Gateway
	OrderRef() string
	AmountVND() int64
	Booking() int64
	Validate() error
	isPaymentIntent()
}

// MoMoIntent MoMo 付款意圖
type MoMoIntent struct {
	OrderID     string
	RequestID   string
	Amount      int64
	OrderInfo   string
	RedirectURL string
	IpnURL      string
	RequestType string
	ExtraData   string
	Lang        string
	BookingID   int64
}

func (i *MoMoIntent) Gateway() Gateway { return GatewayMoMo }
func (i *MoMoIntent) OrderRef() string { return i.OrderID }
func (i *MoMoIntent) AmountVND() int64 { return i.Amount }
func (i *MoMoIntent) Booking() int64   { return i.BookingID }
func (i *MoMoIntent) isPaymentIntent() {}

func (i *MoMoIntent) Validate() error {
	switch {
	case i.Amount <= 0:
		return apperrors.NewValidationError("amount", "must be positive")
	case i.OrderID == "":
		return apperrors.NewValidationError("orderId", "is required")
	case i.OrderInfo == "":
		return apperrors.NewValidationError("orderInfo", "is required")
	case i.RedirectURL == "":
		return apperrors.NewValidationError("redirectUrl", "is required")
	case i.IpnURL == "":
		return apperrors.NewValidationError("ipnUrl", "is required")
	}
	return nil
}

// VNPayIntent VNPay 付款意圖. OrderInfo carries the booking id.
type VNPayIntent struct {
	OrderID   string
	Amount    int64
	OrderInfo string
	OrderType string
	Locale    string
	IPAddr    string
	BookingID int64
	CreatedAt time.Time
}

func (i *VNPayIntent) Gateway() Gateway { return GatewayVNPay }
func (i *VNPayIntent) OrderRef() string { return i.OrderID }
func (i *VNPayIntent) AmountVND() int64 { return i.Amount }
func (i *VNPayIntent) Booking() int64   { return i.BookingID }
func (i *VNPayIntent) isPaymentIntent() {}

func (i *VNPayIntent) Validate() error {
	switch {
	case i.Amount <= 0:
		return apperrors.NewValidationError("amount", "must be positive")
	case i.OrderID == "":
		return apperrors.NewValidationError("orderId", "is required")
	case i.OrderInfo == "":
		return apperrors.NewValidationError("orderInfo", "is required")
	}
	return nil
}

// CheckoutSnapshot is the booking context captured at checkout and carried
// through the gateway in MoMo's extraData.
type CheckoutSnapshot struct {
	BookingID   int64  `json:"bookingId"`
	UserID      int64  `json:"userId,omitempty"`
	ShowtimeID  int64  `json:"showtimeId,omitempty"`
	TicketCount int    `json:"ticketCount,omitempty"`
	TotalPrice  int64  `json:"totalPrice,omitempty"`
	Email       string `json:"email,omitempty"`
}

// GatewayResult is a signature-verified payment outcome.
type GatewayResult struct {
	Gateway       Gateway
	OrderID       string
	TransactionID string
	Amount        int64
	Status        PaymentStatus
	ResultCode    string
	Message       string
	BookingID     int64
	Snapshot      *CheckoutSnapshot
	PaidAt        time.Time
}

// IntentRecord is what the intent registry keeps per order id.
type IntentRecord struct {
	Gateway   Gateway   `json:"gateway"`
	OrderID   string    `json:"order_id"`
	BookingID int64     `json:"booking_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Channel identifies which path delivered a gateway result.
type Channel string

const (
	ChannelIPN      Channel = "ipn"
	ChannelRedirect Channel = "redirect"
	ChannelClient   Channel = "client"
)

// Amount is a VND amount that also accepts JSON strings ("200000"), which
// the storefront sends for form-sourced values.
type Amount int64

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*a = 0
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return apperrors.NewValidationError("amount", "must be an integer number of VND")
	}
	*a = Amount(v)
	return nil
}

// MoMoPaymentRequest is the create-payment body. Partner credentials in the
// body are only used where the environment has none.
type MoMoPaymentRequest struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	SecretKey   string `json:"secretKey"`
	RequestID   string `json:"requestId"`
	Amount      Amount `json:"amount" binding:"required,gt=0"`
	OrderID     string `json:"orderId" binding:"required"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IpnURL      string `json:"ipnUrl"`
	RequestType string `json:"requestType"`
	ExtraData   string `json:"extraData"`
	Lang        string `json:"lang"`
	BookingID   int64  `json:"bookingId"`
}

type VNPayPaymentRequest struct {
	Amount    Amount `json:"amount" binding:"required,gt=0"`
	OrderID   string `json:"orderId" binding:"required"`
	OrderInfo string `json:"orderInfo"`
	Locale    string `json:"locale"`
	BookingID int64  `json:"bookingId"`
	IPAddr    string `json:"-"`
}

type PaymentLink struct {
	PayURL    string `json:"payUrl"`
	OrderID   string `json:"orderId"`
	BookingID int64  `json:"bookingId"`
	Data      any    `json:"data,omitempty"`
}

// ReturnResult is what the redirect endpoints hand back to the storefront.
// Booking is the server-side state and wins over Status.
type ReturnResult struct {
	Gateway  Gateway           `json:"gateway"`
	OrderID  string            `json:"orderId"`
	Status   PaymentStatus     `json:"status"`
	Message  string            `json:"message,omitempty"`
	Applied  bool              `json:"applied"`
	Booking  *Booking          `json:"booking,omitempty"`
	Snapshot *CheckoutSnapshot `json:"snapshot,omitempty"`
}
