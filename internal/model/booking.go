package model

import (
	"strings"
	"time"
)

// PaymentStatus 付款狀態
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// ParsePaymentStatus normalizes case variants ("PAID", " Paid ") to a PaymentStatus.
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	s := PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.IsValid()
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed
}

// CanTransitionTo only allows leaving pending; terminal states are final.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	transitions := map[PaymentStatus][]PaymentStatus{
		PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed},
		PaymentStatusPaid:    {},
		PaymentStatusFailed:  {},
	}

	for _, status := range transitions[s] {
		if status == target {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodMoMo  PaymentMethod = "momo"
	PaymentMethodVNPay PaymentMethod = "vnpay"
)

func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
	switch m {
	case PaymentMethodCash, PaymentMethodMoMo, PaymentMethodVNPay:
		return m, true
	}
	return m, false
}

// IsGateway reports whether payment is collected by an external gateway.
func (m PaymentMethod) IsGateway() bool {
	return m == PaymentMethodMoMo || m == PaymentMethodVNPay
}

// Booking 訂票紀錄. TotalPrice is in VND, which has no minor unit.
type Booking struct {
	ID            int64         `json:"id" db:"id"`
	UserID        int64         `json:"user_id" db:"user_id"`
	ShowtimeID    int64         `json:"showtime_id" db:"showtime_id"`
	TicketCount   int           `json:"ticket_count" db:"ticket_count"`
	TotalPrice    int64         `json:"total_price" db:"total_price"`
	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	TransactionID *string       `json:"transaction_id" db:"transaction_id"`
	PaidAt        *time.Time    `json:"paid_at" db:"paid_at"`
	BookingCode   *string       `json:"booking_code" db:"booking_code"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

func (b *Booking) IsPending() bool {
	return b.PaymentStatus == PaymentStatusPending
}

// CreateBookingRequest 建立訂票請求. TotalPrice is accepted for
// compatibility with the storefront and always ignored.
type CreateBookingRequest struct {
	Email         string `json:"email" binding:"required,email"`
	ShowtimeID    int64  `json:"showtimeId" binding:"required,gt=0"`
	TicketCount   int    `json:"ticketCount" binding:"required,gt=0"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=cash momo vnpay"`
	TotalPrice    *int64 `json:"totalPrice,omitempty"`
}

// ConfirmBookingRequest 確認付款結果請求
type ConfirmBookingRequest struct {
	UserID        int64      `json:"user_id" binding:"required,gt=0"`
	PaymentID     int64      `json:"payment_id" binding:"required,gt=0"`
	PaymentStatus string     `json:"payment_status" binding:"required"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`

	// Gateway and GatewayParams carry the redirect query string so the
	// server can verify the gateway signature itself.
	Gateway       string            `json:"gateway,omitempty"`
	GatewayParams map[string]string `json:"gateway_params,omitempty"`
}

// Transition is the conditional update applied to a pending booking.
type Transition struct {
	BookingID     int64
	UserID        int64
	Status        PaymentStatus
	TransactionID *string
	PaidAt        time.Time
}

// ConfirmResult reports whether this call performed the transition.
// Applied is false for replays against a terminal booking.
type ConfirmResult struct {
	Booking *Booking
	Applied bool
}

type RevenueSummary struct {
	TotalRevenue int64      `json:"total_revenue"`
	BookingCount int64      `json:"booking_count"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
}
