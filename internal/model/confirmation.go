package model

import "time"

// ConfirmationJob is everything the notifier needs to send the booking
// confirmation email without reading the database again.
type ConfirmationJob struct {
	BookingID     int64         `json:"booking_id"`
	BookingCode   string        `json:"booking_code"`
	Email         string        `json:"email"`
	CustomerName  string        `json:"customer_name"`
	MovieTitle    string        `json:"movie_title"`
	Room          string        `json:"room"`
	Format        string        `json:"format"`
	StartsAt      time.Time     `json:"starts_at"`
	TicketCount   int           `json:"ticket_count"`
	TotalPrice    int64         `json:"total_price"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	TransactionID string        `json:"transaction_id,omitempty"`
	PaidAt        time.Time     `json:"paid_at"`
}

// BookingConfirmedEvent is published to the broker when a booking is paid.
type BookingConfirmedEvent struct {
	BookingID     int64         `json:"booking_id"`
	BookingCode   string        `json:"booking_code"`
	UserID        int64         `json:"user_id"`
	ShowtimeID    int64         `json:"showtime_id"`
	TicketCount   int           `json:"ticket_count"`
	TotalPrice    int64         `json:"total_price"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	TransactionID string        `json:"transaction_id,omitempty"`
	PaidAt        time.Time     `json:"paid_at"`
}
