package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"go-gin-cinema-booking/internal/model"
)

var vietnam = time.FixedZone("GMT+7", 7*60*60)

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Xác nhận đặt vé</h2>
  <p>Xin chào {{.Name}},</p>
  <p>Cảm ơn bạn đã đặt vé. Vui lòng đưa mã dưới đây tại quầy để nhận vé.</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
  <table cellpadding="6">
    <tr><td>Phim</td><td>{{.Movie}}</td></tr>
    <tr><td>Suất chiếu</td><td>{{.Showtime}}</td></tr>
    <tr><td>Phòng</td><td>{{.Room}}</td></tr>
    <tr><td>Số vé</td><td>{{.Tickets}}</td></tr>
    <tr><td>Tổng tiền</td><td>{{.Total}}</td></tr>
  </table>
</body>
</html>`))

type confirmationView struct {
	Name     string
	Code     string
	Movie    string
	Showtime string
	Room     string
	Tickets  int
	Total    string
}

// RenderConfirmation builds the confirmation email for a paid booking.
func RenderConfirmation(job *model.ConfirmationJob) (Message, error) {
	name := job.CustomerName
	if name == "" {
		name = job.Email
	}
	room := job.Room
	if job.Format != "" {
		room = strings.TrimSpace(room + " (" + job.Format + ")")
	}

	view := confirmationView{
		Name:     name,
		Code:     job.BookingCode,
		Movie:    job.MovieTitle,
		Showtime: job.StartsAt.In(vietnam).Format("15:04 02/01/2006"),
		Room:     room,
		Tickets:  job.TicketCount,
		Total:    FormatVND(job.TotalPrice),
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, view); err != nil {
		return Message{}, fmt.Errorf("render confirmation: %w", err)
	}

	return Message{
		ToEmail: job.Email,
		ToName:  job.CustomerName,
		Subject: fmt.Sprintf("Xác nhận đặt vé %s - %s", job.BookingCode, job.MovieTitle),
		HTML:    buf.String(),
	}, nil
}

// FormatVND groups thousands with dots: 200000 -> "200.000 ₫".
func FormatVND(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + " ₫"
}
