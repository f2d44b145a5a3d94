package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"resort-backend/logger"
)

// SendBookingConfirmationEmail notifies the booker after a successful
// reservation. Best-effort: without SMTP configuration it only logs the
// message, so booking creation never depends on a mail server.
func SendBookingConfirmationEmail(to, name, roomTitle string, roomNo *int, checkin, checkout time.Time) error {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USERNAME")
	pass := os.Getenv("SMTP_PASSWORD")

	roomLine := roomTitle
	if roomNo != nil {
		roomLine = fmt.Sprintf("%s (room %d)", roomTitle, *roomNo)
	}

	if host == "" || portStr == "" || user == "" || pass == "" {
		logger.Log.Infof("[MOCK EMAIL] booking confirmation to:%s room:%s stay:%s..%s",
			to, roomLine, checkin.Format("2006-01-02"), checkout.Format("2006-01-02"))
		return nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking at Shree Resort is confirmed.\n\nRoom: %s\nCheck-in: %s\nCheck-out: %s\n\nWe look forward to your stay.\n",
		strings.TrimSpace(name), roomLine,
		checkin.Format("2006-01-02"), checkout.Format("2006-01-02"),
	)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your Shree Resort booking is confirmed")
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, user, pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}
