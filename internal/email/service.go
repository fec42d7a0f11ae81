package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/vetdesk/booking-api/internal/model"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Service sends customer-facing booking notifications over SMTP.
type Service struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg Config) *Service {
	return &Service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

var statusSubjects = map[model.BookingStatus]string{
	model.BookingStatusPending:   "Your booking request was received",
	model.BookingStatusConfirmed: "Your booking is confirmed",
	model.BookingStatusCancelled: "Your booking was cancelled",
}

// SendStatusChange mails the customer about a lifecycle change. Statuses
// without a template (completed, no_show) are skipped.
func (s *Service) SendStatusChange(ctx context.Context, booking *model.Booking) error {
	subject, ok := statusSubjects[booking.Status]
	if !ok {
		return nil
	}

	body := fmt.Sprintf(
		"Booking %s\n\nPet: %s\nDate: %s %s\nStatus: %s\n\nIf you have questions, reply to this email.",
		booking.BookingNumber,
		booking.PetName,
		booking.BookingDate,
		booking.BookingTime,
		booking.Status,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", booking.CustomerEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
