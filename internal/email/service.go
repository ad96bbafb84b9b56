package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/healthapp-api/internal/config"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
)

type Service interface {
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPService struct {
	from    string
	sender  sender
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewSMTPService(cfg config.SMTPConfig, m *metrics.Metrics, logger zerolog.Logger) *SMTPService {
	return newSMTPService(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), m, logger)
}

func newSMTPService(from string, s sender, m *metrics.Metrics, logger zerolog.Logger) *SMTPService {
	return &SMTPService{
		from:    from,
		sender:  s,
		metrics: m,
		logger:  logger.With().Str("component", "email").Logger(),
	}
}

// SendCustom sends a plain-text message. gomail does not take a context, so ctx is only checked before dialing.
func (s *SMTPService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", content)

	if err := s.sender.DialAndSend(msg); err != nil {
		s.metrics.EmailsSent.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	s.metrics.EmailsSent.WithLabelValues("success").Inc()
	s.logger.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
