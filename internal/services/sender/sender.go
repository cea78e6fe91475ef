// Package services содержит отправителя уведомлений: приём событий из
// очереди и отправку писем в ящик поддержки.
package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/smtp"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// SenderService отправляет письма об истекающих подписках в ящик поддержки.
// С клиентами связывается оператор по телефону, поэтому адресат один.
type SenderService struct {
	transport    smtp.Dialer
	supportInbox string
	log          *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.Dialer, supportInbox string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport:    transport,
		supportInbox: supportInbox,
		log:          log,
	}
}

// SendExpiryNotice отправляет письмо поддержке об истекающей подписке.
func (s *SenderService) SendExpiryNotice(notice models.ExpiryNotice) error {
	to := []string{s.supportInbox}
	subject := fmt.Sprintf("Подписка истекает: %s (%s)", notice.Service, notice.PhoneNumber)
	bodyText := fmt.Sprintf(
		"Клиент: %s (%s)\nСервис: %s\nСостояние: %s\nДата окончания: %s\nДней до окончания: %d\n\nСвяжитесь с клиентом для продления.",
		notice.Name, notice.PhoneNumber, notice.Service, notice.State,
		notice.ExpiryDate.Format("02-01-2006"), notice.DaysRemaining)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.From(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.From()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.From(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
