package smtp

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/config"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/sl"
)

// Transport открывает авторизованные STARTTLS-соединения с SMTP-сервером
// из конфигурации. Соединение одноразовое: письма поддержки уходят редко,
// пул держать незачем.
type Transport struct {
	host string
	port string
	user string
	pass string
	log  *slog.Logger
}

// NewTransport создает новый экземпляр Transport.
func NewTransport(cfg *config.Config, log *slog.Logger) *Transport {
	return &Transport{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		log:  log,
	}
}

// From возвращает адрес отправителя.
func (t *Transport) From() string {
	return t.user
}

// Connect устанавливает соединение, переводит его в TLS и авторизуется.
func (t *Transport) Connect() (Client, error) {
	conn, err := net.Dial("tcp", net.JoinHostPort(t.host, t.port))
	if err != nil {
		t.log.Error("failed to dial smtp server", sl.Err(err))
		return nil, fmt.Errorf("dial smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, t.host)
	if err != nil {
		t.log.Error("failed to create smtp client", sl.Err(err))
		if closeErr := conn.Close(); closeErr != nil {
			t.log.Error("failed to close connection", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	if err := t.secure(client); err != nil {
		t.log.Error("failed to secure smtp session", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close smtp client", sl.Err(closeErr))
		}
		return nil, err
	}

	auth := smtp.PlainAuth("", t.user, t.pass, t.host)
	if err := client.Auth(auth); err != nil {
		t.log.Error("smtp auth failed", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close smtp client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("smtp auth: %w", err)
	}

	return &smtpClient{c: client}, nil
}

// secure требует STARTTLS: письма поддержки содержат телефоны клиентов
// и открытым текстом не ходят.
func (t *Transport) secure(client *smtp.Client) error {
	if ok, _ := client.Extension("STARTTLS"); !ok {
		return fmt.Errorf("smtp server does not support STARTTLS")
	}
	tlsCfg := &tls.Config{
		ServerName: t.host,
		MinVersion: tls.VersionTLS12,
	}
	if err := client.StartTLS(tlsCfg); err != nil {
		return fmt.Errorf("start tls: %w", err)
	}
	return nil
}

// smtpClient сводит *smtp.Client к интерфейсу Client.
type smtpClient struct {
	c *smtp.Client
}

func (w *smtpClient) Mail(from string) error { return w.c.Mail(from) }

func (w *smtpClient) Rcpt(to string) error { return w.c.Rcpt(to) }

func (w *smtpClient) Data() (io.WriteCloser, error) { return w.c.Data() }

func (w *smtpClient) Quit() error { return w.c.Quit() }

func (w *smtpClient) Close() error { return w.c.Close() }
