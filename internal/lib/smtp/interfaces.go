// Package smtp содержит транспорт исходящих писем в ящик поддержки.
package smtp

import "io"

// Client — минимальная поверхность SMTP-сессии, нужная отправителю.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Dialer открывает авторизованные SMTP-соединения и знает адрес отправителя.
type Dialer interface {
	Connect() (Client, error)
	From() string
}
