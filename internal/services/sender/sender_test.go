package services

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/smtp"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) From() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func notice() models.ExpiryNotice {
	return models.ExpiryNotice{
		PhoneNumber:   "5511999990000",
		Name:          "Maria",
		Service:       "Viki Pass",
		ExpiryDate:    time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC),
		DaysRemaining: 3,
		State:         "expiring_soon",
	}
}

func TestSendExpiryNotice_Success(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := new(MockSMTPWriter)

	transport.On("From").Return("noreply@eudorama.com")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "noreply@eudorama.com").Return(nil).Once()
	client.On("Rcpt", "support@eudorama.com").Return(nil).Once()
	client.On("Data").Return(writer, nil).Once()
	writer.On("Write", mock.Anything).Return(100, nil).Once()
	writer.On("Close").Return(nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil)

	service := NewSenderService(transport, "support@eudorama.com", newNoopLogger())
	err := service.SendExpiryNotice(notice())
	require.NoError(t, err)

	transport.AssertExpectations(t)
	client.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestSendExpiryNotice_ConnectError(t *testing.T) {
	transport := new(MockTransport)
	transport.On("From").Return("noreply@eudorama.com")
	transport.On("Connect").Return(nil, errors.New("dial failed")).Once()

	service := NewSenderService(transport, "support@eudorama.com", newNoopLogger())
	err := service.SendExpiryNotice(notice())
	assert.Error(t, err)
}
