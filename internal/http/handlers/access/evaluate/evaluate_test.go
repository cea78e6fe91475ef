package evaluate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/access"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lifecycle"
	accesssvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/access"
)

// MockService реализует интерфейс evaluate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) EvaluateClient(ctx context.Context, phoneNumber string) (*accesssvc.ClientAccess, error) {
	args := m.Called(ctx, phoneNumber)
	if res := args.Get(0); res != nil {
		return res.(*accesssvc.ClientAccess), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestEvaluateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		phone          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешная оценка доступа",
			phone: "+79990000001",
			setupMock: func(m *MockService) {
				result := &accesssvc.ClientAccess{
					PhoneNumber: "+79990000001",
					Name:        "Анна",
					Decisions: []access.Decision{
						{
							Service:              "viki",
							Status:               lifecycle.Status{State: lifecycle.StateActive},
							AssignedCredentialID: "cred-1",
							Email:                "pool1@example.com",
							Password:             "secret",
						},
					},
				}
				m.On("EvaluateClient", mock.Anything, "+79990000001").Return(result, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"phone_number":"+79990000001"`,
		},
		{
			name:  "заблокированная подписка без содержимого",
			phone: "+79990000002",
			setupMock: func(m *MockService) {
				result := &accesssvc.ClientAccess{
					PhoneNumber: "+79990000002",
					Decisions: []access.Decision{
						{
							Service: "kocowa",
							Status:  lifecycle.Status{State: lifecycle.StateBlocked},
							Blocked: true,
						},
					},
					Summary: lifecycle.Summary{AnyBlocked: true, AnyExpired: true},
				}
				m.On("EvaluateClient", mock.Anything, "+79990000002").Return(result, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"blocked":true`,
		},
		{
			name:  "клиент не найден",
			phone: "+79990000404",
			setupMock: func(m *MockService) {
				m.On("EvaluateClient", mock.Anything, "+79990000404").
					Return(nil, accesssvc.ErrClientNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"client not found"}`,
		},
		{
			name:  "ошибка сервиса",
			phone: "+79990000500",
			setupMock: func(m *MockService) {
				m.On("EvaluateClient", mock.Anything, "+79990000500").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not evaluate client access"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/clients/"+tt.phone+"/access", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("phone", tt.phone)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
