package create

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/tracker"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	args := m.Called(ctx, name, email)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateUserHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание пользователя",
			body: `{"name":"Alice","email":"alice@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "Alice", "alice@example.com").
					Return(&models.User{ID: 1, Name: "Alice", Email: "alice@example.com"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"email":"alice@example.com"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"name":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "пустой email",
			body:           `{"name":"Alice"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email is a required field`,
		},
		{
			name: "некорректный email",
			body: `{"name":"Alice","email":"a@b"}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "Alice", "a@b").
					Return(nil, fmt.Errorf("%w: invalid email address \"a@b\"", tracker.ErrValidation))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `invalid email address`,
		},
		{
			name: "email уже занят",
			body: `{"name":"Alice","email":"alice@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "Alice", "alice@example.com").
					Return(nil, fmt.Errorf("%w: email already registered", tracker.ErrConflict))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `already registered`,
		},
		{
			name: "ошибка хранилища",
			body: `{"name":"Alice","email":"alice@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "Alice", "alice@example.com").
					Return(nil, fmt.Errorf("%w: %w", tracker.ErrStore, errors.New("db down")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
