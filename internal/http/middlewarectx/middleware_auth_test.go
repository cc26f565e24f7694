package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/calorie-tracker/internal/http/middlewarectx"
)

const testUserUID = "550e8400-e29b-41d4-a716-446655440000"

// Mock for auth service
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestTokenMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantCalled     bool
		wantUserUID    string
	}{
		{
			name:           "no Authorization header passes without identity",
			authHeader:     "",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "token validation error",
			authHeader: "Bearer token",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "token").Return("", errors.New("expired")).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer validtoken",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "validtoken").Return(testUserUID, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
			wantUserUID:    testUserUID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)

			handlerCalled := false
			var gotUID string
			var gotOK bool
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				gotUID, gotOK = middlewarectx.UserUIDFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			middlewarectx.TokenMiddleware(authMock, newNoopLogger())(nextHandler).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			assert.Equal(t, tt.wantUserUID, gotUID)
			assert.Equal(t, tt.wantUserUID != "", gotOK)
			authMock.AssertExpectations(t)
		})
	}
}

func TestUserUIDFrom_Empty(t *testing.T) {
	_, ok := middlewarectx.UserUIDFrom(context.Background())
	assert.False(t, ok)

	_, ok = middlewarectx.UserUIDFrom(middlewarectx.WithUserUID(context.Background(), ""))
	assert.False(t, ok)
}
