package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		authHeader      string
		validateErr     error
		claims          *auth.Claims
		expectedStatus  int
		expectedSubject string
	}{
		{
			name:            "valid token",
			authHeader:      "Bearer valid-token",
			claims:          &auth.Claims{Subject: "ci-bot"},
			expectedStatus:  http.StatusOK,
			expectedSubject: "ci-bot",
		},
		{
			name:            "lowercase scheme",
			authHeader:      "bearer valid-token",
			claims:          &auth.Claims{Subject: "ci-bot"},
			expectedStatus:  http.StatusOK,
			expectedSubject: "ci-bot",
		},
		{
			name:           "missing auth header",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid auth format",
			authHeader:     "InvalidFormat",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			validateErr:    auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			validateErr:    auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unexpected validation failure",
			authHeader:     "Bearer some-token",
			validateErr:    errors.New("key store offline"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			jwtService := &mocks.MockJWTService{
				ValidateErr: tt.validateErr,
				Claims:      tt.claims,
			}

			var capturedSubject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if subject, ok := GetSubject(r); ok {
					capturedSubject = subject
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(recorder, req)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedSubject, capturedSubject)
			} else {
				assert.Contains(t, recorder.Body.String(), `"detail"`)
			}
		})
	}
}

func TestAuthMiddleware_WithRealTokens(t *testing.T) {
	svc := testutils.RequireTestJWTService(t)
	handler := NewAuthMiddleware(svc).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := GetSubject(r)
		require.True(t, ok)
		_, _ = w.Write([]byte(subject))
	}))

	req := httptest.NewRequest(http.MethodDelete, "/tasks/1", nil)
	req.Header.Set("Authorization", testutils.GenerateAuthHeaderForTestingT(t, "release-bot"))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "release-bot", recorder.Body.String())
}

func TestAuthMiddleware_RedactsUnexpectedErrors(t *testing.T) {
	log, buf := testutils.GetTestLogger(t)
	jwtService := &mocks.MockJWTService{
		ValidateErr: errors.New("lookup failed with secret=abcdefghijklmnop"),
	}

	req := httptest.NewRequest(http.MethodPut, "/tasks/1", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	recorder := httptest.NewRecorder()

	NewAuthMiddleware(jwtService).
		Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	testutils.AssertLogContains(t, buf, "failed to validate token")
	assert.NotContains(t, buf.String(), "abcdefghijklmnop")
	assert.NotContains(t, recorder.Body.String(), "abcdefghijklmnop")
}
