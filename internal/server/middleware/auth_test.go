package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct {
	userID uuid.UUID
}

func (c *stubClaims) GetUserID() uuid.UUID { return c.userID }

type stubValidator struct {
	userID uuid.UUID
	err    error
}

func (v *stubValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &stubClaims{userID: v.userID}, nil
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		validator  *stubValidator
		wantStatus int
	}{
		{
			name:       "valid bearer token",
			header:     "Bearer good-token",
			validator:  &stubValidator{userID: userID},
			wantStatus: http.StatusOK,
		},
		{
			name:       "lowercase bearer prefix",
			header:     "bearer good-token",
			validator:  &stubValidator{userID: userID},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			header:     "",
			validator:  &stubValidator{userID: userID},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			validator:  &stubValidator{userID: userID},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token only",
			header:     "good-token",
			validator:  &stubValidator{userID: userID},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "validator rejects",
			header:     "Bearer bad-token",
			validator:  &stubValidator{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID uuid.UUID
			handler := AuthMiddleware(tt.validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, err := GetUserID(r)
				require.NoError(t, err)
				gotUserID = id
			}))

			req := httptest.NewRequest(http.MethodGet, "/sections", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID, gotUserID)
			}
		})
	}
}

func TestGetUserIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/sections", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}

func TestWithUserID(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/sections", nil)
	req = req.WithContext(WithUserID(req.Context(), userID))

	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
