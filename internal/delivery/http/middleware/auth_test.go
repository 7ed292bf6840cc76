package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomreserve/internal/delivery/http/helpers"
	"roomreserve/internal/domain"
)

type fakeVerifier struct {
	err  error
	seen string
}

func (v *fakeVerifier) Verify(token string) error {
	v.seen = token
	return v.err
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifyErr  error
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "valid token",
			header:     "Bearer good-token",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			header:     "Bearer   ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			header:     "Bearer expired",
			verifyErr:  domain.ErrAuthenticationFailed,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{err: tt.verifyErr}
			nextCalled := false
			handler := RequireAdmin(verifier)(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/rooms", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantStatus == http.StatusUnauthorized {
				var env struct {
					Error *helpers.APIError `json:"error"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
				require.NotNil(t, env.Error)
				assert.Equal(t, helpers.ErrCodeUnauthorized, env.Error.Code)
			}
		})
	}
}

func TestRequireAdmin_PassesTokenThrough(t *testing.T) {
	verifier := &fakeVerifier{}
	handler := RequireAdmin(verifier)(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/admin/rooms", nil)
	req.Header.Set("Authorization", "Bearer the-token")
	handler(httptest.NewRecorder(), req)

	assert.Equal(t, "the-token", verifier.seen)
}
