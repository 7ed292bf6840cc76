package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomreserve/internal/domain"
)

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest, ErrCodeBadRequest},
		{domain.ErrAuthenticationFailed, http.StatusUnauthorized, ErrCodeUnauthorized},
		{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{domain.ErrCapacityExceeded, http.StatusConflict, ErrCodeConflict},
		{domain.ErrNameUnavailable, http.StatusConflict, ErrCodeConflict},
		{domain.ErrAlreadyInProgress, http.StatusConflict, ErrCodeConflict},
		{domain.ErrInvalidState, http.StatusConflict, ErrCodeConflict},
		{domain.ErrTransport, http.StatusBadGateway, ErrCodeUpstreamError},
		{fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, domain.ErrTransport), http.StatusBadGateway, ErrCodeUpstreamError},
		{errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode+"/"+tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			status := WriteDomainError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp APIResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  PaginationParams
	}{
		{"defaults", "", PaginationParams{Page: 1, PageSize: 20}},
		{"explicit", "page=3&page_size=50", PaginationParams{Page: 3, PageSize: 50}},
		{"clamped to max", "page_size=500", PaginationParams{Page: 1, PageSize: 100}},
		{"garbage ignored", "page=zero&page_size=-2", PaginationParams{Page: 1, PageSize: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/submissions?"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(req))
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(2, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 41, meta.Total)

	assert.Equal(t, 0, NewPaginationMeta(1, 0, 10).TotalPages)
}
