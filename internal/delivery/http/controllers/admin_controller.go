package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"roomreserve/internal/delivery/http/helpers"
	"roomreserve/internal/domain"
)

// AdminController exposes the admin console: login, capacity edits,
// submission management, roster management, reset, and refresh.
type AdminController struct {
	Logger *slog.Logger
	Svc    domain.AdminService
	Ledger domain.CapacityLedger
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService, ledger domain.CapacityLedger) *AdminController {
	return &AdminController{
		Logger: logger,
		Svc:    svc,
		Ledger: ledger,
	}
}

func (c *AdminController) writeError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	if status := helpers.WriteDomainError(w, err); status >= http.StatusInternalServerError {
		c.Logger.ErrorContext(ctx, "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// LoginRequest is the request body for POST /admin/login.
type LoginRequest struct {
	Passphrase string `json:"passphrase"`
}

// Validate implements helpers.Validator.
func (r *LoginRequest) Validate() []string {
	if r.Passphrase == "" {
		return []string{"passphrase is required"}
	}
	return nil
}

// LoginResponse carries the admin session token.
// swagger:model LoginResponse
type LoginResponse struct {
	Token string `json:"token"`
}

// Login godoc
// @Summary Authenticate as admin
// @Description Compares the shared passphrase and returns a bearer token for the admin routes.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body controllers.LoginRequest true "Passphrase"
// @Success 200 {object} helpers.APIResponse{data=controllers.LoginResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Svc.Authenticate(req.Passphrase)
	if err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token})
}

// GetRooms godoc
// @Summary Current capacity per room size
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Router /admin/rooms [get]
func (c *AdminController) GetRooms(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Ledger.All())
}

// UpdateRoomRequest is the request body for PUT /admin/rooms/{size}.
type UpdateRoomRequest struct {
	Limit int `json:"limit"`
}

// Validate implements helpers.Validator.
func (r *UpdateRoomRequest) Validate() []string {
	if r.Limit < 0 {
		return []string{"limit must be >= 0"}
	}
	return nil
}

// UpdateRoom godoc
// @Summary Update remaining rooms for a size
// @Description Persists the new limit remotely first; the local ledger is only overwritten on success.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param size path int true "Room size"
// @Param request body controllers.UpdateRoomRequest true "New limit"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /admin/rooms/{size} [put]
func (c *AdminController) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	size, err := strconv.Atoi(r.PathValue("size"))
	if err != nil || size <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid room size")
		return
	}
	var req UpdateRoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Svc.UpdateCapacity(r.Context(), domain.RoomSize(size), req.Limit); err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Ledger.All())
}

// SubmissionListResponse is the paginated submission list.
// swagger:model SubmissionListResponse
type SubmissionListResponse struct {
	Submissions []*domain.Submission   `json:"submissions"`
	Meta        helpers.PaginationMeta `json:"meta"`
}

// ListSubmissions godoc
// @Summary List submissions, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse{data=controllers.SubmissionListResponse}
// @Router /admin/submissions [get]
func (c *AdminController) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	subs := c.Svc.ListSubmissions()
	total := len(subs)

	// Page values near MaxInt overflow the multiplication; treat any
	// out-of-range start as past the end.
	start := (params.Page - 1) * params.PageSize
	if start < 0 || start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, SubmissionListResponse{
		Submissions: subs[start:end],
		Meta:        helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// DeleteSubmission godoc
// @Summary Delete a submission
// @Description Deletes remotely first; on success frees the names and restores one room of its size.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /admin/submissions/{id} [delete]
func (c *AdminController) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing submission id")
		return
	}
	if err := c.Svc.DeleteSubmission(r.Context(), id); err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"deleted": id})
}

// ExportSubmissions godoc
// @Summary Download the submissions spreadsheet
// @Description Streams the remote store's XLSX export.
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /admin/submissions/export [get]
func (c *AdminController) ExportSubmissions(w http.ResponseWriter, r *http.Request) {
	data, err := c.Svc.ExportSubmissions(r.Context())
	if err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="room_submissions.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ListNames godoc
// @Summary Roster with per-name status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse{data=[]domain.NameEntry}
// @Router /admin/names [get]
func (c *AdminController) ListNames(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Svc.ListNames())
}

// ReplaceNamesRequest is the request body for PUT /admin/names.
type ReplaceNamesRequest struct {
	Names []string `json:"names"`
}

// Validate implements helpers.Validator.
func (r *ReplaceNamesRequest) Validate() []string {
	if len(r.Names) == 0 {
		return []string{"names must not be empty"}
	}
	for _, n := range r.Names {
		if strings.TrimSpace(n) == "" {
			return []string{"names must not contain blanks"}
		}
	}
	return nil
}

// ReplaceNames godoc
// @Summary Replace the roster
// @Description Overwrites the remote roster first; used names keep their marks and become inert if dropped.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body controllers.ReplaceNamesRequest true "New roster"
// @Success 200 {object} helpers.APIResponse{data=[]domain.NameEntry}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /admin/names [put]
func (c *AdminController) ReplaceNames(w http.ResponseWriter, r *http.Request) {
	var req ReplaceNamesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Svc.ReplaceRoster(r.Context(), req.Names); err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Svc.ListNames())
}

// ResetAll godoc
// @Summary Delete all data
// @Description Resets the remote store; on success clears the local log, frees every name, and restores the configured default limits.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /admin/reset [post]
func (c *AdminController) ResetAll(w http.ResponseWriter, r *http.Request) {
	if err := c.Svc.ResetAll(r.Context()); err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "reset"})
}

// Refresh godoc
// @Summary Reload all data from the remote store
// @Description Re-runs the initial load; the remote snapshot overwrites local state entirely.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /admin/refresh [post]
func (c *AdminController) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := c.Svc.Refresh(r.Context()); err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
