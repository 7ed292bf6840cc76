package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"roomreserve/internal/delivery/http/helpers"
	"roomreserve/internal/domain"
)

// ReservationController exposes the reservation wizard over HTTP. Each
// client session owns one workflow instance addressed by an opaque
// session ID.
type ReservationController struct {
	Logger   *slog.Logger
	Ledger   domain.CapacityLedger
	Roster   domain.RosterStore
	registry *sessionRegistry
}

func NewReservationController(
	logger *slog.Logger,
	ledger domain.CapacityLedger,
	roster domain.RosterStore,
	factory WorkflowFactory,
) *ReservationController {
	return &ReservationController{
		Logger:   logger,
		Ledger:   ledger,
		Roster:   roster,
		registry: newSessionRegistry(factory),
	}
}

// NameView is a roster name annotated for rendering: whether it is
// already committed elsewhere and whether it is in this session's draft.
// swagger:model NameView
type NameView struct {
	Name     string `json:"name"`
	Used     bool   `json:"used"`
	Selected bool   `json:"selected"`
}

// SessionView is the full rendering state for one session.
// swagger:model SessionView
type SessionView struct {
	SessionID    string                  `json:"session_id"`
	State        domain.WorkflowState    `json:"state"`
	Draft        domain.Draft            `json:"draft"`
	Availability map[domain.RoomSize]int `json:"availability"`
	Names        []NameView              `json:"names"`
}

func (c *ReservationController) view(id string, wf domain.ReservationWorkflow) SessionView {
	draft := wf.Draft()
	selected := make(map[string]struct{}, len(draft.Names))
	for _, n := range draft.Names {
		selected[n] = struct{}{}
	}
	entries := c.Roster.Names()
	names := make([]NameView, 0, len(entries))
	for _, e := range entries {
		_, sel := selected[e.Name]
		names = append(names, NameView{Name: e.Name, Used: e.Used, Selected: sel})
	}
	return SessionView{
		SessionID:    id,
		State:        wf.State(),
		Draft:        draft,
		Availability: c.Ledger.All(),
		Names:        names,
	}
}

func (c *ReservationController) session(w http.ResponseWriter, r *http.Request) (string, domain.ReservationWorkflow, bool) {
	id := r.PathValue("sessionID")
	wf, ok := c.registry.get(id)
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "unknown session")
		return "", nil, false
	}
	return id, wf, true
}

func (c *ReservationController) writeError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	if status := helpers.WriteDomainError(w, err); status >= http.StatusInternalServerError {
		c.Logger.ErrorContext(ctx, "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// CreateSession godoc
// @Summary Start a reservation session
// @Description Creates a new wizard session in the room-size selection step and returns its full state.
// @Tags reservation
// @Produce json
// @Success 201 {object} helpers.APIResponse{data=controllers.SessionView}
// @Router /sessions [post]
func (c *ReservationController) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, wf := c.registry.create()
	helpers.WriteJSONSuccess(w, http.StatusCreated, c.view(id, wf))
}

// GetSession godoc
// @Summary Get session state
// @Tags reservation
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.SessionView}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /sessions/{sessionID} [get]
func (c *ReservationController) GetSession(w http.ResponseWriter, r *http.Request) {
	id, wf, ok := c.session(w, r)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.view(id, wf))
}

// SelectRoomSizeRequest is the request body for POST /sessions/{sessionID}/room-size.
type SelectRoomSizeRequest struct {
	RoomSize int `json:"room_size"`
}

// Validate implements helpers.Validator.
func (r *SelectRoomSizeRequest) Validate() []string {
	if r.RoomSize <= 0 {
		return []string{"room_size must be a positive integer"}
	}
	return nil
}

// SelectRoomSize godoc
// @Summary Choose a room size
// @Description Valid only in the room-size step. Fails with conflict when no rooms of that size remain or too few people are free.
// @Tags reservation
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param request body controllers.SelectRoomSizeRequest true "Room size"
// @Success 200 {object} helpers.APIResponse{data=controllers.SessionView}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /sessions/{sessionID}/room-size [post]
func (c *ReservationController) SelectRoomSize(w http.ResponseWriter, r *http.Request) {
	id, wf, ok := c.session(w, r)
	if !ok {
		return
	}
	var req SelectRoomSizeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := wf.SelectRoomSize(domain.RoomSize(req.RoomSize)); err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.view(id, wf))
}

// ToggleNameRequest is the request body for POST /sessions/{sessionID}/names/toggle.
type ToggleNameRequest struct {
	Name string `json:"name"`
}

// Validate implements helpers.Validator.
func (r *ToggleNameRequest) Validate() []string {
	if strings.TrimSpace(r.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// ToggleName godoc
// @Summary Toggle a name in the draft
// @Description Adds the name to the draft, or removes it if already selected. Used names and overfull drafts are rejected.
// @Tags reservation
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param request body controllers.ToggleNameRequest true "Name to toggle"
// @Success 200 {object} helpers.APIResponse{data=controllers.SessionView}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /sessions/{sessionID}/names/toggle [post]
func (c *ReservationController) ToggleName(w http.ResponseWriter, r *http.Request) {
	id, wf, ok := c.session(w, r)
	if !ok {
		return
	}
	var req ToggleNameRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := wf.ToggleName(req.Name); err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.view(id, wf))
}

// GoBack godoc
// @Summary Return to room-size selection
// @Description Discards the draft names and returns to the room-size step.
// @Tags reservation
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.SessionView}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /sessions/{sessionID}/back [post]
func (c *ReservationController) GoBack(w http.ResponseWriter, r *http.Request) {
	id, wf, ok := c.session(w, r)
	if !ok {
		return
	}
	if err := wf.GoBack(); err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.view(id, wf))
}

// RequestConfirmation godoc
// @Summary Request the confirmation summary
// @Description Valid only when the draft holds exactly the chosen number of names.
// @Tags reservation
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse{data=domain.ConfirmationSummary}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /sessions/{sessionID}/confirmation [post]
func (c *ReservationController) RequestConfirmation(w http.ResponseWriter, r *http.Request) {
	_, wf, ok := c.session(w, r)
	if !ok {
		return
	}
	summary, err := wf.RequestConfirmation()
	if err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}

// CancelConfirmation godoc
// @Summary Cancel the confirmation step
// @Description Returns to name selection with the draft preserved.
// @Tags reservation
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.SessionView}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /sessions/{sessionID}/confirmation [delete]
func (c *ReservationController) CancelConfirmation(w http.ResponseWriter, r *http.Request) {
	id, wf, ok := c.session(w, r)
	if !ok {
		return
	}
	if err := wf.CancelConfirmation(); err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.view(id, wf))
}

// Submit godoc
// @Summary Confirm and submit the reservation
// @Description Persists the draft remotely, then applies the mutation locally. A second submit while one is pending is rejected with conflict.
// @Tags reservation
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 201 {object} helpers.APIResponse{data=domain.Submission}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /sessions/{sessionID}/submit [post]
func (c *ReservationController) Submit(w http.ResponseWriter, r *http.Request) {
	_, wf, ok := c.session(w, r)
	if !ok {
		return
	}
	sub, err := wf.ConfirmAndSubmit(r.Context())
	if err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// Restart godoc
// @Summary Start a new selection
// @Description Valid from the success step; clears the draft and returns to room-size selection.
// @Tags reservation
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.SessionView}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /sessions/{sessionID}/restart [post]
func (c *ReservationController) Restart(w http.ResponseWriter, r *http.Request) {
	id, wf, ok := c.session(w, r)
	if !ok {
		return
	}
	if err := wf.StartNewSelection(); err != nil {
		c.writeError(r.Context(), w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.view(id, wf))
}

// Availability godoc
// @Summary Remaining rooms per size
// @Tags reservation
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /availability [get]
func (c *ReservationController) Availability(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Ledger.All())
}
