package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomreserve/internal/delivery/http/helpers"
	"roomreserve/internal/domain"
	"roomreserve/internal/repository/memory"
	"roomreserve/internal/services"
)

// stubGateway accepts every call unless an error is configured.
type stubGateway struct {
	persistErr error
}

func (g *stubGateway) LoadAll(context.Context) (*domain.Snapshot, error) { return &domain.Snapshot{}, nil }
func (g *stubGateway) PersistSubmission(context.Context, *domain.Submission) error {
	return g.persistErr
}
func (g *stubGateway) DeleteSubmission(context.Context, string) error             { return nil }
func (g *stubGateway) UpdateCapacity(context.Context, domain.RoomSize, int) error { return nil }
func (g *stubGateway) ResetAll(context.Context) error                             { return nil }
func (g *stubGateway) ReplaceNames(context.Context, []string) error               { return nil }
func (g *stubGateway) ExportSubmissions(context.Context) ([]byte, error)          { return nil, nil }

type envelope struct {
	Data  json.RawMessage   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func sessionRequest(method, target, sessionID string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if sessionID != "" {
		req.SetPathValue("sessionID", sessionID)
	}
	return req
}

func newReservationFixture(t *testing.T) (*ReservationController, *stubGateway) {
	t.Helper()
	ledger := memory.NewCapacityLedger(map[domain.RoomSize]int{2: 1, 3: 0})
	roster := memory.NewRosterStore([]string{"Alice", "Bob", "Carol"}, []string{"Carol"})
	log := memory.NewSubmissionLog()
	gw := &stubGateway{}
	ctrl := NewReservationController(testLogger(), ledger, roster, func() domain.ReservationWorkflow {
		return services.NewWorkflow(ledger, roster, log, gw)
	})
	return ctrl, gw
}

// createSession drives POST /sessions and returns the new session ID.
func createSession(t *testing.T, ctrl *ReservationController) string {
	t.Helper()
	rec := httptest.NewRecorder()
	ctrl.CreateSession(rec, sessionRequest(http.MethodPost, "/sessions", "", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var view SessionView
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.NotEmpty(t, view.SessionID)
	return view.SessionID
}

func TestReservationController_CreateSession(t *testing.T) {
	ctrl, _ := newReservationFixture(t)

	rec := httptest.NewRecorder()
	ctrl.CreateSession(rec, sessionRequest(http.MethodPost, "/sessions", "", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Nil(t, env.Error)

	var view SessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, domain.StateChoosingRoomSize, view.State)
	assert.Equal(t, 1, view.Availability[2])
	require.Len(t, view.Names, 3)
	assert.True(t, view.Names[2].Used)
	assert.False(t, view.Names[0].Selected)
}

func TestReservationController_GetSession_NotFound(t *testing.T) {
	ctrl, _ := newReservationFixture(t)

	rec := httptest.NewRecorder()
	ctrl.GetSession(rec, sessionRequest(http.MethodGet, "/sessions/nope", "nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeNotFound, env.Error.Code)
}

func TestReservationController_SelectRoomSize(t *testing.T) {
	ctrl, _ := newReservationFixture(t)
	id := createSession(t, ctrl)

	rec := httptest.NewRecorder()
	ctrl.SelectRoomSize(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/room-size", id, SelectRoomSizeRequest{RoomSize: 2}))

	require.Equal(t, http.StatusOK, rec.Code)
	var view SessionView
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, domain.StateChoosingNames, view.State)
	assert.Equal(t, domain.RoomSize(2), view.Draft.RoomSize)
}

func TestReservationController_SelectRoomSize_NoCapacity(t *testing.T) {
	ctrl, _ := newReservationFixture(t)
	id := createSession(t, ctrl)

	rec := httptest.NewRecorder()
	ctrl.SelectRoomSize(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/room-size", id, SelectRoomSizeRequest{RoomSize: 3}))

	require.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeConflict, env.Error.Code)
}

func TestReservationController_SelectRoomSize_BadBody(t *testing.T) {
	ctrl, _ := newReservationFixture(t)
	id := createSession(t, ctrl)

	rec := httptest.NewRecorder()
	ctrl.SelectRoomSize(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/room-size", id, SelectRoomSizeRequest{RoomSize: -1}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeBadRequest, env.Error.Code)
}

func TestReservationController_ToggleName(t *testing.T) {
	ctrl, _ := newReservationFixture(t)
	id := createSession(t, ctrl)

	rec := httptest.NewRecorder()
	ctrl.SelectRoomSize(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/room-size", id, SelectRoomSizeRequest{RoomSize: 2}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	ctrl.ToggleName(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/names/toggle", id, ToggleNameRequest{Name: "Alice"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var view SessionView
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, []string{"Alice"}, view.Draft.Names)
	assert.True(t, view.Names[0].Selected)

	// Toggling again removes it.
	rec = httptest.NewRecorder()
	ctrl.ToggleName(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/names/toggle", id, ToggleNameRequest{Name: "Alice"}))
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Empty(t, view.Draft.Names)
}

func TestReservationController_ToggleName_Used(t *testing.T) {
	ctrl, _ := newReservationFixture(t)
	id := createSession(t, ctrl)

	rec := httptest.NewRecorder()
	ctrl.SelectRoomSize(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/room-size", id, SelectRoomSizeRequest{RoomSize: 2}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	ctrl.ToggleName(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/names/toggle", id, ToggleNameRequest{Name: "Carol"}))

	require.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeConflict, env.Error.Code)
}

// driveToConfirming walks a session to the confirmation step with Alice
// and Bob selected for a room of two.
func driveToConfirming(t *testing.T, ctrl *ReservationController) string {
	t.Helper()
	id := createSession(t, ctrl)
	steps := []struct {
		handler http.HandlerFunc
		target  string
		body    any
	}{
		{ctrl.SelectRoomSize, "/room-size", SelectRoomSizeRequest{RoomSize: 2}},
		{ctrl.ToggleName, "/names/toggle", ToggleNameRequest{Name: "Alice"}},
		{ctrl.ToggleName, "/names/toggle", ToggleNameRequest{Name: "Bob"}},
		{ctrl.RequestConfirmation, "/confirmation", nil},
	}
	for _, step := range steps {
		rec := httptest.NewRecorder()
		step.handler(rec, sessionRequest(http.MethodPost, "/sessions/"+id+step.target, id, step.body))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	return id
}

func TestReservationController_Confirmation(t *testing.T) {
	ctrl, _ := newReservationFixture(t)
	id := createSession(t, ctrl)

	// Too early: no names selected yet.
	rec := httptest.NewRecorder()
	ctrl.SelectRoomSize(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/room-size", id, SelectRoomSizeRequest{RoomSize: 2}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	ctrl.RequestConfirmation(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/confirmation", id, nil))
	require.Equal(t, http.StatusConflict, rec.Code)

	for _, name := range []string{"Alice", "Bob"} {
		rec = httptest.NewRecorder()
		ctrl.ToggleName(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/names/toggle", id, ToggleNameRequest{Name: name}))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = httptest.NewRecorder()
	ctrl.RequestConfirmation(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/confirmation", id, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.ConfirmationSummary
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, domain.RoomSize(2), summary.RoomSize)
	assert.Equal(t, []string{"Alice", "Bob"}, summary.Names)
	assert.Contains(t, summary.Message, "Alice, Bob")

	// Cancel returns to name selection with the draft intact.
	rec = httptest.NewRecorder()
	ctrl.CancelConfirmation(rec, sessionRequest(http.MethodDelete, "/sessions/"+id+"/confirmation", id, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var view SessionView
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, domain.StateChoosingNames, view.State)
	assert.Equal(t, []string{"Alice", "Bob"}, view.Draft.Names)
}

func TestReservationController_Submit(t *testing.T) {
	ctrl, _ := newReservationFixture(t)
	id := driveToConfirming(t, ctrl)

	rec := httptest.NewRecorder()
	ctrl.Submit(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/submit", id, nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	var sub domain.Submission
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &sub))
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, domain.RoomSize(2), sub.RoomSize)
	assert.Equal(t, []string{"Alice", "Bob"}, sub.Names)

	// Capacity and names are committed.
	rec = httptest.NewRecorder()
	ctrl.GetSession(rec, sessionRequest(http.MethodGet, "/sessions/"+id, id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var view SessionView
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, domain.StateSuccess, view.State)
	assert.Equal(t, 0, view.Availability[2])
	assert.True(t, view.Names[0].Used)
}

func TestReservationController_Submit_RemoteFailure(t *testing.T) {
	ctrl, gw := newReservationFixture(t)
	id := driveToConfirming(t, ctrl)
	gw.persistErr = domain.ErrTransport

	rec := httptest.NewRecorder()
	ctrl.Submit(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/submit", id, nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeUpstreamError, env.Error.Code)

	// The session falls back to name selection for a retry.
	rec = httptest.NewRecorder()
	ctrl.GetSession(rec, sessionRequest(http.MethodGet, "/sessions/"+id, id, nil))
	var view SessionView
	envGet := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(envGet.Data, &view))
	assert.Equal(t, domain.StateChoosingNames, view.State)
	assert.Equal(t, 1, view.Availability[2])
}

func TestReservationController_Restart(t *testing.T) {
	ctrl, _ := newReservationFixture(t)
	id := driveToConfirming(t, ctrl)

	rec := httptest.NewRecorder()
	ctrl.Submit(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/submit", id, nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	ctrl.Restart(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/restart", id, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var view SessionView
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, domain.StateChoosingRoomSize, view.State)
	assert.Empty(t, view.Draft.Names)
}

func TestReservationController_Restart_InvalidState(t *testing.T) {
	ctrl, _ := newReservationFixture(t)
	id := createSession(t, ctrl)

	rec := httptest.NewRecorder()
	ctrl.Restart(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/restart", id, nil))

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestReservationController_Availability(t *testing.T) {
	ctrl, _ := newReservationFixture(t)

	rec := httptest.NewRecorder()
	ctrl.Availability(rec, httptest.NewRequest(http.MethodGet, "/availability", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var avail map[domain.RoomSize]int
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &avail))
	assert.Equal(t, map[domain.RoomSize]int{2: 1, 3: 0}, avail)
}
