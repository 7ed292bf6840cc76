package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"roomreserve/internal/delivery/http/controllers"
	"roomreserve/internal/delivery/http/helpers"
	"roomreserve/internal/delivery/http/middleware"
	"roomreserve/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	reservation *controllers.ReservationController,
	admin *controllers.AdminController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAdmin := middleware.RequireAdmin(verifier)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Reservation wizard
	mux.HandleFunc("GET /availability", reservation.Availability)
	mux.HandleFunc("POST /sessions", reservation.CreateSession)
	mux.HandleFunc("GET /sessions/{sessionID}", reservation.GetSession)
	mux.HandleFunc("POST /sessions/{sessionID}/room-size", reservation.SelectRoomSize)
	mux.HandleFunc("POST /sessions/{sessionID}/names/toggle", reservation.ToggleName)
	mux.HandleFunc("POST /sessions/{sessionID}/back", reservation.GoBack)
	mux.HandleFunc("POST /sessions/{sessionID}/confirmation", reservation.RequestConfirmation)
	mux.HandleFunc("DELETE /sessions/{sessionID}/confirmation", reservation.CancelConfirmation)
	mux.HandleFunc("POST /sessions/{sessionID}/submit", reservation.Submit)
	mux.HandleFunc("POST /sessions/{sessionID}/restart", reservation.Restart)

	// Admin console
	mux.HandleFunc("POST /admin/login", admin.Login)
	mux.HandleFunc("GET /admin/rooms", requireAdmin(admin.GetRooms))
	mux.HandleFunc("PUT /admin/rooms/{size}", requireAdmin(admin.UpdateRoom))
	mux.HandleFunc("GET /admin/submissions", requireAdmin(admin.ListSubmissions))
	mux.HandleFunc("GET /admin/submissions/export", requireAdmin(admin.ExportSubmissions))
	mux.HandleFunc("DELETE /admin/submissions/{id}", requireAdmin(admin.DeleteSubmission))
	mux.HandleFunc("GET /admin/names", requireAdmin(admin.ListNames))
	mux.HandleFunc("PUT /admin/names", requireAdmin(admin.ReplaceNames))
	mux.HandleFunc("POST /admin/reset", requireAdmin(admin.ResetAll))
	mux.HandleFunc("POST /admin/refresh", requireAdmin(admin.Refresh))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
