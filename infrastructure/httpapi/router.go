package httpapi

import (
	"log/slog"
	"net/http"

	"opsroom/auth"
	"opsroom/observability"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Teams         *TeamHandler
	Missions      *MissionHandler
	Messages      *MessageHandler
	Notifications *NotificationHandler
	Realtime      http.Handler
}

// NewRouter mounts the REST surface. Everything under /api except auth and
// health requires a bearer token; the realtime endpoint authenticates
// in-band during its handshake.
func NewRouter(log *slog.Logger, tokens *auth.TokenManager,
	monitor *observability.Monitor, h Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, monitor.Latest())
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", h.Auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods(http.MethodPost)

	if h.Realtime != nil {
		r.Handle("/ws", h.Realtime)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(bearerAuth(tokens, log))

	api.HandleFunc("/teams", h.Teams.Create).Methods(http.MethodPost)
	api.HandleFunc("/teams", h.Teams.List).Methods(http.MethodGet)
	api.HandleFunc("/teams/{teamId}", h.Teams.Get).Methods(http.MethodGet)
	api.HandleFunc("/teams/{teamId}/members", h.Teams.Members).Methods(http.MethodGet)
	api.HandleFunc("/teams/{teamId}/members", h.Teams.AddMember).Methods(http.MethodPost)
	api.HandleFunc("/teams/{teamId}/members/{userId}", h.Teams.RemoveMember).Methods(http.MethodDelete)
	api.HandleFunc("/teams/{teamId}/members/{userId}/role", h.Teams.ChangeRole).Methods(http.MethodPut)
	api.HandleFunc("/teams/{teamId}/status", h.Teams.UpdateStatus).Methods(http.MethodPut)

	api.HandleFunc("/teams/{teamId}/missions", h.Missions.Create).Methods(http.MethodPost)
	api.HandleFunc("/teams/{teamId}/missions", h.Missions.ListForTeam).Methods(http.MethodGet)
	api.HandleFunc("/missions/{missionId}", h.Missions.Update).Methods(http.MethodPut)

	api.HandleFunc("/teams/{teamId}/messages", h.Messages.Send).Methods(http.MethodPost)
	api.HandleFunc("/teams/{teamId}/messages", h.Messages.List).Methods(http.MethodGet)
	api.HandleFunc("/teams/{teamId}/messages/search", h.Messages.Search).Methods(http.MethodGet)

	api.HandleFunc("/notifications", h.Notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{notificationId}/read", h.Notifications.MarkRead).Methods(http.MethodPut)
	api.HandleFunc("/notifications/unread", h.Notifications.UnreadCount).Methods(http.MethodGet)

	return r
}
