package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"opsroom/domain"
	"opsroom/domain/event"
	"opsroom/repositories"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

const defaultNotificationLimit = 50

// NotificationHandler reads and mutates the caller's own notification rows.
// No service layer in between: the only rule here is ownership, enforced by
// scoping every repository call to the authenticated user.
type NotificationHandler struct {
	log           *slog.Logger
	notifications repositories.INotificationRepository
}

func NewNotificationHandler(log *slog.Logger, notifications repositories.INotificationRepository) *NotificationHandler {
	return &NotificationHandler{log: log, notifications: notifications}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	limit := defaultNotificationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	notifications, err := h.notifications.ListNotifications(identity.UserID, limit)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, lo.Map(notifications, func(n domain.Notification, _ int) event.NotificationPayload {
		return event.ToNotificationPayload(n)
	}))
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if err := h.notifications.MarkRead(identity.UserID, mux.Vars(r)["notificationId"]); err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

type unreadCountResponse struct {
	Count int `json:"count"`
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	count, err := h.notifications.CountUnread(identity.UserID)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, unreadCountResponse{Count: count})
}
