package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"opsroom/domain"
	"opsroom/domain/event"
	"opsroom/services"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

const defaultSearchLimit = 20

type MessageHandler struct {
	log      *slog.Logger
	messages services.IMessageService
}

func NewMessageHandler(log *slog.Logger, messages services.IMessageService) *MessageHandler {
	return &MessageHandler{log: log, messages: messages}
}

type sendMessageRequest struct {
	Content   string `json:"content"`
	MissionID string `json:"missionId"`
	Encrypted bool   `json:"encrypted"`
}

type sentMessageResponse struct {
	Message event.MessagePayload `json:"message"`
	// Key is present only for the sender of an encrypted message. It is the
	// one and only time the one-time key leaves the server.
	Key string `json:"key,omitempty"`
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	sent, err := h.messages.Send(r.Context(), services.SendMessageCommand{
		TeamID:    mux.Vars(r)["teamId"],
		MissionID: req.MissionID,
		SenderID:  identity.UserID,
		Content:   req.Content,
		Encrypted: req.Encrypted,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusCreated, sentMessageResponse{
		Message: event.ToMessagePayload(sent.Message),
		Key:     sent.Key,
	})
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	var cursor *string
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		cursor = &raw
	}
	messages, next, err := h.messages.List(r.Context(), identity.UserID, mux.Vars(r)["teamId"], cursor)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	var page *pagination
	if next != nil {
		page = &pagination{NextCursor: *next}
	}
	respondPage(w, http.StatusOK, lo.Map(messages, func(m domain.Message, _ int) event.MessagePayload {
		return event.ToMessagePayload(m)
	}), page)
}

type searchResponse struct {
	Hits  interface{} `json:"hits"`
	Total uint64      `json:"total"`
}

func (h *MessageHandler) Search(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	hits, total, err := h.messages.Search(r.Context(), identity.UserID,
		mux.Vars(r)["teamId"], r.URL.Query().Get("q"), limit)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, searchResponse{Hits: hits, Total: total})
}
