package httpapi

import (
	"log/slog"
	"net/http"

	"opsroom/domain"
	"opsroom/domain/event"
	"opsroom/services"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

type MissionHandler struct {
	log      *slog.Logger
	missions services.IMissionService
}

func NewMissionHandler(log *slog.Logger, missions services.IMissionService) *MissionHandler {
	return &MissionHandler{log: log, missions: missions}
}

type createMissionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (h *MissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	var req createMissionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	mission, err := h.missions.Create(r.Context(), identity.UserID, services.CreateMissionCommand{
		TeamID:      mux.Vars(r)["teamId"],
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.MissionPriority(req.Priority),
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusCreated, event.ToMissionPayload(mission))
}

type updateMissionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

func (h *MissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	var req updateMissionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	var update domain.MissionUpdate
	update.Title = req.Title
	update.Description = req.Description
	if req.Status != nil {
		update.Status = lo.ToPtr(domain.MissionStatus(*req.Status))
	}
	if req.Priority != nil {
		update.Priority = lo.ToPtr(domain.MissionPriority(*req.Priority))
	}

	mission, err := h.missions.Update(r.Context(), identity.UserID, mux.Vars(r)["missionId"], update)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, event.ToMissionPayload(mission))
}

func (h *MissionHandler) ListForTeam(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	missions, err := h.missions.ListForTeam(r.Context(), identity.UserID, mux.Vars(r)["teamId"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, lo.Map(missions, func(m domain.Mission, _ int) event.MissionPayload {
		return event.ToMissionPayload(m)
	}))
}
