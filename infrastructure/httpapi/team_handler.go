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

type TeamHandler struct {
	log    *slog.Logger
	teams  services.ITeamService
	status services.IStatusService
}

func NewTeamHandler(log *slog.Logger, teams services.ITeamService, status services.IStatusService) *TeamHandler {
	return &TeamHandler{log: log, teams: teams, status: status}
}

type createTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type teamResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"createdBy"`
}

func toTeamResponse(t domain.Team) teamResponse {
	return teamResponse{ID: t.ID, Name: t.Name, Description: t.Description, CreatedBy: t.CreatedBy}
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	team, err := h.teams.Create(r.Context(), identity.UserID, req.Name, req.Description)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusCreated, toTeamResponse(team))
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	teams, err := h.teams.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, lo.Map(teams, func(t domain.Team, _ int) teamResponse {
		return toTeamResponse(t)
	}))
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	team, err := h.teams.Get(r.Context(), identity.UserID, mux.Vars(r)["teamId"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, toTeamResponse(team))
}

func (h *TeamHandler) Members(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	members, err := h.teams.Members(r.Context(), identity.UserID, mux.Vars(r)["teamId"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, lo.Map(members, func(m domain.Membership, _ int) event.MemberPayload {
		return event.ToMemberPayload(m)
	}))
}

type addMemberRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	membership, err := h.teams.AddMember(r.Context(), identity.UserID,
		mux.Vars(r)["teamId"], req.UserID, domain.Role(req.Role))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusCreated, event.ToMemberPayload(membership))
}

func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	vars := mux.Vars(r)
	if err := h.teams.RemoveMember(r.Context(), identity.UserID, vars["teamId"], vars["userId"]); err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (h *TeamHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	var req changeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	vars := mux.Vars(r)
	err = h.teams.ChangeRole(r.Context(), identity.UserID, vars["teamId"], vars["userId"], domain.Role(req.Role))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus is the REST alternative to the realtime status_update event.
// Both go through the same service path.
func (h *TeamHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	err = h.status.Update(r.Context(), identity.UserID, mux.Vars(r)["teamId"], domain.MemberStatus(req.Status))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, nil)
}
