package httpapi

import (
	"log/slog"
	"net/http"

	"opsroom/services"
)

type AuthHandler struct {
	log  *slog.Logger
	auth services.IAuthService
}

func NewAuthHandler(log *slog.Logger, auth services.IAuthService) *AuthHandler {
	return &AuthHandler{log: log, auth: auth}
}

type registerRequest struct {
	Email    string `json:"email"`
	CallSign string `json:"callSign"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	CallSign string `json:"callSign"`
	Token    string `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	result, err := h.auth.Register(r.Context(), req.Email, req.CallSign, req.Password)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusCreated, authResponse{
		UserID:   result.User.ID,
		Email:    result.User.Email,
		CallSign: result.User.CallSign,
		Token:    result.Token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respond(w, http.StatusOK, authResponse{
		UserID:   result.User.ID,
		Email:    result.User.Email,
		CallSign: result.User.CallSign,
		Token:    result.Token,
	})
}
