package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"qa_platform/internal/app/service"
	"qa_platform/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBadRequest):
			common.RespondWithError(w, http.StatusBadRequest, "Username, email and password are required")
		case errors.Is(err, common.ErrConflict):
			common.RespondWithError(w, http.StatusConflict, "Username or email already exists")
		default:
			common.RespondWithServiceError(w, err)
		}
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBadRequest):
			common.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, common.ErrUnauthorized):
			// Unknown email and wrong password are indistinguishable here.
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			common.RespondWithServiceError(w, err)
		}
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
