package handler

import (
	"encoding/json"
	"net/http"

	"user_hub/internal/app/service"
	"user_hub/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register/", h.register)
	r.Post("/login/", h.login)
	r.Get("/verify-email/{userID}/{token}", h.verifyEmail)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

// login accepts the password grant as a form post: username (the email)
// and password.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid form payload: "+err.Error())
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	result, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	token := chi.URLParam(r, "token")

	user, err := h.userService.VerifyEmail(r.Context(), userID, token)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
