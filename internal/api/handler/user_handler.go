package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"user_hub/internal/api/middleware"
	"user_hub/internal/app/service"
	"user_hub/internal/common"
	"user_hub/internal/common/security"
	"user_hub/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)

	r.With(middleware.RequireOperation(security.OpUserList)).Get("/", h.list)
	r.With(middleware.RequireOperation(security.OpUserWrite)).Post("/", h.create)
	r.With(middleware.RequireOperation(security.OpUserRead)).Get("/{userID}", h.get)
	r.With(middleware.RequireOperation(security.OpUserWrite)).Put("/{userID}", h.update)
	r.With(middleware.RequireOperation(security.OpUserDelete)).Delete("/{userID}", h.delete)
	r.With(middleware.RequireOperation(security.OpSetProfessional)).Put("/{userID}/set-professional/{status}", h.setProfessional)
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	skip := 0
	limit := config.AppConfig.DefaultPageLimit

	if skipStr := r.URL.Query().Get("skip"); skipStr != "" {
		parsed, err := strconv.Atoi(skipStr)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Skip must be an integer")
			return
		}
		skip = parsed
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Limit must be an integer")
			return
		}
		limit = parsed
	}

	page, err := h.userService.List(r.Context(), skip, limit)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, page)
}

func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.userService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.userService.Update(r.Context(), chi.URLParam(r, "userID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) setProfessional(w http.ResponseWriter, r *http.Request) {
	status, err := strconv.ParseBool(chi.URLParam(r, "status"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Status must be true or false")
		return
	}

	user, err := h.userService.SetProfessional(r.Context(), chi.URLParam(r, "userID"), status)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
