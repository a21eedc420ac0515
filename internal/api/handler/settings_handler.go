package handler

import (
	"encoding/json"
	"net/http"

	"edu_rewards/internal/api/middleware"
	"edu_rewards/internal/app/service"
	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(ss *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: ss}
}

func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Use(middleware.AdminOnly)
	r.Get("/", h.get)
	r.Put("/", h.update)
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var settings model.AdminSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.settingsService.Update(r.Context(), &settings); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, settings)
}
