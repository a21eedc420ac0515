package handler

import (
	"net/http"
	"strconv"

	"edu_rewards/internal/app/service"
	"edu_rewards/internal/common"

	"github.com/go-chi/chi/v5"
)

type ActivityHandler struct {
	catalogService *service.CatalogService
}

func NewActivityHandler(cs *service.CatalogService) *ActivityHandler {
	return &ActivityHandler{catalogService: cs}
}

func (h *ActivityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{idOrSlug}", h.get)
}

func (h *ActivityHandler) list(w http.ResponseWriter, r *http.Request) {
	activities, err := h.catalogService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) get(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "idOrSlug")

	if id, err := strconv.Atoi(param); err == nil {
		activity, err := h.catalogService.Lookup(r.Context(), id)
		if err != nil {
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
			return
		}
		common.RespondWithJSON(w, http.StatusOK, activity)
		return
	}

	activity, err := h.catalogService.LookupBySlug(r.Context(), param)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, activity)
}
