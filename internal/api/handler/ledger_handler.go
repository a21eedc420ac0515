package handler

import (
	"encoding/json"
	"net/http"

	"edu_rewards/internal/api/middleware"
	"edu_rewards/internal/app/service"
	"edu_rewards/internal/common"

	"github.com/go-chi/chi/v5"
)

type LedgerHandler struct {
	ledgerService *service.LedgerService
}

func NewLedgerHandler(ls *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ls}
}

func (h *LedgerHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/me", h.myProfile)
	r.Post("/spend", h.spend)
}

func (h *LedgerHandler) myProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.ledgerService.GetProfile(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, profile)
}

type spendRequest struct {
	Amount int `json:"amount"`
}

func (h *LedgerHandler) spend(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req spendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := h.ledgerService.Debit(r.Context(), userID, req.Amount)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, profile)
}
