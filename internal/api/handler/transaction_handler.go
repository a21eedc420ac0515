package handler

import (
	"net/http"
	"strconv"

	"edu_rewards/internal/api/middleware"
	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type TransactionHandler struct {
	txRepo repository.TransactionRepository
}

func NewTransactionHandler(txRepo repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{txRepo: txRepo}
}

func (h *TransactionHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Use(middleware.AdminOnly)
	r.Get("/", h.list)
	r.Get("/account/{account}", h.listByAccount)
}

func (h *TransactionHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}

	txs, err := h.txRepo.List(r.Context(), limit, offset)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, txs)
}

func (h *TransactionHandler) listByAccount(w http.ResponseWriter, r *http.Request) {
	txs, err := h.txRepo.ListByAccount(r.Context(), chi.URLParam(r, "account"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, txs)
}
