package handler

import (
	"encoding/json"
	"net/http"

	"edu_rewards/internal/api/middleware"
	"edu_rewards/internal/app/service"
	"edu_rewards/internal/common"

	"github.com/go-chi/chi/v5"
)

type CertificateHandler struct {
	certService *service.CertificateService
}

func NewCertificateHandler(cs *service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certService: cs}
}

func (h *CertificateHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/me", h.listMine)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.AdminOnly)
		admin.Post("/", h.issue)
		admin.Post("/{id}/revoke", h.revoke)
		admin.Get("/student/{studentID}", h.listByStudent)
	})
}

func (h *CertificateHandler) issue(w http.ResponseWriter, r *http.Request) {
	var req service.IssueCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	cert, err := h.certService.Issue(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, cert)
}

func (h *CertificateHandler) revoke(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.certService.Revoke(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"result": "revoked"})
}

func (h *CertificateHandler) listMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	certs, err := h.certService.ListByStudent(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, certs)
}

func (h *CertificateHandler) listByStudent(w http.ResponseWriter, r *http.Request) {
	certs, err := h.certService.ListByStudent(r.Context(), chi.URLParam(r, "studentID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, certs)
}
