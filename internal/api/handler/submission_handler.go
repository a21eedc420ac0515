package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"edu_rewards/internal/api/middleware"
	"edu_rewards/internal/app/service"
	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
	approvalService   *service.ApprovalService
}

func NewSubmissionHandler(ss *service.SubmissionService, as *service.ApprovalService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss, approvalService: as}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator) // All submission routes require auth

	r.Post("/", h.submit)
	r.Get("/me", h.listMine)
	r.Get("/{activityID}/status", h.getStatus)
	r.Post("/{activityID}/{studentID}/redeem", h.markRedeemed)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.AdminOnly)
		admin.Get("/pending", h.listPending)
		admin.Post("/{activityID}/{studentID}/approve", h.approve)
		admin.Post("/{activityID}/{studentID}/reject", h.reject)
		admin.Post("/approve-all", h.bulkApprove)
	})
}

func (h *SubmissionHandler) submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	// Students only submit for themselves; the identity comes from the token.
	req.StudentID = userID

	sub, err := h.submissionService.Submit(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, sub)
}

func (h *SubmissionHandler) listMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	subs, err := h.submissionService.ListByStudent(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, subs)
}

func (h *SubmissionHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	activityID, err := strconv.Atoi(chi.URLParam(r, "activityID"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid activity id")
		return
	}

	status, err := h.submissionService.GetStatus(r.Context(), activityID, userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

func (h *SubmissionHandler) listPending(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissionService.ListPending(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, subs)
}

func (h *SubmissionHandler) approve(w http.ResponseWriter, r *http.Request) {
	activityID, studentID, ok := submissionKeyParams(w, r)
	if !ok {
		return
	}

	outcome, err := h.approvalService.ApproveOne(r.Context(), activityID, studentID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	resp := map[string]interface{}{
		"submission": outcome.Submission,
		"consistent": outcome.Consistent(),
	}
	if outcome.Profile != nil {
		resp["balance"] = outcome.Profile.Tokens
	}
	if outcome.CreditErr != nil {
		resp["credit_error"] = outcome.CreditErr.Error()
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *SubmissionHandler) reject(w http.ResponseWriter, r *http.Request) {
	activityID, studentID, ok := submissionKeyParams(w, r)
	if !ok {
		return
	}

	if err := h.approvalService.RejectOne(r.Context(), activityID, studentID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"result": "rejected"})
}

func (h *SubmissionHandler) markRedeemed(w http.ResponseWriter, r *http.Request) {
	activityID, studentID, ok := submissionKeyParams(w, r)
	if !ok {
		return
	}
	// Students redeem their own approvals; admins may redeem on behalf.
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetUserRoleFromContext(r.Context())
	if role != model.RoleAdmin && userID != studentID {
		common.RespondWithError(w, http.StatusForbidden, "Cannot redeem another student's submission")
		return
	}

	if err := h.submissionService.MarkRedeemed(r.Context(), activityID, studentID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"result": "redeemed"})
}

func (h *SubmissionHandler) bulkApprove(w http.ResponseWriter, r *http.Request) {
	pending, err := h.submissionService.ListPending(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	results := h.approvalService.BulkApprove(r.Context(), pending)
	approved := 0
	for _, res := range results {
		if res.Err == nil {
			approved++
		}
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"requested": len(results),
		"approved":  approved,
	})
}

func submissionKeyParams(w http.ResponseWriter, r *http.Request) (int, string, bool) {
	activityID, err := strconv.Atoi(chi.URLParam(r, "activityID"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid activity id")
		return 0, "", false
	}
	studentID := chi.URLParam(r, "studentID")
	if studentID == "" {
		common.RespondWithError(w, http.StatusBadRequest, "Missing student id")
		return 0, "", false
	}
	return activityID, studentID, true
}
