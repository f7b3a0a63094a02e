package breachhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dataprotection/internal/domain/audit"
	"dataprotection/internal/domain/auth"
	"dataprotection/internal/domain/breach"
	"dataprotection/internal/transport/http/api"
	"dataprotection/internal/transport/http/middleware"
	"dataprotection/internal/transport/http/shared"
)

type CheckRecorder interface {
	RecordBreachCheck(detected bool)
}

type Handler struct {
	Audit   audit.Recorder
	Metrics CheckRecorder
	Perms   middleware.PermissionStore
}

func NewHandler(recorder audit.Recorder, metrics CheckRecorder, perms middleware.PermissionStore) *Handler {
	return &Handler{Audit: recorder, Metrics: metrics, Perms: perms}
}

type statusResponse struct {
	breach.Status
	Checks []string `json:"checks"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/breach", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermBreachRead, h.Perms)).Get("/status", h.handleStatus)
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := breach.Check()
	if h.Metrics != nil {
		h.Metrics.RecordBreachCheck(status.BreachDetected)
	}
	shared.RecordAudit(r, h.Audit, audit.ActionBreachChecked, audit.EntityBreachCheck, "", status)

	checks := make([]string, len(breach.Checks))
	copy(checks, breach.Checks)
	api.Success(w, statusResponse{Status: status, Checks: checks}, middleware.GetRequestID(r.Context()))
}
