package reportshandler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dataprotection/internal/domain/audit"
	"dataprotection/internal/domain/auth"
	"dataprotection/internal/domain/reports"
	"dataprotection/internal/transport/http/api"
	"dataprotection/internal/transport/http/middleware"
	"dataprotection/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
	Audit   audit.Recorder
	Perms   middleware.PermissionStore
}

func NewHandler(service *reports.Service, recorder audit.Recorder, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Audit: recorder, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/compliance", h.handleCompliance)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/compliance.pdf", h.handleCompliancePDF)
	})
}

func (h *Handler) handleCompliance(w http.ResponseWriter, r *http.Request) {
	doc := h.Service.Compliance()
	shared.RecordAudit(r, h.Audit, audit.ActionReportGenerated, audit.EntityReport, "", map[string]string{
		"fileName": doc.FileName,
		"format":   "json",
	})
	api.Success(w, doc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCompliancePDF(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Service.WriteCompliancePDF(&buf); err != nil {
		slog.Warn("compliance pdf render failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}
	fileName := h.Service.PDFFileName()
	shared.RecordAudit(r, h.Audit, audit.ActionReportGenerated, audit.EntityReport, "", map[string]string{
		"fileName": fileName,
		"format":   "pdf",
	})
	api.Attachment(w, "application/pdf", fileName, buf.Bytes())
}
