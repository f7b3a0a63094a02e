package dsrhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"dataprotection/internal/domain/audit"
	"dataprotection/internal/domain/auth"
	"dataprotection/internal/domain/dsr"
	cryptoutil "dataprotection/internal/platform/crypto"
	"dataprotection/internal/transport/http/api"
	"dataprotection/internal/transport/http/middleware"
	"dataprotection/internal/transport/http/shared"
)

type SubjectRequestRecorder interface {
	RecordSubjectRequest(kind, outcome string)
}

type Handler struct {
	Processor *dsr.Processor
	Crypto    *cryptoutil.Service
	Audit     audit.Recorder
	Metrics   SubjectRequestRecorder
	Perms     middleware.PermissionStore
}

func NewHandler(processor *dsr.Processor, crypto *cryptoutil.Service, recorder audit.Recorder, metrics SubjectRequestRecorder, perms middleware.PermissionStore) *Handler {
	return &Handler{Processor: processor, Crypto: crypto, Audit: recorder, Metrics: metrics, Perms: perms}
}

type submitRequest struct {
	Kind      string `json:"kind"`
	SubjectID string `json:"subjectId"`
}

type submitResponse struct {
	Kind   dsr.Kind   `json:"kind"`
	Status dsr.Status `json:"status"`
	Result dsr.Result `json:"result"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dsr", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermDSRProcess, h.Perms)).Post("/", h.handleSubmit)
		r.With(middleware.RequirePermission(auth.PermDSRProcess, h.Perms)).Post("/{kind}/{subjectID}", h.handleSubmitPath)
		r.With(middleware.RequirePermission(auth.PermDSRExport, h.Perms)).Get("/access/{subjectID}/export", h.handleExport)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request payload too large", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	h.process(w, r, payload.Kind, payload.SubjectID)
}

func (h *Handler) handleSubmitPath(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, chi.URLParam(r, "kind"), chi.URLParam(r, "subjectID"))
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request, rawKind, subjectID string) {
	validator := shared.NewValidator()
	validator.Required("kind", rawKind, "is required")
	validator.SubjectID("subjectId", subjectID)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	kind, err := dsr.ParseKind(rawKind)
	if err != nil {
		h.recordOutcome("unknown", "rejected")
		shared.RecordAudit(r, h.Audit, audit.ActionDSRRejected, audit.EntityDataSubject, subjectID, map[string]string{
			"kind": strings.TrimSpace(rawKind),
		})
		api.Fail(w, http.StatusBadRequest, "invalid_request_kind", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Processor.ProcessRequest(dsr.Request{Kind: kind, SubjectID: subjectID})
	if err != nil {
		h.recordOutcome(kind.String(), "failed")
		if errors.Is(err, dsr.ErrInvalidRequestKind) {
			api.Fail(w, http.StatusBadRequest, "invalid_request_kind", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "dsr_failed", "failed to process request", middleware.GetRequestID(r.Context()))
		return
	}

	h.recordOutcome(kind.String(), string(result.Outcome()))
	shared.RecordAudit(r, h.Audit, audit.ActionDSRProcessed, audit.EntityDataSubject, subjectID, auditDetails(result))
	api.Success(w, submitResponse{Kind: kind, Status: result.Outcome(), Result: result}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")
	validator := shared.NewValidator()
	validator.SubjectID("subjectId", subjectID)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	bundle := dsr.BuildExportBundle(uuid.NewString(), subjectID, h.Processor.RunAt())
	body, sealed, err := h.Crypto.SealJSON(bundle)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build export", middleware.GetRequestID(r.Context()))
		return
	}

	shared.RecordAudit(r, h.Audit, audit.ActionExportIssued, audit.EntityDataSubject, subjectID, map[string]any{
		"exportId": bundle.ID,
		"sealed":   sealed,
	})
	h.recordOutcome(dsr.KindAccess.String(), "exported")

	w.Header().Set("X-Export-Id", bundle.ID)
	if sealed {
		w.Header().Set("X-Export-Encrypted", "true")
		api.Attachment(w, "application/octet-stream", bundle.FileName+".enc", body)
		return
	}
	api.Attachment(w, "application/json", bundle.FileName, body)
}

func (h *Handler) recordOutcome(kind, outcome string) {
	if h.Metrics != nil {
		h.Metrics.RecordSubjectRequest(kind, outcome)
	}
}

func auditDetails(result dsr.Result) map[string]any {
	details := map[string]any{
		"kind":   result.Kind().String(),
		"status": string(result.Outcome()),
	}
	switch res := result.(type) {
	case dsr.ErasureResult:
		details["verificationHash"] = res.VerificationHash
		details["method"] = res.Method
	case dsr.RectificationResult:
		details["updatedFields"] = res.UpdatedFields
	}
	return details
}
