package shared

import (
	"log/slog"
	"net/http"

	"dataprotection/internal/domain/audit"
	"dataprotection/internal/requestctx"
)

// RecordAudit attaches the caller, request id and client address to an audit
// event and hands it to the recorder. Failures are logged, never returned.
func RecordAudit(r *http.Request, recorder audit.Recorder, action, entityType, subjectID string, details any) {
	if recorder == nil {
		return
	}
	evt, err := audit.NewEvent(action, entityType, subjectID, details)
	if err != nil {
		slog.Warn("audit event build failed", "action", action, "err", err)
		return
	}
	if user, ok := requestctx.GetUser(r.Context()); ok {
		evt.ActorID = user.OperatorID
	}
	evt.RequestID = requestctx.GetRequestID(r.Context())
	evt.IP = ClientIP(r)
	if err := recorder.Record(r.Context(), evt); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
