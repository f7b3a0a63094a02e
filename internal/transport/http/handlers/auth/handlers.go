package authhandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"dataprotection/internal/domain/audit"
	"dataprotection/internal/domain/auth"
	"dataprotection/internal/transport/http/api"
	"dataprotection/internal/transport/http/middleware"
	"dataprotection/internal/transport/http/shared"
)

type LoginService interface {
	Login(ctx context.Context, email, password string) (auth.Session, error)
}

type Handler struct {
	Service LoginService
	Audit   audit.Recorder
}

func NewHandler(service LoginService, recorder audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: recorder}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("email", payload.Email, "is required")
	validator.Required("password", payload.Password, "is required")
	validator.MaxLength("email", payload.Email, 254)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	session, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	switch {
	case errors.Is(err, auth.ErrLoginDisabled):
		api.Fail(w, http.StatusServiceUnavailable, "login_disabled", "operator login is not configured", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		shared.RecordAudit(r, h.Audit, audit.ActionOperatorLogin, audit.EntityOperator, "", map[string]string{"outcome": "denied"})
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		slog.Warn("operator login failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	shared.RecordAudit(r, h.Audit, audit.ActionOperatorLogin, audit.EntityOperator, "", map[string]string{
		"outcome":    "granted",
		"operatorId": auth.OperatorID(strings.TrimSpace(payload.Email)),
		"role":       session.Role,
	})
	api.Success(w, session, middleware.GetRequestID(r.Context()))
}
