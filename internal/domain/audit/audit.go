package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ActionDSRProcessed    = "dsr.processed"
	ActionDSRRejected     = "dsr.rejected"
	ActionExportIssued    = "dsr.export.issued"
	ActionBreachChecked   = "breach.checked"
	ActionReportGenerated = "report.generated"
	ActionOperatorLogin   = "auth.login"
)

const (
	EntityDataSubject = "data_subject"
	EntityBreachCheck = "breach_check"
	EntityReport      = "compliance_report"
	EntityOperator    = "operator"
)

type Event struct {
	ID          string          `json:"id"`
	ActorID     string          `json:"actorId"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entityType"`
	SubjectHash string          `json:"subjectHash,omitempty"`
	RequestID   string          `json:"requestId"`
	IP          string          `json:"ip"`
	CreatedAt   time.Time       `json:"createdAt"`
	Details     json.RawMessage `json:"details,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	ActorID    string
}

type Recorder interface {
	Record(ctx context.Context, evt Event) error
}

// HashSubject keeps raw subject identifiers out of the audit trail.
func HashSubject(subjectID string) string {
	if subjectID == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(subjectID))
	return hex.EncodeToString(sum[:])
}

func NewEvent(action, entityType, subjectID string, details any) (Event, error) {
	evt := Event{
		ID:          uuid.NewString(),
		Action:      action,
		EntityType:  entityType,
		SubjectHash: HashSubject(subjectID),
		CreatedAt:   time.Now().UTC(),
	}
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return Event{}, fmt.Errorf("marshal audit details: %w", err)
		}
		evt.Details = payload
	}
	return evt, nil
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Record(ctx context.Context, evt Event) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (id, actor_id, action, entity_type, subject_hash, request_id, ip, details_json, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
  `, evt.ID, evt.ActorID, evt.Action, evt.EntityType, evt.SubjectHash, evt.RequestID, evt.IP, []byte(evt.Details), evt.CreatedAt)
	return err
}

func (s *Store) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := buildBaseQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) List(ctx context.Context, filter Filter, limit, offset int) ([]Event, error) {
	query, args := buildBaseQuery("SELECT id, actor_id, action, entity_type, subject_hash, request_id, ip, details_json, created_at", filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		var details []byte
		if err := rows.Scan(&evt.ID, &evt.ActorID, &evt.Action, &evt.EntityType, &evt.SubjectHash, &evt.RequestID, &evt.IP, &details, &evt.CreatedAt); err != nil {
			return nil, err
		}
		evt.Details = details
		out = append(out, evt)
	}
	return out, rows.Err()
}

func buildBaseQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM audit_events WHERE 1=1"
	var args []any
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		query += fmt.Sprintf(" AND actor_id = $%d", len(args))
	}
	return query, args
}

// LogRecorder writes audit events to a structured logger when no database is configured.
type LogRecorder struct {
	Logger *slog.Logger
}

func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogRecorder{Logger: logger}
}

func (r *LogRecorder) Record(ctx context.Context, evt Event) error {
	r.Logger.LogAttrs(ctx, slog.LevelInfo, "audit",
		slog.String("id", evt.ID),
		slog.String("action", evt.Action),
		slog.String("entityType", evt.EntityType),
		slog.String("subjectHash", evt.SubjectHash),
		slog.String("actorId", evt.ActorID),
		slog.String("requestId", evt.RequestID),
		slog.String("ip", evt.IP),
		slog.String("details", string(evt.Details)),
	)
	return nil
}
