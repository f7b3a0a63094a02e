package dsr

import (
	"fmt"
	"time"
)

// Processor answers data subject requests relative to a fixed run timestamp.
// It holds no mutable state and is safe for concurrent use.
type Processor struct {
	runAt time.Time
}

func NewProcessor(runAt time.Time) *Processor {
	return &Processor{runAt: runAt}
}

func (p *Processor) RunAt() time.Time {
	return p.runAt
}

func (p *Processor) Process(kind Kind, subjectID string) (Result, error) {
	switch kind {
	case KindAccess:
		return p.access(subjectID), nil
	case KindErasure:
		return p.erasure(subjectID), nil
	case KindRectification:
		return p.rectification(subjectID), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequestKind, kind)
	}
}

func (p *Processor) ProcessRequest(req Request) (Result, error) {
	return p.Process(req.Kind, req.SubjectID)
}

// ProcessNamed parses the wire name of the kind before dispatching.
func (p *Processor) ProcessNamed(kind, subjectID string) (Result, error) {
	parsed, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return p.Process(parsed, subjectID)
}

func (p *Processor) access(subjectID string) AccessResult {
	return AccessResult{
		Status:         StatusCompleted,
		ExportFileName: ExportFileName(subjectID, p.runAt),
	}
}

func (p *Processor) erasure(subjectID string) ErasureResult {
	return ErasureResult{
		Status:             StatusCompleted,
		SubjectID:          subjectID,
		Timestamp:          p.runAt,
		DeletedCategories:  []string{CategoryPersonalInfo, CategoryPreferences},
		RetainedCategories: []string{CategoryTransactionHistory},
		Method:             MethodSecureDeletion,
		VerificationHash:   VerificationHash(subjectID, p.runAt),
	}
}

func (p *Processor) rectification(subjectID string) RectificationResult {
	return RectificationResult{
		Status:               StatusPendingVerification,
		SubjectID:            subjectID,
		Timestamp:            p.runAt,
		UpdatedFields:        []string{FieldEmail, FieldPhone},
		VerificationRequired: true,
	}
}
