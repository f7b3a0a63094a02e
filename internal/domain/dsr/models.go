package dsr

import (
	"encoding/json"
	"time"
)

type Request struct {
	Kind      Kind   `json:"kind"`
	SubjectID string `json:"subjectId"`
}

// Result is one of AccessResult, ErasureResult or RectificationResult.
type Result interface {
	Kind() Kind
	Outcome() Status
	isResult()
}

type AccessResult struct {
	Status         Status `json:"status"`
	ExportFileName string `json:"exportFileName"`
}

type ErasureResult struct {
	Status             Status    `json:"status"`
	SubjectID          string    `json:"subjectId"`
	Timestamp          time.Time `json:"timestamp"`
	DeletedCategories  []string  `json:"deletedCategories"`
	RetainedCategories []string  `json:"retainedCategories"`
	Method             string    `json:"method"`
	VerificationHash   string    `json:"verificationHash"`
}

type RectificationResult struct {
	Status               Status    `json:"status"`
	SubjectID            string    `json:"subjectId"`
	Timestamp            time.Time `json:"timestamp"`
	UpdatedFields        []string  `json:"updatedFields"`
	VerificationRequired bool      `json:"verificationRequired"`
}

func (r ErasureResult) MarshalJSON() ([]byte, error) {
	type plain ErasureResult
	return json.Marshal(struct {
		plain
		Timestamp string `json:"timestamp"`
	}{plain(r), ResultTimestamp(r.Timestamp)})
}

func (r *ErasureResult) UnmarshalJSON(data []byte) error {
	type plain ErasureResult
	aux := struct {
		*plain
		Timestamp string `json:"timestamp"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return setResultTimestamp(&r.Timestamp, aux.Timestamp)
}

func (r RectificationResult) MarshalJSON() ([]byte, error) {
	type plain RectificationResult
	return json.Marshal(struct {
		plain
		Timestamp string `json:"timestamp"`
	}{plain(r), ResultTimestamp(r.Timestamp)})
}

func (r *RectificationResult) UnmarshalJSON(data []byte) error {
	type plain RectificationResult
	aux := struct {
		*plain
		Timestamp string `json:"timestamp"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return setResultTimestamp(&r.Timestamp, aux.Timestamp)
}

func setResultTimestamp(dst *time.Time, raw string) error {
	if raw == "" {
		*dst = time.Time{}
		return nil
	}
	ts, err := ParseResultTimestamp(raw)
	if err != nil {
		return err
	}
	*dst = ts
	return nil
}

func (AccessResult) Kind() Kind        { return KindAccess }
func (ErasureResult) Kind() Kind       { return KindErasure }
func (RectificationResult) Kind() Kind { return KindRectification }

func (r AccessResult) Outcome() Status        { return r.Status }
func (r ErasureResult) Outcome() Status       { return r.Status }
func (r RectificationResult) Outcome() Status { return r.Status }

func (AccessResult) isResult()        {}
func (ErasureResult) isResult()       {}
func (RectificationResult) isResult() {}

// DisplayHash is the truncated form of the verification hash shown in narration.
// VerificationHash stays the canonical value.
func (r ErasureResult) DisplayHash() string {
	return TruncateHash(r.VerificationHash)
}

type ExportBundle struct {
	ID           string           `json:"id"`
	SubjectID    string           `json:"subjectId"`
	FileName     string           `json:"fileName"`
	GeneratedAt  time.Time        `json:"generatedAt"`
	PersonalInfo map[string]any   `json:"personal_info"`
	Bookings     []map[string]any `json:"bookings"`
	Payments     []map[string]any `json:"payments"`
}
