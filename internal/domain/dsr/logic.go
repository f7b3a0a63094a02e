package dsr

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	fileDateLayout        = "20060102"
	resultTimestampLayout = "2006-01-02T15:04:05"
)

func ExportFileName(subjectID string, runAt time.Time) string {
	return fmt.Sprintf("user_data_export_%s_%s.json", subjectID, runAt.Format(fileDateLayout))
}

// VerificationHash returns the lowercase hex SHA-256 of the subject id followed
// by the run timestamp.
func VerificationHash(subjectID string, runAt time.Time) string {
	sum := sha256.Sum256([]byte(subjectID + HashTimestamp(runAt)))
	return hex.EncodeToString(sum[:])
}

// HashTimestamp renders runAt as "2006-01-02 15:04:05" with a six digit
// fractional part only when the microsecond component is non-zero.
func HashTimestamp(runAt time.Time) string {
	return wallClock(runAt, "2006-01-02 15:04:05")
}

// ResultTimestamp is the zone-less "2006-01-02T15:04:05[.000000]" form result
// timestamps use on the wire.
func ResultTimestamp(runAt time.Time) string {
	return wallClock(runAt, resultTimestampLayout)
}

// ParseResultTimestamp reads a ResultTimestamp back as local wall-clock time.
func ParseResultTimestamp(raw string) (time.Time, error) {
	return time.ParseInLocation(resultTimestampLayout, raw, time.Local)
}

func wallClock(t time.Time, layout string) string {
	base := t.Format(layout)
	if micros := t.Nanosecond() / int(time.Microsecond); micros != 0 {
		return fmt.Sprintf("%s.%06d", base, micros)
	}
	return base
}

func TruncateHash(hash string) string {
	if len(hash) <= DisplayHashLength {
		return hash
	}
	return hash[:DisplayHashLength]
}

func BuildExportBundle(exportID, subjectID string, runAt time.Time) ExportBundle {
	return ExportBundle{
		ID:          exportID,
		SubjectID:   subjectID,
		FileName:    ExportFileName(subjectID, runAt),
		GeneratedAt: runAt,
		PersonalInfo: map[string]any{
			"name":  "User Name",
			"email": "user@example.com",
		},
		Bookings: []map[string]any{
			{"id": 1, "service": "Haircut", "date": "2024-09-14"},
		},
		Payments: []map[string]any{
			{"id": 1, "amount": 2500, "date": "2024-09-14"},
		},
	}
}
