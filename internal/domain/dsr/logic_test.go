package dsr

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFileName(t *testing.T) {
	runAt := time.Date(2024, time.September, 14, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "user_data_export_u1_20240914.json", ExportFileName("u1", runAt))
}

func TestHashTimestamp(t *testing.T) {
	whole := time.Date(2024, time.September, 14, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-09-14 10:30:00", HashTimestamp(whole))

	fractional := time.Date(2024, time.September, 14, 10, 30, 0, 123456789, time.UTC)
	assert.Equal(t, "2024-09-14 10:30:00.123456", HashTimestamp(fractional))
}

func TestResultTimestamp(t *testing.T) {
	whole := time.Date(2024, time.September, 14, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-09-14T10:30:00", ResultTimestamp(whole))

	fractional := time.Date(2024, time.September, 14, 10, 30, 0, 120000999, time.UTC)
	assert.Equal(t, "2024-09-14T10:30:00.120000", ResultTimestamp(fractional))

	parsed, err := ParseResultTimestamp("2024-09-14T10:30:00.120000")
	require.NoError(t, err)
	assert.Equal(t, 120000000, parsed.Nanosecond())
	assert.Equal(t, time.Local, parsed.Location())
}

func TestResultJSONTimestamps(t *testing.T) {
	runAt := time.Date(2024, time.September, 14, 10, 30, 0, 123456000, time.Local)
	p := NewProcessor(runAt)

	erasure, err := p.Process(KindErasure, "user456")
	require.NoError(t, err)
	out, err := json.Marshal(erasure)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"timestamp":"2024-09-14T10:30:00.123456"`)
	assert.Contains(t, string(out), `"verificationHash":"`+VerificationHash("user456", runAt)+`"`)

	var decoded ErasureResult
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.True(t, runAt.Equal(decoded.Timestamp))
	assert.Equal(t, []string{"personal_info", "preferences"}, decoded.DeletedCategories)

	rect, err := NewProcessor(runAt.Truncate(time.Second)).Process(KindRectification, "user789")
	require.NoError(t, err)
	out, err = json.Marshal(rect)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"status": "pending_verification",
		"subjectId": "user789",
		"timestamp": "2024-09-14T10:30:00",
		"updatedFields": ["email", "phone"],
		"verificationRequired": true
	}`, string(out))

	var bad RectificationResult
	assert.Error(t, json.Unmarshal([]byte(`{"timestamp":"14/09/2024"}`), &bad))
}

func TestVerificationHashGolden(t *testing.T) {
	runAt := time.Date(2024, time.September, 14, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "ab74e8e3b59c9c38d5401ee063ef9d2207341b6511767bcb5c0b3497c774ac74", VerificationHash("user456", runAt))

	withMicros := time.Date(2024, time.September, 14, 10, 30, 0, 123456000, time.UTC)
	assert.Equal(t, "681b4eebcba367157ddac91adc716c0361b4fa4f2dba4164313920b4e519fc48", VerificationHash("u1", withMicros))
}

func TestTruncateHash(t *testing.T) {
	assert.Equal(t, "ab74e8e3b59c9c38", TruncateHash("ab74e8e3b59c9c38d5401ee063ef9d2207341b6511767bcb5c0b3497c774ac74"))
	assert.Equal(t, "short", TruncateHash("short"))
}

func TestBuildExportBundle(t *testing.T) {
	runAt := time.Date(2024, time.September, 14, 0, 0, 0, 0, time.UTC)
	bundle := BuildExportBundle("exp-1", "user123", runAt)

	assert.Equal(t, "exp-1", bundle.ID)
	assert.Equal(t, "user_data_export_user123_20240914.json", bundle.FileName)
	assert.Len(t, bundle.Bookings, 1)
	assert.Len(t, bundle.Payments, 1)
	assert.Equal(t, "user@example.com", bundle.PersonalInfo["email"])
}
