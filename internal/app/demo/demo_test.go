package demo

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprotection/internal/domain/dsr"
)

var runAt = time.Date(2024, 9, 14, 10, 30, 0, 0, time.UTC)

func TestRunNarratesFixedSequence(t *testing.T) {
	var out bytes.Buffer
	summary, err := Run(&out, runAt)
	require.NoError(t, err)

	require.Len(t, summary.Results, 3)
	assert.Equal(t, dsr.StatusCompleted, summary.Results[0].Outcome())
	assert.Equal(t, dsr.StatusCompleted, summary.Results[1].Outcome())
	assert.Equal(t, dsr.StatusPendingVerification, summary.Results[2].Outcome())
	assert.False(t, summary.Breach.BreachDetected)
	assert.Equal(t, "privacy_compliance_report_20240914.json", summary.Report.FileName)

	text := out.String()
	erasure, ok := summary.Results[1].(dsr.ErasureResult)
	require.True(t, ok)

	ordered := []string{
		"🛡️  Data Protection Automation Started",
		strings.Repeat("=", 50),
		"📋 Processing ACCESS request for user user123",
		"✅ Data export created: user_data_export_user123_20240914.json",
		"Response time: < 72 hours (target met)",
		"📋 Processing ERASURE request for user user456",
		"Verification hash: " + dsr.TruncateHash(erasure.VerificationHash) + "...",
		"📋 Processing RECTIFICATION request for user user789",
		"Status: Pending verification",
		"🚨 BREACH DETECTION SIMULATION",
		"Scanning for anomalies...",
		"✅ NO BREACHES DETECTED",
		"Continuous monitoring active",
		"Report file: privacy_compliance_report_20240914.json",
		"Compliance status: ✅ COMPLIANT",
		"🎉 Data Protection Automation Complete",
		"✅ All privacy compliance measures operational",
	}
	pos := 0
	for _, line := range ordered {
		idx := strings.Index(text[pos:], line)
		require.GreaterOrEqual(t, idx, 0, "missing or out of order: %q", line)
		pos += idx + len(line)
	}

	assert.NotContains(t, text, erasure.VerificationHash, "full hash must not be printed")
}

func TestRunIsDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	_, err := Run(&first, runAt)
	require.NoError(t, err)
	_, err = Run(&second, runAt)
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
}

func TestNarratorRejectsUnknownKind(t *testing.T) {
	var out bytes.Buffer
	n := NewNarrator(&out, runAt)

	_, err := n.Process("portability", "user1")
	require.ErrorIs(t, err, dsr.ErrInvalidRequestKind)
	assert.Contains(t, out.String(), "📋 Processing PORTABILITY request for user user1")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestRunReportsWriteFailure(t *testing.T) {
	summary, err := Run(failingWriter{}, runAt)
	require.Error(t, err)
	assert.Len(t, summary.Results, 3)
}
