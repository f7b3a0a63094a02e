package reports

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runAt = time.Date(2024, time.September, 14, 9, 0, 0, 0, time.UTC)

func TestFileNames(t *testing.T) {
	assert.Equal(t, "privacy_compliance_report_20240914.json", FileName(runAt))
	assert.Equal(t, "privacy_compliance_report_20240914.pdf", PDFFileName(runAt))
}

func TestBuildComplianceLiterals(t *testing.T) {
	doc := BuildCompliance(runAt)

	assert.Equal(t, "privacy_compliance_report_20240914.json", doc.FileName)
	assert.Equal(t, runAt, doc.Report.Timestamp)
	assert.Equal(t, 2, doc.Report.DataSubjectRequests.AccessRequests)
	assert.Equal(t, 1, doc.Report.DataSubjectRequests.ErasureRequests)
	assert.Equal(t, 3, doc.Report.DataSubjectRequests.RectificationRequests)
	assert.Equal(t, "36 hours", doc.Report.DataSubjectRequests.AverageResponseTime)
	assert.Equal(t, "100%", doc.Report.DataSubjectRequests.ComplianceRate)
	assert.Equal(t, "AES-256", doc.Report.ProtectionMeasures.EncryptionAtRest)
	assert.Equal(t, "TLS 1.3", doc.Report.ProtectionMeasures.EncryptionInTransit)
	assert.Equal(t, "Role-based + MFA", doc.Report.ProtectionMeasures.AccessControls)
	assert.Equal(t, 0, doc.Report.BreachResponse.IncidentsThisMonth)
	assert.Equal(t, StatusCompliant, doc.Report.ComplianceStatus)
	assert.Equal(t, "2024-12-14", doc.Report.NextAudit)
}

func TestComplianceJSONShape(t *testing.T) {
	raw, err := json.Marshal(BuildCompliance(runAt))
	require.NoError(t, err)

	var envelope struct {
		Report map[string]json.RawMessage `json:"privacy_compliance_report"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))

	assert.Contains(t, envelope.Report, "data_subject_requests")
	assert.Contains(t, envelope.Report, "data_protection_measures")
	assert.Contains(t, envelope.Report, "breach_response")
	assert.JSONEq(t, `"COMPLIANT"`, string(envelope.Report["compliance_status"]))

	var measures map[string]string
	require.NoError(t, json.Unmarshal(envelope.Report["data_protection_measures"], &measures))
	assert.Equal(t, "Enforced", measures["purpose_limitation"])
}

func TestWriteCompliancePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewService(runAt).WriteCompliancePDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
