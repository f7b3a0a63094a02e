package reports

import "time"

type ComplianceReport struct {
	Timestamp           time.Time             `json:"timestamp"`
	DataSubjectRequests RequestSummary        `json:"data_subject_requests"`
	ProtectionMeasures  ProtectionMeasures    `json:"data_protection_measures"`
	BreachResponse      BreachResponseSummary `json:"breach_response"`
	ComplianceStatus    string                `json:"compliance_status"`
	NextAudit           string                `json:"next_audit"`
}

type RequestSummary struct {
	AccessRequests        int    `json:"access_requests"`
	ErasureRequests       int    `json:"erasure_requests"`
	RectificationRequests int    `json:"rectification_requests"`
	AverageResponseTime   string `json:"average_response_time"`
	ComplianceRate        string `json:"compliance_rate"`
}

type ProtectionMeasures struct {
	EncryptionAtRest    string `json:"encryption_at_rest"`
	EncryptionInTransit string `json:"encryption_in_transit"`
	AccessControls      string `json:"access_controls"`
	DataMinimization    string `json:"data_minimization"`
	PurposeLimitation   string `json:"purpose_limitation"`
}

type BreachResponseSummary struct {
	DetectionTime        string `json:"detection_time"`
	IncidentsThisMonth   int    `json:"incidents_this_month"`
	ResponseProcedures   string `json:"response_procedures"`
	NotificationChannels string `json:"notification_channels"`
}

// Document pairs a report with the file name it would be exported under.
type Document struct {
	FileName string           `json:"fileName"`
	Report   ComplianceReport `json:"privacy_compliance_report"`
}
