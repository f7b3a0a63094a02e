package breach

const MonitoringActive = "active"

type Status struct {
	BreachDetected   bool   `json:"breachDetected"`
	MonitoringStatus string `json:"monitoringStatus"`
}

// Checks names the monitoring passes a breach check reports on.
var Checks = []string{
	"Monitoring data access patterns",
	"Checking for unauthorized access",
	"Validating encryption status",
	"Scanning for anomalies",
}

// Check never detects a breach; there is no monitoring backend behind it.
func Check() Status {
	return Status{BreachDetected: false, MonitoringStatus: MonitoringActive}
}
