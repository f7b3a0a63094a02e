package reports

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the report onto w. Nothing touches the filesystem.
func WritePDF(w io.Writer, doc Document) error {
	report := doc.Report
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Privacy Compliance Report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Privacy Compliance Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", report.Timestamp.Format("2006-01-02 15:04:05")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", report.ComplianceStatus))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Next audit: %s", report.NextAudit))
	pdf.Ln(10)

	section(pdf, "Data subject requests", [][2]string{
		{"Access requests", fmt.Sprint(report.DataSubjectRequests.AccessRequests)},
		{"Erasure requests", fmt.Sprint(report.DataSubjectRequests.ErasureRequests)},
		{"Rectification requests", fmt.Sprint(report.DataSubjectRequests.RectificationRequests)},
		{"Average response time", report.DataSubjectRequests.AverageResponseTime},
		{"Compliance rate", report.DataSubjectRequests.ComplianceRate},
	})
	section(pdf, "Data protection measures", [][2]string{
		{"Encryption at rest", report.ProtectionMeasures.EncryptionAtRest},
		{"Encryption in transit", report.ProtectionMeasures.EncryptionInTransit},
		{"Access controls", report.ProtectionMeasures.AccessControls},
		{"Data minimization", report.ProtectionMeasures.DataMinimization},
		{"Purpose limitation", report.ProtectionMeasures.PurposeLimitation},
	})
	section(pdf, "Breach response", [][2]string{
		{"Detection time", report.BreachResponse.DetectionTime},
		{"Incidents this month", fmt.Sprint(report.BreachResponse.IncidentsThisMonth)},
		{"Response procedures", report.BreachResponse.ResponseProcedures},
		{"Notification channels", report.BreachResponse.NotificationChannels},
	})

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string, rows [][2]string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.Cell(70, 7, row[0])
		pdf.Cell(0, 7, row[1])
		pdf.Ln(7)
	}
	pdf.Ln(4)
}
