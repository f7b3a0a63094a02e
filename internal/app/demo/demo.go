package demo

import (
	"fmt"
	"io"
	"strings"
	"time"

	"dataprotection/internal/domain/breach"
	"dataprotection/internal/domain/dsr"
	"dataprotection/internal/domain/reports"
)

const (
	bannerWidth = 50
	breachWidth = 35
)

type SampleRequest struct {
	Kind      string
	SubjectID string
}

// SampleRequests is the fixed sequence a demo run processes.
var SampleRequests = []SampleRequest{
	{Kind: "access", SubjectID: "user123"},
	{Kind: "erasure", SubjectID: "user456"},
	{Kind: "rectification", SubjectID: "user789"},
}

type Summary struct {
	RunAt   time.Time
	Results []dsr.Result
	Breach  breach.Status
	Report  reports.Document
}

// Narrator prints progress around the processor, breach check and report
// builder. The components it wraps never write output themselves.
type Narrator struct {
	out       io.Writer
	processor *dsr.Processor
	reports   *reports.Service
	err       error
}

func NewNarrator(w io.Writer, runAt time.Time) *Narrator {
	return &Narrator{
		out:       w,
		processor: dsr.NewProcessor(runAt),
		reports:   reports.NewService(runAt),
	}
}

func (n *Narrator) printf(format string, args ...any) {
	if n.err != nil {
		return
	}
	_, n.err = fmt.Fprintf(n.out, format, args...)
}

// Err reports the first write failure.
func (n *Narrator) Err() error {
	return n.err
}

func (n *Narrator) Start() {
	n.printf("🛡️  Data Protection Automation Started\n")
	n.printf("%s\n", strings.Repeat("=", bannerWidth))
}

func (n *Narrator) Process(kind, subjectID string) (dsr.Result, error) {
	n.printf("\n📋 Processing %s request for user %s\n", strings.ToUpper(kind), subjectID)

	result, err := n.processor.ProcessNamed(kind, subjectID)
	if err != nil {
		return nil, err
	}

	switch res := result.(type) {
	case dsr.AccessResult:
		n.printf("   Collecting user data for %s...\n", subjectID)
		n.printf("   ✅ Data export created: %s\n", res.ExportFileName)
		n.printf("   Response time: < %d hours (target met)\n", int(dsr.AccessResponseTarget.Hours()))
	case dsr.ErasureResult:
		n.printf("   Processing data erasure for %s...\n", subjectID)
		n.printf("   Checking legal retention requirements...\n")
		n.printf("   ✅ Data erasure completed\n")
		n.printf("   Verification hash: %s...\n", res.DisplayHash())
	case dsr.RectificationResult:
		n.printf("   Processing data rectification for %s...\n", subjectID)
		n.printf("   Verifying user identity...\n")
		n.printf("   ✅ Data rectification initiated\n")
		n.printf("   Status: Pending verification\n")
	}
	return result, nil
}

func (n *Narrator) CheckBreach() breach.Status {
	n.printf("\n🚨 BREACH DETECTION SIMULATION\n")
	n.printf("%s\n", strings.Repeat("-", breachWidth))
	for _, check := range breach.Checks {
		n.printf("   %s...\n", check)
	}

	status := breach.Check()
	if status.BreachDetected {
		n.printf("\n   ⚠️  BREACH DETECTED\n")
		return status
	}
	n.printf("\n   ✅ NO BREACHES DETECTED\n")
	n.printf("   All data protection measures operational\n")
	n.printf("   Continuous monitoring %s\n", status.MonitoringStatus)
	return status
}

func (n *Narrator) Report() reports.Document {
	doc := n.reports.Compliance()
	n.printf("\n📄 Privacy compliance report generated\n")
	n.printf("   Report file: %s\n", doc.FileName)
	n.printf("   Compliance status: ✅ %s\n", doc.Report.ComplianceStatus)
	return doc
}

func (n *Narrator) Finish() {
	n.printf("\n🎉 Data Protection Automation Complete\n")
	n.printf("✅ All privacy compliance measures operational\n")
}

// Run performs the fixed demo sequence against runAt and narrates it to w.
func Run(w io.Writer, runAt time.Time) (Summary, error) {
	n := NewNarrator(w, runAt)
	summary := Summary{RunAt: runAt}

	n.Start()
	for _, req := range SampleRequests {
		result, err := n.Process(req.Kind, req.SubjectID)
		if err != nil {
			return summary, fmt.Errorf("process %s request for %s: %w", req.Kind, req.SubjectID, err)
		}
		summary.Results = append(summary.Results, result)
	}
	summary.Breach = n.CheckBreach()
	summary.Report = n.Report()
	n.Finish()

	if err := n.Err(); err != nil {
		return summary, fmt.Errorf("write narration: %w", err)
	}
	return summary, nil
}
