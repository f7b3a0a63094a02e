package reports

import (
	"io"
	"time"
)

type Service struct {
	runAt time.Time
}

func NewService(runAt time.Time) *Service {
	return &Service{runAt: runAt}
}

func (s *Service) Compliance() Document {
	return BuildCompliance(s.runAt)
}

func (s *Service) PDFFileName() string {
	return PDFFileName(s.runAt)
}

func (s *Service) WriteCompliancePDF(w io.Writer) error {
	return WritePDF(w, s.Compliance())
}
