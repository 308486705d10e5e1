package services

import (
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/vendora/supplierctl/internal/manifest"
)

// ReportService renders audit manifests into a reviewable PDF.
type ReportService struct {
	manifests *manifest.Writer
}

func NewReportService(manifests *manifest.Writer) *ReportService {
	return &ReportService{manifests: manifests}
}

// ManifestReport writes a PDF summary of the most recent manifests, newest
// first, to the given path.
func (s *ReportService) ManifestReport(path string, limit int) (int, error) {
	entries, err := s.manifests.Recent(limit)
	if err != nil {
		return 0, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Audit Manifest Report")
	pdf.Ln(12)

	if len(entries) == 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(40, 10, "No manifests recorded.")
	}

	for _, m := range entries {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 10, fmt.Sprintf("%s - %s", m.Operation, m.SubjectIdentity))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 10)
		pdf.Cell(60, 8, "Subject ID:")
		pdf.Cell(40, 8, m.SubjectID)
		pdf.Ln(6)

		pdf.Cell(60, 8, "Outcome:")
		pdf.Cell(40, 8, m.Outcome)
		pdf.Ln(6)

		pdf.Cell(60, 8, "Dry run:")
		pdf.Cell(40, 8, fmt.Sprintf("%t", m.DryRun))
		pdf.Ln(6)

		pdf.Cell(60, 8, "Created:")
		pdf.Cell(40, 8, m.CreatedAt.Format("2006-01-02 15:04:05 MST"))
		pdf.Ln(10)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := pdf.Output(f); err != nil {
		return 0, err
	}
	return len(entries), nil
}
