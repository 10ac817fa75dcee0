package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/signintech/gopdf"

	"agriassist/internal/cases"
)

// MessageSender delivers outbound WhatsApp messages.
type MessageSender interface {
	SendMessage(ctx context.Context, to, body, mediaURL string) error
}

type Service struct {
	sender       MessageSender
	expertNumber string
}

// NewService builds the review-side reporting service. expertNumber is the
// whatsapp: address that receives escalation alerts; when empty, alerts are
// disabled.
func NewService(sender MessageSender, expertNumber string) *Service {
	return &Service{
		sender:       sender,
		expertNumber: expertNumber,
	}
}

// NotifyExpert sends a short alert about an escalated case.
func (s *Service) NotifyExpert(ctx context.Context, c *cases.Case) error {
	if s.expertNumber == "" || s.sender == nil {
		return nil
	}

	summary := "no diagnosis recorded"
	if d, err := c.ParseDiagnosis(); err == nil && d.Name != "" {
		summary = d.Name
		if d.EnglishName != "" {
			summary += " (" + d.EnglishName + ")"
		}
	}

	body := fmt.Sprintf("AgriAssist escalation\nCase #%d\nFarmer: %s\nTime: %s\nDiagnosis: %s",
		c.ID, c.Phone, c.Timestamp.Format("02.01.2006 15:04"), summary)
	return s.sender.SendMessage(ctx, s.expertNumber, body, "")
}

// CasePDF renders the downloadable case report.
func (s *Service) CasePDF(c *cases.Case) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// DejaVuSans covers the Latin portion of the report; Indic script lines
	// come straight from the stored diagnosis and need a font that carries
	// the glyphs. Try the common install paths.
	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "AgriAssist Case Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Case ID: %d", c.ID))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Phone: %s", c.Phone))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Time: %s", c.Timestamp.Format("02.01.2006 15:04")))
	pdf.Br(15)
	escalated := "NO"
	if c.Escalated {
		escalated = "YES"
	}
	pdf.Cell(nil, fmt.Sprintf("Escalated: %s", escalated))
	pdf.Br(25)

	diag, err := c.ParseDiagnosis()
	if err != nil {
		diag = &cases.Diagnosis{Name: "unreadable diagnosis record"}
	}

	if err := writeSection(&pdf, "Diagnosis:", diagnosisLines(diag)); err != nil {
		return nil, err
	}
	if len(diag.TreatmentSteps) > 0 {
		steps := make([]string, 0, len(diag.TreatmentSteps))
		for _, step := range diag.TreatmentSteps {
			steps = append(steps, "- "+step)
		}
		if err := writeSection(&pdf, "Treatment:", steps); err != nil {
			return nil, err
		}
	}
	if diag.Precautions != "" {
		if err := writeSection(&pdf, "Precautions:", []string{diag.Precautions}); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func diagnosisLines(d *cases.Diagnosis) []string {
	lines := []string{d.Name}
	if d.EnglishName != "" {
		lines = append(lines, "English: "+d.EnglishName)
	}
	lines = append(lines, fmt.Sprintf("Confidence: %d%%", d.Confidence))
	lines = append(lines, fmt.Sprintf("Estimated cost: INR %d", d.EstimatedCost))
	if len(d.SymptomsMatch) > 0 {
		lines = append(lines, "Symptoms: "+strings.Join(d.SymptomsMatch, ", "))
	}
	return lines
}

func writeSection(pdf *gopdf.GoPdf, title string, lines []string) error {
	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return err
	}
	pdf.Cell(nil, title)
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return err
	}
	for _, line := range lines {
		wrapped, _ := pdf.SplitText(line, 500)
		for _, l := range wrapped {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
		pdf.Br(3)
	}
	pdf.Br(10)
	return nil
}
