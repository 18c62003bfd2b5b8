package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"visacheck/internal/visa/domain/evaluation"
	"visacheck/internal/visa/domain/shared"
	"visacheck/internal/visa/service"
)

// report is the machine-readable form of a check result.
type report struct {
	Status        string   `json:"status" yaml:"status"`
	VisaType      string   `json:"visa_type" yaml:"visa_type"`
	IssueDate     string   `json:"issue_date" yaml:"issue_date"`
	ExpiryDate    string   `json:"expiry_date" yaml:"expiry_date"`
	DaysRemaining int      `json:"days_remaining" yaml:"days_remaining"`
	HolderName    string   `json:"holder_name" yaml:"holder_name"`
	Nationality   string   `json:"nationality" yaml:"nationality"`
	CivilID       string   `json:"civil_id" yaml:"civil_id"`
	ReferenceDate string   `json:"reference_date" yaml:"reference_date"`
	Headline      string   `json:"headline" yaml:"headline"`
	Actions       []string `json:"actions,omitempty" yaml:"actions,omitempty"`
	Demo          bool     `json:"demo" yaml:"demo"`

	record   evaluation.Record
	guidance evaluation.Guidance
}

func newReport(result *service.CheckResult) report {
	rec := result.Record
	return report{
		Status:        string(rec.Status),
		VisaType:      string(rec.Category),
		IssueDate:     rec.IssueDate.String(),
		ExpiryDate:    rec.ExpiryDate.String(),
		DaysRemaining: rec.DaysRemaining,
		HolderName:    rec.HolderDisplayName,
		Nationality:   rec.Nationality,
		CivilID:       rec.IdentifierEcho,
		ReferenceDate: result.ReferenceDate.String(),
		Headline:      result.Guidance.Headline,
		Actions:       result.Guidance.Actions,
		Demo:          result.Demo(),
		record:        rec,
		guidance:      result.Guidance,
	}
}

func render(w io.Writer, format string, r report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, renderCard(r))
		return err
	}
}

var (
	valid    = lipgloss.Color("#22C55E") // green
	expiring = lipgloss.Color("#F59E0B") // amber
	expired  = lipgloss.Color("#EF4444") // red
	dim      = lipgloss.Color("#6B7280")

	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(16)
	valueStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

func statusColor(s shared.Status) lipgloss.Color {
	switch s {
	case shared.StatusValid:
		return valid
	case shared.StatusExpiringSoon:
		return expiring
	default:
		return expired
	}
}

func renderCard(r report) string {
	color := statusColor(r.record.Status)

	var b strings.Builder
	badge := lipgloss.NewStyle().Bold(true).Foreground(color).Render(strings.ToUpper(r.record.Status.Text()))
	b.WriteString(badge + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(color).Render(r.guidance.Headline) + "\n\n")

	rows := [][2]string{
		{"Holder", r.HolderName},
		{"Civil ID", r.CivilID},
		{"Nationality", r.Nationality},
		{"Visa Type", r.record.Category.Label()},
		{"Issue Date", r.record.IssueDate.Display()},
		{"Expiry Date", r.record.ExpiryDate.Display()},
		{"Days Remaining", fmt.Sprintf("%d", r.DaysRemaining)},
	}
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row[0]) + valueStyle.Render(row[1]) + "\n")
	}

	if len(r.guidance.Actions) > 0 {
		b.WriteString("\n" + valueStyle.Render(r.guidance.ActionsTitle) + "\n")
		for _, a := range r.guidance.Actions {
			b.WriteString("  • " + a + "\n")
		}
	}
	if r.Demo {
		b.WriteString("\n" + dimStyle.Render(evaluation.Disclaimer))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 2).
		Width(72)
	return card.Render(strings.TrimRight(b.String(), "\n"))
}
