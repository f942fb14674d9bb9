package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/workwayco/workway-validate/internal/domain"
)

// ── WORKWAY palette ──
var (
	accent  = lipgloss.Color("#F97316") // orange
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	statusColors = map[string]lipgloss.Color{
		domain.StatusPass: success,
		domain.StatusWarn: warning,
		domain.StatusFail: danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	codeStyle     = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderFileReport renders the full outcome for a single workflow source.
func RenderFileReport(r domain.FileReport) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("workway validate")
	name := r.Path
	if r.DisplayName != "" {
		name = r.DisplayName
	}
	subtitle := dimStyle.Render(name)
	verdict := lipgloss.NewStyle().
		Bold(true).
		Foreground(statusColor(r.Status)).
		Render(verdictText(r.Status))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	if r.ReadError != "" {
		fmt.Fprintf(&b, "  %s %s\n\n", errorTagStyle.Render("error"), dimStyle.Render(r.ReadError))
		return b.String()
	}
	if r.Result == nil {
		return b.String()
	}

	renderFindings(&b, *r.Result)

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	renderMetadata(&b, r.Result.Metadata)
	b.WriteString("\n")
	return b.String()
}

func renderFindings(b *strings.Builder, result domain.ValidationResult) {
	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
		return
	}

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Issues"))
	b.WriteString("  ")
	if n := len(result.Errors); n > 0 {
		b.WriteString(errorTagStyle.Render(plural(n, "error")))
		b.WriteString("  ")
	}
	if n := len(result.Warnings); n > 0 {
		b.WriteString(warnTagStyle.Render(plural(n, "warning")))
	}
	b.WriteString("\n\n")

	// Errors first; within a severity, engine order.
	for _, e := range result.Errors {
		renderFinding(b, errorTagStyle.Render("error"), e.Code, e.Message, e.Suggestion)
	}
	for _, w := range result.Warnings {
		renderFinding(b, warnTagStyle.Render("warn "), w.Code, w.Message, w.Suggestion)
	}
}

func renderFinding(b *strings.Builder, tag string, code domain.Code, message, suggestion string) {
	fmt.Fprintf(b, "    %s %s\n", tag, codeStyle.Render(string(code)))
	fmt.Fprintf(b, "         %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(b, "         %s\n", hintStyle.Render("→ "+suggestion))
	}
}

func renderMetadata(b *strings.Builder, meta domain.WorkflowMetadata) {
	b.WriteString("  " + titleStyle.Render("Metadata") + "\n")

	row := func(label, value string) {
		if value == "" {
			value = faintStyle.Render("-")
		}
		fmt.Fprintf(b, "    %s %s\n", dimStyle.Render(padRight(label, 14)), value)
	}

	row("name", meta.Name)
	row("type", meta.Type)
	row("trigger", meta.Trigger)
	row("integrations", strings.Join(meta.Integrations, ", "))
	if meta.HasAI != nil {
		row("ai", fmt.Sprintf("%t", *meta.HasAI))
	}
	if p := meta.Pricing; p != nil {
		pricing := p.Model
		if p.Price != nil {
			pricing = strings.TrimSpace(fmt.Sprintf("%s %g", p.Model, *p.Price))
		}
		row("pricing", pricing)
	}
}

// RenderBatch renders one line per file followed by the run totals.
func RenderBatch(report *domain.BatchReport) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Workflows") + "  " +
		dimStyle.Render(fmt.Sprintf("(%d)", len(report.Files))) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for _, f := range report.Files {
		icon := lipgloss.NewStyle().Foreground(statusColor(f.Status)).Render("●")
		line := fmt.Sprintf("  %s %s", icon, fileStyle.Render(shortenPath(f.Path)))
		switch {
		case f.ReadError != "":
			line += "  " + failStyle.Render(f.ReadError)
		case f.Result != nil:
			counts := fmt.Sprintf("%s, %s", plural(len(f.Result.Errors), "error"), plural(len(f.Result.Warnings), "warning"))
			line += "  " + dimStyle.Render(counts)
		}
		if f.Cached {
			line += "  " + faintStyle.Render("cached")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("%s  %s  %s",
		lipgloss.NewStyle().Bold(true).Foreground(statusColor(report.Status)).Render(verdictText(report.Status)),
		errorTagStyle.Render(plural(report.ErrorCount, "error")),
		warnTagStyle.Render(plural(report.WarningCount, "warning")),
	)
	b.WriteString("  " + summary + "\n\n")
	return b.String()
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		status := lipgloss.NewStyle().Foreground(statusColor(e.Status)).Render(padRight(e.Status, 4))
		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			status,
			dimStyle.Render(fmt.Sprintf("%d files, %d errors, %d warnings", e.Files, e.Errors, e.Warnings)),
		)

		if i > 0 {
			diff := e.Errors - entries[i-1].Errors
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func verdictText(status string) string {
	switch status {
	case domain.StatusPass:
		return "✓ valid"
	case domain.StatusWarn:
		return "✓ valid with warnings"
	default:
		return "✗ invalid"
	}
}

func statusColor(status string) lipgloss.Color {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return dim
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return filepath.ToSlash(path)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
