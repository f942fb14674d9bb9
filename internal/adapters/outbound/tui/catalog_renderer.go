package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/workwayco/workway-validate/internal/domain"
)

var sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

// RenderCodes lists the finding codes grouped by check group.
func RenderCodes(catalog []domain.CodeInfo) string {
	var b strings.Builder

	group := ""
	for _, c := range catalog {
		if c.Group != group {
			group = c.Group
			b.WriteString("\n")
			b.WriteString("  " + sectionHeaderStyle.Render(group) + "\n")
		}
		tag := warnTagStyle.Render("warn ")
		if c.Severity == domain.SeverityError {
			tag = errorTagStyle.Render("error")
		}
		fmt.Fprintf(&b, "    %s %s\n", tag, string(c.Code))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderCron reports whether expr is valid and, if so, its upcoming fire times.
func RenderCron(expr, problem string, next []time.Time) string {
	var b strings.Builder

	b.WriteString("\n")
	if problem != "" {
		fmt.Fprintf(&b, "  %s %s\n", failStyle.Render("✗"), titleStyle.Render(expr))
		fmt.Fprintf(&b, "    %s\n", dimStyle.Render(problem))
		b.WriteString("    " + hintStyle.Render("→ Use format: '0 8 * * *' (minute hour day month weekday)") + "\n\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %s %s\n", passStyle.Render("✓"), titleStyle.Render(expr))
	if len(next) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + sectionHeaderStyle.Render("Next runs") + " " +
			dimStyle.Render(fmt.Sprintf("(%d)", len(next))) + "\n")
		for _, t := range next {
			fmt.Fprintf(&b, "    %s %s\n", passStyle.Render("●"), t.Format("Mon 2006-01-02 15:04 MST"))
		}
	}
	b.WriteString("\n")
	return b.String()
}
