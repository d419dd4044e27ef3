package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nsmops/zeeklook/pkg/zeek"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			PaddingLeft(1).
			MarginLeft(2)

	emptyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Foreground(lipgloss.Color("8")).
			Padding(1, 4)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")).
			Foreground(lipgloss.Color("1")).
			Padding(1, 2)
)

// ansiSeq matches CSI and OSC escape sequences.
var ansiSeq = regexp.MustCompile(`\x1b(\[[0-9;?]*[ -/]*[@-~]|\][^\x07\x1b]*(\x07|\x1b\\))`)

// sanitize strips escape sequences and control characters from remote-sourced
// text. Every value rendered into the view passes through here, so a hostile
// field can never inject terminal control codes or break row structure.
func sanitize(s string) string {
	s = ansiSeq.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}

// padCell fits s into width columns, truncating with an ellipsis.
func padCell(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func severityStyle(sev zeek.Severity) lipgloss.Style {
	switch sev {
	case zeek.SeverityOK:
		return okStyle
	case zeek.SeverityInfo:
		return infoStyle
	case zeek.SeverityWarn:
		return warnStyle
	case zeek.SeverityError:
		return errStyle
	default:
		return lipgloss.NewStyle()
	}
}

// renderHeader renders the column title row for a schema.
func renderHeader(schema zeek.Schema) string {
	var sb strings.Builder
	sb.WriteString("  ")
	for i, col := range schema.Columns {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(headerStyle.Render(padCell(col.Title, col.Width)))
	}
	return sb.String()
}

// renderRow renders one summary row. Values are sanitized before any styling
// is applied so styles always wrap clean text.
func renderRow(e zeek.Entry, schema zeek.Schema, selected bool) string {
	var sb strings.Builder
	for i, col := range schema.Columns {
		if i > 0 {
			sb.WriteString(" ")
		}
		cell := col.Render(e)
		text := padCell(sanitize(cell.Text), col.Width)
		if selected {
			sb.WriteString(text)
			continue
		}
		switch {
		case cell.Severity != zeek.SeverityNone:
			sb.WriteString(severityStyle(cell.Severity).Render(text))
		case col.Title == "Proto" || col.Title == "Service":
			sb.WriteString(badgeStyle.Render(text))
		default:
			sb.WriteString(text)
		}
	}

	if selected {
		return selectedStyle.Render("▶ " + sb.String())
	}
	return "  " + sb.String()
}

// renderDetail renders the expanded detail block shown directly under a
// summary row.
func renderDetail(e zeek.Entry, schema zeek.Schema) string {
	var sb strings.Builder
	for i, key := range schema.DetailKeys {
		if i > 0 {
			sb.WriteString("\n")
		}
		var value string
		if _, isSeq := e[key].([]any); isSeq {
			value = zeek.FormatMulti(e, key)
		} else {
			value = zeek.FormatField(e, key)
		}
		sb.WriteString(dimStyle.Render(fmt.Sprintf("%-18s", key)))
		sb.WriteString(sanitize(value))
	}
	return detailStyle.Render(sb.String())
}

// renderPage renders a full page of entries with the header, the selection
// cursor and any expanded detail blocks. An empty page yields the no-results
// placeholder, never a header-only shell.
func renderPage(entries []zeek.Entry, schema zeek.Schema, isExpanded func(string) bool, cursor int) string {
	if len(entries) == 0 {
		return emptyStyle.Render("No matching log entries")
	}

	var sb strings.Builder
	sb.WriteString(renderHeader(schema))
	for i, e := range entries {
		sb.WriteString("\n")
		sb.WriteString(renderRow(e, schema, i == cursor))
		if schema.Expandable && isExpanded(e.UID()) {
			sb.WriteString("\n")
			sb.WriteString(renderDetail(e, schema))
		}
	}
	return sb.String()
}

// renderError renders the in-place fetch failure block. The surrounding view
// state stays intact so the operator can adjust filters and retry. Error text
// can carry response-body bytes from the appliance, so it is sanitized like
// any other remote-sourced string.
func renderError(err error) string {
	return errorBoxStyle.Render(fmt.Sprintf("Failed to load log entries:\n%s\n\nAdjust filters or press 'r' to retry", sanitize(err.Error())))
}

// pageLines counts the rendered line span of the first n entries, used to keep
// the cursor visible inside the viewport.
func pageLines(entries []zeek.Entry, schema zeek.Schema, isExpanded func(string) bool, n int) int {
	lines := 1 // header
	for i := 0; i < n && i < len(entries); i++ {
		lines++
		if schema.Expandable && isExpanded(entries[i].UID()) {
			lines += lipgloss.Height(renderDetail(entries[i], schema))
		}
	}
	return lines
}
