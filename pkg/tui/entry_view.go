package tui

import (
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/nsmops/zeeklook/pkg/zeek"
)

// entryView is the full-screen inspector for a single log entry. It shows the
// complete record as highlighted JSON, including fields the summary columns
// omit.
type entryView struct {
	viewport viewport.Model
	title    string
}

func newEntryView(e zeek.Entry, width, height int) entryView {
	vp := viewport.New(width, height-2)
	vp.SetContent(highlightEntry(e))

	title := "Entry"
	if uid := e.UID(); uid != "" {
		title = "Entry " + sanitize(uid)
	}

	return entryView{viewport: vp, title: title}
}

// highlightEntry renders the entry as indented JSON with terminal syntax
// highlighting, falling back to plain text if highlighting fails.
func highlightEntry(e zeek.Entry) string {
	raw, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("can't marshal entry for inspector")
		return "unrenderable entry"
	}
	plain := sanitize(string(raw))

	var sb strings.Builder
	if err := quick.Highlight(&sb, plain, "json", "terminal256", "monokai"); err != nil {
		log.Warn().Err(err).Msg("syntax highlight failed, rendering plain")
		return plain
	}
	return sb.String()
}

func (v *entryView) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = height - 2
}

func (v entryView) Update(msg tea.Msg) (entryView, tea.Cmd) {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v entryView) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(v.title),
		v.viewport.View(),
		dimStyle.Render("↑/↓ scroll · esc back"),
	)
}
