package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nsmops/zeeklook/pkg/config"
)

// ContextSelectedMsg is sent when an appliance context is chosen.
type ContextSelectedMsg struct {
	Context config.Context
}

// connectSelector lets the operator pick one of the configured monitor
// appliances.
type connectSelector struct {
	contexts []config.Context
	cursor   int
	filter   string
}

func newConnectSelector(contexts []config.Context) connectSelector {
	return connectSelector{contexts: contexts}
}

func (m connectSelector) Init() tea.Cmd {
	return nil
}

// visible returns the indexes of contexts matching the current filter.
func (m connectSelector) visible() []int {
	idx := make([]int, 0, len(m.contexts))
	needle := strings.ToLower(m.filter)
	for i, ctx := range m.contexts {
		if needle == "" || strings.Contains(strings.ToLower(ctx.Name+" "+ctx.URL), needle) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (m connectSelector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	visible := m.visible()
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(visible) {
			selected := m.contexts[visible[m.cursor]]
			return m, func() tea.Msg {
				return ContextSelectedMsg{Context: selected}
			}
		}
	case "backspace":
		if m.filter != "" {
			m.filter = m.filter[:len(m.filter)-1]
			m.cursor = 0
		}
	default:
		if len(keyMsg.Runes) == 1 {
			m.filter += string(keyMsg.Runes)
			m.cursor = 0
		}
	}
	return m, nil
}

func (m connectSelector) View() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Select appliance"))
	if m.filter != "" {
		sb.WriteString(dimStyle.Render("  /" + m.filter))
	}
	sb.WriteString("\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		sb.WriteString(dimStyle.Render("  no matching contexts"))
	}
	for i, idx := range visible {
		ctx := m.contexts[idx]
		line := fmt.Sprintf("%s (%s)", ctx.Name, ctx.URL)
		if i == m.cursor {
			sb.WriteString(selectedStyle.Render("▶ " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("type to filter · enter select · esc cancel"))
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
