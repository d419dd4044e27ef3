package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/nsmops/zeeklook/pkg/client"
	"github.com/nsmops/zeeklook/pkg/models"
	"github.com/nsmops/zeeklook/pkg/zeek"
)

// filterDebounce is the quiet period after the last filter keystroke before a
// refresh fires.
const filterDebounce = 500 * time.Millisecond

// typeLabels maps log type tags to tab/heading labels.
var typeLabels = map[string]string{
	"conn":   "Connections",
	"dns":    "DNS",
	"http":   "HTTP",
	"ssl":    "SSL/TLS",
	"files":  "Files",
	"notice": "Notices",
	"weird":  "Anomalies",
}

// typeLabel returns the display label for a log type, with a fallback for
// unrecognized tags. Unknown tags come from the remote type listing and are
// sanitized before display.
func typeLabel(logType string) string {
	if label, ok := typeLabels[logType]; ok {
		return label
	}
	logType = sanitize(logType)
	if logType == "" {
		return "Logs"
	}
	r, size := utf8.DecodeRuneInString(logType)
	return strings.ToUpper(string(r)) + logType[size:] + " Log"
}

// browseOrder is the tab order used when the type listing is unavailable.
var browseOrder = []string{"conn", "dns", "http", "ssl", "files", "notice", "weird"}

// LogTypesMsg is sent when the log type listing completes.
type LogTypesMsg struct {
	Types []client.LogTypeDescriptor
	Err   error
}

// LogPageMsg is sent when a page fetch completes. Seq ties the response to the
// request that issued it.
type LogPageMsg struct {
	Seq    int
	Result *client.PageResult
	Err    error
}

// filterDebounceMsg fires when a scheduled filter refresh comes due.
type filterDebounceMsg struct {
	Seq int
}

// Filter input indexes.
const (
	filterIP = iota
	filterPort
	filterProto
	filterSearch
	filterHours
	filterCount
)

var filterLabels = [filterCount]string{"IP", "Port", "Proto", "Search", "Hours"}

// browserModel is the log browser: tab strip, filter row, rendered entry table
// and pager. It owns the ViewState for the lifetime of the view.
type browserModel struct {
	api   *client.Client
	state *models.ViewState

	logTypes []client.LogTypeDescriptor
	inputs   [filterCount]textinput.Model
	focused  int // index into inputs, or -1 when the table has focus

	entries  []zeek.Entry
	cursor   int
	loading  bool
	fetchErr error

	viewport viewport.Model
	width    int
	height   int

	// debounceSeq invalidates pending refresh timers; only a tick carrying
	// the latest value fires.
	debounceSeq int
	// fetchSeq orders fetches; responses with a stale sequence are dropped so
	// a slow earlier fetch can never overwrite a newer page.
	fetchSeq int

	inspector *entryView
}

func newBrowser(api *client.Client, width, height int, logType string, hours int) (browserModel, tea.Cmd) {
	m := browserModel{
		api:     api,
		state:   models.NewViewState(),
		focused: -1,
		loading: true,
		width:   width,
		height:  height,
	}

	if logType != "" {
		m.state.LogType = logType
	}
	if hours > 0 {
		m.state.Filters.Hours = hours
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 12
		ti.CharLimit = 64
		m.inputs[i] = ti
	}
	m.inputs[filterSearch].Width = 24
	m.inputs[filterHours].Width = 4
	m.inputs[filterHours].SetValue(strconv.Itoa(m.state.Filters.Hours))

	m.viewport = viewport.New(width, m.tableHeight())

	return m, tea.Batch(m.fetchTypesCmd(), m.issueFetch())
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

// fetchTypesCmd loads the tab descriptors once at view start.
func (m browserModel) fetchTypesCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		types, err := api.ListLogTypes(context.Background())
		return LogTypesMsg{Types: types, Err: err}
	}
}

// issueFetch starts exactly one page fetch for the current view state and
// advances the fetch sequence. Must be called on the model that will receive
// the response.
func (m *browserModel) issueFetch() tea.Cmd {
	m.fetchSeq++
	m.loading = true

	seq := m.fetchSeq
	api := m.api
	req := client.PageRequest{
		LogType: m.state.LogType,
		Page:    m.state.Page,
		PerPage: m.state.PageSize,
		Filters: m.state.Filters,
	}
	return func() tea.Msg {
		result, err := api.FetchPage(context.Background(), req)
		return LogPageMsg{Seq: seq, Result: result, Err: err}
	}
}

// scheduleRefresh arms the debounce timer, invalidating any pending one.
func (m *browserModel) scheduleRefresh() tea.Cmd {
	m.debounceSeq++
	seq := m.debounceSeq
	return tea.Tick(filterDebounce, func(time.Time) tea.Msg {
		return filterDebounceMsg{Seq: seq}
	})
}

// criteriaFromInputs builds FilterCriteria from the current input values,
// dropping empty fields. An unrecognized protocol is treated as no protocol
// filter.
func (m *browserModel) criteriaFromInputs() models.FilterCriteria {
	f := models.FilterCriteria{
		IP:     strings.TrimSpace(m.inputs[filterIP].Value()),
		Port:   strings.TrimSpace(m.inputs[filterPort].Value()),
		Search: strings.TrimSpace(m.inputs[filterSearch].Value()),
	}

	proto := strings.ToLower(strings.TrimSpace(m.inputs[filterProto].Value()))
	switch proto {
	case "tcp", "udp", "icmp":
		f.Proto = proto
	}

	if hours, err := strconv.Atoi(strings.TrimSpace(m.inputs[filterHours].Value())); err == nil && hours > 0 {
		f.Hours = hours
	}

	return f
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = m.tableHeight()
		if m.inspector != nil {
			m.inspector.SetSize(msg.Width, msg.Height)
		}
		m.refreshContent()
		return m, nil

	case LogTypesMsg:
		if msg.Err != nil {
			// Recoverable: browsing continues with the default type and an
			// empty tab strip.
			log.Error().Err(msg.Err).Msg("failed to list log types")
			return m, nil
		}
		m.logTypes = msg.Types
		return m, nil

	case filterDebounceMsg:
		if msg.Seq != m.debounceSeq {
			// A newer keystroke rescheduled the refresh; this timer is stale.
			return m, nil
		}
		m.state.ApplyFilters(m.criteriaFromInputs())
		return m, m.issueFetch()

	case LogPageMsg:
		if msg.Seq != m.fetchSeq {
			// Response to a superseded request; a newer fetch is in flight or
			// already rendered.
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.fetchErr = msg.Err
			m.refreshContent()
			return m, nil
		}
		m.fetchErr = nil
		m.entries = msg.Result.Entries
		m.state.UpdateFromResponse(msg.Result.Page, msg.Result.TotalPages, msg.Result.Total)
		if m.cursor >= len(m.entries) {
			m.cursor = len(m.entries) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		if m.inspector != nil {
			return m.updateInspector(msg)
		}
		if m.focused >= 0 {
			return m.updateFilterInput(msg)
		}
		return m.updateTable(msg)
	}

	return m, nil
}

func (m browserModel) updateInspector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.inspector = nil
		return m, nil
	}
	var cmd tea.Cmd
	*m.inspector, cmd = m.inspector.Update(msg)
	return m, cmd
}

func (m browserModel) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputs[m.focused].Blur()
		m.focused = -1
		return m, nil
	case "tab":
		m.inputs[m.focused].Blur()
		m.focused = (m.focused + 1) % filterCount
		m.inputs[m.focused].Focus()
		return m, nil
	case "shift+tab":
		m.inputs[m.focused].Blur()
		m.focused = (m.focused + filterCount - 1) % filterCount
		m.inputs[m.focused].Focus()
		return m, nil
	case "enter":
		// Apply immediately; bump the sequence so any pending timer dies.
		m.debounceSeq++
		m.inputs[m.focused].Blur()
		m.focused = -1
		m.state.ApplyFilters(m.criteriaFromInputs())
		return m, m.issueFetch()
	}

	before := m.inputs[m.focused].Value()
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	if m.inputs[m.focused].Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.scheduleRefresh())
}

func (m browserModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/", "f":
		m.focused = filterIP
		m.inputs[filterIP].Focus()
		return m, textinput.Blink

	case "left", "h", "[":
		return m.switchType(-1)
	case "right", "l", "]":
		return m.switchType(1)

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refreshContent()
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.refreshContent()
		}
		return m, nil

	case "n", "pgdown":
		if m.state.GoToPage(m.state.Page + 1) {
			return m, m.issueFetch()
		}
		return m, nil
	case "p", "pgup":
		if m.state.GoToPage(m.state.Page - 1) {
			return m, m.issueFetch()
		}
		return m, nil
	case "g":
		if m.state.Page != 1 && m.state.GoToPage(1) {
			return m, m.issueFetch()
		}
		return m, nil
	case "G":
		if m.state.Page != m.state.TotalPages && m.state.GoToPage(m.state.TotalPages) {
			return m, m.issueFetch()
		}
		return m, nil

	case "s":
		return m, m.cyclePageSize()

	case " ":
		return m.toggleExpansion()

	case "enter":
		if m.cursor < len(m.entries) {
			inspector := newEntryView(m.entries[m.cursor], m.width, m.height)
			m.inspector = &inspector
		}
		return m, nil

	case "r":
		return m, m.issueFetch()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m browserModel) switchType(dir int) (tea.Model, tea.Cmd) {
	order := m.typeOrder()
	idx := 0
	for i, t := range order {
		if t == m.state.LogType {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(order)) % len(order)

	m.state.SwitchType(order[idx])
	m.cursor = 0
	return m, m.issueFetch()
}

func (m browserModel) typeOrder() []string {
	if len(m.logTypes) == 0 {
		return browseOrder
	}
	order := make([]string, 0, len(m.logTypes))
	for _, desc := range m.logTypes {
		order = append(order, desc.Type)
	}
	return order
}

func (m *browserModel) cyclePageSize() tea.Cmd {
	next := models.PageSizes[0]
	for i, size := range models.PageSizes {
		if size == m.state.PageSize {
			next = models.PageSizes[(i+1)%len(models.PageSizes)]
			break
		}
	}
	m.state.SetPageSize(next)
	return m.issueFetch()
}

func (m browserModel) toggleExpansion() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.entries) {
		return m, nil
	}
	schema := m.currentSchema()
	if !schema.Expandable {
		return m, nil
	}
	uid := m.entries[m.cursor].UID()
	if uid == "" {
		return m, nil
	}
	m.state.ToggleExpanded(uid)
	// Re-fetch with unchanged parameters; the renderer applies the new
	// expansion state on the refreshed page.
	return m, m.issueFetch()
}

func (m browserModel) currentSchema() zeek.Schema {
	var first zeek.Entry
	if len(m.entries) > 0 {
		first = m.entries[0]
	}
	return zeek.SchemaFor(m.state.LogType, first)
}

func (m *browserModel) tableHeight() int {
	// title + tabs + filters + pager + help
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	return h
}

// refreshContent re-renders the table region and keeps the cursor row inside
// the viewport.
func (m *browserModel) refreshContent() {
	if m.fetchErr != nil {
		m.viewport.SetContent(renderError(m.fetchErr))
		m.viewport.GotoTop()
		return
	}

	schema := m.currentSchema()
	m.viewport.SetContent(renderPage(m.entries, schema, m.state.IsExpanded, m.cursor))

	cursorLine := pageLines(m.entries, schema, m.state.IsExpanded, m.cursor)
	if cursorLine < m.viewport.YOffset {
		m.viewport.YOffset = cursorLine
	}
	if bottom := m.viewport.YOffset + m.viewport.Height - 1; cursorLine > bottom {
		m.viewport.YOffset = cursorLine - m.viewport.Height + 1
	}
}

func (m browserModel) View() string {
	if m.inspector != nil {
		return m.inspector.View()
	}

	title := fmt.Sprintf("%s (%s entries)", typeLabel(m.state.LogType), zeek.AbbreviateCount(m.state.TotalCount))
	if m.loading {
		title += " …"
	}

	sections := []string{
		headerStyle.Render(title),
		m.renderTabs(),
		m.renderFilters(),
		m.viewport.View(),
		m.renderPager(),
		dimStyle.Render("←/→ type · ↑/↓ row · space expand · enter inspect · n/p page · s page size · / filter · : command"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m browserModel) renderTabs() string {
	if len(m.logTypes) == 0 {
		return ""
	}

	tabs := make([]string, 0, len(m.logTypes))
	for _, desc := range m.logTypes {
		label := fmt.Sprintf("%s %s", typeLabel(desc.Type), zeek.AbbreviateCount(desc.EstimatedCount))
		switch {
		case desc.Type == m.state.LogType:
			tabs = append(tabs, selectedStyle.Render(" "+label+" "))
		case !desc.Available:
			tabs = append(tabs, dimStyle.Render(" "+label+" "))
		default:
			tabs = append(tabs, " "+label+" ")
		}
	}
	return strings.Join(tabs, "│")
}

func (m browserModel) renderFilters() string {
	parts := make([]string, 0, filterCount)
	for i := range m.inputs {
		label := filterLabels[i]
		if i == m.focused {
			parts = append(parts, headerStyle.Render(label+":")+m.inputs[i].View())
		} else {
			parts = append(parts, dimStyle.Render(label+":")+m.inputs[i].View())
		}
	}
	return strings.Join(parts, "  ")
}

// renderPager renders a bounded page window around the current page.
func (m browserModel) renderPager() string {
	page, total := m.state.Page, m.state.TotalPages
	if total <= 1 {
		return dimStyle.Render(fmt.Sprintf("page %d/%d · %d per page", page, max(total, 1), m.state.PageSize))
	}

	const window = 2
	var parts []string
	parts = append(parts, "«")
	last := 0
	for n := 1; n <= total; n++ {
		if n != 1 && n != total && (n < page-window || n > page+window) {
			continue
		}
		if last != 0 && n != last+1 {
			parts = append(parts, "…")
		}
		if n == page {
			parts = append(parts, selectedStyle.Render(fmt.Sprintf(" %d ", n)))
		} else {
			parts = append(parts, strconv.Itoa(n))
		}
		last = n
	}
	parts = append(parts, "»")
	parts = append(parts, dimStyle.Render(fmt.Sprintf("· %d per page", m.state.PageSize)))
	return strings.Join(parts, " ")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
