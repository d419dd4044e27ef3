package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"

	"github.com/nsmops/zeeklook/pkg/client"
	"github.com/nsmops/zeeklook/pkg/models"
	"github.com/nsmops/zeeklook/pkg/tui/widgets"
	"github.com/nsmops/zeeklook/pkg/zeek"
)

// StatsDataMsg carries all sections of the stats view in one message.
type StatsDataMsg struct {
	Services []client.ServiceCount
	Trends   []client.TrendPoint
	DNS      *client.DNSStats
	Err      error
}

const trendIntervalMinutes = 30

// tableRegion is the height left for the services table once the trend and
// DNS panels and the help line have their share.
func tableRegion(height int) int {
	return height - 13
}

// statsModel shows the traffic overview: service distribution table plus a
// connection trend sparkline over the lookback window.
type statsModel struct {
	api   *client.Client
	hours int

	table  widgets.FilteredTable
	trends []client.TrendPoint
	dns    *client.DNSStats

	loading  bool
	fetchErr error
	width    int
	height   int
}

func newStats(api *client.Client, width, height, hours int) (statsModel, tea.Cmd) {
	if hours <= 0 {
		hours = models.DefaultHours
	}
	m := statsModel{
		api:     api,
		hours:   hours,
		loading: true,
		width:   width,
		height:  height,
	}

	columns := []table.Column{
		table.NewColumn("service", "Service", 24),
		table.NewColumn("count", "Connections", 14),
	}
	m.table = widgets.NewFilteredTable("Service distribution", columns, width, tableRegion(height))

	return m, m.fetchCmd()
}

func (m statsModel) Init() tea.Cmd {
	return nil
}

func (m statsModel) fetchCmd() tea.Cmd {
	api := m.api
	hours := m.hours
	return func() tea.Msg {
		ctx := context.Background()
		services, err := api.ServiceStats(ctx, hours)
		if err != nil {
			return StatsDataMsg{Err: err}
		}
		trends, err := api.ConnectionTrends(ctx, hours, trendIntervalMinutes)
		if err != nil {
			return StatsDataMsg{Err: err}
		}
		dns, err := api.DNSStatistics(ctx, hours)
		if err != nil {
			return StatsDataMsg{Err: err}
		}
		return StatsDataMsg{Services: services, Trends: trends, DNS: dns}
	}
}

func (m statsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.Resize(msg.Width, tableRegion(msg.Height))
		return m, nil

	case StatsDataMsg:
		m.loading = false
		if msg.Err != nil {
			m.fetchErr = msg.Err
			return m, nil
		}
		m.fetchErr = nil
		m.trends = msg.Trends
		m.dns = msg.DNS

		rows := make([]table.Row, 0, len(msg.Services))
		for _, svc := range msg.Services {
			name := svc.Service
			if name == "" {
				name = zeek.Placeholder
			}
			rows = append(rows, table.NewRow(table.RowData{
				"service": sanitize(name),
				"count":   zeek.AbbreviateCount(svc.Count),
			}))
		}
		m.table.SetRows(rows)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.fetchCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m statsModel) renderTrend() string {
	if len(m.trends) == 0 {
		return dimStyle.Render("no trend data")
	}

	values := make([]float64, len(m.trends))
	total := 0
	for i, pt := range m.trends {
		values[i] = float64(pt.Count)
		total += pt.Count
	}

	width := m.width - 4
	if width > len(m.trends) {
		width = len(m.trends)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(fmt.Sprintf("Connections, last %d hours (%s total)", m.hours, zeek.AbbreviateCount(total))),
		infoStyle.Render(widgets.Sparkline(values, width)),
	)
}

const topDomainLimit = 5

// renderDNS renders the DNS activity panel: busiest base domains plus the
// response code breakdown, colored by the same classifier the browser uses.
func (m statsModel) renderDNS() string {
	if m.dns == nil || m.dns.TotalQueries == 0 {
		return dimStyle.Render("no DNS activity")
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("DNS (%s queries)", zeek.AbbreviateCount(m.dns.TotalQueries))))

	top := m.dns.TopDomains
	if len(top) > topDomainLimit {
		top = top[:topDomainLimit]
	}
	for _, d := range top {
		sb.WriteString(fmt.Sprintf("\n  %-36s %s", sanitize(d.Domain), zeek.AbbreviateCount(d.Count)))
	}

	codes := make([]string, 0, len(m.dns.ResponseCodes))
	for code := range m.dns.ResponseCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		classified := zeek.ClassifyRcode(zeek.Entry{"rcode_name": code}, "rcode_name")
		text := fmt.Sprintf("%s %s", sanitize(classified.Text), zeek.AbbreviateCount(m.dns.ResponseCodes[code]))
		parts = append(parts, severityStyle(classified.Severity).Render(text))
	}
	if len(parts) > 0 {
		sb.WriteString("\n  " + strings.Join(parts, "  "))
	}
	return sb.String()
}

func (m statsModel) View() string {
	if m.loading {
		return dimStyle.Render("Loading traffic overview …")
	}
	if m.fetchErr != nil {
		return errorBoxStyle.Render(fmt.Sprintf("Failed to load stats:\n%v\n\nPress 'r' to retry", m.fetchErr))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTrend(),
		"",
		m.renderDNS(),
		"",
		m.table.View(),
		dimStyle.Render("/ filter services · r refresh · : command"),
	)
}
