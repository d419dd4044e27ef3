package widgets

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

var tableTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// FilteredTable wraps bubble-table with a title and '/'-filtering enabled on
// every column.
type FilteredTable struct {
	Model    table.Model
	title    string
	pageSize int
}

// rowsFor derives the visible row count from the widget height, leaving room
// for the title, header, filter line and pager.
func rowsFor(height int) int {
	pageSize := height - 6
	if pageSize < 3 {
		pageSize = 3
	}
	return pageSize
}

// NewFilteredTable creates a focused, filterable table.
func NewFilteredTable(title string, columns []table.Column, width, height int) FilteredTable {
	filterable := make([]table.Column, len(columns))
	for i, col := range columns {
		filterable[i] = col.WithFiltered(true)
	}

	pageSize := rowsFor(height)
	model := table.New(filterable).
		Focused(true).
		Filtered(true).
		WithPageSize(pageSize).
		WithTargetWidth(width)

	return FilteredTable{Model: model, title: title, pageSize: pageSize}
}

// Resize refits the table to new dimensions, recomputing the page size.
func (ft *FilteredTable) Resize(width, height int) {
	ft.pageSize = rowsFor(height)
	ft.Model = ft.Model.WithTargetWidth(width).WithPageSize(ft.pageSize)
}

// PageSize returns the current visible row count.
func (ft FilteredTable) PageSize() int {
	return ft.pageSize
}

// SetRows replaces the table contents.
func (ft *FilteredTable) SetRows(rows []table.Row) {
	ft.Model = ft.Model.WithRows(rows)
}

// HighlightedRow returns the currently selected row.
func (ft FilteredTable) HighlightedRow() table.Row {
	return ft.Model.HighlightedRow()
}

// Update implements the bubbletea update contract.
func (ft FilteredTable) Update(msg tea.Msg) (FilteredTable, tea.Cmd) {
	var cmd tea.Cmd
	ft.Model, cmd = ft.Model.Update(msg)
	return ft, cmd
}

// View renders the title and table.
func (ft FilteredTable) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		tableTitleStyle.Render(ft.title),
		ft.Model.View(),
	)
}
