package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/whittech/estimator/internal/cli/formatter"
	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/estimate"
	"github.com/whittech/estimator/internal/pricing"
	"github.com/whittech/estimator/internal/service"
)

// gridColumn describes one editable column of the estimate grid.
// field is the LineItem field key; the TOTAL column is computed and
// has an empty field.
type gridColumn struct {
	title string
	field string
	width int
}

var gridColumns = []gridColumn{
	{title: "DESCRIPTION", field: domain.FieldDescription, width: 30},
	{title: "CATEGORY", field: domain.FieldCategory, width: 14},
	{title: "QTY", field: domain.FieldQuantity, width: 6},
	{title: "UNIT", field: domain.FieldUnit, width: 5},
	{title: "MAT COST", field: domain.FieldMaterialCost, width: 9},
	{title: "MKUP%", field: domain.FieldMaterialMarkupPct, width: 6},
	{title: "HRS", field: domain.FieldLaborHours, width: 6},
	{title: "RATE", field: domain.FieldLaborRate, width: 7},
	{title: "TOTAL", field: "", width: 11},
}

// gridModel is the bubbletea model for the interactive estimate grid.
// All edits go through the session, which owns persistence.
type gridModel struct {
	session *estimate.Session
	project *domain.Project
	catalog service.CatalogService

	width  int
	height int

	cursorRow int
	cursorCol int

	editing bool
	input   textinput.Model

	// Catalog quick-insert overlay state.
	picking       bool
	pickerInput   textinput.Model
	pickerResults []*domain.MaterialCatalogEntry
	pickerCursor  int

	confirmClear bool
	status       string
	quitting     bool
}

func newGridModel(session *estimate.Session, project *domain.Project, catalog service.CatalogService) gridModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 200

	pi := textinput.New()
	pi.Prompt = "/ "
	pi.Placeholder = "search materials"
	pi.CharLimit = 100

	return gridModel{
		session:     session,
		project:     project,
		catalog:     catalog,
		input:       ti,
		pickerInput: pi,
	}
}

func (m gridModel) Init() tea.Cmd {
	return nil
}

func (m gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m gridModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.session.Flush()
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirmClear {
		return m.handleConfirmKey(msg)
	}
	if m.picking {
		return m.handlePickerKey(msg)
	}
	if m.editing {
		return m.handleEditKey(msg)
	}

	rows := m.session.Rows()
	m.status = ""

	switch msg.String() {
	case "q", "esc":
		m.session.Flush()
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "down", "j":
		if m.cursorRow < len(rows)-1 {
			m.cursorRow++
		}
	case "left", "h":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "right", "l", "tab":
		if m.cursorCol < len(gridColumns)-1 {
			m.cursorCol++
		}
	case "shift+tab":
		if m.cursorCol > 0 {
			m.cursorCol--
		}

	case "enter", "i":
		return m.startEditing(rows)

	case "d":
		if m.cursorRow < len(rows) {
			key := rows[m.cursorRow].ID.Key()
			if err := m.session.DeleteRow(context.Background(), key); err != nil {
				m.status = "delete failed: " + err.Error()
			}
			if n := len(m.session.Rows()); m.cursorRow >= n {
				m.cursorRow = n - 1
			}
		}

	case "y":
		if m.cursorRow < len(rows) {
			key := rows[m.cursorRow].ID.Key()
			if _, err := m.session.DuplicateRow(context.Background(), key); err != nil {
				m.status = "duplicate failed: " + err.Error()
			}
		}

	case "a":
		m.session.AddRows(10)

	case "c":
		m.confirmClear = true

	case "ctrl+k":
		if m.catalog != nil {
			m.picking = true
			m.pickerCursor = 0
			m.pickerResults = nil
			m.pickerInput.SetValue("")
			return m, m.pickerInput.Focus()
		}
	}

	return m, nil
}

func (m gridModel) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.picking = false
		m.pickerInput.Blur()
		return m, nil

	case tea.KeyUp:
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.pickerCursor < len(m.pickerResults)-1 {
			m.pickerCursor++
		}
		return m, nil

	case tea.KeyEnter:
		if m.pickerCursor < len(m.pickerResults) {
			entry := m.pickerResults[m.pickerCursor]
			rows := m.session.Rows()
			if m.cursorRow < len(rows) {
				key := rows[m.cursorRow].ID.Key()
				if err := m.session.InsertMaterial(context.Background(), key, entry); err != nil {
					m.status = "insert failed: " + err.Error()
				}
			}
		}
		m.picking = false
		m.pickerInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.pickerInput, cmd = m.pickerInput.Update(msg)
	m.searchCatalog()
	return m, cmd
}

func (m *gridModel) searchCatalog() {
	results, err := m.catalog.Search(context.Background(), m.pickerInput.Value())
	if err != nil {
		m.status = "search failed: " + err.Error()
		return
	}
	m.pickerResults = results
	if m.pickerCursor >= len(results) {
		m.pickerCursor = 0
	}
}

func (m gridModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmClear = false
	if msg.String() == "y" {
		res := m.session.ClearAll(context.Background())
		if res.Deleted < res.Attempted {
			m.status = fmt.Sprintf("cleared %d of %d rows, the rest could not be deleted", res.Deleted, res.Attempted)
		} else {
			m.status = fmt.Sprintf("cleared %d rows", res.Deleted)
		}
		m.cursorRow = 0
	}
	return m, nil
}

func (m gridModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		m.commitCell()
		return m, nil

	case tea.KeyTab:
		m.commitCell()
		if m.cursorCol < len(gridColumns)-1 {
			m.cursorCol++
		}
		rows := m.session.Rows()
		return m.startEditing(rows)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *gridModel) startEditing(rows []estimate.Row) (tea.Model, tea.Cmd) {
	if m.cursorRow >= len(rows) {
		return *m, nil
	}
	col := gridColumns[m.cursorCol]
	if col.field == "" {
		return *m, nil
	}
	m.editing = true
	m.input.SetValue(rows[m.cursorRow].Item.Field(col.field))
	m.input.CursorEnd()
	return *m, m.input.Focus()
}

func (m *gridModel) commitCell() {
	rows := m.session.Rows()
	if m.cursorRow >= len(rows) {
		m.editing = false
		m.input.Blur()
		return
	}
	key := rows[m.cursorRow].ID.Key()
	field := gridColumns[m.cursorCol].field
	if err := m.session.SetCell(context.Background(), key, field, m.input.Value()); err != nil {
		m.status = "save failed: " + err.Error()
	}
	m.editing = false
	m.input.Blur()
}

func (m gridModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := formatter.StyleHeader.Render(m.project.Name)
	if m.project.ProjectNumber != "" {
		title += "  " + formatter.Dim(m.project.ProjectNumber)
	}
	b.WriteString(title + "\n")
	b.WriteString(formatter.Dim(strings.Repeat("─", m.gridWidth())) + "\n")

	b.WriteString(m.renderHeaderRow() + "\n")
	for i, row := range m.session.Rows() {
		b.WriteString(m.renderRow(i, row) + "\n")
	}

	b.WriteString(formatter.Dim(strings.Repeat("─", m.gridWidth())) + "\n")
	if m.picking {
		b.WriteString(m.renderPicker())
		return b.String()
	}
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m gridModel) renderPicker() string {
	var b strings.Builder
	b.WriteString(formatter.Bold("Insert material") + "  " + m.pickerInput.View() + "\n")
	if len(m.pickerResults) == 0 {
		b.WriteString(formatter.Dim("no matches") + "\n")
	}
	for i, entry := range m.pickerResults {
		cursor := "  "
		if i == m.pickerCursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
			cursor,
			formatter.StylePurple.Render(clipPad(entry.Category, 18)),
			clipPad(entry.ItemName, 36),
			formatter.StyleGreen.Render(formatter.Currency(entry.MaterialCost))))
	}
	b.WriteString(formatter.Dim("enter: insert  esc: cancel"))
	return b.String()
}

func (m gridModel) gridWidth() int {
	w := 4
	for _, c := range gridColumns {
		w += c.width + 2
	}
	return w
}

func (m gridModel) renderHeaderRow() string {
	cells := make([]string, 0, len(gridColumns)+1)
	cells = append(cells, formatter.Dim(fmt.Sprintf("%4s", "#")))
	for _, c := range gridColumns {
		cells = append(cells, formatter.StyleBold.Render(clipPad(c.title, c.width)))
	}
	return strings.Join(cells, "  ")
}

func (m gridModel) renderRow(idx int, row estimate.Row) string {
	cells := make([]string, 0, len(gridColumns)+1)
	cells = append(cells, formatter.Dim(fmt.Sprintf("%4d", idx+1)))

	for ci, c := range gridColumns {
		var raw string
		if c.field == "" {
			if row.Item.HasDescription() {
				raw = formatter.Currency(pricing.ItemTotal(row.Item))
			}
		} else {
			raw = row.Item.Field(c.field)
		}

		selected := idx == m.cursorRow && ci == m.cursorCol
		if selected && m.editing {
			cells = append(cells, clipPad(m.input.View(), c.width))
			continue
		}

		cell := clipPad(raw, c.width)
		switch {
		case selected:
			cells = append(cells, lipgloss.NewStyle().Reverse(true).Render(cell))
		case row.IsNew():
			cells = append(cells, formatter.Dim(cell))
		default:
			cells = append(cells, formatter.StyleFg.Render(cell))
		}
	}
	return strings.Join(cells, "  ")
}

func (m gridModel) renderFooter() string {
	r := m.session.Rollup()
	total := formatter.StyleGreen.Render(formatter.Currency(r.GrandTotal))
	line := fmt.Sprintf("%s %s  %s %d", formatter.Bold("Total:"), total,
		formatter.Dim("items:"), r.ItemCount)

	if m.status != "" {
		line += "\n" + formatter.StyleYellow.Render(m.status)
	}

	if m.confirmClear {
		line += "\n" + formatter.StyleRed.Render("Clear all rows? (y/n)")
		return line
	}
	if m.editing {
		line += "\n" + formatter.Dim("enter: save  tab: save+next  esc: cancel")
		return line
	}
	line += "\n" + formatter.Dim("enter: edit  ctrl+k: material  d: delete  y: duplicate  a: add rows  c: clear  q: quit")
	return line
}

// clipPad fits s into width, truncating with an ellipsis when too long.
func clipPad(s string, width int) string {
	if lipgloss.Width(s) > width {
		s = lipgloss.NewStyle().MaxWidth(width - 1).Render(s) + "…"
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
