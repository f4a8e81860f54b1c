package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tallyhq/tally/internal/transaction"
)

type historyState int

const (
	historyStateBrowse historyState = iota
	historyStateConfirmDelete
	historyStateConfirmClear
)

// categoryFilters is "all" followed by the fixed category table.
var categoryFilters = func() []string {
	filters := []string{"all"}
	for _, meta := range transaction.Categories() {
		filters = append(filters, meta.ID)
	}

	return filters
}()

type HistoryModel struct {
	CommonModel
	txService *transaction.Service

	state historyState
	table table.Model
	txs   []transaction.Transaction
	form  *huh.Form

	filterIdx int
	status    string

	formConfirm bool
}

func NewHistoryModel(txSvc *transaction.Service) HistoryModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Category", Width: 18},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return HistoryModel{
		txService: txSvc,
		table:     t,
	}
}

func (m HistoryModel) Title() string { return "Transaction History" }

func (m HistoryModel) ShortHelp() string {
	if m.state != historyStateBrowse {
		return "Confirm or cancel"
	}

	return "Esc: back | f: filter category | d: delete | c: clear all | r: refresh"
}

func (m HistoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case reloadMsg:
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case historyStateBrowse:
		return m.updateBrowse(msg)
	case historyStateConfirmDelete, historyStateConfirmClear:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m HistoryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "f":
			m.filterIdx = (m.filterIdx + 1) % len(categoryFilters)
			return m, m.loadCmd()
		case "d":
			if len(m.txs) == 0 {
				return m, nil
			}

			return m.startConfirm(historyStateConfirmDelete, "Delete this transaction permanently?")
		case "c":
			if len(m.txs) == 0 {
				return m, nil
			}

			return m.startConfirm(historyStateConfirmClear,
				"Delete ALL transactions? This cannot be undone.")
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m HistoryModel) startConfirm(state historyState, title string) (tea.Model, tea.Cmd) {
	m.state = state
	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&m.formConfirm),
		),
	).WithWidth(50).WithShowHelp(false)

	return m, m.form.Init()
}

func (m HistoryModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = historyStateBrowse
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	confirmed := m.form.GetBool("confirm")
	state := m.state
	m.state = historyStateBrowse
	m.form = nil

	if !confirmed {
		return m, nil
	}

	switch state {
	case historyStateConfirmDelete:
		if selected := m.table.Cursor(); selected >= 0 && selected < len(m.txs) {
			id := m.txs[selected].ID

			return m, func() tea.Msg {
				m.txService.Delete(id)
				return reloadMsg{}
			}
		}
	case historyStateConfirmClear:
		return m, func() tea.Msg {
			m.txService.ClearAll()
			return reloadMsg{}
		}
	}

	return m, nil
}

func (m HistoryModel) View() string {
	if m.state != historyStateBrowse && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	filterLine := lipgloss.NewStyle().Faint(true).
		Render(fmt.Sprintf("Filter: %s", m.filterLabel()))

	statusLine := ""
	if m.status != "" {
		statusLine = "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	if len(m.txs) == 0 {
		return lipgloss.NewStyle().Padding(1).Render(
			filterLine + "\n\nNo transactions found." + statusLine)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		filterLine + "\n" + m.table.View() + statusLine)
}

func (m HistoryModel) filterLabel() string {
	if categoryFilters[m.filterIdx] == "all" {
		return "All"
	}

	return transaction.CategoryName(categoryFilters[m.filterIdx])
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, len(m.txs))
	for i, tx := range m.txs {
		rows[i] = table.Row{
			transaction.FormatDate(tx.Date),
			string(tx.Type),
			fmt.Sprintf("%s %s", transaction.CategoryIcon(tx.Category), transaction.CategoryName(tx.Category)),
			transaction.FormatCurrency(tx.Amount),
			tx.Description,
		}
	}

	m.table.SetRows(rows)
}

// Messages

type historyLoadedMsg struct {
	txs []transaction.Transaction
}

type reloadMsg struct{}

func (m HistoryModel) loadCmd() tea.Cmd {
	category := categoryFilters[m.filterIdx]

	return func() tea.Msg {
		// Newest first, unbounded.
		txs := m.txService.Recent(len(m.txService.All()) + 1)

		if category != "all" {
			filtered := txs[:0]
			for _, tx := range txs {
				if tx.Category == category {
					filtered = append(filtered, tx)
				}
			}

			txs = filtered
		}

		return historyLoadedMsg{txs: txs}
	}
}
