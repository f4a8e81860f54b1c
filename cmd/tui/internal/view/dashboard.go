package view

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tallyhq/tally/internal/transaction"
)

// barColors is the fixed chart palette; bars are colored by descending-amount
// rank, cycling when there are more categories than colors.
var barColors = []string{"63", "205", "39", "42", "213", "30", "115", "211", "216"}

const barWidth = 30

type DashboardModel struct {
	CommonModel
	txService *transaction.Service

	totalIncome   float64
	totalExpenses float64
	balance       float64
	recent        []transaction.Transaction
	spending      []spendingRow

	loaded bool
}

type spendingRow struct {
	category string
	amount   float64
}

func NewDashboardModel(txSvc *transaction.Service) DashboardModel {
	return DashboardModel{txService: txSvc}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.totalIncome = msg.totalIncome
		m.totalExpenses = msg.totalExpenses
		m.balance = msg.balance
		m.recent = msg.recent
		m.spending = msg.spending
		m.loaded = true

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if !m.loaded {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	var b strings.Builder

	b.WriteString(m.summaryView())
	b.WriteString("\n\n")
	b.WriteString(m.chartView())
	b.WriteString("\n\n")
	b.WriteString(m.recentView())

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func (m DashboardModel) summaryView() string {
	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 2)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render(fmt.Sprintf("Income\n%s", transaction.FormatCurrency(m.totalIncome))),
		card.Render(fmt.Sprintf("Expenses\n%s", transaction.FormatCurrency(m.totalExpenses))),
		card.Render(fmt.Sprintf("Balance\n%s", transaction.FormatCurrency(m.balance))),
	)
}

func (m DashboardModel) chartView() string {
	if len(m.spending) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No expense data available yet.")
	}

	maxAmount := m.spending[0].amount
	if maxAmount <= 0 {
		maxAmount = 1
	}

	var b strings.Builder

	b.WriteString("Spending by Category\n")

	for i, row := range m.spending {
		width := int(row.amount / maxAmount * barWidth)
		if width < 1 {
			width = 1
		}

		bar := lipgloss.NewStyle().
			Background(lipgloss.Color(barColors[i%len(barColors)])).
			Render(strings.Repeat(" ", width))

		b.WriteString(fmt.Sprintf("%s %-18s %s %s\n",
			transaction.CategoryIcon(row.category),
			transaction.CategoryName(row.category),
			bar,
			transaction.FormatCurrency(row.amount),
		))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m DashboardModel) recentView() string {
	if len(m.recent) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No transactions yet.")
	}

	var b strings.Builder

	b.WriteString("Recent Transactions\n")

	for _, tx := range m.recent {
		sign := "-"
		if tx.Type == transaction.TypeIncome {
			sign = "+"
		}

		b.WriteString(fmt.Sprintf("%s  %s %s  %s %s\n",
			transaction.FormatDate(tx.Date),
			sign,
			transaction.FormatCurrency(tx.Amount),
			transaction.CategoryIcon(tx.Category),
			tx.Description,
		))
	}

	return strings.TrimRight(b.String(), "\n")
}

// Messages

type dashboardLoadedMsg struct {
	totalIncome   float64
	totalExpenses float64
	balance       float64
	recent        []transaction.Transaction
	spending      []spendingRow
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		byCategory := m.txService.SpendingByCategory()

		spending := make([]spendingRow, 0, len(byCategory))
		for category, amount := range byCategory {
			spending = append(spending, spendingRow{category: category, amount: amount})
		}

		sort.Slice(spending, func(i, j int) bool {
			if spending[i].amount != spending[j].amount {
				return spending[i].amount > spending[j].amount
			}

			return spending[i].category < spending[j].category
		})

		return dashboardLoadedMsg{
			totalIncome:   m.txService.TotalIncome(),
			totalExpenses: m.txService.TotalExpenses(),
			balance:       m.txService.Balance(),
			recent:        m.txService.Recent(0),
			spending:      spending,
		}
	}
}
