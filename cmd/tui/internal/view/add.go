package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tallyhq/tally/internal/transaction"
)

const successNoticeDuration = 3 * time.Second

type AddModel struct {
	CommonModel
	txService *transaction.Service

	form       *huh.Form
	status     string
	submitting bool

	// Form field bindings
	formType     string
	formDesc     string
	formAmount   string
	formCategory string
	formDate     string
	formNotes    string
}

func NewAddModel(txSvc *transaction.Service) AddModel {
	m := AddModel{txService: txSvc}
	m.resetForm()

	return m
}

func (m AddModel) Title() string     { return "Add Transaction" }
func (m AddModel) ShortHelp() string { return "Esc: back | Enter/Tab: navigate form" }

func (m *AddModel) resetForm() {
	m.formType = string(transaction.TypeExpense)
	m.formDesc = ""
	m.formAmount = ""
	m.formCategory = ""
	m.formDate = time.Now().Format(time.DateOnly)
	m.formNotes = ""

	categoryOptions := make([]huh.Option[string], 0, len(transaction.Categories()))
	for _, meta := range transaction.Categories() {
		categoryOptions = append(categoryOptions,
			huh.NewOption(fmt.Sprintf("%s %s", meta.Icon, meta.Name), meta.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(transaction.TypeExpense)),
					huh.NewOption("Income", string(transaction.TypeIncome)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description is required")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || amount <= 0 {
						return fmt.Errorf("amount must be a number greater than 0")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("date").
				Title("Date (YYYY-MM-DD)").
				Value(&m.formDate),

			huh.NewInput().
				Key("notes").
				Title("Notes (optional)").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case addedMsg:
		m.status = fmt.Sprintf("Saved %s %s.",
			transaction.FormatCurrency(msg.tx.Amount), msg.tx.Description)
		m.submitting = false
		m.resetForm()

		return m, tea.Batch(m.form.Init(), clearNoticeCmd())

	case clearNoticeMsg:
		m.status = ""
		return m, nil
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.submitting = true

	return m, m.addCmd()
}

func (m AddModel) View() string {
	notice := ""
	if m.status != "" {
		notice = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render(m.status) + "\n\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(notice + m.form.View())
}

// Messages

type addedMsg struct {
	tx transaction.Transaction
}

type clearNoticeMsg struct{}

func clearNoticeCmd() tea.Cmd {
	return tea.Tick(successNoticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}

func (m AddModel) addCmd() tea.Cmd {
	candidate := transaction.Candidate{
		Type:        m.form.GetString("type"),
		Description: m.form.GetString("description"),
		Amount:      m.form.GetString("amount"),
		Category:    m.form.GetString("category"),
		Date:        m.form.GetString("date"),
		Notes:       m.form.GetString("notes"),
	}

	return func() tea.Msg {
		return addedMsg{tx: m.txService.Add(candidate)}
	}
}
