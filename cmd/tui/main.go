package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/tallyhq/tally/cmd/tui/internal/view"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/kv/boltkv"
	"github.com/tallyhq/tally/internal/transaction"
	txStore "github.com/tallyhq/tally/internal/transaction/store"
)

type model struct {
	txService *transaction.Service

	currentView View

	dashboardView view.DashboardModel
	addView       view.AddModel
	historyView   view.HistoryModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewAdd       View = 2
	ViewHistory   View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	substrate, err := boltkv.Open(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err, "path", cfg.DB.Path)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New(substrate))

	return model{
		txService:     txSvc,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(txSvc),
		addView:       view.NewAddModel(txSvc),
		historyView:   view.NewHistoryModel(txSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.txService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.txService)

				return m, m.addView.Init()
			case "3":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.txService)

				return m, m.historyView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Tally\n\n" +
				"1. Dashboard\n" +
				"2. Add Transaction\n" +
				"3. History\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewAdd:
		return m.addView.View()
	case ViewHistory:
		return m.historyView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
