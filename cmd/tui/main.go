package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/cmd/tui/internal/client"
	"github.com/MrJamesThe3rd/cardly/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/cardly/internal/config"
	"github.com/MrJamesThe3rd/cardly/internal/observability"
)

type model struct {
	api *client.Client

	currentView View

	terminalView     view.TerminalModel
	transactionsView view.TransactionsModel
	requestsView     view.RequestsModel
}

type View int

const (
	ViewMenu         View = 0
	ViewTerminal     View = 1
	ViewTransactions View = 2
	ViewRequests     View = 3
)

func initialModel(logger *zap.Logger) model {
	_ = godotenv.Load()

	cfg, err := config.LoadTerminal()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	view.SetRequestTimeout(cfg.Timeout)

	api := client.New(cfg.APIURL, cfg.Token, cfg.Timeout)

	return model{
		api:              api,
		currentView:      ViewMenu,
		terminalView:     view.NewTerminalModel(api),
		transactionsView: view.NewTransactionsModel(api),
		requestsView:     view.NewRequestsModel(api),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTerminal
				m.terminalView = view.NewTerminalModel(m.api)

				return m, m.terminalView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.api)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewRequests
				m.requestsView = view.NewRequestsModel(m.api)

				return m, m.requestsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTerminal:
		var newModel tea.Model
		newModel, cmd = m.terminalView.Update(msg)
		m.terminalView = newModel.(view.TerminalModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewRequests:
		var newModel tea.Model
		newModel, cmd = m.requestsView.Update(msg)
		m.requestsView = newModel.(view.RequestsModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Cardly Terminal\n\n" +
				"1. Card Terminal\n" +
				"2. Transactions\n" +
				"3. Card Requests\n\n" +
				"q. Quit",
		)
	case ViewTerminal:
		current = m.terminalView
	case ViewTransactions:
		current = m.transactionsView
	case ViewRequests:
		current = m.requestsView
	default:
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingLeft(2).Render(current.Title()),
		current.View(),
		lipgloss.NewStyle().PaddingLeft(2).Render(help),
	)
}

func main() {
	logger, err := observability.NewLogger("error")
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	p := tea.NewProgram(initialModel(logger))
	if _, err := p.Run(); err != nil {
		logger.Fatal("failed to run TUI", zap.Error(err))
	}
}
