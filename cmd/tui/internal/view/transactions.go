package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cardly/cmd/tui/internal/client"
)

type reportState int

const (
	reportStatePeriod reportState = iota
	reportStateTable
)

var kindFilters = []string{"", "RECHARGE", "USAGE"}

// TransactionsModel is the establishment's sales report: a page of
// transactions for a period plus the server-side summary.
type TransactionsModel struct {
	CommonModel
	api *client.Client

	state  reportState
	picker PeriodPicker
	table  table.Model

	period  PeriodSelectedMsg
	kindIdx int
	page    *client.TransactionPage
	loading bool
	err     error
}

func NewTransactionsModel(api *client.Client) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Kind", Width: 10},
		{Title: "Status", Width: 11},
		{Title: "Amount", Width: 12},
		{Title: "Customer", Width: 24},
	}

	return TransactionsModel{
		api:    api,
		picker: NewPeriodPicker(),
		table:  newTable(columns),
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	if m.state == reportStatePeriod {
		return "Esc: back | Enter: select"
	}

	return "Esc: period | k: kind filter | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.period = msg
		m.state = reportStateTable
		m.loading = true

		return m, m.loadCmd()

	case loadReportMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.page = msg.page
			m.refreshTable()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	if m.state == reportStatePeriod {
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.picker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.state = reportStatePeriod
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "k":
			m.kindIdx = (m.kindIdx + 1) % len(kindFilters)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) View() string {
	if m.state == reportStatePeriod {
		return lipgloss.NewStyle().Padding(2).Render(m.picker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle("Error: " + FormatError(m.err)))
	}

	kind := kindFilters[m.kindIdx]
	if kind == "" {
		kind = "All"
	}

	header := fmt.Sprintf("Period: %s | [k] Kind: %s", activeStyle(m.period.Period.String()), activeStyle(kind))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		m.summaryView(),
	))
}

func (m TransactionsModel) summaryView() string {
	if m.page == nil || m.page.Summary == nil {
		return ""
	}

	s := m.page.Summary

	statuses := make([]string, 0, len(s.ByStatus))
	for status, n := range s.ByStatus {
		statuses = append(statuses, fmt.Sprintf("%s %d", status, n))
	}

	sort.Strings(statuses)

	shown := ""
	if len(m.page.Items) < m.page.Total {
		shown = fmt.Sprintf(" (showing %d)", len(m.page.Items))
	}

	return lipgloss.NewStyle().PaddingTop(1).Render(fmt.Sprintf(
		"Count: %d%s | Volume: %s | Average: %s\n%s",
		s.Count, shown, FormatAmount(s.Volume), FormatAmount(s.Average), strings.Join(statuses, " | "),
	))
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.page.Items))

	for _, tx := range m.page.Items {
		rows = append(rows, table.Row{
			FormatDate(tx.CreatedAt),
			tx.Kind,
			tx.Status,
			FormatAmount(tx.Amount),
			tx.CustomerName,
		})
	}

	m.table.SetRows(rows)
}

type loadReportMsg struct {
	page *client.TransactionPage
	err  error
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	filter := client.TransactionFilter{
		Kind:      kindFilters[m.kindIdx],
		StartDate: m.period.Start,
		EndDate:   m.period.End,
		Limit:     200,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		page, err := m.api.Transactions(ctx, filter)

		return loadReportMsg{page: page, err: err}
	}
}
