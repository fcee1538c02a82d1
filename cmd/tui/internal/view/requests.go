package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cardly/cmd/tui/internal/client"
)

type requestFields struct {
	Quantity string
	Notes    string
	Confirm  bool
}

// RequestsModel lists the establishment's card requests and lets the
// operator order more cards or cancel a pending order.
type RequestsModel struct {
	CommonModel
	api *client.Client

	table    table.Model
	requests []client.CardRequest

	form   *huh.Form
	fields *requestFields

	loading bool
	status  string
	err     error
}

func NewRequestsModel(api *client.Client) RequestsModel {
	columns := []table.Column{
		{Title: "Created", Width: 12},
		{Title: "Qty", Width: 6},
		{Title: "Status", Width: 11},
		{Title: "Shipped", Width: 12},
		{Title: "Delivered", Width: 12},
		{Title: "Notes", Width: 30},
	}

	return RequestsModel{
		api:     api,
		table:   newTable(columns),
		loading: true,
	}
}

func (m RequestsModel) Title() string { return "Card Requests" }

func (m RequestsModel) ShortHelp() string {
	if m.form != nil {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | n: new request | c: cancel selected | r: refresh"
}

func (m RequestsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RequestsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRequestsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.requests = msg.requests
			m.refreshTable()
		}

		return m, nil

	case requestSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.status = msg.status
		m.loading = true

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterForm()
		case "c":
			req := m.selected()
			if req == nil {
				return m, nil
			}

			if req.Status != "PENDING" {
				m.status = ""
				m.err = fmt.Errorf("only pending requests can be cancelled")

				return m, nil
			}

			return m, m.cancelCmd(req)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RequestsModel) enterForm() (tea.Model, tea.Cmd) {
	m.fields = &requestFields{Quantity: "50", Confirm: true}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Quantity").
				Value(&m.fields.Quantity).
				Validate(validateQuantity),

			huh.NewText().
				Title("Notes").
				Lines(3).
				Value(&m.fields.Notes),

			huh.NewConfirm().
				Title("Submit request?").
				Value(&m.fields.Confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.status = ""
	m.err = nil

	return m, m.form.Init()
}

func (m RequestsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.form = nil

	if !m.fields.Confirm {
		return m, nil
	}

	return m, m.createCmd()
}

func (m RequestsModel) View() string {
	if m.form != nil {
		return lipgloss.NewStyle().Padding(2).Render(
			lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(48).
				Render(m.form.View()))
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading requests...")
	}

	footer := ""
	if m.status != "" {
		footer = activeStyle(m.status)
	}

	if m.err != nil {
		footer = errorStyle("Error: " + FormatError(m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().PaddingTop(1).Render(footer),
	))
}

func (m RequestsModel) selected() *client.CardRequest {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.requests) {
		return nil
	}

	return &m.requests[i]
}

func (m *RequestsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.requests))

	for _, r := range m.requests {
		rows = append(rows, table.Row{
			FormatDate(r.CreatedAt),
			strconv.Itoa(r.Quantity),
			r.Status,
			optionalDate(r.ShippedAt),
			optionalDate(r.DeliveredAt),
			r.Notes,
		})
	}

	m.table.SetRows(rows)
}

func validateQuantity(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("quantity must be a positive whole number")
	}

	return nil
}

type loadRequestsMsg struct {
	requests []client.CardRequest
	err      error
}

func (m RequestsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		requests, err := m.api.Requests(ctx)

		return loadRequestsMsg{requests: requests, err: err}
	}
}

type requestSavedMsg struct {
	status string
	err    error
}

func (m RequestsModel) createCmd() tea.Cmd {
	fields := *m.fields

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		qty, _ := strconv.Atoi(strings.TrimSpace(fields.Quantity))

		req, err := m.api.CreateRequest(ctx, qty, strings.TrimSpace(fields.Notes))
		if err != nil {
			return requestSavedMsg{err: err}
		}

		return requestSavedMsg{status: fmt.Sprintf("Requested %d cards", req.Quantity)}
	}
}

func (m RequestsModel) cancelCmd(req *client.CardRequest) tea.Cmd {
	id := req.ID

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if _, err := m.api.CancelRequest(ctx, id, "cancelled at terminal"); err != nil {
			return requestSavedMsg{err: err}
		}

		return requestSavedMsg{status: "Request cancelled"}
	}
}
