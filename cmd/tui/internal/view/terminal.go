package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cardly/cmd/tui/internal/client"
)

type terminalState int

const (
	terminalStateLookup terminalState = iota
	terminalStateForm
	terminalStateSubmitting
)

// ledgerFields is shared with the huh form by pointer, so it survives the
// value copies bubbletea makes of the model.
type ledgerFields struct {
	Operation string
	Amount    string
	Name      string
	Phone     string
}

// TerminalModel is the point-of-sale screen: the operator types the card
// code the customer presents, then recharges or debits it.
type TerminalModel struct {
	CommonModel
	api *client.Client

	state     terminalState
	codeInput textinput.Model
	card      *client.Card
	form      *huh.Form
	fields    *ledgerFields

	status string
	err    error
}

func NewTerminalModel(api *client.Client) TerminalModel {
	ti := textinput.New()
	ti.Placeholder = "CRD-XXXXXXXXXX"
	ti.CharLimit = 32
	ti.Width = 24
	ti.Prompt = "Card code: "
	ti.Focus()

	return TerminalModel{api: api, codeInput: ti}
}

func (m TerminalModel) Title() string { return "Card Terminal" }

func (m TerminalModel) ShortHelp() string {
	if m.state == terminalStateForm {
		return "Esc: new card | Enter/Tab: navigate form"
	}

	return "Esc: back | Enter: look up"
}

func (m TerminalModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m TerminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.card = msg.card

		return m.enterForm()

	case ledgerDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m.enterForm()
		}

		m.err = nil
		m.card = msg.card
		m.status = receipt(msg.card)

		return m.enterForm()
	}

	switch m.state {
	case terminalStateLookup:
		return m.updateLookup(msg)
	case terminalStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m TerminalModel) updateLookup(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			code := strings.TrimSpace(m.codeInput.Value())
			if code == "" {
				return m, nil
			}

			m.status = ""

			return m, m.lookupCmd(code)
		}
	}

	var cmd tea.Cmd
	m.codeInput, cmd = m.codeInput.Update(msg)

	return m, cmd
}

func (m TerminalModel) enterForm() (tea.Model, tea.Cmd) {
	m.fields = &ledgerFields{Operation: "use"}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Operation").
				Options(
					huh.NewOption("Use (debit)", "use"),
					huh.NewOption("Recharge", "recharge"),
				).
				Value(&m.fields.Operation),

			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&m.fields.Amount).
				Validate(validateAmount),

			huh.NewInput().
				Title("Customer name").
				Value(&m.fields.Name),

			huh.NewInput().
				Title("Customer phone").
				Value(&m.fields.Phone),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = terminalStateForm
	m.codeInput.Blur()

	return m, m.form.Init()
}

func (m TerminalModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.state = terminalStateLookup
		m.form = nil
		m.card = nil
		m.codeInput.SetValue("")
		m.codeInput.Focus()

		return m, textinput.Blink
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = terminalStateSubmitting

	return m, m.submitCmd()
}

func (m TerminalModel) View() string {
	var b strings.Builder

	if m.card == nil {
		b.WriteString(m.codeInput.View())
	} else {
		fmt.Fprintf(&b, "Card %s  %s\nBalance: %s\n",
			m.card.Code, activeStyle(m.card.Status), FormatAmount(m.card.Balance))
	}

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render(m.status) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle(FormatError(m.err)) + "\n")
	}

	switch m.state {
	case terminalStateForm:
		b.WriteString("\n" + lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View()))
	case terminalStateSubmitting:
		b.WriteString("\nSubmitting...")
	}

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}

	if !d.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}

	if !d.Equal(d.Round(2)) {
		return fmt.Errorf("at most two decimal places")
	}

	return nil
}

func receipt(c *client.Card) string {
	tx := c.Transaction
	if tx == nil {
		return ""
	}

	s := fmt.Sprintf("%s %s committed, new balance %s", tx.Kind, FormatAmount(tx.Amount), FormatAmount(c.Balance))
	if tx.CommissionAmount != nil {
		s += fmt.Sprintf(" (commission %s)", FormatAmount(*tx.CommissionAmount))
	}

	return s
}

type cardLoadedMsg struct {
	card *client.Card
	err  error
}

func (m TerminalModel) lookupCmd(code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		card, err := m.api.CardByCode(ctx, code)

		return cardLoadedMsg{card: card, err: err}
	}
}

type ledgerDoneMsg struct {
	card *client.Card
	err  error
}

func (m TerminalModel) submitCmd() tea.Cmd {
	cardID := m.card.ID
	fields := *m.fields

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		params := client.LedgerParams{
			Amount:        decimal.RequireFromString(strings.TrimSpace(fields.Amount)),
			CustomerName:  strings.TrimSpace(fields.Name),
			CustomerPhone: strings.TrimSpace(fields.Phone),
		}

		var (
			card *client.Card
			err  error
		)

		if fields.Operation == "recharge" {
			card, err = m.api.Recharge(ctx, cardID, params)
		} else {
			card, err = m.api.Use(ctx, cardID, params)
		}

		return ledgerDoneMsg{card: card, err: err}
	}
}
