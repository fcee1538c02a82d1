package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Period is a reporting window for the transaction report.
type Period int

const (
	PeriodToday Period = iota
	PeriodThisWeek
	PeriodThisMonth
	PeriodLastMonth
	PeriodAll
	PeriodCustom
)

func (p Period) String() string {
	switch p {
	case PeriodToday:
		return "Today"
	case PeriodThisWeek:
		return "This Week"
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	case PeriodAll:
		return "All Time"
	case PeriodCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// Range returns the first and last day of p relative to now. PeriodAll and
// PeriodCustom have no fixed range.
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch p {
	case PeriodToday:
		return day, day
	case PeriodThisWeek:
		offset := int(day.Weekday())
		if offset == 0 {
			offset = 7
		}

		return day.AddDate(0, 0, 1-offset), day
	case PeriodThisMonth:
		return day.AddDate(0, 0, 1-day.Day()), day
	case PeriodLastMonth:
		first := day.AddDate(0, 0, 1-day.Day()).AddDate(0, -1, 0)
		return first, first.AddDate(0, 1, -1)
	}

	return time.Time{}, time.Time{}
}

// PeriodSelectedMsg is emitted once the operator picked a range. Start and
// End are nil for all time.
type PeriodSelectedMsg struct {
	Period Period
	Start  *time.Time
	End    *time.Time
}

type pickerState int

const (
	pickerStateSelect pickerState = iota
	pickerStateCustom
)

type PeriodPicker struct {
	state    pickerState
	selected Period

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewPeriodPicker() PeriodPicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "From: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "To:   "

	return PeriodPicker{startInput: si, endInput: ei}
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.state == pickerStateSelect {
			return m.updateSelect(key)
		}

		if next, cmd, handled := m.updateCustom(key); handled {
			return next, cmd
		}
	}

	if m.state != pickerStateCustom {
		return m, nil
	}

	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m PeriodPicker) updateSelect(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > PeriodToday {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < PeriodCustom {
			m.selected++
		}
	case tea.KeyEnter:
		switch m.selected {
		case PeriodCustom:
			m.state = pickerStateCustom
			m.focusIndex = 0
			m.startInput.Focus()

			return m, textinput.Blink
		case PeriodAll:
			return m, selected(PeriodAll, nil, nil)
		}

		start, end := m.selected.Range(time.Now())

		return m, selected(m.selected, &start, &end)
	}

	return m, nil
}

func (m PeriodPicker) updateCustom(msg tea.KeyMsg) (PeriodPicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
		} else {
			m.endInput.Focus()
		}

		return m, textinput.Blink, true
	case "enter":
		start, err := time.Parse(time.DateOnly, m.startInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid start date (YYYY-MM-DD)")
			return m, nil, true
		}

		end, err := time.Parse(time.DateOnly, m.endInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid end date (YYYY-MM-DD)")
			return m, nil, true
		}

		if end.Before(start) {
			m.err = fmt.Errorf("end date is before start date")
			return m, nil, true
		}

		m.err = nil

		return m, selected(PeriodCustom, &start, &end), true
	case "esc":
		m.state = pickerStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

func selected(p Period, start, end *time.Time) tea.Cmd {
	return func() tea.Msg {
		return PeriodSelectedMsg{Period: p, Start: start, End: end}
	}
}

func (m PeriodPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = "\n\n" + errorStyle(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == pickerStateCustom {
		return fmt.Sprintf(
			"Custom range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Report period:\n\n"

	for p := PeriodToday; p <= PeriodCustom; p++ {
		cursor := " "
		if m.selected == p {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, p)
	}

	s += "\n(Enter to select, Esc to back)"

	return lipgloss.NewStyle().Render(s + errStr)
}

// IsSelecting reports whether Esc should leave the picker's parent view.
func (m PeriodPicker) IsSelecting() bool {
	return m.state == pickerStateSelect
}
