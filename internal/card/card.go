package card

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
)

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusActive    Status = "ACTIVE"
	StatusUsed      Status = "USED"
	StatusExpired   Status = "EXPIRED"
	StatusBlocked   Status = "BLOCKED"
)

// Event is something that happens to a card and may move it to another status.
type Event string

const (
	EventRecharge Event = "recharge"
	EventDebit    Event = "debit"
	EventDeplete  Event = "deplete"
	EventActivate Event = "activate"
	EventBlock    Event = "block"
	EventSuspend  Event = "suspend"
)

var transitions = map[Status]map[Event]Status{
	StatusAvailable: {
		EventRecharge: StatusActive,
		EventActivate: StatusActive,
		EventBlock:    StatusExpired,
		EventSuspend:  StatusBlocked,
	},
	StatusActive: {
		EventRecharge: StatusActive,
		EventDebit:    StatusActive,
		EventDeplete:  StatusUsed,
		EventActivate: StatusActive,
		EventBlock:    StatusExpired,
		EventSuspend:  StatusBlocked,
	},
	StatusUsed: {
		EventRecharge: StatusActive,
		EventBlock:    StatusExpired,
		EventSuspend:  StatusBlocked,
	},
	StatusExpired: {
		EventActivate: StatusActive,
		EventSuspend:  StatusBlocked,
	},
	StatusBlocked: {
		EventActivate: StatusActive,
		EventBlock:    StatusExpired,
	},
}

// Transition returns the status a card in from moves to on e.
func Transition(from Status, e Event) (Status, error) {
	to, ok := transitions[from][e]
	if !ok {
		return from, apperr.New(apperr.KindInvalidTransition, "card cannot %s while %s", e, from)
	}

	return to, nil
}

type Card struct {
	ID              uuid.UUID
	Code            string
	Balance         decimal.Decimal
	Status          Status
	FranchiseeID    uuid.UUID
	EstablishmentID *uuid.UUID
	CustomerID      *uuid.UUID
	ActivatedAt     *time.Time
	UsedAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

func (c *Card) Owner() access.Owner {
	return access.Owner{FranchiseeID: c.FranchiseeID, EstablishmentID: c.EstablishmentID}
}

// Credit adds amount to the balance.
func (c *Card) Credit(amount decimal.Decimal, at time.Time) error {
	to, err := Transition(c.Status, EventRecharge)
	if err != nil {
		return err
	}

	c.Balance = c.Balance.Add(amount)
	c.enter(to, at)

	return nil
}

// Debit subtracts amount from the balance. A debit that empties the card
// marks it USED.
func (c *Card) Debit(amount decimal.Decimal, at time.Time) error {
	if c.Balance.LessThan(amount) {
		return apperr.InsufficientBalance(c.Balance, amount)
	}

	remaining := c.Balance.Sub(amount)

	event := EventDebit
	if remaining.IsZero() {
		event = EventDeplete
	}

	to, err := Transition(c.Status, event)
	if err != nil {
		return err
	}

	c.Balance = remaining
	c.enter(to, at)

	return nil
}

// Apply runs an administrative event that leaves the balance alone.
func (c *Card) Apply(e Event, at time.Time) error {
	switch e {
	case EventActivate, EventBlock, EventSuspend:
	default:
		return apperr.Validation("%s is not an administrative card event", e)
	}

	to, err := Transition(c.Status, e)
	if err != nil {
		return err
	}

	c.enter(to, at)

	return nil
}

func (c *Card) enter(to Status, at time.Time) {
	if to == StatusActive && c.ActivatedAt == nil {
		c.ActivatedAt = &at
	}

	if to == StatusUsed {
		c.UsedAt = &at
	}

	c.Status = to
}
