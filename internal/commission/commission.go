package commission

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

var hundred = decimal.NewFromInt(100)

// Calculate returns round(amount * ratePercent / 100, 2).
func Calculate(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePercent).Div(hundred).Round(2)
}

// Commission is the franchisee's share of one usage transaction.
type Commission struct {
	ID              uuid.UUID
	Amount          decimal.Decimal
	Percentage      decimal.Decimal
	Status          Status
	FranchiseeID    uuid.UUID
	EstablishmentID uuid.UUID
	TransactionID   uuid.UUID
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// New derives the commission of a usage transaction. rate is snapshotted.
func New(transactionID, franchiseeID, establishmentID uuid.UUID, amount, rate decimal.Decimal) *Commission {
	return &Commission{
		Amount:          Calculate(amount, rate),
		Percentage:      rate,
		Status:          StatusPending,
		FranchiseeID:    franchiseeID,
		EstablishmentID: establishmentID,
		TransactionID:   transactionID,
	}
}

func (c *Commission) Owner() access.Owner {
	return access.Owner{FranchiseeID: c.FranchiseeID, EstablishmentID: &c.EstablishmentID}
}

// Transition moves c to status. Only PENDING commissions change.
func (c *Commission) Transition(to Status, at time.Time) error {
	if c.Status != StatusPending || (to != StatusPaid && to != StatusCancelled) {
		return apperr.InvalidTransition("commission", c.Status, to)
	}

	c.Status = to
	if to == StatusPaid {
		c.PaidAt = &at
	}

	return nil
}
