package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/commission"
)

// Kind is the monetary effect of a transaction on its card.
type Kind string

const (
	KindRecharge Kind = "RECHARGE"
	KindUsage    Kind = "USAGE"
)

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// Transaction is one balance mutation applied to a card.
type Transaction struct {
	ID              uuid.UUID
	Kind            Kind
	Amount          decimal.Decimal
	Status          Status
	CardID          uuid.UUID
	EstablishmentID uuid.UUID
	FranchiseeID    uuid.UUID
	CustomerName    string
	CustomerPhone   string
	ReceiptRef      string
	Commission      *commission.Commission // usage only; loaded via JOIN
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

func (t *Transaction) Owner() access.Owner {
	return access.Owner{FranchiseeID: t.FranchiseeID, EstablishmentID: &t.EstablishmentID}
}

// Customer is the optional end customer named on a usage.
type Customer struct {
	Name  string
	Phone string
}

// ValidateAmount accepts positive amounts with at most two decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperr.Validation("amount must be greater than zero, got %s", amount)
	}

	if !amount.Equal(amount.Round(2)) {
		return apperr.Validation("amount supports two decimal places, got %s", amount)
	}

	return nil
}

// Summary aggregates the transactions matched by a list filter.
type Summary struct {
	Count    int
	Volume   decimal.Decimal
	Average  decimal.Decimal
	ByStatus map[Status]int
}

// StatusTotal is one GROUP BY status row of a summary query.
type StatusTotal struct {
	Status Status
	Count  int
	Volume decimal.Decimal
}

func NewSummary(totals []StatusTotal) *Summary {
	s := &Summary{Volume: decimal.Zero, Average: decimal.Zero, ByStatus: make(map[Status]int, len(totals))}

	for _, t := range totals {
		s.Count += t.Count
		s.Volume = s.Volume.Add(t.Volume)
		s.ByStatus[t.Status] += t.Count
	}

	if s.Count > 0 {
		s.Average = s.Volume.Div(decimal.NewFromInt(int64(s.Count))).Round(2)
	}

	return s
}
