package card

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/card"
	"github.com/MrJamesThe3rd/cardly/internal/transaction"
)

type cardResponse struct {
	ID              uuid.UUID    `json:"id"`
	Code            string       `json:"code"`
	Balance         string       `json:"balance"`
	Status          card.Status  `json:"status"`
	FranchiseeID    uuid.UUID    `json:"franchisee_id"`
	EstablishmentID *uuid.UUID   `json:"establishment_id,omitempty"`
	CustomerID      *uuid.UUID   `json:"customer_id,omitempty"`
	ActivatedAt     *time.Time   `json:"activated_at,omitempty"`
	UsedAt          *time.Time   `json:"used_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       *time.Time   `json:"updated_at,omitempty"`
	Transaction     *ledgerEntry `json:"transaction,omitempty"`
}

// ledgerEntry is the transaction a recharge or use just committed.
type ledgerEntry struct {
	ID               uuid.UUID        `json:"id"`
	Kind             transaction.Kind `json:"kind"`
	Amount           string           `json:"amount"`
	CommissionID     *uuid.UUID       `json:"commission_id,omitempty"`
	CommissionAmount string           `json:"commission_amount,omitempty"`
}

func toResponse(c *card.Card) cardResponse {
	return cardResponse{
		ID:              c.ID,
		Code:            c.Code,
		Balance:         c.Balance.StringFixed(2),
		Status:          c.Status,
		FranchiseeID:    c.FranchiseeID,
		EstablishmentID: c.EstablishmentID,
		CustomerID:      c.CustomerID,
		ActivatedAt:     c.ActivatedAt,
		UsedAt:          c.UsedAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toResponseList(cards []*card.Card) []cardResponse {
	resp := make([]cardResponse, len(cards))
	for i, c := range cards {
		resp[i] = toResponse(c)
	}

	return resp
}

func toLedgerEntry(tx *transaction.Transaction) *ledgerEntry {
	entry := &ledgerEntry{
		ID:     tx.ID,
		Kind:   tx.Kind,
		Amount: tx.Amount.StringFixed(2),
	}

	if tx.Commission != nil {
		entry.CommissionID = &tx.Commission.ID
		entry.CommissionAmount = tx.Commission.Amount.StringFixed(2)
	}

	return entry
}
