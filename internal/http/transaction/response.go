package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/commission"
	"github.com/MrJamesThe3rd/cardly/internal/transaction"
)

type Response struct {
	ID              uuid.UUID           `json:"id"`
	Kind            transaction.Kind    `json:"kind"`
	Amount          string              `json:"amount"`
	Status          transaction.Status  `json:"status"`
	CardID          uuid.UUID           `json:"card_id"`
	EstablishmentID uuid.UUID           `json:"establishment_id"`
	FranchiseeID    uuid.UUID           `json:"franchisee_id"`
	CustomerName    string              `json:"customer_name,omitempty"`
	CustomerPhone   string              `json:"customer_phone,omitempty"`
	ReceiptRef      string              `json:"receipt_ref,omitempty"`
	Commission      *commissionResponse `json:"commission,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       *time.Time          `json:"updated_at,omitempty"`
}

type commissionResponse struct {
	ID         uuid.UUID         `json:"id"`
	Amount     string            `json:"amount"`
	Percentage string            `json:"percentage"`
	Status     commission.Status `json:"status"`
}

type summaryResponse struct {
	Count    int                        `json:"count"`
	Volume   string                     `json:"volume"`
	Average  string                     `json:"average"`
	ByStatus map[transaction.Status]int `json:"by_status"`
}

type pageResponse struct {
	Items   []Response       `json:"items"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	Summary *summaryResponse `json:"summary"`
}

// ToResponse renders tx with its commission nested for usages.
func ToResponse(tx *transaction.Transaction) Response {
	resp := Response{
		ID:              tx.ID,
		Kind:            tx.Kind,
		Amount:          tx.Amount.StringFixed(2),
		Status:          tx.Status,
		CardID:          tx.CardID,
		EstablishmentID: tx.EstablishmentID,
		FranchiseeID:    tx.FranchiseeID,
		CustomerName:    tx.CustomerName,
		CustomerPhone:   tx.CustomerPhone,
		ReceiptRef:      tx.ReceiptRef,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}

	if c := tx.Commission; c != nil {
		resp.Commission = &commissionResponse{
			ID:         c.ID,
			Amount:     c.Amount.StringFixed(2),
			Percentage: c.Percentage.StringFixed(2),
			Status:     c.Status,
		}
	}

	return resp
}

func toPageResponse(p *transaction.Page) pageResponse {
	resp := pageResponse{
		Items:  make([]Response, len(p.Items)),
		Total:  p.Total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}

	for i, tx := range p.Items {
		resp.Items[i] = ToResponse(tx)
	}

	if s := p.Summary; s != nil {
		resp.Summary = &summaryResponse{
			Count:    s.Count,
			Volume:   s.Volume.StringFixed(2),
			Average:  s.Average.StringFixed(2),
			ByStatus: s.ByStatus,
		}
	}

	return resp
}
