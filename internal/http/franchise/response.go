package franchise

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/franchise"
	"github.com/MrJamesThe3rd/cardly/internal/gateway"
)

type linkageResponse struct {
	State      gateway.LinkState `json:"state"`
	ExternalID string            `json:"external_id,omitempty"`
	Reason     string            `json:"reason,omitempty"`
}

type franchiseeResponse struct {
	ID             uuid.UUID       `json:"id"`
	FranchisorID   uuid.UUID       `json:"franchisor_id"`
	Name           string          `json:"name"`
	Document       string          `json:"document"`
	CommissionRate string          `json:"commission_rate"`
	Gateway        linkageResponse `json:"gateway"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

type establishmentResponse struct {
	ID           uuid.UUID       `json:"id"`
	FranchiseeID uuid.UUID       `json:"franchisee_id"`
	Name         string          `json:"name"`
	Document     string          `json:"document"`
	Gateway      linkageResponse `json:"gateway"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

func toLinkage(l gateway.Linkage) linkageResponse {
	return linkageResponse{State: l.State, ExternalID: l.ExternalID, Reason: l.Reason}
}

func toFranchiseeResponse(f *franchise.Franchisee) franchiseeResponse {
	return franchiseeResponse{
		ID:             f.ID,
		FranchisorID:   f.FranchisorID,
		Name:           f.Name,
		Document:       f.Document,
		CommissionRate: f.CommissionRate.StringFixed(2),
		Gateway:        toLinkage(f.Linkage),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func toEstablishmentResponse(e *franchise.Establishment) establishmentResponse {
	return establishmentResponse{
		ID:           e.ID,
		FranchiseeID: e.FranchiseeID,
		Name:         e.Name,
		Document:     e.Document,
		Gateway:      toLinkage(e.Linkage),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
