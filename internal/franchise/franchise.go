// Package franchise manages the franchisees and establishments that own every
// card, request and display.
package franchise

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/gateway"
)

var maxRate = decimal.NewFromInt(100)

type Franchisee struct {
	ID             uuid.UUID
	FranchisorID   uuid.UUID
	Name           string
	Document       string
	CommissionRate decimal.Decimal // percent, 0..100
	Linkage        gateway.Linkage
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

func (f *Franchisee) Owner() access.Owner {
	return access.Owner{FranchiseeID: f.ID}
}

func (f *Franchisee) Customer() gateway.Customer {
	return gateway.Customer{Name: f.Name, Document: f.Document, ExternalReference: "franchisee:" + f.ID.String()}
}

type Establishment struct {
	ID           uuid.UUID
	FranchiseeID uuid.UUID
	Name         string
	Document     string
	Linkage      gateway.Linkage
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func (e *Establishment) Owner() access.Owner {
	return access.Owner{FranchiseeID: e.FranchiseeID, EstablishmentID: &e.ID}
}

func (e *Establishment) Customer() gateway.Customer {
	return gateway.Customer{Name: e.Name, Document: e.Document, ExternalReference: "establishment:" + e.ID.String()}
}

// ValidateRate checks a commission rate in percent.
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxRate) {
		return apperr.Validation("commission rate must be between 0 and 100, got %s", rate)
	}

	if !rate.Equal(rate.Round(2)) {
		return apperr.Validation("commission rate supports two decimal places, got %s", rate)
	}

	return nil
}

func validateParty(name, document string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("name is required")
	}

	if strings.TrimSpace(document) == "" {
		return apperr.Validation("document is required")
	}

	return nil
}
