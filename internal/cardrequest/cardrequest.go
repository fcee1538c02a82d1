// Package cardrequest tracks an establishment's requests to its franchisee for
// more physical cards.
package cardrequest

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusDenied    Status = "DENIED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusDenied},
	StatusApproved: {StatusShipped},
	StatusShipped:  {StatusDelivered},
}

// Transition fails unless to is directly reachable from from.
func Transition(from, to Status) error {
	if slices.Contains(transitions[from], to) {
		return nil
	}

	return apperr.InvalidTransition("card request", from, to)
}

type CardRequest struct {
	ID              uuid.UUID
	EstablishmentID uuid.UUID
	FranchiseeID    uuid.UUID
	Quantity        int
	Status          Status
	Notes           string
	ApprovedAt      *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

func (r *CardRequest) Owner() access.Owner {
	return access.Owner{FranchiseeID: r.FranchiseeID, EstablishmentID: &r.EstablishmentID}
}

// reached reports whether the request has passed through s.
func (r *CardRequest) reached(s Status) bool {
	switch s {
	case StatusApproved:
		return r.Status == StatusApproved || r.Status == StatusShipped || r.Status == StatusDelivered
	case StatusShipped:
		return r.Status == StatusShipped || r.Status == StatusDelivered
	case StatusDelivered:
		return r.Status == StatusDelivered
	}

	return false
}

// Dates are caller-supplied milestone timestamps.
type Dates struct {
	ApprovedAt  *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
}

// Advance moves the request to status to, taking supplied dates and stamping
// at for the milestone just entered when none was supplied.
func (r *CardRequest) Advance(to *Status, dates Dates, at time.Time) error {
	if to != nil && *to != r.Status {
		if err := Transition(r.Status, *to); err != nil {
			return err
		}

		r.Status = *to
	}

	if dates.ApprovedAt != nil {
		r.ApprovedAt = dates.ApprovedAt
	}

	if dates.ShippedAt != nil {
		r.ShippedAt = dates.ShippedAt
	}

	if dates.DeliveredAt != nil {
		r.DeliveredAt = dates.DeliveredAt
	}

	switch r.Status {
	case StatusApproved:
		stamp(&r.ApprovedAt, at)
	case StatusShipped:
		stamp(&r.ShippedAt, at)
	case StatusDelivered:
		stamp(&r.DeliveredAt, at)
	}

	return r.validateDates()
}

func stamp(field **time.Time, at time.Time) {
	if *field == nil {
		*field = &at
	}
}

func (r *CardRequest) validateDates() error {
	milestones := []struct {
		status Status
		at     *time.Time
	}{
		{StatusApproved, r.ApprovedAt},
		{StatusShipped, r.ShippedAt},
		{StatusDelivered, r.DeliveredAt},
	}

	var prev *time.Time

	for _, m := range milestones {
		if m.at == nil {
			continue
		}

		if !r.reached(m.status) {
			return apperr.Validation("%s date set but request is %s", m.status, r.Status)
		}

		if prev != nil && m.at.Before(*prev) {
			return apperr.Validation("%s date precedes the previous milestone", m.status)
		}

		prev = m.at
	}

	return nil
}
