// Package display tracks the point-of-sale display units a franchisee
// installs at its establishments.
package display

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/access"
	"github.com/MrJamesThe3rd/cardly/internal/apperr"
)

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusInstalled   Status = "INSTALLED"
	StatusMaintenance Status = "MAINTENANCE"
)

var transitions = map[Status][]Status{
	StatusAvailable:   {StatusInstalled},
	StatusInstalled:   {StatusAvailable, StatusMaintenance},
	StatusMaintenance: {StatusInstalled, StatusAvailable},
}

func Transition(from, to Status) error {
	if slices.Contains(transitions[from], to) {
		return nil
	}

	return apperr.InvalidTransition("display", from, to)
}

type Display struct {
	ID              uuid.UUID
	FranchiseeID    uuid.UUID
	EstablishmentID *uuid.UUID
	UnitType        string
	Status          Status
	InstalledAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

func (d *Display) Owner() access.Owner {
	return access.Owner{FranchiseeID: d.FranchiseeID, EstablishmentID: d.EstablishmentID}
}

// Change is a requested edit of a display's binding and status.
type Change struct {
	Status             *Status
	EstablishmentID    *uuid.UUID
	ClearEstablishment bool
	InstalledAt        *time.Time
}

// Apply resolves c against d. Binding an establishment without a status
// implies INSTALLED; clearing it implies AVAILABLE.
func (d *Display) Apply(c Change, at time.Time) error {
	if c.EstablishmentID != nil && c.ClearEstablishment {
		return apperr.Validation("cannot bind and clear the establishment at once")
	}

	target := d.Status

	switch {
	case c.Status != nil:
		target = *c.Status
	case c.EstablishmentID != nil:
		target = StatusInstalled
	case c.ClearEstablishment:
		target = StatusAvailable
	}

	rebound := c.EstablishmentID != nil &&
		(d.EstablishmentID == nil || *d.EstablishmentID != *c.EstablishmentID)

	if c.EstablishmentID != nil {
		d.EstablishmentID = c.EstablishmentID
	}

	if c.ClearEstablishment || (target == StatusAvailable && c.EstablishmentID == nil) {
		d.EstablishmentID = nil
	}

	if target != d.Status {
		if err := Transition(d.Status, target); err != nil {
			return err
		}

		if target == StatusInstalled && c.InstalledAt == nil {
			d.InstalledAt = &at
		}

		d.Status = target
	}

	// A move to another establishment is a new installation.
	if rebound && d.Status == StatusInstalled && c.InstalledAt == nil {
		d.InstalledAt = &at
	}

	if c.InstalledAt != nil {
		if d.Status != StatusInstalled {
			return apperr.Validation("installation date set but display is %s", d.Status)
		}

		d.InstalledAt = c.InstalledAt
	}

	if d.Status == StatusInstalled && d.EstablishmentID == nil {
		return apperr.Validation("an installed display must be bound to an establishment")
	}

	if d.Status == StatusAvailable {
		d.InstalledAt = nil
	}

	return nil
}
