package access

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/database"
)

type scopeKind int

const (
	scopeNothing scopeKind = iota
	scopeUnrestricted
	scopeFranchisee
	scopeEstablishment
)

// Scope is the row predicate derived from an Actor: unrestricted, owned by a
// franchisee, or owned by an establishment. The zero value matches nothing.
type Scope struct {
	kind scopeKind
	id   uuid.UUID
}

func Unrestricted() Scope { return Scope{kind: scopeUnrestricted} }

func Franchisee(id uuid.UUID) Scope { return Scope{kind: scopeFranchisee, id: id} }

func Establishment(id uuid.UUID) Scope { return Scope{kind: scopeEstablishment, id: id} }

func Nothing() Scope { return Scope{} }

// Owner identifies who a row belongs to.
type Owner struct {
	FranchiseeID    uuid.UUID
	EstablishmentID *uuid.UUID
}

func (s Scope) Permits(o Owner) bool {
	switch s.kind {
	case scopeUnrestricted:
		return true
	case scopeFranchisee:
		return o.FranchiseeID == s.id
	case scopeEstablishment:
		return o.EstablishmentID != nil && *o.EstablishmentID == s.id
	}

	return false
}

// Narrow restricts an unrestricted scope to one franchisee. A franchisee scope
// narrowed to another franchisee matches nothing; other scopes are unchanged.
func (s Scope) Narrow(franchiseeID *uuid.UUID) Scope {
	if franchiseeID == nil {
		return s
	}

	switch s.kind {
	case scopeUnrestricted:
		return Franchisee(*franchiseeID)
	case scopeFranchisee:
		if s.id != *franchiseeID {
			return Nothing()
		}
	}

	return s
}

// Columns names the owner columns of the table a query reads.
// An empty column means the table has no such owner.
type Columns struct {
	Franchisee    string
	Establishment string
}

// Apply adds the scope predicate to w.
func (s Scope) Apply(w *database.Where, cols Columns) {
	switch s.kind {
	case scopeUnrestricted:
		return
	case scopeFranchisee:
		if cols.Franchisee != "" {
			w.Add(cols.Franchisee+" = ?", s.id)
			return
		}
	case scopeEstablishment:
		if cols.Establishment != "" {
			w.Add(cols.Establishment+" = ?", s.id)
			return
		}
	}

	w.Add("FALSE")
}

func (s Scope) String() string {
	switch s.kind {
	case scopeUnrestricted:
		return "unrestricted"
	case scopeFranchisee:
		return "franchisee:" + s.id.String()
	case scopeEstablishment:
		return "establishment:" + s.id.String()
	}

	return "nothing"
}
