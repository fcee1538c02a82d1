package audit

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/access"
)

// Entry is an immutable record of one mutating action. Before and After are
// snapshots of the entity and are stored as JSON.
type Entry struct {
	ActorID  uuid.UUID
	Role     access.Role
	Action   string
	Entity   string
	EntityID uuid.UUID
	Before   any
	After    any
}

func Record(actor access.Actor, action, entity string) Entry {
	return Entry{
		ActorID: actor.UserID,
		Role:    actor.Role,
		Action:  action,
		Entity:  entity,
	}
}
