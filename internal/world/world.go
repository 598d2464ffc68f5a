// Package world declares what the spawn pipeline needs from the host game:
// inbound notifications and the side effects it may issue.
package world

import (
	"errors"
	"fmt"

	"github.com/xtding233/dynamicmob/internal/catalog"
)

// ErrUnsupported is returned by a World that cannot perform a request, such
// as spawning an entity kind its version does not have.
var ErrUnsupported = errors.New("world: unsupported")

// EntityID identifies a live entity in the host world.
type EntityID string

// Reason is why an entity spawned.
type Reason uint8

const (
	ReasonNatural Reason = iota
	ReasonSpawner
	ReasonItem // spawn egg
	ReasonSynthetic
	ReasonOther
)

func (r Reason) String() string {
	switch r {
	case ReasonNatural:
		return "natural"
	case ReasonSpawner:
		return "spawner"
	case ReasonItem:
		return "item"
	case ReasonSynthetic:
		return "synthetic"
	case ReasonOther:
		return "other"
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

type Location struct {
	X, Y, Z float64
}

// SpawnRequest asks the world for a new entity.
type SpawnRequest struct {
	Kind     catalog.EntityKind
	World    string
	Location Location
	Juvenile bool
	Reason   Reason
}

// SpawnNotification reports an entity the host is about to add.
type SpawnNotification struct {
	Entity     EntityID
	Kind       catalog.EntityKind
	Reason     Reason
	World      string
	Location   Location
	Juvenile   bool
	LightLevel int
}

// TransformNotification reports an entity about to turn into another kind.
type TransformNotification struct {
	Entity EntityID
	From   catalog.EntityKind
	To     catalog.EntityKind
	World  string
}

// DeathNotification reports an entity that died.
type DeathNotification struct {
	Entity   EntityID
	Kind     catalog.EntityKind
	World    string
	Location Location
}

// World is the host engine. Implementations return ErrUnsupported (possibly
// wrapped) for requests they cannot serve.
type World interface {
	Spawn(req SpawnRequest) (EntityID, error)
	Mount(rider, mount EntityID) error
	// SetEquipment puts item in slot; a nil item empties the slot.
	SetEquipment(id EntityID, slot catalog.Slot, item *catalog.Item) error
	SetState(id EntityID, key, value string) error
	SetImmune(id EntityID) error
	SetAttribute(id EntityID, name string, value float64) error
	DropItem(world string, at Location, item catalog.ItemKind) error
	Remove(id EntityID) error

	Valid(id EntityID) bool
	SupportsEntity(kind catalog.EntityKind) bool
	SupportsItem(kind catalog.ItemKind) bool
}

// Scheduler runs work on a later tick.
type Scheduler interface {
	// Defer runs fn on the next tick if id is still valid then.
	Defer(id EntityID, fn func())
}

// AttributeScale is the attribute name for entity size.
const AttributeScale = "scale"
