// Package equipment decides what a spawned entity wears and holds.
package equipment

import (
	"errors"
	"fmt"

	"github.com/xtding233/dynamicmob/internal/catalog"
	"github.com/xtding233/dynamicmob/internal/world"
)

// Action is the decision for one slot.
type Action uint8

const (
	Untouched Action = iota // leave whatever the host gave the entity
	Clear
	Equip
)

type SlotDecision struct {
	Action Action
	Item   *catalog.Item // set when Action is Equip
}

// State is an entity flag such as a charged creeper's "powered".
type State struct {
	Key   string
	Value string
}

// Loadout is the resolved set of slot and state changes for one entity.
type Loadout struct {
	Slots  [catalog.SlotCount]SlotDecision
	States []State
}

// Item returns the item placed in slot, nil when the slot is not equipped.
func (l *Loadout) Item(s catalog.Slot) *catalog.Item {
	if l.Slots[s].Action != Equip {
		return nil
	}
	return l.Slots[s].Item
}

func (l *Loadout) equip(s catalog.Slot, it *catalog.Item) {
	l.Slots[s] = SlotDecision{Action: Equip, Item: it}
}

// Empty reports whether applying l would change nothing.
func (l *Loadout) Empty() bool {
	for _, d := range l.Slots {
		if d.Action != Untouched {
			return false
		}
	}
	return len(l.States) == 0
}

// Apply issues the loadout to w. Every change is attempted; failures are
// joined into the returned error.
func Apply(w world.World, id world.EntityID, l Loadout) error {
	var errs []error
	for _, s := range catalog.Slots {
		d := l.Slots[s]
		var it *catalog.Item
		switch d.Action {
		case Untouched:
			continue
		case Equip:
			it = d.Item
		}
		if err := w.SetEquipment(id, s, it); err != nil {
			errs = append(errs, fmt.Errorf("equip %s: %w", s, err))
		}
	}
	for _, st := range l.States {
		if err := w.SetState(id, st.Key, st.Value); err != nil {
			errs = append(errs, fmt.Errorf("state %s: %w", st.Key, err))
		}
	}
	return errors.Join(errs...)
}
