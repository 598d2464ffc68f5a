// Package memworld is an in-memory world.World used by tests, the simulator
// and the console.
package memworld

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/xtding233/dynamicmob/internal/catalog"
	"github.com/xtding233/dynamicmob/internal/world"
)

// Entity is a snapshot of one live entity.
type Entity struct {
	ID         world.EntityID
	Kind       catalog.EntityKind
	World      string
	Location   world.Location
	Juvenile   bool
	Reason     world.Reason
	Vehicle    world.EntityID // mount this entity rides, if any
	Immune     bool
	Equipment  [catalog.SlotCount]*catalog.Item
	State      map[string]string
	Attributes map[string]float64

	seq int
}

// Drop records an item dropped into the world.
type Drop struct {
	World    string
	Location world.Location
	Item     catalog.ItemKind
}

// World implements world.World in memory. It is safe for concurrent use.
type World struct {
	mu          sync.Mutex
	entities    map[world.EntityID]*Entity
	seq         int
	drops       []Drop
	spawns      []world.SpawnRequest
	noEntities  map[catalog.EntityKind]bool
	noItems     map[catalog.ItemKind]bool
	equipCalls  int
	immuneCalls int
}

var _ world.World = (*World)(nil)

func New() *World {
	return &World{
		entities:   make(map[world.EntityID]*Entity),
		noEntities: make(map[catalog.EntityKind]bool),
		noItems:    make(map[catalog.ItemKind]bool),
	}
}

// Unsupport makes the world reject the given entity kinds.
func (w *World) Unsupport(kinds ...catalog.EntityKind) *World {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, k := range kinds {
		w.noEntities[k] = true
	}
	return w
}

// UnsupportItems makes the world reject the given item kinds.
func (w *World) UnsupportItems(kinds ...catalog.ItemKind) *World {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, k := range kinds {
		w.noItems[k] = true
	}
	return w
}

// Admit adds an entity the way the host would before announcing it, and
// returns the matching notification.
func (w *World) Admit(kind catalog.EntityKind, worldName string, reason world.Reason, juvenile bool) world.SpawnNotification {
	w.mu.Lock()
	defer w.mu.Unlock()
	e := w.add(world.SpawnRequest{Kind: kind, World: worldName, Reason: reason, Juvenile: juvenile})
	return world.SpawnNotification{
		Entity:   e.ID,
		Kind:     kind,
		Reason:   reason,
		World:    worldName,
		Juvenile: juvenile,
	}
}

func (w *World) add(req world.SpawnRequest) *Entity {
	w.seq++
	e := &Entity{
		ID:         world.EntityID(uuid.NewString()),
		Kind:       req.Kind,
		World:      req.World,
		Location:   req.Location,
		Juvenile:   req.Juvenile,
		Reason:     req.Reason,
		State:      make(map[string]string),
		Attributes: make(map[string]float64),
		seq:        w.seq,
	}
	w.entities[e.ID] = e
	return e
}

func (w *World) lookup(id world.EntityID) (*Entity, error) {
	e, ok := w.entities[id]
	if !ok {
		return nil, fmt.Errorf("memworld: entity %s not found", id)
	}
	return e, nil
}

func (w *World) Spawn(req world.SpawnRequest) (world.EntityID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !req.Kind.Valid() || w.noEntities[req.Kind] {
		return "", fmt.Errorf("spawn %s: %w", req.Kind, world.ErrUnsupported)
	}
	w.spawns = append(w.spawns, req)
	return w.add(req).ID, nil
}

func (w *World) Mount(rider, mount world.EntityID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, err := w.lookup(rider)
	if err != nil {
		return err
	}
	if _, err := w.lookup(mount); err != nil {
		return err
	}
	r.Vehicle = mount
	return nil
}

func (w *World) SetEquipment(id world.EntityID, slot catalog.Slot, item *catalog.Item) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, err := w.lookup(id)
	if err != nil {
		return err
	}
	if slot >= catalog.SlotCount {
		return fmt.Errorf("memworld: bad slot %d", slot)
	}
	if item != nil && w.noItems[item.Kind] {
		return fmt.Errorf("equip %s: %w", item.Kind, world.ErrUnsupported)
	}
	w.equipCalls++
	e.Equipment[slot] = item.Clone()
	return nil
}

func (w *World) SetState(id world.EntityID, key, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, err := w.lookup(id)
	if err != nil {
		return err
	}
	e.State[key] = value
	return nil
}

func (w *World) SetImmune(id world.EntityID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, err := w.lookup(id)
	if err != nil {
		return err
	}
	w.immuneCalls++
	e.Immune = true
	return nil
}

func (w *World) SetAttribute(id world.EntityID, name string, value float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, err := w.lookup(id)
	if err != nil {
		return err
	}
	e.Attributes[name] = value
	return nil
}

func (w *World) DropItem(worldName string, at world.Location, item catalog.ItemKind) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !item.Valid() || w.noItems[item] {
		return fmt.Errorf("drop %s: %w", item, world.ErrUnsupported)
	}
	w.drops = append(w.drops, Drop{World: worldName, Location: at, Item: item})
	return nil
}

func (w *World) Remove(id world.EntityID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.lookup(id); err != nil {
		return err
	}
	delete(w.entities, id)
	return nil
}

func (w *World) Valid(id world.EntityID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.entities[id]
	return ok
}

func (w *World) SupportsEntity(kind catalog.EntityKind) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return kind.Valid() && !w.noEntities[kind]
}

func (w *World) SupportsItem(kind catalog.ItemKind) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return kind.Valid() && !w.noItems[kind]
}

// Entity returns a copy of the entity with id.
func (w *World) Entity(id world.EntityID) (Entity, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entities[id]
	if !ok {
		return Entity{}, false
	}
	return e.copy(), true
}

// Entities returns copies of all live entities in spawn order.
func (w *World) Entities() []Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Entity, 0, len(w.entities))
	for _, e := range w.entities {
		out = append(out, e.copy())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Count returns how many live entities have kind.
func (w *World) Count(kind catalog.EntityKind) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, e := range w.entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entities)
}

// Spawns returns every successful Spawn request in order.
func (w *World) Spawns() []world.SpawnRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]world.SpawnRequest(nil), w.spawns...)
}

func (w *World) Drops() []Drop {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Drop(nil), w.drops...)
}

// Calls reports how many SetEquipment and SetImmune calls succeeded.
func (w *World) Calls() (equip, immune int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.equipCalls, w.immuneCalls
}

// Scheduler returns a tick queue that skips entities no longer in w.
func (w *World) Scheduler() *world.TickQueue {
	return world.NewTickQueue(w.Valid)
}

func (e *Entity) copy() Entity {
	c := *e
	for i, it := range e.Equipment {
		c.Equipment[i] = it.Clone()
	}
	c.State = make(map[string]string, len(e.State))
	for k, v := range e.State {
		c.State[k] = v
	}
	c.Attributes = make(map[string]float64, len(e.Attributes))
	for k, v := range e.Attributes {
		c.Attributes[k] = v
	}
	return c
}
