package equipment

import (
	"testing"

	"github.com/xtding233/dynamicmob/internal/catalog"
	"github.com/xtding233/dynamicmob/internal/config"
	"github.com/xtding233/dynamicmob/internal/roll"
	"github.com/xtding233/dynamicmob/internal/world"
	"github.com/xtding233/dynamicmob/internal/world/memworld"
)

func snapshot(t *testing.T, doc string) *config.Snapshot {
	t.Helper()
	raw, err := config.ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	snap, err := config.Build(raw)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return snap
}

func TestSlotTablesAndWear(t *testing.T) {
	snap := snapshot(t, `
enchant-chance: {weapon: 0, armor: 0}
special:
  block_helmet: {enabled: false}
spawn-chance:
  zombie:
    weapon: {iron_sword: 0.5}
    helmet: {}
`)
	rng := roll.NewSequence(0.2).Ints(7)
	l := NewResolver(rng, nil, nil).Resolve(snap, catalog.Zombie)

	w := l.Item(catalog.SlotWeapon)
	if w == nil || w.Kind != catalog.IronSword || w.Damage != 7 {
		t.Fatalf("weapon = %+v", w)
	}
	if l.Slots[catalog.SlotHelmet].Action != Clear {
		t.Fatalf("empty table must clear the helmet")
	}
	for _, s := range []catalog.Slot{catalog.SlotChest, catalog.SlotLegs, catalog.SlotBoots} {
		if l.Slots[s].Action != Untouched {
			t.Fatalf("%s must stay untouched", s)
		}
	}
	if rng.Remaining() != 0 {
		t.Fatalf("expected exactly one table draw")
	}
}

func TestTableMissClearsSlot(t *testing.T) {
	snap := snapshot(t, `
spawn-chance:
  husk:
    weapon: {iron_sword: 0.5}
`)
	l := NewResolver(roll.NewSequence(0.7), nil, nil).Resolve(snap, catalog.Husk)
	if l.Slots[catalog.SlotWeapon].Action != Clear {
		t.Fatalf("a draw past the table must empty the slot")
	}
}

func TestDrownedTridentAlwaysEnchanted(t *testing.T) {
	snap := snapshot(t, `
enchant-chance: {weapon: 0}
special:
  drowned_channeling_chance: 1.0
`)
	l := NewResolver(roll.NewSequence(), nil, nil).Resolve(snap, catalog.Drowned)
	w := l.Item(catalog.SlotWeapon)
	if w == nil || w.Kind != catalog.Trident {
		t.Fatalf("weapon = %+v", w)
	}
	if w.Level(catalog.Channeling) != 1 {
		t.Fatalf("channeling missing")
	}
	if len(w.Enchantments) != 2 {
		t.Fatalf("drowned trident must gain a pool enchantment even at weapon chance 0: %+v", w.Enchantments)
	}
}

func TestWeaponSpecialFromTable(t *testing.T) {
	snap := snapshot(t, `
enchant-chance: {weapon: 0}
spawn-chance:
  drowned:
    weapon: {iron_sword: 0.25}
    special: {trident_channeling: 0.5}
`)
	l := NewResolver(roll.NewSequence(0.5), nil, nil).Resolve(snap, catalog.Drowned)
	w := l.Item(catalog.SlotWeapon)
	if w == nil || w.Kind != catalog.Trident || w.Level(catalog.Channeling) != 1 || w.Damage != 0 {
		t.Fatalf("same draw must reach the special after the material entries: %+v", w)
	}
}

func TestSpecialOverridesTable(t *testing.T) {
	snap := snapshot(t, `
enchant-chance: {weapon: 1}
special:
  bone_in_hand_chance: 1.0
spawn-chance:
  skeleton:
    weapon: {bow: 1.0}
`)
	l := NewResolver(roll.NewSequence(), nil, nil).Resolve(snap, catalog.Skeleton)
	w := l.Item(catalog.SlotWeapon)
	if w == nil || w.Kind != catalog.Bone || len(w.Enchantments) != 0 {
		t.Fatalf("bone must replace the bow and stay plain: %+v", w)
	}
}

func TestBlockHelmetPools(t *testing.T) {
	snap := snapshot(t, `
enchant-chance: {armor: 1}
special:
  block_helmet:
    general: {carved_pumpkin: 0.25}
    skeleton-only: {skeleton_skull: 0.5}
spawn-chance:
  stray:
    weapon: {}
`)
	l := NewResolver(roll.NewSequence(0.5), nil, nil).Resolve(snap, catalog.Stray)
	h := l.Item(catalog.SlotHelmet)
	if h == nil || h.Kind != catalog.SkeletonSkull {
		t.Fatalf("skeleton pool must follow the general pool: %+v", h)
	}
	if len(h.Enchantments) != 0 {
		t.Fatalf("block helmets are not armor")
	}

	l = NewResolver(roll.NewSequence(0.5), nil, nil).Resolve(snap, catalog.Zombie)
	if l.Item(catalog.SlotHelmet) != nil {
		t.Fatalf("zombie must not draw from the skeleton-only pool")
	}
}

func TestBlockHelmetSkippedWhenHelmetEquipped(t *testing.T) {
	snap := snapshot(t, `
enchant-chance: {armor: 0}
special:
  block_helmet:
    general: {carved_pumpkin: 1.0}
spawn-chance:
  zombie:
    helmet: {iron_helmet: 1.0}
`)
	rng := roll.NewSequence(0.1, 0.1)
	l := NewResolver(rng, nil, nil).Resolve(snap, catalog.Zombie)
	if h := l.Item(catalog.SlotHelmet); h == nil || h.Kind != catalog.IronHelmet {
		t.Fatalf("helmet = %+v", h)
	}
	if rng.Remaining() != 1 {
		t.Fatalf("block helmet pool must not be drawn when a helmet is worn")
	}
}

func TestArmorEnchantUsesBootsPool(t *testing.T) {
	snap := snapshot(t, `
enchant-chance: {armor: 1}
special:
  block_helmet: {enabled: false}
spawn-chance:
  piglin:
    boots: {iron_boots: 1.0}
`)
	l := NewResolver(roll.NewSequence(), nil, nil).Resolve(snap, catalog.Piglin)
	b := l.Item(catalog.SlotBoots)
	if b == nil || len(b.Enchantments) != 1 {
		t.Fatalf("boots = %+v", b)
	}
	found := false
	for _, p := range catalog.BootsPool {
		if p.Enchantment == b.Enchantments[0].Enchantment && b.Enchantments[0].Level <= p.MaxLevel {
			found = true
		}
	}
	if !found {
		t.Fatalf("enchantment %+v not from boots pool", b.Enchantments[0])
	}
}

func TestNonFamilyNeverEnchanted(t *testing.T) {
	snap := snapshot(t, `
enchant-chance: {weapon: 1, armor: 1}
spawn-chance:
  vindicator:
    helmet: {iron_helmet: 1.0}
`)
	l := NewResolver(roll.NewSequence(), nil, nil).Resolve(snap, catalog.Vindicator)
	if h := l.Item(catalog.SlotHelmet); h == nil || len(h.Enchantments) != 0 {
		t.Fatalf("vindicator armor must stay plain: %+v", h)
	}
}

func TestHandItemsAndStates(t *testing.T) {
	snap := snapshot(t, `
special:
  vindicator_hand_item: iron_axe
  illusioner_hand_item: bow
  illusioner_flame_chance: 1.0
  charged_creeper_chance: 1.0
`)
	r := NewResolver(roll.NewSequence(), nil, nil)
	vl := r.Resolve(snap, catalog.Vindicator)
	if w := vl.Item(catalog.SlotWeapon); w == nil || w.Kind != catalog.IronAxe {
		t.Fatalf("vindicator weapon = %+v", w)
	}
	il := r.Resolve(snap, catalog.Illusioner)
	if w := il.Item(catalog.SlotWeapon); w == nil || w.Level(catalog.Flame) != 1 {
		t.Fatalf("illusioner bow = %+v", w)
	}
	l := r.Resolve(snap, catalog.Creeper)
	if len(l.States) != 1 || l.States[0] != (State{Key: StatePowered, Value: "true"}) {
		t.Fatalf("creeper states = %+v", l.States)
	}
}

func TestUnsupportedSpecialSkipped(t *testing.T) {
	snap := snapshot(t, `
special:
  zombie_spear_chance: 1.0
`)
	w := memworld.New().UnsupportItems(catalog.Spear)
	l := NewResolver(roll.NewSequence(), w, nil).Resolve(snap, catalog.Zombie)
	if !l.Empty() {
		t.Fatalf("unsupported spear must leave the zombie untouched: %+v", l)
	}
}

func TestApply(t *testing.T) {
	w := memworld.New()
	n := w.Admit(catalog.Creeper, "world", world.ReasonNatural, false)
	w.SetEquipment(n.Entity, catalog.SlotHelmet, catalog.NewItem(catalog.IronHelmet))

	var l Loadout
	l.Slots[catalog.SlotHelmet] = SlotDecision{Action: Clear}
	l.equip(catalog.SlotWeapon, catalog.NewItem(catalog.Bow))
	l.States = append(l.States, State{Key: StatePowered, Value: "true"})
	if err := Apply(w, n.Entity, l); err != nil {
		t.Fatal(err)
	}
	e, _ := w.Entity(n.Entity)
	if e.Equipment[catalog.SlotHelmet] != nil || e.Equipment[catalog.SlotWeapon].Kind != catalog.Bow {
		t.Fatalf("equipment = %+v", e.Equipment)
	}
	if e.State[StatePowered] != "true" {
		t.Fatalf("state not applied")
	}

	w.Remove(n.Entity)
	if err := Apply(w, n.Entity, l); err == nil {
		t.Fatalf("apply on a removed entity must report errors")
	}
}
