package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xtding233/dynamicmob/internal/catalog"
	"github.com/xtding233/dynamicmob/internal/roll"
)

// Scope says which inbound spawn reasons a rule applies to.
type Scope struct {
	Natural  bool
	Spawner  bool
	SpawnEgg bool
}

// ItemSpec is one outcome of an equipment table.
type ItemSpec struct {
	Kind     catalog.ItemKind
	Enchants []catalog.EnchantLevel
	Wear     bool // gets random initial damage
}

// Drop is an independent death-drop chance.
type Drop struct {
	Item   catalog.ItemKind
	Chance float64
}

// EntityRules are the per-kind rules of a snapshot.
type EntityRules struct {
	Enabled      bool
	NaturalLimit float64
	slots        [catalog.SlotCount]*roll.Table[ItemSpec]
	Scale        roll.Table[float64]
	Drops        []Drop
}

var defaultRules = &EntityRules{Enabled: true, NaturalLimit: 1}

// SlotTable returns the table for slot; ok is false when the slot is not
// configured and must be left as the host spawned it.
func (r *EntityRules) SlotTable(s catalog.Slot) (roll.Table[ItemSpec], bool) {
	if s >= catalog.SlotCount || r.slots[s] == nil {
		return roll.Table[ItemSpec]{}, false
	}
	return *r.slots[s], true
}

type Specials struct {
	BoneInHand               float64
	DrownedChanneling        float64
	ChargedCreeper           float64
	ZombieSpear              float64
	HuskSpear                float64
	PiglinGoldSpear          float64
	ZombifiedPiglinGoldSpear float64
	VindicatorItem           catalog.ItemKind // ItemUnknown: keep vanilla
	IllusionerItem           catalog.ItemKind
	IllusionerFlame          float64
}

type KillerBunny struct {
	Enabled bool
	Chance  float64
	Scope   Scope
}

type BlockHelmet struct {
	Enabled  bool
	General  roll.Table[catalog.ItemKind]
	Skeleton roll.Table[catalog.ItemKind] // general merged with skeleton-only
}

// Pool returns the block helmet pool for kind.
func (b BlockHelmet) Pool(kind catalog.EntityKind) roll.Table[catalog.ItemKind] {
	if kind.IsSkeletonFamily() {
		return b.Skeleton
	}
	return b.General
}

// Snapshot is an immutable, validated view of the configuration.
// It is never modified after Build returns; reloads build a new one.
type Snapshot struct {
	Version             string
	Multiplier          float64
	AllowSpawnEggs      bool
	LightGate           bool
	LightThreshold      int
	WeaponEnchantChance float64
	ArmorEnchantChance  float64
	ReplacementScope    Scope
	TransformGuard      bool
	Specials            Specials
	KillerBunny         KillerBunny
	BlockHelmet         BlockHelmet

	worlds       map[string]struct{}
	jockeys      map[string]float64
	entities     map[catalog.EntityKind]*EntityRules
	replacements map[catalog.EntityKind]roll.Table[catalog.EntityKind]
}

func (s *Snapshot) WorldEnabled(name string) bool {
	_, ok := s.worlds[name]
	return ok
}

// Worlds returns the allow-list, sorted.
func (s *Snapshot) Worlds() []string {
	out := make([]string, 0, len(s.worlds))
	for w := range s.worlds {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Entity returns the rules for kind; unconfigured kinds get enabled defaults.
func (s *Snapshot) Entity(kind catalog.EntityKind) *EntityRules {
	if r, ok := s.entities[kind]; ok {
		return r
	}
	return defaultRules
}

func (s *Snapshot) Replacement(kind catalog.EntityKind) roll.Table[catalog.EntityKind] {
	return s.replacements[kind]
}

func (s *Snapshot) JockeyChance(key string) float64 {
	return s.jockeys[key]
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func scopeOf(c ScopeConfig, natural, spawner, egg bool) Scope {
	return Scope{
		Natural:  boolOr(c.Natural, natural),
		Spawner:  boolOr(c.Spawner, spawner),
		SpawnEgg: boolOr(c.SpawnEgg, egg),
	}
}

// Default returns the snapshot of an empty configuration.
func Default() *Snapshot {
	s, err := Build(RawConfig{})
	if err != nil {
		panic(err)
	}
	return s
}

// Build validates raw and compiles it into a Snapshot.
func Build(raw RawConfig) (*Snapshot, error) {
	if err := ValidateRaw(raw); err != nil {
		return nil, err
	}

	s := &Snapshot{
		Version:             raw.Version,
		Multiplier:          floatOr(raw.MobSpawn.Multiplier, 1),
		AllowSpawnEggs:      boolOr(raw.MobSpawn.EnableSpawnEgg, true),
		WeaponEnchantChance: floatOr(raw.EnchantChance.Weapon, 1),
		ArmorEnchantChance:  floatOr(raw.EnchantChance.Armor, 1),
		ReplacementScope:    scopeOf(raw.Replacement, true, false, false),
		TransformGuard:      boolOr(raw.TransformGuard.Enabled, true),
		worlds:              make(map[string]struct{}),
		jockeys:             make(map[string]float64),
		entities:            make(map[catalog.EntityKind]*EntityRules),
		replacements:        make(map[catalog.EntityKind]roll.Table[catalog.EntityKind]),
	}
	if raw.LightThreshold != nil {
		s.LightGate = true
		s.LightThreshold = *raw.LightThreshold
	}

	worlds := raw.EnabledWorlds
	if len(worlds) == 0 {
		worlds = DefaultWorlds
	}
	for _, w := range worlds {
		s.worlds[strings.TrimSpace(w)] = struct{}{}
	}

	for _, e := range raw.JockeyChance.Entries {
		s.jockeys[strings.ToLower(strings.TrimSpace(e.Key))] = e.Value
	}

	if err := s.compileSpecials(raw.Special); err != nil {
		return nil, err
	}

	for name, ec := range raw.SpawnChance {
		kind, _ := catalog.ParseEntityKind(name)
		rules, err := compileEntity(ec)
		if err != nil {
			return nil, fmt.Errorf("spawn-chance.%s: %w", name, err)
		}
		s.entities[kind] = rules
	}

	for name, wm := range raw.ReplacementSpawn {
		kind, _ := catalog.ParseEntityKind(name)
		entries := make([]roll.Entry[catalog.EntityKind], 0, len(wm.Entries))
		for _, e := range wm.Entries {
			target, _ := catalog.ParseEntityKind(e.Key)
			entries = append(entries, roll.Entry[catalog.EntityKind]{Outcome: target, Weight: e.Value})
		}
		tbl, err := roll.NewTable(entries...)
		if err != nil {
			return nil, fmt.Errorf("replacement-spawn.%s: %w", name, err)
		}
		s.replacements[kind] = tbl
	}
	return s, nil
}

func (s *Snapshot) compileSpecials(sc SpecialConfig) error {
	s.Specials = Specials{
		BoneInHand:               floatOr(sc.BoneInHand, 0),
		DrownedChanneling:        floatOr(sc.DrownedChanneling, 0),
		ChargedCreeper:           floatOr(sc.ChargedCreeper, 0),
		ZombieSpear:              floatOr(sc.ZombieSpear, 0),
		HuskSpear:                floatOr(sc.HuskSpear, 0),
		PiglinGoldSpear:          floatOr(sc.PiglinGoldSpear, 0),
		ZombifiedPiglinGoldSpear: floatOr(sc.ZombifiedPiglinGoldSpear, 0),
		IllusionerFlame:          floatOr(sc.IllusionerFlame, 0),
	}
	if sc.VindicatorHandItem != nil && !isNone(*sc.VindicatorHandItem) {
		s.Specials.VindicatorItem, _ = catalog.ParseItemKind(*sc.VindicatorHandItem)
	}
	if sc.IllusionerHandItem != nil && !isNone(*sc.IllusionerHandItem) {
		s.Specials.IllusionerItem, _ = catalog.ParseItemKind(*sc.IllusionerHandItem)
	}

	s.KillerBunny = KillerBunny{Enabled: true, Chance: 0.001, Scope: Scope{Natural: true, SpawnEgg: true}}
	if kb := sc.KillerBunny; kb != nil {
		s.KillerBunny = KillerBunny{
			Enabled: boolOr(kb.Enabled, true),
			Chance:  floatOr(kb.Chance, 0.001),
			Scope:   scopeOf(kb.ScopeConfig, true, false, true),
		}
	}

	s.BlockHelmet = BlockHelmet{Enabled: true}
	if bh := sc.BlockHelmet; bh != nil {
		general, err := itemTable(bh.General)
		if err != nil {
			return fmt.Errorf("special.block_helmet.general: %w", err)
		}
		skeleton, err := itemTable(bh.SkeletonOnly)
		if err != nil {
			return fmt.Errorf("special.block_helmet.skeleton-only: %w", err)
		}
		s.BlockHelmet = BlockHelmet{
			Enabled:  boolOr(bh.Enabled, true),
			General:  general,
			Skeleton: roll.Merge(general, skeleton),
		}
	}
	return nil
}

func itemTable(m WeightMap) (roll.Table[catalog.ItemKind], error) {
	entries := make([]roll.Entry[catalog.ItemKind], 0, len(m.Entries))
	for _, e := range m.Entries {
		k, _ := catalog.ParseItemKind(e.Key)
		entries = append(entries, roll.Entry[catalog.ItemKind]{Outcome: k, Weight: e.Value})
	}
	return roll.NewTable(entries...)
}

func specTable(m WeightMap) (roll.Table[ItemSpec], error) {
	entries := make([]roll.Entry[ItemSpec], 0, len(m.Entries))
	for _, e := range m.Entries {
		k, _ := catalog.ParseItemKind(e.Key)
		entries = append(entries, roll.Entry[ItemSpec]{Outcome: ItemSpec{Kind: k, Wear: true}, Weight: e.Value})
	}
	return roll.NewTable(entries...)
}

// weaponSpecials turns special weapon chances into table outcomes that are
// scanned after the material entries.
func weaponSpecials(m WeightMap) (roll.Table[ItemSpec], error) {
	var entries []roll.Entry[ItemSpec]
	for _, e := range m.Entries {
		switch strings.ToLower(strings.TrimSpace(e.Key)) {
		case SpecialTridentChanneling:
			entries = append(entries, roll.Entry[ItemSpec]{
				Outcome: ItemSpec{
					Kind:     catalog.Trident,
					Enchants: []catalog.EnchantLevel{{Enchantment: catalog.Channeling, Level: 1}},
				},
				Weight: e.Value,
			})
		}
	}
	return roll.NewTable(entries...)
}

func compileEntity(ec EntityConfig) (*EntityRules, error) {
	r := &EntityRules{
		Enabled:      boolOr(ec.Enabled, true),
		NaturalLimit: floatOr(ec.NaturalLimit, 1),
	}

	slotMaps := [catalog.SlotCount]WeightMap{ec.Weapon, ec.Helmet, ec.Chestplate, ec.Leggings, ec.Boots}
	for _, slot := range catalog.Slots {
		m := slotMaps[slot]
		special := slot == catalog.SlotWeapon && len(ec.Special.Entries) > 0
		if !m.Set && !special {
			continue
		}
		tbl, err := specTable(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", slot.Key(), err)
		}
		if slot == catalog.SlotWeapon {
			extra, err := weaponSpecials(ec.Special)
			if err != nil {
				return nil, fmt.Errorf("special: %w", err)
			}
			tbl = tbl.Append(extra)
		}
		r.slots[slot] = &tbl
	}

	scale := make([]roll.Entry[float64], 0, len(ec.Scale.Entries))
	for _, e := range ec.Scale.Entries {
		v, _ := strconv.ParseFloat(strings.TrimSpace(e.Key), 64)
		scale = append(scale, roll.Entry[float64]{Outcome: v, Weight: e.Value})
	}
	var err error
	if r.Scale, err = roll.NewTable(scale...); err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}

	for _, e := range ec.Drops.Entries {
		k, _ := catalog.ParseItemKind(e.Key)
		r.Drops = append(r.Drops, Drop{Item: k, Chance: e.Value})
	}
	return r, nil
}
