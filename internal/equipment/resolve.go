package equipment

import (
	"go.uber.org/zap"

	"github.com/xtding233/dynamicmob/internal/catalog"
	"github.com/xtding233/dynamicmob/internal/config"
	"github.com/xtding233/dynamicmob/internal/roll"
)

// StatePowered marks a charged creeper.
const StatePowered = "powered"

// ItemSupport reports which item kinds the host can create.
type ItemSupport interface {
	SupportsItem(kind catalog.ItemKind) bool
}

// Resolver computes loadouts. It is not safe for concurrent use when its
// RandomSource is not.
type Resolver struct {
	rng   roll.RandomSource
	items ItemSupport
	log   *zap.Logger
}

// NewResolver builds a resolver. A nil items accepts every item kind.
func NewResolver(rng roll.RandomSource, items ItemSupport, log *zap.Logger) *Resolver {
	if rng == nil {
		rng = roll.DefaultRNG()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{rng: rng, items: items, log: log}
}

// Resolve decides the loadout of a kind under snap. Steps run in a fixed
// order: slot tables, block helmet, specials, enchantments.
func (r *Resolver) Resolve(snap *config.Snapshot, kind catalog.EntityKind) Loadout {
	var l Loadout
	rules := snap.Entity(kind)

	for _, s := range catalog.Slots {
		tbl, ok := rules.SlotTable(s)
		if !ok {
			continue
		}
		spec, hit := tbl.Sample(r.rng)
		if !hit {
			l.Slots[s] = SlotDecision{Action: Clear}
			continue
		}
		if !r.supported(kind, spec.Kind) {
			continue
		}
		l.equip(s, r.build(spec))
	}

	if snap.BlockHelmet.Enabled && l.Item(catalog.SlotHelmet) == nil {
		if block, ok := snap.BlockHelmet.Pool(kind).Sample(r.rng); ok && r.supported(kind, block) {
			l.equip(catalog.SlotHelmet, catalog.NewItem(block))
		}
	}

	r.specials(&l, snap, kind)
	r.enchantWeapon(&l, snap, kind)
	r.enchantArmor(&l, snap, kind)
	return l
}

func (r *Resolver) build(spec config.ItemSpec) *catalog.Item {
	it := catalog.NewItem(spec.Kind)
	for _, e := range spec.Enchants {
		it.Enchant(e.Enchantment, e.Level)
	}
	if md := spec.Kind.MaxDurability(); spec.Wear && md > 0 {
		it.Damage = r.rng.IntN(max(1, md/3))
	}
	return it
}

func (r *Resolver) supported(kind catalog.EntityKind, item catalog.ItemKind) bool {
	if r.items == nil || r.items.SupportsItem(item) {
		return true
	}
	r.log.Debug("item not supported by world; skipped",
		zap.Stringer("entity", kind), zap.Stringer("item", item))
	return false
}

// specials runs the per-kind hand and state overrides. Later ones win.
func (r *Resolver) specials(l *Loadout, snap *config.Snapshot, kind catalog.EntityKind) {
	sp := snap.Specials
	hand := func(chance float64, item catalog.ItemKind) {
		if roll.Chance(chance, r.rng) && r.supported(kind, item) {
			l.equip(catalog.SlotWeapon, catalog.NewItem(item))
		}
	}

	switch kind {
	case catalog.Skeleton:
		hand(sp.BoneInHand, catalog.Bone)
	case catalog.Zombie:
		hand(sp.ZombieSpear, catalog.Spear)
	case catalog.Husk:
		hand(sp.HuskSpear, catalog.Spear)
	case catalog.Piglin:
		hand(sp.PiglinGoldSpear, catalog.GoldenSpear)
	case catalog.ZombifiedPiglin:
		hand(sp.ZombifiedPiglinGoldSpear, catalog.GoldenSpear)
	case catalog.Vindicator:
		if sp.VindicatorItem.IsAxe() && r.supported(kind, sp.VindicatorItem) {
			l.equip(catalog.SlotWeapon, catalog.NewItem(sp.VindicatorItem))
		}
	case catalog.Illusioner:
		if sp.IllusionerItem == catalog.Bow && r.supported(kind, catalog.Bow) {
			bow := catalog.NewItem(catalog.Bow)
			if roll.Chance(sp.IllusionerFlame, r.rng) {
				bow.Enchant(catalog.Flame, 1)
			}
			l.equip(catalog.SlotWeapon, bow)
		}
	case catalog.Drowned:
		if roll.Chance(sp.DrownedChanneling, r.rng) && r.supported(kind, catalog.Trident) {
			trident := catalog.NewItem(catalog.Trident)
			trident.Enchant(catalog.Channeling, 1)
			l.equip(catalog.SlotWeapon, trident)
		}
	case catalog.Creeper:
		if roll.Chance(sp.ChargedCreeper, r.rng) {
			l.States = append(l.States, State{Key: StatePowered, Value: "true"})
		}
	}
}

func (r *Resolver) enchantWeapon(l *Loadout, snap *config.Snapshot, kind catalog.EntityKind) {
	w := l.Item(catalog.SlotWeapon)
	if w == nil || !kind.EnchantFamily() {
		return
	}
	drownedTrident := kind == catalog.Drowned && w.Kind == catalog.Trident
	spear := w.Kind.Category() == catalog.CategorySpear
	if !drownedTrident && !spear && !roll.Chance(snap.WeaponEnchantChance, r.rng) {
		return
	}
	r.enchant(w, weaponPool(kind, w.Kind))
}

func (r *Resolver) enchantArmor(l *Loadout, snap *config.Snapshot, kind catalog.EntityKind) {
	if !kind.EnchantFamily() {
		return
	}
	for _, s := range catalog.Slots[catalog.SlotHelmet:] {
		it := l.Item(s)
		if it == nil || !it.Kind.IsArmorFor(s) {
			continue
		}
		if !roll.Chance(snap.ArmorEnchantChance, r.rng) {
			continue
		}
		pool := catalog.ArmorPool
		if s == catalog.SlotBoots {
			pool = catalog.BootsPool
		}
		r.enchant(it, pool)
	}
}

// weaponPool picks the enchantment pool for a held item; nil when the item
// takes no enchantments for that family.
func weaponPool(kind catalog.EntityKind, item catalog.ItemKind) []catalog.PoolEntry {
	switch item.Category() {
	case catalog.CategorySword, catalog.CategoryAxe:
		return catalog.MeleePool
	case catalog.CategorySpear:
		return catalog.SpearPool
	case catalog.CategoryBow:
		if kind.IsSkeletonFamily() {
			return catalog.BowPool
		}
	case catalog.CategoryTrident:
		if kind.IsZombieFamily() {
			return catalog.TridentPool
		}
	}
	return nil
}

// enchant adds a random non-empty subset of pool to it.
func (r *Resolver) enchant(it *catalog.Item, pool []catalog.PoolEntry) {
	if len(pool) == 0 {
		return
	}
	n := 1 + r.rng.IntN(len(pool))
	picks := append([]catalog.PoolEntry(nil), pool...)
	roll.Shuffle(r.rng, picks)
	for _, p := range picks[:n] {
		it.Enchant(p.Enchantment, 1+r.rng.IntN(p.MaxLevel))
	}
}
