// Package catalog holds the closed sets of entity kinds, item kinds and
// enchantments that configuration keys are parsed into.
package catalog

import "strings"

// EntityKind identifies a creature category.
type EntityKind uint8

const (
	EntityUnknown EntityKind = iota
	Zombie
	Husk
	Drowned
	ZombifiedPiglin
	ZombieVillager
	Skeleton
	Stray
	WitherSkeleton
	Bogged
	Parched
	Piglin
	PiglinBrute
	Hoglin
	Zoglin
	Creeper
	Spider
	CaveSpider
	Enderman
	Witch
	Slime
	Phantom
	Blaze
	Ghast
	Pillager
	Vindicator
	Illusioner
	Evoker
	Ravager
	Chicken
	ZombieHorse
	Camel
	ZombieNautilus
	Rabbit
	Cow
	Pig
	Sheep
	Villager
	EnderDragon
	Wither
	Warden
	entityKindCount
)

var entityNames = [entityKindCount]string{
	EntityUnknown:   "unknown",
	Zombie:          "zombie",
	Husk:            "husk",
	Drowned:         "drowned",
	ZombifiedPiglin: "zombified_piglin",
	ZombieVillager:  "zombie_villager",
	Skeleton:        "skeleton",
	Stray:           "stray",
	WitherSkeleton:  "wither_skeleton",
	Bogged:          "bogged",
	Parched:         "parched",
	Piglin:          "piglin",
	PiglinBrute:     "piglin_brute",
	Hoglin:          "hoglin",
	Zoglin:          "zoglin",
	Creeper:         "creeper",
	Spider:          "spider",
	CaveSpider:      "cave_spider",
	Enderman:        "enderman",
	Witch:           "witch",
	Slime:           "slime",
	Phantom:         "phantom",
	Blaze:           "blaze",
	Ghast:           "ghast",
	Pillager:        "pillager",
	Vindicator:      "vindicator",
	Illusioner:      "illusioner",
	Evoker:          "evoker",
	Ravager:         "ravager",
	Chicken:         "chicken",
	ZombieHorse:     "zombie_horse",
	Camel:           "camel",
	ZombieNautilus:  "zombie_nautilus",
	Rabbit:          "rabbit",
	Cow:             "cow",
	Pig:             "pig",
	Sheep:           "sheep",
	Villager:        "villager",
	EnderDragon:     "ender_dragon",
	Wither:          "wither",
	Warden:          "warden",
}

var entityByName = func() map[string]EntityKind {
	m := make(map[string]EntityKind, len(entityNames))
	for k, name := range entityNames {
		if EntityKind(k) != EntityUnknown {
			m[name] = EntityKind(k)
		}
	}
	return m
}()

func (k EntityKind) String() string {
	if k >= entityKindCount {
		return "unknown"
	}
	return entityNames[k]
}

func (k EntityKind) Valid() bool { return k != EntityUnknown && k < entityKindCount }

// ParseEntityKind accepts config spellings such as "ZOMBIE" or "Wither_Skeleton".
func ParseEntityKind(s string) (EntityKind, bool) {
	k, ok := entityByName[normalize(s)]
	return k, ok
}

// EntityKindNames lists every valid entity name, in declaration order.
func EntityKindNames() []string {
	out := make([]string, 0, len(entityNames)-1)
	for _, n := range entityNames[1:] {
		out = append(out, n)
	}
	return out
}

func normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// Families. Every predicate is an exhaustive switch over the kinds it names.

func (k EntityKind) IsZombieFamily() bool {
	switch k {
	case Zombie, Husk, Drowned, ZombifiedPiglin, ZombieVillager:
		return true
	}
	return false
}

func (k EntityKind) IsSkeletonFamily() bool {
	switch k {
	case Skeleton, Stray, WitherSkeleton, Bogged, Parched:
		return true
	}
	return false
}

func (k EntityKind) IsPiglinFamily() bool {
	switch k {
	case Piglin, PiglinBrute:
		return true
	}
	return false
}

// ImmuneToZombification lists kinds that get the immunity flag at spawn.
func (k EntityKind) ImmuneToZombification() bool {
	switch k {
	case Piglin, PiglinBrute, Hoglin:
		return true
	}
	return false
}

// Corrupted reports whether k is a zombified variant produced by the
// host's zombification transform.
func (k EntityKind) Corrupted() bool {
	switch k {
	case ZombifiedPiglin, Zoglin:
		return true
	}
	return false
}

// BossExempt kinds are never multiplied.
func (k EntityKind) BossExempt() bool {
	switch k {
	case EnderDragon, Wither, Warden:
		return true
	}
	return false
}

// KeepsVanillaKit kinds never receive custom equipment.
func (k EntityKind) KeepsVanillaKit() bool {
	return k == Pillager
}

func (k EntityKind) Hostile() bool {
	switch k {
	case Zombie, Husk, Drowned, ZombieVillager, Skeleton, Stray, WitherSkeleton,
		Bogged, Parched, Creeper, Spider, CaveSpider, Enderman, Witch, Slime,
		Phantom, Pillager, Vindicator, Illusioner, Evoker, Ravager, Zoglin:
		return true
	}
	return false
}

// EnchantFamily reports whether equipment of k is eligible for enchantments.
func (k EntityKind) EnchantFamily() bool {
	return k.IsSkeletonFamily() || k.IsZombieFamily() || k.IsPiglinFamily()
}
