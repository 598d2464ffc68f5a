package catalog

// Enchantment identifies an enchantment applied to an item.
type Enchantment uint8

const (
	EnchantUnknown Enchantment = iota
	Power
	Punch
	Flame
	Infinity
	Sharpness
	Smite
	FireAspect
	Looting
	Impaling
	Loyalty
	Channeling
	Unbreaking
	Protection
	ProjectileProtection
	BlastProtection
	Thorns
	FeatherFalling
	enchantCount
)

var enchantNames = [enchantCount]string{
	EnchantUnknown:       "unknown",
	Power:                "power",
	Punch:                "punch",
	Flame:                "flame",
	Infinity:             "infinity",
	Sharpness:            "sharpness",
	Smite:                "smite",
	FireAspect:           "fire_aspect",
	Looting:              "looting",
	Impaling:             "impaling",
	Loyalty:              "loyalty",
	Channeling:           "channeling",
	Unbreaking:           "unbreaking",
	Protection:           "protection",
	ProjectileProtection: "projectile_protection",
	BlastProtection:      "blast_protection",
	Thorns:               "thorns",
	FeatherFalling:       "feather_falling",
}

func (e Enchantment) String() string {
	if e >= enchantCount {
		return "unknown"
	}
	return enchantNames[e]
}

// EnchantLevel is one enchantment on an item.
type EnchantLevel struct {
	Enchantment Enchantment
	Level       int
}

// PoolEntry is an enchantment candidate with the highest level it may roll.
type PoolEntry struct {
	Enchantment Enchantment
	MaxLevel    int
}

// Pools are ordered so that a seeded shuffle is reproducible.
var (
	BowPool = []PoolEntry{
		{Power, 5}, {Punch, 2}, {Flame, 1}, {Infinity, 1},
	}
	MeleePool = []PoolEntry{
		{Sharpness, 5}, {Smite, 5}, {FireAspect, 2}, {Looting, 3},
	}
	SpearPool = []PoolEntry{
		{Sharpness, 5}, {Impaling, 5}, {Looting, 3},
	}
	TridentPool = []PoolEntry{
		{Impaling, 5}, {Loyalty, 3}, {Unbreaking, 3},
	}
	ArmorPool = []PoolEntry{
		{Protection, 4}, {ProjectileProtection, 4}, {BlastProtection, 4}, {Thorns, 3},
	}
	BootsPool = []PoolEntry{
		{Protection, 4}, {ProjectileProtection, 4}, {BlastProtection, 4}, {Thorns, 3}, {FeatherFalling, 4},
	}
)
