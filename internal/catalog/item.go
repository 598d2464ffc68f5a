package catalog

// ItemKind identifies an equippable or droppable object kind.
type ItemKind uint16

// Category groups item kinds by how they are equipped and enchanted.
type Category uint8

const (
	CategoryMisc Category = iota
	CategorySword
	CategoryAxe
	CategoryBow
	CategoryCrossbow
	CategoryTrident
	CategorySpear
	CategoryHelmet
	CategoryChestplate
	CategoryLeggings
	CategoryBoots
	CategoryBlock
)

const ItemUnknown ItemKind = 0

type itemInfo struct {
	name          string
	category      Category
	maxDurability int
}

// itemTable is indexed by ItemKind; index 0 is ItemUnknown.
var itemTable = []itemInfo{
	{"unknown", CategoryMisc, 0},

	{"wooden_sword", CategorySword, 59},
	{"stone_sword", CategorySword, 131},
	{"iron_sword", CategorySword, 250},
	{"golden_sword", CategorySword, 32},
	{"diamond_sword", CategorySword, 1561},
	{"netherite_sword", CategorySword, 2031},
	{"wooden_axe", CategoryAxe, 59},
	{"stone_axe", CategoryAxe, 131},
	{"iron_axe", CategoryAxe, 250},
	{"golden_axe", CategoryAxe, 32},
	{"diamond_axe", CategoryAxe, 1561},
	{"netherite_axe", CategoryAxe, 2031},
	{"bow", CategoryBow, 384},
	{"crossbow", CategoryCrossbow, 465},
	{"trident", CategoryTrident, 250},
	{"spear", CategorySpear, 250},
	{"golden_spear", CategorySpear, 32},

	{"leather_helmet", CategoryHelmet, 55},
	{"leather_chestplate", CategoryChestplate, 80},
	{"leather_leggings", CategoryLeggings, 75},
	{"leather_boots", CategoryBoots, 65},
	{"chainmail_helmet", CategoryHelmet, 165},
	{"chainmail_chestplate", CategoryChestplate, 240},
	{"chainmail_leggings", CategoryLeggings, 225},
	{"chainmail_boots", CategoryBoots, 195},
	{"iron_helmet", CategoryHelmet, 165},
	{"iron_chestplate", CategoryChestplate, 240},
	{"iron_leggings", CategoryLeggings, 225},
	{"iron_boots", CategoryBoots, 195},
	{"golden_helmet", CategoryHelmet, 77},
	{"golden_chestplate", CategoryChestplate, 112},
	{"golden_leggings", CategoryLeggings, 105},
	{"golden_boots", CategoryBoots, 91},
	{"diamond_helmet", CategoryHelmet, 363},
	{"diamond_chestplate", CategoryChestplate, 528},
	{"diamond_leggings", CategoryLeggings, 495},
	{"diamond_boots", CategoryBoots, 429},
	{"netherite_helmet", CategoryHelmet, 407},
	{"netherite_chestplate", CategoryChestplate, 592},
	{"netherite_leggings", CategoryLeggings, 555},
	{"netherite_boots", CategoryBoots, 481},
	{"turtle_helmet", CategoryHelmet, 275},

	{"carved_pumpkin", CategoryBlock, 0},
	{"jack_o_lantern", CategoryBlock, 0},
	{"skeleton_skull", CategoryBlock, 0},
	{"wither_skeleton_skull", CategoryBlock, 0},
	{"zombie_head", CategoryBlock, 0},
	{"creeper_head", CategoryBlock, 0},
	{"piglin_head", CategoryBlock, 0},
	{"glass", CategoryBlock, 0},
	{"tnt", CategoryBlock, 0},
	{"iron_block", CategoryBlock, 0},
	{"gold_block", CategoryBlock, 0},
	{"diamond_block", CategoryBlock, 0},

	{"bone", CategoryMisc, 0},
	{"rotten_flesh", CategoryMisc, 0},
	{"arrow", CategoryMisc, 0},
	{"gunpowder", CategoryMisc, 0},
	{"string", CategoryMisc, 0},
	{"ender_pearl", CategoryMisc, 0},
	{"feather", CategoryMisc, 0},
	{"gold_nugget", CategoryMisc, 0},
	{"gold_ingot", CategoryMisc, 0},
	{"iron_ingot", CategoryMisc, 0},
	{"diamond", CategoryMisc, 0},
	{"emerald", CategoryMisc, 0},
	{"totem_of_undying", CategoryMisc, 0},
}

var itemByName = func() map[string]ItemKind {
	m := make(map[string]ItemKind, len(itemTable))
	for i, info := range itemTable[1:] {
		m[info.name] = ItemKind(i + 1)
	}
	return m
}()

// Kinds referenced directly by rules.
var (
	Bow           = mustItem("bow")
	Trident       = mustItem("trident")
	Spear         = mustItem("spear")
	GoldenSpear   = mustItem("golden_spear")
	Bone          = mustItem("bone")
	IronSword     = mustItem("iron_sword")
	IronAxe       = mustItem("iron_axe")
	IronHelmet    = mustItem("iron_helmet")
	IronBoots     = mustItem("iron_boots")
	CarvedPumpkin = mustItem("carved_pumpkin")
	SkeletonSkull = mustItem("skeleton_skull")
)

func mustItem(name string) ItemKind {
	k, ok := itemByName[name]
	if !ok {
		panic("catalog: unknown item " + name)
	}
	return k
}

// ParseItemKind accepts config spellings such as "IRON_SWORD".
func ParseItemKind(s string) (ItemKind, bool) {
	k, ok := itemByName[normalize(s)]
	return k, ok
}

// ItemKindNames lists every valid item name, in declaration order.
func ItemKindNames() []string {
	out := make([]string, 0, len(itemTable)-1)
	for _, info := range itemTable[1:] {
		out = append(out, info.name)
	}
	return out
}

func (k ItemKind) info() itemInfo {
	if int(k) >= len(itemTable) {
		return itemTable[0]
	}
	return itemTable[k]
}

func (k ItemKind) String() string { return k.info().name }

func (k ItemKind) Valid() bool { return k != ItemUnknown && int(k) < len(itemTable) }

func (k ItemKind) Category() Category { return k.info().category }

// MaxDurability is 0 for items that do not wear.
func (k ItemKind) MaxDurability() int { return k.info().maxDurability }

func (k ItemKind) IsAxe() bool { return k.Category() == CategoryAxe }

// IsArmorFor reports whether k is real armor for slot; blocks worn as
// helmets are not armor.
func (k ItemKind) IsArmorFor(s Slot) bool {
	switch s {
	case SlotHelmet:
		return k.Category() == CategoryHelmet
	case SlotChest:
		return k.Category() == CategoryChestplate
	case SlotLegs:
		return k.Category() == CategoryLeggings
	case SlotBoots:
		return k.Category() == CategoryBoots
	}
	return false
}
