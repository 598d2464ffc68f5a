package catalog

// Slot is an equipment slot. Slots resolve in declaration order.
type Slot uint8

const (
	SlotWeapon Slot = iota
	SlotHelmet
	SlotChest
	SlotLegs
	SlotBoots
	SlotCount
)

var slotKeys = [SlotCount]string{"weapon", "helmet", "chestplate", "leggings", "boots"}

// Slots lists every slot in resolution order.
var Slots = [SlotCount]Slot{SlotWeapon, SlotHelmet, SlotChest, SlotLegs, SlotBoots}

// Key is the configuration key of the slot.
func (s Slot) Key() string {
	if s >= SlotCount {
		return "unknown"
	}
	return slotKeys[s]
}

func (s Slot) String() string { return s.Key() }

// Item is a concrete item stack put into a slot.
type Item struct {
	Kind         ItemKind
	Damage       int
	Enchantments []EnchantLevel
}

// NewItem returns an undamaged, unenchanted item.
func NewItem(k ItemKind) *Item { return &Item{Kind: k} }

// Enchant adds e at lvl, replacing an existing level of e.
func (it *Item) Enchant(e Enchantment, lvl int) {
	for i := range it.Enchantments {
		if it.Enchantments[i].Enchantment == e {
			it.Enchantments[i].Level = lvl
			return
		}
	}
	it.Enchantments = append(it.Enchantments, EnchantLevel{Enchantment: e, Level: lvl})
}

// Level returns the level of e, or 0.
func (it *Item) Level(e Enchantment) int {
	if it == nil {
		return 0
	}
	for _, el := range it.Enchantments {
		if el.Enchantment == e {
			return el.Level
		}
	}
	return 0
}

func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	c := *it
	c.Enchantments = append([]EnchantLevel(nil), it.Enchantments...)
	return &c
}
