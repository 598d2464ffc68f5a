// types.go
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Raw config loaded from YAML; mirrors the plugin's config.yaml.
// Pointer fields distinguish "not set" from zero so overlays can merge.
type RawConfig struct {
	Version          string                  `yaml:"version"`
	EnabledWorlds    []string                `yaml:"enabled-worlds,omitempty"`
	LightThreshold   *int                    `yaml:"light-threshold,omitempty"`
	MobSpawn         MobSpawnConfig          `yaml:"mob-spawn"`
	EnchantChance    EnchantChanceConfig     `yaml:"enchant-chance"`
	TransformGuard   ToggleConfig            `yaml:"transform-guard"`
	Replacement      ScopeConfig             `yaml:"replacement-toggles"`
	JockeyChance     WeightMap               `yaml:"jockey-chance"`
	Special          SpecialConfig           `yaml:"special"`
	SpawnChance      map[string]EntityConfig `yaml:"spawn-chance,omitempty"`
	ReplacementSpawn map[string]WeightMap    `yaml:"replacement-spawn,omitempty"`
	Notes            string                  `yaml:"notes,omitempty"`
}

type MobSpawnConfig struct {
	Multiplier     *float64 `yaml:"multiplier,omitempty"`
	EnableSpawnEgg *bool    `yaml:"enable-spawn-egg,omitempty"`
}

type EnchantChanceConfig struct {
	Weapon *float64 `yaml:"weapon,omitempty"`
	Armor  *float64 `yaml:"armor,omitempty"`
}

type ToggleConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// ScopeConfig selects which spawn reasons a rule applies to.
type ScopeConfig struct {
	Natural  *bool `yaml:"apply-to-natural,omitempty"`
	Spawner  *bool `yaml:"apply-to-spawner,omitempty"`
	SpawnEgg *bool `yaml:"apply-to-spawn-egg,omitempty"`
}

type SpecialConfig struct {
	BoneInHand               *float64           `yaml:"bone_in_hand_chance,omitempty"`
	DrownedChanneling        *float64           `yaml:"drowned_channeling_chance,omitempty"`
	ChargedCreeper           *float64           `yaml:"charged_creeper_chance,omitempty"`
	ZombieSpear              *float64           `yaml:"zombie_spear_chance,omitempty"`
	HuskSpear                *float64           `yaml:"husk_spear_chance,omitempty"`
	PiglinGoldSpear          *float64           `yaml:"piglin_gold_spear_chance,omitempty"`
	ZombifiedPiglinGoldSpear *float64           `yaml:"zombified_piglin_gold_spear_chance,omitempty"`
	VindicatorHandItem       *string            `yaml:"vindicator_hand_item,omitempty"`
	IllusionerHandItem       *string            `yaml:"illusioner_hand_item,omitempty"`
	IllusionerFlame          *float64           `yaml:"illusioner_flame_chance,omitempty"`
	KillerBunny              *KillerBunnyConfig `yaml:"killer_bunny_on_rabbit_spawn,omitempty"`
	BlockHelmet              *BlockHelmetConfig `yaml:"block_helmet,omitempty"`
}

type KillerBunnyConfig struct {
	Enabled     *bool    `yaml:"enabled,omitempty"`
	Chance      *float64 `yaml:"chance,omitempty"`
	ScopeConfig `yaml:",inline"`
}

type BlockHelmetConfig struct {
	Enabled      *bool     `yaml:"enabled,omitempty"`
	General      WeightMap `yaml:"general,omitempty"`
	SkeletonOnly WeightMap `yaml:"skeleton-only,omitempty"`
}

// EntityConfig is one spawn-chance.<entity> section.
type EntityConfig struct {
	Enabled      *bool     `yaml:"enabled,omitempty"`
	NaturalLimit *float64  `yaml:"natural-limit,omitempty"`
	Weapon       WeightMap `yaml:"weapon,omitempty"`
	Helmet       WeightMap `yaml:"helmet,omitempty"`
	Chestplate   WeightMap `yaml:"chestplate,omitempty"`
	Leggings     WeightMap `yaml:"leggings,omitempty"`
	Boots        WeightMap `yaml:"boots,omitempty"`
	Special      WeightMap `yaml:"special,omitempty"`
	Scale        WeightMap `yaml:"scale,omitempty"`
	Drops        WeightMap `yaml:"drops,omitempty"`
}

// Weight is one key/value pair of a YAML weight mapping.
type Weight struct {
	Key   string
	Value float64
	Line  int
}

// WeightMap is a YAML mapping of key -> number that keeps document order.
// Order matters: tables built from it are scanned first to last.
type WeightMap struct {
	Entries []Weight
	Set     bool // present in the document, possibly empty
}

// W builds a WeightMap in code, mainly for tests and defaults.
func W(pairs ...any) WeightMap {
	m := WeightMap{Set: true}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Entries = append(m.Entries, Weight{Key: pairs[i].(string), Value: toFloat(pairs[i+1])})
	}
	return m
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	}
	panic(fmt.Sprintf("config: weight %v is not a number", v))
}

func (m *WeightMap) UnmarshalYAML(n *yaml.Node) error {
	m.Set = true
	m.Entries = nil
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of name: weight", n.Line)
	}
	seen := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		var f float64
		if err := v.Decode(&f); err != nil {
			return fmt.Errorf("line %d: %s: weight must be a number", v.Line, k.Value)
		}
		norm := strings.ToLower(strings.TrimSpace(k.Value))
		if prev, dup := seen[norm]; dup {
			return fmt.Errorf("line %d: %s already defined on line %d", k.Line, k.Value, prev)
		}
		seen[norm] = k.Line
		m.Entries = append(m.Entries, Weight{Key: k.Value, Value: f, Line: k.Line})
	}
	return nil
}

func (m WeightMap) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m.Entries {
		var v yaml.Node
		if err := v.Encode(e.Value); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: e.Key}, &v)
	}
	return n, nil
}

// Get returns the value stored under key, matched case-insensitively.
func (m WeightMap) Get(key string) (float64, bool) {
	for _, e := range m.Entries {
		if strings.EqualFold(e.Key, key) {
			return e.Value, true
		}
	}
	return 0, false
}
