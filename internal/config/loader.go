package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xtding233/dynamicmob/internal/catalog"
	"gopkg.in/yaml.v3"
)

// Paths helper for the base and overlay config files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/dynamicmob/config
}

func (p Paths) MainPath() string {
	return filepath.Join(p.BaseDir, "config.yaml")
}

// LocalPath is an optional operator overlay merged over config.yaml.
func (p Paths) LocalPath() string {
	return filepath.Join(p.BaseDir, "config.local.yaml")
}

// All lists every file the loader reads, for watchers.
func (p Paths) All() []string {
	return []string{p.MainPath(), p.LocalPath()}
}

// Loader reads YAML configs and merges config.yaml <- config.local.yaml.
type Loader struct {
	paths Paths
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{paths: Paths{BaseDir: baseDir}}
}

func (l *Loader) Paths() Paths { return l.paths }

// Load reads and merges both files. config.yaml must exist; the overlay is
// optional. The result is not validated.
func (l *Loader) Load() (RawConfig, error) {
	main, found, err := readYAML(l.paths.MainPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read %s: %w", l.paths.MainPath(), err)
	}
	if !found {
		return RawConfig{}, fmt.Errorf("read %s: %w", l.paths.MainPath(), os.ErrNotExist)
	}
	local, _, err := readYAML(l.paths.LocalPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read %s: %w", l.paths.LocalPath(), err)
	}
	return mergeRaw(main, local), nil
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, false, nil
		}
		return RawConfig{}, false, err
	}
	cfg, err := ParseYAML(b)
	if err != nil {
		return RawConfig{}, true, err
	}
	return cfg, true, nil
}

// ParseYAML decodes a document without touching the filesystem.
func ParseYAML(b []byte) (RawConfig, error) {
	var cfg RawConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	var errs problems
	entityDuplicates(&errs, "spawn-chance", cfg.SpawnChance)
	entityDuplicates(&errs, "replacement-spawn", cfg.ReplacementSpawn)
	if len(errs) > 0 {
		return RawConfig{}, &ValidationError{Problems: errs}
	}
	return cfg, nil
}

func pick[T any](a, b *T) *T {
	if b != nil {
		return b
	}
	return a
}

func pickTable(a, b WeightMap) WeightMap {
	if b.Set {
		return b
	}
	return a
}

// mergeKeys overrides a's values key by key; new keys are appended.
func mergeKeys(a, b WeightMap) WeightMap {
	if !b.Set {
		return a
	}
	out := WeightMap{Set: true, Entries: append([]Weight(nil), a.Entries...)}
	for _, e := range b.Entries {
		replaced := false
		for i := range out.Entries {
			if strings.EqualFold(strings.TrimSpace(out.Entries[i].Key), strings.TrimSpace(e.Key)) {
				out.Entries[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}

func mergeScope(a, b ScopeConfig) ScopeConfig {
	return ScopeConfig{
		Natural:  pick(a.Natural, b.Natural),
		Spawner:  pick(a.Spawner, b.Spawner),
		SpawnEgg: pick(a.SpawnEgg, b.SpawnEgg),
	}
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where set.
// Weight tables are replaced whole, since their order is significant.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	// top-level scalars
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if len(b.EnabledWorlds) > 0 {
		out.EnabledWorlds = append([]string(nil), b.EnabledWorlds...)
	}
	out.LightThreshold = pick(a.LightThreshold, b.LightThreshold)

	out.MobSpawn.Multiplier = pick(a.MobSpawn.Multiplier, b.MobSpawn.Multiplier)
	out.MobSpawn.EnableSpawnEgg = pick(a.MobSpawn.EnableSpawnEgg, b.MobSpawn.EnableSpawnEgg)
	out.EnchantChance.Weapon = pick(a.EnchantChance.Weapon, b.EnchantChance.Weapon)
	out.EnchantChance.Armor = pick(a.EnchantChance.Armor, b.EnchantChance.Armor)
	out.TransformGuard.Enabled = pick(a.TransformGuard.Enabled, b.TransformGuard.Enabled)
	out.Replacement = mergeScope(a.Replacement, b.Replacement)
	out.JockeyChance = mergeKeys(a.JockeyChance, b.JockeyChance)

	// special
	s, bs := a.Special, b.Special
	s.BoneInHand = pick(s.BoneInHand, bs.BoneInHand)
	s.DrownedChanneling = pick(s.DrownedChanneling, bs.DrownedChanneling)
	s.ChargedCreeper = pick(s.ChargedCreeper, bs.ChargedCreeper)
	s.ZombieSpear = pick(s.ZombieSpear, bs.ZombieSpear)
	s.HuskSpear = pick(s.HuskSpear, bs.HuskSpear)
	s.PiglinGoldSpear = pick(s.PiglinGoldSpear, bs.PiglinGoldSpear)
	s.ZombifiedPiglinGoldSpear = pick(s.ZombifiedPiglinGoldSpear, bs.ZombifiedPiglinGoldSpear)
	s.VindicatorHandItem = pick(s.VindicatorHandItem, bs.VindicatorHandItem)
	s.IllusionerHandItem = pick(s.IllusionerHandItem, bs.IllusionerHandItem)
	s.IllusionerFlame = pick(s.IllusionerFlame, bs.IllusionerFlame)
	switch {
	case s.KillerBunny == nil && bs.KillerBunny != nil:
		c := *bs.KillerBunny
		s.KillerBunny = &c
	case s.KillerBunny != nil && bs.KillerBunny != nil:
		c := *s.KillerBunny
		c.Enabled = pick(c.Enabled, bs.KillerBunny.Enabled)
		c.Chance = pick(c.Chance, bs.KillerBunny.Chance)
		c.ScopeConfig = mergeScope(c.ScopeConfig, bs.KillerBunny.ScopeConfig)
		s.KillerBunny = &c
	}
	switch {
	case s.BlockHelmet == nil && bs.BlockHelmet != nil:
		c := *bs.BlockHelmet
		s.BlockHelmet = &c
	case s.BlockHelmet != nil && bs.BlockHelmet != nil:
		c := *s.BlockHelmet
		c.Enabled = pick(c.Enabled, bs.BlockHelmet.Enabled)
		c.General = pickTable(c.General, bs.BlockHelmet.General)
		c.SkeletonOnly = pickTable(c.SkeletonOnly, bs.BlockHelmet.SkeletonOnly)
		s.BlockHelmet = &c
	}
	out.Special = s

	// spawn-chance, per entity section; keys are folded even without an overlay
	if len(a.SpawnChance)+len(b.SpawnChance) > 0 {
		merged := make(map[string]EntityConfig, len(a.SpawnChance)+len(b.SpawnChance))
		for k, v := range a.SpawnChance {
			merged[entityKey(k)] = v
		}
		for k, bv := range b.SpawnChance {
			k = entityKey(k)
			av, ok := merged[k]
			if !ok {
				merged[k] = bv
				continue
			}
			merged[k] = EntityConfig{
				Enabled:      pick(av.Enabled, bv.Enabled),
				NaturalLimit: pick(av.NaturalLimit, bv.NaturalLimit),
				Weapon:       pickTable(av.Weapon, bv.Weapon),
				Helmet:       pickTable(av.Helmet, bv.Helmet),
				Chestplate:   pickTable(av.Chestplate, bv.Chestplate),
				Leggings:     pickTable(av.Leggings, bv.Leggings),
				Boots:        pickTable(av.Boots, bv.Boots),
				Special:      pickTable(av.Special, bv.Special),
				Scale:        pickTable(av.Scale, bv.Scale),
				Drops:        pickTable(av.Drops, bv.Drops),
			}
		}
		out.SpawnChance = merged
	}

	// replacement-spawn, per source entity
	if len(a.ReplacementSpawn)+len(b.ReplacementSpawn) > 0 {
		merged := make(map[string]WeightMap, len(a.ReplacementSpawn)+len(b.ReplacementSpawn))
		for k, v := range a.ReplacementSpawn {
			merged[entityKey(k)] = v
		}
		for k, v := range b.ReplacementSpawn {
			merged[entityKey(k)] = v
		}
		out.ReplacementSpawn = merged
	}

	return out
}

// entityKey folds spellings of one entity onto a single map key so an
// overlay written as "zombie" merges into a base "ZOMBIE" section.
func entityKey(name string) string {
	if k, ok := catalog.ParseEntityKind(name); ok {
		return k.String()
	}
	return strings.ToLower(strings.TrimSpace(name))
}
