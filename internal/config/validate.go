package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xtding233/dynamicmob/internal/catalog"
)

// ValidationError lists every problem found in a RawConfig.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: %s", strings.Join(e.Problems, "; "))
}

type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p *problems) prob(path string, v *float64) {
	if v != nil {
		p.probValue(path, *v)
	}
}

func (p *problems) probValue(path string, v float64) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		p.addf("%s must be in [0,1]", path)
	}
}

func (p *problems) weight(path string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		p.addf("%s must be a weight >= 0", path)
	}
}

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs problems

	for i, w := range cfg.EnabledWorlds {
		if strings.TrimSpace(w) == "" {
			errs.addf("enabled-worlds[%d] must not be empty", i)
		}
	}
	if cfg.LightThreshold != nil && (*cfg.LightThreshold < 0 || *cfg.LightThreshold > 15) {
		errs = append(errs, "light-threshold must be in [0,15]")
	}

	// mob-spawn
	if m := cfg.MobSpawn.Multiplier; m != nil {
		if math.IsNaN(*m) || *m < 1 || *m > MaxMultiplier {
			errs.addf("mob-spawn.multiplier must be in [1,%d]", MaxMultiplier)
		}
	}

	errs.prob("enchant-chance.weapon", cfg.EnchantChance.Weapon)
	errs.prob("enchant-chance.armor", cfg.EnchantChance.Armor)

	// jockey-chance
	for _, e := range cfg.JockeyChance.Entries {
		path := "jockey-chance." + e.Key
		if !containsFold(JockeyKeys, e.Key) {
			errs.addf("%s: unknown jockey%s", path, suggest(e.Key, JockeyKeys))
			continue
		}
		errs.probValue(path, e.Value)
	}

	validateSpecial(&errs, cfg.Special)

	entityDuplicates(&errs, "spawn-chance", cfg.SpawnChance)
	entityDuplicates(&errs, "replacement-spawn", cfg.ReplacementSpawn)

	// spawn-chance
	for _, name := range sortedKeys(cfg.SpawnChance) {
		ec := cfg.SpawnChance[name]
		path := "spawn-chance." + name
		if _, ok := catalog.ParseEntityKind(name); !ok {
			errs.addf("%s: unknown entity%s", path, suggest(name, catalog.EntityKindNames()))
			continue
		}
		errs.prob(path+".natural-limit", ec.NaturalLimit)
		for _, slot := range []struct {
			key string
			m   WeightMap
		}{
			{"weapon", ec.Weapon}, {"helmet", ec.Helmet}, {"chestplate", ec.Chestplate},
			{"leggings", ec.Leggings}, {"boots", ec.Boots},
		} {
			validateItemTable(&errs, path+"."+slot.key, slot.m)
		}
		for _, e := range ec.Special.Entries {
			sp := path + ".special." + e.Key
			if !containsFold(EntitySpecialKeys, e.Key) {
				errs.addf("%s: unknown special%s", sp, suggest(e.Key, EntitySpecialKeys))
				continue
			}
			errs.probValue(sp, e.Value)
		}
		for _, e := range ec.Scale.Entries {
			sp := path + ".scale." + e.Key
			if s, err := strconv.ParseFloat(strings.TrimSpace(e.Key), 64); err != nil || s <= 0 || math.IsInf(s, 0) {
				errs.addf("%s: scale must be a number > 0", sp)
			}
			errs.weight(sp, e.Value)
		}
		for _, e := range ec.Drops.Entries {
			sp := path + ".drops." + e.Key
			if _, ok := catalog.ParseItemKind(e.Key); !ok {
				errs.addf("%s: unknown item%s", sp, suggest(e.Key, catalog.ItemKindNames()))
				continue
			}
			errs.probValue(sp, e.Value)
		}
	}

	// replacement-spawn
	for _, src := range sortedKeys(cfg.ReplacementSpawn) {
		path := "replacement-spawn." + src
		if _, ok := catalog.ParseEntityKind(src); !ok {
			errs.addf("%s: unknown entity%s", path, suggest(src, catalog.EntityKindNames()))
			continue
		}
		for _, e := range cfg.ReplacementSpawn[src].Entries {
			tp := path + "." + e.Key
			if _, ok := catalog.ParseEntityKind(e.Key); !ok {
				errs.addf("%s: unknown entity%s", tp, suggest(e.Key, catalog.EntityKindNames()))
				continue
			}
			errs.weight(tp, e.Value)
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

func validateSpecial(errs *problems, s SpecialConfig) {
	errs.prob("special.bone_in_hand_chance", s.BoneInHand)
	errs.prob("special.drowned_channeling_chance", s.DrownedChanneling)
	errs.prob("special.charged_creeper_chance", s.ChargedCreeper)
	errs.prob("special.zombie_spear_chance", s.ZombieSpear)
	errs.prob("special.husk_spear_chance", s.HuskSpear)
	errs.prob("special.piglin_gold_spear_chance", s.PiglinGoldSpear)
	errs.prob("special.zombified_piglin_gold_spear_chance", s.ZombifiedPiglinGoldSpear)
	errs.prob("special.illusioner_flame_chance", s.IllusionerFlame)

	if k, ok := handItem(errs, "special.vindicator_hand_item", s.VindicatorHandItem); ok && !k.IsAxe() {
		errs.addf("special.vindicator_hand_item must be an axe, got %s", k)
	}
	if k, ok := handItem(errs, "special.illusioner_hand_item", s.IllusionerHandItem); ok && k != catalog.Bow {
		errs.addf("special.illusioner_hand_item must be bow, got %s", k)
	}

	if kb := s.KillerBunny; kb != nil {
		errs.prob("special.killer_bunny_on_rabbit_spawn.chance", kb.Chance)
	}
	if bh := s.BlockHelmet; bh != nil {
		validateItemTable(errs, "special.block_helmet.general", bh.General)
		validateItemTable(errs, "special.block_helmet.skeleton-only", bh.SkeletonOnly)
	}
}

// handItem parses an optional hand item; "none" and empty mean unset.
func handItem(errs *problems, path string, v *string) (catalog.ItemKind, bool) {
	if v == nil || isNone(*v) {
		return catalog.ItemUnknown, false
	}
	k, ok := catalog.ParseItemKind(*v)
	if !ok {
		errs.addf("%s: unknown item %q%s", path, *v, suggest(*v, catalog.ItemKindNames()))
		return catalog.ItemUnknown, false
	}
	return k, true
}

func isNone(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "none")
}

func validateItemTable(errs *problems, path string, m WeightMap) {
	for _, e := range m.Entries {
		p := path + "." + e.Key
		if _, ok := catalog.ParseItemKind(e.Key); !ok {
			errs.addf("%s: unknown item%s", p, suggest(e.Key, catalog.ItemKindNames()))
			continue
		}
		errs.weight(p, e.Value)
	}
}

// suggest returns a " (did you mean x?)" hint for the closest candidate.
func suggest(in string, candidates []string) string {
	in = strings.ToLower(strings.TrimSpace(in))
	if len(in) < 3 {
		return ""
	}
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(in, c)
		if d > levenshteinLimit(len(c)) {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// entityDuplicates reports section keys that spell the same entity twice.
// Map order would otherwise decide which section wins.
func entityDuplicates[V any](errs *problems, section string, m map[string]V) {
	seen := make(map[string]string, len(m))
	for _, name := range sortedKeys(m) {
		k := entityKey(name)
		if first, ok := seen[k]; ok {
			errs.addf("%s.%s duplicates %s.%s", section, name, section, first)
			continue
		}
		seen[k] = name
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
