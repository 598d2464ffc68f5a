package spawn

import (
	"go.uber.org/zap"

	"github.com/xtding233/dynamicmob/internal/catalog"
	"github.com/xtding233/dynamicmob/internal/config"
	"github.com/xtding233/dynamicmob/internal/roll"
)

type jockeyRule struct {
	mount catalog.EntityKind
	match func(kind catalog.EntityKind, juvenile bool) bool
	key   func(kind catalog.EntityKind) string
}

// jockeyRules are tried in order; the first successful draw wins.
var jockeyRules = []jockeyRule{
	{
		mount: catalog.Chicken,
		match: func(k catalog.EntityKind, juvenile bool) bool { return juvenile && k.IsZombieFamily() },
		key:   chickenJockeyKey,
	},
	{
		mount: catalog.ZombieHorse,
		match: func(k catalog.EntityKind, juvenile bool) bool { return !juvenile && k == catalog.Zombie },
		key:   fixedKey(config.JockeyZombieHorse),
	},
	{
		mount: catalog.Camel,
		match: func(k catalog.EntityKind, juvenile bool) bool { return !juvenile && k == catalog.Husk },
		key:   fixedKey(config.JockeyHuskCamel),
	},
	{
		mount: catalog.ZombieNautilus,
		match: func(k catalog.EntityKind, _ bool) bool { return k == catalog.Drowned },
		key:   fixedKey(config.JockeyDrownedNautilus),
	},
	{
		mount: catalog.Spider,
		match: func(k catalog.EntityKind, _ bool) bool { return k.IsSkeletonFamily() },
		key:   spiderJockeyKey,
	},
}

func fixedKey(key string) func(catalog.EntityKind) string {
	return func(catalog.EntityKind) string { return key }
}

func chickenJockeyKey(k catalog.EntityKind) string {
	switch k {
	case catalog.Husk:
		return config.JockeyBabyHuskChicken
	case catalog.Drowned:
		return config.JockeyBabyDrownedChicken
	case catalog.ZombifiedPiglin:
		return config.JockeyBabyZombifiedPiglinChicken
	case catalog.ZombieVillager:
		return config.JockeyBabyZombieVillagerChicken
	}
	return config.JockeyBabyZombieChicken
}

func spiderJockeyKey(k catalog.EntityKind) string {
	switch k {
	case catalog.Stray:
		return config.JockeyStraySpider
	case catalog.WitherSkeleton:
		return config.JockeyWitherSkeletonSpider
	case catalog.Bogged:
		return config.JockeyBoggedSpider
	case catalog.Parched:
		return config.JockeyParchedSpider
	}
	return config.JockeySkeletonSpider
}

// jockey tries each rule for c. On success the mount and a new rider exist,
// the rider is mounted and sent to equipment; the caller drops c's entity.
func (p *Pipeline) jockey(snap *config.Snapshot, c Context, res *Result) bool {
	for _, rule := range jockeyRules {
		if !rule.match(c.Kind, c.Juvenile) {
			continue
		}
		key := rule.key(c.Kind)
		if !roll.Chance(snap.JockeyChance(key), p.rng) {
			continue
		}
		if !p.world.SupportsEntity(rule.mount) {
			p.log.Debug("jockey mount not supported", zap.String("jockey", key), zap.Stringer("mount", rule.mount))
			continue
		}
		mount, err := p.spawnSynthetic(c, rule.mount, false, res)
		if err != nil {
			p.worldErr("jockey mount spawn failed", err, zap.String("jockey", key))
			continue
		}
		rider, err := p.spawnSynthetic(c, c.Kind, c.Juvenile, res)
		if err != nil {
			p.worldErr("jockey rider spawn failed", err, zap.String("jockey", key))
			if err := p.world.Remove(mount.Entity); err != nil {
				p.worldErr("remove orphan mount failed", err, zap.String("jockey", key))
			}
			continue
		}
		if err := p.world.Mount(rider.Entity, mount.Entity); err != nil {
			p.worldErr("mount failed", err, zap.String("jockey", key))
		}
		p.immunize(rider)
		p.equipLater(snap, rider)
		p.log.Debug("jockey spawned", zap.String("jockey", key))
		return true
	}
	return false
}
