// Package spawn runs the decision chain for spawn, transform and death
// notifications.
package spawn

import (
	"context"
	"errors"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xtding233/dynamicmob/internal/catalog"
	"github.com/xtding233/dynamicmob/internal/config"
	"github.com/xtding233/dynamicmob/internal/equipment"
	"github.com/xtding233/dynamicmob/internal/roll"
	"github.com/xtding233/dynamicmob/internal/world"
)

const tracerName = "github.com/xtding233/dynamicmob/internal/spawn"

// Killer bunny state.
const (
	StateRabbitType  = "rabbit_type"
	RabbitKillerType = "killer_bunny"
)

// Stage names the point where handling of a notification ended.
type Stage string

const (
	StageIneligible Stage = "ineligible"
	StageDark       Stage = "light-gate"
	StageSuppressed Stage = "natural-limit"
	StageDisabled   Stage = "disabled"
	StageReplaced   Stage = "replaced"
	StageJockey     Stage = "jockey"
	StageVanillaKit Stage = "vanilla-kit"
	StageEquipped   Stage = "equipped"
)

// Result is what the host must do with the original spawn.
type Result struct {
	Cancelled bool
	Stage     Stage
	Spawned   []world.EntityID // entities this call created, in spawn order
}

// Context is one creature moving through the stages.
type Context struct {
	Entity     world.EntityID
	Kind       catalog.EntityKind
	Reason     world.Reason
	World      string
	Location   world.Location
	Juvenile   bool
	LightLevel int
}

func contextOf(n world.SpawnNotification) Context {
	return Context{
		Entity:     n.Entity,
		Kind:       n.Kind,
		Reason:     n.Reason,
		World:      n.World,
		Location:   n.Location,
		Juvenile:   n.Juvenile,
		LightLevel: n.LightLevel,
	}
}

// Snapshots hands out the active configuration; *config.Store is one.
type Snapshots interface {
	Current() *config.Snapshot
}

// Pipeline handles notifications synchronously. It is safe for concurrent
// use only when its RandomSource and World are.
type Pipeline struct {
	snaps  Snapshots
	world  world.World
	sched  world.Scheduler
	rng    roll.RandomSource
	equip  *equipment.Resolver
	log    *zap.Logger
	tracer trace.Tracer
}

// New builds a pipeline. A nil rng uses the crypto source and a nil log
// discards output.
func New(snaps Snapshots, w world.World, sched world.Scheduler, rng roll.RandomSource, log *zap.Logger) *Pipeline {
	if rng == nil {
		rng = roll.DefaultRNG()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		snaps:  snaps,
		world:  w,
		sched:  sched,
		rng:    rng,
		equip:  equipment.NewResolver(rng, w, log.Named("equipment")),
		log:    log,
		tracer: otel.Tracer(tracerName),
	}
}

// HandleSpawn runs the stage chain for one inbound spawn.
func (p *Pipeline) HandleSpawn(ctx context.Context, n world.SpawnNotification) Result {
	snap := p.snaps.Current()
	_, span := p.tracer.Start(ctx, "spawn.handle", trace.WithAttributes(
		attribute.String("entity.kind", n.Kind.String()),
		attribute.String("spawn.reason", n.Reason.String()),
		attribute.String("world", n.World),
	))
	defer span.End()

	res := p.run(snap, contextOf(n))

	span.SetAttributes(
		attribute.String("spawn.stage", string(res.Stage)),
		attribute.Bool("spawn.cancelled", res.Cancelled),
		attribute.Int("spawn.synthetic", len(res.Spawned)),
	)
	p.log.Debug("spawn handled",
		zap.Stringer("entity", n.Kind),
		zap.Stringer("reason", n.Reason),
		zap.String("stage", string(res.Stage)),
		zap.Bool("cancelled", res.Cancelled),
		zap.Int("synthetic", len(res.Spawned)),
	)
	return res
}

func (p *Pipeline) run(snap *config.Snapshot, c Context) Result {
	var res Result

	if !eligible(snap, c) {
		res.Stage = StageIneligible
		return res
	}

	rules := snap.Entity(c.Kind)
	if c.Reason == world.ReasonNatural {
		if snap.LightGate && c.Kind.Hostile() && c.LightLevel > snap.LightThreshold {
			res.Cancelled, res.Stage = true, StageDark
			return res
		}
		if !roll.Chance(rules.NaturalLimit, p.rng) {
			res.Cancelled, res.Stage = true, StageSuppressed
			return res
		}
	}

	p.killerBunny(snap, c)

	if !rules.Enabled {
		p.immunize(c)
		res.Stage = StageDisabled
		return res
	}

	if inScope(snap.ReplacementScope, c.Reason) {
		if p.replace(snap, c, &res) {
			res.Cancelled, res.Stage = true, StageReplaced
			return res
		}
	}

	p.immunize(c)

	if c.Reason == world.ReasonNatural && !c.Kind.BossExempt() && snap.Multiplier > 1 {
		p.multiply(snap, c, &res)
	}

	res.Stage = p.mountOrEquip(snap, c, &res)
	if res.Stage == StageJockey {
		res.Cancelled = true
	}
	return res
}

func eligible(snap *config.Snapshot, c Context) bool {
	if !snap.WorldEnabled(c.World) {
		return false
	}
	switch c.Reason {
	case world.ReasonNatural, world.ReasonSpawner:
		return true
	case world.ReasonItem:
		return snap.AllowSpawnEggs
	}
	// Synthetic spawns are driven in-call; echoes from the host are ignored.
	return false
}

func inScope(s config.Scope, r world.Reason) bool {
	switch r {
	case world.ReasonNatural:
		return s.Natural
	case world.ReasonSpawner:
		return s.Spawner
	case world.ReasonItem:
		return s.SpawnEgg
	}
	return false
}

func (p *Pipeline) killerBunny(snap *config.Snapshot, c Context) {
	kb := snap.KillerBunny
	if c.Kind != catalog.Rabbit || !kb.Enabled || !inScope(kb.Scope, c.Reason) {
		return
	}
	if !roll.Chance(kb.Chance, p.rng) {
		return
	}
	if err := p.world.SetState(c.Entity, StateRabbitType, RabbitKillerType); err != nil {
		p.worldErr("killer bunny failed", err, zap.String("entity", string(c.Entity)))
	}
}

func (p *Pipeline) immunize(c Context) {
	if !c.Kind.ImmuneToZombification() {
		return
	}
	if err := p.world.SetImmune(c.Entity); err != nil {
		p.worldErr("immunity failed", err, zap.Stringer("entity", c.Kind))
	}
}

// replace reports whether the original was replaced by a new entity.
func (p *Pipeline) replace(snap *config.Snapshot, c Context, res *Result) bool {
	target, ok := snap.Replacement(c.Kind).Sample(p.rng)
	if !ok {
		return false
	}
	if !p.world.SupportsEntity(target) {
		p.log.Warn("replacement target not supported; keeping original",
			zap.Stringer("from", c.Kind), zap.Stringer("to", target))
		return false
	}
	nc, err := p.spawnSynthetic(c, target, c.Juvenile, res)
	if err != nil {
		p.worldErr("replacement spawn failed; keeping original", err,
			zap.Stringer("from", c.Kind), zap.Stringer("to", target))
		return false
	}
	p.settle(snap, nc, res)
	return true
}

func (p *Pipeline) multiply(snap *config.Snapshot, c Context, res *Result) {
	whole, frac := math.Modf(snap.Multiplier)
	copies := int(whole) - 1
	if roll.Chance(frac, p.rng) {
		copies++
	}
	for i := 0; i < copies; i++ {
		nc, err := p.spawnSynthetic(c, c.Kind, c.Juvenile, res)
		if err != nil {
			p.worldErr("multiplier spawn failed", err, zap.Stringer("entity", c.Kind))
			continue
		}
		p.settle(snap, nc, res)
	}
}

// settle runs immunity, jockey and equipment for a synthetic context.
func (p *Pipeline) settle(snap *config.Snapshot, c Context, res *Result) {
	p.immunize(c)
	if !snap.Entity(c.Kind).Enabled {
		return
	}
	if p.mountOrEquip(snap, c, res) == StageJockey {
		// The solo synthetic entity gives way to the new pair.
		if err := p.world.Remove(c.Entity); err != nil {
			p.worldErr("remove solo spawn failed", err, zap.Stringer("entity", c.Kind))
		}
	}
}

// mountOrEquip makes c a jockey or equips it; exactly one of the two happens.
func (p *Pipeline) mountOrEquip(snap *config.Snapshot, c Context, res *Result) Stage {
	if p.jockey(snap, c, res) {
		return StageJockey
	}
	return p.equipLater(snap, c)
}

func (p *Pipeline) spawnSynthetic(from Context, kind catalog.EntityKind, juvenile bool, res *Result) (Context, error) {
	id, err := p.world.Spawn(world.SpawnRequest{
		Kind:     kind,
		World:    from.World,
		Location: from.Location,
		Juvenile: juvenile,
		Reason:   world.ReasonSynthetic,
	})
	if err != nil {
		return Context{}, err
	}
	res.Spawned = append(res.Spawned, id)
	return Context{
		Entity:     id,
		Kind:       kind,
		Reason:     world.ReasonSynthetic,
		World:      from.World,
		Location:   from.Location,
		Juvenile:   juvenile,
		LightLevel: from.LightLevel,
	}, nil
}

// equipLater applies scale now and schedules the loadout for the next tick.
func (p *Pipeline) equipLater(snap *config.Snapshot, c Context) Stage {
	if c.Kind.KeepsVanillaKit() {
		return StageVanillaKit
	}
	if scale, ok := snap.Entity(c.Kind).Scale.Sample(p.rng); ok {
		if err := p.world.SetAttribute(c.Entity, world.AttributeScale, scale); err != nil {
			p.worldErr("scale failed", err, zap.Stringer("entity", c.Kind))
		}
	}
	id, kind := c.Entity, c.Kind
	p.sched.Defer(id, func() {
		l := p.equip.Resolve(snap, kind)
		if l.Empty() {
			return
		}
		if err := equipment.Apply(p.world, id, l); err != nil {
			p.worldErr("equipment partly failed", err, zap.Stringer("entity", kind))
		}
	})
	return StageEquipped
}

func (p *Pipeline) worldErr(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if errors.Is(err, world.ErrUnsupported) {
		p.log.Debug(msg, fields...)
		return
	}
	p.log.Warn(msg, fields...)
}
