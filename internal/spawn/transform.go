package spawn

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xtding233/dynamicmob/internal/roll"
	"github.com/xtding233/dynamicmob/internal/world"
)

// HandleTransform reports whether the transform must be cancelled. Immune
// kinds are kept from turning into their zombified forms.
func (p *Pipeline) HandleTransform(ctx context.Context, n world.TransformNotification) bool {
	snap := p.snaps.Current()
	_, span := p.tracer.Start(ctx, "spawn.transform", trace.WithAttributes(
		attribute.String("entity.from", n.From.String()),
		attribute.String("entity.to", n.To.String()),
		attribute.String("world", n.World),
	))
	defer span.End()

	cancel := snap.WorldEnabled(n.World) && snap.TransformGuard &&
		n.From.ImmuneToZombification() && n.To.Corrupted()
	span.SetAttributes(attribute.Bool("transform.cancelled", cancel))
	if cancel {
		p.log.Debug("transform cancelled", zap.Stringer("from", n.From), zap.Stringer("to", n.To))
	}
	return cancel
}

// HandleDeath rolls each configured drop of the dead entity independently
// and returns how many items were dropped.
func (p *Pipeline) HandleDeath(ctx context.Context, n world.DeathNotification) int {
	snap := p.snaps.Current()
	_, span := p.tracer.Start(ctx, "spawn.death", trace.WithAttributes(
		attribute.String("entity.kind", n.Kind.String()),
		attribute.String("world", n.World),
	))
	defer span.End()

	if !snap.WorldEnabled(n.World) {
		return 0
	}
	dropped := 0
	for _, d := range snap.Entity(n.Kind).Drops {
		if !roll.Chance(d.Chance, p.rng) {
			continue
		}
		if err := p.world.DropItem(n.World, n.Location, d.Item); err != nil {
			p.worldErr("drop failed", err, zap.Stringer("item", d.Item))
			continue
		}
		dropped++
	}
	span.SetAttributes(attribute.Int("death.drops", dropped))
	return dropped
}
