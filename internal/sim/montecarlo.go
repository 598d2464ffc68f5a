// Package sim replays batches of spawn notifications against an in-memory
// world to show what a configuration does in aggregate.
package sim

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xtding233/dynamicmob/internal/catalog"
	"github.com/xtding233/dynamicmob/internal/config"
	"github.com/xtding233/dynamicmob/internal/roll"
	"github.com/xtding233/dynamicmob/internal/spawn"
	"github.com/xtding233/dynamicmob/internal/world"
	"github.com/xtding233/dynamicmob/internal/world/memworld"
)

var ErrNoSpawns = errors.New("sim: spawns per trial must be > 0")

// Params describes the notifications of one trial.
type Params struct {
	Kind       catalog.EntityKind
	Reason     world.Reason
	World      string // defaults to "world"
	Juvenile   bool
	LightLevel int
	Spawns     int // notifications per trial
}

// Report aggregates a run. Stats are over per-trial counts; the maps total
// every trial.
type Report struct {
	Trials    int
	Alive     Stats // entities alive after the trial
	Cancelled Stats // originals the host had to cancel
	Synthetic Stats // entities the pipeline spawned

	Stages  map[spawn.Stage]int
	Kinds   map[catalog.EntityKind]int
	Weapons map[catalog.ItemKind]int
}

// Run repeats trials, each on a fresh world, and summarizes them.
func Run(ctx context.Context, snap *config.Snapshot, p Params, trials int, rng roll.RandomSource, log *zap.Logger) (Report, error) {
	rep := Report{
		Trials:  trials,
		Stages:  make(map[spawn.Stage]int),
		Kinds:   make(map[catalog.EntityKind]int),
		Weapons: make(map[catalog.ItemKind]int),
	}
	if trials <= 0 {
		return rep, nil
	}
	if p.Spawns <= 0 {
		return rep, ErrNoSpawns
	}
	if p.World == "" {
		p.World = "world"
	}
	store := config.NewStaticStore(snap)

	alive := make([]int, trials)
	cancelled := make([]int, trials)
	synthetic := make([]int, trials)
	for i := 0; i < trials; i++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		w := memworld.New()
		q := w.Scheduler()
		pipe := spawn.New(store, w, q, rng, log)

		for j := 0; j < p.Spawns; j++ {
			n := w.Admit(p.Kind, p.World, p.Reason, p.Juvenile)
			n.LightLevel = p.LightLevel
			res := pipe.HandleSpawn(ctx, n)
			rep.Stages[res.Stage]++
			synthetic[i] += len(res.Spawned)
			if res.Cancelled {
				cancelled[i]++
				_ = w.Remove(n.Entity)
			}
		}
		q.Tick()

		for _, e := range w.Entities() {
			rep.Kinds[e.Kind]++
			if it := e.Equipment[catalog.SlotWeapon]; it != nil {
				rep.Weapons[it.Kind]++
			}
		}
		alive[i] = w.Len()
	}

	rep.Alive = calcStats(alive)
	rep.Cancelled = calcStats(cancelled)
	rep.Synthetic = calcStats(synthetic)
	return rep, nil
}
