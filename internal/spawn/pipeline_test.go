package spawn

import (
	"context"
	"errors"
	"testing"

	"github.com/xtding233/dynamicmob/internal/catalog"
	"github.com/xtding233/dynamicmob/internal/config"
	"github.com/xtding233/dynamicmob/internal/roll"
	"github.com/xtding233/dynamicmob/internal/world"
	"github.com/xtding233/dynamicmob/internal/world/memworld"
)

func snapshot(t *testing.T, doc string) *config.Snapshot {
	t.Helper()
	raw, err := config.ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	snap, err := config.Build(raw)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return snap
}

type harness struct {
	w     *memworld.World
	q     *world.TickQueue
	store *config.Store
	p     *Pipeline
}

func newHarness(t *testing.T, doc string, rng roll.RandomSource) *harness {
	t.Helper()
	h := &harness{w: memworld.New(), store: config.NewStaticStore(snapshot(t, doc))}
	h.q = h.w.Scheduler()
	h.p = New(h.store, h.w, h.q, rng, nil)
	return h
}

func (h *harness) spawn(kind catalog.EntityKind, reason world.Reason, juvenile bool) (world.SpawnNotification, Result) {
	n := h.w.Admit(kind, "world", reason, juvenile)
	return n, h.p.HandleSpawn(context.Background(), n)
}

func TestNaturalLimitSuppressesAboutHalf(t *testing.T) {
	h := newHarness(t, `
spawn-chance:
  zombie: {natural-limit: 0.5}
`, roll.NewSeededRNG(42))

	const n = 10000
	suppressed := 0
	for i := 0; i < n; i++ {
		note := world.SpawnNotification{Entity: "z", Kind: catalog.Zombie, Reason: world.ReasonNatural, World: "world"}
		res := h.p.HandleSpawn(context.Background(), note)
		if res.Cancelled {
			if res.Stage != StageSuppressed {
				t.Fatalf("unexpected stage %s", res.Stage)
			}
			suppressed++
		}
	}
	if suppressed < 4800 || suppressed > 5200 {
		t.Fatalf("suppressed=%d, want about 5000", suppressed)
	}
}

func TestNaturalLimitOnlyForNatural(t *testing.T) {
	h := newHarness(t, `
spawn-chance:
  zombie: {natural-limit: 0}
`, roll.NewSequence())
	if _, res := h.spawn(catalog.Zombie, world.ReasonSpawner, false); res.Cancelled {
		t.Fatalf("spawner spawns ignore the natural limit")
	}
	if _, res := h.spawn(catalog.Zombie, world.ReasonNatural, false); !res.Cancelled {
		t.Fatalf("limit 0 must suppress every natural spawn")
	}
}

const replacementDoc = `
replacement-spawn:
  zombie: {husk: 0.3, drowned: 0.2}
  husk: {zombie: 1.0}
`

func TestReplacementRanges(t *testing.T) {
	cases := []struct {
		draw float64
		want catalog.EntityKind
	}{
		{0.0, catalog.Husk},
		{0.29, catalog.Husk},
		{0.3, catalog.Drowned},
		{0.49, catalog.Drowned},
		{0.5, catalog.Zombie},
		{0.9, catalog.Zombie},
	}
	for _, tc := range cases {
		h := newHarness(t, replacementDoc, roll.NewSequence(tc.draw))
		_, res := h.spawn(catalog.Zombie, world.ReasonNatural, false)
		if tc.want == catalog.Zombie {
			if res.Cancelled || len(res.Spawned) != 0 {
				t.Fatalf("draw %v: original must be kept, got %+v", tc.draw, res)
			}
			continue
		}
		if !res.Cancelled || res.Stage != StageReplaced || len(res.Spawned) != 1 {
			t.Fatalf("draw %v: result %+v", tc.draw, res)
		}
		e, _ := h.w.Entity(res.Spawned[0])
		if e.Kind != tc.want || e.Reason != world.ReasonSynthetic {
			t.Fatalf("draw %v: replaced with %s (%s)", tc.draw, e.Kind, e.Reason)
		}
	}
}

func TestReplacementNeverCascades(t *testing.T) {
	h := newHarness(t, replacementDoc, roll.NewSequence(0.1, 0.0, 0.0))
	_, res := h.spawn(catalog.Zombie, world.ReasonNatural, false)
	if len(res.Spawned) != 1 {
		t.Fatalf("husk must not be replaced again: %+v", res)
	}
	if e, _ := h.w.Entity(res.Spawned[0]); e.Kind != catalog.Husk {
		t.Fatalf("got %s", e.Kind)
	}

	echo := world.SpawnNotification{Entity: res.Spawned[0], Kind: catalog.Husk, Reason: world.ReasonSynthetic, World: "world"}
	if got := h.p.HandleSpawn(context.Background(), echo); got.Stage != StageIneligible || len(got.Spawned) != 0 {
		t.Fatalf("synthetic echo must be ignored: %+v", got)
	}
}

func TestReplacementScope(t *testing.T) {
	h := newHarness(t, replacementDoc, roll.NewSequence(0.1))
	if _, res := h.spawn(catalog.Zombie, world.ReasonSpawner, false); res.Cancelled {
		t.Fatalf("spawner spawns are outside the default replacement scope")
	}
}

func TestUnsupportedReplacementKeepsOriginal(t *testing.T) {
	h := newHarness(t, `
replacement-spawn:
  zombie: {husk: 1.0}
`, roll.NewSequence())
	h.w.Unsupport(catalog.Husk)
	if _, res := h.spawn(catalog.Zombie, world.ReasonNatural, false); res.Cancelled || res.Stage != StageEquipped {
		t.Fatalf("unsupported target must keep the original: %+v", res)
	}
}

func TestMultiplier(t *testing.T) {
	doc := `mob-spawn: {multiplier: 2.5}`

	h := newHarness(t, doc, roll.NewSequence(0.4))
	if _, res := h.spawn(catalog.Zombie, world.ReasonNatural, false); len(res.Spawned) != 2 || res.Cancelled {
		t.Fatalf("draw under frac: want 2 copies, got %+v", res)
	}

	h = newHarness(t, doc, roll.NewSequence(0.6))
	_, res := h.spawn(catalog.Zombie, world.ReasonNatural, false)
	if len(res.Spawned) != 1 {
		t.Fatalf("draw over frac: want 1 copy, got %+v", res)
	}
	e, _ := h.w.Entity(res.Spawned[0])
	if e.Kind != catalog.Zombie || e.Reason != world.ReasonSynthetic {
		t.Fatalf("copy = %+v", e)
	}

	h = newHarness(t, `mob-spawn: {multiplier: 3}`, roll.NewSequence())
	if _, res := h.spawn(catalog.Skeleton, world.ReasonNatural, false); len(res.Spawned) != 2 {
		t.Fatalf("multiplier 3: want 2 copies, got %d", len(res.Spawned))
	}
}

// flakyWorld fails the Nth Spawn call (1-based) with err.
type flakyWorld struct {
	*memworld.World
	failOn int
	calls  int
	err    error
}

func (f *flakyWorld) Spawn(req world.SpawnRequest) (world.EntityID, error) {
	f.calls++
	if f.calls == f.failOn {
		return "", f.err
	}
	return f.World.Spawn(req)
}

func TestFailedCopyDoesNotAbortSiblings(t *testing.T) {
	snap := snapshot(t, `
mob-spawn: {multiplier: 3}
spawn-chance:
  zombie:
    weapon: {iron_sword: 1.0}
`)
	for _, err := range []error{errors.New("chunk unloaded"), world.ErrUnsupported} {
		mw := memworld.New()
		w := &flakyWorld{World: mw, failOn: 1, err: err}
		q := world.NewTickQueue(w.Valid)
		p := New(config.NewStaticStore(snap), w, q, roll.NewSequence(), nil)

		n := mw.Admit(catalog.Zombie, "world", world.ReasonNatural, false)
		res := p.HandleSpawn(context.Background(), n)
		if w.calls != 2 || len(res.Spawned) != 1 || res.Cancelled {
			t.Fatalf("%v: want the second copy spawned and the original kept, got calls=%d %+v", err, w.calls, res)
		}
		if ran, _ := q.Tick(); ran != 2 {
			t.Fatalf("%v: original and surviving copy must both be equipped, ran %d", err, ran)
		}
		for _, id := range []world.EntityID{n.Entity, res.Spawned[0]} {
			e, _ := mw.Entity(id)
			if it := e.Equipment[catalog.SlotWeapon]; it == nil || it.Kind != catalog.IronSword {
				t.Fatalf("%v: %s weapon = %+v", err, id, it)
			}
		}
	}
}

func TestMultiplierSkipsBossesAndNonNatural(t *testing.T) {
	h := newHarness(t, `mob-spawn: {multiplier: 3}`, roll.NewSequence())
	if _, res := h.spawn(catalog.Warden, world.ReasonNatural, false); len(res.Spawned) != 0 {
		t.Fatalf("bosses are never multiplied")
	}
	if _, res := h.spawn(catalog.Zombie, world.ReasonSpawner, false); len(res.Spawned) != 0 {
		t.Fatalf("only natural spawns are multiplied")
	}
}

func TestJockeyRiderGetsEquipment(t *testing.T) {
	h := newHarness(t, `
jockey-chance: {baby_zombie_chicken_jockey: 1.0}
spawn-chance:
  zombie:
    weapon: {iron_sword: 1.0}
`, roll.NewSequence())
	orig, res := h.spawn(catalog.Zombie, world.ReasonNatural, true)
	if !res.Cancelled || res.Stage != StageJockey || len(res.Spawned) != 2 {
		t.Fatalf("result = %+v", res)
	}
	mount, _ := h.w.Entity(res.Spawned[0])
	rider, _ := h.w.Entity(res.Spawned[1])
	if mount.Kind != catalog.Chicken || rider.Kind != catalog.Zombie || !rider.Juvenile {
		t.Fatalf("mount=%s rider=%s juvenile=%v", mount.Kind, rider.Kind, rider.Juvenile)
	}
	if rider.Vehicle != mount.ID {
		t.Fatalf("rider not mounted")
	}

	if rider.Equipment[catalog.SlotWeapon] != nil {
		t.Fatalf("equipment must wait one tick")
	}
	h.q.Tick()
	rider, _ = h.w.Entity(rider.ID)
	mount, _ = h.w.Entity(mount.ID)
	original, _ := h.w.Entity(orig.Entity)
	if w := rider.Equipment[catalog.SlotWeapon]; w == nil || w.Kind != catalog.IronSword {
		t.Fatalf("rider weapon = %+v", w)
	}
	if mount.Equipment[catalog.SlotWeapon] != nil || original.Equipment[catalog.SlotWeapon] != nil {
		t.Fatalf("only the rider is equipped")
	}
}

func TestJockeyFallsThroughUnsupportedMount(t *testing.T) {
	h := newHarness(t, `
jockey-chance:
  baby_drowned_chicken_jockey: 1.0
  drowned_nautilus_jockey: 1.0
`, roll.NewSequence())
	h.w.Unsupport(catalog.Chicken)
	_, res := h.spawn(catalog.Drowned, world.ReasonNatural, true)
	if res.Stage != StageJockey {
		t.Fatalf("stage = %s", res.Stage)
	}
	if mount, _ := h.w.Entity(res.Spawned[0]); mount.Kind != catalog.ZombieNautilus {
		t.Fatalf("mount = %s", mount.Kind)
	}
}

func TestJockeyRulesRespectAge(t *testing.T) {
	h := newHarness(t, `
jockey-chance:
  baby_zombie_chicken_jockey: 1.0
  zombie_horse_jockey: 1.0
  husk_camel_jockey: 1.0
`, roll.NewSequence())
	_, res := h.spawn(catalog.Zombie, world.ReasonSpawner, false)
	if mount, _ := h.w.Entity(res.Spawned[0]); mount.Kind != catalog.ZombieHorse {
		t.Fatalf("adult zombie mount = %s", mount.Kind)
	}
	_, res = h.spawn(catalog.Husk, world.ReasonSpawner, true)
	if res.Stage != StageEquipped {
		t.Fatalf("baby husk has no configured chicken chance, got %s", res.Stage)
	}
}

func TestMultipliedCopyCanBecomeJockey(t *testing.T) {
	h := newHarness(t, `
mob-spawn: {multiplier: 2}
jockey-chance: {skeleton_spider_jockey: 1.0}
`, roll.NewSequence())
	orig, res := h.spawn(catalog.Skeleton, world.ReasonNatural, false)
	// copy, then its spider and rider, then the original's spider and rider
	if len(res.Spawned) != 5 || !res.Cancelled {
		t.Fatalf("result = %+v", res)
	}
	if h.w.Valid(res.Spawned[0]) {
		t.Fatalf("solo copy must give way to its jockey pair")
	}
	if h.w.Count(catalog.Spider) != 2 {
		t.Fatalf("spiders = %d", h.w.Count(catalog.Spider))
	}
	if !h.w.Valid(orig.Entity) {
		t.Fatalf("original is left to the host to cancel")
	}
}

func TestImmunityIsIdempotent(t *testing.T) {
	h := newHarness(t, ``, roll.NewSequence())
	n, _ := h.spawn(catalog.Piglin, world.ReasonNatural, false)
	before, _ := h.w.Entity(n.Entity)
	h.p.immunize(contextOf(n))
	after, _ := h.w.Entity(n.Entity)
	if !before.Immune || !after.Immune {
		t.Fatalf("piglin must be immune")
	}
	if _, immune := h.w.Calls(); immune != 2 {
		t.Fatalf("immune calls = %d", immune)
	}
}

func TestDisabledKindStillImmune(t *testing.T) {
	h := newHarness(t, `
spawn-chance:
  hoglin: {enabled: false}
`, roll.NewSequence())
	n, res := h.spawn(catalog.Hoglin, world.ReasonNatural, false)
	if res.Stage != StageDisabled || res.Cancelled {
		t.Fatalf("result = %+v", res)
	}
	if e, _ := h.w.Entity(n.Entity); !e.Immune {
		t.Fatalf("disabled kinds keep immunity")
	}
	if h.q.Len() != 0 {
		t.Fatalf("disabled kinds get no equipment")
	}
}

func TestEligibility(t *testing.T) {
	h := newHarness(t, `
enabled-worlds: [arena]
mob-spawn: {enable-spawn-egg: false, multiplier: 2}
`, roll.NewSequence())
	n := h.w.Admit(catalog.Zombie, "world", world.ReasonNatural, false)
	if res := h.p.HandleSpawn(context.Background(), n); res.Stage != StageIneligible {
		t.Fatalf("world not on the allow-list must be ignored: %+v", res)
	}
	n = h.w.Admit(catalog.Zombie, "arena", world.ReasonItem, false)
	if res := h.p.HandleSpawn(context.Background(), n); res.Stage != StageIneligible {
		t.Fatalf("spawn eggs disabled: %+v", res)
	}
	n = h.w.Admit(catalog.Zombie, "arena", world.ReasonOther, false)
	if res := h.p.HandleSpawn(context.Background(), n); res.Stage != StageIneligible {
		t.Fatalf("other reasons are ignored: %+v", res)
	}
}

func TestLightGate(t *testing.T) {
	h := newHarness(t, `light-threshold: 7`, roll.NewSequence())
	n := h.w.Admit(catalog.Zombie, "world", world.ReasonNatural, false)
	n.LightLevel = 10
	if res := h.p.HandleSpawn(context.Background(), n); !res.Cancelled || res.Stage != StageDark {
		t.Fatalf("bright hostile spawn must be suppressed: %+v", res)
	}
	n = h.w.Admit(catalog.Rabbit, "world", world.ReasonNatural, false)
	n.LightLevel = 15
	if res := h.p.HandleSpawn(context.Background(), n); res.Cancelled {
		t.Fatalf("passive kinds ignore the light gate")
	}
}

func TestKillerBunny(t *testing.T) {
	h := newHarness(t, `
special:
  killer_bunny_on_rabbit_spawn: {chance: 1.0}
`, roll.NewSequence())
	n, _ := h.spawn(catalog.Rabbit, world.ReasonNatural, false)
	if e, _ := h.w.Entity(n.Entity); e.State[StateRabbitType] != RabbitKillerType {
		t.Fatalf("rabbit state = %v", e.State)
	}
	n, _ = h.spawn(catalog.Rabbit, world.ReasonSpawner, false)
	if e, _ := h.w.Entity(n.Entity); len(e.State) != 0 {
		t.Fatalf("spawner rabbits are outside the default scope")
	}
}

func TestScaleAppliedImmediately(t *testing.T) {
	h := newHarness(t, `
spawn-chance:
  zombie:
    scale: {"0.5": 0.5, "2": 0.5}
`, roll.NewSequence(0.7))
	n, _ := h.spawn(catalog.Zombie, world.ReasonNatural, false)
	if e, _ := h.w.Entity(n.Entity); e.Attributes[world.AttributeScale] != 2 {
		t.Fatalf("scale = %v", e.Attributes)
	}
}

func TestVanillaKitSkipsEquipment(t *testing.T) {
	h := newHarness(t, `
spawn-chance:
  pillager:
    weapon: {iron_axe: 1.0}
`, roll.NewSequence())
	if _, res := h.spawn(catalog.Pillager, world.ReasonNatural, false); res.Stage != StageVanillaKit {
		t.Fatalf("stage = %s", res.Stage)
	}
	if h.q.Len() != 0 {
		t.Fatalf("pillagers keep their vanilla kit")
	}
}

func TestRemovedBeforeTickGetsNothing(t *testing.T) {
	h := newHarness(t, `
spawn-chance:
  zombie:
    weapon: {iron_sword: 1.0}
`, roll.NewSequence())
	n, _ := h.spawn(catalog.Zombie, world.ReasonNatural, false)
	h.w.Remove(n.Entity)
	if ran, dropped := h.q.Tick(); ran != 0 || dropped != 1 {
		t.Fatalf("ran=%d dropped=%d", ran, dropped)
	}
	if equip, _ := h.w.Calls(); equip != 0 {
		t.Fatalf("no equipment for removed entities")
	}
}

// reloadingWorld publishes a new snapshot the first time something spawns.
type reloadingWorld struct {
	*memworld.World
	store *config.Store
	next  *config.Snapshot
}

func (r *reloadingWorld) Spawn(req world.SpawnRequest) (world.EntityID, error) {
	if r.next != nil {
		r.store.Publish(r.next)
		r.next = nil
	}
	return r.World.Spawn(req)
}

func TestReloadMidCallUsesCapturedSnapshot(t *testing.T) {
	before := snapshot(t, `
replacement-spawn:
  zombie: {husk: 1.0}
spawn-chance:
  husk:
    weapon: {iron_sword: 1.0}
`)
	after := snapshot(t, `
spawn-chance:
  husk:
    weapon: {bow: 1.0}
`)
	store := config.NewStaticStore(before)
	mw := memworld.New()
	w := &reloadingWorld{World: mw, store: store, next: after}
	q := world.NewTickQueue(w.Valid)
	p := New(store, w, q, roll.NewSequence(), nil)

	n := mw.Admit(catalog.Zombie, "world", world.ReasonNatural, false)
	res := p.HandleSpawn(context.Background(), n)
	if store.Current() != after {
		t.Fatalf("reload did not happen mid-call")
	}
	q.Tick()
	husk, _ := mw.Entity(res.Spawned[0])
	if it := husk.Equipment[catalog.SlotWeapon]; it == nil || it.Kind != catalog.IronSword {
		t.Fatalf("equipment must come from the snapshot captured at entry: %+v", it)
	}

	n = mw.Admit(catalog.Zombie, "world", world.ReasonNatural, false)
	if res := p.HandleSpawn(context.Background(), n); res.Stage == StageReplaced {
		t.Fatalf("next call must see the new snapshot")
	}
}
