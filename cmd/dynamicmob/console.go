package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/xtding233/dynamicmob/internal/catalog"
	"github.com/xtding233/dynamicmob/internal/config"
	"github.com/xtding233/dynamicmob/internal/roll"
	"github.com/xtding233/dynamicmob/internal/sim"
	"github.com/xtding233/dynamicmob/internal/world"
)

const helpText = `commands:
  reload                                      re-read config files
  status                                      show the active snapshot
  simulate <entity> [reason] [spawns] [trials] run spawns against an in-memory world
  help
  quit`

type console struct {
	store *config.Store
	rng   roll.RandomSource
	log   *zap.Logger
	out   io.Writer
}

// serve reads commands line by line until EOF, "quit" or ctx is done.
func (c *console) serve(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if !c.exec(ctx, line) {
				return nil
			}
		}
	}
}

// exec runs one command line and reports whether to keep going.
func (c *console) exec(ctx context.Context, line string) bool {
	f := strings.Fields(line)
	if len(f) == 0 {
		return true
	}
	switch strings.ToLower(f[0]) {
	case "reload":
		c.reload()
	case "status":
		c.status()
	case "simulate", "sim":
		if err := c.simulate(ctx, f[1:]); err != nil {
			fmt.Fprintln(c.out, "error:", err)
		}
	case "help", "?":
		fmt.Fprintln(c.out, helpText)
	case "quit", "exit":
		return false
	default:
		fmt.Fprintf(c.out, "unknown command %q, try help\n", f[0])
	}
	return true
}

func (c *console) reload() {
	snap, err := c.store.Reload()
	if err != nil {
		fmt.Fprintln(c.out, "reload failed, keeping previous config:", err)
		return
	}
	fmt.Fprintf(c.out, "reloaded config version %q\n", snap.Version)
}

func (c *console) status() {
	s := c.store.Current()
	fmt.Fprintf(c.out, "version:        %q\n", s.Version)
	fmt.Fprintf(c.out, "worlds:         %s\n", strings.Join(s.Worlds(), ", "))
	fmt.Fprintf(c.out, "multiplier:     %g\n", s.Multiplier)
	fmt.Fprintf(c.out, "spawn eggs:     %v\n", s.AllowSpawnEggs)
	fmt.Fprintf(c.out, "enchant chance: weapon %g, armor %g\n", s.WeaponEnchantChance, s.ArmorEnchantChance)
	fmt.Fprintf(c.out, "transform guard: %v\n", s.TransformGuard)
}

func parseReason(s string) (world.Reason, error) {
	switch strings.ToLower(s) {
	case "natural":
		return world.ReasonNatural, nil
	case "spawner":
		return world.ReasonSpawner, nil
	case "item", "egg", "spawn_egg":
		return world.ReasonItem, nil
	}
	return 0, fmt.Errorf("unknown reason %q (natural, spawner, item)", s)
}

func (c *console) simulate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: simulate <entity> [reason] [spawns] [trials]")
	}
	kind, ok := catalog.ParseEntityKind(args[0])
	if !ok {
		return fmt.Errorf("unknown entity %q", args[0])
	}
	p := sim.Params{Kind: kind, Reason: world.ReasonNatural, Spawns: 1000}
	trials := 10
	if len(args) > 1 {
		r, err := parseReason(args[1])
		if err != nil {
			return err
		}
		p.Reason = r
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid spawns %q", args[2])
		}
		p.Spawns = n
	}
	if len(args) > 3 {
		n, err := strconv.Atoi(args[3])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid trials %q", args[3])
		}
		trials = n
	}
	if ws := c.store.Current().Worlds(); len(ws) > 0 {
		p.World = ws[0]
	}

	rep, err := sim.Run(ctx, c.store.Current(), p, trials, c.rng, c.log.Named("sim"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d trials x %d %s spawns of %s\n", rep.Trials, p.Spawns, p.Reason, kind)
	fmt.Fprintf(c.out, "  alive:     mean %.1f  sd %.1f  p90 %.1f\n", rep.Alive.Mean, rep.Alive.StdDev, rep.Alive.P90)
	fmt.Fprintf(c.out, "  cancelled: mean %.1f  sd %.1f\n", rep.Cancelled.Mean, rep.Cancelled.StdDev)
	fmt.Fprintf(c.out, "  synthetic: mean %.1f  sd %.1f\n", rep.Synthetic.Mean, rep.Synthetic.StdDev)
	printCounts(c.out, "stages", rep.Stages)
	printCounts(c.out, "kinds", rep.Kinds)
	printCounts(c.out, "weapons", rep.Weapons)
	return nil
}

func printCounts[K comparable](w io.Writer, title string, m map[K]int) {
	if len(m) == 0 {
		return
	}
	type row struct {
		name string
		n    int
	}
	rows := make([]row, 0, len(m))
	for k, n := range m {
		rows = append(rows, row{fmt.Sprint(k), n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].name < rows[j].name
	})
	fmt.Fprintf(w, "  %s:\n", title)
	for _, r := range rows {
		fmt.Fprintf(w, "    %-22s %d\n", r.name, r.n)
	}
}
