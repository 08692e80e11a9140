package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/arbortree/arbor/config"
)

// stress runs many goroutines hammering a small, bounded path universe
// with random create/remove/list/move calls, to confirm the tree
// terminates without deadlock or a fatal abort.
func (c maincmd) stress(ctx context.Context, fs *flag.FlagSet, args []string) error {
	defaults := config.Defaults()
	workers := fs.Int("workers", defaults.StressWorkers, "number of concurrent goroutines")
	ops := fs.Int("ops", defaults.StressOpsPerWorker, "operations per goroutine")
	depth := fs.Int("depth", defaults.StressPathUniverse, "names per level in the path universe (paths are one or two levels deep)")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parsing args")
	}

	universe := pathUniverse(*depth)

	start := time.Now()
	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < *workers; w++ {
		seed := time.Now().UnixNano() + int64(w)
		g.Go(func() error {
			r := rand.New(rand.NewSource(seed))
			for i := 0; i < *ops; i++ {
				p := universe[r.Intn(len(universe))]
				switch r.Intn(4) {
				case 0:
					c.t.Create(p)
				case 1:
					c.t.Remove(p)
				case 2:
					c.t.List(p)
				case 3:
					q := universe[r.Intn(len(universe))]
					c.t.Move(p, q)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "stress run")
	}

	names, code := c.t.List("/")
	fmt.Printf("stress: %d workers x %d ops in %s, root now lists %q (code %s)\n",
		*workers, *ops, time.Since(start), names, code)
	return nil
}

// pathUniverse builds every path of depth 1 and 2 under names n0..n(depth-1)
// at each level, giving move/create/remove plenty of shared prefixes to
// contend over.
func pathUniverse(depth int) []string {
	universe := make([]string, 0, depth*depth*2)
	for i := 0; i < depth; i++ {
		universe = append(universe, fmt.Sprintf("/n%d/", i))
		for j := 0; j < depth; j++ {
			universe = append(universe, fmt.Sprintf("/n%d/n%d/", i, j))
		}
	}
	return universe
}
