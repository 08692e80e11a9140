// Command arbor is a CLI interface to an in-memory concurrent directory
// tree: list, create, remove, and move folders, or run a concurrent stress
// scenario against them.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/bobg/subcmd"

	"github.com/arbortree/arbor/arbortree"
	"github.com/arbortree/arbor/config"
)

type maincmd struct {
	t *arbortree.Tree
}

func main() {
	configPath := flag.String("config", "", "path to tunables YAML file (default: built-in defaults)")
	verbose := flag.Bool("v", false, "log every tree operation to stderr")
	flag.Parse()

	tunables := config.Defaults()
	if *configPath != "" {
		var err error
		tunables, err = config.UseFile(*configPath).Read()
		if err != nil {
			log.Fatalf("reading config %s: %s", *configPath, err)
		}
	}
	if err := tunables.Apply(); err != nil {
		log.Fatalf("applying config: %s", err)
	}

	tree := arbortree.New()
	if *verbose {
		tree = arbortree.NewWithLog(newStdLog())
	}
	c := maincmd{t: tree}

	if err := subcmd.Run(context.Background(), c, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func (c maincmd) Subcmds() map[string]subcmd.Subcmd {
	return map[string]subcmd.Subcmd{
		"list":   c.list,
		"create": c.create,
		"remove": c.remove,
		"move":   c.move,
		"stress": c.stress,
	}
}
