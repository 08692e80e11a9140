package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pkg/errors"
)

func (c maincmd) remove(_ context.Context, fs *flag.FlagSet, args []string) error {
	path := fs.String("path", "", "path to remove")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parsing args")
	}
	if *path == "" {
		return errors.New("must supply -path")
	}

	if code := c.t.Remove(*path); code != 0 {
		return fmt.Errorf("remove %q: %s", *path, code)
	}
	return nil
}
