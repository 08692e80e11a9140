package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pkg/errors"
)

func (c maincmd) list(_ context.Context, fs *flag.FlagSet, args []string) error {
	path := fs.String("path", "/", "path to list")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parsing args")
	}

	names, code := c.t.List(*path)
	if code != 0 {
		return fmt.Errorf("list %q: %s", *path, code)
	}
	fmt.Println(names)
	return nil
}
