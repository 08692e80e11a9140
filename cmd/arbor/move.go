package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pkg/errors"
)

func (c maincmd) move(_ context.Context, fs *flag.FlagSet, args []string) error {
	src := fs.String("src", "", "source path")
	tgt := fs.String("tgt", "", "target path")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parsing args")
	}
	if *src == "" || *tgt == "" {
		return errors.New("must supply both -src and -tgt")
	}

	if code := c.t.Move(*src, *tgt); code != 0 {
		return fmt.Errorf("move %q to %q: %s", *src, *tgt, code)
	}
	return nil
}
