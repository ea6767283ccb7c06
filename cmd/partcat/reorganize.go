package main

import (
	"fmt"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/libdiff"
	"github.com/signadot/partcat/store"

	"github.com/scott-cotton/cli"
)

func reorganize(cfg *ReorganizeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Reorganize.Parse(cc, args)
	if err != nil {
		cfg.Reorganize.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: reorganize takes no arguments", cli.ErrUsage)
	}
	c, coll, err := cfg.load(true)
	if err != nil {
		return err
	}
	if !cfg.DryRun {
		n, err := store.Reorganize(c)
		theLog.Info("reorganize", "collection", coll.Name, "tables", n)
		return err
	}
	before := skeleton(c)
	groups, err := catalog.ReorganizeRecursively(c)
	if err != nil {
		return err
	}
	theLog.Info("reorganize dry run", "collection", coll.Name, "directories", groups)
	return libdiff.Write(cc.Out, libdiff.Lines(before, skeleton(c)), cfg.colors(cc.Out) != nil, false)
}
