package main

import (
	"fmt"

	"github.com/signadot/partcat/store"

	"github.com/scott-cotton/cli"
)

func process(cfg *ProcessConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Process.Parse(cc, args)
	if err != nil {
		cfg.Process.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: process takes no arguments", cli.ErrUsage)
	}
	c, coll, err := cfg.load(true)
	if err != nil {
		return err
	}
	if coll.CSVs == "" {
		return fmt.Errorf("%w: collection %q has no csvs directory", cli.ErrUsage, coll.Name)
	}
	n, err := store.CSVsReadAndProcess(c, coll.CSVs, cfg.Bind)
	theLog.Info("process", "collection", coll.Name, "tables", n, "bind", cfg.Bind)
	return err
}
