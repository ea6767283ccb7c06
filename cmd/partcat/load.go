package main

import (
	"fmt"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/encode"

	"github.com/scott-cotton/cli"
)

func load(cfg *LoadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Load.Parse(cc, args)
	if err != nil {
		cfg.Load.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: load takes no arguments", cli.ErrUsage)
	}
	c, _, err := cfg.load(cfg.Partial)
	if err != nil {
		return err
	}
	if cfg.XML {
		return encode.Encode(c, cc.Out, cfg.encOpts(cc.Out)...)
	}
	stubs := 0
	for _, t := range catalog.Collect[*catalog.Table](c) {
		if !t.Materialized() {
			stubs++
		}
	}
	_, err = fmt.Fprintf(cc.Out, "%s: %d directories, %d tables (%d stubs), %d parameters, %d searches\n",
		c.Name(),
		count(c, catalog.DirectoryKind),
		count(c, catalog.TableKind),
		stubs,
		count(c, catalog.ParameterKind),
		count(c, catalog.SearchKind))
	return err
}

func count(n catalog.Node, kind catalog.Kind) int {
	return len(catalog.CollectRecursively(n, kind, nil))
}
