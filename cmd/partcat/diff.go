package main

import (
	"fmt"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var from, to []string
	switch len(args) {
	case 0:
		partial, _, err := cfg.load(true)
		if err != nil {
			return err
		}
		full, _, err := cfg.load(false)
		if err != nil {
			return err
		}
		from, to = skeleton(partial), skeleton(full)
	case 2:
		a, _, err := cfg.loadNamed(args[0], false)
		if err != nil {
			return err
		}
		b, _, err := cfg.loadNamed(args[1], false)
		if err != nil {
			return err
		}
		from, to = catalog.ShowLines(a)[1:], catalog.ShowLines(b)[1:]
	default:
		return fmt.Errorf("%w: diff requires 0 or 2 args, got %v", cli.ErrUsage, args)
	}
	lines := libdiff.Lines(from, to)
	if err := libdiff.Write(cc.Out, lines, cfg.colors(cc.Out) != nil, cfg.All); err != nil {
		return err
	}
	if libdiff.Changed(lines) {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// skeleton shows the Directories and Tables below c, which partial and full
// loads have in common.
func skeleton(c *catalog.Collection) []string {
	var res []string
	depth := 0
	catalog.Visit(c, func(n catalog.Node, isPost bool) (bool, error) {
		if isPost {
			depth--
			return true, nil
		}
		depth++
		switch n.Kind() {
		case catalog.DirectoryKind, catalog.TableKind:
			res = append(res, catalog.ShowLine(n, depth-1))
			return n.Kind() == catalog.DirectoryKind, nil
		}
		return true, nil
	})
	return res
}
