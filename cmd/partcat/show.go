package main

import (
	"fmt"
	"io"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/encode"

	"github.com/scott-cotton/cli"
	"golang.org/x/text/language"
)

type sortKeys struct {
	dir   *catalog.Key[*catalog.Directory]
	table *catalog.Key[*catalog.Table]
}

func (cfg *ShowConfig) keys() (*sortKeys, error) {
	switch cfg.Sort {
	case "":
		return nil, nil
	case "name":
		return &sortKeys{
			dir:   catalog.NameKey[*catalog.Directory](),
			table: catalog.NameKey[*catalog.Table](),
		}, nil
	case "collated":
		tag := language.Und
		if cfg.Lang != "" {
			var err error
			tag, err = language.Parse(cfg.Lang)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
			}
		}
		return &sortKeys{
			dir:   catalog.CollatedNameKey[*catalog.Directory](tag),
			table: catalog.CollatedNameKey[*catalog.Table](tag),
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown sort %q", cli.ErrUsage, cfg.Sort)
}

func show(cfg *ShowConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Show.Parse(cc, args)
	if err != nil {
		cfg.Show.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	keys, err := cfg.keys()
	if err != nil {
		return err
	}
	c, _, err := cfg.load(!cfg.Full)
	if err != nil {
		return err
	}
	n, err := find(c, args)
	if err != nil {
		return err
	}
	colors := cfg.colors(cc.Out)
	if keys == nil {
		for _, ln := range encode.ShowLines(n, colors) {
			if _, err := fmt.Fprintln(cc.Out, ln); err != nil {
				return err
			}
		}
		return nil
	}
	return showSorted(cc.Out, n, 0, keys, colors)
}

// showSorted shows n with the Directories and then the Tables below each
// Collection or Directory in key order.
func showSorted(w io.Writer, n catalog.Node, depth int, keys *sortKeys, colors *encode.Colors) error {
	if _, err := fmt.Fprintln(w, encode.ShowLine(n, depth, colors)); err != nil {
		return err
	}
	switch n.(type) {
	case *catalog.Collection, *catalog.Directory:
	default:
		for _, child := range n.Children() {
			if err := showSorted(w, child, depth+1, keys, colors); err != nil {
				return err
			}
		}
		return nil
	}
	dirs := catalog.NewNodes[*catalog.Directory](n)
	for i := range dirs.Size() {
		d, err := dirs.Fetch(i, keys.dir)
		if err != nil {
			return err
		}
		if err := showSorted(w, d, depth+1, keys, colors); err != nil {
			return err
		}
	}
	if _, ok := n.(*catalog.Directory); !ok {
		return nil
	}
	tables := catalog.NewNodes[*catalog.Table](n)
	for i := range tables.Size() {
		t, err := tables.Fetch(i, keys.table)
		if err != nil {
			return err
		}
		if err := showSorted(w, t, depth+1, keys, colors); err != nil {
			return err
		}
	}
	return nil
}
