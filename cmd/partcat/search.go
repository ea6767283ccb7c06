package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/infer"
	"github.com/signadot/partcat/search"
	"github.com/signadot/partcat/store"

	"github.com/scott-cotton/cli"
)

func searchTable(cfg *SearchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Search.Parse(cc, args)
	if err != nil {
		cfg.Search.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: search requires a search name and a table path", cli.ErrUsage)
	}
	c, coll, err := cfg.load(true)
	if err != nil {
		return err
	}
	n, err := find(c, args[1:])
	if err != nil {
		return err
	}
	t, ok := n.(*catalog.Table)
	if !ok {
		return fmt.Errorf("%w: %s %q is not a table", cli.ErrUsage, n.Kind(), n.Name())
	}
	s := t.Search(args[0])
	switch {
	case s == nil && cfg.Filter == "":
		return fmt.Errorf("%w: table %q has no search %q", catalog.ErrNotFound, t.Name(), args[0])
	case s == nil:
		s = catalog.NewSearch(t.Registry(), args[0], cfg.Filter)
		if err := t.SearchInsert(s); err != nil {
			return err
		}
	case cfg.Filter != "":
		s.Filter = cfg.Filter
	}
	if _, err := search.Compile(s, t.Parameters()); err != nil {
		return err
	}
	if cfg.Save {
		if err := store.SaveSearch(s); err != nil {
			return err
		}
		theLog.Info("saved search", "table", t.Name(), "search", s.Name())
	}
	if coll.CSVs == "" {
		return nil
	}
	path, err := store.CSVPath(coll.CSVs, t)
	if err != nil {
		return err
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("no sample for %q: %w", t.Name(), err)
	}
	rows, err := search.Run(s, t, string(d))
	if err != nil {
		return err
	}
	header, _, err := infer.ReadSample(bytes.NewReader(d))
	if err != nil {
		return err
	}
	w := csv.NewWriter(cc.Out)
	for _, row := range append([][]string{header}, rows...) {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
