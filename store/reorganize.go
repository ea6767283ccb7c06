package store

import (
	"fmt"
	"os"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/debug"
)

type location struct {
	table     string
	searchDir string
	searches  []string
}

// Reorganize applies catalog.ReorganizeRecursively to c and moves the files
// of every relocated Table and its saved Searches. It returns the number of
// Tables moved.
func Reorganize(c *catalog.Collection) (int, error) {
	before := map[*catalog.Table]location{}
	for _, t := range catalog.Collect[*catalog.Table](c) {
		if err := Materialize(t); err != nil {
			return 0, err
		}
		loc, err := locate(t)
		if err != nil {
			return 0, err
		}
		before[t] = loc
	}
	if _, err := catalog.ReorganizeRecursively(c); err != nil {
		return 0, err
	}
	var moved []*catalog.Table
	paths := map[string]*catalog.Table{}
	for _, t := range catalog.Collect[*catalog.Table](c) {
		tp, err := TablePath(t)
		if err != nil {
			return 0, err
		}
		if other, ok := paths[tp]; ok {
			return 0, fmt.Errorf("%w: tables %q and %q both map to %s", catalog.ErrPersistence, other.Name(), t.Name(), tp)
		}
		paths[tp] = t
		if tp != before[t].table {
			moved = append(moved, t)
		}
	}
	// old files go first: a new Directory may take the place of an old
	// Table's searches directory.
	for _, t := range moved {
		old := before[t]
		if debug.Reorg() {
			debug.Logf("move %s\n", old.table)
		}
		if err := os.Remove(old.table); err != nil {
			return 0, fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
		}
		for _, sp := range old.searches {
			if err := os.Remove(sp); err != nil && !os.IsNotExist(err) {
				return 0, fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
			}
		}
		// fails, and is meant to, unless the directory is now empty
		os.Remove(old.searchDir)
	}
	for i, t := range moved {
		if err := WriteTable(t); err != nil {
			return i, err
		}
		for _, s := range t.Searches() {
			if err := SaveSearch(s); err != nil {
				return i, err
			}
		}
	}
	return len(moved), nil
}

func locate(t *catalog.Table) (location, error) {
	tp, err := TablePath(t)
	if err != nil {
		return location{}, err
	}
	sd, err := SearchesPath(t)
	if err != nil {
		return location{}, err
	}
	loc := location{table: tp, searchDir: sd}
	for _, s := range t.Searches() {
		sp, err := SearchPath(s)
		if err != nil {
			return location{}, err
		}
		loc.searches = append(loc.searches, sp)
	}
	return loc, nil
}
