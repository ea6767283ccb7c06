package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/codec"
	"github.com/signadot/partcat/debug"
	"github.com/signadot/partcat/parse"
)

// LoadCollection creates a Collection registered with reg and loads it from
// root. Both root and searchesRoot must be existing directories.
func LoadCollection(reg *catalog.Registry, name, root, searchesRoot string, partial bool) (*catalog.Collection, error) {
	for _, dir := range []string{root, searchesRoot} {
		if err := checkDir(dir); err != nil {
			return nil, err
		}
	}
	c := catalog.NewCollection(reg, name, root, searchesRoot)
	if err := LoadRecursively(c, partial); err != nil {
		return nil, err
	}
	return c, nil
}

func checkDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: empty directory name", catalog.ErrPersistence)
	}
	st, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%w: %s exists but is not a directory", catalog.ErrPersistence, dir)
	}
	return nil
}

// LoadRecursively adds to c the Directories and Tables found below its
// root. When partial is false every Table is materialized.
func LoadRecursively(c *catalog.Collection, partial bool) error {
	return loadDir(c, c.Root, partial)
}

func loadDir(parent catalog.Node, dir string, partial bool) error {
	if debug.Load() {
		debug.Logf("load %s\n", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
	}
	for _, ent := range ents {
		fn := ent.Name()
		if strings.HasPrefix(fn, ".") {
			continue
		}
		path := filepath.Join(dir, fn)
		if ent.IsDir() {
			name, err := codec.FromFileName(fn)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", catalog.ErrPersistence, path, err)
			}
			d := catalog.NewDirectory(parent.Registry(), name)
			if err := catalog.Insert(parent, d); err != nil {
				return err
			}
			if err := loadDir(d, path, partial); err != nil {
				return err
			}
			continue
		}
		base, ok := strings.CutSuffix(fn, TableSuffix)
		if !ok {
			continue
		}
		name, err := codec.FromFileName(base)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", catalog.ErrPersistence, path, err)
		}
		d, ok := parent.(*catalog.Directory)
		if !ok {
			debug.Logger().Warn("table outside any directory", "path", path)
			continue
		}
		t := catalog.NewTableStub(d.Registry(), name)
		if err := d.TableInsert(t); err != nil {
			return err
		}
		if partial {
			continue
		}
		if err := Materialize(t); err != nil {
			return err
		}
	}
	return nil
}

// Materialize reads the file of a stub Table into it, along with its saved
// Searches. It does nothing for a materialized Table.
func Materialize(t *catalog.Table) error {
	if t.Materialized() {
		return nil
	}
	path, err := TablePath(t)
	if err != nil {
		return err
	}
	if debug.Load() {
		debug.Logf("materialize %s\n", path)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
	}
	node, err := parse.Parse(d, t.Registry(), parse.ParseRoot(catalog.TableKind))
	if err != nil {
		return fmt.Errorf("could not decode %s: %w", path, err)
	}
	src := node.(*catalog.Table)
	if src.Name() != t.Name() {
		return fmt.Errorf("%w: %s holds table %q, want %q", catalog.ErrPersistence, path, src.Name(), t.Name())
	}
	if err := t.Adopt(src); err != nil {
		return err
	}
	return loadSearches(t)
}

func loadSearches(t *catalog.Table) error {
	dir, err := SearchesPath(t)
	if err != nil {
		return err
	}
	ents, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
	}
	for _, ent := range ents {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), SearchSuffix) {
			continue
		}
		path := filepath.Join(dir, ent.Name())
		d, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
		}
		node, err := parse.Parse(d, t.Registry(), parse.ParseRoot(catalog.SearchKind))
		if err != nil {
			return fmt.Errorf("could not decode %s: %w", path, err)
		}
		s := node.(*catalog.Search)
		if t.Search(s.Name()) != nil {
			continue
		}
		if err := t.SearchInsert(s); err != nil {
			return err
		}
	}
	return nil
}
