package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/encode"
)

// WriteTable writes the file of a materialized Table, creating its
// directory as needed. Searches are not part of the table file; see
// SaveSearch.
func WriteTable(t *catalog.Table) error {
	if !t.Materialized() {
		return fmt.Errorf("%w: table %q is a stub", catalog.ErrPersistence, t.Name())
	}
	path, err := TablePath(t)
	if err != nil {
		return err
	}
	return writeNode(path, t, encode.EncodeOmit(catalog.SearchKind))
}

// SaveSearch writes the file of s below the searches root of its
// Collection.
func SaveSearch(s *catalog.Search) error {
	path, err := SearchPath(s)
	if err != nil {
		return err
	}
	return writeNode(path, s)
}

// WriteCollection writes every Directory, materialized Table and Search of
// c. Stub Tables are already on disk and left alone.
func WriteCollection(c *catalog.Collection) error {
	return catalog.Visit(c, func(n catalog.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		switch x := n.(type) {
		case *catalog.Collection:
			if err := mkdirAll(x.Root); err != nil {
				return false, err
			}
			return true, mkdirAll(x.SearchesRoot)
		case *catalog.Directory:
			path, err := DirectoryPath(x)
			if err != nil {
				return false, err
			}
			return true, mkdirAll(path)
		case *catalog.Table:
			if !x.Materialized() {
				return false, nil
			}
			if err := WriteTable(x); err != nil {
				return false, err
			}
			for _, s := range x.Searches() {
				if err := SaveSearch(s); err != nil {
					return false, err
				}
			}
			return false, nil
		}
		return true, nil
	})
}

func mkdirAll(dir string) error {
	st, err := os.Stat(dir)
	if err == nil {
		if !st.IsDir() {
			return fmt.Errorf("%w: %s exists but is not a directory", catalog.ErrPersistence, dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
	}
	return nil
}

func writeNode(path string, n catalog.Node, opts ...encode.EncodeOption) error {
	if err := mkdirAll(filepath.Dir(path)); err != nil {
		return err
	}
	w, err := create(path)
	if err != nil {
		return err
	}
	opts = append([]encode.EncodeOption{encode.EncodeHeader(true)}, opts...)
	if err := encode.Encode(n, w, opts...); err != nil {
		w.f.Close()
		return err
	}
	return w.Close()
}

func writeFile(path string, d []byte) error {
	if err := mkdirAll(filepath.Dir(path)); err != nil {
		return err
	}
	w, err := create(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(d); err != nil {
		w.f.Close()
		return err
	}
	return w.Close()
}

func create(path string) (*wc, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
	}
	return &wc{f: f, w: bufio.NewWriter(f)}, nil
}

type wc struct {
	f *os.File
	w *bufio.Writer
}

func (w *wc) Write(d []byte) (int, error) {
	return w.w.Write(d)
}

func (w *wc) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
