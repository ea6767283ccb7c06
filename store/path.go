package store

import (
	"fmt"
	"path/filepath"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/codec"
)

const (
	TableSuffix  = ".xml"
	SearchSuffix = ".xml"
	CSVSuffix    = ".csv"
)

func encodedPath(n catalog.Node) (string, error) {
	names, err := catalog.Path(n)
	if err != nil {
		return "", fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
	}
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = codec.ToFileName(name)
	}
	return filepath.Join(parts...), nil
}

// TablePath is the file holding t below its Collection's root.
func TablePath(t *catalog.Table) (string, error) {
	rel, err := encodedPath(t)
	if err != nil {
		return "", err
	}
	return filepath.Join(t.Collection().Root, rel+TableSuffix), nil
}

// DirectoryPath is the directory mirroring d below its Collection's root.
func DirectoryPath(d *catalog.Directory) (string, error) {
	rel, err := encodedPath(d)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.Collection().Root, rel), nil
}

// SearchesPath is the directory holding the saved Searches of t.
func SearchesPath(t *catalog.Table) (string, error) {
	rel, err := encodedPath(t)
	if err != nil {
		return "", err
	}
	return filepath.Join(t.Collection().SearchesRoot, rel), nil
}

// SearchPath is the file holding s.
func SearchPath(s *catalog.Search) (string, error) {
	t := s.Table()
	if t == nil {
		return "", fmt.Errorf("%w: search %q has no table", catalog.ErrPersistence, s.Name())
	}
	dir, err := SearchesPath(t)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, codec.ToFileName(s.Name())+SearchSuffix), nil
}

// CSVPath is the sample file of t below csvRoot.
func CSVPath(csvRoot string, t *catalog.Table) (string, error) {
	rel, err := encodedPath(t)
	if err != nil {
		return "", err
	}
	return filepath.Join(csvRoot, rel+CSVSuffix), nil
}
