package store

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/debug"
	"github.com/signadot/partcat/infer"
)

// FetchFunc returns the CSV sample text of a materialized Table. Pacing and
// retries are up to the implementation.
type FetchFunc func(t *catalog.Table) (string, error)

// CSVsDownload fetches the sample of every Table of c, in pre-order, whose
// sample file does not yet exist below csvRoot, and writes the fetched text
// unchanged. Stub Tables are materialized first. It returns the number of
// samples written.
func CSVsDownload(c *catalog.Collection, csvRoot string, fetch FetchFunc) (int, error) {
	n := 0
	for _, t := range catalog.Collect[*catalog.Table](c) {
		path, err := CSVPath(csvRoot, t)
		if err != nil {
			return n, err
		}
		_, err = os.Stat(path)
		if err == nil {
			continue
		}
		if !os.IsNotExist(err) {
			return n, fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
		}
		if err := Materialize(t); err != nil {
			return n, err
		}
		if debug.Fetch() {
			debug.Logf("fetch %q from %s%s\n", t.Name(), t.Base, t.URL)
		}
		text, err := fetch(t)
		if err != nil {
			return n, fmt.Errorf("could not fetch sample of %q: %w", t.Name(), err)
		}
		if err := writeFile(path, []byte(text)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// CSVsReadAndProcess infers the Parameters of every Table of c having a
// sample below csvRoot and writes the Table. With bind, a Parameter named
// like a sample column is kept, with its comments, and given the inferred
// type; Parameters without a column follow the sample columns. Without bind
// the Parameters are rebuilt from the sample. It returns the number of
// Tables processed.
func CSVsReadAndProcess(c *catalog.Collection, csvRoot string, bind bool) (int, error) {
	n := 0
	for _, t := range catalog.Collect[*catalog.Table](c) {
		path, err := CSVPath(csvRoot, t)
		if err != nil {
			return n, err
		}
		d, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return n, fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
		}
		if err := Materialize(t); err != nil {
			return n, err
		}
		cols, err := infer.Sample(bytes.NewReader(d))
		if err != nil {
			return n, fmt.Errorf("%s: %w", path, err)
		}
		if err := applySample(t, cols, bind); err != nil {
			return n, err
		}
		if err := WriteTable(t); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func applySample(t *catalog.Table, cols []infer.Inferred, bind bool) error {
	params := make([]*catalog.Parameter, 0, len(cols))
	used := map[*catalog.Parameter]bool{}
	for _, col := range cols {
		if err := col.Err(); err != nil && debug.Infer() {
			debug.Logf("%s/%s: %v\n", t.Name(), col.Name, err)
		}
		var p *catalog.Parameter
		if bind {
			p = t.Parameter(col.Name)
			if used[p] {
				p = nil
			}
		}
		if p == nil {
			p = catalog.NewParameter(t.Registry(), col.Name, 0, col.Type)
		}
		p.Type = col.Type
		used[p] = true
		params = append(params, p)
	}
	if bind {
		for _, p := range t.Parameters() {
			if !used[p] {
				params = append(params, p)
			}
		}
	}
	return t.ParametersReplace(params)
}
