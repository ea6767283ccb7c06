package infer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/debug"
)

// Inferred is the result for one named column of a sample.
type Inferred struct {
	Name string
	Result
}

// Sample reads a CSV sample whose first row holds the column names and
// infers every column. Short rows count as blank in their missing
// columns.
func Sample(r io.Reader) ([]Inferred, error) {
	header, rows, err := ReadSample(r)
	if err != nil {
		return nil, err
	}
	res := make([]Inferred, len(header))
	col := make([]string, len(rows))
	for i, name := range header {
		for j, row := range rows {
			col[j] = ""
			if i < len(row) {
				col[j] = row[i]
			}
		}
		res[i] = Inferred{Name: name, Result: Column(col)}
		if debug.Infer() {
			debug.Logf("infer %q: %s (values %d, blanks %d)\n", name, res[i].Type, res[i].Values, res[i].Blanks)
		}
	}
	return res, nil
}

// ReadSample splits a CSV sample into its header and rows. Rows may have
// any number of fields.
func ReadSample(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: sample has no header", catalog.ErrPersistence)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", catalog.ErrPersistence, err)
	}
	return header, rows, nil
}
