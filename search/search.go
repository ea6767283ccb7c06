// Package search evaluates the filter of a Search over the sample rows of
// its Table.
//
// A filter is an expr-lang expression returning a bool. Each column is
// bound under its name with a value typed by its Parameter:
//
//	Integer          int
//	Float            float64
//	IUnits, FUnits   float64, the number before the unit
//	Range            [low, high] as float64
//	List             list of trimmed strings
//	other            string
//
// Blank values are nil. Columns whose names are not identifiers are read
// with col("name"); raw("name") gives the unconverted text and unit("name")
// the unit of an IUnits or FUnits value.
//
// An empty filter matches every row.
package search

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/infer"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrSearch wraps filter compile and run errors.
var ErrSearch = errors.New("search error")

var leadingNumber = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)\s*(.*)$`)

type column struct {
	index int
	typ   catalog.ParameterType
}

type Program struct {
	name    string
	filter  string
	columns map[string]column
	prg     *vm.Program
}

// Compile compiles the filter of s. Columns are taken from params, each
// read from the row position given by its Index.
func Compile(s *catalog.Search, params []*catalog.Parameter) (*Program, error) {
	p := &Program{
		name:    s.Name(),
		filter:  strings.TrimSpace(s.Filter),
		columns: make(map[string]column, len(params)),
	}
	for _, param := range params {
		p.columns[param.Name()] = column{index: param.Index, typ: param.Type}
	}
	if p.filter == "" {
		return p, nil
	}
	prg, err := expr.Compile(p.filter, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", ErrSearch, p.name, err)
	}
	p.prg = prg
	return p, nil
}

// Bind reads columns from the positions of their names in header instead
// of their Parameter indexes. Header columns without a Parameter are
// bound as strings; Parameters missing from header are blank.
func (p *Program) Bind(header []string) {
	cols := make(map[string]column, len(header))
	for name, c := range p.columns {
		cols[name] = column{index: -1, typ: c.typ}
	}
	for i, name := range header {
		c, ok := p.columns[name]
		if !ok {
			c.typ = catalog.StringType
		}
		c.index = i
		cols[name] = c
	}
	p.columns = cols
}

// Match reports whether row satisfies the filter.
func (p *Program) Match(row []string) (bool, error) {
	if p.prg == nil {
		return true, nil
	}
	res, err := expr.Run(p.prg, p.env(row))
	if err != nil {
		return false, fmt.Errorf("%w: search %q: %w", ErrSearch, p.name, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("%w: search %q gave %T, not bool", ErrSearch, p.name, res)
	}
	return b, nil
}

func (p *Program) raw(row []string, name string) (string, bool) {
	c, ok := p.columns[name]
	if !ok || c.index < 0 || c.index >= len(row) {
		return "", ok
	}
	return row[c.index], true
}

func (p *Program) env(row []string) map[string]any {
	env := make(map[string]any, len(p.columns)+3)
	for name, c := range p.columns {
		v, _ := p.raw(row, name)
		env[name] = Value(c.typ, v)
	}
	env["col"] = func(name string) any { return env[name] }
	env["raw"] = func(name string) string {
		v, _ := p.raw(row, name)
		return v
	}
	env["unit"] = func(name string) string {
		v, _ := p.raw(row, name)
		m := leadingNumber.FindStringSubmatch(strings.TrimSpace(v))
		if m == nil {
			return ""
		}
		return m[2]
	}
	return env
}

// Value converts the text of a column to the value a filter sees. Text
// that does not fit typ is kept as a string.
func Value(typ catalog.ParameterType, v string) any {
	if infer.Blank(v) {
		return nil
	}
	v = strings.TrimSpace(v)
	switch typ {
	case catalog.IntegerType:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	case catalog.FloatType, catalog.IUnitsType, catalog.FUnitsType:
		if f, ok := leadingFloat(v); ok {
			return f
		}
	case catalog.RangeType:
		lo, hi, ok := strings.Cut(v, "~")
		if !ok {
			break
		}
		l, lok := leadingFloat(strings.TrimSpace(lo))
		h, hok := leadingFloat(strings.TrimSpace(hi))
		if lok && hok {
			return []any{l, h}
		}
	case catalog.ListType:
		var res []any
		for _, tok := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '/' }) {
			if tok = strings.TrimSpace(tok); tok != "" {
				res = append(res, tok)
			}
		}
		return res
	}
	return v
}

func leadingFloat(v string) (float64, bool) {
	m := leadingNumber.FindStringSubmatch(v)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	return f, err == nil
}

// Run returns the rows of the CSV sample csvText matching the filter of s,
// with column types taken from table.
func Run(s *catalog.Search, table *catalog.Table, csvText string) ([][]string, error) {
	p, err := Compile(s, table.Parameters())
	if err != nil {
		return nil, err
	}
	header, rows, err := infer.ReadSample(bytes.NewReader([]byte(csvText)))
	if err != nil {
		return nil, err
	}
	p.Bind(header)
	var res [][]string
	for _, row := range rows {
		ok, err := p.Match(row)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, row)
		}
	}
	return res, nil
}
