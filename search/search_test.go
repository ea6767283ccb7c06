package search

import (
	"errors"
	"testing"

	"github.com/signadot/partcat/catalog"

	"github.com/google/go-cmp/cmp"
)

const sample = `Part,Resistance,Tolerance,Stock,Temp Range,Packaging,Datasheet
R1,10 kOhm,1%,100,-55 ~ 155,"Tape, Reel",https://example.com/r1.pdf
R2,4.7 kOhm,5%,-,-40 ~ 85,Bulk,https://example.com/r2.pdf
R3,100 Ohm,1%,2500,-55 ~ 125,Cut Tape/Tape,-
`

func testTable(t *testing.T) *catalog.Table {
	t.Helper()
	reg := catalog.NewRegistry()
	table := catalog.NewTable(reg, "Chip Resistor", "/p", 1, "https://x")
	params := []*catalog.Parameter{
		catalog.NewParameter(reg, "Resistance", 0, catalog.FUnitsType),
		catalog.NewParameter(reg, "Tolerance", 0, catalog.IUnitsType),
		catalog.NewParameter(reg, "Stock", 0, catalog.IntegerType),
		catalog.NewParameter(reg, "Temp Range", 0, catalog.RangeType),
		catalog.NewParameter(reg, "Packaging", 0, catalog.ListType),
		catalog.NewParameter(reg, "Datasheet", 0, catalog.URLType),
	}
	if err := table.ParametersReplace(params); err != nil {
		t.Fatal(err)
	}
	return table
}

func TestRun(t *testing.T) {
	table := testTable(t)
	tests := []struct {
		filter string
		want   []string
	}{
		{``, []string{"R1", "R2", "R3"}},
		{`Tolerance == 1`, []string{"R1", "R3"}},
		{`unit("Resistance") == "kOhm" && Resistance < 5`, []string{"R2"}},
		{`Stock != nil && Stock > 1000`, []string{"R3"}},
		{`Stock == nil`, []string{"R2"}},
		{`col("Temp Range")[0] <= -55`, []string{"R1", "R3"}},
		{`"Tape" in Packaging`, []string{"R1", "R3"}},
		{`Datasheet != nil && Datasheet endsWith ".pdf"`, []string{"R1", "R2"}},
		{`Part startsWith "R" && raw("Stock") == "-"`, []string{"R2"}},
	}
	for _, tc := range tests {
		t.Run(tc.filter, func(t *testing.T) {
			s := catalog.NewSearch(table.Registry(), "s", tc.filter)
			rows, err := Run(s, table, sample)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, row := range rows {
				got = append(got, row[0])
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("rows (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchByIndex(t *testing.T) {
	table := testTable(t)
	s := catalog.NewSearch(table.Registry(), "big", "Resistance >= 10")
	p, err := Compile(s, table.Parameters())
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		row  []string
		want bool
	}{
		{[]string{"10 kOhm"}, true},
		{[]string{"4.7 kOhm"}, false},
	} {
		got, err := p.Match(tc.row)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("Match(%q) = %v", tc.row, got)
		}
	}
}

func TestErrors(t *testing.T) {
	table := testTable(t)
	_, err := Compile(catalog.NewSearch(table.Registry(), "bad", "Stock >"), table.Parameters())
	if !errors.Is(err, ErrSearch) {
		t.Errorf("compile: %v", err)
	}
	_, err = Run(catalog.NewSearch(table.Registry(), "nil", "Stock > 1000"), table, sample)
	if !errors.Is(err, ErrSearch) {
		t.Errorf("run: %v", err)
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		typ  catalog.ParameterType
		in   string
		want any
	}{
		{catalog.IntegerType, " 42 ", 42},
		{catalog.IntegerType, "4x", "4x"},
		{catalog.FloatType, "2.5", 2.5},
		{catalog.FUnitsType, "4.7 uF", 4.7},
		{catalog.RangeType, "1.8V ~ 5.5V", []any{1.8, 5.5}},
		{catalog.ListType, "a, b/c", []any{"a", "b", "c"}},
		{catalog.StringType, "-", nil},
		{catalog.URLType, "http://x", "http://x"},
	}
	for _, tc := range tests {
		if diff := cmp.Diff(tc.want, Value(tc.typ, tc.in)); diff != "" {
			t.Errorf("Value(%s, %q) (-want +got):\n%s", tc.typ, tc.in, diff)
		}
	}
}
