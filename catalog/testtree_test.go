package catalog

import "testing"

type testTree struct {
	reg         *Registry
	root        *Group
	electronics *Group
	digikey     *Collection
	resistors   *Directory
	chip        *Table
	resistance  *Parameter
	cheap       *Search
}

func buildTestTree(t *testing.T) *testTree {
	t.Helper()
	tt := &testTree{reg: NewRegistry()}
	tt.root = NewGroup(tt.reg, "Root")
	tt.electronics = NewGroup(tt.reg, "Electronics")
	tt.digikey = NewCollection(tt.reg, "Digi-Key", "/tmp/ROOT", "/tmp/SEARCHES")
	tt.resistors = NewDirectory(tt.reg, "Resistors")
	tt.chip = NewTable(tt.reg, "Chip Resistor - Surface Mount", "/products/en/resistors/chip-resistor-surface-mount/52", 1, "https://www.digikey.com")
	tt.resistance = NewParameter(tt.reg, "Resistance", 0, FUnitsType)
	tt.cheap = NewSearch(tt.reg, "Cheap", "")

	must(t, tt.root.GroupInsert(tt.electronics))
	must(t, tt.electronics.CollectionInsert(tt.digikey))
	must(t, tt.digikey.DirectoryInsert(tt.resistors))
	must(t, tt.resistors.TableInsert(tt.chip))
	must(t, tt.chip.ParameterInsert(tt.resistance))
	must(t, tt.chip.SearchInsert(tt.cheap))
	return tt
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
