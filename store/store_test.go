package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/partcat/catalog"

	"github.com/google/go-cmp/cmp"
)

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// testCollection writes a small collection below a temporary directory and
// returns its roots.
func testCollection(t *testing.T) (root, searches string) {
	t.Helper()
	tmp := t.TempDir()
	root = filepath.Join(tmp, "ROOT")
	searches = filepath.Join(tmp, "SEARCHES")
	reg := catalog.NewRegistry()
	c := catalog.NewCollection(reg, "Digi-Key", root, searches)
	cables := catalog.NewDirectory(reg, "Cables/Wires")
	resistors := catalog.NewDirectory(reg, "Resistors")
	empty := catalog.NewDirectory(reg, ".hidden name")
	chip := catalog.NewTable(reg, "Chip Resistor - Surface Mount", "/products/52", 1, "https://www.digikey.com")
	arrays := catalog.NewTable(reg, "Resistor Networks, Arrays", "/products/50", 2, "https://www.digikey.com")
	coax := catalog.NewTable(reg, "Coaxial Cables (RF)", "/products/456", 3, "https://www.digikey.com")
	resistance := catalog.NewParameter(reg, "Resistance", 0, catalog.StringType)
	must(t, c.DirectoryInsert(resistors))
	must(t, c.DirectoryInsert(cables))
	must(t, c.DirectoryInsert(empty))
	must(t, resistors.TableInsert(chip))
	must(t, resistors.TableInsert(arrays))
	must(t, cables.TableInsert(coax))
	must(t, chip.ParameterInsert(resistance))
	must(t, resistance.CommentInsert(catalog.NewParameterComment(reg, "EN", []string{"Nominal value"})))
	must(t, chip.ParameterInsert(catalog.NewParameter(reg, "Legacy", 1, catalog.StringType)))
	must(t, chip.CommentInsert(catalog.NewTableComment(reg, "EN", []string{"SMD parts"})))
	must(t, chip.SearchInsert(catalog.NewSearch(reg, "Cheap 1%", "Tolerance == \"1%\"")))
	must(t, WriteCollection(c))
	return root, searches
}

func skeleton(t *testing.T, c *catalog.Collection) []string {
	t.Helper()
	var res []string
	depth := 0
	must(t, catalog.Visit(c, func(n catalog.Node, isPost bool) (bool, error) {
		if isPost {
			depth--
			return true, nil
		}
		switch n.Kind() {
		case catalog.DirectoryKind, catalog.TableKind:
			res = append(res, catalog.ShowLine(n, depth))
		}
		depth++
		return true, nil
	}))
	return res
}

func TestLoadPartialFull(t *testing.T) {
	root, searches := testCollection(t)
	reg := catalog.NewRegistry()
	partial, err := LoadCollection(reg, "Digi-Key", root, searches, true)
	must(t, err)
	full, err := LoadCollection(reg, "Digi-Key", root, searches, false)
	must(t, err)
	if partial.Key() == full.Key() {
		t.Errorf("collections share key %d", full.Key())
	}
	want := skeleton(t, full)
	if diff := cmp.Diff(want, skeleton(t, partial)); diff != "" {
		t.Errorf("partial and full loads differ (-full +partial):\n%s", diff)
	}
	if len(want) != 6 {
		t.Errorf("unexpected skeleton:\n%s", strings.Join(want, "\n"))
	}
	for _, tbl := range catalog.Collect[*catalog.Table](partial) {
		if tbl.Materialized() || len(tbl.Children()) != 0 {
			t.Errorf("%q should be a stub", tbl.Name())
		}
	}
	for _, tbl := range catalog.Collect[*catalog.Table](full) {
		if !tbl.Materialized() {
			t.Errorf("%q should be materialized", tbl.Name())
		}
	}
	must(t, catalog.ValidateRecursively(full))
}

func TestMaterialize(t *testing.T) {
	root, searches := testCollection(t)
	c, err := LoadCollection(catalog.NewRegistry(), "Digi-Key", root, searches, true)
	must(t, err)
	var chip *catalog.Table
	for _, tbl := range catalog.Collect[*catalog.Table](c) {
		if tbl.Name() == "Chip Resistor - Surface Mount" {
			chip = tbl
		}
	}
	if chip == nil {
		t.Fatal("chip table not loaded")
	}
	if err := WriteTable(chip); !errors.Is(err, catalog.ErrPersistence) {
		t.Errorf("writing a stub: %v", err)
	}
	must(t, Materialize(chip))
	want := []string{
		"Table('Chip Resistor - Surface Mount')",
		" Parameter('Resistance')",
		"  ParameterComment('EN')",
		" Parameter('Legacy')",
		" TableComment('EN')",
		" Search('Cheap 1%')",
	}
	if diff := cmp.Diff(want, catalog.ShowLines(chip)); diff != "" {
		t.Errorf("materialized table (-want +got):\n%s", diff)
	}
	if chip.URL != "/products/52" || chip.Nonce != 1 {
		t.Errorf("table fields %q %d", chip.URL, chip.Nonce)
	}
	if got := chip.Search("Cheap 1%").Filter; got != `Tolerance == "1%"` {
		t.Errorf("filter %q", got)
	}
	must(t, Materialize(chip))
	if n := len(chip.Searches()); n != 1 {
		t.Errorf("%d searches after second materialize", n)
	}
}

func TestLayout(t *testing.T) {
	root, searches := testCollection(t)
	for _, p := range []string{
		filepath.Join(root, "Cables%2fWires", "Coaxial_Cables_(RF).xml"),
		filepath.Join(root, "Resistors", "Chip_Resistor_%2d_Surface_Mount.xml"),
		filepath.Join(root, "%2ehidden_name"),
		filepath.Join(searches, "Resistors", "Chip_Resistor_%2d_Surface_Mount", "Cheap_1%25.xml"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Error(err)
		}
	}
	d, err := os.ReadFile(filepath.Join(root, "Resistors", "Chip_Resistor_%2d_Surface_Mount.xml"))
	must(t, err)
	if !strings.HasPrefix(string(d), `<?xml version="1.0"?>`) || strings.Contains(string(d), "<Search") {
		t.Errorf("table file:\n%s", d)
	}
}

func TestLoadCollectionErrors(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "file")
	must(t, os.WriteFile(file, nil, 0644))
	for _, roots := range [][2]string{
		{filepath.Join(tmp, "missing"), tmp},
		{tmp, file},
		{"", tmp},
	} {
		reg := catalog.NewRegistry()
		_, err := LoadCollection(reg, "x", roots[0], roots[1], true)
		if !errors.Is(err, catalog.ErrPersistence) {
			t.Errorf("LoadCollection(%q, %q): %v", roots[0], roots[1], err)
		}
		if reg.Len() != 0 {
			t.Errorf("failed load registered a collection")
		}
	}
}

func TestCSVsDownload(t *testing.T) {
	root, searches := testCollection(t)
	c, err := LoadCollection(catalog.NewRegistry(), "Digi-Key", root, searches, true)
	must(t, err)
	csvRoot := filepath.Join(t.TempDir(), "CSVS")
	var fetched []string
	fetch := func(tbl *catalog.Table) (string, error) {
		fetched = append(fetched, tbl.Base+tbl.URL)
		return "Resistance,Tolerance\n10k,1%\n", nil
	}
	n, err := CSVsDownload(c, csvRoot, fetch)
	must(t, err)
	if n != 3 {
		t.Errorf("first download wrote %d samples", n)
	}
	n, err = CSVsDownload(c, csvRoot, fetch)
	must(t, err)
	if n != 0 || len(fetched) != 3 {
		t.Errorf("second download wrote %d samples, %d fetches", n, len(fetched))
	}
	d, err := os.ReadFile(filepath.Join(csvRoot, "Cables%2fWires", "Coaxial_Cables_(RF).csv"))
	must(t, err)
	if string(d) != "Resistance,Tolerance\n10k,1%\n" {
		t.Errorf("sample %q", d)
	}
}

func TestCSVsDownloadError(t *testing.T) {
	root, searches := testCollection(t)
	c, err := LoadCollection(catalog.NewRegistry(), "Digi-Key", root, searches, true)
	must(t, err)
	boom := errors.New("boom")
	n, err := CSVsDownload(c, t.TempDir(), func(*catalog.Table) (string, error) { return "", boom })
	if n != 0 || !errors.Is(err, boom) {
		t.Errorf("got %d, %v", n, err)
	}
}

func writeSample(t *testing.T, csvRoot string, tbl *catalog.Table, text string) {
	t.Helper()
	path, err := CSVPath(csvRoot, tbl)
	must(t, err)
	must(t, os.MkdirAll(filepath.Dir(path), 0755))
	must(t, os.WriteFile(path, []byte(text), 0644))
}

func chipTable(t *testing.T, c *catalog.Collection) *catalog.Table {
	t.Helper()
	for _, tbl := range catalog.Collect[*catalog.Table](c) {
		if tbl.Name() == "Chip Resistor - Surface Mount" {
			must(t, Materialize(tbl))
			return tbl
		}
	}
	t.Fatal("no chip table")
	return nil
}

func TestCSVsReadAndProcessBind(t *testing.T) {
	root, searches := testCollection(t)
	c, err := LoadCollection(catalog.NewRegistry(), "Digi-Key", root, searches, true)
	must(t, err)
	csvRoot := t.TempDir()
	writeSample(t, csvRoot, chipTable(t, c), "Tolerance,Resistance,Stock\n1%,10 kOhm,100\n5%,4.7 kOhm,-\n")
	n, err := CSVsReadAndProcess(c, csvRoot, true)
	must(t, err)
	if n != 1 {
		t.Errorf("processed %d tables", n)
	}

	again, err := LoadCollection(catalog.NewRegistry(), "Digi-Key", root, searches, false)
	must(t, err)
	chip := chipTable(t, again)
	type param struct {
		Name     string
		Index    int
		Type     string
		Comments int
	}
	var got []param
	for _, p := range chip.Parameters() {
		got = append(got, param{p.Name(), p.Index, p.Type.String(), len(p.Comments())})
	}
	want := []param{
		{"Tolerance", 0, "IUnits", 0},
		{"Resistance", 1, "FUnits", 1},
		{"Stock", 2, "Integer", 0},
		{"Legacy", 3, "String", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parameters (-want +got):\n%s", diff)
	}
	if len(chip.Comments()) != 1 || len(chip.Searches()) != 1 {
		t.Errorf("table lost children:\n%s", strings.Join(catalog.ShowLines(chip), "\n"))
	}
}

func TestCSVsReadAndProcessRebuild(t *testing.T) {
	root, searches := testCollection(t)
	c, err := LoadCollection(catalog.NewRegistry(), "Digi-Key", root, searches, false)
	must(t, err)
	csvRoot := t.TempDir()
	chip := chipTable(t, c)
	writeSample(t, csvRoot, chip, "Header1,Header2,Header3\n123,abc,-\n456,def,-\n")
	_, err = CSVsReadAndProcess(c, csvRoot, false)
	must(t, err)
	var got []string
	for _, p := range chip.Parameters() {
		got = append(got, p.Name()+":"+p.Type.String())
		if len(p.Comments()) != 0 {
			t.Errorf("%s kept comments", p.Name())
		}
	}
	want := []string{"Header1:Integer", "Header2:String", "Header3:Empty"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parameters (-want +got):\n%s", diff)
	}
	must(t, catalog.ValidateRecursively(c))
}

func TestReorganize(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "ROOT")
	searches := filepath.Join(tmp, "SEARCHES")
	reg := catalog.NewRegistry()
	c := catalog.NewCollection(reg, "Digi-Key", root, searches)
	opto := catalog.NewDirectory(reg, "Optoelectronics")
	must(t, c.DirectoryInsert(opto))
	for i, name := range []string{
		"Fiber Optic Connectors",
		"Fiber Optic Connectors - Accessories",
		"Fiber Optic Connectors - Contacts",
		"LED Indication - Discrete",
	} {
		tbl := catalog.NewTable(reg, name, "/products/"+name, i, "https://www.digikey.com")
		must(t, opto.TableInsert(tbl))
		must(t, tbl.SearchInsert(catalog.NewSearch(reg, "All", "")))
	}
	must(t, WriteCollection(c))

	loaded, err := LoadCollection(catalog.NewRegistry(), "Digi-Key", root, searches, true)
	must(t, err)
	moved, err := Reorganize(loaded)
	must(t, err)
	if moved != 3 {
		t.Errorf("moved %d tables", moved)
	}

	again, err := LoadCollection(catalog.NewRegistry(), "Digi-Key", root, searches, false)
	must(t, err)
	want := []string{
		" Directory('Optoelectronics')",
		"  Directory('Fiber Optic Connectors')",
		"   Table('Accessories')",
		"   Table('Contacts')",
		"   Table('Others')",
		"  Table('LED Indication - Discrete')",
	}
	if diff := cmp.Diff(want, skeleton(t, again)); diff != "" {
		t.Errorf("after reorganize (-want +got):\n%s", diff)
	}
	for _, tbl := range catalog.Collect[*catalog.Table](again) {
		if tbl.Search("All") == nil {
			t.Errorf("%q lost its search", tbl.Name())
		}
	}
	for _, gone := range []string{
		filepath.Join(root, "Optoelectronics", "Fiber_Optic_Connectors_%2d_Accessories.xml"),
		filepath.Join(root, "Optoelectronics", "Fiber_Optic_Connectors.xml"),
		filepath.Join(searches, "Optoelectronics", "Fiber_Optic_Connectors_%2d_Contacts"),
	} {
		if _, err := os.Stat(gone); !os.IsNotExist(err) {
			t.Errorf("%s still exists: %v", gone, err)
		}
	}
	moved, err = Reorganize(again)
	must(t, err)
	if moved != 0 {
		t.Errorf("second pass moved %d tables", moved)
	}
}

func TestReorganizeNameClash(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "ROOT")
	searches := filepath.Join(tmp, "SEARCHES")
	reg := catalog.NewRegistry()
	c := catalog.NewCollection(reg, "Digi-Key", root, searches)
	resistors := catalog.NewDirectory(reg, "Resistors")
	chip := catalog.NewDirectory(reg, "Chip")
	must(t, c.DirectoryInsert(resistors))
	must(t, resistors.DirectoryInsert(chip))
	must(t, chip.TableInsert(catalog.NewTable(reg, "Thick", "/a", 0, "")))
	must(t, resistors.TableInsert(catalog.NewTable(reg, "Chip - Thick", "/b", 1, "")))
	must(t, resistors.TableInsert(catalog.NewTable(reg, "Chip - Thin", "/c", 2, "")))
	must(t, WriteCollection(c))

	loaded, err := LoadCollection(catalog.NewRegistry(), "Digi-Key", root, searches, true)
	must(t, err)
	moved, err := Reorganize(loaded)
	must(t, err)
	if moved != 0 {
		t.Errorf("moved %d tables", moved)
	}
	again, err := LoadCollection(catalog.NewRegistry(), "Digi-Key", root, searches, false)
	must(t, err)
	var urls []string
	for _, tbl := range catalog.Collect[*catalog.Table](again) {
		urls = append(urls, tbl.URL)
	}
	if diff := cmp.Diff([]string{"/a", "/b", "/c"}, urls); diff != "" {
		t.Errorf("tables on disk (-want +got):\n%s", diff)
	}
}
