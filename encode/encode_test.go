package encode

import (
	"strings"
	"testing"

	"github.com/signadot/partcat/catalog"

	"github.com/google/go-cmp/cmp"
)

func testTree(t *testing.T) *catalog.Group {
	t.Helper()
	reg := catalog.NewRegistry()
	root := catalog.NewGroup(reg, "Root")
	coll := catalog.NewCollection(reg, "Digi-Key", "/tmp/ROOT", "/tmp/S")
	dir := catalog.NewDirectory(reg, "Resistors")
	table := catalog.NewTable(reg, "Chip Resistor - Surface Mount", "/p?a=1&b=2", 1, "https://x")
	param := catalog.NewParameter(reg, "Resistance", 0, catalog.FUnitsType)
	for _, err := range []error{
		root.CollectionInsert(coll),
		coll.DirectoryInsert(dir),
		dir.TableInsert(table),
		table.ParameterInsert(param),
		param.CommentInsert(catalog.NewParameterComment(reg, "EN", []string{"Nominal; ohms"})),
		table.SearchInsert(catalog.NewSearch(reg, "Cheap", "Price < 1")),
		table.CommentInsert(catalog.NewTableComment(reg, "EN", []string{"  indented", "", "é"})),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestEncode(t *testing.T) {
	want := strings.Join([]string{
		`<Group name="Root">`,
		` <Collection name="Digi-Key" collection_root="/tmp/ROOT" searches_root="/tmp/S">`,
		`  <Directory name="Resistors">`,
		`   <Table name="Chip Resistor - Surface Mount" url="/p?a=1&amp;b=2" nonce="1" base="https://x">`,
		`    <Parameter name="Resistance" index="0" type_name="FUnits">`,
		`     <ParameterComment language="EN">`,
		`      Nominal&semi; ohms`,
		`     </ParameterComment>`,
		`    </Parameter>`,
		`    <Search name="Cheap" filter="Price &lt; 1"/>`,
		`    <TableComment language="EN">`,
		`     &#32;&#32;indented`,
		`     `,
		`     &#233;`,
		`    </TableComment>`,
		`   </Table>`,
		`  </Directory>`,
		` </Collection>`,
		`</Group>`,
		``,
	}, "\n")
	got := MustString(testTree(t))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeOptions(t *testing.T) {
	root := testTree(t)
	table := catalog.Collect[*catalog.Table](root)[0]
	got := MustString(table, EncodeHeader(true), EncodeIndent(2), EncodeOmit(catalog.SearchKind, catalog.ParameterCommentKind))
	want := strings.Join([]string{
		Header,
		`<Table name="Chip Resistor - Surface Mount" url="/p?a=1&amp;b=2" nonce="1" base="https://x">`,
		`  <Parameter name="Resistance" index="0" type_name="FUnits"/>`,
		`  <TableComment language="EN">`,
		`    &#32;&#32;indented`,
		`    `,
		`    &#233;`,
		`  </TableComment>`,
		`</Table>`,
		``,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmptyComment(t *testing.T) {
	reg := catalog.NewRegistry()
	c := catalog.NewTableComment(reg, "FR", nil)
	if got, want := MustString(c), "<TableComment language=\"FR\"/>\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestShowLinesPlain(t *testing.T) {
	root := testTree(t)
	got := ShowLines(root, nil)
	want := catalog.ShowLines(root)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ShowLines mismatch (-want +got):\n%s", diff)
	}
}

func TestColorsDefault(t *testing.T) {
	c := &Colors{Default: colorDefault, Map: map[Colorable]func(string, ...any) string{}}
	if got := c.Color(catalog.TableKind, TagColor, "100%"); got != "100%" {
		t.Errorf("got %q", got)
	}
	lines := ShowLines(testTree(t), c)
	if lines[0] != "Group('Root')" {
		t.Errorf("got %q", lines[0])
	}
}
