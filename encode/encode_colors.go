package encode

import (
	"strings"

	"github.com/signadot/partcat/catalog"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind catalog.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	TagColor ColorAttr = iota
	AttrColor
	ValueColor
	TextColor
	NameColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range catalog.Kinds() {
		colors.Map[Colorable{Kind: k, Attr: AttrColor}] = color.RGB(128, 168, 196).SprintfFunc()
		colors.Map[Colorable{Kind: k, Attr: ValueColor}] = color.RGB(8, 196, 16).SprintfFunc()
		colors.Map[Colorable{Kind: k, Attr: NameColor}] = color.RGB(8, 196, 16).SprintfFunc()
	}
	able := Colorable{Attr: TagColor}
	able.Kind = catalog.GroupKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Kind = catalog.CollectionKind
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	able.Kind = catalog.DirectoryKind
	colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
	able.Kind = catalog.TableKind
	colors.Map[able] = color.CyanString
	able.Kind = catalog.ParameterKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = catalog.SearchKind
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	for _, k := range []catalog.Kind{catalog.TableCommentKind, catalog.ParameterCommentKind} {
		colors.Map[Colorable{Kind: k, Attr: TagColor}] = color.BlueString
		colors.Map[Colorable{Kind: k, Attr: TextColor}] = color.BlueString
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k catalog.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k catalog.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}

// ShowLines is catalog.ShowLines with the kind and name of each line
// colored by c. A nil c gives plain lines.
func ShowLines(n catalog.Node, c *Colors) []string {
	return showLines(n, 0, c, nil)
}

func showLines(n catalog.Node, depth int, c *Colors, out []string) []string {
	out = append(out, ShowLine(n, depth, c))
	for _, child := range n.Children() {
		out = showLines(child, depth+1, c, out)
	}
	return out
}

// ShowLine is catalog.ShowLine colored by c.
func ShowLine(n catalog.Node, depth int, c *Colors) string {
	if c == nil {
		return catalog.ShowLine(n, depth)
	}
	k := n.Kind()
	return strings.Repeat(" ", depth) +
		c.Color(k, TagColor, k.String()) +
		"(" + c.Color(k, NameColor, "'"+n.Name()+"'") + ")"
}
