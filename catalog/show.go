package catalog

import "strings"

// ShowLines renders the subtree rooted at n, one node per line, as
// Kind('name') indented by one space per level, in child order.
func ShowLines(n Node) []string {
	return showLines(n, 0, nil)
}

func showLines(n Node, depth int, out []string) []string {
	out = append(out, ShowLine(n, depth))
	for _, c := range n.base().children {
		out = showLines(c, depth+1, out)
	}
	return out
}

func ShowLine(n Node, depth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", depth))
	b.WriteString(n.Kind().String())
	b.WriteString("('")
	b.WriteString(n.Name())
	b.WriteString("')")
	return b.String()
}
