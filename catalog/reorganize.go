package catalog

import (
	"strings"

	"github.com/signadot/partcat/debug"
)

const (
	// TitleSeparator splits a Table title into a group prefix and a suffix.
	TitleSeparator = " - "
	// OthersTitle names the member whose title equals its group's prefix.
	OthersTitle = "Others"
)

// SplitTitle splits title on the first TitleSeparator. ok is false when
// the separator is absent or either side is blank.
func SplitTitle(title string) (prefix, suffix string, ok bool) {
	before, after, found := strings.Cut(title, TitleSeparator)
	if !found {
		return "", "", false
	}
	prefix, suffix = strings.TrimSpace(before), strings.TrimSpace(after)
	if prefix == "" || suffix == "" {
		return "", "", false
	}
	return prefix, suffix, true
}

type groupMember struct {
	table *Table
	title string
}

// Reorganize groups the Tables of d by title prefix. Tables titled
// "P - S" that share P are moved into a sub-Directory named P and renamed
// S; a Table titled exactly P joins them as "Others". Groups of fewer than
// two Tables are left alone. An existing sub-Directory named P is reused.
// A group is also left alone when two of its members would get the same
// name, or a member would take the name of a Table already in the reused
// sub-Directory.
//
// Reorganize returns the number of groups moved. Running it again on its
// result moves nothing.
func (d *Directory) Reorganize() (int, error) {
	tables := d.Tables()
	prefixes := map[string]bool{}
	for _, t := range tables {
		if p, _, ok := SplitTitle(t.Name()); ok {
			prefixes[p] = true
		}
	}
	groups := map[string][]groupMember{}
	var order []string
	for _, t := range tables {
		prefix, suffix, ok := SplitTitle(t.Name())
		if !ok {
			title := strings.TrimSpace(t.Name())
			if !prefixes[title] {
				continue
			}
			prefix, suffix = title, OthersTitle
		}
		if _, seen := groups[prefix]; !seen {
			order = append(order, prefix)
		}
		groups[prefix] = append(groups[prefix], groupMember{table: t, title: suffix})
	}

	moved := 0
	for _, prefix := range order {
		members := groups[prefix]
		if len(members) < 2 {
			continue
		}
		if name, ok := d.clash(prefix, members); ok {
			debug.Logger().Warn("not reorganizing: name clash", "directory", d.Name(), "group", prefix, "table", name)
			continue
		}
		sub := d.directory(prefix)
		if sub == nil {
			sub = NewDirectory(d.Registry(), prefix)
			if err := d.DirectoryInsert(sub); err != nil {
				return moved, err
			}
		}
		for _, m := range members {
			if err := d.Remove(m.table); err != nil {
				return moved, err
			}
			m.table.SetName(m.title)
			if err := sub.TableInsert(m.table); err != nil {
				return moved, err
			}
		}
		if debug.Reorg() {
			debug.Logf("reorganize %q: moved %d tables into %q\n", d.Name(), len(members), prefix)
		}
		moved++
	}
	return moved, nil
}

// clash returns the first member name already taken in the sub-Directory
// prefix would move members into.
func (d *Directory) clash(prefix string, members []groupMember) (string, bool) {
	taken := map[string]bool{}
	if sub := d.directory(prefix); sub != nil {
		for _, t := range sub.Tables() {
			taken[t.Name()] = true
		}
	}
	for _, m := range members {
		if taken[m.title] {
			return m.title, true
		}
		taken[m.title] = true
	}
	return "", false
}

// ReorganizeRecursively applies Reorganize to every Directory at or below
// n, parents before children, including Directories created on the way.
func ReorganizeRecursively(n Node) (int, error) {
	var dirs []*Directory
	switch x := n.(type) {
	case *Directory:
		dirs = []*Directory{x}
	case *Collection:
		dirs = x.Directories()
	case *Group:
		for _, c := range Collect[*Collection](x) {
			dirs = append(dirs, c.Directories()...)
		}
	}
	total := 0
	for _, d := range dirs {
		moved, err := reorganizeTree(d)
		total += moved
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func reorganizeTree(d *Directory) (int, error) {
	total, err := d.Reorganize()
	if err != nil {
		return total, err
	}
	for _, sub := range d.Directories() {
		moved, err := reorganizeTree(sub)
		total += moved
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
