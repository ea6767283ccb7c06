// Package libdiff computes line diffs of rendered catalog trees.
package libdiff

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

func (o Op) Prefix() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return " "
	}
}

type Line struct {
	Op   Op
	Text string
}

// Lines diffs from against to line by line. Every line of from appears once
// as Equal or Delete and every line of to once as Equal or Insert.
func Lines(from, to []string) []Line {
	lineMap := map[string]rune{}
	fromRunes := mapLinesTo(lineMap, from)
	toRunes := mapLinesTo(lineMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	res := make([]Line, 0, max(len(from), len(to)))
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		n := utf8.RuneCountInString(diff.Text)
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range n {
				res = append(res, Line{Op: Delete, Text: from[fi]})
				fi++
			}
		case diffpatch.DiffEqual:
			for range n {
				res = append(res, Line{Op: Equal, Text: from[fi]})
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				res = append(res, Line{Op: Insert, Text: to[ti]})
				ti++
			}
		}
	}
	return res
}

// mapLinesTo gives each distinct line its own rune, skipping surrogates
// so runes survive conversion to string.
func mapLinesTo(lineMap map[string]rune, lines []string) []rune {
	res := make([]rune, len(lines))
	for i, ln := range lines {
		r, ok := lineMap[ln]
		if !ok {
			r = rune(len(lineMap) + 1)
			if r >= 0xd800 {
				r += 0x800
			}
			lineMap[ln] = r
		}
		res[i] = r
	}
	return res
}

func Changed(lines []Line) bool {
	for i := range lines {
		if lines[i].Op != Equal {
			return true
		}
	}
	return false
}

// Write writes lines with their prefixes, deletions in red and insertions
// in green when colored is set. Equal lines are left out unless all is set.
func Write(w io.Writer, lines []Line, colored, all bool) error {
	for _, ln := range lines {
		if ln.Op == Equal && !all {
			continue
		}
		text := ln.Op.Prefix() + ln.Text
		if colored {
			switch ln.Op {
			case Delete:
				text = color.RedString("%s", text)
			case Insert:
				text = color.GreenString("%s", text)
			}
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}
