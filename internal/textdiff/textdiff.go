// Package textdiff produces line-oriented diffs of rendered nodes.
package textdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is one line of a diff.
type Line struct {
	Text string
	Op   Op
}

// Lines diffs from and to line by line.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []Line
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffEqual:
			op = Equal
		}
		for _, text := range splitLines(d.Text) {
			out = append(out, Line{Op: op, Text: text})
		}
	}
	return out
}

// Changed reports whether any line differs.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != Equal {
			return true
		}
	}
	return false
}

// Format renders lines with a unified-diff style prefix. Colorize, when non-nil,
// wraps inserted and deleted lines.
func Format(lines []Line, colorize func(Op, string) string) string {
	var b strings.Builder
	for _, l := range lines {
		var text string
		switch l.Op {
		case Insert:
			text = "+ " + l.Text
		case Delete:
			text = "- " + l.Text
		default:
			text = "  " + l.Text
		}
		if colorize != nil && l.Op != Equal {
			text = colorize(l.Op, text)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
