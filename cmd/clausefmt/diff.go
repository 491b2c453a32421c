package main

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff returns a line by line diff between <before> and <after>, labelled with <name>. Removed lines start with
// '-', added lines with '+'. Unchanged lines are omitted.
func lineDiff(name, before, after string, colored bool) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	hdr := color.New(color.Bold)
	for _, c := range []*color.Color{del, ins, hdr} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var sb strings.Builder
	sb.WriteString(hdr.Sprintf("--- %s.orig", name) + "\n")
	sb.WriteString(hdr.Sprintf("+++ %s", name) + "\n")
	for _, d := range diffs {
		var prefix string
		var c *color.Color
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", del
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", ins
		default:
			continue
		}
		for _, line := range splitLines(d.Text) {
			sb.WriteString(c.Sprint(prefix+line) + "\n")
		}
	}
	return sb.String()
}

// splitLines returns the lines of <text> without their line endings
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

// diffName returns the label used for standard input in diffs and listings
func diffName(path string) string {
	if path == "" {
		return "<standard input>"
	}
	return path
}
