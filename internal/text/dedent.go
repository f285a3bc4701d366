// Package text provides text manipulation functions.
package text

import "strings"

// Dedent removes a common indent from all lines in a string,
// allowing multi-line help text to be written inline with code.
// For example:
//
//	const s = text.Dedent(`
//		foo
//		  bar
//	`)
//
// The result is:
//
//	foo
//	  bar
//
// The common indent is the leading whitespace of the first non-blank line.
// Lines that don't carry the indent are reproduced as-is,
// except a blank last line, which is dropped.
func Dedent(s string) string {
	lines := strings.Split(s, "\n")

	var indent string
	for len(lines) > 0 {
		idx := strings.IndexFunc(lines[0], func(r rune) bool {
			return r != ' ' && r != '\t'
		})
		if idx >= 0 {
			indent = lines[0][:idx]
			break
		}
		// Blank leading line. Skip it.
		lines = lines[1:]
	}

	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "" {
		lines = lines[:n-1]
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimPrefix(line, indent)
	}
	return strings.Join(out, "\n")
}
