package codegen

import (
	"strconv"
	"strings"
)

// stringLiteral is one {contents, emitted label index} record in the
// code-generator-scoped registry accumulated during emission and flushed
// into the `.data` section at finalisation (SPEC_FULL.md §3).
type stringLiteral struct {
	Contents string
	Label    string
}

// stringRegistry accumulates literal string contents in first-use order
// and assigns each a unique `.data` label. Every label it hands out is
// written to the `.data` section exactly once by Generator.Generate.
type stringRegistry struct {
	entries []stringLiteral
	next    int
}

// intern registers contents (duplicates get distinct labels; Vex does not
// dedupe, matching a straightforward single-pass emitter) and returns the
// assigned label.
func (r *stringRegistry) intern(contents string) string {
	label := "str_" + strconv.Itoa(r.next)
	r.next++
	r.entries = append(r.entries, stringLiteral{Contents: contents, Label: label})
	return label
}

// nasmEscape renders contents as a NASM `db` byte sequence, splitting on
// quotes so embedded `"` and control characters round-trip safely.
func nasmEscape(s string) string {
	var b strings.Builder
	inQuote := false
	closeQuote := func() {
		if inQuote {
			b.WriteByte('"')
			inQuote = false
		}
	}
	openQuote := func() {
		if !inQuote {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('"')
			inQuote = true
		} else {
			b.WriteString(", ")
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			closeQuote()
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString("34")
		case c < 0x20 || c >= 0x7f:
			closeQuote()
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(int(c)))
		default:
			openQuote()
			b.WriteByte(c)
		}
	}
	closeQuote()
	if b.Len() == 0 {
		return "0"
	}
	return b.String() + ", 0"
}

