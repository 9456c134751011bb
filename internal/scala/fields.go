package scala

import "strings"

// ParseFields splits a raw field list into fields. The split happens on commas
// at bracket depth zero only, so a type argument containing a comma (e.g.
// Map[String, Int]) never splits a field. Each segment is divided at its first
// depth-zero colon into name and type; a trailing "= default" at depth zero is
// stripped from the type. Segments with no depth-zero colon are returned in
// bad and omitted from fields. An empty field list yields zero fields.
func ParseFields(raw string) (fields []Field, bad []string) {
	for _, seg := range splitTopLevel(raw, ',') {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		colon := indexTopLevel(seg, func(i int, c byte) bool { return c == ':' })
		if colon < 0 {
			bad = append(bad, seg)
			continue
		}
		name := fieldName(seg[:colon])
		if name == "" {
			bad = append(bad, seg)
			continue
		}
		typeText := strings.TrimSpace(seg[colon+1:])
		// Strip a default-value assignment. "=>" is a function type arrow,
		// not an assignment.
		if eq := indexTopLevel(typeText, func(i int, c byte) bool {
			return c == '=' && (i+1 >= len(typeText) || typeText[i+1] != '>')
		}); eq >= 0 {
			typeText = strings.TrimSpace(typeText[:eq])
		}
		fields = append(fields, Field{Name: name, TypeText: typeText})
	}
	return fields, bad
}

// fieldName extracts the field identifier from the text left of the colon:
// the last whitespace-separated token, after modifiers such as "val", "var"
// or annotations.
func fieldName(left string) string {
	tokens := strings.Fields(left)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// splitTopLevel splits s on sep occurrences at bracket depth zero.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	start := 0
	scanTopLevel(s, func(i int, c byte) bool {
		if c == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
		return false
	})
	return append(parts, s[start:])
}

// indexTopLevel returns the offset of the first depth-zero byte for which fn
// returns true, or -1.
func indexTopLevel(s string, fn func(i int, c byte) bool) int {
	found := -1
	scanTopLevel(s, func(i int, c byte) bool {
		if fn(i, c) {
			found = i
			return true
		}
		return false
	})
	return found
}

// scanTopLevel calls fn for every byte of s at bracket depth zero, skipping
// string literals and comments so their contents never participate in
// splitting. fn returning true stops the scan.
func scanTopLevel(s string, fn func(i int, c byte) bool) {
	sc := &scanner{src: s, line: 1}
	depth := 0
	for !sc.eof() {
		if sc.skipNonCode() {
			continue
		}
		switch sc.cur() {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		default:
			if depth == 0 && fn(sc.pos, sc.cur()) {
				return
			}
		}
		sc.advance()
	}
}
