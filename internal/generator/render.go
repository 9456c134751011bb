package generator

import (
	"fmt"
	"strings"

	"github.com/scalatools/casegen/internal/scala"
)

// Render produces the companion object text for one declaration: one
// String-typed val per field, named after the field and holding the field's
// own name, in declaration order. A field list with zero fields yields a
// well-formed empty object.
func Render(name string, fields []scala.Field, indent string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "object %s {\n", name)
	for _, f := range fields {
		fmt.Fprintf(&b, "%sval %s: String = %s\n", indent, f.Name, quote(literalValue(f.Name)))
	}
	b.WriteString("}\n")
	return b.String()
}

// literalValue is the string the generated constant holds. A backtick-quoted
// identifier contributes its bare name: the column is called "type", not
// "`type`".
func literalValue(name string) string {
	if len(name) >= 2 && name[0] == '`' && name[len(name)-1] == '`' {
		return name[1 : len(name)-1]
	}
	return name
}

// quote renders s as a Scala string literal. Field identifiers are
// alphanumeric/underscore in practice, but quote and backslash are escaped
// anyway so the output is always a valid literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
