package scala

// RecordDeclaration is one case class header found in a source file.
type RecordDeclaration struct {
	// Name is the class identifier.
	Name string
	// RawFieldList is the text between the constructor's outer parentheses,
	// exclusive of the parentheses themselves. Nested generic brackets and
	// newlines are preserved verbatim.
	RawFieldList string
	// Line is the 1-based line of the "case" keyword.
	Line int
	// End is the byte offset just past the whole declaration: the closing
	// parenthesis, or the end of the extends clause or class body when one
	// follows. Generated text is inserted here.
	End int
}

// Field is a single name/type pair within a field list. TypeText is raw and
// unvalidated; a trailing default-value assignment has already been stripped.
type Field struct {
	Name     string
	TypeText string
}

// Malformed identifies a declaration whose field list never balances before
// end-of-file.
type Malformed struct {
	Name string
	Line int
}
