package scala

// The declaration scanner is a small hand-written state machine rather than a
// regex: field lists legitimately span multiple lines and field types contain
// arbitrarily nested brackets, which regular expressions cannot balance.
// Bracket depth increments on '(', '[', '{' and decrements on their closers;
// a declaration ends when depth returns to zero after the constructor's
// opening parenthesis. String literals and comments are skipped so bracket
// characters inside them never count toward nesting depth.

// Scan walks Scala source text and returns every case class declaration found,
// in source order, plus any declarations whose field list never closes.
func Scan(src string) ([]RecordDeclaration, []Malformed) {
	s := &scanner{src: src, line: 1}
	var decls []RecordDeclaration
	var bad []Malformed

	for !s.eof() {
		if s.skipNonCode() {
			continue
		}
		if !isIdentStart(s.cur()) {
			s.advance()
			continue
		}
		keywordLine := s.line
		if s.readWord() != "case" {
			continue
		}
		s.skipInsignificant()
		if s.eof() || !isIdentStart(s.cur()) || s.readWord() != "class" {
			continue // "case" arm of a match expression, or "case object"
		}
		s.skipInsignificant()
		name := s.readName()
		if name == "" {
			continue
		}
		s.skipInsignificant()
		if !s.eof() && s.cur() == '[' {
			// Type-parameter group between the name and the constructor.
			if _, ok := s.consumeBalanced(); !ok {
				bad = append(bad, Malformed{Name: name, Line: keywordLine})
				return decls, bad
			}
			s.skipInsignificant()
		}
		// Constructor access modifiers: case class Foo private[model] (a: Int).
		if !s.consumeCtorModifiers() {
			bad = append(bad, Malformed{Name: name, Line: keywordLine})
			return decls, bad
		}
		if s.eof() || s.cur() != '(' {
			continue // case class without a constructor parameter list
		}
		open := s.pos
		end, ok := s.consumeBalanced()
		if !ok {
			bad = append(bad, Malformed{Name: name, Line: keywordLine})
			return decls, bad
		}
		decls = append(decls, RecordDeclaration{
			Name:         name,
			RawFieldList: src[open+1 : end],
			Line:         keywordLine,
			End:          s.consumeDeclarationTail(end + 1),
		})
	}

	return decls, bad
}

// HasObjectAfter reports whether an object with the given name is declared
// after offset from and before the next case class declaration. Used as the
// idempotence guard: a companion appended by a previous run sits exactly in
// that window.
func HasObjectAfter(src string, from int, name string) bool {
	s := &scanner{src: src[from:], line: 1}
	for !s.eof() {
		if s.skipNonCode() {
			continue
		}
		if !isIdentStart(s.cur()) {
			s.advance()
			continue
		}
		switch s.readWord() {
		case "object":
			s.skipInsignificant()
			if s.readName() == name {
				return true
			}
		case "case":
			s.skipInsignificant()
			if s.eof() || !isIdentStart(s.cur()) {
				continue
			}
			switch s.readWord() {
			case "class":
				return false // next declaration reached
			case "object":
				// A case object is a companion too.
				s.skipInsignificant()
				if s.readName() == name {
					return true
				}
			}
		}
	}
	return false
}

type scanner struct {
	src  string
	pos  int
	line int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }
func (s *scanner) cur() byte { return s.src[s.pos] }

func (s *scanner) peek() byte {
	if s.pos+1 < len(s.src) {
		return s.src[s.pos+1]
	}
	return 0
}

func (s *scanner) advance() {
	if s.cur() == '\n' {
		s.line++
	}
	s.pos++
}

// skipNonCode consumes a comment, string literal, or character literal
// starting at the current position. Returns true if anything was consumed.
func (s *scanner) skipNonCode() bool {
	switch s.cur() {
	case '/':
		if s.peek() == '/' {
			for !s.eof() && s.cur() != '\n' {
				s.advance()
			}
			return true
		}
		if s.peek() == '*' {
			s.skipBlockComment()
			return true
		}
	case '"':
		s.skipString()
		return true
	case '\'':
		s.skipCharOrSymbol()
		return true
	}
	return false
}

// skipBlockComment consumes a block comment. Scala block comments nest.
func (s *scanner) skipBlockComment() {
	depth := 0
	for !s.eof() {
		if s.cur() == '/' && s.peek() == '*' {
			depth++
			s.advance()
			s.advance()
			continue
		}
		if s.cur() == '*' && s.peek() == '/' {
			depth--
			s.advance()
			s.advance()
			if depth == 0 {
				return
			}
			continue
		}
		s.advance()
	}
}

// skipString consumes a double-quoted string, triple-quoted if applicable.
// An unterminated single-line string stops at the newline so the scan can
// recover on the next line.
func (s *scanner) skipString() {
	if s.pos+2 < len(s.src) && s.src[s.pos+1] == '"' && s.src[s.pos+2] == '"' {
		s.advance()
		s.advance()
		s.advance()
		for !s.eof() {
			if s.cur() == '"' && s.pos+2 < len(s.src) && s.src[s.pos+1] == '"' && s.src[s.pos+2] == '"' {
				s.advance()
				s.advance()
				s.advance()
				return
			}
			s.advance()
		}
		return
	}
	s.advance()
	for !s.eof() {
		switch s.cur() {
		case '\\':
			s.advance()
			if !s.eof() {
				s.advance()
			}
		case '"':
			s.advance()
			return
		case '\n':
			return
		default:
			s.advance()
		}
	}
}

// skipCharOrSymbol consumes a character literal ('x' or '\n'). A bare quote
// followed by an identifier is a legacy symbol literal; only the quote is
// consumed so the identifier scans normally.
func (s *scanner) skipCharOrSymbol() {
	if s.peek() == '\\' {
		s.advance() // '
		s.advance() // backslash
		for !s.eof() && s.cur() != '\'' && s.cur() != '\n' {
			s.advance()
		}
		if !s.eof() && s.cur() == '\'' {
			s.advance()
		}
		return
	}
	if s.pos+2 < len(s.src) && s.src[s.pos+2] == '\'' {
		s.advance()
		s.advance()
		s.advance()
		return
	}
	s.advance()
}

// skipInsignificant consumes whitespace and comments.
func (s *scanner) skipInsignificant() {
	for !s.eof() {
		c := s.cur()
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			s.advance()
			continue
		}
		if c == '/' && (s.peek() == '/' || s.peek() == '*') {
			s.skipNonCode()
			continue
		}
		return
	}
}

// readWord consumes and returns the identifier at the current position.
func (s *scanner) readWord() string {
	start := s.pos
	for !s.eof() && isIdentPart(s.cur()) {
		s.advance()
	}
	return s.src[start:s.pos]
}

// readName reads a class or object name: a plain identifier, or a backtick-
// quoted one (backticks included). Returns "" if no name is present.
func (s *scanner) readName() string {
	if s.eof() {
		return ""
	}
	if s.cur() == '`' {
		start := s.pos
		s.advance()
		for !s.eof() && s.cur() != '`' && s.cur() != '\n' {
			s.advance()
		}
		if !s.eof() && s.cur() == '`' {
			s.advance()
			return s.src[start:s.pos]
		}
		return ""
	}
	if !isIdentStart(s.cur()) {
		return ""
	}
	return s.readWord()
}

// consumeCtorModifiers consumes constructor access modifiers between the
// class name (or its type parameters) and the parameter list, e.g.
// "private", "protected", "private[model]". Returns false if a qualifier
// bracket never closes.
func (s *scanner) consumeCtorModifiers() bool {
	for !s.eof() && isIdentStart(s.cur()) {
		save, saveLine := s.pos, s.line
		word := s.readWord()
		if word != "private" && word != "protected" {
			s.pos, s.line = save, saveLine
			return true
		}
		s.skipInsignificant()
		if !s.eof() && s.cur() == '[' {
			if _, ok := s.consumeBalanced(); !ok {
				return false
			}
			s.skipInsignificant()
		}
	}
	return true
}

// consumeDeclarationTail consumes whatever of the declaration follows the
// parameter list - an extends clause with "with" chains and parent
// constructor arguments, and an optional class body - and returns the byte
// offset where the declaration really ends. Without such a tail the offset is
// parenEnd, just past the closing parenthesis. The companion block is
// inserted at the returned offset, so it must never land inside the
// declaration.
func (s *scanner) consumeDeclarationTail(parenEnd int) int {
	last := parenEnd
	for {
		s.skipInsignificant()
		if s.eof() {
			return last
		}
		if s.cur() == '{' {
			end, ok := s.consumeBalanced()
			if !ok {
				return last
			}
			return end + 1
		}
		if !isIdentStart(s.cur()) {
			return last
		}
		save, saveLine := s.pos, s.line
		if word := s.readWord(); word != "extends" && word != "with" {
			s.pos, s.line = save, saveLine
			return last
		}
		s.skipInsignificant()
		if s.readName() == "" {
			return last
		}
		last = s.pos
		// Qualified parent names: extends base.Event.
		for !s.eof() && s.cur() == '.' {
			s.advance()
			if s.readName() == "" {
				return last
			}
			last = s.pos
		}
		// Parent type arguments and constructor arguments:
		// extends Exception[T](msg).
		for !s.eof() && (s.cur() == '[' || s.cur() == '(') {
			end, ok := s.consumeBalanced()
			if !ok {
				return last
			}
			last = end + 1
		}
	}
}

// consumeBalanced consumes a bracket group starting at the current opener and
// returns the offset of the matching closer. Depth counts all three bracket
// kinds; strings and comments inside the group are skipped. Returns ok=false
// if end-of-file is reached before the group balances.
func (s *scanner) consumeBalanced() (end int, ok bool) {
	depth := 0
	for !s.eof() {
		if s.skipNonCode() {
			continue
		}
		switch s.cur() {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				end = s.pos
				s.advance()
				return end, true
			}
		}
		s.advance()
	}
	return 0, false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
