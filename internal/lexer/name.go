package lexer

// IsNameStartChar reports whether c may begin a name: a letter or '_'
// (spec §6 "Name rules").
func IsNameStartChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsLegalNameChar reports whether c may appear anywhere in a name after
// its first character: letter, digit, or '_'.
func IsLegalNameChar(c byte) bool {
	return IsNameStartChar(c) || (c >= '0' && c <= '9')
}

// IsLegalName reports whether name is syntactically a legal identifier:
// starts with a letter or '_', remaining characters letters/digits/'_'.
func IsLegalName(name string) bool {
	if len(name) == 0 {
		return false
	}
	if !IsNameStartChar(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !IsLegalNameChar(name[i]) {
			return false
		}
	}
	return true
}

// IsReservedName reports whether name is reserved and so can't be used
// as a variable or user-function name (spec §6: "cannot equal ans").
func IsReservedName(name string) bool {
	return name == "ans"
}

// NameBounds scans backward from endPos (inclusive) over legal name
// characters and returns the start of that run plus whether the run, as
// a whole, is a legal identifier (begins with a letter or '_' rather
// than a digit). A digit-only run means the characters before endPos are
// part of a numeric literal, not a name — the disambiguation spec §4.1/
// §4.3 need to decide whether a '+'/'-' after 'e'/'E' belongs to a
// scientific-notation exponent or is a binary operator following a
// variable name that happens to end in 'e'.
func NameBounds(s string, endPos int) (start int, ok bool) {
	i := endPos
	for i >= 0 && IsLegalNameChar(s[i]) {
		i--
	}
	start = i + 1
	if start > endPos {
		return start, false
	}
	return start, IsNameStartChar(s[start])
}

// NameEnd returns the index one past the last legal-name-char run
// starting at startPos (used to extract a function/variable name token
// once its start is known, e.g. the name immediately preceding '(').
func NameEnd(s string, startPos int) int {
	i := startPos
	for i < len(s) && IsLegalNameChar(s[i]) {
		i++
	}
	return i
}

// IsOperatorChar reports whether c is one of the binary operator
// characters of either domain (spec §6 "Operator characters").
func IsOperatorChar(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '^', '&', '|':
		return true
	default:
		return false
	}
}
