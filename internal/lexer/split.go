package lexer

import "strings"

// SplitArgs splits s (the interior of a function call, i.e. the text
// strictly between its outer '(' and ')') on top-level commas, leaving
// commas nested inside parentheses untouched (spec §4.2 "pre-split its
// comma-separated arguments, respecting nested parentheses"). An empty s
// yields a single empty-string element only when emptyMeansNoArgs is
// false; callers that treat "()" as zero arguments pass true and get nil
// back for an empty s.
func SplitArgs(s string, emptyMeansNoArgs bool) []string {
	if s == "" {
		if emptyMeansNoArgs {
			return nil
		}
		return []string{""}
	}
	var args []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s[last:i])
				last = i + 1
			}
		}
	}
	args = append(args, s[last:])
	return args
}

// NameBeforeParen returns the name immediately preceding the '(' at
// parenPos, and the index where that name starts, or ("", -1, false) if
// no legal name immediately precedes it (spec §4.2 step 1: "If the
// character immediately before is part of a legal name, extract the
// name").
func NameBeforeParen(s string, parenPos int) (name string, start int, ok bool) {
	if parenPos == 0 || !IsLegalNameChar(s[parenPos-1]) {
		return "", -1, false
	}
	start, isName := NameBounds(s, parenPos-1)
	if !isName {
		return "", -1, false
	}
	return s[start:parenPos], start, true
}

// TrimmedEqual reports whether a == b after trimming surrounding
// whitespace; arguments are already whitespace-free post normalization,
// so this is mostly useful in tests that build argument lists by hand.
func TrimmedEqual(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
