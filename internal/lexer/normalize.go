// Package lexer implements the lexical-normalization and scanning
// utilities of spec §4.1-§4.3: whitespace elision, sign-collapse,
// parenthesis-balance checking, the numeric-literal scanner, the
// name-boundary finder, and the comma-respecting argument splitter.
//
// Nothing in this package builds a compiled Expr; it only turns a raw
// input string into the normalized string and small facts about it that
// internal/compiler needs (mirrors the teacher's internal/lexer, which
// is likewise pure scanning with no AST construction).
package lexer

import (
	"strings"

	"texpr/internal/errors"
)

// Normalized is the result of normalizing one input string.
type Normalized struct {
	Source       string // whitespace-stripped, sign-collapsed
	AssignTarget string // non-empty if Source was "name = value"
	ValueStart   int    // index into the pre-split source where the value begins, if AssignTarget != ""
}

// Normalize strips whitespace, collapses consecutive +/- runs to a single
// sign, and splits off a leading "name =" assignment target, exactly as
// spec §4.1 describes. The returned Source is already the value-only
// expression when an assignment was found.
func Normalize(input string, facility errors.Facility) (*Normalized, *errors.Record) {
	if len(input) == 0 {
		return nil, errors.New(facility, errors.KindEmptyInput, errors.Fatal, "Empty input.", input, 0)
	}
	stripped := stripWhitespace(input)
	if len(stripped) == 0 {
		return nil, errors.New(facility, errors.KindEmptyInput, errors.Fatal, "Empty input.", input, 0)
	}

	target, value, rec := splitAssignment(stripped, facility)
	if rec != nil {
		return nil, rec
	}

	collapsed := collapseSigns(value)
	if len(collapsed) == 0 {
		if target != "" {
			return nil, errors.New(facility, errors.KindMissingExpression, errors.Fatal,
				"Assignment operator used, but no expression follows.", stripped, len(stripped))
		}
		return nil, errors.New(facility, errors.KindEmptyInput, errors.Fatal, "Empty input.", input, 0)
	}

	if err := CheckParens(collapsed, facility); err != nil {
		return nil, err
	}

	n := &Normalized{Source: collapsed, AssignTarget: target}
	if target != "" {
		n.ValueStart = len(target) + 1
	}
	return n, nil
}

// stripWhitespace removes every space, tab, newline and carriage return
// from s; other Unicode space characters are kept.
func stripWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// splitAssignment finds a top-level '=' (outside parentheses) preceded by
// a legal variable name, and splits s into (target, value). A second
// top-level '=' is a fatal MultipleAssignment error; an '=' inside
// parentheses is a fatal syntax error.
func splitAssignment(s string, facility errors.Facility) (target, value string, rec *errors.Record) {
	depth := 0
	eqPos := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '=':
			if depth != 0 {
				return "", "", errors.New(facility, errors.KindSyntaxError, errors.Fatal,
					"Syntax error.", s, i)
			}
			if eqPos != -1 {
				return "", "", errors.New(facility, errors.KindMultipleAssignment, errors.Fatal,
					"Multiple assignment operators are not supported.", s, i)
			}
			eqPos = i
		}
	}
	if eqPos == -1 {
		return "", s, nil
	}
	name := s[:eqPos]
	if !IsLegalName(name) {
		return "", "", errors.New(facility, errors.KindInvalidName, errors.Fatal,
			"Invalid name, allowed characters: alphanumeric + underscore, starts with '_' or alphabetic.", s, 0)
	}
	return name, s[eqPos+1:], nil
}

// collapseSigns folds every maximal run of '+'/'-' characters into a
// single sign: an odd number of '-' yields '-', otherwise '+' (spec
// §4.1: "consecutive +/- runs are folded into a single sign").
func collapseSigns(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '+' || c == '-' {
			negatives := 0
			j := i
			for j < len(s) && (s[j] == '+' || s[j] == '-') {
				if s[j] == '-' {
					negatives++
				}
				j++
			}
			if negatives%2 == 1 {
				sb.WriteByte('-')
			} else {
				sb.WriteByte('+')
			}
			i = j
			continue
		}
		sb.WriteByte(c)
		i++
	}
	return sb.String()
}

// CheckParens verifies that every '(' has exactly one matching ')' and
// vice versa, yielding PARENTHESIS_NOT_OPEN / PARENTHESIS_NOT_CLOSED at
// the offending position on mismatch (spec §4.1).
func CheckParens(s string, facility errors.Facility) *errors.Record {
	var open []int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				return errors.New(facility, errors.KindParenNotOpen, errors.Fatal,
					"Extra closing parenthesis.", s, i)
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		pos := open[len(open)-1]
		return errors.New(facility, errors.KindParenNotClosed, errors.Fatal,
			"Open parenthesis has no closing parenthesis.", s, pos)
	}
	return nil
}

// MatchingParen returns the index of the ')' matching the '(' at open.
func MatchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
