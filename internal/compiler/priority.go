package compiler

// Priority returns the binding priority of operator op in the given
// domain (spec §4.5).
//
// The integer table resolves a genuine ambiguity in the operator
// character set: spec §4.5 lists both "^ (power) = 7" and "bitwise ^
// (xor) = 2" for the integer domain, reusing one character for two
// meanings. original_source/src/int_parser.c's own operator-detection
// table (tms_is_int_op, shared with string_tools.c) treats '^' purely
// as bitwise xor at priority 2 and never reads it as exponentiation; the
// priority-7 "power" slot in that same source is a synthetic internal
// marker never produced by scanning raw text. This implementation
// follows the grounded original behavior: the integer domain has no `^`
// exponentiation operator at all, only bitwise xor.
func Priority(op byte, isInteger bool) int {
	if !isInteger {
		switch op {
		case '^':
			return 3
		case '*', '/', '%':
			return 2
		case '+', '-':
			return 1
		}
		return 0
	}
	switch op {
	case '*', '/', '%':
		return 6
	case '+', '-':
		return 5
	case '&':
		return 3
	case '^':
		return 2
	case '|':
		return 1
	}
	return 0
}

// MaxPriority is the highest priority value used by a domain, needed to
// find the threading start node (spec §4.7).
func MaxPriority(isInteger bool) int {
	if isInteger {
		return 6
	}
	return 3
}

// IsOperator reports whether c is a legal binary operator character for
// the given domain (spec §6).
func IsOperator(c byte, isInteger bool) bool {
	switch c {
	case '+', '-', '*', '/', '%':
		return true
	case '^':
		return true
	case '&', '|':
		return isInteger
	default:
		return false
	}
}
