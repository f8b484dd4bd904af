package lexer

import (
	"reflect"
	"testing"
)

func TestSplitArgsRespectsNestedParens(t *testing.T) {
	got := SplitArgs("1,max(2,3),4", false)
	want := []string{"1", "max(2,3)", "4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitArgs = %v, want %v", got, want)
	}
}

func TestSplitArgsEmptyMeansNoArgs(t *testing.T) {
	if got := SplitArgs("", true); got != nil {
		t.Fatalf("SplitArgs(\"\", true) = %v, want nil", got)
	}
	got := SplitArgs("", false)
	want := []string{""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitArgs(\"\", false) = %v, want %v", got, want)
	}
}

func TestNameBeforeParen(t *testing.T) {
	name, start, ok := NameBeforeParen("1+sin(x)", 5)
	if !ok || name != "sin" || start != 2 {
		t.Fatalf("NameBeforeParen = %q, %d, %v, want sin, 2, true", name, start, ok)
	}
}

func TestNameBeforeParenNoNamePresent(t *testing.T) {
	_, _, ok := NameBeforeParen("(1+2)", 0)
	if ok {
		t.Fatalf("NameBeforeParen should report false when '(' starts the string")
	}
}
