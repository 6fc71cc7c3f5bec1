// Package naming assigns deterministic display names to strongly connected
// components. A component's name is a pure function of its emission index,
// its ordered member labels, and the selected [Method]; the method set is a
// closed table validated at the boundary with [ParseMethod].
package naming

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnknownMethod is returned by [ParseMethod] and [Name] when the naming
// method is outside the recognized table.
var ErrUnknownMethod = errors.New("unknown naming method")

// Method identifies a component naming strategy.
type Method string

const (
	// MethodString names components "C0", "C1", ... by emission index.
	MethodString Method = "string"
	// MethodInitials concatenates the first rune of each member label,
	// in the caller-supplied member order. Empty labels contribute nothing.
	MethodInitials Method = "initials"
	// MethodCardinal uses the English cardinal of index+1 ("one", "two", ...).
	MethodCardinal Method = "cardinal"
	// MethodOrdinal uses the English ordinal of index+1 ("first", "second", ...).
	MethodOrdinal Method = "ordinal"
)

// strategy couples a canonical method with its accepted aliases and the
// function that produces the name.
type strategy struct {
	method  Method
	aliases []string
	name    func(index int, labels []string) string
}

// strategies is the closed, ordered naming table. Order drives help output;
// resolution of names and aliases goes through ParseMethod.
var strategies = []strategy{
	{MethodString, []string{"str", "s"}, nameString},
	{MethodInitials, []string{"init", "ini", "i"}, nameInitials},
	{MethodCardinal, []string{"card", "c"}, nameCardinal},
	{MethodOrdinal, []string{"ord", "o"}, nameOrdinal},
}

// Methods returns the canonical method names in table order.
func Methods() []string {
	out := make([]string, len(strategies))
	for i, s := range strategies {
		out[i] = string(s.method)
	}
	return out
}

// ParseMethod resolves a method name or alias, case-insensitively, to its
// canonical Method. Returns ErrUnknownMethod for anything outside the table.
func ParseMethod(s string) (Method, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, st := range strategies {
		if needle == string(st.method) {
			return st.method, nil
		}
		for _, a := range st.aliases {
			if needle == a {
				return st.method, nil
			}
		}
	}
	return "", ErrUnknownMethod
}

// Name produces the display name for the component at the given emission
// index with the given ordered member labels. It has no side effects and
// returns ErrUnknownMethod if m is not a table entry.
func Name(m Method, index int, labels []string) (string, error) {
	for _, st := range strategies {
		if st.method == m {
			return st.name(index, labels), nil
		}
	}
	return "", ErrUnknownMethod
}

func nameString(index int, _ []string) string {
	return "C" + strconv.Itoa(index)
}

func nameInitials(_ int, labels []string) string {
	var b strings.Builder
	for _, l := range labels {
		for _, r := range l {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

func nameCardinal(index int, _ []string) string {
	return Cardinal(index + 1)
}

func nameOrdinal(index int, _ []string) string {
	return Ordinal(index + 1)
}
