package naming

import (
	"errors"
	"testing"
)

func TestParseMethod_Aliases(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"string", MethodString},
		{"str", MethodString},
		{"s", MethodString},
		{"initials", MethodInitials},
		{"init", MethodInitials},
		{"ini", MethodInitials},
		{"i", MethodInitials},
		{"cardinal", MethodCardinal},
		{"card", MethodCardinal},
		{"c", MethodCardinal},
		{"ordinal", MethodOrdinal},
		{"ord", MethodOrdinal},
		{"o", MethodOrdinal},
		{"STRING", MethodString},
		{" Init ", MethodInitials},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if err != nil {
				t.Fatalf("ParseMethod(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMethod_Unknown(t *testing.T) {
	for _, in := range []string{"", "random", "stringy", "in"} {
		if _, err := ParseMethod(in); !errors.Is(err, ErrUnknownMethod) {
			t.Errorf("ParseMethod(%q) error = %v, want ErrUnknownMethod", in, err)
		}
	}
}

func TestName_String(t *testing.T) {
	for _, tt := range []struct {
		index int
		want  string
	}{
		{0, "C0"},
		{1, "C1"},
		{42, "C42"},
	} {
		got, err := Name(MethodString, tt.index, nil)
		if err != nil {
			t.Fatalf("Name(string, %d) error = %v", tt.index, err)
		}
		if got != tt.want {
			t.Errorf("Name(string, %d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestName_Initials(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{"basic", []string{"alpha", "beta", "gamma"}, "abg"},
		{"single", []string{"solo"}, "s"},
		{"empty label skipped", []string{"alpha", "", "gamma"}, "ag"},
		{"multibyte runes", []string{"Ωmega", "δelta"}, "Ωδ"},
		{"no labels", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Name(MethodInitials, 0, tt.labels)
			if err != nil {
				t.Fatalf("Name(initials) error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Name(initials, %v) = %q, want %q", tt.labels, got, tt.want)
			}
		})
	}
}

func TestName_CardinalAndOrdinal(t *testing.T) {
	got, err := Name(MethodCardinal, 0, nil)
	if err != nil || got != "one" {
		t.Errorf("Name(cardinal, 0) = %q, %v, want \"one\", nil", got, err)
	}
	got, err = Name(MethodOrdinal, 0, nil)
	if err != nil || got != "first" {
		t.Errorf("Name(ordinal, 0) = %q, %v, want \"first\", nil", got, err)
	}
	got, err = Name(MethodCardinal, 12, nil)
	if err != nil || got != "thirteen" {
		t.Errorf("Name(cardinal, 12) = %q, %v, want \"thirteen\", nil", got, err)
	}
}

func TestName_UnknownMethod(t *testing.T) {
	if _, err := Name(Method("nope"), 0, nil); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("Name(nope) error = %v, want ErrUnknownMethod", err)
	}
}

func TestMethods_TableOrder(t *testing.T) {
	want := []string{"string", "initials", "cardinal", "ordinal"}
	got := Methods()
	if len(got) != len(want) {
		t.Fatalf("Methods() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Methods()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
