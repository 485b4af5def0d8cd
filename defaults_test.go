// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"testing"
)

// testLevel is an enum with a Stringer.
type testLevel int

const (
	testLevelInfo testLevel = iota
	testLevelDebug
)

func (level testLevel) String() string {
	if level == testLevelDebug {
		return "debug"
	}

	return "info"
}

func TestResolveDefault(t *testing.T) {
	t.Parallel()

	levels := &Enum{Name: "Level", Default: testLevelInfo}
	seven := func() any { return 7 }
	none := func() any { return nil }

	cases := []struct {
		name    string
		field   Field
		outer   Default
		want    string
		present bool
	}{
		{name: "integer zero", field: Field{Shape: Integer()}, want: "0", present: true},
		{name: "float zero", field: Field{Shape: Float()}, want: "0.0", present: true},
		{name: "bool zero", field: Field{Shape: Bool()}, want: "false", present: true},
		{name: "string zero", field: Field{Shape: String()}, want: `""`, present: true},
		{name: "optional absent", field: Field{Shape: Optional(Integer())}},
		{name: "sequence absent", field: Field{Shape: Sequence(Integer())}},
		{name: "mapping absent", field: Field{Shape: Mapping(String())}},
		{name: "optional required", field: Field{Shape: Optional(Integer()), Require: true}, want: "0", present: true},
		{name: "optional sequence required", field: Field{Shape: Optional(Sequence(String())), Require: true}, want: "[]", present: true},
		{name: "sequence zero marker", field: Field{Shape: Sequence(Integer()), Defaults: []Default{Zero()}}, want: "[]", present: true},
		{name: "mapping zero marker", field: Field{Shape: Mapping(Integer()), Defaults: []Default{Zero()}}, want: "{}", present: true},
		{name: "optional zero marker", field: Field{Shape: Optional(Integer()), Defaults: []Default{Zero()}}},
		{name: "literal verbatim", field: Field{Shape: Integer(), Defaults: []Default{Literal("5")}}, want: "5", present: true},
		{name: "literal on optional", field: Field{Shape: Optional(String()), Defaults: []Default{Literal(`"x"`)}}, want: `"x"`, present: true},
		{name: "function value", field: Field{Shape: Integer(), Defaults: []Default{Func("seven", seven)}}, want: "7", present: true},
		{name: "literal declared first wins", field: Field{Shape: Integer(), Defaults: []Default{Literal("1"), Func("seven", seven)}}, want: "1", present: true},
		{name: "function declared first wins", field: Field{Shape: Integer(), Defaults: []Default{Func("seven", seven), Literal("1")}}, want: "7", present: true},
		{name: "nil function falls through", field: Field{Shape: Integer(), Defaults: []Default{Func("none", none), Literal("3")}}, want: "3", present: true},
		{name: "explicit beats zero marker", field: Field{Shape: Integer(), Defaults: []Default{Zero(), Literal("4")}}, want: "4", present: true},
		{name: "nil function on optional", field: Field{Shape: Optional(Integer()), Defaults: []Default{Func("none", none)}}},
		{name: "enum zero", field: Field{Shape: Enumerated(levels)}, want: `"info"`, present: true},
		{name: "enum function", field: Field{Shape: Enumerated(levels), Defaults: []Default{Func("debug", func() any { return testLevelDebug })}}, want: `"debug"`, present: true},
		{name: "enum like literal", field: Field{Shape: String(), EnumLike: true, Defaults: []Default{Literal("fast")}}, want: `"fast"`, present: true},
		{name: "enum like quoted literal", field: Field{Shape: String(), EnumLike: true, Defaults: []Default{Literal(`"fast"`)}}, want: `"fast"`, present: true},
		{name: "enum like sequence is not quoted", field: Field{Shape: Sequence(String()), EnumLike: true, Defaults: []Default{Literal(`["a"]`)}}, want: `["a"]`, present: true},
		{name: "function list", field: Field{Shape: Sequence(String()), Defaults: []Default{Func("tags", func() any { return []string{"a", "b"} })}}, want: `["a", "b"]`, present: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ResolveDefault(tc.field, tc.outer)
			if got.Present != tc.present {
				t.Fatalf("Present = %v, want %v (literal %q)", got.Present, tc.present, got.Literal)
			}

			if got.Literal != tc.want {
				t.Fatalf("Literal = %q, want %q", got.Literal, tc.want)
			}
		})
	}
}

func TestResolveDefaultInheritedFromRecord(t *testing.T) {
	t.Parallel()

	outer := Func("defaults", func() any {
		return map[string]any{"a": 9, "b": 8, "c": 4, "d": 6, "e": 5}
	})

	cases := []struct {
		name    string
		field   Field
		want    string
		present bool
	}{
		{name: "no field policy inherits", field: Field{Name: "a", Shape: Integer()}, want: "9", present: true},
		{name: "field literal beats record", field: Field{Name: "b", Shape: Integer(), Defaults: []Default{Literal("1")}}, want: "1", present: true},
		{name: "field zero beats record", field: Field{Name: "d", Shape: Integer(), Defaults: []Default{Zero()}}, want: "0", present: true},
		{name: "optional inherits value", field: Field{Name: "c", Shape: Optional(Integer())}, want: "4", present: true},
		{name: "explicit inherit", field: Field{Name: "e", Shape: Integer(), Defaults: []Default{Inherit()}}, want: "5", present: true},
		{name: "missing key falls back to shape", field: Field{Name: "missing", Shape: Integer()}, want: "0", present: true},
		{name: "missing key on optional", field: Field{Name: "missing", Shape: Optional(Integer())}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ResolveDefault(tc.field, outer)
			if got.Present != tc.present || got.Literal != tc.want {
				t.Fatalf("ResolveDefault = %+v, want literal %q present %v", got, tc.want, tc.present)
			}
		})
	}
}

func TestResolveDefaultInheritedFromStruct(t *testing.T) {
	t.Parallel()

	type settings struct {
		Name    string
		Port    int
		Timeout *int
	}

	outer := Func("settings", func() any { return &settings{Name: "api", Port: 80} })

	if got := ResolveDefault(Field{Name: "Name", Shape: String()}, outer); got.Literal != `"api"` {
		t.Fatalf("Name = %+v", got)
	}

	if got := ResolveDefault(Field{Name: "Port", Shape: Integer()}, outer); got.Literal != "80" {
		t.Fatalf("Port = %+v", got)
	}

	if got := ResolveDefault(Field{Name: "Timeout", Shape: Optional(Integer())}, outer); got.Present {
		t.Fatalf("nil Timeout must stay absent, got %+v", got)
	}
}

func TestResolveDefaultRecordZeroPolicy(t *testing.T) {
	t.Parallel()

	outer := Zero()
	if got := ResolveDefault(Field{Name: "tags", Shape: Sequence(String())}, outer); got.Literal != "[]" {
		t.Fatalf("tags = %+v, want []", got)
	}

	if got := ResolveDefault(Field{Name: "token", Shape: Optional(String())}, outer); got.Present {
		t.Fatalf("optional token must stay absent, got %+v", got)
	}
}

func TestHintLiteral(t *testing.T) {
	t.Parallel()

	cases := []struct {
		shape Shape
		want  string
	}{
		{Optional(Integer()), "0"},
		{Sequence(Integer()), "[ 0, ]"},
		{Mapping(String()), `{ example = "" }`},
		{Optional(Sequence(Bool())), "[ false, ]"},
		{Sequence(Sequence(Float())), "[ [ 0.0, ], ]"},
	}

	for _, tc := range cases {
		if got := hintLiteral(tc.shape); got != tc.want {
			t.Fatalf("hintLiteral = %q, want %q", got, tc.want)
		}
	}
}

func TestEnumDisplayName(t *testing.T) {
	t.Parallel()

	custom := &Enum{Display: func(variant any) string { return "custom" }}
	if got := custom.DisplayName(1); got != "custom" {
		t.Fatalf("Display = %q", got)
	}

	plain := &Enum{}
	if got := plain.DisplayName(testLevelDebug); got != "debug" {
		t.Fatalf("Stringer = %q", got)
	}

	if got := plain.DisplayName(3); got != "3" {
		t.Fatalf("Sprint = %q", got)
	}

	if got := plain.DisplayName(nil); got != "" {
		t.Fatalf("nil variant = %q, want empty", got)
	}
}

func TestZeroLiteralEnumWithoutDefaultVariant(t *testing.T) {
	t.Parallel()

	resolved := ResolveDefault(Field{Name: "level", Shape: Enumerated(&Enum{Name: "Level"})}, Default{})
	if !resolved.Present || resolved.Literal != `""` {
		t.Fatalf("ResolveDefault = %+v, want empty string literal", resolved)
	}
}
