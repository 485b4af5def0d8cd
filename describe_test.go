// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"errors"
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// DescribeCommon is embedded into describeConfig and flattened.
type DescribeCommon struct {
	Region string `toml:"region"`
}

type describeListener struct {
	Address     string `toml:"address" comment:"Listen address." toml_example:"default = \"0.0.0.0:80\""`
	TimeoutSecs int    `toml:"timeout_secs" serde:"default = \"timeout\""`
}

type describeConfig struct {
	_ struct{} `serde:"rename_all = \"snake_case\""`
	DescribeCommon
	LogLevel testLevel `comment:"Minimum log level." toml_example:"enum"`
	Name     string
	Tags     []string
	Listener describeListener `toml:"http" comment:"HTTP listener."`
	Cache    *describeListener
	Servers  map[string]describeListener `toml_example:"nesting = \"primary\""`
	Secret   string                      `toml:"-"`
	Hidden   string                      `toml_example:"skip"`
}

func (describeConfig) RecordDoc() []string {
	return []string{"Config describes the service."}
}

type describeDefaults struct {
	_       struct{} `serde:"default"`
	Timeout *int     `toml:"timeout"`
	Host    string   `toml:"host"`
	Port    int      `toml:"port"`
	Limit   int      `toml:"limit" toml_example:"default = 5"`
}

type describeNode struct {
	Next *describeNode
}

func TestDescribeRendersStruct(t *testing.T) {
	t.Parallel()

	options := LoadOptions{Functions: map[string]func() any{
		"timeout": func() any { return 30 },
	}}

	record, err := DescribeWithOptions(describeConfig{}, options)
	if err != nil {
		t.Fatalf("DescribeWithOptions: %v", err)
	}

	want := `# Config describes the service.

region = ""

# Minimum log level.
log_level = "info"

name = ""

# tags = [ "", ]

# HTTP listener.
[http]
# Listen address.
address = "0.0.0.0:80"

timeout_secs = 30

# [cache]
# Listen address.
# address = "0.0.0.0:80"

# timeout_secs = 30

[servers.primary]
# Listen address.
address = "0.0.0.0:80"

timeout_secs = 30

`

	got := TOMLExample(record)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	assertValidTOML(t, got)
}

func TestDescribeRootDefaultsFromValue(t *testing.T) {
	t.Parallel()

	want := "host = \"example.org\"\n\nport = 8080\n\nlimit = 5\n\n"
	for _, value := range []any{
		describeDefaults{Host: "example.org", Port: 8080},
		&describeDefaults{Host: "example.org", Port: 8080},
	} {
		record, err := Describe(value)
		if err != nil {
			t.Fatalf("Describe(%T): %v", value, err)
		}

		got := TOMLExample(record)
		assertContains(t, got, "# timeout = 0\n")
		assertContains(t, got, want)
	}
}

func TestDescribeTagOrderDecidesDefault(t *testing.T) {
	t.Parallel()

	type functionFirst struct {
		Port int `toml:"port" serde:"default = \"port_fn\"" toml_example:"default = 1"`
	}

	type literalFirst struct {
		Port int `toml:"port" toml_example:"default = 1" serde:"default = \"port_fn\""`
	}

	options := LoadOptions{Functions: map[string]func() any{"port_fn": func() any { return 7 }}}
	cases := map[string]any{
		"port = 7\n\n": functionFirst{},
		"port = 1\n\n": literalFirst{},
	}

	for want, value := range cases {
		record, err := DescribeWithOptions(value, options)
		if err != nil {
			t.Fatalf("DescribeWithOptions(%T): %v", value, err)
		}

		if got := TOMLExample(record); got != want {
			t.Fatalf("%T output = %q, want %q", value, got, want)
		}
	}
}

func TestDescribeTextTypesAreStrings(t *testing.T) {
	t.Parallel()

	type textTypes struct {
		Raw  []byte
		When time.Time
		Addr netip.Addr
		Opt  *netip.Prefix
	}

	record, err := Describe(textTypes{})
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	for _, field := range record.Fields {
		inner, _ := unwrapOptional(field.Shape)
		if inner.Kind != ShapeScalar || inner.Scalar != ScalarString {
			t.Fatalf("field %s shape = %s, want string", field.Name, shapeSummary(field.Shape))
		}
	}
}

func TestDescribeSharesRecordsAcrossFields(t *testing.T) {
	t.Parallel()

	record, err := DescribeWithOptions(describeConfig{}, LoadOptions{Functions: map[string]func() any{
		"timeout": func() any { return 30 },
	}})
	if err != nil {
		t.Fatalf("DescribeWithOptions: %v", err)
	}

	var listeners []*Record
	for _, field := range record.Fields {
		inner, _ := unwrapOptional(field.Shape)
		if nested, _, ok := tableTarget(inner); ok && nested.Name == "describeListener" {
			listeners = append(listeners, nested)
		}
	}

	if len(listeners) != 3 || listeners[0] != listeners[1] || listeners[1] != listeners[2] {
		t.Fatalf("listener records = %v", listeners)
	}
}

func TestDescribeErrors(t *testing.T) {
	t.Parallel()

	type channel struct {
		C chan int
	}

	type intKeys struct {
		M map[int]string
	}

	type missingFunction struct {
		P int `serde:"default = \"missing\""`
	}

	type recordSkip struct {
		_ struct{} `toml_example:"skip"`
		A int
	}

	cases := []struct {
		value any
		want  error
	}{
		{nil, ErrDescribeType},
		{42, ErrDescribeType},
		{channel{}, ErrDescribeType},
		{intKeys{}, ErrDescribeType},
		{describeNode{}, ErrCyclicNesting},
		{missingFunction{}, ErrUnknownDefaultFunc},
		{recordSkip{}, ErrUnknownMarker},
	}

	for _, tc := range cases {
		if _, err := Describe(tc.value); !errors.Is(err, tc.want) {
			t.Fatalf("Describe(%T) error = %v, want %v", tc.value, err, tc.want)
		}
	}
}

func TestOrderedMarkerTags(t *testing.T) {
	t.Parallel()

	type tagged struct {
		F int `json:"f" serde:"rename = \"x\"" toml:"f" toml_example:"default = 1, require"`
	}

	field, ok := reflect.TypeFor[tagged]().FieldByName("F")
	if !ok {
		t.Fatal("field F not found")
	}

	texts, err := orderedMarkerTags(field.Tag)
	if err != nil {
		t.Fatalf("orderedMarkerTags: %v", err)
	}

	want := []markerText{
		{Set: MarkerSetSerde, Text: `rename = "x"`},
		{Set: MarkerSetExample, Text: "default = 1, require"},
	}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}
