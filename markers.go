// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MarkerSet names the attribute namespace a marker list comes from.
type MarkerSet string

const (
	// MarkerSetExample holds markers of this library.
	MarkerSetExample MarkerSet = "toml_example"
	// MarkerSetSerde holds markers shared with the serialization layer.
	// Unrelated serde markers are ignored.
	MarkerSetSerde MarkerSet = "serde"
)

// Marker is one parsed entry of a marker list, for example `default = 7`.
type Marker struct {
	Set      MarkerSet
	Name     string
	Value    string
	HasValue bool
}

// String returns marker in list syntax.
func (marker Marker) String() string {
	if !marker.HasValue {
		return marker.Name
	}

	return marker.Name + " = " + marker.Value
}

// markerArity tells whether a known marker takes a value.
type markerArity int

const (
	markerFlag markerArity = iota
	markerValue
	markerOptionalValue
)

// exampleMarkers lists every toml_example marker.
var exampleMarkers = map[string]markerArity{
	"default": markerOptionalValue,
	"nesting": markerOptionalValue,
	"require": markerFlag,
	"skip":    markerFlag,
	"enum":    markerFlag,
	"is_enum": markerFlag,
	"flatten": markerFlag,
}

// serdeMarkers lists serde markers that affect the example.
var serdeMarkers = map[string]markerArity{
	"default":            markerOptionalValue,
	"skip":               markerFlag,
	"skip_deserializing": markerFlag,
	"flatten":            markerFlag,
	"rename":             markerValue,
	"rename_all":         markerValue,
}

// ParseMarkers parses comma separated marker list of set.
//
// Commas inside quotes, brackets, braces and parentheses do not split
// markers, so `default = [1, 2], require` yields two markers.
func ParseMarkers(set MarkerSet, text string) ([]Marker, error) {
	var known map[string]markerArity
	switch set {
	case MarkerSetExample:
		known = exampleMarkers
	case MarkerSetSerde:
		known = serdeMarkers
	default:
		return nil, fmt.Errorf("%w: unknown marker set %q", ErrUnknownMarker, set)
	}

	parts := splitUnenclosed(text, ',')
	markers := make([]Marker, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, hasValue := strings.Cut(part, "=")
		marker := Marker{
			Set:      set,
			Name:     strings.TrimSpace(name),
			Value:    strings.TrimSpace(value),
			HasValue: hasValue,
		}

		arity, ok := known[marker.Name]
		if !ok {
			if set == MarkerSetSerde {
				continue
			}

			return nil, fmt.Errorf("%w: %s(%s)", ErrUnknownMarker, set, part)
		}

		switch {
		case arity == markerFlag && marker.HasValue:
			return nil, fmt.Errorf("%w: %s(%s): %s takes no value", ErrUnknownMarker, set, part, marker.Name)
		case arity != markerFlag && marker.HasValue && marker.Value == "":
			return nil, fmt.Errorf("%w: %s(%s): empty value", ErrUnknownMarker, set, part)
		case arity == markerValue && !marker.HasValue:
			return nil, fmt.Errorf("%w: %s(%s): %s requires a value", ErrUnknownMarker, set, part, marker.Name)
		}

		markers = append(markers, marker)
	}

	return markers, nil
}

// ApplyFieldMarkers applies markers to field in declaration order. Default
// markers append candidates, so the first declared default wins. Named
// default functions are looked up in functions.
func ApplyFieldMarkers(field *Field, markers []Marker, functions map[string]func() any) error {
	for _, marker := range markers {
		switch marker.Name {
		case "default":
			source, err := defaultFromMarker(marker, functions)
			if err != nil {
				return fmt.Errorf("field %s: %w", field.Name, err)
			}

			field.Defaults = append(field.Defaults, source)

		case "nesting":
			field.Nesting = nestingFromMarker(marker)

		case "require":
			field.Require = true

		case "skip", "skip_deserializing":
			field.Skip = true

		case "enum", "is_enum":
			field.EnumLike = true

		case "flatten":
			field.Flatten = true

		case "rename":
			field.Rename = unquote(marker.Value)

		case "rename_all":
			// record level only
		}
	}

	return nil
}

// ApplyRecordMarkers applies record-level markers: the outer default policy
// and rename_all. Field-only markers are rejected.
func ApplyRecordMarkers(record *Record, markers []Marker, functions map[string]func() any) error {
	for _, marker := range markers {
		switch marker.Name {
		case "default":
			source, err := defaultFromMarker(marker, functions)
			if err != nil {
				return fmt.Errorf("record %s: %w", recordName(record), err)
			}

			record.Default = source

		case "rename_all":
			rule, err := ParseRenameRule(unquote(marker.Value))
			if err != nil {
				return fmt.Errorf("record %s: %w", recordName(record), err)
			}

			record.RenameAll = rule

		default:
			return fmt.Errorf("%w: %s(%s) is not allowed on record %s",
				ErrUnknownMarker, marker.Set, marker, recordName(record))
		}
	}

	return nil
}

// defaultFromMarker converts one default marker into a default source.
// A toml_example value is literal text, a serde value names a function.
func defaultFromMarker(marker Marker, functions map[string]func() any) (Default, error) {
	if !marker.HasValue {
		return Zero(), nil
	}

	if marker.Set == MarkerSetExample {
		return Literal(marker.Value), nil
	}

	name := unquote(marker.Value)
	fn, ok := functions[name]
	if !ok || fn == nil {
		return Default{}, fmt.Errorf("%w %q", ErrUnknownDefaultFunc, name)
	}

	return Func(name, fn), nil
}

// nestingFromMarker converts nesting marker into nesting policy. Values
// other than prefix and section name the sample key.
func nestingFromMarker(marker Marker) Nesting {
	if !marker.HasValue {
		return Nesting{Style: NestingSection}
	}

	switch value := unquote(marker.Value); value {
	case "prefix":
		return Nesting{Style: NestingPrefix}
	case "section":
		return Nesting{Style: NestingSection}
	default:
		return Nesting{Style: NestingSection, SampleKey: value}
	}
}

// unquote trims surrounding whitespace and double quotes.
func unquote(text string) string {
	return strings.Trim(strings.TrimSpace(text), `"`)
}

// splitUnenclosed splits text on separator outside quotes and brackets.
// Backslash escapes the next character.
func splitUnenclosed(text string, separator rune) []string {
	var parts []string
	var inDouble, inSingle, escaped bool
	depth := 0
	start := 0

	for index, r := range text {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case inDouble:
			inDouble = r != '"'
		case inSingle:
			inSingle = r != '\''
		case r == '"':
			inDouble = true
		case r == '\'':
			inSingle = true
		case r == '[' || r == '{' || r == '(':
			depth++
		case r == ']' || r == '}' || r == ')':
			depth--
		case r == separator && depth == 0:
			parts = append(parts, text[start:index])
			start = index + utf8.RuneLen(r)
		}
	}

	return append(parts, text[start:])
}
