// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"bytes"
	"encoding"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var (
	timeType          = reflect.TypeFor[time.Time]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// EncodeValue encodes Go value as a single-line TOML literal.
//
// Strings use basic (double quoted) strings, lists are inline arrays and
// maps and structs are inline tables.
func EncodeValue(value any) (string, error) {
	return encodeReflectValue(reflect.ValueOf(value))
}

// encodeReflectValue encodes one reflected value.
func encodeReflectValue(value reflect.Value) (string, error) {
	if !value.IsValid() {
		return "", fmt.Errorf("%w: nil value", ErrEncodeValue)
	}

	if value.Type() == timeType {
		return encodeWithTOML(value.Interface())
	}

	switch value.Kind() {
	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return "", fmt.Errorf("%w: nil %s", ErrEncodeValue, value.Type())
		}

		return encodeReflectValue(value.Elem())
	}

	if value.Type().Implements(textMarshalerType) && value.Kind() != reflect.String {
		text, err := value.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncodeValue, err)
		}

		return quoteString(string(text)), nil
	}

	switch value.Kind() {
	case reflect.String:
		return quoteString(value.String()), nil

	case reflect.Bool:
		return strconv.FormatBool(value.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(value.Int(), 10), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(value.Uint(), 10), nil

	case reflect.Float32:
		return formatFloat(value.Float(), 32), nil

	case reflect.Float64:
		return formatFloat(value.Float(), 64), nil

	case reflect.Slice, reflect.Array:
		if value.Kind() == reflect.Slice && value.IsNil() {
			return "[]", nil
		}

		if value.Kind() == reflect.Slice && value.Type().Elem().Kind() == reflect.Uint8 {
			return quoteString(string(value.Bytes())), nil
		}

		return encodeList(value)

	case reflect.Map:
		return encodeInlineTable(value)

	case reflect.Struct:
		return encodeWithTOML(value.Interface())

	default:
		return "", fmt.Errorf("%w: unsupported kind %s", ErrEncodeValue, value.Kind())
	}
}

// encodeList encodes slice or array as inline array.
func encodeList(value reflect.Value) (string, error) {
	if value.Len() == 0 {
		return "[]", nil
	}

	items := make([]string, 0, value.Len())
	for index := range value.Len() {
		item, err := encodeReflectValue(value.Index(index))
		if err != nil {
			return "", err
		}

		items = append(items, item)
	}

	return "[" + strings.Join(items, ", ") + "]", nil
}

// encodeInlineTable encodes string-keyed map as inline table with sorted keys.
func encodeInlineTable(value reflect.Value) (string, error) {
	if value.Type().Key().Kind() != reflect.String {
		return "", fmt.Errorf("%w: map key must be string, got %s", ErrEncodeValue, value.Type().Key())
	}

	if value.Len() == 0 {
		return "{}", nil
	}

	keys := value.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	items := make([]string, 0, len(keys))
	for _, key := range keys {
		encoded, err := encodeReflectValue(value.MapIndex(key))
		if err != nil {
			return "", err
		}

		items = append(items, tomlKey(key.String())+" = "+encoded)
	}

	return "{ " + strings.Join(items, ", ") + " }", nil
}

// encodeWithTOML encodes value through go-toml as inline value of a one-key document.
func encodeWithTOML(value any) (string, error) {
	var out bytes.Buffer
	encoder := toml.NewEncoder(&out)
	encoder.SetTablesInline(true)

	if err := encoder.Encode(map[string]any{"v": value}); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeValue, err)
	}

	text := strings.TrimSpace(out.String())
	literal, ok := strings.CutPrefix(text, "v = ")
	if !ok || strings.Contains(literal, "\n") {
		return "", fmt.Errorf("%w: %T has no single-line form", ErrEncodeValue, value)
	}

	return literal, nil
}

// formatFloat formats float so that TOML reads it back as float.
func formatFloat(value float64, bitSize int) string {
	switch {
	case math.IsNaN(value):
		return "nan"
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	}

	abs := math.Abs(value)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	text := strconv.FormatFloat(value, format, -1, bitSize)
	text = strings.Replace(text, "e-0", "e-", 1)
	text = strings.Replace(text, "e+0", "e+", 1)
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}

	return text
}

// quoteString encodes text as TOML basic string.
func quoteString(text string) string {
	var out strings.Builder
	out.Grow(len(text) + 2)
	out.WriteByte('"')

	for _, r := range text {
		switch r {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\b':
			out.WriteString(`\b`)
		case '\t':
			out.WriteString(`\t`)
		case '\n':
			out.WriteString(`\n`)
		case '\f':
			out.WriteString(`\f`)
		case '\r':
			out.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&out, `\u%04X`, r)
				continue
			}

			out.WriteRune(r)
		}
	}

	out.WriteByte('"')
	return out.String()
}

// quoteLiteral wraps literal text in quotes unless it is already quoted.
func quoteLiteral(text string) string {
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return text
	}

	return quoteString(text)
}

// tomlKey returns key as bare key when possible, quoted otherwise.
func tomlKey(key string) string {
	if key == "" {
		return `""`
	}

	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			continue
		}

		return quoteString(key)
	}

	return key
}

// tomlPath joins key segments into dotted key path.
func tomlPath(segments []string) string {
	keys := make([]string, 0, len(segments))
	for _, segment := range segments {
		keys = append(keys, tomlKey(segment))
	}

	return strings.Join(keys, ".")
}
