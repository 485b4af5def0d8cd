// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"fmt"
	"reflect"
)

// ResolvedDefault is the example value computed for one field.
type ResolvedDefault struct {
	// Literal is TOML literal text; meaningful only when Present is true.
	Literal string
	// Present is false when no value is available.
	Present bool
}

// present returns resolved default holding literal.
func present(literal string) ResolvedDefault {
	return ResolvedDefault{Literal: literal, Present: true}
}

// ResolveDefault computes example value for field.
//
// Precedence, highest first: explicit literal and function markers in
// declaration order, zero value marker, record-level policy (used only when
// the field has no policy of its own or asks for it), zero value of scalar
// and enum shapes. Require turns an absent optional into its inner zero value.
func ResolveDefault(field Field, outer Default) ResolvedDefault {
	resolved, ok := resolveCandidates(field, outer)
	if !ok {
		resolved, ok = shapeFallback(field.Shape)
	}

	if !ok && field.Require {
		inner, _ := unwrapOptional(field.Shape)
		resolved, ok = zeroLiteral(inner)
	}

	if !ok {
		return ResolvedDefault{}
	}

	if isEnumLike(field) {
		resolved = quoteLiteral(resolved)
	}

	return present(resolved)
}

// isEnumLike reports whether field value literals are rendered as quoted names.
func isEnumLike(field Field) bool {
	inner, _ := unwrapOptional(field.Shape)
	switch inner.Kind {
	case ShapeEnumerated:
		return true
	case ShapeSequence, ShapeMapping, ShapeNested:
		return false
	default:
		return field.EnumLike
	}
}

// resolveCandidates scans field default sources tier by tier.
func resolveCandidates(field Field, outer Default) (string, bool) {
	inherit := true
	for _, source := range field.Defaults {
		if source.Kind == DefaultLiteral || source.Kind == DefaultFunc {
			inherit = false
			if literal, ok := evaluateSource(source, field.Shape); ok {
				return literal, true
			}
		}
	}

	for _, source := range field.Defaults {
		if source.Kind == DefaultZero {
			inherit = false
			if literal, ok := zeroLiteral(field.Shape); ok {
				return literal, true
			}
		}
	}

	for _, source := range field.Defaults {
		if source.Kind == DefaultInherit {
			inherit = true
			break
		}
	}

	if inherit {
		return resolveInherited(field, outer)
	}

	return "", false
}

// evaluateSource returns literal for one explicit default source.
func evaluateSource(source Default, shape Shape) (string, bool) {
	switch source.Kind {
	case DefaultLiteral:
		return source.Literal, true
	case DefaultFunc:
		if source.Func == nil {
			return "", false
		}

		return encodeProvided(source.Func(), shape)
	default:
		return "", false
	}
}

// resolveInherited applies record-level default policy to one field.
func resolveInherited(field Field, outer Default) (string, bool) {
	switch outer.Kind {
	case DefaultZero:
		return zeroLiteral(field.Shape)
	case DefaultFunc:
		if outer.Func == nil {
			return "", false
		}

		value, ok := fieldValue(outer.Func(), field.Name)
		if !ok {
			return "", false
		}

		return encodeProvided(value, field.Shape)
	default:
		return "", false
	}
}

// shapeFallback yields zero values for shapes that always need a value.
func shapeFallback(shape Shape) (string, bool) {
	switch shape.Kind {
	case ShapeScalar, ShapeEnumerated:
		return zeroLiteral(shape)
	default:
		return "", false
	}
}

// zeroLiteral returns type-appropriate zero value. Optional has none.
func zeroLiteral(shape Shape) (string, bool) {
	switch shape.Kind {
	case ShapeScalar:
		switch shape.Scalar {
		case ScalarInteger:
			return "0", true
		case ScalarFloat:
			return "0.0", true
		case ScalarBool:
			return "false", true
		default:
			return `""`, true
		}
	case ShapeEnumerated:
		return quoteLiteral(shape.Enum.DisplayName(shape.Enum.Default)), true
	case ShapeSequence:
		return "[]", true
	case ShapeMapping, ShapeNested:
		return "{}", true
	default:
		return "", false
	}
}

// hintLiteral returns placeholder value shown in commented-out lines.
func hintLiteral(shape Shape) string {
	switch shape.Kind {
	case ShapeOptional:
		if shape.Elem == nil {
			return `""`
		}

		return hintLiteral(*shape.Elem)
	case ShapeSequence:
		if shape.Elem == nil {
			return "[]"
		}

		return "[ " + hintLiteral(*shape.Elem) + ", ]"
	case ShapeMapping:
		if shape.Elem == nil {
			return "{}"
		}

		return "{ " + defaultRepresentativeKey + " = " + hintLiteral(*shape.Elem) + " }"
	default:
		literal, _ := zeroLiteral(shape)
		return literal
	}
}

// encodeProvided encodes value returned by default provider for shape.
func encodeProvided(value any, shape Shape) (string, bool) {
	if isNilValue(value) {
		return "", false
	}

	inner, _ := unwrapOptional(shape)
	if inner.Kind == ShapeEnumerated {
		return quoteLiteral(inner.Enum.DisplayName(dereference(value))), true
	}

	literal, err := EncodeValue(value)
	if err != nil {
		return quoteString(fmt.Sprint(dereference(value))), true
	}

	return literal, true
}

// fieldValue extracts named field from struct, struct pointer or string-keyed map.
func fieldValue(record any, name string) (any, bool) {
	value := reflect.ValueOf(record)
	for value.IsValid() && (value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface) {
		if value.IsNil() {
			return nil, false
		}

		value = value.Elem()
	}

	if !value.IsValid() {
		return nil, false
	}

	switch value.Kind() {
	case reflect.Struct:
		field := value.FieldByName(name)
		if !field.IsValid() || !field.CanInterface() {
			return nil, false
		}

		return field.Interface(), true
	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return nil, false
		}

		item := value.MapIndex(reflect.ValueOf(name).Convert(value.Type().Key()))
		if !item.IsValid() {
			return nil, false
		}

		return item.Interface(), true
	default:
		return nil, false
	}
}

// isNilValue reports nil interfaces, pointers, functions and channels.
func isNilValue(value any) bool {
	if value == nil {
		return true
	}

	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return reflected.IsNil()
	default:
		return false
	}
}

// dereference follows pointers to the pointed-to value.
func dereference(value any) any {
	reflected := reflect.ValueOf(value)
	for reflected.Kind() == reflect.Pointer && !reflected.IsNil() {
		reflected = reflected.Elem()
	}

	if !reflected.IsValid() || !reflected.CanInterface() {
		return value
	}

	return reflected.Interface()
}
