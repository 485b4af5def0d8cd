// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"errors"
	"fmt"
	"strings"
)

// ShapeKind classifies the value shape of one field.
type ShapeKind int

const (
	// ShapeScalar is a single string, number or boolean value.
	ShapeScalar ShapeKind = iota
	// ShapeOptional wraps a shape that may be omitted from the document.
	ShapeOptional
	// ShapeSequence is a list of values of one shape.
	ShapeSequence
	// ShapeMapping is a string-keyed table of values of one shape.
	ShapeMapping
	// ShapeNested is a sub-record rendered as its own table.
	ShapeNested
	// ShapeEnumerated is a value restricted to named variants.
	ShapeEnumerated
)

// ScalarKind selects the zero value representation of a scalar shape.
type ScalarKind int

const (
	// ScalarString renders as "".
	ScalarString ScalarKind = iota
	// ScalarInteger renders as 0.
	ScalarInteger
	// ScalarFloat renders as 0.0.
	ScalarFloat
	// ScalarBool renders as false.
	ScalarBool
)

// Shape describes the type structure of one field.
type Shape struct {
	// Elem is the wrapped shape of Optional, Sequence and Mapping shapes.
	Elem *Shape
	// Record is the sub-record of a Nested shape.
	Record *Record
	// Enum is the variant description of an Enumerated shape.
	Enum   *Enum
	Kind   ShapeKind
	Scalar ScalarKind
}

// String returns a text scalar shape.
func String() Shape { return Shape{Kind: ShapeScalar, Scalar: ScalarString} }

// Integer returns an integer scalar shape.
func Integer() Shape { return Shape{Kind: ShapeScalar, Scalar: ScalarInteger} }

// Float returns a floating point scalar shape.
func Float() Shape { return Shape{Kind: ShapeScalar, Scalar: ScalarFloat} }

// Bool returns a boolean scalar shape.
func Bool() Shape { return Shape{Kind: ShapeScalar, Scalar: ScalarBool} }

// Optional wraps elem into an optional shape.
func Optional(elem Shape) Shape { return Shape{Kind: ShapeOptional, Elem: &elem} }

// Sequence wraps elem into a list shape.
func Sequence(elem Shape) Shape { return Shape{Kind: ShapeSequence, Elem: &elem} }

// Mapping wraps elem into a string-keyed table shape.
func Mapping(elem Shape) Shape { return Shape{Kind: ShapeMapping, Elem: &elem} }

// Nested returns a sub-record shape.
func Nested(record *Record) Shape { return Shape{Kind: ShapeNested, Record: record} }

// Enumerated returns an enum shape.
func Enumerated(enum *Enum) Shape { return Shape{Kind: ShapeEnumerated, Enum: enum} }

// Enum describes an enumerated type and its designated default variant.
type Enum struct {
	// Default is the variant used when the field has no other default.
	Default any
	// Display converts a variant into its name. When nil, fmt.Stringer and
	// then fmt.Sprint are used.
	Display func(variant any) string
	// Name is the enum type name used in diagnostics.
	Name string
}

// DisplayName returns the display name of one variant. A nil variant
// without Display has an empty name.
func (enum *Enum) DisplayName(variant any) string {
	if enum != nil && enum.Display != nil {
		return enum.Display(variant)
	}

	if variant == nil {
		return ""
	}

	if stringer, ok := variant.(fmt.Stringer); ok {
		return stringer.String()
	}

	return fmt.Sprint(variant)
}

// DefaultKind classifies one default value source.
type DefaultKind int

const (
	// DefaultNone means no default source.
	DefaultNone DefaultKind = iota
	// DefaultLiteral prints literal text verbatim.
	DefaultLiteral
	// DefaultFunc evaluates a provider function and encodes its result.
	DefaultFunc
	// DefaultZero prints the type-appropriate zero value.
	DefaultZero
	// DefaultInherit falls back to the record-level default policy.
	DefaultInherit
)

// Default is one default value source of a field or a record.
type Default struct {
	// Func provides the value of a DefaultFunc source.
	Func func() any
	// Literal is the text of a DefaultLiteral source.
	Literal string
	// Name is the provider name of a DefaultFunc source.
	Name string
	Kind DefaultKind
}

// Literal returns a default source printing text verbatim.
func Literal(text string) Default { return Default{Kind: DefaultLiteral, Literal: text} }

// Func returns a default source backed by a named provider function.
func Func(name string, fn func() any) Default { return Default{Kind: DefaultFunc, Name: name, Func: fn} }

// Zero returns a default source printing the zero value of the field shape.
func Zero() Default { return Default{Kind: DefaultZero} }

// Inherit returns a default source deferring to the record-level policy.
func Inherit() Default { return Default{Kind: DefaultInherit} }

// NestingStyle selects how a nested record is placed in the document.
type NestingStyle int

const (
	// NestingInline is the unmarked policy; nested records still get a table.
	NestingInline NestingStyle = iota
	// NestingSection places the nested record under its own table header.
	NestingSection
	// NestingPrefix writes nested fields as dotted keys in the current table.
	NestingPrefix
)

// Nesting is the nesting policy of one field.
type Nesting struct {
	// SampleKey replaces the key of a nested table header, or names the
	// representative entry of a map of records.
	SampleKey string
	Style     NestingStyle
}

// isSet reports whether nesting policy differs from the unmarked default.
func (nesting Nesting) isSet() bool {
	return nesting.Style != NestingInline || nesting.SampleKey != ""
}

// Field describes one record field.
type Field struct {
	// Name is the declared field identifier.
	Name string
	// Rename overrides the output key.
	Rename string
	// Doc holds documentation lines rendered as comments.
	Doc []string
	// Defaults is the ordered list of default sources; the first source that
	// yields a value wins within its precedence tier.
	Defaults []Default
	Nesting  Nesting
	Shape    Shape
	// Flatten splices nested record fields into the parent table.
	Flatten bool
	// Skip removes the field from output.
	Skip bool
	// Require renders an optional field as a value instead of a comment.
	Require bool
	// EnumLike renders default literals as quoted strings.
	EnumLike bool
}

// Record describes one record type.
type Record struct {
	// Name is the record type name used in diagnostics.
	Name string
	// Doc holds record documentation, rendered once at the document root.
	Doc []string
	// Fields are rendered in declaration order.
	Fields []Field
	// Default is the record-level policy applied to fields without their own.
	Default Default
	// RenameAll is the casing policy for fields without Rename.
	RenameAll RenameRule
}

// unwrapOptional strips one optional layer and reports whether it was present.
func unwrapOptional(shape Shape) (Shape, bool) {
	if shape.Kind == ShapeOptional && shape.Elem != nil {
		return *shape.Elem, true
	}

	return shape, false
}

// tableTarget returns nested record rendered as a table for shape and the
// container kind holding it (Nested, Sequence or Mapping).
func tableTarget(shape Shape) (*Record, ShapeKind, bool) {
	switch shape.Kind {
	case ShapeNested:
		if shape.Record != nil {
			return shape.Record, ShapeNested, true
		}
	case ShapeSequence, ShapeMapping:
		if shape.Elem != nil && shape.Elem.Kind == ShapeNested && shape.Elem.Record != nil {
			return shape.Elem.Record, shape.Kind, true
		}
	}

	return nil, 0, false
}

// Validate checks record tree for construction errors.
func (record *Record) Validate() error {
	validator := recordValidator{
		active: make(map[*Record]int),
		done:   make(map[*Record]struct{}),
	}

	return validator.validateRecord(record, nil)
}

// recordValidator walks record tree and tracks records on the current path.
type recordValidator struct {
	active map[*Record]int
	done   map[*Record]struct{}
}

// validateRecord validates one record and every record reachable from it.
func (validator *recordValidator) validateRecord(record *Record, path []string) error {
	if record == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidField)
	}

	if _, ok := validator.done[record]; ok {
		return nil
	}

	name := recordName(record)
	path = append(path, name)

	release, ok := validator.enterRecord(record)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCyclicNesting, strings.Join(path, " -> "))
	}
	defer release()

	if record.Default.Kind == DefaultLiteral {
		return fmt.Errorf("%w: %s", ErrRecordLiteralDefault, name)
	}

	if !record.RenameAll.valid() {
		return fmt.Errorf("%w: %s: %d", ErrUnknownRenameRule, name, int(record.RenameAll))
	}

	for _, field := range record.Fields {
		if field.Skip {
			continue
		}

		if err := validator.validateField(record, field, path); err != nil {
			return err
		}
	}

	validator.done[record] = struct{}{}
	return nil
}

// validateField checks one field markers against its shape.
func (validator *recordValidator) validateField(record *Record, field Field, path []string) error {
	fieldID := recordName(record) + "." + field.Name
	if strings.TrimSpace(field.Name) == "" {
		return fmt.Errorf("%w: %s: empty field name", ErrInvalidField, recordName(record))
	}

	if err := checkShape(field.Shape); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidField, fieldID, err)
	}

	for _, source := range field.Defaults {
		if source.Kind == DefaultFunc && source.Func == nil {
			return fmt.Errorf("%w: %s: default function %q is nil", ErrInvalidField, fieldID, source.Name)
		}
	}

	inner, _ := unwrapOptional(field.Shape)
	_, container, isTable := tableTarget(inner)

	if field.Nesting.isSet() {
		if !isTable {
			return fmt.Errorf("%w: %s: nesting requires a record, list of records or map of records", ErrInvalidNesting, fieldID)
		}

		if field.Nesting.Style == NestingPrefix && container == ShapeSequence {
			return fmt.Errorf("%w: %s: prefix nesting cannot express a list of records", ErrInvalidNesting, fieldID)
		}
	}

	if field.Flatten && (!isTable || container == ShapeSequence) {
		return fmt.Errorf("%w: %s: only records and maps of records can be flattened", ErrInvalidFlatten, fieldID)
	}

	for _, nested := range shapeRecords(field.Shape) {
		if err := validator.validateRecord(nested, path); err != nil {
			return err
		}
	}

	return nil
}

// enterRecord registers active record and returns release callback.
func (validator *recordValidator) enterRecord(record *Record) (func(), bool) {
	if validator.active[record] > 0 {
		return nil, false
	}

	validator.active[record]++
	return func() {
		validator.active[record]--
		if validator.active[record] <= 0 {
			delete(validator.active, record)
		}
	}, true
}

// checkShape reports shapes missing their wrapped element, record or enum.
func checkShape(shape Shape) error {
	switch shape.Kind {
	case ShapeScalar:
		if shape.Scalar < ScalarString || shape.Scalar > ScalarBool {
			return fmt.Errorf("unknown scalar kind %d", int(shape.Scalar))
		}

		return nil
	case ShapeOptional, ShapeSequence, ShapeMapping:
		if shape.Elem == nil {
			return fmt.Errorf("shape kind %d has no element shape", int(shape.Kind))
		}

		return checkShape(*shape.Elem)
	case ShapeNested:
		if shape.Record == nil {
			return errors.New("nested shape has no record")
		}

		return nil
	case ShapeEnumerated:
		if shape.Enum == nil {
			return errors.New("enumerated shape has no enum")
		}

		if shape.Enum.Default == nil {
			return fmt.Errorf("enum %q has no default variant", shape.Enum.Name)
		}

		return nil
	default:
		return fmt.Errorf("unknown shape kind %d", int(shape.Kind))
	}
}

// shapeRecords collects nested records referenced anywhere inside shape.
func shapeRecords(shape Shape) []*Record {
	var out []*Record
	for current := &shape; current != nil; current = current.Elem {
		if current.Kind == ShapeNested && current.Record != nil {
			out = append(out, current.Record)
		}
	}

	return out
}

// recordName returns record name for diagnostics.
func recordName(record *Record) string {
	if record == nil || strings.TrimSpace(record.Name) == "" {
		return "(anonymous)"
	}

	return record.Name
}
