// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const (
	// tagTOML holds the output key; "-" drops the field.
	tagTOML = "toml"
	// tagComment holds documentation lines separated by "\n".
	tagComment = "comment"
	// recordMarkerField is the blank field carrying record-level markers.
	recordMarkerField = "_"
)

// RecordDocumenter is implemented by structs that document their record.
type RecordDocumenter interface {
	RecordDoc() []string
}

var recordDocumenterType = reflect.TypeFor[RecordDocumenter]()

// typeDescriber builds records from Go struct types.
type typeDescriber struct {
	records   map[reflect.Type]*Record
	enums     map[reflect.Type]*Enum
	active    map[reflect.Type]int
	functions map[string]func() any
}

// Describe builds record description of struct value (or pointer to struct).
//
// Field markers come from `toml_example` and `serde` tags, `toml` tag sets
// the key and `comment` tag the documentation. Record markers are read from
// the tags of a blank `_` field. A bare record `default` marker on the root
// takes field values from value itself.
func Describe(value any) (*Record, error) {
	return DescribeWithOptions(value, LoadOptions{})
}

// DescribeWithOptions is Describe with named default providers for
// `serde:"default = \"fn\""` markers.
func DescribeWithOptions(value any, options LoadOptions) (*Record, error) {
	typ := reflect.TypeOf(value)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T is not a struct", ErrDescribeType, value)
	}

	describer := &typeDescriber{
		records:   make(map[reflect.Type]*Record),
		enums:     make(map[reflect.Type]*Enum),
		active:    make(map[reflect.Type]int),
		functions: options.Functions,
	}

	record, err := describer.describeStruct(typ, nil)
	if err != nil {
		return nil, err
	}

	if record.Default.Kind == DefaultZero && !isNilValue(value) {
		record.Default = Func(typ.Name(), func() any { return value })
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// describeStruct builds record for struct type, reusing already built ones.
func (describer *typeDescriber) describeStruct(typ reflect.Type, path []string) (*Record, error) {
	path = append(path, typ.String())
	if describer.active[typ] > 0 {
		return nil, fmt.Errorf("%w: %s", ErrCyclicNesting, strings.Join(path, " -> "))
	}

	if record, ok := describer.records[typ]; ok {
		return record, nil
	}

	describer.active[typ]++
	defer func() {
		describer.active[typ]--
		if describer.active[typ] <= 0 {
			delete(describer.active, typ)
		}
	}()

	record := &Record{Name: typ.Name()}
	if reflect.PointerTo(typ).Implements(recordDocumenterType) {
		record.Doc = reflect.New(typ).Interface().(RecordDocumenter).RecordDoc()
	}

	for index := range typ.NumField() {
		structField := typ.Field(index)
		if structField.Name == recordMarkerField {
			if err := describer.applyRecordTags(record, structField.Tag); err != nil {
				return nil, err
			}

			continue
		}

		if !structField.IsExported() {
			continue
		}

		field, keep, err := describer.describeField(structField, path)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typ.Name(), structField.Name, err)
		}

		if keep {
			record.Fields = append(record.Fields, field)
		}
	}

	describer.records[typ] = record
	return record, nil
}

// applyRecordTags applies record-level markers of the blank field.
func (describer *typeDescriber) applyRecordTags(record *Record, tag reflect.StructTag) error {
	markers, err := tagMarkers(tag)
	if err != nil {
		return fmt.Errorf("record %s: %w", recordName(record), err)
	}

	return ApplyRecordMarkers(record, markers, describer.functions)
}

// describeField builds field from struct field. Fields tagged `toml:"-"`
// are dropped.
func (describer *typeDescriber) describeField(structField reflect.StructField, path []string) (Field, bool, error) {
	key, _, _ := strings.Cut(structField.Tag.Get(tagTOML), ",")
	if key == "-" {
		return Field{}, false, nil
	}

	markers, err := tagMarkers(structField.Tag)
	if err != nil {
		return Field{}, false, err
	}

	field := Field{
		Name:   structField.Name,
		Rename: key,
		Doc:    commentLines(structField.Tag.Get(tagComment)),
		Shape:  String(),
	}

	if err := ApplyFieldMarkers(&field, markers, describer.functions); err != nil {
		return Field{}, false, err
	}

	if field.Skip {
		return field, true, nil
	}

	shape, err := describer.shapeOf(structField.Type, field.EnumLike, path)
	if err != nil {
		return Field{}, false, err
	}

	field.Shape = shape
	if structField.Anonymous && key == "" && shape.Kind == ShapeNested {
		field.Flatten = true
	}

	return field, true, nil
}

// shapeOf maps Go type onto field shape. With enum set, non-container
// types become enumerated shapes whose zero value is the default variant.
func (describer *typeDescriber) shapeOf(typ reflect.Type, enum bool, path []string) (Shape, error) {
	switch typ.Kind() {
	case reflect.Pointer:
		elem, err := describer.shapeOf(typ.Elem(), enum, path)
		if err != nil {
			return Shape{}, err
		}

		return Optional(elem), nil

	case reflect.Slice, reflect.Array:
		if typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8 {
			return String(), nil
		}

		elem, err := describer.shapeOf(typ.Elem(), enum, path)
		if err != nil {
			return Shape{}, err
		}

		return Sequence(elem), nil

	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			return Shape{}, fmt.Errorf("%w: map key %s is not a string", ErrDescribeType, typ.Key())
		}

		elem, err := describer.shapeOf(typ.Elem(), enum, path)
		if err != nil {
			return Shape{}, err
		}

		return Mapping(elem), nil
	}

	if enum {
		return Enumerated(describer.enumFor(typ)), nil
	}

	switch typ.Kind() {
	case reflect.String:
		return String(), nil
	case reflect.Bool:
		return Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer(), nil
	case reflect.Float32, reflect.Float64:
		return Float(), nil
	case reflect.Struct:
		if typ == timeType || typ.Implements(textMarshalerType) || reflect.PointerTo(typ).Implements(textMarshalerType) {
			return String(), nil
		}

		record, err := describer.describeStruct(typ, path)
		if err != nil {
			return Shape{}, err
		}

		return Nested(record), nil
	default:
		return Shape{}, fmt.Errorf("%w: unsupported type %s", ErrDescribeType, typ)
	}
}

// enumFor returns enum description of Go type with zero value as default.
func (describer *typeDescriber) enumFor(typ reflect.Type) *Enum {
	if enum, ok := describer.enums[typ]; ok {
		return enum
	}

	enum := &Enum{Name: typ.String(), Default: reflect.Zero(typ).Interface()}
	if typ.Implements(textMarshalerType) {
		enum.Display = marshalTextDisplay
	}

	describer.enums[typ] = enum
	return enum
}

// marshalTextDisplay displays variant through its text form.
func marshalTextDisplay(variant any) string {
	marshaler, ok := variant.(encoding.TextMarshaler)
	if !ok {
		return fmt.Sprint(variant)
	}

	text, err := marshaler.MarshalText()
	if err != nil {
		return fmt.Sprint(variant)
	}

	return string(text)
}

// commentLines splits comment tag into documentation lines.
func commentLines(comment string) []string {
	if strings.TrimSpace(comment) == "" {
		return nil
	}

	return strings.Split(normalizeLineEndings(comment), "\n")
}

// tagMarkers parses toml_example and serde tags in the order they appear.
func tagMarkers(tag reflect.StructTag) ([]Marker, error) {
	texts, err := orderedMarkerTags(tag)
	if err != nil {
		return nil, err
	}

	return parseMarkerTexts(texts)
}

// orderedMarkerTags scans struct tag keeping key order, which
// reflect.StructTag.Get does not expose. Syntax follows reflect.
func orderedMarkerTags(tag reflect.StructTag) ([]markerText, error) {
	var texts []markerText
	for tag != "" {
		index := 0
		for index < len(tag) && tag[index] == ' ' {
			index++
		}

		tag = tag[index:]
		if tag == "" {
			break
		}

		index = 0
		for index < len(tag) && tag[index] > ' ' && tag[index] != ':' && tag[index] != '"' && tag[index] != 0x7f {
			index++
		}

		if index == 0 || index+1 >= len(tag) || tag[index] != ':' || tag[index+1] != '"' {
			break
		}

		name := string(tag[:index])
		tag = tag[index+1:]

		index = 1
		for index < len(tag) && tag[index] != '"' {
			if tag[index] == '\\' {
				index++
			}

			index++
		}

		if index >= len(tag) {
			break
		}

		quoted := string(tag[:index+1])
		tag = tag[index+1:]

		if name != string(MarkerSetExample) && name != string(MarkerSetSerde) {
			continue
		}

		value, err := strconv.Unquote(quoted)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed %s tag %s", ErrUnknownMarker, name, quoted)
		}

		texts = append(texts, markerText{Set: MarkerSet(name), Text: value})
	}

	return texts, nil
}
