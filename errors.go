// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import "errors"

var (
	// ErrInvalidField is returned when a field description is malformed (for example: empty name).
	ErrInvalidField = errors.New("invalid field")
	// ErrInvalidNesting is returned when a nesting marker is set on a field that has no nested record.
	ErrInvalidNesting = errors.New("invalid nesting")
	// ErrInvalidFlatten is returned when flatten is set on a field that is not a record or a map of records.
	ErrInvalidFlatten = errors.New("invalid flatten")
	// ErrUnknownRenameRule is returned when rename_all style string is not recognized.
	ErrUnknownRenameRule = errors.New("unknown rename rule")
	// ErrCyclicNesting is returned when a record reaches itself through nested fields.
	ErrCyclicNesting = errors.New("cyclic nesting")
	// ErrRecordLiteralDefault is returned when a record-level default carries a literal value.
	ErrRecordLiteralDefault = errors.New("literal default on record is not supported")
	// ErrUnknownMarker is returned when a toml_example marker list contains an unsupported marker.
	ErrUnknownMarker = errors.New("unknown marker")
	// ErrUnknownDefaultFunc is returned when a default marker names a function that is not registered.
	ErrUnknownDefaultFunc = errors.New("unknown default function")
	// ErrLoadSchema is returned when a schema description document cannot be loaded.
	ErrLoadSchema = errors.New("load schema description")
	// ErrDescribeType is returned when a Go type cannot be described as a record.
	ErrDescribeType = errors.New("describe type")
	// ErrUnknownBuiltinTemplate is returned when built-in starter description name is not recognized.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrReadBuiltinTemplate is returned when embedded starter description cannot be read.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
	// ErrWriteExample is returned when the rendered example cannot be written.
	ErrWriteExample = errors.New("write toml example")
	// ErrEncodeValue is returned when a default value cannot be encoded as a TOML literal.
	ErrEncodeValue = errors.New("encode toml value")
)
