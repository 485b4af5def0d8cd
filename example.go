// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// commentMarker prefixes documentation and commented-out lines.
	commentMarker = "#"
	// defaultRepresentativeKey names the single sample entry of a map.
	defaultRepresentativeKey = "example"
)

// tableContext is the position of rendered fields inside the document.
type tableContext struct {
	// path is the header path of the enclosing table.
	path []string
	// prefix holds dotted key segments added by prefix nesting.
	prefix []string
	// active counts records on the current rendering path.
	active map[*Record]int
	// commented comments out every emitted line.
	commented bool
}

// TOMLExample renders documented TOML example text for record.
//
// Plain keys of every table come first in declaration order, followed by
// its sub-tables in declaration order. Output ends with one blank line.
//
// Records reached again through their own fields render as empty tables.
// Call Record.Validate first to reject such trees.
func TOMLExample(record *Record) string {
	if record == nil {
		return ""
	}

	var out strings.Builder
	if writeComment(&out, record.Doc) {
		out.WriteByte('\n')
	}

	out.WriteString(renderTable(record, tableContext{active: make(map[*Record]int)}))
	return normalizeExampleOutput(out.String())
}

// WriteTOMLExampleTo writes example text for record into output.
func WriteTOMLExampleTo(record *Record, output io.Writer) error {
	if _, err := io.WriteString(output, TOMLExample(record)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteExample, err)
	}

	return nil
}

// WriteTOMLExample renders record and writes example file at path.
//
// Text is staged in a temporary file in the target directory and renamed
// over path, so a failed write never leaves a partial example behind.
func WriteTOMLExample(record *Record, path string) (err error) {
	content := TOMLExample(record)

	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteExample, path, err)
	}

	tempPath := file.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tempPath)
		}
	}()

	if _, err = file.WriteString(content); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w %q: %w", ErrWriteExample, path, err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteExample, path, err)
	}

	if err = os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteExample, path, err)
	}

	return nil
}

// renderTable renders record fields, plain keys first and sub-tables after.
func renderTable(record *Record, ctx tableContext) string {
	var keys, tables strings.Builder
	renderFields(record, ctx, &keys, &tables)
	return keys.String() + tables.String()
}

// renderFields writes record fields into plain key and sub-table buffers.
func renderFields(record *Record, ctx tableContext, keys, tables *strings.Builder) {
	release, ok := ctx.enterRecord(record)
	if !ok {
		return
	}
	defer release()

	for _, field := range record.Fields {
		if field.Skip {
			continue
		}

		key := NormalizeKey(field.Name, field.Rename, record.RenameAll)
		inner, optional := unwrapOptional(field.Shape)

		fieldCtx := ctx
		fieldCtx.commented = ctx.commented || (optional && !field.Require)

		nested, container, isTable := tableTarget(inner)
		switch {
		case !isTable:
			renderValue(record, field, key, ctx, keys)

		case field.Flatten:
			renderFlattened(field, nested, container, fieldCtx, keys, tables)

		case field.Nesting.Style == NestingPrefix:
			writeComment(keys, field.Doc)
			child := fieldCtx
			child.prefix = slices.Concat(ctx.prefix, tableSegments(field, key, container))
			renderFields(nested, child, keys, tables)

		default:
			renderSection(field, key, nested, container, fieldCtx, tables)
		}
	}
}

// enterRecord marks record as being rendered. It reports false when record
// is already on the current path.
func (ctx tableContext) enterRecord(record *Record) (func(), bool) {
	if ctx.active == nil {
		return func() {}, true
	}

	if ctx.active[record] > 0 {
		return nil, false
	}

	ctx.active[record]++
	return func() { ctx.active[record]-- }, true
}

// renderValue writes one key/value line, commented out when no value resolves.
func renderValue(record *Record, field Field, key string, ctx tableContext, keys *strings.Builder) {
	writeComment(keys, field.Doc)

	fullKey := tomlPath(slices.Concat(ctx.prefix, []string{key}))
	resolved := ResolveDefault(field, record.Default)
	if resolved.Present {
		writeLine(keys, fullKey+" = "+resolved.Literal, ctx.commented)
	} else {
		writeLine(keys, fullKey+" = "+hintLiteral(field.Shape), true)
	}

	keys.WriteByte('\n')
}

// renderSection writes nested record under its own table header.
func renderSection(field Field, key string, nested *Record, container ShapeKind, ctx tableContext, tables *strings.Builder) {
	path := slices.Concat(ctx.path, ctx.prefix, tableSegments(field, key, container))

	header := "[" + tomlPath(path) + "]"
	if container == ShapeSequence {
		header = "[" + header + "]"
	}

	writeComment(tables, field.Doc)
	writeLine(tables, header, ctx.commented)
	writeSectionBody(tables, nested, tableContext{path: path, active: ctx.active, commented: ctx.commented})
}

// renderFlattened splices nested record into the current table. A flattened
// map keeps one representative table named by the representative key only.
func renderFlattened(field Field, nested *Record, container ShapeKind, ctx tableContext, keys, tables *strings.Builder) {
	if container == ShapeMapping {
		path := slices.Concat(ctx.path, ctx.prefix, []string{representativeKey(field)})

		writeComment(tables, field.Doc)
		writeLine(tables, "["+tomlPath(path)+"]", ctx.commented)
		writeSectionBody(tables, nested, tableContext{path: path, active: ctx.active, commented: ctx.commented})
		return
	}

	writeComment(keys, field.Doc)
	renderFields(nested, ctx, keys, tables)
}

// tableSegments returns key segments of nested record below the current table.
func tableSegments(field Field, key string, container ShapeKind) []string {
	switch container {
	case ShapeMapping:
		return []string{key, representativeKey(field)}
	case ShapeNested:
		if field.Nesting.SampleKey != "" {
			return []string{field.Nesting.SampleKey}
		}
	}

	return []string{key}
}

// representativeKey names the single rendered entry of a map of records.
func representativeKey(field Field) string {
	if field.Nesting.SampleKey != "" {
		return field.Nesting.SampleKey
	}

	for _, source := range field.Defaults {
		if source.Kind != DefaultLiteral {
			continue
		}

		key := strings.Trim(source.Literal, `"`)
		key = strings.ReplaceAll(key, " ", "")
		key = strings.ReplaceAll(key, ".", "-")
		if key != "" {
			return key
		}
	}

	return defaultRepresentativeKey
}

// writeSectionBody writes nested record below its header. A table without
// plain keys gets a blank line after the header.
func writeSectionBody(out *strings.Builder, nested *Record, ctx tableContext) {
	var keys, tables strings.Builder
	renderFields(nested, ctx, &keys, &tables)
	if keys.Len() == 0 {
		out.WriteByte('\n')
	}

	out.WriteString(keys.String())
	out.WriteString(tables.String())
}

// writeLine writes one line, commented out on request.
func writeLine(out *strings.Builder, line string, commented bool) {
	if commented {
		out.WriteString(commentMarker + " ")
	}

	out.WriteString(line)
	out.WriteByte('\n')
}

// writeComment writes documentation lines as comments and reports whether
// anything was written.
func writeComment(out *strings.Builder, doc []string) bool {
	lines := docLines(doc)
	for _, line := range lines {
		if line == "" {
			out.WriteString(commentMarker + "\n")
			continue
		}

		out.WriteString(commentMarker + " " + line + "\n")
	}

	return len(lines) > 0
}

// docLines splits multi-line doc entries and strips trailing whitespace.
func docLines(doc []string) []string {
	out := make([]string, 0, len(doc))
	for _, entry := range doc {
		for line := range strings.SplitSeq(normalizeLineEndings(entry), "\n") {
			out = append(out, strings.TrimRight(line, " \t"))
		}
	}

	return out
}

// normalizeLineEndings converts CRLF/CR to LF.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}

// normalizeExampleOutput ends non-empty output with exactly one blank line.
// Line contents are left untouched since multi-line string literals may
// carry blank or whitespace-only lines of their own.
func normalizeExampleOutput(text string) string {
	result := strings.TrimRight(text, "\n")
	if result == "" {
		return ""
	}

	return result + "\n\n"
}
