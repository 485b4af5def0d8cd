// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"fmt"
	"sort"
)

const (
	// defaultTemplateName is the starter description used when none is named.
	defaultTemplateName = "basic"

	templateBasicName   = "basic"
	templateServiceName = "service"
)

// RenderFile loads schema description file and renders its TOML example.
func RenderFile(path string, options LoadOptions) (string, error) {
	record, err := LoadRecordFile(path, options)
	if err != nil {
		return "", err
	}

	return TOMLExample(record), nil
}

// Render loads schema description bytes and renders its TOML example.
func Render(data []byte, options LoadOptions) (string, error) {
	record, err := LoadRecord(data, options)
	if err != nil {
		return "", err
	}

	return TOMLExample(record), nil
}

// BuiltinTemplateNames returns all available built-in starter description names.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtInTemplateFiles))
	for name := range builtInTemplateFiles {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// BuiltinTemplate returns one built-in starter schema description by name.
// Empty name selects the default starter.
func BuiltinTemplate(name string) (string, error) {
	name = normalizeTemplateName(name)
	if name == "" {
		name = defaultTemplateName
	}

	path, ok := builtInTemplateFiles[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, name)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	return string(data), nil
}
