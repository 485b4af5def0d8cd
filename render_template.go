// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"embed"
	"strings"
)

// templateFS stores built-in starter schema descriptions embedded into the package.
//
//go:embed templates/*.yaml
var templateFS embed.FS

// builtInTemplateFiles maps template aliases to embedded file paths.
var builtInTemplateFiles = map[string]string{
	templateBasicName:   "templates/basic.yaml",
	templateServiceName: "templates/service.yaml",
}

// normalizeTemplateName normalizes built-in template identifiers.
func normalizeTemplateName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
