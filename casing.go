// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RenameRule is a casing policy applied to field names.
type RenameRule int

const (
	// RenameNone keeps field names unchanged.
	RenameNone RenameRule = iota
	// RenameLower lowercases the whole name.
	RenameLower
	// RenameUpper uppercases the whole name.
	RenameUpper
	// RenamePascal produces PascalCase.
	RenamePascal
	// RenameCamel produces camelCase.
	RenameCamel
	// RenameSnake produces snake_case.
	RenameSnake
	// RenameScreamingSnake produces SCREAMING_SNAKE_CASE.
	RenameScreamingSnake
	// RenameKebab produces kebab-case.
	RenameKebab
	// RenameScreamingKebab produces SCREAMING-KEBAB-CASE.
	RenameScreamingKebab
)

// renameRuleNames maps rules to their rename_all spelling.
var renameRuleNames = map[RenameRule]string{
	RenameNone:           "",
	RenameLower:          "lowercase",
	RenameUpper:          "UPPERCASE",
	RenamePascal:         "PascalCase",
	RenameCamel:          "camelCase",
	RenameSnake:          "snake_case",
	RenameScreamingSnake: "SCREAMING_SNAKE_CASE",
	RenameKebab:          "kebab-case",
	RenameScreamingKebab: "SCREAMING-KEBAB-CASE",
}

// ParseRenameRule parses rename_all style string. Spelling is case sensitive.
func ParseRenameRule(text string) (RenameRule, error) {
	text = strings.TrimSpace(text)
	for rule, name := range renameRuleNames {
		if name == text {
			return rule, nil
		}
	}

	return RenameNone, fmt.Errorf("%w %q", ErrUnknownRenameRule, text)
}

// String returns rename_all spelling of rule.
func (rule RenameRule) String() string {
	if name, ok := renameRuleNames[rule]; ok {
		return name
	}

	return fmt.Sprintf("RenameRule(%d)", int(rule))
}

// valid reports whether rule is a known policy.
func (rule RenameRule) valid() bool {
	_, ok := renameRuleNames[rule]
	return ok
}

// Apply converts name according to rule.
func (rule RenameRule) Apply(name string) string {
	switch rule {
	case RenameLower:
		return strings.ToLower(name)
	case RenameUpper:
		return strings.ToUpper(name)
	case RenamePascal:
		return joinWords(splitWords(name), "", titleWord)
	case RenameCamel:
		words := splitWords(name)
		if len(words) == 0 {
			return ""
		}

		return strings.ToLower(words[0]) + joinWords(words[1:], "", titleWord)
	case RenameSnake:
		return joinWords(splitWords(name), "_", strings.ToLower)
	case RenameScreamingSnake:
		return joinWords(splitWords(name), "_", strings.ToUpper)
	case RenameKebab:
		return joinWords(splitWords(name), "-", strings.ToLower)
	case RenameScreamingKebab:
		return joinWords(splitWords(name), "-", strings.ToUpper)
	default:
		return name
	}
}

// NormalizeKey returns output key for field name. Explicit rename always wins.
func NormalizeKey(name, rename string, rule RenameRule) string {
	if rename != "" {
		return rename
	}

	return rule.Apply(name)
}

// splitWords splits identifier on separators, case humps and acronym ends.
func splitWords(name string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}

		words = append(words, current.String())
		current.Reset()
	}

	runes := []rune(name)
	for index, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}

		if index > 0 && unicode.IsUpper(r) {
			prev := runes[index-1]
			nextLower := index+1 < len(runes) && unicode.IsLower(runes[index+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}

		current.WriteRune(r)
	}

	flush()
	return words
}

// joinWords transforms and joins words with separator.
func joinWords(words []string, separator string, transform func(string) string) string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		out = append(out, transform(word))
	}

	return strings.Join(out, separator)
}

// titleWord uppercases first rune and lowercases the rest.
func titleWord(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError {
		return word
	}

	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}
