// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

/*
Package tomlexample renders documented TOML example configs from schema
descriptions.

A schema is a tree of records. Every field carries a shape (scalar,
optional, list, map, nested record or enum), documentation lines and
markers controlling defaults, nesting, renaming and visibility. The
renderer prints every field with its doc comment and default value;
fields without a value are written as commented-out hints.

Build a record in code and render it:

	server := &tomlexample.Record{
		Name: "Server",
		Fields: []tomlexample.Field{
			{Name: "address", Shape: tomlexample.String(), Defaults: []tomlexample.Default{tomlexample.Literal(`"0.0.0.0"`)}},
		},
	}

	config := &tomlexample.Record{
		Name: "Config",
		Doc:  []string{"Application configuration."},
		Fields: []tomlexample.Field{
			{Name: "port", Shape: tomlexample.Integer(), Doc: []string{"Listen port."}},
			{Name: "token", Shape: tomlexample.Optional(tomlexample.String())},
			{Name: "server", Shape: tomlexample.Nested(server)},
		},
	}

	if err := config.Validate(); err != nil {
		return err
	}

	fmt.Print(tomlexample.TOMLExample(config))

Load a YAML (or JSON) schema description and render it:

	text, err := tomlexample.RenderFile("schema.yaml", tomlexample.LoadOptions{})
	if err != nil {
		return err
	}

	fmt.Print(text)

Describe a Go struct through its tags:

	type Config struct {
		_    struct{} `serde:"rename_all = \"kebab-case\""`
		Port int      `comment:"Listen port." toml_example:"default = 8080"`
	}

	record, err := tomlexample.Describe(Config{})
	if err != nil {
		return err
	}

	return tomlexample.WriteTOMLExample(record, "config.example.toml")

Starter descriptions are embedded:

	names := tomlexample.BuiltinTemplateNames()
	fmt.Println(strings.Join(names, ", "))

	description, err := tomlexample.BuiltinTemplate("service")
	if err != nil {
		return err
	}

	fmt.Println(len(description) > 0)
*/
package tomlexample
