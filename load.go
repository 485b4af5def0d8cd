// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

package tomlexample

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadOptions controls schema description loading.
type LoadOptions struct {
	// Functions registers default providers by name. They take precedence
	// over constant providers declared in the document.
	Functions map[string]func() any
}

// schemaDocument is the top-level schema description document.
type schemaDocument struct {
	Records   map[string]recordDescription `yaml:"records"`
	Enums     map[string]enumDescription   `yaml:"enums"`
	Functions map[string]any               `yaml:"functions"`
	Root      string                       `yaml:"root"`
}

// recordDescription describes one record of the document.
type recordDescription struct {
	Doc     docText
	Fields  []fieldDescription
	Markers []markerText
}

// fieldDescription describes one field of a record.
type fieldDescription struct {
	Name    string
	Type    string
	Doc     docText
	Markers []markerText
	Line    int
}

// enumDescription describes one enumerated type.
type enumDescription struct {
	Default  string   `yaml:"default"`
	Variants []string `yaml:"variants"`
}

// markerText is one marker list together with its attribute namespace.
type markerText struct {
	Set  MarkerSet
	Text string
}

// docText accepts documentation as a single (multi-line) string or a list.
type docText []string

// schemaLoader resolves type expressions against declared records and enums.
type schemaLoader struct {
	records   map[string]*Record
	enums     map[string]*Enum
	functions map[string]func() any
}

// LoadRecordFile reads schema description file and builds the root record.
func LoadRecordFile(path string, options LoadOptions) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrLoadSchema, path, err)
	}

	record, err := LoadRecord(data, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return record, nil
}

// LoadRecord builds root record from YAML (or JSON) schema description.
//
// The returned record tree is validated. Every error wraps ErrLoadSchema,
// construction errors additionally wrap their own sentinel.
func LoadRecord(data []byte, options LoadOptions) (*Record, error) {
	var document schemaDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&document); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrLoadSchema)
		}

		return nil, fmt.Errorf("%w: %w", ErrLoadSchema, err)
	}

	root := strings.TrimSpace(document.Root)
	if root == "" {
		return nil, fmt.Errorf("%w: root record is not set", ErrLoadSchema)
	}

	loader := newSchemaLoader(document, options)
	if _, ok := loader.records[root]; !ok {
		return nil, fmt.Errorf("%w: root record %q is not declared", ErrLoadSchema, root)
	}

	for _, name := range sortedKeys(document.Records) {
		if err := loader.buildRecord(name, document.Records[name]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadSchema, err)
		}
	}

	record := loader.records[root]
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadSchema, err)
	}

	return record, nil
}

// newSchemaLoader allocates every record and enum before fields are built,
// so records may reference each other in any order.
func newSchemaLoader(document schemaDocument, options LoadOptions) *schemaLoader {
	loader := &schemaLoader{
		records:   make(map[string]*Record, len(document.Records)),
		enums:     make(map[string]*Enum, len(document.Enums)),
		functions: make(map[string]func() any, len(document.Functions)+len(options.Functions)),
	}

	for name := range document.Records {
		loader.records[name] = &Record{Name: name}
	}

	for name, description := range document.Enums {
		loader.enums[name] = newDeclaredEnum(name, description)
	}

	for name, value := range document.Functions {
		loader.functions[name] = constantProvider(value)
	}

	for name, fn := range options.Functions {
		loader.functions[name] = fn
	}

	return loader
}

// newDeclaredEnum builds enum whose variants are their names. Default is the
// declared default or the first variant.
func newDeclaredEnum(name string, description enumDescription) *Enum {
	enum := &Enum{Name: name}
	switch {
	case description.Default != "":
		enum.Default = description.Default
	case len(description.Variants) > 0:
		enum.Default = description.Variants[0]
	default:
		enum.Default = ""
	}

	return enum
}

// constantProvider returns default provider yielding value.
func constantProvider(value any) func() any {
	return func() any { return value }
}

// buildRecord populates pre-allocated record from its description.
func (loader *schemaLoader) buildRecord(name string, description recordDescription) error {
	record := loader.records[name]
	record.Doc = description.Doc
	record.Fields = make([]Field, 0, len(description.Fields))

	markers, err := parseMarkerTexts(description.Markers)
	if err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}

	if err := ApplyRecordMarkers(record, markers, loader.functions); err != nil {
		return err
	}

	for _, fieldDesc := range description.Fields {
		field, err := loader.buildField(fieldDesc)
		if err != nil {
			return fmt.Errorf("record %s: line %d: %w", name, fieldDesc.Line, err)
		}

		record.Fields = append(record.Fields, field)
	}

	return nil
}

// buildField converts field description into field.
func (loader *schemaLoader) buildField(description fieldDescription) (Field, error) {
	name := strings.TrimSpace(description.Name)
	if name == "" {
		return Field{}, fmt.Errorf("%w: field name is empty", ErrInvalidField)
	}

	shape, err := loader.parseType(description.Type)
	if err != nil {
		return Field{}, fmt.Errorf("field %s: %w", name, err)
	}

	field := Field{Name: name, Doc: description.Doc, Shape: shape}
	markers, err := parseMarkerTexts(description.Markers)
	if err != nil {
		return Field{}, fmt.Errorf("field %s: %w", name, err)
	}

	if err := ApplyFieldMarkers(&field, markers, loader.functions); err != nil {
		return Field{}, err
	}

	return field, nil
}

// parseMarkerTexts parses marker lists keeping declaration order.
func parseMarkerTexts(texts []markerText) ([]Marker, error) {
	var markers []Marker
	for _, text := range texts {
		parsed, err := ParseMarkers(text.Set, text.Text)
		if err != nil {
			return nil, err
		}

		markers = append(markers, parsed...)
	}

	return markers, nil
}

// parseType parses field type expression into shape.
func (loader *schemaLoader) parseType(expression string) (Shape, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return Shape{}, errors.New("type is empty")
	}

	if elem, ok := strings.CutPrefix(expression, "*"); ok {
		return loader.wrapType(Optional, elem)
	}

	if elem, ok := strings.CutPrefix(expression, "[]"); ok {
		return loader.wrapType(Sequence, elem)
	}

	if rest, ok := strings.CutPrefix(expression, "map["); ok {
		key, elem, found := strings.Cut(rest, "]")
		if !found {
			return Shape{}, fmt.Errorf("malformed map type %q", expression)
		}

		if err := checkMapKey(key); err != nil {
			return Shape{}, err
		}

		return loader.wrapType(Mapping, elem)
	}

	if open := strings.IndexByte(expression, '<'); open > 0 && strings.HasSuffix(expression, ">") {
		return loader.parseGeneric(expression[:open], splitGenericArgs(expression[open+1:len(expression)-1]))
	}

	if shape, ok := scalarShape(expression); ok {
		return shape, nil
	}

	if record, ok := loader.records[expression]; ok {
		return Nested(record), nil
	}

	if enum, ok := loader.enums[expression]; ok {
		return Enumerated(enum), nil
	}

	return Shape{}, fmt.Errorf("unknown type %q", expression)
}

// parseGeneric parses generic container type such as Vec<T> or HashMap<K, V>.
func (loader *schemaLoader) parseGeneric(name string, args []string) (Shape, error) {
	want := 1
	var wrap func(Shape) Shape

	switch strings.TrimSpace(name) {
	case "Option":
		wrap = Optional
	case "Vec", "VecDeque", "HashSet", "BTreeSet", "IndexSet":
		wrap = Sequence
	case "HashMap", "BTreeMap", "IndexMap":
		want = 2
		wrap = Mapping
	case "Box", "Rc", "Arc":
		wrap = func(shape Shape) Shape { return shape }
	default:
		return Shape{}, fmt.Errorf("unknown generic type %q", name)
	}

	if len(args) != want {
		return Shape{}, fmt.Errorf("%s expects %d type arguments, got %d", name, want, len(args))
	}

	if want == 2 {
		if err := checkMapKey(args[0]); err != nil {
			return Shape{}, err
		}
	}

	return loader.wrapType(wrap, args[want-1])
}

// wrapType parses elem expression and wraps the result.
func (loader *schemaLoader) wrapType(wrap func(Shape) Shape, elem string) (Shape, error) {
	shape, err := loader.parseType(elem)
	if err != nil {
		return Shape{}, err
	}

	return wrap(shape), nil
}

// checkMapKey reports map keys that cannot be TOML keys.
func checkMapKey(key string) error {
	if shape, ok := scalarShape(strings.TrimSpace(key)); ok && shape.Scalar == ScalarString {
		return nil
	}

	return fmt.Errorf("map key type %q is not a string", strings.TrimSpace(key))
}

// scalarShape maps scalar type names of Go and Rust onto scalar shapes.
func scalarShape(name string) (Shape, bool) {
	switch name {
	case "string", "String", "str", "&str", "char", "rune", "PathBuf":
		return String(), true
	case "bool":
		return Bool(), true
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "byte",
		"i8", "i16", "i32", "i64", "i128", "isize",
		"u8", "u16", "u32", "u64", "u128", "usize":
		return Integer(), true
	case "float32", "float64", "f32", "f64":
		return Float(), true
	default:
		return Shape{}, false
	}
}

// splitGenericArgs splits generic arguments on top-level commas.
func splitGenericArgs(text string) []string {
	var args []string
	depth := 0
	start := 0

	for index, r := range text {
		switch r {
		case '<', '[', '(':
			depth++
		case '>', ']', ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(text[start:index]))
				start = index + 1
			}
		}
	}

	if last := strings.TrimSpace(text[start:]); last != "" || len(args) > 0 {
		args = append(args, last)
	}

	return args
}

// UnmarshalYAML decodes record description keeping marker key order.
func (record *recordDescription) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: record description must be a mapping", node.Line)
	}

	for index := 0; index+1 < len(node.Content); index += 2 {
		key, value := node.Content[index], node.Content[index+1]
		switch key.Value {
		case "doc":
			if err := value.Decode(&record.Doc); err != nil {
				return err
			}
		case "fields":
			if err := value.Decode(&record.Fields); err != nil {
				return err
			}
		case string(MarkerSetExample), string(MarkerSetSerde):
			texts, err := decodeMarkerTexts(MarkerSet(key.Value), value)
			if err != nil {
				return err
			}

			record.Markers = append(record.Markers, texts...)
		default:
			return fmt.Errorf("line %d: unknown record key %q", key.Line, key.Value)
		}
	}

	return nil
}

// UnmarshalYAML decodes field description keeping marker key order.
func (field *fieldDescription) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: field description must be a mapping", node.Line)
	}

	field.Line = node.Line
	for index := 0; index+1 < len(node.Content); index += 2 {
		key, value := node.Content[index], node.Content[index+1]
		var err error
		switch key.Value {
		case "name":
			err = value.Decode(&field.Name)
		case "type":
			err = value.Decode(&field.Type)
		case "doc":
			err = value.Decode(&field.Doc)
		case string(MarkerSetExample), string(MarkerSetSerde):
			var texts []markerText
			texts, err = decodeMarkerTexts(MarkerSet(key.Value), value)
			field.Markers = append(field.Markers, texts...)
		default:
			err = fmt.Errorf("line %d: unknown field key %q", key.Line, key.Value)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// UnmarshalYAML accepts a string, split into lines, or a list of lines.
func (doc *docText) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		text := strings.TrimRight(normalizeLineEndings(node.Value), "\n")
		if text == "" {
			*doc = nil
			return nil
		}

		*doc = strings.Split(text, "\n")
		return nil
	case yaml.SequenceNode:
		var lines []string
		if err := node.Decode(&lines); err != nil {
			return err
		}

		*doc = lines
		return nil
	default:
		return fmt.Errorf("line %d: doc must be a string or a list of strings", node.Line)
	}
}

// decodeMarkerTexts decodes marker list given as string or list of strings.
func decodeMarkerTexts(set MarkerSet, node *yaml.Node) ([]markerText, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []markerText{{Set: set, Text: node.Value}}, nil
	case yaml.SequenceNode:
		texts := make([]markerText, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: %s marker must be a string", item.Line, set)
			}

			texts = append(texts, markerText{Set: set, Text: item.Value})
		}

		return texts, nil
	default:
		return nil, fmt.Errorf("line %d: %s markers must be a string or a list of strings", node.Line, set)
	}
}

// sortedKeys returns map keys in ascending order.
func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	slices.Sort(keys)
	return keys
}
