package dsl

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	iniLexer = lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Whitespace", Pattern: `[ \t\r]+`},
			{Name: "Newline", Pattern: `\n`},
			{Name: "Comment", Pattern: `[#;][^\n]*`},
			{Name: "Section", Pattern: `\[[^\]\n]*\]`},
			{Name: "Key", Pattern: `[^=:\n\[#;]+`},
			{Name: "Assign", Pattern: `[=:]`, Action: lexer.Push("Rest")},
		},
		"Rest": {
			{Name: "Newline", Pattern: `\n`, Action: lexer.Pop()},
			{Name: "Pad", Pattern: `[ \t]+`},
			{Name: "Value", Pattern: `[^\n]+`},
		},
	})

	iniParser = participle.MustBuild[File](
		participle.Lexer(iniLexer),
		participle.Elide("Whitespace", "Pad", "Comment"),
	)
)

// File is the root AST node of an INI configuration file.
type File struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Entries []*Entry       `parser:"( @@ | Newline )*"`
}

// Entry is either a section header or a key/value property.
type Entry struct {
	Section  *SectionHeader `parser:"  @@"`
	Property *Property      `parser:"| @@"`
}

// SectionHeader captures `[name]`.
type SectionHeader struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name SectionName    `parser:"@Section"`
}

// SectionName strips the surrounding brackets on capture.
type SectionName string

// Capture implements participle.Capture.
func (s *SectionName) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("section header requires a value")
	}
	raw := strings.TrimSpace(values[0])
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	*s = SectionName(strings.TrimSpace(raw))
	return nil
}

// Property uses `key = value` or `key: value` syntax. The value may be empty.
type Property struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Key Assign"`
	Value string         `parser:"@Value?"`
}

// Section is an ordered view of one section's properties.
type Section struct {
	Name string
	Keys []string
	// Values is keyed by lower-cased key, matching configparser's behaviour.
	Values map[string]string
}

// Get returns the value of key and whether it was present.
func (s *Section) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.Values[strings.ToLower(key)]
	return v, ok
}

// Document groups sections in declaration order.
type Document struct {
	Sections []*Section
	index    map[string]*Section
}

// Section looks a section up by its exact name.
func (d *Document) Section(name string) (*Section, bool) {
	if d == nil {
		return nil, false
	}
	s, ok := d.index[name]
	return s, ok
}

// ParseINI parses INI content from an io.Reader.
func ParseINI(r io.Reader) (*Document, error) {
	file, err := iniParser.Parse("", r)
	if err != nil {
		return nil, err
	}
	return buildDocument(file)
}

// ParseINIString parses INI content from a string.
func ParseINIString(input string) (*Document, error) {
	file, err := iniParser.ParseString("", input)
	if err != nil {
		return nil, err
	}
	return buildDocument(file)
}

func buildDocument(file *File) (*Document, error) {
	doc := &Document{index: map[string]*Section{}}
	var current *Section
	for _, entry := range file.Entries {
		switch {
		case entry.Section != nil:
			name := string(entry.Section.Name)
			if name == "" {
				return nil, fmt.Errorf("%s: empty section name", entry.Section.Pos)
			}
			if _, ok := doc.index[name]; ok {
				return nil, fmt.Errorf("%s: duplicate section [%s]", entry.Section.Pos, name)
			}
			current = &Section{Name: name, Values: map[string]string{}}
			doc.Sections = append(doc.Sections, current)
			doc.index[name] = current
		case entry.Property != nil:
			if current == nil {
				return nil, fmt.Errorf("%s: property %q appears before any section", entry.Property.Pos, strings.TrimSpace(entry.Property.Key))
			}
			key := strings.ToLower(strings.TrimSpace(entry.Property.Key))
			if key == "" {
				return nil, fmt.Errorf("%s: empty key", entry.Property.Pos)
			}
			if _, dup := current.Values[key]; dup {
				return nil, fmt.Errorf("%s: duplicate key %q in [%s]", entry.Property.Pos, key, current.Name)
			}
			current.Keys = append(current.Keys, key)
			current.Values[key] = strings.TrimSpace(entry.Property.Value)
		}
	}
	return doc, nil
}
