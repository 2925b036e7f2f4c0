package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Separator delimits column references inside a line token. Only the leading
// column is bound; the separator is accepted at most once.
const Separator = '|'

// FlagAlphabet lists the style flag characters accepted after a column number.
const FlagAlphabet = "bisur"

var (
	tokenLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Number", Pattern: `\d+`},
		{Name: "Flag", Pattern: `[bisur]`},
		{Name: "Sep", Pattern: `\|`},
	})

	tokenParser = participle.MustBuild[LineToken](
		participle.Lexer(tokenLexer),
	)
)

// LineToken is the AST of one template line such as `1bu` or `2i|3`.
type LineToken struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Column ColumnRef      `parser:"@Number"`
	Flags  []string       `parser:"@Flag*"`
	Tail   []*TailSegment `parser:"@@*"`
}

// TailSegment is everything after a separator. It is validated but not bound.
type TailSegment struct {
	Sep    string     `parser:"@Sep"`
	Column *ColumnRef `parser:"@Number?"`
	Flags  []string   `parser:"@Flag*"`
}

// ColumnRef is a 1-based column number.
type ColumnRef int

// Capture implements participle.Capture.
func (c *ColumnRef) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("column reference requires a value")
	}
	n, err := strconv.Atoi(values[0])
	if err != nil {
		return fmt.Errorf("invalid column number %q: %w", values[0], err)
	}
	*c = ColumnRef(n)
	return nil
}

// Columns returns every column number mentioned by the token, leading first.
func (t *LineToken) Columns() []int {
	if t == nil {
		return nil
	}
	out := []int{int(t.Column)}
	for _, seg := range t.Tail {
		if seg.Column != nil {
			out = append(out, int(*seg.Column))
		}
	}
	return out
}

// InvalidCharError reports a character outside the token alphabet.
type InvalidCharError struct {
	Token string
	Char  rune
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("line %q contains an invalid character %q", e.Token, e.Char)
}

// SeparatorError reports a token with more than one separator.
type SeparatorError struct {
	Token string
	Count int
}

func (e *SeparatorError) Error() string {
	return fmt.Sprintf("line %q contains %d separators, at most one is allowed", e.Token, e.Count)
}

// ParseLineToken parses one template line token. An empty (or blank) token
// returns nil, nil and denotes a blank slot.
func ParseLineToken(raw string) (*LineToken, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, nil
	}
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == Separator || strings.ContainsRune(FlagAlphabet, r) {
			continue
		}
		return nil, &InvalidCharError{Token: text, Char: r}
	}
	if n := strings.Count(text, string(Separator)); n > 1 {
		return nil, &SeparatorError{Token: text, Count: n}
	}
	tok, err := tokenParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("line %q must start with a column number: %w", text, err)
	}
	return tok, nil
}
