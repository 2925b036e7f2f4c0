package layout

import (
	"testing"

	"github.com/ByLCY/labelsheet/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate_FlagsAndBlanks(t *testing.T) {
	tmpl, err := ParseTemplate([]string{"1bu", "", "2si", "3r|2"}, 3)
	require.NoError(t, err)
	require.Len(t, tmpl, 4)

	assert.Equal(t, 1, tmpl[0].Column)
	assert.True(t, tmpl[0].Style.Has(StyleBold|StyleUnderline))
	assert.False(t, tmpl[0].Style.Has(StyleItalic))
	assert.Equal(t, "bu", tmpl[0].Style.String())

	assert.True(t, tmpl[1].Blank())
	assert.Equal(t, 1, tmpl[1].Slot)

	assert.Equal(t, FontRef{Face: "Roman", Italic: true}, tmpl[2].Font("Roman"))
	assert.True(t, tmpl[2].Style.Has(StyleSmall))

	assert.Equal(t, 3, tmpl[3].Column)
	assert.True(t, tmpl[3].Style.Has(StyleRight))
	assert.Equal(t, []int{2}, tmpl[3].Ignored)

	assert.Equal(t, 3, tmpl.Bound())
}

func TestParseTemplate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		tokens []string
		target error
	}{
		{"invalid flag", []string{"1x"}, ErrInvalidFlag},
		{"too many separators", []string{"1|2|3"}, ErrTooManySeparator},
		{"column past end", []string{"4"}, ErrColumnRange},
		{"column zero", []string{"0b"}, ErrColumnRange},
		{"tail column past end", []string{"1|9"}, ErrColumnRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTemplate(tc.tokens, 3)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)
			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestParseTemplate_InvalidFlagKeepsOffendingChar(t *testing.T) {
	_, err := ParseTemplate([]string{"1", "2q"}, 2)
	var charErr *dsl.InvalidCharError
	require.ErrorAs(t, err, &charErr)
	assert.Equal(t, 'q', charErr.Char)
}

func TestParseTemplate_RejectsEmptyTemplates(t *testing.T) {
	_, err := ParseTemplate(nil, 3)
	assert.Error(t, err)

	_, err = ParseTemplate([]string{"", "  "}, 3)
	assert.Error(t, err)
}
