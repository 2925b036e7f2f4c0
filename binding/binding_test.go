package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolateOutputPattern(t *testing.T) {
	vars := map[string]string{"spreadsheet-stem": "books", "label-type": "spine"}
	got := Interpolate("${spreadsheet-stem}_OUTPUT_${label-type}.pdf", vars)
	assert.Equal(t, "books_OUTPUT_spine.pdf", got)
}

func TestInterpolateKeepsUnknownNames(t *testing.T) {
	vars := map[string]string{"stem": "books"}
	assert.Equal(t, "books.pdf", Interpolate("${ stem }.pdf", vars))
	assert.Equal(t, "books_${other}", Interpolate("${stem}_${other}", vars))
	assert.Equal(t, "${x}", Interpolate("${x}", nil))
	assert.Equal(t, "${}", Interpolate("${}", vars))
}

func TestRenderReportsMissing(t *testing.T) {
	_, err := Render("${known}-${unknown}", map[string]string{"known": "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")

	out, err := Render("${known}.pdf", map[string]string{"known": "k"})
	require.NoError(t, err)
	assert.Equal(t, "k.pdf", out)
	assert.Empty(t, Unresolved(out))
}
