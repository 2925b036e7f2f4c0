package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTemplate(t *testing.T, columns int, tokens ...string) Template {
	t.Helper()
	tmpl, err := ParseTemplate(tokens, columns)
	require.NoError(t, err)
	return tmpl
}

func TestResolve_EllipsisWithoutOverflow(t *testing.T) {
	cfg := testConfig()
	cfg.TrailingEllipsis = true
	tmpl := mustTemplate(t, 2, "1b", "", "2")

	plan, err := Resolve(cfg, tmpl, [][]string{{"Alice", "Wonderland", "Extra"}, nil, {"x"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice…", "", "x"}, plan.Texts())
	assert.Equal(t, FontRef{Face: "Test", Bold: true}, plan[0].Font)
}

func TestResolve_OverflowThenEllipsis(t *testing.T) {
	cfg := testConfig()
	cfg.TrailingEllipsis = true
	cfg.OverflowIntoSpaces = true
	tmpl := mustTemplate(t, 2, "1b", "", "2")

	plan, err := Resolve(cfg, tmpl, [][]string{{"Alice", "Wonderland", "Extra"}, nil, {"x"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Wonderland…", "x"}, plan.Texts())
	// 溢出文本沿用来源行的样式
	assert.True(t, plan[1].Font.Bold)
}

func TestResolve_OverflowWithoutEllipsisDropsRest(t *testing.T) {
	cfg := testConfig()
	cfg.OverflowIntoSpaces = true
	tmpl := mustTemplate(t, 1, "1", "", "")

	plan, err := Resolve(cfg, tmpl, [][]string{{"a", "b", "c", "d"}, nil, nil})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, plan.Texts())
}

func TestResolve_NoCascadeIntoBoundSlot(t *testing.T) {
	cfg := testConfig()
	cfg.TrailingEllipsis = true
	cfg.OverflowIntoSpaces = true
	tmpl := mustTemplate(t, 2, "1", "2", "")

	// 第二行绑定了列但内容为空，仍然阻止溢出
	plan, err := Resolve(cfg, tmpl, [][]string{{"first", "second"}, {""}, nil})
	require.NoError(t, err)
	assert.Equal(t, []string{"first…", "", ""}, plan.Texts())
	assert.Nil(t, plan[1])
	assert.Nil(t, plan[2])
}

func TestResolve_QuoteIsKeptAfterEllipsis(t *testing.T) {
	cfg := testConfig()
	cfg.TrailingEllipsis = true
	tmpl := mustTemplate(t, 1, "1")

	plan, err := Resolve(cfg, tmpl, [][]string{{"He said", `"hi"`}})
	require.NoError(t, err)
	assert.Equal(t, `He said…"`, plan[0].Text)

	plan, err = Resolve(cfg, tmpl, [][]string{{"She said", "“bye”  "}})
	require.NoError(t, err)
	assert.Equal(t, "She said…”", plan[0].Text)

	// 左弯引号不补
	plan, err = Resolve(cfg, tmpl, [][]string{{"open", "“quote"}})
	require.NoError(t, err)
	assert.Equal(t, "open…", plan[0].Text)
}

func TestResolve_EmptyCellLeavesSlotEmpty(t *testing.T) {
	cfg := testConfig()
	cfg.TrailingEllipsis = true
	cfg.OverflowIntoSpaces = true
	tmpl := mustTemplate(t, 2, "1", "", "2u")

	plan, err := Resolve(cfg, tmpl, [][]string{{""}, nil, {"tail"}})
	require.NoError(t, err)
	assert.Nil(t, plan[0])
	assert.Nil(t, plan[1])
	require.NotNil(t, plan[2])
	assert.True(t, plan[2].Underline)
}

func TestResolve_SmallAndRightAlignStyles(t *testing.T) {
	cfg := testConfig()
	tmpl := mustTemplate(t, 1, "1sr")

	plan, err := Resolve(cfg, tmpl, [][]string{{"x"}})
	require.NoError(t, err)
	assert.Equal(t, cfg.FontSizeSmall, plan[0].Size)
	assert.True(t, plan[0].RightAlign)
}

func TestResolve_LengthMismatch(t *testing.T) {
	tmpl := mustTemplate(t, 1, "1", "")
	_, err := Resolve(testConfig(), tmpl, [][]string{{"x"}})
	assert.Error(t, err)
}

func TestResolve_EachBlankSlotReceivesAtMostOneLine(t *testing.T) {
	cfg := testConfig()
	cfg.TrailingEllipsis = true
	cfg.OverflowIntoSpaces = true
	tokens := []string{"1", "", "2", "", "", "3", ""}
	tmpl := mustTemplate(t, 3, tokens...)

	long := []string{"l1", "l2", "l3", "l4", "l5"}
	wrapped := make([][]string, len(tmpl))
	for i, spec := range tmpl {
		if !spec.Blank() {
			wrapped[i] = long
		}
	}
	plan, err := Resolve(cfg, tmpl, wrapped)
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l2…", "l1", "l2", "l3…", "l1", "l2…"}, plan.Texts())
}

func TestCommit_CollisionFailsWithoutOverwriting(t *testing.T) {
	plan := make(RenderPlan, 3)
	claimed := make([]bool, 3)
	first := SlotText{Font: FontRef{Face: "Test", Bold: true}, Size: 10}
	second := SlotText{Font: FontRef{Face: "Test"}, Size: 8}

	require.NoError(t, commit(plan, claimed, 0, []placement{{slot: 0, text: "a"}, {slot: 1, text: "b"}}, first))

	// 第 3 行的溢出撞上已被第 1 行占用的行位 2
	err := commit(plan, claimed, 2, []placement{{slot: 2, text: "c"}, {slot: 1, text: "d"}}, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotCollision)
	assert.Contains(t, err.Error(), "第 3 行")

	assert.Equal(t, []string{"a", "b", ""}, plan.Texts())
	assert.Equal(t, first.Font, plan[1].Font)
	assert.False(t, claimed[2])
}

func TestCommit_EmptyTextClaimsSlot(t *testing.T) {
	plan := make(RenderPlan, 2)
	claimed := make([]bool, 2)
	require.NoError(t, commit(plan, claimed, 0, []placement{{slot: 0, text: ""}}, SlotText{}))
	assert.Nil(t, plan[0])

	err := commit(plan, claimed, 1, []placement{{slot: 0, text: "x"}}, SlotText{})
	assert.ErrorIs(t, err, ErrSlotCollision)
}
