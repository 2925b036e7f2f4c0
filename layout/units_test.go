package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	for _, pt := range []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000} {
		mm := pt * PtToMm
		assert.InDelta(t, pt, mm*MmToPt, 1e-9, "pt→mm→pt: in=%gpt mm=%g", pt, mm)
	}
}

func TestLengthToConversions(t *testing.T) {
	assert.InDelta(t, 25.4, Length{Value: 1, Unit: UnitIN}.ToMM(), 1e-9)
	assert.InDelta(t, 25.4, Length{Value: 2.54, Unit: UnitCM}.ToMM(), 1e-9)

	pt := Length{Value: 12, Unit: UnitPT}
	assert.InDelta(t, 12*PtToMm, pt.ToMM(), 1e-9)
	assert.Equal(t, 12.0, pt.ToPT())

	assert.InDelta(t, 10*MmToPt, Length{Value: 10, Unit: UnitMM}.ToPT(), 1e-9)
}

// 无单位数值使用默认单位（标签纸通常以英寸给出）。
func TestParseLengthDefaultUnit(t *testing.T) {
	l, err := ParseLength("2.625", UnitIN)
	require.NoError(t, err)
	assert.Equal(t, Length{Value: 2.625, Unit: UnitIN}, l)

	l, err = ParseLength(" 66.7MM ", UnitIN)
	require.NoError(t, err)
	assert.Equal(t, Length{Value: 66.7, Unit: UnitMM}, l)

	_, err = ParseLength("abc", UnitIN)
	assert.Error(t, err)
	_, err = ParseLength("", UnitIN)
	assert.Error(t, err)
}
