package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiplyComplex(t *testing.T) {
	assert.InDelta(t, 40, MultiplyComplex(10, "2(0.5);3(1)"), 1e-9)
	assert.Equal(t, 0.0, MultiplyComplex(10, "0"))
	assert.InDelta(t, 25, MultiplyComplex(10, "2,5(1)"), 1e-9)
	assert.InDelta(t, 10, MultiplyComplex(10, "1(1);broken"), 1e-9)
}

func TestMultiplyNormalizesDecimalComma(t *testing.T) {
	assert.InDelta(t, 5.25, Multiply(1.5, "1;2,5"), 1e-9)
	assert.Equal(t, 0.0, Multiply(2, ""))
	assert.Equal(t, 0.0, Multiply(2, "0"))
}

func TestDivideSkipsZeroEntries(t *testing.T) {
	assert.InDelta(t, 35, Divide(50, "2;0;5"), 1e-9)
	assert.Equal(t, 0.0, Divide(10, "0"))
}

func TestLoadRatio(t *testing.T) {
	assert.InDelta(t, 483.3333, LoadRatio(300, 500, 100, 600), 1e-4)
	assert.Equal(t, 0.0, LoadRatio(300, 500, 100, 0))
}

func TestLookupAndFlag(t *testing.T) {
	table := map[string]float64{"a": 3}
	assert.Equal(t, 3.0, Lookup(table, "a"))
	assert.Equal(t, 0.0, Lookup(table, "missing"))
	assert.Equal(t, 7.0, Flag(true, 7))
	assert.Equal(t, 0.0, Flag(false, 7))
	assert.Equal(t, 0.0, PerShare(10, 0))
	assert.Equal(t, 20.0, PerShare(10, 0.5))
}

func TestRound2HalfEven(t *testing.T) {
	assert.Equal(t, 0.12, Round2(0.125))
	assert.Equal(t, 0.38, Round2(0.375))
	assert.Equal(t, 1.23, Round2(1.234))
}

func TestParseFloatList(t *testing.T) {
	values, err := ParseFloatList("1;2,5")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5}, values)

	values, err = ParseFloatList("")
	require.NoError(t, err)
	assert.Empty(t, values)

	for _, bad := range []string{"1;a", "1;;2", "-1", "NaN"} {
		_, err := ParseFloatList(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseIntList(t *testing.T) {
	values, err := ParseIntList("1; 2;3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)

	for _, bad := range []string{"1.5", "x", "-2", "1;"} {
		_, err := ParseIntList(bad)
		assert.Error(t, err, bad)
	}
}

func TestParsePairs(t *testing.T) {
	pairs, err := ParsePairs("2(0.5);3(1)")
	require.NoError(t, err)
	assert.Equal(t, []Pair{{Value: 2, Weight: 0.5}, {Value: 3, Weight: 1}}, pairs)

	pairs, err = ParsePairs("0")
	require.NoError(t, err)
	assert.Empty(t, pairs)

	for _, bad := range []string{"2(0.5", "2", "(1)", "2(1)(3)", "2(x)", "1(1);"} {
		_, err := ParsePairs(bad)
		assert.Error(t, err, bad)
	}
}
