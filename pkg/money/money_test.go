package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	m, err := FromString("1000.50")
	require.NoError(t, err)
	assert.Equal(t, "1000.50", m.String())

	m, err = FromString("0")
	require.NoError(t, err)
	assert.True(t, m.IsZero())
	assert.Equal(t, "0.00", m.String())

	_, err = FromString("12.345")
	assert.Error(t, err, "more than two decimal places must be rejected")

	_, err = FromString("abc")
	assert.Error(t, err)
}

func TestArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 is the classic binary float trap.
	a, _ := FromString("0.10")
	b, _ := FromString("0.20")
	sum := a.Add(b)
	expected, _ := FromString("0.30")
	assert.True(t, sum.Equal(expected), "got %s", sum)

	total, _ := FromString("1000.00")
	paid, _ := FromString("400.00")
	due := total.Sub(paid)
	assert.Equal(t, "600.00", due.String())
	assert.True(t, paid.Add(due).Equal(total))
}

func TestComparisons(t *testing.T) {
	small, _ := FromString("99.99")
	big, _ := FromString("100.00")

	assert.True(t, small.LessThan(big))
	assert.True(t, big.GreaterThan(small))
	assert.Equal(t, -1, small.Cmp(big))
	assert.Equal(t, 0, big.Cmp(big))

	neg := Zero.Sub(small)
	assert.True(t, neg.IsNegative())
	assert.True(t, big.IsPositive())
}

func TestJSONRoundTrip(t *testing.T) {
	m, _ := FromString("1234.05")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"1234.05"`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equal(decoded))

	// Bare numbers are accepted too.
	require.NoError(t, json.Unmarshal([]byte(`250.5`), &decoded))
	assert.Equal(t, "250.50", decoded.String())
}

func TestScanValue(t *testing.T) {
	m, _ := FromString("42.42")
	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "42.42", v)

	var scanned Money
	require.NoError(t, scanned.Scan("42.42"))
	assert.True(t, m.Equal(scanned))

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())
}
