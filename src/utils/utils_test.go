package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	v, ok := ParseFloat("57400.5")
	assert.True(t, ok)
	assert.InDelta(t, 57400.5, v, 1e-9)

	v, ok = ParseFloat("")
	assert.True(t, ok)
	assert.Zero(t, v)

	_, ok = ParseFloat("abc")
	assert.False(t, ok)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.True(t, IsFinite(-57400))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "10", FormatQty(10))
	assert.Equal(t, "57400.5", FormatQty(57400.5))
	assert.Equal(t, "0.001", FormatQty(0.001))
}

func TestUTCTimestamp(t *testing.T) {
	ts := time.Date(2019, 12, 20, 14, 30, 5, 123_000_000, time.UTC)
	assert.Equal(t, "20191220-14:30:05.123", UTCTimestamp(ts))
}
