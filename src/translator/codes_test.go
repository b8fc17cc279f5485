package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideVocabulary(t *testing.T) {
	cases := []struct {
		code, name string
	}{
		{"1", "Buy"},
		{"2", "Sell"},
		{"5", "SellShort"},
		{"9", "UNKNOWN (9)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, SideName(tc.code))
	}

	code, ok := SideCode("Buy")
	assert.True(t, ok)
	assert.Equal(t, "1", code)

	_, ok = SideCode("Long")
	assert.False(t, ok)
}

func TestOrdTypeVocabulary(t *testing.T) {
	cases := []struct {
		code, name string
	}{
		{"1", "Market"},
		{"2", "Limit"},
		{"K", "Market with left over as limit"},
		{"3", "Stop Merval"},
		{"4", "Stop Limit"},
		{"Q", "UNKNOWN (Q)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, OrdTypeName(tc.code))
	}

	code, ok := OrdTypeCode("Limit")
	assert.True(t, ok)
	assert.Equal(t, "2", code)
}

func TestOrdStatusVocabulary(t *testing.T) {
	cases := []struct {
		code, name string
	}{
		{"0", "NEW"},
		{"1", "PARTIALLY FILLED"},
		{"2", "FILLED"},
		{"4", "CANCELLED"},
		{"8", "REJECTED"},
		{"9", "SUSPENDED"},
		{"7", "UNKNOWN (7)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, OrdStatusName(tc.code))
	}
}

func TestSecurityTradingStatusVocabulary(t *testing.T) {
	assert.Equal(t, "Trading Halt", SecurityTradingStatusName("2"))
	assert.Equal(t, "Resume", SecurityTradingStatusName("3"))
	assert.Equal(t, "UNKNOWN (17)", SecurityTradingStatusName("17"))
}

func TestValidMDEntryCodes(t *testing.T) {
	for _, code := range []string{"0", "1", "2", "4", "5", "6", "7", "8", "B", "C"} {
		assert.True(t, ValidMDEntryCode(code), code)
	}
	for _, code := range []string{"3", "9", "A", "x", ""} {
		assert.False(t, ValidMDEntryCode(code), code)
	}
}
