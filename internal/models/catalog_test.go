package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDecodesMixedScalars(t *testing.T) {
	payload := `{
		"id": "4241",
		"display_name": "Leche entera",
		"price_instructions": {
			"unit_price": "0.89",
			"unit_size": 1.0,
			"total_units": null,
			"is_pack": false
		}
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(payload), &p))

	assert.Equal(t, "4241", p.ID.String())
	assert.Equal(t, "1.0", p.PriceInstructions.UnitSize.String())
	assert.Equal(t, "", p.PriceInstructions.TotalUnits.String())
	assert.InDelta(t, 0.89, p.PriceInstructions.UnitPriceDecimal().InexactFloat64(), 1e-9)
}

func TestProductNumericID(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id": 10381}`), &p))
	assert.Equal(t, "10381", p.ID.String())
}

func TestUnitPriceDecimalUnparsable(t *testing.T) {
	for _, raw := range []string{"", "abc", "1,25"} {
		pi := PriceInstructions{UnitPrice: Scalar(raw)}
		assert.True(t, pi.UnitPriceDecimal().IsZero(), raw)
	}
}

func TestIsValidFamilyCode(t *testing.T) {
	assert.True(t, IsValidFamilyCode("A1B2"))
	assert.False(t, IsValidFamilyCode("a1b2"))
	assert.False(t, IsValidFamilyCode("A1B"))
	assert.False(t, IsValidFamilyCode("A1B2C"))
	assert.False(t, IsValidFamilyCode("A-B2"))
}
