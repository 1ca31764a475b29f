package pricebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, doc string) *Pricebook {
	t.Helper()
	pb, err := Parse([]byte(doc))
	require.NoError(t, err)
	return pb
}

func TestComputePriceFlatAdd(t *testing.T) {
	pb := mustParse(t, `{"base":{"Portrait":{"Small":10}},"adds":{"Frame":5}}`)

	sel := Selection{Orientation: "Portrait", Size: "Small", Options: map[string]any{"Frame": true}}
	assert.Equal(t, 15.00, ComputePrice(pb, sel))

	sel.Options["Frame"] = false
	assert.Equal(t, 10.00, ComputePrice(pb, sel))

	delete(sel.Options, "Frame")
	assert.Equal(t, 10.00, ComputePrice(pb, sel))
}

func TestComputePriceEnumeratedAdd(t *testing.T) {
	pb := mustParse(t, `{"base":{"Portrait":{"Small":10}},"adds":{"Color":{"Red":2,"Blue":3}}}`)

	sel := Selection{Orientation: "Portrait", Size: "Small", Options: map[string]any{"Color": "Blue"}}
	assert.Equal(t, 13.00, ComputePrice(pb, sel))

	// Unmatched choice label contributes 0
	sel.Options["Color"] = "Green"
	assert.Equal(t, 10.00, ComputePrice(pb, sel))
}

func TestComputePriceAbsentBaseCombination(t *testing.T) {
	pb := mustParse(t, `{"base":{"Portrait":{"Small":10}},"adds":{"Frame":5}}`)

	// Unknown orientation/size yields base 0; the handler rejects the
	// non-positive result downstream.
	sel := Selection{Orientation: "Landscape", Size: "Small", Options: map[string]any{}}
	assert.Equal(t, 0.00, ComputePrice(pb, sel))

	sel = Selection{Orientation: "Portrait", Size: "Huge", Options: map[string]any{"Frame": true}}
	assert.Equal(t, 5.00, ComputePrice(pb, sel))
}

func TestComputePriceRoundsHalfUpAtCent(t *testing.T) {
	pb := mustParse(t, `{"base":{"Portrait":{"Small":10.005}},"adds":{}}`)

	sel := Selection{Orientation: "Portrait", Size: "Small", Options: map[string]any{}}
	assert.Equal(t, 10.01, ComputePrice(pb, sel))
}

func TestComputePriceDeterministic(t *testing.T) {
	pb := mustParse(t, `{"base":{"Portrait":{"Small":10,"Large":25.5}},"adds":{"Frame":5,"Mat":2.25,"Color":{"Red":2,"Blue":3}}}`)
	sel := Selection{Orientation: "Portrait", Size: "Large", Options: map[string]any{"Frame": true, "Mat": true, "Color": "Red"}}

	first := ComputePrice(pb, sel)
	assert.Equal(t, 34.75, first)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, ComputePrice(pb, sel))
	}
	assert.GreaterOrEqual(t, first, 0.0)
}

func TestComputePriceTruthyStrings(t *testing.T) {
	pb := mustParse(t, `{"base":{"Portrait":{"Small":10}},"adds":{"Frame":5}}`)
	sel := Selection{Orientation: "Portrait", Size: "Small", Options: map[string]any{}}

	cases := map[any]float64{
		"true":  15.00,
		"yes":   15.00,
		"false": 10.00,
		"0":     10.00,
		"":      10.00,
		1.0:     15.00,
		0.0:     10.00,
	}
	for val, want := range cases {
		sel.Options["Frame"] = val
		assert.Equal(t, want, ComputePrice(pb, sel), "value %v", val)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "15.00", FormatPrice(15))
	assert.Equal(t, "10.50", FormatPrice(10.5))
	assert.Equal(t, "0.01", FormatPrice(0.01))
}
