package pricebook

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ComputePrice derives the unit price for a selection. The base price is
// base[orientation][size] (absent combination contributes 0, which the
// handler rejects via the positivity check). Each declared add then
// contributes: a flat add-on when the selection's value is truthy, an
// enumerated add when the chosen label has a declared price (unmatched
// labels contribute 0). The result is rounded half-up at the cent.
func ComputePrice(pb *Pricebook, sel Selection) float64 {
	total := decimal.Zero
	if sizes, ok := pb.Base[sel.Orientation]; ok {
		if base, ok := sizes[sel.Size]; ok {
			total = decimal.NewFromFloat(base)
		}
	}

	for _, add := range pb.Adds {
		val, chosen := sel.Option(add.Key)
		if add.IsFlat() {
			if chosen && Truthy(val) {
				total = total.Add(decimal.NewFromFloat(*add.Flat))
			}
			continue
		}
		if !chosen {
			continue
		}
		label, ok := val.(string)
		if !ok {
			label = rawString(val)
		}
		if price, found := add.Choices[label]; found {
			total = total.Add(decimal.NewFromFloat(price))
		}
	}

	f, _ := total.Round(2).Float64()
	return f
}

// FormatPrice renders a computed price with exactly two decimal places,
// the form Shopify expects for originalUnitPrice.
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).StringFixed(2)
}

// Truthy reports whether a selection value counts as "selected" for a
// flat add-on: JSON true, nonzero numbers, and non-empty strings other
// than "false"/"0".
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s != "" && s != "false" && s != "0"
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}
