package pricebook

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// FallbackToken replaces missing values and unresolved {placeholders} so
// SKU derivation is total: every selection yields a brace-free string.
const FallbackToken = "NA"

var placeholderRe = regexp.MustCompile(`\{[^{}]*\}`)

// BuildSKU derives the SKU for a selection. If the pricebook carries a
// sku_map and it contains the selection's canonical key, that literal
// override wins and formatting is bypassed entirely (legacy codes that
// the format scheme cannot express). Otherwise the sku.format template is
// filled token by token and any unresolved placeholder becomes "NA".
func BuildSKU(pb *Pricebook, sel Selection) string {
	if len(pb.SKUMap) > 0 {
		if override, ok := pb.SKUMap[CanonicalKey(pb, sel)]; ok {
			return override
		}
	}

	format := pb.SKU.Format
	if format == "" {
		format = DefaultSKUFormat
	}
	prefix := pb.SKU.Prefix
	if prefix == "" {
		prefix = DefaultSKUPrefix
	}

	orientation := sel.Orientation
	if code, ok := pb.SKU.Code("orientation", sel.Orientation); ok {
		orientation = code
	}

	tokens := map[string]string{
		"prefix":      SanitizeToken(prefix),
		"orientation": SanitizeToken(orientation),
		"size":        SanitizeToken(sel.Size),
	}
	for _, add := range pb.Adds {
		tokens[add.Key] = SanitizeToken(addToken(pb, add, sel))
	}

	out := format
	for name, value := range tokens {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return placeholderRe.ReplaceAllString(out, FallbackToken)
}

// addToken resolves one add's SKU token before sanitization. Flat adds
// translate the stringified boolean through the codes table (default
// TRUE/FALSE); enumerated adds translate the chosen label (default the
// raw label).
func addToken(pb *Pricebook, add Add, sel Selection) any {
	val, chosen := sel.Option(add.Key)
	if add.IsFlat() {
		boolStr := "false"
		if chosen && Truthy(val) {
			boolStr = "true"
		}
		if code, ok := pb.SKU.Code(add.Key, boolStr); ok {
			return code
		}
		return strings.ToUpper(boolStr)
	}
	if !chosen || val == nil {
		return nil
	}
	label := rawString(val)
	if code, ok := pb.SKU.Code(add.Key, label); ok {
		return code
	}
	return label
}

// CanonicalKey builds the sku_map lookup key for a selection:
// orientation|size|key1:value1|key2:value2|... with adds in their
// declared order and raw stringified values.
func CanonicalKey(pb *Pricebook, sel Selection) string {
	parts := make([]string, 0, 2+len(pb.Adds))
	parts = append(parts, sel.Orientation, sel.Size)
	for _, add := range pb.Adds {
		val, _ := sel.Option(add.Key)
		parts = append(parts, add.Key+":"+rawString(val))
	}
	return strings.Join(parts, "|")
}

// SanitizeToken normalizes a token value for SKU use: stringify
// (missing/nil becomes "NA"), strip whitespace, uppercase, and drop any
// character outside [A-Z0-9-]. Idempotent.
func SanitizeToken(v any) string {
	if v == nil {
		return FallbackToken
	}
	s := rawString(v)
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if unicode.IsSpace(r) {
			continue
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// OptionString returns the raw stringified selection value for an add
// key, as recorded in draft-order custom attributes.
func (s Selection) OptionString(key string) string {
	v, _ := s.Option(key)
	return rawString(v)
}

// rawString stringifies a raw selection value the way it appears in
// canonical keys and custom attributes. Missing values become "".
func rawString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
