// Package pricebook implements the merchant pricebook schema and the pure
// price/SKU derivation over a customer selection. The pricebook is a
// merchant-authored JSON document attached to a Shopify product as a
// metafield; it is parsed and validated once per request, then everything
// downstream operates on the typed form.
package pricebook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Default SKU formatting values used when the pricebook's sku section
// omits them.
const (
	DefaultSKUFormat = "{prefix}-{orientation}-{size}"
	DefaultSKUPrefix = "SKU"
)

// Pricebook is the validated form of a merchant pricing document.
type Pricebook struct {
	Base   map[string]map[string]float64 `json:"base"`
	Adds   AddList                       `json:"adds"`
	SKU    SKUSpec                       `json:"sku"`
	SKUMap map[string]string             `json:"sku_map"`
}

// Add is one configurable option declared under "adds". Exactly one of
// Flat and Choices is set: a flat add-on is priced by a single number and
// selected by a boolean, an enumerated add maps choice labels to prices.
type Add struct {
	Key     string
	Flat    *float64
	Choices map[string]float64
}

// IsFlat reports whether the add is a flat boolean add-on.
func (a Add) IsFlat() bool {
	return a.Flat != nil
}

// AddList preserves the declared document order of the "adds" keys.
// Order matters: the sku_map canonical key and the draft order's custom
// attributes both iterate adds in declared order.
type AddList []Add

func (l *AddList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("adds must be an object")
	}

	var out AddList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("adds: unexpected key token %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("add %q: %w", key, err)
		}
		add, err := parseAdd(key, raw)
		if err != nil {
			return err
		}
		out = append(out, add)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}

func parseAdd(key string, raw json.RawMessage) (Add, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var choices map[string]float64
		if err := json.Unmarshal(trimmed, &choices); err != nil {
			return Add{}, fmt.Errorf("add %q: choice prices must be numbers: %w", key, err)
		}
		return Add{Key: key, Choices: choices}, nil
	}
	var flat float64
	if err := json.Unmarshal(trimmed, &flat); err != nil {
		return Add{}, fmt.Errorf("add %q must be a number or an object of choice prices", key)
	}
	return Add{Key: key, Flat: &flat}, nil
}

// Get returns the add declared with the given key.
func (l AddList) Get(key string) (Add, bool) {
	for _, a := range l {
		if a.Key == key {
			return a, true
		}
	}
	return Add{}, false
}

// SKUSpec is the "sku" section of the pricebook: a format template with
// {token} placeholders plus per-option code translation tables.
type SKUSpec struct {
	Format string                       `json:"format"`
	Prefix string                       `json:"prefix"`
	Codes  map[string]map[string]string `json:"codes"`
}

// Code looks up the translation code for a raw value under the given
// option key.
func (s SKUSpec) Code(option, value string) (string, bool) {
	table, ok := s.Codes[option]
	if !ok {
		return "", false
	}
	code, ok := table[value]
	return code, ok
}

// Parse decodes and validates a pricebook document. The returned
// Pricebook has SKU defaults applied, so callers never deal with empty
// format/prefix.
func Parse(data []byte) (*Pricebook, error) {
	var pb Pricebook
	if err := json.Unmarshal(data, &pb); err != nil {
		return nil, fmt.Errorf("parse pricebook: %w", err)
	}
	for orientation, sizes := range pb.Base {
		for size, price := range sizes {
			if price < 0 {
				return nil, fmt.Errorf("base[%s][%s]: price must be non-negative, got %v", orientation, size, price)
			}
		}
	}
	for _, add := range pb.Adds {
		if add.Flat != nil && *add.Flat < 0 {
			return nil, fmt.Errorf("adds[%s]: price must be non-negative, got %v", add.Key, *add.Flat)
		}
		for label, price := range add.Choices {
			if price < 0 {
				return nil, fmt.Errorf("adds[%s][%s]: price must be non-negative, got %v", add.Key, label, price)
			}
		}
	}
	if pb.SKU.Format == "" {
		pb.SKU.Format = DefaultSKUFormat
	}
	if pb.SKU.Prefix == "" {
		pb.SKU.Prefix = DefaultSKUPrefix
	}
	return &pb, nil
}

// Selection is the customer's chosen configuration. Orientation and Size
// are lifted out of the JSON object; every other key lands in Options
// keyed by the add it selects.
type Selection struct {
	Orientation string
	Size        string
	Options     map[string]any
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if v, ok := m["orientation"].(string); ok {
		s.Orientation = v
	}
	if v, ok := m["size"].(string); ok {
		s.Size = v
	}
	delete(m, "orientation")
	delete(m, "size")
	s.Options = m
	return nil
}

// Option returns the raw selection value for an add key.
func (s Selection) Option(key string) (any, bool) {
	v, ok := s.Options[key]
	return v, ok
}
