package item

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// PriceText is a price literal as it appears in a document. It decodes from
// a string or a bare number and keeps the literal text, so 2.50 is never
// routed through float64 on the JSON path.
type PriceText string

// Parse converts the literal with ParsePrice.
func (p PriceText) Parse() (Price, error) {
	return ParsePrice(string(p))
}

// UnmarshalJSON accepts a JSON string or number.
func (p *PriceText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price must be a string or number: %w", err)
	}
	*p = PriceText(n.String())
	return nil
}

// UnmarshalTOML accepts TOML strings, integers and floats.
func (p *PriceText) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*p = PriceText(v)
	case int64:
		*p = PriceText(strconv.FormatInt(v, 10))
	case float64:
		*p = PriceText(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return fmt.Errorf("price must be a string or number, got %T", v)
	}
	return nil
}
