package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Walk rebuilds v, descending into []any and map[string]any and passing
// every other value through leaf. The input is never modified.
func Walk(v any, leaf func(any) any) any {
	switch t := v.(type) {
	case []any:
		return WalkList(t, leaf)
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Walk(e, leaf)
		}
		return out
	default:
		return leaf(v)
	}
}

// WalkList is Walk for a list. A nil list stays nil.
func WalkList(s []any, leaf func(any) any) []any {
	if s == nil {
		return nil
	}
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = Walk(e, leaf)
	}
	return out
}

// ToDecimal turns float64 and json.Number into decimal.Decimal. A
// json.Number that is not a valid decimal is left alone.
func ToDecimal(v any) any {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t)
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return t
		}
		return d
	default:
		return v
	}
}

// ToFloat turns decimal.Decimal into float64.
func ToFloat(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return v
}

// ToJSONNumber turns decimal.Decimal into json.Number so it marshals as a
// bare JSON number with full precision.
func ToJSONNumber(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return json.Number(d.String())
	}
	return v
}

func keep(v any) any { return v }
