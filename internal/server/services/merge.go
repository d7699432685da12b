package services

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// ConvertFloats walks v and replaces every float64 and json.Number with a
// decimal.Decimal, descending into slices and maps.
func ConvertFloats(v any) any {
	return models.Walk(v, models.ToDecimal)
}

func toDecimalHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return nil, fmt.Errorf("cannot use %T as a number", data)
	}
}

// merge overwrites the fields of dst named by the keys of patch that are
// also in allowed. Keys outside allowed are dropped silently. Slices are
// replaced, not appended to.
func merge(dst any, patch map[string]any, allowed []string) error {
	filtered := make(map[string]any, len(allowed))
	for _, k := range allowed {
		if v, ok := patch[k]; ok {
			filtered[k] = v
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(toDecimalHook),
		ZeroFields: true,
		Result:     dst,
		TagName:    "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(filtered)
}

// decodeObject parses body as a JSON object. Numbers are kept as
// json.Number so no precision is lost before they reach a decimal.
func decodeObject(body string) (map[string]any, error) {
	var m map[string]any
	d := json.NewDecoder(strings.NewReader(body))
	d.UseNumber()
	if err := d.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("body is not a JSON object")
	}
	return m, nil
}
