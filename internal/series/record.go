package series

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// Default field names used to read values and dates out of keyed records.
const (
	DefaultValueKey = "amount"
	DefaultDateKey  = "date"
)

// Record is one raw input observation: either a bare number or a keyed
// record whose value and date are read through caller-supplied field names.
// The union is resolved exactly once, during Prepare; downstream code only
// ever sees DataPoint.
type Record struct {
	number *float64
	fields map[string]interface{}
}

// Number wraps a bare numeric observation.
func Number(v float64) Record {
	return Record{number: &v}
}

// Fields wraps a keyed record.
func Fields(m map[string]interface{}) Record {
	return Record{fields: m}
}

// IsNumber reports whether the record is a bare number.
func (r Record) IsNumber() bool {
	return r.number != nil
}

// Field returns the named field of a keyed record.
func (r Record) Field(key string) (interface{}, bool) {
	if r.fields == nil {
		return nil, false
	}
	v, ok := r.fields[key]
	return v, ok
}

// CoerceValue converts an arbitrary field value to a finite float64.
// Non-numeric, missing, or non-finite values coerce to 0; strings are parsed
// exactly via decimal before conversion so money-formatted inputs survive.
func CoerceValue(v interface{}) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return 0
		}
		f, _ = d.Float64()
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return 0
		}
		f, _ = d.Float64()
	case decimal.Decimal:
		f, _ = t.Float64()
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
