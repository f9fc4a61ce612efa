// Package normalize converts records received from the backend or loaded from
// the local cache into canonical models.
//
// All functions are pure. Records that cannot be normalized are dropped and
// reported as *MalformedRecordError, they never fail a whole batch.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pesapots/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RawRecord is a record as decoded from JSON. Numbers are json.Number when
// decoded with Decode.
type RawRecord map[string]any

// Decode decodes a response body. It accepts a list of records, an object with
// a "results" list, or a single record.
func Decode(body []byte) ([]RawRecord, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []RawRecord{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
	}

	switch t := v.(type) {
	case nil:
		return []RawRecord{}, nil
	case []any:
		return records(t), nil
	case map[string]any:
		results, ok := t["results"]
		if !ok {
			return []RawRecord{t}, nil
		}

		list, ok := results.([]any)
		if !ok {
			return nil, ErrUnexpectedPayload
		}
		return records(list), nil
	}

	return nil, ErrUnexpectedPayload
}

// DecodeOne decodes a body that contains exactly one record.
func DecodeOne(body []byte) (RawRecord, error) {
	raws, err := Decode(body)
	if err != nil {
		return nil, err
	}

	if len(raws) != 1 {
		return nil, fmt.Errorf("%w: expected one record, got %d", ErrUnexpectedPayload, len(raws))
	}

	return raws[0], nil
}

// records converts a decoded list. Elements that are not objects become nil
// records, which normalize to a MalformedRecordError.
func records(list []any) []RawRecord {
	raws := make([]RawRecord, 0, len(list))
	for _, item := range list {
		m, _ := item.(map[string]any)
		raws = append(raws, m)
	}
	return raws
}

// lookup returns the value of the first alias present in the record.
func (r RawRecord) lookup(aliases []string) (any, bool) {
	for _, a := range aliases {
		if v, ok := r[a]; ok {
			return v, true
		}
	}
	return nil, false
}

func (r RawRecord) id() (string, bool) {
	v, ok := r["id"]
	if !ok || v == nil {
		return "", false
	}

	var id string
	switch t := v.(type) {
	case string:
		id = strings.TrimSpace(t)
	case json.Number:
		id = t.String()
	case float64:
		id = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		id = strconv.Itoa(t)
	case int64:
		id = strconv.FormatInt(t, 10)
	default:
		return "", false
	}

	return id, id != ""
}

// toDecimal coerces JSON numbers, floats, integers and numeric strings.
// Thousands separators in strings are ignored. nil and "" are zero.
func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return t, nil
	case json.Number:
		return decimal.NewFromString(t.String())
	case float64:
		return decimal.NewFromFloat(t), nil
	case float32:
		return decimal.NewFromFloat32(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(s)
	}

	return decimal.Zero, fmt.Errorf("%T is not a number", v)
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case map[string]any:
		// Related resources like categories are sometimes sent as objects
		if name, ok := t["name"]; ok {
			return toString(name)
		}
		return ""
	}

	return strings.TrimSpace(fmt.Sprint(v))
}

// toCategory returns the category name. Older clients stored names like
// "Food & Dining" for "Food and Dining".
func toCategory(v any) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(toString(v), "&", " and ")), " ")
}

func toBool(v any) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, nil
	case bool:
		return t, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return false, nil
		}
		return strconv.ParseBool(strings.TrimSpace(t))
	case json.Number:
		return t.String() != "0", nil
	case float64:
		return t != 0, nil
	case int:
		return t != 0, nil
	}

	return false, fmt.Errorf("%T is not a boolean", v)
}

func toDate(v any) (types.Date, error) {
	s := toString(v)
	if s == "" {
		return types.Date{}, nil
	}
	return types.ParseDate(s)
}

func toEnum(v any) string {
	return strings.ToLower(toString(v))
}
