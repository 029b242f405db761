// Package workspace builds the field service operations workspace: a pure,
// synchronous projection of raw order, event, and provider rows into a
// risk-scored, metrics-enriched operational view split by viewing role.
//
// Everything in this package is a function of (now, requesting user, rows);
// it performs no I/O and reads no clocks, so identical inputs always produce
// identical output.
package workspace

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Value is a loosely typed scalar column: absent, raw text, or an already
// decoded value. Upstream rows store numbers both as SQL numerics and as
// free text, so every numeric read goes through the same coercion.
type Value struct {
	text    string
	decoded any
	present bool
}

// Text wraps a raw text column value.
func Text(s string) Value {
	return Value{text: s, present: true}
}

// Number wraps a numeric column value.
func Number(f float64) Value {
	return Value{decoded: f, present: true}
}

// Int64 wraps an integer column value.
func Int64(i int64) Value {
	return Value{decoded: i, present: true}
}

// Decoded wraps an already decoded value (e.g. from a JSON document).
func Decoded(v any) Value {
	if v == nil {
		return Value{}
	}
	return Value{decoded: v, present: true}
}

// IsZero reports whether the column was absent.
func (v Value) IsZero() bool { return !v.present }

// Float coerces the value to a finite float. Non-numeric and non-finite
// values yield nil.
func (v Value) Float() *float64 {
	if !v.present {
		return nil
	}

	var f float64
	switch typed := v.decoded.(type) {
	case float64:
		f = typed
	case float32:
		f = float64(typed)
	case int:
		f = float64(typed)
	case int64:
		f = float64(typed)
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		return parseFloatText(typed)
	case nil:
		return parseFloatText(v.text)
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ID coerces the value to a positive integer identity.
// Rows whose identity cannot be parsed are skipped by the normalizer.
func (v Value) ID() (int64, bool) {
	f := v.Float()
	if f == nil {
		return 0, false
	}
	id := int64(*f)
	if float64(id) != *f || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseFloatText(s string) *float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Blob is a JSON document column that may arrive as encoded text, as an
// already decoded object/array, or not at all. Malformed text degrades to
// the empty object/list rather than failing the row.
type Blob struct {
	raw     string
	decoded any
	present bool
}

// BlobText wraps a JSON text column.
func BlobText(s string) Blob {
	return Blob{raw: s, present: strings.TrimSpace(s) != ""}
}

// BlobValue wraps an already decoded JSON value.
func BlobValue(v any) Blob {
	if v == nil {
		return Blob{}
	}
	return Blob{decoded: v, present: true}
}

func (b Blob) value() any {
	if !b.present {
		return nil
	}
	if b.decoded != nil {
		return b.decoded
	}

	var out any
	if err := json.Unmarshal([]byte(b.raw), &out); err != nil {
		return nil
	}
	return out
}

// Object resolves the blob to a map, falling back to an empty map.
func (b Blob) Object() map[string]any {
	if obj, ok := b.value().(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

// List resolves the blob to a slice, falling back to an empty slice.
func (b Blob) List() []any {
	if list, ok := b.value().([]any); ok {
		return list
	}
	return []any{}
}

// coerceStringList accepts a real array, a JSON-array-looking string, a
// comma-separated string, or a generic object (values stringified), trims
// each element, and drops empty entries.
func coerceStringList(v any) []string {
	switch typed := v.(type) {
	case nil:
		return []string{}
	case []string:
		return trimList(typed)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, stringify(item))
		}
		return trimList(out)
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return []string{}
		}
		if strings.HasPrefix(trimmed, "[") {
			var list []any
			if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
				return coerceStringList(list)
			}
		}
		return trimList(strings.Split(trimmed, ","))
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := make([]string, 0, len(keys))
		for _, key := range keys {
			out = append(out, stringify(typed[key]))
		}
		return trimList(out)
	default:
		return []string{}
	}
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func stringify(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case json.Number:
		return typed.String()
	case bool:
		return strconv.FormatBool(typed)
	case nil:
		return ""
	default:
		return ""
	}
}

// OrderRow mirrors a raw service order row as returned by the relational
// query joining orders, customers, and embedded provider columns.
type OrderRow struct {
	ID             Value
	Reference      string
	CustomerID     Value
	CustomerUserID Value
	ProviderID     Value
	ProviderUserID Value
	Status         string
	Priority       string
	ServiceType    string
	Summary        string
	RequestedAt    *time.Time
	ScheduledAt    *time.Time
	UpdatedAt      *time.Time
	EtaMinutes     Value
	SLAMinutes     Value
	DistanceKm     Value
	Lat            Value
	Lng            Value
	LocationLabel  string
	Address        Blob
	Metadata       Blob

	CustomerFirstName string
	CustomerLastName  string
	CustomerEmail     string

	// Provider carries the provider columns embedded in the order row.
	// A zero ProviderRow means the join produced no provider.
	Provider ProviderRow
}

// EventRow mirrors a raw service event row.
type EventRow struct {
	ID         Value
	OrderID    Value
	Type       string
	Status     string
	Notes      string
	Author     string
	OccurredAt *time.Time
	Metadata   Blob
}

// ProviderRow mirrors a raw provider row, either embedded in an order row
// or taken from the standalone roster query.
type ProviderRow struct {
	ID                Value
	UserID            Value
	Name              string
	Email             string
	Phone             string
	Status            string
	Specialties       Blob
	Rating            Value
	LastCheckInAt     *time.Time
	Lat               Value
	Lng               Value
	LocationLabel     string
	LocationUpdatedAt *time.Time
	Metadata          Blob
}
