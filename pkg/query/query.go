// Package query turns optional call arguments into query-string parameters.
//
// Every endpoint builds its parameters through [Normalize], so the same rule applies everywhere:
// a parameter is sent if and only if the caller supplied a value. Zero values such as 0, "" and
// false count as supplied. Use [Set] for arguments that are always present and [Opt] for
// arguments held in pointer fields, where nil means "not supplied".
//
//	params := query.Normalize(
//		query.Set("from", from),
//		query.Set("to", to),
//		query.Opt("distance_format", opts.DistanceFormat),
//	)
package query

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Scalar lists the value types that can be sent as a query parameter. Named types (e.g.,
// enumerations declared as `type Seat string`) are accepted through their underlying type.
type Scalar interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Param is a named value that may or may not be present.
type Param struct {
	Key     string
	Value   interface{}
	present bool
}

// Present reports whether p will be included by [Normalize].
func (p Param) Present() bool {
	return p.present
}

// Set returns a Param that is always present.
func Set[T Scalar](key string, value T) Param {
	return Param{Key: key, Value: value, present: true}
}

// Opt returns a Param that is present only if value is non-nil. The pointed-to value is copied.
func Opt[T Scalar](key string, value *T) Param {
	if value == nil {
		return Param{Key: key}
	}
	return Param{Key: key, Value: *value, present: true}
}

// Ptr returns a pointer to v. It's a convenience for populating option structs.
func Ptr[T any](v T) *T {
	return &v
}

// Values maps remote parameter names to typed values.
type Values map[string]interface{}

// Normalize collects the present parameters into Values. When a key repeats, the last present
// value wins. The result is never nil.
func Normalize(params ...Param) Values {
	values := make(Values, len(params))
	for _, p := range params {
		if p.present {
			values[p.Key] = p.Value
		}
	}
	return values
}

// Merge returns a new Values containing the entries of v followed by the present entries of
// params.
func (v Values) Merge(params ...Param) Values {
	merged := make(Values, len(v)+len(params))
	for key, value := range v {
		merged[key] = value
	}
	for _, p := range params {
		if p.present {
			merged[p.Key] = p.Value
		}
	}
	return merged
}

// Encode formats v as a URL query string sorted by key.
func (v Values) Encode() string {
	if len(v) == 0 {
		return ""
	}
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(Format(v[key])))
	}
	return b.String()
}

// Format renders a scalar the way the remote service expects: booleans as true/false, integers
// in base 10 and floats in their shortest exact decimal form.
func Format(value interface{}) string {
	if value == nil {
		return ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(value)
}
