// Package submission coerces submitted answers of unknown wire shape into the
// canonical per-kind submission values. Clients send the same logical answer
// as a native array, a stringified JSON array, a comma-joined string, or a
// bare scalar, sometimes wrapped in an envelope object; everything here exists
// to flatten that variance before evaluation.
package submission

import (
	"encoding/json"
	"strconv"
	"strings"
)

type RawKind int

const (
	RawNull RawKind = iota
	RawArray
	RawString
	RawObject
	RawScalar
)

// RawValue is the tagged ingestion result of one submitted value. Downstream
// code switches on Kind exactly once and never re-inspects the dynamic shape.
type RawValue struct {
	Kind   RawKind
	Array  []any
	String string
	Object map[string]any
	Scalar any
}

// Ingest classifies a raw submitted value. Strings that themselves contain a
// JSON array or object are unwrapped one level, so `"[1,2]"` ingests as an
// array.
func Ingest(value any) RawValue {
	switch t := value.(type) {
	case nil:
		return RawValue{Kind: RawNull}
	case []any:
		return RawValue{Kind: RawArray, Array: t}
	case map[string]any:
		return RawValue{Kind: RawObject, Object: t}
	case json.RawMessage:
		return ingestText(string(t))
	case []byte:
		return ingestText(string(t))
	case string:
		return ingestText(t)
	case []string:
		arr := make([]any, len(t))
		for i, s := range t {
			arr[i] = s
		}
		return RawValue{Kind: RawArray, Array: arr}
	case []int:
		arr := make([]any, len(t))
		for i, n := range t {
			arr[i] = float64(n)
		}
		return RawValue{Kind: RawArray, Array: arr}
	default:
		return RawValue{Kind: RawScalar, Scalar: value}
	}
}

func ingestText(s string) RawValue {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return RawValue{Kind: RawNull}
	}
	if strings.HasPrefix(trimmed, "[") {
		var arr []any
		if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
			return RawValue{Kind: RawArray, Array: arr}
		}
	}
	if strings.HasPrefix(trimmed, "{") {
		var obj map[string]any
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			return RawValue{Kind: RawObject, Object: obj}
		}
	}
	return RawValue{Kind: RawString, String: trimmed}
}

// Strings flattens the value into a list of trimmed, non-empty strings:
// arrays element-wise, strings split on commas, scalars as a one-element
// list.
func (v RawValue) Strings() []string {
	switch v.Kind {
	case RawArray:
		out := make([]string, 0, len(v.Array))
		for _, el := range v.Array {
			if s := scalarString(el); s != "" {
				out = append(out, s)
			}
		}
		return out
	case RawString:
		parts := strings.Split(v.String, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	case RawScalar:
		if s := scalarString(v.Scalar); s != "" {
			return []string{s}
		}
	}
	return nil
}

// Ints flattens the value into a list of integers, dropping anything that is
// not numeric.
func (v RawValue) Ints() []int {
	var out []int
	for _, s := range v.Strings() {
		if n, err := strconv.Atoi(s); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// Objects returns the element objects of an array value; non-object elements
// are skipped.
func (v RawValue) Objects() []map[string]any {
	if v.Kind != RawArray {
		return nil
	}
	out := make([]map[string]any, 0, len(v.Array))
	for _, el := range v.Array {
		if obj, ok := el.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func scalarString(value any) string {
	switch t := value.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	}
	return ""
}

// fieldString reads a string field from an object trying a list of alternate
// key names, case-insensitively.
func fieldString(obj map[string]any, keys ...string) (string, bool) {
	v, ok := fieldValue(obj, keys...)
	if !ok {
		return "", false
	}
	s := scalarString(v)
	return s, s != ""
}

func fieldInt(obj map[string]any, keys ...string) (int, bool) {
	v, ok := fieldValue(obj, keys...)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func fieldValue(obj map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := obj[key]; ok && v != nil {
			return v, true
		}
	}
	for _, key := range keys {
		for k, v := range obj {
			if v != nil && strings.EqualFold(k, key) {
				return v, true
			}
		}
	}
	return nil, false
}
