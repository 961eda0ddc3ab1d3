package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// unsafeKeys are object keys that enable prototype-pollution style
// attacks when query values are replayed into a script environment.
// They are stripped from the top level of every decoded object.
var unsafeKeys = map[string]struct{}{
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

// Decode converts a raw query parameter string into a value.
//
// The string is parsed as JSON first. Parse failures return the raw
// string unchanged, so bare words like "hello" stay strings while
// "true", "30" and "99.99" decode to bool and float64 (encoding/json
// decodes numbers into any as float64). Decoded top-level objects are
// sanitized: keys in the unsafe denylist are dropped by copying the
// remaining keys into a fresh map, never by mutating the parsed value.
// Nested objects need no sweep since the JSON parser cannot manufacture
// inherited references.
//
// Decode never fails.
func Decode(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch parsed := v.(type) {
	case map[string]any:
		return sanitize(parsed)
	case []any, string, float64, bool, nil:
		return v
	default:
		// Unmarshaling into any only yields the shapes above; anything
		// else means the value did not come from a plain JSON parse.
		return raw
	}
}

// sanitize copies obj into a fresh map, skipping unsafe keys.
func sanitize(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		if _, bad := unsafeKeys[k]; bad {
			continue
		}
		out[k] = v
	}
	return out
}

// Encode converts a value into its query parameter string form. An
// empty result means the parameter should be deleted rather than set.
//
//   - nil encodes empty.
//   - Primitives use their canonical strconv form; an empty string
//     stays empty.
//   - Types with a native string form (time.Time and other Stringers)
//     use it rather than JSON.
//   - Everything else is marshaled as JSON. A marshal failure (cyclic
//     structure, channel, func) returns an error; the caller treats the
//     field as absent and reports the failure on its diagnostic channel.
//
// Encode never panics.
func Encode(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case fmt.Stringer:
		return val.String(), nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("codec: value not serializable: %w", err)
	}
	return string(b), nil
}
