package zhuimi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// decodeObject decodes a JSON object keeping numbers as they were written.
func decodeObject(body []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var out map[string]any
	err := decoder.Decode(&out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("expected a json object, got null")
	}
	_, err = decoder.Token()
	if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after json object")
	}
	return out, nil
}

// lookup walks nested objects, ok is false if any key is missing, null, or
// not an object on the way.
func lookup(value any, keys ...string) (out any, ok bool) {
	out = value
	for _, key := range keys {
		obj, isObj := out.(map[string]any)
		if !isObj {
			return nil, false
		}
		out, ok = obj[key]
		if !ok || out == nil {
			return nil, false
		}
	}
	return out, out != nil
}

// lookupText is lookup with the value rendered as text, nil if absent.
func lookupText(value any, keys ...string) *string {
	found, ok := lookup(value, keys...)
	if !ok {
		return nil
	}
	text := display(found)
	return &text
}

func display(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}

// truthy follows the loose truthiness the site's json flags are written with.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	}
	return true
}

// isZero is true if value is the number zero.
func isZero(value any) bool {
	number, ok := value.(json.Number)
	if !ok {
		return false
	}
	f, err := number.Float64()
	return err == nil && f == 0
}
