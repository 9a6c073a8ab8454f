package calls

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/wudi/pdfbridge/document"
)

// decodeFields walks the top-level fields of a JSON parameter object and
// hands each one to apply. Operations reject unknown names, so a typo in a
// field surfaces as an error instead of a silently dropped setting.
func decodeFields(params []byte, apply func(name string, value json.RawMessage) error) error {
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return fmt.Errorf("cannot parse call parameters: %v", err)
	}
	for name, value := range m {
		if err := apply(name, value); err != nil {
			return err
		}
	}
	return nil
}

func errUnknownField(name string) error {
	return fmt.Errorf("Unknown data field: [%s]", name)
}

func errRequired(name string) error {
	return fmt.Errorf("Required parameter '%s' not specified", name)
}

func errInvalidValue(name string, value json.RawMessage) error {
	return fmt.Errorf("Invalid '%s' parameter specified, value: [%s]", name, bytes.TrimSpace(value))
}

func asString(name string, value json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", errInvalidValue(name, value)
	}
	return s, nil
}

func asInt64(name string, value json.RawMessage) (int64, error) {
	var n int64
	if err := json.Unmarshal(value, &n); err != nil {
		return 0, errInvalidValue(name, value)
	}
	return n, nil
}

func asFloat(name string, value json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(value, &f); err != nil {
		return 0, errInvalidValue(name, value)
	}
	return f, nil
}

// asCoord parses a page coordinate: an integer within the 16-bit range the
// wire format allows.
func asCoord(name string, value json.RawMessage) (float64, error) {
	n, err := asInt64(name, value)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 65535 {
		return 0, errInvalidValue(name, value)
	}
	return float64(n), nil
}

// asColor parses an {"r": .., "g": .., "b": ..} object with components in
// [0, 1]. Integer and real notations are both accepted.
func asColor(value json.RawMessage) (document.Color, error) {
	var c document.Color
	err := decodeFields(value, func(name string, v json.RawMessage) error {
		var comp *float64
		switch name {
		case "r":
			comp = &c.R
		case "g":
			comp = &c.G
		case "b":
			comp = &c.B
		default:
			return errUnknownField(name)
		}
		f, err := asFloat(name, v)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("Invalid RGB color element specified, value: [%s]", bytes.TrimSpace(v))
		}
		*comp = f
		return nil
	})
	return c, err
}
