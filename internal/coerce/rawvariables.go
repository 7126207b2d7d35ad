package coerce

import (
	"encoding/json"
	"strconv"

	"github.com/buger/jsonparser"
)

// ScanRawVariables extracts only the named variable keys out of a raw
// `variables` JSON payload without a full unmarshal into
// map[string]interface{}, useful when a request carries many variables
// but a given operation only references a handful of them. Nested
// object/array values still go through json.Unmarshal (their raw byte
// span is valid standalone JSON); scalars are decoded directly since
// jsonparser.Get strips the surrounding quotes off strings.
func ScanRawVariables(payload []byte, names []string) (map[string]interface{}, error) {
	if len(payload) == 0 {
		return map[string]interface{}{}, nil
	}
	out := make(map[string]interface{}, len(names))
	for _, name := range names {
		raw, dataType, _, err := jsonparser.Get(payload, name)
		if err == jsonparser.KeyPathNotFoundError {
			continue
		}
		if err != nil {
			return nil, err
		}
		v, err := decodeScalarOrStructured(raw, dataType)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// decodeScalarOrStructured converts one jsonparser.Get result into the
// same Go value encoding/json would produce for it, without re-parsing
// bytes jsonparser has already stripped of their JSON-string quoting.
func decodeScalarOrStructured(raw []byte, dataType jsonparser.ValueType) (interface{}, error) {
	switch dataType {
	case jsonparser.String:
		return string(raw), nil
	case jsonparser.Number:
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case jsonparser.Boolean:
		return string(raw) == "true", nil
	case jsonparser.Null:
		return nil, nil
	default:
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
