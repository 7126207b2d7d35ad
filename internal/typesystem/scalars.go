package typesystem

import (
	"fmt"
	"math"
	"strconv"
)

// Built-in scalars (§4.4): Int (int32 range), Float (finite double),
// String, Boolean, ID (string or integer coerced to string).
var (
	Int     = &Scalar{Name: "Int", Description: "The `Int` scalar type represents non-fractional signed whole numeric values.", Serialize: serializeInt, ParseValue: parseValueInt, ParseLiteral: parseLiteralInt}
	Float   = &Scalar{Name: "Float", Description: "The `Float` scalar type represents signed double-precision fractional values.", Serialize: serializeFloat, ParseValue: parseValueFloat, ParseLiteral: parseLiteralFloat}
	String  = &Scalar{Name: "String", Description: "The `String` scalar type represents textual data.", Serialize: serializeString, ParseValue: parseValueString, ParseLiteral: parseLiteralString}
	Boolean = &Scalar{Name: "Boolean", Description: "The `Boolean` scalar type represents `true` or `false`.", Serialize: serializeBoolean, ParseValue: parseValueBoolean, ParseLiteral: parseLiteralBoolean}
	ID      = &Scalar{Name: "ID", Description: "The `ID` scalar type represents a unique identifier.", Serialize: serializeID, ParseValue: parseValueID, ParseLiteral: parseLiteralID}
)

func serializeInt(value interface{}) (interface{}, error) {
	n, ok := toInt64(value)
	if !ok {
		return nil, fmt.Errorf("Int cannot represent non-integer value: %v", value)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, fmt.Errorf("Int cannot represent value outside 32-bit range: %v", value)
	}
	return int(n), nil
}

func parseValueInt(value interface{}) (interface{}, error) { return serializeInt(value) }

func parseLiteralInt(value interface{}, _ map[string]interface{}) (interface{}, error) {
	return serializeInt(value)
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v == math.Trunc(v) {
			return int64(v), true
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func serializeFloat(value interface{}) (interface{}, error) {
	f, ok := toFloat64(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("Float cannot represent non numeric value: %v", value)
	}
	return f, nil
}

func parseValueFloat(value interface{}) (interface{}, error) { return serializeFloat(value) }

func parseLiteralFloat(value interface{}, _ map[string]interface{}) (interface{}, error) {
	return serializeFloat(value)
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func serializeString(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool, int, int32, int64, float64, float32:
		return fmt.Sprintf("%v", v), nil
	default:
		return nil, fmt.Errorf("String cannot represent value: %v", value)
	}
}

func parseValueString(value interface{}) (interface{}, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("String cannot represent a non string value: %v", value)
	}
	return s, nil
}

func parseLiteralString(value interface{}, _ map[string]interface{}) (interface{}, error) {
	return parseValueString(value)
}

func serializeBoolean(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	default:
		return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %v", value)
	}
}

func parseValueBoolean(value interface{}) (interface{}, error) { return serializeBoolean(value) }

func parseLiteralBoolean(value interface{}, _ map[string]interface{}) (interface{}, error) {
	return serializeBoolean(value)
}

func serializeID(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int, int32, int64:
		return fmt.Sprintf("%v", v), nil
	default:
		return nil, fmt.Errorf("ID cannot represent value: %v", value)
	}
}

func parseValueID(value interface{}) (interface{}, error) {
	switch value.(type) {
	case string, int, int32, int64:
		return serializeID(value)
	default:
		return nil, fmt.Errorf("ID cannot represent value: %v", value)
	}
}

func parseLiteralID(value interface{}, _ map[string]interface{}) (interface{}, error) {
	return parseValueID(value)
}

// BuiltInScalars lists the five always-present scalars, for schema
// construction to index alongside user types.
func BuiltInScalars() []*Scalar { return []*Scalar{Int, Float, String, Boolean, ID} }
