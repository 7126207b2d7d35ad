package introspection

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// printDefault renders an Argument/InputField's Default the way SDL
// would print it back (§3's "default distinguishes absent from
// explicit null"), for __InputValue.defaultValue. Returns nil when no
// default was declared at all.
func printDefault(d typesystem.Default) interface{} {
	if !d.HasValue {
		return nil
	}
	return printValue(d.Value)
}

func printValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case string:
		return strconv.Quote(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []interface{}:
		out := "["
		for i, item := range val {
			if i > 0 {
				out += ", "
			}
			out += printValue(item)
		}
		return out + "]"
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := "{"
		for i, k := range keys {
			if i > 0 {
				out += ", "
			}
			out += fmt.Sprintf("%s: %s", k, printValue(val[k]))
		}
		return out + "}"
	default:
		return fmt.Sprintf("%v", val)
	}
}
