package coerce

import (
	"fmt"
	"reflect"
	"strconv"
)

// asText renders a scalar value to its textual representation. The flag is
// false for nil input and for kinds with no scalar representation, which the
// coercion layers treat the same as empty text.
func asText(value interface{}) (string, bool) {
	rValue := reflect.ValueOf(value)
	if rValue.Kind() == reflect.Ptr && rValue.IsNil() {
		return "", false
	}
	switch actual := value.(type) {
	case string:
		return actual, true
	case []byte:
		return string(actual), true
	case fmt.Stringer:
		return actual.String(), true
	}
	for rValue.Kind() == reflect.Ptr {
		if rValue.IsNil() {
			return "", false
		}
		rValue = rValue.Elem()
	}
	switch rValue.Kind() {
	case reflect.String:
		return rValue.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rValue.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rValue.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rValue.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rValue.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rValue.Float(), 'f', -1, 64), true
	}
	return "", false
}
