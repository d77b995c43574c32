package coerce

import (
	"encoding"
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

var timePtrType = reflect.PtrTo(timeType)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

var errType = reflect.TypeOf((*error)(nil)).Elem()

func isTimeType(candidate reflect.Type) bool {
	return candidate == timeType
}

// parseable reports whether t can be produced from text: time.Time, a scalar
// kind, or a kind exposing its own parse contract. Classification depends only
// on the type, never on a runtime value.
func (c *Coercer) parseable(t reflect.Type) bool {
	if isTimeType(t) {
		return true
	}
	return c.resolve(t) != nil
}
