package coerce

import "reflect"

// As applies the generic entry point dispatch against a statically known
// target kind. The error mirrors Coerce: only reference kind conversion can
// fail, value kinds collapse to T's zero value instead.
func As[T any](c *Coercer, value interface{}) (T, error) {
	target := reflect.TypeOf((*T)(nil)).Elem()
	ret, err := c.Coerce(value, target)
	if err != nil {
		var zero T
		return zero, err
	}
	return ret.(T), nil
}

// AsOptional coerces value into T with Optional's absence contract.
func AsOptional[T any](c *Coercer, value interface{}) (T, bool) {
	var zero T
	target := reflect.TypeOf((*T)(nil)).Elem()
	ret, ok := c.Optional(value, target)
	if !ok {
		return zero, false
	}
	return ret.(T), true
}
