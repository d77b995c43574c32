// Package coerce turns loosely typed values, such as spreadsheet cells, text
// file fields or dynamic query results, into requested target kinds on a best
// effort basis. Recoverable failure never surfaces as an error: malformed,
// empty and unparseable input all collapse to an explicit absent result, or to
// the target kind's zero value at the default coercion layer.
package coerce

import (
	"reflect"
	"sync"
	"time"

	"github.com/viant/coerce/conv"
)

type (
	// Options configures a Coercer.
	Options struct {
		// TimeLayouts overrides the default date/time layouts
		TimeLayouts []string
		// Converter handles reference kinds outside the parse contract
		Converter *conv.Converter
	}

	// Coercer caches one parser per requested kind and applies best effort
	// coercion; safe for concurrent use.
	Coercer struct {
		timeLayouts []string
		converter   *conv.Converter
		parsers     sync.Map // map[reflect.Type]parserEntry
		discoveries int64
	}
)

// DefaultOptions returns default coercion options
func DefaultOptions() Options {
	return Options{TimeLayouts: DefaultTimeLayouts()}
}

// New creates a coercer with the provided options
func New(options Options) *Coercer {
	if len(options.TimeLayouts) == 0 {
		options.TimeLayouts = DefaultTimeLayouts()
	}
	if options.Converter == nil {
		options.Converter = conv.NewConverter(conv.DefaultOptions())
	}
	return &Coercer{
		timeLayouts: options.TimeLayouts,
		converter:   options.Converter,
	}
}

// Optional coerces value into target, reporting false when the input is
// empty, malformed, or target exposes no parse contract. Absence is the only
// failure signal; the three causes are indistinguishable on purpose, so that
// a malformed field never aborts a larger ingestion batch.
func (c *Coercer) Optional(value interface{}, target reflect.Type) (interface{}, bool) {
	if value == nil {
		return nil, false
	}
	if reflect.TypeOf(value) == target {
		return value, true
	}
	if isTimeType(target) {
		if ret, ok := c.Time(value); ok {
			return ret, true
		}
		return nil, false
	}
	text, ok := asText(value)
	if !ok || text == "" {
		return nil, false
	}
	parse := c.resolve(target)
	if parse == nil {
		return nil, false
	}
	return parse(text)
}

// Value coerces value into target, substituting target's zero value whenever
// Optional reports absent. It always returns an instance of target.
func (c *Coercer) Value(value interface{}, target reflect.Type) interface{} {
	if ret, ok := c.Optional(value, target); ok {
		return ret
	}
	return reflect.Zero(target).Interface()
}

// Coerce dispatches on the shape of target: date/time kinds go through Time,
// pointer-wrapped value kinds through Optional, plain value kinds through
// Value, the remaining reference kinds through the configured converter. The
// converter path is the only one that can return an error.
func (c *Coercer) Coerce(value interface{}, target reflect.Type) (interface{}, error) {
	switch target {
	case timeType:
		ret, _ := c.Time(value)
		return ret, nil
	case timePtrType:
		if ret, ok := c.Time(value); ok {
			return &ret, nil
		}
		return (*time.Time)(nil), nil
	}
	if target.Kind() == reflect.Ptr {
		if c.parseable(target.Elem()) {
			ret, ok := c.Optional(value, target.Elem())
			if !ok {
				return reflect.Zero(target).Interface(), nil
			}
			ptr := reflect.New(target.Elem())
			ptr.Elem().Set(reflect.ValueOf(ret))
			return ptr.Interface(), nil
		}
		ptr := reflect.New(target.Elem())
		if err := c.converter.Convert(value, ptr.Interface()); err != nil {
			return nil, err
		}
		return ptr.Interface(), nil
	}
	if c.parseable(target) {
		return c.Value(value, target), nil
	}
	dest := reflect.New(target)
	if err := c.converter.Convert(value, dest.Interface()); err != nil {
		return nil, err
	}
	return dest.Elem().Interface(), nil
}
