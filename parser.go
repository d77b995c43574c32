package coerce

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync/atomic"
)

// ParseFunc parses a textual representation into a value of the kind it was
// resolved for. The flag is false when text does not match the kind.
type ParseFunc func(text string) (interface{}, bool)

// parserEntry is a registry slot; a nil parse means the kind exposes no parse
// contract, cached so a miss is as cheap as a hit.
type parserEntry struct {
	parse ParseFunc
}

// Register binds a custom parser to the kind it produces. Accepted shapes:
//
//	func(string) T
//	func(string) (T, bool)
//	func(string) (T, error)
//
// Registration is meant for the composition root, before the coercer serves
// concurrent callers; it takes precedence over parser discovery for T.
func (c *Coercer) Register(parser interface{}) error {
	fnValue := reflect.ValueOf(parser)
	if !fnValue.IsValid() || fnValue.Kind() != reflect.Func {
		return fmt.Errorf("invalid parser: expected func, had %T", parser)
	}
	fnType := fnValue.Type()
	if fnType.NumIn() != 1 || fnType.In(0).Kind() != reflect.String {
		return fmt.Errorf("invalid parser signature: %s", fnType.String())
	}
	if fnType.NumOut() == 0 || fnType.NumOut() > 2 {
		return fmt.Errorf("invalid parser signature: %s", fnType.String())
	}
	inType := fnType.In(0)
	outType := fnType.Out(0)
	var parse ParseFunc
	switch fnType.NumOut() {
	case 1:
		parse = func(text string) (interface{}, bool) {
			out := fnValue.Call([]reflect.Value{reflect.ValueOf(text).Convert(inType)})
			return out[0].Interface(), true
		}
	default:
		flagType := fnType.Out(1)
		switch {
		case flagType.Kind() == reflect.Bool:
			parse = func(text string) (interface{}, bool) {
				out := fnValue.Call([]reflect.Value{reflect.ValueOf(text).Convert(inType)})
				if !out[1].Bool() {
					return nil, false
				}
				return out[0].Interface(), true
			}
		case flagType == errType:
			parse = func(text string) (interface{}, bool) {
				out := fnValue.Call([]reflect.Value{reflect.ValueOf(text).Convert(inType)})
				if !out[1].IsNil() {
					return nil, false
				}
				return out[0].Interface(), true
			}
		default:
			return fmt.Errorf("invalid parser signature: %s", fnType.String())
		}
	}
	c.parsers.Store(outType, parserEntry{parse: parse})
	return nil
}

// resolve returns the parser bound to t, discovering one on first use. Racing
// resolvers compute the same result; LoadOrStore keeps the first published
// entry, later winners only discard redundant work.
func (c *Coercer) resolve(t reflect.Type) ParseFunc {
	if value, ok := c.parsers.Load(t); ok {
		return value.(parserEntry).parse
	}
	atomic.AddInt64(&c.discoveries, 1)
	entry, _ := c.parsers.LoadOrStore(t, parserEntry{parse: discoverParser(t)})
	return entry.(parserEntry).parse
}

// discoverParser binds a parser for t's kind, honouring t's own textual parse
// contract when one is declared. Named scalar kinds parse their underlying
// representation and convert back, so enum-shaped kinds accept their numeric
// value out of the box.
func discoverParser(t reflect.Type) ParseFunc {
	switch t.Kind() {
	case reflect.String:
		return func(text string) (interface{}, bool) {
			value := reflect.New(t).Elem()
			value.SetString(text)
			return value.Interface(), true
		}
	case reflect.Bool:
		return func(text string) (interface{}, bool) {
			parsed, err := strconv.ParseBool(text)
			if err != nil {
				return nil, false
			}
			value := reflect.New(t).Elem()
			value.SetBool(parsed)
			return value.Interface(), true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(text string) (interface{}, bool) {
			parsed, ok := parseInt(text)
			if !ok {
				return nil, false
			}
			value := reflect.New(t).Elem()
			if value.OverflowInt(parsed) {
				return nil, false
			}
			value.SetInt(parsed)
			return value.Interface(), true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(text string) (interface{}, bool) {
			parsed, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return nil, false
			}
			value := reflect.New(t).Elem()
			if value.OverflowUint(parsed) {
				return nil, false
			}
			value.SetUint(parsed)
			return value.Interface(), true
		}
	case reflect.Float32, reflect.Float64:
		return func(text string) (interface{}, bool) {
			parsed, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, false
			}
			value := reflect.New(t).Elem()
			if value.OverflowFloat(parsed) {
				return nil, false
			}
			value.SetFloat(parsed)
			return value.Interface(), true
		}
	}
	if reflect.PtrTo(t).Implements(textUnmarshalerType) {
		return func(text string) (interface{}, bool) {
			ptr := reflect.New(t)
			if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
				return nil, false
			}
			return ptr.Elem().Interface(), true
		}
	}
	return nil
}

func parseInt(text string) (int64, bool) {
	if strings.Contains(text, ".") {
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, false
		}
		return int64(parsed), true
	}
	parsed, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
