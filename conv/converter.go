package conv

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Options contains converter configuration
type Options struct {
	// TimeLayouts lists accepted textual time layouts, in matching order
	TimeLayouts []string
	// TagName is the struct tag carrying field mapping information
	TagName string
	// CaseSensitive controls field/key matching
	CaseSensitive bool
}

// DefaultOptions returns default conversion options
func DefaultOptions() Options {
	return Options{
		TimeLayouts: []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"},
		TagName:     "json",
	}
}

// Converter converts between reference kinds, caching per struct type field
// metadata and custom conversions.
type Converter struct {
	options     Options
	structCache sync.Map // map[reflect.Type]*structInfo
	customConv  sync.Map // map[typeKey]ConversionFunc
}

// ConversionFunc defines a custom conversion between a source and destination type
type ConversionFunc func(src interface{}, dest interface{}, opts Options) error

type typeKey struct {
	srcType  reflect.Type
	destType reflect.Type
}

// NewConverter creates a converter with the provided options
func NewConverter(options Options) *Converter {
	if options.TagName == "" {
		options.TagName = "json"
	}
	if len(options.TimeLayouts) == 0 {
		options.TimeLayouts = DefaultOptions().TimeLayouts
	}
	return &Converter{options: options}
}

// RegisterConversion registers a custom conversion between srcType and destType,
// taking precedence over the built-in conversion rules.
func (c *Converter) RegisterConversion(srcType, destType reflect.Type, fn ConversionFunc) {
	c.customConv.Store(typeKey{srcType, destType}, fn)
}

// Convert converts src into the value dest points to.
func (c *Converter) Convert(src interface{}, dest interface{}) error {
	if dest == nil {
		return errors.New("destination cannot be nil")
	}
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return errors.New("destination must be a pointer")
	}
	if destValue.Elem().Kind() == reflect.Ptr {
		destValue = destValue.Elem()
	}
	if destValue.IsNil() {
		return errors.New("destination pointer cannot be nil")
	}
	if src == nil {
		return nil
	}

	srcValue := reflect.ValueOf(src)
	srcType := srcValue.Type()
	destType := destValue.Elem().Type()

	if fn, ok := c.customConv.Load(typeKey{srcType, destType}); ok {
		return fn.(ConversionFunc)(src, dest, c.options)
	}
	if srcType.AssignableTo(destType) {
		destValue.Elem().Set(srcValue)
		return nil
	}

	switch destType.Kind() {
	case reflect.String:
		return c.convertToString(destValue, srcValue)
	case reflect.Bool:
		return c.convertToBool(destValue, srcValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return c.convertToInt(destValue, srcValue)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return c.convertToUint(destValue, srcValue)
	case reflect.Float32, reflect.Float64:
		return c.convertToFloat(destValue, srcValue)
	}
	if srcType.ConvertibleTo(destType) {
		destValue.Elem().Set(srcValue.Convert(destType))
		return nil
	}

	srcValue = indirect(srcValue)
	if !srcValue.IsValid() {
		return nil
	}
	switch destType.Kind() {
	case reflect.Slice:
		return c.convertToSlice(destValue, srcValue)
	case reflect.Map:
		return c.convertToMap(destValue, srcValue)
	case reflect.Struct:
		if destType == timeType {
			return c.convertToTime(destValue, srcValue)
		}
		return c.convertToStruct(destValue, srcValue)
	}
	return fmt.Errorf("unsupported conversion: %v to %v", srcValue.Type(), destType)
}

var timeType = reflect.TypeOf(time.Time{})

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	return v
}
