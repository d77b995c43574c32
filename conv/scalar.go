package conv

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

func (c *Converter) convertToString(destValue, srcValue reflect.Value) error {
	srcValue = indirect(srcValue)
	var result string
	switch srcValue.Kind() {
	case reflect.String:
		result = srcValue.String()
	case reflect.Bool:
		result = strconv.FormatBool(srcValue.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = strconv.FormatInt(srcValue.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = strconv.FormatUint(srcValue.Uint(), 10)
	case reflect.Float32:
		result = strconv.FormatFloat(srcValue.Float(), 'f', -1, 32)
	case reflect.Float64:
		result = strconv.FormatFloat(srcValue.Float(), 'f', -1, 64)
	case reflect.Slice:
		if srcValue.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("cannot convert %v to string", srcValue.Type())
		}
		result = string(srcValue.Bytes())
	default:
		return fmt.Errorf("cannot convert %v to string", srcValue.Type())
	}
	destValue.Elem().SetString(result)
	return nil
}

func (c *Converter) convertToBool(destValue, srcValue reflect.Value) error {
	srcValue = indirect(srcValue)
	var result bool
	switch srcValue.Kind() {
	case reflect.Bool:
		result = srcValue.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = srcValue.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = srcValue.Uint() != 0
	case reflect.Float32, reflect.Float64:
		result = srcValue.Float() != 0
	case reflect.String:
		parsed, err := strconv.ParseBool(srcValue.String())
		if err != nil {
			f, fErr := strconv.ParseFloat(srcValue.String(), 64)
			if fErr != nil {
				return err
			}
			parsed = f != 0
		}
		result = parsed
	default:
		return fmt.Errorf("cannot convert %v to bool", srcValue.Type())
	}
	destValue.Elem().SetBool(result)
	return nil
}

func (c *Converter) convertToInt(destValue, srcValue reflect.Value) error {
	srcValue = indirect(srcValue)
	var result int64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = srcValue.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = int64(srcValue.Uint())
	case reflect.Float32, reflect.Float64:
		result = int64(srcValue.Float())
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		text := srcValue.String()
		if strings.Contains(text, ".") {
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return err
			}
			result = int64(f)
		} else {
			parsed, err := strconv.ParseInt(text, 0, 64)
			if err != nil {
				return err
			}
			result = parsed
		}
	default:
		return fmt.Errorf("cannot convert %v to int", srcValue.Type())
	}
	destValue.Elem().SetInt(result)
	return nil
}

func (c *Converter) convertToUint(destValue, srcValue reflect.Value) error {
	srcValue = indirect(srcValue)
	var result uint64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := srcValue.Int()
		if v < 0 {
			return fmt.Errorf("cannot convert negative value %d to unsigned int", v)
		}
		result = uint64(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = srcValue.Uint()
	case reflect.Float32, reflect.Float64:
		v := srcValue.Float()
		if v < 0 {
			return fmt.Errorf("cannot convert negative value %f to unsigned int", v)
		}
		result = uint64(v)
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		parsed, err := strconv.ParseUint(srcValue.String(), 0, 64)
		if err != nil {
			return err
		}
		result = parsed
	default:
		return fmt.Errorf("cannot convert %v to uint", srcValue.Type())
	}
	destValue.Elem().SetUint(result)
	return nil
}

func (c *Converter) convertToFloat(destValue, srcValue reflect.Value) error {
	srcValue = indirect(srcValue)
	var result float64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = float64(srcValue.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = float64(srcValue.Uint())
	case reflect.Float32, reflect.Float64:
		result = srcValue.Float()
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		parsed, err := strconv.ParseFloat(srcValue.String(), 64)
		if err != nil {
			return err
		}
		result = parsed
	default:
		return fmt.Errorf("cannot convert %v to float", srcValue.Type())
	}
	destValue.Elem().SetFloat(result)
	return nil
}

func (c *Converter) convertToTime(destValue, srcValue reflect.Value) error {
	var t time.Time
	switch srcValue.Kind() {
	case reflect.String:
		text := srcValue.String()
		var err error
		for _, layout := range c.options.TimeLayouts {
			if t, err = time.ParseInLocation(layout, text, time.UTC); err == nil {
				break
			}
		}
		if err != nil {
			return fmt.Errorf("cannot parse time %q: %w", text, err)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		t = unixTime(srcValue.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		t = unixTime(int64(srcValue.Uint()))
	case reflect.Float32, reflect.Float64:
		sec := int64(srcValue.Float())
		nanos := int64((srcValue.Float() - float64(sec)) * float64(time.Second))
		t = time.Unix(sec, nanos)
	case reflect.Struct:
		if srcValue.Type() != timeType {
			return fmt.Errorf("cannot convert %v to time.Time", srcValue.Type())
		}
		t = srcValue.Interface().(time.Time)
	default:
		return fmt.Errorf("cannot convert %v to time.Time", srcValue.Type())
	}
	destValue.Elem().Set(reflect.ValueOf(t))
	return nil
}

// unixTime treats large magnitudes as nanoseconds
func unixTime(value int64) time.Time {
	if value > 1e10 {
		return time.Unix(0, value)
	}
	return time.Unix(value, 0)
}
