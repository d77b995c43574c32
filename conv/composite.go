package conv

import (
	"fmt"
	"reflect"
	"strings"
)

func (c *Converter) convertToSlice(destValue, srcValue reflect.Value) error {
	destType := destValue.Type().Elem()
	elemType := destType.Elem()

	if elemType.Kind() == reflect.Uint8 && srcValue.Kind() == reflect.String {
		destValue.Elem().SetBytes([]byte(srcValue.String()))
		return nil
	}
	if srcValue.Kind() != reflect.Slice && srcValue.Kind() != reflect.Array {
		// single value promotes to a one element slice
		slice := reflect.MakeSlice(destType, 1, 1)
		if err := c.convertElem(slice.Index(0), srcValue); err != nil {
			return err
		}
		destValue.Elem().Set(slice)
		return nil
	}

	length := srcValue.Len()
	slice := reflect.MakeSlice(destType, length, length)
	for i := 0; i < length; i++ {
		if err := c.convertElem(slice.Index(i), srcValue.Index(i)); err != nil {
			return fmt.Errorf("error converting slice element %d: %w", i, err)
		}
	}
	destValue.Elem().Set(slice)
	return nil
}

// convertElem converts a single element into an addressable slot, allocating
// through one pointer level when the slot holds a pointer.
func (c *Converter) convertElem(slot, srcValue reflect.Value) error {
	if slot.Kind() == reflect.Ptr {
		elem := reflect.New(slot.Type().Elem())
		if err := c.Convert(srcValue.Interface(), elem.Interface()); err != nil {
			return err
		}
		slot.Set(elem)
		return nil
	}
	elem := reflect.New(slot.Type())
	if err := c.Convert(srcValue.Interface(), elem.Interface()); err != nil {
		return err
	}
	slot.Set(elem.Elem())
	return nil
}

func (c *Converter) convertToMap(destValue, srcValue reflect.Value) error {
	destType := destValue.Type().Elem()
	keyType := destType.Key()
	valType := destType.Elem()
	result := reflect.MakeMap(destType)

	switch srcValue.Kind() {
	case reflect.Struct:
		info := c.structInfo(srcValue.Type())
		for _, field := range info.fields {
			if field.tagName == "-" {
				continue
			}
			fieldValue := srcValue.FieldByIndex(field.index)
			if !fieldValue.CanInterface() {
				continue
			}
			key := reflect.New(keyType)
			if err := c.Convert(field.name, key.Interface()); err != nil {
				return fmt.Errorf("error converting field name %s to key: %w", field.name, err)
			}
			value := reflect.New(valType)
			if err := c.Convert(fieldValue.Interface(), value.Interface()); err != nil {
				return fmt.Errorf("error converting field %s: %w", field.name, err)
			}
			result.SetMapIndex(key.Elem(), value.Elem())
		}
	case reflect.Map:
		iter := srcValue.MapRange()
		for iter.Next() {
			key := reflect.New(keyType)
			if err := c.Convert(iter.Key().Interface(), key.Interface()); err != nil {
				return fmt.Errorf("error converting map key: %w", err)
			}
			value := reflect.New(valType)
			if err := c.Convert(iter.Value().Interface(), value.Interface()); err != nil {
				return fmt.Errorf("error converting map value: %w", err)
			}
			result.SetMapIndex(key.Elem(), value.Elem())
		}
	default:
		return fmt.Errorf("cannot convert %v to map", srcValue.Type())
	}
	destValue.Elem().Set(result)
	return nil
}

func (c *Converter) convertToStruct(destValue, srcValue reflect.Value) error {
	destType := destValue.Type().Elem()
	destInfo := c.structInfo(destType)

	var srcMap map[string]interface{}
	switch srcValue.Kind() {
	case reflect.Map:
		srcMap = make(map[string]interface{}, srcValue.Len())
		iter := srcValue.MapRange()
		for iter.Next() {
			srcMap[fmt.Sprintf("%v", iter.Key().Interface())] = iter.Value().Interface()
		}
	case reflect.Struct:
		srcInfo := c.structInfo(srcValue.Type())
		srcMap = make(map[string]interface{}, len(srcInfo.fields))
		for _, field := range srcInfo.fields {
			fieldValue := srcValue.FieldByIndex(field.index)
			if !fieldValue.CanInterface() {
				continue
			}
			srcMap[field.name] = fieldValue.Interface()
		}
	default:
		return fmt.Errorf("cannot convert %v to struct", srcValue.Type())
	}

	for _, field := range destInfo.fields {
		if field.tagName == "-" {
			continue
		}
		value, ok := lookupMapValue(srcMap, field.tagName, c.options.CaseSensitive)
		if !ok {
			value, ok = lookupMapValue(srcMap, field.name, c.options.CaseSensitive)
		}
		if !ok {
			continue
		}
		fieldValue := destValue.Elem().FieldByIndex(field.index)
		if !fieldValue.CanSet() {
			continue
		}
		if value == nil {
			if fieldValue.Kind() == reflect.Ptr {
				fieldValue.Set(reflect.Zero(fieldValue.Type()))
			}
			continue
		}
		holder := reflect.New(fieldValue.Type())
		if err := c.Convert(value, holder.Interface()); err != nil {
			return fmt.Errorf("error converting field %s: %w", field.name, err)
		}
		fieldValue.Set(holder.Elem())
	}
	return nil
}

func lookupMapValue(src map[string]interface{}, name string, caseSensitive bool) (interface{}, bool) {
	if name == "" || name == "-" {
		return nil, false
	}
	if value, ok := src[name]; ok {
		return value, true
	}
	if caseSensitive {
		return nil, false
	}
	for key, value := range src {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

// struct metadata cache

type structField struct {
	name    string
	tagName string
	index   []int
}

type structInfo struct {
	fields []structField
}

func (c *Converter) structInfo(t reflect.Type) *structInfo {
	if cached, ok := c.structCache.Load(t); ok {
		return cached.(*structInfo)
	}
	info := &structInfo{}
	c.buildStructInfo(t, info, nil)
	c.structCache.Store(t, info)
	return info
}

func (c *Converter) buildStructInfo(t reflect.Type, info *structInfo, index []int) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldIndex := make([]int, len(index)+1)
		copy(fieldIndex, index)
		fieldIndex[len(index)] = i

		if field.Anonymous {
			ft := field.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				c.buildStructInfo(ft, info, fieldIndex)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		tagName := ""
		if tag := field.Tag.Get(c.options.TagName); tag != "" {
			tagName = strings.Split(tag, ",")[0]
		}
		info.fields = append(info.fields, structField{
			name:    field.Name,
			tagName: tagName,
			index:   fieldIndex,
		})
	}
}
