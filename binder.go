package coerce

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/viant/tagly/format"
	ftime "github.com/viant/tagly/format/time"
	"github.com/viant/xunsafe"
)

type (
	// Binder populates struct instances from loosely typed row values, with
	// one bound setter per field, resolved once per struct type.
	Binder struct {
		coercer *Coercer
		rType   reflect.Type
		fields  []bindField
	}

	bindField struct {
		name  string
		field *xunsafe.Field
		bind  func(holder unsafe.Pointer, value interface{}) error
	}
)

// Binder builds a binder for a struct type or a pointer to one.
func (c *Coercer) Binder(target interface{}) (*Binder, error) {
	rType, ok := target.(reflect.Type)
	if !ok {
		rType = reflect.TypeOf(target)
	}
	for rType != nil && rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	if rType == nil || rType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("unsupported binder type: %v", target)
	}
	ret := &Binder{coercer: c, rType: rType}
	xStruct := xunsafe.NewStruct(rType)
	for i := range xStruct.Fields {
		field := &xStruct.Fields[i]
		tag := fieldTag(field)
		if tag.Ignore {
			continue
		}
		name := field.Name
		if tag.Name != "" {
			name = tag.Name
		}
		ret.fields = append(ret.fields, bindField{
			name:  name,
			field: field,
			bind:  c.fieldBinder(field, tag),
		})
	}
	return ret, nil
}

// Bind copies row values into dest fields matched by name; tag name takes
// precedence, matching falls back to case-insensitive. Row entries a field
// cannot represent leave the field at its zero value.
func (b *Binder) Bind(dest interface{}, row map[string]interface{}) error {
	destType := reflect.TypeOf(dest)
	if destType == nil || destType.Kind() != reflect.Ptr || destType.Elem() != b.rType {
		return fmt.Errorf("invalid bind dest: expected %s, had %T", reflect.PtrTo(b.rType).String(), dest)
	}
	holder := xunsafe.AsPointer(dest)
	for i := range b.fields {
		item := &b.fields[i]
		value, ok := lookupValue(row, item.name)
		if !ok {
			continue
		}
		if err := item.bind(holder, value); err != nil {
			return err
		}
	}
	return nil
}

// Type returns the bound struct type
func (b *Binder) Type() reflect.Type {
	return b.rType
}

func (c *Coercer) fieldBinder(field *xunsafe.Field, tag *format.Tag) func(holder unsafe.Pointer, value interface{}) error {
	fieldType := field.Type
	switch fieldType {
	case timeType:
		layouts := c.fieldLayouts(tag)
		return func(holder unsafe.Pointer, value interface{}) error {
			if ret, ok := c.Time(value, layouts...); ok {
				field.SetValue(holder, ret)
			}
			return nil
		}
	case timePtrType:
		layouts := c.fieldLayouts(tag)
		return func(holder unsafe.Pointer, value interface{}) error {
			if ret, ok := c.Time(value, layouts...); ok {
				field.SetValue(holder, &ret)
			}
			return nil
		}
	}
	return func(holder unsafe.Pointer, value interface{}) error {
		ret, err := c.Coerce(value, fieldType)
		if err != nil {
			return fmt.Errorf("unable to bind field %v: %w", field.Name, err)
		}
		field.SetValue(holder, ret)
		return nil
	}
}

// fieldLayouts puts a tag supplied layout ahead of the coercer defaults.
func (c *Coercer) fieldLayouts(tag *format.Tag) []string {
	if tag.TimeLayout == "" {
		return c.timeLayouts
	}
	return append([]string{tag.TimeLayout}, c.timeLayouts...)
}

func fieldTag(field *xunsafe.Field) *format.Tag {
	tag, _ := format.Parse(field.Tag)
	if tag == nil {
		tag = &format.Tag{}
	}
	if tag.TimeLayout == "" && tag.DateFormat != "" {
		tag.TimeLayout = ftime.DateFormatToTimeLayout(tag.DateFormat)
	}
	if tag.TimeLayout == "" {
		tag.TimeLayout = field.Tag.Get("timeLayout")
	}
	return tag
}

func lookupValue(row map[string]interface{}, name string) (interface{}, bool) {
	if value, ok := row[name]; ok {
		return value, true
	}
	for key, value := range row {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}
