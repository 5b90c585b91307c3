package value

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"
)

// ErrUnsupported is returned when a Go value has no graph property representation.
var ErrUnsupported = errors.New("unsupported value type")

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	byteSlice    = reflect.TypeOf([]byte(nil))
)

// Of converts an arbitrary Go value into a Value.
func Of(v any) (Value, error) {
	return FromReflect(reflect.ValueOf(v))
}

// FromReflect converts rv into a Value.
//
// Nil pointers, interfaces, maps and slices become null. Types implementing encoding.TextMarshaler
// (uuid.UUID, net.IP, ...) become strings, as do integer enums implementing fmt.Stringer.
func FromReflect(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromReflect(rv.Elem())
	}

	t := rv.Type()
	switch t {
	case timeType:
		return Time(rv.Interface().(time.Time)), nil
	case durationType:
		return Int(rv.Int()), nil
	}

	if rv.CanInterface() {
		if m, ok := rv.Interface().(encoding.TextMarshaler); ok {
			text, err := m.MarshalText()
			if err != nil {
				return Null(), fmt.Errorf("marshal %s as text: %w", t, err)
			}
			return String(string(text)), nil
		}
		if isInteger(rv.Kind()) {
			if s, ok := rv.Interface().(fmt.Stringer); ok {
				return String(s.String()), nil
			}
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Null(), fmt.Errorf("%w: %d overflows int64", ErrUnsupported, u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		if t.ConvertibleTo(byteSlice) && t.Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes()), nil
		}
		return listOf(rv)
	case reflect.Array:
		return listOf(rv)
	case reflect.Map:
		if rv.IsNil() {
			return Null(), nil
		}
		return objectOfMap(rv)
	case reflect.Struct:
		return objectOfStruct(rv)
	}

	return Null(), fmt.Errorf("%w: %s", ErrUnsupported, t)
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func listOf(rv reflect.Value) (Value, error) {
	items := make([]Value, rv.Len())
	for i := range items {
		item, err := FromReflect(rv.Index(i))
		if err != nil {
			return Null(), fmt.Errorf("index %d: %w", i, err)
		}
		items[i] = item
	}
	return Value{kind: KindList, list: items}, nil
}

func objectOfMap(rv reflect.Value) (Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return Null(), fmt.Errorf("%w: map key %s", ErrUnsupported, rv.Type().Key())
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	obj := NewObject()
	for _, k := range keys {
		item, err := FromReflect(rv.MapIndex(k))
		if err != nil {
			return Null(), fmt.Errorf("key %q: %w", k.String(), err)
		}
		obj.Set(k.String(), item)
	}
	return FromObject(obj), nil
}

func objectOfStruct(rv reflect.Value) (Value, error) {
	obj := NewObject()
	for _, f := range reflect.VisibleFields(rv.Type()) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			// promoted through a nil embedded pointer
			obj.Set(f.Name, Null())
			continue
		}
		item, err := FromReflect(fv)
		if err != nil {
			return Null(), fmt.Errorf("field %s: %w", f.Name, err)
		}
		obj.Set(f.Name, item)
	}
	return FromObject(obj), nil
}
