// Package value holds the parameter payload types handed to the query execution client.
//
// A Value is a small tagged union (null, string, integer, float, bool, timestamp, bytes, object, list).
// Objects keep insertion order so rendered queries and debug text are stable between runs, and
// Native converts a payload into the plain Go values the Neo4j driver accepts without further reflection.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which member of the union a Value carries.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
	KindBytes
	KindObject
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindBytes:
		return "bytes"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is an immutable parameter value. The zero Value is null.
type Value struct {
	kind  Kind
	str   string
	num   int64
	flt   float64
	b     bool
	t     time.Time
	bytes []byte
	obj   *Object
	list  []Value
}

func Null() Value               { return Value{} }
func String(s string) Value     { return Value{kind: KindString, str: s} }
func Int(i int64) Value         { return Value{kind: KindInt, num: i} }
func Float(f float64) Value     { return Value{kind: KindFloat, flt: f} }
func Bool(b bool) Value         { return Value{kind: KindBool, b: b} }
func Time(t time.Time) Value    { return Value{kind: KindTime, t: t} }
func Bytes(b []byte) Value      { return Value{kind: KindBytes, bytes: append([]byte(nil), b...)} }
func List(items ...Value) Value { return Value{kind: KindList, list: append([]Value(nil), items...)} }

// FromObject wraps o. A nil object is null.
func FromObject(o *Object) Value {
	if o == nil {
		return Null()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Object returns the wrapped object, or nil when v is not an object.
func (v Value) Object() *Object {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Items returns the list members, or nil when v is not a list.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return append([]Value(nil), v.list...)
}

// Native converts v into the plain Go representation understood by the Neo4j driver.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	case KindBytes:
		return append([]byte(nil), v.bytes...)
	case KindObject:
		return v.obj.Native()
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Native()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether v and other carry the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.num == other.num
	case KindFloat:
		return v.flt == other.flt
	case KindBool:
		return v.b == other.b
	case KindTime:
		return v.t.Equal(other.t)
	case KindBytes:
		return bytes.Equal(v.bytes, other.bytes)
	case KindObject:
		return v.obj.Equal(other.obj)
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON renders v with object keys in insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindObject:
		return v.obj.MarshalJSON()
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return json.Marshal(v.Native())
	}
}

// Object is an insertion-ordered string-keyed map of values.
type Object struct {
	pairs *orderedmap.OrderedMap[string, Value]
}

func NewObject() *Object {
	return &Object{pairs: orderedmap.New[string, Value]()}
}

// Set stores val under key. Replacing an existing key keeps its original position.
func (o *Object) Set(key string, val Value) *Object {
	o.pairs.Set(key, val)
	return o
}

func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	return o.pairs.Get(key)
}

// Delete removes key, preserving the order of the remaining keys.
func (o *Object) Delete(key string) {
	o.pairs.Delete(key)
}

func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, o.pairs.Len())
	for pair := o.pairs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return o.pairs.Len()
}

func (o *Object) Native() map[string]any {
	out := make(map[string]any, o.Len())
	if o == nil {
		return out
	}
	for pair := o.pairs.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value.Native()
	}
	return out
}

// Equal compares keys in order and values recursively.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	if o.Len() == 0 {
		return true
	}
	a, b := o.pairs.Oldest(), other.pairs.Oldest()
	for ; a != nil && b != nil; a, b = a.Next(), b.Next() {
		if a.Key != b.Key || !a.Value.Equal(b.Value) {
			return false
		}
	}
	return true
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if o != nil {
		for pair := o.pairs.Oldest(); pair != nil; pair = pair.Next() {
			if buf.Len() > 1 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(pair.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := pair.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
