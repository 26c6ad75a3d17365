package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// Value is a closed variant for category-specific listing attributes.
// The zero Value is null.
type Value struct {
	kind ValueKind
	str  string
	num  json.Number
	b    bool
	list []Value
	obj  map[string]Value
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func NumberValue(n float64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(n, 'g', -1, 64))}
}

// RawNumberValue keeps the literal as written, so integers past 2^53 survive.
func RawNumberValue(n json.Number) Value { return Value{kind: KindNumber, num: n} }
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }
func ListValue(items ...Value) Value { return Value{kind: KindList, list: items} }
func MapValue(fields map[string]Value) Value { return Value{kind: KindMap, obj: fields} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) String() (string, bool) { return v.str, v.kind == KindString }

func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	n, err := v.num.Float64()
	return n, err == nil
}

// Literal returns the number exactly as it was received.
func (v Value) Literal() (json.Number, bool) { return v.num, v.kind == KindNumber }

func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) List() ([]Value, bool) { return v.list, v.kind == KindList }

func (v Value) Map() (map[string]Value, bool) { return v.obj, v.kind == KindMap }

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(v.num), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindMap:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.obj)
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty custom field value")
	}

	switch data[0] {
	case 'n':
		*v = Value{}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case '[':
		var items []Value
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = ListValue(items...)
	case '{':
		var fields map[string]Value
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		*v = MapValue(fields)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = RawNumberValue(n)
	}
	return nil
}

// CustomFields is stored and returned verbatim; the engine never interprets it.
type CustomFields map[string]Value

// Keys returns the field names in sorted order.
func (c CustomFields) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
