package mgmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the shape of a management model Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

// String makes Kind satisfy the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Property is one named member of an object Value. Objects keep their
// members as an ordered slice rather than a map because the management
// protocol's failure search is defined over document order.
type Property struct {
	Name  string
	Value Value
}

// Value is one node of a management model document: undefined, a scalar, a
// list, or an object with ordered members. The zero value is undefined.
//
// Values decode from and encode to the JSON representation used by the HTTP
// management interface, preserving object member order in both directions.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	list []Value
	obj  []Property
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// IntValue returns a numeric Value.
func IntValue(i int64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatInt(i, 10))}
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// ListValue returns a list Value with the given items.
func ListValue(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// ObjectValue returns an object Value with the given members, in order.
func ObjectValue(props ...Property) Value {
	return Value{kind: KindObject, obj: props}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Defined reports whether the value is anything other than undefined.
func (v Value) Defined() bool {
	return v.kind != KindUndefined
}

// Get returns the member with the given name, or an undefined Value when v
// is not an object or has no such member.
func (v Value) Get(name string) Value {
	for _, p := range v.obj {
		if p.Name == name {
			return p.Value
		}
	}
	return Value{}
}

// Properties returns the ordered members of an object Value, nil otherwise.
func (v Value) Properties() []Property {
	return v.obj
}

// Items returns the elements of a list Value, nil otherwise.
func (v Value) Items() []Value {
	return v.list
}

// Len returns the number of members or elements for objects and lists, and
// zero for every other kind.
func (v Value) Len() int {
	if v.kind == KindObject {
		return len(v.obj)
	}
	return len(v.list)
}

// AsInt returns the value as an int, or def when the value is not an
// integral number.
func (v Value) AsInt(def int) int {
	if v.kind != KindNumber {
		return def
	}
	i, err := v.num.Int64()
	if err != nil {
		return def
	}
	return int(i)
}

// AsBool returns the value as a bool, or def when the value is not a bool.
func (v Value) AsBool(def bool) bool {
	if v.kind != KindBool {
		return def
	}
	return v.b
}

// String renders the value for human consumption: scalars as their literal
// text and structured values as compact JSON. Failure descriptions run
// through this, so a plain string description stays unquoted.
func (v Value) String() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return v.num.String()
	case KindString:
		return v.str
	default:
		data, err := v.MarshalJSON()
		if err != nil {
			return fmt.Sprintf("<unrenderable: %v>", err)
		}
		return string(data)
	}
}

// MarshalJSON encodes the value, emitting object members in their stored
// order. Undefined encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindUndefined:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		buf.WriteString(v.num.String())
	case KindString:
		data, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, p := range v.obj {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(p.Name)
			if err != nil {
				return err
			}
			buf.Write(name)
			buf.WriteByte(':')
			if err := p.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode value of kind %d", v.kind)
	}
	return nil
}

// UnmarshalJSON decodes the value, preserving object member order.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	parsed, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var props []Property
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				props = append(props, Property{Name: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindObject, obj: props}, nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindList, list: items}, nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return Value{kind: KindString, str: t}, nil
	case json.Number:
		return Value{kind: KindNumber, num: t}, nil
	case bool:
		return Value{kind: KindBool, b: t}, nil
	case nil:
		return Value{}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}
