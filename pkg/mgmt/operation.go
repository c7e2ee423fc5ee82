package mgmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Operation names used by this toolkit.
const (
	OpReadAttribute         = "read-attribute"
	OpReadResource          = "read-resource"
	OpReadChildrenNames     = "read-children-names"
	OpReadChildrenResources = "read-children-resources"
	OpComposite             = "composite"
	OpShutdown              = "shutdown"
	OpStopServers           = "stop-servers"
	OpReload                = "reload"
)

// Operation parameter names used by this toolkit.
const (
	ParamName           = "name"
	ParamChildType      = "child-type"
	ParamIncludeRuntime = "include-runtime"
	ParamTimeout        = "timeout"
	ParamBlocking       = "blocking"
	ParamSteps          = "steps"
)

// Segment is one element of a resource address.
type Segment struct {
	Key   string
	Value string
}

// Address locates a resource in the management model as an ordered list of
// key/value segments. The empty Address is the management root.
type Address []Segment

// NewAddress builds an Address from alternating keys and values, so
// NewAddress("host", "primary", "server", "one") addresses
// /host=primary/server=one. A trailing key without a value maps to the
// wildcard "*".
func NewAddress(pairs ...string) Address {
	address := make(Address, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		segment := Segment{Key: pairs[i], Value: "*"}
		if i+1 < len(pairs) {
			segment.Value = pairs[i+1]
		}
		address = append(address, segment)
	}
	return address
}

// String renders the address in CLI path notation, e.g. "/host=primary".
// The root address renders as "/".
func (a Address) String() string {
	if len(a) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, segment := range a {
		sb.WriteByte('/')
		sb.WriteString(segment.Key)
		sb.WriteByte('=')
		sb.WriteString(segment.Value)
	}
	return sb.String()
}

// MarshalJSON encodes the address as the management interface expects: a
// list of single-pair objects, empty for the root.
func (a Address) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, segment := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(segment.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(segment.Value)
		if err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

type parameter struct {
	name  string
	value any
}

// Operation is one management operation request: an operation name, the
// address of the resource it targets and optional named parameters.
// Parameters keep insertion order so requests marshal deterministically.
type Operation struct {
	Name    string
	Address Address

	params []parameter
}

// NewOperation creates an operation with the given name against the given
// address.
func NewOperation(name string, address Address) *Operation {
	return &Operation{Name: name, Address: address}
}

// Set adds or replaces a named parameter and returns the operation for
// chaining. Values marshal with encoding/json; nested operations (composite
// steps) are supported.
func (op *Operation) Set(name string, value any) *Operation {
	for i := range op.params {
		if op.params[i].name == name {
			op.params[i].value = value
			return op
		}
	}
	op.params = append(op.params, parameter{name: name, value: value})
	return op
}

// Get returns a previously Set parameter value and whether it was present.
func (op *Operation) Get(name string) (any, bool) {
	for _, p := range op.params {
		if p.name == name {
			return p.value, true
		}
	}
	return nil, false
}

// String renders the operation in CLI notation, e.g.
// "/host=primary:shutdown(timeout=30)". Intended for logs and error
// messages, not for the wire.
func (op *Operation) String() string {
	var sb strings.Builder
	if len(op.Address) > 0 {
		sb.WriteString(op.Address.String())
	}
	sb.WriteByte(':')
	sb.WriteString(op.Name)
	if len(op.params) > 0 {
		sb.WriteByte('(')
		for i, p := range op.params {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(p.name)
			sb.WriteByte('=')
			if raw, ok := p.value.(json.RawMessage); ok {
				sb.Write(raw)
			} else {
				fmt.Fprintf(&sb, "%v", p.value)
			}
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// MarshalJSON encodes the operation as the flat JSON document the HTTP
// management interface accepts: operation name, address, then parameters.
func (op *Operation) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"operation":`)
	name, err := json.Marshal(op.Name)
	if err != nil {
		return nil, err
	}
	buf.Write(name)
	buf.WriteString(`,"address":`)
	address, err := op.Address.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf.Write(address)
	for _, p := range op.params {
		buf.WriteByte(',')
		pname, err := json.Marshal(p.name)
		if err != nil {
			return nil, err
		}
		buf.Write(pname)
		buf.WriteByte(':')
		pvalue, err := json.Marshal(p.value)
		if err != nil {
			return nil, fmt.Errorf("cannot encode parameter %q of %s: %w", p.name, op.Name, err)
		}
		buf.Write(pvalue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ReadAttribute builds a read-attribute operation for one attribute of the
// addressed resource.
func ReadAttribute(address Address, name string) *Operation {
	return NewOperation(OpReadAttribute, address).Set(ParamName, name)
}

// ReadResource builds a read-resource operation for the addressed resource,
// including runtime attributes.
func ReadResource(address Address) *Operation {
	return NewOperation(OpReadResource, address).Set(ParamIncludeRuntime, true)
}

// ReadChildrenNames builds a read-children-names operation for children of
// the given type under the addressed resource.
func ReadChildrenNames(address Address, childType string) *Operation {
	return NewOperation(OpReadChildrenNames, address).Set(ParamChildType, childType)
}

// ReadChildrenResources builds a read-children-resources operation for
// children of the given type, including runtime attributes.
func ReadChildrenResources(address Address, childType string) *Operation {
	return NewOperation(OpReadChildrenResources, address).
		Set(ParamChildType, childType).
		Set(ParamIncludeRuntime, true)
}

// Composite builds a composite operation executing the given steps in
// order. The response nests one sub-response per step under "step-1",
// "step-2", and so on.
func Composite(steps ...*Operation) *Operation {
	return NewOperation(OpComposite, nil).Set(ParamSteps, steps)
}

// ParseOperation decodes an operation request document. The operation name
// is required; the address may be the wire form (a list of single-pair
// objects) or the CLI path form ("/host=primary/server=one"). Every other
// property becomes a parameter, kept in document order with its raw JSON
// value.
func ParseOperation(data []byte) (*Operation, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid operation document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("invalid operation document: expected an object, got %v", tok)
	}

	op := &Operation{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid operation document: %w", err)
		}
		key := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", key, err)
		}

		switch key {
		case "operation":
			if err := json.Unmarshal(raw, &op.Name); err != nil {
				return nil, fmt.Errorf("operation name must be a string: %w", err)
			}
		case "address":
			address, err := parseAddress(raw)
			if err != nil {
				return nil, err
			}
			op.Address = address
		default:
			op.Set(key, raw)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid operation document: %w", err)
	}
	if op.Name == "" {
		return nil, fmt.Errorf("operation document has no operation name")
	}
	return op, nil
}

// parseAddress accepts both address encodings.
func parseAddress(raw json.RawMessage) (Address, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var path string
		if err := json.Unmarshal(trimmed, &path); err != nil {
			return nil, fmt.Errorf("invalid address: %w", err)
		}
		return parseAddressPath(path)
	}

	var segments []map[string]string
	if err := json.Unmarshal(trimmed, &segments); err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}
	address := make(Address, 0, len(segments))
	for _, segment := range segments {
		if len(segment) != 1 {
			return nil, fmt.Errorf("invalid address: each segment must hold exactly one key/value pair")
		}
		for key, value := range segment {
			address = append(address, Segment{Key: key, Value: value})
		}
	}
	return address, nil
}

// parseAddressPath parses CLI path notation such as "/host=primary".
func parseAddressPath(path string) (Address, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return nil, nil
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("invalid address path %q: must start with /", path)
	}

	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	address := make(Address, 0, len(parts))
	for _, part := range parts {
		key, value, found := strings.Cut(part, "=")
		if !found || key == "" || value == "" {
			return nil, fmt.Errorf("invalid address path %q: segment %q is not key=value", path, part)
		}
		address = append(address, Segment{Key: key, Value: value})
	}
	return address, nil
}
