package mgmt

import (
	"bytes"
	"strings"
)

// Well-known response document fields.
const (
	FieldOutcome            = "outcome"
	FieldResult             = "result"
	FieldFailureDescription = "failure-description"
	FieldRolledBack         = "rolled-back"
)

// Outcome values reported by the management interface.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// GenericFailureMessage is reported for failed responses that carry no
// failure description anywhere in their document.
const GenericFailureMessage = "the operation failed and provided no failure description"

// Response is one management response document. The zero value is the
// undefined document, which some operations (a standalone reload, for
// example) legitimately produce.
type Response struct {
	doc Value
}

// NewResponse wraps an already-decoded document.
func NewResponse(doc Value) *Response {
	return &Response{doc: doc}
}

// ParseResponse decodes a JSON response document. An empty or
// whitespace-only body yields the undefined document.
func ParseResponse(data []byte) (*Response, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Response{}, nil
	}
	var doc Value
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &Response{doc: doc}, nil
}

// Defined reports whether a response document was present at all.
func (r Response) Defined() bool {
	return r.doc.Defined()
}

// Document returns the raw response document.
func (r Response) Document() Value {
	return r.doc
}

// Outcome returns the document's outcome field, or "" when undefined.
func (r Response) Outcome() string {
	outcome := r.doc.Get(FieldOutcome)
	if !outcome.Defined() {
		return ""
	}
	return outcome.String()
}

// Successful reports whether the outcome is "success". The undefined
// document is not successful; callers that need the original tri-state
// check Defined first.
func (r Response) Successful() bool {
	return r.Outcome() == OutcomeSuccess
}

// Result returns the document's result value, undefined when absent.
func (r Response) Result() Value {
	return r.doc.Get(FieldResult)
}

// FailureDescription returns the document's own failure description,
// undefined when absent. Most callers want FailureMessage, which also
// searches nested step documents.
func (r Response) FailureDescription() Value {
	return r.doc.Get(FieldFailureDescription)
}

// RolledBack reports whether the document says the operation rolled back.
func (r Response) RolledBack() bool {
	return r.doc.Get(FieldRolledBack).AsBool(false)
}

// MarshalJSON encodes the raw document.
func (r Response) MarshalJSON() ([]byte, error) {
	return r.doc.MarshalJSON()
}

// UnmarshalJSON decodes a response document, preserving member order.
func (r *Response) UnmarshalJSON(data []byte) error {
	return r.doc.UnmarshalJSON(data)
}

// Step is one sub-response of a composite operation.
type Step struct {
	Name     string
	Response Response
}

// Steps returns the per-step sub-responses of a composite result in
// document order, or nil when the result is not a composite one.
func (r Response) Steps() []Step {
	result := r.Result()
	if result.Kind() != KindObject {
		return nil
	}
	var steps []Step
	for _, p := range result.Properties() {
		if !strings.HasPrefix(p.Name, "step-") || p.Value.Kind() != KindObject {
			continue
		}
		steps = append(steps, Step{Name: p.Name, Response: Response{doc: p.Value}})
	}
	return steps
}

// FailureMessage extracts a human-readable failure message from a
// non-successful response. The document's own failure description wins;
// otherwise the result tree is searched depth-first in document order,
// which finds the first failing step of a composite operation. A failed
// response with no description anywhere yields GenericFailureMessage, and a
// successful response yields "".
func (r Response) FailureMessage() string {
	if r.Successful() {
		return ""
	}
	if description := r.doc.Get(FieldFailureDescription); description.Defined() {
		return description.String()
	}
	if message, ok := searchFailureDescription(r.Result()); ok {
		return message
	}
	return GenericFailureMessage
}

func searchFailureDescription(v Value) (string, bool) {
	switch v.Kind() {
	case KindObject:
		for _, p := range v.Properties() {
			if p.Name == FieldFailureDescription && p.Value.Defined() {
				return p.Value.String(), true
			}
			if message, ok := searchFailureDescription(p.Value); ok {
				return message, true
			}
		}
	case KindList:
		for _, item := range v.Items() {
			if message, ok := searchFailureDescription(item); ok {
				return message, true
			}
		}
	}
	return "", false
}
