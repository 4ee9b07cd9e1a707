// Package codec encodes and decodes state trees as JSON documents.
//
// Two failure classes are kept distinct: a malformed document (the bytes
// are not valid JSON, or required top-level fields are absent) is a
// SerializationError, while a document that decodes but violates field
// bounds is a validation error reported by the decoded tree itself.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/cyrup-ai/glassdesk/internal/state"
)

// requiredFields are the top-level fields every state document must carry.
var requiredFields = []string{
	"schema_version",
	"last_updated",
	"user_preferences",
	"ui_state",
	"calibration_data",
	"plugin_state",
	"performance_settings",
	"window_layout",
}

// SerializationError describes a document that could not be encoded or
// decoded.
type SerializationError struct {
	// Op is the failing operation ("encode", "decode", "validate").
	Op string

	// Message describes the failure.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithPrettyPrint enables indented output.
func WithPrettyPrint(pretty bool) Option {
	return func(s *Serializer) {
		s.pretty = pretty
	}
}

// Serializer encodes and decodes state trees.
type Serializer struct {
	pretty bool
}

// New creates a serializer with the given options.
func New(opts ...Option) *Serializer {
	s := &Serializer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Encode renders a state tree as a JSON document.
func (s *Serializer) Encode(st *state.State) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if s.pretty {
		data, err = json.MarshalIndent(st, "", "  ")
	} else {
		data, err = json.Marshal(st)
	}
	if err != nil {
		return nil, &SerializationError{Op: "encode", Message: "marshaling state", Err: err}
	}
	return data, nil
}

// Decode parses a JSON document into a state tree.
//
// The document is checked for syntactic validity and required top-level
// fields before unmarshaling; absent optional fields keep their defaults.
// Decode does not run bound validation — callers validate the returned
// tree separately.
func (s *Serializer) Decode(data []byte) (*state.State, error) {
	if err := s.ValidateDocument(data); err != nil {
		return nil, err
	}

	st := state.New()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, &SerializationError{Op: "decode", Message: "unmarshaling state", Err: err}
	}
	return st, nil
}

// ValidateDocument checks that the bytes form a syntactically valid state
// document with all required top-level fields, without decoding it fully.
func (s *Serializer) ValidateDocument(data []byte) error {
	if len(data) == 0 {
		return &SerializationError{Op: "validate", Message: "document is empty"}
	}
	if !gjson.ValidBytes(data) {
		return &SerializationError{Op: "validate", Message: "document is not valid JSON"}
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return &SerializationError{Op: "validate", Message: "document root is not an object"}
	}
	for _, field := range requiredFields {
		if !doc.Get(field).Exists() {
			return &SerializationError{
				Op:      "validate",
				Message: fmt.Sprintf("missing required field: %s", field),
			}
		}
	}
	return nil
}

// SchemaVersion extracts the schema_version field from a raw document
// without decoding it.
func SchemaVersion(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", &SerializationError{Op: "decode", Message: "document is not valid JSON"}
	}
	v := gjson.GetBytes(data, "schema_version")
	if !v.Exists() {
		return "", &SerializationError{Op: "decode", Message: "missing required field: schema_version"}
	}
	return v.String(), nil
}
