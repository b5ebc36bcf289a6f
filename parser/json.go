package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// ErrNotArray is returned by ParseJSONArray when the document is valid JSON
// but its top-level value is not an array.
var ErrNotArray = errors.New("top-level JSON value is not an array")

// lenient decodes numbers as json.Number so that callers can decide how to
// coerce loosely-typed numeric fields. It accepts some non-standard input
// (leading zeros, for one), so documents are checked with json.Valid first.
var lenient = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// IsBlank reports whether data is empty or whitespace only.
func IsBlank(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}

// ParseJSON parses a single JSON value using generics
func ParseJSON[T any](data []byte) (*T, error) {
	if !json.Valid(data) {
		return nil, errors.New("failed to parse JSON: invalid JSON")
	}
	var result T
	if err := lenient.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &result, nil
}

// ParseJSONArray parses a JSON array into a slice using generics.
// A document whose top-level value is not an array (including null) fails
// with ErrNotArray.
func ParseJSONArray[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, errors.New("failed to parse JSON array: invalid JSON")
	}
	if trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var results []T
	if err := lenient.Unmarshal(trimmed, &results); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	return results, nil
}
