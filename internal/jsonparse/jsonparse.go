// Package jsonparse reads structured values out of raw model output.
//
// Some servers answer JSON-mode requests with several concatenated objects (duplicates or
// near-duplicates of the first). Only the first complete value is decoded and everything
// after it is ignored. Truncated or malformed leading values are not repaired.
package jsonparse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const snippetLength = 120

// ParseError reports that no usable JSON value could be read from a response.
type ParseError struct {
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON response: %v (response starts with %q)", e.Err, e.Snippet)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseFirstJSONValue decodes the first JSON value of raw into a new R.
func ParseFirstJSONValue[R any](raw string) (R, error) {
	var result R
	if err := DecodeFirstJSONValue(raw, &result); err != nil {
		var zero R
		return zero, err
	}
	return result, nil
}

// DecodeFirstJSONValue decodes the first JSON value of raw into target.
func DecodeFirstJSONValue(raw string, target any) error {
	decoder := json.NewDecoder(strings.NewReader(raw))

	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &ParseError{Snippet: snippet(raw), Err: err}
	}

	return nil
}

func snippet(raw string) string {
	if len(raw) <= snippetLength {
		return raw
	}
	return raw[:snippetLength]
}
