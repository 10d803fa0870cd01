package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies decode and lookup failures.
type ErrorCode string

const (
	// ErrMalformedNode indicates a node element lacks its required id.
	ErrMalformedNode ErrorCode = "MalformedNode"
	// ErrAttributeDropped indicates an attribute failed the retention predicate.
	ErrAttributeDropped ErrorCode = "AttributeDropped"
	// ErrUnresolvedType indicates a numeric type code has no table entry.
	ErrUnresolvedType ErrorCode = "UnresolvedType"
	// ErrUnknownType indicates a canonical type has no decode rule.
	ErrUnknownType ErrorCode = "UnknownType"
	// ErrDecodeFormat indicates a value does not parse as its declared type.
	ErrDecodeFormat ErrorCode = "DecodeFormat"
	// ErrDecodeOverflow indicates an integer value is out of range for its width.
	ErrDecodeOverflow ErrorCode = "DecodeOverflow"
	// ErrXMLParse indicates the underlying document could not be tokenized.
	ErrXMLParse ErrorCode = "XMLParse"
)

// DecodeError describes a single attribute that could not be turned into a typed value.
type DecodeError struct {
	Err       error
	Code      ErrorCode
	Attribute string
	Type      string
	Value     string
}

// Error formats the decode failure with its code and attribute context.
func (e *DecodeError) Error() string {
	if e == nil {
		return "decode error <nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] attribute %q", e.Code, e.Attribute)
	if e.Type != "" {
		fmt.Fprintf(&b, " type %s", e.Type)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " value %q", e.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewDecodeError builds a DecodeError for attribute name with the given code.
func NewDecodeError(code ErrorCode, name, typ, value string, err error) *DecodeError {
	return &DecodeError{Code: code, Attribute: name, Type: typ, Value: value, Err: err}
}

// MalformedNodeError reports a structural node element that cannot become a Node.
//
//nolint:errname // public API name uses the format's term.
type MalformedNodeError struct {
	Path    string
	Message string
}

// Error formats the failure including the element path when known.
func (e *MalformedNodeError) Error() string {
	if e == nil {
		return "malformed node <nil>"
	}
	if e.Path == "" {
		return fmt.Sprintf("[%s] %s", ErrMalformedNode, e.Message)
	}
	return fmt.Sprintf("[%s] %s at %s", ErrMalformedNode, e.Message, e.Path)
}

// NewMalformedNode builds a MalformedNodeError.
func NewMalformedNode(path, msg string) *MalformedNodeError {
	return &MalformedNodeError{Path: path, Message: msg}
}

// SyntaxError wraps a tokenizer failure with the line it happened on.
type SyntaxError struct {
	Err  error
	Line int
}

// Error formats the syntax failure.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "syntax error <nil>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %v", ErrXMLParse, e.Line, e.Err)
	}
	return fmt.Sprintf("[%s] %v", ErrXMLParse, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CodeOf returns the ErrorCode carried by err or any error it wraps.
func CodeOf(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr.Code, true
	}
	var malformed *MalformedNodeError
	if errors.As(err, &malformed) {
		return ErrMalformedNode, true
	}
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return ErrXMLParse, true
	}
	return "", false
}

// AsDecodeError extracts the DecodeError from err.
func AsDecodeError(err error) (*DecodeError, bool) {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr, true
	}
	return nil, false
}

// IsMalformedNode reports whether err is, or wraps, a MalformedNodeError.
func IsMalformedNode(err error) bool {
	var malformed *MalformedNodeError
	return errors.As(err, &malformed)
}
