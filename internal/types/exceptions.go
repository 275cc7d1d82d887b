package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type ErrorTag string

const (
	MalformedExpressionErrorTag ErrorTag = "MalformedExpressionError"
	SystemErrorTag              ErrorTag = "SystemError"
	TypeErrorTag                ErrorTag = "TypeError"
	ValueErrorTag               ErrorTag = "ValueError"
	ZeroDivisionErrorTag        ErrorTag = "ZeroDivisionError"
)

type Exception interface {
	error
	Exception() any
}

type stringException string

func (s stringException) Error() string {
	return string(s)
}

func (s stringException) Exception() any {
	return string(s)
}

func NewExceptionByString(s string) Exception {
	return stringException(s)
}

type Error struct {
	Tag   ErrorTag
	Err   error
	Extra map[string]any
}

var _ Exception = (*Error)(nil)

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Tag)
	}

	var b strings.Builder
	b.WriteString(string(e.Tag))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same tag,
// so errors.Is(err, &types.Error{Tag: types.ZeroDivisionErrorTag}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Tag == e.Tag
}

func (e *Error) Exception() any {
	tags := []any{}
	for err := error(e); err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok {
			tags = append(tags, e.Tag)
		}
	}

	o := map[string]any{
		"tags":    tags,
		"message": e.Error(),
	}
	if len(e.Extra) != 0 {
		o = lo.Assign(o, e.Extra)
	}
	return o
}

// HasTag reports whether any *Error in the chain of err carries tag.
func HasTag(err error, tag ErrorTag) bool {
	return errors.Is(err, &Error{Tag: tag})
}

// NewSystemError converts a recovered panic value into an exception.
func NewSystemError(recovered any) *Error {
	if err, ok := recovered.(error); ok {
		return &Error{Tag: SystemErrorTag, Err: err}
	}
	return &Error{Tag: SystemErrorTag, Err: fmt.Errorf("%v", recovered)}
}

// ExceptionOf returns the exception payload of err. The message carries
// the whole wrapped error text. Errors that are not exceptions are
// reported by their message only.
func ExceptionOf(err error) any {
	var exception Exception
	if !errors.As(err, &exception) {
		return err.Error()
	}

	v := exception.Exception()
	if m, ok := v.(map[string]any); ok {
		m["message"] = err.Error()
	}
	return v
}
