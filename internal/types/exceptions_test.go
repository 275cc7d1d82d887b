package types_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/expression-tree-calculator/internal/types"
)

func TestErrorException(t *testing.T) {
	t.Parallel()

	inner := &types.Error{Tag: types.ZeroDivisionErrorTag, Err: errors.New("division by zero")}
	err := &types.Error{
		Tag:   types.MalformedExpressionErrorTag,
		Err:   fmt.Errorf("right of operator %q: %w", "/", inner),
		Extra: map[string]any{"expression": "1/0"},
	}

	expected := map[string]any{
		"tags":       []any{types.MalformedExpressionErrorTag, types.ZeroDivisionErrorTag},
		"message":    `MalformedExpressionError: right of operator "/": ZeroDivisionError: division by zero`,
		"expression": "1/0",
	}
	if diff := cmp.Diff(expected, err.Exception()); diff != "" {
		t.Errorf("exception mismatch (-want +got):\n%s", diff)
	}
}

func TestHasTag(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("evaluate: %w", &types.Error{Tag: types.ZeroDivisionErrorTag})
	if !types.HasTag(err, types.ZeroDivisionErrorTag) {
		t.Error("should have ZeroDivisionError tag")
	}
	if types.HasTag(err, types.ValueErrorTag) {
		t.Error("should not have ValueError tag")
	}
	if types.HasTag(errors.New("plain"), types.ZeroDivisionErrorTag) {
		t.Error("plain error should not have any tag")
	}
}

func TestNewSystemError(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		recovered any
		expected  string
	}{
		{recovered: errors.New("boom"), expected: "SystemError: boom"},
		{recovered: "nil pointer", expected: "SystemError: nil pointer"},
		{recovered: 42, expected: "SystemError: 42"},
	} {
		if got := types.NewSystemError(tt.recovered).Error(); got != tt.expected {
			t.Errorf("expect %q but got %q", tt.expected, got)
		}
	}
}

func TestExceptionOf(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("right of operator %q: %w", "/", &types.Error{Tag: types.ZeroDivisionErrorTag, Err: errors.New("division by zero")})
	expected := map[string]any{
		"tags":    []any{types.ZeroDivisionErrorTag},
		"message": `right of operator "/": ZeroDivisionError: division by zero`,
	}
	if diff := cmp.Diff(expected, types.ExceptionOf(err)); diff != "" {
		t.Errorf("exception mismatch (-want +got):\n%s", diff)
	}

	if _, ok := types.ExceptionOf(types.NewSystemError("boom")).(map[string]any); !ok {
		t.Error("SystemError should be a map exception")
	}
	if diff := cmp.Diff(any("plain"), types.ExceptionOf(errors.New("plain"))); diff != "" {
		t.Errorf("exception mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(any("raw"), types.ExceptionOf(types.NewExceptionByString("raw"))); diff != "" {
		t.Errorf("exception mismatch (-want +got):\n%s", diff)
	}
}
