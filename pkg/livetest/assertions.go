package livetest

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// Assert provides assertion helpers for tests.
type Assert struct {
	t *testing.T
}

// NewAssert creates a new Assert instance.
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t}
}

// True asserts that a condition is true.
func (a *Assert) True(condition bool, msgAndArgs ...any) {
	a.t.Helper()
	if !condition {
		a.fail("Expected true but got false", msgAndArgs...)
	}
}

// False asserts that a condition is false.
func (a *Assert) False(condition bool, msgAndArgs ...any) {
	a.t.Helper()
	if condition {
		a.fail("Expected false but got true", msgAndArgs...)
	}
}

// Equal asserts that two values are equal.
func (a *Assert) Equal(expected, actual any, msgAndArgs ...any) {
	a.t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		a.fail(fmt.Sprintf("Expected %v (%T) but got %v (%T)", expected, expected, actual, actual), msgAndArgs...)
	}
}

// NoError asserts that err is nil.
func (a *Assert) NoError(err error, msgAndArgs ...any) {
	a.t.Helper()
	if err != nil {
		a.fail(fmt.Sprintf("Unexpected error: %v", err), msgAndArgs...)
	}
}

// Error asserts that err is not nil.
func (a *Assert) Error(err error, msgAndArgs ...any) {
	a.t.Helper()
	if err == nil {
		a.fail("Expected an error but got nil", msgAndArgs...)
	}
}

// Contains asserts that str contains substring.
func (a *Assert) Contains(str, substring string, msgAndArgs ...any) {
	a.t.Helper()
	if !strings.Contains(str, substring) {
		a.fail(fmt.Sprintf("%q does not contain %q", str, substring), msgAndArgs...)
	}
}

// Panics asserts that fn panics.
func (a *Assert) Panics(fn func(), msgAndArgs ...any) {
	a.t.Helper()
	defer func() {
		if recover() == nil {
			a.fail("Expected panic", msgAndArgs...)
		}
	}()
	fn()
}

func (a *Assert) fail(message string, msgAndArgs ...any) {
	a.t.Helper()
	if len(msgAndArgs) > 0 {
		message = fmt.Sprintf("%s: %s", message, fmt.Sprint(msgAndArgs...))
	}
	a.t.Error(message)
}
