// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidInput reports that a validator rejected the configured
	// Compiler, or that a required workspace field was never set.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidOutput reports that the manifested text failed to parse as
	// JSON. This indicates an internal consistency bug in the evaluator, not
	// a user error.
	ErrInvalidOutput = errors.New("invalid output")
)

// RenderError reports a failure during template evaluation or manifesting:
// syntax errors, unresolved imports, runtime errors raised inside the
// template language (including errors returned by native extension
// functions) and manifesting failures.
type RenderError struct {
	Message string
}

// Error implements the error interface.
func (e *RenderError) Error() string { return e.Message }

// staticErrorLocation matches the "<path>:<line>:<col>" prefix the evaluator
// puts on static (parse/import) errors. Runtime errors carry a "RUNTIME
// ERROR:" prefix instead.
var staticErrorLocation = regexp.MustCompile(`^(.+?):\d+:\d+`)

// asRenderError translates an evaluator failure into a RenderError. Syntax
// failures are common enough to warrant a friendlier message naming just the
// offending file; everything else keeps the evaluator's text.
func asRenderError(err error) *RenderError {
	msg := err.Error()
	if !strings.HasPrefix(msg, "RUNTIME ERROR") {
		if m := staticErrorLocation.FindStringSubmatch(msg); m != nil {
			return &RenderError{Message: "syntax error at " + m[1]}
		}
	}
	return &RenderError{Message: msg}
}
