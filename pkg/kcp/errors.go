// SPDX-License-Identifier: MPL-2.0

package kcp

import "errors"

var (
	// ErrInvalidFormat reports a packed artifact that could not be unpacked.
	ErrInvalidFormat = errors.New("invalid package format")

	// ErrNoSpec reports a package without a kcp.json spec file.
	ErrNoSpec = errors.New("package has no spec file")

	// ErrInvalidSpec reports a kcp.json that failed schema validation.
	ErrInvalidSpec = errors.New("package spec is invalid")

	// ErrNoMain reports a package without a templates/main.jsonnet entrypoint.
	ErrNoMain = errors.New("package has no entrypoint template")

	// ErrInvalidSchema reports a schema.json that is not a valid JSON schema.
	ErrInvalidSchema = errors.New("package schema is invalid")

	// ErrNoSchema reports input given to a package that declares no schema.
	ErrNoSchema = errors.New("package declares no input schema")

	// ErrNoInput reports a package that declares a schema but got no input.
	ErrNoInput = errors.New("package requires an input")

	// ErrNoExample reports a package with a schema but no example.json.
	ErrNoExample = errors.New("package schema has no example")

	// ErrInvalidExample reports an example.json that does not satisfy the
	// package schema.
	ErrInvalidExample = errors.New("package example is invalid")
)
