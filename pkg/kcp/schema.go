// SPDX-License-Identifier: MPL-2.0

package kcp

import (
	"bytes"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema answers whether an input satisfies the package's schema.json. The
// compilation engine only ever consumes it as a yes/no oracle.
type Schema struct {
	compiled *jsonschema.Schema
}

// loadSchema reads and compiles a schema.json file.
func loadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(SchemaFile, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	compiled, err := c.Compile(SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	return &Schema{compiled: compiled}, nil
}

// Validate reports whether input satisfies the schema.
func (s *Schema) Validate(input any) bool {
	return s.compiled.Validate(input) == nil
}
