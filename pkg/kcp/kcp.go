// SPDX-License-Identifier: MPL-2.0

package kcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"kct/pkg/compiler"
)

// Well-known files inside a package directory.
const (
	SpecFile    = "kcp.json"
	SchemaFile  = "schema.json"
	ExampleFile = "example.json"
	MainFile    = "templates/main.jsonnet"
)

// Package is a discovered configuration package: its root directory, the
// entrypoint template, the parsed spec, and the optional input schema and
// example.
type Package struct {
	Root    string
	Main    string
	Spec    Spec
	Schema  *Schema
	Example any

	// brownfield is the temporary root a packed artifact was unpacked into,
	// empty when the package was opened from a plain directory.
	brownfield string
}

// Open discovers a package at path. A directory is read in place; a path
// with a file extension is treated as a packed artifact and unpacked into a
// temporary root first (release it with Close). The spec and entrypoint are
// mandatory; when a schema is present the example must exist and satisfy it.
func Open(path string) (*Package, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve package path: %w", err)
	}

	root := abs
	brownfield := ""
	if filepath.Ext(abs) != "" {
		brownfield, err = os.MkdirTemp("", "kcp-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary directory to unpack package: %w", err)
		}
		if err := unarchive(abs, brownfield); err != nil {
			os.RemoveAll(brownfield)
			return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
		root = brownfield
		log.Debug("unpacked package artifact", "from", abs, "to", root)
	}

	pkg, err := openDir(root)
	if err != nil {
		if brownfield != "" {
			os.RemoveAll(brownfield)
		}
		return nil, err
	}
	pkg.brownfield = brownfield
	return pkg, nil
}

func openDir(root string) (*Package, error) {
	specPath := filepath.Join(root, SpecFile)
	if _, err := os.Stat(specPath); err != nil {
		return nil, ErrNoSpec
	}
	spec, err := loadSpec(specPath)
	if err != nil {
		return nil, err
	}

	var schema *Schema
	if schemaPath := filepath.Join(root, SchemaFile); fileExists(schemaPath) {
		schema, err = loadSchema(schemaPath)
		if err != nil {
			return nil, err
		}
	}

	var example any
	hasExample := false
	if examplePath := filepath.Join(root, ExampleFile); fileExists(examplePath) {
		data, err := os.ReadFile(examplePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidExample, err)
		}
		if err := json.Unmarshal(data, &example); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidExample, err)
		}
		hasExample = true
	}

	main := filepath.Join(root, filepath.FromSlash(MainFile))
	if !fileExists(main) {
		return nil, ErrNoMain
	}

	// A schema without an example (or the reverse) is a broken package: the
	// example is the schema's own conformance proof.
	if err := checkInput(schema, example, hasExample); err != nil {
		switch {
		case errors.Is(err, ErrNoInput):
			return nil, ErrNoExample
		case errors.Is(err, compiler.ErrInvalidInput):
			return nil, ErrInvalidExample
		default:
			return nil, err
		}
	}

	return &Package{
		Root:    root,
		Main:    main,
		Spec:    spec,
		Schema:  schema,
		Example: example,
	}, nil
}

// Close removes the temporary unpack root, if any. It is a no-op for
// packages opened from plain directories.
func (p *Package) Close() error {
	if p.brownfield == "" {
		return nil
	}
	return os.RemoveAll(p.brownfield)
}

// Archive packs the package into dest as <name>_<version>.kcp and returns
// the artifact path.
func (p *Package) Archive(dest string) (string, error) {
	name := fmt.Sprintf("%s_%s", p.Spec.Name, p.Spec.Version)
	return archive(name, p.Root, dest)
}

// Compile validates input against the package schema and evaluates the
// entrypoint into a final JSON value. A nil input means "no input"; packages
// with a schema require one, packages without reject one.
func (p *Package) Compile(input any, release *Release) (any, error) {
	if err := checkInput(p.Schema, input, input != nil); err != nil {
		return nil, err
	}

	ws, err := compiler.WorkspaceBuilder{Root: p.Root, Entrypoint: p.Main}.Build()
	if err != nil {
		return nil, err
	}
	return p.compile(ws, input, release)
}

// compile runs the engine over an explicit workspace. The include extension
// uses this to evaluate vendored sub-packages inside a workspace that shares
// the parent's vendor directory.
func (p *Package) compile(ws compiler.Workspace, input any, release *Release) (any, error) {
	c := compiler.New(ws).
		Prop(packageProperty{spec: p.Spec}).
		Extension(fileExtension{}).
		Extension(includeExtension{release: release})

	if input != nil {
		c.Prop(inputProperty{value: input})
	}
	if release != nil {
		c.Prop(releaseProperty{release: *release})
	}

	// Re-assert the schema contract over the values actually injected; this
	// runs with the other validators before any evaluation.
	c.Validator(func(c *compiler.Compiler) bool {
		if p.Schema == nil {
			return true
		}
		snap := c.Snapshot()
		return snap.Input != nil && p.Schema.Validate(snap.Input)
	})

	log.Debug("compiling package", "name", p.Spec.Name, "version", p.Spec.Version, "released", release != nil)
	return c.Compile()
}

// checkInput enforces the schema/input pairing rules: neither is fine, a
// schema demands an input, an input demands a schema, and a present pair
// must validate with an object-shaped input.
func checkInput(schema *Schema, input any, hasInput bool) error {
	switch {
	case schema == nil && !hasInput:
		return nil
	case schema == nil:
		return ErrNoSchema
	case !hasInput:
		return ErrNoInput
	}

	if _, isObject := input.(map[string]any); !isObject {
		return compiler.ErrInvalidInput
	}
	if !schema.Validate(input) {
		return compiler.ErrInvalidInput
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
