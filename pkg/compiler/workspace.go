// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultLibDir is the first-party library directory under the
	// workspace root.
	DefaultLibDir = "lib"

	// DefaultVendorDir is the vendored third-party library directory under
	// the workspace root.
	DefaultVendorDir = "vendor"
)

// Workspace describes where a package's files live: the root directory, the
// entrypoint template, the first-party library directory and the vendored
// third-party library directory. It is immutable once built.
type Workspace struct {
	root       string
	entrypoint string
	lib        string
	vendor     string
}

// Root returns the workspace root directory.
func (w Workspace) Root() string { return w.root }

// Entrypoint returns the template file evaluated to produce the package output.
func (w Workspace) Entrypoint() string { return w.entrypoint }

// Lib returns the first-party library directory.
func (w Workspace) Lib() string { return w.lib }

// Vendor returns the vendored third-party library directory. Sub-workspaces
// derived from the same base share this directory.
func (w Workspace) Vendor() string { return w.vendor }

// WorkspaceBuilder assembles a Workspace field by field. Every field is
// optional at input; Build runs a single defaulting pass and then a strict
// completeness check. No I/O happens during construction, so none of the
// paths need to exist yet.
type WorkspaceBuilder struct {
	Root       string
	Entrypoint string
	Lib        string
	Vendor     string
}

// setup fills in directory-relative defaults: when Root is known, Lib and
// Vendor default to Root/lib and Root/vendor unless explicitly overridden.
func (b WorkspaceBuilder) setup() WorkspaceBuilder {
	if b.Root == "" {
		return b
	}
	if b.Lib == "" {
		b.Lib = filepath.Join(b.Root, DefaultLibDir)
	}
	if b.Vendor == "" {
		b.Vendor = filepath.Join(b.Root, DefaultVendorDir)
	}
	return b
}

// Build applies the defaulting pass and returns the finished Workspace. It
// fails with ErrInvalidInput if any of the four fields remains unset.
func (b WorkspaceBuilder) Build() (Workspace, error) {
	b = b.setup()

	var missing []string
	if b.Root == "" {
		missing = append(missing, "root")
	}
	if b.Entrypoint == "" {
		missing = append(missing, "entrypoint")
	}
	if b.Lib == "" {
		missing = append(missing, "lib")
	}
	if b.Vendor == "" {
		missing = append(missing, "vendor")
	}
	if len(missing) > 0 {
		return Workspace{}, fmt.Errorf("workspace is missing %s: %w", strings.Join(missing, ", "), ErrInvalidInput)
	}

	return Workspace{
		root:       b.Root,
		entrypoint: b.Entrypoint,
		lib:        b.Lib,
		vendor:     b.Vendor,
	}, nil
}

// Fill seeds every unset field of the builder from this workspace. It is the
// mechanism for deriving sub-workspaces that keep the parent's directories
// (most importantly the shared vendor root) while overriding the rest.
func (w Workspace) Fill(b WorkspaceBuilder) WorkspaceBuilder {
	if b.Root == "" {
		b.Root = w.root
	}
	if b.Entrypoint == "" {
		b.Entrypoint = w.entrypoint
	}
	if b.Lib == "" {
		b.Lib = w.lib
	}
	if b.Vendor == "" {
		b.Vendor = w.vendor
	}
	return b
}
