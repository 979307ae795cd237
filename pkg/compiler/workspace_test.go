// SPDX-License-Identifier: MPL-2.0

package compiler_test

import (
	"errors"
	"path/filepath"
	"testing"

	"kct/pkg/compiler"
)

func TestBuildDefaultsLibAndVendorFromRoot(t *testing.T) {
	t.Parallel()

	ws, err := compiler.WorkspaceBuilder{
		Root:       filepath.Join("some", "pkg"),
		Entrypoint: filepath.Join("some", "pkg", "templates", "main.jsonnet"),
	}.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got, want := ws.Lib(), filepath.Join("some", "pkg", "lib"); got != want {
		t.Errorf("Lib() = %q, want %q", got, want)
	}
	if got, want := ws.Vendor(), filepath.Join("some", "pkg", "vendor"); got != want {
		t.Errorf("Vendor() = %q, want %q", got, want)
	}
}

func TestBuildKeepsExplicitOverrides(t *testing.T) {
	t.Parallel()

	lib := filepath.Join("elsewhere", "lib")
	ws, err := compiler.WorkspaceBuilder{
		Root:       "pkg",
		Entrypoint: filepath.Join("pkg", "main.jsonnet"),
		Lib:        lib,
	}.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := ws.Lib(); got != lib {
		t.Errorf("Lib() = %q, want %q", got, lib)
	}
	if got, want := ws.Vendor(), filepath.Join("pkg", "vendor"); got != want {
		t.Errorf("Vendor() = %q, want %q", got, want)
	}
}

func TestBuildFailsWithoutRoot(t *testing.T) {
	t.Parallel()

	_, err := compiler.WorkspaceBuilder{
		Entrypoint: filepath.Join("pkg", "main.jsonnet"),
	}.Build()
	if !errors.Is(err, compiler.ErrInvalidInput) {
		t.Fatalf("Build() error = %v, want ErrInvalidInput", err)
	}
}

func TestBuildFailsWithoutEntrypoint(t *testing.T) {
	t.Parallel()

	_, err := compiler.WorkspaceBuilder{Root: "pkg"}.Build()
	if !errors.Is(err, compiler.ErrInvalidInput) {
		t.Fatalf("Build() error = %v, want ErrInvalidInput", err)
	}
}

func TestFillSeedsUnsetFields(t *testing.T) {
	t.Parallel()

	parent, err := compiler.WorkspaceBuilder{
		Root:       "parent",
		Entrypoint: filepath.Join("parent", "main.jsonnet"),
	}.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	sub, err := parent.Fill(compiler.WorkspaceBuilder{
		Root:       filepath.Join("parent", "vendor", "dep"),
		Entrypoint: filepath.Join("parent", "vendor", "dep", "main.jsonnet"),
		Lib:        filepath.Join("parent", "vendor", "dep", "lib"),
	}).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// The derived workspace keeps the parent's vendor directory.
	if got, want := sub.Vendor(), filepath.Join("parent", "vendor"); got != want {
		t.Errorf("Vendor() = %q, want %q", got, want)
	}
	if got, want := sub.Root(), filepath.Join("parent", "vendor", "dep"); got != want {
		t.Errorf("Root() = %q, want %q", got, want)
	}
}
