// SPDX-License-Identifier: MPL-2.0

package kcp_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"kct/pkg/compiler"
	"kct/pkg/kcp"
)

func TestIncludeCompilesVendoredPackage(t *testing.T) {
	t.Parallel()

	pkg := openPackage(t, map[string]string{
		"kcp.json":                            minimalSpec,
		"templates/main.jsonnet":              `local sdk = import 'kct.io'; {child: sdk.include('child')}`,
		"vendor/child/kcp.json":               `{"name": "child", "version": "1.0.0"}`,
		"vendor/child/templates/main.jsonnet": `{"ok": true}`,
	})

	got, err := pkg.Compile(nil, nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	want := map[string]any{"child": map[string]any{"ok": true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compile() = %#v, want %#v", got, want)
	}
}

func TestIncludePassesInputToSubPackage(t *testing.T) {
	t.Parallel()

	pkg := openPackage(t, map[string]string{
		"kcp.json":                            minimalSpec,
		"templates/main.jsonnet":              `local sdk = import 'kct.io'; sdk.include('child', {replicas: 2})`,
		"vendor/child/kcp.json":               `{"name": "child", "version": "1.0.0"}`,
		"vendor/child/schema.json":            inputSchema,
		"vendor/child/example.json":           `{"replicas": 1}`,
		"vendor/child/templates/main.jsonnet": `{"replicas": std.extVar("kct.io/input").replicas}`,
	})

	got, err := pkg.Compile(nil, nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	want := map[string]any{"replicas": 2.0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compile() = %#v, want %#v", got, want)
	}
}

func TestIncludePropagatesRelease(t *testing.T) {
	t.Parallel()

	pkg := openPackage(t, map[string]string{
		"kcp.json":                            minimalSpec,
		"templates/main.jsonnet":              `local sdk = import 'kct.io'; sdk.include('child')`,
		"vendor/child/kcp.json":               `{"name": "child", "version": "1.0.0"}`,
		"vendor/child/templates/main.jsonnet": `local sdk = import 'kct.io'; {name: sdk.name}`,
	})

	got, err := pkg.Compile(nil, &kcp.Release{Name: "prod"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	want := map[string]any{"name": "prod-child"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compile() = %#v, want %#v", got, want)
	}
}

func TestIncludeSharesVendorWithSubPackages(t *testing.T) {
	t.Parallel()

	// child includes sibling, which lives in the top-level vendor tree, not
	// under child's own root: the derived workspace keeps the parent vendor.
	pkg := openPackage(t, map[string]string{
		"kcp.json":                              minimalSpec,
		"templates/main.jsonnet":                `local sdk = import 'kct.io'; sdk.include('child')`,
		"vendor/child/kcp.json":                 `{"name": "child", "version": "1.0.0"}`,
		"vendor/child/templates/main.jsonnet":   `local sdk = import 'kct.io'; {nested: sdk.include('sibling')}`,
		"vendor/sibling/kcp.json":               `{"name": "sibling", "version": "1.0.0"}`,
		"vendor/sibling/templates/main.jsonnet": `{"leaf": true}`,
	})

	got, err := pkg.Compile(nil, nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	want := map[string]any{"nested": map[string]any{"leaf": true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compile() = %#v, want %#v", got, want)
	}
}

func TestIncludeUnknownPackageFails(t *testing.T) {
	t.Parallel()

	pkg := openPackage(t, map[string]string{
		"kcp.json":               minimalSpec,
		"templates/main.jsonnet": `local sdk = import 'kct.io'; sdk.include('ghost')`,
	})

	_, err := pkg.Compile(nil, nil)
	var renderErr *compiler.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Compile() error = %v, want *RenderError", err)
	}
	if !strings.Contains(renderErr.Message, "ghost is not vendored") {
		t.Errorf("Message = %q, want the missing package named", renderErr.Message)
	}
}
