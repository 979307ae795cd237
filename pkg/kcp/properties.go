// SPDX-License-Identifier: MPL-2.0

package kcp

import "kct/pkg/compiler"

// packageProperty exposes the package metadata from kcp.json as the
// kct.io/package binding.
type packageProperty struct {
	spec Spec
}

func (p packageProperty) Name() compiler.PropertyName { return compiler.PropertyPackage }

func (p packageProperty) Generate(compiler.Runtime) any {
	value := map[string]any{
		"name":    p.spec.Name,
		"version": p.spec.Version,
	}
	if p.spec.Description != "" {
		value["description"] = p.spec.Description
	}
	return value
}

// inputProperty exposes the already-validated input as kct.io/input.
type inputProperty struct {
	value any
}

func (p inputProperty) Name() compiler.PropertyName   { return compiler.PropertyInput }
func (p inputProperty) Generate(compiler.Runtime) any { return p.value }

// releaseProperty exposes the release metadata as kct.io/release.
type releaseProperty struct {
	release Release
}

func (p releaseProperty) Name() compiler.PropertyName { return compiler.PropertyRelease }

func (p releaseProperty) Generate(compiler.Runtime) any {
	return map[string]any{"name": p.release.Name}
}
