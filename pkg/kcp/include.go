// SPDX-License-Identifier: MPL-2.0

package kcp

import (
	"fmt"
	"os"
	"path/filepath"

	"kct/pkg/compiler"
)

// includeExtension implements kct.io/include: it compiles a vendored
// sub-package with a caller-supplied input and returns the compiled value.
// The sub-package evaluates inside a workspace that shares the parent's
// vendor directory, so transitive includes resolve against the same tree,
// and it inherits the parent's release.
type includeExtension struct {
	release *Release
}

func (includeExtension) Name() compiler.ExtensionName { return compiler.ExtensionInclude }

func (e includeExtension) Generate(c *compiler.Compiler) compiler.Function {
	vendor := c.Workspace().Vendor()
	release := e.release

	handler := func(args map[string]any) (any, error) {
		name, ok := args["name"].(string)
		if !ok {
			return nil, fmt.Errorf("name should be a string")
		}
		input := args["input"]

		dir := filepath.Join(vendor, name)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("package %s is not vendored", name)
		}

		sub, err := Open(dir)
		if err != nil {
			return nil, fmt.Errorf("unable to include %s: %v", name, err)
		}

		if err := checkInput(sub.Schema, input, input != nil); err != nil {
			return nil, fmt.Errorf("invalid input for included package %s: %v", name, err)
		}

		ws, err := compiler.WorkspaceBuilder{
			Root:       sub.Root,
			Entrypoint: sub.Main,
			Vendor:     vendor,
		}.Build()
		if err != nil {
			return nil, fmt.Errorf("unable to include %s: %v", name, err)
		}

		value, err := sub.compile(ws, input, release)
		if err != nil {
			return nil, fmt.Errorf("unable to include %s: %v", name, err)
		}
		return value, nil
	}

	return compiler.Function{Params: []string{"name", "input"}, Handler: handler}
}
