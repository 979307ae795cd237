// SPDX-License-Identifier: MPL-2.0

package kcp

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	minijinja "github.com/mitsuhiko/minijinja/minijinja-go/v2"

	"kct/pkg/compiler"
)

// TemplatesFolder is the reserved subdirectory of the workspace root that
// the file extension searches.
const TemplatesFolder = "files"

// fileExtension implements kct.io/file: it expands a glob under the
// workspace's files directory and renders every match with the package input
// as template context.
type fileExtension struct{}

func (fileExtension) Name() compiler.ExtensionName { return compiler.ExtensionFile }

func (fileExtension) Generate(c *compiler.Compiler) compiler.Function {
	root := c.Workspace().Root()
	input := c.Snapshot().Input

	handler := func(args map[string]any) (any, error) {
		glob, ok := args["name"].(string)
		if !ok {
			return nil, fmt.Errorf("name should be a string")
		}

		rendered, err := renderTemplates(root, glob, input)
		if err != nil {
			return nil, err
		}

		switch len(rendered) {
		case 0:
			return nil, fmt.Errorf("no template found for glob %s", glob)
		case 1:
			return rendered[0], nil
		default:
			out := make([]any, len(rendered))
			for i, r := range rendered {
				out[i] = r
			}
			return out, nil
		}
	}

	return compiler.Function{Params: []string{"name"}, Handler: handler}
}

// renderTemplates expands glob under root/files and renders every match with
// a context built from input. Matches render in lexicographic path order so
// repeated compiles over an unchanged filesystem manifest identically,
// independent of directory-iteration order.
func renderTemplates(root, glob string, input any) ([]string, error) {
	dir := filepath.Join(root, TemplatesFolder)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("no %s folder to search for templates", TemplatesFolder)
	}

	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("invalid glob provided (%s)", glob)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), glob)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve globs: %v", err)
	}

	var paths []string
	for _, m := range matches {
		path := filepath.Join(dir, filepath.FromSlash(m))
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read templates: %v", err)
		}
		if info.Mode()&fs.ModeType != 0 {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	context := map[string]any{}
	if obj, ok := input.(map[string]any); ok {
		context = obj
	}

	env := minijinja.NewEnvironment()
	rendered := make([]string, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read templates: %v", err)
		}
		if err := env.AddTemplate(path, string(content)); err != nil {
			return nil, fmt.Errorf("unable to compile templates: %v", err)
		}
		tmpl, err := env.GetTemplate(path)
		if err != nil {
			return nil, fmt.Errorf("unable to compile templates: %v", err)
		}
		text, err := tmpl.Render(context)
		if err != nil {
			return nil, fmt.Errorf("unable to compile templates: %v", err)
		}
		rendered = append(rendered, text)
	}

	return rendered, nil
}
