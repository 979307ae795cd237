// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-jsonnet"
)

// Resolver turns an "importer + import spec" pair into resolved content. A
// resolver may decline (ok == false), which is not an error by itself: the
// chain simply moves on to the next member.
type Resolver interface {
	Resolve(importedFrom, importPath string) (foundAt string, contents []byte, ok bool)
}

// StaticResolver serves one fixed virtual path with fixed in-memory content,
// independent of the filesystem. It is how the compiler's built-in helper
// library reaches every template, and it is registered first in the chain so
// a same-named file on disk can never shadow it.
type StaticResolver struct {
	Path     string
	Contents string
}

// Resolve implements Resolver.
func (r StaticResolver) Resolve(_, importPath string) (string, []byte, bool) {
	if importPath != r.Path {
		return "", nil, false
	}
	return r.Path, []byte(r.Contents), true
}

// RelativeResolver resolves imports relative to the importing file's
// directory, succeeding only when the resulting path exists and is readable.
// Absolute import specs (notably the entrypoint itself, which the evaluator
// loads through the same chain) are tried as-is.
type RelativeResolver struct{}

// Resolve implements Resolver.
func (RelativeResolver) Resolve(importedFrom, importPath string) (string, []byte, bool) {
	candidate := importPath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(filepath.Dir(importedFrom), importPath)
	}
	return readCandidate(candidate)
}

// LibResolver resolves imports by searching an ordered list of library root
// directories; the first existing, readable match wins.
type LibResolver struct {
	Roots []string
}

// Resolve implements Resolver.
func (r LibResolver) Resolve(_, importPath string) (string, []byte, bool) {
	for _, root := range r.Roots {
		if foundAt, contents, ok := readCandidate(filepath.Join(root, importPath)); ok {
			return foundAt, contents, ok
		}
	}
	return "", nil, false
}

func readCandidate(candidate string) (string, []byte, bool) {
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", nil, false
	}
	contents, err := os.ReadFile(candidate)
	if err != nil {
		return "", nil, false
	}
	foundAt, err := filepath.Abs(candidate)
	if err != nil {
		foundAt = filepath.Clean(candidate)
	}
	return foundAt, contents, true
}

// chainImporter aggregates resolvers in registration order and bridges them
// to the evaluator. Contents are cached per resolved path: the evaluator
// requires identical content for the same foundAt within one VM.
type chainImporter struct {
	resolvers []Resolver
	cache     map[string]jsonnet.Contents
}

func newChainImporter(resolvers ...Resolver) *chainImporter {
	return &chainImporter{
		resolvers: resolvers,
		cache:     make(map[string]jsonnet.Contents),
	}
}

// Import implements jsonnet.Importer: first non-declining resolver wins, and
// an all-decline becomes the evaluator's import failure.
func (c *chainImporter) Import(importedFrom, importPath string) (jsonnet.Contents, string, error) {
	for _, r := range c.resolvers {
		foundAt, contents, ok := r.Resolve(importedFrom, importPath)
		if !ok {
			continue
		}
		if cached, hit := c.cache[foundAt]; hit {
			return cached, foundAt, nil
		}
		made := jsonnet.MakeContents(string(contents))
		c.cache[foundAt] = made
		return made, foundAt, nil
	}
	return jsonnet.Contents{}, "", fmt.Errorf("couldn't resolve import %q", importPath)
}
