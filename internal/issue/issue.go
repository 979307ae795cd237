// SPDX-License-Identifier: MPL-2.0

// Package issue maps the failures users actually hit to rendered markdown
// diagnostics with concrete next steps.
package issue

import (
	"errors"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"kct/pkg/compiler"
	"kct/pkg/kcp"
)

type Id int

const (
	SpecMissingId Id = iota + 1
	SpecInvalidId
	EntrypointMissingId
	ArchiveCorruptId
	ExampleInvalidId
	InputRejectedId
	RenderFailedId
)

type MarkdownMsg string

type HttpLink string

// Issue is a user-facing diagnostic for one failure class.
type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render returns the diagnostic as terminal-styled text.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	specMissingIssue = &Issue{
		id: SpecMissingId,
		mdMsg: `
# No package spec found!

Every package needs a ` + "`kcp.json`" + ` at its root declaring at least a
name and a version.

## Things you can try:
- Create one:
~~~json
{"name": "my-package", "version": "0.1.0"}
~~~
- Check you pointed kct at the package root, not a subdirectory.`,
	}

	specInvalidIssue = &Issue{
		id: SpecInvalidId,
		mdMsg: `
# Invalid package spec!

The ` + "`kcp.json`" + ` file exists but does not satisfy the spec schema.

## Rules:
- ` + "`name`" + `: lowercase letters, digits and dashes, starting with a letter
- ` + "`version`" + `: a semantic version like ` + "`1.2.3`" + `

The error message above names the offending field.`,
	}

	entrypointMissingIssue = &Issue{
		id: EntrypointMissingId,
		mdMsg: `
# No entrypoint template!

Compilation evaluates ` + "`templates/main.jsonnet`" + ` under the package
root, and that file is missing.

## Things you can try:
- Create a minimal entrypoint:
~~~jsonnet
local sdk = import 'kct.io';

{ name: sdk.name }
~~~`,
	}

	archiveCorruptIssue = &Issue{
		id: ArchiveCorruptId,
		mdMsg: `
# Unreadable package artifact!

The path looks like a packed package (it has a file extension) but could
not be unpacked as a gzipped tarball.

## Things you can try:
- Re-create the artifact with ` + "`kct pack <package-dir>`" + `
- Pass the package directory instead of an artifact.`,
	}

	exampleInvalidIssue = &Issue{
		id: ExampleInvalidId,
		mdMsg: `
# Broken schema/example pair!

A package that declares a ` + "`schema.json`" + ` must ship an
` + "`example.json`" + ` satisfying it; an example without a schema is just
as broken. The example is the schema's own conformance proof.`,
	}

	inputRejectedIssue = &Issue{
		id: InputRejectedId,
		mdMsg: `
# Input rejected!

The input does not fit the package's declared schema (or the schema/input
pairing rules).

## Rules:
- A package with a schema requires an input
- A package without a schema rejects any input
- Inputs must be JSON objects satisfying ` + "`schema.json`" + `

## Things you can try:
- Compare your input with the package's ` + "`example.json`" + ``,
	}

	renderFailedIssue = &Issue{
		id: RenderFailedId,
		mdMsg: `
# Template evaluation failed!

The entrypoint (or something it imports) did not evaluate cleanly. The
message above comes straight from the evaluator.

## Common causes:
- Syntax errors in a template
- Imports that resolve neither relative to the importer nor in vendor/lib
- Calling an extension the compile did not register (bound to null)
- A ` + "`file()`" + ` glob matching nothing under ` + "`files/`" + ``,
	}

	issues = map[Id]*Issue{
		specMissingIssue.Id():       specMissingIssue,
		specInvalidIssue.Id():       specInvalidIssue,
		entrypointMissingIssue.Id(): entrypointMissingIssue,
		archiveCorruptIssue.Id():    archiveCorruptIssue,
		exampleInvalidIssue.Id():    exampleInvalidIssue,
		inputRejectedIssue.Id():     inputRejectedIssue,
		renderFailedIssue.Id():      renderFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}

// FromError picks the diagnostic matching a compile/open failure. The second
// return is false for errors with no dedicated diagnostic.
func FromError(err error) (*Issue, bool) {
	var renderErr *compiler.RenderError
	switch {
	case errors.Is(err, kcp.ErrNoSpec):
		return Get(SpecMissingId), true
	case errors.Is(err, kcp.ErrInvalidSpec):
		return Get(SpecInvalidId), true
	case errors.Is(err, kcp.ErrNoMain):
		return Get(EntrypointMissingId), true
	case errors.Is(err, kcp.ErrInvalidFormat):
		return Get(ArchiveCorruptId), true
	case errors.Is(err, kcp.ErrNoExample), errors.Is(err, kcp.ErrInvalidExample):
		return Get(ExampleInvalidId), true
	case errors.Is(err, kcp.ErrNoSchema), errors.Is(err, kcp.ErrNoInput), errors.Is(err, compiler.ErrInvalidInput):
		return Get(InputRejectedId), true
	case errors.As(err, &renderErr):
		return Get(RenderFailedId), true
	default:
		return nil, false
	}
}
