// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/go-jsonnet"
	"github.com/google/go-jsonnet/ast"
)

// VarsPrefix is the reserved namespace for every external binding injected
// into the evaluation. It doubles as the virtual import path of the embedded
// helper library.
const VarsPrefix = "kct.io"

//go:embed lib.libsonnet
var libCode string

// Compiler orchestrates one compilation: it owns the workspace plus the
// registered properties, extensions and validators, and consumes them in a
// single Compile call.
type Compiler struct {
	workspace  Workspace
	properties map[PropertyName]Property
	extensions map[ExtensionName]Extension
	validators []Validator
}

// New returns a Compiler over the given workspace with empty registries.
func New(workspace Workspace) *Compiler {
	return &Compiler{
		workspace:  workspace,
		properties: make(map[PropertyName]Property),
		extensions: make(map[ExtensionName]Extension),
	}
}

// Workspace returns the workspace this compiler evaluates in.
func (c *Compiler) Workspace() Workspace { return c.workspace }

// Prop registers a property generator. Registering a second generator for
// the same name overwrites the first.
func (c *Compiler) Prop(p Property) *Compiler {
	c.properties[p.Name()] = p
	return c
}

// Extension registers an extension generator. Last registration for a name
// wins.
func (c *Compiler) Extension(e Extension) *Compiler {
	c.extensions[e.Name()] = e
	return c
}

// Validator appends a validator. Validators run in registration order before
// any evaluation.
func (c *Compiler) Validator(v Validator) *Compiler {
	c.validators = append(c.validators, v)
	return c
}

// Snapshot generates the property values the compiler would inject and
// returns them as a read-only Compilation. Extensions use it to see sibling
// property values at generation time.
func (c *Compiler) Snapshot() Compilation {
	values := c.generateProperties()
	return Compilation{
		Package: values[PropertyPackage],
		Input:   values[PropertyInput],
		Release: values[PropertyRelease],
	}
}

// Compile runs the full pipeline: validators, evaluator construction,
// entrypoint evaluation, manifesting and the final parse back into a
// structured value. It either returns a fully parsed value or one error;
// there is no partial output.
func (c *Compiler) Compile() (any, error) {
	for _, validate := range c.validators {
		if !validate(c) {
			return nil, ErrInvalidInput
		}
	}

	vm := c.makeVM()
	if err := c.bind(vm); err != nil {
		return nil, err
	}

	log.Debug("evaluating entrypoint", "path", c.workspace.entrypoint)
	manifested, err := vm.EvaluateFile(c.workspace.entrypoint)
	if err != nil {
		return nil, asRenderError(err)
	}

	var value any
	if err := json.Unmarshal([]byte(manifested), &value); err != nil {
		return nil, fmt.Errorf("manifested text is not valid JSON: %w", ErrInvalidOutput)
	}

	return value, nil
}

// makeVM constructs a fresh evaluator with the three-member resolver chain.
// Resolution order is static, then relative, then library roots with vendor
// taking precedence over lib: reserved virtual imports always win, and
// file-relative imports win over library-path imports.
func (c *Compiler) makeVM() *jsonnet.VM {
	vm := jsonnet.MakeVM()
	vm.Importer(newChainImporter(
		StaticResolver{Path: VarsPrefix, Contents: libCode},
		RelativeResolver{},
		LibResolver{Roots: []string{c.workspace.vendor, c.workspace.lib}},
	))
	return vm
}

// bind injects one external variable per name in the two closed
// enumerations, under the reserved namespace prefix. Absent names bind to
// null.
func (c *Compiler) bind(vm *jsonnet.VM) error {
	values := c.generateProperties()
	for _, name := range propertyNames() {
		code, err := json.Marshal(values[name])
		if err != nil {
			return fmt.Errorf("property %s generated an unserializable value: %w", name, ErrInvalidOutput)
		}
		key := fmt.Sprintf("%s/%s", VarsPrefix, name)
		log.Debug("binding external variable", "name", key)
		vm.ExtCode(key, string(code))
	}

	for _, name := range extensionNames() {
		key := fmt.Sprintf("%s/%s", VarsPrefix, name)
		ext, registered := c.extensions[name]
		if !registered {
			vm.ExtCode(key, "null")
			continue
		}
		fn := ext.Generate(c)
		vm.NativeFunction(fn.native(key))
		log.Debug("binding native function", "name", key)
		vm.ExtCode(key, fmt.Sprintf("std.native(%q)", key))
	}

	return nil
}

// generateProperties evaluates every registered property once, in
// enumeration order, so later properties can consult earlier ones through
// the runtime view. Unregistered names stay nil.
func (c *Compiler) generateProperties() map[PropertyName]any {
	rt := Runtime{
		Workspace:  c.workspace,
		Properties: make(map[PropertyName]any),
	}
	for _, name := range propertyNames() {
		prop, registered := c.properties[name]
		if !registered {
			continue
		}
		rt.Properties[name] = prop.Generate(rt)
	}
	return rt.Properties
}

// native wraps the Function as an evaluator-native callable. The evaluator
// guarantees one argument per declared parameter; handler failures surface
// as evaluation-time errors.
func (f Function) native(name string) *jsonnet.NativeFunction {
	params := make(ast.Identifiers, len(f.Params))
	for i, p := range f.Params {
		params[i] = ast.Identifier(p)
	}
	return &jsonnet.NativeFunction{
		Name:   name,
		Params: params,
		Func: func(args []any) (any, error) {
			named := make(map[string]any, len(args))
			for i, p := range f.Params {
				named[p] = args[i]
			}
			return f.Handler(named)
		},
	}
}
