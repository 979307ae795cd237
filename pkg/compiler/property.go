// SPDX-License-Identifier: MPL-2.0

package compiler

// PropertyName identifies a host-computed JSON value injected into the
// evaluation. The set of names is closed: the compiler binds every name in
// the enumeration on each compile, using null for names with no registered
// generator.
type PropertyName string

// The closed property enumeration, in generation order.
const (
	PropertyPackage PropertyName = "package"
	PropertyRelease PropertyName = "release"
	PropertyInput   PropertyName = "input"
)

// propertyNames returns the enumeration in generation order. Generation is
// eager and happens once per compile, so a later property may consult an
// earlier one through the Runtime.
func propertyNames() []PropertyName {
	return []PropertyName{PropertyPackage, PropertyRelease, PropertyInput}
}

// ExtensionName identifies a host-implemented function injected into the
// evaluation. Like PropertyName, the set is closed and unregistered names
// are bound to null (invoking null is a template-level type error, not a
// compiler error).
type ExtensionName string

// The closed extension enumeration.
const (
	ExtensionInclude ExtensionName = "include"
	ExtensionFile    ExtensionName = "file"
)

func extensionNames() []ExtensionName {
	return []ExtensionName{ExtensionInclude, ExtensionFile}
}

// Runtime is the read-only view handed to property generators. It exposes
// the workspace and the values of properties generated earlier in the
// enumeration order; generators must not mutate either.
type Runtime struct {
	Workspace  Workspace
	Properties map[PropertyName]any
}

// Property generates a plain JSON value bound under the reserved namespace.
// Implementations must be pure with respect to the runtime view.
type Property interface {
	Name() PropertyName
	Generate(rt Runtime) any
}

// Function is a native callable exposed to the template language. The
// evaluator invokes Handler with one entry per declared parameter; a non-nil
// error surfaces as a template evaluation error, never as a host panic.
type Function struct {
	Params  []string
	Handler func(args map[string]any) (any, error)
}

// Extension generates a Function. Unlike a Property it receives the whole
// Compiler, so it can read the workspace or take a Compilation snapshot of
// sibling property values.
type Extension interface {
	Name() ExtensionName
	Generate(c *Compiler) Function
}

// Validator is a predicate over the fully configured Compiler, run before
// any evaluation. A false result aborts compilation with ErrInvalidInput.
type Validator func(c *Compiler) bool

// Compilation is a read-only snapshot of the property values a Compiler
// would inject, for generators that need sibling values at generation time.
// Absent properties are nil.
type Compilation struct {
	Package any
	Input   any
	Release any
}
