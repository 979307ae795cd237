// SPDX-License-Identifier: MPL-2.0

// Package compiler turns a package workspace into a final JSON document.
//
// A Compiler owns a Workspace plus registries of properties (host-computed
// JSON values), extensions (host-implemented functions) and validators. At
// compile time it configures a fresh jsonnet evaluator with a chained import
// resolver and one external binding per registered name under the reserved
// kct.io namespace, evaluates the workspace entrypoint, and parses the
// manifested text back into a structured value.
//
// A Compiler is configured once through chained registration calls and is
// intended for a single Compile invocation; independent compiles must use
// independent Compiler instances.
package compiler
