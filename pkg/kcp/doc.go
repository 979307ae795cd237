// SPDX-License-Identifier: MPL-2.0

// Package kcp locates configuration packages on disk and compiles them.
//
// A package is a directory (or a packed .kcp archive) holding a kcp.json
// spec, an optional schema.json describing valid inputs, an optional
// example.json satisfying that schema, and a templates/main.jsonnet
// entrypoint. Open discovers and validates that layout; Compile feeds it to
// the compilation engine with the package, input and release properties plus
// the file and include extensions registered under the kct.io namespace.
package kcp
