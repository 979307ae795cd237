// SPDX-License-Identifier: MPL-2.0

// kct compiles declarative configuration packages into final JSON documents.
package main

import cmd "kct/cmd/kct"

func main() {
	cmd.Execute()
}
