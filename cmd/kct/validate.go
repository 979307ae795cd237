// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kct/pkg/kcp"
)

// validateCmd checks that a package is structurally sound
var validateCmd = &cobra.Command{
	Use:   "validate <package>",
	Short: "Validate a package's structure",
	Long: `Validate a package (a directory or a packed .kcp artifact) without
compiling it.

Checks performed:
  - The spec (` + CmdStyle.Render("kcp.json") + `) exists and is well formed
  - The entrypoint (` + CmdStyle.Render("templates/main.jsonnet") + `) exists
  - A declared schema comes with an example satisfying it

Examples:
  kct validate ./my-package
  kct validate my-package_0.1.0.kcp`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	pkg, err := kcp.Open(args[0])
	if err != nil {
		return displayError(err)
	}
	defer pkg.Close()

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ ")+CmdStyle.Render(pkg.Spec.Name)+" "+pkg.Spec.Version+" is a valid package")
	return nil
}
