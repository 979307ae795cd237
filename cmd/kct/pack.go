// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kct/pkg/kcp"
)

// packOutput is the directory the artifact is written to
var packOutput string

// packCmd packs a package directory into a distributable artifact
var packCmd = &cobra.Command{
	Use:   "pack <package>",
	Short: "Pack a package into a .kcp artifact",
	Long: `Pack a package directory into a gzipped tarball named
` + CmdStyle.Render("<name>_<version>.kcp") + `, taking name and version from the
package spec. The package is validated before packing.

Examples:
  kct pack ./my-package
  kct pack ./my-package --output dist/`,
	Args: cobra.ExactArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringVarP(&packOutput, "output", "o", ".", "directory to write the artifact to")
}

func runPack(cmd *cobra.Command, args []string) error {
	pkg, err := kcp.Open(args[0])
	if err != nil {
		return displayError(err)
	}
	defer pkg.Close()

	artifact, err := pkg.Archive(packOutput)
	if err != nil {
		return fmt.Errorf("failed to pack package: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ ")+"packed "+CmdStyle.Render(artifact))
	return nil
}
