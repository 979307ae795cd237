// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kct/pkg/kcp"
)

var (
	// compileInput is the path to a JSON input document
	compileInput string
	// compileRelease is the release name; empty means an unreleased compile
	compileRelease string
	// compileOutput is the output file path; empty means stdout (or the
	// configured output directory)
	compileOutput string
)

// compileCmd compiles a package into its final JSON document
var compileCmd = &cobra.Command{
	Use:   "compile <package>",
	Short: "Compile a package into a JSON document",
	Long: `Compile a package (a directory or a packed .kcp artifact) into its
final JSON document.

Packages declaring a ` + CmdStyle.Render("schema.json") + ` require an input
document passed with --input; packages without one reject any input.
Passing --release binds release metadata that templates can read.

Examples:
  kct compile ./my-package
  kct compile ./my-package --input input.json
  kct compile my-package_0.1.0.kcp -i input.json -r prod -o out.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileInput, "input", "i", "", "JSON file with the input document")
	compileCmd.Flags().StringVarP(&compileRelease, "release", "r", "", "release name to compile under")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "file to write the document to (default stdout)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	var input any
	if compileInput != "" {
		data, err := os.ReadFile(compileInput)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		if err := json.Unmarshal(data, &input); err != nil {
			return fmt.Errorf("failed to parse input file: %w", err)
		}
	}

	var release *kcp.Release
	if compileRelease != "" {
		release = &kcp.Release{Name: compileRelease}
	}

	pkg, err := kcp.Open(args[0])
	if err != nil {
		return displayError(err)
	}
	defer pkg.Close()

	doc, err := pkg.Compile(input, release)
	if err != nil {
		return displayError(err)
	}

	rendered, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	dest := compileOutput
	if dest == "" && cfg.OutputDir != "" {
		dest = filepath.Join(cfg.OutputDir, pkg.Spec.Name+".json")
	}
	if dest == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(dest, append(rendered, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ ")+"wrote "+CmdStyle.Render(dest))
	return nil
}
