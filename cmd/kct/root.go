// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for kct.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"kct/internal/config"
	"kct/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging
	verbose bool

	// cfg is the loaded CLI configuration, populated before any RunE fires.
	cfg = &config.Config{}

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "kct",
		Short: "A declarative configuration template compiler",
		Long: TitleStyle.Render("kct") + SubtitleStyle.Render(" - A declarative configuration template compiler") + `

kct compiles configuration packages (jsonnet templates plus a spec,
an optional input schema and static files) into final JSON documents.

A package is a directory with:
  - ` + CmdStyle.Render("kcp.json") + `                 the spec: name, version, description
  - ` + CmdStyle.Render("templates/main.jsonnet") + `   the entrypoint template
  - ` + CmdStyle.Render("schema.json") + `              optional input contract
  - ` + CmdStyle.Render("example.json") + `             an input satisfying the schema

` + SubtitleStyle.Render("Examples:") + `
  kct compile ./my-package                    Compile with no input
  kct compile ./my-package -i input.json      Compile with an input document
  kct compile ./my-package -r v1 -o out.json  Compile a release to a file
  kct pack ./my-package                       Pack into <name>_<version>.kcp
  kct validate ./my-package                   Check the package structure`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(validateCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initRootConfig reads the config file and environment overrides.
func initRootConfig() {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
		return
	}
	cfg = loaded

	if cfg.Verbose {
		verbose = true
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// displayError prints the rendered diagnostic for a failure class to stderr,
// when one exists, and hands the error back for fang to report.
func displayError(err error) error {
	if diag, ok := issue.FromError(err); ok {
		if md, renderErr := diag.Render("dark"); renderErr == nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+err.Error())
			fmt.Fprintln(os.Stderr, md)
		}
	}
	return err
}
