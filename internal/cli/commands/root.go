// Package commands wires the fractory CLI. The tool has no user-facing
// build flags beyond these commands: a host build system typically invokes
// `fractory generate` once per compilation unit, via go:generate or a build
// wrapper, and maps the exit status to build success or failure.
package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fractory",
		Short: "Compile-time JSON adapter-factory generator",
		Long: color.CyanString(`fractory - compile-time JSON adapter factories

fractory scans annotated model declarations, decides which serialization
extension applies to each, and generates a factory of adapters keyed by
model type. Factory manifests persisted per compilation unit let a later
aggregation round generate one consolidated dispatcher covering models
compiled elsewhere.

Supported extensions:
  • stdjson  - encoding/json binding
  • iterjson - json-iterator binding`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewModelsCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Print("fractory version: ")
			valueColor.Println(Version)

			titleColor.Print("Git commit: ")
			valueColor.Println(GitCommit)

			titleColor.Print("Build date: ")
			valueColor.Println(BuildDate)

			titleColor.Print("Go version: ")
			valueColor.Println(goVer)
		},
	}
}
