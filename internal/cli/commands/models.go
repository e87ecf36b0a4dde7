package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fractory-go/fractory/internal/cli/config"
	"github.com/fractory-go/fractory/internal/diag"
	"github.com/fractory-go/fractory/internal/inspect"
	"github.com/fractory-go/fractory/internal/strategy"
)

// NewModelsCommand creates the models command
func NewModelsCommand() *cobra.Command {
	var modelsDir string

	cmd := &cobra.Command{
		Use:   "models [packages...]",
		Short: "List discovered models and the extensions that match them",
		Long: `Discover annotated model declarations and show, without generating
anything, which serialization extensions consider each of them eligible.
Near-miss member signatures are reported as they would be during generation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModels(args, modelsDir)
		},
	}

	cmd.Flags().StringVarP(&modelsDir, "dir", "C", "", "Working directory for package resolution")

	return cmd
}

func runModels(args []string, dir string) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	matchColor := color.New(color.FgGreen)
	noneColor := color.New(color.FgYellow)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Packages
	}

	res, err := inspect.Load(inspect.Config{Dir: dir, Patterns: patterns})
	if err != nil {
		return err
	}
	if len(res.Models) == 0 {
		noneColor.Println("No annotated models found")
		return nil
	}

	rep := diag.NewReporter()
	exts := strategy.Registry()
	for _, m := range res.Models {
		titleColor.Println(m.FQN())
		matched := false
		for _, ext := range exts {
			if ext.IsApplicable(m, rep) {
				matchColor.Printf("  ✓ %s\n", ext.ID())
				matched = true
			}
		}
		if !matched {
			noneColor.Println("  (no extension applies)")
		}
	}

	printDiagnostics(rep)
	fmt.Printf("%d models\n", len(res.Models))
	return nil
}
