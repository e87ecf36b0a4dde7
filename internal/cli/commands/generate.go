package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fractory-go/fractory/internal/cli/config"
	"github.com/fractory-go/fractory/internal/diag"
	"github.com/fractory-go/fractory/internal/inspect"
	"github.com/fractory-go/fractory/internal/processor"
	"github.com/fractory-go/fractory/internal/store"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	var (
		genVerbose bool
		genDir     string
	)

	cmd := &cobra.Command{
		Use:     "generate [packages...]",
		Aliases: []string{"gen"},
		Short:   "Run one generation round over the given packages",
		Long: `Run one generation round: discover annotated models and factory
declarations, generate a factory per declaration, persist factory manifests,
and generate a consolidated dispatcher for every consolidation point.

Package patterns default to the packages key in fractory.yaml, or ./... when
no configuration exists.`,
		Example: `  # Generate for the whole module
  fractory generate

  # Generate for specific packages with verbose output
  fractory generate ./models/... -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args, genDir, genVerbose)
		},
	}

	cmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Show detailed generation output")
	cmd.Flags().StringVarP(&genDir, "dir", "C", "", "Working directory for package resolution")

	return cmd
}

func runGenerate(args []string, dir string, verbose bool) error {
	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	infoColor := color.New(color.FgCyan)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Packages
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck
	}

	if verbose {
		infoColor.Printf("Scanning %v...\n", patterns)
	}
	res, err := inspect.Load(inspect.Config{Dir: dir, Patterns: patterns})
	if err != nil {
		return err
	}

	proc := processor.New(processor.Config{
		Store:  store.New(cfg.Artifacts.Dir, cfg.Artifacts.Path),
		Suffix: cfg.Generate.Suffix,
		Logger: logger,
	})

	rep := diag.NewReporter()
	sum := proc.Run(res, rep)
	printDiagnostics(rep)

	if rep.HasFatal() {
		errorColor.Println("✗ Generation failed")
		return fmt.Errorf("generation failed")
	}

	successColor.Print("✓ Generation complete ")
	infoColor.Printf("(%d models, %d factories, %d dispatchers, %d warnings, %s)\n",
		sum.Models, sum.Factories, sum.Dispatchers, sum.Warnings, sum.Duration.Round(time.Millisecond))
	return nil
}

func printDiagnostics(rep *diag.Reporter) {
	warningColor := color.New(color.FgYellow)
	errorColor := color.New(color.FgRed, color.Bold)

	for _, d := range rep.All() {
		switch {
		case d.Severity >= diag.Error:
			errorColor.Println(d.Error())
		case d.Severity == diag.Warning:
			warningColor.Println(d.Error())
		default:
			fmt.Println(d.Error())
		}
	}
}
