package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csln-go/csln/style"
)

var validateVerbose bool

var validateCmd = &cobra.Command{
	Use:   "validate <style>",
	Short: "Validate a style file without rendering",
	Long: `Validate parses a style document and reports schema errors, without
rendering anything (spec.md §6.4).

Examples:
  csln validate chicago.yaml
  csln validate chicago.yaml --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Show style summary on success")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	sty, err := style.Load(args[0])
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("✓ valid: %s (%s)\n", sty.Info.ID, sty.Info.Title)
	if validateVerbose {
		fmt.Printf("  processing mode: %s\n", sty.Options.ProcessingMode)
		fmt.Printf("  default locale:  %s\n", sty.Info.DefaultLocale)
		fmt.Printf("  citation template components: %d\n", len(sty.Citation.Template))
		fmt.Printf("  bibliography template components: %d\n", len(sty.Bibliography.Template))
		if len(sty.Grouping) > 0 {
			fmt.Printf("  groups: %d\n", len(sty.Grouping))
		}
	}
	return nil
}
