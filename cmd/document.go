package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csln-go/csln/engine"
	"github.com/csln-go/csln/outformat"
	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/style"
)

var (
	documentFormat      string
	documentNoSemantics bool
	documentOutputFile  string
	documentHeading     string
)

var documentCmd = &cobra.Command{
	Use:   "document <style> <bibliography> <source.dj>",
	Short: "Run the document pass over a Djot source file",
	Long: `Document walks a Djot source file, replaces citation tokens ([@key],
[+@key], [-@key], [!@key], [@a; @b, ch. 2]) with rendered citations, and
appends a rendered bibliography (spec.md §4.8).

Examples:
  csln document chicago.yaml refs.yaml paper.dj --format html -o paper.html`,
	Args: cobra.ExactArgs(3),
	RunE: runDocument,
}

func init() {
	documentCmd.Flags().StringVar(&documentFormat, "format", "plain", "Output format: plain|html|djot|latex")
	documentCmd.Flags().BoolVar(&documentNoSemantics, "no-semantics", false, "Disable csln-* semantic class/attribute output (html/djot)")
	documentCmd.Flags().StringVarP(&documentOutputFile, "output", "o", "", "Output file (default: stdout)")
	documentCmd.Flags().StringVar(&documentHeading, "heading", "", "Bibliography heading text (default: \"Bibliography\")")
	rootCmd.AddCommand(documentCmd)
}

func runDocument(cmd *cobra.Command, args []string) error {
	sty, err := style.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading style: %w", err)
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading bibliography: %w", err)
	}
	bib, err := reference.Load(data)
	if err != nil {
		return fmt.Errorf("loading bibliography: %w", err)
	}

	src, err := os.ReadFile(args[2])
	if err != nil {
		return fmt.Errorf("reading source document: %w", err)
	}

	loc, err := resolveLocale(sty)
	if err != nil {
		return fmt.Errorf("resolving locale: %w", err)
	}

	f, ok := outformat.Resolve(documentFormat, !documentNoSemantics)
	if !ok {
		return fmt.Errorf("unknown output format %q", documentFormat)
	}

	p := engine.New(sty, loc, bib, f)
	out, err := p.ProcessDocument(string(src), documentHeading)
	if err != nil {
		return fmt.Errorf("processing document: %w", err)
	}
	return writeOutput(documentOutputFile, out)
}
