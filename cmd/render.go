package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csln-go/csln/engine"
	"github.com/csln-go/csln/locale"
	"github.com/csln-go/csln/outformat"
	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/render"
	"github.com/csln-go/csln/style"
)

var (
	renderFormat      string
	renderCites       []string
	renderBib         bool
	renderJSON        bool
	renderNoSemantics bool
	renderOutputFile  string
	renderLocaleDir   string
)

var renderCmd = &cobra.Command{
	Use:   "render <style> <bibliography>",
	Short: "Render citations and/or a bibliography through a citation style",
	Long: `Render renders in-text citations and a bibliography from a style and a
bibliography file (spec.md §6.4).

Arguments:
  style          Style YAML/JSON file
  bibliography   Bibliography YAML/JSON file

Examples:
  csln render chicago.yaml refs.yaml --cite smith2020 --cite jones1999
  csln render chicago.yaml refs.yaml --bib --format html
  csln render apa.yaml refs.yaml --cite smith2020 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderFormat, "format", "plain", "Output format: plain|html|djot|latex")
	renderCmd.Flags().StringSliceVar(&renderCites, "cite", nil, "Reference id to cite (repeatable; semicolon-join ids for one multi-item citation)")
	renderCmd.Flags().BoolVar(&renderBib, "bib", false, "Render the bibliography")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "Emit JSON instead of plain text")
	renderCmd.Flags().BoolVar(&renderNoSemantics, "no-semantics", false, "Disable csln-* semantic class/attribute output (html/djot)")
	renderCmd.Flags().StringVarP(&renderOutputFile, "output", "o", "", "Output file (default: stdout)")
	renderCmd.Flags().StringVar(&renderLocaleDir, "locale-dir", "", "Directory of additional locale files to load")
	rootCmd.AddCommand(renderCmd)
}

type renderResult struct {
	Citations    []string `json:"citations,omitempty"`
	Bibliography string   `json:"bibliography,omitempty"`
}

func runRender(cmd *cobra.Command, args []string) (err error) {
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

	loc, err := resolveLocale(sty)
	if err != nil {
		return fmt.Errorf("resolving locale: %w", err)
	}

	f, ok := outformat.Resolve(renderFormat, !renderNoSemantics)
	if !ok {
		return fmt.Errorf("unknown output format %q (known: %s)", renderFormat, strings.Join(outformat.List(), ", "))
	}

	p := engine.New(sty, loc, bib, f)

	result := renderResult{}
	cited := make(map[string]bool)
	for _, ids := range renderCites {
		req := render.CitationRequest{}
		for _, id := range strings.Split(ids, ";") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			ref, ok := bib.Get(id)
			if !ok {
				return fmt.Errorf("unknown reference id %q", id)
			}
			req.Items = append(req.Items, render.CitationRequestItem{Ref: ref})
		}
		text, tokCited, err := p.RenderCitation(req)
		if err != nil {
			return fmt.Errorf("rendering citation: %w", err)
		}
		result.Citations = append(result.Citations, text)
		for id := range tokCited {
			cited[id] = true
		}
	}

	if renderBib {
		var rb engine.RenderedBibliography
		if len(cited) > 0 {
			rb, err = p.RenderBibliography(cited)
		} else {
			rb, err = p.RenderBibliography(nil)
		}
		if err != nil {
			return fmt.Errorf("rendering bibliography: %w", err)
		}
		result.Bibliography = engine.AssembleBibliography(rb, f)
	}

	out, err := formatRenderResult(result)
	if err != nil {
		return err
	}
	return writeOutput(renderOutputFile, out)
}

func formatRenderResult(result renderResult) (string, error) {
	if renderJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding result: %w", err)
		}
		return string(data), nil
	}
	var parts []string
	parts = append(parts, result.Citations...)
	if result.Bibliography != "" {
		parts = append(parts, result.Bibliography)
	}
	return strings.Join(parts, "\n\n"), nil
}

func resolveLocale(sty *style.Style) (*locale.Locale, error) {
	reg, err := locale.NewRegistry()
	if err != nil {
		return nil, err
	}
	if renderLocaleDir != "" {
		if err := reg.LoadDirectory(renderLocaleDir); err != nil {
			return nil, err
		}
	}
	return reg.Resolve("", sty.Info.DefaultLocale)
}

func writeOutput(path, content string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
