package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/csln-go/csln/style"
)

var schemaOutputFile string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Emit a JSON schema for the style model",
	Long: `Schema reflects the style model (spec.md §3.4) into a JSON schema
document, for editor validation or documentation tooling (spec.md §6.4).`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaOutputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&style.Style{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	return writeOutput(schemaOutputFile, string(data))
}
