package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codewatch/internal/ui/pretty"
	"github.com/yaklabco/codewatch/pkg/fixflow"
)

const formatJSON = "json"

// generatorInfo represents a fix generator in JSON output.
type generatorInfo struct {
	Engine      string `json:"engine"`
	Description string `json:"description"`
}

func newEnginesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "engines",
		Short: "List engines with a registered fix generator",
		Long: `List the scanning engines codewatch can offer fixes for, with the fix
strategy registered for each. Diagnostics from engines not listed here can
be displayed but not auto-fixed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := defaultGeneratorRegistry()
			if err != nil {
				return err
			}

			if format == formatJSON {
				return outputEnginesJSON(registry)
			}

			colorMode, _ := cmd.Flags().GetString("color")
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))
			for _, engine := range registry.Engines() {
				fmt.Fprintf(os.Stdout, "%s  %s\n",
					styles.Bold.Render(engine),
					styles.Dim.Render(describeGenerator(engine)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// defaultGeneratorRegistry wires the built-in fix strategies. Editor
// integrations extend this set with their own generators (LLM rewrites,
// remote suggestions).
func defaultGeneratorRegistry() (*fixflow.Registry, error) {
	return fixflow.NewRegistry(map[string]fixflow.Generator{
		"pmd":             fixflow.SuppressionGenerator{},
		"import":          fixflow.EngineFixGenerator{},
		"remote-analysis": fixflow.EngineFixGenerator{},
	})
}

func describeGenerator(engine string) string {
	switch engine {
	case "pmd":
		return "suppression annotation on the enclosing declaration"
	default:
		return "engine-proposed replacement code"
	}
}

func outputEnginesJSON(registry *fixflow.Registry) error {
	infos := make([]generatorInfo, 0)
	for _, engine := range registry.Engines() {
		infos = append(infos, generatorInfo{
			Engine:      engine,
			Description: describeGenerator(engine),
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(infos)
}
