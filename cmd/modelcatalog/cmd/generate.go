package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plustoolkit/modelcatalog/internal/render"
	"github.com/plustoolkit/modelcatalog/internal/tools/docs"
	"github.com/plustoolkit/modelcatalog/pkg/constants"
	"github.com/plustoolkit/modelcatalog/pkg/logging"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate catalog markdown pages and preview images",
	Long: `Generate walks the model repository, builds one markdown page per category
directory carrying a catalog.yaml sidecar, renders preview images into the
shared cache, and writes an index page enumerating all categories.

Generation is best-effort: malformed metadata, missing declared files, and
renderer or git failures degrade the affected entries but never abort the run.`,
	Example: `  modelcatalog generate
  modelcatalog generate --repo-root ../models --output ./docs
  modelcatalog generate --render-cmd "python docs/render_stl.py" --branch main`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.String("repo-root", ".", "Root directory of the model repository")
	flags.StringP("output", "o", "./docs", "Output directory for generated documentation")
	flags.String("base-url", "https://github.com/PlusToolkit/PlusModelCatalog", "Repository base URL for download and source links")
	flags.String("branch", constants.DefaultBranch, "Branch referenced by download and source links")
	flags.String("render-cmd", "", "External renderer invocation, e.g. \"python docs/render_stl.py\"")
	flags.Int("width", constants.RenderWidth, "Preview image width in pixels")
	flags.Int("height", constants.RenderHeight, "Preview image height in pixels")

	for _, name := range []string{"repo-root", "output", "base-url", "branch", "render-cmd", "width", "height"} {
		bindFlag(name, flags.Lookup(name))
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := []docs.Option{
		docs.WithRepoRoot(viper.GetString("repo-root")),
		docs.WithOutputDir(viper.GetString("output")),
		docs.WithBaseURL(strings.TrimRight(viper.GetString("base-url"), "/")),
		docs.WithBranch(viper.GetString("branch")),
		docs.WithRenderSize(viper.GetInt("width"), viper.GetInt("height")),
	}

	if renderCmd := viper.GetString("render-cmd"); renderCmd != "" {
		parts := strings.Fields(renderCmd)
		opts = append(opts, docs.WithRenderer(render.New(parts[0], parts[1:]...)))
	} else {
		logging.Warn().Msg("No --render-cmd configured; entries will reference missing previews unless already cached")
	}

	generator := docs.New(opts...)
	if err := generator.Generate(cmd.Context()); err != nil {
		return err
	}

	logging.Info().Msg("Catalog generation complete")
	return nil
}
