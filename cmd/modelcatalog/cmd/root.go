// Package cmd implements the modelcatalog CLI commands.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// SetVersion records build metadata injected by the linker.
func SetVersion(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "modelcatalog",
	Short: "Generate a browsable documentation catalog from a repository of STL models",
	Long: `modelcatalog builds markdown catalog pages from a directory tree of 3D model
files. Models discovered on disk are merged with per-category metadata
(descriptions, explicit file groupings, custom preview images, exclusions),
preview images are rendered through an external renderer, and last-modified
dates are read from git history.

Configuration is read from flags, MODELCATALOG_* environment variables, and
an optional .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	bindFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetEnvPrefix("MODELCATALOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// bindFlag panics on a binding error; that only happens on a programming
// mistake, never at runtime.
func bindFlag(name string, flag *pflag.Flag) {
	if err := viper.BindPFlag(name, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", name, err))
	}
}
