package cmd

import (
	"fmt"
	"os"

	"github.com/coolc/coolc/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configPath string
	cfg        = &config.Config{}
)

var rootCmd = &cobra.Command{
	Use:   "coolc [files...]",
	Short: "COOL-to-MIPS batch compiler",
	Long: `coolc compiles Classroom Object-Oriented Language (COOL) source files
to MIPS/SPIM assembly through four passes: lexer, parser, semantic
analyzer, and code generator.

Running coolc with no subcommand is shorthand for "coolc compile".`,
	Version: Version,
	Args:    cobra.ArbitraryArgs,
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			return c.Help()
		}
		return compileFiles(c, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a coolc.yaml project config")

	cobra.OnInitialize(loadConfig)

	addCompileFlags(rootCmd)
}

func loadConfig() {
	if configPath == "" {
		return
	}
	loaded, err := config.Load(configPath)
	if err != nil {
		exitWithError("%v", err)
	}
	cfg = loaded
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
