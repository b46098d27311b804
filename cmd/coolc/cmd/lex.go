package cmd

import (
	"fmt"
	"os"

	"github.com/coolc/coolc/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [files...]",
	Short: "Tokenize COOL source files and print the token stream",
	Long: `Tokenize one or more COOL programs and print the resulting tokens in
a differential-testing format.

Lexical errors (an unterminated string, an invalid character, an
unclosed comment) are not fatal at this stage: they appear inline as
ERROR tokens instead of aborting the run.

Examples:
  coolc lex hello.cl
  coolc lex a.cl b.cl c.cl`,
	Args: cobra.MinimumNArgs(1),
	RunE: lexFiles,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func lexFiles(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	for _, filename := range args {
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Tokenizing: %s\n", filename)
		}
		l := lexer.New(string(content), filename)
		toks := l.Tokens()
		fmt.Print(lexer.DumpTokens(filename, toks))
	}
	return nil
}
