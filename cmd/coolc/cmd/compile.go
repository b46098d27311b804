package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coolc/coolc/internal/codegen"
	"github.com/coolc/coolc/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	toStdout   bool
	outDir     string
	dumpTables bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile COOL source files to MIPS/SPIM assembly",
	Long: `Run all four passes — lexer, parser, semantic analyzer, code
generator — over one or more COOL programs and write <basename>.s next
to the first input (or redirect with --out-dir / the project config's
output_dir), or print it to stdout with --stdout.

Multiple files are merged into a single compilation unit: a class in
one file may inherit from a class in another, matching the original
PA5 driver's unit-of-compilation convention. The unit produces one .s
file, named after the first input; no separate .s is written for the
other inputs.

Examples:
  coolc compile hello.cl
  coolc hello.cl                 # compile is the default command
  coolc compile a.cl b.cl --out-dir build/
  coolc compile hello.cl --stdout`,
	Args: cobra.MinimumNArgs(1),
	RunE: compileFiles,
}

func addCompileFlags(c *cobra.Command) {
	c.Flags().BoolVar(&toStdout, "stdout", false, "print generated assembly to stdout instead of writing files")
	c.Flags().StringVar(&outDir, "out-dir", "", "write <basename>.s files into this directory")
	c.Flags().BoolVar(&dumpTables, "dump-tables", false, "print class tag/layout/dispatch-table assignment to stderr")
}

func init() {
	rootCmd.AddCommand(compileCmd)
	addCompileFlags(compileCmd)
}

func compileFiles(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	prog, sources, err := parseAndMerge(args)
	if err != nil {
		return err
	}

	result, err := semantic.Analyze(prog)
	if err != nil {
		return reportSourceError(err, sources)
	}

	if dumpTables {
		fmt.Fprint(os.Stderr, codegen.DumpTables(result))
	}

	asm, err := codegen.Generate(prog, result)
	if err != nil {
		return fmt.Errorf("codegen failed: %w", err)
	}

	if toStdout {
		fmt.Print(asm)
		return nil
	}

	dest := outputDir()
	// Single merged unit, named after the first input file — matches the
	// original driver's one-.s-per-invocation convention for multi-file
	// units while still naming a single file's output <basename>.s.
	out := outputPath(args[0], dest)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(asm), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", out, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
	} else {
		fmt.Printf("Compiled %s -> %s\n", strings.Join(args, ", "), out)
	}
	return nil
}

func outputDir() string {
	if outDir != "" {
		return outDir
	}
	return cfg.OutputDir
}

func outputPath(firstInput, dir string) string {
	base := strings.TrimSuffix(filepath.Base(firstInput), filepath.Ext(firstInput)) + ".s"
	if dir == "" {
		return filepath.Join(filepath.Dir(firstInput), base)
	}
	return filepath.Join(dir, base)
}
