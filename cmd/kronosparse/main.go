// Command kronosparse is the minimal debug-printer CLI over the Kronos
// parser: it lexes and parses a source file (or stdin) and prints one line
// per top-level statement, followed by the first structured parse error if
// there was one.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nedanwr/kronos/errors"
	"github.com/nedanwr/kronos/internal/snapshot"
	"github.com/nedanwr/kronos/lexer"
	"github.com/nedanwr/kronos/parser"
)

func main() {
	var file string
	var accumulate bool
	var hash bool

	rootCmd := &cobra.Command{
		Use:           "kronosparse [flags]",
		Short:         "Parse a Kronos source file and print its statement tags",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(file)
			if err != nil {
				return err
			}

			tokens := lexer.New(source).Tokenize()

			sink := &errors.Sink{}
			opts := []parser.Opt{parser.WithErrorSink(sink)}
			if accumulate {
				acc, err := parser.WithConfigJSON([]byte(`{"diagnostics_mode": "accumulate"}`))
				if err != nil {
					return err
				}
				opts = append(opts, acc, parser.WithDiagnostics(os.Stderr))
			}

			tree, _ := parser.Parse(tokens, opts...)

			for _, line := range tree.DebugLines() {
				fmt.Fprintln(os.Stdout, line)
			}

			if hash {
				sum, err := snapshot.Hash(tree)
				if err != nil {
					return fmt.Errorf("hashing tree: %w", err)
				}
				fmt.Fprintln(os.Stdout, sum)
			}

			if err := sink.Err(); err != nil {
				return fmt.Errorf("%s", err.Error())
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&file, "file", "f", "-", "Kronos source file to parse ('-' for stdin)")
	rootCmd.Flags().BoolVar(&accumulate, "accumulate", false, "also print every recovered diagnostic to stderr")
	rootCmd.Flags().BoolVar(&hash, "hash", false, "also print the canonical CBOR snapshot hash of the parsed tree")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readSource(file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(os.Stdin)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
