// Command pulsardemo is ambient dev tooling, not part of the reactive
// runtime (spec §1 scopes the HTTP client out): a Cobra CLI whose "serve"
// command starts a chi-routed static file server for the compiled
// cmd/pulsardemoapp WASM bundle, grounded on vango-go-vango's cmd/vango
// Cobra command tree and its own use of go-chi/chi for asset serving
// (SPEC_FULL.md §4.P).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "pulsardemo",
		Short:         "Run the bundled Pulsar browser demo locally",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
