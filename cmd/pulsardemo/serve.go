package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

const indexHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Pulsar demo</title></head>
<body>
<div id="app"></div>
<hr>
<div id="notes-slot"></div>
<script src="/wasm_exec.js"></script>
<script>
const go = new Go();
WebAssembly.instantiateStreaming(fetch("/main.wasm"), go.importObject).then((result) => {
	go.run(result.instance);
});
</script>
</body>
</html>`

func serveCmd() *cobra.Command {
	var (
		port      int
		distDir   string
		sentryDSN string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compiled WASM demo over HTTP",
		Long: `Serve the compiled WASM demo over HTTP.

Build the demo first:

  GOOS=js GOARCH=wasm go build -o dist/main.wasm ./cmd/pulsardemoapp
  cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" dist/

then run:

  go run ./cmd/pulsardemo serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, distDir, sentryDSN)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8787, "port to listen on")
	cmd.Flags().StringVarP(&distDir, "dist", "d", "dist", "directory containing main.wasm and wasm_exec.js")
	cmd.Flags().StringVar(&sentryDSN, "sentry-dsn", os.Getenv("PULSAR_DEMO_SENTRY_DSN"), "Sentry DSN to report dev-server panics to (optional)")

	return cmd
}

// sentryRecoverer reports a panic unwinding through the handler chain to
// Sentry before re-panicking into chi's own middleware.Recoverer, so a
// crash in the static file handler is both logged locally and surfaced to
// an error-tracking backend the way bubblyui's sentry_reporter.go does for
// its own crash path (SPEC_FULL.md §4.P).
func sentryRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if r := recover(); r != nil {
				sentry.CurrentHub().Recover(r)
				panic(r)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

func runServe(port int, distDir, sentryDSN string) error {
	if _, err := os.Stat(filepath.Join(distDir, "main.wasm")); err != nil {
		fmt.Printf("warning: %s/main.wasm not found yet; build it first (see --help)\n", distDir)
	}

	if sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: sentryDSN}); err != nil {
			return fmt.Errorf("pulsardemo: sentry.Init: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if sentryDSN != "" {
		r.Use(sentryRecoverer)
	}

	fileServer := http.FileServer(http.Dir(distDir))
	r.Handle("/main.wasm", fileServer)
	r.Handle("/wasm_exec.js", fileServer)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexHTML))
	})

	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("pulsardemo serving on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, r)
}
