package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/claimguard/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP server",
	Long: `Serve exposes verification over HTTP:
- GET  /api/health        liveness probe
- POST /api/verify        verify a text, with optional reflection
- GET  /tools             list registered tools
- POST /tools/{tool}/call invoke a tool with args and kwargs

The tool surface is gated by X-API-KEY when server.api_key is set.

Example:
  claimguard serve
  claimguard serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := buildConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	srv := server.New(cfg, version)

	fmt.Fprintf(os.Stderr, "ClaimGuard v%s listening on %s\n", version, cfg.Server.Addr)
	if cfg.Search.SerperAPIKey == "" {
		fmt.Fprintf(os.Stderr, "Warning: no Serper API key configured; using DuckDuckGo fallback only\n")
	}

	return srv.Start(ctx)
}
