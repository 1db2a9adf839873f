package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/preview"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live preview server",
		Long: `Start the live preview server.

The server renders the tree document into an in-memory page, streams
every render cycle to connected browsers over WebSocket and dispatches
browser events through the delegated event registry. The document is
re-rendered whenever it changes on disk.

Examples:
  vtree serve
  vtree serve --port=8080
  vtree serve --host=0.0.0.0 --no-watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Apply command-line overrides
			if port > 0 {
				cfg.Preview.Port = port
			}
			if host != "" {
				cfg.Preview.Host = host
			}
			if noWatch {
				cfg.Preview.Watch = false
			}

			logger := slog.Default()
			server, err := preview.New(preview.Options{
				Config:   cfg,
				Resolver: newBuiltins(logger).resolver(),
				Logger:   logger,
				OnReload: func(clients int, err error) {
					if err != nil {
						warn("%v", err)
						return
					}
					success("Rendered %s (%d browsers)", cfg.Page, clients)
				},
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(os.Stderr)
			info("Preview:  %s", cfg.PreviewURL())
			if cfg.Metrics.Enabled {
				info("Metrics:  %s%s", cfg.PreviewURL(), cfg.Metrics.Path)
			}
			fmt.Fprintln(os.Stderr)

			return server.Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from vtree.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from vtree.json)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not re-render when the document changes")

	return cmd
}
