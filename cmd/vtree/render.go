package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/preview"
	"github.com/vango-dev/vtree/internal/snapshot"
	"github.com/vango-dev/vtree/pkg/events"
	"github.com/vango-dev/vtree/pkg/render"
)

type renderOptions struct {
	page      string
	container string
	snapshot  bool
	fragment  bool
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [page]",
		Short: "Render a tree document once",
		Long: `Render a tree document and print the resulting HTML page.

The page defaults to the "page" entry of vtree.json. With --snapshot the
HTML is stored in the snapshot directory, or in S3 when snapshot.s3.bucket
is configured.

Examples:
  vtree render
  vtree render pages/home.yaml --fragment
  vtree render --snapshot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.page = args[0]
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.container, "container", "", "Container element id (default from vtree.json)")
	cmd.Flags().BoolVarP(&opts.snapshot, "snapshot", "s", false, "Store the HTML as a snapshot instead of printing it")
	cmd.Flags().BoolVarP(&opts.fragment, "fragment", "f", false, "Output only the container's content")

	return cmd
}

func runRender(ctx context.Context, out io.Writer, cfg *config.Config, opts renderOptions) error {
	if opts.page != "" {
		abs, err := filepath.Abs(opts.page)
		if err != nil {
			return err
		}
		cfg.Page = abs
	}
	if opts.container != "" {
		cfg.Container = opts.container
	}

	logger := slog.Default().With("component", "render")
	reg := events.NewRegistry(
		events.WithEvents(cfg.Render.Events...),
		events.WithLogger(logger),
	)
	renderer := render.New(reg,
		render.WithLogger(logger),
		render.WithMaxDepth(cfg.Render.MaxComponentDepth),
	)

	session, err := preview.NewSession(preview.SessionOptions{
		Page:      cfg.PagePath(),
		Container: cfg.Container,
		Resolver:  newBuiltins(logger).resolver(),
		Renderer:  renderer,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	if err := session.Reload(ctx); err != nil {
		return err
	}
	for _, d := range renderer.Diagnostics() {
		warn("%v", d)
	}

	html := session.Page()
	if opts.fragment {
		html = session.Container().InnerHTML()
	}

	if !opts.snapshot {
		_, err := fmt.Fprintln(out, html)
		return err
	}

	store, err := snapshot.FromConfig(cfg)
	if err != nil {
		return err
	}
	loc, err := store.Put(ctx, snapshot.Name(cfg.Page, time.Now()), []byte(html))
	if err != nil {
		return err
	}
	success("Rendered %s in %s", cfg.Page, time.Since(start).Round(time.Microsecond))
	info("Snapshot: %s", loc)
	return nil
}
