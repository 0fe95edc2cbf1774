package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pixelgrid/pkg/channel"
	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/overlay"
	"github.com/matzehuels/pixelgrid/pkg/placement"
)

// serveOptions holds flags for the serve command.
type serveOptions struct {
	addr          string
	width, height int
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the settings API",
		Long: `Run an HTTP server that stores grid settings and renders them for an
in-memory page of the configured viewport.

Endpoints:
  GET  /healthz
  GET  /api/settings          stored settings
  PUT  /api/settings          merge a partial update
  POST /api/settings/reset    restore defaults (shown)
  POST /api/messages          settings message (used by pixelgrid push)
  GET  /api/placement         placement for ?width=&height=
  GET  /api/overlay           what the in-memory page currently draws
  GET  /overlay.css           stylesheet for ?width=&height=`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			e, err := c.openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			cfg := e.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = opts.addr
			}
			if cmd.Flags().Changed("width") {
				cfg.Viewport.Width = opts.width
			}
			if cmd.Flags().Changed("height") {
				cfg.Viewport.Height = opts.height
			}
			if err := pgerrors.ValidateViewport(cfg.Viewport.Width, cfg.Viewport.Height); err != nil {
				return err
			}

			controller := overlay.NewController(overlay.NewMemoryHost(cfg.Viewport), logger)
			page := channel.NewLocal(8, logger)
			defer page.Close()

			initial, err := e.repo.Load(ctx)
			if err != nil {
				logger.Warn("starting with default settings", "err", err)
			}
			if err := controller.HandleSettings(ctx, initial); err != nil {
				return err
			}

			srv := &server{
				repo:       e.repo,
				controller: controller,
				forward:    localForwarder(page),
				viewport:   cfg.Viewport,
				logger:     logger,
			}
			httpSrv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Serving grid settings on %s", StyleLink.Render("http://"+cfg.Addr))
			printKeyValue(w, "viewport", viewportString(cfg.Viewport))
			printKeyValue(w, "store", e.cfg.Storage.Backend)
			printNextStep(w, "Push settings", "pixelgrid push --url http://"+cfg.Addr)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return page.Serve(gctx, controller) })
			g.Go(func() error { return listen(gctx, httpSrv, logger) })
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultServerAddr, "listen address")
	cmd.Flags().IntVar(&opts.width, "width", 1280, "viewport width of the in-memory page")
	cmd.Flags().IntVar(&opts.height, "height", 800, "viewport height of the in-memory page")

	return cmd
}

func viewportString(vp placement.Viewport) string {
	return StyleHighlight.Render(fmt.Sprintf("%d×%d", vp.Width, vp.Height))
}
