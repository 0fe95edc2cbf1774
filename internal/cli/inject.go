package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/overlay"
	"github.com/matzehuels/pixelgrid/pkg/overlay/browser"
	"github.com/matzehuels/pixelgrid/pkg/settings"
)

// injectOptions holds flags for the inject command.
type injectOptions struct {
	addr     string
	headless bool
	noListen bool
	show     bool
}

// injectCommand creates the inject command.
func (c *CLI) injectCommand() *cobra.Command {
	opts := injectOptions{}

	cmd := &cobra.Command{
		Use:   "inject <url>",
		Short: "Open a page in Chrome and draw the grid over it",
		Long: `Open a page in Chrome and draw the grid overlay with the stored settings.

The overlay follows window resizes. Unless --no-listen is given, the settings
API is served as well, so pixelgrid push and pixelgrid panel update the page
live.`,
		Example: `  pixelgrid inject http://localhost:3000
  pixelgrid inject https://example.com --show --headless=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			url := args[0]
			if err := pgerrors.ValidateURL(url); err != nil {
				return err
			}

			e, err := c.openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			initial, err := e.repo.Load(ctx)
			if err != nil {
				logger.Warn("starting with default settings", "err", err)
			}
			if opts.show {
				initial = initial.WithVisible(true)
			}

			headless := e.cfg.Browser.Headless
			if cmd.Flags().Changed("headless") {
				headless = opts.headless
			}

			spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Opening "+url+"...")
			spinner.Start()
			host, err := browser.Open(ctx, browser.Options{
				URL:      url,
				Headless: headless,
				Flags:    e.cfg.Browser.Flags,
				Logger:   logger,
			})
			if err != nil {
				spinner.StopWithError("Could not open page")
				return err
			}
			spinner.StopWithSuccess("Opened " + url)
			defer host.Close()

			resizes, err := host.Resizes(ctx)
			if err != nil {
				return err
			}

			controller := overlay.NewController(host, logger)
			updates := make(chan settings.GridSettings, 1)
			updates <- initial

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return controller.Run(gctx, updates, resizes) })

			if !opts.noListen {
				addr := e.cfg.Server.Addr
				if cmd.Flags().Changed("addr") {
					addr = opts.addr
				}
				vp, err := host.Viewport(ctx)
				if err != nil {
					return err
				}
				srv := &server{
					repo:       e.repo,
					controller: controller,
					forward:    queueForwarder(updates),
					viewport:   vp,
					logger:     logger,
				}
				httpSrv := &http.Server{Addr: addr, Handler: srv.routes(), ReadHeaderTimeout: 5 * time.Second}
				g.Go(func() error { return listen(gctx, httpSrv, logger) })
				printInfo(cmd.OutOrStdout(), "Listening for settings on %s", StyleLink.Render("http://"+addr))
			}
			if !initial.Visible {
				printWarning(cmd.OutOrStdout(), "The stored settings hide the grid")
				printNextStep(cmd.OutOrStdout(), "Show it", "pixelgrid settings set visible=true && pixelgrid push")
			}

			err = g.Wait()
			if cerr := controller.Close(context.Background()); cerr != nil {
				logger.Debug("remove overlay", "err", cerr)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultServerAddr, "listen address for settings updates")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "run Chrome without a window")
	cmd.Flags().BoolVar(&opts.noListen, "no-listen", false, "do not serve the settings API")
	cmd.Flags().BoolVar(&opts.show, "show", false, "show the grid even if the stored settings hide it")

	return cmd
}

// queueForwarder hands settings to a Controller.Run loop. Render errors are
// logged by the loop.
func queueForwarder(updates chan<- settings.GridSettings) forwardFunc {
	return func(ctx context.Context, s settings.GridSettings) error {
		select {
		case updates <- s:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
