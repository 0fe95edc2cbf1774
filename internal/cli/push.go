package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelgrid/pkg/channel"
	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
)

// pushOptions holds flags for the push command.
type pushOptions struct {
	url     string
	set     []string
	retries int
}

// pushCommand creates the push command.
func (c *CLI) pushCommand() *cobra.Command {
	opts := pushOptions{}

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Send the stored settings to a running serve or inject",
		Long: `Send the stored settings, with optional --set overrides, to the message
endpoint of a running pixelgrid serve or pixelgrid inject. The receiver stores
what it is sent.`,
		Example: `  pixelgrid push
  pixelgrid push --set visible=false
  pixelgrid push --url http://192.168.1.20:7357 --set color=#e74c3c`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			e, err := c.openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			base := opts.url
			if !cmd.Flags().Changed("url") {
				base = "http://" + e.cfg.Server.Addr
			}
			sender, err := channel.NewHTTPSender(base, channel.WithRetry(opts.retries, 250*time.Millisecond))
			if err != nil {
				return err
			}

			s, err := e.repo.Load(ctx)
			if err != nil {
				return err
			}
			if s, err = applyAssignments(s, opts.set); err != nil {
				return err
			}

			spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Sending settings to "+base+"...")
			spinner.Start()
			resp, err := sender.Send(ctx, s)
			if err != nil {
				spinner.StopWithError("Could not reach " + base)
				return err
			}
			if !resp.Success {
				spinner.StopWithError("Rejected by " + base)
				return pgerrors.New(pgerrors.ErrCodeInvalidSettings, "%s", resp.Error)
			}
			spinner.Stop()

			if len(opts.set) > 0 {
				if err := e.repo.Save(ctx, s); err != nil {
					return err
				}
			}

			printSuccess(cmd.OutOrStdout(), "Settings delivered")
			printDetail(cmd.OutOrStdout(), "message %s", resp.ID)
			prog.done("push complete", "id", resp.ID, "url", base)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "http://"+defaultServerAddr, "base URL of the receiver")
	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "override a field before sending (field=value, repeatable)")
	cmd.Flags().IntVar(&opts.retries, "retries", 3, "attempts for transient failures")

	return cmd
}
