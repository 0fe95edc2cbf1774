package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelgrid/pkg/background"
	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/placement"
	"github.com/matzehuels/pixelgrid/pkg/settings"
)

// Output shapes for `pixelgrid css`.
const (
	cssRule         = "rule"
	cssDeclarations = "declarations"
	cssBackground   = "background"
	cssJSON         = "json"
)

// cssOptions holds flags for the css command.
type cssOptions struct {
	width, height int
	format        string
	selector      string
	defaults      bool
	set           []string
}

// cssCommand creates the css command.
func (c *CLI) cssCommand() *cobra.Command {
	opts := cssOptions{}

	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the overlay style for a viewport",
		Long: `Print the style of the grid overlay for a given viewport.

The stored settings are used unless --defaults is given; --set overrides single
fields. The grid is always rendered as shown, even if the stored settings hide it.`,
		Example: `  pixelgrid css --width 1440 --height 900
  pixelgrid css --defaults --set baseLine=4px --set alpha=40 --format background
  pixelgrid css --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settings.Reset()
			if !opts.defaults {
				e, err := c.openEnv(cmd.Context())
				if err != nil {
					return err
				}
				defer e.Close()
				if s, err = e.repo.Load(cmd.Context()); err != nil {
					loggerFromContext(cmd.Context()).Warn("using default settings", "err", err)
				}
			}
			s, err := applyAssignments(s, opts.set)
			if err != nil {
				return err
			}
			return writeCSS(cmd.OutOrStdout(), opts, s.WithVisible(true))
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 1280, "viewport width in CSS pixels")
	cmd.Flags().IntVar(&opts.height, "height", 800, "viewport height in CSS pixels")
	cmd.Flags().StringVarP(&opts.format, "format", "f", cssRule, "output: rule, declarations, background, json")
	cmd.Flags().StringVar(&opts.selector, "selector", placement.ElementID, "selector for --format rule")
	cmd.Flags().BoolVar(&opts.defaults, "defaults", false, "ignore stored settings")
	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "override a field (field=value, repeatable)")

	return cmd
}

// writeCSS renders s for the viewport in the requested shape.
func writeCSS(w io.Writer, opts cssOptions, s settings.GridSettings) error {
	if err := pgerrors.ValidateViewport(opts.width, opts.height); err != nil {
		return err
	}
	if err := settings.Validate(s); err != nil {
		return err
	}

	vp := placement.Viewport{Width: opts.width, Height: opts.height}
	p, _ := placement.Resolve(vp, s)
	style := placement.NewStyle(p, background.Generate(s))

	switch opts.format {
	case cssRule:
		_, err := fmt.Fprintln(w, style.Rule(opts.selector))
		return err
	case cssDeclarations:
		_, err := fmt.Fprintln(w, style.Declarations())
		return err
	case cssBackground:
		_, err := fmt.Fprintln(w, background.Generate(s))
		return err
	case cssJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Placement placement.Placement `json:"placement"`
			Style     placement.Style     `json:"style"`
		}{p, style})
	}
	return pgerrors.New(pgerrors.ErrCodeInvalidFormat, "unknown css format %q (want rule, declarations, background or json)", opts.format)
}
