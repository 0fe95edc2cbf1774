package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/settings"
)

// settingsCommand creates the settings command with subcommands.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage the stored grid settings",
		Long:  `Show, edit, reset, export and import the grid settings kept in the configured store.`,
	}

	cmd.AddCommand(c.settingsShowCommand())
	cmd.AddCommand(c.settingsSetCommand())
	cmd.AddCommand(c.settingsResetCommand())
	cmd.AddCommand(c.settingsExportCommand())
	cmd.AddCommand(c.settingsImportCommand())

	return cmd
}

func (c *CLI) settingsShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			s, err := e.repo.Load(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format == "table" {
				fmt.Fprintln(w, StyleTitle.Render("Grid settings"))
				fmt.Fprintln(w, renderSettingsTable(s))
				printKeyValue(w, "store", e.cfg.Storage.Backend+" · "+e.repo.Key())
				if p := e.cfg.Storage.Profile; p != "" {
					printKeyValue(w, "profile", p)
				}
				return nil
			}
			f, err := settings.ParseFormat(format)
			if err != nil {
				return err
			}
			data, err := settings.Encode(s, f)
			if err != nil {
				return err
			}
			_, err = w.Write(withNewline(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output: table, json, toml, yaml")
	return cmd
}

func (c *CLI) settingsSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set field=value...",
		Short: "Change stored settings fields",
		Long: `Change one or more settings fields. Field names are the JSON keys:
` + strings.Join(settings.Fields, ", ") + `.

Lengths must carry a unit (px, em, ex, %, in, cm, mm, pt, pc).`,
		Example: `  pixelgrid settings set baseLine=4px alpha=25
  pixelgrid settings set visible=true offsetX=-12`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			s, err := e.repo.Load(cmd.Context())
			if err != nil {
				return err
			}
			if s, err = applyAssignments(s, args); err != nil {
				return err
			}
			if err := e.repo.Save(cmd.Context(), s); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Updated %d field(s)", len(args))
			for _, pair := range args {
				field, _, _ := strings.Cut(pair, "=")
				v, _ := s.Get(strings.TrimSpace(field))
				printKeyValue(w, strings.TrimSpace(field), v)
			}
			return nil
		},
	}
	return cmd
}

func (c *CLI) settingsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings with the grid shown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			if _, err := e.repo.Reset(cmd.Context()); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Settings reset")
			printNextStep(w, "Send them to a running page", "pixelgrid push")
			return nil
		},
	}
}

func (c *CLI) settingsExportCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored settings to a file or stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFormat(format, output)
			if err != nil {
				return err
			}

			e, err := c.openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			s, err := e.repo.Load(cmd.Context())
			if err != nil {
				return err
			}
			data, err := settings.Encode(s, f)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(withNewline(data))
				return err
			}
			if err := os.WriteFile(output, withNewline(data), 0o644); err != nil {
				return pgerrors.Wrap(pgerrors.ErrCodeInternal, err, "write %s", output)
			}
			printSuccess(cmd.OutOrStdout(), "Exported settings")
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json, toml or yaml (default from file extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *CLI) settingsImportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored settings with a file",
		Long: `Replace the stored settings with the contents of a JSON, TOML or YAML file.
Fields missing from the file take their default values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := resolveFormat(format, path)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return pgerrors.Wrap(pgerrors.ErrCodeNotFound, err, "read %s", path)
			}
			s, err := settings.Decode(f, data)
			if err != nil {
				return err
			}

			e, err := c.openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.repo.Save(cmd.Context(), s); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Imported settings from %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json, toml or yaml (default from file extension)")
	return cmd
}

// resolveFormat picks the codec from the flag, else from the file extension,
// else JSON.
func resolveFormat(flag, path string) (settings.Format, error) {
	if flag != "" {
		return settings.ParseFormat(flag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return settings.FormatTOML, nil
	case ".yaml", ".yml":
		return settings.FormatYAML, nil
	}
	return settings.FormatJSON, nil
}

func withNewline(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] != '\n' {
		return append(b, '\n')
	}
	return b
}
