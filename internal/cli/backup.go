package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/2beens/athletepro/internal/app"
	"github.com/2beens/athletepro/pkg"

	"github.com/spf13/cobra"
)

func newExportCommand(opts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export profile, settings and all series to a JSON backup",
		Long:  "Export profile, settings and all series to a JSON backup. The file defaults to athlete-pro-backup-YYYY-MM-DD.json, use --out - for stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "-" {
				return opts.app.WriteBackup(cmd.Context(), cmd.OutOrStdout())
			}
			if out == "" {
				out = app.BackupFileName(opts.now())
			}

			var buf bytes.Buffer
			if err := opts.app.WriteBackup(cmd.Context(), &buf); err != nil {
				return err
			}
			if err := pkg.WriteFileAtomic(out, buf.Bytes(), 0o600); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			opts.printf(cmd.OutOrStdout(), "exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	return cmd
}

func newImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a backup made by export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}

			if err := opts.app.Import(cmd.Context(), raw); err != nil {
				switch {
				case errors.Is(err, app.ErrForeignBackup), errors.Is(err, app.ErrInvalidBackup):
					return fmt.Errorf("backup rejected, nothing was changed: %w", err)
				default:
					return err
				}
			}
			opts.printf(cmd.OutOrStdout(), "imported %s\n", args[0])
			return nil
		},
	}
}

func newResetCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("this deletes all data permanently, confirm with --yes")
			}
			if err := opts.app.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all data removed")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
