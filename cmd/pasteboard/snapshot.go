package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/pasteboard"
)

func newSnapshotCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save or restore the whole clipboard as JSON",
		Long: `Saves every representation on the clipboard (text and images, base64
encoded) to stdout, and restores it from stdin:

  pasteboard snapshot save > clip.json
  pasteboard snapshot restore < clip.json`,
	}

	save := viper.New()
	restore := viper.New()
	cmd.AddCommand(
		&cobra.Command{
			Use:     "save",
			Short:   "Write the clipboard to stdout as JSON",
			Args:    cobra.NoArgs,
			PreRunE: preRun(save),
			RunE: func(cmd *cobra.Command, _ []string) error {
				snap, err := open(save).Snapshot()
				if err != nil {
					return err
				}
				raw, err := snap.MarshalIndent()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return err
			},
		},
		&cobra.Command{
			Use:     "restore",
			Short:   "Replace the clipboard with JSON read from stdin",
			Args:    cobra.NoArgs,
			PreRunE: preRun(restore),
			RunE: func(cmd *cobra.Command, _ []string) error {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				snap, err := pasteboard.DecodeSnapshot(raw)
				if err != nil {
					return err
				}
				return open(restore).Restore(snap)
			},
		},
	)
	return cmd
}
