package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/pasteboard/internal/logging"
)

func newPasteCmd(open opener) *cobra.Command {
	v := viper.New()

	return &cobra.Command{
		Use:     "paste",
		Aliases: []string{"get-text"},
		Short:   "Print the clipboard text to stdout (like pbpaste)",
		Long: `Writes the clipboard text to stdout. If the clipboard holds no text nothing is
printed and the exit status is 0. A trailing newline is added on a terminal.`,
		Args:    cobra.NoArgs,
		PreRunE: preRun(v),
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := open(v).Paste()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if text != "" && !strings.HasSuffix(text, "\n") && logging.IsTTY(out) {
				text += "\n"
			}
			_, err = fmt.Fprint(out, text)
			return err
		},
	}
}
