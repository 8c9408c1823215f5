package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCopyCmd(open opener) *cobra.Command {
	v := viper.New()

	return &cobra.Command{
		Use:     "copy [text...]",
		Aliases: []string{"set-text"},
		Short:   "Copy text to the clipboard (like pbcopy)",
		Long: `Replaces the clipboard contents with the arguments joined by spaces, or with
stdin when no arguments are given. Any image on the clipboard is dropped.`,
		PreRunE: preRun(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textInput(cmd, args)
			if err != nil {
				return err
			}
			return open(v).Copy(text)
		},
	}
}

func newAppendCmd(open opener) *cobra.Command {
	v := viper.New()

	return &cobra.Command{
		Use:   "append [text...]",
		Short: "Append text to the clipboard text",
		Long: `Adds the arguments (or stdin) to the end of the current clipboard text.
With no text on the clipboard this is the same as copy.`,
		PreRunE: preRun(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textInput(cmd, args)
			if err != nil {
				return err
			}
			return open(v).Append(text)
		},
	}
}

func newClearCmd(open opener) *cobra.Command {
	v := viper.New()

	return &cobra.Command{
		Use:     "clear",
		Short:   "Empty the clipboard",
		Args:    cobra.NoArgs,
		PreRunE: preRun(v),
		RunE: func(_ *cobra.Command, _ []string) error {
			return open(v).Clear()
		},
	}
}

// textInput returns args joined by spaces, or all of stdin when there are none.
func textInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
