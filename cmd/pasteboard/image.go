package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/pasteboard"
)

func newCopyImageCmd(open opener) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "copy-image <path>",
		Aliases: []string{"set-image"},
		Short:   "Copy an image file to the clipboard",
		Long: `Puts the PNG or TIFF file at <path> on the clipboard, byte for byte.
With --text the text is written in the same change, so both are available.

  pasteboard copy-image screenshot.png
  pasteboard copy-image --format tiff --text "caption" scan.tiff`,
		Args:    cobra.ExactArgs(1),
		PreRunE: preRun(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := pasteboard.ParseFormat(v.GetString("format"))
			if err != nil {
				return err
			}
			pb := open(v)
			if cmd.Flags().Changed("text") {
				return pb.SetTextAndImage(v.GetString("text"), args[0], format)
			}
			return pb.SetImage(args[0], format)
		},
	}

	addFormatFlag(cmd.Flags())
	cmd.Flags().String("text", "", "also put this text on the clipboard")
	return cmd
}

func newPasteImageCmd(open opener) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "paste-image <path>",
		Aliases: []string{"get-image"},
		Short:   "Save the clipboard image to a file",
		Long: `Writes the clipboard image in --format to <path>. An existing file is an
error unless --overwrite is given.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: preRun(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := pasteboard.ParseFormat(v.GetString("format"))
			if err != nil {
				return err
			}
			path, err := open(v).GetImage(args[0], format, v.GetBool("overwrite"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	addFormatFlag(cmd.Flags())
	cmd.Flags().Bool("overwrite", false, "replace an existing file")
	return cmd
}
