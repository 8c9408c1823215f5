package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/pasteboard"
)

func newHasCmd(open opener) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "has text|image",
		Short: "Report whether the clipboard holds text or an image",
		Long: `Prints true or false. The exit status is 0 for true and 1 for false, so the
command can be used in shell conditions:

  pasteboard has image --format tiff && pasteboard paste-image -f tiff scan.tiff

For image, --format restricts the check to one representation.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"text", "image"},
		PreRunE:   preRun(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			pb := open(v)

			var (
				ok  bool
				err error
			)
			switch args[0] {
			case "text":
				ok, err = pb.HasText()
			case "image":
				if cmd.Flags().Changed("format") {
					var format pasteboard.Format
					format, err = pasteboard.ParseFormat(v.GetString("format"))
					if err != nil {
						return err
					}
					ok, err = pb.HasImageFormat(format)
				} else {
					ok, err = pb.HasImage()
				}
			default:
				return fmt.Errorf("unknown kind %q (want text or image)", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ok)
			if !ok {
				return exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "", "image format: png|tiff (default: any)")
	return cmd
}

func newInfoCmd(open opener) *cobra.Command {
	v := viper.New()

	return &cobra.Command{
		Use:     "info",
		Short:   "Show what the clipboard holds",
		Args:    cobra.NoArgs,
		PreRunE: preRun(v),
		RunE: func(cmd *cobra.Command, _ []string) error {
			pb := open(v)

			hasText, err := pb.HasText()
			if err != nil {
				return err
			}
			text, err := pb.GetText()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 1, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Backend:\t%s\n", pb.Backend())
			fmt.Fprintf(w, "Text:\t%s", yesNo(hasText))
			if hasText {
				fmt.Fprintf(w, " (%d bytes)", len(text))
			}
			fmt.Fprintln(w)
			for _, f := range pasteboard.Formats {
				ok, err := pb.HasImageFormat(f)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Image %s:\t%s\n", f, yesNo(ok))
			}
			return w.Flush()
		},
	}
}

var (
	yes = color.New(color.FgGreen).SprintFunc()
	no  = color.New(color.FgHiBlack).SprintFunc()
)

func yesNo(ok bool) string {
	if ok {
		return yes("yes")
	}
	return no("no")
}
