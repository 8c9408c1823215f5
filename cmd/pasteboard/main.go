// pasteboard: read and write the system clipboard from the command line.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/pasteboard"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

// opener builds the Pasteboard a command works on.
type opener func(v *viper.Viper) *pasteboard.Pasteboard

// openSystem returns a handle on the platform clipboard.
func openSystem(v *viper.Viper) *pasteboard.Pasteboard {
	return pasteboard.New(
		pasteboard.WithConversion(v.GetBool("convert")),
		pasteboard.WithLogger(slog.Default()),
	)
}

// exitError ends the process with code and no message.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	if err := newRootCmd(openSystem).Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "pasteboard:", err)
		os.Exit(1)
	}
}

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "pasteboard",
		Short: "Read and write the system clipboard",
		Long: `pasteboard copies text and PNG/TIFF images to and from the system clipboard
and reports when other applications change it.

Config file search order (first found wins):
  /etc/pasteboard/pasteboard.toml
  $HOME/.config/pasteboard/pasteboard.toml
  path supplied via --config

All flags can be set via PASTEBOARD_<FLAG> env vars or config-file keys.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addConfigFlag(root)
	addLoggingFlags(root)
	root.PersistentFlags().Bool("convert", false, "convert between PNG and TIFF when only the other is on the clipboard")

	root.AddCommand(
		newCopyCmd(open),
		newAppendCmd(open),
		newClearCmd(open),
		newPasteCmd(open),
		newCopyImageCmd(open),
		newPasteImageCmd(open),
		newHasCmd(open),
		newInfoCmd(open),
		newWatchCmd(open),
		newSnapshotCmd(open),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pasteboard %s\n", Version)
		},
	}
}
