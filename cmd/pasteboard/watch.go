package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/pasteboard"
	"go.klb.dev/pasteboard/internal/logging"
)

const previewLen = 60

func newWatchCmd(open opener) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a line whenever another application changes the clipboard",
		Long: `Polls the clipboard and prints the time and a summary of the new contents
each time another application changes it. Changes made by pasteboard in this
process are not reported. Runs until interrupted or --count changes were seen.`,
		Args:    cobra.NoArgs,
		PreRunE: preRun(v),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd, open(v), v.GetDuration("interval"), v.GetInt("count"))
		},
	}

	f := cmd.Flags()
	f.Duration("interval", pasteboard.DefaultWatchInterval, "polling interval")
	f.Int("count", 0, "exit after this many changes (0 = run forever)")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, pb *pasteboard.Pasteboard, interval time.Duration, count int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := cmd.OutOrStdout()
	seen := 0
	for range pb.Watch(ctx, interval) {
		snap, err := pb.Snapshot()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\n", time.Now().Format("15:04:05"), summarize(snap))
		seen++
		if count > 0 && seen >= count {
			return nil
		}
	}
	return nil
}

// summarize describes a snapshot in one line: the types, then a quoted text
// preview when there is text.
func summarize(s pasteboard.Snapshot) string {
	if len(s.Items) == 0 {
		return "(empty)"
	}
	types := make([]string, len(s.Items))
	for i, it := range s.Items {
		types[i] = it.Type
	}
	line := strings.Join(types, ",")
	if text := s.Text(); text != "" {
		text = strings.ReplaceAll(text, "\n", " ")
		line += fmt.Sprintf(" %q", logging.Preview(text, previewLen))
	}
	return line
}
