package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"go.klb.dev/pasteboard/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and PASTEBOARD_* env var prefix, then sets up
// logging from the result.
//
// Precedence (lowest → highest): defaults → config file → PASTEBOARD_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("pasteboard")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/pasteboard/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pasteboard"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("PASTEBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	setupLogging(v)
	return nil
}

// preRun returns a PreRunE that binds v.
func preRun(v *viper.Viper) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) }
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.BoolP("verbose", "v", false, "debug logging")
	f.String("log-format", "auto", "log format: auto|text|json")
	f.String("log-level", "", "log level: debug|info|warn|error (default: warn, debug with --verbose)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addFormatFlag adds --format to a command's local flags.
func addFormatFlag(f *pflag.FlagSet) {
	f.StringP("format", "f", "png", "image format: png|tiff")
}

// setupLogging reads logging flags from viper and configures slog. The CLI
// writes results to stdout, so logs stay quiet unless asked for.
func setupLogging(v *viper.Viper) {
	def := slog.LevelWarn
	if v.GetBool("verbose") {
		def = slog.LevelDebug
	}
	level := logging.ParseLevel(v.GetString("log-level"), def)
	logging.Setup(logging.ParseFormat(v.GetString("log-format")), level)
}
