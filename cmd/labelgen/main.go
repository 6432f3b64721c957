// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the labelgen CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/pdiddy/labelgen/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in the root command's PersistentPreRunE.
var logger = logrus.New()

// rootCmd is the base command for the labelgen CLI. Without a subcommand it
// behaves like "labelgen generate".
var rootCmd = &cobra.Command{
	Use:   "labelgen",
	Short: "Generate printable DataMatrix product labels from a list of codes",
	Long: `labelgen reads identifiers from a text file, one per line, and writes a
PDF with one small label per identifier. Each label carries a DataMatrix
symbol encoding the identifier and a fixed caption.

Settings come from flags, LABELGEN_* environment variables, or labelgen.yaml
in the current directory or ~/.config/labelgen/.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		configureLogger(logger, os.Stderr, verbose)
		if f := viper.ConfigFileUsed(); f != "" {
			logger.WithField("config", f).Debug("using config file")
		}
		return nil
	},
	RunE: runGenerate,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./labelgen.yaml or ~/.config/labelgen/labelgen.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output")

	addGenerateFlags(rootCmd)
	setDefaults(viper.GetViper(), types.DefaultLabelConfig())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("labelgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "labelgen"))
		}
	}

	viper.SetEnvPrefix("LABELGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}
}

// configureLogger uses coloured text on a terminal and JSON otherwise.
func configureLogger(l *logrus.Logger, w io.Writer, verbose bool) {
	l.SetOutput(w)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, types.ErrPartial) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
