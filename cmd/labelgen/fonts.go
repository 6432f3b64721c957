// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/labelgen/internal/fontres"
)

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "Show the font search order and which font would be used",
	Long: `Fonts lists the system font locations searched on this platform, the
bundled fallback next to the executable, and the font that a generate run
would pick for the configured caption.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listFonts(os.Stdout, viper.GetString("font_path"), viper.GetStringSlice("caption_lines"))
	},
}

func init() {
	rootCmd.AddCommand(fontsCmd)
}

func listFonts(w io.Writer, override string, caption []string) error {
	paths := fontres.Candidates(runtime.GOOS)
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), fontres.BundledFont))
	}

	fmt.Fprintf(w, "Search order (%s):\n", runtime.GOOS)
	for _, p := range paths {
		state := "missing"
		if _, err := os.Stat(p); err == nil {
			state = "found"
		}
		fmt.Fprintf(w, "  %-7s  %s\n", state, p)
	}
	if override != "" {
		fmt.Fprintf(w, "Override: %s\n", override)
	}

	path, err := fontres.Resolve(fontres.Options{
		Override: override,
		Require:  strings.Join(caption, ""),
		Log:      logger,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Selected: %s\n", path)
	return nil
}
