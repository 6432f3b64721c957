// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/labelgen/internal/generate"
	"github.com/pdiddy/labelgen/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write one label page per identifier into a PDF",
	Long: `Generate reads the identifier list (default marks.txt), skips blank lines,
and writes one 7 x 4 cm page per identifier to the output PDF (default
labels.pdf). The PDF is written only when every page was built; with
--on-error=skip identifiers that cannot be encoded are left out and listed.
An input with no identifiers is an error and writes no PDF.

Caption lines are given with a repeated --caption flag, a caption_lines list
in labelgen.yaml, or LABELGEN_CAPTION_LINES with lines separated by "|".`,
	RunE: runGenerate,
}

// flagKeys maps generate flags to their viper keys. The keys match the
// yaml tags of types.LabelConfig so a config file mirrors the struct.
var flagKeys = map[string]string{
	"input":            "input_path",
	"encoding":         "input_encoding",
	"output":           "output_path",
	"report":           "report_path",
	"font":             "font_path",
	"title":            "title",
	"on-error":         "on_error",
	"page-width":       "layout.page_width",
	"page-height":      "layout.page_height",
	"barcode-size":     "layout.barcode_size",
	"barcode-fraction": "layout.barcode_fraction",
	"font-size":        "layout.font_size",
	"symbology":        "barcode.symbology",
	"dpi":              "barcode.dpi",
	"resample":         "barcode.resample",
	"monochrome":       "barcode.monochrome",
	"quiet-zone":       "barcode.quiet_zone",
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	d := types.DefaultLabelConfig()
	f := cmd.Flags()
	f.StringP("input", "i", d.InputPath, "identifier list, one per line")
	f.String("encoding", d.InputEncoding, "input charset (IANA name, e.g. windows-1251)")
	f.StringP("output", "o", d.OutputPath, "PDF file to write")
	f.String("report", "", "write a YAML run report to this file")
	f.String("font", "", "TrueType font to use instead of searching system fonts")
	f.String("title", "", "PDF document title")
	f.String("on-error", string(d.OnError), "on an unencodable identifier: abort or skip")
	f.StringArray("caption", nil, "caption line (repeat for each line)")
	f.Float64("page-width", d.Layout.PageWidth, "page width in cm")
	f.Float64("page-height", d.Layout.PageHeight, "page height in cm")
	f.Float64("barcode-size", d.Layout.BarcodeSize, "barcode side in cm")
	f.Float64("barcode-fraction", 0, "barcode side as a fraction of page height (overrides --barcode-size)")
	f.Int("font-size", d.Layout.FontSize, "caption font size in points")
	f.String("symbology", string(d.Barcode.Symbology), "barcode symbology: datamatrix or qr")
	f.Int("dpi", d.Barcode.DPI, "barcode raster resolution")
	f.String("resample", string(d.Barcode.Resample), "scaling filter: nearest, linear, catmullrom, lanczos")
	f.Bool("monochrome", d.Barcode.Monochrome, "quantize the barcode to pure black and white")
	f.Int("quiet-zone", d.Barcode.QuietZone, "white border around the symbol, in modules")
}

// bindFlags attaches the running command's flags to viper. Binding happens
// at run time because root and generate share flag names.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// applyCaptionFlag replaces the configured caption when --caption was given.
func applyCaptionFlag(cfg *types.LabelConfig, fs *pflag.FlagSet) error {
	if !fs.Changed("caption") {
		return nil
	}
	lines, err := fs.GetStringArray("caption")
	if err != nil {
		return fmt.Errorf("reading --caption: %w", err)
	}
	cfg.CaptionLines = lines
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	cfg := labelConfig(v)
	if err := applyCaptionFlag(&cfg, cmd.Flags()); err != nil {
		return err
	}

	_, err := generate.Run(cmd.Context(), cfg, generate.Options{
		Out:     os.Stdout,
		Log:     logger,
		Creator: "labelgen " + version,
	})
	return err
}
