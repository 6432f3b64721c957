// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/labelgen/pkg/types"
)

// setDefaults registers every configuration key with its default value.
func setDefaults(v *viper.Viper, d types.LabelConfig) {
	v.SetDefault("input_path", d.InputPath)
	v.SetDefault("input_encoding", d.InputEncoding)
	v.SetDefault("output_path", d.OutputPath)
	v.SetDefault("report_path", d.ReportPath)
	v.SetDefault("font_path", d.FontPath)
	v.SetDefault("caption_lines", d.CaptionLines)
	v.SetDefault("title", d.Title)
	v.SetDefault("on_error", string(d.OnError))

	v.SetDefault("layout.page_width", d.Layout.PageWidth)
	v.SetDefault("layout.page_height", d.Layout.PageHeight)
	v.SetDefault("layout.barcode_size", d.Layout.BarcodeSize)
	v.SetDefault("layout.barcode_fraction", d.Layout.BarcodeFraction)
	v.SetDefault("layout.barcode_margin", d.Layout.BarcodeMargin)
	v.SetDefault("layout.caption_offset_x", d.Layout.CaptionOffsetX)
	v.SetDefault("layout.caption_offset_y", d.Layout.CaptionOffsetY)
	v.SetDefault("layout.line_pitch", d.Layout.LinePitch)
	v.SetDefault("layout.font_size", d.Layout.FontSize)

	v.SetDefault("barcode.symbology", string(d.Barcode.Symbology))
	v.SetDefault("barcode.dpi", d.Barcode.DPI)
	v.SetDefault("barcode.resample", string(d.Barcode.Resample))
	v.SetDefault("barcode.monochrome", d.Barcode.Monochrome)
	v.SetDefault("barcode.quiet_zone", d.Barcode.QuietZone)
}

// labelConfig assembles a LabelConfig from flags, environment, config file
// and defaults, in viper's precedence order.
func labelConfig(v *viper.Viper) types.LabelConfig {
	return types.LabelConfig{
		InputPath:     v.GetString("input_path"),
		InputEncoding: v.GetString("input_encoding"),
		OutputPath:    v.GetString("output_path"),
		ReportPath:    v.GetString("report_path"),
		FontPath:      v.GetString("font_path"),
		CaptionLines:  captionLines(v),
		Title:         v.GetString("title"),
		OnError:       types.ErrorPolicy(v.GetString("on_error")),
		Layout: types.LayoutConfig{
			PageWidth:       v.GetFloat64("layout.page_width"),
			PageHeight:      v.GetFloat64("layout.page_height"),
			BarcodeSize:     v.GetFloat64("layout.barcode_size"),
			BarcodeFraction: v.GetFloat64("layout.barcode_fraction"),
			BarcodeMargin:   v.GetFloat64("layout.barcode_margin"),
			CaptionOffsetX:  v.GetFloat64("layout.caption_offset_x"),
			CaptionOffsetY:  v.GetFloat64("layout.caption_offset_y"),
			LinePitch:       v.GetFloat64("layout.line_pitch"),
			FontSize:        v.GetInt("layout.font_size"),
		},
		Barcode: types.BarcodeConfig{
			Symbology:  types.Symbology(v.GetString("barcode.symbology")),
			DPI:        v.GetInt("barcode.dpi"),
			Resample:   types.ResampleMode(v.GetString("barcode.resample")),
			Monochrome: v.GetBool("barcode.monochrome"),
			QuietZone:  v.GetInt("barcode.quiet_zone"),
		},
	}
}

// captionSeparator splits a caption supplied as a single string, which is
// how environment variables arrive, into lines.
const captionSeparator = "|"

func captionLines(v *viper.Viper) []string {
	if s, ok := v.Get("caption_lines").(string); ok {
		return strings.Split(s, captionSeparator)
	}
	return v.GetStringSlice("caption_lines")
}
