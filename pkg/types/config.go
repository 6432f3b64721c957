// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Symbology identifies the 2D barcode encoding drawn on each label.
type Symbology string

const (
	SymbologyDataMatrix Symbology = "datamatrix"
	SymbologyQR         Symbology = "qr"
)

// ResampleMode selects the interpolation used when the native barcode
// raster is scaled to its printed size.
type ResampleMode string

const (
	// ResampleNearest keeps module edges crisp. It is the scan-safe default.
	ResampleNearest    ResampleMode = "nearest"
	ResampleLinear     ResampleMode = "linear"
	ResampleCatmullRom ResampleMode = "catmullrom"
	ResampleLanczos    ResampleMode = "lanczos"
)

// ErrorPolicy decides what happens when a single identifier cannot be
// encoded.
type ErrorPolicy string

const (
	// PolicyAbort stops the whole run on the first failing identifier and
	// writes nothing.
	PolicyAbort ErrorPolicy = "abort"

	// PolicySkip records the failure, leaves the identifier out of the
	// document, and continues with the next one.
	PolicySkip ErrorPolicy = "skip"
)

// LayoutConfig holds the fixed label geometry. All lengths are in
// centimetres measured from the top-left corner of the page.
type LayoutConfig struct {
	// PageWidth and PageHeight are the physical page size (default 7 x 4 cm).
	PageWidth  float64 `json:"page_width" yaml:"page_width"`
	PageHeight float64 `json:"page_height" yaml:"page_height"`

	// BarcodeSize is the printed side length of the barcode (default 2 cm).
	BarcodeSize float64 `json:"barcode_size" yaml:"barcode_size"`

	// BarcodeFraction, when positive, sizes the barcode relative to the page
	// height instead of using BarcodeSize.
	BarcodeFraction float64 `json:"barcode_fraction,omitempty" yaml:"barcode_fraction,omitempty"`

	// BarcodeMargin is the inset of the barcode from the left edge.
	BarcodeMargin float64 `json:"barcode_margin" yaml:"barcode_margin"`

	// CaptionOffsetX is the caption's distance right of the page midline.
	CaptionOffsetX float64 `json:"caption_offset_x" yaml:"caption_offset_x"`

	// CaptionOffsetY is the distance of the first caption baseline above
	// the page's horizontal centre line.
	CaptionOffsetY float64 `json:"caption_offset_y" yaml:"caption_offset_y"`

	// LinePitch is the vertical distance between caption baselines.
	LinePitch float64 `json:"line_pitch" yaml:"line_pitch"`

	// FontSize is the caption size in points.
	FontSize int `json:"font_size" yaml:"font_size"`
}

// BarcodeSide returns the printed side length of the barcode in cm.
func (l LayoutConfig) BarcodeSide() float64 {
	if l.BarcodeFraction > 0 {
		return l.BarcodeFraction * l.PageHeight
	}
	return l.BarcodeSize
}

// BarcodeConfig controls how identifiers are turned into raster images.
type BarcodeConfig struct {
	// Symbology selects datamatrix (default) or qr.
	Symbology Symbology `json:"symbology" yaml:"symbology"`

	// DPI is the raster resolution used to size the barcode image (default 300).
	DPI int `json:"dpi" yaml:"dpi"`

	// Resample selects the scaling filter.
	Resample ResampleMode `json:"resample" yaml:"resample"`

	// Monochrome quantizes the scaled raster to pure black and white.
	Monochrome bool `json:"monochrome" yaml:"monochrome"`

	// QuietZone is the white border around the symbol, in modules.
	QuietZone int `json:"quiet_zone" yaml:"quiet_zone"`
}

// LabelConfig groups every setting of a label generation run.
type LabelConfig struct {
	// InputPath is the identifier list, one per line (default "marks.txt").
	InputPath string `json:"input_path" yaml:"input_path"`

	// InputEncoding is the IANA name of the input charset (default "utf-8").
	InputEncoding string `json:"input_encoding" yaml:"input_encoding"`

	// OutputPath is the PDF to write (default "labels.pdf").
	OutputPath string `json:"output_path" yaml:"output_path"`

	// ReportPath, when set, receives a YAML summary of the run.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`

	// FontPath overrides system font discovery.
	FontPath string `json:"font_path,omitempty" yaml:"font_path,omitempty"`

	// CaptionLines is the static text printed on every label.
	CaptionLines []string `json:"caption_lines" yaml:"caption_lines"`

	// Title is stored in the PDF document information dictionary.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// OnError is the per-identifier failure policy: abort or skip.
	OnError ErrorPolicy `json:"on_error" yaml:"on_error"`

	Layout  LayoutConfig  `json:"layout" yaml:"layout"`
	Barcode BarcodeConfig `json:"barcode" yaml:"barcode"`
}

// DefaultCaption is the caption printed when none is configured.
var DefaultCaption = []string{
	`Масло "СКАТ"`,
	"для 2-тактного",
	"двигателя",
	"бензопилы",
	"0,95 л",
}

// DefaultLabelConfig returns the configuration that reproduces the stock
// 7 x 4 cm label.
func DefaultLabelConfig() LabelConfig {
	return LabelConfig{
		InputPath:     "marks.txt",
		InputEncoding: "utf-8",
		OutputPath:    "labels.pdf",
		CaptionLines:  append([]string(nil), DefaultCaption...),
		OnError:       PolicyAbort,
		Layout: LayoutConfig{
			PageWidth:      7,
			PageHeight:     4,
			BarcodeSize:    2,
			BarcodeMargin:  0.7,
			CaptionOffsetX: 0.1,
			CaptionOffsetY: 0.8,
			LinePitch:      0.5,
			FontSize:       9,
		},
		Barcode: BarcodeConfig{
			Symbology:  SymbologyDataMatrix,
			DPI:        300,
			Resample:   ResampleNearest,
			Monochrome: true,
			QuietZone:  2,
		},
	}
}

// Validate reports the first configuration problem found.
func (c LabelConfig) Validate() error {
	var problems []string
	if c.InputPath == "" {
		problems = append(problems, "input path is empty")
	}
	if c.OutputPath == "" {
		problems = append(problems, "output path is empty")
	}
	if c.Layout.PageWidth <= 0 || c.Layout.PageHeight <= 0 {
		problems = append(problems, fmt.Sprintf("page size %gx%g cm must be positive", c.Layout.PageWidth, c.Layout.PageHeight))
	}
	if c.Layout.BarcodeSide() <= 0 {
		problems = append(problems, "barcode size must be positive")
	}
	if c.Layout.BarcodeFraction > 1 {
		problems = append(problems, fmt.Sprintf("barcode fraction %g exceeds page height", c.Layout.BarcodeFraction))
	}
	if c.Layout.FontSize <= 0 {
		problems = append(problems, "font size must be positive")
	}
	if c.Barcode.DPI <= 0 {
		problems = append(problems, "dpi must be positive")
	}
	if c.Barcode.QuietZone < 0 {
		problems = append(problems, "quiet zone must not be negative")
	}
	switch c.Barcode.Symbology {
	case SymbologyDataMatrix, SymbologyQR:
	default:
		problems = append(problems, fmt.Sprintf("unknown symbology %q", c.Barcode.Symbology))
	}
	switch c.Barcode.Resample {
	case ResampleNearest, ResampleLinear, ResampleCatmullRom, ResampleLanczos:
	default:
		problems = append(problems, fmt.Sprintf("unknown resample mode %q", c.Barcode.Resample))
	}
	switch c.OnError {
	case PolicyAbort, PolicySkip:
	default:
		problems = append(problems, fmt.Sprintf("unknown error policy %q", c.OnError))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
