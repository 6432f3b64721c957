// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package barcode turns identifier strings into square 2D barcode rasters.
//
// Encoding produces a module matrix (one cell per symbol module). The matrix
// depends only on the payload and symbology; rasterizing it at a given pixel
// size is a separate resampling step, so the same payload always yields the
// same module pattern whatever the output size.
package barcode

import (
	"fmt"
	"image"
	"image/color"

	"github.com/boombuler/barcode/datamatrix"
	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/pdiddy/labelgen/pkg/types"
)

// EncodingError reports a payload the symbology could not encode. It
// matches types.ErrEncoding under errors.Is.
type EncodingError struct {
	Payload string
	Err     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding %q: %v", e.Payload, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, types.ErrEncoding) succeed.
func (e *EncodingError) Is(target error) bool { return target == types.ErrEncoding }

// Options controls rasterization.
type Options struct {
	// Symbology defaults to DataMatrix.
	Symbology types.Symbology

	// Size is the side length of the output image in pixels.
	Size int

	// Resample defaults to nearest neighbour.
	Resample types.ResampleMode

	// Monochrome thresholds the scaled image to pure black and white.
	Monochrome bool

	// QuietZone is the white margin around the symbol, in modules.
	QuietZone int
}

// PixelsFor converts a physical length in centimetres to whole pixels at
// the given resolution, truncating.
func PixelsFor(cm float64, dpi int) int {
	return int(cm * 10 / 25.4 * float64(dpi))
}

// Modules encodes payload and returns its module matrix, row-major from the
// top, with true meaning a dark module. No quiet zone is included.
func Modules(payload string, sym types.Symbology) ([][]bool, error) {
	if payload == "" {
		return nil, &EncodingError{Payload: payload, Err: fmt.Errorf("empty payload")}
	}

	switch sym {
	case types.SymbologyDataMatrix, "":
		return dataMatrixModules(payload)
	case types.SymbologyQR:
		return qrModules(payload)
	default:
		return nil, fmt.Errorf("unsupported symbology %q", sym)
	}
}

func dataMatrixModules(payload string) ([][]bool, error) {
	code, err := datamatrix.Encode(payload)
	if err != nil {
		return nil, &EncodingError{Payload: payload, Err: err}
	}
	b := code.Bounds()
	rows := make([][]bool, b.Dy())
	for y := range rows {
		row := make([]bool, b.Dx())
		for x := range row {
			row[x] = isDark(code.At(b.Min.X+x, b.Min.Y+y))
		}
		rows[y] = row
	}
	return rows, nil
}

func qrModules(payload string) ([][]bool, error) {
	q, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, &EncodingError{Payload: payload, Err: err}
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}

func isDark(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y < 0x80
}

// Native draws the module matrix at one pixel per module, surrounded by
// quietZone modules of white.
func Native(modules [][]bool, quietZone int) *image.Gray {
	if quietZone < 0 {
		quietZone = 0
	}
	h := len(modules)
	w := 0
	if h > 0 {
		w = len(modules[0])
	}
	img := image.NewGray(image.Rect(0, 0, w+2*quietZone, h+2*quietZone))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y, row := range modules {
		for x, dark := range row {
			if dark {
				img.SetGray(x+quietZone, y+quietZone, color.Gray{Y: 0})
			}
		}
	}
	return img
}

// Render encodes payload and scales the symbol to a Size x Size image.
func Render(payload string, opts Options) (*image.Gray, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("invalid barcode size %d px", opts.Size)
	}
	filter, err := resampleFilter(opts.Resample)
	if err != nil {
		return nil, err
	}

	modules, err := Modules(payload, opts.Symbology)
	if err != nil {
		return nil, err
	}

	scaled := imaging.Resize(Native(modules, opts.QuietZone), opts.Size, opts.Size, filter)
	return toGray(scaled, opts.Monochrome), nil
}

func resampleFilter(mode types.ResampleMode) (imaging.ResampleFilter, error) {
	switch mode {
	case types.ResampleNearest, "":
		return imaging.NearestNeighbor, nil
	case types.ResampleLinear:
		return imaging.Linear, nil
	case types.ResampleCatmullRom:
		return imaging.CatmullRom, nil
	case types.ResampleLanczos:
		return imaging.Lanczos, nil
	default:
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample mode %q", mode)
	}
}

// toGray converts src to 8-bit grey, optionally thresholding at mid-grey.
func toGray(src image.Image, monochrome bool) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			if monochrome {
				if g.Y < 0x80 {
					g.Y = 0
				} else {
					g.Y = 0xff
				}
			}
			dst.SetGray(x, y, g)
		}
	}
	return dst
}
