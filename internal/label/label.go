// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package label lays out a single label page: the barcode on the left,
// vertically centred, and the caption lines on the right half.
//
// Positions are fixed by types.LayoutConfig. There is no wrapping, no font
// fitting, and no overlap detection; the configured constants are expected
// to keep barcode and caption apart.
package label

import (
	"fmt"
	"image"

	"github.com/pdiddy/labelgen/pkg/types"
)

// Surface is the page being drawn on. Coordinates are centimetres from the
// top-left corner; text positions are baselines.
type Surface interface {
	DrawImage(img image.Image, x, y, w, h float64) error
	DrawText(x, y float64, text string) error
}

// Point is a position on the page in centimetres.
type Point struct {
	X, Y float64
}

// Placement holds the computed positions for one page.
type Placement struct {
	// Barcode is the top-left corner of the barcode square.
	Barcode Point
	// BarcodeSide is the printed side length of the barcode.
	BarcodeSide float64
	// Lines holds the baseline start of each caption line.
	Lines []Point
}

// Place computes where the barcode and n caption lines go.
func Place(l types.LayoutConfig, n int) Placement {
	side := l.BarcodeSide()
	p := Placement{
		Barcode:     Point{X: l.BarcodeMargin, Y: (l.PageHeight - side) / 2},
		BarcodeSide: side,
		Lines:       make([]Point, n),
	}

	x := l.PageWidth/2 + l.CaptionOffsetX
	y := l.PageHeight/2 - l.CaptionOffsetY
	for i := range p.Lines {
		p.Lines[i] = Point{X: x, Y: y + float64(i)*l.LinePitch}
	}
	return p
}

// Compose draws barcode and caption onto s. It does not finish the page.
func Compose(s Surface, barcode image.Image, caption []string, l types.LayoutConfig) error {
	p := Place(l, len(caption))

	if err := s.DrawImage(barcode, p.Barcode.X, p.Barcode.Y, p.BarcodeSide, p.BarcodeSide); err != nil {
		return fmt.Errorf("placing barcode: %w", err)
	}
	for i, line := range caption {
		if line == "" {
			continue
		}
		if err := s.DrawText(p.Lines[i].X, p.Lines[i].Y, line); err != nil {
			return fmt.Errorf("caption line %d: %w", i+1, err)
		}
	}
	return nil
}
