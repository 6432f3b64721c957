// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc is the drawing surface for label pages. A Document owns a
// gopdf writer with a fixed page size and one registered TrueType font; the
// font is registered once when the document is created.
package pdfdoc

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/signintech/gopdf"
)

// fontFamily is the name the caption font is registered under.
const fontFamily = "caption"

// Options configures a new Document. Lengths are in centimetres.
type Options struct {
	Width    float64
	Height   float64
	FontPath string
	FontSize int
	Title    string
	Creator  string
}

// Document accumulates label pages in memory until WriteTo is called.
type Document struct {
	pdf   *gopdf.GoPdf
	pages int
}

// New starts an empty document and registers the caption font.
func New(opts Options) (*Document, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid page size %gx%g cm", opts.Width, opts.Height)
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		Unit:     gopdf.UnitCM,
		PageSize: gopdf.Rect{W: opts.Width, H: opts.Height},
	})
	pdf.SetInfo(gopdf.PdfInfo{
		Title:        opts.Title,
		Creator:      opts.Creator,
		CreationDate: time.Now(),
	})

	if err := pdf.AddTTFFont(fontFamily, opts.FontPath); err != nil {
		return nil, fmt.Errorf("registering font %s: %w", opts.FontPath, err)
	}
	if err := pdf.SetFont(fontFamily, "", opts.FontSize); err != nil {
		return nil, fmt.Errorf("selecting font: %w", err)
	}

	return &Document{pdf: pdf}, nil
}

// AddPage starts a new page. Drawing calls apply to the newest page.
func (d *Document) AddPage() {
	d.pdf.AddPage()
	d.pages++
}

// Pages returns the number of pages added so far.
func (d *Document) Pages() int { return d.pages }

// DrawImage places img with its top-left corner at (x, y), scaled to w x h.
func (d *Document) DrawImage(img image.Image, x, y, w, h float64) error {
	if d.pages == 0 {
		return errors.New("drawing before first page")
	}
	if err := d.pdf.ImageFrom(img, x, y, &gopdf.Rect{W: w, H: h}); err != nil {
		return fmt.Errorf("drawing image: %w", err)
	}
	return nil
}

// DrawText writes text with its baseline starting at (x, y).
func (d *Document) DrawText(x, y float64, text string) error {
	if d.pages == 0 {
		return errors.New("drawing before first page")
	}
	d.pdf.SetXY(x, y)
	if err := d.pdf.Text(text); err != nil {
		return fmt.Errorf("drawing text %q: %w", text, err)
	}
	return nil
}

// WriteTo serializes the whole document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.pdf.WriteTo(w)
}

// WriteFileAtomic writes src to a temporary file next to path and renames
// it into place. On failure nothing is left at path or in its directory.
func WriteFileAtomic(path string, src io.WriterTo) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = src.WriteTo(tmp); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
