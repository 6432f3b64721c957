// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fontres locates a TrueType font able to render the label caption.
// Fonts are searched in order: an explicit override, well-known system
// locations for the host OS, then a copy bundled next to the executable.
package fontres

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/sfnt"

	"github.com/pdiddy/labelgen/pkg/types"
)

// BundledFont is the file name of the fallback font shipped with the binary.
const BundledFont = "DejaVuSans.ttf"

var (
	windowsFonts = []string{
		`C:\Windows\Fonts\arial.ttf`,
		`C:\Windows\Fonts\calibri.ttf`,
		`C:\Windows\Fonts\segoeui.ttf`,
	}
	darwinFonts = []string{
		"/Library/Fonts/Arial.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
	}
	genericFonts = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/freefont/FreeSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	}
)

// Candidates returns the system font paths tried for the given GOOS value,
// most preferred first. Unknown systems get the generic Unix list.
func Candidates(goos string) []string {
	var list []string
	switch goos {
	case "windows":
		list = windowsFonts
	case "darwin":
		list = darwinFonts
	default:
		list = genericFonts
	}
	return append([]string(nil), list...)
}

// Options controls font discovery.
type Options struct {
	// Override is a font path that replaces discovery entirely.
	Override string

	// Require lists the characters the font must map to glyphs. Whitespace
	// and control characters are ignored. When empty, existence suffices.
	Require string

	// GOOS selects the candidate list; defaults to runtime.GOOS.
	GOOS string

	// BundledDir is where BundledFont is looked up; defaults to the
	// directory of the running executable.
	BundledDir string

	// Log receives debug lines for skipped candidates. May be nil.
	Log logrus.FieldLogger
}

// fileSystem abstracts file access for testing.
type fileSystem interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

type osFS struct{}

func (osFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

var defaultFS fileSystem = osFS{}

// Resolve returns the path of the first usable font. It fails with an error
// wrapping types.ErrFontNotFound when nothing qualifies.
func Resolve(opts Options) (string, error) {
	return resolve(defaultFS, opts)
}

func resolve(fsys fileSystem, opts Options) (string, error) {
	log := opts.Log
	if log == nil {
		log = discardLogger()
	}

	if opts.Override != "" {
		if err := usable(fsys, opts.Override, opts.Require); err != nil {
			return "", fmt.Errorf("font %s: %v: %w", opts.Override, err, types.ErrFontNotFound)
		}
		return opts.Override, nil
	}

	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	tried := Candidates(goos)

	bundledDir := opts.BundledDir
	if bundledDir == "" {
		if exe, err := os.Executable(); err == nil {
			bundledDir = filepath.Dir(exe)
		}
	}
	if bundledDir != "" {
		tried = append(tried, filepath.Join(bundledDir, BundledFont))
	}

	for _, path := range tried {
		err := usable(fsys, path, opts.Require)
		if err == nil {
			log.WithField("font", path).Debug("font resolved")
			return path, nil
		}
		log.WithField("font", path).WithError(err).Debug("skipping font candidate")
	}

	return "", fmt.Errorf("tried %s: %w", strings.Join(tried, ", "), types.ErrFontNotFound)
}

// usable returns nil if path exists and, when require is non-empty, parses
// as an sfnt font with a glyph for every required rune.
func usable(fsys fileSystem, path, require string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if strings.TrimSpace(require) == "" {
		return nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return err
	}
	return Covers(data, require)
}

// Covers reports, as an error, the first rune of text that the font in data
// cannot render.
func Covers(data []byte, text string) error {
	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing font: %w", err)
	}

	var buf sfnt.Buffer
	seen := make(map[rune]bool)
	for _, r := range text {
		if seen[r] || unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		seen[r] = true
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return fmt.Errorf("looking up %q: %w", r, err)
		}
		if idx == 0 {
			return fmt.Errorf("no glyph for %q", r)
		}
	}
	return nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
