// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate drives a label run: it resolves the caption font, reads
// the identifier list, renders one page per identifier, and writes the PDF
// in a single atomic step.
//
// The font is resolved before the input is opened, so a missing font is
// reported even when the input is also missing. Nothing is written to the
// output path unless the whole document was built.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/labelgen/internal/barcode"
	"github.com/pdiddy/labelgen/internal/fontres"
	"github.com/pdiddy/labelgen/internal/label"
	"github.com/pdiddy/labelgen/internal/marks"
	"github.com/pdiddy/labelgen/internal/pdfdoc"
	"github.com/pdiddy/labelgen/pkg/types"
)

// Options carries the run's collaborators.
type Options struct {
	// Out receives the human-readable summary. Defaults to io.Discard.
	Out io.Writer

	// Log receives progress and diagnostics. May be nil.
	Log logrus.FieldLogger

	// Font tunes font discovery. Override and Require are filled from the
	// label configuration.
	Font fontres.Options

	// Creator is stored in the PDF information dictionary.
	Creator string
}

// Run generates the label document described by cfg. On success, and under
// the skip policy when some labels failed, the returned report describes
// every identifier. A partial run returns the report together with an error
// wrapping types.ErrPartial.
func Run(ctx context.Context, cfg types.LabelConfig, opts Options) (*types.RunReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	fontOpts := opts.Font
	fontOpts.Override = cfg.FontPath
	fontOpts.Require = strings.Join(cfg.CaptionLines, "")
	fontOpts.Log = log
	fontPath, err := fontres.Resolve(fontOpts)
	if err != nil {
		return nil, fmt.Errorf("resolving font: %w", err)
	}
	log.WithField("font", fontPath).Info("using font")

	list, err := marks.ReadFile(cfg.InputPath, cfg.InputEncoding)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		fmt.Fprintf(out, "PDF file %q not created (0 labels).\n", cfg.OutputPath)
		return nil, fmt.Errorf("%s has no identifiers: %w", cfg.InputPath, types.ErrNoLabels)
	}
	log.WithField("identifiers", len(list)).Debug("input read")

	doc, err := pdfdoc.New(pdfdoc.Options{
		Width:    cfg.Layout.PageWidth,
		Height:   cfg.Layout.PageHeight,
		FontPath: fontPath,
		FontSize: cfg.Layout.FontSize,
		Title:    cfg.Title,
		Creator:  opts.Creator,
	})
	if err != nil {
		return nil, err
	}

	report := &types.RunReport{
		Output: cfg.OutputPath,
		Font:   fontPath,
		Labels: make([]types.LabelOutcome, 0, len(list)),
	}

	bcOpts := barcode.Options{
		Symbology:  cfg.Barcode.Symbology,
		Size:       barcode.PixelsFor(cfg.Layout.BarcodeSide(), cfg.Barcode.DPI),
		Resample:   cfg.Barcode.Resample,
		Monochrome: cfg.Barcode.Monochrome,
		QuietZone:  cfg.Barcode.QuietZone,
	}

	for _, m := range list {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome := types.LabelOutcome{Line: m.Line, Identifier: m.Value}

		img, err := barcode.Render(m.Value, bcOpts)
		if err != nil {
			if cfg.OnError != types.PolicySkip || !errors.Is(err, types.ErrEncoding) {
				return nil, fmt.Errorf("line %d: %w", m.Line, err)
			}
			log.WithFields(logrus.Fields{"line": m.Line, "identifier": m.Value}).WithError(err).Warn("skipping label")
			outcome.Err = err.Error()
			report.Labels = append(report.Labels, outcome)
			report.Failed++
			continue
		}

		doc.AddPage()
		if err := label.Compose(doc, img, cfg.CaptionLines, cfg.Layout); err != nil {
			return nil, fmt.Errorf("line %d: %w", m.Line, err)
		}
		outcome.Page = doc.Pages()
		report.Labels = append(report.Labels, outcome)
		log.WithFields(logrus.Fields{"line": m.Line, "page": outcome.Page}).Debug("label composed")
	}
	report.Pages = doc.Pages()
	report.Timestamp = time.Now()

	if report.Pages == 0 {
		if err := writeReport(cfg.ReportPath, report); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "PDF file %q not created (0 labels).\n", cfg.OutputPath)
		printFailures(out, report)
		return report, fmt.Errorf("all %d identifiers failed: %w", len(list), types.ErrNoLabels)
	}

	if err := pdfdoc.WriteFileAtomic(cfg.OutputPath, doc); err != nil {
		return nil, err
	}
	if err := writeReport(cfg.ReportPath, report); err != nil {
		return report, err
	}

	fmt.Fprintf(out, "PDF file %q created (%d labels).\n", cfg.OutputPath, report.Pages)
	if report.Failed > 0 {
		printFailures(out, report)
		return report, fmt.Errorf("%d of %d identifiers: %w", report.Failed, len(list), types.ErrPartial)
	}
	return report, nil
}

func writeReport(path string, report *types.RunReport) error {
	if path == "" {
		return nil
	}
	return WriteReport(path, report)
}

func printFailures(w io.Writer, report *types.RunReport) {
	fmt.Fprintf(w, "Skipped %d label(s):\n", report.Failed)
	for _, o := range report.Failures() {
		fmt.Fprintf(w, "  line %d: %s\n", o.Line, o.Err)
	}
}
