// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"time"
)

var (
	// ErrFontNotFound means no usable TrueType font was found in the
	// override, the system candidates, or the bundled fallback.
	ErrFontNotFound = errors.New("no suitable TrueType font found")

	// ErrMissingInput means the identifier list does not exist.
	ErrMissingInput = errors.New("input file not found")

	// ErrEncoding means an identifier could not be encoded as a barcode.
	ErrEncoding = errors.New("barcode encoding failed")

	// ErrNoLabels means the input held no non-blank identifiers, or every
	// identifier failed under the skip policy.
	ErrNoLabels = errors.New("no labels to write")

	// ErrPartial means the document was written but some identifiers were
	// skipped.
	ErrPartial = errors.New("some labels were skipped")
)

// Mark is one identifier read from the input list.
type Mark struct {
	// Line is the 1-based line number in the input file.
	Line int `json:"line" yaml:"line"`

	// Value is the trimmed identifier.
	Value string `json:"value" yaml:"value"`
}

// LabelOutcome records what happened to one identifier.
type LabelOutcome struct {
	Line       int    `json:"line" yaml:"line"`
	Identifier string `json:"identifier" yaml:"identifier"`

	// Page is the 1-based page number, or 0 if the label was not emitted.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`

	// Err describes the failure; empty on success.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the label was emitted.
func (o LabelOutcome) OK() bool { return o.Err == "" }

// RunReport summarizes a label generation run.
type RunReport struct {
	Output    string         `json:"output" yaml:"output"`
	Font      string         `json:"font" yaml:"font"`
	Pages     int            `json:"pages" yaml:"pages"`
	Failed    int            `json:"failed" yaml:"failed"`
	Labels    []LabelOutcome `json:"labels" yaml:"labels"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
}

// Failures returns the outcomes of labels that were not emitted, in input
// order.
func (r *RunReport) Failures() []LabelOutcome {
	var out []LabelOutcome
	for _, o := range r.Labels {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}
