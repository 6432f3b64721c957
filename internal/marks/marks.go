// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package marks reads identifier lists: one identifier per line, blank lines
// ignored, order and duplicates preserved.
package marks

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pdiddy/labelgen/pkg/types"
)

// maxLine bounds a single identifier line.
const maxLine = 1 << 20

// ReadFile opens path and reads its identifiers. A missing file yields an
// error wrapping types.ErrMissingInput.
func ReadFile(path, charset string) ([]types.Mark, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, types.ErrMissingInput)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	marks, err := Read(f, charset)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return marks, nil
}

// Read decodes r using the named charset (IANA name; empty means UTF-8)
// and returns the non-blank, trimmed lines.
func Read(r io.Reader, charset string) ([]types.Mark, error) {
	dec, err := decoder(charset)
	if err != nil {
		return nil, err
	}

	var marks []types.Mark
	sc := bufio.NewScanner(transform.NewReader(r, dec))
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	line := 0
	for sc.Scan() {
		line++
		v := strings.TrimSpace(sc.Text())
		if v == "" {
			continue
		}
		marks = append(marks, types.Mark{Line: line, Value: v})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return marks, nil
}

// decoder returns a transformer to UTF-8. A leading byte-order mark is
// honoured and removed whatever the configured charset.
func decoder(charset string) (transform.Transformer, error) {
	var enc encoding.Encoding = unicode.UTF8
	if charset != "" {
		e, err := ianaindex.IANA.Encoding(charset)
		if err != nil {
			return nil, fmt.Errorf("unknown input encoding %q: %w", charset, err)
		}
		if e == nil {
			return nil, fmt.Errorf("input encoding %q is not supported", charset)
		}
		enc = e
	}
	return unicode.BOMOverride(enc.NewDecoder()), nil
}

// Values returns just the identifier strings.
func Values(marks []types.Mark) []string {
	out := make([]string, len(marks))
	for i, m := range marks {
		out[i] = m.Value
	}
	return out
}
