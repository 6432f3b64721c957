// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fontres

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/pdiddy/labelgen/pkg/types"
)

// fakeFS serves files from memory. A nil entry is a directory.
type fakeFS map[string][]byte

type fakeInfo struct {
	name string
	size int64
	dir  bool
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return i.size }
func (i fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (i fakeInfo) ModTime() time.Time { return time.Time{} }
func (i fakeInfo) IsDir() bool        { return i.dir }
func (i fakeInfo) Sys() any           { return nil }

func (f fakeFS) Stat(name string) (os.FileInfo, error) {
	data, ok := f[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fakeInfo{name: name, size: int64(len(data)), dir: data == nil}, nil
}

func (f fakeFS) ReadFile(name string) ([]byte, error) {
	data, ok := f[name]
	if !ok || data == nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return data, nil
}

const cyrillic = `Масло "СКАТ" для 2-тактного двигателя бензопилы 0,95 л`

func TestCandidates(t *testing.T) {
	assert.Equal(t, `C:\Windows\Fonts\arial.ttf`, Candidates("windows")[0])
	assert.Equal(t, "/Library/Fonts/Arial.ttf", Candidates("darwin")[0])
	assert.Equal(t, "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf", Candidates("linux")[0])
	assert.Equal(t, Candidates("linux"), Candidates("plan9"), "unknown systems use the generic list")

	// Callers must not be able to mutate the package lists.
	c := Candidates("darwin")
	c[0] = "changed"
	assert.Equal(t, "/Library/Fonts/Arial.ttf", Candidates("darwin")[0])
}

func TestResolve(t *testing.T) {
	bundled := filepath.Join("/opt/labelgen", BundledFont)

	tests := []struct {
		name    string
		fs      fakeFS
		opts    Options
		want    string
		wantErr bool
	}{
		{
			name: "first linux candidate wins",
			fs: fakeFS{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf":                 goregular.TTF,
				"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf": goregular.TTF,
			},
			opts: Options{GOOS: "linux"},
			want: "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		},
		{
			name: "later candidate when earlier missing",
			fs: fakeFS{
				"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf": goregular.TTF,
			},
			opts: Options{GOOS: "freebsd"},
			want: "/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		},
		{
			name: "windows list",
			fs: fakeFS{
				`C:\Windows\Fonts\segoeui.ttf`: goregular.TTF,
			},
			opts: Options{GOOS: "windows"},
			want: `C:\Windows\Fonts\segoeui.ttf`,
		},
		{
			name: "darwin ignores linux paths",
			fs: fakeFS{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf": goregular.TTF,
				bundled: goregular.TTF,
			},
			opts: Options{GOOS: "darwin", BundledDir: "/opt/labelgen"},
			want: bundled,
		},
		{
			name: "bundled fallback",
			fs:   fakeFS{bundled: goregular.TTF},
			opts: Options{GOOS: "linux", BundledDir: "/opt/labelgen"},
			want: bundled,
		},
		{
			name:    "nothing found",
			fs:      fakeFS{},
			opts:    Options{GOOS: "linux", BundledDir: "/opt/labelgen"},
			wantErr: true,
		},
		{
			name: "directory is not a font",
			fs: fakeFS{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf": nil,
			},
			opts:    Options{GOOS: "linux", BundledDir: "/opt/labelgen"},
			wantErr: true,
		},
		{
			name: "override replaces discovery",
			fs: fakeFS{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf": goregular.TTF,
				"/home/me/label.ttf":                              goregular.TTF,
			},
			opts: Options{GOOS: "linux", Override: "/home/me/label.ttf"},
			want: "/home/me/label.ttf",
		},
		{
			name: "missing override does not fall back",
			fs: fakeFS{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf": goregular.TTF,
			},
			opts:    Options{GOOS: "linux", Override: "/home/me/missing.ttf"},
			wantErr: true,
		},
		{
			name: "candidate without required glyphs is skipped",
			fs: fakeFS{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf": []byte("not a font"),
				"/usr/share/fonts/truetype/freefont/FreeSans.ttf": goregular.TTF,
			},
			opts: Options{GOOS: "linux", Require: cyrillic},
			want: "/usr/share/fonts/truetype/freefont/FreeSans.ttf",
		},
		{
			name: "required rune missing everywhere",
			fs: fakeFS{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf": goregular.TTF,
			},
			opts:    Options{GOOS: "linux", BundledDir: "/opt/labelgen", Require: "漢字"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolve(tt.fs, tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, types.ErrFontNotFound), "error %v should wrap ErrFontNotFound", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRealFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, BundledFont), goregular.TTF, 0o644))

	got, err := Resolve(Options{GOOS: "plan9", BundledDir: dir, Override: filepath.Join(dir, BundledFont)})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, BundledFont), got)
}

func TestCovers(t *testing.T) {
	assert.NoError(t, Covers(goregular.TTF, cyrillic))
	assert.NoError(t, Covers(goregular.TTF, ""), "empty text is always covered")
	assert.Error(t, Covers(goregular.TTF, "漢"))
	assert.Error(t, Covers([]byte("garbage"), "A"))
}
