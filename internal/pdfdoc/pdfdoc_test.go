// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"bytes"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

var pageObject = regexp.MustCompile(`/Type\s*/Page\b`)

func writeFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	return path
}

func newDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := New(Options{Width: 7, Height: 4, FontPath: writeFont(t), FontSize: 9, Title: "test"})
	require.NoError(t, err)
	return doc
}

func TestDocumentPages(t *testing.T) {
	doc := newDoc(t)
	img := image.NewGray(image.Rect(0, 0, 16, 16))

	for _, text := range []string{"A1", "Масло", "C3"} {
		doc.AddPage()
		require.NoError(t, doc.DrawImage(img, 0.7, 1, 2, 2))
		require.NoError(t, doc.DrawText(3.6, 1.2, text))
	}
	assert.Equal(t, 3, doc.Pages())

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Len(t, pageObject.FindAll(buf.Bytes(), -1), 3)
}

func TestDrawBeforePage(t *testing.T) {
	doc := newDoc(t)
	assert.Error(t, doc.DrawText(1, 1, "x"))
	assert.Error(t, doc.DrawImage(image.NewGray(image.Rect(0, 0, 1, 1)), 0, 0, 1, 1))
}

func TestNewErrors(t *testing.T) {
	_, err := New(Options{Width: 0, Height: 4, FontPath: writeFont(t), FontSize: 9})
	assert.Error(t, err)

	_, err = New(Options{Width: 7, Height: 4, FontPath: filepath.Join(t.TempDir(), "none.ttf"), FontSize: 9})
	assert.Error(t, err)
}

type failingWriterTo struct{}

func (failingWriterTo) WriteTo(w io.Writer) (int64, error) {
	w.Write([]byte("%PDF-partial"))
	return 12, errors.New("disk full")
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	require.NoError(t, WriteFileAtomic(path, bytes.NewBufferString("%PDF-1.4 body")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should be renamed away")
}

func TestWriteFileAtomicFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	err := WriteFileAtomic(path, failingWriterTo{})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no output on failure")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary file should be removed")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "labels.pdf")
	assert.Error(t, WriteFileAtomic(path, bytes.NewBufferString("x")))
}
