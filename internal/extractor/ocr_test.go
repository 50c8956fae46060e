package extractor_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"grantflow/internal/extractor"
)

type stubRunner struct {
	stdout  []byte
	stderr  []byte
	err     error
	gotName string
	gotArgs []string
}

func (r *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.gotName = name
	r.gotArgs = args
	return r.stdout, r.stderr, r.err
}

func TestOCRExtractor_InvokesTesseract(t *testing.T) {
	runner := &stubRunner{stdout: []byte("scanned letter text")}
	e := extractor.NewOCRExtractor(extractor.OCRConfig{TempDir: t.TempDir()}, runner)

	text, err := e.Extract(context.Background(), []byte{0xFF, 0xD8, 0xFF})

	assert.NoError(t, err)
	assert.Equal(t, "scanned letter text", text)
	assert.Equal(t, "tesseract", runner.gotName)
	assert.Len(t, runner.gotArgs, 4)
	assert.Equal(t, "stdout", runner.gotArgs[1])
	assert.Equal(t, "-l", runner.gotArgs[2])
	assert.Equal(t, "eng", runner.gotArgs[3])
}

func TestOCRExtractor_CustomBinaryAndLanguage(t *testing.T) {
	runner := &stubRunner{stdout: []byte("texto")}
	e := extractor.NewOCRExtractor(extractor.OCRConfig{
		Binary:   "/usr/local/bin/tesseract",
		Language: "spa",
		TempDir:  t.TempDir(),
	}, runner)

	_, err := e.Extract(context.Background(), []byte{0x89, 0x50})

	assert.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/tesseract", runner.gotName)
	assert.Equal(t, "spa", runner.gotArgs[3])
}

func TestOCRExtractor_RemovesStagedFile(t *testing.T) {
	dir := t.TempDir()
	runner := &stubRunner{stdout: []byte("ok")}
	e := extractor.NewOCRExtractor(extractor.OCRConfig{TempDir: dir}, runner)

	_, err := e.Extract(context.Background(), []byte{0x01})
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOCRExtractor_RunnerFailureIncludesStderr(t *testing.T) {
	runner := &stubRunner{stderr: []byte("could not load image"), err: assert.AnError}
	e := extractor.NewOCRExtractor(extractor.OCRConfig{TempDir: t.TempDir()}, runner)

	_, err := e.Extract(context.Background(), []byte{0x01})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not load image")
}

func TestOCRExtractor_Supports(t *testing.T) {
	e := extractor.NewOCRExtractor(extractor.OCRConfig{}, &stubRunner{})

	assert.True(t, e.Supports("image/jpeg"))
	assert.True(t, e.Supports("image/png"))
	assert.False(t, e.Supports("application/pdf"))
}
