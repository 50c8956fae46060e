package extractor

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Runner executes an external command. Abstracted so tests can stub the
// tesseract binary.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		log.Printf("extractor.OCR: exec %s failed after %dms: %v", name, time.Since(start).Milliseconds(), err)
	}
	return out.Bytes(), errb.Bytes(), err
}

// OCRConfig configures the tesseract invocation.
type OCRConfig struct {
	Binary   string
	Language string
	TempDir  string
}

// OCRExtractor extracts text from images by shelling out to tesseract.
// Tesseract reads from a file path, so the image bytes are staged in a
// temp file for the duration of the call.
type OCRExtractor struct {
	cfg    OCRConfig
	runner Runner
}

// NewOCRExtractor builds an image extractor. A nil runner uses os/exec.
func NewOCRExtractor(cfg OCRConfig, runner Runner) *OCRExtractor {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if runner == nil {
		runner = execRunner{}
	}
	return &OCRExtractor{cfg: cfg, runner: runner}
}

func (e *OCRExtractor) Supports(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func (e *OCRExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(e.cfg.TempDir, "ocr-"+uuid.NewString())
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("extractor.OCR: stage image: %w", err)
	}
	defer os.Remove(path)

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Binary, path, "stdout", "-l", e.cfg.Language)
	if err != nil {
		return "", fmt.Errorf("extractor.OCR: tesseract: %w (%s)", err, strings.TrimSpace(string(errb)))
	}
	return string(out), nil
}
