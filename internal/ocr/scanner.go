package ocr

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"budgetbot/constants"
	"budgetbot/internal/common"
)

// ScanResult is the decoded text of one receipt image plus a rough quality
// estimate for the decode itself.
type ScanResult struct {
	Text       string
	Language   string
	Duration   time.Duration
	Confidence float32
}

// Scanner turns receipt images into text by shelling out to tesseract.
type Scanner struct {
	cfg    common.OCRConfig
	runner Runner
	logger *slog.Logger
}

func NewScanner(cfg common.OCRConfig, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = constants.DefaultOCRLanguage
	}
	return &Scanner{cfg: cfg, runner: execRunner{}, logger: logger}
}

// stray box-drawing noise some decodes emit
var reBoxNoise = regexp.MustCompile(`[|_~]{3,}`)

// Scan runs OCR over the image at path.
func (s *Scanner) Scan(ctx context.Context, path string) (ScanResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		return ScanResult{}, common.ValidationErrorf("unsupported file type %q", ext)
	}
	s.logger.Debug("ocr.scan.start", "path", path, "ext", ext)

	args := []string{path, "stdout", "-l", s.cfg.Language}
	if s.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", s.cfg.TessdataDir)
	}

	out, errb, err := s.runner.Run(ctx, s.cfg.Tesseract, args...)
	if err != nil {
		s.logger.Error("ocr.scan.failed", "path", path, "stderr", truncate(string(errb), 2<<10))
		return ScanResult{}, common.NewAppError("OCR", "tesseract failed", err)
	}

	txt := reBoxNoise.ReplaceAllString(string(out), "")
	txt = strings.TrimSpace(txt)

	res := ScanResult{
		Text:       txt,
		Language:   s.cfg.Language,
		Duration:   time.Since(start),
		Confidence: heuristicConfidence(txt),
	}
	s.logger.Info("ocr.scan.complete", "path", path, "chars", len(txt),
		"confidence", res.Confidence, "elapsed_ms", res.Duration.Milliseconds())
	return res, nil
}
