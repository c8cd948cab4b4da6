package ocr

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"budgetbot/internal/common"
)

type stubRunner struct {
	stdout string
	stderr string
	err    error
	name   string
	args   []string
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.name = name
	r.args = args
	return []byte(r.stdout), []byte(r.stderr), r.err
}

func newTestScanner(runner Runner) *Scanner {
	s := NewScanner(common.OCRConfig{Tesseract: "tesseract", Language: "eng"}, slog.Default())
	s.runner = runner
	return s
}

func TestScanRunsTesseract(t *testing.T) {
	runner := &stubRunner{stdout: "Big Bazaar\nTotal: 450.00\n"}
	s := newTestScanner(runner)

	res, err := s.Scan(context.Background(), "/tmp/receipt.jpg")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if runner.name != "tesseract" {
		t.Errorf("cmd = %q", runner.name)
	}
	if len(runner.args) < 4 || runner.args[0] != "/tmp/receipt.jpg" || runner.args[1] != "stdout" {
		t.Errorf("args = %v", runner.args)
	}
	if !strings.Contains(res.Text, "Total: 450.00") {
		t.Errorf("text = %q", res.Text)
	}
	if res.Confidence <= 0.2 {
		t.Errorf("confidence = %v, want boost for amount pattern", res.Confidence)
	}
}

func TestScanRejectsUnsupportedExtension(t *testing.T) {
	s := newTestScanner(&stubRunner{})

	_, err := s.Scan(context.Background(), "/tmp/receipt.pdf")
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestScanWrapsTesseractFailure(t *testing.T) {
	runner := &stubRunner{err: errors.New("exit status 1"), stderr: "could not read image"}
	s := newTestScanner(runner)

	if _, err := s.Scan(context.Background(), "/tmp/receipt.png"); err == nil {
		t.Fatal("expected error")
	}
}

func TestHeuristicConfidence(t *testing.T) {
	bare := heuristicConfidence("random words")
	rich := heuristicConfidence("Big Bazaar 12/08/2026\nRs. 1,450.00\nTotal: 1450.00\n" + strings.Repeat("item line\n", 15))
	if rich <= bare {
		t.Errorf("rich = %v should exceed bare = %v", rich, bare)
	}
}
