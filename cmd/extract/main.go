package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"

	"budgetbot/internal/classify"
	"budgetbot/internal/extract"
)

// Runs the receipt inference pipeline over a text file (or stdin) and
// prints the suggestion as JSON. Handy for eyeballing OCR dumps.
func main() {
	file := flag.String("file", "", "path to a receipt text file; reads stdin when empty")
	flag.Parse()

	var raw []byte
	var err error
	if *file != "" {
		raw, err = os.ReadFile(*file)
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	classifier := classify.NewKeywordClassifier()
	if err := classifier.Load(); err != nil {
		log.Fatalf("loading classifier: %v", err)
	}

	res := extract.NewExtractor(classifier, logger).Extract(string(raw))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("encoding result: %v", err)
	}
}
