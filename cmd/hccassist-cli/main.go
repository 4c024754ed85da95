package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"hccassist/hcc"
)

type cliOptions struct {
	configPath  string
	notePath    string
	history     string
	knownCodes  string
	catalogPath string
	lexiconPath string
	age         int
	jsonOut     bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("hccassist-cli: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("hccassist-cli: %v", err)
	}
}

func parseFlags() (cliOptions, error) {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to hccassist.yaml (default: ./hccassist.yaml)")
	flag.StringVar(&opts.notePath, "note", "", "File containing the clinical note, or - for stdin")
	flag.StringVar(&opts.history, "history", "", "Optional patient history text")
	flag.StringVar(&opts.knownCodes, "codes", "", "Comma separated list of already-coded diagnosis codes")
	flag.StringVar(&opts.catalogPath, "catalog", "", "Catalog file (.csv or .db); built-in demo catalog when omitted")
	flag.StringVar(&opts.lexiconPath, "lexicon", "", "Lexicon file (.csv or .db); built-in demo lexicon when omitted")
	flag.IntVar(&opts.age, "age", 0, "Patient age")
	flag.BoolVar(&opts.jsonOut, "json", false, "Print recommendations as JSON")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --note FILE [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.notePath = strings.TrimSpace(opts.notePath)
	if opts.notePath == "" {
		flag.Usage()
		return opts, errors.New("missing required --note file")
	}
	return opts, nil
}

func run(opts cliOptions) error {
	cfg, err := hcc.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	catalogEntries, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	catalog, err := hcc.NewCatalog(catalogEntries)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	lexiconEntries, err := loadLexicon(opts.lexiconPath)
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}
	lexicon, err := hcc.NewLexicon(lexiconEntries)
	if err != nil {
		return fmt.Errorf("build lexicon: %w", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	pipeline, err := hcc.NewPipeline(cfg, lexicon, catalog, logger)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}

	noteText, err := readNote(opts.notePath)
	if err != nil {
		return err
	}
	note := hcc.ClinicalNote{
		Text: noteText,
		Context: hcc.PatientContext{
			KnownCodes: splitCodes(opts.knownCodes),
			Age:        opts.age,
			History:    opts.history,
		},
	}

	recs, err := pipeline.Analyze(context.Background(), note)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	printTable(recs)
	return nil
}

func loadCatalog(path string) ([]hcc.DiagnosisCode, error) {
	switch {
	case path == "":
		return hcc.DefaultCatalogEntries(), nil
	case strings.EqualFold(filepath.Ext(path), ".csv"):
		return hcc.LoadCatalogCSV(path)
	default:
		return hcc.LoadCatalogDB(path)
	}
}

func loadLexicon(path string) ([]hcc.LexiconEntry, error) {
	switch {
	case path == "":
		return hcc.DefaultLexiconEntries(), nil
	case strings.EqualFold(filepath.Ext(path), ".csv"):
		return hcc.LoadLexiconCSV(path)
	default:
		return hcc.LoadLexiconDB(path)
	}
}

func readNote(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(data), nil
}

func splitCodes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printTable(recs []hcc.Recommendation) {
	if len(recs) == 0 {
		fmt.Println("No recommendations.")
		return
	}
	for i, rec := range recs {
		fmt.Printf("%d. %s %s (%s)\n", i+1, rec.Code, rec.Description, rec.Role)
		if rec.CurrentCode != "" {
			fmt.Printf("   current: %s\n", rec.CurrentCode)
		}
		fmt.Printf("   confidence: %d  annual impact: $%.0f\n", rec.Score, rec.AnnualImpact)
		for _, line := range rec.Rationale {
			fmt.Printf("   - %s\n", line)
		}
	}
}
