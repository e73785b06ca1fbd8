package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/deckside/lin-converter/internal/api"
	"github.com/deckside/lin-converter/internal/models"
	"github.com/deckside/lin-converter/internal/parser"
	"github.com/deckside/lin-converter/internal/store"
	"github.com/deckside/lin-converter/internal/writer"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	headerFlag := flag.Bool("header", true, "Include run metadata header rows in CSV")
	strictFlag := flag.Bool("strict", false, "Abort on the first bad board instead of skipping it")
	dbFlag := flag.String("db", getEnv("LIN_DB", ""), "SQLite database path; accepted boards are persisted when set")
	serveFlag := flag.Bool("serve", false, "Run the HTTP conversion API instead of converting files")
	portFlag := flag.String("port", getEnv("PORT", "8080"), "Port for the HTTP API (with -serve)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bridge Transcript to CSV Converter

Converts tag-delimited bridge vugraph transcripts (.lin) into normalized
per-board CSV records: hands, contract, trump, declarer, opening lead and
declarer-side tricks (explicit or replayed from the card play).

Usage:
  lin-converter [flags] <input.lin> [input2.lin ...]
  lin-converter -serve [-port 8080]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a transcript
  lin-converter match.lin

  # Custom output path, strict parsing
  lin-converter -strict -output=boards.csv match.lin

  # Convert several transcripts and persist boards to SQLite
  lin-converter -db=boards.db jan.lin feb.lin mar.lin

  # Serve the conversion API
  lin-converter -serve -port 8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("lin-converter v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		app := api.NewApp()
		log.Info().Str("port", *portFlag).Msg("starting conversion API")
		if err := app.Listen(":" + *portFlag); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	var st *store.Store
	if *dbFlag != "" {
		var err error
		st, err = store.Open(*dbFlag)
		if err != nil {
			log.Fatal().Err(err).Str("db", *dbFlag).Msg("failed to open board store")
		}
		defer st.Close()
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, *outputFlag, *headerFlag, *strictFlag, st); err != nil {
			log.Fatal().Err(err).Str("input", inputPath).Msg("conversion failed")
		}
	}
}

func processFile(inputPath, outputPath string, includeHeader, strict bool, st *store.Store) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	log.Info().Str("input", inputPath).Msg("processing transcript")

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	p := &parser.Parser{Strict: strict}
	boards, report, err := p.ParseAll(f)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	for _, s := range report.Skipped {
		log.Warn().
			Str("board", s.BoardID).
			Int("line", s.Line).
			Str("reason", string(s.Reason)).
			Str("detail", s.Detail).
			Msg("board skipped")
	}

	result := &models.ConvertResult{
		Source: filepath.Base(inputPath),
		Boards: boards,
		Report: report,
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	}

	w := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := w.WriteToFile(outPath, result); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	if st != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := st.SaveBoards(ctx, result.Source, boards); err != nil {
			return fmt.Errorf("persist boards: %w", err)
		}
	}

	log.Info().
		Str("output", outPath).
		Int("accepted", report.Accepted).
		Int("skipped", len(report.Skipped)).
		Msg("transcript converted")
	return nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
