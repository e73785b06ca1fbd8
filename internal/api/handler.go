package api

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/deckside/lin-converter/internal/models"
	"github.com/deckside/lin-converter/internal/parser"
	"github.com/deckside/lin-converter/internal/writer"
)

const version = "1.0.0"

// BoardRecord is the JSON form of one normalized board. Unresolved fields
// are omitted.
type BoardRecord struct {
	Board     string `json:"board"`
	NorthHand string `json:"northHand"`
	EastHand  string `json:"eastHand"`
	SouthHand string `json:"southHand"`
	WestHand  string `json:"westHand"`
	Declarer  string `json:"declarer,omitempty"`
	Contract  string `json:"contract,omitempty"`
	Trump     string `json:"trump,omitempty"`
	FirstCard string `json:"firstCard,omitempty"`
	Tricks    *int   `json:"tricks,omitempty"`
}

// ConvertResponse is the JSON envelope returned by /api/convert.
type ConvertResponse struct {
	Success bool                  `json:"success"`
	Error   string                `json:"error,omitempty"`
	Source  string                `json:"source,omitempty"`
	Boards  []BoardRecord         `json:"boards"`
	CSV     string                `json:"csv,omitempty"`
	Count   int                   `json:"count"`
	Skipped []models.SkippedBoard `json:"skipped,omitempty"`
	Version string                `json:"version,omitempty"`
}

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/api/health", HandleHealth)
	app.Post("/api/convert", HandleConvert)
	return app
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
		"engine":  "fiber",
	})
}

// HandleConvert converts an uploaded transcript. The transcript arrives as
// a multipart file upload (form field "file") or as a raw "text" form
// field. Optional form fields: "strict" ("true" aborts on the first bad
// board), "header" ("false" drops the CSV metadata rows).
func HandleConvert(c *fiber.Ctx) error {
	text, source, err := transcriptFromRequest(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	p := &parser.Parser{Strict: c.FormValue("strict") == "true"}
	boards, report, err := p.ParseAll(strings.NewReader(text))
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("parsing failed: %v", err))
	}

	result := &models.ConvertResult{Source: source, Boards: boards, Report: report}

	var csvBuf bytes.Buffer
	cw := &writer.CSVWriter{IncludeHeader: c.FormValue("header") != "false"}
	if err := cw.Write(&csvBuf, result); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	records := make([]BoardRecord, 0, len(boards))
	for _, b := range boards {
		records = append(records, toRecord(b))
	}

	log.Info().
		Str("source", source).
		Int("accepted", report.Accepted).
		Int("skipped", len(report.Skipped)).
		Msg("transcript converted")

	return c.JSON(ConvertResponse{
		Success: true,
		Source:  source,
		Boards:  records,
		CSV:     csvBuf.String(),
		Count:   len(records),
		Skipped: report.Skipped,
		Version: version,
	})
}

// transcriptFromRequest pulls the transcript text out of the request,
// preferring a file upload over the raw text field.
func transcriptFromRequest(c *fiber.Ctx) (text, source string, err error) {
	if fh, ferr := c.FormFile("file"); ferr == nil {
		f, oerr := fh.Open()
		if oerr != nil {
			return "", "", fmt.Errorf("failed to open upload: %w", oerr)
		}
		defer f.Close()

		var buf bytes.Buffer
		if _, cerr := buf.ReadFrom(f); cerr != nil {
			return "", "", fmt.Errorf("failed to read upload: %w", cerr)
		}
		return buf.String(), fh.Filename, nil
	}

	if t := c.FormValue("text"); t != "" {
		return t, "inline", nil
	}
	return "", "", fmt.Errorf("no transcript provided; upload form field %q or send %q", "file", "text")
}

func toRecord(b *models.Board) BoardRecord {
	rec := BoardRecord{
		Board:     b.ID,
		NorthHand: models.HandString(b.Hands[models.North]),
		EastHand:  models.HandString(b.Hands[models.East]),
		SouthHand: models.HandString(b.Hands[models.South]),
		WestHand:  models.HandString(b.Hands[models.West]),
		Tricks:    b.Tricks,
	}
	if b.Contract != nil {
		rec.Declarer = b.Contract.Declarer.String()
		rec.Contract = b.Contract.Token
		rec.Trump = string(b.Contract.Strain)
	}
	if b.OpeningLead != nil {
		rec.FirstCard = b.OpeningLead.String()
	}
	return rec
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success: false,
		Error:   msg,
		Boards:  []BoardRecord{},
	})
}
