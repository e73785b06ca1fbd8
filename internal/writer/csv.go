package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/deckside/lin-converter/internal/models"
)

// CSVWriter writes normalized boards to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// Columns of the output schema. Unresolved fields render as empty strings.
var columns = []string{
	"board",
	"north_hand", "east_hand", "south_hand", "west_hand",
	"declarer", "final_contract", "trump",
	"first_card", "tricks",
}

// WriteToFile writes the conversion result to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, result *models.ConvertResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, result)
}

// Write writes the conversion result in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, result *models.ConvertResult) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	// Run metadata as comment-style header rows
	if w.IncludeHeader {
		if result.Source != "" {
			cw.Write([]string{"# Source", result.Source})
		}
		cw.Write([]string{"# Boards", strconv.Itoa(len(result.Boards))})
		if result.Report != nil && len(result.Report.Skipped) > 0 {
			cw.Write([]string{"# Skipped", strconv.Itoa(len(result.Report.Skipped))})
		}
	}

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, b := range result.Boards {
		if err := cw.Write(boardRow(b)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func boardRow(b *models.Board) []string {
	row := []string{
		b.ID,
		models.HandString(b.Hands[models.North]),
		models.HandString(b.Hands[models.East]),
		models.HandString(b.Hands[models.South]),
		models.HandString(b.Hands[models.West]),
		"", "", "", "", "",
	}
	if b.Contract != nil {
		row[5] = b.Contract.Declarer.String()
		row[6] = b.Contract.Token
		row[7] = string(b.Contract.Strain)
	}
	if b.OpeningLead != nil {
		row[8] = b.OpeningLead.String()
	}
	if b.Tricks != nil {
		row[9] = strconv.Itoa(*b.Tricks)
	}
	return row
}
