package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shelterpartner/report-service/internal/models"
)

// csvHeader is the fixed attachment schema. Consumers import these
// reports into spreadsheets, so the column set and order must not change.
var csvHeader = []string{
	"ID", "Name", "Species", "Tags",
	"Note Date", "Note Author", "Note",
	"Log Type", "Log Start", "Log End", "Log Duration (minutes)", "Log Author",
}

// FormatTags renders an animal's tags as "[(Shy: 1), (Lap Cat: 2)]".
// An empty tag list renders as the empty string, not "[]".
func FormatTags(tags []models.Tag) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, fmt.Sprintf("(%s: %d)", tag.Title, tag.Count))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// BuildCSVRecords flattens activity records into CSV data rows: per animal
// one header row (id, name, species, tags), then one row per note, then
// one row per log. Columns that do not apply to a row stay blank.
// Timestamps on the records are non-nil; the collector already dropped
// entries without them.
func BuildCSVRecords(records []models.ActivityRecord, loc *time.Location) [][]string {
	var rows [][]string

	for _, rec := range records {
		rows = append(rows, []string{
			rec.ID, rec.Name, rec.Species, FormatTags(rec.Tags),
			"", "", "", "", "", "", "", "",
		})

		for _, note := range rec.Notes {
			rows = append(rows, []string{
				"", "", "", "",
				note.Timestamp.In(loc).Format("Jan 2"), note.Author, note.Note,
				"", "", "", "", "",
			})
		}

		for _, log := range rec.Logs {
			start := log.StartTime.In(loc)
			end := log.EndTime.In(loc)
			// A log closed before it started keeps its negative duration;
			// the CSV is an audit trail and clamping would hide bad data.
			duration := int(math.Round(end.Sub(start).Minutes()))
			rows = append(rows, []string{
				"", "", "", "", "", "", "",
				log.Type,
				start.Format("Jan 2 15:04"), end.Format("Jan 2 15:04"),
				strconv.Itoa(duration), log.Author,
			})
		}
	}

	return rows
}

// WriteCSVTo writes the column header followed by the data rows.
func WriteCSVTo(w io.Writer, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	return writer.WriteAll(rows)
}

// WriteCSV writes the report to a file at path.
func WriteCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	if err := WriteCSVTo(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write CSV file: %v", err)
	}
	return f.Close()
}
