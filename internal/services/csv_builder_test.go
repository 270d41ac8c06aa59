package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shelterpartner/report-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestFormatTags(t *testing.T) {
	tags := []models.Tag{
		{Title: "Shy", Count: 1},
		{Title: "Lap Cat", Count: 2},
	}
	assert.Equal(t, "[(Shy: 1), (Lap Cat: 2)]", FormatTags(tags))
	assert.Equal(t, "", FormatTags(nil))
	assert.Equal(t, "", FormatTags([]models.Tag{}))
}

func TestBuildCSVRecordsRowShape(t *testing.T) {
	loc := chicago(t)
	noteTime := time.Date(2024, 3, 10, 12, 0, 0, 0, loc)
	logStart := time.Date(2024, 3, 11, 9, 30, 0, 0, loc)
	logEnd := logStart.Add(90 * time.Minute)

	rec := models.ActivityRecord{
		ID:      "50",
		Name:    "Butterscotch",
		Species: models.SpeciesCat,
		Tags:    []models.Tag{{Title: "Shy", Count: 1}},
		Notes: []models.Note{
			{Note: "Likes brushing", Timestamp: timePtr(noteTime), Author: "sam"},
			{Note: "Hid under the bed", Timestamp: timePtr(noteTime.Add(time.Hour))},
		},
		Logs: []models.Log{
			{StartTime: timePtr(logStart), EndTime: timePtr(logEnd), Type: "Walk", Author: "alex"},
		},
	}

	rows := BuildCSVRecords([]models.ActivityRecord{rec}, loc)
	require.Len(t, rows, 4, "one header row + 2 notes + 1 log")

	assert.Equal(t, []string{
		"50", "Butterscotch", "Cat", "[(Shy: 1)]",
		"", "", "", "", "", "", "", "",
	}, rows[0])

	assert.Equal(t, []string{
		"", "", "", "",
		"Mar 10", "sam", "Likes brushing",
		"", "", "", "", "",
	}, rows[1])

	assert.Equal(t, []string{
		"", "", "", "",
		"Mar 10", "", "Hid under the bed",
		"", "", "", "", "",
	}, rows[2])

	assert.Equal(t, []string{
		"", "", "", "", "", "", "",
		"Walk", "Mar 11 09:30", "Mar 11 11:00", "90", "alex",
	}, rows[3])
}

func TestBuildCSVRecordsEmptyTagColumn(t *testing.T) {
	loc := chicago(t)
	rec := models.ActivityRecord{
		ID:      "7",
		Name:    "Rex",
		Species: models.SpeciesDog,
		Notes:   []models.Note{{Note: "Good boy", Timestamp: timePtr(time.Date(2024, 3, 10, 8, 0, 0, 0, loc))}},
	}

	rows := BuildCSVRecords([]models.ActivityRecord{rec}, loc)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0][3])
}

func TestBuildCSVRecordsNegativeDuration(t *testing.T) {
	loc := chicago(t)
	start := time.Date(2024, 3, 11, 10, 0, 0, 0, loc)

	rec := models.ActivityRecord{
		ID:      "9",
		Name:    "Mittens",
		Species: models.SpeciesCat,
		Logs: []models.Log{
			{StartTime: timePtr(start), EndTime: timePtr(start.Add(-30 * time.Minute))},
		},
	}

	rows := BuildCSVRecords([]models.ActivityRecord{rec}, loc)
	require.Len(t, rows, 2)
	assert.Equal(t, "-30", rows[1][10], "a log closed before it started keeps its negative duration")
}

func TestBuildCSVRecordsZeroDuration(t *testing.T) {
	loc := chicago(t)
	start := time.Date(2024, 3, 11, 10, 0, 0, 0, loc)

	rec := models.ActivityRecord{
		ID:      "9",
		Name:    "Mittens",
		Species: models.SpeciesCat,
		Logs:    []models.Log{{StartTime: timePtr(start), EndTime: timePtr(start)}},
	}

	rows := BuildCSVRecords([]models.ActivityRecord{rec}, loc)
	require.Len(t, rows, 2)
	assert.Equal(t, "0", rows[1][10])
}

func TestWriteCSVToIncludesHeader(t *testing.T) {
	loc := chicago(t)
	rec := models.ActivityRecord{
		ID:      "1",
		Name:    "Luna",
		Species: models.SpeciesCat,
		Notes:   []models.Note{{Note: "Playful", Timestamp: timePtr(time.Date(2024, 3, 9, 15, 0, 0, 0, loc))}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSVTo(&buf, BuildCSVRecords([]models.ActivityRecord{rec}, loc)))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	assert.Equal(t, []string{
		"ID", "Name", "Species", "Tags",
		"Note Date", "Note Author", "Note",
		"Log Type", "Log Start", "Log End", "Log Duration (minutes)", "Log Author",
	}, parsed[0])
}
