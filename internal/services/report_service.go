package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shelterpartner/report-service/internal/models"
	"github.com/shelterpartner/report-service/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Sentinel errors the handlers map onto HTTP status classes.
var (
	ErrFetchFailed = errors.New("failed to fetch animal data")
	ErrCSVWrite    = errors.New("failed to generate CSV file")
	ErrEmailSend   = errors.New("failed to send report email")
)

// AnimalSource yields all animals of one species for a shelter.
// Implemented by repository.AnimalRepository.
type AnimalSource interface {
	GetAnimalsBySpecies(ctx context.Context, shelterID, species string) ([]models.Animal, error)
}

// Mailer delivers one report email with the CSV attached.
// Implemented by email.Mailer.
type Mailer interface {
	Send(to, subject, htmlBody, attachmentPath, attachmentName string) error
}

// ReportService encapsulates the activity report pipeline: resolve the
// window, collect in-window activity, shape the CSV and digest, send the
// email.
type ReportService struct {
	animals AnimalSource
	mailer  Mailer
	loc     *time.Location
	now     func() time.Time
}

// NewReportService creates a new instance of ReportService. loc anchors
// the report windows and all rendered timestamps.
func NewReportService(animals AnimalSource, mailer Mailer, loc *time.Location) *ReportService {
	return &ReportService{
		animals: animals,
		mailer:  mailer,
		loc:     loc,
		now:     time.Now,
	}
}

// ReportOutcome summarizes one completed run. Sent is false when the
// window held no activity and no email went out.
type ReportOutcome struct {
	Sent    bool
	Animals int
	Rows    int
	Window  Window
}

// Run executes the full pipeline for one decoded trigger request.
// Re-running for the same window re-sends the email; deduplication is the
// scheduler's responsibility.
func (s *ReportService) Run(ctx context.Context, req models.ReportRequest) (*ReportOutcome, error) {
	window, err := ResolveWindow(req.Frequency, s.now(), s.loc)
	if err != nil {
		logger.Log.WithField("frequency", req.Frequency).Warn("Invalid report frequency")
		return nil, err
	}

	records, err := s.Collect(ctx, req.ShelterID, window)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		logger.Log.WithField("shelter_id", req.ShelterID).Info("No data to report for the specified period")
		return &ReportOutcome{Sent: false, Window: window}, nil
	}

	rows := BuildCSVRecords(records, s.loc)

	// Unique per invocation so concurrent runs cannot clobber each other.
	path := filepath.Join(os.TempDir(), fmt.Sprintf("animal_activity_report_%s.csv", uuid.NewString()))
	if err := WriteCSV(path, rows); err != nil {
		logger.Log.WithError(err).Error("Failed to write report CSV")
		return nil, fmt.Errorf("%w: %v", ErrCSVWrite, err)
	}
	defer os.Remove(path)

	digest := BuildDigest(records)
	subject := fmt.Sprintf("Animal Activity Report %s to %s",
		window.Start.Format("Jan 2"), window.End.Format("Jan 2"))

	if err := s.mailer.Send(req.Email, subject, digest, path, "animal_activity_report.csv"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmailSend, err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"shelter_id": req.ShelterID,
		"email":      req.Email,
		"animals":    len(records),
		"rows":       len(rows),
	}).Info("Report generated and sent")

	return &ReportOutcome{Sent: true, Animals: len(records), Rows: len(rows), Window: window}, nil
}

// Preview builds the CSV for a shelter and window without sending mail.
// Used by the admin dry-run endpoint.
func (s *ReportService) Preview(ctx context.Context, shelterID, frequency string) ([]byte, error) {
	window, err := ResolveWindow(frequency, s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	records, err := s.Collect(ctx, shelterID, window)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteCSVTo(&buf, BuildCSVRecords(records, s.loc)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCSVWrite, err)
	}
	return buf.Bytes(), nil
}

// Collect fetches both species concurrently and filters each animal's
// activity down to the window. Output order is deterministic: cats before
// dogs, each species sorted by animal id.
func (s *ReportService) Collect(ctx context.Context, shelterID string, window Window) ([]models.ActivityRecord, error) {
	var cats, dogs []models.Animal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cats, err = s.animals.GetAnimalsBySpecies(gctx, shelterID, models.SpeciesCat)
		return err
	})
	g.Go(func() error {
		var err error
		dogs, err = s.animals.GetAnimalsBySpecies(gctx, shelterID, models.SpeciesDog)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	var records []models.ActivityRecord
	for _, group := range [][]models.Animal{cats, dogs} {
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
		for _, animal := range group {
			if rec, ok := filterAnimal(animal, window); ok {
				records = append(records, rec)
			}
		}
	}

	logger.Log.WithFields(map[string]interface{}{
		"shelter_id": shelterID,
		"animals":    len(records),
	}).Info("Collected in-window activity")

	return records, nil
}

// filterAnimal reduces one animal to its in-window activity. A defective
// unit (missing name, missing timestamp) is skipped with a warning; it
// never fails the run.
func filterAnimal(animal models.Animal, window Window) (models.ActivityRecord, bool) {
	if animal.Name == "" {
		logger.Log.WithFields(map[string]interface{}{
			"animal_id": animal.ID,
			"species":   animal.Species,
		}).Warn("Skipping animal without a name")
		return models.ActivityRecord{}, false
	}

	var notes []models.Note
	for _, note := range animal.Notes {
		if note.Timestamp == nil {
			logger.Log.WithField("animal_id", animal.ID).Warn("Skipping note without timestamp")
			continue
		}
		if window.Contains(*note.Timestamp) {
			notes = append(notes, note)
		}
	}

	var logs []models.Log
	for _, log := range animal.Logs {
		if log.StartTime == nil || log.EndTime == nil {
			logger.Log.WithField("animal_id", animal.ID).Warn("Skipping log without start or end time")
			continue
		}
		if window.Contains(*log.StartTime) {
			logs = append(logs, log)
		}
	}

	var photos []models.Photo
	for _, photo := range animal.Photos {
		if photo.Timestamp == nil {
			logger.Log.WithField("animal_id", animal.ID).Warn("Skipping photo without timestamp")
			continue
		}
		if window.Contains(*photo.Timestamp) {
			photos = append(photos, photo)
		}
	}

	if len(notes) == 0 && len(logs) == 0 && len(photos) == 0 {
		return models.ActivityRecord{}, false
	}

	return models.ActivityRecord{
		ID:      animal.ID,
		Name:    animal.Name,
		Species: animal.Species,
		Notes:   notes,
		Logs:    logs,
		Photos:  photos,
		Tags:    animal.Tags,
	}, true
}
