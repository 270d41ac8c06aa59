package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/shelterpartner/report-service/internal/models"
	"github.com/shelterpartner/report-service/internal/services"
	"github.com/sirupsen/logrus"
)

// ShelterSource yields every shelter with its scheduled-report settings.
// Implemented by repository.ShelterRepository.
type ShelterSource interface {
	GetAllShelters(ctx context.Context) ([]models.Shelter, error)
}

// ReportInvoker sweeps all shelters and runs the scheduled reports that
// are due today.
type ReportInvoker struct {
	Shelters ShelterSource
	Reports  *services.ReportService

	loc *time.Location
	now func() time.Time
}

// NewReportInvoker creates a new instance of ReportInvoker. loc decides
// what "today" means for schedule matching.
func NewReportInvoker(shelters ShelterSource, reports *services.ReportService, loc *time.Location) *ReportInvoker {
	return &ReportInvoker{
		Shelters: shelters,
		Reports:  reports,
		loc:      loc,
		now:      time.Now,
	}
}

// RunSweep checks every shelter's report schedules and sends the ones due.
// A failure for one report is logged and the sweep continues; only a
// failure to list the shelters aborts it.
func (inv *ReportInvoker) RunSweep(ctx context.Context) error {
	shelters, err := inv.Shelters.GetAllShelters(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch shelters: %v", err)
	}

	now := inv.now().In(inv.loc)
	var sent, failed int

	for _, shelter := range shelters {
		for _, report := range shelter.Settings.ScheduledReports {
			if !dueToday(report, now) {
				continue
			}

			req := models.ReportRequest{
				ShelterID: shelter.ID,
				Email:     report.Email,
				Frequency: report.Frequency,
			}
			if _, err := inv.Reports.Run(ctx, req); err != nil {
				failed++
				logrus.WithError(err).WithFields(logrus.Fields{
					"shelter_id": shelter.ID,
					"report_id":  report.ID,
				}).Error("Scheduled report failed")
				continue
			}
			sent++
		}
	}

	logrus.WithFields(logrus.Fields{
		"shelters": len(shelters),
		"sent":     sent,
		"failed":   failed,
	}).Info("Scheduled report sweep completed")

	return nil
}

// dueToday applies the schedule-matching rules: Daily reports always run,
// Weekly on the configured weekday name, Monthly on the configured day of
// month.
func dueToday(report models.ScheduledReport, now time.Time) bool {
	switch report.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		return report.DayOfWeek == now.Weekday().String()
	case models.FrequencyMonthly:
		return report.DayOfMonth == now.Day()
	}
	return false
}
