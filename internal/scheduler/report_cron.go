package cron

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/shelterpartner/report-service/internal/jobs"
	"github.com/sirupsen/logrus"
)

// StartReportCronJobs schedules the daily scheduled-report sweep.
func StartReportCronJobs(invoker *jobs.ReportInvoker, spec string) {
	c := cron.New()

	if _, err := c.AddFunc(spec, func() {
		if err := invoker.RunSweep(context.Background()); err != nil {
			logrus.WithError(err).Error("Scheduled report sweep failed")
		}
	}); err != nil {
		logrus.WithError(err).WithField("spec", spec).Fatal("Invalid report cron spec")
	}

	c.Start()
	logrus.WithField("spec", spec).Info("Report cron started")
}
