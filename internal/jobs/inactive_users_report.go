// File: internal/jobs/inactive_users_report.go
package jobs

import (
	"context"
	"time"

	"conectar_backend/internal/config"
	"conectar_backend/internal/user"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reportRunTimeout = 2 * time.Minute

// InactiveUsersReportJob periodically logs the users who have not logged in recently.
type InactiveUsersReportJob struct {
	userService   user.Service
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewInactiveUsersReportJob creates a new InactiveUsersReportJob.
func NewInactiveUsersReportJob(userService user.Service, logger *zap.Logger, cfg *config.Config) *InactiveUsersReportJob {
	cronLog := NewCronLogger(logger.Named("cron"))
	scheduler := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.SkipIfStillRunning(cronLog)),
	)
	return &InactiveUsersReportJob{
		userService:   userService,
		logger:        logger.Named("InactiveUsersReportJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules the report and starts the scheduler in the background.
// An empty schedule disables the job.
func (j *InactiveUsersReportJob) SetupAndStart() error {
	schedule := j.cfg.InactiveUsersReportSchedule
	if schedule == "" {
		j.logger.Warn("Inactive users report schedule not defined (INACTIVE_USERS_REPORT_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(schedule, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule inactive users report", zap.String("schedule", schedule), zap.Error(err))
		return err
	}

	j.logger.Info("Inactive users report scheduled", zap.String("schedule", schedule), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *InactiveUsersReportJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), reportRunTimeout)
	defer cancel()
	j.Run(ctx)
}

// Run produces one report. It returns the number of inactive users found, or -1 on failure.
func (j *InactiveUsersReportJob) Run(ctx context.Context) int {
	j.logger.Info("Starting inactive users report run...")
	users, err := j.userService.FindInactiveUsers(ctx)
	if err != nil {
		j.logger.Error("Inactive users report run failed", zap.Error(err))
		return -1
	}

	for _, u := range users {
		fields := []zap.Field{zap.String("userID", u.ID.String()), zap.String("email", u.Email)}
		if u.LastLogin != nil {
			fields = append(fields, zap.Time("lastLogin", *u.LastLogin))
		}
		j.logger.Info("Inactive user", fields...)
	}
	j.logger.Info("Inactive users report run completed", zap.Int("inactive_users", len(users)))
	return len(users)
}

// Stop stops the scheduler, waiting briefly for a running report to finish.
func (j *InactiveUsersReportJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping inactive users report scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Inactive users report scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Inactive users report scheduler stop timed out.")
	}
}
