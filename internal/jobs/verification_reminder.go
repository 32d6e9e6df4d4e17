// File: internal/jobs/verification_reminder.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"iserviceseeker_backend/internal/config"
	"iserviceseeker_backend/internal/provider"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Providers older than this without verification get flagged by the sweep.
const verificationGracePeriod = 7 * 24 * time.Hour

// VerificationReminderJob periodically sweeps for provider profiles that have
// been waiting on license verification past the grace period.
type VerificationReminderJob struct {
	providerRepo  provider.Repository
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewVerificationReminderJob creates a new VerificationReminderJob.
func NewVerificationReminderJob(
	providerRepo provider.Repository,
	logger *zap.Logger,
	cfg *config.Config,
) *VerificationReminderJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &VerificationReminderJob{
		providerRepo:  providerRepo,
		logger:        logger.Named("VerificationReminderJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *VerificationReminderJob) SetupAndStart() error {
	jobSpec := j.cfg.VerificationReminderJobSchedule
	if jobSpec == "" {
		j.logger.Warn("Verification reminder job schedule not defined (VERIFICATION_REMINDER_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule verification reminder job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Verification reminder job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *VerificationReminderJob) runJob() {
	j.logger.Info("Starting verification reminder job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-verificationGracePeriod)
	profiles, err := j.providerRepo.FindUnverifiedProfiles(ctx, cutoff)
	if err != nil {
		j.logger.Error("Verification reminder job run failed", zap.Error(err))
		return
	}

	for i := range profiles {
		p := &profiles[i]
		j.logger.Info("Provider profile still awaiting verification",
			zap.Uint("profileID", p.ID),
			zap.String("companyName", p.CompanyName),
			zap.Time("createdAt", p.CreatedAt),
			zap.Bool("hasLicenseDocument", p.LicenseDocumentPath != nil),
		)
	}
	j.logger.Info("Verification reminder job run completed", zap.Int("profiles_flagged", len(profiles)))
}

// Stop gracefully stops the cron scheduler.
func (j *VerificationReminderJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping verification reminder job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Verification reminder job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Verification reminder job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	cl.zl.Info(msg, fields...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
