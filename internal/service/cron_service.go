package service

import (
	"time"

	"github.com/lostnlocal/lostnlocalapi/internal/config"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// sessionAuditRetention keeps deactivated and expired session rows around
// long enough for audit before the sweep removes them
const sessionAuditRetention = 30 * 24 * time.Hour

// CronService runs the periodic maintenance sweeps
type CronService struct {
	cfg           *config.Config
	c             *cron.Cron
	rateLimitRepo *repository.RateLimitRepository
	sessionRepo   *repository.SessionRepository
}

// NewCronService creates a new CronService
func NewCronService(cfg *config.Config, db *gorm.DB) *CronService {
	return &CronService{
		cfg:           cfg,
		c:             cron.New(),
		rateLimitRepo: repository.NewRateLimitRepository(db),
		sessionRepo:   repository.NewSessionRepository(db),
	}
}

// Start registers and starts the scheduled jobs
func (cs *CronService) Start() {
	zaplogger.Info("Initializing CronService")

	cs.addScheduledJob("RateLimits PRUNE Job", cs.rateLimitsPruneJob, "0 * * * *")   // hourly
	cs.addScheduledJob("Sessions PRUNE Job", cs.sessionsPruneJob, "30 3 * * *")      // daily 03:30
	cs.addStartupJob("RateLimits PRUNE Job", cs.rateLimitsPruneJob, 10*time.Second)

	cs.c.Start()
}

// Stop stops the scheduler
func (cs *CronService) Stop() {
	cs.c.Stop()
}

// addStartupJob adds a startup job to the cron service
func (cs *CronService) addStartupJob(name string, job func(), delay time.Duration) {
	go func() {
		time.Sleep(delay)
		zaplogger.Info("STARTED STARTUP job", zaplogger.Fields{
			"job": name,
		})
		job()
		zaplogger.Info("COMPLETED STARTUP job", zaplogger.Fields{
			"job": name,
		})
	}()
}

// addScheduledJob adds a scheduled job to the cron service
func (cs *CronService) addScheduledJob(name string, job func(), spec string) {
	_, err := cs.c.AddFunc(spec, func() {
		zaplogger.Info("STARTED SCHEDULED job", zaplogger.Fields{
			"job": name,
		})
		job()
		zaplogger.Info("COMPLETED SCHEDULED job", zaplogger.Fields{
			"job": name,
		})
	})
	if err != nil {
		zaplogger.Error("Failed to schedule job", zaplogger.Fields{
			"job":   name,
			"error": err.Error(),
		})
	}
}

// rateLimitsPruneJob removes attempt rows older than the largest
// configured window, keeping the rate_limits table bounded
func (cs *CronService) rateLimitsPruneJob() {
	_, loginWindow := cs.cfg.LoginPolicy()
	_, signupWindow := cs.cfg.SignupPolicy()
	window := loginWindow
	if signupWindow > window {
		window = signupWindow
	}

	cutoff := time.Now().UTC().Add(-window)
	pruned, err := cs.rateLimitRepo.PruneBefore(cutoff)
	if err != nil {
		zaplogger.Error("rate limit prune failed", zaplogger.Fields{"error": err.Error()})
		return
	}
	zaplogger.Info("rate limit rows pruned", zaplogger.Fields{"rows": pruned})
}

// sessionsPruneJob removes session rows expired beyond the audit retention
func (cs *CronService) sessionsPruneJob() {
	cutoff := time.Now().UTC().Add(-sessionAuditRetention)
	pruned, err := cs.sessionRepo.DeleteExpiredBefore(cutoff)
	if err != nil {
		zaplogger.Error("session prune failed", zaplogger.Fields{"error": err.Error()})
		return
	}
	zaplogger.Info("session rows pruned", zaplogger.Fields{"rows": pruned})
}
