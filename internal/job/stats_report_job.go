package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/directory"
	"github.com/sefazor/starclub-backend/internal/models"
)

type StatsSource interface {
	Stats(ctx context.Context) (directory.Stats, error)
}

// StatsReportJob logs the dashboard summary on a schedule.
type StatsReportJob struct {
	source  StatsSource
	logger  *zap.Logger
	timeout time.Duration
}

func NewStatsReportJob(source StatsSource, logger *zap.Logger) *StatsReportJob {
	return &StatsReportJob{source: source, logger: logger.Named("stats_job"), timeout: 30 * time.Second}
}

// Run implements cron.Job.
func (j *StatsReportJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	stats, err := j.source.Stats(ctx)
	if err != nil {
		j.logger.Error("collect stats", zap.Error(err))
		return
	}
	j.logger.Info("member stats",
		zap.Int("total_users", stats.TotalUsers),
		zap.Int("active_users", stats.ActiveUsers),
		zap.Int("total_visits", stats.TotalVisits),
		zap.Int("total_stars", stats.TotalStars),
		zap.Int("bronze", stats.UsersByTier[models.TierBronze]),
		zap.Int("silver", stats.UsersByTier[models.TierSilver]),
		zap.Int("gold", stats.UsersByTier[models.TierGold]),
		zap.Int("platinum", stats.UsersByTier[models.TierPlatinum]))
}

// NewScheduler returns a stopped cron with the stats job registered.
func NewScheduler(spec string, statsJob *StatsReportJob) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(spec, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(statsJob)); err != nil {
		return nil, err
	}
	return c, nil
}
