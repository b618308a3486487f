package app

import (
	"context"
	"fmt"
	"time"

	"github.com/politiekmatcher/core/internal/modules/profiles"
	pkgcron "github.com/politiekmatcher/core/internal/pkg/cron"
	"github.com/politiekmatcher/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs.
func (a *App) registerCronJobs(profilesSvc *profiles.Service, taskSvc *taskqueue.Service) {
	cronLogger := a.logger.Named("cron")

	a.sched.Register(pkgcron.Job{
		Name:        "sweep_unclassified",
		Description: "queue classification for responses that never got a label",
		Interval:    10 * time.Minute,
		Fn: func(ctx context.Context) error {
			queued, err := profilesSvc.SweepUnclassified(ctx, 100)
			if err != nil {
				cronLogger.Warn("unclassified sweep failed", zap.Error(err))
				return err
			}
			if queued > 0 {
				cronLogger.Info(fmt.Sprintf("queued %d unclassified responses", queued))
			}
			return nil
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "cleanup_tasks",
		Description: "remove finished task records older than 7 days",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			before := time.Now().AddDate(0, 0, -7).UnixMilli()
			if err := taskSvc.DeleteCompleted(ctx, before); err != nil {
				cronLogger.Warn("task cleanup failed", zap.Error(err))
				return err
			}
			return nil
		},
	})
}
