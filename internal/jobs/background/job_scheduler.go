package background

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"stocksphere/internal/jobs"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const (
	AlertsJobName = "inventory-alerts"
	BackupJobName = "store-backup"

	jobTimeout = 2 * time.Minute
)

var ErrUnknownJob = errors.New("unknown job")

// JobInfo describes one registered job. Run times are nil until known.
type JobInfo struct {
	Name    string     `json:"name"`
	LastRun *time.Time `json:"lastRun,omitempty"`
	NextRun *time.Time `json:"nextRun,omitempty"`
}

// Backuper takes a store snapshot and returns its object name.
type Backuper interface {
	Backup(ctx context.Context) (string, error)
}

// Intervals configures how often each job runs. A zero Backup interval or a
// nil Backuper leaves the backup job out.
type Intervals struct {
	Alerts time.Duration
	Backup time.Duration
}

// JobScheduler manages background jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	alerts    *jobs.LowStockAlertService
	backups   Backuper
	log       *zap.Logger
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a new job scheduler with every job registered
func NewJobScheduler(alerts *jobs.LowStockAlertService, backups Backuper, intervals Intervals, log *zap.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		alerts:    alerts,
		backups:   backups,
		log:       log.Named("scheduler"),
		jobs:      make(map[string]gocron.Job),
	}
	if err := js.registerJobs(intervals); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.log.Info("starting background job scheduler", zap.Int("jobs", len(js.jobs)))
	js.scheduler.Start()
}

// Stop stops the job scheduler and waits for running jobs
func (js *JobScheduler) Stop() error {
	js.log.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs(intervals Intervals) error {
	if err := js.add(AlertsJobName, intervals.Alerts, js.processInventoryAlerts); err != nil {
		return err
	}
	if js.backups != nil && intervals.Backup > 0 {
		if err := js.add(BackupJobName, intervals.Backup, js.backupStore); err != nil {
			return err
		}
	}
	js.log.Info("registered background jobs", zap.Int("count", len(js.jobs)))
	return nil
}

func (js *JobScheduler) add(name string, interval time.Duration, task func() error) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s job: %w", name, err)
	}
	js.jobs[name] = job
	return nil
}

// processInventoryAlerts checks for low stock and logs alerts
func (js *JobScheduler) processInventoryAlerts() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	return js.alerts.ScheduledLowStockCheck(ctx)
}

func (js *JobScheduler) backupStore() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	name, err := js.backups.Backup(ctx)
	if err != nil {
		js.log.Error("scheduled backup failed", zap.Error(err))
		return err
	}
	js.log.Info("scheduled backup written", zap.String("object", name))
	return nil
}

// RunNow triggers a registered job immediately
func (js *JobScheduler) RunNow(name string) error {
	js.mu.RLock()
	job, ok := js.jobs[name]
	js.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownJob, name)
	}
	js.log.Info("job triggered manually", zap.String("job", name))
	return job.RunNow()
}

// GetJobStatus returns information about scheduled jobs, ordered by name
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	infos := make([]JobInfo, 0, len(js.jobs))
	for name, job := range js.jobs {
		info := JobInfo{Name: name}
		if t, err := job.LastRun(); err == nil && !t.IsZero() {
			info.LastRun = &t
		}
		if t, err := job.NextRun(); err == nil && !t.IsZero() {
			info.NextRun = &t
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return map[string]interface{}{
		"total_jobs": len(infos),
		"jobs":       infos,
	}
}
