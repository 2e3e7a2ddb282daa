package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/touchwood-app/touchwood/internal/api"
	"github.com/touchwood-app/touchwood/internal/app/achievement"
	"github.com/touchwood-app/touchwood/internal/app/challenge"
	"github.com/touchwood-app/touchwood/internal/app/level"
	"github.com/touchwood-app/touchwood/internal/app/mood"
	"github.com/touchwood-app/touchwood/internal/app/notify"
	"github.com/touchwood-app/touchwood/internal/app/progress"
	"github.com/touchwood-app/touchwood/internal/app/seasonal"
	"github.com/touchwood-app/touchwood/internal/app/social"
	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/health"
	"github.com/touchwood-app/touchwood/internal/infra/catalog"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

// Daemon is the core Touchwood runtime. It wires together all engines.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Catalog *catalog.Catalog
	Server  *api.Server

	Progress     *progress.Tracker
	Challenges   *challenge.Engine
	Achievements *achievement.Engine
	Seasonal     *seasonal.Engine
	Mood         *mood.Engine
	Level        *level.Service
	Social       *social.Manager
	Notifier     *notify.Service
	Health       *health.Checker

	cron   *cron.Cron
	cancel context.CancelFunc
}

// New creates and initializes a Daemon with all engines wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(touchwoodHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return build(cfg, db)
}

// NewWithDB creates a Daemon over an already-open store. Tests use it to run
// the full engine stack against a scratch directory.
func NewWithDB(cfg Config, db *sqlite.DB) (*Daemon, error) {
	return build(cfg, db)
}

func build(cfg Config, db *sqlite.DB) (*Daemon, error) {
	d := &Daemon{
		Config:  cfg,
		DB:      db,
		Catalog: catalog.New(db),
	}

	policy := domain.NotificationPolicy{
		MaxPerDay:  cfg.Notifications.MaxPerDay,
		QuietStart: cfg.Notifications.QuietStart,
		QuietEnd:   cfg.Notifications.QuietEnd,
	}
	if policy.MaxPerDay == 0 {
		policy = domain.DefaultNotificationPolicy()
	}
	d.Notifier = notify.NewServiceWithPolicy(db, policy)

	d.Level = level.NewService(db)
	d.Level.SetNotificationSink(d.Notifier)

	d.Progress = progress.NewTracker(db, d.Catalog)
	d.Progress.SetNotificationSink(d.Notifier)

	d.Challenges = challenge.NewEngine(db, nil)
	d.Challenges.SetRewardGranter(d.Level)
	d.Challenges.SetNotificationSink(d.Notifier)

	d.Achievements = achievement.NewEngine(db)
	d.Achievements.SetNotificationSink(d.Notifier)

	d.Social = social.NewManager(db)

	d.Seasonal = seasonal.NewEngine(db)
	d.Seasonal.SetRewardGranter(d.Level)
	d.Seasonal.SetNotificationSink(d.Notifier)
	d.Seasonal.SetSources(d.Level, d.Progress, d.Achievements, d.Social)

	d.Mood = mood.NewEngine(db)

	d.Health = health.NewChecker(db, touchwoodHome())

	d.Server = api.NewServer(api.Deps{
		Recorder:     d,
		Progress:     d.Progress,
		Challenges:   d.Challenges,
		Achievements: d.Achievements,
		Seasonal:     d.Seasonal,
		Mood:         d.Mood,
		Level:        d.Level,
		Social:       d.Social,
		Notifier:     d.Notifier,
		Catalog:      d.Catalog,
		Health:       d.Health,
	})
	if cfg.Telemetry.Prometheus {
		d.Server.EnableMetrics()
	}

	return d, nil
}

// completionXP is the base XP for any recorded ritual; challenge, event and
// achievement rewards stack on top of it.
const completionXP = 10

// RecordRitual routes one ritual completion through every engine: progress
// first (streak and totals), then daily challenges, achievements, seasonal
// events, and finally the mood log. Each engine persists its own state.
func (d *Daemon) RecordRitual(ritualID string, moodVal int, note string, at time.Time) (domain.CompletionEvent, error) {
	before, err := d.Progress.CurrentStreak()
	if err != nil {
		return domain.CompletionEvent{}, err
	}

	event, err := d.Progress.RecordCompletionAt(ritualID, moodVal, note, at)
	if err != nil {
		return domain.CompletionEvent{}, err
	}
	if err := d.Level.GrantXP(completionXP, "ritual:"+ritualID); err != nil {
		return event, err
	}

	if _, err := d.Challenges.RefreshDaily(at); err != nil {
		return event, fmt.Errorf("refresh challenges: %w", err)
	}
	if _, err := d.Challenges.UpdateProgress(domain.ChallengeRituals, 1, at); err != nil {
		return event, err
	}
	after, err := d.Progress.CurrentStreak()
	if err != nil {
		return event, err
	}
	if after.CurrentCount != before.CurrentCount {
		if _, err := d.Challenges.UpdateProgress(domain.ChallengeStreak, 1, at); err != nil {
			return event, err
		}
	}
	if moodVal > 0 {
		if _, err := d.Challenges.UpdateMoodProgress(moodVal, at); err != nil {
			return event, err
		}
	}
	distinct, err := d.DB.DistinctRitualsOn(domain.DayKey(at))
	if err != nil {
		return event, err
	}
	if _, err := d.Challenges.UpdateVarietyProgress(distinct, at); err != nil {
		return event, err
	}
	if _, err := d.Challenges.UpdateTimeProgress(at.Hour(), at); err != nil {
		return event, err
	}

	stats, err := d.Stats(at)
	if err != nil {
		return event, err
	}
	unlocked, err := d.Achievements.Evaluate(stats, at)
	if err != nil {
		return event, err
	}
	for _, a := range unlocked {
		if err := d.Level.GrantXP(int64(a.Points), "achievement:"+a.ID); err != nil {
			return event, err
		}
	}

	if err := d.Seasonal.CompleteRitual(ritualID, at); err != nil {
		return event, err
	}
	// Level, streak, achievement and share predicates may have moved.
	if err := d.Seasonal.CheckAllUnlocks(at); err != nil {
		return event, err
	}

	if moodVal > 0 {
		name := ritualID
		if r, err := d.Catalog.Resolve(ritualID); err == nil && r != nil {
			name = r.Name
		}
		if _, err := d.Mood.AddEntry(ritualID, name, moodVal, note, at); err != nil {
			return event, err
		}
	}

	return event, nil
}

// Stats builds the aggregate snapshot with the level filled in.
func (d *Daemon) Stats(now time.Time) (domain.AggregateStats, error) {
	stats, err := d.Progress.Stats(now)
	if err != nil {
		return stats, err
	}
	stats.Level, err = d.Level.CurrentLevel()
	if err != nil {
		return stats, err
	}
	return stats, nil
}

// Share records a progress share and re-runs the checks it can move.
func (d *Daemon) Share(kind social.ShareKind, at time.Time) (social.SharePayload, error) {
	stats, err := d.Stats(at)
	if err != nil {
		return social.SharePayload{}, err
	}
	payload := d.Social.BuildPayload(kind, stats)
	if err := d.Social.RecordShare(payload, at); err != nil {
		return payload, err
	}

	stats.ShareCount++
	unlocked, err := d.Achievements.Evaluate(stats, at)
	if err != nil {
		return payload, err
	}
	for _, a := range unlocked {
		if err := d.Level.GrantXP(int64(a.Points), "achievement:"+a.ID); err != nil {
			return payload, err
		}
	}
	if err := d.Seasonal.CheckAllUnlocks(at); err != nil {
		return payload, err
	}
	return payload, nil
}

// Serve starts the HTTP server and the daily refresh schedule, blocking
// until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Daily challenge refresh just past midnight.
	d.cron = cron.New()
	spec := d.Config.Challenges.RefreshCron
	if spec == "" {
		spec = "1 0 * * *"
	}
	if _, err := d.cron.AddFunc(spec, func() {
		if _, err := d.Challenges.RefreshDaily(time.Now()); err != nil {
			log.Printf("[daemon] challenge refresh error: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}
	d.cron.Start()

	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		d.cron.Stop()
		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Touchwood serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.cron != nil {
		d.cron.Stop()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
