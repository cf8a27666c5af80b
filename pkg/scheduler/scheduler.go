// Package scheduler runs named background jobs on cron specs.
package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type Config struct {
	Timezone       string // IANA TZ, e.g. "Asia/Colombo"
	DefaultTimeout time.Duration
}

type Job func(ctx context.Context) error

type Service struct {
	mu sync.Mutex

	log zerolog.Logger
	cfg Config
	loc *time.Location

	c       *cron.Cron
	cancel  context.CancelFunc
	running bool

	// jobs read this without s.mu; Stop may hold it while they start
	base atomic.Pointer[context.Context]
}

func New(cfg Config, log zerolog.Logger) *Service {
	s := &Service{cfg: cfg, log: log}
	bg := context.Background()
	s.base.Store(&bg)
	s.loc = s.loadLocation()

	cl := cronLogger{log: log}
	s.c = cron.New(
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
		cron.WithLocation(s.loc),
		cron.WithLogger(cl),
		// a tick that lands while the previous run is still busy is dropped
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	return s
}

func (s *Service) Location() *time.Location { return s.loc }

// Add registers job under spec. It may be called before or after Start.
func (s *Service) Add(name, spec string, timeout time.Duration, job Job) (cron.EntryID, error) {
	if job == nil {
		return 0, errors.New("scheduler: nil job")
	}
	if timeout <= 0 {
		timeout = s.cfg.DefaultTimeout
	}
	id, err := s.c.AddFunc(spec, func() { s.exec(name, timeout, job) })
	if err != nil {
		return 0, err
	}
	s.log.Info().Str("job", name).Str("spec", spec).Msg("job registered")
	return id, nil
}

// Start begins firing jobs. Job contexts derive from ctx.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	base, cancel := context.WithCancel(ctx)
	s.base.Store(&base)
	s.cancel = cancel
	s.running = true
	s.c.Start()
	s.log.Info().Str("tz", s.loc.String()).Msg("scheduler started")
}

// Stop prevents new runs and waits for running jobs, or until ctx is done.
// Running jobs see their context cancelled when ctx expires first.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	cancel := s.cancel
	done := s.c.Stop().Done()
	s.mu.Unlock()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	cancel()
	s.log.Info().Msg("scheduler stopped")
	return err
}

func (s *Service) exec(name string, timeout time.Duration, job Job) {
	base := *s.base.Load()
	ctx := base
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(base, timeout)
		defer cancel()
	}

	start := time.Now()
	err := job(ctx)
	ev := s.log.Info()
	if err != nil {
		ev = s.log.Error().Err(err)
	}
	ev.Str("job", name).Dur("took", time.Since(start)).Msg("job finished")
}

func (s *Service) loadLocation() *time.Location {
	tz := strings.TrimSpace(s.cfg.Timezone)
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.log.Warn().Str("tz", tz).Err(err).Msg("invalid timezone, falling back to UTC")
		return time.UTC
	}
	return loc
}

// cronLogger adapts zerolog to cron.Logger. cron logs every wakeup at info,
// so those go to debug.
type cronLogger struct{ log zerolog.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
