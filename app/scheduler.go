package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"hnsync/domain"
)

// Status is a snapshot of the scheduler for the control server.
type Status struct {
	Running   bool      `json:"running"`
	Interval  string    `json:"interval"`
	Workers   int       `json:"workers"`
	Cycles    int       `json:"cycles"`
	LastRun   time.Time `json:"last_run,omitempty"`
	LastError string    `json:"last_error,omitempty"`
	Inserted  int       `json:"last_inserted"`
	Present   int       `json:"last_already_present"`
	Failed    int       `json:"last_failed"`
	LastTook  string    `json:"last_took,omitempty"`
}

// SchedulerService runs one cycle on start and then one per interval.
// Cycles run on a single goroutine so they never overlap.
type SchedulerService struct {
	lister domain.StoryLister
	engine *Engine

	mu             sync.Mutex
	interval       time.Duration
	ctx            context.Context
	cancel         context.CancelFunc
	tickerStopChan chan struct{}
	done           chan struct{}
	started        bool
	status         Status
}

func NewScheduler(lister domain.StoryLister, engine *Engine, interval time.Duration) *SchedulerService {
	return &SchedulerService{lister: lister, engine: engine, interval: interval}
}

func (s *SchedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}
	if s.interval <= 0 {
		return errors.New("interval must be > 0")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.tickerStopChan = make(chan struct{})
	s.done = make(chan struct{})
	s.started = true
	go s.loop(s.ctx, s.done)
	return nil
}

// Stop cancels the running cycle, if any, and waits for the loop to exit.
func (s *SchedulerService) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	done := s.done
	s.started = false
	s.mu.Unlock()

	cancel()
	<-done
	return nil
}

// SetInterval takes effect immediately: the pending wait restarts with d.
func (s *SchedulerService) SetInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = d
	if !s.started {
		return
	}
	close(s.tickerStopChan)
	s.tickerStopChan = make(chan struct{})
}

// Resize changes the worker count used by the following cycles.
func (s *SchedulerService) Resize(workers int) error {
	return s.engine.SetWorkers(workers)
}

func (s *SchedulerService) CurrentInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *SchedulerService) CurrentWorkers() int {
	return s.engine.Workers()
}

func (s *SchedulerService) Status() Status {
	s.mu.Lock()
	st := s.status
	st.Running = s.started
	st.Interval = s.interval.String()
	s.mu.Unlock()
	st.Workers = s.engine.Workers()
	return st
}

func (s *SchedulerService) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.runCycle(ctx)
	for {
		s.mu.Lock()
		interval := s.interval
		stopCh := s.tickerStopChan
		s.mu.Unlock()

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-stopCh:
			timer.Stop()
			continue
		case <-timer.C:
		}

		s.runCycle(ctx)
	}
}

func (s *SchedulerService) runCycle(ctx context.Context) {
	start := time.Now()
	report, err := RunCycle(ctx, s.lister, s.engine)
	took := time.Since(start)

	s.mu.Lock()
	s.status.Cycles++
	s.status.LastRun = start
	s.status.LastTook = took.String()
	s.status.Inserted = report.Inserted
	s.status.Present = report.AlreadyPresent
	s.status.Failed = report.Failed
	s.status.LastError = ""
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("sync cycle failed", "error", err, "took", took)
		return
	}
	slog.Debug("sync cycle done", "took", took, "succeeded", report.Succeeded(), "failed", report.Failed)
}
