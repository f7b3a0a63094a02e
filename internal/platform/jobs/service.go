package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

const JobBreachCheck = "breach_check"

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type RunFunc func(context.Context) (any, error)

// RunStore persists job run history. Nil disables persistence.
type RunStore interface {
	CreateRun(ctx context.Context, jobType string) (string, error)
	CompleteRun(ctx context.Context, runID, status string, detailsJSON []byte) error
}

type RunObserver interface {
	RecordJobRun(jobType, status string)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRunStore(store RunStore) Option {
	return func(s *Service) { s.runs = store }
}

func WithObserver(obs RunObserver) Option {
	return func(s *Service) { s.observer = obs }
}

func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queue = make(chan job, size)
		}
	}
}

type Service struct {
	logger   *slog.Logger
	runs     RunStore
	observer RunObserver
	queue    chan job
	wg       sync.WaitGroup
}

type job struct {
	Type string
	Run  RunFunc
}

func New(opts ...Option) *Service {
	s := &Service{
		logger: slog.Default(),
		queue:  make(chan job, 128),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.worker(ctx)
	}()
}

// Schedule enqueues run every interval until ctx is cancelled.
func (s *Service) Schedule(ctx context.Context, jobType string, interval time.Duration, run RunFunc) {
	if interval <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Enqueue(jobType, run)
			}
		}
	}()
}

// Wait blocks until the worker and schedulers have exited.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) Enqueue(jobType string, run RunFunc) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		s.logger.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				s.logger.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if s.runs != nil {
		id, err := s.runs.CreateRun(ctx, j.Type)
		if err != nil {
			s.logger.Warn("job run insert failed", "jobType", j.Type, "err", err)
		}
		runID = id
	}

	details, err := j.Run(ctx)
	status := StatusCompleted
	if err != nil {
		status = StatusFailed
	}
	if s.observer != nil {
		s.observer.RecordJobRun(j.Type, status)
	}

	if runID != "" {
		detailsJSON, marshalErr := json.Marshal(details)
		if marshalErr != nil {
			s.logger.Warn("job details marshal failed", "err", marshalErr)
			detailsJSON = []byte("{}")
		}
		if updErr := s.runs.CompleteRun(ctx, runID, status, detailsJSON); updErr != nil {
			s.logger.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}
