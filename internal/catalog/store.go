package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/career-advisor/internal/logger"
	"github.com/jonathan/career-advisor/internal/types"
)

// Store publishes catalog snapshots. Readers call Current without locking; reloads are
// serialized and swap in a fully built snapshot.
type Store struct {
	current atomic.Pointer[Catalog]
	version atomic.Uint64
	mu      sync.Mutex // serializes reloads

	timeout time.Duration
	log     *zap.Logger
}

// NewStore creates an empty store. timeout bounds each source read; zero means no limit.
func NewStore(timeout time.Duration, log *zap.Logger) *Store {
	return &Store{
		timeout: timeout,
		log:     logger.OrNop(log),
	}
}

// Current returns the published snapshot. Before the first publication it returns
// the fallback catalog.
func (s *Store) Current() *Catalog {
	if c := s.current.Load(); c != nil {
		return c
	}
	return NewFallbackCatalog()
}

// Load reads src with the loader semantics (fallback on failure, no validation) and
// publishes the result.
func (s *Store) Load(ctx context.Context, src Source) *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.publish(Load(ctx, src, s.log))
}

// Reload validates src and, when valid, publishes a new snapshot built from the same
// read. An invalid source keeps the current snapshot (or publishes the fallback if none
// exists yet) and returns ErrInvalidCatalog along with the report.
func (s *Store) Reload(ctx context.Context, src Source) (*Catalog, *types.ValidationReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.WithSource(s.log, src.Name())

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	table, readErr := src.Read(ctx)
	report := reportFor(table, readErr)

	var careers []types.Career
	err := readErr
	if report.Valid && err == nil {
		careers, err = Decode(table)
	}
	if report.Valid && readErr == nil {
		switch {
		case err != nil:
			report.AddError(fmt.Sprintf("Failed to decode catalog: %v", err))
		case len(careers) == 0:
			report.AddError("Catalog has no careers to publish.")
		}
	}
	if !report.Valid || err != nil || len(careers) == 0 {
		log.Warn("catalog reload rejected",
			zap.Strings("errors", report.Errors),
			zap.Strings("warnings", report.Warnings),
			zap.Error(err))
		current := s.current.Load()
		if current == nil {
			current = s.publish(NewFallbackCatalog())
		}
		return current, report, ErrInvalidCatalog
	}

	for _, w := range report.Warnings {
		log.Warn("catalog warning", zap.String("warning", w))
	}
	published := s.publish(NewCatalog(src.Name(), careers))
	return published, report, nil
}

// Validate reads src under the store's timeout and returns its validation report
// without publishing anything.
func (s *Store) Validate(ctx context.Context, src Source) *types.ValidationReport {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return Validate(ctx, src)
}

func (s *Store) publish(c *Catalog) *Catalog {
	c.Version = s.version.Add(1)
	s.current.Store(c)
	s.log.Info("catalog published",
		zap.String(logger.FieldSource, c.Source),
		zap.Uint64(logger.FieldVersion, c.Version),
		zap.Int("careers", c.Len()),
		zap.Bool("fallback", c.Fallback))
	return c
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
