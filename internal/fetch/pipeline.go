// Package fetch acquires the current form tree. A live request is tried
// first; when it fails the last saved snapshot is used, and when there is none
// the bundled form is served. Successful live results are written through to
// the snapshot store.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pders01/formtree/internal/models"
	"github.com/pders01/formtree/internal/simulation"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Source retrieves the raw payload from the network
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Cache is the single-slot snapshot store
type Cache interface {
	Save(tree models.Node)
	Load() (models.Node, bool)
}

// Fallback provides the tree shipped with the application
type Fallback interface {
	Load() (models.Node, error)
}

// Origin tells which tier supplied a result
type Origin string

const (
	OriginNetwork Origin = "network"
	OriginCache   Origin = "cache"
	OriginBundle  Origin = "bundle"
)

// Result is the outcome of a successful fetch
type Result struct {
	Tree models.Node
	// CacheSourced is true when the tree did not come from a live response
	CacheSourced bool
	Origin       Origin
	// Simulated is true when a simulation mode produced the result
	Simulated bool
}

// ErrNotConnected is the condition reported by simulated failures
var ErrNotConnected = errors.New("the internet connection appears to be offline")

// SimulatedError is returned by every fetch while the loadWithError
// simulation mode is active
type SimulatedError struct {
	Mode simulation.Mode
}

func (e *SimulatedError) Error() string {
	return fmt.Sprintf("simulated failure (%s): %v", e.Mode, ErrNotConnected)
}

func (e *SimulatedError) Unwrap() error {
	return ErrNotConnected
}

// Pipeline runs one fetch at a time; concurrent callers queue.
type Pipeline struct {
	source   Source
	cache    Cache
	fallback Fallback
	logger   *zap.Logger

	// fixed at construction
	simulate bool
	mode     simulation.Mode

	sem *semaphore.Weighted

	mu          sync.Mutex
	usingCached bool
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithSimulation makes every fetch follow mode instead of the network. The
// mode is captured once; later changes to stored settings do not affect this
// pipeline.
func WithSimulation(mode simulation.Mode) Option {
	return func(p *Pipeline) {
		p.simulate = true
		p.mode = mode
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a pipeline. cache and fallback may be nil, which skips that tier.
func New(source Source, cache Cache, fallback Fallback, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:   source,
		cache:    cache,
		fallback: fallback,
		logger:   zap.NewNop(),
		sem:      semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("component", "fetch"))
	return p
}

// Simulation returns the captured simulation mode and whether it is active
func (p *Pipeline) Simulation() (simulation.Mode, bool) {
	return p.mode, p.simulate
}

// UsingCachedData reports whether the most recent fetch returned cache-sourced
// data. It is cleared when a fetch starts, so a failed fetch leaves it false.
func (p *Pipeline) UsingCachedData() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.usingCached
}

// Fetch returns the current tree. It fails only when the live request fails
// and neither the snapshot nor the bundled form can be loaded, in which case
// the retrieval error is returned. Each tier is tried at most once; there are
// no retries. ctx bounds the wait for a queued call and the network request.
func (p *Pipeline) Fetch(ctx context.Context) (Result, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return Result{}, err
	}
	defer p.sem.Release(1)

	p.mu.Lock()
	p.usingCached = false
	p.mu.Unlock()

	log := p.logger.With(zap.String("fetch_id", uuid.NewString()))

	var (
		res Result
		err error
	)
	if p.simulate {
		res, err = p.fetchSimulated(log)
	} else {
		res, err = p.fetchLive(ctx, log)
	}
	if err != nil {
		return Result{}, err
	}

	p.mu.Lock()
	p.usingCached = res.CacheSourced
	p.mu.Unlock()

	log.Debug("fetch complete",
		zap.String("origin", string(res.Origin)),
		zap.Bool("cache_sourced", res.CacheSourced),
		zap.Bool("simulated", res.Simulated))

	return res, nil
}

func (p *Pipeline) fetchLive(ctx context.Context, log *zap.Logger) (Result, error) {
	tree, err := p.retrieve(ctx)
	if err == nil {
		if p.cache != nil {
			p.cache.Save(tree)
		}
		return Result{Tree: tree, Origin: OriginNetwork}, nil
	}

	log.Warn("live fetch failed, trying fallbacks", zap.Error(err))

	if p.cache != nil {
		if cached, ok := p.cache.Load(); ok {
			return Result{Tree: cached, CacheSourced: true, Origin: OriginCache}, nil
		}
	}

	if p.fallback != nil {
		bundled, bErr := p.fallback.Load()
		if bErr == nil {
			return Result{Tree: bundled, CacheSourced: true, Origin: OriginBundle}, nil
		}
		log.Warn("bundled form unavailable", zap.Error(bErr))
	}

	return Result{}, err
}

// retrieve performs the network call and decodes the payload. A payload that
// does not decode counts as a failed retrieval.
func (p *Pipeline) retrieve(ctx context.Context) (models.Node, error) {
	body, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	tree, err := models.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("invalid form payload: %w", err)
	}
	return tree, nil
}

func (p *Pipeline) fetchSimulated(log *zap.Logger) (Result, error) {
	log.Debug("simulation active", zap.String("mode", string(p.mode)))

	switch p.mode {
	case simulation.LoadWithError:
		return Result{}, &SimulatedError{Mode: p.mode}
	case simulation.LoadCached, simulation.LoadNormal:
		if p.fallback == nil {
			return Result{}, fmt.Errorf("simulation %s: no bundled form configured", p.mode)
		}
		tree, err := p.fallback.Load()
		if err != nil {
			return Result{}, fmt.Errorf("simulation %s: %w", p.mode, err)
		}
		return Result{
			Tree:         tree,
			CacheSourced: p.mode == simulation.LoadCached,
			Origin:       OriginBundle,
			Simulated:    true,
		}, nil
	default:
		return Result{}, fmt.Errorf("unknown simulation mode: %q", p.mode)
	}
}
