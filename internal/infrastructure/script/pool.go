package script

import (
	"context"
	"errors"
	"sync"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

var (
	ErrPoolClosed = errors.New("script pool is closed")
)

// Pool manages a pool of reusable runtimes
type Pool struct {
	config   Config
	logger   *zap.Logger
	runtimes chan *Runtime
	size     int
	mu       sync.RWMutex
	closed   bool
}

// NewPool creates a runtime pool
func NewPool(config Config, logger *zap.Logger) (*Pool, error) {
	size := config.PoolSize
	if size <= 0 {
		size = 2
	}

	pool := &Pool{
		config:   config,
		logger:   logger,
		runtimes: make(chan *Runtime, size),
		size:     size,
	}

	for i := 0; i < size; i++ {
		rt, err := New(config, logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		pool.runtimes <- rt
	}

	return pool, nil
}

// Acquire gets a runtime from the pool, waiting until one is free or
// ctx is done.
func (p *Pool) Acquire(ctx context.Context) (*Runtime, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrPoolClosed
	}

	select {
	case rt := <-p.runtimes:
		return rt, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a runtime to the pool, replacing it when it can no
// longer execute
func (p *Pool) Release(rt *Runtime) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return rt.Close()
	}

	if !rt.Usable() {
		fresh, err := New(p.config, p.logger)
		if err != nil {
			return err
		}
		rt = fresh
	}

	select {
	case p.runtimes <- rt:
		return nil
	default:
		return rt.Close()
	}
}

// Execute runs a program on a pooled runtime
func (p *Pool) Execute(ctx context.Context, prog *goja.Program, globals map[string]interface{}) (*Result, error) {
	rt, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Release(rt)

	return rt.Execute(ctx, prog, globals)
}

// Close closes the pool and all runtimes
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	close(p.runtimes)

	for rt := range p.runtimes {
		rt.Close()
	}

	return nil
}

// Stats returns pool statistics
func (p *Pool) Stats() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"size":      p.size,
		"available": len(p.runtimes),
		"in_use":    p.size - len(p.runtimes),
		"closed":    p.closed,
	}
}
