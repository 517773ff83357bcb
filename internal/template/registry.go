package template

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"docverify/internal/domain"
	"docverify/internal/normalizer"
	"docverify/internal/port"
)

// StrategySet reports whether a strategy name is registered.
type StrategySet interface {
	Has(name string) bool
}

// Registry loads templates from a store once per id and serves the cached
// value afterwards. Concurrent first loads of the same id share one fetch.
type Registry struct {
	store       port.TemplateStore
	normalizers normalizer.Table

	extractors  StrategySet
	comparators StrategySet

	cache sync.Map // id -> *domain.Template
	group singleflight.Group
}

// Option configures a Registry.
type Option func(*Registry)

// WithStrategyCheck makes Load reject templates that reference an extraction
// or comparison strategy missing from the given sets.
func WithStrategyCheck(extractors, comparators StrategySet) Option {
	return func(r *Registry) {
		r.extractors = extractors
		r.comparators = comparators
	}
}

// NewRegistry creates a Registry backed by store. A nil table selects the
// built-in normalizers.
func NewRegistry(store port.TemplateStore, table normalizer.Table, opts ...Option) *Registry {
	if table == nil {
		table = normalizer.DefaultTable()
	}
	r := &Registry{store: store, normalizers: table}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the template for id, fetching and parsing it on first use.
func (r *Registry) Load(ctx context.Context, id string) (*domain.Template, error) {
	if t, ok := r.cache.Load(id); ok {
		return t.(*domain.Template), nil
	}

	v, err, _ := r.group.Do(id, func() (interface{}, error) {
		if t, ok := r.cache.Load(id); ok {
			return t, nil
		}
		t, err := r.fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		r.cache.Store(id, t)
		log.Printf("templateRegistry.Load: cached template %q (%d fields)", id, len(t.Fields))
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Template), nil
}

func (r *Registry) fetch(ctx context.Context, id string) (*domain.Template, error) {
	def, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", id, err)
	}
	t, err := Parse(id, def.Format, def.Data, r.normalizers)
	if err != nil {
		return nil, err
	}
	if err := r.checkStrategies(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Registry) checkStrategies(t *domain.Template) error {
	for i := range t.Fields {
		f := &t.Fields[i]
		if r.extractors != nil && !r.extractors.Has(f.Extraction.Strategy) {
			return fmt.Errorf("%w: template %q field %q uses extraction strategy %q",
				domain.ErrUnknownStrategy, t.ID, f.Name, f.Extraction.Strategy)
		}
		if r.comparators != nil && !r.comparators.Has(f.Comparison.Strategy) {
			return fmt.Errorf("%w: template %q field %q uses comparison strategy %q",
				domain.ErrUnknownStrategy, t.ID, f.Name, f.Comparison.Strategy)
		}
	}
	return nil
}

// List returns the ids known to the backing store.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	return r.store.List(ctx)
}

// Ping checks the backing store when it supports it.
func (r *Registry) Ping(ctx context.Context) error {
	if p, ok := r.store.(port.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
