package fluid

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// State is the engine lifecycle state.
type State int32

const (
	// StateLoading covers construction of the table and fluid identity.
	StateLoading State = iota
	// StateReady is the immutable serving state. It never reverts.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Option customizes an Engine.
type Option func(*Engine)

// WithMetrics makes the engine record into m instead of unregistered collectors.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// Engine is the query entry point. All methods are safe for concurrent use
// once NewEngine has returned.
type Engine struct {
	table    *PropertyTable
	identity *Identity
	priority SourcePriority
	cache    *InterpolatorCache
	metrics  *Metrics
	bounds   BoundsMode
	cfg      Config
	state    atomic.Int32
}

// NewEngine loads rows into a PropertyTable and fluid Identity and returns a
// Ready engine. Any malformed input aborts construction; there is no partial
// load.
func NewEngine(rows []Row, cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	props, err := NewPropertySet(cfg.Properties)
	if err != nil {
		return nil, err
	}
	priority, err := NewSourcePriority(cfg.SourcePriority)
	if err != nil {
		return nil, err
	}

	e := &Engine{priority: priority, bounds: cfg.boundsMode(), cfg: cfg}
	e.state.Store(int32(StateLoading))
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = NewMetrics(nil)
	}

	e.table, err = NewPropertyTable(rows, props)
	if err != nil {
		return nil, fmt.Errorf("load property table: %w", err)
	}
	e.identity, err = NewIdentity(e.table.Fluids(), cfg.Synonyms)
	if err != nil {
		return nil, fmt.Errorf("build fluid identity: %w", err)
	}
	e.cache = NewInterpolatorCache(e.table, priority, e.metrics)
	e.state.Store(int32(StateReady))
	logrus.Infof("Fluid engine ready: %d fluids, bounds mode %q, source priority %v",
		len(e.table.Fluids()), e.bounds, priority.Order())
	return e, nil
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Table returns the underlying immutable table.
func (e *Engine) Table() *PropertyTable {
	return e.table
}

// ResolveFluid maps a user-supplied name to its canonical fluid.
func (e *Engine) ResolveFluid(name string) (string, error) {
	return e.identity.Resolve(name)
}

// AvailableFluids returns the sorted canonical fluid names.
func (e *Engine) AvailableFluids() []string {
	return e.identity.Names()
}

// AvailableProperties returns, sorted, the canonical properties of fluid
// whose grid supports interpolation. Grids are built through the cache.
func (e *Engine) AvailableProperties(fluid string) ([]string, error) {
	name, err := e.identity.Resolve(fluid)
	if err != nil {
		return nil, err
	}
	return e.availableProperties(name), nil
}

// availableProperties takes an already canonical name. Resolving it again
// could follow a synonym to a different fluid.
func (e *Engine) availableProperties(canonical string) []string {
	var out []string
	for _, p := range e.table.Properties().Keys() {
		if _, err := e.cache.Get(canonical, p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// Bounds returns the sampled envelope of fluid across all its properties.
func (e *Engine) Bounds(fluid string) (Bounds, error) {
	name, err := e.identity.Resolve(fluid)
	if err != nil {
		return Bounds{}, err
	}
	b, _ := e.table.Bounds(name)
	return b, nil
}

// Grid returns the resolved grid for (fluid, property). The error wraps
// ErrInsufficientData for degenerate pairs, including non-canonical keys.
func (e *Engine) Grid(fluid, property string) (*Grid, error) {
	name, err := e.identity.Resolve(fluid)
	if err != nil {
		return nil, err
	}
	if !e.table.Properties().Contains(property) {
		return nil, fmt.Errorf("%w: %q is not a canonical property", ErrInsufficientData, property)
	}
	in, err := e.cache.Get(name, property)
	if err != nil {
		return nil, err
	}
	return in.Grid(), nil
}

// SourceRank pairs a source seen in the table with its priority rank.
type SourceRank struct {
	Source string
	Rank   int
}

// Sources returns every source in the table with its rank, in first-seen order.
func (e *Engine) Sources() []SourceRank {
	srcs := e.table.Sources()
	out := make([]SourceRank, len(srcs))
	for i, s := range srcs {
		out[i] = SourceRank{Source: s, Rank: e.priority.Rank(s)}
	}
	return out
}

// Query interpolates properties of fluid at (t [K], p [Pa]).
//
// A nil properties slice requests every available property. Keys outside the
// canonical set are dropped silently. Each property reports its value or
// NotAvailable; a missing property never aborts the batch. The only errors are
// ErrUnknownFluid and ErrOutOfRange.
func (e *Engine) Query(fluid string, t, p float64, properties []string) (Result, error) {
	name, err := e.identity.Resolve(fluid)
	if err != nil {
		e.metrics.queries.WithLabelValues("unknown_fluid").Inc()
		return nil, err
	}
	if e.bounds == BoundsPerFluid {
		b, _ := e.table.Bounds(name)
		if !b.Contains(t, p) {
			e.metrics.queries.WithLabelValues("out_of_range").Inc()
			return nil, fmt.Errorf("%w: %s at T=%g K, P=%g Pa (sampled %s)", ErrOutOfRange, name, t, p, b)
		}
	}

	if properties == nil {
		properties = e.availableProperties(name)
	}

	out := make(Result, len(properties))
	boxed, inside := 0, 0
	for _, prop := range properties {
		if !e.table.Properties().Contains(prop) {
			continue
		}
		if _, dup := out[prop]; dup {
			continue
		}
		in, err := e.cache.Get(name, prop)
		if err != nil {
			out[prop] = NA()
			continue
		}
		if e.bounds == BoundsPerProperty {
			boxed++
			if !in.Bounds().Contains(t, p) {
				out[prop] = NA()
				continue
			}
			inside++
		}
		if v, ok := in.Evaluate(t, p); ok {
			out[prop] = Number(v)
		} else {
			out[prop] = NA()
		}
	}
	if e.bounds == BoundsPerProperty && boxed > 0 && inside == 0 {
		e.metrics.queries.WithLabelValues("out_of_range").Inc()
		return nil, fmt.Errorf("%w: %s at T=%g K, P=%g Pa is outside every requested property grid", ErrOutOfRange, name, t, p)
	}

	for _, v := range out {
		if v.Available() {
			e.metrics.values.WithLabelValues("value").Inc()
		} else {
			e.metrics.values.WithLabelValues(NotAvailable).Inc()
		}
	}
	e.metrics.queries.WithLabelValues("ok").Inc()
	return out, nil
}
