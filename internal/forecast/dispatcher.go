package forecast

// Strategy identifies which implementation family handles a dataset.
type Strategy int

const (
	// StrategyDirect computes over the full series in one shot.
	StrategyDirect Strategy = iota
	// StrategyStreaming uses the O(1)-per-step single-method forms.
	StrategyStreaming
	// StrategyParallel additionally fans multi-method workloads out to the
	// executor.
	StrategyParallel
)

// Default dataset size thresholds for strategy selection.
const (
	DefaultLargeThreshold     = 5000
	DefaultVeryLargeThreshold = 20000
)

// Dispatcher is a pure, side-effect-free selector: it only decides which
// implementation to call with identical arguments and result shape, and
// never re-implements algorithmic logic.
type Dispatcher struct {
	large     int
	veryLarge int
}

// NewDispatcher builds a dispatcher with the given thresholds; non-positive
// values fall back to the defaults.
func NewDispatcher(large, veryLarge int) *Dispatcher {
	if large <= 0 {
		large = DefaultLargeThreshold
	}
	if veryLarge <= 0 {
		veryLarge = DefaultVeryLargeThreshold
	}
	if veryLarge < large {
		veryLarge = large
	}
	return &Dispatcher{large: large, veryLarge: veryLarge}
}

// Strategy picks the implementation family for a dataset of n points.
func (d *Dispatcher) Strategy(n int) Strategy {
	switch {
	case n >= d.veryLarge:
		return StrategyParallel
	case n >= d.large:
		return StrategyStreaming
	default:
		return StrategyDirect
	}
}

// Select returns the direct or streaming form of a method for n points.
// StrategyParallel workloads still run the streaming single-method forms.
func (d *Dispatcher) Select(name string, n int, direct, streaming map[string]Forecaster) (Forecaster, bool) {
	pool := direct
	if d.Strategy(n) != StrategyDirect {
		if _, ok := streaming[name]; ok {
			pool = streaming
		}
	}
	f, ok := pool[name]
	return f, ok
}
