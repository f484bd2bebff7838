// Package app wires the roster, compiler, detector, resolver, and cache
// into the engine behind the single public ports.Analyzer entry point.
// It owns pipeline selection (optimized vs legacy fallback), the async
// rebuild-and-swap on roster mutations, and the metrics report.
package app

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/corey/chara/internal/adapters/ahocorasick"
	"github.com/corey/chara/internal/domain/cache"
	"github.com/corey/chara/internal/domain/detect"
	"github.com/corey/chara/internal/domain/roster"
	"github.com/corey/chara/internal/ports"
)

// Engine is the hybrid dispatcher. The optimized path runs
// cache → tier scan → resolve; when the roster cannot compile at startup
// the legacy substring pipeline serves every call instead. Which path runs
// is decided exactly once, in New.
//
// The compiled index is shared by reference: readers load the pointer at
// call start and a rebuild publishes a complete replacement via a single
// atomic swap, so an in-flight call never sees a half-built index.
type Engine struct {
	db       *roster.DB
	detector *detect.Detector
	cache    *cache.Cache
	monitor  *Monitor
	log      *slog.Logger

	threshold float64

	index atomic.Pointer[ahocorasick.CompiledIndex]

	// fallbackActive is decided once in New and never flips; the legacy
	// pointer itself is atomic because rebuilds refresh its patterns.
	fallbackActive bool
	legacy         atomic.Pointer[LegacyDetector]

	rebuildMu sync.Mutex     // serializes recompiles
	rebuildWg sync.WaitGroup // lets tests wait for async rebuilds
}

var _ ports.Analyzer = (*Engine)(nil)

// New builds the engine from a loaded roster. If compiling the optimized
// index fails the legacy pipeline is selected permanently and the
// condition is logged — construction itself never fails once the roster
// loaded. logger may be nil.
func New(db *roster.DB, cfg *Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	e := &Engine{
		db:        db,
		detector:  detect.NewDetector(cfg.weights()),
		cache:     cache.New(cfg.CacheCapacity),
		monitor:   NewMonitor(),
		log:       logger,
		threshold: cfg.ConfidenceThreshold,
	}

	set := db.Snapshot()
	idx, err := ahocorasick.Compile(set)
	if err != nil {
		e.fallbackActive = true
		legacy := NewLegacyDetector(set)
		e.legacy.Store(legacy)
		e.log.Warn("optimized pipeline unavailable, legacy fallback active",
			"error", err, "patterns", legacy.PatternCount())
	} else {
		e.index.Store(idx)
	}

	// Roster mutations recompile off the request path. In-flight calls
	// keep the index snapshot they already loaded.
	db.SetChangeHook(func() {
		e.rebuildWg.Add(1)
		go func() {
			defer e.rebuildWg.Done()
			e.rebuild()
		}()
	})

	return e
}

// Analyze is the single public entry point. It never errors: empty or
// unmatchable input returns an empty list.
func (e *Engine) Analyze(title string) []ports.DetectionResult {
	start := time.Now()
	defer func() { e.monitor.Record(time.Since(start)) }()

	if e.fallbackActive {
		return e.legacy.Load().Analyze(title)
	}

	norm := detect.Normalize(title)
	if norm == "" {
		return nil
	}

	if results, ok := e.cache.Get(norm); ok {
		return results
	}

	idx := e.index.Load()
	cands := e.detector.ScanNormalized(norm, idx)
	results := detect.Resolve(cands, e.threshold)
	e.cachePut(norm, idx, results)
	return results
}

// cachePut stores results unless the index was swapped after idx was
// loaded. A rebuild's Clear cannot see an entry inserted after it runs,
// so a call that computed against the retired index drops its own entry.
// The re-check happens after the Put and rebuild stores before clearing,
// which closes the window in every interleaving.
func (e *Engine) cachePut(norm string, idx *ahocorasick.CompiledIndex, results []ports.DetectionResult) {
	e.cache.Put(norm, results)
	if e.index.Load() != idx {
		e.cache.Remove(norm)
	}
}

// rebuild compiles a fresh index from the current roster and publishes it.
// A compile failure keeps the previous index serving — a bad admin
// mutation must not take down detection.
func (e *Engine) rebuild() {
	e.rebuildMu.Lock()
	defer e.rebuildMu.Unlock()

	set := e.db.Snapshot()

	if e.fallbackActive {
		// Pipeline choice is fixed at startup; just refresh the patterns.
		e.legacy.Store(NewLegacyDetector(set))
		return
	}

	idx, err := ahocorasick.Compile(set)
	if err != nil {
		e.log.Warn("index rebuild failed, keeping previous index",
			"version", set.Version, "error", err)
		return
	}
	e.index.Store(idx)
	e.cache.Clear()
	e.log.Info("pattern index rebuilt",
		"version", set.Version, "patterns", idx.PatternCount())
}

// WaitRebuilds blocks until every in-flight async rebuild completes.
// Used by tests to avoid racing assertions against the swap.
func (e *Engine) WaitRebuilds() { e.rebuildWg.Wait() }

// AddCharacter validates and registers a character, then triggers the
// async rebuild and cache invalidation via the roster change hook.
func (e *Engine) AddCharacter(series, name string, weight float64, hints []string, variants map[string][]string) error {
	return e.db.AddCharacter(series, name, weight, hints, variants)
}

// ReloadRoster replaces the roster from a JSON file. The change hook
// handles recompile and cache invalidation; a load error leaves the
// current roster serving.
func (e *Engine) ReloadRoster(path string) error {
	return e.db.LoadFile(path)
}

// RemoveCharacter removes every character with the canonical name.
func (e *Engine) RemoveCharacter(name string) bool {
	return e.db.RemoveCharacter(name)
}

// ClearCache drops all cached results.
func (e *Engine) ClearCache() { e.cache.Clear() }

// CacheStats exposes the cache counters.
func (e *Engine) CacheStats() cache.Stats { return e.cache.Stats() }

// Export returns the roster document for persistence or transfer.
func (e *Engine) Export() *ports.RosterDoc { return e.db.Export() }

// FallbackActive reports whether the legacy pipeline was selected.
func (e *Engine) FallbackActive() bool { return e.fallbackActive }

// Report returns the flat metrics record for the host application.
func (e *Engine) Report() ports.Report {
	r := ports.Report{
		AvgLatencyMs:   e.monitor.AvgLatencyMs(),
		CallsPerSecond: e.monitor.CallsPerSecond(),
		CacheHitRate:   e.cache.Stats().HitRate,
		FallbackActive: e.fallbackActive,
	}
	if e.fallbackActive {
		r.PatternCount = e.legacy.Load().PatternCount()
		return r
	}
	if idx := e.index.Load(); idx != nil {
		r.PatternCount = idx.PatternCount()
		r.TierDistribution = idx.TierCounts()
	}
	return r
}
