package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tuskdb/tusk/dialect"
)

// QueryStats accumulates execution counters for a StatsDriver. All
// counters are updated atomically; read them through Stats.
type QueryStats struct {
	queries  atomic.Int64
	execs    atomic.Int64
	duration atomic.Int64 // nanoseconds
	slow     atomic.Int64
	errors   atomic.Int64
}

// Stats returns a point-in-time snapshot of the counters.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.queries.Load(),
		TotalExecs:    s.execs.Load(),
		TotalDuration: time.Duration(s.duration.Load()),
		SlowQueries:   s.slow.Load(),
		Errors:        s.errors.Load(),
	}
}

// Reset zeroes all counters.
func (s *QueryStats) Reset() {
	s.queries.Store(0)
	s.execs.Store(0)
	s.duration.Store(0)
	s.slow.Store(0)
	s.errors.Store(0)
}

// StatsSnapshot is one consistent reading of a QueryStats.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgQueryDuration returns the mean duration over queries and execs.
func (s StatsSnapshot) AvgQueryDuration() time.Duration {
	if n := s.TotalQueries + s.TotalExecs; n > 0 {
		return s.TotalDuration / time.Duration(n)
	}
	return 0
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf("queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgQueryDuration(),
		s.SlowQueries, s.Errors)
}

// SlowQueryHook is invoked for statements whose execution exceeded the
// slow threshold. It runs on the calling goroutine; keep it fast.
type SlowQueryHook func(ctx context.Context, query string, args []any, elapsed time.Duration)

// StatsDriver is executor middleware that times every statement passing
// through it. It wraps any dialect.Driver, so it stacks with CachedDriver
// in either order.
type StatsDriver struct {
	dialect.Driver

	stats QueryStats

	mu        sync.RWMutex
	threshold time.Duration
	slowHook  SlowQueryHook
}

// StatsOption configures a StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the duration above which a statement counts as
// slow. The default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) { s.threshold = d }
}

// WithSlowQueryHook registers a callback for slow statements.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) { s.slowHook = hook }
}

// WithSlowQueryLog reports slow statements through slog.Warn.
func WithSlowQueryLog() StatsOption {
	return WithSlowQueryHook(func(_ context.Context, query string, args []any, elapsed time.Duration) {
		slog.Warn("slow query", "elapsed", elapsed, "query", query, "args", args)
	})
}

// NewStatsDriver wraps drv with statement timing and slow-query
// detection.
func NewStatsDriver(drv dialect.Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{Driver: drv, threshold: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryStats exposes the accumulated counters.
func (d *StatsDriver) QueryStats() *QueryStats {
	return &d.stats
}

// SlowThreshold returns the current slow-statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.threshold
}

// SetSlowThreshold replaces the slow-statement threshold at runtime.
func (d *StatsDriver) SetSlowThreshold(threshold time.Duration) {
	d.mu.Lock()
	d.threshold = threshold
	d.mu.Unlock()
}

// observe records one finished statement.
func (d *StatsDriver) observe(ctx context.Context, query string, args any, elapsed time.Duration, err error, isQuery bool) {
	if isQuery {
		d.stats.queries.Add(1)
	} else {
		d.stats.execs.Add(1)
	}
	d.stats.duration.Add(int64(elapsed))
	if err != nil {
		d.stats.errors.Add(1)
	}

	d.mu.RLock()
	threshold, hook := d.threshold, d.slowHook
	d.mu.RUnlock()
	if elapsed > threshold {
		d.stats.slow.Add(1)
		if hook != nil {
			bound, _ := args.([]any)
			hook(ctx, query, bound, elapsed)
		}
	}
}

func (d *StatsDriver) timed(ctx context.Context, query string, args any, isQuery bool, run func() error) error {
	start := time.Now()
	err := run()
	d.observe(ctx, query, args, time.Since(start), err, isQuery)
	return err
}

func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	return d.timed(ctx, query, args, true, func() error {
		return d.Driver.Query(ctx, query, args, v)
	})
}

func (d *StatsDriver) Exec(ctx context.Context, query string, args, v any) error {
	return d.timed(ctx, query, args, false, func() error {
		return d.Driver.Exec(ctx, query, args, v)
	})
}

// Tx opens a transaction whose statements are timed against the same
// counters as the driver's.
func (d *StatsDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsTx{Tx: tx, driver: d}, nil
}

// StatsTx times the statements of one transaction.
type StatsTx struct {
	dialect.Tx
	driver *StatsDriver
}

func (tx *StatsTx) Query(ctx context.Context, query string, args, v any) error {
	return tx.driver.timed(ctx, query, args, true, func() error {
		return tx.Tx.Query(ctx, query, args, v)
	})
}

func (tx *StatsTx) Exec(ctx context.Context, query string, args, v any) error {
	return tx.driver.timed(ctx, query, args, false, func() error {
		return tx.Tx.Exec(ctx, query, args, v)
	})
}

// DebugDriver logs every statement before forwarding it.
type DebugDriver struct {
	dialect.Driver
	log func(context.Context, ...any)
}

// DebugOption configures a DebugDriver.
type DebugOption func(*DebugDriver)

// DebugWithLog replaces the default slog-backed log function.
func DebugWithLog(logFunc func(context.Context, ...any)) DebugOption {
	return func(d *DebugDriver) { d.log = logFunc }
}

// NewDebugDriver wraps drv with statement logging, slog.Info by default.
func NewDebugDriver(drv dialect.Driver, opts ...DebugOption) *DebugDriver {
	d := &DebugDriver{
		Driver: drv,
		log: func(_ context.Context, v ...any) {
			slog.Info(fmt.Sprint(v...))
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	d.log(ctx, fmt.Sprintf("query: %s args: %v", query, args))
	return d.Driver.Query(ctx, query, args, v)
}

func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	d.log(ctx, fmt.Sprintf("exec: %s args: %v", query, args))
	return d.Driver.Exec(ctx, query, args, v)
}

func (d *DebugDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	d.log(ctx, "begin transaction")
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &DebugTx{Tx: tx, log: d.log}, nil
}

// DebugTx logs the statements and outcome of one transaction.
type DebugTx struct {
	dialect.Tx
	log func(context.Context, ...any)
}

func (tx *DebugTx) Query(ctx context.Context, query string, args, v any) error {
	tx.log(ctx, fmt.Sprintf("tx query: %s args: %v", query, args))
	return tx.Tx.Query(ctx, query, args, v)
}

func (tx *DebugTx) Exec(ctx context.Context, query string, args, v any) error {
	tx.log(ctx, fmt.Sprintf("tx exec: %s args: %v", query, args))
	return tx.Tx.Exec(ctx, query, args, v)
}

func (tx *DebugTx) Commit() error {
	tx.log(context.Background(), "commit transaction")
	return tx.Tx.Commit()
}

func (tx *DebugTx) Rollback() error {
	tx.log(context.Background(), "rollback transaction")
	return tx.Tx.Rollback()
}

var (
	_ dialect.Driver = (*StatsDriver)(nil)
	_ dialect.Tx     = (*StatsTx)(nil)
	_ dialect.Driver = (*DebugDriver)(nil)
	_ dialect.Tx     = (*DebugTx)(nil)
)

// OpenWithStats opens a database connection wrapped in a StatsDriver.
func OpenWithStats(driverName, source string, opts ...StatsOption) (*StatsDriver, *QueryStats, error) {
	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, nil, err
	}
	drv := NewStatsDriver(NewDriver(driverName, Conn{db}), opts...)
	return drv, drv.QueryStats(), nil
}
