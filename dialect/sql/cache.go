package sql

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"

	"github.com/tuskdb/tusk"
	"github.com/tuskdb/tusk/dialect"
)

// CachedDriver wraps a dialect.Driver with read-through caching of query
// results. Result sets are encoded with msgpack and stored under a key
// derived from the dialect, the rendered statement and its arguments.
// Concurrent cache misses for the same key are collapsed into a single
// database round trip.
//
// Exec statements always pass through to the underlying driver; callers
// invalidate affected entries through Invalidate or the Cache directly.
type CachedDriver struct {
	dialect.Driver
	cache  tusk.Cache
	ttl    time.Duration
	sf     singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
}

// CacheOption configures the CachedDriver.
type CacheOption func(*CachedDriver)

// WithTTL sets the lifetime of cached result sets. Zero means entries do
// not expire.
func WithTTL(ttl time.Duration) CacheOption {
	return func(d *CachedDriver) {
		d.ttl = ttl
	}
}

// NewCachedDriver wraps a driver with the given cache.
//
// Example:
//
//	drv, _ := sql.Open("postgres", dsn)
//	cached := sql.NewCachedDriver(drv, tusk.NewMemCache(), sql.WithTTL(time.Minute))
//	rows, err := sql.Select(users.C("id")).From(users).WithDriver(cached).All(ctx)
func NewCachedDriver(drv dialect.Driver, cache tusk.Cache, opts ...CacheOption) *CachedDriver {
	d := &CachedDriver{Driver: drv, cache: cache}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Hits returns the number of queries served from the cache.
func (d *CachedDriver) Hits() int64 { return d.hits.Load() }

// Misses returns the number of queries that went to the database.
func (d *CachedDriver) Misses() int64 { return d.misses.Load() }

// Invalidate removes every cached result for the driver's dialect.
func (d *CachedDriver) Invalidate(ctx context.Context) error {
	return d.cache.DeletePrefix(ctx, d.Dialect()+":")
}

// cachedRows is the encoded form of a result set.
type cachedRows struct {
	Columns []string `msgpack:"c"`
	Values  [][]any  `msgpack:"v"`
}

func (d *CachedDriver) key(query string, args []any) string {
	// %#v quotes string operands, so adjacent arguments cannot run
	// together and alias another argument list.
	return tusk.CacheKey{
		Dialect: d.Dialect(),
		Query:   query,
		Args:    fmt.Sprintf("%#v", args),
	}.String()
}

// Query serves the result set from the cache when possible, falling back
// to the underlying driver and populating the cache on miss.
func (d *CachedDriver) Query(ctx context.Context, query string, args, v any) error {
	vr, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect *sql.Rows", v)
	}
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect []any for args", args)
	}
	key := d.key(query, argv)
	if buf, err := d.cache.Get(ctx, key); err == nil && buf != nil {
		var cr cachedRows
		if err := msgpack.Unmarshal(buf, &cr); err == nil {
			d.hits.Add(1)
			*vr = Rows{&memRows{columns: cr.Columns, values: cr.Values, pos: -1}}
			return nil
		}
	}
	d.misses.Add(1)
	out, err, _ := d.sf.Do(key, func() (any, error) {
		rows := &Rows{}
		if err := d.Driver.Query(ctx, query, args, rows); err != nil {
			return nil, err
		}
		defer rows.Close()
		cr, err := drainRows(rows)
		if err != nil {
			return nil, err
		}
		if buf, err := msgpack.Marshal(cr); err == nil {
			// A failed Set degrades to an uncached read.
			_ = d.cache.Set(ctx, key, buf, d.ttl)
		}
		return cr, nil
	})
	if err != nil {
		return err
	}
	cr := out.(*cachedRows)
	*vr = Rows{&memRows{columns: cr.Columns, values: cr.Values, pos: -1}}
	return nil
}

// drainRows materializes a live result set so it can be cached and
// replayed.
func drainRows(rows *Rows) (*cachedRows, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	cr := &cachedRows{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		cr.Values = append(cr.Values, values)
	}
	return cr, rows.Err()
}

// memRows replays a materialized result set through the ColumnScanner
// interface.
type memRows struct {
	columns []string
	values  [][]any
	pos     int
	closed  bool
}

func (r *memRows) Close() error {
	r.closed = true
	return nil
}

func (r *memRows) Columns() ([]string, error) {
	return r.columns, nil
}

func (r *memRows) ColumnTypes() ([]*sql.ColumnType, error) {
	return nil, fmt.Errorf("dialect/sql: column types unavailable for cached rows")
}

func (r *memRows) Err() error { return nil }

func (r *memRows) Next() bool {
	if r.closed || r.pos+1 >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *memRows) NextResultSet() bool { return false }

func (r *memRows) Scan(dest ...any) error {
	if r.pos < 0 || r.pos >= len(r.values) {
		return fmt.Errorf("dialect/sql: Scan called without Next")
	}
	row := r.values[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("dialect/sql: expected %d destination arguments in Scan, not %d", len(row), len(dest))
	}
	for i, v := range row {
		if err := assignValue(dest[i], v); err != nil {
			return err
		}
	}
	return nil
}

func assignValue(dest, v any) error {
	switch d := dest.(type) {
	case *any:
		*d = v
	case *bool:
		// sqlite and mysql report EXISTS and other boolean expressions
		// as integers.
		switch b := v.(type) {
		case bool:
			*d = b
		case int64:
			*d = b != 0
		case int8:
			*d = b != 0
		case int16:
			*d = b != 0
		case int32:
			*d = b != 0
		case uint64:
			*d = b != 0
		default:
			return fmt.Errorf("dialect/sql: cannot scan %T into *bool", v)
		}
	case *int64:
		switch n := v.(type) {
		case int64:
			*d = n
		case int8:
			*d = int64(n)
		case int16:
			*d = int64(n)
		case int32:
			*d = int64(n)
		case uint64:
			*d = int64(n)
		default:
			return fmt.Errorf("dialect/sql: cannot scan %T into *int64", v)
		}
	case *float64:
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("dialect/sql: cannot scan %T into *float64", v)
		}
		*d = f
	case *string:
		switch s := v.(type) {
		case string:
			*d = s
		case []byte:
			*d = string(s)
		default:
			return fmt.Errorf("dialect/sql: cannot scan %T into *string", v)
		}
	case *[]byte:
		b, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("dialect/sql: cannot scan %T into *[]byte", v)
		}
		*d = b
	case *time.Time:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("dialect/sql: cannot scan %T into *time.Time", v)
		}
		*d = t
	default:
		return fmt.Errorf("dialect/sql: unsupported Scan destination %T for cached rows", dest)
	}
	return nil
}

var _ dialect.Driver = (*CachedDriver)(nil)
