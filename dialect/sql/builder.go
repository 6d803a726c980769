package sql

import (
	"context"
	"errors"
	"strconv"

	"github.com/tuskdb/tusk"
	"github.com/tuskdb/tusk/dialect"
)

// SelectQuery is an immutable SELECT statement under construction: a
// driver reference, the ordered output-column names fixed at creation,
// their shape, and the token sequence accumulated so far. Every clause
// method returns a new value; the receiver stays valid, so queries can be
// branched, cached, and shared across goroutines freely.
//
// No clause-ordering or SQL-legality validation is performed. Clauses may
// be chained in any order or combination; a structurally malformed
// statement is rendered as-is and rejected by the database.
type SelectQuery struct {
	drv    dialect.Driver
	names  []string
	shape  Shape
	tokens []Token
	err    error
}

// Row is one materialized result row keyed by output column name.
type Row map[string]any

// append returns a copy of the query with extra tokens. The token slice
// is capped so sibling queries branched from the same receiver never
// share growth.
func (q SelectQuery) append(tokens ...Token) SelectQuery {
	q.tokens = append(q.tokens[:len(q.tokens):len(q.tokens)], tokens...)
	return q
}

// WithDriver returns a copy of the query bound to the given driver. The
// driver supplies the placeholder dialect and executes the query on
// resolution.
func (q SelectQuery) WithDriver(drv dialect.Driver) SelectQuery {
	q.drv = drv
	return q
}

// Names returns the output column names in selection order.
func (q SelectQuery) Names() []string {
	return q.shape.Names()
}

// Shape returns the construction-time shape of the query's result row.
func (q SelectQuery) Shape() Shape {
	return q.shape
}

// Err returns the first error recorded while composing the query, such as
// an unsupported clause or an invalid subquery selection.
func (q SelectQuery) Err() error {
	return q.err
}

// From appends the FROM clause for a concrete table.
func (q SelectQuery) From(t *Table) SelectQuery {
	return q.append(Text("FROM"), Collection{Tokens: t.Tokens()})
}

func (q SelectQuery) join(keyword string, kind joinKind, t *Table) SelectQuery {
	q = q.append(Text(keyword), Collection{Tokens: t.Tokens()})
	q.shape = q.shape.applyJoin(kind, t.Name())
	return q
}

// Join appends a JOIN clause. Inner joins never change column nullability.
func (q SelectQuery) Join(t *Table) SelectQuery {
	return q.join("JOIN", joinInner, t)
}

// InnerJoin appends an INNER JOIN clause.
func (q SelectQuery) InnerJoin(t *Table) SelectQuery {
	return q.join("INNER JOIN", joinInner, t)
}

// LeftOuterJoin appends a LEFT OUTER JOIN clause and marks the columns of
// the already-present tables as left-join nullable.
func (q SelectQuery) LeftOuterJoin(t *Table) SelectQuery {
	return q.join("LEFT OUTER JOIN", joinLeft, t)
}

// LeftJoin applies the left-join nullability relabeling while emitting an
// INNER JOIN keyword. The mismatch between rendered SQL and tracked
// nullability is long-standing observed behavior kept as-is; use
// LeftOuterJoin to emit a left join.
func (q SelectQuery) LeftJoin(t *Table) SelectQuery {
	return q.join("INNER JOIN", joinLeft, t)
}

// RightOuterJoin appends a RIGHT OUTER JOIN clause and marks the columns
// of the already-present tables as pending-right-join.
func (q SelectQuery) RightOuterJoin(t *Table) SelectQuery {
	return q.join("RIGHT OUTER JOIN", joinRight, t)
}

// RightJoin appends a RIGHT JOIN clause with the same relabeling as
// RightOuterJoin.
func (q SelectQuery) RightJoin(t *Table) SelectQuery {
	return q.join("RIGHT JOIN", joinRight, t)
}

// FullOuterJoin appends a FULL OUTER JOIN clause and marks every column
// as full-join nullable, except columns already pending-right-join.
func (q SelectQuery) FullOuterJoin(t *Table) SelectQuery {
	return q.join("FULL OUTER JOIN", joinFull, t)
}

// FullJoin appends a FULL JOIN clause with the same relabeling as
// FullOuterJoin.
func (q SelectQuery) FullJoin(t *Table) SelectQuery {
	return q.join("FULL JOIN", joinFull, t)
}

// CrossJoin appends a CROSS JOIN clause. Cross joins take no ON or USING
// clause and never change column nullability.
func (q SelectQuery) CrossJoin(t *Table) SelectQuery {
	return q.join("CROSS JOIN", joinCross, t)
}

// On appends the ON clause of the preceding join.
func (q SelectQuery) On(c *Condition) SelectQuery {
	return q.append(Text("ON"), Group{Tokens: c.Tokens()})
}

// Using appends the USING clause of the preceding join.
func (q SelectQuery) Using(cols ...*Column) SelectQuery {
	groups := make([][]Token, len(cols))
	for i, c := range cols {
		groups[i] = c.Tokens()
	}
	return q.append(Text("USING"), Group{Tokens: []Token{Separator{Sep: ",", Groups: groups}}})
}

// Where appends a WHERE clause.
func (q SelectQuery) Where(c *Condition) SelectQuery {
	return q.append(Text("WHERE"), Collection{Tokens: c.Tokens()})
}

// Having appends a HAVING clause over the given conditions.
func (q SelectQuery) Having(conds ...*Condition) SelectQuery {
	groups := make([][]Token, len(conds))
	for i, c := range conds {
		groups[i] = c.Tokens()
	}
	return q.append(Text("HAVING"), Separator{Sep: ",", Groups: groups})
}

// GroupBy appends a GROUP BY clause over the given expressions.
func (q SelectQuery) GroupBy(items ...Tokenizer) SelectQuery {
	groups := make([][]Token, len(items))
	for i, it := range items {
		groups[i] = it.Tokens()
	}
	return q.append(Text("GROUP BY"), Separator{Sep: ",", Groups: groups})
}

// OrderBy appends an ORDER BY clause over the given expressions.
func (q SelectQuery) OrderBy(items ...Tokenizer) SelectQuery {
	groups := make([][]Token, len(items))
	for i, it := range items {
		groups[i] = it.Tokens()
	}
	return q.append(Text("ORDER BY"), Separator{Sep: ",", Groups: groups})
}

// Limit appends a LIMIT clause with a bound row count.
func (q SelectQuery) Limit(n int) SelectQuery {
	return q.append(Text("LIMIT"), Param{Value: n})
}

// LimitAll appends the literal LIMIT ALL clause; no value is bound.
func (q SelectQuery) LimitAll() SelectQuery {
	return q.append(Text("LIMIT ALL"))
}

// Offset appends an OFFSET clause with a bound row count.
func (q SelectQuery) Offset(n int) SelectQuery {
	return q.append(Text("OFFSET"), Param{Value: n})
}

// Fetch appends a FETCH FIRST n ROWS ONLY clause with a bound row count.
func (q SelectQuery) Fetch(n int) SelectQuery {
	return q.append(Text("FETCH FIRST"), Param{Value: n}, Text("ROWS ONLY"))
}

// ForUpdate appends a FOR UPDATE locking clause.
func (q SelectQuery) ForUpdate() SelectQuery {
	return q.append(Text("FOR UPDATE"))
}

// ForNoKeyUpdate appends a FOR NO KEY UPDATE locking clause.
func (q SelectQuery) ForNoKeyUpdate() SelectQuery {
	return q.append(Text("FOR NO KEY UPDATE"))
}

// ForShare appends a FOR SHARE locking clause.
func (q SelectQuery) ForShare() SelectQuery {
	return q.append(Text("FOR SHARE"))
}

// ForKeyShare appends a FOR KEY SHARE locking clause.
func (q SelectQuery) ForKeyShare() SelectQuery {
	return q.append(Text("FOR KEY SHARE"))
}

// Of restricts the preceding locking clause to the given table.
func (q SelectQuery) Of(t *Table) SelectQuery {
	return q.append(Text("OF"), Text(quoteIdent(t.Name())))
}

// NoWait appends the NOWAIT modifier to the preceding locking clause.
func (q SelectQuery) NoWait() SelectQuery {
	return q.append(Text("NOWAIT"))
}

// SkipLocked appends the SKIP LOCKED modifier to the preceding locking
// clause.
func (q SelectQuery) SkipLocked() SelectQuery {
	return q.append(Text("SKIP LOCKED"))
}

// Window records that window definitions are not supported. The returned
// query fails on resolution with an UnsupportedError instead of rendering
// a broken statement.
func (q SelectQuery) Window() SelectQuery {
	q.err = errors.Join(q.err, tusk.NewUnsupportedError("window"))
	return q
}

// Query renders the accumulated token sequence using the bound driver's
// dialect, postgres if none is bound, and returns the statement text with
// its ordered argument list.
func (q SelectQuery) Query() (string, []any) {
	d := dialect.Postgres
	if q.drv != nil {
		d = q.drv.Dialect()
	}
	state := Render(d, q.tokens...)
	return state.Query(), state.Args()
}

func (q SelectQuery) label() string {
	if len(q.names) > 0 && q.names[0] != "" {
		return q.names[0]
	}
	return "query"
}

// All resolves the query and returns every result row, keyed by the
// output-column names fixed at creation. Executor failures propagate
// unchanged.
func (q SelectQuery) All(ctx context.Context) ([]Row, error) {
	if q.err != nil {
		return nil, q.err
	}
	if q.drv == nil {
		return nil, tusk.ErrNoDriver
	}
	query, args := q.Query()
	rows := &Rows{}
	if err := q.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()
	return q.scan(rows)
}

func (q SelectQuery) scan(rows *Rows) ([]Row, error) {
	names := q.names
	if len(names) == 0 {
		cols, err := rows.Columns()
		if err != nil {
			return nil, err
		}
		names = cols
	}
	var out []Row
	for rows.Next() {
		values := make([]any, len(names))
		dest := make([]any, len(names))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make(Row, len(names))
		for i, name := range names {
			row[name] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// First resolves the query and returns its first row. It returns a
// NotFoundError when the result is empty.
func (q SelectQuery) First(ctx context.Context) (Row, error) {
	rows, err := q.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, tusk.NewNotFoundError(q.label())
	}
	return rows[0], nil
}

// Only resolves the query and returns its single row. It returns a
// NotFoundError when the result is empty and a NotSingularError when it
// holds more than one row.
func (q SelectQuery) Only(ctx context.Context) (Row, error) {
	rows, err := q.All(ctx)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 1:
		return rows[0], nil
	case 0:
		return nil, tusk.NewNotFoundError(q.label())
	default:
		return nil, tusk.NewNotSingularErrorWithCount(q.label(), len(rows))
	}
}

// Exist resolves SELECT EXISTS (query) and reports whether any row
// matches.
func (q SelectQuery) Exist(ctx context.Context) (bool, error) {
	if q.err != nil {
		return false, q.err
	}
	if q.drv == nil {
		return false, tusk.ErrNoDriver
	}
	d := q.drv.Dialect()
	state := Render(d, Text("SELECT EXISTS"), Group{Tokens: q.tokens})
	rows := &Rows{}
	if err := q.drv.Query(ctx, state.Query(), state.Args(), rows); err != nil {
		return false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return false, rows.Err()
	}
	var exists bool
	if err := rows.Scan(&exists); err != nil {
		return false, err
	}
	return exists, rows.Err()
}

// String renders the query for logging and debugging, using the bound
// driver's placeholder dialect, postgres if none is bound.
func (q SelectQuery) String() string {
	query, args := q.Query()
	if len(args) == 0 {
		return query
	}
	return query + " /* args: " + strconv.Itoa(len(args)) + " */"
}
