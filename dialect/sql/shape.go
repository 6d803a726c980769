package sql

import (
	"slices"

	"github.com/tuskdb/tusk/schema/field"
)

// Nullability describes whether, and why, an output column may be absent
// from a result row due to an outer join. It is tracked per column while
// a query is composed and has no effect on the rendered SQL.
type Nullability uint8

const (
	// NullNever means no join has made the column optional.
	NullNever Nullability = iota
	// NullLeftJoin means a LEFT JOIN of another table made the column's
	// rows optional.
	NullLeftJoin
	// NullPendingRightJoin means a RIGHT JOIN made the column's side of
	// the query optional. Once in this state a column is not relabeled by
	// later LEFT or FULL joins; callers rely on this stickiness.
	NullPendingRightJoin
	// NullFullJoin means a FULL JOIN made every row optional.
	NullFullJoin
)

var nullabilityNames = [...]string{
	NullNever:            "none",
	NullLeftJoin:         "left-join",
	NullPendingRightJoin: "pending-right-join",
	NullFullJoin:         "full-join",
}

// String returns the name of the nullability state.
func (n Nullability) String() string {
	if int(n) < len(nullabilityNames) {
		return nullabilityNames[n]
	}
	return "unknown"
}

// Nullable reports whether a column in this state may be NULL in a result
// row even if its underlying column is NOT NULL.
func (n Nullability) Nullable() bool {
	return n != NullNever
}

// ColumnShape is the construction-time descriptor of one output column:
// its value kind, the NOT NULL and default flags of the underlying column,
// and the join-nullability state accumulated so far.
type ColumnShape struct {
	Type        field.Type
	NotNull     bool
	HasDefault  bool
	Nullability Nullability

	// table is the name of the owning table, used to decide which side of
	// a join the column belongs to. Empty for ad-hoc columns and
	// expressions.
	table string
}

// Table returns the name of the table owning the column, if known.
func (c ColumnShape) Table() string {
	return c.table
}

// Shape maps output column names to their descriptors. It exists so
// calling code and nested queries can reason about what a query returns
// without inspecting its token sequence. Shapes are values; relabeling
// through a join produces a new Shape.
type Shape struct {
	names   []string
	columns map[string]ColumnShape
}

// Names returns the output column names in selection order.
func (s Shape) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of output columns.
func (s Shape) Len() int {
	return len(s.names)
}

// Column returns the descriptor of the named output column.
func (s Shape) Column(name string) (ColumnShape, bool) {
	c, ok := s.columns[name]
	return c, ok
}

// joinKind selects the nullability transition applied by a join clause.
type joinKind uint8

const (
	joinInner joinKind = iota
	joinLeft
	joinRight
	joinFull
	joinCross
)

// applyJoin relabels the nullability of every output column for a join of
// the named table, and returns the resulting shape. The transitions:
//
//   - LEFT JOIN: columns of already-present tables become left-join
//     nullable; the newly joined table's own columns are unaffected.
//   - RIGHT JOIN: columns of already-present tables become
//     pending-right-join; idempotent.
//   - FULL JOIN: every column becomes full-join nullable.
//
// A column already in pending-right-join keeps that state through later
// LEFT and FULL joins. Inner and cross joins never change nullability.
func (s Shape) applyJoin(kind joinKind, joined string) Shape {
	if kind == joinInner || kind == joinCross || len(s.columns) == 0 {
		return s
	}
	columns := make(map[string]ColumnShape, len(s.columns))
	for name, c := range s.columns {
		owned := c.table == joined
		switch kind {
		case joinLeft:
			if !owned && c.Nullability != NullPendingRightJoin {
				c.Nullability = NullLeftJoin
			}
		case joinRight:
			if !owned {
				c.Nullability = NullPendingRightJoin
			}
		case joinFull:
			if c.Nullability != NullPendingRightJoin {
				c.Nullability = NullFullJoin
			}
		}
		columns[name] = c
	}
	return Shape{names: s.names, columns: columns}
}

// shaper is implemented by selectables that can describe their
// single-column shape. Selectables without one contribute a zero shape.
type shaper interface {
	selectionShape() ColumnShape
}
