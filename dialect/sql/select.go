package sql

import (
	"errors"
	"fmt"
)

// Selectable is anything that can appear in a selection list: columns,
// named expressions, and single-column subqueries. The name resolves the
// item in result rows; the tokens render it.
type Selectable interface {
	Tokenizer
	Name() string
}

// Select starts a query over the given selection items. The output column
// names and the result shape are fixed here; every later clause call
// derives a new query from the returned value.
//
// A SelectQuery used as a selection item is a scalar subquery: it renders
// parenthesized and must select exactly one column. Violations are
// recorded on the new query and surface from Err and on resolution.
func Select(items ...Selectable) SelectQuery {
	q := SelectQuery{
		names: make([]string, len(items)),
		shape: Shape{
			names:   make([]string, len(items)),
			columns: make(map[string]ColumnShape, len(items)),
		},
	}
	groups := make([][]Token, len(items))
	for i, item := range items {
		name := item.Name()
		q.names[i] = name
		q.shape.names[i] = name
		switch it := item.(type) {
		case SelectQuery:
			if it.err != nil {
				q.err = errors.Join(q.err, it.err)
			}
			if len(it.names) != 1 {
				q.err = errors.Join(q.err, fmt.Errorf("sql: subquery selects %d columns, want 1", len(it.names)))
			}
			groups[i] = []Token{Group{Tokens: it.tokens}}
		default:
			groups[i] = item.Tokens()
		}
		if sh, ok := item.(shaper); ok {
			q.shape.columns[name] = sh.selectionShape()
		} else {
			q.shape.columns[name] = ColumnShape{}
		}
	}
	q.tokens = []Token{Text("SELECT"), Separator{Sep: ",", Groups: groups}}
	return q
}

// Name returns the subquery's output column name when the query is used
// as a selection item.
func (q SelectQuery) Name() string {
	if len(q.names) == 1 {
		return q.names[0]
	}
	return ""
}

// Tokens returns the query's accumulated token sequence.
func (q SelectQuery) Tokens() []Token {
	return q.tokens
}

func (q SelectQuery) selectionShape() ColumnShape {
	if len(q.names) == 1 {
		if c, ok := q.shape.Column(q.names[0]); ok {
			// A scalar subquery yields NULL on empty result regardless of
			// the underlying column's constraints.
			c.NotNull = false
			return c
		}
	}
	return ColumnShape{}
}

var _ Selectable = SelectQuery{}
