package sql

import (
	"github.com/tuskdb/tusk/schema/field"
)

// Expr is an arbitrary SQL expression with a resolvable output name.
// Expressions are selectable once named through As; the aggregate
// constructors carry a default name.
type Expr struct {
	name   string
	typ    field.Type
	tokens []Token
}

// Raw returns an expression from a SQL fragment. Each '?' in the fragment
// becomes a bound parameter, consuming args left to right; the fragment
// text around the placeholders is rendered verbatim:
//
//	sql.Raw("coalesce(?, ?)", a, b).As("value")
func Raw(fragment string, args ...any) *Expr {
	return &Expr{tokens: []Token{rawToken{fragment: fragment, args: args}}}
}

func aggregate(fn string, col *Column, typ field.Type) *Expr {
	return &Expr{
		name:   fn,
		typ:    typ,
		tokens: []Token{Text(fn + "(" + quoteIdent(col.name) + ")")},
	}
}

// Count returns a count(column) expression named "count".
func Count(col *Column) *Expr { return aggregate("count", col, field.TypeInt64) }

// Sum returns a sum(column) expression named "sum".
func Sum(col *Column) *Expr { return aggregate("sum", col, col.selectionShape().Type) }

// Avg returns an avg(column) expression named "avg".
func Avg(col *Column) *Expr { return aggregate("avg", col, field.TypeFloat64) }

// Min returns a min(column) expression named "min".
func Min(col *Column) *Expr { return aggregate("min", col, col.selectionShape().Type) }

// Max returns a max(column) expression named "max".
func Max(col *Column) *Expr { return aggregate("max", col, col.selectionShape().Type) }

// Name returns the output name of the expression.
func (e *Expr) Name() string {
	return e.name
}

// As returns a copy of the expression that renders with an alias and
// resolves to that name in a selection list.
func (e *Expr) As(name string) *Expr {
	tokens := append(e.tokens[:len(e.tokens):len(e.tokens)], Text("AS"), Text(quoteIdent(name)))
	return &Expr{name: name, typ: e.typ, tokens: tokens}
}

// Tokens returns the expression's token sequence.
func (e *Expr) Tokens() []Token {
	return e.tokens
}

func (e *Expr) selectionShape() ColumnShape {
	return ColumnShape{Type: e.typ}
}

var _ Selectable = (*Expr)(nil)
