package sql

import "github.com/tuskdb/tusk/schema/field"

// quoteIdent double-quotes an identifier. Identifier content is taken as
// produced by the caller; escaping policy beyond quoting is out of scope.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

// Column is a reference to a table column. Columns obtained through
// Table.C carry their column descriptor and owning table, which feeds the
// join-nullability tracking; ad-hoc columns built with C carry neither.
type Column struct {
	name  string
	alias string
	table string
	desc  *field.Descriptor
}

// C returns an ad-hoc column reference with no owning table.
func C(name string) *Column {
	return &Column{name: name}
}

// Name returns the output name of the column: its alias if one is set,
// otherwise the column name.
func (c *Column) Name() string {
	if c.alias != "" {
		return c.alias
	}
	return c.name
}

// As returns a copy of the column that renders with an alias in a
// selection list.
func (c *Column) As(alias string) *Column {
	cc := *c
	cc.alias = alias
	return &cc
}

// Tokens returns the column's token sequence.
func (c *Column) Tokens() []Token {
	if c.alias != "" {
		return []Token{Text(quoteIdent(c.name)), Text("AS"), Text(quoteIdent(c.alias))}
	}
	return []Token{Text(quoteIdent(c.name))}
}

// Asc returns an ORDER BY expression sorting the column ascending.
func (c *Column) Asc() *Expr {
	return &Expr{name: c.Name(), tokens: []Token{Text(quoteIdent(c.name)), Text("ASC")}}
}

// Desc returns an ORDER BY expression sorting the column descending.
func (c *Column) Desc() *Expr {
	return &Expr{name: c.Name(), tokens: []Token{Text(quoteIdent(c.name)), Text("DESC")}}
}

func (c *Column) selectionShape() ColumnShape {
	cs := ColumnShape{table: c.table}
	if c.desc != nil {
		cs.Type = c.desc.Type
		cs.NotNull = c.desc.NotNull
		cs.HasDefault = c.desc.HasDefault
	}
	return cs
}

var _ Selectable = (*Column)(nil)
