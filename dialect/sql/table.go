package sql

import (
	"github.com/tuskdb/tusk/schema"
	"github.com/tuskdb/tusk/schema/field"
)

// Table is a concrete table bound into a query. It is the only form a
// FROM or join clause accepts: an unbound schema.Table definition must be
// bound with NewTable first, which keeps definition reuse and query
// composition apart at the type level.
type Table struct {
	name    string
	alias   string
	columns map[string]*field.Descriptor
}

// NewTable binds a schema definition into a concrete table.
func NewTable(def *schema.Table) *Table {
	t := &Table{
		name:    def.Name(),
		columns: make(map[string]*field.Descriptor),
	}
	for _, d := range def.Columns() {
		t.columns[d.Name] = d
	}
	return t
}

// RawTable returns a concrete table for a name with no schema definition.
// Columns referenced through it carry no kind or constraint information.
func RawTable(name string) *Table {
	return &Table{name: name}
}

// As returns a copy of the table carrying an alias. The FROM clause then
// renders the original-name/alias form.
func (t *Table) As(alias string) *Table {
	tt := *t
	tt.alias = alias
	return &tt
}

// Name returns the name the table is known by inside the query: its alias
// if one is set, otherwise the table name.
func (t *Table) Name() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

// C returns a column reference owned by this table. If the table was
// bound from a schema definition, the column carries its descriptor.
func (t *Table) C(name string) *Column {
	return &Column{
		name:  name,
		table: t.Name(),
		desc:  t.columns[name],
	}
}

// Columns returns references to all schema-defined columns of the table.
func (t *Table) Columns() []*Column {
	cols := make([]*Column, 0, len(t.columns))
	for name := range t.columns {
		cols = append(cols, t.C(name))
	}
	return cols
}

// Tokens returns the table's token sequence as used by FROM and join
// clauses: the quoted name, or the original-name/alias form.
func (t *Table) Tokens() []Token {
	if t.alias != "" {
		return []Token{Text(quoteIdent(t.name)), Text("AS"), Text(quoteIdent(t.alias))}
	}
	return []Token{Text(quoteIdent(t.name))}
}
