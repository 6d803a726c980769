// Package schema defines tables as ordered collections of column
// descriptors. A schema.Table is an unbound definition; binding it to a
// query happens through dialect/sql.NewTable, which is the only way to
// obtain a table usable in a FROM clause.
package schema

import (
	"fmt"

	"github.com/tuskdb/tusk/schema/field"
)

// Table is a named table definition over column descriptors.
type Table struct {
	name    string
	order   []string
	columns map[string]*field.Descriptor
}

// New returns a table definition with the given columns, in order.
func New(name string, columns ...*field.Builder) *Table {
	t := &Table{
		name:    name,
		columns: make(map[string]*field.Descriptor, len(columns)),
	}
	for _, c := range columns {
		d := c.Descriptor()
		t.order = append(t.order, d.Name)
		t.columns[d.Name] = d
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Columns returns the column descriptors in definition order.
func (t *Table) Columns() []*field.Descriptor {
	cols := make([]*field.Descriptor, len(t.order))
	for i, name := range t.order {
		cols[i] = t.columns[name]
	}
	return cols
}

// Column returns the descriptor of the named column, or nil if the table
// does not define it.
func (t *Table) Column(name string) *field.Descriptor {
	return t.columns[name]
}

// ColumnNames returns the column names in definition order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// Validate reports the first structural problem of the definition:
// an empty table name, a table without columns, or a column with an
// invalid kind.
func (t *Table) Validate() error {
	if t.name == "" {
		return fmt.Errorf("schema: table with empty name")
	}
	if len(t.order) == 0 {
		return fmt.Errorf("schema: table %q has no columns", t.name)
	}
	for _, name := range t.order {
		if name == "" {
			return fmt.Errorf("schema: table %q has a column with empty name", t.name)
		}
		if !t.columns[name].Type.Valid() {
			return fmt.Errorf("schema: table %q column %q has invalid type", t.name, name)
		}
	}
	return nil
}
