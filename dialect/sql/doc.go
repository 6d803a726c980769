// Package sql provides a fluent, immutable builder for SELECT statements
// and the database/sql-backed drivers that execute them.
//
// A query is started with Select over columns, named expressions or
// scalar subqueries, then extended with chainable clause methods. Every
// method returns a new value, so partially built queries can be branched
// and reused:
//
//	users := sql.NewTable(schema.New("users",
//	    field.Int64("id").NotNull().PrimaryKey(),
//	    field.String("name").NotNull(),
//	))
//	base := sql.Select(users.C("id"), users.C("name")).From(users)
//	active := base.Where(sql.EQ(users.C("active"), true))
//	query, args := active.Limit(10).Query()
//
// Rendering produces the statement text and its ordered argument list;
// parameters are always bound, never inlined. Binding a driver with
// WithDriver selects the placeholder dialect and enables resolution
// through All, First, Only and Exist.
//
// Alongside building and executing, the package tracks a per-column
// result shape. Outer joins relabel the nullability of the columns on the
// optional side, so calling code can tell which output columns may be
// NULL even when the underlying columns are NOT NULL.
package sql
