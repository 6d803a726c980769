package sql

import (
	"cmp"

	"github.com/google/uuid"
)

// Field is a typed column reference providing type-safe predicate
// methods. It reduces generated code by defining each predicate once via
// generics.
//
// Usage:
//
//	var Email = sql.NewStringField(UsersTable, "email")
//	query.Where(Email.EQ("test@example.com"))
type Field[T any] struct {
	col *Column
}

// NewField returns a typed field over a column of the given table.
func NewField[T any](t *Table, name string) Field[T] {
	return Field[T]{col: t.C(name)}
}

// Column returns the underlying column reference, for selection lists and
// ORDER BY clauses.
func (f Field[T]) Column() *Column { return f.col }

// Name returns the column name.
func (f Field[T]) Name() string { return f.col.Name() }

// EQ returns a field = value condition.
func (f Field[T]) EQ(v T) *Condition { return EQ(f.col, v) }

// NEQ returns a field <> value condition.
func (f Field[T]) NEQ(v T) *Condition { return NEQ(f.col, v) }

// In returns a field IN (values...) condition.
func (f Field[T]) In(vs ...T) *Condition {
	anys := make([]any, len(vs))
	for i, v := range vs {
		anys[i] = v
	}
	return In(f.col, anys...)
}

// NotIn returns a field NOT IN (values...) condition.
func (f Field[T]) NotIn(vs ...T) *Condition {
	anys := make([]any, len(vs))
	for i, v := range vs {
		anys[i] = v
	}
	return NotIn(f.col, anys...)
}

// IsNull returns a field IS NULL condition.
func (f Field[T]) IsNull() *Condition { return IsNull(f.col) }

// NotNull returns a field IS NOT NULL condition.
func (f Field[T]) NotNull() *Condition { return NotNull(f.col) }

// OrderedField is a Field over an ordered value kind, adding range
// predicates.
type OrderedField[T cmp.Ordered] struct {
	Field[T]
}

// NewOrderedField returns an ordered typed field over a column of the
// given table.
func NewOrderedField[T cmp.Ordered](t *Table, name string) OrderedField[T] {
	return OrderedField[T]{Field: NewField[T](t, name)}
}

// GT returns a field > value condition.
func (f OrderedField[T]) GT(v T) *Condition { return GT(f.col, v) }

// GTE returns a field >= value condition.
func (f OrderedField[T]) GTE(v T) *Condition { return GTE(f.col, v) }

// LT returns a field < value condition.
func (f OrderedField[T]) LT(v T) *Condition { return LT(f.col, v) }

// LTE returns a field <= value condition.
func (f OrderedField[T]) LTE(v T) *Condition { return LTE(f.col, v) }

// Asc returns an ORDER BY expression sorting the field ascending.
func (f OrderedField[T]) Asc() *Expr { return f.col.Asc() }

// Desc returns an ORDER BY expression sorting the field descending.
func (f OrderedField[T]) Desc() *Expr { return f.col.Desc() }

// StringField is an OrderedField over strings, adding pattern predicates.
type StringField struct {
	OrderedField[string]
}

// NewStringField returns a string typed field over a column of the given
// table.
func NewStringField(t *Table, name string) StringField {
	return StringField{OrderedField: NewOrderedField[string](t, name)}
}

// Contains returns a condition matching the substring anywhere in the field.
func (f StringField) Contains(v string) *Condition { return Contains(f.col, v) }

// HasPrefix returns a condition matching the prefix of the field.
func (f StringField) HasPrefix(v string) *Condition { return HasPrefix(f.col, v) }

// HasSuffix returns a condition matching the suffix of the field.
func (f StringField) HasSuffix(v string) *Condition { return HasSuffix(f.col, v) }

// Like returns a field LIKE pattern condition.
func (f StringField) Like(pattern string) *Condition { return Like(f.col, pattern) }

// UUIDField is a Field over uuid.UUID values.
type UUIDField struct {
	Field[uuid.UUID]
}

// NewUUIDField returns a UUID typed field over a column of the given
// table.
func NewUUIDField(t *Table, name string) UUIDField {
	return UUIDField{Field: NewField[uuid.UUID](t, name)}
}
