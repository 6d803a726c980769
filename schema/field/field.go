// Package field provides fluent builders for column descriptors used in
// table definitions. A descriptor carries the column's value kind, its
// not-null flag, and whether a default is present - the construction-time
// facts the query builders need to describe the shape of a result row.
package field

import (
	"fmt"
	"strings"
)

// Type is the value kind of a column.
type Type uint8

// Supported column kinds.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeInt64
	TypeFloat64
	TypeString
	TypeTime
	TypeUUID
	TypeBytes
	TypeJSON
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeInt64:   "int64",
	TypeFloat64: "float64",
	TypeString:  "string",
	TypeTime:    "time",
	TypeUUID:    "uuid",
	TypeBytes:   "bytes",
	TypeJSON:    "json",
}

// String returns the lowercase name of the type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is a known column kind.
func (t Type) Valid() bool {
	return t > TypeInvalid && int(t) < len(typeNames)
}

// ParseType resolves a schema-file type name into a Type. Common SQL
// aliases (bigint, text, timestamptz, bytea, jsonb, ...) are accepted.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(name) {
	case "bool", "boolean":
		return TypeBool, nil
	case "int", "integer", "serial":
		return TypeInt, nil
	case "int64", "bigint", "bigserial":
		return TypeInt64, nil
	case "float64", "float", "double", "double precision", "numeric":
		return TypeFloat64, nil
	case "string", "text", "varchar":
		return TypeString, nil
	case "time", "timestamp", "timestamptz", "timestamp with time zone", "date":
		return TypeTime, nil
	case "uuid":
		return TypeUUID, nil
	case "bytes", "bytea", "blob":
		return TypeBytes, nil
	case "json", "jsonb":
		return TypeJSON, nil
	default:
		return TypeInvalid, fmt.Errorf("field: unknown column type %q", name)
	}
}

// Descriptor holds the construction-time facts about a column.
type Descriptor struct {
	Name        string // column name in the database
	Type        Type   // value kind
	NotNull     bool   // NOT NULL constraint present
	PrimaryKey  bool   // part of the primary key (implies NotNull)
	HasDefault  bool   // a default value or expression is present
	Default     any    // literal default value, if any
	DefaultExpr string // SQL default expression, if any
	Comment     string // database comment
}

// Builder is a fluent builder of a column Descriptor.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: t}}
}

// Bool returns a builder for a boolean column.
func Bool(name string) *Builder { return newBuilder(name, TypeBool) }

// Int returns a builder for an integer column.
func Int(name string) *Builder { return newBuilder(name, TypeInt) }

// Int64 returns a builder for a 64-bit integer column.
func Int64(name string) *Builder { return newBuilder(name, TypeInt64) }

// Float64 returns a builder for a double-precision column.
func Float64(name string) *Builder { return newBuilder(name, TypeFloat64) }

// String returns a builder for a text column.
func String(name string) *Builder { return newBuilder(name, TypeString) }

// Text is an alias for String, matching the SQL type name.
func Text(name string) *Builder { return String(name) }

// Time returns a builder for a timestamp column.
func Time(name string) *Builder { return newBuilder(name, TypeTime) }

// UUID returns a builder for a uuid column.
func UUID(name string) *Builder { return newBuilder(name, TypeUUID) }

// Bytes returns a builder for a binary column.
func Bytes(name string) *Builder { return newBuilder(name, TypeBytes) }

// JSON returns a builder for a json column.
func JSON(name string) *Builder { return newBuilder(name, TypeJSON) }

// NotNull adds a NOT NULL constraint to the column.
func (b *Builder) NotNull() *Builder {
	b.desc.NotNull = true
	return b
}

// PrimaryKey marks the column as part of the primary key. Primary-key
// columns are implicitly NOT NULL.
func (b *Builder) PrimaryKey() *Builder {
	b.desc.PrimaryKey = true
	b.desc.NotNull = true
	return b
}

// Default sets a literal default value for the column.
func (b *Builder) Default(v any) *Builder {
	b.desc.Default = v
	b.desc.HasDefault = true
	return b
}

// DefaultExpr sets a SQL expression default for the column, e.g.
// "gen_random_uuid()" or "now()".
func (b *Builder) DefaultExpr(expr string) *Builder {
	b.desc.DefaultExpr = expr
	b.desc.HasDefault = true
	return b
}

// Comment sets the database comment of the column.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the built column descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
