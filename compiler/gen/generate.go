package gen

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"

	"github.com/tuskdb/tusk/schema"
	"github.com/tuskdb/tusk/schema/field"
)

const (
	schemaPkg = "github.com/tuskdb/tusk/schema"
	fieldPkg  = "github.com/tuskdb/tusk/schema/field"
	sqlPkg    = "github.com/tuskdb/tusk/dialect/sql"
)

// Generator emits one Go file per table: the schema definition, its bound
// sql.Table, and a typed field variable per column.
type Generator struct {
	config *Config
	tables []*schema.Table
}

// NewGenerator loads the schema document referenced by the config and
// returns a generator over its tables.
func NewGenerator(cfg *Config) (*Generator, error) {
	tables, err := schema.Load(cfg.Schema)
	if err != nil {
		return nil, err
	}
	return &Generator{config: cfg, tables: tables}, nil
}

// Tables returns the loaded table definitions.
func (g *Generator) Tables() []*schema.Table {
	return g.tables
}

// Generate writes all generated files, one per table, in parallel.
func (g *Generator) Generate(ctx context.Context) error {
	if err := os.MkdirAll(g.config.Target, 0o755); err != nil {
		return err
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.config.Workers)
	for _, t := range g.tables {
		t := t
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			name := strings.ToLower(t.Name()) + ".go"
			if err := g.generateTable(t, name); err != nil {
				return &GenerateError{Table: t.Name(), File: name, Cause: err}
			}
			slog.Debug("generated table bindings", "table", t.Name(), "file", name)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	slog.Info("generation complete", "tables", len(g.tables), "target", g.config.Target)
	return nil
}

func (g *Generator) pkgName() string {
	if g.config.Package != "" {
		return g.config.Package
	}
	return filepath.Base(g.config.Target)
}

// generateTable emits the file for one table.
func (g *Generator) generateTable(t *schema.Table, filename string) error {
	f := jen.NewFile(g.pkgName())
	f.HeaderComment(g.config.Header)

	ident := exportedName(t.Name())

	// var Users = schema.New("users", field.Int64("id").NotNull(), ...)
	builders := make([]jen.Code, 0, len(t.Columns())+1)
	builders = append(builders, jen.Lit(t.Name()))
	for _, d := range t.Columns() {
		builders = append(builders, jen.Line().Add(columnBuilder(d)))
	}
	builders = append(builders, jen.Line())
	f.Commentf("%s is the %q table definition.", ident, t.Name())
	f.Var().Id(ident).Op("=").Qual(schemaPkg, "New").Call(builders...)
	f.Line()

	// var UsersTable = sql.NewTable(Users)
	f.Commentf("%sTable is %s bound for use in queries.", ident, ident)
	f.Var().Id(ident + "Table").Op("=").Qual(sqlPkg, "NewTable").Call(jen.Id(ident))
	f.Line()

	// Typed field variables, one per column.
	vars := make([]jen.Code, 0, len(t.Columns()))
	for _, d := range t.Columns() {
		fv := fieldVar(ident, d)
		if fv != nil {
			vars = append(vars, fv)
		}
	}
	if len(vars) > 0 {
		f.Comment("Typed fields for building predicates.")
		f.Var().Defs(vars...)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return err
	}
	path := filepath.Join(g.config.Target, filename)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	return os.WriteFile(path, formatted, 0o644)
}

// columnBuilder renders the field builder chain for one column.
func columnBuilder(d *field.Descriptor) jen.Code {
	ctor := map[field.Type]string{
		field.TypeBool:    "Bool",
		field.TypeInt:     "Int",
		field.TypeInt64:   "Int64",
		field.TypeFloat64: "Float64",
		field.TypeString:  "String",
		field.TypeTime:    "Time",
		field.TypeUUID:    "UUID",
		field.TypeBytes:   "Bytes",
		field.TypeJSON:    "JSON",
	}[d.Type]
	stmt := jen.Qual(fieldPkg, ctor).Call(jen.Lit(d.Name))
	if d.PrimaryKey {
		stmt = stmt.Dot("PrimaryKey").Call()
	} else if d.NotNull {
		stmt = stmt.Dot("NotNull").Call()
	}
	switch {
	case d.DefaultExpr != "":
		stmt = stmt.Dot("DefaultExpr").Call(jen.Lit(d.DefaultExpr))
	case d.HasDefault:
		stmt = stmt.Dot("Default").Call(jen.Lit(d.Default))
	}
	if d.Comment != "" {
		stmt = stmt.Dot("Comment").Call(jen.Lit(d.Comment))
	}
	return stmt
}

// fieldVar renders the typed field variable for one column, or nil when
// the column kind has no typed predicate form.
func fieldVar(tableIdent string, d *field.Descriptor) jen.Code {
	name := tableIdent + exportedName(d.Name)
	table := jen.Id(tableIdent + "Table")
	lit := jen.Lit(d.Name)
	switch d.Type {
	case field.TypeBool:
		return jen.Id(name).Op("=").Qual(sqlPkg, "NewField").Index(jen.Bool()).Call(table, lit)
	case field.TypeInt:
		return jen.Id(name).Op("=").Qual(sqlPkg, "NewOrderedField").Index(jen.Int()).Call(table, lit)
	case field.TypeInt64:
		return jen.Id(name).Op("=").Qual(sqlPkg, "NewOrderedField").Index(jen.Int64()).Call(table, lit)
	case field.TypeFloat64:
		return jen.Id(name).Op("=").Qual(sqlPkg, "NewOrderedField").Index(jen.Float64()).Call(table, lit)
	case field.TypeString:
		return jen.Id(name).Op("=").Qual(sqlPkg, "NewStringField").Call(table, lit)
	case field.TypeTime:
		return jen.Id(name).Op("=").Qual(sqlPkg, "NewField").Index(jen.Qual("time", "Time")).Call(table, lit)
	case field.TypeUUID:
		return jen.Id(name).Op("=").Qual(sqlPkg, "NewUUIDField").Call(table, lit)
	case field.TypeBytes:
		return jen.Id(name).Op("=").Qual(sqlPkg, "NewField").Index(jen.Index().Byte()).Call(table, lit)
	default:
		// JSON columns are selectable but carry no typed predicates.
		return nil
	}
}

var titleCaser = cases.Title(language.English)

// exportedName converts a snake_case database name to an exported Go
// identifier.
func exportedName(name string) string {
	if s := inflect.Camelize(name); isExportedIdent(s) {
		return s
	}
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(titleCaser.String(p))
	}
	if s := b.String(); isExportedIdent(s) {
		return s
	}
	return "X" + b.String()
}

func isExportedIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
