package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tuskdb/tusk/schema/field"
)

// yamlSchema is the on-disk schema document.
//
//	tables:
//	  - name: users
//	    columns:
//	      - name: id
//	        type: uuid
//	        not_null: true
//	        default_expr: gen_random_uuid()
type yamlSchema struct {
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	Name    string       `yaml:"name"`
	Columns []yamlColumn `yaml:"columns"`
}

type yamlColumn struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	NotNull     bool   `yaml:"not_null"`
	PrimaryKey  bool   `yaml:"primary_key"`
	Default     any    `yaml:"default"`
	DefaultExpr string `yaml:"default_expr"`
	Comment     string `yaml:"comment"`
}

// FromYAML parses table definitions from a YAML schema document.
func FromYAML(data []byte) ([]*Table, error) {
	var doc yamlSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse yaml: %w", err)
	}
	tables := make([]*Table, 0, len(doc.Tables))
	for _, yt := range doc.Tables {
		t := &Table{
			name:    yt.Name,
			columns: make(map[string]*field.Descriptor, len(yt.Columns)),
		}
		for _, yc := range yt.Columns {
			typ, err := field.ParseType(yc.Type)
			if err != nil {
				return nil, fmt.Errorf("schema: table %q column %q: %w", yt.Name, yc.Name, err)
			}
			d := &field.Descriptor{
				Name:        yc.Name,
				Type:        typ,
				NotNull:     yc.NotNull || yc.PrimaryKey,
				PrimaryKey:  yc.PrimaryKey,
				HasDefault:  yc.Default != nil || yc.DefaultExpr != "",
				Default:     yc.Default,
				DefaultExpr: yc.DefaultExpr,
				Comment:     yc.Comment,
			}
			t.order = append(t.order, d.Name)
			t.columns[d.Name] = d
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// Load reads and parses a YAML schema file.
func Load(path string) ([]*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return FromYAML(data)
}
