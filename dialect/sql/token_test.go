package sql

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuskdb/tusk/dialect"
)

func TestRenderText(t *testing.T) {
	state := Render(dialect.Postgres, Text("SELECT"), Text("1"))
	assert.Equal(t, "SELECT 1", state.Query())
	assert.Empty(t, state.Args())
}

func TestRenderPlaceholders(t *testing.T) {
	tests := []struct {
		dialect string
		query   string
	}{
		{dialect.Postgres, `"id" = $1 AND "age" > $2`},
		{dialect.MySQL, `"id" = ? AND "age" > ?`},
		{dialect.SQLite, `"id" = ? AND "age" > ?`},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			state := Render(tt.dialect,
				Text(`"id"`), Text("="), Param{Value: 1},
				Text("AND"),
				Text(`"age"`), Text(">"), Param{Value: 30},
			)
			assert.Equal(t, tt.query, state.Query())
			assert.Equal(t, []any{1, 30}, state.Args())
			assert.Equal(t, tt.dialect, state.Dialect())
		})
	}
}

func TestRenderGroup(t *testing.T) {
	state := Render(dialect.Postgres,
		Text("WHERE"),
		Group{Tokens: []Token{Text(`"a"`), Text("="), Param{Value: 1}}},
	)
	assert.Equal(t, `WHERE ("a" = $1)`, state.Query())
	assert.Equal(t, []any{1}, state.Args())
}

func TestRenderSeparator(t *testing.T) {
	t.Run("joins_children", func(t *testing.T) {
		state := Render(dialect.Postgres, Separator{
			Sep: ",",
			Groups: [][]Token{
				{Text(`"id"`)},
				{Text(`"name"`)},
				{Text(`"age"`)},
			},
		})
		assert.Equal(t, `"id", "name", "age"`, state.Query())
	})

	t.Run("skips_empty_children", func(t *testing.T) {
		state := Render(dialect.Postgres, Separator{
			Sep: ",",
			Groups: [][]Token{
				{Text(`"id"`)},
				{},
				{Text(`"name"`)},
				nil,
			},
		})
		assert.Equal(t, `"id", "name"`, state.Query())
	})

	t.Run("all_empty", func(t *testing.T) {
		state := Render(dialect.Postgres, Separator{Sep: ",", Groups: [][]Token{{}, nil}})
		assert.Equal(t, "", state.Query())
		assert.Empty(t, state.Fragments())
	})
}

func TestRenderCollection(t *testing.T) {
	inner := []Token{Text(`"id"`), Text("="), Param{Value: 7}}
	state := Render(dialect.Postgres, Text("WHERE"), Collection{Tokens: inner})
	assert.Equal(t, `WHERE "id" = $1`, state.Query())
	assert.Equal(t, []any{7}, state.Args())
}

// TestRenderPlaceholderOrdering checks the core renderer invariant: the
// n-th placeholder always refers to the n-th argument, regardless of how
// the parameters are nested.
func TestRenderPlaceholderOrdering(t *testing.T) {
	state := Render(dialect.Postgres,
		Param{Value: "a"},
		Group{Tokens: []Token{
			Param{Value: "b"},
			Separator{Sep: ",", Groups: [][]Token{
				{Param{Value: "c"}},
				{Collection{Tokens: []Token{Param{Value: "d"}}}},
			}},
		}},
		Param{Value: "e"},
	)
	require.Equal(t, []any{"a", "b", "c", "d", "e"}, state.Args())
	assert.Equal(t, `$1 ($2 $3, $4) $5`, state.Query())

	// Deeply nested numbering stays sequential.
	var tokens []Token
	for i := 0; i < 20; i++ {
		tokens = []Token{Param{Value: i}, Group{Tokens: tokens}}
	}
	state = Render(dialect.Postgres, tokens...)
	args := state.Args()
	require.Len(t, args, 20)
	for i, v := range args {
		assert.Equal(t, 19-i, v, fmt.Sprintf("argument %d", i))
	}
}

func TestRenderDeterministic(t *testing.T) {
	tokens := []Token{
		Text("SELECT"),
		Separator{Sep: ",", Groups: [][]Token{{Text(`"a"`)}, {Text(`"b"`)}}},
		Text("WHERE"),
		Text(`"a"`), Text("="), Param{Value: 1},
	}
	first := Render(dialect.Postgres, tokens...)
	second := Render(dialect.Postgres, tokens...)
	assert.Equal(t, first.Query(), second.Query())
	assert.Equal(t, first.Args(), second.Args())
}
