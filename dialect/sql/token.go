package sql

import (
	"strconv"
	"strings"

	"github.com/tuskdb/tusk/dialect"
)

// Token is the smallest composable unit of the intermediate SQL
// representation. A query is assembled as a flat sequence of tokens and
// rendered in a single pre-order pass, which keeps placeholder numbering
// independent of how deeply a collaborator's tokens were spliced in.
//
// This is a sealed interface - only types in this package implement it.
// The closed variant set enables exhaustive type switches in the renderer:
//
//   - Text: a literal SQL fragment
//   - Param: a bound value, rendered as a positional placeholder
//   - Group: a parenthesized child sequence
//   - Separator: child sequences joined by a literal delimiter
//   - Collection: a child sequence spliced inline, no added punctuation
//
// Tokens are never mutated after construction.
type Token interface {
	token() // Marker method - seals the interface to this package
}

// Text is a literal SQL fragment. Its content is opaque to the renderer.
type Text string

func (Text) token() {}

// Param carries one bound value and renders as a positional placeholder.
type Param struct {
	Value any
}

func (Param) token() {}

// Group wraps a child token sequence and renders it parenthesized.
type Group struct {
	Tokens []Token
}

func (Group) token() {}

// Separator joins a sequence of child token sequences with a literal
// delimiter. Empty child renderings are skipped; no parentheses are added.
type Separator struct {
	Sep    string
	Groups [][]Token
}

func (Separator) token() {}

// Collection concatenates a child token sequence inline. It exists to
// splice a collaborator's own tokens into a parent sequence without
// re-parsing or re-numbering anything.
type Collection struct {
	Tokens []Token
}

func (Collection) token() {}

// rawToken carries a SQL fragment with inline '?' markers and the values
// bound to them. It renders as a single fragment so the text around the
// placeholders is preserved verbatim; Raw is its only constructor.
type rawToken struct {
	fragment string
	args     []any
}

func (rawToken) token() {}

// Tokenizer is implemented by collaborators (columns, tables, conditions,
// expressions, nested queries) that contribute a token sequence to a query.
type Tokenizer interface {
	Tokens() []Token
}

// QueryState is the result of flattening a token sequence: an ordered list
// of text fragments and the ordered argument list bound to them. The n-th
// placeholder in the text always refers to the n-th argument (1-based).
type QueryState struct {
	dialect   string
	fragments []string
	args      []any
}

// Render flattens tokens into a QueryState using the placeholder format of
// the given dialect. Rendering is pure and performs no validation:
// malformed token sequences render to malformed SQL, which the database
// reports on execution.
func Render(dialect string, tokens ...Token) *QueryState {
	s := &QueryState{dialect: dialect}
	s.fragments = s.render(nil, tokens)
	return s
}

func (s *QueryState) render(dst []string, tokens []Token) []string {
	for _, t := range tokens {
		switch t := t.(type) {
		case Text:
			dst = append(dst, string(t))
		case Param:
			s.args = append(s.args, t.Value)
			dst = append(dst, s.placeholder(len(s.args)))
		case Group:
			inner := s.render(nil, t.Tokens)
			dst = append(dst, "("+strings.Join(inner, " ")+")")
		case Separator:
			var parts []string
			for _, g := range t.Groups {
				if inner := s.render(nil, g); len(inner) > 0 {
					parts = append(parts, strings.Join(inner, " "))
				}
			}
			if len(parts) > 0 {
				dst = append(dst, strings.Join(parts, t.Sep+" "))
			}
		case Collection:
			dst = s.render(dst, t.Tokens)
		case rawToken:
			var b strings.Builder
			rest := t.fragment
			for _, v := range t.args {
				i := strings.IndexByte(rest, '?')
				if i < 0 {
					break
				}
				b.WriteString(rest[:i])
				s.args = append(s.args, v)
				b.WriteString(s.placeholder(len(s.args)))
				rest = rest[i+1:]
			}
			b.WriteString(rest)
			dst = append(dst, b.String())
		}
	}
	return dst
}

// placeholder returns the positional placeholder for the i-th argument
// (1-based). Postgres uses numbered parameters; mysql and sqlite bind by
// position with '?'.
func (s *QueryState) placeholder(i int) string {
	if s.dialect == dialect.Postgres {
		return "$" + strconv.Itoa(i)
	}
	return "?"
}

// Dialect returns the dialect the state was rendered for.
func (s *QueryState) Dialect() string {
	return s.dialect
}

// Query returns the rendered SQL text. Top-level fragments join with
// single spaces.
func (s *QueryState) Query() string {
	return strings.Join(s.fragments, " ")
}

// Fragments returns the ordered text fragments of the rendered query.
func (s *QueryState) Fragments() []string {
	return s.fragments
}

// Args returns the ordered argument list. Args()[i] is bound to the
// (i+1)-th placeholder of Query().
func (s *QueryState) Args() []any {
	return s.args
}
