package sql

// Condition is a boolean expression usable in WHERE, HAVING and ON
// clauses. Conditions are built once and never mutated; combining them
// produces new values.
type Condition struct {
	tokens []Token
}

// Tokens returns the condition's token sequence.
func (c *Condition) Tokens() []Token {
	return c.tokens
}

func compare(col *Column, op string, v any) *Condition {
	return &Condition{tokens: []Token{Text(quoteIdent(col.name)), Text(op), Param{Value: v}}}
}

// EQ returns a column = value condition.
func EQ(col *Column, v any) *Condition { return compare(col, "=", v) }

// NEQ returns a column <> value condition.
func NEQ(col *Column, v any) *Condition { return compare(col, "<>", v) }

// GT returns a column > value condition.
func GT(col *Column, v any) *Condition { return compare(col, ">", v) }

// GTE returns a column >= value condition.
func GTE(col *Column, v any) *Condition { return compare(col, ">=", v) }

// LT returns a column < value condition.
func LT(col *Column, v any) *Condition { return compare(col, "<", v) }

// LTE returns a column <= value condition.
func LTE(col *Column, v any) *Condition { return compare(col, "<=", v) }

// ColumnsEQ returns a column = column condition, as used in ON clauses.
func ColumnsEQ(a, b *Column) *Condition {
	return &Condition{tokens: []Token{Text(quoteIdent(a.name)), Text("="), Text(quoteIdent(b.name))}}
}

// Like returns a column LIKE pattern condition.
func Like(col *Column, pattern string) *Condition {
	return &Condition{tokens: []Token{Text(quoteIdent(col.name)), Text("LIKE"), Param{Value: pattern}}}
}

// Contains returns a condition matching the substring anywhere in the column.
func Contains(col *Column, sub string) *Condition {
	return Like(col, "%"+sub+"%")
}

// HasPrefix returns a condition matching the prefix of the column.
func HasPrefix(col *Column, prefix string) *Condition {
	return Like(col, prefix+"%")
}

// HasSuffix returns a condition matching the suffix of the column.
func HasSuffix(col *Column, suffix string) *Condition {
	return Like(col, "%"+suffix)
}

// In returns a column IN (values...) condition.
func In(col *Column, vs ...any) *Condition {
	groups := make([][]Token, len(vs))
	for i, v := range vs {
		groups[i] = []Token{Param{Value: v}}
	}
	return &Condition{tokens: []Token{
		Text(quoteIdent(col.name)),
		Text("IN"),
		Group{Tokens: []Token{Separator{Sep: ",", Groups: groups}}},
	}}
}

// NotIn returns a column NOT IN (values...) condition.
func NotIn(col *Column, vs ...any) *Condition {
	in := In(col, vs...)
	return &Condition{tokens: append([]Token{Text(quoteIdent(col.name)), Text("NOT")}, in.tokens[1:]...)}
}

// IsNull returns a column IS NULL condition.
func IsNull(col *Column) *Condition {
	return &Condition{tokens: []Token{Text(quoteIdent(col.name)), Text("IS NULL")}}
}

// NotNull returns a column IS NOT NULL condition.
func NotNull(col *Column) *Condition {
	return &Condition{tokens: []Token{Text(quoteIdent(col.name)), Text("IS NOT NULL")}}
}

// And returns the conjunction of the given conditions.
func And(conds ...*Condition) *Condition {
	if len(conds) == 1 {
		return conds[0]
	}
	var tokens []Token
	for i, c := range conds {
		if i > 0 {
			tokens = append(tokens, Text("AND"))
		}
		tokens = append(tokens, Collection{Tokens: c.tokens})
	}
	return &Condition{tokens: tokens}
}

// Or returns the disjunction of the given conditions, parenthesized so it
// composes with surrounding conjunctions.
func Or(conds ...*Condition) *Condition {
	if len(conds) == 1 {
		return conds[0]
	}
	var tokens []Token
	for i, c := range conds {
		if i > 0 {
			tokens = append(tokens, Text("OR"))
		}
		tokens = append(tokens, Collection{Tokens: c.tokens})
	}
	return &Condition{tokens: []Token{Group{Tokens: tokens}}}
}

// Not negates a condition.
func Not(c *Condition) *Condition {
	return &Condition{tokens: []Token{Text("NOT"), Group{Tokens: c.tokens}}}
}
