package utils

import (
	"fmt"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// WhereBuilder collects conditions with positional ($n) arguments.
// Each clause holds exactly one %d verb for its placeholder index.
type WhereBuilder struct {
	clauses []string
	args    []any
}

func (w *WhereBuilder) Add(clause string, arg any) *WhereBuilder {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
	return w
}

// SQL renders " WHERE ..." or an empty string
func (w *WhereBuilder) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + JoinWithAnd(w.clauses)
}

func (w *WhereBuilder) Args() []any {
	return w.args
}
