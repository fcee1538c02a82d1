package database

import (
	"fmt"
	"strings"
)

// Where accumulates AND-ed predicates and their arguments, numbering
// placeholders in the order they are added.
type Where struct {
	clauses []string
	args    []any
}

// Add appends a predicate. Every '?' in cond is replaced by the next $n
// placeholder and consumes one of args.
func (w *Where) Add(cond string, args ...any) {
	var sb strings.Builder

	next := 0

	for _, r := range cond {
		if r == '?' && next < len(args) {
			w.args = append(w.args, args[next])
			sb.WriteString(fmt.Sprintf("$%d", len(w.args)))

			next++

			continue
		}

		sb.WriteRune(r)
	}

	w.clauses = append(w.clauses, sb.String())
}

// Arg registers a bare argument (LIMIT, OFFSET) and returns its placeholder.
func (w *Where) Arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *Where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}

	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *Where) Args() []any {
	return w.args
}
