package sqlite

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates AND-ed conditions together with their bound arguments.
// Conditions are fixed SQL fragments written in this package; values only ever travel as args.
type whereBuilder struct {
	conds []string
	args  []any
}

func newWhere(cond string, args ...any) *whereBuilder {
	w := &whereBuilder{}
	return w.and(cond, args...)
}

func (w *whereBuilder) and(cond string, args ...any) *whereBuilder {
	if n := strings.Count(cond, "?"); n != len(args) {
		panic(fmt.Sprintf("sqlite: condition %q has %d placeholders, got %d args", cond, n, len(args)))
	}
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
	return w
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

func (w *whereBuilder) Args() []any {
	return w.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a search term into a LIKE pattern matching it literally anywhere.
// Use with ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
