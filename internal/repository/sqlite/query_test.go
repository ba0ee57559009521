package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	w := newWhere("t.user_id = ?", int64(7))
	assert.Equal(t, "WHERE t.user_id = ?", w.String())

	w.and("t.completed = ?", false).and("c.name = ?", "Work")
	assert.Equal(t, "WHERE t.user_id = ? AND t.completed = ? AND c.name = ?", w.String())
	assert.Equal(t, []any{int64(7), false, "Work"}, w.Args())
}

func TestWhereBuilderPlaceholderMismatch(t *testing.T) {
	assert.Panics(t, func() {
		newWhere("t.user_id = ?")
	})
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%milk%", containsPattern("milk"))
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
}
