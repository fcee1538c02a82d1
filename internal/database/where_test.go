package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/cardly/internal/database"
)

func TestWhere(t *testing.T) {
	type testCase struct {
		name     string
		build    func(w *database.Where)
		wantSQL  string
		wantArgs []any
	}

	tests := []testCase{
		{
			name:     "Empty",
			build:    func(w *database.Where) {},
			wantSQL:  "",
			wantArgs: nil,
		},
		{
			name: "Numbering",
			build: func(w *database.Where) {
				w.Add("t.status = ?", "COMPLETED")
				w.Add("t.created_at BETWEEN ? AND ?", "a", "b")
				w.Add("t.deleted_at IS NULL")
			},
			wantSQL:  " WHERE t.status = $1 AND t.created_at BETWEEN $2 AND $3 AND t.deleted_at IS NULL",
			wantArgs: []any{"COMPLETED", "a", "b"},
		},
		{
			name: "BareArgsContinueNumbering",
			build: func(w *database.Where) {
				w.Add("c.code = ?", "X1")
				assert.Equal(t, "$2", w.Arg(20))
			},
			wantSQL:  " WHERE c.code = $1",
			wantArgs: []any{"X1", 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w database.Where
			tt.build(&w)

			assert.Equal(t, tt.wantSQL, w.String())
			assert.Equal(t, tt.wantArgs, w.Args())
		})
	}
}
