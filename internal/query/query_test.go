package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	q := New()

	assert.Equal(t, And, q.Logic())
	assert.Empty(t, q.Filters())
	assert.Zero(t, q.Limit())
	assert.Zero(t, q.Page())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		q         QueryBase
		wantLimit int
		wantPage  int
		wantSort  string
		wantOrder Order
	}{
		{"zero values", New(), DefaultLimit, DefaultPage, "created_at", Desc},
		{"negative values", New(Limit(-3), Page(-1)), DefaultLimit, DefaultPage, "created_at", Desc},
		{"explicit values", New(Limit(25), Page(4), SortBy("title", Asc)), 25, 4, "title", Asc},
		{"limit capped", New(Limit(5000)), MaxLimit, DefaultPage, "created_at", Desc},
		{"bad order", New(SortBy("title", "sideways")), DefaultLimit, DefaultPage, "title", Desc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.q.Normalize("created_at")
			assert.Equal(t, tt.wantLimit, n.Limit())
			assert.Equal(t, tt.wantPage, n.Page())
			assert.Equal(t, tt.wantSort, n.SortField())
			assert.Equal(t, tt.wantOrder, n.Order())
		})
	}
}

func TestSkip(t *testing.T) {
	assert.Equal(t, 0, New().Skip())
	assert.Equal(t, 20, New(Limit(10), Page(3)).Skip())
	assert.Equal(t, 0, New(Limit(10), Page(0)).Skip())
	assert.Equal(t, 10, New(Limit(0), Page(2)).Skip())
}

func TestQueryBase_Immutable(t *testing.T) {
	base := New(Where(Eq("status", "IN_PROGRESS")))

	filters := base.Filters()
	filters[0].Value = "COMPLETED"
	assert.Equal(t, "IN_PROGRESS", base.Filters()[0].Value)

	derived := base.With(Where(Contains("title", "go")), Limit(5))
	assert.Len(t, base.Filters(), 1)
	assert.Len(t, derived.Filters(), 2)
	assert.Zero(t, base.Limit())
	assert.Equal(t, 5, derived.Limit())
}

func TestFilterConstructors(t *testing.T) {
	assert.Equal(t, Filter{Field: "a", Operator: OpEquals, Value: 1}, Eq("a", 1))
	assert.Equal(t, OpNotEquals, NotEq("a", 1).Operator)
	assert.Equal(t, Range{From: 1, To: 2}, Between("a", 1, 2).Value)
	assert.Equal(t, []any{"x", "y"}, In("a", "x", "y").Value)
	assert.Equal(t, OpGreaterThan, GreaterThan("a", 1).Operator)
	assert.Equal(t, OpLessThan, LessThan("a", 1).Operator)
}
