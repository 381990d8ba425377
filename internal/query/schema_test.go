package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tracker/internal/apperr"
)

var testSchema = Schema{
	Name: "books",
	Fields: map[string]Field{
		"title":      {Column: "title", Kind: KindString},
		"pages":      {Column: "total_pages", Kind: KindInt},
		"date":       {Column: "date", Kind: KindDate},
		"created_at": {Column: "created_at", Kind: KindTime},
	},
	DefaultSort: "created_at",
	TieBreaker:  "id",
}

func TestResolve_UnknownField(t *testing.T) {
	_, err := testSchema.Resolve(New(Where(Eq("isbn13", "x"))))
	assert.ErrorIs(t, err, apperr.Validation)
	assert.Contains(t, err.Error(), "isbn13")
}

func TestResolve_UnknownSortField(t *testing.T) {
	_, err := testSchema.Resolve(New(SortBy("rating", Asc)))
	assert.ErrorIs(t, err, apperr.Validation)
}

func TestResolve_UnknownOperator(t *testing.T) {
	_, err := testSchema.Resolve(New(Where(Filter{Field: "title", Operator: "LIKE", Value: "x"})))
	assert.ErrorIs(t, err, apperr.Validation)
}

func TestResolve_CoercesValues(t *testing.T) {
	q, err := testSchema.Resolve(New(
		Where(Eq("pages", "300")),
		Where(Filter{Field: "date", Operator: OpBetween, Value: []any{"2024-01-01", "2024-01-31"}}),
		Where(In("pages", "100", 200)),
	))
	require.NoError(t, err)

	filters := q.Filters()
	assert.Equal(t, int64(300), filters[0].Value)
	assert.Equal(t, Range{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}, filters[1].Value)
	assert.Equal(t, []any{int64(100), int64(200)}, filters[2].Value)
	assert.Equal(t, DefaultLimit, q.Limit())
	assert.Equal(t, "created_at", q.SortField())
}

func TestResolve_DateTruncatesTime(t *testing.T) {
	q, err := testSchema.Resolve(New(Where(Eq("date", "2024-03-05T17:45:00Z"))))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), q.Filters()[0].Value)
}

func TestResolve_MalformedValues(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
	}{
		{"non numeric int", Eq("pages", "many")},
		{"bad date", Eq("date", "yesterday")},
		{"between with one value", Filter{Field: "pages", Operator: OpBetween, Value: []any{"1"}}},
		{"empty in", In("pages")},
		{"contains on int", Contains("pages", "1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testSchema.Resolve(New(Where(tt.filter)))
			assert.ErrorIs(t, err, apperr.Validation)
		})
	}
}

func TestResolve_RejectsBadLogic(t *testing.T) {
	_, err := testSchema.Resolve(New(Combine("XOR")))
	assert.ErrorIs(t, err, apperr.Validation)
}
