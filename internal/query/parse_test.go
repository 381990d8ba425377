package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tracker/internal/apperr"
)

func TestParseValues(t *testing.T) {
	values := url.Values{}
	values.Add("filter", "title:contains:go")
	values.Add("filter", "date:between:2024-01-01,2024-01-31")
	values.Add("filter", "status:in:IN_PROGRESS,COMPLETED")
	values.Set("logic", "or")
	values.Set("limit", "5")
	values.Set("page", "2")
	values.Set("sort", "title")
	values.Set("order", "ASC")

	q, err := ParseValues(values)
	require.NoError(t, err)

	filters := q.Filters()
	require.Len(t, filters, 3)
	assert.Equal(t, Contains("title", "go"), filters[0])
	assert.Equal(t, OpBetween, filters[1].Operator)
	assert.Equal(t, []any{"2024-01-01", "2024-01-31"}, filters[1].Value)
	assert.Equal(t, []any{"IN_PROGRESS", "COMPLETED"}, filters[2].Value)
	assert.Equal(t, Or, q.Logic())
	assert.Equal(t, 5, q.Limit())
	assert.Equal(t, 2, q.Page())
	assert.Equal(t, "title", q.SortField())
	assert.Equal(t, Asc, q.Order())
}

func TestParseValues_InvalidPagingFallsBack(t *testing.T) {
	q, err := ParseValues(url.Values{"limit": {"ten"}, "page": {"-4"}})
	require.NoError(t, err)

	n := q.Normalize("created_at")
	assert.Equal(t, DefaultLimit, n.Limit())
	assert.Equal(t, DefaultPage, n.Page())
}

func TestParseValues_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"malformed filter", url.Values{"filter": {"title-go"}}},
		{"unknown operator", url.Values{"filter": {"title:like:go"}}},
		{"bad logic", url.Values{"logic": {"xor"}}},
		{"bad order", url.Values{"sort": {"title"}, "order": {"up"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseValues(tt.values)
			assert.ErrorIs(t, err, apperr.Validation)
		})
	}
}

func TestParseOperator_Aliases(t *testing.T) {
	for alias, want := range operatorAliases {
		got, err := ParseOperator(alias)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
