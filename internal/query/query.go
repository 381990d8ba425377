// Package query describes listings independently of any storage engine.
//
// A QueryBase carries filters combined under a single logic, a sort, and a
// page window. It is immutable: builders return new values and accessors
// return copies. Repositories translate it into a native query (see
// internal/database/gormquery) after resolving it against a Schema.
//
//	q := query.New(
//		query.Where(query.Eq("user_book_id", id)),
//		query.SortBy("date", query.Desc),
//		query.Limit(1),
//	)
package query

import (
	"strings"
)

// Operator is a filter predicate.
type Operator string

const (
	OpEquals      Operator = "EQUALS"
	OpNotEquals   Operator = "NOT_EQUALS"
	OpContains    Operator = "CONTAINS"
	OpBetween     Operator = "BETWEEN"
	OpGreaterThan Operator = "GREATER_THAN"
	OpLessThan    Operator = "LESS_THAN"
	OpIn          Operator = "IN"
)

// Logic combines every filter of a query.
type Logic string

const (
	And Logic = "AND"
	Or  Logic = "OR"
)

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

const (
	DefaultLimit = 10
	DefaultPage  = 1
	// MaxLimit caps page size for listings.
	MaxLimit = 100
)

// Filter is a single predicate over a public field name.
type Filter struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

// Range is the value of a BETWEEN filter; both ends are inclusive.
type Range struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// Filters is an ordered sequence of predicates.
type Filters []Filter

func Eq(field string, value any) Filter {
	return Filter{Field: field, Operator: OpEquals, Value: value}
}

func NotEq(field string, value any) Filter {
	return Filter{Field: field, Operator: OpNotEquals, Value: value}
}

// Contains matches a case-insensitive substring.
func Contains(field, substr string) Filter {
	return Filter{Field: field, Operator: OpContains, Value: substr}
}

func Between(field string, from, to any) Filter {
	return Filter{Field: field, Operator: OpBetween, Value: Range{From: from, To: to}}
}

func GreaterThan(field string, value any) Filter {
	return Filter{Field: field, Operator: OpGreaterThan, Value: value}
}

func LessThan(field string, value any) Filter {
	return Filter{Field: field, Operator: OpLessThan, Value: value}
}

func In(field string, values ...any) Filter {
	return Filter{Field: field, Operator: OpIn, Value: values}
}

// QueryBase is the immutable description of a listing.
type QueryBase struct {
	filters   Filters
	logic     Logic
	limit     int
	page      int
	sortField string
	order     Order
}

// Option configures a QueryBase under construction.
type Option func(*QueryBase)

// New builds a query. Unset values are left for Normalize to default.
func New(opts ...Option) QueryBase {
	q := QueryBase{logic: And}
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

// With derives a new query from q.
func (q QueryBase) With(opts ...Option) QueryBase {
	next := q
	next.filters = q.Filters()
	for _, opt := range opts {
		opt(&next)
	}
	return next
}

// Where appends filters.
func Where(filters ...Filter) Option {
	return func(q *QueryBase) {
		q.filters = append(q.filters, filters...)
	}
}

// Combine sets the logic used between all filters.
func Combine(logic Logic) Option {
	return func(q *QueryBase) {
		q.logic = Logic(strings.ToUpper(string(logic)))
	}
}

func Limit(n int) Option {
	return func(q *QueryBase) { q.limit = n }
}

func Page(n int) Option {
	return func(q *QueryBase) { q.page = n }
}

func SortBy(field string, order Order) Option {
	return func(q *QueryBase) {
		q.sortField = field
		q.order = Order(strings.ToLower(string(order)))
	}
}

// Filters returns a copy of the filters.
func (q QueryBase) Filters() Filters {
	if len(q.filters) == 0 {
		return nil
	}
	out := make(Filters, len(q.filters))
	copy(out, q.filters)
	return out
}

func (q QueryBase) Logic() Logic      { return q.logic }
func (q QueryBase) Limit() int        { return q.limit }
func (q QueryBase) Page() int         { return q.page }
func (q QueryBase) SortField() string { return q.sortField }
func (q QueryBase) Order() Order      { return q.order }

// Skip is the number of rows (or days) before the requested page.
func (q QueryBase) Skip() int {
	n := q.Normalize("")
	return (n.page - 1) * n.limit
}

// Normalize applies the defaulting policy: non-positive limit or page fall back
// to DefaultLimit/DefaultPage, limit is capped at MaxLimit, an empty sort field
// becomes defaultSort, an unknown order becomes Desc and unknown logic And.
func (q QueryBase) Normalize(defaultSort string) QueryBase {
	n := q.With()
	if n.limit <= 0 {
		n.limit = DefaultLimit
	}
	if n.limit > MaxLimit {
		n.limit = MaxLimit
	}
	if n.page <= 0 {
		n.page = DefaultPage
	}
	if n.sortField == "" {
		n.sortField = defaultSort
	}
	if n.order != Asc && n.order != Desc {
		n.order = Desc
	}
	if n.logic != And && n.logic != Or {
		n.logic = And
	}
	return n
}

// Result is one page of a listing. TotalCount is the size of the whole
// matching set, not of Data.
type Result[T any] struct {
	Data       []T   `json:"data"`
	TotalCount int64 `json:"total_count"`
}
