// Package gormquery translates query.QueryBase values into gorm queries.
//
// Callers scope the query (owner, parent aggregate) with plain Where clauses
// before calling Apply; the declarative filters are grouped in their own
// parenthesised clause so OR logic never escapes that scope.
package gormquery

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/database/dberr"
	"github.com/mrlokans/tracker/internal/query"
)

// Scope adds fixed conditions that apply regardless of the query's logic.
type Scope func(*gorm.DB) *gorm.DB

// Where is a Scope for a single condition.
func Where(cond string, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where(cond, args...) }
}

// Filter adds q's filters to db. q must already be resolved against schema.
func Filter(db *gorm.DB, schema query.Schema, q query.QueryBase) (*gorm.DB, error) {
	filters := q.Filters()
	if len(filters) == 0 {
		return db, nil
	}

	clauses := make([]string, 0, len(filters))
	var args []any
	for _, f := range filters {
		field, ok := schema.Field(f.Field)
		if !ok {
			return nil, apperr.Validationf("gormquery.Filter", "unknown filter field %q", f.Field)
		}
		clause, clauseArgs, err := predicate(field.Column, f)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
		args = append(args, clauseArgs...)
	}

	joiner := " AND "
	if q.Logic() == query.Or {
		joiner = " OR "
	}
	return db.Where("("+strings.Join(clauses, joiner)+")", args...), nil
}

// Apply adds filters, ordering and the page window. The schema's tie-breaker
// keeps pages stable when sort values repeat.
func Apply(db *gorm.DB, schema query.Schema, q query.QueryBase) (*gorm.DB, error) {
	resolved, err := schema.Resolve(q)
	if err != nil {
		return nil, err
	}
	db, err = Filter(db, schema, resolved)
	if err != nil {
		return nil, err
	}
	return page(order(db, schema, resolved), resolved), nil
}

// FindAll returns one page of T matching q plus the size of the whole matching
// set. Scopes restrict the set before filtering.
func FindAll[T any](ctx context.Context, db *gorm.DB, schema query.Schema, q query.QueryBase, scopes ...Scope) (query.Result[T], error) {
	op := "gormquery.FindAll." + schema.Name
	resolved, err := schema.Resolve(q)
	if err != nil {
		return query.Result[T]{}, err
	}

	base := db.WithContext(ctx).Model(new(T))
	for _, scope := range scopes {
		base = scope(base)
	}
	base, err = Filter(base, schema, resolved)
	if err != nil {
		return query.Result[T]{}, err
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return query.Result[T]{}, dberr.Translate(op, err)
	}

	data := make([]T, 0)
	if total > 0 {
		if err := page(order(base.Session(&gorm.Session{}), schema, resolved), resolved).Find(&data).Error; err != nil {
			return query.Result[T]{}, dberr.Translate(op, err)
		}
	}
	return query.Result[T]{Data: data, TotalCount: total}, nil
}

func order(db *gorm.DB, schema query.Schema, q query.QueryBase) *gorm.DB {
	direction := "DESC"
	if q.Order() == query.Asc {
		direction = "ASC"
	}
	if field, ok := schema.Field(q.SortField()); ok {
		db = db.Order(field.Column + " " + direction)
	}
	if schema.TieBreaker != "" {
		db = db.Order(schema.TieBreaker + " " + direction)
	}
	return db
}

func page(db *gorm.DB, q query.QueryBase) *gorm.DB {
	return db.Offset(q.Skip()).Limit(q.Limit())
}

func predicate(column string, f query.Filter) (string, []any, error) {
	switch f.Operator {
	case query.OpEquals:
		return column + " = ?", []any{f.Value}, nil
	case query.OpNotEquals:
		return column + " <> ?", []any{f.Value}, nil
	case query.OpGreaterThan:
		return column + " > ?", []any{f.Value}, nil
	case query.OpLessThan:
		return column + " < ?", []any{f.Value}, nil
	case query.OpContains:
		s, _ := f.Value.(string)
		return "LOWER(" + column + ") LIKE ? ESCAPE '\\'", []any{"%" + escapeLike(strings.ToLower(s)) + "%"}, nil
	case query.OpBetween:
		r, ok := f.Value.(query.Range)
		if !ok {
			return "", nil, apperr.Validationf("gormquery.predicate", "BETWEEN on %q needs a range", f.Field)
		}
		return column + " BETWEEN ? AND ?", []any{r.From, r.To}, nil
	case query.OpIn:
		values, ok := f.Value.([]any)
		if !ok || len(values) == 0 {
			return "", nil, apperr.Validationf("gormquery.predicate", "IN on %q needs values", f.Field)
		}
		return column + " IN ?", []any{values}, nil
	}
	return "", nil, apperr.Validationf("gormquery.predicate", "unsupported operator %q", f.Operator)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
