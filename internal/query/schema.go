package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/tracker/internal/apperr"
)

// FieldKind tells the resolver how to coerce and compare values.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindTime
	KindDate
)

// Field maps a public field name to a storage column.
type Field struct {
	Column string
	Kind   FieldKind
}

// Schema lists the fields a listing may filter and sort on.
type Schema struct {
	Name        string
	Fields      map[string]Field
	DefaultSort string
	// TieBreaker is appended to every sort so pages are stable.
	TieBreaker string
}

// Field looks up a public field.
func (s Schema) Field(name string) (Field, bool) {
	f, ok := s.Fields[name]
	return f, ok
}

// Resolve validates q against the schema, coerces string values into the
// field's kind, and returns the normalized query. Unknown fields, operators
// and malformed values are Validation errors.
func (s Schema) Resolve(q QueryBase) (QueryBase, error) {
	op := "query." + s.Name
	if q.logic != "" && q.logic != And && q.logic != Or {
		return QueryBase{}, apperr.Validationf(op, "unknown filter logic %q", q.logic)
	}
	if q.order != "" && q.order != Asc && q.order != Desc {
		return QueryBase{}, apperr.Validationf(op, "unknown sort order %q", q.order)
	}
	if q.sortField != "" {
		if _, ok := s.Fields[q.sortField]; !ok {
			return QueryBase{}, apperr.Validationf(op, "unknown sort field %q", q.sortField)
		}
	}

	resolved := make(Filters, 0, len(q.filters))
	for _, f := range q.filters {
		field, ok := s.Fields[f.Field]
		if !ok {
			return QueryBase{}, apperr.Validationf(op, "unknown filter field %q", f.Field)
		}
		value, err := coerceFilter(field, f)
		if err != nil {
			return QueryBase{}, apperr.Wrap(apperr.KindValidation, op, fmt.Sprintf("invalid filter on %q", f.Field), err)
		}
		resolved = append(resolved, Filter{Field: f.Field, Operator: f.Operator, Value: value})
	}

	out := q.Normalize(s.DefaultSort)
	out.filters = resolved
	return out, nil
}

func coerceFilter(field Field, f Filter) (any, error) {
	switch f.Operator {
	case OpEquals, OpNotEquals, OpGreaterThan, OpLessThan:
		return coerce(field.Kind, f.Value)
	case OpContains:
		if field.Kind != KindString {
			return nil, fmt.Errorf("CONTAINS requires a text field")
		}
		s, ok := f.Value.(string)
		if !ok {
			return nil, fmt.Errorf("CONTAINS requires a string value")
		}
		return s, nil
	case OpBetween:
		r, err := toRange(f.Value)
		if err != nil {
			return nil, err
		}
		from, err := coerce(field.Kind, r.From)
		if err != nil {
			return nil, err
		}
		to, err := coerce(field.Kind, r.To)
		if err != nil {
			return nil, err
		}
		return Range{From: from, To: to}, nil
	case OpIn:
		values, ok := f.Value.([]any)
		if !ok || len(values) == 0 {
			return nil, fmt.Errorf("IN requires a non-empty list")
		}
		out := make([]any, 0, len(values))
		for _, v := range values {
			c, err := coerce(field.Kind, v)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown operator %q", f.Operator)
	}
}

func toRange(v any) (Range, error) {
	switch r := v.(type) {
	case Range:
		return r, nil
	case []any:
		if len(r) == 2 {
			return Range{From: r[0], To: r[1]}, nil
		}
	case []string:
		if len(r) == 2 {
			return Range{From: r[0], To: r[1]}, nil
		}
	}
	return Range{}, fmt.Errorf("BETWEEN requires exactly two values")
}

func coerce(kind FieldKind, v any) (any, error) {
	switch kind {
	case KindString:
		switch s := v.(type) {
		case string:
			return s, nil
		case fmt.Stringer:
			return s.String(), nil
		}
		return nil, fmt.Errorf("expected text, got %T", v)
	case KindInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case uint:
			return int64(n), nil
		case string:
			parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("expected integer, got %q", n)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("expected integer, got %T", v)
	case KindTime, KindDate:
		t, err := toTime(v)
		if err != nil {
			return nil, err
		}
		if kind == KindDate {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, nil
	}
	return nil, fmt.Errorf("unsupported field kind %d", kind)
}

func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		s := strings.TrimSpace(t)
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			return parsed.UTC(), nil
		}
		if parsed, err := time.Parse(time.DateOnly, s); err == nil {
			return parsed, nil
		}
		return time.Time{}, fmt.Errorf("expected date (YYYY-MM-DD or RFC3339), got %q", t)
	}
	return time.Time{}, fmt.Errorf("expected date, got %T", v)
}
