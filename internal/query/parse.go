package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mrlokans/tracker/internal/apperr"
)

var operatorAliases = map[string]Operator{
	"eq":           OpEquals,
	"equals":       OpEquals,
	"ne":           OpNotEquals,
	"not_equals":   OpNotEquals,
	"contains":     OpContains,
	"between":      OpBetween,
	"gt":           OpGreaterThan,
	"greater_than": OpGreaterThan,
	"lt":           OpLessThan,
	"less_than":    OpLessThan,
	"in":           OpIn,
}

// ParseOperator accepts canonical names and short aliases in any case.
func ParseOperator(s string) (Operator, error) {
	if op, ok := operatorAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return op, nil
	}
	return "", apperr.Validationf("query.ParseOperator", "unknown filter operator %q", s)
}

// ParseValues reads a query from URL parameters:
//
//	filter=field:op:value   (repeatable; BETWEEN and IN take comma-separated values)
//	logic=and|or
//	limit=N&page=N
//	sort=field&order=asc|desc
//
// Malformed limit/page values fall back to defaults; malformed filters, logic
// and order are Validation errors. Field names are checked later by Schema.Resolve.
func ParseValues(values url.Values) (QueryBase, error) {
	const op = "query.ParseValues"
	var opts []Option

	for _, raw := range values["filter"] {
		parts := strings.SplitN(raw, ":", 3)
		if len(parts) != 3 || parts[0] == "" {
			return QueryBase{}, apperr.Validationf(op, "filter %q must look like field:operator:value", raw)
		}
		operator, err := ParseOperator(parts[1])
		if err != nil {
			return QueryBase{}, err
		}
		opts = append(opts, Where(parseFilter(parts[0], operator, parts[2])))
	}

	if logic := values.Get("logic"); logic != "" {
		l := Logic(strings.ToUpper(logic))
		if l != And && l != Or {
			return QueryBase{}, apperr.Validationf(op, "unknown filter logic %q", logic)
		}
		opts = append(opts, Combine(l))
	}

	opts = append(opts, Limit(atoiOrZero(values.Get("limit"))), Page(atoiOrZero(values.Get("page"))))

	if sort := values.Get("sort"); sort != "" || values.Get("order") != "" {
		order := Order(strings.ToLower(values.Get("order")))
		if order != "" && order != Asc && order != Desc {
			return QueryBase{}, apperr.Validationf(op, "unknown sort order %q", values.Get("order"))
		}
		opts = append(opts, SortBy(sort, order))
	}

	return New(opts...), nil
}

func parseFilter(field string, operator Operator, value string) Filter {
	switch operator {
	case OpBetween:
		parts := strings.Split(value, ",")
		list := make([]any, 0, len(parts))
		for _, p := range parts {
			list = append(list, strings.TrimSpace(p))
		}
		return Filter{Field: field, Operator: operator, Value: list}
	case OpIn:
		parts := strings.Split(value, ",")
		list := make([]any, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		return Filter{Field: field, Operator: operator, Value: list}
	default:
		return Filter{Field: field, Operator: operator, Value: value}
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
