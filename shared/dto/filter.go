package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterPlainQuery        = "plan"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

// likeEscaper neutralises LIKE wildcards in user terms.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Filter is a single predicate on a column. Both the SQL and document stores translate it.
type Filter struct {
	// ArgName overrides the named parameter when two filters target the same column.
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq"`
	Table    string
}

// Eq matches field equal to value.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Value: value, Operator: FilterOperatorEq}
}

// In matches field against any element of the slice values.
func In(field string, values any) Filter {
	return Filter{Field: field, Value: values, Operator: FilterOperatorIn}
}

// Like matches field containing value, case-insensitively.
func Like(field string, value string) Filter {
	return Filter{Field: field, Value: value, Operator: FilterOperatorLike}
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause renders the predicate with sqlx named parameters.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, name := f.column(), f.argName()

	binary := func(op string) (string, map[string]any) {
		args[name] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, name), args
	}

	switch f.Operator {
	case FilterOperatorEq:
		return binary("=")
	case FilterOperatorNotEq:
		return binary("!=")
	case FilterOperatorLessEq:
		return binary("<=")
	case FilterOperatorGreaterEq:
		return binary(">=")
	case FilterOperatorLike:
		args[name] = "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"

		return fmt.Sprintf(`LOWER(%s) LIKE LOWER(:%s) ESCAPE '\' `, column, name), args
	case FilterOperatorIn:
		return f.inClause(column, name, args)
	case FilterPlainQuery:
		query, _ := f.Value.(string)

		return fmt.Sprintf("(%s)", query), args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

func (f *Filter) inClause(column, name string, args map[string]any) (string, map[string]any) {
	val := reflect.ValueOf(f.Value)

	if kind := val.Kind(); kind != reflect.Array && kind != reflect.Slice {
		return fmt.Sprintf("%s IN (%v) ", column, f.Value), args
	}

	// an empty IN list matches nothing
	if val.Len() == 0 {
		return "FALSE", args
	}

	named := make([]string, val.Len())

	for idx := range val.Len() {
		key := fmt.Sprintf("%s_%d", name, idx)
		args[key] = val.Index(idx).Interface()
		named[idx] = ":" + key
	}

	return fmt.Sprintf("%s IN (%s) ", column, strings.Join(named, ", ")), args
}

// FilterGroup joins Filter and nested FilterGroup values with one operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

// And groups filters that must all match.
func And(filters ...any) FilterGroup {
	return FilterGroup{Filters: filters, Operator: FilterGroupOperatorAnd}
}

// Or groups filters of which any may match.
func Or(filters ...any) FilterGroup {
	return FilterGroup{Filters: filters, Operator: FilterGroupOperatorOr}
}

// IsEmpty reports whether the group carries no predicates.
func (f *FilterGroup) IsEmpty() bool {
	return len(f.Filters) == 0
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(clauses, " "+f.Operator+" ")), args
}
