package sqlstore

import (
	"fmt"
	"regexp"

	"github.com/jobdeck/jobdeck/core"
	"github.com/uptrace/bun"
)

var columnNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// applyPredicate compiles a core.Predicate onto the select query so filtering
// happens store-side. Field names are column identifiers and are validated
// before interpolation.
func applyPredicate(q *bun.SelectQuery, predicate core.Predicate) (*bun.SelectQuery, error) {
	if predicate == nil {
		return q, nil
	}
	switch typed := predicate.(type) {
	case core.FieldPredicate:
		return applyFieldPredicate(q, typed)
	case core.AndPredicate:
		var err error
		q = q.WhereGroup(" AND ", func(group *bun.SelectQuery) *bun.SelectQuery {
			for _, child := range typed.Predicates {
				if child == nil {
					continue
				}
				group, err = applyPredicate(group, child)
				if err != nil {
					return group
				}
			}
			return group
		})
		return q, err
	case core.OrPredicate:
		var err error
		q = q.WhereGroup(" AND ", func(group *bun.SelectQuery) *bun.SelectQuery {
			for i, child := range typed.Predicates {
				if child == nil {
					continue
				}
				group, err = applyDisjunct(group, child, i == 0)
				if err != nil {
					return group
				}
			}
			return group
		})
		return q, err
	default:
		return q, fmt.Errorf("sqlstore: unsupported predicate type %T", predicate)
	}
}

func applyDisjunct(q *bun.SelectQuery, predicate core.Predicate, first bool) (*bun.SelectQuery, error) {
	if field, ok := predicate.(core.FieldPredicate); ok {
		clause, args, err := fieldClause(field)
		if err != nil {
			return q, err
		}
		if first {
			return q.Where(clause, args...), nil
		}
		return q.WhereOr(clause, args...), nil
	}

	// Composite disjuncts compile into their own parenthesized group.
	separator := " OR "
	if first {
		separator = " AND "
	}
	var err error
	q = q.WhereGroup(separator, func(group *bun.SelectQuery) *bun.SelectQuery {
		group, err = applyPredicate(group, predicate)
		return group
	})
	return q, err
}

func applyFieldPredicate(q *bun.SelectQuery, predicate core.FieldPredicate) (*bun.SelectQuery, error) {
	clause, args, err := fieldClause(predicate)
	if err != nil {
		return q, err
	}
	return q.Where(clause, args...), nil
}

func fieldClause(predicate core.FieldPredicate) (string, []any, error) {
	if !columnNamePattern.MatchString(predicate.Field) {
		return "", nil, fmt.Errorf("sqlstore: invalid predicate field %q", predicate.Field)
	}
	column := bun.Ident(predicate.Field)
	switch predicate.Op {
	case core.OpEq:
		if predicate.Value == nil {
			return "?TableAlias.? IS NULL", []any{column}, nil
		}
		return "?TableAlias.? = ?", []any{column, predicate.Value}, nil
	case core.OpNe:
		if predicate.Value == nil {
			return "?TableAlias.? IS NOT NULL", []any{column}, nil
		}
		return "?TableAlias.? != ?", []any{column, predicate.Value}, nil
	case core.OpGt:
		return "?TableAlias.? > ?", []any{column, predicate.Value}, nil
	case core.OpGte:
		return "?TableAlias.? >= ?", []any{column, predicate.Value}, nil
	case core.OpLt:
		return "?TableAlias.? < ?", []any{column, predicate.Value}, nil
	case core.OpLte:
		return "?TableAlias.? <= ?", []any{column, predicate.Value}, nil
	case core.OpIn:
		return "?TableAlias.? IN (?)", []any{column, bun.In(predicate.Value)}, nil
	default:
		return "", nil, fmt.Errorf("sqlstore: unsupported predicate op %q", predicate.Op)
	}
}
