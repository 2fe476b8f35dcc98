package querybuilder

import (
	"fmt"
	"strings"
)

type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder

	Or(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder

	AndGroup(fn func(qb QueryBuilder)) QueryBuilder
	OrGroup(fn func(qb QueryBuilder)) QueryBuilder

	OrderBy(col string, asc bool) QueryBuilder
	Limit(n int) QueryBuilder
	Join(joinType JoinType, table, alias, on string) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Values(values ...interface{}) QueryBuilder

	Update(table string, data UpdateData) QueryBuilder
	Build() (string, []interface{})

	getConditions() []Condition
}

// UpdateData maps column names to their new values.
type UpdateData map[string]interface{}

type queryBuilder struct {
	table      string
	cols       []string
	conditions []Condition
	joins      []join
	values     InsertRows
	updateData UpdateData
	orderBy    []string
	limit      int
	schema     string
}

func (q *queryBuilder) getConditions() []Condition {
	return q.conditions
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values)
	return q
}

func (q *queryBuilder) Update(table string, data UpdateData) QueryBuilder {
	q.table = table
	q.updateData = data
	return q
}

func (q *queryBuilder) Or(clause string, args ...interface{}) QueryBuilder {
	cond := Condition{
		condType: CondTypeOr,
		clause:   clause,
		args:     args,
	}
	q.conditions = append(q.conditions, cond)

	return q
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	cond := Condition{
		condType: CondTypeAnd,
		clause:   clause,
		args:     args,
	}
	q.conditions = append(q.conditions, cond)

	return q
}

func (q *queryBuilder) group(condType CondType, fn func(qb QueryBuilder)) QueryBuilder {
	rawQueryBuilder := NewQueryBuilder(q.schema)
	fn(rawQueryBuilder)
	q.conditions = append(q.conditions, Condition{
		condType:   condType,
		subCond:    rawQueryBuilder.getConditions(),
		isSubGroup: true,
	})
	return q
}

func (q *queryBuilder) AndGroup(fn func(qb QueryBuilder)) QueryBuilder {
	return q.group(CondTypeAnd, fn)
}

func (q *queryBuilder) OrGroup(fn func(qb QueryBuilder)) QueryBuilder {
	return q.group(CondTypeOr, fn)
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	orderVector := "ASC"
	if !asc {
		orderVector = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, orderVector))
	return q
}

func (q *queryBuilder) Limit(n int) QueryBuilder {
	q.limit = n
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	cond := Condition{
		condType: CondTypeAnd,
		clause:   clause,
		args:     args,
	}
	q.conditions = append(q.conditions, cond)

	return q
}

func (q *queryBuilder) Join(joinType JoinType, table, alias, on string) QueryBuilder {
	q.joins = append(q.joins, join{
		joinType: joinType,
		table:    table,
		alias:    alias,
		on:       on,
	})
	return q
}

func buildCondition(conditions []Condition) (string, []interface{}) {
	parts := make([]string, 0)
	args := make([]interface{}, 0)

	for i, cond := range conditions {
		if i > 0 {
			parts = append(parts, cond.condType.ToString())
		}
		if cond.isSubGroup && len(cond.subCond) > 0 {
			clause, subArgs := buildCondition(cond.subCond)
			parts = append(parts, fmt.Sprintf("(%s)", clause))
			args = append(args, subArgs...)
			continue
		}

		parts = append(parts, cond.clause)
		args = append(args, cond.args...)
	}

	return strings.Join(parts, " "), args
}

func (q *queryBuilder) Build() (string, []interface{}) {
	if len(q.values) > 0 {
		return q.buildInsert()
	}
	if len(q.updateData) > 0 {
		return q.buildUpdate()
	}
	return q.buildSelect()
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s.%s", strings.Join(q.cols, ", "), q.schema, q.table)
	for _, j := range q.joins {
		query += fmt.Sprintf(" %s %s.%s %s ON %s", j.joinType.ToString(), q.schema, j.table, j.alias, j.on)
	}

	var args []interface{}

	if len(q.conditions) > 0 {
		condition, condArgs := buildCondition(q.conditions)
		query += fmt.Sprintf(" WHERE %s", condition)
		args = append(args, condArgs...)
	}

	if len(q.orderBy) > 0 {
		query += fmt.Sprintf(" ORDER BY %s", strings.Join(q.orderBy, ", "))
	}

	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}

	return query, args
}

func (q *queryBuilder) buildInsert() (string, []interface{}) {
	numOfParam := len(q.cols)
	if numOfParam == 0 {
		return "", nil
	}

	valueTuples := make([]string, 0, len(q.values))
	args := make([]interface{}, 0, len(q.values)*numOfParam)
	placeholders := make([]string, 0, numOfParam)

	for _, row := range q.values {
		if len(row) != numOfParam {
			return "", nil
		}
		for _, val := range row {
			args = append(args, val)
			placeholders = append(placeholders, "?")
		}
		valueTuples = append(valueTuples, fmt.Sprintf("(%s)", strings.Join(placeholders, ", ")))
		placeholders = placeholders[:0]
	}

	query := fmt.Sprintf("INSERT INTO %s.%s (%s) VALUES %s",
		q.schema, q.table, strings.Join(q.cols, ", "), strings.Join(valueTuples, ", "))

	return query, args
}

func (q *queryBuilder) buildUpdate() (string, []interface{}) {
	base := fmt.Sprintf("UPDATE %s.%s SET ", q.schema, q.table)
	setClause := make([]string, 0, len(q.updateData))
	args := make([]interface{}, 0, len(q.updateData))
	for col, val := range q.updateData {
		setClause = append(setClause, fmt.Sprintf("%s = ?", col))
		args = append(args, val)
	}
	query := base + strings.Join(setClause, ", ")

	if len(q.conditions) > 0 {
		condition, condArgs := buildCondition(q.conditions)
		query += fmt.Sprintf(" WHERE %s", condition)
		args = append(args, condArgs...)
	}

	return query, args
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}
