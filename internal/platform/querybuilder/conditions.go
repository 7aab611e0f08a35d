package querybuilder

// Condition renders one WHERE predicate into a statement.
type Condition interface {
	render(s *statement)
}

func joinConditions(s *statement, conditions []Condition, sep string) {
	for i, c := range conditions {
		if i > 0 {
			s.WriteString(sep)
		}
		c.render(s)
	}
}

type compareCondition struct {
	column   string
	operator string
	value    any
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, operator: "=", value: value}
}

// Compare renders "column <op> $n", e.g. Compare("request_time", ">=", since).
func Compare(column, operator string, value any) Condition {
	return compareCondition{column: column, operator: operator, value: value}
}

func (c compareCondition) render(s *statement) {
	s.WriteString(c.column)
	s.WriteString(" ")
	s.WriteString(c.operator)
	s.WriteString(" ")
	s.bind(c.value)
}

type anyCondition struct {
	column string
	array  any
}

// Any renders "column = ANY($n)"; array is usually a pq.Array value.
func Any(column string, array any) Condition {
	return anyCondition{column: column, array: array}
}

func (c anyCondition) render(s *statement) {
	s.WriteString(c.column)
	s.WriteString(" = ANY(")
	s.bind(c.array)
	s.WriteString(")")
}

type orCondition []Condition

// Or groups conditions as "(a OR b ...)". An empty group matches nothing.
func Or(conditions ...Condition) Condition {
	return orCondition(conditions)
}

func (c orCondition) render(s *statement) {
	if len(c) == 0 {
		s.WriteString("1=0")
		return
	}
	s.WriteString("(")
	joinConditions(s, c, " OR ")
	s.WriteString(")")
}

type exprCondition struct {
	expr string
	args []any
}

func (c exprCondition) render(s *statement) {
	s.fragment(c.expr, c.args)
}
