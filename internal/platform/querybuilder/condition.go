package querybuilder

type Condition interface {
	writeSQL(w *sqlWriter)
}

type compare struct {
	column string
	op     string
	value  any
}

func (c compare) writeSQL(w *sqlWriter) {
	w.write(c.column, " ", c.op, " ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition  { return compare{column: column, op: "=", value: value} }
func Neq(column string, value any) Condition { return compare{column: column, op: "<>", value: value} }
func Gt(column string, value any) Condition  { return compare{column: column, op: ">", value: value} }
func Gte(column string, value any) Condition { return compare{column: column, op: ">=", value: value} }
func Lt(column string, value any) Condition  { return compare{column: column, op: "<", value: value} }

type inList struct {
	column string
	values []any
}

// In matches any of values. An empty list matches nothing.
func In(column string, values []any) Condition {
	return inList{column: column, values: values}
}

// InStrings is In over string values.
func InStrings(column string, values []string) Condition {
	items := make([]any, 0, len(values))
	for _, v := range values {
		items = append(items, v)
	}
	return In(column, items)
}

func (c inList) writeSQL(w *sqlWriter) {
	if len(c.values) == 0 {
		w.write("1=0")
		return
	}
	w.write(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.write(", ")
		}
		w.bind(v)
	}
	w.write(")")
}

type isNull string

func IsNull(column string) Condition {
	return isNull(column)
}

func (c isNull) writeSQL(w *sqlWriter) {
	w.write(string(c), " IS NULL")
}

type rawExpr struct {
	sql  string
	args []any
}

// Expr is a free-form condition; each ? is bound to the next argument.
func Expr(sql string, args ...any) Condition {
	return rawExpr{sql: sql, args: args}
}

func (c rawExpr) writeSQL(w *sqlWriter) {
	w.expr(c.sql, c.args)
}
