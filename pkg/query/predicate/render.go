package predicate

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect selects the SQL flavour a predicate is rendered in. The values
// match gorm's dialector names.
type Dialect string

const (
	SQLite    Dialect = "sqlite"
	Postgres  Dialect = "postgres"
	MySQL     Dialect = "mysql"
	SQLServer Dialect = "sqlserver"
)

var ErrUnsupported = errors.New("not supported by dialect")

type renderer struct {
	dialect Dialect
	sql     strings.Builder
	vars    []any
}

// Render renders p as a parameterized SQL condition using `?` placeholders.
func Render(p Predicate, dialect Dialect) (string, []any, error) {
	r := &renderer{dialect: dialect}
	if err := r.validate(); err != nil {
		return "", nil, err
	}

	if err := r.predicate(p); err != nil {
		return "", nil, err
	}

	return r.sql.String(), r.vars, nil
}

// RenderSelect renders `SELECT column FROM from... WHERE where`.
func RenderSelect(column Column, from []Table, where Predicate, dialect Dialect) (string, []any, error) {
	r := &renderer{dialect: dialect}
	if err := r.validate(); err != nil {
		return "", nil, err
	}

	if err := r.subquery(Subquery{Select: column, From: from, Where: where}); err != nil {
		return "", nil, err
	}

	return r.sql.String(), r.vars, nil
}

func (r *renderer) validate() error {
	switch r.dialect {
	case SQLite, Postgres, MySQL, SQLServer:
		return nil
	default:
		return fmt.Errorf("unknown dialect %q", r.dialect)
	}
}

func (r *renderer) write(parts ...string) {
	for _, part := range parts {
		r.sql.WriteString(part)
	}
}

func (r *renderer) bind(value any) {
	r.sql.WriteByte('?')
	r.vars = append(r.vars, value)
}

func (r *renderer) quote(name string) string {
	switch r.dialect {
	case MySQL:
		return "`" + name + "`"
	case SQLServer:
		return "[" + name + "]"
	default:
		return `"` + name + `"`
	}
}

func (r *renderer) column(c Column) {
	r.write(r.quote(string(c.Table)), ".", r.quote(c.Name))
}

//nolint:cyclop
func (r *renderer) predicate(p Predicate) error {
	switch pred := p.(type) {
	case True:
		r.write("1 = 1")
	case And:
		return r.junction(pred.Predicates, " AND ", "1 = 1")
	case Or:
		return r.junction(pred.Predicates, " OR ", "1 = 0")
	case Not:
		return r.not(pred)
	case Compare:
		return r.compare(pred)
	case In:
		r.in(pred)
	case Like:
		r.column(pred.Column)
		r.write(" LIKE ")
		r.bind(pred.Pattern)
	case Match:
		return r.match(pred)
	case NotNull:
		r.column(pred.Column)
		r.write(" IS NOT NULL")
	case Member:
		r.column(pred.Column)
		r.write(" IN (")

		if err := r.subquery(pred.Subquery); err != nil {
			return err
		}

		r.write(")")
	default:
		return fmt.Errorf("unknown predicate type %T", p)
	}

	return nil
}

func (r *renderer) junction(operands []Predicate, separator, empty string) error {
	if len(operands) == 0 {
		r.write(empty)

		return nil
	}

	r.write("(")

	for i, operand := range operands {
		if i > 0 {
			r.write(separator)
		}

		if err := r.predicate(operand); err != nil {
			return err
		}
	}

	r.write(")")

	return nil
}

func (r *renderer) not(pred Not) error {
	r.write("NOT ")

	switch inner := pred.Predicate.(type) {
	case And:
		if len(inner.Predicates) > 0 {
			return r.predicate(inner)
		}
	case Or:
		if len(inner.Predicates) > 0 {
			return r.predicate(inner)
		}
	}

	r.write("(")

	if err := r.predicate(pred.Predicate); err != nil {
		return err
	}

	r.write(")")

	return nil
}

func sqlOperator(op OperatorKind) (string, error) {
	switch op {
	case Equals:
		return "=", nil
	case NotEquals:
		return "<>", nil
	case Less:
		return "<", nil
	case LessEquals:
		return "<=", nil
	case Greater:
		return ">", nil
	case GreaterEquals:
		return ">=", nil
	default:
		return "", fmt.Errorf("unknown comparison operator %d", op)
	}
}

func (r *renderer) compare(pred Compare) error {
	op, err := sqlOperator(pred.Operator)
	if err != nil {
		return err
	}

	r.column(pred.Column)
	r.write(" ", op, " ")

	switch value := pred.Value.(type) {
	case Column:
		r.column(value)
	case MaxOffset:
		r.maxOffset(value)
	default:
		r.bind(value)
	}

	return nil
}

func (r *renderer) maxOffset(value MaxOffset) {
	table := r.quote(string(value.Column.Table))

	switch r.dialect {
	case Postgres:
		r.write("(SELECT max(")
		r.column(value.Column)
		r.write(") - make_interval(secs => ")
		r.bind(value.Seconds)
		r.write(") FROM ", table, ")")
	case MySQL:
		r.write("(SELECT DATE_SUB(max(")
		r.column(value.Column)
		r.write("), INTERVAL ")
		r.bind(value.Seconds)
		r.write(" SECOND) FROM ", table, ")")
	case SQLServer:
		r.write("(SELECT DATEADD(second, ")
		r.bind(-value.Seconds)
		r.write(", max(")
		r.column(value.Column)
		r.write(")) FROM ", table, ")")
	default:
		r.write("(SELECT datetime(max(")
		r.column(value.Column)
		r.write("), ")
		r.bind(fmt.Sprintf("-%d seconds", value.Seconds))
		r.write(") FROM ", table, ")")
	}
}

func (r *renderer) in(pred In) {
	if len(pred.Values) == 0 {
		if pred.Negated {
			r.write("1 = 1")
		} else {
			r.write("1 = 0")
		}

		return
	}

	r.column(pred.Column)

	if pred.Negated {
		r.write(" NOT IN (")
	} else {
		r.write(" IN (")
	}

	for i, value := range pred.Values {
		if i > 0 {
			r.write(", ")
		}

		r.bind(value)
	}

	r.write(")")
}

// matchOperand writes the string the pattern is matched against.
func (r *renderer) matchOperand(pred Match) {
	switch {
	case pred.Prefix == "":
		r.column(pred.Column)
	case r.dialect == MySQL:
		r.write("CONCAT(")
		r.bind(pred.Prefix)
		r.write(", ")
		r.column(pred.Column)
		r.write(")")
	default:
		r.write("(")
		r.bind(pred.Prefix)
		r.write(" || ")
		r.column(pred.Column)
		r.write(")")
	}
}

func (r *renderer) match(pred Match) error {
	switch r.dialect {
	case Postgres:
		r.matchOperand(pred)
		r.write(" ~ ")
		r.bind(pred.Pattern)
	case MySQL:
		r.matchOperand(pred)
		r.write(" REGEXP ")
		r.bind(pred.Pattern)
	case SQLServer:
		return fmt.Errorf("regular expression match on %s: %w", pred.Column, ErrUnsupported)
	default:
		r.write("matches(")
		r.bind(pred.Pattern)
		r.write(", ")
		r.matchOperand(pred)
		r.write(")")
	}

	return nil
}

func (r *renderer) subquery(sub Subquery) error {
	r.write("SELECT ")
	r.column(sub.Select)
	r.write(" FROM ")

	for i, table := range sub.From {
		if i > 0 {
			r.write(", ")
		}

		r.write(r.quote(string(table)))
	}

	if sub.Where == nil {
		return nil
	}

	r.write(" WHERE ")

	return r.predicate(sub.Where)
}
