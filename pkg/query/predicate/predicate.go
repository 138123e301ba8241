// Package predicate holds the boolean condition trees search strings compile
// to, and renders them as parameterized SQL for the story cache.
package predicate

// Predicate is a boolean condition over the story cache. The set of
// implementations is closed to this package so renderers can switch over it.
type Predicate interface {
	predicateNode()
}

// True always holds.
type True struct{}

// And holds when every operand holds.
type And struct {
	Predicates []Predicate
}

// Or holds when any operand holds.
type Or struct {
	Predicates []Predicate
}

// Not inverts its operand.
type Not struct {
	Predicate Predicate
}

type OperatorKind int

const (
	Equals OperatorKind = iota
	NotEquals
	Less
	LessEquals
	Greater
	GreaterEquals
)

func (o OperatorKind) String() string {
	switch o {
	case Equals:
		return "="
	case NotEquals:
		return "!="
	case Less:
		return "<"
	case LessEquals:
		return "<="
	case Greater:
		return ">"
	case GreaterEquals:
		return ">="
	default:
		return "?"
	}
}

// Compare is `Column Operator Value`. Value is a literal, another Column, or
// a MaxOffset.
type Compare struct {
	Column   Column
	Operator OperatorKind
	Value    any
}

// MaxOffset is the cache-wide maximum of Column minus Seconds.
type MaxOffset struct {
	Column  Column
	Seconds int64
}

// In is set membership against literal values.
type In struct {
	Column  Column
	Values  []any
	Negated bool
}

// Like is a SQL LIKE pattern match.
type Like struct {
	Column  Column
	Pattern string
}

// Match is a regular expression match of Pattern against Prefix+Column.
type Match struct {
	Column  Column
	Pattern string
	Prefix  string
}

// NotNull holds when Column has a value.
type NotNull struct {
	Column Column
}

// Member holds when Column is in the set of values Subquery selects.
type Member struct {
	Column   Column
	Subquery Subquery
}

// Subquery selects one column from the cross product of From filtered by
// Where. It does not correlate with the enclosing query.
type Subquery struct {
	Select Column
	From   []Table
	Where  Predicate
}

func (True) predicateNode()    {}
func (And) predicateNode()     {}
func (Or) predicateNode()      {}
func (Not) predicateNode()     {}
func (Compare) predicateNode() {}
func (In) predicateNode()      {}
func (Like) predicateNode()    {}
func (Match) predicateNode()   {}
func (NotNull) predicateNode() {}
func (Member) predicateNode()  {}

// ---------------
// Composition
// ---------------

// AllOf conjoins predicates, flattening nested conjunctions. A single
// operand is returned as is.
func AllOf(predicates ...Predicate) Predicate {
	flat := make([]Predicate, 0, len(predicates))

	for _, p := range predicates {
		if and, ok := p.(And); ok {
			flat = append(flat, and.Predicates...)
		} else {
			flat = append(flat, p)
		}
	}

	if len(flat) == 1 {
		return flat[0]
	}

	return And{Predicates: flat}
}

// AnyOf disjoins predicates, flattening nested disjunctions. A single
// operand is returned as is.
func AnyOf(predicates ...Predicate) Predicate {
	flat := make([]Predicate, 0, len(predicates))

	for _, p := range predicates {
		if or, ok := p.(Or); ok {
			flat = append(flat, or.Predicates...)
		} else {
			flat = append(flat, p)
		}
	}

	if len(flat) == 1 {
		return flat[0]
	}

	return Or{Predicates: flat}
}

func Negate(p Predicate) Predicate {
	return Not{Predicate: p}
}

func Eq(column Column, value any) Compare {
	return Compare{Column: column, Operator: Equals, Value: value}
}

// StoryIn builds the membership of Story.key in the story keys selected by
// a subquery over the given tables.
func StoryIn(selectColumn Column, from []Table, where ...Predicate) Member {
	return Member{
		Column: StoryKey,
		Subquery: Subquery{
			Select: selectColumn,
			From:   from,
			Where:  AllOf(where...),
		},
	}
}
