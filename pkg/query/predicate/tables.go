package predicate

import "sort"

// Tables returns the tables a predicate references directly, sorted by
// name. Tables only referenced inside a Member subquery are not included:
// the subquery brings its own FROM list.
func Tables(p Predicate) []Table {
	seen := make(map[Table]struct{})
	collectTables(p, seen)

	tables := make([]Table, 0, len(seen))
	for table := range seen {
		tables = append(tables, table)
	}

	sort.Slice(tables, func(i, j int) bool { return tables[i] < tables[j] })

	return tables
}

func collectTables(p Predicate, seen map[Table]struct{}) {
	switch pred := p.(type) {
	case True:
	case And:
		for _, operand := range pred.Predicates {
			collectTables(operand, seen)
		}
	case Or:
		for _, operand := range pred.Predicates {
			collectTables(operand, seen)
		}
	case Not:
		collectTables(pred.Predicate, seen)
	case Compare:
		seen[pred.Column.Table] = struct{}{}
		if column, ok := pred.Value.(Column); ok {
			seen[column.Table] = struct{}{}
		}
	case In:
		seen[pred.Column.Table] = struct{}{}
	case Like:
		seen[pred.Column.Table] = struct{}{}
	case Match:
		seen[pred.Column.Table] = struct{}{}
	case NotNull:
		seen[pred.Column.Table] = struct{}{}
	case Member:
		seen[pred.Column.Table] = struct{}{}
	}
}
