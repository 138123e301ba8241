package query

import (
	"errors"
	"fmt"

	"github.com/storyq/storyq/pkg/query/predicate"
)

var ErrUnscopedTable = errors.New("table cannot be related to stories")

// Scoped is a predicate together with the FROM list and join conditions
// that relate every table it references directly to stories.
type Scoped struct {
	Where predicate.Predicate
	From  []predicate.Table
}

type join struct {
	tables     []predicate.Table
	conditions []predicate.Predicate
}

//nolint:gochecknoglobals
var joins = map[predicate.Table]join{
	predicate.Stories: {},
	predicate.Users: {
		tables: []predicate.Table{predicate.Users},
		conditions: []predicate.Predicate{
			predicate.Eq(predicate.StoryUserKey, predicate.UserKey),
		},
	},
	predicate.Projects: {
		tables: []predicate.Table{predicate.Tasks, predicate.Projects},
		conditions: []predicate.Predicate{
			predicate.Eq(predicate.TaskStoryKey, predicate.StoryKey),
			predicate.Eq(predicate.TaskProjectKey, predicate.ProjectKey),
		},
	},
	predicate.Tags: {
		tables: []predicate.Table{predicate.StoryTags, predicate.Tags},
		conditions: []predicate.Predicate{
			predicate.Eq(predicate.StoryTagStoryKey, predicate.StoryKey),
			predicate.Eq(predicate.StoryTagTagKey, predicate.TagKey),
		},
	},
	predicate.Files: {
		tables: []predicate.Table{predicate.Revisions, predicate.Files},
		conditions: []predicate.Predicate{
			predicate.Eq(predicate.FileRevisionKey, predicate.RevisionKey),
			predicate.Eq(predicate.RevisionStoryKey, predicate.StoryKey),
		},
	},
}

// Scope completes p with the joins its direct table references need.
// Membership subqueries are self-contained and need none.
func Scope(p predicate.Predicate) (Scoped, error) {
	from := []predicate.Table{predicate.Stories}
	seen := map[predicate.Table]bool{predicate.Stories: true}
	where := []predicate.Predicate{p}

	for _, table := range predicate.Tables(p) {
		j, ok := joins[table]
		if !ok {
			return Scoped{}, fmt.Errorf("%w: %s", ErrUnscopedTable, table)
		}

		for _, t := range j.tables {
			if !seen[t] {
				seen[t] = true
				from = append(from, t)
			}
		}

		where = append(where, j.conditions...)
	}

	return Scoped{Where: predicate.AllOf(where...), From: from}, nil
}

// SQL renders the selection of matching story keys.
func (s Scoped) SQL(dialect predicate.Dialect) (string, []any, error) {
	return predicate.RenderSelect(predicate.StoryKey, s.From, s.Where, dialect)
}

// Filter is the membership of stories.key in the scoped selection. It can
// be applied to a query over stories without duplicating rows.
func (s Scoped) Filter() predicate.Predicate {
	return predicate.Member{
		Column: predicate.StoryKey,
		Subquery: predicate.Subquery{
			Select: predicate.StoryKey,
			From:   s.From,
			Where:  s.Where,
		},
	}
}
