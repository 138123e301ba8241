// Package translate turns a parsed search expression into a predicate over
// the story cache.
package translate

import (
	"fmt"
	"strings"
	"time"

	"github.com/storyq/storyq/pkg/query/parser"
	"github.com/storyq/storyq/pkg/query/predicate"
)

// Context binds the identity `self` resolves to.
type Context struct {
	Username string
}

// Translator holds the per-call state of one translation. It is not safe for
// concurrent use; build one per compile call.
type Translator struct {
	ctx Context
	now time.Time
}

func New(ctx Context, now time.Time) *Translator {
	return &Translator{
		ctx: ctx,
		now: now,
	}
}

// Translate converts node. Failures are returned as *parser.Error without
// the search string set.
func (t *Translator) Translate(node parser.Node) (predicate.Predicate, error) {
	switch expr := node.(type) {
	case parser.ListExpr:
		return t.conjoin(expr.Left, expr.Right, predicate.AllOf)
	case parser.BooleanExpr:
		switch strings.ToLower(expr.Connective.Value) {
		case "and":
			return t.conjoin(expr.Left, expr.Right, predicate.AllOf)
		case "or":
			return t.conjoin(expr.Left, expr.Right, predicate.AnyOf)
		default:
			return nil, parser.NewUnknownConnectiveError(expr.Connective.Value, expr.Connective.Pos)
		}
	case parser.NegativeExpr:
		operand, err := t.Translate(expr.Operand)
		if err != nil {
			return nil, err
		}

		return predicate.Negate(operand), nil
	case parser.ParenExpr:
		return t.Translate(expr.Inner)
	case parser.Term:
		return t.term(expr)
	default:
		return nil, fmt.Errorf("unknown expression type %T", node)
	}
}

func (t *Translator) conjoin(
	left, right parser.Node,
	combine func(...predicate.Predicate) predicate.Predicate,
) (predicate.Predicate, error) {
	l, err := t.Translate(left)
	if err != nil {
		return nil, err
	}

	r, err := t.Translate(right)
	if err != nil {
		return nil, err
	}

	return combine(l, r), nil
}

//nolint:cyclop
func (t *Translator) term(term parser.Term) (predicate.Predicate, error) {
	switch term.Kind {
	case parser.AgeTerm:
		return t.age(term)
	case parser.RecentlySeenTerm:
		return t.recentlySeen(term)
	case parser.StoryTerm:
		return predicate.Eq(predicate.StoryID, *term.Number), nil
	case parser.OwnerTerm:
		return t.userMatches(*term.String), nil
	case parser.ReviewerTerm:
		return t.reviewer(term), nil
	case parser.CommitTerm:
		return predicate.StoryIn(predicate.RevisionStoryKey, []predicate.Table{predicate.Revisions},
			predicate.Eq(predicate.RevisionCommit, *term.String)), nil
	case parser.ProjectTerm:
		return matchOrEqual(term, predicate.ProjectName, *term.String)
	case parser.ProjectsTerm:
		return predicate.Like{Column: predicate.ProjectName, Pattern: *term.String + "%"}, nil
	case parser.ProjectKeyTerm:
		return predicate.StoryIn(predicate.TaskStoryKey, []predicate.Table{predicate.Tasks},
			predicate.Eq(predicate.TaskProjectKey, *term.Number)), nil
	case parser.BranchTerm:
		return matchOrEqual(term, predicate.StoryBranch, *term.String)
	case parser.TagTerm:
		return matchOrEqual(term, predicate.TagName, *term.String)
	case parser.RefTerm:
		return ref(term)
	case parser.LabelTerm:
		return t.label(term)
	case parser.MessageTerm:
		return predicate.StoryIn(predicate.RevisionStoryKey, []predicate.Table{predicate.Revisions},
			predicate.Like{Column: predicate.RevisionMessage, Pattern: "%" + *term.String + "%"}), nil
	case parser.CommentTerm:
		return comment(*term.String), nil
	case parser.HasTerm:
		return has(term)
	case parser.IsTerm:
		return t.is(term)
	case parser.StatusTerm:
		return status(*term.String), nil
	case parser.FileTerm:
		return file(term)
	case parser.LimitTerm:
		// Limiting is applied by whoever executes the predicate.
		return predicate.True{}, nil
	default:
		return nil, &parser.Error{Kind: parser.KindBareOperator, Offset: term.Pos, Term: term.Kind.String() + ":"}
	}
}
