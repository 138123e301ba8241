package translate

import (
	"regexp"
	"strings"

	"github.com/storyq/storyq/pkg/query/parser"
	"github.com/storyq/storyq/pkg/query/predicate"
)

const (
	selfUser       = "self"
	patternMarker  = "^"
	branchRefsHead = "refs/heads/"

	statusMerged    = "MERGED"
	statusAbandoned = "ABANDONED"
	statusSubmitted = "SUBMITTED"
)

// userMatches resolves a user argument: `self` is the context identity,
// anything else may be a username, an email address or a full name.
func (t *Translator) userMatches(user string) predicate.Predicate {
	if user == selfUser {
		return predicate.Eq(predicate.UserUsername, t.ctx.Username)
	}

	return predicate.AnyOf(
		predicate.Eq(predicate.UserUsername, user),
		predicate.Eq(predicate.UserEmail, user),
		predicate.Eq(predicate.UserName, user),
	)
}

// matchOrEqual is a regular expression match when value starts with `^`,
// and literal equality otherwise.
func matchOrEqual(term parser.Term, column predicate.Column, value string) (predicate.Predicate, error) {
	if !strings.HasPrefix(value, patternMarker) {
		return predicate.Eq(column, value), nil
	}

	if err := checkPattern(term, value); err != nil {
		return nil, err
	}

	return predicate.Match{Column: column, Pattern: value}, nil
}

func checkPattern(term parser.Term, pattern string) error {
	if _, err := regexp.Compile(pattern); err != nil {
		return parser.NewUnsupportedValueError(term.Kind.String(), pattern, term.Pos, "invalid pattern: %v", err)
	}

	return nil
}

func (t *Translator) reviewer(term parser.Term) predicate.Predicate {
	var user predicate.Predicate
	if term.Number != nil {
		user = predicate.Eq(predicate.UserID, *term.Number)
	} else {
		user = t.userMatches(*term.String)
	}

	return predicate.StoryIn(predicate.ApprovalStoryKey,
		[]predicate.Table{predicate.Approvals, predicate.Users},
		approvalUser(), user)
}

func approvalUser() predicate.Predicate {
	return predicate.Eq(predicate.ApprovalUserKey, predicate.UserKey)
}

func ref(term parser.Term) (predicate.Predicate, error) {
	value := *term.String
	if !strings.HasPrefix(value, patternMarker) {
		return predicate.Eq(predicate.StoryBranch, strings.TrimPrefix(value, branchRefsHead)), nil
	}

	if err := checkPattern(term, value); err != nil {
		return nil, err
	}

	return predicate.Match{Column: predicate.StoryBranch, Pattern: value, Prefix: branchRefsHead}, nil
}

func comment(value string) predicate.Predicate {
	return predicate.AnyOf(
		predicate.StoryIn(predicate.RevisionStoryKey, []predicate.Table{predicate.Revisions},
			predicate.Eq(predicate.RevisionMessage, value)),
		predicate.StoryIn(predicate.RevisionStoryKey, []predicate.Table{predicate.Revisions, predicate.Comments},
			predicate.Eq(predicate.CommentRevisionKey, predicate.RevisionKey),
			predicate.Eq(predicate.CommentMessage, value)),
	)
}

func has(term parser.Term) (predicate.Predicate, error) {
	switch value := *term.String; value {
	case "draft":
		return predicate.StoryIn(predicate.RevisionStoryKey, []predicate.Table{predicate.Revisions, predicate.Messages},
			predicate.Eq(predicate.MessageRevisionKey, predicate.RevisionKey),
			predicate.Eq(predicate.MessageDraft, true)), nil
	default:
		return nil, parser.NewUnsupportedValueError(term.Kind.String(), value, term.Pos, "")
	}
}

//nolint:cyclop
func (t *Translator) is(term parser.Term) (predicate.Predicate, error) {
	switch value := *term.String; value {
	case "reviewed":
		return predicate.StoryIn(predicate.ApprovalStoryKey, []predicate.Table{predicate.Approvals},
			predicate.Compare{Column: predicate.ApprovalValue, Operator: predicate.NotEquals, Value: int64(0)}), nil
	case "open", "closed":
		return status(value), nil
	case "submitted":
		return predicate.Eq(predicate.StoryStatus, statusSubmitted), nil
	case "merged":
		return predicate.Eq(predicate.StoryStatus, statusMerged), nil
	case "abandoned":
		return predicate.Eq(predicate.StoryStatus, statusAbandoned), nil
	case "owner":
		return t.userMatches(selfUser), nil
	case "starred":
		return predicate.Eq(predicate.StoryStarred, true), nil
	case "held":
		return predicate.Eq(predicate.StoryHeld, true), nil
	case "reviewer":
		return predicate.StoryIn(predicate.ApprovalStoryKey,
			[]predicate.Table{predicate.Approvals, predicate.Users},
			approvalUser(), t.userMatches(selfUser)), nil
	case "watched":
		return predicate.Eq(predicate.ProjectSubscribed, true), nil
	default:
		return nil, parser.NewUnsupportedValueError(term.Kind.String(), value, term.Pos, "")
	}
}

// status maps the open and closed pseudo-statuses onto sets of stored
// statuses; any other value is compared as is.
func status(value string) predicate.Predicate {
	closed := []any{statusMerged, statusAbandoned}

	switch value {
	case "open":
		return predicate.In{Column: predicate.StoryStatus, Values: closed, Negated: true}
	case "closed":
		return predicate.In{Column: predicate.StoryStatus, Values: closed}
	default:
		return predicate.Eq(predicate.StoryStatus, value)
	}
}

func file(term parser.Term) (predicate.Predicate, error) {
	path, err := matchOrEqual(term, predicate.FilePath, *term.String)
	if err != nil {
		return nil, err
	}

	oldPath, err := matchOrEqual(term, predicate.FileOldPath, *term.String)
	if err != nil {
		return nil, err
	}

	return predicate.AllOf(
		predicate.AnyOf(path, oldPath),
		predicate.NotNull{Column: predicate.FileStatus},
	), nil
}
