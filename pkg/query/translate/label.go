package translate

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/storyq/storyq/pkg/query/parser"
	"github.com/storyq/storyq/pkg/query/predicate"
)

const labelShape = "expected <name>[<op><value>][,[user=]<user>]"

// Vote is a parsed label argument such as `Code-Review>=1,user=self`.
type Vote struct {
	Label    string
	Operator predicate.OperatorKind
	// Value is nil when the argument names the label only.
	Value *int64
	// User is empty when no user restriction was given.
	User string
}

// ParseVote scans a label argument. It reports false when the argument does
// not have the shape `<name>[<op><value>][,[user=]<user>]`.
func ParseVote(arg string) (Vote, bool) {
	head, tail, hasUser := strings.Cut(arg, ",")

	var vote Vote

	if hasUser {
		user, ok := parseVoteUser(tail)
		if !ok {
			return Vote{}, false
		}

		vote.User = user
	}

	// Prefer the longest name that leaves a valid `<op><value>` suffix, so a
	// trailing digit belongs to the value unless the name needs it.
	for split := len(head) - 1; split > 0; split-- {
		if !isLabelName(head[:split]) {
			continue
		}

		if operator, value, ok := parseVoteValue(head[split:]); ok {
			vote.Label = head[:split]
			vote.Operator = operator
			vote.Value = &value

			return vote, true
		}
	}

	if !isLabelName(head) {
		return Vote{}, false
	}

	vote.Label = head
	vote.Operator = predicate.Equals

	return vote, true
}

func isLabelChar(c byte) bool {
	return c == '-' || c == '_' || isDigit(c) || isLetter(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isLabelName accepts label characters ending in a letter, or in a digit
// that does not directly follow a sign.
func isLabelName(name string) bool {
	if name == "" {
		return false
	}

	for i := 0; i < len(name); i++ {
		if !isLabelChar(name[i]) {
			return false
		}
	}

	last := name[len(name)-1]

	switch {
	case isLetter(last):
		return true
	case isDigit(last):
		return len(name) == 1 || (name[len(name)-2] != '-' && name[len(name)-2] != '+')
	default:
		return false
	}
}

// parseVoteValue scans `[<>]?=?[-+]?[0-9]+`. Only `=`, `>=` and `<=` compare
// as written; a bare `<` or `>` compares for equality.
func parseVoteValue(s string) (predicate.OperatorKind, int64, bool) {
	i := 0
	if i < len(s) && (s[i] == '<' || s[i] == '>') {
		i++
	}

	if i < len(s) && s[i] == '=' {
		i++
	}

	operator := predicate.Equals

	switch s[:i] {
	case ">=":
		operator = predicate.GreaterEquals
	case "<=":
		operator = predicate.LessEquals
	}

	digits := s[i:]
	if digits != "" && (digits[0] == '-' || digits[0] == '+') {
		digits = digits[1:]
	}

	if digits == "" {
		return 0, 0, false
	}

	for j := 0; j < len(digits); j++ {
		if !isDigit(digits[j]) {
			return 0, 0, false
		}
	}

	value, err := strconv.ParseInt(s[i:], 10, 64)
	if err != nil {
		return 0, 0, false
	}

	return operator, value, true
}

// parseVoteUser takes the user after the comma, up to the first space. A
// `user=` prefix is dropped unless nothing would remain after it.
func parseVoteUser(s string) (string, bool) {
	if rest, ok := strings.CutPrefix(s, "user="); ok {
		if user := leadingField(rest); user != "" {
			return user, true
		}
	}

	user := leadingField(s)

	return user, user != ""
}

func leadingField(s string) string {
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i]
	}

	return s
}

func (t *Translator) label(term parser.Term) (predicate.Predicate, error) {
	vote, ok := ParseVote(*term.String)
	if !ok {
		return nil, parser.NewUnsupportedValueError(term.Kind.String(), *term.String, term.Pos, labelShape)
	}

	from := []predicate.Table{predicate.Approvals}
	where := []predicate.Predicate{predicate.Eq(predicate.ApprovalCategory, vote.Label)}

	if vote.Value != nil {
		where = append(where, predicate.Compare{
			Column:   predicate.ApprovalValue,
			Operator: vote.Operator,
			Value:    *vote.Value,
		})
	}

	if vote.User != "" {
		from = append(from, predicate.Users)
		where = append(where, approvalUser(), t.userMatches(vote.User))
	}

	return predicate.StoryIn(predicate.ApprovalStoryKey, from, where...), nil
}
