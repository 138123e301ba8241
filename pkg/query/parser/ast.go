package parser

import "github.com/storyq/storyq/pkg/query/lexer"

// Node is one reduction of the search grammar. The set of node types is
// closed; consumers switch over it.
type Node interface {
	node()
}

// ListExpr is two juxtaposed expressions: an implicit AND.
type ListExpr struct {
	Left  Node
	Right Node
}

func (ListExpr) node() {}

// BooleanExpr is `Left AND Right` or `Left OR Right`. The connective token is
// kept as written so the translator can reject anything else.
type BooleanExpr struct {
	Left       Node
	Connective lexer.Token
	Right      Node
}

func (BooleanExpr) node() {}

// NegativeExpr is `NOT Operand`, `-Operand` or `!Operand`.
type NegativeExpr struct {
	Operator lexer.Token
	Operand  Node
}

func (NegativeExpr) node() {}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Inner Node
}

func (ParenExpr) node() {}

// --------------------
// Terms
// --------------------

type TermKind int

const (
	AgeTerm TermKind = iota
	RecentlySeenTerm
	StoryTerm
	OwnerTerm
	ReviewerTerm
	CommitTerm
	ProjectTerm
	ProjectsTerm
	ProjectKeyTerm
	BranchTerm
	TagTerm
	RefTerm
	LabelTerm
	MessageTerm
	CommentTerm
	HasTerm
	IsTerm
	StatusTerm
	FileTerm
	LimitTerm
)

func (k TermKind) String() string {
	switch k {
	case AgeTerm:
		return "age"
	case RecentlySeenTerm:
		return "recentlyseen"
	case StoryTerm:
		return "story"
	case OwnerTerm:
		return "owner"
	case ReviewerTerm:
		return "reviewer"
	case CommitTerm:
		return "commit"
	case ProjectTerm:
		return "project"
	case ProjectsTerm:
		return "projects"
	case ProjectKeyTerm:
		return "project_key"
	case BranchTerm:
		return "branch"
	case TagTerm:
		return "tag"
	case RefTerm:
		return "ref"
	case LabelTerm:
		return "label"
	case MessageTerm:
		return "message"
	case CommentTerm:
		return "comment"
	case HasTerm:
		return "has"
	case IsTerm:
		return "is"
	case StatusTerm:
		return "status"
	case FileTerm:
		return "file"
	case LimitTerm:
		return "limit"
	default:
		return "unknown"
	}
}

// Term is `operator argument(s)`. Which of Number and String are set depends
// on the term's argument form; a reviewer term carries exactly one of them.
type Term struct {
	Kind   TermKind
	Pos    int
	Number *int64
	String *string
}

func (Term) node() {}
