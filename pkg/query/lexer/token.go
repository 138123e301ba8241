package lexer

import "fmt"

type TokenKind int

const (
	EOF TokenKind = iota
	// Illegal marks input the lexer could not classify. The parser reports it.
	Illegal

	// Connectives.
	And
	Or
	Not
	Neg

	// Grouping.
	OpenParen
	CloseParen

	// Literals.
	Number
	SString
	DString
	UString

	// Op is a `key:` prefix that names no known term.
	Op

	// Term operators.
	OpAge
	OpRecentlySeen
	OpStory
	OpOwner
	OpReviewer
	OpCommit
	OpProject
	OpProjects
	OpProjectKey
	OpBranch
	OpTag
	OpRef
	OpLabel
	OpMessage
	OpComment
	OpHas
	OpIs
	OpStatus
	OpFile
	OpLimit
)

//nolint:gochecknoglobals
var operatorLu = map[string]TokenKind{
	"age":          OpAge,
	"recentlyseen": OpRecentlySeen,
	"story":        OpStory,
	"owner":        OpOwner,
	"reviewer":     OpReviewer,
	"commit":       OpCommit,
	"project":      OpProject,
	"projects":     OpProjects,
	"_project_key": OpProjectKey,
	"project_key":  OpProjectKey,
	"branch":       OpBranch,
	"tag":          OpTag,
	"ref":          OpRef,
	"label":        OpLabel,
	"message":      OpMessage,
	"comment":      OpComment,
	"has":          OpHas,
	"is":           OpIs,
	"status":       OpStatus,
	"file":         OpFile,
	"limit":        OpLimit,
}

// Token is one lexeme of a search string. Pos and End are byte offsets into
// the source; for quoted strings Value holds the unescaped content.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   int
	End   int
}

func (token Token) Debug() string {
	switch token.Kind {
	case EOF, OpenParen, CloseParen:
		return TokenKindString(token.Kind)
	default:
		return fmt.Sprintf("%s(%s)", TokenKindString(token.Kind), token.Value)
	}
}

// IsOperator reports whether the token is a `key:` prefix, known or not.
func (token Token) IsOperator() bool {
	return token.Kind >= Op
}

// IsString reports whether the token is one of the three string literal kinds.
func (token Token) IsString() bool {
	return token.Kind == SString || token.Kind == DString || token.Kind == UString
}

//nolint:funlen,cyclop
func TokenKindString(kind TokenKind) string {
	switch kind {
	case EOF:
		return "eof"
	case Illegal:
		return "illegal"
	case And:
		return "and"
	case Or:
		return "or"
	case Not:
		return "not"
	case Neg:
		return "neg"
	case OpenParen:
		return "open_paren"
	case CloseParen:
		return "close_paren"
	case Number:
		return "number"
	case SString:
		return "sstring"
	case DString:
		return "dstring"
	case UString:
		return "ustring"
	case Op:
		return "op"
	case OpAge:
		return "op_age"
	case OpRecentlySeen:
		return "op_recentlyseen"
	case OpStory:
		return "op_story"
	case OpOwner:
		return "op_owner"
	case OpReviewer:
		return "op_reviewer"
	case OpCommit:
		return "op_commit"
	case OpProject:
		return "op_project"
	case OpProjects:
		return "op_projects"
	case OpProjectKey:
		return "op_project_key"
	case OpBranch:
		return "op_branch"
	case OpTag:
		return "op_tag"
	case OpRef:
		return "op_ref"
	case OpLabel:
		return "op_label"
	case OpMessage:
		return "op_message"
	case OpComment:
		return "op_comment"
	case OpHas:
		return "op_has"
	case OpIs:
		return "op_is"
	case OpStatus:
		return "op_status"
	case OpFile:
		return "op_file"
	case OpLimit:
		return "op_limit"
	default:
		return fmt.Sprintf("unknown(%d)", kind)
	}
}

func newToken(kind TokenKind, value string, pos, end int) Token {
	return Token{
		kind, value, pos, end,
	}
}
