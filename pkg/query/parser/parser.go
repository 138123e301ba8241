package parser

import (
	"strconv"

	"github.com/storyq/storyq/pkg/query/lexer"
)

/*

Grammar:

	expression   := list_expr | paren_expr | boolean_expr | negative_expr | term
	list_expr    := expression expression
	paren_expr   := '(' expression ')'
	boolean_expr := expression AND expression | expression OR expression
	negative_expr:= NOT expression | NEG expression
	term         := OPERATOR argument(s)

Negation binds tighter than the binary forms. Juxtaposition, AND and OR
share one tier and fold left to right, so `a OR b c` is `(a OR b) AND c`.

*/

type argForm int

const (
	numberArg argForm = iota
	stringArg
	numberStringArg
	stringOrNumberArg
)

type termSpec struct {
	kind TermKind
	form argForm
}

//nolint:gochecknoglobals
var termSpecs = map[lexer.TokenKind]termSpec{
	lexer.OpAge:          {AgeTerm, numberStringArg},
	lexer.OpRecentlySeen: {RecentlySeenTerm, numberStringArg},
	lexer.OpStory:        {StoryTerm, numberArg},
	lexer.OpOwner:        {OwnerTerm, stringArg},
	lexer.OpReviewer:     {ReviewerTerm, stringOrNumberArg},
	lexer.OpCommit:       {CommitTerm, stringArg},
	lexer.OpProject:      {ProjectTerm, stringArg},
	lexer.OpProjects:     {ProjectsTerm, stringArg},
	lexer.OpProjectKey:   {ProjectKeyTerm, numberArg},
	lexer.OpBranch:       {BranchTerm, stringArg},
	lexer.OpTag:          {TagTerm, stringArg},
	lexer.OpRef:          {RefTerm, stringArg},
	lexer.OpLabel:        {LabelTerm, stringArg},
	lexer.OpMessage:      {MessageTerm, stringArg},
	lexer.OpComment:      {CommentTerm, stringArg},
	lexer.OpHas:          {HasTerm, stringArg},
	lexer.OpIs:           {IsTerm, stringArg},
	lexer.OpStatus:       {StatusTerm, stringArg},
	lexer.OpFile:         {FileTerm, stringArg},
	lexer.OpLimit:        {LimitTerm, numberArg},
}

type parser struct {
	tokens []lexer.Token
	source string
	pos    int
}

func newParser(tokens []lexer.Token, source string) *parser {
	return &parser{
		tokens: tokens,
		source: source,
		pos:    0,
	}
}

func (p *parser) currentToken() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.EOF, Pos: len(p.source), End: len(p.source)}
	}

	return p.tokens[p.pos]
}

func (p *parser) currentTokenKind() lexer.TokenKind {
	return p.currentToken().Kind
}

func (p *parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return lexer.Token{Kind: lexer.EOF, Pos: len(p.source), End: len(p.source)}
	}

	return p.tokens[p.pos+1]
}

func (p *parser) advance() lexer.Token {
	tk := p.currentToken()
	p.pos++

	return tk
}

// unexpected reports the current token: an EOF error at the end of input,
// otherwise a syntax error carrying the unconsumed suffix.
func (p *parser) unexpected() *Error {
	token := p.currentToken()
	if token.Kind == lexer.EOF {
		return NewEOFError(p.source)
	}

	return NewSyntaxError(p.source, token.Pos)
}

func (p *parser) parseExpression() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.currentTokenKind() {
		case lexer.EOF, lexer.CloseParen:
			return left, nil
		case lexer.And, lexer.Or:
			connective := p.advance()

			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}

			left = BooleanExpr{Left: left, Connective: connective, Right: right}
		default:
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}

			left = ListExpr{Left: left, Right: right}
		}
	}
}

func (p *parser) parseUnary() (Node, error) {
	token := p.currentToken()

	switch {
	case token.Kind == lexer.Not || token.Kind == lexer.Neg:
		p.advance() // Consume the negation

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return NegativeExpr{Operator: token, Operand: operand}, nil
	case token.Kind == lexer.OpenParen:
		p.advance() // Consume the OPEN_PAREN

		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if p.currentTokenKind() != lexer.CloseParen {
			return nil, p.unexpected()
		}

		p.advance() // Consume the CLOSE_PAREN

		return ParenExpr{Inner: inner}, nil
	case token.IsOperator():
		return p.parseTerm()
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseTerm() (Node, error) {
	operator := p.advance()

	spec, ok := termSpecs[operator.Kind]
	if !ok {
		return nil, NewBareOperatorError(p.source, operator.Value, operator.Pos)
	}

	term := Term{Kind: spec.kind, Pos: operator.Pos}

	switch spec.form {
	case numberArg:
		number, err := p.parseNumber(operator)
		if err != nil {
			return nil, err
		}

		term.Number = &number
	case stringArg:
		value, err := p.parseString(operator)
		if err != nil {
			return nil, err
		}

		term.String = &value
	case numberStringArg:
		number, err := p.parseNumber(operator)
		if err != nil {
			return nil, err
		}

		value, err := p.parseString(operator)
		if err != nil {
			return nil, err
		}

		term.Number = &number
		term.String = &value
	case stringOrNumberArg:
		if p.currentTokenKind() == lexer.Number && !p.gluesToNext() {
			number, err := p.parseNumber(operator)
			if err != nil {
				return nil, err
			}

			term.Number = &number
		} else {
			value, err := p.parseString(operator)
			if err != nil {
				return nil, err
			}

			term.String = &value
		}
	}

	return term, nil
}

// missingArgument is raised when an operator is not followed by the
// argument form it requires.
func (p *parser) missingArgument(operator lexer.Token) *Error {
	if kind := p.currentTokenKind(); kind == lexer.EOF || kind == lexer.Illegal {
		return p.unexpected()
	}

	return NewBareOperatorError(p.source, operator.Value, operator.Pos)
}

func (p *parser) parseNumber(operator lexer.Token) (int64, error) {
	if p.currentTokenKind() != lexer.Number {
		return 0, p.missingArgument(operator)
	}

	token := p.advance()

	number, err := strconv.ParseInt(token.Value, 10, 64)
	if err != nil {
		return 0, NewSyntaxError(p.source, token.Pos)
	}

	return number, nil
}

// gluesToNext reports whether the current NUMBER token is immediately
// followed by an unquoted literal, as in `1.0` or `0af3`.
func (p *parser) gluesToNext() bool {
	next := p.peek()

	return next.Kind == lexer.UString && next.Pos == p.currentToken().End
}

func (p *parser) parseString(operator lexer.Token) (string, error) {
	token := p.currentToken()

	switch {
	case token.IsString():
		p.advance()

		return token.Value, nil
	case token.Kind == lexer.Number:
		glue := p.gluesToNext()
		p.advance()

		if glue {
			return token.Value + p.advance().Value, nil
		}

		return token.Value, nil
	default:
		return "", p.missingArgument(operator)
	}
}

func (p *parser) parse() (Node, error) {
	if p.currentTokenKind() == lexer.EOF {
		return nil, NewEOFError(p.source)
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	// parseExpression only stops early on an unbalanced ')'.
	if p.currentTokenKind() != lexer.EOF {
		return nil, p.unexpected()
	}

	return expr, nil
}

// Parse reduces the token stream of source to a single grammar node.
func Parse(tokens []lexer.Token, source string) (Node, error) {
	parser := newParser(tokens, source)

	return parser.parse()
}
