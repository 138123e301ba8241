package lexer

import (
	"regexp"
	"strings"
)

type regexPattern struct {
	regex   *regexp.Regexp
	handler regexHandler
}

type lexer struct {
	Tokens []Token
	source string
	pos    int
}

// The pattern table is immutable and shared by every Tokenize call.
// Order matters: the first pattern matching at the current position wins.
//
//nolint:gochecknoglobals
var patterns = []regexPattern{
	{regexp.MustCompile(`^\s+`), skipHandler},
	{regexp.MustCompile(`^[a-zA-Z_][-a-zA-Z_]*:`), operatorHandler},
	{regexp.MustCompile(`^'((?:[^\\']|\\.)*)'`), stringHandler(SString)},
	{regexp.MustCompile(`^"((?:[^\\"]|\\.)*)"`), stringHandler(DString)},
	{regexp.MustCompile(`^["']`), illegalHandler},
	{regexp.MustCompile(`(?i)^and\b`), defaultHandler(And)},
	{regexp.MustCompile(`(?i)^or\b`), defaultHandler(Or)},
	{regexp.MustCompile(`(?i)^not\b`), defaultHandler(Not)},
	{regexp.MustCompile(`^[0-9]+`), defaultHandler(Number)},
	{regexp.MustCompile(`^[^\s()!\-][^\s()!]*`), defaultHandler(UString)},
	{regexp.MustCompile(`^[-!]`), defaultHandler(Neg)},
	{regexp.MustCompile(`^\(`), defaultHandler(OpenParen)},
	{regexp.MustCompile(`^\)`), defaultHandler(CloseParen)},
}

// Tokenize splits a search string into tokens. It never fails: input it
// cannot classify becomes a single Illegal token holding the rest of the
// source, and the parser turns that into a positioned syntax error.
// The returned slice always ends with an EOF token.
func Tokenize(source string) []Token {
	lex := &lexer{
		source: source,
		Tokens: make([]Token, 0),
	}

	for !lex.atEOF() {
		matched := false

		for _, pattern := range patterns {
			loc := pattern.regex.FindStringSubmatchIndex(lex.remainder())
			if loc != nil {
				pattern.handler(lex, loc)

				matched = true

				break // Exit the loop after the first match
			}
		}

		if !matched {
			illegalHandler(lex, []int{0, 1})
		}
	}

	lex.push(newToken(EOF, "EOF", len(source), len(source)))

	return lex.Tokens
}

func (lex *lexer) advanceN(n int) {
	lex.pos += n
}

func (lex *lexer) remainder() string {
	return lex.source[lex.pos:]
}

func (lex *lexer) push(token Token) {
	lex.Tokens = append(lex.Tokens, token)
}

func (lex *lexer) atEOF() bool {
	return lex.pos >= len(lex.source)
}

// regexHandler consumes a match. loc is the submatch index slice relative to
// the lexer's remainder.
type regexHandler func(lex *lexer, loc []int)

// Created a default handler which will simply create a token with the matched contents.
// This handler is used with most simple tokens.
func defaultHandler(kind TokenKind) regexHandler {
	return func(lex *lexer, loc []int) {
		match := lex.remainder()[:loc[1]]
		lex.push(newToken(kind, match, lex.pos, lex.pos+loc[1]))
		lex.advanceN(loc[1])
	}
}

func operatorHandler(lex *lexer, loc []int) {
	match := lex.remainder()[:loc[1]]

	kind, found := operatorLu[strings.ToLower(match[:len(match)-1])]
	if !found {
		kind = Op
	}

	lex.push(newToken(kind, match, lex.pos, lex.pos+loc[1]))
	lex.advanceN(loc[1])
}

func stringHandler(kind TokenKind) regexHandler {
	return func(lex *lexer, loc []int) {
		content := lex.remainder()[loc[2]:loc[3]]
		lex.push(newToken(kind, unescape(content), lex.pos, lex.pos+loc[1]))
		lex.advanceN(loc[1])
	}
}

// illegalHandler swallows the rest of the input; nothing after an
// unclassifiable character can be tokenized reliably.
func illegalHandler(lex *lexer, _ []int) {
	lex.push(newToken(Illegal, lex.remainder(), lex.pos, len(lex.source)))
	lex.pos = len(lex.source)
}

func skipHandler(lex *lexer, loc []int) {
	lex.advanceN(loc[1])
}

// unescape resolves \\, \' and \" inside a quoted string. Other backslash
// sequences are kept verbatim.
func unescape(content string) string {
	if !strings.Contains(content, `\`) {
		return content
	}

	var out strings.Builder

	out.Grow(len(content))

	for i := 0; i < len(content); i++ {
		if content[i] == '\\' && i+1 < len(content) {
			switch next := content[i+1]; next {
			case '\\', '\'', '"':
				out.WriteByte(next)
				i++

				continue
			}
		}

		out.WriteByte(content[i])
	}

	return out.String()
}
