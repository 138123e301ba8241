package parser_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/storyq/storyq/pkg/query/lexer"
	"github.com/storyq/storyq/pkg/query/parser"
	"github.com/storyq/storyq/pkg/utils"
)

type Sample struct {
	input    string
	expected parser.Node
}

func stringTerm(kind parser.TermKind, pos int, value string) parser.Term {
	return parser.Term{Kind: kind, Pos: pos, String: utils.PtrTo(value)}
}

//nolint:funlen
func TestQueries(t *testing.T) {
	samples := []Sample{
		{
			input:    "owner:self",
			expected: stringTerm(parser.OwnerTerm, 0, "self"),
		},
		{
			input: "owner:self status:open",
			expected: parser.ListExpr{
				Left:  stringTerm(parser.OwnerTerm, 0, "self"),
				Right: stringTerm(parser.StatusTerm, 11, "open"),
			},
		},
		{
			input: "owner:self AND status:open",
			expected: parser.BooleanExpr{
				Left:       stringTerm(parser.OwnerTerm, 0, "self"),
				Connective: lexer.Token{Kind: lexer.And, Value: "AND", Pos: 11, End: 14},
				Right:      stringTerm(parser.StatusTerm, 15, "open"),
			},
		},
		{
			input: "NOT status:open OR status:closed",
			expected: parser.BooleanExpr{
				Left: parser.NegativeExpr{
					Operator: lexer.Token{Kind: lexer.Not, Value: "NOT", Pos: 0, End: 3},
					Operand:  stringTerm(parser.StatusTerm, 4, "open"),
				},
				Connective: lexer.Token{Kind: lexer.Or, Value: "OR", Pos: 16, End: 18},
				Right:      stringTerm(parser.StatusTerm, 19, "closed"),
			},
		},
		{
			input: "is:open OR is:merged tag:x",
			expected: parser.ListExpr{
				Left: parser.BooleanExpr{
					Left:       stringTerm(parser.IsTerm, 0, "open"),
					Connective: lexer.Token{Kind: lexer.Or, Value: "OR", Pos: 8, End: 10},
					Right:      stringTerm(parser.IsTerm, 11, "merged"),
				},
				Right: stringTerm(parser.TagTerm, 21, "x"),
			},
		},
		{
			input: "-(tag:a or tag:b)",
			expected: parser.NegativeExpr{
				Operator: lexer.Token{Kind: lexer.Neg, Value: "-", Pos: 0, End: 1},
				Operand: parser.ParenExpr{
					Inner: parser.BooleanExpr{
						Left:       stringTerm(parser.TagTerm, 2, "a"),
						Connective: lexer.Token{Kind: lexer.Or, Value: "or", Pos: 8, End: 10},
						Right:      stringTerm(parser.TagTerm, 11, "b"),
					},
				},
			},
		},
		{
			input: "age:2h",
			expected: parser.Term{
				Kind: parser.AgeTerm, Pos: 0, Number: utils.PtrTo(int64(2)), String: utils.PtrTo("h"),
			},
		},
		{
			input: "recentlyseen:3 days",
			expected: parser.Term{
				Kind: parser.RecentlySeenTerm, Pos: 0, Number: utils.PtrTo(int64(3)), String: utils.PtrTo("days"),
			},
		},
		{
			input:    "reviewer:42",
			expected: parser.Term{Kind: parser.ReviewerTerm, Pos: 0, Number: utils.PtrTo(int64(42))},
		},
		{
			input:    "reviewer:jdoe",
			expected: stringTerm(parser.ReviewerTerm, 0, "jdoe"),
		},
		{
			input:    "reviewer:1abc",
			expected: stringTerm(parser.ReviewerTerm, 0, "1abc"),
		},
		{
			input:    "tag:1.0",
			expected: stringTerm(parser.TagTerm, 0, "1.0"),
		},
		{
			input:    "branch:2024",
			expected: stringTerm(parser.BranchTerm, 0, "2024"),
		},
		{
			input:    "_project_key:7",
			expected: parser.Term{Kind: parser.ProjectKeyTerm, Pos: 0, Number: utils.PtrTo(int64(7))},
		},
		{
			input:    "project:\"foo bar\"",
			expected: stringTerm(parser.ProjectTerm, 0, "foo bar"),
		},
	}

	for _, sample := range samples {
		t.Run(sample.input, func(t *testing.T) {
			ast, err := parser.Parse(lexer.Tokenize(sample.input), sample.input)
			if err != nil {
				t.Fatalf("error parsing: %s", err)
			}

			if !reflect.DeepEqual(ast, sample.expected) {
				t.Errorf("expected %#v, got %#v", sample.expected, ast)
			}
		})
	}
}

func TestInvalidSyntax(t *testing.T) {
	samples := []struct {
		input  string
		kind   parser.ErrorKind
		offset int
		eof    bool
	}{
		{input: "", kind: parser.KindSyntax, offset: 0, eof: true},
		{input: "   ", kind: parser.KindSyntax, offset: 3, eof: true},
		{input: "owner:", kind: parser.KindSyntax, offset: 6, eof: true},
		{input: "owner:self AND", kind: parser.KindSyntax, offset: 14, eof: true},
		{input: "(owner:self", kind: parser.KindSyntax, offset: 11, eof: true},
		{input: "age:2", kind: parser.KindSyntax, offset: 5, eof: true},
		{input: "owner:self)", kind: parser.KindSyntax, offset: 10},
		{input: "self", kind: parser.KindSyntax, offset: 0},
		{input: "owner:self bogus", kind: parser.KindSyntax, offset: 11},
		{input: "AND owner:self", kind: parser.KindSyntax, offset: 0},
		{input: "owner:self \"x", kind: parser.KindSyntax, offset: 11},
		{input: "project:'foo", kind: parser.KindSyntax, offset: 8},
		{input: "story:99999999999999999999", kind: parser.KindSyntax, offset: 6},
		{input: "foo:bar", kind: parser.KindBareOperator, offset: 0},
		{input: "status:open foo:", kind: parser.KindBareOperator, offset: 12},
		{input: "owner:(self)", kind: parser.KindBareOperator, offset: 0},
		{input: "story:abc", kind: parser.KindBareOperator, offset: 0},
		{input: "age:2 status:open", kind: parser.KindBareOperator, offset: 0},
	}

	for _, sample := range samples {
		t.Run(sample.input, func(t *testing.T) {
			_, err := parser.Parse(lexer.Tokenize(sample.input), sample.input)
			if err == nil {
				t.Fatalf("expected parse error, got nil")
			}

			var parseErr *parser.Error
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *parser.Error, got %T", err)
			}

			if parseErr.Kind != sample.kind {
				t.Errorf("expected kind %s, got %s", sample.kind, parseErr.Kind)
			}

			if parseErr.Offset != sample.offset {
				t.Errorf("expected offset %d, got %d", sample.offset, parseErr.Offset)
			}

			if parseErr.EOF != sample.eof || errors.Is(err, parser.ErrUnexpectedEOF) != sample.eof {
				t.Errorf("expected eof=%v, got %v (%s)", sample.eof, parseErr.EOF, err)
			}

			if parseErr.Query != sample.input {
				t.Errorf("expected query %q, got %q", sample.input, parseErr.Query)
			}

			if !sample.eof && parseErr.Remainder != sample.input[sample.offset:] {
				t.Errorf("expected remainder %q, got %q", sample.input[sample.offset:], parseErr.Remainder)
			}
		})
	}
}
