package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/storyq/storyq/pkg/query/lexer"
)

type Sample struct {
	input    string
	expected string
}

func render(tokens []lexer.Token) string {
	output := ""
	for _, token := range tokens {
		output += fmt.Sprintf(" %s", token.Debug())
	}

	return strings.TrimLeft(output, " ")
}

func TestQueries(t *testing.T) {
	samples := []Sample{
		{
			input:    "owner:self status:open",
			expected: "op_owner(owner:) ustring(self) op_status(status:) ustring(open) eof",
		},
		{
			input:    "age:2h",
			expected: "op_age(age:) number(2) ustring(h) eof",
		},
		{
			input:    "age:3 days",
			expected: "op_age(age:) number(3) ustring(days) eof",
		},
		{
			input:    "project:\"foo bar\" OR project:'baz'",
			expected: "op_project(project:) dstring(foo bar) or(OR) op_project(project:) sstring(baz) eof",
		},
		{
			input:    "NOT status:open or -is:starred",
			expected: "not(NOT) op_status(status:) ustring(open) or(or) neg(-) op_is(is:) ustring(starred) eof",
		},
		{
			input:    "(branch:^release/.* and !tag:wip)",
			expected: "open_paren op_branch(branch:) ustring(^release/.*) and(and) neg(!) op_tag(tag:) ustring(wip) close_paren eof",
		},
		{
			input:    "label:Code-Review>=1,user=self",
			expected: "op_label(label:) ustring(Code-Review>=1,user=self) eof",
		},
		{
			input:    "label:Verified=-1",
			expected: "op_label(label:) ustring(Verified=-1) eof",
		},
		{
			input:    "_project_key:12 limit:50",
			expected: "op_project_key(_project_key:) number(12) op_limit(limit:) number(50) eof",
		},
		{
			input:    "foo:bar",
			expected: "op(foo:) ustring(bar) eof",
		},
		{
			input:    "message:android",
			expected: "op_message(message:) ustring(android) eof",
		},
		{
			input:    "tag:1.0",
			expected: "op_tag(tag:) number(1) ustring(.0) eof",
		},
		{
			input:    `comment:"say \"hi\""`,
			expected: `op_comment(comment:) dstring(say "hi") eof`,
		},
		{
			input:    "Owner:self",
			expected: "op_owner(Owner:) ustring(self) eof",
		},
	}

	for _, sample := range samples {
		t.Run(sample.input, func(t *testing.T) {
			output := render(lexer.Tokenize(sample.input))

			if output != sample.expected {
				t.Errorf("expected %s, got %s", sample.expected, output)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	tokens := lexer.Tokenize(`owner:self  project:"a b"`)

	expected := [][2]int{{0, 6}, {6, 10}, {12, 20}, {20, 25}, {25, 25}}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, token := range tokens {
		if token.Pos != expected[i][0] || token.End != expected[i][1] {
			t.Errorf("token %d (%s): expected [%d,%d), got [%d,%d)",
				i, token.Debug(), expected[i][0], expected[i][1], token.Pos, token.End)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	samples := []struct {
		input string
		pos   int
	}{
		{"project:'foo", 8},
		{"project:\"foo bar", 8},
		{"owner:self \"", 11},
	}

	for _, sample := range samples {
		t.Run(sample.input, func(t *testing.T) {
			tokens := lexer.Tokenize(sample.input)

			var illegal *lexer.Token

			for i := range tokens {
				if tokens[i].Kind == lexer.Illegal {
					illegal = &tokens[i]

					break
				}
			}

			if illegal == nil {
				t.Fatalf("expected an illegal token, got %s", render(tokens))
			}

			if illegal.Pos != sample.pos {
				t.Errorf("expected illegal token at %d, got %d", sample.pos, illegal.Pos)
			}
		})
	}
}
