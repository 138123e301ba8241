// Package query compiles search strings into predicates over the story
// cache.
package query

import (
	"errors"
	"fmt"
	"time"

	"github.com/storyq/storyq/pkg/query/lexer"
	"github.com/storyq/storyq/pkg/query/parser"
	"github.com/storyq/storyq/pkg/query/predicate"
	"github.com/storyq/storyq/pkg/query/translate"
)

// Context carries the identity `self` resolves to for one compile call.
type Context = translate.Context

// Compiler compiles search strings. The zero value uses the wall clock.
type Compiler struct {
	// Now is the reference time of `age:` terms. Defaults to time.Now in UTC.
	Now func() time.Time
}

func (c Compiler) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}

	return time.Now().UTC()
}

// Compile turns input into a predicate. Every failure is a *parser.Error
// carrying input; no partial predicate is ever returned.
func (c Compiler) Compile(input string, ctx Context) (predicate.Predicate, error) {
	tokens := lexer.Tokenize(input)

	ast, err := parser.Parse(tokens, input)
	if err != nil {
		return nil, err
	}

	pred, err := translate.New(ctx, c.now()).Translate(ast)
	if err != nil {
		var parseErr *parser.Error
		if errors.As(err, &parseErr) {
			return nil, parseErr.WithQuery(input)
		}

		return nil, fmt.Errorf("error while translating %s: %w", input, err)
	}

	return pred, nil
}

func Compile(input string, ctx Context) (predicate.Predicate, error) {
	return Compiler{}.Compile(input, ctx)
}
