package sql

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"

	"github.com/storyq/storyq/pkg/contract"
	"github.com/storyq/storyq/pkg/query"
	"github.com/storyq/storyq/pkg/query/parser"
	"github.com/storyq/storyq/pkg/query/predicate"
	"github.com/storyq/storyq/pkg/store"
	"github.com/storyq/storyq/pkg/store/sql/model"
	"github.com/storyq/storyq/pkg/utils"
)

type PageToken struct {
	Offset int32 `json:"offset"`
}

func getOffset(pageToken string) (int, *contract.Error) {
	if pageToken != "" {
		var token PageToken
		if err := json.NewDecoder(
			base64.NewDecoder(
				base64.StdEncoding,
				strings.NewReader(pageToken),
			),
		).Decode(&token); err != nil {
			return 0, contract.NewErrorWith(
				contract.InvalidParameterValue,
				fmt.Sprintf("invalid page_token: %q", pageToken),
				err,
			)
		}

		if token.Offset < 0 {
			return 0, contract.NewError(
				contract.InvalidParameterValue,
				fmt.Sprintf("invalid page_token: %q", pageToken),
			)
		}

		return int(token.Offset), nil
	}

	return 0, nil
}

func mkNextPageToken(storyLength, maxResults, offset int) (*string, *contract.Error) {
	var nextPageToken *string

	if storyLength == maxResults {
		var token strings.Builder
		if err := json.NewEncoder(
			base64.NewEncoder(base64.StdEncoding, &token),
		).Encode(PageToken{
			Offset: int32(offset + maxResults),
		}); err != nil {
			return nil, contract.NewErrorWith(
				contract.InternalError,
				"error encoding 'nextPageToken' value",
				err,
			)
		}

		nextPageToken = utils.PtrTo(token.String())
	}

	return nextPageToken, nil
}

// compileFilter compiles a search string and renders the story key
// membership it filters on.
func (s Store) compileFilter(filter string, identity query.Context) (string, []any, *contract.Error) {
	pred, err := s.compiler.Compile(filter, identity)
	if err != nil {
		var parseErr *parser.Error
		if errors.As(err, &parseErr) {
			return "", nil, contract.NewError(contract.InvalidParameterValue, parseErr.Error())
		}

		return "", nil, contract.NewErrorWith(contract.InternalError, "error compiling search query", err)
	}

	scoped, err := query.Scope(pred)
	if err != nil {
		return "", nil, contract.NewErrorWith(contract.InternalError, "error scoping search query", err)
	}

	sql, vars, err := predicate.Render(scoped.Filter(), s.dialect())
	if err != nil {
		code := contract.InternalError
		if errors.Is(err, predicate.ErrUnsupported) {
			code = contract.NotImplemented
		}

		return "", nil, contract.NewErrorWith(code, "error rendering search query", err)
	}

	logrus.WithFields(logrus.Fields{
		"filter":  filter,
		"dialect": s.dialect(),
	}).Debugf("Compiled search to %s %v", sql, vars)

	return sql, vars, nil
}

func (s Store) ExplainSearch(filter string, identity query.Context) (*contract.ExplainQueryResponse, *contract.Error) {
	sql, vars, contractError := s.compileFilter(filter, identity)
	if contractError != nil {
		return nil, contractError
	}

	if vars == nil {
		vars = make([]any, 0)
	}

	return &contract.ExplainQueryResponse{
		Dialect: string(s.dialect()),
		SQL:     sql,
		Vars:    vars,
	}, nil
}

func (s Store) SearchStories(
	ctx context.Context,
	filter string,
	identity query.Context,
	maxResults int,
	pageToken string,
) (*store.PagedList[*contract.Story], *contract.Error) {
	if maxResults <= 0 {
		maxResults = s.config.DefaultMaxResults
	}

	transaction := s.db.WithContext(ctx).Model(&model.Story{})

	// MaxResults
	transaction.Limit(maxResults)

	// PageToken
	offset, contractError := getOffset(pageToken)
	if contractError != nil {
		return nil, contractError
	}

	transaction.Offset(offset)

	// Filter
	sql, vars, contractError := s.compileFilter(filter, identity)
	if contractError != nil {
		return nil, contractError
	}

	transaction.Where(sql, vars...)

	// OrderBy
	transaction.Order(clause.OrderByColumn{
		Column: clause.Column{Table: string(predicate.Stories), Name: predicate.StoryUpdated.Name},
		Desc:   true,
	})
	transaction.Order(clause.OrderByColumn{
		Column: clause.Column{Table: string(predicate.Stories), Name: predicate.StoryKey.Name},
	})

	// Actual query
	var stories []model.Story

	transaction.Preload("User").Find(&stories)

	if transaction.Error != nil {
		return nil, contract.NewErrorWith(
			contract.InternalError,
			"Failed to query search stories",
			transaction.Error,
		)
	}

	contractStories := make([]*contract.Story, 0, len(stories))
	for _, story := range stories {
		contractStories = append(contractStories, story.ToContract())
	}

	nextPageToken, contractError := mkNextPageToken(len(stories), maxResults, offset)
	if contractError != nil {
		return nil, contractError
	}

	return &store.PagedList[*contract.Story]{
		Items:         contractStories,
		NextPageToken: nextPageToken,
	}, nil
}
