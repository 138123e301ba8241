package server

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/storyq/storyq/pkg/config"
	"github.com/storyq/storyq/pkg/contract"
	"github.com/storyq/storyq/pkg/query"
	"github.com/storyq/storyq/pkg/store"
	"github.com/storyq/storyq/pkg/utils"
)

type StoryService interface {
	SearchStories(ctx context.Context, input *contract.SearchStories) (*contract.SearchStoriesResponse, *contract.Error)
	ExplainQuery(ctx context.Context, input *contract.ExplainQuery) (*contract.ExplainQueryResponse, *contract.Error)
}

type storyService struct {
	config *config.Config
	store  store.StoryStore
}

func NewStoryService(cfg *config.Config, stories store.StoryStore) StoryService {
	return &storyService{config: cfg, store: stories}
}

// identity resolves `self` to the requested user, falling back to the
// configured one.
func (s storyService) identity(user string) query.Context {
	if user == "" {
		user = s.config.Username
	}

	return query.Context{Username: user}
}

func (s storyService) SearchStories(
	ctx context.Context,
	input *contract.SearchStories,
) (*contract.SearchStoriesResponse, *contract.Error) {
	logrus.WithFields(logrus.Fields{
		"request_id": utils.RequestID(ctx),
		"query":      input.Query,
	}).Debug("Searching stories")

	page, err := s.store.SearchStories(ctx, input.Query, s.identity(input.User), input.MaxResults, input.PageToken)
	if err != nil {
		return nil, err
	}

	return &contract.SearchStoriesResponse{
		Stories:       page.Items,
		NextPageToken: page.NextPageToken,
	}, nil
}

func (s storyService) ExplainQuery(
	ctx context.Context,
	input *contract.ExplainQuery,
) (*contract.ExplainQueryResponse, *contract.Error) {
	logrus.WithFields(logrus.Fields{
		"request_id": utils.RequestID(ctx),
		"query":      input.Query,
	}).Debug("Explaining query")

	return s.store.ExplainSearch(input.Query, s.identity(input.User))
}
