package store

import (
	"context"

	"github.com/storyq/storyq/pkg/contract"
	"github.com/storyq/storyq/pkg/query"
)

type StoryStore interface {
	// SearchStories runs a search string against the cache, most recently
	// updated stories first. A maxResults of zero uses the configured default.
	SearchStories(
		ctx context.Context,
		filter string,
		identity query.Context,
		maxResults int,
		pageToken string,
	) (*PagedList[*contract.Story], *contract.Error)

	// ExplainSearch compiles a search string to the SQL SearchStories would
	// filter with, without running it.
	ExplainSearch(filter string, identity query.Context) (*contract.ExplainQueryResponse, *contract.Error)

	Close() error
}

type PagedList[T any] struct {
	Items         []T
	NextPageToken *string
}
