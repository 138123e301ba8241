package contract

import "time"

type Story struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Owner    string     `json:"owner,omitempty"`
	Status   string     `json:"status"`
	Branch   string     `json:"branch"`
	Created  time.Time  `json:"created"`
	Updated  time.Time  `json:"updated"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
	Starred  bool       `json:"starred"`
	Held     bool       `json:"held"`
}

type SearchStories struct {
	Query      string `json:"query"       query:"q"           validate:"required,notblank,max=4096"`
	User       string `json:"user"        query:"user"`
	MaxResults int    `json:"max_results" query:"max_results" validate:"gte=0,lte=10000"`
	PageToken  string `json:"page_token"  query:"page_token"`
}

type SearchStoriesResponse struct {
	Stories       []*Story `json:"stories"`
	NextPageToken *string  `json:"next_page_token,omitempty"`
}

type ExplainQuery struct {
	Query string `query:"q"    validate:"required,notblank,max=4096"`
	User  string `query:"user"`
}

type ExplainQueryResponse struct {
	Dialect string `json:"dialect"`
	SQL     string `json:"sql"`
	Vars    []any  `json:"vars"`
}
