package model

import (
	"time"

	"github.com/storyq/storyq/pkg/contract"
)

type StoryStatus string

const (
	StoryStatusNew       StoryStatus = "NEW"
	StoryStatusSubmitted StoryStatus = "SUBMITTED"
	StoryStatusMerged    StoryStatus = "MERGED"
	StoryStatusAbandoned StoryStatus = "ABANDONED"
)

// Story mapped from table <stories>.
type Story struct {
	Key      int64       `db:"key"       gorm:"column:key;primaryKey"`
	ID       int64       `db:"id"        gorm:"column:id;index"`
	UserKey  *int64      `db:"user_key"  gorm:"column:user_key"`
	Title    string      `db:"title"     gorm:"column:title"`
	Status   StoryStatus `db:"status"    gorm:"column:status;index"`
	Branch   string      `db:"branch"    gorm:"column:branch"`
	Created  time.Time   `db:"created"   gorm:"column:created"`
	Updated  time.Time   `db:"updated"   gorm:"column:updated;index"`
	LastSeen *time.Time  `db:"last_seen" gorm:"column:last_seen"`
	Starred  bool        `db:"starred"   gorm:"column:starred"`
	Held     bool        `db:"held"      gorm:"column:held"`
	User     *User       `gorm:"foreignKey:UserKey;references:Key"`
}

func (s Story) ToContract() *contract.Story {
	story := &contract.Story{
		ID:       s.ID,
		Title:    s.Title,
		Status:   string(s.Status),
		Branch:   s.Branch,
		Created:  s.Created.UTC(),
		Updated:  s.Updated.UTC(),
		Starred:  s.Starred,
		Held:     s.Held,
		LastSeen: s.LastSeen,
	}

	if s.User != nil {
		story.Owner = s.User.Username
	}

	return story
}

// All lists every table of the cache for migration.
func All() []any {
	return []any{
		&User{},
		&Project{},
		&Story{},
		&Task{},
		&Revision{},
		&Approval{},
		&Tag{},
		&StoryTag{},
		&Comment{},
		&Message{},
		&File{},
	}
}
