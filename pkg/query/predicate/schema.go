package predicate

// Table names a relation of the story cache.
type Table string

const (
	Stories   Table = "stories"
	Users     Table = "users"
	Projects  Table = "projects"
	Tasks     Table = "tasks"
	Revisions Table = "revisions"
	Approvals Table = "approvals"
	Tags      Table = "tags"
	StoryTags Table = "story_tags"
	Comments  Table = "comments"
	Messages  Table = "messages"
	Files     Table = "files"
)

// Column is a table-qualified column reference.
type Column struct {
	Table Table
	Name  string
}

func (c Column) String() string {
	return string(c.Table) + "." + c.Name
}

// Column descriptors of the cache schema. Only the columns search terms
// compare against or join through are listed.
//
//nolint:gochecknoglobals
var (
	StoryKey      = Column{Stories, "key"}
	StoryID       = Column{Stories, "id"}
	StoryUserKey  = Column{Stories, "user_key"}
	StoryStatus   = Column{Stories, "status"}
	StoryBranch   = Column{Stories, "branch"}
	StoryUpdated  = Column{Stories, "updated"}
	StoryLastSeen = Column{Stories, "last_seen"}
	StoryStarred  = Column{Stories, "starred"}
	StoryHeld     = Column{Stories, "held"}

	UserKey      = Column{Users, "key"}
	UserID       = Column{Users, "id"}
	UserUsername = Column{Users, "username"}
	UserEmail    = Column{Users, "email"}
	UserName     = Column{Users, "name"}

	ProjectKey        = Column{Projects, "key"}
	ProjectName       = Column{Projects, "name"}
	ProjectSubscribed = Column{Projects, "subscribed"}

	TaskStoryKey   = Column{Tasks, "story_key"}
	TaskProjectKey = Column{Tasks, "project_key"}

	RevisionKey      = Column{Revisions, "key"}
	RevisionStoryKey = Column{Revisions, "story_key"}
	RevisionCommit   = Column{Revisions, "commit"}
	RevisionMessage  = Column{Revisions, "message"}

	ApprovalStoryKey = Column{Approvals, "story_key"}
	ApprovalUserKey  = Column{Approvals, "user_key"}
	ApprovalCategory = Column{Approvals, "category"}
	ApprovalValue    = Column{Approvals, "value"}

	TagKey  = Column{Tags, "key"}
	TagName = Column{Tags, "name"}

	StoryTagStoryKey = Column{StoryTags, "story_key"}
	StoryTagTagKey   = Column{StoryTags, "tag_key"}

	CommentRevisionKey = Column{Comments, "revision_key"}
	CommentMessage     = Column{Comments, "message"}

	MessageRevisionKey = Column{Messages, "revision_key"}
	MessageDraft       = Column{Messages, "draft"}

	FileRevisionKey = Column{Files, "revision_key"}
	FilePath        = Column{Files, "path"}
	FileOldPath     = Column{Files, "old_path"}
	FileStatus      = Column{Files, "status"}
)
