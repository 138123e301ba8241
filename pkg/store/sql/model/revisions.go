package model

// Revision mapped from table <revisions>.
type Revision struct {
	Key      int64  `db:"key"       gorm:"column:key;primaryKey"`
	StoryKey int64  `db:"story_key" gorm:"column:story_key;index"`
	Number   int    `db:"number"    gorm:"column:number"`
	Commit   string `db:"commit"    gorm:"column:commit;index"`
	Message  string `db:"message"   gorm:"column:message"`
}

// Comment mapped from table <comments>.
type Comment struct {
	Key         int64  `db:"key"          gorm:"column:key;primaryKey"`
	RevisionKey int64  `db:"revision_key" gorm:"column:revision_key;index"`
	Message     string `db:"message"      gorm:"column:message"`
}

// Message mapped from table <messages>. Unsent messages are drafts.
type Message struct {
	Key         int64  `db:"key"          gorm:"column:key;primaryKey"`
	RevisionKey int64  `db:"revision_key" gorm:"column:revision_key;index"`
	Message     string `db:"message"      gorm:"column:message"`
	Draft       bool   `db:"draft"        gorm:"column:draft"`
}

// File mapped from table <files>. A file without a status is a placeholder
// that has not been fetched yet.
type File struct {
	Key         int64   `db:"key"          gorm:"column:key;primaryKey"`
	RevisionKey int64   `db:"revision_key" gorm:"column:revision_key;index"`
	Path        string  `db:"path"         gorm:"column:path"`
	OldPath     *string `db:"old_path"     gorm:"column:old_path"`
	Status      *string `db:"status"       gorm:"column:status"`
}
