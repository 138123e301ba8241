package model

// Tag mapped from table <tags>.
type Tag struct {
	Key  int64  `db:"key"  gorm:"column:key;primaryKey"`
	Name string `db:"name" gorm:"column:name;index"`
}

// StoryTag mapped from table <story_tags>.
type StoryTag struct {
	StoryKey int64 `db:"story_key" gorm:"column:story_key;primaryKey"`
	TagKey   int64 `db:"tag_key"   gorm:"column:tag_key;primaryKey"`
}
