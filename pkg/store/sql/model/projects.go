package model

// Project mapped from table <projects>.
type Project struct {
	Key        int64  `db:"key"        gorm:"column:key;primaryKey"`
	Name       string `db:"name"       gorm:"column:name;index"`
	Subscribed bool   `db:"subscribed" gorm:"column:subscribed"`
}

// Task mapped from table <tasks>. Tasks relate stories to projects.
type Task struct {
	Key        int64  `db:"key"         gorm:"column:key;primaryKey"`
	StoryKey   int64  `db:"story_key"   gorm:"column:story_key;index"`
	ProjectKey int64  `db:"project_key" gorm:"column:project_key;index"`
	Title      string `db:"title"       gorm:"column:title"`
	Status     string `db:"status"      gorm:"column:status"`
}
