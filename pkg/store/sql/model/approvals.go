package model

// Approval mapped from table <approvals>: one vote in a label category.
type Approval struct {
	Key      int64  `db:"key"       gorm:"column:key;primaryKey"`
	StoryKey int64  `db:"story_key" gorm:"column:story_key;index"`
	UserKey  int64  `db:"user_key"  gorm:"column:user_key"`
	Category string `db:"category"  gorm:"column:category"`
	Value    int64  `db:"value"     gorm:"column:value"`
}
