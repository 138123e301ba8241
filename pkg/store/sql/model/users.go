package model

// User mapped from table <users>.
type User struct {
	Key      int64  `db:"key"      gorm:"column:key;primaryKey"`
	ID       int64  `db:"id"       gorm:"column:id;index"`
	Username string `db:"username" gorm:"column:username;index"`
	Name     string `db:"name"     gorm:"column:name"`
	Email    string `db:"email"    gorm:"column:email"`
}
