package sql

import (
	"database/sql"
	"fmt"
	"regexp"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	sqliteDriverName = "sqlite3_storyq"
	patternCacheSize = 256
)

//nolint:gochecknoglobals
var (
	registerSQLite    sync.Once
	registerSQLiteErr error
	patternCache      *lru.Cache
)

// matches implements the SQLite `matches(pattern, value)` function search
// patterns render to. NULL values never match.
func matches(pattern string, value any) (bool, error) {
	var text string

	switch v := value.(type) {
	case nil:
		return false, nil
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		text = fmt.Sprint(v)
	}

	if cached, ok := patternCache.Get(pattern); ok {
		return cached.(*regexp.Regexp).MatchString(text), nil //nolint:forcetypeassert
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	patternCache.Add(pattern, re)

	return re.MatchString(text), nil
}

func newSQLiteDialector(dsn string) (gorm.Dialector, error) {
	registerSQLite.Do(func() {
		patternCache, registerSQLiteErr = lru.New(patternCacheSize)
		if registerSQLiteErr != nil {
			return
		}

		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("matches", matches, true)
			},
		})
	})

	if registerSQLiteErr != nil {
		return nil, fmt.Errorf("failed to create pattern cache: %w", registerSQLiteErr)
	}

	return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn}), nil
}
