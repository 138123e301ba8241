package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyq/storyq/pkg/contract"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, logs bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "storyq.yaml")

	content := "store_url: sqlite://" + filepath.Join(dir, "cache.db") + "\n" +
		"username: alice\n" +
		"log_level: warn\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestExplain(t *testing.T) {
	out, err := run(t, "explain", "--config", writeConfig(t), "owner:self", "is:open")
	require.NoError(t, err)

	assert.Contains(t, out, `SELECT "stories"."key" FROM "stories", "users" WHERE `)
	assert.Contains(t, out, `"users"."username" = ?`)
	assert.Contains(t, out, "-- vars: [alice MERGED ABANDONED]")
}

func TestExplainJSON(t *testing.T) {
	out, err := run(t, "explain", "--user", "bob", "--dialect", "mysql", "-o", "json", "owner:self")
	require.NoError(t, err)

	var explained contract.ExplainQueryResponse
	require.NoError(t, json.Unmarshal([]byte(out), &explained))
	assert.Equal(t, "mysql", explained.Dialect)
	assert.Contains(t, explained.SQL, "SELECT `stories`.`key` FROM `stories`, `users` WHERE ")
	assert.Equal(t, []any{"bob"}, explained.Vars)
}

func TestExplainErrors(t *testing.T) {
	_, err := run(t, "explain", "has:star")
	require.Error(t, err)
	assert.Equal(t, "syntax error: has:star is not supported", err.Error())

	_, err = run(t, "explain", "--dialect", "oracle", "is:open")
	require.EqualError(t, err, `unknown dialect "oracle"`)

	_, err = run(t, "explain", "--dialect", "sqlserver", "branch:^rel")
	require.Error(t, err)
}

func TestSearchEmptyCache(t *testing.T) {
	out, err := run(t, "search", "--config", writeConfig(t), "is:open")
	require.NoError(t, err)
	assert.Regexp(t, `^ID\s+STATUS\s+OWNER\s+UPDATED\s+TITLE\n$`, out)

	out, err = run(t, "search", "--config", writeConfig(t), "-o", "json", "owner:self")
	require.NoError(t, err)

	var result contract.SearchStoriesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Empty(t, result.Stories)
	assert.Nil(t, result.NextPageToken)
}

func TestSearchInvalidQuery(t *testing.T) {
	_, err := run(t, "search", "--config", writeConfig(t), "label:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_PARAMETER_VALUE")
}
