package auth

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calibra-app/calibra/migrations"
)

// The map-backed repository mocks cannot catch drift between the SQL the
// repositories issue and the schema the migrations create, so this test
// checks the users DDL directly against the insert column list.
func TestUsersSchemaMatchesRepositoryColumns(t *testing.T) {
	ddl, err := migrations.FS.ReadFile("00001_users.sql")
	require.NoError(t, err)

	start := strings.Index(string(ddl), "CREATE TABLE users (")
	require.NotEqual(t, -1, start)
	table := string(ddl)[start:]
	table = table[:strings.Index(table, ");")]

	columnLine := regexp.MustCompile(`(?m)^\s*([a-z_]+)\s+(text\[\]|text|uuid|timestamptz|int)\s*(,|$|\s.*)`)
	declared := map[string]string{}
	for _, m := range columnLine.FindAllStringSubmatch(table, -1) {
		declared[m[1]] = m[0]
	}

	for _, col := range strings.Split(userColumns, ", ") {
		require.Contains(t, declared, col, "column %q is selected but not declared", col)
	}

	// Create and CreateProvisioned bind SQL NULL for empty optional fields,
	// so these columns must not carry NOT NULL.
	for _, col := range []string{"phone", "avatar", "invite_code", "recovery_code"} {
		require.NotContains(t, declared[col], "NOT NULL",
			"column %q receives NULL from the insert paths", col)
	}
}
