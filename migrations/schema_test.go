package migrations

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createTable = regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS (\w+) \((.*?)\n\);`)

// loadColumns maps table -> column -> column definition from the init migration
func loadColumns(t *testing.T) map[string]map[string]string {
	t.Helper()

	raw, err := os.ReadFile("000001_init.up.sql")
	require.NoError(t, err)

	tables := make(map[string]map[string]string)
	for _, m := range createTable.FindAllStringSubmatch(string(raw), -1) {
		cols := make(map[string]string)
		for _, line := range strings.Split(m[2], "\n") {
			fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ","))
			if len(fields) < 2 {
				continue
			}
			cols[fields[0]] = strings.Join(fields[1:], " ")
		}
		tables[m[1]] = cols
	}
	return tables
}

// Optional model fields are bound as NULL when absent, so their columns must accept it.
func TestOptionalColumnsAreNullable(t *testing.T) {
	tables := loadColumns(t)

	optional := map[string][]string{
		"accounts":       {"display_name"},
		"voice_profiles": {"avatar_thumb_path", "image_path", "description"},
		"voicebanks":     {"voice_provider"},
		"songs":          {"cover_path", "creator", "bilibili_url", "lyrics"},
	}

	for table, cols := range optional {
		require.Contains(t, tables, table)
		for _, col := range cols {
			def, ok := tables[table][col]
			require.True(t, ok, "%s.%s missing", table, col)
			assert.NotContains(t, def, "NOT NULL", "%s.%s must be nullable", table, col)
		}
	}
}

func TestRequiredColumnsAreNotNull(t *testing.T) {
	tables := loadColumns(t)

	required := map[string][]string{
		"voicebanks": {"profile_id", "submitter_id", "file_path", "sample_path", "status"},
		"tutorials":  {"title", "description", "type", "difficulty", "file_path", "engines", "status"},
		"songs":      {"title", "profile_id", "submitter_id", "file_path"},
		"links":      {"name", "url", "category", "description"},
	}

	for table, cols := range required {
		require.Contains(t, tables, table)
		for _, col := range cols {
			assert.Contains(t, tables[table][col], "NOT NULL", "%s.%s", table, col)
		}
	}
}
