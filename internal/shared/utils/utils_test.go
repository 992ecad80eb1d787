package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereBuilder(t *testing.T) {
	var w WhereBuilder
	assert.Equal(t, "", w.SQL())

	w.Add("status = $%d", "APPROVED").Add("profile_id = $%d", "p1")
	assert.Equal(t, " WHERE status = $1 AND profile_id = $2", w.SQL())
	assert.Equal(t, []any{"APPROVED", "p1"}, w.Args())
}

func TestParseStringList(t *testing.T) {
	got, err := ParseStringList([]string{`["UTAU", "DeepVocal", "UTAU", " "]`})
	require.NoError(t, err)
	assert.Equal(t, []string{"UTAU", "DeepVocal"}, got)

	got, err = ParseStringList([]string{"Japanese", "English", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"Japanese", "English"}, got)

	_, err = ParseStringList([]string{`["broken`})
	assert.Error(t, err)
}

func TestParseFormBool(t *testing.T) {
	assert.True(t, ParseFormBool("on"))
	assert.True(t, ParseFormBool("TRUE"))
	assert.False(t, ParseFormBool(""))
	assert.False(t, ParseFormBool("off"))
}

func TestParseOptionalUUID(t *testing.T) {
	id, err := ParseOptionalUUID("")
	require.NoError(t, err)
	assert.Nil(t, id)

	_, err = ParseOptionalUUID("nope")
	assert.Error(t, err)
}
