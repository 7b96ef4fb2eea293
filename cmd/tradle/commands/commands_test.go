package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeObjectFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "object.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadObject(t *testing.T) {
	path := writeObjectFile(t, `{"_t":"something","_author":"bob","_time":12345,"a":1}`)
	o, err := loadObject(path)
	require.NoError(t, err)
	assert.Equal(t, "something", o.Type())
	assert.Equal(t, "bob", o.Author())
}

func TestLoadObjectErrors(t *testing.T) {
	_, err := loadObject(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := writeObjectFile(t, "not json")
	_, err = loadObject(path)
	require.Error(t, err)
}

func TestHashCmd(t *testing.T) {
	path := writeObjectFile(t,
		`{"_t":"something","_author":"bob","_time":12345,"_protocol":"4.0.0","a":1,"b":2}`)

	HashCmd.SetArgs([]string{path})
	require.NoError(t, HashCmd.Execute())
}
