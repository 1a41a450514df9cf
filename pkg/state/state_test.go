package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate redirects the user config directory into a temp dir so tests
// never touch real state.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadMissingStateIsEmpty(t *testing.T) {
	isolate(t)

	s, err := Load()
	require.NoError(t, err)
	assert.Empty(t, s.ActiveSession)
}

func TestSetAndGetActiveSession(t *testing.T) {
	isolate(t)

	require.NoError(t, SetActiveSession("session-abc"))

	got, err := ActiveSession()
	require.NoError(t, err)
	assert.Equal(t, "session-abc", got)
}

func TestSetActiveSessionOverwrites(t *testing.T) {
	isolate(t)

	require.NoError(t, SetActiveSession("session-one"))
	require.NoError(t, SetActiveSession("session-two"))

	got, err := ActiveSession()
	require.NoError(t, err)
	assert.Equal(t, "session-two", got)
}
