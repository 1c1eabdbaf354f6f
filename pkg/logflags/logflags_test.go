package logflags

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	http, grpc, session = false, false, false
}

func TestSetupSubsystems(t *testing.T) {
	defer reset()

	require.NoError(t, Setup(true, "http, session", DefaultLogDesc))
	assert.True(t, HTTP())
	assert.True(t, Session())
	assert.False(t, GRPC())
}

func TestSetupDisabled(t *testing.T) {
	defer reset()

	require.NoError(t, Setup(false, "all", DefaultLogDesc))
	assert.False(t, HTTP())
	assert.False(t, GRPC())
}

func TestSetupUnknown(t *testing.T) {
	defer reset()

	assert.Error(t, Setup(true, "dwarf", DefaultLogDesc))
}

func TestSetupLogFile(t *testing.T) {
	defer reset()
	old, oldPath := logOut, logPath
	defer func() { logOut, logPath = old, oldPath }()

	dest := filepath.Join(t.TempDir(), "logs", "memscan.log")
	require.NoError(t, Setup(true, "all", dest))

	l := SessionLogger()
	l.Infof("scan slot %d", 0)
	assert.NoError(t, l.Sync())
	assert.FileExists(t, dest)

	f := logOut
	require.NoError(t, Setup(true, "all", dest))
	assert.Same(t, f, logOut)
}
