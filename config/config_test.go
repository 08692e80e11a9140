package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbortree/arbor/pathutil"
)

func TestReadMissingFileReturnsDefaults(t *testing.T) {
	f := UseFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	tunables, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), tunables)
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arbor.yaml")
	f := UseFile(path)

	want := Defaults()
	want.MaxFolderNameLength = 16
	want.NameCharClass = `[A-Z]`

	require.NoError(t, f.Write(want))
	got, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestApplyWiresPathutil(t *testing.T) {
	defer pathutil.Configure(`[a-z0-9_-]`, pathutil.MaxNameLength)

	tunables := Defaults()
	tunables.NameCharClass = `[A-Z]`
	tunables.MaxFolderNameLength = 3
	require.NoError(t, tunables.Apply())

	assert.True(t, pathutil.IsValid("/ABC/"))
	assert.False(t, pathutil.IsValid("/ABCD/"))
	assert.False(t, pathutil.IsValid("/abc/"))
}

func TestWatchNotifiesOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arbor.yaml")
	f := UseFile(path)
	require.NoError(t, f.Write(Defaults()))

	changed := make(chan struct{}, 1)
	require.NoError(t, f.Watch(changed))
	defer f.Watch(nil)

	updated := Defaults()
	updated.MaxFolderNameLength = 99
	require.NoError(t, f.Write(updated))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never observed the rewrite")
	}
}

func TestWriteCreatesNoStrayTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arbor.yaml")
	f := UseFile(path)
	require.NoError(t, f.Write(Defaults()))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
