package catalog

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T, dir, remote string) {
	t.Helper()

	err := os.MkdirAll(dir, 0755)
	require.NoError(t, err)

	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	if remote != "" {
		_, err = r.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{remote},
		})
		require.NoError(t, err)
	}
}

func TestRemoteRepoID(t *testing.T) {
	t.Run("https remotes", func(t *testing.T) {
		id, err := remoteRepoID("https://host.example/org/project.git")
		require.NoError(t, err)
		assert.Equal(t, "host.example/org/project", id)
	})

	t.Run("scp remotes", func(t *testing.T) {
		id, err := remoteRepoID("git@host.example:org/project.git")
		require.NoError(t, err)
		assert.Equal(t, "host.example/org/project", id)
	})
}

func TestDetector(t *testing.T) {
	top, err := ioutil.TempDir("", "detect")
	require.NoError(t, err)

	defer os.RemoveAll(top)

	d := NewDetector(nil)

	t.Run("names from the origin remote", func(t *testing.T) {
		dir := filepath.Join(top, "checkout")
		initRepo(t, dir, "https://host.example/org/project.git")

		entry, err := d.Detect(dir)
		require.NoError(t, err)

		assert.Equal(t, "project", entry.Name)
		assert.Equal(t, "https://host.example/org/project.git", entry.URL)
		assert.Equal(t, dir, entry.Root)
	})

	t.Run("scp remotes name too", func(t *testing.T) {
		dir := filepath.Join(top, "widget-co")
		initRepo(t, dir, "git@host.example:org/widget.git")

		entry, err := d.Detect(dir)
		require.NoError(t, err)

		assert.Equal(t, "widget", entry.Name)
	})

	t.Run("falls back to the directory name", func(t *testing.T) {
		dir := filepath.Join(top, "loner")
		initRepo(t, dir, "")

		entry, err := d.Detect(dir)
		require.NoError(t, err)

		assert.Equal(t, "loner", entry.Name)
		assert.Equal(t, "", entry.URL)
	})

	t.Run("a marker file wins", func(t *testing.T) {
		dir := filepath.Join(top, "odd-dir")
		require.NoError(t, os.MkdirAll(dir, 0755))

		err := ioutil.WriteFile(
			filepath.Join(dir, MarkerFile),
			[]byte(`{"name": "pinned", "url": "https://host.example/org/pinned.git"}`),
			0644)
		require.NoError(t, err)

		entry, err := d.Detect(dir)
		require.NoError(t, err)

		assert.Equal(t, "pinned", entry.Name)
		assert.Equal(t, "https://host.example/org/pinned.git", entry.URL)
		assert.Equal(t, dir, entry.Root)
	})

	t.Run("results are memoized", func(t *testing.T) {
		dir := filepath.Join(top, "checkout")

		a, err := d.Detect(dir)
		require.NoError(t, err)

		b, err := d.Detect(dir)
		require.NoError(t, err)

		assert.Same(t, a, b)
	})
}

func TestDetectorScan(t *testing.T) {
	top, err := ioutil.TempDir("", "scan")
	require.NoError(t, err)

	defer os.RemoveAll(top)

	initRepo(t, filepath.Join(top, "alpha"), "https://host.example/org/alpha.git")
	initRepo(t, filepath.Join(top, "beta"), "")

	marked := filepath.Join(top, "gamma-src")
	require.NoError(t, os.MkdirAll(marked, 0755))

	err = ioutil.WriteFile(
		filepath.Join(marked, MarkerFile),
		[]byte(`{"name": "gamma"}`),
		0644)
	require.NoError(t, err)

	err = os.MkdirAll(filepath.Join(top, "notes"), 0755)
	require.NoError(t, err)

	err = ioutil.WriteFile(filepath.Join(top, "README"), []byte("hi"), 0644)
	require.NoError(t, err)

	d := NewDetector(nil)

	found, err := d.Scan(context.Background(), top)
	require.NoError(t, err)

	require.Len(t, found, 3)

	names := map[string]bool{}
	for _, entry := range found {
		names[entry.Name] = true
	}

	assert.True(t, names["alpha"])
	assert.True(t, names["beta"])
	assert.True(t, names["gamma"])
}
