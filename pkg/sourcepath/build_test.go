package sourcepath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSourcePath(t *testing.T) {
	t.Run("strips the repository directory from the path", func(t *testing.T) {
		spec := BuildSourcePath("repoA", "dev", "repoA/src/app")
		assert.Equal(t, "repoA|dev:src/app", spec)
	})

	t.Run("single segment strips to nothing", func(t *testing.T) {
		spec := BuildSourcePath("repoA", "dev", "repoA")
		assert.Equal(t, "repoA|dev:", spec)
	})

	t.Run("empty path stays empty", func(t *testing.T) {
		spec := BuildSourcePath("repoA", "dev", "")
		assert.Equal(t, "repoA|dev:", spec)
	})

	t.Run("empty branch collapses to the name", func(t *testing.T) {
		spec := BuildSourcePath("repoA", "", "repoA/src/app")
		assert.Equal(t, "repoA", spec)
	})

	t.Run("empty repository collapses to nothing", func(t *testing.T) {
		spec := BuildSourcePath("", "dev", "repoA/src/app")
		assert.Equal(t, "", spec)
	})

	t.Run("round trips through parse", func(t *testing.T) {
		var ag slashAgent

		cat := []Repository{
			&fakeRepo{name: "repoA", root: "/work/repoA"},
		}

		sp, err := Parse(BuildSourcePath("repoA", "dev", "repoA/src/app"), cat, ag)
		require.NoError(t, err)

		branch, specified := sp.SpecifiedBranch()
		require.True(t, specified)
		assert.Equal(t, "dev", branch)

		assert.Equal(t, "src/app", sp.RelativePath())
		assert.Equal(t, "/work/repoA/src/app", sp.PathOnDisk())
	})

	t.Run("build strips a segment where parse trims a slash", func(t *testing.T) {
		// The two path treatments are intentionally different: build
		// drops the repository directory the checkout prepends, parse
		// only trims a root marker.
		spec := BuildSourcePath("repoA", "dev", "repoA/src")
		assert.Equal(t, "repoA|dev:src", spec)

		var ag slashAgent

		cat := []Repository{
			&fakeRepo{name: "repoA", root: "/work/repoA"},
		}

		sp, err := Parse("repoA|dev:/src", cat, ag)
		require.NoError(t, err)
		assert.Equal(t, "src", sp.RelativePath())

		sp, err = Parse("repoA|dev:repoA/src", cat, ag)
		require.NoError(t, err)
		assert.Equal(t, "repoA/src", sp.RelativePath())
	})
}
