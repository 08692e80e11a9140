package pathutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/a/", true},
		{"/a/b/c/", true},
		{"", false},
		{"/a", false},
		{"a/", false},
		{"//", false},
		{"/a//b/", false},
		{"/A/", false},
		{"/" + strings.Repeat("x", MaxNameLength) + "/", true},
		{"/" + strings.Repeat("x", MaxNameLength+1) + "/", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsValid(c.path), "path %q", c.path)
	}
}

func TestSplitFirst(t *testing.T) {
	component, rest, ok := SplitFirst("/")
	assert.False(t, ok)
	assert.Empty(t, component)
	assert.Empty(t, rest)

	component, rest, ok = SplitFirst("/a/b/c/")
	assert.True(t, ok)
	assert.Equal(t, "a", component)
	assert.Equal(t, "/b/c/", rest)

	component, rest, ok = SplitFirst("/a/")
	assert.True(t, ok)
	assert.Equal(t, "a", component)
	assert.Equal(t, "/", rest)
}

func TestSplitParent(t *testing.T) {
	_, _, ok := SplitParent("/")
	assert.False(t, ok)

	parent, last, ok := SplitParent("/a/b/c/")
	assert.True(t, ok)
	assert.Equal(t, "/a/b/", parent)
	assert.Equal(t, "c", last)

	parent, last, ok = SplitParent("/a/")
	assert.True(t, ok)
	assert.Equal(t, "/", parent)
	assert.Equal(t, "a", last)
}

func TestCountSlashes(t *testing.T) {
	assert.Equal(t, 1, CountSlashes("/"))
	assert.Equal(t, 2, CountSlashes("/a/"))
	assert.Equal(t, 4, CountSlashes("/a/b/c/"))
}

func TestSkip(t *testing.T) {
	assert.Equal(t, "/a/b/c/", Skip("/a/b/c/", 0))
	assert.Equal(t, "/b/c/", Skip("/a/b/c/", 1))
	assert.Equal(t, "/c/", Skip("/a/b/c/", 2))
	assert.Equal(t, "/", Skip("/a/b/c/", 3))
}

func TestIsPrefix(t *testing.T) {
	assert.True(t, IsPrefix("/a/", "/a/b/"))
	assert.True(t, IsPrefix("/", "/a/"))
	assert.False(t, IsPrefix("/a/", "/a/"))
	assert.False(t, IsPrefix("/a/b/", "/a/"))
	assert.False(t, IsPrefix("/a/", "/ab/"))
}

func TestConfigure(t *testing.T) {
	defer Configure(`[a-z0-9_-]`, MaxNameLength)

	assert.False(t, IsValid("/ABC/"))
	require := assert.New(t)
	require.NoError(Configure(`[A-Za-z]`, 10))
	assert.True(t, IsValid("/ABC/"))
	assert.False(t, IsValid("/abc123/"))

	assert.Error(t, Configure(`[`, 10))
}

func TestCommonDepth(t *testing.T) {
	assert.Equal(t, 1, CommonDepth("/", "/"))
	assert.Equal(t, 1, CommonDepth("/a/", "/b/"))
	assert.Equal(t, 2, CommonDepth("/a/b/", "/a/c/"))
	assert.Equal(t, 4, CommonDepth("/a/b/c/", "/a/b/c/"))
	assert.Equal(t, 3, CommonDepth("/a/b/c/", "/a/b/d/e/"))
}
