package framing

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

func section(archive *txtar.Archive, name string) (string, bool) {
	for _, f := range archive.Files {
		if f.Name == name {
			return string(f.Data), true
		}
	}

	return "", false
}

func TestFramingIfScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "framing", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			archive, err := txtar.ParseFile(file)
			require.NoError(t, err)

			previousSrc, ok := section(archive, "previous")
			require.True(t, ok)
			currentSrc, ok := section(archive, "current")
			require.True(t, ok)
			want, ok := section(archive, "want")
			require.True(t, ok)

			c := NewCompiler()
			previous, err := c.CompileString(previousSrc)
			require.NoError(t, err)

			// A failed analysis leaves no snapshot to compare.
			current, _ := c.CompileString(currentSrc)

			assert.Equal(t, strings.TrimSpace(want) == "true", FramingIfFinder{}.FeatureFound(previous, current))
		})
	}
}

func TestFindFramingIfMatch(t *testing.T) {
	previous := compile(t, "@x = 1;\nx + 1;\nx * 2;\n@y = 3;")
	current := compile(t, "@x = 1;\nif (x > 0) {\n  @z = 0;\n  x + 1;\n  x * 2;\n}\n@y = 3;")

	m, found := FindFramingIf(previous, current)
	require.True(t, found)

	assert.Same(t, current.Statements()[1], m.If)
	assert.Equal(t, 1, m.BodyStart)
	assert.Equal(t, 1, m.PreviousStart)
	assert.Equal(t, 2, m.Length)

	start, end := current.Locate(m.Span())
	assert.Equal(t, "if (x > 0) {\n  @z = 0;\n  x + 1;\n  x * 2;\n}", current.Source[start:end])
}

func TestFeatureFoundIsAsymmetric(t *testing.T) {
	plain := compile(t, "x+1;")
	framed := compile(t, "if (x>0) { x+1; }")

	var finder FeatureFinder = FramingIfFinder{}
	assert.True(t, finder.FeatureFound(plain, framed))
	assert.False(t, finder.FeatureFound(framed, plain))
}

func TestFeatureFoundNilSnapshots(t *testing.T) {
	snap := compile(t, "x;")

	assert.False(t, FramingIfFinder{}.FeatureFound(nil, snap))
	assert.False(t, FramingIfFinder{}.FeatureFound(snap, nil))
	assert.False(t, FramingIfFinder{}.FeatureFound(EmptySnapshot(), snap))
}

func TestFeatureFoundDoesNotMutate(t *testing.T) {
	previous := compile(t, "a; b;")
	current := compile(t, "if (a) { a; b; }")

	prevTokens := append([]Token(nil), previous.Tokens...)
	prevStmts := append([]ExecNode(nil), previous.Statements()...)

	assert.True(t, FramingIfFinder{}.FeatureFound(previous, current))
	assert.Equal(t, prevTokens, previous.Tokens)
	assert.Equal(t, prevStmts, previous.Statements())
}

func TestAddedStatements(t *testing.T) {
	before := compile(t, "a; a; b;").Statements()
	after := compile(t, "a; b; a; a; c;").Statements()

	added := addedStatements(before, after)
	require.Len(t, added, 2)
	assert.True(t, Equal(after[3], added[0]))
	assert.True(t, Equal(after[4], added[1]))
}

func TestLocate(t *testing.T) {
	snap := compile(t, "@x = 1;\n  x + 22;")

	cases := []struct {
		span   Span
		expect string
	}{
		{Span{0, 5}, "@x = 1;"},
		{Span{5, 9}, "x + 22;"},
		{Span{7, 8}, "22"},
		{Span{2, 2}, ""},
		{Span{9, 9}, ""},
	}

	for _, c := range cases {
		start, end := snap.Locate(c.span)
		assert.Equal(t, c.expect, snap.Source[start:end], "%v", c.span)
	}
}
