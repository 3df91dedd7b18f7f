package golden

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.framing.dev/pkg"
)

func TestParse(t *testing.T) {
	cases := []struct {
		data   string
		fail   bool
		expect *Case
	}{
		{
			"comment\n-- previous --\nx;\n-- current --\nif (x) { x; }\n-- want --\ntrue\n",
			false,
			&Case{Name: "t", Comment: "comment", Previous: "x;\n", Current: "if (x) { x; }\n", Want: true},
		},
		{
			"-- previous --\n-- current --\n-- want --\nfalse\n",
			false,
			&Case{Name: "t", Want: false},
		},
		{
			"-- previous --\nx;\n-- want --\ntrue\n",
			true,
			nil,
		},
		{
			"-- previous --\n-- current --\n-- want --\nmaybe\n",
			true,
			nil,
		},
	}

	for _, c := range cases {
		got, err := Parse("t", []byte(c.data))
		if c.fail {
			assert.Error(t, err)
			continue
		}

		require.NoError(t, err)
		assert.Equal(t, c.expect, got)
	}
}

func TestCheck(t *testing.T) {
	paths := []string{
		filepath.Join("testdata", "framed.txtar"),
		filepath.Join("testdata", "changed.txtar"),
		filepath.Join("testdata", "wrong_want.txtar"),
		filepath.Join("testdata", "unfinished.txtar"),
	}

	results, err := Check(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	for i, r := range results {
		assert.Equal(t, paths[i], r.Case.Name)
	}

	assert.True(t, results[0].Passed())
	assert.True(t, results[0].Found)
	assert.Equal(t, 2, results[0].Match.Length)

	assert.True(t, results[1].Passed())
	assert.False(t, results[1].Found)

	assert.False(t, results[2].Passed())
	assert.True(t, results[2].Found)

	assert.True(t, results[3].Passed())
	var syntaxErr *framing.SyntaxError
	assert.ErrorAs(t, results[3].CurrentErr, &syntaxErr)
	assert.Nil(t, results[3].Current)
}

func TestCheckMissingFile(t *testing.T) {
	_, err := Check(context.Background(), []string{filepath.Join("testdata", "missing.txtar")}, 1)
	assert.Error(t, err)
}

func TestCheckCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Check(ctx, []string{filepath.Join("testdata", "framed.txtar")}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
