package main

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.framing.dev/pkg"
)

func TestRetryPrompt(t *testing.T) {
	cases := []struct {
		err   error
		retry bool
	}{
		{liner.ErrPromptAborted, true},
		{io.EOF, false},
		{os.ErrClosed, false},
		{errors.New("not a terminal"), false},
	}

	for _, c := range cases {
		assert.Equal(t, c.retry, retryPrompt(c.err), "%v", c.err)
	}
}

func TestHandleCommand(t *testing.T) {
	session := framing.NewSession()
	var buffer strings.Builder
	buffer.WriteString("x;")

	_, err := session.Insert(buffer.String())
	require.NoError(t, err)

	assert.False(t, handleCommand(":show", session, &buffer))
	assert.Equal(t, "x;", buffer.String())

	assert.False(t, handleCommand(":reset", session, &buffer))
	assert.Empty(t, buffer.String())
	assert.Empty(t, session.Previous().Statements())

	assert.False(t, handleCommand(":nope", session, &buffer))
	assert.True(t, handleCommand(":quit", session, &buffer))
}
