package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cases := []struct {
		env    map[string]string
		expect Config
	}{
		{
			map[string]string{},
			Config{Addr: ":8080", PollInterval: 250 * time.Millisecond, Workers: 4},
		},
		{
			map[string]string{
				"FRAMING_ADDR":    "127.0.0.1:9000",
				"FRAMING_VERBOSE": "true",
				"FRAMING_POLL_MS": "40",
				"FRAMING_WORKERS": "16",
			},
			Config{Addr: "127.0.0.1:9000", Verbose: true, PollInterval: 40 * time.Millisecond, Workers: 16},
		},
		{
			map[string]string{
				"FRAMING_POLL_MS": "-5",
				"FRAMING_WORKERS": "0",
			},
			Config{Addr: ":8080", PollInterval: 250 * time.Millisecond, Workers: 1},
		},
	}

	for _, c := range cases {
		for _, name := range []string{"FRAMING_ADDR", "FRAMING_VERBOSE", "FRAMING_POLL_MS", "FRAMING_WORKERS"} {
			t.Setenv(name, c.env[name])
		}

		assert.Equal(t, &c.expect, Load())
	}
}

func TestLoggerDebugf(t *testing.T) {
	var buf bytes.Buffer

	quiet := (&Config{}).Logger(&buf)
	quiet.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	loud := (&Config{Verbose: true}).Logger(&buf)
	loud.Debugf("shown %d", 2)
	assert.Contains(t, buf.String(), "framing: ")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestLoadSeesLaterChanges(t *testing.T) {
	t.Setenv("FRAMING_WORKERS", "3")
	assert.Equal(t, 3, Load().Workers)

	t.Setenv("FRAMING_WORKERS", "9")
	assert.Equal(t, 9, Load().Workers)
}
