// Package config reads the settings of the framing tools from the
// environment. Command line flags may override any of them.
package config

import (
	"io"
	"log"
	"time"

	"github.com/xyproto/env/v2"
)

const (
	defaultAddr    = ":8080"
	defaultPollMS  = 250
	defaultWorkers = 4
)

type Config struct {
	// Addr is the listen address of the RPC server (FRAMING_ADDR).
	Addr string
	// Verbose enables debug logging (FRAMING_VERBOSE).
	Verbose bool
	// PollInterval is how often a watched file is checked when the platform
	// has no change notifications (FRAMING_POLL_MS).
	PollInterval time.Duration
	// Workers bounds how many golden scenarios are checked at once
	// (FRAMING_WORKERS).
	Workers int
}

// Load reads the current environment. The env package caches variables, so
// the cache is refreshed first.
func Load() *Config {
	env.Load()

	c := &Config{
		Addr:         env.Str("FRAMING_ADDR", defaultAddr),
		Verbose:      env.Bool("FRAMING_VERBOSE"),
		PollInterval: time.Duration(env.Int("FRAMING_POLL_MS", defaultPollMS)) * time.Millisecond,
		Workers:      env.Int("FRAMING_WORKERS", defaultWorkers),
	}

	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollMS * time.Millisecond
	}

	if c.Workers < 1 {
		c.Workers = 1
	}

	return c
}

// Logger returns a logger writing to w. Debugf output is dropped unless
// Verbose is set.
func (c *Config) Logger(w io.Writer) *Logger {
	return &Logger{
		Logger:  log.New(w, "framing: ", log.LstdFlags),
		verbose: c.Verbose,
	}
}

type Logger struct {
	*log.Logger
	verbose bool
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.verbose {
		l.Printf(format, args...)
	}
}
