//go:build !linux

package watch

import (
	"context"
	"os"
	"time"
)

// File calls onChange with the content of path once, then whenever its size
// or modification time changes, until ctx is done. The file is checked every
// poll interval.
func File(ctx context.Context, path string, poll time.Duration, onChange Func) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	deliver(path, onChange)

	last := info
	for sleep(ctx, poll) {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		if info.Size() != last.Size() || !info.ModTime().Equal(last.ModTime()) {
			last = info
			deliver(path, onChange)
		}
	}

	return nil
}
