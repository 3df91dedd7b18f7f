// Package watch delivers the content of a file every time it changes.
package watch

import (
	"context"
	"os"
	"time"
)

// Func receives the full content of the watched file.
type Func func(content string)

func deliver(path string, onChange Func) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		// Editors may replace the file; the next event will find it again.
		return false
	}

	onChange(string(data))
	return true
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
