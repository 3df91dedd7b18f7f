//go:build linux

package watch

import (
	"context"
	"path/filepath"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	changeMask  = unix.IN_MODIFY | unix.IN_CLOSE_WRITE
	replaceMask = unix.IN_IGNORED | unix.IN_DELETE_SELF | unix.IN_MOVE_SELF
)

// File calls onChange with the content of path once, then after every
// modification, until ctx is done. Events arriving together are delivered
// once. poll is the idle wait between reads of the inotify descriptor.
func File(ctx context.Context, path string, poll time.Duration, onChange Func) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return errors.Wrap(err, "inotify_init failed")
	}
	defer unix.Close(fd)

	if _, err := unix.InotifyAddWatch(fd, abs, changeMask|replaceMask); err != nil {
		return errors.Wrapf(err, "failed to watch %s", abs)
	}

	deliver(abs, onChange)

	buf := make([]byte, (unix.SizeofInotifyEvent+unix.NAME_MAX+1)*16)
	for {
		n, err := unix.Read(fd, buf)
		if err == unix.EAGAIN || err == unix.EINTR {
			if !sleep(ctx, poll) {
				return nil
			}

			continue
		}

		if err != nil {
			return errors.Wrap(err, "reading inotify events")
		}

		changed, replaced := false, false
		for offset := 0; offset+unix.SizeofInotifyEvent <= n; {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			offset += unix.SizeofInotifyEvent + int(event.Len)

			changed = changed || event.Mask&changeMask != 0
			replaced = replaced || event.Mask&replaceMask != 0
		}

		if replaced {
			if _, err := unix.InotifyAddWatch(fd, abs, changeMask|replaceMask); err != nil {
				// Not back yet; try again after the next wait.
				if !sleep(ctx, poll) {
					return nil
				}

				continue
			}

			changed = true
		}

		if changed {
			deliver(abs, onChange)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}
