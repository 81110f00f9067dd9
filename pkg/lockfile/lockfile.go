// Package lockfile serializes writers that share a file on disk.
//
// The lock is a sibling file created with O_EXCL. Holders that die
// without cleaning up leave it behind, so waiting callers get told
// each second through the waiting callback and can decide to stop by
// cancelling the context.
package lockfile

import (
	"context"
	"os"
	"time"
)

// Take acquires the lock at path, retrying once a second until the
// context ends. The returned func releases the lock.
func Take(ctx context.Context, path string, waiting func()) (func(), error) {
	tk := time.NewTicker(time.Second)
	defer tk.Stop()

	var (
		f   *os.File
		err error
	)

	for {
		f, err = os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			break
		}

		if waiting != nil {
			waiting()
		}

		select {
		case <-tk.C:
			// ok
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.Close()

	release := func() {
		os.Remove(path)
	}

	return release, nil
}
