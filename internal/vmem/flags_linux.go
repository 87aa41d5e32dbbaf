//go:build linux

package vmem

import "golang.org/x/sys/unix"

// A read/write reservation is backed on demand; skip overcommit accounting
// for the untouched part.
const lazyFlags = unix.MAP_NORESERVE
