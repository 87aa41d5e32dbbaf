//go:build unix && !linux

package vmem

const lazyFlags = 0
