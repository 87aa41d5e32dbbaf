package settled

import (
	"github.com/pavanmanishd/settled/internal/vmem"
)

// Policy selects how an Arena turns reserved address space into usable
// memory.
type Policy int

const (
	// PolicyLazy maps the whole reservation read/write on first growth and
	// leaves physical backing to the operating system's demand paging.
	// Later growth requests need no system calls.
	PolicyLazy Policy = iota
	// PolicyCommit maps the reservation without access and grants
	// read/write permission page span by page span as the arena grows.
	// Each growth event costs one system call and commits exactly the
	// pages needed.
	PolicyCommit
)

func (p Policy) String() string {
	switch p {
	case PolicyLazy:
		return "lazy"
	case PolicyCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// strategy implements one growth policy on behalf of an Arena.
type strategy interface {
	access() vmem.Access
	// grow makes at least chunkSize*chunkCount more bytes usable.
	grow(a *Arena, chunkSize, chunkCount int) error
}

func (p Policy) strategy() strategy {
	if p == PolicyCommit {
		return commitStrategy{}
	}
	return lazyStrategy{}
}

type lazyStrategy struct{}

func (lazyStrategy) access() vmem.Access { return vmem.AccessReadWrite }

func (s lazyStrategy) grow(a *Arena, chunkSize, chunkCount int) error {
	if a.region != nil {
		// Everything inside the reservation is already usable.
		return nil
	}
	bytes := chunkSize * chunkCount
	if bytes > a.reservation {
		return a.exhausted(chunkSize, chunkCount)
	}
	if err := a.reserve(s.access()); err != nil {
		return err
	}
	a.committed = a.region.Len()
	a.advance(chunkSize, floorChunk(a.committed, chunkSize), bytes)
	return nil
}

type commitStrategy struct{}

func (commitStrategy) access() vmem.Access { return vmem.AccessNone }

func (s commitStrategy) grow(a *Arena, chunkSize, chunkCount int) error {
	bytes := chunkSize * chunkCount
	start := a.committed
	span := vmem.RoundUp(bytes)
	if span > a.reservation-start {
		return a.exhausted(chunkSize, chunkCount)
	}
	if a.region == nil {
		if err := a.reserve(s.access()); err != nil {
			return err
		}
	}
	if err := a.region.Commit(start, span); err != nil {
		a.cfg.logger.WithField("action", "arena_commit").
			WithField("offset", start).
			WithField("length", span).
			WithError(err).
			Error("commit failed")
		return &CommitError{Offset: start, Length: span, Err: err}
	}
	a.committed = start + span
	a.stats.commits.Add(1)
	a.cfg.logger.WithField("action", "arena_commit").
		WithField("offset", start).
		WithField("length", span).
		Debug("committed pages")
	a.advance(chunkSize, floorChunk(a.committed, chunkSize), bytes)
	return nil
}

// floorChunk returns the largest multiple of chunkSize not above n.
func floorChunk(n, chunkSize int) int {
	return n / chunkSize * chunkSize
}
