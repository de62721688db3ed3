package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkLocks_MutualExclusionPerWork(t *testing.T) {
	locks := newWorkLocks()

	assert.True(t, locks.TryAcquire("work-1"))
	assert.False(t, locks.TryAcquire("work-1"))

	// Different works are independent.
	assert.True(t, locks.TryAcquire("work-2"))
	locks.Release("work-2")

	locks.Release("work-1")
	assert.True(t, locks.TryAcquire("work-1"))
	locks.Release("work-1")
}

func TestWorkLocks_EntriesEvictedWhenUnused(t *testing.T) {
	locks := newWorkLocks()

	assert.True(t, locks.TryAcquire("work-1"))
	locks.Release("work-1")

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks)
}
