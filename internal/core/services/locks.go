package services

import "sync"

// workLocks provides single-writer discipline per work. Conversion and
// chunk-apply for the same work are mutually exclusive; operations on
// different works run in parallel.
type workLocks struct {
	mu    sync.Mutex
	locks map[string]*workLock
}

type workLock struct {
	mu   sync.Mutex
	refs int
}

func newWorkLocks() *workLocks {
	return &workLocks{locks: make(map[string]*workLock)}
}

// TryAcquire takes the work's lock without blocking. Returns false if
// another conversion or apply holds it.
func (w *workLocks) TryAcquire(workID string) bool {
	w.mu.Lock()
	l, ok := w.locks[workID]
	if !ok {
		l = &workLock{}
		w.locks[workID] = l
	}
	l.refs++
	w.mu.Unlock()

	if l.mu.TryLock() {
		return true
	}
	w.release(workID, l)
	return false
}

// Release returns the work's lock.
func (w *workLocks) Release(workID string) {
	w.mu.Lock()
	l, ok := w.locks[workID]
	w.mu.Unlock()
	if !ok {
		return
	}
	l.mu.Unlock()
	w.release(workID, l)
}

// release drops a reference and evicts the entry once unused, keeping
// the map from growing with every work ever touched.
func (w *workLocks) release(workID string, l *workLock) {
	w.mu.Lock()
	defer w.mu.Unlock()
	l.refs--
	if l.refs <= 0 {
		delete(w.locks, workID)
	}
}
