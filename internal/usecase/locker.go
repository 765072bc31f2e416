package usecase

import "sync"

type refLock struct {
	sync.Mutex
	refs int
}

// keyLocker hands out one mutex per key and forgets it once nobody holds or
// waits for it.
type keyLocker struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

func newKeyLocker() *keyLocker {
	return &keyLocker{locks: make(map[string]*refLock)}
}

func (that *keyLocker) lock(key string) (unlock func()) {
	that.mu.Lock()
	lock, ok := that.locks[key]
	if !ok {
		lock = &refLock{}
		that.locks[key] = lock
	}
	lock.refs++
	that.mu.Unlock()

	lock.Lock()

	return func() {
		lock.Unlock()

		that.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(that.locks, key)
		}
		that.mu.Unlock()
	}
}

func (that *keyLocker) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}
