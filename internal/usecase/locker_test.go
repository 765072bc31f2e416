package usecase

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLocker(t *testing.T) {
	t.Run("Serialises holders of the same key", func(t *testing.T) {
		locks := newKeyLocker()

		var (
			wg      sync.WaitGroup
			inside  int
			maxSeen int
			mu      sync.Mutex
		)

		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				unlock := locks.lock("ABCD")
				defer unlock()

				mu.Lock()
				inside++
				maxSeen = max(maxSeen, inside)
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, maxSeen)
		assert.Zero(t, locks.size())
	})

	t.Run("Different keys do not block each other", func(t *testing.T) {
		locks := newKeyLocker()

		unlockA := locks.lock("AAAA")
		unlockB := locks.lock("BBBB")
		assert.Equal(t, 2, locks.size())

		unlockA()
		unlockB()
		assert.Zero(t, locks.size())
	})
}
