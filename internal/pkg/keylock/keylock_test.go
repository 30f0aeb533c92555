package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	kl := New()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			kl.Lock("5:2026-12-30")
			defer kl.Unlock("5:2026-12-30")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyLock_DifferentKeysIndependent(t *testing.T) {
	kl := New()

	kl.Lock("a")
	done := make(chan struct{})
	go func() {
		kl.Lock("b") // must not block on "a"
		kl.Unlock("b")
		close(done)
	}()
	<-done
	kl.Unlock("a")
}

func TestKeyLock_EntryFreedAfterUnlock(t *testing.T) {
	kl := New()

	kl.Lock("x")
	kl.Unlock("x")

	// Re-locking a released key must work from a clean slate.
	kl.Lock("x")
	kl.Unlock("x")
}

func TestKeyLock_UnlockUnheldPanics(t *testing.T) {
	kl := New()

	assert.Panics(t, func() {
		kl.Unlock("never-locked")
	})
}
