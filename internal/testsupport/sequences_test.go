package testsupport

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSequence_Increments(t *testing.T) {
	seq1 := NextSequence()
	seq2 := NextSequence()

	assert.Equal(t, seq1+1, seq2, "Should increment by 1")
}

func TestUniqueName_GeneratesUnique(t *testing.T) {
	name1 := UniqueName("Acme")
	name2 := UniqueName("Acme")

	assert.NotEqual(t, name1, name2, "Names should be unique")
	assert.Contains(t, name1, "Acme_", "Should contain prefix")
}

func TestUniqueSessionID_Concurrent(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := UniqueSessionID()
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[id], "Session ID should be unique: %s", id)
			seen[id] = true
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}

func TestUniqueString_GeneratesUUID(t *testing.T) {
	str1 := UniqueString()
	str2 := UniqueString()

	assert.NotEqual(t, str1, str2, "Should generate unique strings")
	assert.Len(t, str1, 36, "Should be valid UUID length")
}
