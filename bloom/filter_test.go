package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/kmitrowski/paperparse/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.TestAndAdd("hash-1"))
	assert.True(t, f.TestAndAdd("hash-1"))
	assert.True(t, f.Test("hash-1"))
	assert.False(t, f.Test("hash-2"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	for i := 0; i < 100; i++ {
		f.TestAndAdd(fmt.Sprintf("hash-%d", i))
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 100, float64(count), 10)
}

func TestFilter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				f.TestAndAdd(fmt.Sprintf("worker-%d-hash-%d", w, i))
			}
		}(w)
	}
	wg.Wait()

	assert.True(t, f.Test("worker-0-hash-0"))
	assert.True(t, f.Test("worker-7-hash-199"))
}
