package sync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapBasic(t *testing.T) {
	m := NewMap[string, int]()

	_, ok := m.Load("a")
	assert.False(t, ok)

	m.Store("a", 1)
	v, ok := m.Load("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, m.Len())

	m.Delete("a")
	_, ok = m.Load("a")
	assert.False(t, ok)
}

func TestMapLoadOrStore(t *testing.T) {
	m := NewMap[string, int]()

	actual, loaded := m.LoadOrStore("k", 10)
	assert.False(t, loaded)
	assert.Equal(t, 10, actual)

	actual, loaded = m.LoadOrStore("k", 20)
	assert.True(t, loaded)
	assert.Equal(t, 10, actual)
}

func TestMapLoadAndDelete(t *testing.T) {
	m := NewMap[string, int]()
	m.Store("k", 5)

	v, loaded := m.LoadAndDelete("k")
	assert.True(t, loaded)
	assert.Equal(t, 5, v)

	_, loaded = m.LoadAndDelete("k")
	assert.False(t, loaded)
}

func TestMapRange(t *testing.T) {
	m := NewMap[string, int]()
	m.Store("a", 1)
	m.Store("b", 2)

	seen := map[string]int{}
	m.Range(func(k string, v int) bool {
		seen[k] = v
		return true
	})
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, seen)
}

func TestMapWithLock(t *testing.T) {
	m := NewMap[string, int]()

	m.WithLock(func(view View[string, int]) {
		view.Set("a", 1)
		view.Set("b", 2)
		v, ok := view.Get("a")
		assert.True(t, ok)
		view.Set("c", v+10)
		view.Delete("b")
		assert.Equal(t, 2, view.Len())
	})

	v, ok := m.Load("c")
	assert.True(t, ok)
	assert.Equal(t, 11, v)
}

func TestMapConcurrent(t *testing.T) {
	m := NewMap[int, int]()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Store(i, i)
			m.Load(i)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, m.Len())
}
