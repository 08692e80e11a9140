package nodesync

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Assert wraps testify's Assertions with domain-specific checks.
type Assert struct {
	*assert.Assertions
}

func (a *Assert) Quiescent(m *Monitor) {
	c := m.Snapshot()
	a.Equal(0, c.RCount, "rcount")
	a.Equal(0, c.WCount, "wcount")
	a.Equal(0, c.RWait, "rwait")
	a.Equal(0, c.WWait, "wwait")
}

func TestFreshMonitorIsQuiescent(t *testing.T) {
	a := Assert{assert.New(t)}
	m := New()
	a.Quiescent(m)
}

func TestConcurrentReaders(t *testing.T) {
	a := Assert{assert.New(t)}
	m := New()

	const n = 8
	var wg sync.WaitGroup
	var active int32
	var maxActive int32
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			m.RLock()
			cur := atomic.AddInt32(&active, 1)
			for {
				prev := atomic.LoadInt32(&maxActive)
				if cur <= prev || atomic.CompareAndSwapInt32(&maxActive, prev, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			m.RUnlock()
		}()
	}
	wg.Wait()
	a.Greater(int(atomic.LoadInt32(&maxActive)), 1, "readers should overlap")
	a.Quiescent(m)
}

func TestWriterExclusion(t *testing.T) {
	a := Assert{assert.New(t)}
	m := New()

	const n = 8
	var wg sync.WaitGroup
	var active int32
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			m.Lock()
			cur := atomic.AddInt32(&active, 1)
			a.LessOrEqual(int(cur), 1, "writers must be exclusive")
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
			m.Unlock()
		}()
	}
	wg.Wait()
	a.Quiescent(m)
}

func TestWriterWaitsForReaders(t *testing.T) {
	a := Assert{assert.New(t)}
	m := New()

	m.RLock()
	writerDone := make(chan struct{})
	go func() {
		m.Lock()
		close(writerDone)
		m.Unlock()
	}()

	// Give the writer time to register as waiting.
	time.Sleep(20 * time.Millisecond)
	select {
	case <-writerDone:
		t.Fatal("writer proceeded while reader held the lock")
	default:
	}

	m.RUnlock()
	<-writerDone
	a.Quiescent(m)
}

func TestWaitingWriterBlocksNewReaders(t *testing.T) {
	// A reader holds the node; a writer queues behind it; a second reader
	// arrives after the writer is already waiting. The new reader must not
	// jump ahead of the waiting writer (fairness via the change baton).
	m := New()
	m.RLock()

	writerEntered := make(chan struct{})
	go func() {
		m.Lock()
		close(writerEntered)
		time.Sleep(20 * time.Millisecond)
		m.Unlock()
	}()
	time.Sleep(10 * time.Millisecond) // let the writer start waiting

	var order []string
	var mu sync.Mutex
	secondReaderDone := make(chan struct{})
	go func() {
		m.RLock()
		mu.Lock()
		order = append(order, "reader2")
		mu.Unlock()
		m.RUnlock()
		close(secondReaderDone)
	}()
	time.Sleep(10 * time.Millisecond)

	m.RUnlock() // release the first reader; writer should go next

	select {
	case <-writerEntered:
	case <-time.After(time.Second):
		t.Fatal("writer never entered")
	}
	mu.Lock()
	order = append(order, "writer")
	mu.Unlock()

	<-secondReaderDone
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"writer", "reader2"}, order)
}

func TestAwaitQuiescentBlocksUntilDrained(t *testing.T) {
	m := New()
	m.RLock()

	done := make(chan struct{})
	go func() {
		m.AwaitQuiescent()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("AwaitQuiescent returned while a reader was still active")
	default:
	}

	m.RUnlock()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("AwaitQuiescent never woke up")
	}
}
