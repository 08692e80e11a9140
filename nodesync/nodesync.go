// Package nodesync implements a per-node reader/writer/quiescence monitor:
// a fair reader/writer lock with a signed "change" baton that hands
// released capacity to a specific waiter set, plus a quiescence wait used
// by destructive subtree operations.
package nodesync

import "sync"

// Monitor is a single node's synchronization state: reader count, writer
// count, waiting-reader count, waiting-writer count, the change baton, a
// quiescence-wait flag, one mutex, and three condition variables.
type Monitor struct {
	mtx sync.Mutex

	readers *sync.Cond
	writers *sync.Cond
	clear   *sync.Cond

	rcount int
	wcount int
	rwait  int
	wwait  int
	change int
	cwait  bool
}

// New returns a freshly initialized, unlocked Monitor.
func New() *Monitor {
	m := &Monitor{}
	m.readers = sync.NewCond(&m.mtx)
	m.writers = sync.NewCond(&m.mtx)
	m.clear = sync.NewCond(&m.mtx)
	return m
}

// RLock blocks until the node admits another reader: immediately if no
// writer holds or waits for the node, or once the change baton hands this
// waiter admission.
func (m *Monitor) RLock() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for (m.wcount > 0 || m.wwait > 0) && m.change <= 0 {
		m.rwait++
		m.readers.Wait()
		m.rwait--
	}
	m.rcount++
	if m.change > 0 {
		m.change--
		if m.change > 0 {
			// Chain-wake the remaining admitted readers.
			m.readers.Signal()
		}
	}
}

// RUnlock releases a reader hold, waking a waiting writer once the last
// reader departs.
func (m *Monitor) RUnlock() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.rcount--
	if m.rcount == 0 && m.wwait > 0 {
		m.change = -1
		m.writers.Signal()
	} else if m.cwait {
		m.clear.Signal()
	}
}

// Lock blocks until the node has no active reader, writer, or pending
// change baton, then takes exclusive ownership.
func (m *Monitor) Lock() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for m.rcount > 0 || m.wcount > 0 || m.change > 0 {
		m.wwait++
		m.writers.Wait()
		m.wwait--
	}
	m.wcount++
	m.change = 0
}

// Unlock releases exclusive ownership, handing the baton off in priority
// order: waiting readers, then a waiting writer, then a quiescence waiter.
func (m *Monitor) Unlock() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.wcount--
	switch {
	case m.rwait > 0:
		m.change = m.rwait
		m.readers.Signal()
	case m.wwait > 0:
		m.change = -1
		m.writers.Signal()
	case m.cwait:
		m.clear.Signal()
	}
}

// AwaitQuiescent blocks until no reader, writer, or waiter remains on this
// node. It acquires the node's mutex directly, bypassing the reader/writer
// entry protocols entirely — callers (remove, move) rely on this being
// safe because they call it only while holding a writer lock on the
// node's parent, which prevents any new traversal from reaching this node
// by name.
func (m *Monitor) AwaitQuiescent() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for !m.quiescentLocked() {
		m.cwait = true
		m.clear.Wait()
		m.cwait = false
	}
}

func (m *Monitor) quiescentLocked() bool {
	return m.rcount == 0 && m.wcount == 0 && m.rwait == 0 && m.wwait == 0
}

// Counters is a point-in-time snapshot of a Monitor's state, for tests and
// debug logging.
type Counters struct {
	RCount, WCount, RWait, WWait, Change int
	CWait                                bool
}

// Snapshot returns the Monitor's current counters.
func (m *Monitor) Snapshot() Counters {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return Counters{
		RCount: m.rcount,
		WCount: m.wcount,
		RWait:  m.rwait,
		WWait:  m.wwait,
		Change: m.change,
		CWait:  m.cwait,
	}
}
