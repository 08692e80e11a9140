// Package arbortree implements a concurrent in-memory directory tree: a
// hand-over-hand traversal engine and four tree operations (list, create,
// remove, move) plus subtree quiescence, built on nodesync's
// reader/writer/baton monitor and childmap's name→child container.
package arbortree

import (
	"sync"

	"github.com/arbortree/arbor/childmap"
	"github.com/arbortree/arbor/nodesync"
)

// Node is the tree's only entity: a directory, owning a name→child mapping
// and its own synchronization state.
type Node struct {
	name     string
	sync     *nodesync.Monitor
	children *childmap.Map[*Node]
}

var childMapPool = sync.Pool{
	New: func() any {
		return make(map[string]*Node)
	},
}

func newNode(name string) *Node {
	raw := childMapPool.Get().(map[string]*Node)
	return &Node{
		name:     name,
		sync:     nodesync.New(),
		children: childmap.From(raw),
	}
}

// release clears the node's child map and returns its backing storage to
// the pool. Callers must hold no further reference to n afterwards.
func (n *Node) release() {
	raw := n.children.Raw()
	for k := range raw {
		delete(raw, k)
	}
	childMapPool.Put(raw)
	n.children = nil
}

// Fields implements debug.DebugStruct, for verbose log output.
func (n *Node) Fields() map[string]any {
	c := n.sync.Snapshot()
	return map[string]any{
		"name":     n.name,
		"children": n.children.Len(),
		"rcount":   c.RCount,
		"wcount":   c.WCount,
		"rwait":    c.RWait,
		"wwait":    c.WWait,
		"change":   c.Change,
		"cwait":    c.CWait,
	}
}
