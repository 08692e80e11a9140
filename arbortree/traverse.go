package arbortree

import (
	"github.com/arbortree/arbor/errs"
	"github.com/arbortree/arbor/pathutil"
)

// findNode descends path from start, taking steps reader locks and a final
// writer lock on the node steps components down. When steps == 0, start
// itself is writer-locked directly with no descent.
//
// On success the caller holds a writer lock on the returned node. On
// ENOENT, every lock taken so far (including on start, if any) has already
// been released.
func findNode(start *Node, path string, steps int) (*Node, errs.Code) {
	if steps == 0 {
		start.sync.Lock()
		return start, errs.OK
	}

	start.sync.RLock()
	cur := start
	remaining := steps
	for remaining > 0 {
		name, rest, ok := pathutil.SplitFirst(path)
		if !ok {
			cur.sync.RUnlock()
			return nil, errs.ENOENT
		}
		child, found := cur.children.Get(name)
		if !found {
			cur.sync.RUnlock()
			return nil, errs.ENOENT
		}
		remaining--
		if remaining == 0 {
			child.sync.Lock()
		} else {
			child.sync.RLock()
		}
		cur.sync.RUnlock()
		cur = child
		path = rest
	}
	return cur, errs.OK
}

// descendKeepingAnchor continues a descent from anchor (already locked by
// the caller, as a writer) down `steps` further components, without ever
// releasing anchor itself. Used by move to reach target-parent and
// source-parent from an already writer-locked lowest common ancestor.
//
// steps == 0 means anchor is itself the destination.
func descendKeepingAnchor(anchor *Node, path string, steps int) (*Node, errs.Code) {
	if steps == 0 {
		return anchor, errs.OK
	}

	cur := anchor
	atAnchor := true
	remaining := steps
	for remaining > 0 {
		name, rest, ok := pathutil.SplitFirst(path)
		if !ok {
			if !atAnchor {
				cur.sync.RUnlock()
			}
			return nil, errs.ENOENT
		}
		child, found := cur.children.Get(name)
		if !found {
			if !atAnchor {
				cur.sync.RUnlock()
			}
			return nil, errs.ENOENT
		}
		remaining--
		if remaining == 0 {
			child.sync.Lock()
		} else {
			child.sync.RLock()
		}
		if !atAnchor {
			cur.sync.RUnlock()
		}
		cur = child
		atAnchor = false
		path = rest
	}
	return cur, errs.OK
}

// readDescend is list's read-only hand-over-hand descent: every node along
// path, including the final one, is locked as a reader. On success the
// caller holds a reader lock on the returned node.
func readDescend(start *Node, path string) (*Node, errs.Code) {
	start.sync.RLock()
	cur := start
	for {
		name, rest, ok := pathutil.SplitFirst(path)
		if !ok {
			return cur, errs.OK
		}
		child, found := cur.children.Get(name)
		if !found {
			cur.sync.RUnlock()
			return nil, errs.ENOENT
		}
		child.sync.RLock()
		cur.sync.RUnlock()
		cur = child
		path = rest
	}
}

// bfsClear drains every node of root's subtree (root included) to
// quiescence, breadth-first. Safe to walk children without locking because
// the subtree is sealed: its only entry edge (in source-parent's map) is
// held under a writer lock by the caller for the duration.
func bfsClear(root *Node) {
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		n.sync.AwaitQuiescent()
		n.children.Each(func(_ string, child *Node) {
			queue = append(queue, child)
		})
	}
}

// unlockDistinct writer-unlocks each of nodes, skipping nils and nodes
// already unlocked earlier in the slice (so callers can pass overlapping
// node sets — e.g. when the LCA coincides with source- or target-parent —
// without double-unlocking).
func unlockDistinct(nodes ...*Node) {
	seen := make(map[*Node]bool, len(nodes))
	for _, n := range nodes {
		if n == nil || seen[n] {
			continue
		}
		seen[n] = true
		n.sync.Unlock()
	}
}

// releaseIfDistinct writer-unlocks n unless it is one of others — used to
// release move's lowest common ancestor once both endpoints are pinned,
// skipping the unlock when the ancestor coincides with one of them.
func releaseIfDistinct(n *Node, others ...*Node) {
	for _, o := range others {
		if n == o {
			return
		}
	}
	n.sync.Unlock()
}
