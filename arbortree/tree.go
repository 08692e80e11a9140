package arbortree

import (
	"github.com/arbortree/arbor/errs"
	"github.com/arbortree/arbor/log"
	"github.com/arbortree/arbor/pathutil"
)

// Tree is a concurrent in-memory directory tree: a single root node
// reachable from every operation, synchronized node by node so unrelated
// subtrees never contend.
type Tree struct {
	root *Node
	log  log.Log
}

// New returns a Tree containing only the root folder "/", logging nowhere.
func New() *Tree {
	return NewWithLog(log.NoLog{})
}

// NewWithLog returns a Tree that reports every operation and decision
// point to l.
func NewWithLog(l log.Log) *Tree {
	if l == nil {
		l = log.NoLog{}
	}
	return &Tree{root: newNode(""), log: l}
}

// Free discards the tree's contents, draining every node to quiescence
// first. After Free returns, t must not be used again. Callers must ensure
// no concurrent operation is in progress; the root has no external guard.
func (t *Tree) Free() {
	cookie := t.log.Call("Free", nil)
	bfsClear(t.root)
	queue := []*Node{t.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		n.children.Each(func(_ string, child *Node) {
			queue = append(queue, child)
		})
		n.release()
	}
	t.log.Return("Free", cookie, nil)
}

// List returns the comma-joined, sorted names of path's immediate children.
// List takes only reader locks along the way, so many Lists on overlapping
// paths proceed concurrently.
func (t *Tree) List(path string) (string, errs.Code) {
	cookie := t.log.Call("List", log.M{"path": path})
	names, code := t.list(path)
	t.log.Return("List", cookie, log.M{"names": names, "code": code.String()})
	return names, code
}

func (t *Tree) list(path string) (string, errs.Code) {
	if !pathutil.IsValid(path) {
		return "", errs.EINVAL
	}
	n, code := readDescend(t.root, path)
	if code != errs.OK {
		return "", code
	}
	defer n.sync.RUnlock()
	return n.children.Join(), errs.OK
}

// Create adds a new, empty folder at path, which must not already exist;
// its parent must.
func (t *Tree) Create(path string) errs.Code {
	cookie := t.log.Call("Create", log.M{"path": path})
	code := t.create(path)
	t.log.Return("Create", cookie, log.M{"code": code.String()})
	return code
}

func (t *Tree) create(path string) errs.Code {
	if !pathutil.IsValid(path) {
		return errs.EINVAL
	}
	parentPath, name, ok := pathutil.SplitParent(path)
	if !ok {
		// path == "/": the root always exists.
		return errs.EEXIST
	}

	steps := pathutil.CountSlashes(parentPath) - 1
	parent, code := findNode(t.root, parentPath, steps)
	if code != errs.OK {
		return code
	}
	defer parent.sync.Unlock()

	if _, exists := parent.children.Get(name); exists {
		return errs.EEXIST
	}
	parent.children.Insert(name, newNode(name))
	return errs.OK
}

// Remove deletes the empty folder at path, which may not be the root.
func (t *Tree) Remove(path string) errs.Code {
	cookie := t.log.Call("Remove", log.M{"path": path})
	code := t.remove(path)
	t.log.Return("Remove", cookie, log.M{"code": code.String()})
	return code
}

func (t *Tree) remove(path string) errs.Code {
	if !pathutil.IsValid(path) {
		return errs.EINVAL
	}
	parentPath, name, ok := pathutil.SplitParent(path)
	if !ok {
		// path == "/": removing the root is never permitted.
		return errs.EBUSY
	}

	steps := pathutil.CountSlashes(parentPath) - 1
	parent, code := findNode(t.root, parentPath, steps)
	if code != errs.OK {
		return code
	}
	defer parent.sync.Unlock()

	victim, exists := parent.children.Get(name)
	if !exists {
		return errs.ENOENT
	}
	victim.sync.AwaitQuiescent()
	if victim.children.Len() > 0 {
		return errs.ENOTEMPTY
	}
	parent.children.Remove(name)
	victim.release()
	return errs.OK
}

// Move relocates the folder at src, together with its whole subtree, to
// tgt, which must not already exist. src may not be the root, nor an
// ancestor of tgt.
func (t *Tree) Move(src, tgt string) errs.Code {
	cookie := t.log.Call("Move", log.M{"src": src, "tgt": tgt})
	code := t.move(src, tgt)
	t.log.Return("Move", cookie, log.M{"code": code.String()})
	return code
}

func (t *Tree) move(src, tgt string) errs.Code {
	if !pathutil.IsValid(src) || !pathutil.IsValid(tgt) {
		return errs.EINVAL
	}

	srcParentPath, srcName, ok := pathutil.SplitParent(src)
	if !ok {
		// src == "/": the root may never move.
		return errs.EBUSY
	}
	tgtParentPath, tgtName, ok := pathutil.SplitParent(tgt)
	if !ok {
		// tgt == "/": the root always exists.
		return errs.EEXIST
	}
	if pathutil.IsPrefix(src, tgt) {
		return errs.ErrAncestor
	}

	// Lock the lowest common ancestor of the two parents as writer, by
	// hand-over-hand descent from root.
	lcaDepth := pathutil.CommonDepth(srcParentPath, tgtParentPath) - 1
	lca, code := findNode(t.root, srcParentPath, lcaDepth)
	if code != errs.OK {
		return code
	}

	// From the LCA, descend (without releasing it) to each parent in turn.
	srcSteps := pathutil.CountSlashes(srcParentPath) - 1 - lcaDepth
	srcSuffix := pathutil.Skip(srcParentPath, lcaDepth)
	srcParent, code := descendKeepingAnchor(lca, srcSuffix, srcSteps)
	if code != errs.OK {
		lca.sync.Unlock()
		return code
	}

	tgtSteps := pathutil.CountSlashes(tgtParentPath) - 1 - lcaDepth
	tgtSuffix := pathutil.Skip(tgtParentPath, lcaDepth)
	tgtParent, code := descendKeepingAnchor(lca, tgtSuffix, tgtSteps)
	if code != errs.OK {
		unlockDistinct(lca, srcParent)
		return code
	}

	// Release the LCA once both endpoints are pinned, unless it coincides
	// with one of them.
	releaseIfDistinct(lca, srcParent, tgtParent)

	victim, exists := srcParent.children.Get(srcName)
	if !exists {
		unlockDistinct(srcParent, tgtParent)
		return errs.ENOENT
	}
	if _, exists := tgtParent.children.Get(tgtName); exists {
		unlockDistinct(srcParent, tgtParent)
		return errs.EEXIST
	}

	// Drain the subtree being moved, then relink it under its new name
	// and parent.
	bfsClear(victim)
	srcParent.children.Remove(srcName)
	victim.name = tgtName
	tgtParent.children.Insert(tgtName, victim)

	unlockDistinct(srcParent, tgtParent)
	return errs.OK
}
