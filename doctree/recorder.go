package doctree

import (
	"slices"

	"github.com/storykeep/nodetree/node"
)

// recorder performs the writes of a single mutation and records the
// before-image of every key it touches. On commit it compares them with
// the current state and turns the differences into a patch.
type recorder struct {
	doc       *Document
	op        Op
	nodesPre  map[string]node.Node // nil value: key was absent
	nodeKeys  []string
	kidsPre   map[string][]string
	kidKeys   []string
	rootTaken bool
	rootPre   string
	notify    []string
}

func (d *Document) record(op Op) *recorder {
	return &recorder{
		doc:      d,
		op:       op,
		nodesPre: make(map[string]node.Node),
		kidsPre:  make(map[string][]string),
	}
}

func (r *recorder) touchNode(id string) {
	if _, ok := r.nodesPre[id]; ok {
		return
	}
	r.nodesPre[id] = r.doc.nodes[id] // stored nodes are never mutated in place
	r.nodeKeys = append(r.nodeKeys, id)
}

func (r *recorder) touchChildren(parent string) {
	if _, ok := r.kidsPre[parent]; ok {
		return
	}
	r.kidsPre[parent] = r.doc.index.Children(parent)
	r.kidKeys = append(r.kidKeys, parent)
}

// put stores a copy of n.
func (r *recorder) put(n node.Node) {
	r.touchNode(n.NodeID())
	r.doc.nodes[n.NodeID()] = node.Clone(n)
}

// drop removes a node from the store. Its child list is removed as well.
func (r *recorder) drop(id string) {
	r.touchNode(id)
	r.touchChildren(id)
	delete(r.doc.nodes, id)
	r.doc.index.Drop(id)
}

func (r *recorder) link(parent, child string, at int) {
	r.touchChildren(parent)
	r.doc.index.Link(parent, child, at)
}

func (r *recorder) unlink(parent, child string) int {
	r.touchChildren(parent)
	return r.doc.index.Unlink(parent, child)
}

func (r *recorder) setChildren(parent string, children []string) {
	r.touchChildren(parent)
	r.doc.index.Set(parent, children)
}

func (r *recorder) setRoot(id string) {
	if !r.rootTaken {
		r.rootTaken = true
		r.rootPre = r.doc.rootID
	}
	r.doc.rootID = id
}

// signal queues a notification key, once.
func (r *recorder) signal(key string) {
	if key != "" && !slices.Contains(r.notify, key) {
		r.notify = append(r.notify, key)
	}
}

// patch computes the difference between the recorded before-images and the
// current state. It returns nil if nothing changed.
func (r *recorder) patch() *Patch {
	p := &Patch{Op: r.op}
	for _, id := range r.nodeKeys {
		pre, post := r.nodesPre[id], r.doc.nodes[id]
		if pre == nil && post == nil {
			continue
		}
		if pre != nil && post != nil && node.Identical(pre, post) {
			continue
		}
		p.Undo = append(p.Undo, nodeImage(id, pre))
		p.Redo = append(p.Redo, nodeImage(id, post))
	}
	for _, parent := range r.kidKeys {
		pre, post := r.kidsPre[parent], r.doc.index.Children(parent)
		if slices.Equal(pre, post) {
			continue
		}
		p.Undo = append(p.Undo, Command{Kind: SetChildren, ID: parent, Children: pre})
		p.Redo = append(p.Redo, Command{Kind: SetChildren, ID: parent, Children: post})
	}
	if r.rootTaken && r.rootPre != r.doc.rootID {
		p.Undo = append(p.Undo, Command{Kind: SetRoot, ID: r.rootPre})
		p.Redo = append(p.Redo, Command{Kind: SetRoot, ID: r.doc.rootID})
	}
	if len(p.Redo) == 0 {
		return nil
	}
	p.Notify = r.notify
	return p
}

func nodeImage(id string, n node.Node) Command {
	if n == nil {
		return Command{Kind: DropNode, ID: id}
	}
	return Command{Kind: PutNode, ID: id, Node: node.Clone(n)}
}

// commit pushes the mutation's patch onto the history and signals the
// queued notification keys. A mutation which changed nothing leaves no
// trace.
func (r *recorder) commit() *Patch {
	d := r.doc
	d.metrics.size(len(d.nodes))
	p := r.patch()
	if p == nil {
		tracer().Debugf("%s changed nothing", r.op)
		return nil
	}
	d.hist.Push(p)
	d.metrics.mutation(r.op)
	tracer().Debugf("committed %s", p)
	d.signal(p.Notify)
	return p
}
