package doctree

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/storykeep/nodetree/clickgate"
	"github.com/storykeep/nodetree/history"
	"github.com/storykeep/nodetree/node"
	"github.com/storykeep/nodetree/notify"
	"github.com/storykeep/nodetree/tree"
)

// Document is a page document: node store, child index, history and
// notification registry.
type Document struct {
	cfg      Config
	nodes    map[string]node.Node // node store, owns every node
	index    *tree.Index[string]  // child index, ids only
	rootID   string
	hist     *history.History[*Patch]
	registry *notify.Registry
	ids      IDGenerator
	metrics  *metrics
}

// Option configures a document.
type Option func(*Document)

// WithConfig sets the document's configuration.
func WithConfig(cfg Config) Option {
	return func(d *Document) {
		d.cfg = cfg
	}
}

// WithIDGenerator replaces the default UUIDv7 identifier generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(d *Document) {
		if gen != nil {
			d.ids = gen
		}
	}
}

// WithRegisterer registers the document's metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(d *Document) {
		d.metrics = newMetrics(reg)
	}
}

// WithNotifier lets the document signal an existing registry, e.g. one
// shared by several views.
func WithNotifier(reg *notify.Registry) Option {
	return func(d *Document) {
		if reg != nil {
			d.registry = reg
		}
	}
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		cfg:   DefaultConfig(),
		nodes: make(map[string]node.Node),
		index: tree.NewIndex[string](),
		ids:   uuidGenerator{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.cfg.Validate(); err != nil {
		tracer().Errorf("invalid document config, using defaults: %v", err)
		d.cfg = DefaultConfig()
	}
	if d.registry == nil {
		d.registry = notify.NewRegistry()
	}
	d.hist = history.New[*Patch](d.cfg.HistoryCapacity)
	return d
}

// Config returns the document's configuration.
func (d *Document) Config() Config {
	return d.cfg
}

// RootKey is the notification key of the document root.
func (d *Document) RootKey() string {
	return d.cfg.RootKey
}

// Subscribe registers a listener for a notification key.
func (d *Document) Subscribe(key string, fn notify.Listener) *notify.Subscription {
	return d.registry.Subscribe(key, fn)
}

// Notifier returns the document's notification registry.
func (d *Document) Notifier() *notify.Registry {
	return d.registry
}

// NewClickGate creates a gate telling single from double clicks, using the
// configured debounce window.
func (d *Document) NewClickGate(opts ...clickgate.Option) *clickgate.Gate {
	return clickgate.New(d.cfg.ClickWindow, opts...)
}

// --- Node store -------------------------------------------------------

// Get returns a copy of the node with identifier id.
func (d *Document) Get(id string) (node.Node, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, false
	}
	return node.Clone(n), true
}

// Has is true if the document holds a node with identifier id.
func (d *Document) Has(id string) bool {
	_, ok := d.nodes[id]
	return ok
}

// TypeOf returns the type of a node, or node.NoType if it is missing.
func (d *Document) TypeOf(id string) node.Type {
	if n, ok := d.nodes[id]; ok {
		return n.Type()
	}
	return node.NoType
}

// Len returns the number of nodes in the document.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Nodes returns copies of all nodes, sorted by identifier.
func (d *Document) Nodes() []node.Node {
	nodes := make([]node.Node, 0, len(d.nodes))
	for _, id := range d.sortedIDs() {
		nodes = append(nodes, node.Clone(d.nodes[id]))
	}
	return nodes
}

func (d *Document) sortedIDs() []string {
	ids := make([]string, 0, len(d.nodes))
	for id := range d.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Children returns the identifiers of the children of parentID, in visual
// order.
func (d *Document) Children(parentID string) []string {
	return d.index.Children(parentID)
}

// RootID returns the identifier of the root node, or "" for an empty
// document.
func (d *Document) RootID() string {
	return d.rootID
}

// Dirty returns copies of all nodes marked as changed, sorted by
// identifier.
func (d *Document) Dirty() []node.Node {
	var dirty []node.Node
	for _, id := range d.sortedIDs() {
		if n := d.nodes[id]; n.Changed() {
			dirty = append(dirty, node.Clone(n))
		}
	}
	return dirty
}

// CleanNode resets the dirty flag of a node after it has been saved. This
// is not an edit: it is neither recorded in the history nor notified.
func (d *Document) CleanNode(id string) error {
	n, ok := d.nodes[id]
	if !ok {
		return d.reject(OpReplace, fmt.Errorf("%w: clean %q", ErrReferenceMissing, id))
	}
	if !n.Changed() {
		return nil
	}
	c := node.Clone(n)
	node.BaseOf(c).IsChanged = false
	d.nodes[id] = c
	return nil
}

// Clear resets the document to the empty state, dropping its history.
// Subscriptions are kept.
func (d *Document) Clear() {
	d.nodes = make(map[string]node.Node)
	d.index.Clear()
	d.rootID = ""
	d.hist.Clear()
	d.metrics.size(0)
	tracer().Infof("document cleared")
}

// Load replaces the document's content by a flat list of nodes, e.g. read
// from a persistence layer. The history is empty afterwards.
func (d *Document) Load(nodes []node.Node) error {
	d.Clear()
	if err := d.AddNodes(nodes...); err != nil {
		return err
	}
	d.hist.Clear()
	return d.Check()
}

// --- History ----------------------------------------------------------

// CanUndo is true if there is a patch to undo.
func (d *Document) CanUndo() bool {
	return d.hist.CanUndo()
}

// CanRedo is true if there is a patch to redo.
func (d *Document) CanRedo() bool {
	return d.hist.CanRedo()
}

// HistoryLen returns the number of patches in the history.
func (d *Document) HistoryLen() int {
	return d.hist.Len()
}

// LastPatch returns the patch the next Undo would revert.
func (d *Document) LastPatch() (*Patch, bool) {
	return d.hist.Peek()
}

// Undo reverts the most recent patch.
func (d *Document) Undo() error {
	p, ok := d.hist.Undo()
	if !ok {
		return ErrNothingToUndo
	}
	tracer().Debugf("undo %s", p)
	d.apply(p.Undo)
	d.signal(p.Notify)
	d.metrics.undo()
	return nil
}

// Redo re-applies the most recently undone patch.
func (d *Document) Redo() error {
	p, ok := d.hist.Redo()
	if !ok {
		return ErrNothingToRedo
	}
	tracer().Debugf("redo %s", p)
	d.apply(p.Redo)
	d.signal(p.Notify)
	d.metrics.redo()
	return nil
}

// signal notifies a list of keys.
func (d *Document) signal(keys []string) {
	for _, key := range keys {
		d.registry.Notify(key)
		d.metrics.notified()
	}
}
