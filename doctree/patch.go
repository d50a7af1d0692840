package doctree

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/storykeep/nodetree/node"
)

// Op is a coarse tag of a patch, for diagnostics only.
type Op uint8

// Patch operations.
const (
	OpAdd Op = iota
	OpRemove
	OpReplace
)

var opNames = [...]string{"Add", "Remove", "Replace"}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// MarshalText is part of interface encoding.TextMarshaler.
func (op Op) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText is part of interface encoding.TextUnmarshaler.
func (op *Op) UnmarshalText(b []byte) error {
	for i, name := range opNames {
		if name == string(b) {
			*op = Op(i)
			return nil
		}
	}
	return fmt.Errorf("unknown patch operation %q", string(b))
}

// CommandKind enumerates the primitive operations of a patch.
type CommandKind uint8

// Primitive commands. Every command carries a complete image: replaying a
// command list never depends on the state it is replayed on.
const (
	PutNode     CommandKind = iota + 1 // store Node under its id
	DropNode                           // remove node ID from the store
	SetChildren                        // set the child list of ID to Children
	SetRoot                            // set the root pointer to ID
)

var kindNames = [...]string{"", "PutNode", "DropNode", "SetChildren", "SetRoot"}

func (k CommandKind) String() string {
	if int(k) < len(kindNames) && k > 0 {
		return kindNames[k]
	}
	return fmt.Sprintf("CommandKind(%d)", uint8(k))
}

// Command is a primitive, data-only change of a document.
type Command struct {
	Kind     CommandKind
	ID       string    // node id, parent id for SetChildren
	Node     node.Node // PutNode only
	Children []string  // SetChildren only
}

func (c Command) String() string {
	switch c.Kind {
	case PutNode:
		return fmt.Sprintf("put(%s)", node.String(c.Node))
	case SetChildren:
		return fmt.Sprintf("children(%s)=%v", c.ID, c.Children)
	}
	return fmt.Sprintf("%s(%s)", strings.ToLower(strings.TrimSuffix(c.Kind.String(), "Node")), c.ID)
}

type commandJSON struct {
	Kind     string          `json:"kind"`
	ID       string          `json:"id,omitempty"`
	Node     json.RawMessage `json:"node,omitempty"`
	Children []string        `json:"children,omitempty"`
}

// MarshalJSON is part of interface json.Marshaler.
func (c Command) MarshalJSON() ([]byte, error) {
	cj := commandJSON{Kind: c.Kind.String(), ID: c.ID, Children: c.Children}
	if c.Kind == PutNode {
		raw, err := node.Marshal(c.Node)
		if err != nil {
			return nil, err
		}
		cj.Node = raw
	}
	return json.Marshal(cj)
}

// UnmarshalJSON is part of interface json.Unmarshaler.
func (c *Command) UnmarshalJSON(data []byte) error {
	var cj commandJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	*c = Command{ID: cj.ID, Children: cj.Children}
	for i, name := range kindNames {
		if i > 0 && name == cj.Kind {
			c.Kind = CommandKind(i)
		}
	}
	if c.Kind == 0 {
		return fmt.Errorf("unknown patch command %q", cj.Kind)
	}
	if c.Kind == PutNode {
		n, err := node.Unmarshal(cj.Node)
		if err != nil {
			return err
		}
		c.Node = n
		c.ID = n.NodeID()
	}
	return nil
}

// Patch is a reversible unit of history. Undo holds the before-images and
// Redo the after-images of everything a mutation touched; Notify lists the
// notification keys the mutation signalled.
type Patch struct {
	Op     Op        `json:"op"`
	Undo   []Command `json:"undo"`
	Redo   []Command `json:"redo"`
	Notify []string  `json:"notify,omitempty"`
}

func (p *Patch) String() string {
	return fmt.Sprintf("(Patch %s #undo=%d #redo=%d notify=%v)", p.Op, len(p.Undo), len(p.Redo), p.Notify)
}

// Delta describes the node changes of a patch as a JSON object, mapping the
// id of every node present before and after the patch to an RFC 7386 merge
// patch. Added and removed nodes are not included.
func (p *Patch) Delta() ([]byte, error) {
	before := make(map[string]node.Node)
	for _, c := range p.Undo {
		if c.Kind == PutNode {
			before[c.ID] = c.Node
		}
	}
	delta := make(map[string]json.RawMessage)
	for _, c := range p.Redo {
		old, ok := before[c.ID]
		if c.Kind != PutNode || !ok {
			continue
		}
		a, err := node.Marshal(old)
		if err != nil {
			return nil, err
		}
		b, err := node.Marshal(c.Node)
		if err != nil {
			return nil, err
		}
		mp, err := jsonpatch.CreateMergePatch(a, b)
		if err != nil {
			return nil, fmt.Errorf("delta of %s: %w", c.ID, err)
		}
		delta[c.ID] = mp
	}
	return json.Marshal(delta)
}

// apply interprets a list of commands. It is the only place besides the
// recorder which writes to the node store and the child index.
func (d *Document) apply(cmds []Command) {
	for _, c := range cmds {
		switch c.Kind {
		case PutNode:
			d.nodes[c.ID] = node.Clone(c.Node)
		case DropNode:
			delete(d.nodes, c.ID)
		case SetChildren:
			d.index.Set(c.ID, c.Children)
		case SetRoot:
			d.rootID = c.ID
		default:
			tracer().Errorf("cannot apply patch command %v", c.Kind)
		}
	}
	d.metrics.size(len(d.nodes))
}
