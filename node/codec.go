package node

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCodec is returned for malformed node documents.
var ErrCodec = errors.New("malformed node document")

type envelope struct {
	NodeType Type `json:"nodeType"`
}

// Marshal encodes a node as a JSON object carrying a "nodeType" discriminator
// next to the variant's fields.
func Marshal(n Node) ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	raw, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	t, err := n.Type().MarshalText()
	if err != nil {
		return nil, err
	}
	fields["nodeType"], _ = json.Marshal(string(t))
	return json.Marshal(fields) // map keys are sorted, output is stable
}

// Unmarshal decodes a node written by Marshal.
func Unmarshal(data []byte) (Node, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodec, err)
	}
	n := New(env.NodeType)
	if n == nil {
		return nil, fmt.Errorf("%w: missing node type", ErrCodec)
	}
	if err := json.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodec, err)
	}
	if n.NodeID() == "" {
		return nil, fmt.Errorf("%w: %s without id", ErrCodec, env.NodeType)
	}
	return n, nil
}

// MarshalList encodes a flat list of nodes as a JSON array.
func MarshalList(nodes []Node) ([]byte, error) {
	items := make([]json.RawMessage, len(nodes))
	for i, n := range nodes {
		b, err := Marshal(n)
		if err != nil {
			return nil, err
		}
		items[i] = b
	}
	return json.Marshal(items)
}

// UnmarshalList decodes a JSON array of nodes, as produced by MarshalList.
func UnmarshalList(data []byte) ([]Node, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodec, err)
	}
	nodes := make([]Node, 0, len(items))
	for i, item := range items {
		n, err := Unmarshal(item)
		if err != nil {
			return nil, fmt.Errorf("node #%d: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	tracer().Debugf("decoded %d nodes", len(nodes))
	return nodes, nil
}
