// Package loctree implements the localization tree: an ordered nested
// mapping of string keys to translated strings, addressed by dotted keys.
package loctree

import "encoding/json"

type Kind int

const (
	// KindNode is a nested mapping.
	KindNode Kind = iota
	// KindLeaf is a translatable string value.
	KindLeaf
	// KindOther is any non-string, non-mapping JSON value. Such values are
	// not translatable content; they are carried through rewrites verbatim.
	KindOther
)

// Value is one entry of a Tree, tagged by Kind.
type Value struct {
	kind Kind
	leaf string
	node *Tree
	raw  json.RawMessage
}

func LeafValue(text string) Value {
	return Value{kind: KindLeaf, leaf: text}
}

func NodeValue(node *Tree) Value {
	if node == nil {
		node = New()
	}
	return Value{kind: KindNode, node: node}
}

func OtherValue(raw json.RawMessage) Value {
	return Value{kind: KindOther, raw: raw}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Leaf() string {
	return v.leaf
}

func (v Value) Node() *Tree {
	return v.node
}

func (v Value) Raw() json.RawMessage {
	return v.raw
}

// Tree preserves the insertion order of its direct entries. Existing keys
// keep their position when overwritten; new keys are appended.
type Tree struct {
	keys   []string
	values map[string]Value
}

func New() *Tree {
	return &Tree{values: make(map[string]Value)}
}

func (t *Tree) Len() int {
	return len(t.keys)
}

// Keys returns the direct keys in insertion order.
func (t *Tree) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Value looks up a direct entry. The key is not split on dots.
func (t *Tree) Value(key string) (Value, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Put sets a direct entry, appending the key if it is new.
func (t *Tree) Put(key string, value Value) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}
