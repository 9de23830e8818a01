package loctree

import (
	"errors"
	"strings"
)

// ErrEmptyKey is returned by Set for a dotted key with zero segments.
var ErrEmptyKey = errors.New("dotted key must not be empty")

// Get resolves a dotted key to a string leaf. It returns false when any
// segment is missing, when an intermediate segment is not a mapping, or when
// the final value is not a string. It never yields a subtree.
func Get(tree *Tree, dottedKey string) (string, bool) {
	if tree == nil || dottedKey == "" {
		return "", false
	}

	segments := strings.Split(dottedKey, ".")
	current := tree
	for i, segment := range segments {
		value, ok := current.Value(segment)
		if !ok {
			return "", false
		}

		if i == len(segments)-1 {
			if value.Kind() == KindLeaf {
				return value.Leaf(), true
			}
			return "", false
		}

		if value.Kind() != KindNode {
			return "", false
		}
		current = value.Node()
	}

	return "", false
}

// Set assigns a string leaf at the dotted key, creating intermediate nodes
// as needed. An intermediate that exists but is not a mapping is replaced by
// a fresh empty node (OverwriteOnConflict): whatever was stored there is
// discarded. The final segment overwrites any prior value, leaf or subtree.
func Set(tree *Tree, dottedKey string, value string) error {
	if dottedKey == "" {
		return ErrEmptyKey
	}

	segments := strings.Split(dottedKey, ".")
	current := tree
	for _, segment := range segments[:len(segments)-1] {
		existing, ok := current.Value(segment)
		if ok && existing.Kind() == KindNode {
			current = existing.Node()
			continue
		}

		child := New()
		current.Put(segment, NodeValue(child))
		current = child
	}

	current.Put(segments[len(segments)-1], LeafValue(value))
	return nil
}
