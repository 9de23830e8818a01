package loctree

import "sort"

// Entry is one flattened string leaf.
type Entry struct {
	Key   string
	Value string
}

// Flatten walks the tree and returns every dotted path that ends in a
// string leaf, in tree order. Non-string leaves (numbers, arrays, booleans,
// null) are skipped entirely: they are not translatable content and do not
// count as keys.
func Flatten(tree *Tree) []Entry {
	var out []Entry
	flattenInto(&out, tree, "")
	return out
}

func flattenInto(out *[]Entry, tree *Tree, prefix string) {
	if tree == nil {
		return
	}

	for _, key := range tree.keys {
		dotted := key
		if prefix != "" {
			dotted = prefix + "." + key
		}

		value := tree.values[key]
		switch value.Kind() {
		case KindNode:
			flattenInto(out, value.Node(), dotted)
		case KindLeaf:
			*out = append(*out, Entry{Key: dotted, Value: value.Leaf()})
		}
	}
}

// KeySet returns the flattened keys of the tree as a set.
func KeySet(tree *Tree) map[string]struct{} {
	entries := Flatten(tree)
	set := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		set[entry.Key] = struct{}{}
	}
	return set
}

// Diff returns the keys present in reference but absent from target,
// sorted ascending.
func Diff(reference *Tree, target *Tree) []string {
	targetKeys := KeySet(target)

	missing := make([]string, 0)
	for key := range KeySet(reference) {
		if _, ok := targetKeys[key]; !ok {
			missing = append(missing, key)
		}
	}

	sort.Strings(missing)
	return missing
}
