package loctree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const indentUnit = "  "

// Parse decodes a JSON document into a Tree, preserving the key order of
// every object. The top-level value must be an object.
func Parse(data []byte) (*Tree, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("top-level JSON value must be an object")
	}

	return parseObject(trimmed)
}

func parseObject(data []byte) (*Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	tree := New()
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", keyToken)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("value for key %q: %w", key, err)
		}

		value, err := parseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", key, err)
		}
		tree.Put(key, value)
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}

	return tree, nil
}

func parseValue(raw json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Value{}, fmt.Errorf("empty value")
	}

	switch trimmed[0] {
	case '{':
		node, err := parseObject(trimmed)
		if err != nil {
			return Value{}, err
		}
		return NodeValue(node), nil
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return Value{}, err
		}
		return LeafValue(text), nil
	default:
		kept := make(json.RawMessage, len(trimmed))
		copy(kept, trimmed)
		return OtherValue(kept), nil
	}
}

// Marshal renders the tree as pretty-printed JSON with two-space
// indentation, key order preserved and non-ASCII characters unescaped.
// There is no trailing newline.
func Marshal(tree *Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTree(&buf, tree, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTree(buf *bytes.Buffer, tree *Tree, depth int) error {
	if tree == nil || tree.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}

	buf.WriteString("{\n")
	for i, key := range tree.keys {
		buf.WriteString(strings.Repeat(indentUnit, depth+1))
		if err := writeString(buf, key); err != nil {
			return err
		}
		buf.WriteString(": ")

		if err := writeValue(buf, tree.values[key], depth+1); err != nil {
			return err
		}

		if i < len(tree.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(indentUnit, depth))
	buf.WriteByte('}')
	return nil
}

func writeValue(buf *bytes.Buffer, value Value, depth int) error {
	switch value.Kind() {
	case KindNode:
		return writeTree(buf, value.Node(), depth)
	case KindLeaf:
		return writeString(buf, value.Leaf())
	default:
		return writeRaw(buf, value.Raw(), depth)
	}
}

func writeString(buf *bytes.Buffer, text string) error {
	var encoded bytes.Buffer
	enc := json.NewEncoder(&encoded)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(text); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(encoded.Bytes(), "\n"))
	return nil
}

func writeRaw(buf *bytes.Buffer, raw json.RawMessage, depth int) error {
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return err
	}
	return json.Indent(buf, compact.Bytes(), strings.Repeat(indentUnit, depth), indentUnit)
}
