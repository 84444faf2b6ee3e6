package internal

import (
	"fmt"
)

// FlatRecord is an insertion-ordered mapping from dotted/indexed path
// strings to string values, produced by flattening an XML tree.
type FlatRecord struct {
	keys []string
	vals map[string]string
}

// NewFlatRecord returns an empty flat record.
func NewFlatRecord() *FlatRecord {
	return &FlatRecord{vals: make(map[string]string)}
}

// Set stores a value under a path. Setting an already-present path is an
// internal-invariant violation (the array-indexing rule guarantees distinct
// paths for distinct source leaves) and returns an error rather than
// silently dropping data.
func (r *FlatRecord) Set(key, value string) error {
	if _, exists := r.vals[key]; exists {
		return fmt.Errorf("duplicate flattened path %q", key)
	}
	r.keys = append(r.keys, key)
	r.vals[key] = value
	return nil
}

// Get returns the value stored under key.
func (r *FlatRecord) Get(key string) (string, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Keys returns the record's paths in insertion order.
func (r *FlatRecord) Keys() []string {
	return r.keys
}

// Len returns the number of paths in the record.
func (r *FlatRecord) Len() int {
	return len(r.keys)
}

// Flatten walks an XML node tree depth-first and produces a single flat
// record. Paths follow the grammar `segment ("." segment)*` where a segment
// is `name` or `name[index]`; the index is the zero-based position among
// same-named siblings at that level. Every leaf value in the tree yields
// exactly one entry.
func Flatten(n *Node) (*FlatRecord, error) {
	rec := NewFlatRecord()
	if err := flattenNode(n, "", rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func flattenNode(n *Node, prefix string, rec *FlatRecord) error {
	for _, key := range n.Keys() {
		v, _ := n.Get(key)
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if err := flattenValue(v, path, rec); err != nil {
			return err
		}
	}
	return nil
}

func flattenValue(v Value, path string, rec *FlatRecord) error {
	switch v := v.(type) {
	case Scalar:
		return rec.Set(path, string(v))
	case *Node:
		return flattenNode(v, path, rec)
	case List:
		for i, item := range v {
			if err := flattenValue(item, fmt.Sprintf("%s[%d]", path, i), rec); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported value type %T at %q", v, path)
	}
}
