/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import "bennypowers.dev/gavanim/schema"

// NodeID indexes a node in its Document.
type NodeID int32

// Root is the ID of every document's root group.
const Root NodeID = 0

// NoParent is the parent of the root node.
const NoParent NodeID = -1

// Kind tags a node as a group or a leaf.
type Kind uint8

const (
	// KindGroup nodes contain child nodes and no value.
	KindGroup Kind = iota

	// KindLeaf nodes carry a value and have no children.
	KindLeaf
)

// Node is one entry of the document arena.
type Node struct {
	Kind     Kind
	Key      string
	Parent   NodeID
	Depth    int
	Children []NodeID
	Leaf     *Leaf
	Line     int
}

// Document is the parsed token tree.
// Documents are assembled by the parser and must not be modified afterwards.
type Document struct {
	nodes   []Node
	Dialect schema.Dialect
	// Source names the file(s) the document was read from.
	Source string
}

// NewDocument returns a document holding only an empty root group.
func NewDocument() *Document {
	return &Document{
		nodes: []Node{{Kind: KindGroup, Parent: NoParent}},
	}
}

// AddGroup appends a group under parent and returns its ID.
func (d *Document) AddGroup(parent NodeID, key string, line int) NodeID {
	return d.add(parent, Node{Kind: KindGroup, Key: key, Line: line})
}

// AddLeaf appends a leaf under parent and returns its ID.
func (d *Document) AddLeaf(parent NodeID, key string, leaf *Leaf) NodeID {
	return d.add(parent, Node{Kind: KindLeaf, Key: key, Leaf: leaf, Line: leaf.Line})
}

func (d *Document) add(parent NodeID, n Node) NodeID {
	id := NodeID(len(d.nodes))
	n.Parent = parent
	n.Depth = d.nodes[parent].Depth + 1
	d.nodes = append(d.nodes, n)
	d.nodes[parent].Children = append(d.nodes[parent].Children, id)
	return id
}

// Len returns the number of nodes, including the root.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Node returns the node with the given ID.
func (d *Document) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return &d.nodes[id]
}

// Child finds a direct child of id by key.
func (d *Document) Child(id NodeID, key string) (NodeID, bool) {
	n := d.Node(id)
	if n == nil {
		return 0, false
	}
	for _, c := range n.Children {
		if d.nodes[c].Key == key {
			return c, true
		}
	}
	return 0, false
}

// Lookup finds the node at path.
func (d *Document) Lookup(path Path) (NodeID, bool) {
	id := Root
	for _, key := range path {
		next, ok := d.Child(id, key)
		if !ok {
			return 0, false
		}
		id = next
	}
	return id, true
}

// PathOf rebuilds the path of a node from its ancestors.
func (d *Document) PathOf(id NodeID) Path {
	var rev []string
	for n := d.Node(id); n != nil && n.Parent != NoParent; n = d.Node(n.Parent) {
		rev = append(rev, n.Key)
	}
	path := make(Path, len(rev))
	for i, key := range rev {
		path[len(rev)-1-i] = key
	}
	return path
}

// Section is a top-level child of the document root.
type Section struct {
	Key string
	ID  NodeID
}

// Sections returns the document's top-level children in source order.
func (d *Document) Sections() []Section {
	root := d.nodes[Root]
	out := make([]Section, 0, len(root.Children))
	for _, id := range root.Children {
		out = append(out, Section{Key: d.nodes[id].Key, ID: id})
	}
	return out
}
