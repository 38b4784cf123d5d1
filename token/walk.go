/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"fmt"

	"bennypowers.dev/gavanim/schema"
)

// WalkFunc is called once per leaf with the leaf's full path.
// Returning an error stops the walk.
type WalkFunc func(path Path, leaf *Leaf) error

// Walk visits every leaf of the document in source order.
func (d *Document) Walk(fn WalkFunc) error {
	return d.WalkFrom(Root, nil, fn)
}

// WalkFrom visits every leaf below id. prefix is the path of id itself;
// each visited leaf receives prefix extended by the keys leading to it.
// The traversal uses an explicit stack, so deep trees do not grow the
// goroutine stack.
func (d *Document) WalkFrom(id NodeID, prefix Path, fn WalkFunc) error {
	if d.Node(id) == nil {
		return fmt.Errorf("walk: no node with id %d", id)
	}

	type frame struct {
		id   NodeID
		path Path
	}

	seen := make([]bool, len(d.nodes))
	stack := []frame{{id: id, path: prefix}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[f.id] {
			return fmt.Errorf("%w: node %q reached twice", schema.ErrCycle, f.path.DotPath())
		}
		seen[f.id] = true

		n := &d.nodes[f.id]
		switch n.Kind {
		case KindLeaf:
			if err := fn(f.path, n.Leaf); err != nil {
				return err
			}
		case KindGroup:
			for i := len(n.Children) - 1; i >= 0; i-- {
				child := n.Children[i]
				if int(child) >= len(d.nodes) || child <= 0 {
					return fmt.Errorf("%w: %q has invalid child %d", schema.ErrCycle, f.path.DotPath(), child)
				}
				stack = append(stack, frame{id: child, path: f.path.Extend(d.nodes[child].Key)})
			}
		}
	}
	return nil
}

// CountLeaves returns the number of leaves below id.
func (d *Document) CountLeaves(id NodeID) int {
	count := 0
	_ = d.WalkFrom(id, nil, func(Path, *Leaf) error {
		count++
		return nil
	})
	return count
}
