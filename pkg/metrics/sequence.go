/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package metrics

import (
	"reflect"

	"github.com/BlueTheDuck/rcc/pkg/ast"
	"github.com/BlueTheDuck/rcc/pkg/span"
)

// countingSequence passes spans through from upstream, counting them by tag.
type countingSequence struct {
	upstream span.Sequence
	store    Store
	stage    string
}

// CountSpans wraps seq so that every span it produces is recorded under
// stage.
func CountSpans(seq span.Sequence, store Store, stage string) span.Sequence {
	return &countingSequence{upstream: seq, store: store, stage: stage}
}

func (c *countingSequence) Next() (span.Span, bool) {
	s, ok := c.upstream.Next()
	if ok {
		c.store.ObserveSpan(c.stage, s.Tag)
	}
	return s, ok
}

type nodeCounter struct {
	store Store
}

func (n *nodeCounter) Visit(node ast.ASTNode) ast.Visitor {
	if node == nil {
		return nil
	}
	n.store.IncNodes(reflect.TypeOf(node).Elem().Name())
	return n
}

// CountNodes records every node of program by its type name.
func CountNodes(store Store, program ast.Program) {
	v := &nodeCounter{store: store}
	for _, stmt := range program {
		ast.Walk(v, stmt)
	}
}
