/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

import (
	"reflect"
	"strings"
)

type Dumper struct {
	Output string
	indent int
}

func (d *Dumper) Visit(node ASTNode) Visitor {
	if node == nil {
		d.indent -= 1
		return nil
	}

	level := strings.Repeat("    ", d.indent)

	t := reflect.TypeOf(node)
	output := level + t.Elem().Name() + "[" + node.Value() + "]" + "\n"

	d.Output += output
	d.indent += 1

	return d
}

func ASTToString(node ASTNode) string {
	d := Dumper{}
	Walk(&d, node)
	return d.Output
}

// Dump renders every statement of p, one tree after the other.
func Dump(p Program) string {
	d := Dumper{}
	for _, s := range p {
		Walk(&d, s)
	}
	return d.Output
}
