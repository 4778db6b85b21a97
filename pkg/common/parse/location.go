/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import "strings"

// Location is a byte range within a named input. Line and Column are
// 1-based and describe Start.
type Location struct {
	File   string
	Start  int
	End    int
	Line   int
	Column int
}

// Locate returns the Location of input[start:end], computing its line and
// column.
func Locate(file, input string, start, end int) Location {
	if start > len(input) {
		start = len(input)
	}
	if end < start {
		end = start
	}

	before := input[:start]
	line := strings.Count(before, "\n") + 1
	column := start - (strings.LastIndexByte(before, '\n') + 1) + 1

	return Location{File: file, Start: start, End: end, Line: line, Column: column}
}

// lineBounds returns the byte offsets of the line containing offset.
func lineBounds(input string, offset int) (int, int) {
	if offset > len(input) {
		offset = len(input)
	}

	start := strings.LastIndexByte(input[:offset], '\n') + 1
	end := strings.IndexByte(input[offset:], '\n')
	if end < 0 {
		return start, len(input)
	}
	return start, offset + end
}
