/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package span

import (
	"fmt"
	"strings"

	"github.com/BlueTheDuck/rcc/pkg/common/parse"
	"github.com/google/uuid"
)

// Tag is the lexical classification assigned to a Span when it is scanned.
type Tag int

const (
	TAG_UNCLASSIFIED Tag = iota
	TAG_WHITESPACE
	TAG_COMMENT
	TAG_LITERAL
	TAG_STRING
	TAG_IDENTIFIER
	TAG_PUNCTUATION
	TAG_OPERATOR
	TAG_EOF
)

func (t Tag) ToString() string {
	switch t {
	case TAG_UNCLASSIFIED:
		return "TAG_UNCLASSIFIED"
	case TAG_WHITESPACE:
		return "TAG_WHITESPACE"
	case TAG_COMMENT:
		return "TAG_COMMENT"
	case TAG_LITERAL:
		return "TAG_LITERAL"
	case TAG_STRING:
		return "TAG_STRING"
	case TAG_IDENTIFIER:
		return "TAG_IDENTIFIER"
	case TAG_PUNCTUATION:
		return "TAG_PUNCTUATION"
	case TAG_OPERATOR:
		return "TAG_OPERATOR"
	case TAG_EOF:
		return "TAG_EOF"
	}
	return "TAG_UNKNOWN"
}

// Source owns the text every Span points into. It must outlive all spans,
// tokens and nodes derived from it.
type Source struct {
	ID   string
	Name string
	Text string
}

func NewSource(name, text string) *Source {
	return &Source{ID: uuid.NewString(), Name: name, Text: text}
}

// Span is a classified view of Source.Text[Start:End]. It never owns
// characters.
type Span struct {
	Source *Source
	Start  int
	End    int
	Tag    Tag
}

// Text returns the referenced source text. The result shares memory with
// the Source.
func (s Span) Text() string {
	if s.Source == nil {
		return ""
	}
	return s.Source.Text[s.Start:s.End]
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Equal compares spans by the text they reference, so two occurrences of
// the same identifier are equal regardless of position.
func (s Span) Equal(o Span) bool {
	return s.Text() == o.Text()
}

// Is reports whether the span references exactly text.
func (s Span) Is(text string) bool {
	return s.Text() == text
}

// Significant reports whether the span survives tokenization, that is, it
// is neither whitespace nor a comment.
func (s Span) Significant() bool {
	return s.Tag != TAG_WHITESPACE && s.Tag != TAG_COMMENT
}

// EndsLine reports whether the span terminates a logical line: a
// whitespace run containing a newline, or the end of input.
func (s Span) EndsLine() bool {
	return s.Tag == TAG_EOF || (s.Tag == TAG_WHITESPACE && strings.ContainsRune(s.Text(), '\n'))
}

func (s Span) Location() parse.Location {
	if s.Source == nil {
		return parse.Location{Start: s.Start, End: s.End}
	}
	return parse.Locate(s.Source.Name, s.Source.Text, s.Start, s.End)
}

func (s Span) String() string {
	return fmt.Sprintf("Span(%q)", s.Text())
}

// Sequence is a lazy, ordered stream of spans. Next returns false once the
// stream is exhausted, which happens only after the TAG_EOF span has been
// returned.
type Sequence interface {
	Next() (Span, bool)
}

// Collect drains seq into a slice.
func Collect(seq Sequence) []Span {
	spans := []Span{}
	for s, ok := seq.Next(); ok; s, ok = seq.Next() {
		spans = append(spans, s)
	}
	return spans
}
