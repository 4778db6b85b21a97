/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"fmt"
	"strings"
)

// Phase identifies the pipeline stage that raised a SyntaxError.
type Phase int

const (
	PHASE_LEXICAL Phase = iota
	PHASE_PREPROCESSOR
	PHASE_TOKENIZER
	PHASE_PARSER
)

func (p Phase) ToString() string {
	switch p {
	case PHASE_LEXICAL:
		return "lexical"
	case PHASE_PREPROCESSOR:
		return "preprocessor"
	case PHASE_TOKENIZER:
		return "tokenizer"
	case PHASE_PARSER:
		return "syntax"
	}
	return "unknown"
}

// SyntaxError is the single fatal diagnostic shared by every stage. Stages
// raise it with panic; public entry points turn it back into an error with
// Catch.
type SyntaxError struct {
	Phase    Phase
	Location Location
	Message  string
}

func NewSyntaxError(phase Phase, l Location, m string) SyntaxError {
	return SyntaxError{Phase: phase, Location: l, Message: m}
}

func (s SyntaxError) Error() string {
	l := s.Location
	if l.File == "" {
		return fmt.Sprintf("%d:%d: %s error: %s", l.Line, l.Column, s.Phase.ToString(), s.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s error: %s", l.File, l.Line, l.Column, s.Phase.ToString(), s.Message)
}

// FormatError renders the line of input holding the error, with a caret
// and tildes underneath the offending range.
func (s SyntaxError) FormatError(input string) string {
	start := min(s.Location.Start, len(input))
	lineStart, lineEnd := lineBounds(input, start)
	line := input[lineStart:lineEnd]

	end := min(s.Location.End, lineEnd)
	repeat := end - start - 1
	if repeat < 0 {
		repeat = 0
	}

	// Keep tabs so the caret lines up with the echoed source line
	var indent strings.Builder
	for _, r := range input[lineStart:start] {
		if r == '\t' {
			indent.WriteRune('\t')
		} else {
			indent.WriteRune(' ')
		}
	}

	phase := s.Phase.ToString()
	errorString := fmt.Sprintf("%s%s error found in %s at line %d, column %d:\n",
		strings.ToUpper(phase[:1]), phase[1:], s.fileName(), s.Location.Line, s.Location.Column)
	errorString += line
	errorString += fmt.Sprintf("\n%s^%s ", indent.String(), strings.Repeat("~", repeat))
	errorString += fmt.Sprintf("%s\n", s.Message)
	return errorString
}

func (s SyntaxError) fileName() string {
	if s.Location.File == "" {
		return "input"
	}
	return s.Location.File
}

// Catch recovers a SyntaxError panic into err. It must be deferred directly.
// Panics carrying anything else are re-raised.
func Catch(err *error) {
	if e := recover(); e != nil {
		syntaxError, ok := e.(SyntaxError)
		if !ok {
			panic(e)
		}
		*err = syntaxError
	}
}
