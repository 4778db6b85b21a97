/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
)

const (
	CommandSource     = "source"
	CommandTokens     = "tokens"
	CommandPreprocess = "preprocess"
	CommandMacros     = "macros"
	CommandStats      = "stats"
	CommandReset      = "reset"
	CommandHelp       = "help"
	CommandQuit       = "quit"
)

// CommandInfo describes one meta command for :help and completion.
type CommandInfo struct {
	Name        string
	Argument    string
	Description string
}

// Commands lists the meta commands understood by ParseREPLCommand.
var Commands = HelpTable{
	{CommandTokens, "SOURCE", "Print the tokens of SOURCE"},
	{CommandPreprocess, "SOURCE", "Print SOURCE with macros resolved"},
	{CommandMacros, "", "List the macros defined so far"},
	{CommandStats, "", "Print metrics collected during the session"},
	{CommandReset, "", "Forget every macro defined so far"},
	{CommandHelp, "", "Show this help"},
	{CommandQuit, "", "Leave the REPL"},
}

type Command struct {
	Name string
	Arg  string
}

// ParseREPLCommand parses one line of REPL input. Lines starting with ':'
// are meta commands, everything else is source.
//
// This function assumes there is no '\n'
func ParseREPLCommand(b []byte) (Command, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != ':' {
		return Command{Name: CommandSource, Arg: string(b)}, nil
	}

	// Get the command
	b = b[1:]
	cmd, arg := b, []byte{}
	if ind := bytes.IndexByte(b, ' '); ind != -1 {
		cmd, arg = b[:ind], bytes.TrimSpace(b[ind+1:])
	}

	name := strings.ToLower(string(cmd))
	for _, c := range Commands {
		if c.Name != name {
			continue
		}

		if c.Argument != "" && len(arg) == 0 {
			return Command{}, errors.Errorf("':%s' needs %s", name, c.Argument)
		}
		if c.Argument == "" && len(arg) != 0 {
			return Command{}, errors.Errorf("':%s' takes no arguments", name)
		}
		return Command{Name: name, Arg: string(arg)}, nil
	}

	return Command{}, errors.Errorf("unknown command ':%s', try ':help'", name)
}
