// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Action is what a control token does.
type Action int

const (
	// ActionQuery is not a token: the line goes to the query engine.
	ActionQuery Action = iota
	// ActionCreateTable picks a file and registers it as a table.
	ActionCreateTable
	// ActionClear resets the display table.
	ActionClear
)

func (a Action) String() string {
	switch a {
	case ActionCreateTable:
		return "create-table"
	case ActionClear:
		return "clear"
	default:
		return "query"
	}
}

// Command is a reserved control token.
type Command struct {
	// Name is the primary token (e.g., "cls")
	Name string

	// Aliases are alternative tokens (e.g., "clear")
	Aliases []string

	// Description is shown in the help overlay
	Description string

	// Action is the flow the dispatcher runs for this token
	Action Action
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds the reserved tokens. Keys are stored lower-case.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a registry with the built-in tokens.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a token to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[strings.ToLower(cmd.Name)] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[strings.ToLower(alias)] = cmd
	}
}

// Get retrieves a command by name or alias, ignoring case.
func (r *Registry) Get(name string) *Command {
	name = strings.ToLower(name)
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns the registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "c",
		Description: "Load a CSV or JSON file as the next table (a, b, c, ...)",
		Action:      ActionCreateTable,
	})

	r.Register(&Command{
		Name:        "cls",
		Aliases:     []string{"clear"},
		Description: "Clear the results panel; loaded tables stay registered",
		Action:      ActionClear,
	})
}
