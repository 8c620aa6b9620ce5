// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the staff directory.
package commands

import (
	"context"
	"fmt"

	"github.com/morganforge/alfred/internal/staff"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/add_staff")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "/adjust_salary Full Name | NewDailyRate")
	Usage string

	// Handler executes the command against its dependencies.
	//
	// The returned string is always a complete human-readable reply:
	// validation failures and lookup misses are replies, never errors.
	// A non-nil error means the directory store itself failed; it
	// propagates to the orchestrator and is reported from there.
	Handler func(ctx context.Context, deps *Deps, args []string) (string, error)
}

// Deps provides collaborator access for command handlers.
type Deps struct {
	// Staff is the directory store commands read and mutate.
	Staff *staff.Store
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show help and available commands",
		Usage:       "/help",
		Handler:     handleHelp,
	})

	r.Register(&Command{
		Name:        "/add_staff",
		Description: "Add a staff record to the directory",
		Usage:       "/add_staff Full Name | Role | Department | DailyRate",
		Handler:     handleAddStaff,
	})

	r.Register(&Command{
		Name:        "/adjust_salary",
		Description: "Change the daily rate of an existing staff member",
		Usage:       "/adjust_salary Full Name | NewDailyRate",
		Handler:     handleAdjustSalary,
	})

	r.Register(&Command{
		Name:        "/list_staff",
		Description: "List all staff, or staff in one department",
		Usage:       "/list_staff [DepartmentName]",
		Handler:     handleListStaff,
	})
}

// =============================================================================
// INTERPRETER
// =============================================================================

// Interpreter recognizes command-mode input, executes it, and produces a
// formatted reply.
type Interpreter struct {
	registry *Registry
	deps     *Deps
}

// NewInterpreter creates an interpreter over the given directory store.
func NewInterpreter(store *staff.Store) *Interpreter {
	return &Interpreter{
		registry: NewRegistry(),
		deps:     &Deps{Staff: store},
	}
}

// Execute runs input through the command system.
//
// handled is false only when the input does not start with the marker; the
// caller then falls through to chat mode. Any marker-prefixed input is
// consumed: unknown commands and bad arguments come back as reply text with
// handled=true. A non-nil error means a store failure and propagates.
func (i *Interpreter) Execute(ctx context.Context, input string) (reply string, handled bool, err error) {
	if !IsCommand(input) {
		return "", false, nil
	}

	inv := Parse(input)

	cmd := i.registry.Get(inv.Name)
	if cmd == nil {
		return fmt.Sprintf("Unknown command: %s\nType /help for list of commands.", inv.Name), true, nil
	}

	reply, err = cmd.Handler(ctx, i.deps, inv.Args)
	return reply, true, err
}
