/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package common

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
	perrors "github.com/pkg/errors"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
)

// Verb identifies the operation applied to a Cobbler object.
type Verb string

// Defines the supported object verbs.
const (
	VerbAdd    Verb = "add"
	VerbEdit   Verb = "edit"
	VerbRemove Verb = "remove"
)

// SyncVerb is the standalone command that makes all pending changes effective
// on the server.  It applies to every object at once.
const SyncVerb = "sync"

// Command is a single invocation of the cobbler command line tool.  Each
// argument is passed as is; multi-valued arguments are joined into a single
// argument by the caller.
type Command struct {
	Args []string
}

// NewCommand builds an object command of the form:
//
//	<kind> <verb> --name=<name> [args...]
func NewCommand(kind v1.Kind, verb Verb, name string, args ...string) Command {
	result := make([]string, 0, len(args)+3)
	result = append(result, string(kind), string(verb), Argument("name", name))
	result = append(result, args...)
	return Command{Args: result}
}

// AddCommand builds an add command for the named object.
func AddCommand(kind v1.Kind, name string, args ...string) Command {
	return NewCommand(kind, VerbAdd, name, args...)
}

// EditCommand builds an edit command for the named object.
func EditCommand(kind v1.Kind, name string, args ...string) Command {
	return NewCommand(kind, VerbEdit, name, args...)
}

// RemoveCommand builds a remove command for the named object.
func RemoveCommand(kind v1.Kind, name string) Command {
	return NewCommand(kind, VerbRemove, name)
}

// SyncCommand builds the service wide sync command.
func SyncCommand() Command {
	return Command{Args: []string{SyncVerb}}
}

// IsSync returns true if the command is the service wide sync command.
func (in Command) IsSync() bool {
	return len(in.Args) == 1 && in.Args[0] == SyncVerb
}

// String renders the command as it would be typed on a shell.
func (in Command) String() string {
	return strings.Join(in.Args, " ")
}

// FlagName converts an attribute name to its command line form.
func FlagName(attribute string) string {
	return strings.ReplaceAll(attribute, "_", "-")
}

// Argument builds a "--<attribute>=<value>" argument.
func Argument(attribute, value string) string {
	return "--" + FlagName(attribute) + "=" + value
}

// Switch builds a "--<attribute>" argument.
func Switch(attribute string) string {
	return "--" + FlagName(attribute)
}

// WithSync terminates a group of commands with a sync command unless the
// group already ends with one.  An empty group stays empty.
func WithSync(commands []Command) []Command {
	if len(commands) == 0 || commands[len(commands)-1].IsSync() {
		return commands
	}
	return append(commands, SyncCommand())
}

// CommandRunner defines the interface to the command surface of the
// provisioning server.
type CommandRunner interface {
	// Run executes a single command and returns its combined output.  A
	// non-zero exit status is reported as a RemoteCommandError.
	Run(ctx context.Context, command Command) (string, error)
}

// ApplyCommands runs each command in order and stops at the first failure.
// Commands that already ran are not undone.
func ApplyCommands(ctx context.Context, runner CommandRunner, commands []Command, log logr.Logger) error {
	for i, command := range commands {
		log.V(1).Info("running command", "command", command.String(),
			"step", i+1, "steps", len(commands))

		_, err := runner.Run(ctx, command)
		if err != nil {
			err = perrors.Wrapf(err, "step %d of %d failed", i+1, len(commands))
			return err
		}
	}

	return nil
}
